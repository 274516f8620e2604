package kinematics

import (
	"math"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/viam-labs/linkage/constraint"
	"github.com/viam-labs/linkage/mechanism"
)

const (
	// Weight pinning the driven joint at the commanded input angle, matching
	// the ground anchor weight so the drive does not drift.
	drivePinWeight = 10.0

	// Assembling a six-bar from a coarse seed takes a few times longer than
	// refining an already assembled pose.
	assemblyBudgetFactor = 3
)

// SixBarState is one numerically assembled configuration of a six-bar
// linkage. Joint positions satisfy the link lengths to within the solver
// tolerance rather than exactly, and Residual reports how closely.
type SixBarState struct {
	InputAngle     float64
	JointPositions []r3.Vector
	LinkAngles     map[string]float64
	Residual       float64
	Iterations     int
}

func (st *SixBarState) state() *State {
	return &State{
		Input:          st.InputAngle,
		JointPositions: st.JointPositions,
		LinkAngles:     st.LinkAngles,
	}
}

// SixBarSolver analyzes Watt and Stephenson six-bar linkages. Six-bar
// position analysis has no general closed form, so SolvePositions reports
// that instead of guessing, and SolveApproximate assembles the linkage with
// the iterative constraint solver.
type SixBarSolver struct {
	mech   *mechanism.SixBar
	solver *constraint.Solver
	logger golog.Logger
}

// NewSixBarSolver returns a solver for the given six-bar linkage. The
// logger may be nil, in which case the global logger is used.
func NewSixBarSolver(mech *mechanism.SixBar, logger golog.Logger) (*SixBarSolver, error) {
	if logger == nil {
		logger = golog.Global()
	}
	solver, err := constraint.NewSolver(nil, logger)
	if err != nil {
		return nil, err
	}
	logger.Debugf("created %s six-bar solver", mech.Subtype())
	return &SixBarSolver{mech: mech, solver: solver, logger: logger}, nil
}

// SolvePositions always returns ErrNotImplemented: there is no general
// closed-form position solution for six-bar linkages, and this solver never
// fabricates joint data. Use SolveApproximate for a numerical assembly.
func (s *SixBarSolver) SolvePositions(inputAngle float64) (*SixBarState, error) {
	return nil, errors.Wrapf(ErrNotImplemented, "%s six-bar position analysis", s.mech.Subtype())
}

// SolveApproximate assembles the six-bar at the given input angle by
// pinning the driven joint on its crank circle and solving the structural
// constraint system for the remaining joints. The returned configuration is
// one member of the feasible family near the seed, not a specific branch.
func (s *SixBarSolver) SolveApproximate(inputAngle float64) (*SixBarState, error) {
	sys, points := constraint.ForMechanism(s.mech)
	joints := s.mech.Joints()
	links := s.mech.Links()

	// joints are ground_1, joint_1..joint_4, ground_2; links[1] is the
	// driven crank from ground_1.
	crank := links[1].Length
	pin := r3.Vector{X: crank * math.Cos(inputAngle), Y: crank * math.Sin(inputAngle)}
	points[1] = pin
	sys.AddPosition(1, pin, drivePinWeight)
	seedChain(points, links, pin, joints[len(joints)-1].Position)

	budget := assemblyBudgetFactor * s.solver.Config().MaxIterations
	result, err := s.solver.Solve(sys, points, budget)
	if err != nil {
		return nil, errors.Wrapf(err, "%s six-bar assembly at input angle %v", s.mech.Subtype(), inputAngle)
	}
	s.logger.Debugw("six-bar assembly solved",
		"subtype", s.mech.Subtype(),
		"iterations", result.Iterations,
		"residual", result.TotalError,
	)

	index := make(map[string]int, len(joints))
	for i, joint := range joints {
		index[joint.Name] = i
	}
	linkAngles := make(map[string]float64, len(links))
	for _, link := range links {
		span := result.Points[index[link.EndJoint]].Sub(result.Points[index[link.StartJoint]])
		linkAngles[link.Name] = math.Atan2(span.Y, span.X)
	}

	return &SixBarState{
		InputAngle:     inputAngle,
		JointPositions: result.Points,
		LinkAngles:     linkAngles,
		Residual:       result.TotalError,
		Iterations:     result.Iterations,
	}, nil
}

// seedChain spreads the undriven joints along the line from the driven pin
// to the far ground pivot, zigzagged off the line so the iteration does not
// start from a folded chain.
func seedChain(points []r3.Vector, links []mechanism.Link, pin, far r3.Vector) {
	chain := links[2:]
	total := 0.0
	for _, link := range chain {
		total += link.Length
	}
	span := far.Sub(pin)
	dist := span.Norm()
	dir := r3.Vector{X: 1}
	if dist > 1e-9 {
		dir = span.Mul(1 / dist)
	}
	perp := r3.Vector{X: -dir.Y, Y: dir.X}

	cum := 0.0
	for i := 0; i < len(chain)-1; i++ {
		cum += chain[i].Length
		side := 1.0
		if i%2 == 1 {
			side = -1
		}
		base := pin.Add(dir.Mul(dist * cum / total))
		points[2+i] = base.Add(perp.Mul(0.25 * chain[i].Length * side))
	}
}
