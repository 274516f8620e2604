package kinematics

import (
	"math"
	"sort"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/viam-labs/linkage/mechanism"
	"github.com/viam-labs/linkage/utils"
)

const (
	// Velocity denominators with magnitude below this are treated as
	// singular rather than divided through.
	singularEps = 1e-9

	// Joint separations below this leave the output triangle undefined.
	degenerateEps = 1e-12
)

// GrashofType classifies the rotation capability of a four-bar linkage.
type GrashofType string

// Grashof classifications. Which named link is shortest decides the type
// when the Grashof inequality holds.
const (
	CrankRocker  GrashofType = "Crank-Rocker"
	DoubleCrank  GrashofType = "Double-Crank"
	DoubleRocker GrashofType = "Double-Rocker"
	TripleRocker GrashofType = "Triple-Rocker"
)

// GrashofResult reports the Grashof condition test for a four-bar linkage.
type GrashofResult struct {
	IsGrashof  bool
	Type       GrashofType
	MotionType string
	GrashofSum float64
	OtherSum   float64
}

// FourBarState is one solved pose of a four-bar linkage. JointPositions are
// ordered ground_start, input_joint, coupler_joint, ground_end.
type FourBarState struct {
	InputAngle     float64
	OutputAngle    float64
	CouplerAngle   float64
	JointPositions []r3.Vector
	LinkAngles     map[string]float64
}

func (st *FourBarState) state() *State {
	return &State{Input: st.InputAngle, JointPositions: st.JointPositions, LinkAngles: st.LinkAngles}
}

// FourBarVelocities holds the approximate instantaneous velocity relations
// for a four-bar pose. Angular velocities are in rad/s.
type FourBarVelocities struct {
	InputVelocity          float64
	OutputVelocity         float64
	VelocityRatio          float64
	CouplerLinearVelocity  float64
	CouplerAngularVelocity float64
}

// FourBarSolver solves four-bar linkage poses in closed form via circle
// intersection on the coupler/output triangle.
type FourBarSolver struct {
	mech   *mechanism.FourBar
	logger golog.Logger
}

// NewFourBarSolver wraps a four-bar mechanism in a position and velocity
// solver. The logger may be nil, in which case the global logger is used.
func NewFourBarSolver(mech *mechanism.FourBar, logger golog.Logger) *FourBarSolver {
	if logger == nil {
		logger = golog.Global()
	}
	logger.Debugf(
		"four-bar solver created: ground=%v input=%v coupler=%v output=%v",
		mech.GroundLength(), mech.InputLength(), mech.CouplerLength(), mech.OutputLength(),
	)
	return &FourBarSolver{mech: mech, logger: logger}
}

// CheckGrashofCondition tests whether the shortest plus longest link lengths
// stay within the sum of the other two, and classifies the linkage's motion
// by which named link is shortest. Ties resolve in favor of the ground link.
func (s *FourBarSolver) CheckGrashofCondition() GrashofResult {
	lengths := []float64{
		s.mech.GroundLength(),
		s.mech.InputLength(),
		s.mech.CouplerLength(),
		s.mech.OutputLength(),
	}
	sort.Float64s(lengths)
	shortest, longest := lengths[0], lengths[3]

	result := GrashofResult{
		GrashofSum: shortest + longest,
		OtherSum:   lengths[1] + lengths[2],
	}
	if result.GrashofSum > result.OtherSum {
		result.Type = TripleRocker
		result.MotionType = "All links oscillate"
		return result
	}

	result.IsGrashof = true
	switch {
	case shortest == s.mech.GroundLength():
		result.Type = CrankRocker
		result.MotionType = "One complete rotation possible"
	case shortest == s.mech.InputLength() || shortest == s.mech.OutputLength():
		result.Type = DoubleCrank
		result.MotionType = "Both cranks can rotate completely"
	default:
		result.Type = DoubleRocker
		result.MotionType = "Both links oscillate"
	}
	return result
}

// SolvePositions computes the pose at the given input angle in radians.
//
// Every reachable input angle admits two assembly branches; this entry point
// always selects the branch placing the output joint counterclockwise of the
// diagonal. That fixed choice can jump between assemblies across a sweep;
// callers needing frame-to-frame continuity should use SolvePositionsNear.
func (s *FourBarSolver) SolvePositions(inputAngle float64) (*FourBarState, error) {
	plus, _, err := s.outputCandidates(inputAngle)
	if err != nil {
		return nil, err
	}
	return s.assemble(inputAngle, plus), nil
}

// SolvePositionsNear computes the pose at the given input angle, selecting
// whichever assembly branch keeps the output angle closest to the previous
// state's. A nil previous behaves like SolvePositions.
func (s *FourBarSolver) SolvePositionsNear(inputAngle float64, previous *FourBarState) (*FourBarState, error) {
	if previous == nil {
		return s.SolvePositions(inputAngle)
	}
	plus, minus, err := s.outputCandidates(inputAngle)
	if err != nil {
		return nil, err
	}
	chosen := plus
	if utils.AngleDiffRad(minus, previous.OutputAngle) < utils.AngleDiffRad(plus, previous.OutputAngle) {
		chosen = minus
	}
	return s.assemble(inputAngle, chosen), nil
}

// SolveVelocities computes the instantaneous velocity relations at the given
// input angle and angular velocity. The relation used is the sine ratio of
// link angle differences, an approximation rather than a full vector-loop
// velocity analysis.
func (s *FourBarSolver) SolveVelocities(inputAngle, inputVelocity float64) (*FourBarVelocities, error) {
	st, err := s.SolvePositions(inputAngle)
	if err != nil {
		return nil, err
	}

	denom := s.mech.OutputLength() * math.Sin(st.OutputAngle-st.CouplerAngle)
	if math.Abs(denom) < singularEps {
		return nil, errors.Wrapf(ErrSingular, "output and coupler links collinear at input angle %v", inputAngle)
	}

	ratio := s.mech.InputLength() * math.Sin(st.CouplerAngle-st.InputAngle) / denom
	return &FourBarVelocities{
		InputVelocity:          inputVelocity,
		OutputVelocity:         inputVelocity * ratio,
		VelocityRatio:          ratio,
		CouplerLinearVelocity:  inputVelocity * s.mech.InputLength(),
		CouplerAngularVelocity: inputVelocity,
	}, nil
}

// outputCandidates returns the two candidate output link angles at the given
// input angle, or an error if the coupler and output cannot close the loop.
func (s *FourBarSolver) outputCandidates(inputAngle float64) (plus, minus float64, err error) {
	groundEnd := r3.Vector{X: s.mech.GroundLength()}
	inputJoint := r3.Vector{
		X: s.mech.InputLength() * math.Cos(inputAngle),
		Y: s.mech.InputLength() * math.Sin(inputAngle),
	}

	diag := inputJoint.Sub(groundEnd)
	separation := diag.Norm()
	if reach := s.mech.CouplerLength() + s.mech.OutputLength(); separation > reach {
		return 0, 0, errors.Wrapf(ErrUnreachable,
			"links cannot reach: joint separation %v exceeds coupler+output %v", separation, reach)
	}
	if overlap := math.Abs(s.mech.CouplerLength() - s.mech.OutputLength()); separation < overlap {
		return 0, 0, errors.Wrapf(ErrUnreachable,
			"links overlap: joint separation %v below |coupler-output| %v", separation, overlap)
	}
	if separation < degenerateEps {
		return 0, 0, errors.Wrap(ErrUnreachable, "input joint coincides with ground end")
	}

	gamma := math.Atan2(diag.Y, diag.X)
	cosAlpha := utils.Square(s.mech.OutputLength()) + utils.Square(separation) - utils.Square(s.mech.CouplerLength())
	cosAlpha /= 2 * s.mech.OutputLength() * separation
	alpha := math.Acos(utils.Clamp(cosAlpha, -1, 1))
	return gamma + alpha, gamma - alpha, nil
}

func (s *FourBarSolver) assemble(inputAngle, outputAngle float64) *FourBarState {
	groundStart := r3.Vector{}
	groundEnd := r3.Vector{X: s.mech.GroundLength()}
	inputJoint := r3.Vector{
		X: s.mech.InputLength() * math.Cos(inputAngle),
		Y: s.mech.InputLength() * math.Sin(inputAngle),
	}
	couplerJoint := groundEnd.Add(r3.Vector{
		X: s.mech.OutputLength() * math.Cos(outputAngle),
		Y: s.mech.OutputLength() * math.Sin(outputAngle),
	})

	couplerVec := couplerJoint.Sub(inputJoint)
	couplerAngle := math.Atan2(couplerVec.Y, couplerVec.X)

	return &FourBarState{
		InputAngle:     inputAngle,
		OutputAngle:    outputAngle,
		CouplerAngle:   couplerAngle,
		JointPositions: []r3.Vector{groundStart, inputJoint, couplerJoint, groundEnd},
		LinkAngles: map[string]float64{
			"input":   inputAngle,
			"coupler": couplerAngle,
			"output":  outputAngle,
		},
	}
}
