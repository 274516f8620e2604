// Package kinematics provides closed-form position and velocity solvers for
// planar linkage mechanisms.
//
// Every solver is a pure function of the mechanism's fixed geometry and one
// driving scalar per call. Solvers never retain pose state between calls and
// never perform I/O, so computing many animation frames concurrently is safe
// as long as each goroutine holds its own result values.
//
// Inability to produce a pose is reported through typed errors
// (ErrUnreachable, ErrSingular, ErrNotImplemented) rather than panics, so a
// caller sweeping hundreds of frames can skip or hold position on one bad
// frame without aborting the run.
package kinematics

import (
	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"

	"github.com/viam-labs/linkage/mechanism"
)

// State is the mechanism-agnostic view of one solved pose: the joint
// positions in mechanism order plus the named link angles in radians.
type State struct {
	Input          float64
	JointPositions []r3.Vector
	LinkAngles     map[string]float64
}

// SolveFunc computes the pose of some mechanism at one driving input value,
// an angle in radians for every topology shipped today.
type SolveFunc func(input float64) (*State, error)

// SolverFor returns a SolveFunc for any supported mechanism, hiding the
// per-topology state types from mechanism-agnostic callers. The logger may
// be nil, in which case the global logger is used.
func SolverFor(mech mechanism.Mechanism, logger golog.Logger) (SolveFunc, error) {
	if logger == nil {
		logger = golog.Global()
	}
	switch m := mech.(type) {
	case *mechanism.FourBar:
		solver := NewFourBarSolver(m, logger)
		return func(input float64) (*State, error) {
			st, err := solver.SolvePositions(input)
			if err != nil {
				return nil, err
			}
			return st.state(), nil
		}, nil
	case *mechanism.SliderCrank:
		solver := NewSliderCrankSolver(m, logger)
		return func(input float64) (*State, error) {
			st, err := solver.SolvePositions(input)
			if err != nil {
				return nil, err
			}
			return st.state(), nil
		}, nil
	case *mechanism.SixBar:
		solver, err := NewSixBarSolver(m, logger)
		if err != nil {
			return nil, err
		}
		return func(input float64) (*State, error) {
			st, err := solver.SolveApproximate(input)
			if err != nil {
				return nil, err
			}
			return st.state(), nil
		}, nil
	default:
		return nil, mechanism.NewUnsupportedTypeError(mech.Type())
	}
}
