package kinematics

import (
	"math"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/viam-labs/linkage/mechanism"
	"github.com/viam-labs/linkage/utils"
)

// SliderCrankState is one solved pose of a slider-crank. JointPositions are
// ordered crank_center, crank_pin, slider; the slider travels along the x
// axis at y=0.
type SliderCrankState struct {
	CrankAngle         float64
	SliderPosition     float64
	SliderDisplacement float64
	ConnectingRodAngle float64
	CrankPin           r3.Vector
	JointPositions     []r3.Vector
}

func (st *SliderCrankState) state() *State {
	return &State{
		Input:          st.CrankAngle,
		JointPositions: st.JointPositions,
		LinkAngles: map[string]float64{
			"crank":          st.CrankAngle,
			"connecting_rod": st.ConnectingRodAngle,
		},
	}
}

// SliderCrankVelocities holds the closed-form velocity relations for a
// slider-crank pose.
type SliderCrankVelocities struct {
	CrankVelocity      float64
	SliderVelocity     float64
	RodAngularVelocity float64
}

// SliderCrankSolver solves slider-crank poses in closed form.
type SliderCrankSolver struct {
	mech   *mechanism.SliderCrank
	logger golog.Logger
}

// NewSliderCrankSolver wraps a slider-crank mechanism in a position and
// velocity solver. The logger may be nil, in which case the global logger
// is used.
func NewSliderCrankSolver(mech *mechanism.SliderCrank, logger golog.Logger) *SliderCrankSolver {
	if logger == nil {
		logger = golog.Global()
	}
	logger.Debugf(
		"slider-crank solver created: crank=%v rod=%v",
		mech.CrankLength(), mech.ConnectingRodLength(),
	)
	return &SliderCrankSolver{mech: mech, logger: logger}
}

// SolvePositions computes the pose at the given crank angle in radians. The
// solve fails with ErrUnreachable when the connecting rod is too short to
// span from the crank pin back to the slider axis.
func (s *SliderCrankSolver) SolvePositions(crankAngle float64) (*SliderCrankState, error) {
	crankCenter := r3.Vector{}
	crankPin := r3.Vector{
		X: s.mech.CrankLength() * math.Cos(crankAngle),
		Y: s.mech.CrankLength() * math.Sin(crankAngle),
	}

	reach := utils.Square(s.mech.ConnectingRodLength()) - utils.Square(crankPin.Y)
	if reach < 0 {
		return nil, errors.Wrapf(ErrUnreachable,
			"connecting rod %v cannot span crank pin height %v at crank angle %v",
			s.mech.ConnectingRodLength(), crankPin.Y, crankAngle)
	}

	sliderX := crankPin.X + math.Sqrt(reach)
	slider := r3.Vector{X: sliderX}
	rodVec := slider.Sub(crankPin)

	return &SliderCrankState{
		CrankAngle:         crankAngle,
		SliderPosition:     sliderX,
		SliderDisplacement: sliderX - s.mech.CrankLength(),
		ConnectingRodAngle: math.Atan2(rodVec.Y, rodVec.X),
		CrankPin:           crankPin,
		JointPositions:     []r3.Vector{crankCenter, crankPin, slider},
	}, nil
}

// SolveVelocities computes the slider linear velocity and connecting rod
// angular velocity at the given crank angle and angular velocity by
// differentiating the position relation.
func (s *SliderCrankSolver) SolveVelocities(crankAngle, crankVelocity float64) (*SliderCrankVelocities, error) {
	if _, err := s.SolvePositions(crankAngle); err != nil {
		return nil, err
	}

	r := s.mech.CrankLength()
	l := s.mech.ConnectingRodLength()
	sinTheta := math.Sin(crankAngle)
	cosTheta := math.Cos(crankAngle)

	denom := math.Sqrt(utils.Square(l) - utils.Square(r)*utils.Square(sinTheta))
	if denom < singularEps {
		return nil, errors.Wrapf(ErrSingular,
			"connecting rod perpendicular to slider axis at crank angle %v", crankAngle)
	}

	return &SliderCrankVelocities{
		CrankVelocity:      crankVelocity,
		SliderVelocity:     r * crankVelocity * (sinTheta + r*sinTheta*cosTheta/denom),
		RodAngularVelocity: -r * crankVelocity * cosTheta / denom,
	}, nil
}
