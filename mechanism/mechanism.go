// Package mechanism defines the planar linkage data model: joints, links,
// and the named parameter sets describing each supported mechanism type.
//
// A mechanism is constructed once per design with fixed link lengths and is
// immutable for its lifetime. Solvers in the kinematics package consume a
// mechanism and a driving scalar and produce fresh position results; no pose
// state is ever stored on the mechanism itself.
package mechanism

import (
	"math"

	"github.com/golang/geo/r3"
)

// Type identifies a supported mechanism topology.
type Type string

// The set of mechanism types understood by New. Only four-bar, slider-crank,
// and six-bar have constructors today; the remaining types are recognized so
// configs naming them fail with a useful error rather than a parse failure.
const (
	TypeFourBar          Type = "four_bar"
	TypeSliderCrank      Type = "slider_crank"
	TypeSixBarWatt       Type = "six_bar_watt"
	TypeSixBarStephenson Type = "six_bar_stephenson"
	TypeScotchYoke       Type = "scotch_yoke"
	TypeGenevaDrive      Type = "geneva_drive"
	TypeCamFollower      Type = "cam_follower"
)

// JointType distinguishes how a joint is allowed to move.
type JointType string

// Supported joint types. Fixed joints anchor the mechanism and never move
// after construction; revolute and prismatic joint positions are recomputed
// on every solve call.
const (
	FixedJoint     JointType = "fixed"
	RevoluteJoint  JointType = "revolute"
	PrismaticJoint JointType = "prismatic"
)

// Limit represents the allowed travel range of a joint in radians.
type Limit struct {
	Min float64
	Max float64
}

// Joint is a single connection point within a mechanism.
type Joint struct {
	Name     string
	Position r3.Vector
	Type     JointType
	Axis     r3.Vector
	Limit    Limit
}

// Link is a rigid member joining two joints by name. Length is set at
// mechanism construction and never changes. Mass and inertia are carried
// for dynamics consumers; the kinematics solvers do not read them.
type Link struct {
	Name       string
	Length     float64
	StartJoint string
	EndJoint   string
	Mass       float64
	Inertia    float64
}

// Mechanism is implemented by every linkage topology in this package.
type Mechanism interface {
	// Type reports which topology this mechanism is.
	Type() Type

	// Joints returns the joint definitions in mechanism order. Fixed joint
	// positions are final; movable joint positions are placeholders until a
	// solver computes them.
	Joints() []Joint

	// Links returns the rigid link definitions in mechanism order.
	Links() []Link
}

// Params carries the named lengths used by New to construct a mechanism.
// Only the fields relevant to the requested type are read.
type Params struct {
	// Four-bar lengths.
	GroundLength  float64
	InputLength   float64
	CouplerLength float64
	OutputLength  float64

	// Slider-crank lengths.
	CrankLength         float64
	ConnectingRodLength float64
}

// New constructs a mechanism of the given type from its named parameters.
func New(mechType Type, params Params) (Mechanism, error) {
	switch mechType {
	case TypeFourBar:
		return NewFourBar(params.GroundLength, params.InputLength, params.CouplerLength, params.OutputLength)
	case TypeSliderCrank:
		return NewSliderCrank(params.CrankLength, params.ConnectingRodLength)
	case TypeSixBarWatt:
		return NewSixBar(Watt)
	case TypeSixBarStephenson:
		return NewSixBar(Stephenson)
	case TypeScotchYoke, TypeGenevaDrive, TypeCamFollower:
		return nil, NewUnsupportedTypeError(mechType)
	default:
		return nil, NewUnknownTypeError(mechType)
	}
}

func defaultJoint(name string, jointType JointType) Joint {
	return Joint{
		Name:  name,
		Type:  jointType,
		Axis:  r3.Vector{Z: 1},
		Limit: Limit{Min: -math.Pi, Max: math.Pi},
	}
}

func defaultLink(name string, length float64, start, end string) Link {
	return Link{
		Name:       name,
		Length:     length,
		StartJoint: start,
		EndJoint:   end,
		Mass:       1,
		Inertia:    1,
	}
}

// validateLengths rejects non-positive or non-finite link lengths. Malformed
// geometry is fatal at construction rather than deferred to a per-frame
// solve failure.
func validateLengths(named map[string]float64) error {
	for name, length := range named {
		if math.IsNaN(length) || math.IsInf(length, 0) || length <= 0 {
			return NewInvalidLengthError(name, length)
		}
	}
	return nil
}

// validateTopology checks that every link references joints that exist.
func validateTopology(joints []Joint, links []Link) error {
	names := make(map[string]bool, len(joints))
	for _, joint := range joints {
		if names[joint.Name] {
			return NewDuplicateJointError(joint.Name)
		}
		names[joint.Name] = true
	}
	for _, link := range links {
		if !names[link.StartJoint] {
			return NewUnknownJointError(link.Name, link.StartJoint)
		}
		if !names[link.EndJoint] {
			return NewUnknownJointError(link.Name, link.EndJoint)
		}
	}
	return nil
}
