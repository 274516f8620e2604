package mechanism

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// SixBarSubtype selects between the two canonical six-bar topologies.
type SixBarSubtype string

// Watt six-bars chain two four-bar loops through a shared ternary link;
// Stephenson six-bars separate the ternary links.
const (
	Watt       SixBarSubtype = "watt"
	Stephenson SixBarSubtype = "stephenson"
)

// SixBar is a six-link planar linkage in either Watt or Stephenson form
// with canonical proportions. No closed-form position solution is shipped
// for it; see the kinematics package for the contract.
type SixBar struct {
	subtype SixBarSubtype
	joints  []Joint
	links   []Link
}

// NewSixBar constructs a six-bar linkage of the given subtype with its
// canonical link lengths.
func NewSixBar(subtype SixBarSubtype) (*SixBar, error) {
	var groundLength float64
	var lengths []float64
	switch subtype {
	case Watt:
		groundLength = 10
		lengths = []float64{3, 8, 6, 4, 7}
	case Stephenson:
		groundLength = 12
		lengths = []float64{3, 9, 5, 7, 6}
	default:
		return nil, errors.Errorf("unknown six-bar subtype %q", subtype)
	}

	ground1 := defaultJoint("ground_1", FixedJoint)
	ground2 := defaultJoint("ground_2", FixedJoint)
	ground2.Position = r3.Vector{X: groundLength}
	joints := []Joint{
		ground1,
		defaultJoint("joint_1", RevoluteJoint),
		defaultJoint("joint_2", RevoluteJoint),
		defaultJoint("joint_3", RevoluteJoint),
		defaultJoint("joint_4", RevoluteJoint),
		ground2,
	}
	links := []Link{
		defaultLink("ground", groundLength, "ground_1", "ground_2"),
		defaultLink("link_1", lengths[0], "ground_1", "joint_1"),
		defaultLink("link_2", lengths[1], "joint_1", "joint_2"),
		defaultLink("link_3", lengths[2], "joint_2", "joint_3"),
		defaultLink("link_4", lengths[3], "joint_3", "joint_4"),
		defaultLink("link_5", lengths[4], "joint_4", "ground_2"),
	}

	sb := &SixBar{subtype: subtype, joints: joints, links: links}
	if err := validateTopology(sb.joints, sb.links); err != nil {
		return nil, err
	}
	return sb, nil
}

// Type returns the six-bar type matching this mechanism's subtype.
func (sb *SixBar) Type() Type {
	if sb.subtype == Stephenson {
		return TypeSixBarStephenson
	}
	return TypeSixBarWatt
}

// Subtype returns whether this is a Watt or Stephenson six-bar.
func (sb *SixBar) Subtype() SixBarSubtype {
	return sb.subtype
}

// Joints returns copies of the six joint definitions, grounds first and
// last.
func (sb *SixBar) Joints() []Joint {
	joints := make([]Joint, len(sb.joints))
	copy(joints, sb.joints)
	return joints
}

// Links returns copies of the six link definitions, ground first.
func (sb *SixBar) Links() []Link {
	links := make([]Link, len(sb.links))
	copy(links, sb.links)
	return links
}
