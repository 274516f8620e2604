package constraint

import (
	"github.com/golang/geo/r3"

	"github.com/viam-labs/linkage/mechanism"
)

// Weights used for mechanism structure. Link lengths are rigid but shared
// between joints; fixed joints anchor the frame much harder so the ground
// does not drift toward the moving links.
const (
	linkWeight   = 2.0
	anchorWeight = 10.0
)

// ForMechanism builds the constraint system describing a mechanism's rigid
// structure: one distance constraint per link holding its length, and one
// position constraint per fixed joint pinning it to its frame location.
//
// The returned points are the mechanism's construction-time joint
// positions, ordered to match Joints(). Movable joints start collapsed at
// the frame origin, so callers seed them before solving, typically from a
// closed-form pose or the previous frame.
func ForMechanism(mech mechanism.Mechanism) (*System, []r3.Vector) {
	joints := mech.Joints()
	sys := NewSystem()

	points := make([]r3.Vector, len(joints))
	index := make(map[string]int, len(joints))
	for i, joint := range joints {
		points[i] = joint.Position
		index[joint.Name] = i
	}

	for _, link := range mech.Links() {
		sys.AddDistance(index[link.StartJoint], index[link.EndJoint], link.Length, linkWeight)
	}
	for i, joint := range joints {
		if joint.Type == mechanism.FixedJoint {
			sys.AddPosition(i, joint.Position, anchorWeight)
		}
	}
	return sys, points
}
