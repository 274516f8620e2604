// Package constraint provides a general iterative solver for systems of
// geometric constraints over arbitrary point sets.
//
// It is the fallback path for linkage topologies without a closed-form
// derivation and a refinement/validation step for positions produced
// elsewhere. Constraints are accumulated into a System; the System holds no
// point state between calls. Points are passed in and returned, never owned,
// so one System may be re-solved every animation frame as its points move.
package constraint

import (
	"github.com/golang/geo/r3"
)

// Kind identifies what geometric quantity a constraint governs.
type Kind string

// The constraint kinds understood by this package. Only distance, angle,
// and position are solvable today; the others are recognized so configs can
// round-trip them, and enabling one fails a solve with ErrUnsupported.
const (
	Distance    Kind = "distance"
	Angle       Kind = "angle"
	Position    Kind = "position"
	Orientation Kind = "orientation"
	Path        Kind = "path"
	Velocity    Kind = "velocity"
	Collision   Kind = "collision"
)

func solvable(kind Kind) bool {
	switch kind {
	case Distance, Angle, Position:
		return true
	default:
		return false
	}
}

// Constraint is one geometric requirement over points in a flat point list.
// Points holds indices into the list passed to Solve: two for distance
// (endpoints), three for angle (ray end, vertex, ray end), one for position.
// Target carries the scalar goal (length, or angle in radians) and
// TargetPosition the positional goal.
type Constraint struct {
	ID             int
	Kind           Kind
	Points         []int
	Target         float64
	TargetPosition r3.Vector
	Weight         float64
	Enabled        bool
}

// System is an incrementally built collection of constraints. The zero
// value is usable.
type System struct {
	constraints []Constraint
	nextID      int
}

// NewSystem returns an empty constraint system.
func NewSystem() *System {
	return &System{}
}

// AddDistance appends a distance constraint between two point indices and
// returns its id. Non-positive weights fall back to 1.
func (s *System) AddDistance(pointA, pointB int, target, weight float64) int {
	return s.AddConstraint(Constraint{
		Kind:   Distance,
		Points: []int{pointA, pointB},
		Target: target,
		Weight: weight,
	})
}

// AddAngle appends an angle constraint at a vertex between the rays toward
// two other points, and returns its id. The target is in radians.
func (s *System) AddAngle(pointA, vertex, pointC int, target, weight float64) int {
	return s.AddConstraint(Constraint{
		Kind:   Angle,
		Points: []int{pointA, vertex, pointC},
		Target: target,
		Weight: weight,
	})
}

// AddPosition appends a constraint pinning one point index to a fixed
// position, and returns its id.
func (s *System) AddPosition(point int, target r3.Vector, weight float64) int {
	return s.AddConstraint(Constraint{
		Kind:           Position,
		Points:         []int{point},
		TargetPosition: target,
		Weight:         weight,
	})
}

// AddConstraint appends an arbitrary constraint record, assigning it the
// next id and enabling it. A zero or negative weight becomes the default
// weight of 1. Point indices and weights are validated at solve time, when
// the point list is known.
func (s *System) AddConstraint(c Constraint) int {
	c.ID = s.nextID
	s.nextID++
	c.Enabled = true
	if c.Weight <= 0 {
		c.Weight = 1
	}
	s.constraints = append(s.constraints, c)
	return c.ID
}

// SetEnabled toggles the constraint with the given id, reporting whether
// the id exists.
func (s *System) SetEnabled(id int, enabled bool) bool {
	for i := range s.constraints {
		if s.constraints[i].ID == id {
			s.constraints[i].Enabled = enabled
			return true
		}
	}
	return false
}

// Constraints returns a copy of the constraint records in insertion order.
func (s *System) Constraints() []Constraint {
	out := make([]Constraint, len(s.constraints))
	copy(out, s.constraints)
	return out
}

// Status summarizes a system's constraints.
type Status struct {
	Total   int
	Enabled int
	Kinds   []Kind
}

// Status reports constraint counts and the distinct kinds present, in first
// appearance order.
func (s *System) Status() Status {
	status := Status{Total: len(s.constraints)}
	seen := map[Kind]bool{}
	for _, c := range s.constraints {
		if c.Enabled {
			status.Enabled++
		}
		if !seen[c.Kind] {
			seen[c.Kind] = true
			status.Kinds = append(status.Kinds, c.Kind)
		}
	}
	return status
}
