package constraint

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/viam-labs/linkage/utils"
)

// SolveDistanceConstraint moves two points symmetrically along their
// connecting line so their separation equals target. The midpoint stays
// where it is. Coincident points have no connecting line to move along and
// return ErrDegenerate.
func SolveDistanceConstraint(a, b r3.Vector, target float64) (r3.Vector, r3.Vector, error) {
	delta := b.Sub(a)
	dist := delta.Norm()
	if dist < degenerateEps {
		return a, b, errors.Wrapf(ErrDegenerate, "points %v and %v are coincident", a, b)
	}
	dir := delta.Mul(1 / dist)
	mid := a.Add(b).Mul(0.5)
	half := dir.Mul(target / 2)
	return mid.Sub(half), mid.Add(half), nil
}

// SolveAngleConstraint rotates the two ray endpoints symmetrically about
// the vertex, in the plane the rays span, until the angle at the vertex
// equals target. The vertex and both ray lengths are preserved. Collinear
// rays span no plane, so the rotation axis falls back to z (or x when the
// rays themselves lie along z). A zero-length ray returns ErrDegenerate.
func SolveAngleConstraint(a, vertex, c r3.Vector, target float64) (r3.Vector, r3.Vector, error) {
	u := a.Sub(vertex)
	v := c.Sub(vertex)
	nu, nv := u.Norm(), v.Norm()
	if nu < degenerateEps || nv < degenerateEps {
		return a, c, errors.Wrapf(ErrDegenerate, "zero length ray at vertex %v", vertex)
	}

	axis := u.Cross(v)
	if axis.Norm() < degenerateEps {
		axis = u.Cross(r3.Vector{Z: 1})
		if axis.Norm() < degenerateEps {
			axis = u.Cross(r3.Vector{X: 1})
		}
	}
	axis = axis.Normalize()

	current := math.Acos(utils.Clamp(u.Dot(v)/(nu*nv), -1, 1))
	delta := target - current
	newA := vertex.Add(rotateAbout(u, axis, -delta/2))
	newC := vertex.Add(rotateAbout(v, axis, delta/2))
	return newA, newC, nil
}

// rotateAbout rotates v by angle radians around the unit axis using the
// Rodrigues formula.
func rotateAbout(v, axis r3.Vector, angle float64) r3.Vector {
	sin, cos := math.Sincos(angle)
	return v.Mul(cos).
		Add(axis.Cross(v).Mul(sin)).
		Add(axis.Mul(axis.Dot(v) * (1 - cos)))
}

// SolveOne applies one constraint directly, without iteration, and returns
// a new point list with only that constraint's points moved. Constraints
// already satisfied within the solver tolerance leave the points untouched.
// Other constraints sharing the moved points are ignored; use Solve to
// reconcile a whole system. Only distance and angle constraints have a
// direct form.
func (sv *Solver) SolveOne(c Constraint, points []r3.Vector) ([]r3.Vector, error) {
	c.Enabled = true
	if c.Weight <= 0 {
		c.Weight = 1
	}
	if err := validateConstraints([]Constraint{c}, len(points)); err != nil {
		return nil, err
	}

	out := clonePoints(points)
	switch c.Kind {
	case Distance:
		a, b := c.Points[0], c.Points[1]
		if math.Abs(out[a].Sub(out[b]).Norm()-c.Target) < sv.cfg.Tolerance {
			return out, nil
		}
		newA, newB, err := SolveDistanceConstraint(out[a], out[b], c.Target)
		if err != nil {
			return nil, err
		}
		out[a], out[b] = newA, newB
	case Angle:
		a, vertex, cc := c.Points[0], c.Points[1], c.Points[2]
		u := out[a].Sub(out[vertex])
		v := out[cc].Sub(out[vertex])
		nu, nv := u.Norm(), v.Norm()
		if nu > degenerateEps && nv > degenerateEps {
			current := math.Acos(utils.Clamp(u.Dot(v)/(nu*nv), -1, 1))
			if math.Abs(current-c.Target) < sv.cfg.Tolerance {
				return out, nil
			}
		}
		newA, newC, err := SolveAngleConstraint(out[a], out[vertex], out[cc], c.Target)
		if err != nil {
			return nil, err
		}
		out[a], out[cc] = newA, newC
	default:
		return nil, errors.Wrapf(ErrUnsupported, "no direct solve for kind %q", c.Kind)
	}
	return out, nil
}
