package constraint

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/viam-labs/linkage/utils"
)

func TestSolveDistanceConstraintDirect(t *testing.T) {
	a, b, err := SolveDistanceConstraint(r3.Vector{}, r3.Vector{X: 10}, 4)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, a.X, test.ShouldAlmostEqual, 3)
	test.That(t, b.X, test.ShouldAlmostEqual, 7)
	test.That(t, a.Y, test.ShouldAlmostEqual, 0)
	test.That(t, b.Y, test.ShouldAlmostEqual, 0)

	// A satisfied constraint leaves both points where they were.
	a, b, err = SolveDistanceConstraint(r3.Vector{X: 1, Y: 2}, r3.Vector{X: 4, Y: 6}, 5)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, a.Sub(r3.Vector{X: 1, Y: 2}).Norm(), test.ShouldBeLessThan, 1e-12)
	test.That(t, b.Sub(r3.Vector{X: 4, Y: 6}).Norm(), test.ShouldBeLessThan, 1e-12)

	_, _, err = SolveDistanceConstraint(r3.Vector{X: 1}, r3.Vector{X: 1}, 4)
	test.That(t, err, test.ShouldWrap, ErrDegenerate)
}

func TestSolveAngleConstraintDirect(t *testing.T) {
	a, c, err := SolveAngleConstraint(r3.Vector{X: 1}, r3.Vector{}, r3.Vector{Y: 1}, math.Pi/3)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, a.X, test.ShouldAlmostEqual, 0.9659258262890683, 1e-9)
	test.That(t, a.Y, test.ShouldAlmostEqual, 0.25881904510252074, 1e-9)
	test.That(t, c.X, test.ShouldAlmostEqual, 0.25881904510252074, 1e-9)
	test.That(t, c.Y, test.ShouldAlmostEqual, 0.9659258262890683, 1e-9)

	// Collinear rays rotate about the fallback axis and still hit the
	// target with both ray lengths preserved.
	a, c, err = SolveAngleConstraint(r3.Vector{X: 1}, r3.Vector{}, r3.Vector{X: 2}, math.Pi/2)
	test.That(t, err, test.ShouldBeNil)
	angle := math.Acos(utils.Clamp(a.Dot(c)/(a.Norm()*c.Norm()), -1, 1))
	test.That(t, angle, test.ShouldAlmostEqual, math.Pi/2, 1e-9)
	test.That(t, a.Norm(), test.ShouldAlmostEqual, 1, 1e-9)
	test.That(t, c.Norm(), test.ShouldAlmostEqual, 2, 1e-9)

	// Rays along z fall back to the x axis for the rotation plane.
	a, c, err = SolveAngleConstraint(r3.Vector{Z: 1}, r3.Vector{}, r3.Vector{Z: 3}, math.Pi/4)
	test.That(t, err, test.ShouldBeNil)
	angle = math.Acos(utils.Clamp(a.Dot(c)/(a.Norm()*c.Norm()), -1, 1))
	test.That(t, angle, test.ShouldAlmostEqual, math.Pi/4, 1e-9)

	_, _, err = SolveAngleConstraint(r3.Vector{}, r3.Vector{}, r3.Vector{X: 1}, math.Pi/2)
	test.That(t, err, test.ShouldWrap, ErrDegenerate)
}

func TestSolveOne(t *testing.T) {
	solver := newTestSolver(t, nil)
	points := []r3.Vector{{}, {X: 10}}

	out, err := solver.SolveOne(Constraint{Kind: Distance, Points: []int{0, 1}, Target: 4}, points)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out[0].X, test.ShouldAlmostEqual, 3)
	test.That(t, out[1].X, test.ShouldAlmostEqual, 7)
	// The input points are untouched.
	test.That(t, points[1].X, test.ShouldEqual, 10.0)

	// Already satisfied constraints return the points unchanged.
	out, err = solver.SolveOne(Constraint{Kind: Distance, Points: []int{0, 1}, Target: 10}, points)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldResemble, points)

	anglePoints := []r3.Vector{{X: 1}, {}, {Y: 1}}
	out, err = solver.SolveOne(Constraint{Kind: Angle, Points: []int{0, 1, 2}, Target: math.Pi / 3}, anglePoints)
	test.That(t, err, test.ShouldBeNil)
	u := out[0].Sub(out[1])
	v := out[2].Sub(out[1])
	angle := math.Acos(utils.Clamp(u.Dot(v)/(u.Norm()*v.Norm()), -1, 1))
	test.That(t, angle, test.ShouldAlmostEqual, math.Pi/3, 1e-9)
	// The vertex stays put.
	test.That(t, out[1].Norm(), test.ShouldBeLessThan, 1e-12)

	_, err = solver.SolveOne(Constraint{Kind: Position, Points: []int{0}}, points)
	test.That(t, err, test.ShouldWrap, ErrUnsupported)

	_, err = solver.SolveOne(Constraint{Kind: Distance, Points: []int{0, 9}, Target: 1}, points)
	test.That(t, err, test.ShouldWrap, ErrBadPointIndex)

	_, err = solver.SolveOne(Constraint{Kind: Distance, Points: []int{0, 0}, Target: 1}, points)
	test.That(t, err, test.ShouldWrap, ErrDegenerate)
}
