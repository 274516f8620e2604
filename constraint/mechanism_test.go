package constraint

import (
	"testing"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/viam-labs/linkage/mechanism"
)

func TestForMechanismFourBar(t *testing.T) {
	fb, err := mechanism.NewFourBar(10, 3, 8, 5)
	test.That(t, err, test.ShouldBeNil)
	sys, points := ForMechanism(fb)
	test.That(t, points, test.ShouldHaveLength, 4)
	test.That(t, points[3], test.ShouldResemble, r3.Vector{X: 10})

	status := sys.Status()
	test.That(t, status.Total, test.ShouldEqual, 6)
	test.That(t, status.Enabled, test.ShouldEqual, 6)
	test.That(t, status.Kinds, test.ShouldResemble, []Kind{Distance, Position})

	cons := sys.Constraints()
	test.That(t, cons[0].Kind, test.ShouldEqual, Distance)
	test.That(t, cons[0].Target, test.ShouldEqual, 10.0)
	test.That(t, cons[0].Weight, test.ShouldEqual, 2.0)
	test.That(t, cons[4].Kind, test.ShouldEqual, Position)
	test.That(t, cons[4].Weight, test.ShouldEqual, 10.0)
	test.That(t, cons[5].TargetPosition, test.ShouldResemble, r3.Vector{X: 10})
}

func TestForMechanismSliderCrank(t *testing.T) {
	sc, err := mechanism.NewSliderCrank(2, 6)
	test.That(t, err, test.ShouldBeNil)
	sys, points := ForMechanism(sc)
	test.That(t, points, test.ShouldHaveLength, 3)

	// Two link lengths plus the fixed crank center; the prismatic slider
	// joint is not anchored.
	status := sys.Status()
	test.That(t, status.Total, test.ShouldEqual, 3)
	test.That(t, status.Kinds, test.ShouldResemble, []Kind{Distance, Position})
}

func TestForMechanismSixBar(t *testing.T) {
	sb, err := mechanism.NewSixBar(mechanism.Watt)
	test.That(t, err, test.ShouldBeNil)
	sys, points := ForMechanism(sb)
	test.That(t, points, test.ShouldHaveLength, 6)

	status := sys.Status()
	test.That(t, status.Total, test.ShouldEqual, 8)
	test.That(t, status.Enabled, test.ShouldEqual, 8)
}

func TestSolveFourBarStructure(t *testing.T) {
	fb, err := mechanism.NewFourBar(10, 3, 8, 5)
	test.That(t, err, test.ShouldBeNil)
	sys, points := ForMechanism(fb)

	// Seed the movable joints near an assembled pose before solving.
	points[1] = r3.Vector{X: 2.1, Y: 2.1}
	points[2] = r3.Vector{X: 7.1, Y: -4.1}

	solver, err := NewSolver(nil, golog.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	result, err := solver.Solve(sys, points, 0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, result.Converged, test.ShouldBeTrue)

	got := result.Points
	test.That(t, got[0].Norm(), test.ShouldBeLessThan, 1e-5)
	test.That(t, got[3].Sub(r3.Vector{X: 10}).Norm(), test.ShouldBeLessThan, 1e-5)
	test.That(t, sideLength(got, 0, 1), test.ShouldAlmostEqual, 3, 1e-5)
	test.That(t, sideLength(got, 1, 2), test.ShouldAlmostEqual, 8, 1e-5)
	test.That(t, sideLength(got, 2, 3), test.ShouldAlmostEqual, 5, 1e-5)
	test.That(t, sideLength(got, 0, 3), test.ShouldAlmostEqual, 10, 1e-5)
}
