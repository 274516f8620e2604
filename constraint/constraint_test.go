package constraint

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestSystemBuilding(t *testing.T) {
	sys := NewSystem()
	id0 := sys.AddDistance(0, 1, 5, 2)
	id1 := sys.AddAngle(0, 1, 2, math.Pi/2, 0)
	id2 := sys.AddPosition(3, r3.Vector{X: 1}, 4)
	test.That(t, id0, test.ShouldEqual, 0)
	test.That(t, id1, test.ShouldEqual, 1)
	test.That(t, id2, test.ShouldEqual, 2)

	cons := sys.Constraints()
	test.That(t, cons, test.ShouldHaveLength, 3)
	test.That(t, cons[0].Kind, test.ShouldEqual, Distance)
	test.That(t, cons[0].Points, test.ShouldResemble, []int{0, 1})
	test.That(t, cons[0].Target, test.ShouldEqual, 5.0)
	test.That(t, cons[0].Weight, test.ShouldEqual, 2.0)
	test.That(t, cons[0].Enabled, test.ShouldBeTrue)
	// Non-positive weights fall back to 1.
	test.That(t, cons[1].Weight, test.ShouldEqual, 1.0)
	test.That(t, cons[1].Points, test.ShouldResemble, []int{0, 1, 2})
	test.That(t, cons[2].TargetPosition, test.ShouldResemble, r3.Vector{X: 1})

	// Mutating the returned slice leaves the system untouched.
	cons[0].Target = 99
	test.That(t, sys.Constraints()[0].Target, test.ShouldEqual, 5.0)
}

func TestSetEnabled(t *testing.T) {
	sys := NewSystem()
	id := sys.AddDistance(0, 1, 5, 1)
	test.That(t, sys.SetEnabled(id, false), test.ShouldBeTrue)
	test.That(t, sys.Constraints()[0].Enabled, test.ShouldBeFalse)
	test.That(t, sys.SetEnabled(id, true), test.ShouldBeTrue)
	test.That(t, sys.Constraints()[0].Enabled, test.ShouldBeTrue)
	test.That(t, sys.SetEnabled(42, false), test.ShouldBeFalse)
}

func TestStatus(t *testing.T) {
	sys := NewSystem()
	sys.AddDistance(0, 1, 5, 1)
	sys.AddDistance(1, 2, 5, 1)
	angleID := sys.AddAngle(0, 1, 2, math.Pi, 1)
	sys.SetEnabled(angleID, false)

	status := sys.Status()
	test.That(t, status.Total, test.ShouldEqual, 3)
	test.That(t, status.Enabled, test.ShouldEqual, 2)
	test.That(t, status.Kinds, test.ShouldResemble, []Kind{Distance, Angle})
}
