package kinematics

import (
	"math"
	"testing"

	"github.com/edaniels/golog"
	"go.viam.com/test"

	"github.com/viam-labs/linkage/mechanism"
)

type unsupportedMech struct{}

func (unsupportedMech) Type() mechanism.Type      { return mechanism.TypeScotchYoke }
func (unsupportedMech) Joints() []mechanism.Joint { return nil }
func (unsupportedMech) Links() []mechanism.Link   { return nil }

func TestSolverFor(t *testing.T) {
	logger := golog.NewTestLogger(t)

	fb, err := mechanism.NewFourBar(10, 3, 8, 5)
	test.That(t, err, test.ShouldBeNil)
	solve, err := SolverFor(fb, logger)
	test.That(t, err, test.ShouldBeNil)
	st, err := solve(math.Pi / 4)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, st.Input, test.ShouldEqual, math.Pi/4)
	test.That(t, st.JointPositions, test.ShouldHaveLength, 4)
	test.That(t, st.LinkAngles, test.ShouldHaveLength, 3)

	sc, err := mechanism.NewSliderCrank(2, 6)
	test.That(t, err, test.ShouldBeNil)
	solve, err = SolverFor(sc, logger)
	test.That(t, err, test.ShouldBeNil)
	st, err = solve(math.Pi / 2)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, st.JointPositions, test.ShouldHaveLength, 3)

	sb, err := mechanism.NewSixBar(mechanism.Watt)
	test.That(t, err, test.ShouldBeNil)
	solve, err = SolverFor(sb, logger)
	test.That(t, err, test.ShouldBeNil)
	st, err = solve(0.5)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, st.JointPositions, test.ShouldHaveLength, 6)
	test.That(t, st.LinkAngles, test.ShouldHaveLength, 6)

	_, err = SolverFor(unsupportedMech{}, logger)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestSolverForPropagatesErrors(t *testing.T) {
	fb, err := mechanism.NewFourBar(10, 3, 2, 2)
	test.That(t, err, test.ShouldBeNil)
	solve, err := SolverFor(fb, golog.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)

	_, err = solve(math.Pi / 4)
	test.That(t, err, test.ShouldWrap, ErrUnreachable)
}
