package motion

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestRotationProfile(t *testing.T) {
	linear := RotationProfile{StartAngle: 0, EndAngle: math.Pi}
	test.That(t, linear.Angle(0), test.ShouldEqual, 0.0)
	test.That(t, linear.Angle(0.25), test.ShouldAlmostEqual, math.Pi/4)
	test.That(t, linear.Angle(1), test.ShouldEqual, math.Pi)

	eased := NewRotationProfile(0, math.Pi)
	test.That(t, eased.Smoothing, test.ShouldEqual, DefaultSmoothing)
	test.That(t, eased.Angle(0), test.ShouldEqual, 0.0)
	test.That(t, eased.Angle(1), test.ShouldEqual, math.Pi)
	// Smoothstep lags a linear ramp in the first half.
	test.That(t, eased.Angle(0.25), test.ShouldAlmostEqual, 0.15625*math.Pi)
	test.That(t, eased.Angle(0.5), test.ShouldAlmostEqual, math.Pi/2)

	backward := RotationProfile{StartAngle: math.Pi, EndAngle: 0}
	test.That(t, backward.Angle(0.25), test.ShouldAlmostEqual, 0.75*math.Pi)
}

func TestOscillationProfile(t *testing.T) {
	defaulted := NewOscillationProfile(0, 0)
	test.That(t, defaulted.Amplitude, test.ShouldEqual, math.Pi)
	test.That(t, defaulted.Frequency, test.ShouldEqual, 1.0)
	test.That(t, defaulted.Angle(0), test.ShouldEqual, 0.0)
	test.That(t, defaulted.Angle(0.25), test.ShouldAlmostEqual, math.Pi)
	test.That(t, defaulted.Angle(0.5), test.ShouldAlmostEqual, 0, 1e-12)
	test.That(t, defaulted.Angle(0.75), test.ShouldAlmostEqual, -math.Pi)

	custom := NewOscillationProfile(2, 2)
	test.That(t, custom.Angle(0.125), test.ShouldAlmostEqual, 2.0)
	test.That(t, custom.Angle(0.25), test.ShouldAlmostEqual, 0, 1e-12)
}

func TestProfileFunc(t *testing.T) {
	doubler := ProfileFunc(func(progress float64) float64 { return 2 * progress })
	test.That(t, doubler.Angle(0.3), test.ShouldAlmostEqual, 0.6)
}

func TestSamples(t *testing.T) {
	samples := Samples(RotationProfile{StartAngle: 0, EndAngle: 4}, 5)
	test.That(t, samples, test.ShouldHaveLength, 5)
	for i, want := range []float64{0, 1, 2, 3, 4} {
		test.That(t, samples[i].Frame, test.ShouldEqual, i+1)
		test.That(t, samples[i].Progress, test.ShouldAlmostEqual, float64(i)/4)
		test.That(t, samples[i].Angle, test.ShouldAlmostEqual, want)
	}

	// A single frame samples the start of the profile.
	single := Samples(RotationProfile{StartAngle: 1, EndAngle: 2}, 1)
	test.That(t, single, test.ShouldHaveLength, 1)
	test.That(t, single[0].Frame, test.ShouldEqual, 1)
	test.That(t, single[0].Progress, test.ShouldEqual, 0.0)
	test.That(t, single[0].Angle, test.ShouldEqual, 1.0)

	test.That(t, Samples(RotationProfile{}, 0), test.ShouldBeNil)
	test.That(t, Samples(RotationProfile{}, -3), test.ShouldBeNil)
}
