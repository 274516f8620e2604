// Package motion builds driving-angle sequences for animating mechanisms
// and selects keyframes from the solved frames. A caller-owned Cache
// memoizes solved poses across sweeps.
package motion

import "math"

// DefaultSmoothing is the rotation easing applied by NewRotationProfile.
const DefaultSmoothing = 0.8

// Profile maps animation progress in [0, 1] to a driving angle in radians.
type Profile interface {
	Angle(progress float64) float64
}

// ProfileFunc adapts a plain function to the Profile interface.
type ProfileFunc func(progress float64) float64

// Angle calls fn.
func (fn ProfileFunc) Angle(progress float64) float64 {
	return fn(progress)
}

// RotationProfile sweeps from StartAngle to EndAngle. Any Smoothing above
// zero replaces the linear ramp with smoothstep easing, giving zero angular
// velocity at both ends; the magnitude is not otherwise used. A zero-value
// Smoothing sweeps linearly.
type RotationProfile struct {
	StartAngle float64
	EndAngle   float64
	Smoothing  float64
}

// NewRotationProfile returns a rotation sweep with the default easing.
func NewRotationProfile(startAngle, endAngle float64) RotationProfile {
	return RotationProfile{StartAngle: startAngle, EndAngle: endAngle, Smoothing: DefaultSmoothing}
}

// Angle returns the swept angle at the given progress.
func (p RotationProfile) Angle(progress float64) float64 {
	if p.Smoothing > 0 {
		progress = progress * progress * (3 - 2*progress)
	}
	return p.StartAngle + progress*(p.EndAngle-p.StartAngle)
}

// OscillationProfile swings sinusoidally about zero.
type OscillationProfile struct {
	Amplitude float64
	Frequency float64
}

// NewOscillationProfile returns an oscillation with defaults filled in:
// amplitude pi when zero, frequency 1 when zero or negative.
func NewOscillationProfile(amplitude, frequency float64) OscillationProfile {
	if amplitude == 0 {
		amplitude = math.Pi
	}
	if frequency <= 0 {
		frequency = 1
	}
	return OscillationProfile{Amplitude: amplitude, Frequency: frequency}
}

// Angle returns the oscillation angle at the given progress.
func (p OscillationProfile) Angle(progress float64) float64 {
	return p.Amplitude * math.Sin(2*math.Pi*p.Frequency*progress)
}

// Sample is one frame of a motion path. Frame numbers are 1-based.
type Sample struct {
	Frame    int
	Angle    float64
	Progress float64
}

// Samples evaluates the profile over totalFrames evenly spaced frames, with
// progress running 0 to 1 inclusive. A single frame samples progress 0, and
// a non-positive count returns nil.
func Samples(p Profile, totalFrames int) []Sample {
	if totalFrames <= 0 {
		return nil
	}
	samples := make([]Sample, 0, totalFrames)
	for i := 0; i < totalFrames; i++ {
		progress := 0.0
		if totalFrames > 1 {
			progress = float64(i) / float64(totalFrames-1)
		}
		samples = append(samples, Sample{Frame: i + 1, Angle: p.Angle(progress), Progress: progress})
	}
	return samples
}
