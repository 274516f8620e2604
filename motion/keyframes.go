package motion

import "math"

const (
	// Interior frames whose angular second difference exceeds this are
	// worth keyframing.
	accelerationThreshold = 0.01

	// DefaultMaxKeyFrames caps how many samples SelectKeyFrames returns
	// when the caller does not.
	DefaultMaxKeyFrames = 100
)

// SelectKeyFrames picks the samples worth exporting as keyframes: always
// the first and last, plus interior frames where the angular acceleration
// crosses the selection threshold, thinned evenly when more than maxFrames
// qualify. A non-positive maxFrames means DefaultMaxKeyFrames. Fewer than
// three samples are returned as-is.
func SelectKeyFrames(samples []Sample, maxFrames int) []Sample {
	if maxFrames <= 0 {
		maxFrames = DefaultMaxKeyFrames
	}
	if len(samples) < 3 {
		out := make([]Sample, len(samples))
		copy(out, samples)
		return out
	}

	indices := []int{0}
	for i := 1; i < len(samples)-1; i++ {
		accel := math.Abs((samples[i+1].Angle - samples[i].Angle) - (samples[i].Angle - samples[i-1].Angle))
		if accel > accelerationThreshold {
			indices = append(indices, i)
		}
	}
	indices = append(indices, len(samples)-1)

	if len(indices) > maxFrames {
		step := len(indices) / maxFrames
		thinned := make([]int, 0, maxFrames+1)
		for i := 0; i < len(indices); i += step {
			thinned = append(thinned, indices[i])
		}
		indices = thinned
	}

	out := make([]Sample, 0, len(indices))
	for _, idx := range indices {
		out = append(out, samples[idx])
	}
	return out
}
