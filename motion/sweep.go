package motion

import (
	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/viam-labs/linkage/kinematics"
)

// FrameResult pairs one motion sample with its solved pose.
type FrameResult struct {
	Sample
	State *kinematics.State
}

// SweepResult collects the solved frames of a sweep plus how many frames
// were skipped because their pose could not be solved.
type SweepResult struct {
	Frames  []FrameResult
	Skipped int
}

// Sweep solves the pose at every sample. A frame whose solve fails is
// skipped, never aborting the sweep. The returned error combines the
// per-frame failures, each tagged with its frame number, and is nil when
// every frame solved; the SweepResult is usable either way.
func Sweep(solve kinematics.SolveFunc, samples []Sample, logger golog.Logger) (*SweepResult, error) {
	if logger == nil {
		logger = golog.Global()
	}
	result := &SweepResult{Frames: make([]FrameResult, 0, len(samples))}
	var failures error
	for _, sample := range samples {
		st, err := solve(sample.Angle)
		if err != nil {
			result.Skipped++
			failures = multierr.Append(failures, errors.Wrapf(err, "frame %d", sample.Frame))
			logger.Debugw("frame skipped", "frame", sample.Frame, "angle", sample.Angle, "error", err)
			continue
		}
		result.Frames = append(result.Frames, FrameResult{Sample: sample, State: st})
	}
	if result.Skipped > 0 {
		logger.Debugf("sweep solved %d of %d frames", len(result.Frames), len(samples))
	}
	return result, failures
}
