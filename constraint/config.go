package constraint

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/a8m/envsubst"
	"github.com/edaniels/golog"
	"github.com/pkg/errors"
)

// SolverConfig tunes the iterative constraint solver. The zero value of any
// numeric field means "use the default"; the boolean fields default to off.
type SolverConfig struct {
	// MaxIterations is the hard cap on solver iterations per Solve call.
	MaxIterations int `json:"max_iterations"`

	// Tolerance is the convergence threshold compared against the square
	// root of the total weighted squared error.
	Tolerance float64 `json:"convergence_tolerance"`

	// DampingFactor scales every descent step.
	DampingFactor float64 `json:"damping_factor"`

	// StepSize is the base step length applied to accumulated corrections.
	StepSize float64 `json:"step_size"`

	// UseNumericalGradients switches constraint evaluation to central
	// finite differences instead of the analytic forms. Useful for
	// cross-checking the analytic math; slower.
	UseNumericalGradients bool `json:"use_numerical_gradients"`

	// AdaptiveStepSize shrinks the step by clamp(tolerance/error, 0.1, 1)
	// while the error is far above tolerance. Steadier on systems that
	// oscillate under full steps, at the cost of much slower convergence.
	AdaptiveStepSize bool `json:"adaptive_step_size"`
}

// Default solver tuning. The step and damping pair gives an effective
// correction factor of 1.5, which projects hard enough to converge typical
// link systems in well under a hundred iterations while staying inside the
// stability bound of 2.
const (
	DefaultMaxIterations = 100
	DefaultTolerance     = 1e-6
	DefaultDampingFactor = 0.5
	DefaultStepSize      = 3.0
)

// DefaultSolverConfig returns the default solver tuning.
func DefaultSolverConfig() *SolverConfig {
	return &SolverConfig{
		MaxIterations: DefaultMaxIterations,
		Tolerance:     DefaultTolerance,
		DampingFactor: DefaultDampingFactor,
		StepSize:      DefaultStepSize,
	}
}

// ReadSolverConfig reads a solver configuration from the given JSON file,
// substituting environment variables before decoding. The logger may be
// nil, in which case the global logger is used.
func ReadSolverConfig(filePath string, logger golog.Logger) (*SolverConfig, error) {
	if logger == nil {
		logger = golog.Global()
	}
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	cfg, err := SolverConfigFromReader(bytes.NewReader(buf))
	if err != nil {
		return nil, errors.Wrapf(err, "cannot parse solver config %q", filePath)
	}
	logger.Debugw("solver config loaded",
		"path", filePath,
		"max_iterations", cfg.MaxIterations,
		"tolerance", cfg.Tolerance,
	)
	return cfg, nil
}

// SolverConfigFromReader decodes a solver configuration from JSON, fills in
// defaults for omitted fields, and validates the result.
func SolverConfigFromReader(r io.Reader) (*SolverConfig, error) {
	cfg := &SolverConfig{}
	if err := json.NewDecoder(r).Decode(cfg); err != nil {
		return nil, err
	}
	cfg.fillDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *SolverConfig) fillDefaults() {
	if cfg.MaxIterations == 0 {
		cfg.MaxIterations = DefaultMaxIterations
	}
	if cfg.Tolerance == 0 {
		cfg.Tolerance = DefaultTolerance
	}
	if cfg.DampingFactor == 0 {
		cfg.DampingFactor = DefaultDampingFactor
	}
	if cfg.StepSize == 0 {
		cfg.StepSize = DefaultStepSize
	}
}

func (cfg *SolverConfig) validate() error {
	if cfg.MaxIterations < 1 {
		return errors.Errorf("max_iterations must be at least 1, got %d", cfg.MaxIterations)
	}
	if cfg.Tolerance <= 0 {
		return errors.Errorf("convergence_tolerance must be positive, got %v", cfg.Tolerance)
	}
	if cfg.DampingFactor <= 0 || cfg.DampingFactor > 1 {
		return errors.Errorf("damping_factor must be in (0, 1], got %v", cfg.DampingFactor)
	}
	if cfg.StepSize <= 0 {
		return errors.Errorf("step_size must be positive, got %v", cfg.StepSize)
	}
	return nil
}
