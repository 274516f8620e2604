package constraint

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/edaniels/golog"
	"go.viam.com/test"
)

func TestDefaultSolverConfig(t *testing.T) {
	cfg := DefaultSolverConfig()
	test.That(t, cfg.MaxIterations, test.ShouldEqual, 100)
	test.That(t, cfg.Tolerance, test.ShouldEqual, 1e-6)
	test.That(t, cfg.DampingFactor, test.ShouldEqual, 0.5)
	test.That(t, cfg.StepSize, test.ShouldEqual, 3.0)
	test.That(t, cfg.UseNumericalGradients, test.ShouldBeFalse)
	test.That(t, cfg.AdaptiveStepSize, test.ShouldBeFalse)
}

func TestSolverConfigFromReader(t *testing.T) {
	cfg, err := SolverConfigFromReader(strings.NewReader(`{"max_iterations": 250, "adaptive_step_size": true}`))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.MaxIterations, test.ShouldEqual, 250)
	test.That(t, cfg.AdaptiveStepSize, test.ShouldBeTrue)
	test.That(t, cfg.Tolerance, test.ShouldEqual, DefaultTolerance)
	test.That(t, cfg.DampingFactor, test.ShouldEqual, DefaultDampingFactor)

	for _, bad := range []string{
		`{"damping_factor": 1.5}`,
		`{"max_iterations": -3}`,
		`{"convergence_tolerance": -1e-6}`,
		`{"step_size": -2}`,
		`not json`,
	} {
		_, err = SolverConfigFromReader(strings.NewReader(bad))
		test.That(t, err, test.ShouldNotBeNil)
	}
}

func TestReadSolverConfig(t *testing.T) {
	logger := golog.NewTestLogger(t)
	dir := t.TempDir()

	path := filepath.Join(dir, "solver.json")
	test.That(t, os.WriteFile(path, []byte(`{"step_size": 2.5}`), 0o600), test.ShouldBeNil)
	cfg, err := ReadSolverConfig(path, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.StepSize, test.ShouldEqual, 2.5)
	test.That(t, cfg.MaxIterations, test.ShouldEqual, DefaultMaxIterations)

	// Environment variables substitute before parsing.
	t.Setenv("SOLVER_MAX_ITERATIONS", "250")
	path = filepath.Join(dir, "solver_env.json")
	test.That(t, os.WriteFile(path, []byte(`{"max_iterations": ${SOLVER_MAX_ITERATIONS}}`), 0o600), test.ShouldBeNil)
	cfg, err = ReadSolverConfig(path, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.MaxIterations, test.ShouldEqual, 250)

	_, err = ReadSolverConfig(filepath.Join(dir, "missing.json"), logger)
	test.That(t, err, test.ShouldNotBeNil)
}
