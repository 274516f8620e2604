package constraint

import (
	"math"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/viam-labs/linkage/utils"
)

const (
	// Distances below this leave a constraint's adjustment direction
	// undefined.
	degenerateEps = 1e-12

	// Sine magnitudes below this mean the angle constraint's rays are
	// collinear and its gradient vanishes.
	collinearEps = 1e-9

	// Step used for central-difference gradients.
	numericalJump = 1e-6
)

// Result is the outcome of an iterative solve: the (possibly improved)
// point set, the square root of the total weighted squared error at the
// last evaluation, and the number of iterations consumed.
type Result struct {
	Converged  bool
	Points     []r3.Vector
	TotalError float64
	Iterations int
}

// Solver runs damped iterative projection over a constraint system. Each
// iteration evaluates every enabled constraint, blends the per-constraint
// corrections on each point by constraint weight, and steps all points at
// once. The iteration cap is enforced unconditionally.
type Solver struct {
	cfg    SolverConfig
	logger golog.Logger
}

// NewSolver returns a solver with the given configuration. A nil config
// means defaults; zero-valued config fields are filled from defaults. The
// logger may be nil, in which case the global logger is used.
func NewSolver(cfg *SolverConfig, logger golog.Logger) (*Solver, error) {
	if cfg == nil {
		cfg = DefaultSolverConfig()
	}
	resolved := *cfg
	resolved.fillDefaults()
	if err := resolved.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = golog.Global()
	}
	return &Solver{cfg: resolved, logger: logger}, nil
}

// Config returns the resolved solver configuration.
func (sv *Solver) Config() SolverConfig {
	return sv.cfg
}

// Solve iterates the system's enabled constraints over a copy of the given
// points. A maxIterations of zero or less means the configured cap.
//
// With no enabled constraints the input points are returned converged and
// untouched. On convergence the returned error is nil. If the iteration
// budget runs out first, the final iterate is returned along with
// ErrNoConvergence so callers can still use the best-effort points.
func (sv *Solver) Solve(sys *System, points []r3.Vector, maxIterations int) (*Result, error) {
	if maxIterations <= 0 {
		maxIterations = sv.cfg.MaxIterations
	}
	if err := validateConstraints(sys.constraints, len(points)); err != nil {
		return nil, err
	}

	enabled := 0
	for _, c := range sys.constraints {
		if c.Enabled {
			enabled++
		}
	}
	if enabled == 0 {
		return &Result{Converged: true, Points: clonePoints(points)}, nil
	}

	current := clonePoints(points)
	corrections := make([]r3.Vector, len(current))
	weightSums := make([]float64, len(current))
	errNorm := math.Inf(1)

	for iteration := 0; iteration < maxIterations; iteration++ {
		totalError := 0.0
		for i := range current {
			corrections[i] = r3.Vector{}
			weightSums[i] = 0
		}

		for _, c := range sys.constraints {
			if !c.Enabled {
				continue
			}
			residual, moves := sv.evaluate(c, current)
			totalError += c.Weight * utils.Square(residual)
			for _, move := range moves {
				corrections[move.index] = corrections[move.index].Add(move.delta.Mul(c.Weight))
				weightSums[move.index] += c.Weight
			}
		}

		errNorm = math.Sqrt(totalError)
		if errNorm < sv.cfg.Tolerance {
			sv.logger.Debugw("constraints converged", "iterations", iteration, "error", errNorm)
			return &Result{
				Converged:  true,
				Points:     current,
				TotalError: errNorm,
				Iterations: iteration,
			}, nil
		}

		step := sv.cfg.StepSize
		if sv.cfg.AdaptiveStepSize {
			step *= utils.Clamp(sv.cfg.Tolerance/(errNorm+1e-12), 0.1, 1.0)
		}
		scale := step * sv.cfg.DampingFactor
		for i := range current {
			if weightSums[i] > 0 {
				current[i] = current[i].Add(corrections[i].Mul(scale / weightSums[i]))
			}
		}
	}

	sv.logger.Warnw("constraint solver did not converge",
		"iterations", maxIterations,
		"error", errNorm,
		"tolerance", sv.cfg.Tolerance,
	)
	result := &Result{
		Points:     current,
		TotalError: errNorm,
		Iterations: maxIterations,
	}
	return result, errors.Wrapf(ErrNoConvergence,
		"after %d iterations error %v is above tolerance %v", maxIterations, errNorm, sv.cfg.Tolerance)
}

// pointCorrection is the displacement one constraint wants to apply to one
// point. The delta alone would satisfy the constraint exactly; the solve
// loop blends deltas from all constraints sharing the point.
type pointCorrection struct {
	index int
	delta r3.Vector
}

func (sv *Solver) evaluate(c Constraint, points []r3.Vector) (float64, []pointCorrection) {
	if sv.cfg.UseNumericalGradients {
		return evaluateNumerical(c, points)
	}
	switch c.Kind {
	case Distance:
		return evaluateDistance(c, points)
	case Angle:
		return evaluateAngle(c, points)
	case Position:
		return evaluatePosition(c, points)
	default:
		// Unsolvable kinds are rejected before the loop starts.
		return 0, nil
	}
}

func evaluateDistance(c Constraint, points []r3.Vector) (float64, []pointCorrection) {
	a, b := c.Points[0], c.Points[1]
	delta := points[a].Sub(points[b])
	dist := delta.Norm()

	// Coincident endpoints have no defined direction; separate them along
	// x so the solve stays deterministic instead of stalling.
	dir := r3.Vector{X: 1}
	if dist > degenerateEps {
		dir = delta.Mul(1 / dist)
	}

	residual := dist - c.Target
	half := dir.Mul(-residual / 2)
	return residual, []pointCorrection{
		{index: a, delta: half},
		{index: b, delta: half.Mul(-1)},
	}
}

func evaluatePosition(c Constraint, points []r3.Vector) (float64, []pointCorrection) {
	p := c.Points[0]
	delta := points[p].Sub(c.TargetPosition)
	return delta.Norm(), []pointCorrection{{index: p, delta: delta.Mul(-1)}}
}

func evaluateAngle(c Constraint, points []r3.Vector) (float64, []pointCorrection) {
	a, vertex, cc := c.Points[0], c.Points[1], c.Points[2]
	u := points[a].Sub(points[vertex])
	v := points[cc].Sub(points[vertex])
	nu, nv := u.Norm(), v.Norm()
	if nu < degenerateEps || nv < degenerateEps {
		return 0, nil
	}

	uh := u.Mul(1 / nu)
	vh := v.Mul(1 / nv)
	cosAng := utils.Clamp(uh.Dot(vh), -1, 1)
	residual := math.Acos(cosAng) - c.Target

	// Collinear rays give a vanishing angle gradient; report the residual
	// but apply no correction.
	sinAng := math.Sqrt(1 - cosAng*cosAng)
	if sinAng < collinearEps {
		return residual, nil
	}

	ga := vh.Sub(uh.Mul(cosAng)).Mul(-1 / (nu * sinAng))
	gc := uh.Sub(vh.Mul(cosAng)).Mul(-1 / (nv * sinAng))
	gv := ga.Add(gc).Mul(-1)
	gradNormSq := ga.Norm2() + gv.Norm2() + gc.Norm2()
	if gradNormSq < degenerateEps {
		return residual, nil
	}

	scale := -residual / gradNormSq
	return residual, []pointCorrection{
		{index: a, delta: ga.Mul(scale)},
		{index: vertex, delta: gv.Mul(scale)},
		{index: cc, delta: gc.Mul(scale)},
	}
}

// evaluateNumerical derives the correction directions by central finite
// differences on the residual instead of the analytic gradients. It applies
// the same residual normalization as the analytic path so both modes take
// comparably sized steps.
func evaluateNumerical(c Constraint, points []r3.Vector) (float64, []pointCorrection) {
	residual := residualOf(c, points)

	grads := make([]r3.Vector, len(c.Points))
	gradNormSq := 0.0
	for i, idx := range c.Points {
		orig := points[idx]
		var g r3.Vector

		points[idx] = r3.Vector{X: orig.X + numericalJump, Y: orig.Y, Z: orig.Z}
		plus := residualOf(c, points)
		points[idx] = r3.Vector{X: orig.X - numericalJump, Y: orig.Y, Z: orig.Z}
		g.X = (plus - residualOf(c, points)) / (2 * numericalJump)

		points[idx] = r3.Vector{X: orig.X, Y: orig.Y + numericalJump, Z: orig.Z}
		plus = residualOf(c, points)
		points[idx] = r3.Vector{X: orig.X, Y: orig.Y - numericalJump, Z: orig.Z}
		g.Y = (plus - residualOf(c, points)) / (2 * numericalJump)

		points[idx] = r3.Vector{X: orig.X, Y: orig.Y, Z: orig.Z + numericalJump}
		plus = residualOf(c, points)
		points[idx] = r3.Vector{X: orig.X, Y: orig.Y, Z: orig.Z - numericalJump}
		g.Z = (plus - residualOf(c, points)) / (2 * numericalJump)

		points[idx] = orig
		grads[i] = g
		gradNormSq += g.Norm2()
	}
	if gradNormSq < degenerateEps {
		return residual, nil
	}

	scale := -residual / gradNormSq
	moves := make([]pointCorrection, 0, len(c.Points))
	for i, idx := range c.Points {
		moves = append(moves, pointCorrection{index: idx, delta: grads[i].Mul(scale)})
	}
	return residual, moves
}

func residualOf(c Constraint, points []r3.Vector) float64 {
	switch c.Kind {
	case Distance:
		return points[c.Points[0]].Sub(points[c.Points[1]]).Norm() - c.Target
	case Angle:
		u := points[c.Points[0]].Sub(points[c.Points[1]])
		v := points[c.Points[2]].Sub(points[c.Points[1]])
		nu, nv := u.Norm(), v.Norm()
		if nu < degenerateEps || nv < degenerateEps {
			return 0
		}
		return math.Acos(utils.Clamp(u.Dot(v)/(nu*nv), -1, 1)) - c.Target
	case Position:
		return points[c.Points[0]].Sub(c.TargetPosition).Norm()
	default:
		return 0
	}
}

func validateConstraints(cons []Constraint, pointCount int) error {
	for _, c := range cons {
		if !c.Enabled {
			continue
		}
		if !solvable(c.Kind) {
			return errors.Wrapf(ErrUnsupported, "constraint %d has kind %q", c.ID, c.Kind)
		}
		if math.IsNaN(c.Weight) || math.IsInf(c.Weight, 0) || c.Weight <= 0 {
			return errors.Wrapf(ErrBadWeight, "constraint %d has weight %v", c.ID, c.Weight)
		}
		if want := pointArity(c.Kind); len(c.Points) != want {
			return errors.Errorf("constraint %d kind %q needs %d point indices, got %d",
				c.ID, c.Kind, want, len(c.Points))
		}
		for _, idx := range c.Points {
			if idx < 0 || idx >= pointCount {
				return errors.Wrapf(ErrBadPointIndex,
					"constraint %d references index %d with %d points", c.ID, idx, pointCount)
			}
		}
	}
	return nil
}

func pointArity(kind Kind) int {
	switch kind {
	case Distance:
		return 2
	case Angle:
		return 3
	default:
		return 1
	}
}

func clonePoints(points []r3.Vector) []r3.Vector {
	out := make([]r3.Vector, len(points))
	copy(out, points)
	return out
}
