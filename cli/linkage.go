package cli

import (
	"encoding/json"

	"github.com/golang/geo/r3"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gonum.org/v1/gonum/floats"

	"github.com/viam-labs/linkage/constraint"
	"github.com/viam-labs/linkage/kinematics"
	"github.com/viam-labs/linkage/mechanism"
	"github.com/viam-labs/linkage/motion"
	"github.com/viam-labs/linkage/utils"
)

func buildMechanism(c *cli.Context) (mechanism.Mechanism, error) {
	return mechanism.New(mechanism.Type(c.String(flagType)), mechanism.Params{
		GroundLength:        c.Float64(flagGround),
		InputLength:         c.Float64(flagInput),
		CouplerLength:       c.Float64(flagCoupler),
		OutputLength:        c.Float64(flagOutput),
		CrankLength:         c.Float64(flagCrank),
		ConnectingRodLength: c.Float64(flagRod),
	})
}

// AnalyzeAction is the corresponding Action for 'analyze'.
func AnalyzeAction(c *cli.Context) error {
	fb, err := mechanism.NewFourBar(
		c.Float64(flagGround),
		c.Float64(flagInput),
		c.Float64(flagCoupler),
		c.Float64(flagOutput),
	)
	if err != nil {
		return err
	}
	result := kinematics.NewFourBarSolver(fb, logger).CheckGrashofCondition()

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Link", "Length"})
	t.AppendRow([]interface{}{"ground", fb.GroundLength()})
	t.AppendRow([]interface{}{"input", fb.InputLength()})
	t.AppendRow([]interface{}{"coupler", fb.CouplerLength()})
	t.AppendRow([]interface{}{"output", fb.OutputLength()})
	printf(c.App.Writer, "%s", t.Render())

	printf(c.App.Writer, "Classification: %s", result.Type)
	printf(c.App.Writer, "Motion: %s", result.MotionType)
	printf(c.App.Writer, "Grashof condition satisfied: %t (s+l = %.4g, p+q = %.4g)",
		result.IsGrashof, result.GrashofSum, result.OtherSum)
	return nil
}

type poseOutput struct {
	Type       mechanism.Type     `json:"type"`
	Input      float64            `json:"input"`
	Joints     []r3.Vector        `json:"joints"`
	LinkAngles map[string]float64 `json:"link_angles"`
}

// SolveAction is the corresponding Action for 'solve'.
func SolveAction(c *cli.Context) error {
	mech, err := buildMechanism(c)
	if err != nil {
		return err
	}
	solve, err := kinematics.SolverFor(mech, logger)
	if err != nil {
		return err
	}

	angle := c.Float64(flagAngle)
	if c.Bool(flagDegrees) {
		angle = utils.DegToRad(angle)
	}
	st, err := solve(angle)
	if err != nil {
		return err
	}

	out := poseOutput{
		Type:       mech.Type(),
		Input:      st.Input,
		Joints:     st.JointPositions,
		LinkAngles: st.LinkAngles,
	}
	if c.Bool(flagDegrees) {
		out.Input = utils.ModAngDeg(utils.RadToDeg(st.Input))
		out.LinkAngles = make(map[string]float64, len(st.LinkAngles))
		for name, linkAngle := range st.LinkAngles {
			out.LinkAngles[name] = utils.ModAngDeg(utils.RadToDeg(linkAngle))
		}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", data)
	return nil
}

// SweepAction is the corresponding Action for 'sweep'.
func SweepAction(c *cli.Context) error {
	mech, err := buildMechanism(c)
	if err != nil {
		return err
	}
	solve, err := kinematics.SolverFor(mech, logger)
	if err != nil {
		return err
	}

	profile := motion.RotationProfile{
		StartAngle: c.Float64(flagStart),
		EndAngle:   c.Float64(flagEnd),
		Smoothing:  c.Float64(flagSmoothing),
	}
	samples := motion.Samples(profile, c.Int(flagFrames))
	result, sweepErr := motion.Sweep(solve, samples, logger)
	if len(result.Frames) == 0 {
		if sweepErr != nil {
			return errors.Wrap(sweepErr, "no frames solved")
		}
		return errors.New("no frames to solve")
	}

	var label string
	var measure func(st *kinematics.State) float64
	switch mech.Type() {
	case mechanism.TypeSliderCrank:
		label = "slider position"
		measure = func(st *kinematics.State) float64 {
			return st.JointPositions[len(st.JointPositions)-1].X
		}
	case mechanism.TypeFourBar:
		label = "output angle [rad]"
		measure = func(st *kinematics.State) float64 { return st.LinkAngles["output"] }
	default:
		label = "final link angle [rad]"
		measure = func(st *kinematics.State) float64 { return st.LinkAngles["link_5"] }
	}
	values := make([]float64, 0, len(result.Frames))
	for _, frame := range result.Frames {
		values = append(values, measure(frame.State))
	}

	printf(c.App.Writer, "solved %d of %d frames (%d skipped)",
		len(result.Frames), len(samples), result.Skipped)
	printf(c.App.Writer, "%s: min %.4f, median %.4f, max %.4f",
		label, floats.Min(values), utils.Median(values...), floats.Max(values))
	return nil
}

// ConstraintsAction is the corresponding Action for 'constraints'.
func ConstraintsAction(c *cli.Context) error {
	var cfg *constraint.SolverConfig
	if c.Path(flagConfig) != "" {
		var err error
		cfg, err = constraint.ReadSolverConfig(c.Path(flagConfig), logger)
		if err != nil {
			return err
		}
	}
	solver, err := constraint.NewSolver(cfg, logger)
	if err != nil {
		return err
	}

	// Pull a 3-4-5 right triangle together from a deliberately bad guess.
	sys := constraint.NewSystem()
	sys.AddDistance(0, 1, 3, 1)
	sys.AddDistance(1, 2, 4, 1)
	sys.AddDistance(0, 2, 5, 1)
	points := []r3.Vector{{}, {X: 2}, {X: 1, Y: 2}}

	result, err := solver.Solve(sys, points, 0)
	if err != nil {
		return err
	}
	printf(c.App.Writer, "converged in %d iterations (residual %.3g)", result.Iterations, result.TotalError)
	for i, p := range result.Points {
		printf(c.App.Writer, "point %d: (%.4f, %.4f, %.4f)", i, p.X, p.Y, p.Z)
	}
	return nil
}
