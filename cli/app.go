// Package cli implements the linkage command line interface.
package cli

import (
	"fmt"
	"io"
	"math"

	"github.com/edaniels/golog"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// Flag names shared between commands.
const (
	flagDebug = "debug"

	flagType    = "type"
	flagGround  = "ground"
	flagInput   = "input"
	flagCoupler = "coupler"
	flagOutput  = "output"
	flagCrank   = "crank"
	flagRod     = "rod"

	flagAngle   = "angle"
	flagDegrees = "degrees"

	flagFrames    = "frames"
	flagStart     = "start"
	flagEnd       = "end"
	flagSmoothing = "smoothing"

	flagConfig = "config"
)

var logger golog.Logger

func fourBarFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Float64Flag{
			Name:  flagGround,
			Value: 10,
			Usage: "ground link length",
		},
		&cli.Float64Flag{
			Name:  flagInput,
			Value: 3,
			Usage: "input link length",
		},
		&cli.Float64Flag{
			Name:  flagCoupler,
			Value: 8,
			Usage: "coupler link length",
		},
		&cli.Float64Flag{
			Name:  flagOutput,
			Value: 5,
			Usage: "output link length",
		},
	}
}

func mechanismFlags() []cli.Flag {
	return append(fourBarFlags(),
		&cli.StringFlag{
			Name:  flagType,
			Value: "four_bar",
			Usage: "mechanism type: four_bar, slider_crank, six_bar_watt, or six_bar_stephenson",
		},
		&cli.Float64Flag{
			Name:  flagCrank,
			Value: 2,
			Usage: "crank length (slider-crank only)",
		},
		&cli.Float64Flag{
			Name:  flagRod,
			Value: 6,
			Usage: "connecting rod length (slider-crank only)",
		},
	)
}

var app = &cli.App{
	Name:            "linkage",
	Usage:           "analyze and solve planar linkage mechanisms",
	HideHelpCommand: true,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    flagDebug,
			Aliases: []string{"vvv"},
			Usage:   "enable debug logging",
		},
	},
	Before: func(c *cli.Context) error {
		if c.Bool(flagDebug) {
			logger = golog.NewDebugLogger("linkage")
		} else {
			logger = zap.NewNop().Sugar()
		}
		return nil
	},
	Commands: []*cli.Command{
		{
			Name:   "analyze",
			Usage:  "classify a four-bar linkage by its Grashof condition",
			Flags:  fourBarFlags(),
			Action: AnalyzeAction,
		},
		{
			Name:  "solve",
			Usage: "solve one pose of a mechanism at a driving angle",
			Flags: append(mechanismFlags(),
				&cli.Float64Flag{
					Name:  flagAngle,
					Value: 0,
					Usage: "driving angle in radians",
				},
				&cli.BoolFlag{
					Name:  flagDegrees,
					Usage: "read --angle and report link angles in degrees",
				},
			),
			Action: SolveAction,
		},
		{
			Name:  "sweep",
			Usage: "solve a frame-by-frame sweep of a mechanism",
			Flags: append(mechanismFlags(),
				&cli.IntFlag{
					Name:  flagFrames,
					Value: 24,
					Usage: "number of frames to sample",
				},
				&cli.Float64Flag{
					Name:  flagStart,
					Value: 0,
					Usage: "driving angle at the first frame, in radians",
				},
				&cli.Float64Flag{
					Name:  flagEnd,
					Value: 2 * math.Pi,
					Usage: "driving angle at the last frame, in radians",
				},
				&cli.Float64Flag{
					Name:  flagSmoothing,
					Value: 0,
					Usage: "ease-in/ease-out strength between 0 and 1",
				},
			),
			Action: SweepAction,
		},
		{
			Name:  "constraints",
			Usage: "solve a demo distance constraint system",
			Flags: []cli.Flag{
				&cli.PathFlag{
					Name:    flagConfig,
					Aliases: []string{"c"},
					Usage:   "load solver configuration from `FILE`",
				},
			},
			Action: ConstraintsAction,
		},
	},
}

// NewApp returns a new app with the linkage CLI, Writer set to out, and
// ErrWriter set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	app.Writer = out
	app.ErrWriter = errOut
	return app
}

func printf(w io.Writer, format string, a ...interface{}) {
	fmt.Fprintf(w, format+"\n", a...)
}
