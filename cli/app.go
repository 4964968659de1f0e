// Package cli contains the ccpose command line tool.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

const (
	// Flags.
	generalFlagConfig = "config"
	generalFlagDebug  = "debug"

	flagIn        = "in"
	flagOut       = "out"
	flagFrom      = "from"
	flagFromIndex = "from-index"
	flagTo        = "to"
	flagToIndex   = "to-index"
	flagAt        = "at"
	flagClamp     = "clamp"
	flagPhi       = "phi"
	flagTheta     = "theta"
	flagPsi       = "psi"
	flagTX        = "tx"
	flagTY        = "ty"
	flagTZ        = "tz"
	flagPos       = "pos"
	flagCoef      = "coef"
	flagMax       = "max"
	flagKey       = "key"
	flagStep      = "step"
	flagDisplay   = "display"
	flagNearPos   = "near-slider"
	flagFov       = "fov"
	flagView      = "view"
)

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:            "ccpose",
		Usage:           "edit, interpolate and inspect indexed camera transformations",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    generalFlagConfig,
				Aliases: []string{"c"},
				Usage:   "load configuration from `FILE`",
			},
			&cli.BoolFlag{
				Name:    generalFlagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Before: setupAction,
		Commands: []*cli.Command{
			{
				Name:      "interpolate",
				Usage:     "interpolate between two matrix files",
				UsageText: "ccpose interpolate --from a.txt --from-index 0 --to b.txt --to-index 10 --at 5",
				Flags: []cli.Flag{
					&cli.PathFlag{Name: flagFrom, Required: true, Usage: "first matrix `FILE`"},
					&cli.Float64Flag{Name: flagFromIndex, Usage: "index of the first matrix"},
					&cli.PathFlag{Name: flagTo, Required: true, Usage: "second matrix `FILE`"},
					&cli.Float64Flag{Name: flagToIndex, Required: true, Usage: "index of the second matrix"},
					&cli.Float64Flag{Name: flagAt, Required: true, Usage: "index to interpolate at"},
					&cli.PathFlag{Name: flagOut, Usage: "write the result to `FILE` instead of stdout"},
					&cli.BoolFlag{Name: flagClamp, Usage: "clamp an out of range index instead of failing"},
				},
				Action: InterpolateAction,
			},
			{
				Name:  "invert",
				Usage: "invert a matrix file",
				Flags: []cli.Flag{
					&cli.PathFlag{Name: flagIn, Required: true, Usage: "matrix `FILE`"},
					&cli.PathFlag{Name: flagOut, Usage: "write the result to `FILE` instead of stdout"},
				},
				Action: InvertAction,
			},
			{
				Name:  "params",
				Usage: "print the euler angles (degrees) and translation of a matrix file",
				Flags: []cli.Flag{
					&cli.PathFlag{Name: flagIn, Required: true, Usage: "matrix `FILE`"},
				},
				Action: ParamsAction,
			},
			{
				Name:  "compose",
				Usage: "build a matrix from euler angles (degrees) and a translation",
				Flags: []cli.Flag{
					&cli.Float64Flag{Name: flagPhi, Usage: "rotation about z"},
					&cli.Float64Flag{Name: flagTheta, Usage: "rotation about y"},
					&cli.Float64Flag{Name: flagPsi, Usage: "rotation about x"},
					&cli.Float64Flag{Name: flagTX},
					&cli.Float64Flag{Name: flagTY},
					&cli.Float64Flag{Name: flagTZ},
					&cli.PathFlag{Name: flagOut, Usage: "write the result to `FILE` instead of stdout"},
				},
				Action: ComposeAction,
			},
			{
				Name:  "nearplane",
				Usage: "convert between near-plane slider positions and coefficients",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: flagPos, Usage: "slider position to convert"},
					&cli.Float64Flag{Name: flagCoef, Usage: "coefficient to convert"},
					&cli.IntFlag{Name: flagMax, Usage: "slider maximum (defaults to the config value)"},
				},
				Action: NearPlaneAction,
			},
			{
				Name:  "camera",
				Usage: "apply camera edits to a configured display and print the resulting view",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: flagDisplay, Value: "default", Usage: "display `ID` from the config"},
					&cli.StringFlag{Name: flagView, Usage: "start from a standard `VIEW` (top, bottom, front, back, left, right, iso1, iso2)"},
					&cli.Float64Flag{Name: flagPhi, Usage: "rotation about z in degrees"},
					&cli.Float64Flag{Name: flagTheta, Usage: "rotation about y in degrees"},
					&cli.Float64Flag{Name: flagPsi, Usage: "rotation about x in degrees"},
					&cli.IntFlag{Name: flagNearPos, Value: -1, Usage: "near-plane slider position"},
					&cli.Float64Flag{Name: flagFov, Usage: "field of view in degrees"},
				},
				Action: CameraAction,
			},
			{
				Name:            "track",
				Usage:           "work with transformation tracks",
				HideHelpCommand: true,
				Subcommands: []*cli.Command{
					{
						Name:      "build",
						Usage:     "build a track from matrix files",
						UsageText: "ccpose track build --out track.bin --key a.txt@0 --key b.txt@10",
						Flags: []cli.Flag{
							&cli.PathFlag{Name: flagOut, Required: true, Usage: "track `FILE` to write"},
							&cli.StringSliceFlag{Name: flagKey, Required: true, Usage: "keyframe as `FILE@INDEX`"},
						},
						Action: TrackBuildAction,
					},
					{
						Name:  "sample",
						Usage: "print a track at regular intervals",
						Flags: []cli.Flag{
							&cli.PathFlag{Name: flagIn, Required: true, Usage: "track `FILE`"},
							&cli.Float64Flag{Name: flagFrom, Usage: "first index"},
							&cli.Float64Flag{Name: flagTo, Required: true, Usage: "last index"},
							&cli.Float64Flag{Name: flagStep, Value: 1, Usage: "distance between samples"},
							&cli.BoolFlag{Name: flagClamp, Usage: "clamp indexes outside the track"},
						},
						Action: TrackSampleAction,
					},
				},
			},
		},
	}
}
