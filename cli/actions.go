package cli

import (
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.ccpose.dev/ccpose/camera"
	"go.ccpose.dev/ccpose/camera/fake"
	"go.ccpose.dev/ccpose/config"
	"go.ccpose.dev/ccpose/keyframe"
	"go.ccpose.dev/ccpose/logging"
	"go.ccpose.dev/ccpose/spatialmath"
	"go.ccpose.dev/ccpose/track"
	"go.ccpose.dev/ccpose/utils"
)

const (
	metadataConfig = "config"
	metadataLogger = "logger"
)

func setupAction(c *cli.Context) error {
	var logger logging.Logger
	if c.Bool(generalFlagDebug) {
		logger = logging.NewDebugLogger("ccpose")
	} else {
		logger = logging.NewLogger("ccpose")
	}

	cfg := config.Default()
	if path := c.String(generalFlagConfig); path != "" {
		var err error
		cfg, err = config.Read(path, logger)
		if err != nil {
			return errors.Wrapf(err, "loading config %q", path)
		}
	}
	if !c.Bool(generalFlagDebug) {
		level, err := logging.LevelFromString(cfg.LogLevel)
		if err != nil {
			return err
		}
		logger.SetLevel(level)
	}

	if c.App.Metadata == nil {
		c.App.Metadata = map[string]interface{}{}
	}
	c.App.Metadata[metadataConfig] = cfg
	c.App.Metadata[metadataLogger] = logger
	return nil
}

func configFrom(c *cli.Context) *config.Config {
	if cfg, ok := c.App.Metadata[metadataConfig].(*config.Config); ok {
		return cfg
	}
	return config.Default()
}

func loggerFrom(c *cli.Context) logging.Logger {
	if logger, ok := c.App.Metadata[metadataLogger].(logging.Logger); ok {
		return logger
	}
	return logging.NewBlankLogger("ccpose")
}

// writeMatrix writes k to path, or to the app's writer when path is empty.
func writeMatrix(c *cli.Context, k keyframe.Keyframe, path string) error {
	precision := *configFrom(c).Precision
	if path == "" {
		return k.WriteText(c.App.Writer, precision)
	}
	if err := k.ToASCIIFile(path, precision); err != nil {
		return err
	}
	loggerFrom(c).Infow("wrote matrix", "path", path, "index", k.Index())
	return nil
}

func printParams(c *cli.Context, m spatialmath.Matrix) {
	phi, theta, psi, t := m.Parameters()
	printf(c.App.Writer, "phi: %.6f\ntheta: %.6f\npsi: %.6f\ntranslation: %g %g %g",
		utils.RadToDeg(phi), utils.RadToDeg(theta), utils.RadToDeg(psi), t.X, t.Y, t.Z)
}

// InterpolateAction is the corresponding action for 'interpolate'.
func InterpolateAction(c *cli.Context) error {
	from, err := keyframe.ReadASCIIFile(c.Path(flagFrom), c.Float64(flagFromIndex))
	if err != nil {
		return err
	}
	to, err := keyframe.ReadASCIIFile(c.Path(flagTo), c.Float64(flagToIndex))
	if err != nil {
		return err
	}

	at := c.Float64(flagAt)
	var result keyframe.Keyframe
	if c.Bool(flagClamp) || configFrom(c).Clamp {
		result = keyframe.InterpolateClamped(at, from, to)
	} else {
		result, err = keyframe.Interpolate(at, from, to)
		if err != nil {
			return err
		}
	}
	loggerFrom(c).Debugw("interpolated", "from", from.Index(), "to", to.Index(), "at", at)
	return writeMatrix(c, result, c.Path(flagOut))
}

// InvertAction is the corresponding action for 'invert'.
func InvertAction(c *cli.Context) error {
	k, err := keyframe.ReadASCIIFile(c.Path(flagIn), 0)
	if err != nil {
		return err
	}
	return writeMatrix(c, k.Inverse(), c.Path(flagOut))
}

// ParamsAction is the corresponding action for 'params'.
func ParamsAction(c *cli.Context) error {
	k, err := keyframe.ReadASCIIFile(c.Path(flagIn), 0)
	if err != nil {
		return err
	}
	printParams(c, k.Matrix)
	return nil
}

// ComposeAction is the corresponding action for 'compose'.
func ComposeAction(c *cli.Context) error {
	m := spatialmath.NewMatrixFromParameters(
		utils.DegToRad(c.Float64(flagPhi)),
		utils.DegToRad(c.Float64(flagTheta)),
		utils.DegToRad(c.Float64(flagPsi)),
		r3.Vector{X: c.Float64(flagTX), Y: c.Float64(flagTY), Z: c.Float64(flagTZ)},
	)
	return writeMatrix(c, keyframe.FromMatrix(m), c.Path(flagOut))
}

// NearPlaneAction is the corresponding action for 'nearplane'.
func NearPlaneAction(c *cli.Context) error {
	iMax := configFrom(c).NearPlaneSliderMax
	if c.IsSet(flagMax) {
		iMax = c.Int(flagMax)
	}
	switch {
	case c.IsSet(flagPos) && c.IsSet(flagCoef):
		return errors.Errorf("only one of --%s and --%s may be given", flagPos, flagCoef)
	case c.IsSet(flagPos):
		coef, err := camera.SliderPosToNearPlaneCoef(c.Int(flagPos), iMax)
		if err != nil {
			return err
		}
		printf(c.App.Writer, "%g", coef)
	case c.IsSet(flagCoef):
		pos, err := camera.NearPlaneCoefToSliderPos(c.Float64(flagCoef), iMax)
		if err != nil {
			return err
		}
		printf(c.App.Writer, "%d", pos)
	default:
		return errors.Errorf("one of --%s or --%s is required", flagPos, flagCoef)
	}
	return nil
}

// CameraAction is the corresponding action for 'camera'.
func CameraAction(c *cli.Context) error {
	cfg := configFrom(c)
	logger := loggerFrom(c)

	id := c.String(flagDisplay)
	params := camera.DefaultViewportParameters()
	if dc, ok := cfg.Display(id); ok {
		params = dc.ViewportParameters()
	} else if len(cfg.Displays) > 0 {
		return errors.Errorf("no display %q in config", id)
	}
	display := fake.NewDisplayWith(id, params)

	editor, err := camera.NewParamEditor(logger.Sublogger("camera"), cfg.NearPlaneSliderMax)
	if err != nil {
		return err
	}
	if err := editor.InitWith(display); err != nil {
		return err
	}
	editor.OnChange(func(p camera.ViewportParameters) {
		logger.Debugw("camera changed", "display", id, "fov", p.FovDeg, "near_plane", p.NearPlaneCoef)
	})

	if name := c.String(flagView); name != "" {
		view, err := camera.ViewOrientationFromString(name)
		if err != nil {
			return err
		}
		if err := editor.SetView(view); err != nil {
			return err
		}
	}
	if c.IsSet(flagPhi) || c.IsSet(flagTheta) || c.IsSet(flagPsi) {
		angles := editor.Angles()
		if c.IsSet(flagPhi) {
			angles.Phi = c.Float64(flagPhi)
		}
		if c.IsSet(flagTheta) {
			angles.Theta = c.Float64(flagTheta)
		}
		if c.IsSet(flagPsi) {
			angles.Psi = c.Float64(flagPsi)
		}
		if err := editor.SetAnglesDegrees(angles.Phi, angles.Theta, angles.Psi); err != nil {
			return err
		}
	}
	if c.IsSet(flagFov) {
		if err := editor.SetFov(c.Float64(flagFov)); err != nil {
			return err
		}
	}
	if pos := c.Int(flagNearPos); pos >= 0 {
		if err := editor.MoveNearPlaneSlider(pos); err != nil {
			return err
		}
	}

	final := display.ViewportParameters()
	printf(c.App.Writer, "display: %s\nmode: %s\nfov: %g\nnear plane: %g (slider %d/%d)",
		id, editor.ViewMode(), final.FovDeg, final.NearPlaneCoef, editor.NearPlaneSliderPos(), cfg.NearPlaneSliderMax)
	printParams(c, final.BaseViewMat)
	return final.BaseViewMat.WriteText(c.App.Writer, *cfg.Precision)
}

// parseKey splits a FILE@INDEX keyframe argument.
func parseKey(key string) (string, float64, error) {
	at := strings.LastIndex(key, "@")
	if at <= 0 || at == len(key)-1 {
		return "", 0, errors.Errorf("keyframe %q is not FILE@INDEX", key)
	}
	index, err := strconv.ParseFloat(key[at+1:], 64)
	if err != nil {
		return "", 0, errors.Wrapf(err, "keyframe %q has a bad index", key)
	}
	return key[:at], index, nil
}

// TrackBuildAction is the corresponding action for 'track build'.
func TrackBuildAction(c *cli.Context) error {
	cfg := configFrom(c)
	keys := c.StringSlice(flagKey)
	keyframes := make([]keyframe.Keyframe, 0, len(keys))
	for _, key := range keys {
		path, index, err := parseKey(key)
		if err != nil {
			return err
		}
		k, err := keyframe.ReadASCIIFile(path, index)
		if err != nil {
			return err
		}
		keyframes = append(keyframes, k)
	}

	tr, err := track.New(keyframes, track.WithLogger(loggerFrom(c).Sublogger("track")))
	if err != nil {
		return err
	}
	if err := tr.WriteFile(c.Path(flagOut), cfg.KeyframeFlags()); err != nil {
		return err
	}
	first, last, _ := tr.Bounds()
	printf(c.App.Writer, "wrote %d keyframes spanning [%g, %g] to %s", tr.Len(), first, last, c.Path(flagOut))
	return nil
}

// TrackSampleAction is the corresponding action for 'track sample'.
func TrackSampleAction(c *cli.Context) error {
	var opts []track.Option
	if c.Bool(flagClamp) || configFrom(c).Clamp {
		opts = append(opts, track.WithClamp())
	}
	tr, err := track.ReadFile(c.Path(flagIn), opts...)
	if err != nil {
		return err
	}
	samples, err := tr.Sample(c.Float64(flagFrom), c.Float64(flagTo), c.Float64(flagStep))
	if err != nil {
		return err
	}
	printf(c.App.Writer, "# index phi theta psi tx ty tz")
	for _, k := range samples {
		phi, theta, psi, t := k.Parameters()
		printf(c.App.Writer, "%g %.6f %.6f %.6f %g %g %g", k.Index(),
			utils.RadToDeg(phi), utils.RadToDeg(theta), utils.RadToDeg(psi), t.X, t.Y, t.Z)
	}
	return nil
}
