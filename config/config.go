// Package config defines the configuration read by the ccpose tools.
package config

import (
	"fmt"

	"github.com/golang/geo/r3"
	"go.viam.com/utils"

	"go.ccpose.dev/ccpose/camera"
	"go.ccpose.dev/ccpose/keyframe"
	"go.ccpose.dev/ccpose/logging"
)

// Defaults applied to fields left empty.
const (
	DefaultPrecision = keyframe.DefaultPrecision
	DefaultLogLevel  = "info"
)

// Config is the top level configuration.
type Config struct {
	ConfigFilePath string `json:"-" mapstructure:"-"`

	// Precision is the number of decimal digits written to text matrix files.
	Precision *int `json:"precision,omitempty" mapstructure:"precision"`
	// NearPlaneSliderMax is the resolution of the near-plane slider.
	NearPlaneSliderMax int `json:"near_plane_slider_max,omitempty" mapstructure:"near_plane_slider_max"`
	// Clamp makes out-of-range interpolation return the nearest keyframe instead of failing.
	Clamp bool `json:"clamp,omitempty" mapstructure:"clamp"`
	// BigEndian selects big endian binary keyframe records.
	BigEndian bool `json:"big_endian,omitempty" mapstructure:"big_endian"`
	// LogLevel is one of debug, info, warn or error.
	LogLevel string `json:"log_level,omitempty" mapstructure:"log_level"`

	Displays []DisplayConfig `json:"displays,omitempty" mapstructure:"displays"`
}

// DisplayConfig describes the starting viewport of a display.
type DisplayConfig struct {
	ID             string      `json:"id" mapstructure:"id"`
	FovDeg         float64     `json:"fov_deg,omitempty" mapstructure:"fov_deg"`
	NearPlaneCoef  float64     `json:"near_plane_coef,omitempty" mapstructure:"near_plane_coef"`
	Perspective    bool        `json:"perspective,omitempty" mapstructure:"perspective"`
	ObjectCentered *bool       `json:"object_centered,omitempty" mapstructure:"object_centered"`
	PivotPoint     *[3]float64 `json:"pivot_point,omitempty" mapstructure:"pivot_point"`
	CameraCenter   *[3]float64 `json:"camera_center,omitempty" mapstructure:"camera_center"`
}

// Ensure validates the config and fills in defaults.
func (c *Config) Ensure() error {
	if c.Precision == nil {
		p := DefaultPrecision
		c.Precision = &p
	} else if *c.Precision < 0 || *c.Precision > 17 {
		return utils.NewConfigValidationError("precision", fmt.Errorf("must be in [0, 17], got %d", *c.Precision))
	}
	if c.NearPlaneSliderMax == 0 {
		c.NearPlaneSliderMax = camera.DefaultNearPlaneSliderMax
	} else if c.NearPlaneSliderMax < 0 {
		return utils.NewConfigValidationError("near_plane_slider_max", fmt.Errorf("must be positive, got %d", c.NearPlaneSliderMax))
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if _, err := logging.LevelFromString(c.LogLevel); err != nil {
		return utils.NewConfigValidationError("log_level", err)
	}

	seen := map[string]bool{}
	for idx := range c.Displays {
		path := fmt.Sprintf("%s.%d", "displays", idx)
		if err := c.Displays[idx].Validate(path); err != nil {
			return err
		}
		if seen[c.Displays[idx].ID] {
			return utils.NewConfigValidationError(path, fmt.Errorf("duplicate display id %q", c.Displays[idx].ID))
		}
		seen[c.Displays[idx].ID] = true
	}
	return nil
}

// Validate ensures all parts of the display config are valid and fills in defaults.
func (dc *DisplayConfig) Validate(path string) error {
	if dc.ID == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "id")
	}
	defaults := camera.DefaultViewportParameters()
	if dc.FovDeg == 0 {
		dc.FovDeg = defaults.FovDeg
	} else if dc.FovDeg < 0 || dc.FovDeg >= 180 {
		return utils.NewConfigValidationError(path, fmt.Errorf("fov_deg must be in (0, 180), got %v", dc.FovDeg))
	}
	if dc.NearPlaneCoef == 0 {
		dc.NearPlaneCoef = defaults.NearPlaneCoef
	} else if dc.NearPlaneCoef < 0 || dc.NearPlaneCoef > 1 {
		return utils.NewConfigValidationError(path, fmt.Errorf("near_plane_coef must be in (0, 1], got %v", dc.NearPlaneCoef))
	}
	return nil
}

// ViewportParameters returns the starting parameters of the display.
func (dc DisplayConfig) ViewportParameters() camera.ViewportParameters {
	params := camera.DefaultViewportParameters()
	params.FovDeg = dc.FovDeg
	params.NearPlaneCoef = dc.NearPlaneCoef
	params.Perspective = dc.Perspective
	if dc.ObjectCentered != nil {
		params.ObjectCentered = *dc.ObjectCentered
	}
	if dc.PivotPoint != nil {
		params.PivotPoint = r3.Vector{X: dc.PivotPoint[0], Y: dc.PivotPoint[1], Z: dc.PivotPoint[2]}
	}
	if dc.CameraCenter != nil {
		params.CameraCenter = r3.Vector{X: dc.CameraCenter[0], Y: dc.CameraCenter[1], Z: dc.CameraCenter[2]}
	}
	return params
}

// Display returns the display config with the given id.
func (c *Config) Display(id string) (DisplayConfig, bool) {
	for _, dc := range c.Displays {
		if dc.ID == id {
			return dc, true
		}
	}
	return DisplayConfig{}, false
}

// KeyframeFlags returns the binary flags selected by the config.
func (c *Config) KeyframeFlags() keyframe.Flags {
	if c.BigEndian {
		return keyframe.FlagBigEndian
	}
	return 0
}
