// Package camera holds the camera-parameter editing logic that sits between viewport
// widgets and a display: slider mappings, viewport parameters and the editor itself.
package camera

import (
	"math"

	"github.com/pkg/errors"
)

const (
	// nearPlaneDecades is how many powers of ten the near-plane slider spans.
	nearPlaneDecades = 3

	// AngleSliderScale is the number of angle slider steps per degree.
	AngleSliderScale = 10

	// DefaultNearPlaneSliderMax is the default near-plane slider maximum.
	DefaultNearPlaneSliderMax = 1000
)

// SliderPosToNearPlaneCoef maps a linear slider position in [0, iMax] to a logarithmic
// near-plane coefficient in [10^-3, 1].
func SliderPosToNearPlaneCoef(i, iMax int) (float64, error) {
	if iMax <= 0 {
		return 0, errors.Errorf("slider maximum must be positive, got %d", iMax)
	}
	if i < 0 || i > iMax {
		return 0, errors.Errorf("slider position %d outside [0, %d]", i, iMax)
	}
	return math.Pow(10, -float64((iMax-i)*nearPlaneDecades)/float64(iMax)), nil
}

// NearPlaneCoefToSliderPos is the inverse of SliderPosToNearPlaneCoef, exact up to rounding.
// coef must be in (0, 1]; coefficients below 10^-3 land on position 0.
func NearPlaneCoefToSliderPos(coef float64, iMax int) (int, error) {
	if iMax <= 0 {
		return 0, errors.Errorf("slider maximum must be positive, got %d", iMax)
	}
	if !(coef > 0 && coef <= 1) {
		return 0, errors.Errorf("near-plane coefficient %v outside (0, 1]", coef)
	}
	i := int(math.Round(-(float64(iMax) / nearPlaneDecades) * math.Log10(coef)))
	if i > iMax {
		i = iMax
	}
	return iMax - i, nil
}

// DegreesToSliderPos converts an angle in degrees to an angle slider position,
// truncating below a tenth of a degree.
func DegreesToSliderPos(deg float64) int {
	return int(deg * AngleSliderScale)
}

// SliderPosToDegrees converts an angle slider position to degrees.
func SliderPosToDegrees(pos int) float64 {
	return float64(pos) / AngleSliderScale
}
