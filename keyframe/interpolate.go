package keyframe

import (
	"github.com/golang/geo/r3"

	"go.ccpose.dev/ccpose/spatialmath"
	"go.ccpose.dev/ccpose/utils"
)

// Fraction returns the position of index within [k1.Index(), k2.Index()] as a
// fraction, 0 at k1 and 1 at k2. It does not check the range.
func Fraction(index float64, k1, k2 Keyframe) (float64, error) {
	span := k2.index - k1.index
	if span == 0 {
		return 0, ErrDegenerateInterval
	}
	return (index - k1.index) / span, nil
}

// Interpolate returns the transformation at interpIndex on the segment between k1 and k2.
// interpIndex must lie between the two keyframe indexes, in either order; otherwise
// ErrInvalidRange is returned. When both keyframes share an index, asking for that
// index returns k1.
//
// The translation is blended linearly. The rotation follows the geodesic from k1 to
// k2: the relative rotation is taken as an angle about an axis, on the short way
// round, and only its angle is scaled.
func Interpolate(interpIndex float64, k1, k2 Keyframe) (Keyframe, error) {
	if !utils.Between(interpIndex, k1.index, k2.index) {
		return Keyframe{}, newOutOfRangeError(interpIndex, k1.index, k2.index)
	}
	if k1.index == k2.index {
		return k1, nil
	}
	t, err := Fraction(interpIndex, k1, k2)
	if err != nil {
		return Keyframe{}, err
	}
	return blend(interpIndex, t, k1, k2), nil
}

// InterpolateClamped is like Interpolate but an index outside the segment is
// clamped to the nearest keyframe, whose matrix is returned at interpIndex.
func InterpolateClamped(interpIndex float64, k1, k2 Keyframe) Keyframe {
	lo, hi := k1, k2
	if lo.index > hi.index {
		lo, hi = hi, lo
	}
	switch {
	case interpIndex <= lo.index:
		return FromMatrixIndex(lo.Matrix, interpIndex)
	case interpIndex >= hi.index:
		return FromMatrixIndex(hi.Matrix, interpIndex)
	}
	// strictly inside, so the span is not zero
	t := (interpIndex - k1.index) / (k2.index - k1.index)
	return blend(interpIndex, t, k1, k2)
}

func blend(interpIndex, t float64, k1, k2 Keyframe) Keyframe {
	switch t {
	case 0:
		return FromMatrixIndex(k1.Matrix, interpIndex)
	case 1:
		return FromMatrixIndex(k2.Matrix, interpIndex)
	}

	angle, axis, _ := spatialmath.RotationBetween(k1.Matrix, k2.Matrix).AxisAngle()
	partial := spatialmath.NewMatrixFromAxisAngle(angle*t, axis, r3.Vector{})
	rot := k1.Rotation().Mul(partial)

	t1, t2 := k1.Translation(), k2.Translation()
	rot.SetTranslation(t1.Add(t2.Sub(t1).Mul(t)))
	return FromMatrixIndex(rot, interpIndex)
}
