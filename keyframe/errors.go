package keyframe

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidRange is returned when an interpolation index lies outside the keyframes' indexes.
	ErrInvalidRange = errors.New("interpolation index out of range")
	// ErrDegenerateInterval is returned when a fraction is asked of two keyframes sharing one index.
	ErrDegenerateInterval = errors.New("keyframes share the same index")
	// ErrIOFailure is returned when a file cannot be opened, created or written.
	ErrIOFailure = errors.New("i/o failure")
	// ErrCorruptData is returned when stored data is truncated or structurally invalid.
	ErrCorruptData = errors.New("corrupt data")
)

func newOutOfRangeError(index, index1, index2 float64) error {
	return errors.Wrapf(ErrInvalidRange, "%v is not between %v and %v", index, index1, index2)
}
