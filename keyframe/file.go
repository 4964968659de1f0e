package keyframe

import (
	"os"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.ccpose.dev/ccpose/spatialmath"
)

// DefaultPrecision is the number of decimal digits used for text matrices.
const DefaultPrecision = 12

// ToASCIIFile writes the matrix, not the index, to path as 4 rows of 4 values with
// precision decimal digits.
func (k Keyframe) ToASCIIFile(path string, precision int) (err error) {
	//nolint:gosec
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(ErrIOFailure, "cannot create %q: %v", path, err)
	}
	defer func() {
		err = multierr.Combine(err, closeFile(f, path))
	}()

	if err := k.WriteText(f, precision); err != nil {
		return errors.Wrapf(ErrIOFailure, "writing %q: %v", path, err)
	}
	return nil
}

// FromASCIIFile replaces the matrix with the one stored at path. The index is left
// untouched. On failure k is not modified.
func (k *Keyframe) FromASCIIFile(path string) error {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(ErrIOFailure, "cannot open %q: %v", path, err)
	}

	m, err := spatialmath.ReadText(f)
	if err != nil {
		if errors.Is(err, spatialmath.ErrMalformedMatrix) {
			err = errors.Wrapf(ErrCorruptData, "%q: %v", path, err)
		} else {
			err = errors.Wrapf(ErrIOFailure, "reading %q: %v", path, err)
		}
	}
	if err := multierr.Combine(err, closeFile(f, path)); err != nil {
		return err
	}
	k.Matrix = m
	return nil
}

// closeFile closes f, reporting a failure as ErrIOFailure.
func closeFile(f *os.File, path string) error {
	if err := f.Close(); err != nil {
		return errors.Wrapf(ErrIOFailure, "closing %q: %v", path, err)
	}
	return nil
}

// ReadASCIIFile loads a keyframe at the given index from a text matrix file.
func ReadASCIIFile(path string, index float64) (Keyframe, error) {
	k := FromMatrixIndex(spatialmath.NewIdentity(), index)
	if err := k.FromASCIIFile(path); err != nil {
		return Keyframe{}, err
	}
	return k, nil
}
