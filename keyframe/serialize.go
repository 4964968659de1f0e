package keyframe

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"

	"go.ccpose.dev/ccpose/spatialmath"
)

// Version identifies the layout of a serialized keyframe. It is supplied by the
// enclosing document, which owns the overall format.
type Version int16

const (
	// VersionLegacy stores 16 float32 matrix values and no index.
	VersionLegacy Version = 1
	// VersionIndexed stores 16 float32 matrix values followed by a float64 index.
	VersionIndexed Version = 2
	// VersionDouble stores 16 float64 matrix values followed by a float64 index.
	VersionDouble Version = 3

	// CurrentVersion is the layout written by Encode.
	CurrentVersion = VersionDouble
)

// Flags alter how a record is laid out within a given version.
type Flags int

const (
	// FlagBigEndian stores values in big endian byte order instead of little endian.
	FlagBigEndian Flags = 1 << iota
)

func (f Flags) byteOrder() binary.ByteOrder {
	if f&FlagBigEndian != 0 {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// RecordSize returns the number of bytes a keyframe occupies in the given version.
func RecordSize(version Version) (int, error) {
	switch version {
	case VersionLegacy:
		return 16 * 4, nil
	case VersionIndexed:
		return 16*4 + 8, nil
	case VersionDouble:
		return 16*8 + 8, nil
	default:
		return 0, errors.Wrapf(ErrCorruptData, "unknown keyframe version %d", version)
	}
}

// Encode writes the matrix then the index in the CurrentVersion layout.
func (k Keyframe) Encode(w io.Writer, flags Flags) error {
	order := flags.byteOrder()
	if err := binary.Write(w, order, k.Mat4()); err != nil {
		return errors.Wrapf(ErrIOFailure, "writing keyframe matrix: %v", err)
	}
	if err := binary.Write(w, order, k.index); err != nil {
		return errors.Wrapf(ErrIOFailure, "writing keyframe index: %v", err)
	}
	return nil
}

// Decode reads a keyframe stored with the given version and flags. Older versions
// stay readable. On failure k is not modified.
func (k *Keyframe) Decode(r io.Reader, version Version, flags Flags) error {
	if _, err := RecordSize(version); err != nil {
		return err
	}
	order := flags.byteOrder()

	values := make([]float64, 16)
	if version == VersionDouble {
		if err := binary.Read(r, order, values); err != nil {
			return shortReadError("matrix", err)
		}
	} else {
		var single [16]float32
		if err := binary.Read(r, order, &single); err != nil {
			return shortReadError("matrix", err)
		}
		for i, v := range single {
			values[i] = float64(v)
		}
	}

	var index float64
	if version >= VersionIndexed {
		if err := binary.Read(r, order, &index); err != nil {
			return shortReadError("index", err)
		}
		if math.IsNaN(index) || math.IsInf(index, 0) {
			return errors.Wrapf(ErrCorruptData, "keyframe index is %v", index)
		}
	}

	m, err := spatialmath.NewMatrixFromSlice(values)
	if err != nil {
		return errors.Wrap(ErrCorruptData, err.Error())
	}
	if !m.IsFinite() {
		return errors.Wrap(ErrCorruptData, "keyframe matrix has non-finite values")
	}

	k.Matrix = m
	k.index = index
	return nil
}

func shortReadError(field string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return errors.Wrapf(ErrCorruptData, "truncated keyframe %s", field)
	}
	return errors.Wrapf(ErrIOFailure, "reading keyframe %s: %v", field, err)
}
