package keyframe

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.ccpose.dev/ccpose/spatialmath"
)

func TestEncodeDecode(t *testing.T) {
	k := FromMatrixIndex(spatialmath.NewMatrixFromParameters(0.1, 0.2, 0.3, r3.Vector{X: 1.5, Y: -2, Z: 1e-7}), 123.456)

	for _, flags := range []Flags{0, FlagBigEndian} {
		var buf bytes.Buffer
		test.That(t, k.Encode(&buf, flags), test.ShouldBeNil)
		size, err := RecordSize(CurrentVersion)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, buf.Len(), test.ShouldEqual, size)

		var back Keyframe
		test.That(t, back.Decode(&buf, CurrentVersion, flags), test.ShouldBeNil)
		test.That(t, back, test.ShouldResemble, k)
	}
}

func TestEncodeByteOrder(t *testing.T) {
	var little, big bytes.Buffer
	k := FromMatrixIndex(spatialmath.NewIdentity(), 1)
	test.That(t, k.Encode(&little, 0), test.ShouldBeNil)
	test.That(t, k.Encode(&big, FlagBigEndian), test.ShouldBeNil)
	test.That(t, little.Bytes(), test.ShouldNotResemble, big.Bytes())

	var wrong Keyframe
	err := wrong.Decode(&big, CurrentVersion, 0)
	// big endian 1.0 read as little endian is a tiny denormal, still finite
	test.That(t, err, test.ShouldBeNil)
	test.That(t, wrong.Matrix.AlmostEqual(spatialmath.NewIdentity(), 1e-3), test.ShouldBeFalse)
}

func writeLegacy(t *testing.T, m spatialmath.Matrix, index *float64) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	var single [16]float32
	for i, v := range m.Data() {
		single[i] = float32(v)
	}
	test.That(t, binary.Write(&buf, binary.LittleEndian, single), test.ShouldBeNil)
	if index != nil {
		test.That(t, binary.Write(&buf, binary.LittleEndian, *index), test.ShouldBeNil)
	}
	return &buf
}

func TestDecodeOlderVersions(t *testing.T) {
	m := spatialmath.NewMatrixFromParameters(1, 0.5, -0.25, r3.Vector{X: 10, Y: 20, Z: 30})

	t.Run("legacy", func(t *testing.T) {
		k := FromMatrixIndex(spatialmath.NewIdentity(), 5)
		test.That(t, k.Decode(writeLegacy(t, m, nil), VersionLegacy, 0), test.ShouldBeNil)
		test.That(t, k.Index(), test.ShouldEqual, 0)
		test.That(t, k.Matrix.AlmostEqual(m, 1e-5), test.ShouldBeTrue)
	})

	t.Run("indexed", func(t *testing.T) {
		index := 4.25
		var k Keyframe
		test.That(t, k.Decode(writeLegacy(t, m, &index), VersionIndexed, 0), test.ShouldBeNil)
		test.That(t, k.Index(), test.ShouldEqual, 4.25)
		test.That(t, k.Matrix.AlmostEqual(m, 1e-5), test.ShouldBeTrue)
	})
}

func TestDecodeCorrupt(t *testing.T) {
	k := FromMatrixIndex(spatialmath.NewIdentity(), 2)
	var full bytes.Buffer
	test.That(t, k.Encode(&full, 0), test.ShouldBeNil)
	encoded := full.Bytes()

	for _, tc := range []struct {
		name    string
		data    []byte
		version Version
	}{
		{"empty", nil, CurrentVersion},
		{"half matrix", encoded[:64], CurrentVersion},
		{"missing index", encoded[:128], CurrentVersion},
		{"partial index", encoded[:130], CurrentVersion},
		{"unknown version", encoded, 0},
		{"future version", encoded, CurrentVersion + 1},
		{"legacy truncated", encoded[:10], VersionLegacy},
	} {
		t.Run(tc.name, func(t *testing.T) {
			target := FromMatrixIndex(spatialmath.NewTranslation(r3.Vector{Z: 1}), 77)
			err := target.Decode(bytes.NewReader(tc.data), tc.version, 0)
			test.That(t, errors.Is(err, ErrCorruptData), test.ShouldBeTrue)
			test.That(t, target.Index(), test.ShouldEqual, 77)
			test.That(t, target.Translation(), test.ShouldResemble, r3.Vector{Z: 1})
		})
	}

	t.Run("non-finite", func(t *testing.T) {
		bad := FromMatrixIndex(spatialmath.NewIdentity(), math.NaN())
		var buf bytes.Buffer
		test.That(t, bad.Encode(&buf, 0), test.ShouldBeNil)
		var target Keyframe
		test.That(t, errors.Is(target.Decode(&buf, CurrentVersion, 0), ErrCorruptData), test.ShouldBeTrue)

		m := spatialmath.NewIdentity()
		m.SetTranslation(r3.Vector{X: math.Inf(-1)})
		buf.Reset()
		test.That(t, FromMatrix(m).Encode(&buf, 0), test.ShouldBeNil)
		test.That(t, errors.Is(target.Decode(&buf, CurrentVersion, 0), ErrCorruptData), test.ShouldBeTrue)
	})
}
