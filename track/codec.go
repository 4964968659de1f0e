package track

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.ccpose.dev/ccpose/keyframe"
)

// magic opens every serialized track.
var magic = [4]byte{'C', 'C', 'T', 'K'}

// maxKeyframes bounds the count a header may claim.
const maxKeyframes = 1 << 24

// initialCapacity caps the up-front allocation when decoding.
const initialCapacity = 1024

type header struct {
	Magic   [4]byte
	Version keyframe.Version
	Flags   uint16
	Count   uint32
}

// Encode writes the track as a header followed by one keyframe record per keyframe,
// in the current keyframe layout.
func (t *Track) Encode(w io.Writer, flags keyframe.Flags) error {
	bw := bufio.NewWriter(w)
	h := header{
		Magic:   magic,
		Version: keyframe.CurrentVersion,
		Flags:   uint16(flags),
		Count:   uint32(len(t.keyframes)),
	}
	// the header is always little endian so readers can find the flags
	if err := binary.Write(bw, binary.LittleEndian, h); err != nil {
		return errors.Wrapf(keyframe.ErrIOFailure, "writing track header: %v", err)
	}
	for _, k := range t.keyframes {
		if err := k.Encode(bw, flags); err != nil {
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrapf(keyframe.ErrIOFailure, "flushing track: %v", err)
	}
	return nil
}

// Decode reads a track written by Encode, in any keyframe version.
func Decode(r io.Reader, opts ...Option) (*Track, error) {
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, errors.Wrapf(keyframe.ErrCorruptData, "reading track header: %v", err)
	}
	if h.Magic != magic {
		return nil, errors.Wrapf(keyframe.ErrCorruptData, "bad track magic %q", h.Magic[:])
	}
	if h.Count > maxKeyframes {
		return nil, errors.Wrapf(keyframe.ErrCorruptData, "track claims %d keyframes", h.Count)
	}

	// grow with the records actually read, not with the count the header claims
	keyframes := make([]keyframe.Keyframe, 0, min(int(h.Count), initialCapacity))
	for i := 0; i < int(h.Count); i++ {
		var k keyframe.Keyframe
		if err := k.Decode(r, h.Version, keyframe.Flags(h.Flags)); err != nil {
			return nil, errors.Wrapf(err, "keyframe %d", i)
		}
		keyframes = append(keyframes, k)
	}
	t, err := New(keyframes, opts...)
	if err != nil {
		return nil, errors.Wrap(keyframe.ErrCorruptData, err.Error())
	}
	return t, nil
}

// WriteFile stores the track at path.
func (t *Track) WriteFile(path string, flags keyframe.Flags) (err error) {
	//nolint:gosec
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(keyframe.ErrIOFailure, "cannot create %q: %v", path, err)
	}
	defer func() {
		err = multierr.Combine(err, f.Close())
	}()
	return t.Encode(f, flags)
}

// ReadFile loads a track from path.
func ReadFile(path string, opts ...Option) (_ *Track, err error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(keyframe.ErrIOFailure, "cannot open %q: %v", path, err)
	}
	defer func() {
		err = multierr.Combine(err, f.Close())
	}()
	return Decode(bufio.NewReader(f), opts...)
}
