// Package track holds transformation tracks: keyframes ordered by index that can be
// queried at any index in between.
package track

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.ccpose.dev/ccpose/keyframe"
	"go.ccpose.dev/ccpose/logging"
)

// ErrEmptyTrack is returned when querying a track without keyframes.
var ErrEmptyTrack = errors.New("track has no keyframes")

// maxSamples bounds the number of keyframes a single Sample call returns.
const maxSamples = 1 << 20

// Track is a piecewise trajectory through keyframes sorted by strictly increasing index.
// It is not safe for concurrent mutation.
type Track struct {
	keyframes []keyframe.Keyframe
	clamp     bool
	logger    logging.Logger
}

// Option configures a Track.
type Option func(*Track)

// WithClamp makes lookups outside the track return the nearest end keyframe
// instead of failing with keyframe.ErrInvalidRange.
func WithClamp() Option {
	return func(t *Track) {
		t.clamp = true
	}
}

// WithLogger sets the logger used to report edits.
func WithLogger(logger logging.Logger) Option {
	return func(t *Track) {
		t.logger = logger
	}
}

// New returns a track through the given keyframes, which may be in any order.
// Two keyframes sharing an index is an error.
func New(keyframes []keyframe.Keyframe, opts ...Option) (*Track, error) {
	dups := lo.FindDuplicatesBy(keyframes, func(k keyframe.Keyframe) float64 {
		return k.Index()
	})
	if len(dups) > 0 {
		return nil, errors.Errorf("duplicate keyframe index %v", dups[0].Index())
	}
	for _, k := range keyframes {
		if math.IsNaN(k.Index()) {
			return nil, errors.New("keyframe index is NaN")
		}
	}

	t := &Track{
		keyframes: append([]keyframe.Keyframe(nil), keyframes...),
		logger:    logging.NewBlankLogger("track"),
	}
	for _, opt := range opts {
		opt(t)
	}
	sort.SliceStable(t.keyframes, func(i, j int) bool {
		return t.keyframes[i].Index() < t.keyframes[j].Index()
	})
	return t, nil
}

// Len returns the number of keyframes.
func (t *Track) Len() int {
	return len(t.keyframes)
}

// Keyframes returns a copy of the keyframes in index order.
func (t *Track) Keyframes() []keyframe.Keyframe {
	return append([]keyframe.Keyframe(nil), t.keyframes...)
}

// Indexes returns the keyframe indexes in increasing order.
func (t *Track) Indexes() []float64 {
	return lo.Map(t.keyframes, func(k keyframe.Keyframe, _ int) float64 {
		return k.Index()
	})
}

// Bounds returns the smallest and largest index. ok is false for an empty track.
func (t *Track) Bounds() (first, last float64, ok bool) {
	if len(t.keyframes) == 0 {
		return 0, 0, false
	}
	return t.keyframes[0].Index(), t.keyframes[len(t.keyframes)-1].Index(), true
}

// search returns the position of the first keyframe whose index is >= index.
func (t *Track) search(index float64) int {
	return sort.Search(len(t.keyframes), func(i int) bool {
		return t.keyframes[i].Index() >= index
	})
}

// Add inserts k in index order. A keyframe already at that index is replaced.
func (t *Track) Add(k keyframe.Keyframe) error {
	if math.IsNaN(k.Index()) {
		return errors.New("keyframe index is NaN")
	}
	i := t.search(k.Index())
	if i < len(t.keyframes) && t.keyframes[i].Index() == k.Index() {
		t.logger.Debugw("replacing keyframe", "index", k.Index())
		t.keyframes[i] = k
		return nil
	}
	t.logger.Debugw("inserting keyframe", "index", k.Index(), "position", i)
	t.keyframes = append(t.keyframes, keyframe.Keyframe{})
	copy(t.keyframes[i+1:], t.keyframes[i:])
	t.keyframes[i] = k
	return nil
}

// Remove deletes the keyframe at exactly index and reports whether one was found.
func (t *Track) Remove(index float64) bool {
	i := t.search(index)
	if i == len(t.keyframes) || t.keyframes[i].Index() != index {
		return false
	}
	t.keyframes = append(t.keyframes[:i], t.keyframes[i+1:]...)
	t.logger.Debugw("removed keyframe", "index", index)
	return true
}

// Get returns the keyframe stored at exactly index.
func (t *Track) Get(index float64) (keyframe.Keyframe, bool) {
	i := t.search(index)
	if i == len(t.keyframes) || t.keyframes[i].Index() != index {
		return keyframe.Keyframe{}, false
	}
	return t.keyframes[i], true
}

// At returns the transformation at index, interpolated between the two keyframes
// around it.
func (t *Track) At(index float64) (keyframe.Keyframe, error) {
	n := len(t.keyframes)
	if n == 0 {
		return keyframe.Keyframe{}, ErrEmptyTrack
	}
	first, last := t.keyframes[0], t.keyframes[n-1]
	if t.clamp {
		if index <= first.Index() {
			return keyframe.FromMatrixIndex(first.Matrix, index), nil
		}
		if index >= last.Index() {
			return keyframe.FromMatrixIndex(last.Matrix, index), nil
		}
	}
	if n == 1 {
		return keyframe.Interpolate(index, first, first)
	}

	i := t.search(index)
	switch {
	case i == 0:
		return keyframe.Interpolate(index, first, t.keyframes[1])
	case i == n:
		return keyframe.Interpolate(index, t.keyframes[n-2], last)
	}
	return keyframe.Interpolate(index, t.keyframes[i-1], t.keyframes[i])
}

// Sample returns the track evaluated every step from `from` up to and including `to`.
func (t *Track) Sample(from, to, step float64) ([]keyframe.Keyframe, error) {
	if !(step > 0) || math.IsInf(step, 0) {
		return nil, errors.Errorf("sample step must be positive and finite, got %v", step)
	}
	if math.IsNaN(from) || math.IsInf(from, 0) || math.IsNaN(to) || math.IsInf(to, 0) {
		return nil, errors.Errorf("sample range [%v, %v] is not finite", from, to)
	}
	if to < from {
		return nil, errors.Errorf("sample range is reversed: %v > %v", from, to)
	}
	n := math.Floor((to-from)/step+1e-9) + 1
	if !(n <= maxSamples) {
		return nil, errors.Errorf("sampling [%v, %v] every %v gives more than %d samples", from, to, step, maxSamples)
	}
	count := int(n)
	samples := make([]keyframe.Keyframe, 0, count)
	for i := 0; i < count; i++ {
		k, err := t.At(from + float64(i)*step)
		if err != nil {
			return nil, err
		}
		samples = append(samples, k)
	}
	return samples, nil
}
