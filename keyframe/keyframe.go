// Package keyframe implements indexed transformations: a rigid transformation tagged
// with a scalar index such as a timestamp or a position along a trajectory.
//
// The index says which keyframe a transformation is, not what it does spatially,
// so no spatial operation ever changes it.
package keyframe

import (
	"fmt"

	"github.com/golang/geo/r3"

	"go.ccpose.dev/ccpose/spatialmath"
)

// Keyframe is a 4x4 transformation associated with an index. It is a value type;
// copying a Keyframe copies both the matrix and the index.
type Keyframe struct {
	spatialmath.Matrix
	index float64
}

// New returns the identity transformation with index 0.
func New() Keyframe {
	return Keyframe{Matrix: spatialmath.NewIdentity()}
}

// FromMatrix returns a keyframe holding m, with index 0.
func FromMatrix(m spatialmath.Matrix) Keyframe {
	return Keyframe{Matrix: m}
}

// FromMatrixIndex returns a keyframe holding m at the given index.
func FromMatrixIndex(m spatialmath.Matrix, index float64) Keyframe {
	return Keyframe{Matrix: m, index: index}
}

// Index returns the associated index.
func (k Keyframe) Index() float64 {
	return k.index
}

// SetIndex sets the associated index.
func (k *Keyframe) SetIndex(index float64) {
	k.index = index
}

// Mul returns k ∘ m. The index is preserved.
func (k Keyframe) Mul(m spatialmath.Matrix) Keyframe {
	return Keyframe{Matrix: k.Matrix.Mul(m), index: k.index}
}

// MulInPlace replaces k with k ∘ m. The index is preserved.
func (k *Keyframe) MulInPlace(m spatialmath.Matrix) {
	k.Matrix = k.Matrix.Mul(m)
}

// Translate adds t to the translation. The index is preserved.
func (k *Keyframe) Translate(t r3.Vector) {
	k.AddTranslation(t)
}

// Untranslate subtracts t from the translation. The index is preserved.
func (k *Keyframe) Untranslate(t r3.Vector) {
	k.AddTranslation(t.Mul(-1))
}

// Transposed returns the transposed transformation with the same index.
func (k Keyframe) Transposed() Keyframe {
	return Keyframe{Matrix: k.Matrix.Transposed(), index: k.index}
}

// Inverse returns the inverse transformation with the same index.
func (k Keyframe) Inverse() Keyframe {
	return Keyframe{Matrix: k.Matrix.Inverse(), index: k.index}
}

// AlmostEqual reports whether both keyframes have the same index and matrices within tol.
func (k Keyframe) AlmostEqual(other Keyframe, tol float64) bool {
	return k.index == other.index && k.Matrix.AlmostEqual(other.Matrix, tol)
}

func (k Keyframe) String() string {
	phi, theta, psi, t := k.Parameters()
	return fmt.Sprintf("keyframe@%g{phi: %g, theta: %g, psi: %g, t: %v}", k.index, phi, theta, psi, t)
}
