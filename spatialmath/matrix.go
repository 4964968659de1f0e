// Package spatialmath defines the rigid transformation primitives used by keyframes and the camera editor.
package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/floats"
)

// Matrix is a 4x4 homogeneous transformation stored in column-major order, the same
// layout OpenGL expects. The upper-left 3x3 block holds the rotation and the last
// column holds the translation.
//
// The zero value is the zero matrix, not the identity; use NewIdentity.
type Matrix struct {
	mat mgl64.Mat4
}

// NewIdentity returns the identity transformation.
func NewIdentity() Matrix {
	return Matrix{mat: mgl64.Ident4()}
}

// NewMatrix wraps a raw column-major 4x4 matrix.
func NewMatrix(m mgl64.Mat4) Matrix {
	return Matrix{mat: m}
}

// NewMatrixFromSlice builds a matrix from 16 column-major values.
func NewMatrixFromSlice(values []float64) (Matrix, error) {
	if len(values) != 16 {
		return Matrix{}, newMatrixDimError(len(values))
	}
	var m mgl64.Mat4
	copy(m[:], values)
	return Matrix{mat: m}, nil
}

// NewTranslation returns a pure translation.
func NewTranslation(t r3.Vector) Matrix {
	return Matrix{mat: mgl64.Translate3D(t.X, t.Y, t.Z)}
}

// Mat4 returns the underlying column-major matrix.
func (m Matrix) Mat4() mgl64.Mat4 {
	return m.mat
}

// Data returns a copy of the 16 column-major values.
func (m Matrix) Data() []float64 {
	out := make([]float64, 16)
	copy(out, m.mat[:])
	return out
}

// At returns the element at the given row and column.
func (m Matrix) At(row, col int) float64 {
	return m.mat.At(row, col)
}

// Mul returns m ∘ other, i.e. other is applied first.
func (m Matrix) Mul(other Matrix) Matrix {
	return Matrix{mat: m.mat.Mul4(other.mat)}
}

// Inverse returns the inverse transformation. A singular matrix has no inverse
// and yields the zero matrix.
func (m Matrix) Inverse() Matrix {
	return Matrix{mat: m.mat.Inv()}
}

// Transposed returns the transpose of the full 4x4 matrix.
func (m Matrix) Transposed() Matrix {
	return Matrix{mat: m.mat.Transpose()}
}

// Translation returns the translation component.
func (m Matrix) Translation() r3.Vector {
	return r3.Vector{X: m.mat[12], Y: m.mat[13], Z: m.mat[14]}
}

// SetTranslation replaces the translation component.
func (m *Matrix) SetTranslation(t r3.Vector) {
	m.mat[12] = t.X
	m.mat[13] = t.Y
	m.mat[14] = t.Z
}

// AddTranslation offsets the translation component by t.
func (m *Matrix) AddTranslation(t r3.Vector) {
	m.SetTranslation(m.Translation().Add(t))
}

// Rotation returns a copy of m with its translation cleared.
func (m Matrix) Rotation() Matrix {
	r := m
	r.SetTranslation(r3.Vector{})
	return r
}

// Apply transforms a point.
func (m Matrix) Apply(p r3.Vector) r3.Vector {
	v := m.mat.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1})
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}

// ApplyRotation transforms a direction, ignoring translation.
func (m Matrix) ApplyRotation(d r3.Vector) r3.Vector {
	v := m.mat.Mul4x1(mgl64.Vec4{d.X, d.Y, d.Z, 0})
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}

// IsFinite reports whether every element is a finite number.
func (m Matrix) IsFinite() bool {
	for _, v := range m.mat {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// AlmostEqual compares two matrices element-wise within an absolute tolerance.
func (m Matrix) AlmostEqual(other Matrix, tol float64) bool {
	return floats.EqualApprox(m.mat[:], other.mat[:], tol)
}
