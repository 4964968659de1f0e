package keyframe

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.ccpose.dev/ccpose/spatialmath"
)

func TestConstructors(t *testing.T) {
	k := New()
	test.That(t, k.Index(), test.ShouldEqual, 0)
	test.That(t, k.Matrix, test.ShouldResemble, spatialmath.NewIdentity())

	m := spatialmath.NewMatrixFromParameters(0.5, 0.1, -0.2, r3.Vector{X: 1})
	k = FromMatrix(m)
	test.That(t, k.Index(), test.ShouldEqual, 0)
	test.That(t, k.Matrix, test.ShouldResemble, m)

	k = FromMatrixIndex(m, 42.5)
	test.That(t, k.Index(), test.ShouldEqual, 42.5)
	test.That(t, k.Matrix, test.ShouldResemble, m)

	copied := k
	copied.SetIndex(7)
	copied.Translate(r3.Vector{X: 1})
	test.That(t, k.Index(), test.ShouldEqual, 42.5)
	test.That(t, k.Translation(), test.ShouldResemble, r3.Vector{X: 1})
	test.That(t, copied.Index(), test.ShouldEqual, 7)
}

func TestCompositionPreservesIndex(t *testing.T) {
	a := FromMatrixIndex(spatialmath.NewMatrixFromParameters(0.3, 0, 0, r3.Vector{Y: 2}), 3.25)
	b := spatialmath.NewMatrixFromParameters(0, 0.7, 0.1, r3.Vector{X: -1})

	c := a.Mul(b)
	test.That(t, c.Index(), test.ShouldEqual, 3.25)
	test.That(t, c.Matrix, test.ShouldResemble, a.Matrix.Mul(b))
	test.That(t, a.Index(), test.ShouldEqual, 3.25)

	a.MulInPlace(b)
	test.That(t, a.Index(), test.ShouldEqual, 3.25)
	test.That(t, a.Matrix, test.ShouldResemble, c.Matrix)

	// composing with another keyframe's matrix leaves our index alone
	other := FromMatrixIndex(b, 99)
	a.MulInPlace(other.Matrix)
	test.That(t, a.Index(), test.ShouldEqual, 3.25)
}

func TestTranslatePreservesIndex(t *testing.T) {
	k := FromMatrixIndex(spatialmath.NewTranslation(r3.Vector{X: 1, Y: 1, Z: 1}), 8)
	k.Translate(r3.Vector{X: 1, Y: 2, Z: 3})
	test.That(t, k.Translation(), test.ShouldResemble, r3.Vector{X: 2, Y: 3, Z: 4})
	k.Untranslate(r3.Vector{X: 2, Y: 3, Z: 4})
	test.That(t, k.Translation(), test.ShouldResemble, r3.Vector{})
	test.That(t, k.Index(), test.ShouldEqual, 8)
}

func TestInverseTransposeKeepIndex(t *testing.T) {
	k := FromMatrixIndex(spatialmath.NewMatrixFromParameters(1, -0.5, 2, r3.Vector{X: 3, Y: -4, Z: 5}), -1.5)

	inv := k.Inverse()
	test.That(t, inv.Index(), test.ShouldEqual, -1.5)
	test.That(t, inv.Inverse().AlmostEqual(k, 1e-9), test.ShouldBeTrue)
	test.That(t, k.Mul(inv.Matrix).Matrix.AlmostEqual(spatialmath.NewIdentity(), 1e-9), test.ShouldBeTrue)

	tr := k.Transposed()
	test.That(t, tr.Index(), test.ShouldEqual, -1.5)
	test.That(t, tr.Transposed(), test.ShouldResemble, k)
}

func TestString(t *testing.T) {
	k := FromMatrixIndex(spatialmath.NewMatrixFromParameters(math.Pi/2, 0, 0, r3.Vector{}), 2)
	test.That(t, k.String(), test.ShouldStartWith, "keyframe@2{")
}
