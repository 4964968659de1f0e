package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Below this magnitude the rotation axis of a quaternion is numerically meaningless.
const axisEpsilon = 1e-12

// Cosines this close to zero put the Euler decomposition on a pole.
const gimbalEpsilon = 1e-12

// EulerAngles are the three angles, in radians, of the decomposition R = Rz(Phi)·Ry(Theta)·Rx(Psi).
type EulerAngles struct {
	Phi   float64 `json:"phi"`
	Theta float64 `json:"theta"`
	Psi   float64 `json:"psi"`
}

// NewMatrixFromParameters builds a transformation from three Euler angles (radians)
// and a translation. The rotation is Rz(phi)·Ry(theta)·Rx(psi).
func NewMatrixFromParameters(phi, theta, psi float64, t r3.Vector) Matrix {
	c1, s1 := math.Cos(phi), math.Sin(phi)
	c2, s2 := math.Cos(theta), math.Sin(theta)
	c3, s3 := math.Cos(psi), math.Sin(psi)

	m := mgl64.Mat4{
		c2 * c1, c2 * s1, -s2, 0,
		s3*s2*c1 - c3*s1, s3*s2*s1 + c3*c1, s3 * c2, 0,
		c3*s2*c1 + s3*s1, c3*s2*s1 - s3*c1, c3 * c2, 0,
		t.X, t.Y, t.Z, 1,
	}
	return Matrix{mat: m}
}

// Parameters decomposes the rotation into Euler angles (radians) and returns the
// translation alongside. On the poles (theta = ±π/2) phi is fixed to zero and the
// whole remaining rotation is reported in psi.
func (m Matrix) Parameters() (phi, theta, psi float64, t r3.Vector) {
	r := m.mat
	t = m.Translation()
	if 1-math.Abs(r[2]) > gimbalEpsilon {
		theta = -math.Asin(r[2])
		cosTheta := math.Cos(theta)
		psi = math.Atan2(r[6]/cosTheta, r[10]/cosTheta)
		phi = math.Atan2(r[1]/cosTheta, r[0]/cosTheta)
		return phi, theta, psi, t
	}
	if r[2] < 0 {
		theta = math.Pi / 2
		psi = math.Atan2(r[4], r[8])
	} else {
		theta = -math.Pi / 2
		psi = math.Atan2(-r[4], -r[8])
	}
	return 0, theta, psi, t
}

// EulerAngles returns the Euler decomposition of the rotation part.
func (m Matrix) EulerAngles() EulerAngles {
	phi, theta, psi, _ := m.Parameters()
	return EulerAngles{Phi: phi, Theta: theta, Psi: psi}
}

// Quaternion returns the unit quaternion of the rotation part.
func (m Matrix) Quaternion() quat.Number {
	q := mgl64.Mat4ToQuat(m.mat).Normalize()
	return quat.Number{Real: q.W, Imag: q.V[0], Jmag: q.V[1], Kmag: q.V[2]}
}

// NewMatrixFromQuaternion builds a transformation from a rotation quaternion and a
// translation. The quaternion is normalized first.
func NewMatrixFromQuaternion(q quat.Number, t r3.Vector) Matrix {
	mq := mgl64.Quat{W: q.Real, V: mgl64.Vec3{q.Imag, q.Jmag, q.Kmag}}.Normalize()
	m := Matrix{mat: mq.Mat4()}
	m.SetTranslation(t)
	return m
}

// AxisAngle returns the rotation as an angle (radians, in [-π, π]) about a unit axis,
// together with the translation. A null rotation reports the Z axis.
func (m Matrix) AxisAngle() (angle float64, axis, t r3.Vector) {
	aa := QuatToR4AA(m.Quaternion())
	return aa.Theta, r3.Vector{X: aa.RX, Y: aa.RY, Z: aa.RZ}, m.Translation()
}

// NewMatrixFromAxisAngle builds a rotation of angle radians about axis, followed by
// a translation. A zero axis gives a pure translation.
func NewMatrixFromAxisAngle(angle float64, axis, t r3.Vector) Matrix {
	n := axis.Norm()
	if n < axisEpsilon {
		return NewTranslation(t)
	}
	axis = axis.Mul(1 / n)
	m := Matrix{mat: mgl64.HomogRotate3D(angle, mgl64.Vec3{axis.X, axis.Y, axis.Z})}
	m.SetTranslation(t)
	return m
}

// R4AA represents an R4 axis angle.
type R4AA struct {
	Theta float64 `json:"th"`
	RX    float64 `json:"x"`
	RY    float64 `json:"y"`
	RZ    float64 `json:"z"`
}

// QuatToR4AA converts a quat to an R4 axis angle in the same way the C++ Eigen library does,
// so the angle always describes the short way around.
// https://eigen.tuxfamily.org/dox/AngleAxis_8h_source.html
func QuatToR4AA(q quat.Number) R4AA {
	denom := math.Sqrt(q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)

	angle := 2 * math.Atan2(denom, math.Abs(q.Real))
	if q.Real < 0 {
		angle *= -1
	}

	if denom < axisEpsilon {
		return R4AA{0, 0, 0, 1}
	}
	return R4AA{angle, q.Imag / denom, q.Jmag / denom, q.Kmag / denom}
}

// RotationBetween returns the rotation that takes a to b in a's frame, aᵀ·b, ignoring translations.
func RotationBetween(a, b Matrix) Matrix {
	return a.Rotation().Transposed().Mul(b.Rotation())
}

// AngleBetween returns the geodesic angle, in radians, between the rotations of a and b.
func AngleBetween(a, b Matrix) float64 {
	angle, _, _ := RotationBetween(a, b).AxisAngle()
	return math.Abs(angle)
}
