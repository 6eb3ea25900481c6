package math

import (
	"fmt"
	m "math"
)

// QuaternionZero has every component set to 0. It does not represent a
// rotation.
var QuaternionZero = Quaternion{}

/**
 * @brief Creates a quaternion from its components.
 */
func NewQuaternion(w, x, y, z float32) Quaternion {
	return Quaternion{W: w, X: x, Y: y, Z: z}
}

// NewQuaternionFromValues reads w, x, y, z from a buffer of exactly four
// scalars.
func NewQuaternionFromValues(values []float32) (Quaternion, error) {
	if len(values) != 4 {
		return Quaternion{}, fmt.Errorf("NewQuaternionFromValues: %d values: %w", len(values), ErrInvalidSize)
	}
	return Quaternion{W: values[0], X: values[1], Y: values[2], Z: values[3]}, nil
}

/**
 * @brief Creates an identity quaternion.
 */
func NewQuaternionIdentity() Quaternion {
	return Quaternion{W: 1}
}

// CreateRotationAboutAxis returns the rotation of angle degrees about axis.
// The axis is normalized first; it must be a 3-vector.
func CreateRotationAboutAxis(angle float32, axis Vector3) (Quaternion, error) {
	if axis.size != 3 {
		return Quaternion{}, fmt.Errorf("CreateRotationAboutAxis: axis size %d: %w", axis.size, ErrInvalidDimension)
	}
	axis.Normalize()

	half := DegToRad(angle) / 2
	s := ksin(half)

	rotation := Quaternion{
		W: kcos(half),
		X: s * axis.values[0],
		Y: s * axis.values[1],
		Z: s * axis.values[2],
	}
	rotation.clearNearlyZeroComponents()
	return rotation, nil
}

func (q *Quaternion) clearNearlyZeroComponents() {
	if IsNearlyZero(q.W) {
		q.W = 0
	}
	if IsNearlyZero(q.X) {
		q.X = 0
	}
	if IsNearlyZero(q.Y) {
		q.Y = 0
	}
	if IsNearlyZero(q.Z) {
		q.Z = 0
	}
}

// Magnitude returns sqrt(w² + x² + y² + z²).
func (q Quaternion) Magnitude() float32 {
	return ksqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
}

// IsUnit reports whether the magnitude is nearly 1.
func (q Quaternion) IsUnit() bool {
	return IsNearlyEqual(q.Magnitude(), 1)
}

// Dot returns the four-component dot product.
func (q Quaternion) Dot(other Quaternion) float32 {
	return q.W*other.W + q.X*other.X + q.Y*other.Y + q.Z*other.Z
}

// Conjugate negates x, y and z in place.
func (q *Quaternion) Conjugate() {
	q.X = -q.X
	q.Y = -q.Y
	q.Z = -q.Z
}

/**
 * @brief Returns the conjugate of the quaternion. That is,
 * the x, y and z elements are negated, but the w element is untouched.
 */
func (q Quaternion) Conjugated() Quaternion {
	q.Conjugate()
	return q
}

// Invert replaces q with its conjugate scaled by 1/|q|². For unit
// quaternions this equals the conjugate.
func (q *Quaternion) Invert() {
	*q = q.Inverted()
}

// Inverted returns the inverse of q.
func (q Quaternion) Inverted() Quaternion {
	magnitude := float64(q.Magnitude())
	inverse := q.Conjugated().MulScalar(float32(1.0 / (magnitude * magnitude)))
	inverse.clearNearlyZeroComponents()
	return inverse
}

// Normalize scales q to unit length in place. Unit quaternions are left
// untouched; the zero quaternion becomes NaN.
func (q *Quaternion) Normalize() {
	if q.IsUnit() {
		return
	}
	invMagnitude := 1.0 / float64(q.Magnitude())
	q.W = float32(float64(q.W) * invMagnitude)
	q.X = float32(float64(q.X) * invMagnitude)
	q.Y = float32(float64(q.Y) * invMagnitude)
	q.Z = float32(float64(q.Z) * invMagnitude)
}

/**
 * @brief Returns a normalized copy of the quaternion.
 */
func (q Quaternion) Normalized() Quaternion {
	q.Normalize()
	return q
}

// Add returns q + other with nearly-zero components snapped to 0.
func (q Quaternion) Add(other Quaternion) Quaternion {
	q.W += other.W
	q.X += other.X
	q.Y += other.Y
	q.Z += other.Z
	q.clearNearlyZeroComponents()
	return q
}

// Sub returns q - other with nearly-zero components snapped to 0.
func (q Quaternion) Sub(other Quaternion) Quaternion {
	q.W -= other.W
	q.X -= other.X
	q.Y -= other.Y
	q.Z -= other.Z
	q.clearNearlyZeroComponents()
	return q
}

/**
 * @brief Returns the Hamilton product q * other. The intermediate sums run
 * in double precision; nearly-zero components are snapped to 0.
 */
func (q Quaternion) Mul(other Quaternion) Quaternion {
	qw, qx, qy, qz := float64(q.W), float64(q.X), float64(q.Y), float64(q.Z)
	ow, ox, oy, oz := float64(other.W), float64(other.X), float64(other.Y), float64(other.Z)

	out := Quaternion{
		W: float32(qw*ow - qx*ox - qy*oy - qz*oz),
		X: float32(qw*ox + qx*ow + qy*oz - qz*oy),
		Y: float32(qw*oy + qy*ow - qx*oz + qz*ox),
		Z: float32(qw*oz + qz*ow + qx*oy - qy*ox),
	}
	out.clearNearlyZeroComponents()
	return out
}

// MulScalar returns q scaled by scalar with nearly-zero components snapped to 0.
func (q Quaternion) MulScalar(scalar float32) Quaternion {
	q.W *= scalar
	q.X *= scalar
	q.Y *= scalar
	q.Z *= scalar
	q.clearNearlyZeroComponents()
	return q
}

// RotateVector returns v rotated by q, computed as q * (0, v) * q⁻¹.
// The w component of the product is dropped.
func (q Quaternion) RotateVector(v Vector3) (Vector3, error) {
	return RotateVectorBy(v, q)
}

// RotateVectorBy returns v rotated by q. v must be a 3-vector.
func RotateVectorBy(v Vector3, q Quaternion) (Vector3, error) {
	if v.size != 3 {
		return Vector3{}, fmt.Errorf("RotateVectorBy: size %d: %w", v.size, ErrInvalidDimension)
	}
	pure := Quaternion{X: v.values[0], Y: v.values[1], Z: v.values[2]}
	rotated := q.Mul(pure).Mul(q.Inverted())
	rotated.clearNearlyZeroComponents()
	return NewVector3(rotated.X, rotated.Y, rotated.Z), nil
}

// Slerp interpolates from q towards other by alpha in [0, 1] along the
// great arc. Inputs are normalized first. When the inputs are identical or
// antipodal sin(theta) is zero and the result is NaN.
func (q Quaternion) Slerp(other Quaternion, alpha float32) Quaternion {
	return Slerp(q, other, alpha)
}

// Slerp is the two-argument form of Quaternion.Slerp.
func Slerp(a, b Quaternion, alpha float32) Quaternion {
	a.Normalize()
	b.Normalize()

	theta := m.Acos(float64(a.Dot(b)))
	sinTheta := m.Sin(theta)
	weightA := m.Sin(theta*(1-float64(alpha))) / sinTheta
	weightB := m.Sin(theta*float64(alpha)) / sinTheta

	return a.MulScalar(float32(weightA)).Add(b.MulScalar(float32(weightB)))
}

/**
 * @brief Creates a 4x4 rotation matrix from the quaternion, for use with
 * column vectors (M * v). The quaternion is normalized first.
 */
func (q Quaternion) ToMatrix4() Matrix4x4 {
	n := q.Normalized()
	out := Matrix4x4{rows: 4, columns: 4}

	out.set(0, 0, 1.0-2.0*n.Y*n.Y-2.0*n.Z*n.Z)
	out.set(0, 1, 2.0*n.X*n.Y-2.0*n.Z*n.W)
	out.set(0, 2, 2.0*n.X*n.Z+2.0*n.Y*n.W)

	out.set(1, 0, 2.0*n.X*n.Y+2.0*n.Z*n.W)
	out.set(1, 1, 1.0-2.0*n.X*n.X-2.0*n.Z*n.Z)
	out.set(1, 2, 2.0*n.Y*n.Z-2.0*n.X*n.W)

	out.set(2, 0, 2.0*n.X*n.Z-2.0*n.Y*n.W)
	out.set(2, 1, 2.0*n.Y*n.Z+2.0*n.X*n.W)
	out.set(2, 2, 1.0-2.0*n.X*n.X-2.0*n.Y*n.Y)

	out.set(3, 3, 1.0)
	return out
}

// String renders the quaternion as Q(w, x, y, z).
func (q Quaternion) String() string {
	return fmt.Sprintf("Q(%v, %v, %v, %v)", q.W, q.X, q.Y, q.Z)
}
