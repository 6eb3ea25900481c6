package math

import (
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"
)

func checkDimension(op string, size int) error {
	if size < 1 || size > MaxDimension {
		return fmt.Errorf("%s: dimension %d not in [1, %d]: %w", op, size, MaxDimension, ErrInvalidDimension)
	}
	return nil
}

// NewVector returns a zero-initialized vector with size components.
func NewVector[T constraints.Float](size int) (Vector[T], error) {
	if err := checkDimension("NewVector", size); err != nil {
		return Vector[T]{}, err
	}
	return Vector[T]{size: size}, nil
}

// NewVectorFromValues builds a vector of the given size from a buffer that
// must hold exactly size scalars.
func NewVectorFromValues[T constraints.Float](size int, values []T) (Vector[T], error) {
	v, err := NewVector[T](size)
	if err != nil {
		return v, err
	}
	if len(values) != size {
		return Vector[T]{}, fmt.Errorf("NewVectorFromValues: %d values for size %d: %w", len(values), size, ErrInvalidSize)
	}
	copy(v.values[:size], values)
	return v, nil
}

/**
 * @brief Creates and returns a new 2-element vector using the supplied values.
 */
func NewVector2(x, y float32) Vector2 {
	return Vector2{size: 2, values: [MaxDimension]float32{x, y}}
}

/**
 * @brief Creates and returns a new 3-element vector using the supplied values.
 */
func NewVector3(x, y, z float32) Vector3 {
	return Vector3{size: 3, values: [MaxDimension]float32{x, y, z}}
}

/**
 * @brief Creates and returns a new 4-element vector using the supplied values.
 */
func NewVector4(x, y, z, w float32) Vector4 {
	return Vector4{size: 4, values: [MaxDimension]float32{x, y, z, w}}
}

// Size returns the number of components.
func (v Vector[T]) Size() int {
	return v.size
}

// ValueAt returns the component at index.
func (v Vector[T]) ValueAt(index int) (T, error) {
	if index < 0 || index >= v.size {
		return 0, fmt.Errorf("ValueAt: index %d, size %d: %w", index, v.size, ErrInvalidIndex)
	}
	return v.values[index], nil
}

// SetValueAt overwrites the component at index.
func (v *Vector[T]) SetValueAt(index int, value T) error {
	if index < 0 || index >= v.size {
		return fmt.Errorf("SetValueAt: index %d, size %d: %w", index, v.size, ErrInvalidIndex)
	}
	v.values[index] = value
	return nil
}

// Values returns a copy of the components.
func (v Vector[T]) Values() []T {
	out := make([]T, v.size)
	copy(out, v.values[:v.size])
	return out
}

func (v Vector[T]) sameSize(op string, other Vector[T]) error {
	if v.size != other.size {
		return fmt.Errorf("%s: sizes %d and %d: %w", op, v.size, other.size, ErrInvalidDimension)
	}
	return nil
}

// Add returns v + other.
func (v Vector[T]) Add(other Vector[T]) (Vector[T], error) {
	if err := v.sameSize("Add", other); err != nil {
		return Vector[T]{}, err
	}
	for i := 0; i < v.size; i++ {
		v.values[i] += other.values[i]
	}
	return v, nil
}

// Sub returns v - other.
func (v Vector[T]) Sub(other Vector[T]) (Vector[T], error) {
	if err := v.sameSize("Sub", other); err != nil {
		return Vector[T]{}, err
	}
	for i := 0; i < v.size; i++ {
		v.values[i] -= other.values[i]
	}
	return v, nil
}

/**
 * @brief Multiplies all elements of the vector by scalar and returns a copy of the result.
 */
func (v Vector[T]) MulScalar(scalar T) Vector[T] {
	for i := 0; i < v.size; i++ {
		v.values[i] *= scalar
	}
	return v
}

// Negate returns -v.
func (v Vector[T]) Negate() Vector[T] {
	return v.MulScalar(-1)
}

// Magnitude returns the Euclidean length. A zero vector has magnitude 0.
func (v Vector[T]) Magnitude() T {
	var sum T
	for i := 0; i < v.size; i++ {
		sum += v.values[i] * v.values[i]
	}
	return ksqrt(sum)
}

// Normalize divides every component by the magnitude, in place. A zero
// vector has no direction; its components become NaN.
func (v *Vector[T]) Normalize() {
	length := v.Magnitude()
	for i := 0; i < v.size; i++ {
		v.values[i] /= length
	}
}

// Normalized returns a normalized copy of v.
func (v Vector[T]) Normalized() Vector[T] {
	v.Normalize()
	return v
}

// IsNormalized reports whether the magnitude is nearly 1.
func (v Vector[T]) IsNormalized() bool {
	return IsNearlyEqual(v.Magnitude(), 1)
}

// Dot returns the dot product of v and other.
func (v Vector[T]) Dot(other Vector[T]) (T, error) {
	return DotProduct(v, other)
}

// DotProduct returns the sum of a[i]*b[i].
func DotProduct[T constraints.Float](a, b Vector[T]) (T, error) {
	if err := a.sameSize("DotProduct", b); err != nil {
		return 0, err
	}
	var dot T
	for i := 0; i < a.size; i++ {
		dot += a.values[i] * b.values[i]
	}
	return dot, nil
}

// CrossProduct is defined for sizes 2 and 3. In two dimensions the result is
// a 1-vector holding the perp dot product: a rotated by 90 degrees, dotted
// with b. Any other size fails with ErrInvalidDimension.
func CrossProduct[T constraints.Float](a, b Vector[T]) (Vector[T], error) {
	if err := a.sameSize("CrossProduct", b); err != nil {
		return Vector[T]{}, err
	}
	switch a.size {
	case 2:
		perp := Vector[T]{size: 2, values: [MaxDimension]T{-a.values[1], a.values[0]}}
		dot, _ := DotProduct(perp, b)
		return Vector[T]{size: 1, values: [MaxDimension]T{dot}}, nil
	case 3:
		return Vector[T]{size: 3, values: [MaxDimension]T{
			a.values[1]*b.values[2] - a.values[2]*b.values[1],
			a.values[2]*b.values[0] - a.values[0]*b.values[2],
			a.values[0]*b.values[1] - a.values[1]*b.values[0],
		}}, nil
	default:
		return Vector[T]{}, fmt.Errorf("CrossProduct: size %d: %w", a.size, ErrInvalidDimension)
	}
}

// Cross returns CrossProduct(v, other).
func (v Vector[T]) Cross(other Vector[T]) (Vector[T], error) {
	return CrossProduct(v, other)
}

/**
 * @brief Returns the distance between v and other.
 */
func (v Vector[T]) Distance(other Vector[T]) (T, error) {
	d, err := v.Sub(other)
	if err != nil {
		return 0, err
	}
	return d.Magnitude(), nil
}

/**
 * @brief Compares all elements of v and other and ensures the difference
 * is less than tolerance. Vectors of different sizes never compare equal.
 *
 * @param tolerance The difference tolerance. Typically Epsilon[T]() or similar.
 * @return True if within tolerance; otherwise false.
 */
func (v Vector[T]) Compare(other Vector[T], tolerance T) bool {
	if v.size != other.size {
		return false
	}
	for i := 0; i < v.size; i++ {
		if kabs(v.values[i]-other.values[i]) > tolerance {
			return false
		}
	}
	return true
}

// String renders the vector as V(a, b, c).
func (v Vector[T]) String() string {
	parts := make([]string, v.size)
	for i := 0; i < v.size; i++ {
		parts[i] = fmt.Sprint(v.values[i])
	}
	return "V(" + strings.Join(parts, ", ") + ")"
}
