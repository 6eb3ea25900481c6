package math

import (
	m "math"
	"unsafe"

	"golang.org/x/exp/constraints"
)

const (
	/** @brief An approximate representation of PI. */
	K_PI float64 = 3.14159265358979323846
	/** @brief An approximate representation of PI multiplied by 2. */
	K_PI_2 float64 = 2.0 * K_PI
	/** @brief An approximate representation of PI divided by 2. */
	K_HALF_PI float64 = 0.5 * K_PI
	/** @brief A multiplier used to convert degrees to radians. */
	K_DEG2RAD_MULTIPLIER float64 = K_PI / 180.0
	/** @brief A multiplier used to convert radians to degrees. */
	K_RAD2DEG_MULTIPLIER float64 = 180.0 / K_PI
	/** @brief Smallest positive number where 1.0 + FLOAT_EPSILON != 1.0 in single precision. */
	K_FLOAT_EPSILON float32 = 1.192092896e-07
	/** @brief Smallest positive number where 1.0 + DOUBLE_EPSILON != 1.0 in double precision. */
	K_DOUBLE_EPSILON float64 = 2.2204460492503131e-16
)

/**
 * Note that these are here in order to prevent having to convert
 * to and from float64 at every call site.
 */
func ksin[T constraints.Float](x T) T {
	return T(m.Sin(float64(x)))
}

func kcos[T constraints.Float](x T) T {
	return T(m.Cos(float64(x)))
}

func kacos[T constraints.Float](x T) T {
	return T(m.Acos(float64(x)))
}

func ksqrt[T constraints.Float](x T) T {
	return T(m.Sqrt(float64(x)))
}

func kabs[T constraints.Float](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

/**
 * @brief Returns the machine epsilon matching the precision of T:
 * K_FLOAT_EPSILON for single precision, K_DOUBLE_EPSILON otherwise.
 */
func Epsilon[T constraints.Float]() T {
	var zero T
	if unsafe.Sizeof(zero) == 4 {
		return T(K_FLOAT_EPSILON)
	}
	return T(K_DOUBLE_EPSILON)
}

/**
 * @brief Reports whether a and b differ by no more than the epsilon of T.
 *
 * @param a The first value.
 * @param b The second value.
 * @return True if within epsilon; otherwise false.
 */
func IsNearlyEqual[T constraints.Float](a, b T) bool {
	return kabs(a-b) <= Epsilon[T]()
}

/**
 * @brief Reports whether v is within the epsilon of T from zero.
 */
func IsNearlyZero[T constraints.Float](v T) bool {
	return IsNearlyEqual(v, 0)
}

/**
 * @brief Converts provided degrees to radians.
 *
 * @param degrees The degrees to be converted.
 * @return The amount in radians.
 */
func DegToRad[T constraints.Float](degrees T) T {
	return T(float64(degrees) * K_DEG2RAD_MULTIPLIER)
}

/**
 * @brief Converts provided radians to degrees.
 *
 * @param radians The radians to be converted.
 * @return The amount in degrees.
 */
func RadToDeg[T constraints.Float](radians T) T {
	return T(float64(radians) * K_RAD2DEG_MULTIPLIER)
}

// SinDeg returns the sine of an angle given in degrees.
func SinDeg[T constraints.Float](degrees T) T {
	return ksin(DegToRad(degrees))
}

// CosDeg returns the cosine of an angle given in degrees.
func CosDeg[T constraints.Float](degrees T) T {
	return kcos(DegToRad(degrees))
}

// Clamp returns the value `f` clamped to the range [low, high].
// It works for any ordered type (integers and floats).
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}
