package math

import (
	"fmt"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/rand"
)

// NewRandom returns a deterministic generator for the given seed.
func NewRandom(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// RandomInRange returns a uniform value in [min, max).
func RandomInRange[T constraints.Float](rng *rand.Rand, min, max T) T {
	return min + T(rng.Float64())*(max-min)
}

// RandomVector returns a vector whose components are uniform in [min, max).
func RandomVector[T constraints.Float](rng *rand.Rand, size int, min, max T) (Vector[T], error) {
	v, err := NewVector[T](size)
	if err != nil {
		return v, fmt.Errorf("RandomVector: %w", err)
	}
	for i := 0; i < size; i++ {
		v.values[i] = RandomInRange(rng, min, max)
	}
	return v, nil
}

// RandomMatrix returns a matrix whose elements are uniform in [min, max).
func RandomMatrix[T constraints.Float](rng *rand.Rand, rows, columns int, min, max T) (Matrix[T], error) {
	mt, err := NewMatrix[T](rows, columns)
	if err != nil {
		return mt, fmt.Errorf("RandomMatrix: %w", err)
	}
	for i := 0; i < rows*columns; i++ {
		mt.values[i] = RandomInRange(rng, min, max)
	}
	return mt, nil
}

// RandomUnitQuaternion returns a normalized quaternion with uniformly drawn
// components. Draws too close to the origin are rejected.
func RandomUnitQuaternion(rng *rand.Rand) Quaternion {
	for {
		q := Quaternion{
			W: RandomInRange[float32](rng, -1, 1),
			X: RandomInRange[float32](rng, -1, 1),
			Y: RandomInRange[float32](rng, -1, 1),
			Z: RandomInRange[float32](rng, -1, 1),
		}
		if q.Magnitude() > 0.1 {
			return q.Normalized()
		}
	}
}
