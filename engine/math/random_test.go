package math_test

import (
	"testing"

	"github.com/spaghettifunk/math3d/engine/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandom_Deterministic(t *testing.T) {
	a, err := math.RandomMatrix(math.NewRandom(42), 3, 3, -1.0, 1.0)
	require.NoError(t, err)
	b, err := math.RandomMatrix(math.NewRandom(42), 3, 3, -1.0, 1.0)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := math.RandomMatrix(math.NewRandom(43), 3, 3, -1.0, 1.0)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestRandom_Range(t *testing.T) {
	rng := math.NewRandom(1)
	for i := 0; i < 1000; i++ {
		v := math.RandomInRange(rng, -2.0, 3.0)
		assert.GreaterOrEqual(t, v, -2.0)
		assert.Less(t, v, 3.0)
	}
}

func TestRandom_InvalidShapes(t *testing.T) {
	rng := math.NewRandom(1)
	_, err := math.RandomVector(rng, 5, 0.0, 1.0)
	require.ErrorIs(t, err, math.ErrInvalidDimension)
	_, err = math.RandomMatrix(rng, 0, 2, 0.0, 1.0)
	require.ErrorIs(t, err, math.ErrInvalidDimension)
}

func TestRandomUnitQuaternion(t *testing.T) {
	rng := math.NewRandom(9)
	for i := 0; i < 100; i++ {
		q := math.RandomUnitQuaternion(rng)
		assert.InDelta(t, 1.0, q.Magnitude(), 1e-6)
	}
}
