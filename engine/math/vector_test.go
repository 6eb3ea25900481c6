package math_test

import (
	gomath "math"
	"testing"

	"github.com/spaghettifunk/math3d/engine/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVector_Dimension(t *testing.T) {
	for _, size := range []int{-1, 0, math.MaxDimension + 1} {
		_, err := math.NewVector[float32](size)
		require.ErrorIs(t, err, math.ErrInvalidDimension, "size %d", size)
	}

	v, err := math.NewVector[float64](3)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0}, v.Values())
}

func TestNewVectorFromValues_Size(t *testing.T) {
	_, err := math.NewVectorFromValues(3, []float64{1, 2})
	require.ErrorIs(t, err, math.ErrInvalidSize)

	_, err = math.NewVectorFromValues(3, []float64{1, 2, 3, 4})
	require.ErrorIs(t, err, math.ErrInvalidSize)
}

func TestVector_IndexedAccess(t *testing.T) {
	v := math.NewVector3(1, 2, 3)

	x, err := v.ValueAt(2)
	require.NoError(t, err)
	assert.Equal(t, float32(3), x)

	for _, index := range []int{-1, 3} {
		_, err = v.ValueAt(index)
		require.ErrorIs(t, err, math.ErrInvalidIndex)
		require.ErrorIs(t, v.SetValueAt(index, 1), math.ErrInvalidIndex)
	}

	require.NoError(t, v.SetValueAt(0, 9))
	assert.Equal(t, []float32{9, 2, 3}, v.Values())
}

func TestVector_ValueSemantics(t *testing.T) {
	a := math.NewVector3(1, 2, 3)
	b := a
	require.NoError(t, b.SetValueAt(0, 42))

	assert.Equal(t, []float32{1, 2, 3}, a.Values())
	assert.Equal(t, []float32{42, 2, 3}, b.Values())
}

func TestVector_Magnitude(t *testing.T) {
	assert.Equal(t, 5.0, MustVector(t, 3, 4).Magnitude())
	assert.Equal(t, 0.0, MustVector(t, 0, 0, 0).Magnitude())
	assert.Equal(t, 2.0, MustVector(t, -2).Magnitude())
}

func TestVector_Normalize(t *testing.T) {
	v := MustVector(t, 3, 4)
	v.Normalize()

	assert.InDeltaSlice(t, []float64{0.6, 0.8}, v.Values(), 1e-15)
	assert.True(t, v.IsNormalized())
	assert.False(t, MustVector(t, 3, 4).IsNormalized())

	f := math.NewVector2(3, 4).Normalized()
	assert.True(t, f.IsNormalized())
}

func TestVector_NormalizeParallel(t *testing.T) {
	rng := math.NewRandom(7)
	for i := 0; i < 100; i++ {
		v, err := math.RandomVector(rng, 3, -10.0, 10.0)
		require.NoError(t, err)
		if v.Magnitude() < 1e-3 {
			continue
		}

		n := v.Normalized()
		assert.InDelta(t, 1.0, n.Magnitude(), 1e-12)

		cross, err := math.CrossProduct(v, n)
		require.NoError(t, err)
		assert.InDelta(t, 0.0, cross.Magnitude(), 1e-9)

		dot, err := v.Dot(n)
		require.NoError(t, err)
		assert.Greater(t, dot, 0.0)
	}
}

func TestVector_NormalizeZeroPropagatesNaN(t *testing.T) {
	v := MustVector(t, 0, 0, 0)
	v.Normalize()
	for _, c := range v.Values() {
		assert.True(t, gomath.IsNaN(c))
	}
}

func TestDotProduct(t *testing.T) {
	a := MustVector(t, 1, 2, 3)
	b := MustVector(t, 4, 5, 6)

	dot, err := math.DotProduct(a, b)
	require.NoError(t, err)
	assert.Equal(t, 32.0, dot)

	dot, err = a.Dot(b)
	require.NoError(t, err)
	assert.Equal(t, 32.0, dot)

	_, err = a.Dot(MustVector(t, 1, 2))
	require.ErrorIs(t, err, math.ErrInvalidDimension)
}

func TestCrossProduct(t *testing.T) {
	t.Run("3d", func(t *testing.T) {
		c, err := math.CrossProduct(math.NewVector3(1, 0, 0), math.NewVector3(0, 1, 0))
		require.NoError(t, err)
		assert.Equal(t, []float32{0, 0, 1}, c.Values())

		c, err = math.NewVector3(0, 1, 0).Cross(math.NewVector3(1, 0, 0))
		require.NoError(t, err)
		assert.Equal(t, []float32{0, 0, -1}, c.Values())
	})

	t.Run("2d perp dot", func(t *testing.T) {
		c, err := math.CrossProduct(math.NewVector2(1, 0), math.NewVector2(0, 1))
		require.NoError(t, err)
		assert.Equal(t, 1, c.Size())
		assert.Equal(t, []float32{1}, c.Values())

		c64, err := math.CrossProduct(MustVector(t, 2, 3), MustVector(t, 4, 5))
		require.NoError(t, err)
		assert.Equal(t, []float64{2*5 - 3*4}, c64.Values())
	})

	t.Run("unsupported sizes", func(t *testing.T) {
		for _, values := range [][]float64{{1}, {1, 2, 3, 4}} {
			_, err := math.CrossProduct(MustVector(t, values...), MustVector(t, values...))
			require.ErrorIs(t, err, math.ErrInvalidDimension)
		}
		_, err := math.CrossProduct(MustVector(t, 1, 2), MustVector(t, 1, 2, 3))
		require.ErrorIs(t, err, math.ErrInvalidDimension)
	})
}

func TestVector_Arithmetic(t *testing.T) {
	a := MustVector(t, 1, 2, 3)
	b := MustVector(t, 1, 1, 1)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3, 4}, sum.Values())

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2}, diff.Values())

	assert.Equal(t, []float64{2, 4, 6}, a.MulScalar(2).Values())
	assert.Equal(t, []float64{-1, -2, -3}, a.Negate().Values())

	_, err = a.Add(MustVector(t, 1))
	require.ErrorIs(t, err, math.ErrInvalidDimension)
	_, err = a.Sub(MustVector(t, 1))
	require.ErrorIs(t, err, math.ErrInvalidDimension)

	d, err := MustVector(t, 0, 0).Distance(MustVector(t, 3, 4))
	require.NoError(t, err)
	assert.Equal(t, 5.0, d)
}

func TestVector_Compare(t *testing.T) {
	a := math.NewVector3(1, 2, 3)
	assert.True(t, a.Compare(math.NewVector3(1, 2, 3.0000001), 1e-5))
	assert.False(t, a.Compare(math.NewVector3(1, 2, 3.1), 1e-5))
	assert.False(t, a.Compare(math.NewVector2(1, 2), 1))
}

func TestVector_String(t *testing.T) {
	assert.Equal(t, "V(1, 2, 3)", math.NewVector3(1, 2, 3).String())
	assert.Equal(t, "V(0.5)", MustVector(t, 0.5).String())
}
