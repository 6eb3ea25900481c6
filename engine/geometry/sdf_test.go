package geometry_test

import (
	"testing"

	"github.com/spaghettifunk/math3d/engine/geometry"
	"github.com/spaghettifunk/math3d/engine/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircleSDF(t *testing.T) {
	center := math.NewVector2(1, 1)
	for _, tc := range []struct {
		name  string
		point math.Vector2
		want  float32
	}{
		{"outside", math.NewVector2(4, 5), 3},
		{"on edge", math.NewVector2(3, 1), 0},
		{"inside", math.NewVector2(1, 1), -2},
	} {
		t.Run(tc.name, func(t *testing.T) {
			d, err := geometry.CircleSDF(center, 2, tc.point)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, d, 1e-6)
		})
	}

	_, err := geometry.CircleSDF(math.NewVector3(0, 0, 0), 1, math.NewVector3(1, 0, 0))
	require.ErrorIs(t, err, math.ErrInvalidDimension)
	_, err = geometry.CircleSDF(center, 1, math.NewVector3(1, 0, 0))
	require.ErrorIs(t, err, math.ErrInvalidDimension)
}

func TestSphereSDF(t *testing.T) {
	d, err := geometry.SphereSDF(math.NewVector3(0, 0, 0), 1, math.NewVector3(0, 3, 4))
	require.NoError(t, err)
	assert.InDelta(t, 4.0, d, 1e-6)

	_, err = geometry.SphereSDF(math.NewVector2(0, 0), 1, math.NewVector2(1, 0))
	require.ErrorIs(t, err, math.ErrInvalidDimension)
}

func TestPointSDF(t *testing.T) {
	d, err := geometry.PointSDF(math.NewVector2(0, 0), math.NewVector2(3, 4))
	require.NoError(t, err)
	assert.InDelta(t, 5.0, d, 1e-6)

	_, err = geometry.PointSDF(math.NewVector2(0, 0), math.NewVector3(3, 4, 0))
	require.ErrorIs(t, err, math.ErrInvalidDimension)
}

func TestSegmentSDF(t *testing.T) {
	a := math.NewVector2(0, 0)
	b := math.NewVector2(4, 0)
	for _, tc := range []struct {
		name  string
		point math.Vector2
		want  float32
	}{
		{"above middle", math.NewVector2(2, 3), 3},
		{"before start", math.NewVector2(-3, 4), 5},
		{"past end", math.NewVector2(7, -4), 5},
		{"on segment", math.NewVector2(1, 0), 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			d, err := geometry.SegmentSDF(a, b, tc.point)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, d, 1e-6)
		})
	}
}

func TestSegmentSDF_Degenerate(t *testing.T) {
	a := math.NewVector3(1, 1, 1)
	d, err := geometry.SegmentSDF(a, a, math.NewVector3(1, 1, 3))
	require.NoError(t, err)
	assert.InDelta(t, 2.0, d, 1e-6)

	_, err = geometry.SegmentSDF(a, math.NewVector2(0, 0), a)
	require.ErrorIs(t, err, math.ErrInvalidDimension)
}
