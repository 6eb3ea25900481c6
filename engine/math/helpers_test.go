package math_test

import (
	"testing"

	"github.com/spaghettifunk/math3d/engine/math"
	"github.com/stretchr/testify/require"
)

// MustMatrix builds a float64 matrix or fails the test.
func MustMatrix(t *testing.T, rows, columns int, values ...float64) math.Matrix[float64] {
	t.Helper()
	mt, err := math.NewMatrixFromValues(rows, columns, values)
	require.NoError(t, err)
	return mt
}

// MustVector builds a float64 vector or fails the test.
func MustVector(t *testing.T, values ...float64) math.Vector[float64] {
	t.Helper()
	v, err := math.NewVectorFromValues(len(values), values)
	require.NoError(t, err)
	return v
}

// requireMatrixInDelta compares shapes exactly and elements within delta.
func requireMatrixInDelta(t *testing.T, expected, actual math.Matrix[float64], delta float64) {
	t.Helper()
	require.Equal(t, expected.Rows(), actual.Rows(), "rows")
	require.Equal(t, expected.Columns(), actual.Columns(), "columns")
	require.InDeltaSlice(t, expected.Values(), actual.Values(), delta, "expected\n%sgot\n%s", expected, actual)
}

func requireVector3InDelta(t *testing.T, expected []float32, actual math.Vector3, delta float64) {
	t.Helper()
	require.Equal(t, 3, actual.Size())
	require.InDeltaSlice(t, expected, actual.Values(), delta, "got %s", actual)
}
