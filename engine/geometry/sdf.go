package geometry

import (
	"fmt"

	"github.com/spaghettifunk/math3d/engine/math"
	"golang.org/x/exp/constraints"
)

// PointSDF returns the distance from p to the point a.
func PointSDF[T constraints.Float](a, p math.Vector[T]) (T, error) {
	d, err := p.Distance(a)
	if err != nil {
		return 0, fmt.Errorf("PointSDF: %w", err)
	}
	return d, nil
}

// CircleSDF returns the signed distance from point to a circle in the plane.
// Negative values are inside.
func CircleSDF[T constraints.Float](center math.Vector[T], radius T, point math.Vector[T]) (T, error) {
	return roundSDF("CircleSDF", 2, center, radius, point)
}

// SphereSDF is the three-dimensional form of CircleSDF.
func SphereSDF[T constraints.Float](center math.Vector[T], radius T, point math.Vector[T]) (T, error) {
	return roundSDF("SphereSDF", 3, center, radius, point)
}

func roundSDF[T constraints.Float](op string, size int, center math.Vector[T], radius T, point math.Vector[T]) (T, error) {
	if center.Size() != size {
		return 0, fmt.Errorf("%s: center size %d: %w", op, center.Size(), math.ErrInvalidDimension)
	}
	d, err := center.Distance(point)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return d - radius, nil
}

/**
 * @brief Returns the distance from p to the closest point of the segment ab.
 * The projection parameter is clamped to [0, 1]; a degenerate segment
 * (a == b) is treated as the point a.
 */
func SegmentSDF[T constraints.Float](a, b, p math.Vector[T]) (T, error) {
	ab, err := b.Sub(a)
	if err != nil {
		return 0, fmt.Errorf("SegmentSDF: %w", err)
	}
	ap, err := p.Sub(a)
	if err != nil {
		return 0, fmt.Errorf("SegmentSDF: %w", err)
	}

	lengthSq, _ := ab.Dot(ab)
	if math.IsNearlyZero(lengthSq) {
		return ap.Magnitude(), nil
	}

	proj, _ := ap.Dot(ab)
	h := math.Clamp(proj/lengthSq, 0, 1)
	closest, _ := ap.Sub(ab.MulScalar(h))
	return closest.Magnitude(), nil
}
