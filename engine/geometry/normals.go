package geometry

import (
	"fmt"

	"github.com/spaghettifunk/math3d/engine/core"
	"github.com/spaghettifunk/math3d/engine/math"
	"golang.org/x/exp/constraints"
)

// FaceNormal returns the unit normal of the triangle abc, (b-a) x (c-a)
// normalized. The winding decides the side. A degenerate triangle yields NaN
// components.
func FaceNormal[T constraints.Float](a, b, c math.Vector[T]) (math.Vector[T], error) {
	edge1, err := b.Sub(a)
	if err != nil {
		return math.Vector[T]{}, fmt.Errorf("FaceNormal: %w", err)
	}
	edge2, err := c.Sub(a)
	if err != nil {
		return math.Vector[T]{}, fmt.Errorf("FaceNormal: %w", err)
	}
	if edge1.Size() != 3 {
		return math.Vector[T]{}, fmt.Errorf("FaceNormal: size %d: %w", edge1.Size(), math.ErrInvalidDimension)
	}
	normal, err := edge1.Cross(edge2)
	if err != nil {
		return math.Vector[T]{}, fmt.Errorf("FaceNormal: %w", err)
	}
	return normal.Normalized(), nil
}

/**
 * @brief Generates one normal per vertex for an indexed triangle list.
 * Every vertex of a triangle gets that triangle's face normal; a vertex
 * shared by several triangles keeps the last one written.
 *
 * @param positions The vertex positions (3-vectors).
 * @param indices Three indices per triangle.
 * @return One normal per position.
 */
func GenerateNormals[T constraints.Float](positions []math.Vector[T], indices []uint32) ([]math.Vector[T], error) {
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("GenerateNormals: %d indices: %w", len(indices), math.ErrInvalidSize)
	}
	normals := make([]math.Vector[T], len(positions))
	for i := 0; i < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		for _, idx := range []uint32{i0, i1, i2} {
			if int(idx) >= len(positions) {
				return nil, fmt.Errorf("GenerateNormals: index %d of %d: %w", idx, len(positions), math.ErrInvalidIndex)
			}
		}

		// NOTE: flat shading only. Smoothing would average shared vertices in a second pass.
		normal, err := FaceNormal(positions[i0], positions[i1], positions[i2])
		if err != nil {
			return nil, fmt.Errorf("GenerateNormals: triangle %d: %w", i/3, err)
		}
		normals[i0] = normal
		normals[i1] = normal
		normals[i2] = normal
	}
	return normals, nil
}

// DeduplicatePositions collapses positions that compare equal within
// tolerance and rewrites indices to point at the surviving entries.
func DeduplicatePositions[T constraints.Float](positions []math.Vector[T], indices []uint32, tolerance T) ([]math.Vector[T], []uint32, error) {
	unique := make([]math.Vector[T], 0, len(positions))
	remap := make([]uint32, len(positions))

	for v, p := range positions {
		found := false
		for u := range unique {
			if unique[u].Compare(p, tolerance) {
				remap[v] = uint32(u)
				found = true
				break
			}
		}
		if !found {
			remap[v] = uint32(len(unique))
			unique = append(unique, p)
		}
	}

	out := make([]uint32, len(indices))
	for i, idx := range indices {
		if int(idx) >= len(positions) {
			return nil, nil, fmt.Errorf("DeduplicatePositions: index %d of %d: %w", idx, len(positions), math.ErrInvalidIndex)
		}
		out[i] = remap[idx]
	}

	core.LogDebug("DeduplicatePositions: removed %d positions, orig/now %d/%d", len(positions)-len(unique), len(positions), len(unique))
	return unique, out, nil
}
