package math

import "golang.org/x/exp/constraints"

/** @brief The largest number of components per vector, and of rows or columns per matrix. */
const MaxDimension = 4

/**
 * @brief An ordered tuple of Size() scalars of type T. The storage is inline,
 * so copies are independent and no heap allocation happens per instance.
 * The zero value has no dimension; build vectors with NewVector or one of
 * the NewVectorN helpers.
 */
type Vector[T constraints.Float] struct {
	/** @brief The number of meaningful components. */
	size int
	/** @brief The components; only the first size entries are used. */
	values [MaxDimension]T
}

/**
 * @brief A Rows() by Columns() grid of scalars of type T, stored row-major
 * in inline storage. Sub-structures (rows, columns, minors) are new
 * matrices with their own shape.
 */
type Matrix[T constraints.Float] struct {
	rows    int
	columns int
	/** @brief The elements; index row*columns + column. */
	values [MaxDimension * MaxDimension]T
}

/** @brief A 2-component single precision vector. */
type Vector2 = Vector[float32]

/** @brief A 3-component single precision vector. */
type Vector3 = Vector[float32]

/** @brief A 4-component single precision vector. */
type Vector4 = Vector[float32]

/** @brief A single precision square matrix of size 2. */
type Matrix2x2 = Matrix[float32]

/** @brief A single precision square matrix of size 3. */
type Matrix3x3 = Matrix[float32]

/** @brief A single precision square matrix of size 4, typically used to represent object transformations. */
type Matrix4x4 = Matrix[float32]

/**
 * @brief A quaternion (w, x, y, z), used to represent rotational orientation.
 * Rotation semantics need a unit quaternion; call Normalize before relying
 * on it.
 */
type Quaternion struct {
	W, X, Y, Z float32
}

/**
 * @brief Represents the transform of an object in the world.
 * Transforms can have a parent whose own transform is then
 * taken into account. NOTE: The properties of this should not
 * be edited directly, but done via the methods in transform.go
 * to ensure proper matrix generation.
 */
type Transform struct {
	/** @brief The position in the world. */
	Position Vector3
	/** @brief The rotation in the world. */
	Rotation Quaternion
	/** @brief The scale in the world. */
	Scale Vector3
	/**
	 * @brief Indicates if the position, rotation or scale have changed,
	 * indicating that the local matrix needs to be recalculated.
	 */
	IsDirty bool
	/**
	 * @brief The local transformation matrix, updated whenever
	 * the position, rotation or scale have changed.
	 */
	Local Matrix4x4
	/** @brief A pointer to a parent transform if one is assigned. Can also be nil. */
	Parent *Transform
}
