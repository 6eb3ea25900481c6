package math

import "errors"

// Every precondition violation in this package is reported with one of these
// sentinels, wrapped with the failing operation's context. Match them with
// errors.Is.
var (
	// ErrInvalidDimension is returned when a requested dimension is zero,
	// exceeds MaxDimension, or two operands do not share a required dimension.
	ErrInvalidDimension = errors.New("math3d: invalid dimension")

	// ErrInvalidIndex is returned when an element, row or column index is
	// outside [0, size).
	ErrInvalidIndex = errors.New("math3d: index out of range")

	// ErrNotSquare is returned by operations that need rows == columns.
	ErrNotSquare = errors.New("math3d: matrix is not square")

	// ErrNonReversible is returned when inverting a matrix whose determinant
	// is nearly zero.
	ErrNonReversible = errors.New("math3d: matrix is not reversible")

	// ErrInvalidSize is returned when a flat buffer does not hold exactly the
	// number of scalars the requested shape needs.
	ErrInvalidSize = errors.New("math3d: invalid buffer size")
)
