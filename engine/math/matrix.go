package math

import (
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"
)

// Scalar is any numeric type a matrix can be scaled by.
type Scalar interface {
	constraints.Integer | constraints.Float
}

// NewMatrix returns a zero-initialized rows x columns matrix.
func NewMatrix[T constraints.Float](rows, columns int) (Matrix[T], error) {
	if err := checkDimension("NewMatrix", rows); err != nil {
		return Matrix[T]{}, err
	}
	if err := checkDimension("NewMatrix", columns); err != nil {
		return Matrix[T]{}, err
	}
	return Matrix[T]{rows: rows, columns: columns}, nil
}

// NewMatrixFromValues builds a matrix from a row-major buffer that must hold
// exactly rows*columns scalars.
func NewMatrixFromValues[T constraints.Float](rows, columns int, values []T) (Matrix[T], error) {
	mt, err := NewMatrix[T](rows, columns)
	if err != nil {
		return mt, err
	}
	if len(values) != rows*columns {
		return Matrix[T]{}, fmt.Errorf("NewMatrixFromValues: %d values for %dx%d: %w", len(values), rows, columns, ErrInvalidSize)
	}
	copy(mt.values[:rows*columns], values)
	return mt, nil
}

/**
 * @brief Creates and returns an identity matrix. Only square shapes have
 * an identity; anything else fails with ErrInvalidDimension.
 *
 * {
 *   {1, 0, 0},
 *   {0, 1, 0},
 *   {0, 0, 1}
 * }
 */
func CreateIdentity[T constraints.Float](rows, columns int) (Matrix[T], error) {
	if rows != columns {
		return Matrix[T]{}, fmt.Errorf("CreateIdentity: %dx%d: %w", rows, columns, ErrInvalidDimension)
	}
	identity, err := NewMatrix[T](rows, columns)
	if err != nil {
		return identity, err
	}
	for i := 0; i < rows; i++ {
		identity.values[i*columns+i] = 1
	}
	return identity, nil
}

// Rows returns the number of rows.
func (mt Matrix[T]) Rows() int {
	return mt.rows
}

// Columns returns the number of columns.
func (mt Matrix[T]) Columns() int {
	return mt.columns
}

// IsSquare reports whether rows == columns.
func (mt Matrix[T]) IsSquare() bool {
	return mt.rows == mt.columns
}

// ValueAt returns the element at (row, column).
func (mt Matrix[T]) ValueAt(row, column int) (T, error) {
	if row < 0 || row >= mt.rows || column < 0 || column >= mt.columns {
		return 0, fmt.Errorf("ValueAt: (%d,%d) in %dx%d: %w", row, column, mt.rows, mt.columns, ErrInvalidIndex)
	}
	return mt.values[row*mt.columns+column], nil
}

// SetValueAt overwrites the element at (row, column).
func (mt *Matrix[T]) SetValueAt(row, column int, value T) error {
	if row < 0 || row >= mt.rows || column < 0 || column >= mt.columns {
		return fmt.Errorf("SetValueAt: (%d,%d) in %dx%d: %w", row, column, mt.rows, mt.columns, ErrInvalidIndex)
	}
	mt.values[row*mt.columns+column] = value
	return nil
}

// at skips bounds checks; callers have already validated the shape.
func (mt Matrix[T]) at(row, column int) T {
	return mt.values[row*mt.columns+column]
}

func (mt *Matrix[T]) set(row, column int, value T) {
	mt.values[row*mt.columns+column] = value
}

// Values returns a row-major copy of the elements.
func (mt Matrix[T]) Values() []T {
	out := make([]T, mt.rows*mt.columns)
	copy(out, mt.values[:mt.rows*mt.columns])
	return out
}

// Row returns row as a 1 x Columns() matrix.
func (mt Matrix[T]) Row(row int) (Matrix[T], error) {
	if row < 0 || row >= mt.rows {
		return Matrix[T]{}, fmt.Errorf("Row: %d of %d: %w", row, mt.rows, ErrInvalidIndex)
	}
	out := Matrix[T]{rows: 1, columns: mt.columns}
	for j := 0; j < mt.columns; j++ {
		out.set(0, j, mt.at(row, j))
	}
	return out, nil
}

// Column returns column as a Rows() x 1 matrix.
func (mt Matrix[T]) Column(column int) (Matrix[T], error) {
	if column < 0 || column >= mt.columns {
		return Matrix[T]{}, fmt.Errorf("Column: %d of %d: %w", column, mt.columns, ErrInvalidIndex)
	}
	out := Matrix[T]{rows: mt.rows, columns: 1}
	for i := 0; i < mt.rows; i++ {
		out.set(i, 0, mt.at(i, column))
	}
	return out, nil
}

// WithRemovedRow returns the (Rows()-1) x Columns() matrix without row.
// Removing the only row fails with ErrInvalidDimension.
func (mt Matrix[T]) WithRemovedRow(row int) (Matrix[T], error) {
	if row < 0 || row >= mt.rows {
		return Matrix[T]{}, fmt.Errorf("WithRemovedRow: %d of %d: %w", row, mt.rows, ErrInvalidIndex)
	}
	if mt.rows == 1 {
		return Matrix[T]{}, fmt.Errorf("WithRemovedRow: single row: %w", ErrInvalidDimension)
	}
	out := Matrix[T]{rows: mt.rows - 1, columns: mt.columns}
	target := 0
	for i := 0; i < mt.rows; i++ {
		if i == row {
			continue
		}
		for j := 0; j < mt.columns; j++ {
			out.set(target, j, mt.at(i, j))
		}
		target++
	}
	return out, nil
}

// WithRemovedColumn returns the Rows() x (Columns()-1) matrix without column.
// Removing the only column fails with ErrInvalidDimension.
func (mt Matrix[T]) WithRemovedColumn(column int) (Matrix[T], error) {
	if column < 0 || column >= mt.columns {
		return Matrix[T]{}, fmt.Errorf("WithRemovedColumn: %d of %d: %w", column, mt.columns, ErrInvalidIndex)
	}
	if mt.columns == 1 {
		return Matrix[T]{}, fmt.Errorf("WithRemovedColumn: single column: %w", ErrInvalidDimension)
	}
	out := Matrix[T]{rows: mt.rows, columns: mt.columns - 1}
	for i := 0; i < mt.rows; i++ {
		target := 0
		for j := 0; j < mt.columns; j++ {
			if j == column {
				continue
			}
			out.set(i, target, mt.at(i, j))
			target++
		}
	}
	return out, nil
}

// Minor returns the matrix without row and column.
func (mt Matrix[T]) Minor(row, column int) (Matrix[T], error) {
	withoutRow, err := mt.WithRemovedRow(row)
	if err != nil {
		return Matrix[T]{}, fmt.Errorf("Minor: %w", err)
	}
	minor, err := withoutRow.WithRemovedColumn(column)
	if err != nil {
		return Matrix[T]{}, fmt.Errorf("Minor: %w", err)
	}
	return minor, nil
}

/**
 * @brief Returns a transposed copy of the matrix (rows->columns).
 * Square matrices swap each off-diagonal pair once and keep the diagonal.
 */
func (mt Matrix[T]) Transpose() Matrix[T] {
	if mt.IsSquare() {
		for i := 0; i < mt.rows; i++ {
			for j := 0; j < i; j++ {
				a, b := mt.at(i, j), mt.at(j, i)
				mt.set(i, j, b)
				mt.set(j, i, a)
			}
		}
		return mt
	}
	out := Matrix[T]{rows: mt.columns, columns: mt.rows}
	for i := 0; i < mt.rows; i++ {
		for j := 0; j < mt.columns; j++ {
			out.set(j, i, mt.at(i, j))
		}
	}
	return out
}

// Negate returns -mt.
func (mt Matrix[T]) Negate() Matrix[T] {
	for i := 0; i < mt.rows*mt.columns; i++ {
		mt.values[i] = -mt.values[i]
	}
	return mt
}

// Determinant computes the determinant by Laplace expansion along row 0.
// Terms whose coefficient is nearly zero are skipped.
func (mt Matrix[T]) Determinant() (T, error) {
	if !mt.IsSquare() {
		return 0, fmt.Errorf("Determinant: %dx%d: %w", mt.rows, mt.columns, ErrNotSquare)
	}
	return mt.determinant(), nil
}

func (mt Matrix[T]) determinant() T {
	switch mt.rows {
	case 1:
		return mt.at(0, 0)
	case 2:
		return mt.at(0, 0)*mt.at(1, 1) - mt.at(0, 1)*mt.at(1, 0)
	}

	var det T
	for i := 0; i < mt.columns; i++ {
		coefficient := mt.at(0, i)
		if IsNearlyZero(coefficient) {
			continue
		}
		if i%2 == 1 {
			coefficient = -coefficient
		}
		minor, _ := mt.Minor(0, i)
		det += coefficient * minor.determinant()
	}
	return det
}

// CofactorMatrix returns the matrix of signed minor determinants,
// (-1)^(i+j) * det(Minor(i, j)). A 1x1 matrix has the cofactor matrix [1].
func (mt Matrix[T]) CofactorMatrix() (Matrix[T], error) {
	if !mt.IsSquare() {
		return Matrix[T]{}, fmt.Errorf("CofactorMatrix: %dx%d: %w", mt.rows, mt.columns, ErrNotSquare)
	}
	out := Matrix[T]{rows: mt.rows, columns: mt.columns}
	if mt.rows == 1 {
		out.set(0, 0, 1)
		return out, nil
	}
	for i := 0; i < mt.rows; i++ {
		for j := 0; j < mt.columns; j++ {
			minor, _ := mt.Minor(i, j)
			value := minor.determinant()
			if (i+j)%2 == 1 {
				value = -value
			}
			out.set(i, j, value)
		}
	}
	return out, nil
}

// AdjugateMatrix returns the transpose of the cofactor matrix.
func (mt Matrix[T]) AdjugateMatrix() (Matrix[T], error) {
	cofactor, err := mt.CofactorMatrix()
	if err != nil {
		return Matrix[T]{}, fmt.Errorf("AdjugateMatrix: %w", err)
	}
	return cofactor.Transpose(), nil
}

// Inverse returns the reverse matrix, AdjugateMatrix scaled by
// 1/Determinant. A nearly-zero determinant fails with ErrNonReversible.
func (mt Matrix[T]) Inverse() (Matrix[T], error) {
	if !mt.IsSquare() {
		return Matrix[T]{}, fmt.Errorf("Inverse: %dx%d: %w", mt.rows, mt.columns, ErrNotSquare)
	}
	det := mt.determinant()
	if IsNearlyZero(det) {
		return Matrix[T]{}, fmt.Errorf("Inverse: determinant %v: %w", det, ErrNonReversible)
	}
	adjugate, err := mt.AdjugateMatrix()
	if err != nil {
		return Matrix[T]{}, fmt.Errorf("Inverse: %w", err)
	}
	return adjugate.MulScalar(float64(1 / det)), nil
}

func (mt Matrix[T]) sameShape(op string, other Matrix[T]) error {
	if mt.rows != other.rows || mt.columns != other.columns {
		return fmt.Errorf("%s: %dx%d and %dx%d: %w", op, mt.rows, mt.columns, other.rows, other.columns, ErrInvalidDimension)
	}
	return nil
}

// Add returns mt + other.
func (mt Matrix[T]) Add(other Matrix[T]) (Matrix[T], error) {
	if err := mt.sameShape("Add", other); err != nil {
		return Matrix[T]{}, err
	}
	for i := 0; i < mt.rows*mt.columns; i++ {
		mt.values[i] += other.values[i]
	}
	return mt, nil
}

// Sub returns mt - other.
func (mt Matrix[T]) Sub(other Matrix[T]) (Matrix[T], error) {
	if err := mt.sameShape("Sub", other); err != nil {
		return Matrix[T]{}, err
	}
	for i := 0; i < mt.rows*mt.columns; i++ {
		mt.values[i] -= other.values[i]
	}
	return mt, nil
}

// MulScalar scales every element through a float64 intermediate.
func (mt Matrix[T]) MulScalar(scalar float64) Matrix[T] {
	for i := 0; i < mt.rows*mt.columns; i++ {
		mt.values[i] = T(float64(mt.values[i]) * scalar)
	}
	return mt
}

// ScaleMatrix scales mt by a scalar of any numeric type.
func ScaleMatrix[T constraints.Float, S Scalar](mt Matrix[T], scalar S) Matrix[T] {
	return mt.MulScalar(float64(scalar))
}

/**
 * @brief Returns the result of multiplying mt (R x C) and other (C x CO),
 * an R x CO matrix. Mismatched inner dimensions fail with ErrInvalidDimension.
 */
func (mt Matrix[T]) Mul(other Matrix[T]) (Matrix[T], error) {
	if mt.columns != other.rows {
		return Matrix[T]{}, fmt.Errorf("Mul: %dx%d by %dx%d: %w", mt.rows, mt.columns, other.rows, other.columns, ErrInvalidDimension)
	}
	out := Matrix[T]{rows: mt.rows, columns: other.columns}
	for row := 0; row < mt.rows; row++ {
		for col := 0; col < other.columns; col++ {
			var sum T
			for x := 0; x < mt.columns; x++ {
				sum += mt.at(row, x) * other.at(x, col)
			}
			out.set(row, col, sum)
		}
	}
	return out, nil
}

// MulVector returns mt * v, treating v as a column vector.
func (mt Matrix[T]) MulVector(v Vector[T]) (Vector[T], error) {
	if mt.columns != v.size {
		return Vector[T]{}, fmt.Errorf("MulVector: %dx%d by size %d: %w", mt.rows, mt.columns, v.size, ErrInvalidDimension)
	}
	out := Vector[T]{size: mt.rows}
	for row := 0; row < mt.rows; row++ {
		var sum T
		for x := 0; x < mt.columns; x++ {
			sum += mt.at(row, x) * v.values[x]
		}
		out.values[row] = sum
	}
	return out, nil
}

/**
 * @brief Compares all elements of mt and other and ensures the difference
 * is less than tolerance. Different shapes never compare equal.
 */
func (mt Matrix[T]) Compare(other Matrix[T], tolerance T) bool {
	if mt.rows != other.rows || mt.columns != other.columns {
		return false
	}
	for i := 0; i < mt.rows*mt.columns; i++ {
		if kabs(mt.values[i]-other.values[i]) > tolerance {
			return false
		}
	}
	return true
}

// NearlyEqual is Compare with the epsilon of T.
func (mt Matrix[T]) NearlyEqual(other Matrix[T]) bool {
	return mt.Compare(other, Epsilon[T]())
}

// String renders one |\ta\tb\t| line per row.
func (mt Matrix[T]) String() string {
	var sb strings.Builder
	for i := 0; i < mt.rows; i++ {
		sb.WriteString("|\t")
		for j := 0; j < mt.columns; j++ {
			fmt.Fprint(&sb, mt.at(i, j))
			sb.WriteString("\t")
		}
		sb.WriteString("|\n")
	}
	return sb.String()
}
