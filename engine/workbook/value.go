package workbook

import (
	"fmt"

	"github.com/spaghettifunk/math3d/engine/core"
	"github.com/spaghettifunk/math3d/engine/math"
)

type Kind int

const (
	KindScalar Kind = iota
	KindVector
	KindMatrix
	KindQuaternion
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindVector:
		return "vector"
	case KindMatrix:
		return "matrix"
	case KindQuaternion:
		return "quaternion"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is an operand or a step result. Vectors and matrices are held in
// double precision; quaternions use the core's single precision.
type Value struct {
	Kind       Kind
	Scalar     float64
	Vector     math.Vector[float64]
	Matrix     math.Matrix[float64]
	Quaternion math.Quaternion
}

func scalarValue(s float64) Value              { return Value{Kind: KindScalar, Scalar: s} }
func vectorValue(v math.Vector[float64]) Value { return Value{Kind: KindVector, Vector: v} }
func matrixValue(m math.Matrix[float64]) Value { return Value{Kind: KindMatrix, Matrix: m} }
func quaternionValue(q math.Quaternion) Value  { return Value{Kind: KindQuaternion, Quaternion: q} }

// Flat returns the components in the order expectations list them:
// row-major for matrices and w, x, y, z for quaternions.
func (v Value) Flat() []float64 {
	switch v.Kind {
	case KindScalar:
		return []float64{v.Scalar}
	case KindVector:
		return v.Vector.Values()
	case KindMatrix:
		return v.Matrix.Values()
	case KindQuaternion:
		q := v.Quaternion
		return []float64{float64(q.W), float64(q.X), float64(q.Y), float64(q.Z)}
	}
	return nil
}

func (v Value) String() string {
	switch v.Kind {
	case KindScalar:
		return fmt.Sprint(v.Scalar)
	case KindVector:
		return v.Vector.String()
	case KindMatrix:
		return v.Matrix.String()
	case KindQuaternion:
		return v.Quaternion.String()
	}
	return "?"
}

// environment maps operand and result names to values. Each evaluation owns
// its own environment.
type environment map[string]Value

func (env environment) lookup(name string) (Value, error) {
	v, ok := env[name]
	if !ok {
		return Value{}, fmt.Errorf("%q: %w", name, core.ErrUnknownOperand)
	}
	return v, nil
}

func (env environment) kind(name string, kind Kind) (Value, error) {
	v, err := env.lookup(name)
	if err != nil {
		return v, err
	}
	if v.Kind != kind {
		return Value{}, fmt.Errorf("%q is a %s, want %s: %w", name, v.Kind, kind, core.ErrOperandKind)
	}
	return v, nil
}

func (env environment) vector(name string) (math.Vector[float64], error) {
	v, err := env.kind(name, KindVector)
	return v.Vector, err
}

func (env environment) matrix(name string) (math.Matrix[float64], error) {
	v, err := env.kind(name, KindMatrix)
	return v.Matrix, err
}

func (env environment) quaternion(name string) (math.Quaternion, error) {
	v, err := env.kind(name, KindQuaternion)
	return v.Quaternion, err
}

// toVector3 narrows a double precision vector for the single precision
// quaternion operations.
func toVector3(v math.Vector[float64]) (math.Vector3, error) {
	values := v.Values()
	narrow := make([]float32, len(values))
	for i, x := range values {
		narrow[i] = float32(x)
	}
	out, err := math.NewVectorFromValues(len(narrow), narrow)
	if err != nil {
		return out, err
	}
	if out.Size() != 3 {
		return math.Vector3{}, fmt.Errorf("size %d: %w", out.Size(), math.ErrInvalidDimension)
	}
	return out, nil
}

func fromVector3(v math.Vector3) math.Vector[float64] {
	values := v.Values()
	wide := make([]float64, len(values))
	for i, x := range values {
		wide[i] = float64(x)
	}
	out, _ := math.NewVectorFromValues(len(wide), wide)
	return out
}

// buildEnvironment constructs every declared operand. Construction errors
// make the workbook invalid.
func (wb *Workbook) buildEnvironment() (environment, error) {
	env := make(environment)

	for _, def := range wb.Vectors {
		v, err := math.NewVectorFromValues(len(def.Values), def.Values)
		if err != nil {
			return nil, fmt.Errorf("%w: vector %q: %w", core.ErrInvalidWorkbook, def.Name, err)
		}
		env[def.Name] = vectorValue(v)
	}

	for _, def := range wb.Matrices {
		m, err := math.NewMatrixFromValues(def.Rows, def.Columns, def.Values)
		if err != nil {
			return nil, fmt.Errorf("%w: matrix %q: %w", core.ErrInvalidWorkbook, def.Name, err)
		}
		env[def.Name] = matrixValue(m)
	}

	for _, def := range wb.Quaternions {
		q, err := def.build()
		if err != nil {
			return nil, fmt.Errorf("%w: quaternion %q: %w", core.ErrInvalidWorkbook, def.Name, err)
		}
		env[def.Name] = quaternionValue(q)
	}

	for _, def := range wb.Randoms {
		v, err := def.build()
		if err != nil {
			return nil, fmt.Errorf("%w: random %q: %w", core.ErrInvalidWorkbook, def.Name, err)
		}
		env[def.Name] = v
	}
	return env, nil
}

func (def QuaternionDef) build() (math.Quaternion, error) {
	switch {
	case len(def.Components) > 0 && len(def.Axis) > 0:
		return math.Quaternion{}, fmt.Errorf("components and axis are exclusive")
	case len(def.Components) > 0:
		return math.NewQuaternionFromValues(def.Components)
	case len(def.Axis) > 0:
		axis, err := math.NewVectorFromValues(len(def.Axis), def.Axis)
		if err != nil {
			return math.Quaternion{}, err
		}
		return math.CreateRotationAboutAxis(def.Angle, axis)
	default:
		return math.Quaternion{}, fmt.Errorf("needs components or axis")
	}
}

func (def RandomDef) build() (Value, error) {
	if def.Max < def.Min {
		return Value{}, fmt.Errorf("max %v below min %v", def.Max, def.Min)
	}
	lo, hi := def.Min, def.Max
	if lo == 0 && hi == 0 {
		lo, hi = -1, 1
	}
	rng := math.NewRandom(def.Seed)

	switch def.Kind {
	case "vector":
		v, err := math.RandomVector(rng, def.Size, lo, hi)
		return vectorValue(v), err
	case "matrix":
		m, err := math.RandomMatrix(rng, def.Rows, def.Columns, lo, hi)
		return matrixValue(m), err
	case "quaternion":
		return quaternionValue(math.RandomUnitQuaternion(rng)), nil
	default:
		return Value{}, fmt.Errorf("unknown kind %q", def.Kind)
	}
}
