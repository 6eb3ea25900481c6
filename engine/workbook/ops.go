package workbook

import (
	"fmt"
	"sort"

	"github.com/spaghettifunk/math3d/engine/core"
	"github.com/spaghettifunk/math3d/engine/geometry"
	"github.com/spaghettifunk/math3d/engine/math"
)

type operation struct {
	arity int
	run   func(env environment, s Step) (Value, error)
}

var operations = map[string]operation{
	"magnitude": {1, func(env environment, s Step) (Value, error) {
		v, err := env.vector(s.Args[0])
		if err != nil {
			return Value{}, err
		}
		return scalarValue(v.Magnitude()), nil
	}},
	"normalize": {1, func(env environment, s Step) (Value, error) {
		v, err := env.vector(s.Args[0])
		if err != nil {
			return Value{}, err
		}
		return vectorValue(v.Normalized()), nil
	}},
	"dot": {2, vectorPair(func(a, b math.Vector[float64]) (Value, error) {
		d, err := math.DotProduct(a, b)
		return scalarValue(d), err
	})},
	"cross": {2, vectorPair(func(a, b math.Vector[float64]) (Value, error) {
		c, err := math.CrossProduct(a, b)
		return vectorValue(c), err
	})},
	"distance": {2, vectorPair(func(a, b math.Vector[float64]) (Value, error) {
		d, err := a.Distance(b)
		return scalarValue(d), err
	})},
	"add": {2, func(env environment, s Step) (Value, error) {
		return combine(env, s, false)
	}},
	"sub": {2, func(env environment, s Step) (Value, error) {
		return combine(env, s, true)
	}},
	"scale": {1, func(env environment, s Step) (Value, error) {
		v, err := env.lookup(s.Args[0])
		if err != nil {
			return Value{}, err
		}
		switch v.Kind {
		case KindScalar:
			return scalarValue(v.Scalar * s.Scalar), nil
		case KindVector:
			return vectorValue(v.Vector.MulScalar(s.Scalar)), nil
		case KindMatrix:
			return matrixValue(math.ScaleMatrix(v.Matrix, s.Scalar)), nil
		default:
			return quaternionValue(v.Quaternion.MulScalar(float32(s.Scalar))), nil
		}
	}},
	"transpose": {1, matrixUnary(func(m math.Matrix[float64]) (Value, error) {
		return matrixValue(m.Transpose()), nil
	})},
	"determinant": {1, matrixUnary(func(m math.Matrix[float64]) (Value, error) {
		d, err := m.Determinant()
		return scalarValue(d), err
	})},
	"cofactor": {1, matrixUnary(func(m math.Matrix[float64]) (Value, error) {
		c, err := m.CofactorMatrix()
		return matrixValue(c), err
	})},
	"adjugate": {1, matrixUnary(func(m math.Matrix[float64]) (Value, error) {
		a, err := m.AdjugateMatrix()
		return matrixValue(a), err
	})},
	"inverse": {1, matrixUnary(func(m math.Matrix[float64]) (Value, error) {
		inv, err := m.Inverse()
		return matrixValue(inv), err
	})},
	"identity": {0, func(env environment, s Step) (Value, error) {
		m, err := math.CreateIdentity[float64](s.Size, s.Size)
		return matrixValue(m), err
	}},
	"multiply": {2, multiply},
	"minor": {1, func(env environment, s Step) (Value, error) {
		m, err := env.matrix(s.Args[0])
		if err != nil {
			return Value{}, err
		}
		minor, err := m.Minor(s.Row, s.Column)
		return matrixValue(minor), err
	}},
	"row": {1, func(env environment, s Step) (Value, error) {
		m, err := env.matrix(s.Args[0])
		if err != nil {
			return Value{}, err
		}
		row, err := m.Row(s.Index)
		return matrixValue(row), err
	}},
	"column": {1, func(env environment, s Step) (Value, error) {
		m, err := env.matrix(s.Args[0])
		if err != nil {
			return Value{}, err
		}
		column, err := m.Column(s.Index)
		return matrixValue(column), err
	}},
	"conjugate": {1, quaternionUnary(func(q math.Quaternion) math.Quaternion {
		return q.Conjugated()
	})},
	"quat_inverse": {1, quaternionUnary(func(q math.Quaternion) math.Quaternion {
		return q.Inverted()
	})},
	"quat_normalize": {1, quaternionUnary(func(q math.Quaternion) math.Quaternion {
		return q.Normalized()
	})},
	"rotate": {2, func(env environment, s Step) (Value, error) {
		q, err := env.quaternion(s.Args[0])
		if err != nil {
			return Value{}, err
		}
		v, err := env.vector(s.Args[1])
		if err != nil {
			return Value{}, err
		}
		narrow, err := toVector3(v)
		if err != nil {
			return Value{}, fmt.Errorf("rotate: %w", err)
		}
		rotated, err := q.RotateVector(narrow)
		return vectorValue(fromVector3(rotated)), err
	}},
	"slerp": {2, func(env environment, s Step) (Value, error) {
		a, err := env.quaternion(s.Args[0])
		if err != nil {
			return Value{}, err
		}
		b, err := env.quaternion(s.Args[1])
		if err != nil {
			return Value{}, err
		}
		return quaternionValue(math.Slerp(a, b, s.Alpha)), nil
	}},
	"axis_rotation": {1, func(env environment, s Step) (Value, error) {
		v, err := env.vector(s.Args[0])
		if err != nil {
			return Value{}, err
		}
		axis, err := toVector3(v)
		if err != nil {
			return Value{}, fmt.Errorf("axis_rotation: %w", err)
		}
		q, err := math.CreateRotationAboutAxis(s.Angle, axis)
		return quaternionValue(q), err
	}},
	"circle_sdf": {2, roundSDF(geometry.CircleSDF[float64])},
	"sphere_sdf": {2, roundSDF(geometry.SphereSDF[float64])},
	"segment_sdf": {3, func(env environment, s Step) (Value, error) {
		vs, err := vectors(env, s.Args)
		if err != nil {
			return Value{}, err
		}
		d, err := geometry.SegmentSDF(vs[0], vs[1], vs[2])
		return scalarValue(d), err
	}},
	"face_normal": {3, func(env environment, s Step) (Value, error) {
		vs, err := vectors(env, s.Args)
		if err != nil {
			return Value{}, err
		}
		n, err := geometry.FaceNormal(vs[0], vs[1], vs[2])
		return vectorValue(n), err
	}},
}

// Operations lists the operation names a step may use.
func Operations() []string {
	names := make([]string, 0, len(operations))
	for name := range operations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupOperation(s Step) (operation, error) {
	op, ok := operations[s.Op]
	if !ok {
		return operation{}, fmt.Errorf("%q: %w", s.Op, core.ErrUnknownOperation)
	}
	if len(s.Args) != op.arity {
		return operation{}, fmt.Errorf("%s: %d args, want %d: %w", s.Op, len(s.Args), op.arity, core.ErrInvalidWorkbook)
	}
	return op, nil
}

func vectors(env environment, names []string) ([]math.Vector[float64], error) {
	out := make([]math.Vector[float64], len(names))
	for i, name := range names {
		v, err := env.vector(name)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func vectorPair(fn func(a, b math.Vector[float64]) (Value, error)) func(environment, Step) (Value, error) {
	return func(env environment, s Step) (Value, error) {
		vs, err := vectors(env, s.Args)
		if err != nil {
			return Value{}, err
		}
		return fn(vs[0], vs[1])
	}
}

// roundSDF evaluates a circle or sphere SDF with args (center, point) and
// the step's radius.
func roundSDF(sdf func(center math.Vector[float64], radius float64, point math.Vector[float64]) (float64, error)) func(environment, Step) (Value, error) {
	return func(env environment, s Step) (Value, error) {
		vs, err := vectors(env, s.Args)
		if err != nil {
			return Value{}, err
		}
		d, err := sdf(vs[0], s.Radius, vs[1])
		return scalarValue(d), err
	}
}

func matrixUnary(fn func(m math.Matrix[float64]) (Value, error)) func(environment, Step) (Value, error) {
	return func(env environment, s Step) (Value, error) {
		m, err := env.matrix(s.Args[0])
		if err != nil {
			return Value{}, err
		}
		return fn(m)
	}
}

func quaternionUnary(fn func(q math.Quaternion) math.Quaternion) func(environment, Step) (Value, error) {
	return func(env environment, s Step) (Value, error) {
		q, err := env.quaternion(s.Args[0])
		if err != nil {
			return Value{}, err
		}
		return quaternionValue(fn(q)), nil
	}
}

// combine adds or subtracts two operands of the same kind.
func combine(env environment, s Step, subtract bool) (Value, error) {
	a, err := env.lookup(s.Args[0])
	if err != nil {
		return Value{}, err
	}
	b, err := env.kind(s.Args[1], a.Kind)
	if err != nil {
		return Value{}, err
	}

	switch a.Kind {
	case KindScalar:
		if subtract {
			return scalarValue(a.Scalar - b.Scalar), nil
		}
		return scalarValue(a.Scalar + b.Scalar), nil
	case KindVector:
		var v math.Vector[float64]
		if subtract {
			v, err = a.Vector.Sub(b.Vector)
		} else {
			v, err = a.Vector.Add(b.Vector)
		}
		return vectorValue(v), err
	case KindMatrix:
		var m math.Matrix[float64]
		if subtract {
			m, err = a.Matrix.Sub(b.Matrix)
		} else {
			m, err = a.Matrix.Add(b.Matrix)
		}
		return matrixValue(m), err
	default:
		if subtract {
			return quaternionValue(a.Quaternion.Sub(b.Quaternion)), nil
		}
		return quaternionValue(a.Quaternion.Add(b.Quaternion)), nil
	}
}

// multiply handles matrix x matrix, matrix x vector and quaternion x
// quaternion (Hamilton product).
func multiply(env environment, s Step) (Value, error) {
	a, err := env.lookup(s.Args[0])
	if err != nil {
		return Value{}, err
	}
	b, err := env.lookup(s.Args[1])
	if err != nil {
		return Value{}, err
	}

	switch {
	case a.Kind == KindMatrix && b.Kind == KindMatrix:
		m, err := a.Matrix.Mul(b.Matrix)
		return matrixValue(m), err
	case a.Kind == KindMatrix && b.Kind == KindVector:
		v, err := a.Matrix.MulVector(b.Vector)
		return vectorValue(v), err
	case a.Kind == KindQuaternion && b.Kind == KindQuaternion:
		return quaternionValue(a.Quaternion.Mul(b.Quaternion)), nil
	default:
		return Value{}, fmt.Errorf("multiply %s by %s: %w", a.Kind, b.Kind, core.ErrOperandKind)
	}
}
