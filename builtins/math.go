package builtins

import (
	"context"
	"math"

	"github.com/orion-lang/orion/errors"
	"github.com/orion-lang/orion/object"
	"github.com/orion-lang/orion/op"
)

// Arithmetic returns a builtin that pops the right then the left operand
// and pushes the result of the operation.
func Arithmetic(opType op.BinaryOpType) Func {
	return func(ctx context.Context, m Machine) error {
		rhs, err := m.Pop()
		if err != nil {
			return err
		}
		lhs, err := m.Pop()
		if err != nil {
			return err
		}
		operand, ok := lhs.(object.Operand)
		if !ok {
			return errors.TypeErrorf("expected a single or an integer, found a %s", lhs.Type())
		}
		result, err := operand.RunOperation(opType, rhs)
		if err != nil {
			return err
		}
		m.Push(result)
		return nil
	}
}

func Neg(ctx context.Context, m Machine) error {
	value, err := m.Pop()
	if err != nil {
		return err
	}
	switch value := value.(type) {
	case *object.Int:
		m.Push(value.Neg())
	case *object.Single:
		m.Push(value.Neg())
	default:
		return errors.TypeErrorf("expected a single or an integer, found a %s", value.Type())
	}
	return nil
}

func cos(x float64) float64  { return math.Cos(x) }
func sin(x float64) float64  { return math.Sin(x) }
func tan(x float64) float64  { return math.Tan(x) }
func acos(x float64) float64 { return math.Acos(x) }
func asin(x float64) float64 { return math.Asin(x) }
func atan(x float64) float64 { return math.Atan(x) }

// Trig returns a builtin applying fn to a Single operand.
func Trig(fn func(float64) float64) Func {
	return func(ctx context.Context, m Machine) error {
		value, err := m.Pop()
		if err != nil {
			return err
		}
		single, ok := value.(*object.Single)
		if !ok {
			return errors.TypeErrorf("expected a single, found a %s", value.Type())
		}
		m.Push(object.NewSingle(float32(fn(float64(single.Value())))))
		return nil
	}
}
