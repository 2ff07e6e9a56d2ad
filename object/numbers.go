package object

import (
	"strconv"
	"strings"

	"github.com/orion-lang/orion/errors"
	"github.com/orion-lang/orion/op"
)

// Int wraps int32. Arithmetic wraps around on overflow.
type Int struct {
	value int32
}

// NewInt creates an Int.
func NewInt(value int32) *Int {
	return &Int{value: value}
}

func (i *Int) sealed() {}

func (i *Int) Type() Type {
	return INT
}

func (i *Int) Value() int32 {
	return i.value
}

func (i *Int) Inspect() string {
	return strconv.FormatInt(int64(i.value), 10)
}

func (i *Int) String() string {
	return i.Inspect()
}

func (i *Int) Interface() any {
	return i.value
}

func (i *Int) Equals(other Object) bool {
	o, ok := other.(*Int)
	return ok && o.value == i.value
}

// RunOperation applies a binary operation with i as the left operand.
func (i *Int) RunOperation(opType op.BinaryOpType, right Object) (Object, error) {
	r, ok := right.(*Int)
	if !ok {
		return nil, errors.TypeErrorf("expected an integer, found a %s", right.Type())
	}
	switch opType {
	case op.Add:
		return NewInt(i.value + r.value), nil
	case op.Subtract:
		return NewInt(i.value - r.value), nil
	case op.Multiply:
		return NewInt(i.value * r.value), nil
	case op.Divide:
		if r.value == 0 {
			return nil, errors.Errorf(errors.E3002, "integer division by zero")
		}
		return NewInt(i.value / r.value), nil
	default:
		return nil, errors.Errorf(errors.E3001, "unsupported operation for integer: %v", opType)
	}
}

// Neg returns the arithmetic negation of i.
func (i *Int) Neg() *Int {
	return NewInt(-i.value)
}

// Single wraps float32.
type Single struct {
	value float32
}

// NewSingle creates a Single.
func NewSingle(value float32) *Single {
	return &Single{value: value}
}

func (f *Single) sealed() {}

func (f *Single) Type() Type {
	return SINGLE
}

func (f *Single) Value() float32 {
	return f.value
}

func (f *Single) Inspect() string {
	s := strconv.FormatFloat(float64(f.value), 'g', -1, 32)
	if strings.ContainsAny(s, ".eIN") {
		return s
	}
	return s + ".0"
}

func (f *Single) String() string {
	return f.Inspect()
}

func (f *Single) Interface() any {
	return f.value
}

func (f *Single) Equals(other Object) bool {
	o, ok := other.(*Single)
	return ok && o.value == f.value
}

// RunOperation applies a binary operation with f as the left operand.
func (f *Single) RunOperation(opType op.BinaryOpType, right Object) (Object, error) {
	r, ok := right.(*Single)
	if !ok {
		return nil, errors.TypeErrorf("expected a single, found a %s", right.Type())
	}
	switch opType {
	case op.Add:
		return NewSingle(f.value + r.value), nil
	case op.Subtract:
		return NewSingle(f.value - r.value), nil
	case op.Multiply:
		return NewSingle(f.value * r.value), nil
	case op.Divide:
		return NewSingle(f.value / r.value), nil
	default:
		return nil, errors.Errorf(errors.E3001, "unsupported operation for single: %v", opType)
	}
}

// Neg returns the arithmetic negation of f.
func (f *Single) Neg() *Single {
	return NewSingle(-f.value)
}

// Operand is implemented by the numeric types.
type Operand interface {
	Object
	RunOperation(opType op.BinaryOpType, right Object) (Object, error)
}
