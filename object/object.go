// Package object provides the Orion runtime value types.
//
// The set of types is closed: every value is exactly one of *Int, *Single,
// *String, *Unit, *Lambda, *Tuple, *Constructor or *Quoted. Code handling
// values should switch on the concrete type and reject unexpected cases:
//
//	switch v := v.(type) {
//	case *object.Int:
//		// use v.Value()
//	case *object.Single:
//		// use v.Value()
//	default:
//		return errors.TypeErrorf("expected a number, found %s", v.Type())
//	}
//
// Values are immutable once constructed, so they may be copied freely
// between the operand stack and the context without sharing mutable state.
package object

import (
	"github.com/orion-lang/orion/bytecode"
	"github.com/orion-lang/orion/errors"
)

// Type of an object as a string.
type Type string

// Type constants
const (
	CONSTRUCTOR Type = "constructor"
	INT         Type = "integer"
	LAMBDA      Type = "lambda"
	QUOTED      Type = "quoted"
	SINGLE      Type = "single"
	STRING      Type = "string"
	TUPLE       Type = "tuple"
	UNIT        Type = "unit"
)

// Object is the interface implemented by all Orion values.
type Object interface {
	// Type of the object.
	Type() Type

	// Inspect returns a string representation of the given object.
	Inspect() string

	// Interface converts the given object to a native Go value.
	Interface() any

	// Equals reports structural equality with other.
	Equals(other Object) bool

	sealed()
}

// Nothing is the shared unit value.
var Nothing = &Unit{}

// FromLiteral materializes a constant pool entry as a runtime value.
func FromLiteral(lit bytecode.Literal) (Object, error) {
	switch lit.Kind {
	case bytecode.KindInteger:
		return NewInt(lit.Int), nil
	case bytecode.KindSingle:
		return NewSingle(lit.Single), nil
	case bytecode.KindString:
		return NewString(lit.Str), nil
	case bytecode.KindUnit:
		return Nothing, nil
	default:
		return nil, errors.Errorf(errors.E3009, "invalid constant kind %d", lit.Kind)
	}
}

// Describe returns the type and printed form of obj, for error messages.
func Describe(obj Object) string {
	if obj == nil {
		return "nothing"
	}
	return string(obj.Type()) + " " + obj.Inspect()
}

func equalSlices(a, b []Object) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equals(b[i]) {
			return false
		}
	}
	return true
}

func copyObjects(src []Object) []Object {
	dst := make([]Object, len(src))
	copy(dst, src)
	return dst
}

func interfaces(items []Object) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item.Interface()
	}
	return out
}
