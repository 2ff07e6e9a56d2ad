package builtins

import (
	"context"

	"github.com/orion-lang/orion/errors"
	"github.com/orion-lang/orion/object"
)

// Show pushes the printed form of a value. Strings are wrapped in quotes
// without escaping.
func Show(ctx context.Context, m Machine) error {
	value, err := m.Pop()
	if err != nil {
		return err
	}
	m.Push(object.NewString(showString(value)))
	return nil
}

func showString(value object.Object) string {
	if s, ok := value.(*object.String); ok {
		return `"` + s.Value() + `"`
	}
	return value.Inspect()
}

// Concat pops two strings and pushes their concatenation, left first.
func Concat(ctx context.Context, m Machine) error {
	rhs, err := m.Pop()
	if err != nil {
		return err
	}
	lhs, err := m.Pop()
	if err != nil {
		return err
	}
	left, ok := lhs.(*object.String)
	if !ok {
		return errors.TypeErrorf("expected a string, found a %s", lhs.Type())
	}
	right, ok := rhs.(*object.String)
	if !ok {
		return errors.TypeErrorf("expected a string, found a %s", rhs.Type())
	}
	m.Push(left.Concat(right))
	return nil
}

// Unquote pops a quoted block and runs it against the current context. The
// block's single result becomes the builtin's result; a block that leaves
// nothing, such as a definition inside a lambda call, yields unit.
func Unquote(ctx context.Context, m Machine) error {
	value, err := m.Pop()
	if err != nil {
		return err
	}
	quoted, ok := value.(*object.Quoted)
	if !ok {
		return errors.TypeErrorf("expected a quoted expression, found a %s", value.Type())
	}
	base := m.StackDepth()
	if err := m.Exec(ctx, quoted.Instructions()); err != nil {
		return err
	}
	if m.StackDepth() == base {
		m.Push(object.Nothing)
	}
	return nil
}
