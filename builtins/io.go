package builtins

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/orion-lang/orion/errors"
	"github.com/orion-lang/orion/object"
)

// Dbg writes the type and printed form of a value and pushes Unit.
func Dbg(ctx context.Context, m Machine) error {
	value, err := m.Pop()
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(m.Stdout(), "%s(%s)\n", value.Type(), value.Inspect()); err != nil {
		return errors.Errorf(errors.E3010, "dbg: %v", err)
	}
	m.Push(object.Nothing)
	return nil
}

// Print writes a value followed by a newline and pushes Unit. Strings are
// written without quotes.
func Print(ctx context.Context, m Machine) error {
	value, err := m.Pop()
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(m.Stdout(), displayString(value)); err != nil {
		return errors.Errorf(errors.E3010, "print: %v", err)
	}
	m.Push(object.Nothing)
	return nil
}

// Input writes a prompt, reads one line and pushes it as a string without
// its line terminator.
func Input(ctx context.Context, m Machine) error {
	value, err := m.Pop()
	if err != nil {
		return err
	}
	if _, err := fmt.Fprint(m.Stdout(), displayString(value)); err != nil {
		return errors.Errorf(errors.E3010, "input: %v", err)
	}
	line, err := readLine(m.Stdin())
	if err != nil {
		return errors.Errorf(errors.E3010, "input: %v", err)
	}
	m.Push(object.NewString(line))
	return nil
}

func displayString(value object.Object) string {
	if s, ok := value.(*object.String); ok {
		return s.Value()
	}
	return value.Inspect()
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}
