package parser

import (
	"context"
	"testing"

	"github.com/orion-lang/orion/ast"
	"github.com/orion-lang/orion/errors"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, input string) *ast.Program {
	t.Helper()
	program, err := Parse(context.Background(), input)
	require.Nil(t, err)
	return program
}

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"5", "5"},
		{"-3", "-3"},
		{"2.5", "2.5"},
		{`"hi"`, `"hi"`},
		{"()", "()"},
		{"x", "x"},
		{"(def x 5)", "(def x 5)"},
		{`(def! name (input "? "))`, `(def! name (input "? "))`},
		{"(lambda (a b) (+ a b))", "(λ (a b) (+ a b))"},
		{"(λ () 1)", "(λ () 1)"},
		{"(f 1 2)", "(f 1 2)"},
		{"(f)", "(f)"},
		{"((λ (x) x) 3)", "((λ (x) x) 3)"},
		{"(enum Option (Some v) None)", "(enum Option (Some v) None)"},
		{"(Some 5)", "(Some 5)"},
		{"None", "None"},
		{"'(+ 1 2)", "'(+ 1 2)"},
		{"[1 \"a\" ()]", `[1 "a" ()]`},
		{"[]", "[]"},
		{`(load "a.orn" "b.orn")`, `(load "a.orn" "b.orn")`},
	}
	for _, tt := range tests {
		program := parse(t, tt.input)
		require.Len(t, program.Exprs, 1, tt.input)
		require.Equal(t, tt.expected, program.String(), tt.input)
	}
}

func TestParseNodeKinds(t *testing.T) {
	program := parse(t, `
; a comment
(def x 5)
(def f (λ (y) (+ x y)))
(f 3)
(print (show x))
(Pair 1 2)`)
	require.Len(t, program.Exprs, 5)

	def, ok := program.Exprs[0].(*ast.Def)
	require.True(t, ok)
	require.Equal(t, "x", def.Name)
	require.False(t, def.Impure)
	require.Equal(t, int32(5), def.Value.(*ast.Int).Value)

	lambda := program.Exprs[1].(*ast.Def).Value.(*ast.Lambda)
	require.Equal(t, []string{"y"}, lambda.Params)
	builtin, ok := lambda.Body.(*ast.Builtin)
	require.True(t, ok)
	require.Equal(t, "+", builtin.Name)
	require.Len(t, builtin.Args, 2)

	call, ok := program.Exprs[2].(*ast.Call)
	require.True(t, ok)
	require.Equal(t, "f", call.Fun.(*ast.Var).Name)

	printCall := program.Exprs[3].(*ast.Builtin)
	require.Equal(t, "print", printCall.Name)
	require.Equal(t, "show", printCall.Args[0].(*ast.Builtin).Name)

	constr, ok := program.Exprs[4].(*ast.Constr)
	require.True(t, ok)
	require.Equal(t, "Pair", constr.Name)
	require.Len(t, constr.Args, 2)
}

func TestParseEnumArity(t *testing.T) {
	program := parse(t, "(enum Shape (Rect w h) (Circle r) Empty)")
	enum := program.Exprs[0].(*ast.Enum)
	require.Equal(t, "Shape", enum.Name)
	require.Len(t, enum.Variants, 3)
	require.Equal(t, 2, enum.Variants[0].Arity())
	require.Equal(t, 1, enum.Variants[1].Arity())
	require.Equal(t, 0, enum.Variants[2].Arity())
}

func TestParsePositions(t *testing.T) {
	program := parse(t, "(def x 1)\n  (f x)")
	call := program.Exprs[1].(*ast.Call)
	require.Equal(t, 2, call.Pos().LineNumber())
	require.Equal(t, 3, call.Pos().ColumnNumber())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		code  errors.ErrorCode
	}{
		{"(def x 1", errors.E1004},
		{"[1 2", errors.E1004},
		{")", errors.E1001},
		{"(def 1 2)", errors.E1001},
		{"(def x 1 2)", errors.E1001},
		{"(λ x x)", errors.E1001},
		{"(λ (x 1) x)", errors.E1001},
		{"(load)", errors.E1003},
		{"(load x)", errors.E1001},
		{"(enum T (lower x))", errors.E1001},
		{"99999999999", errors.E1005},
		{"1.2.3", errors.E1005},
		{`"abc`, errors.E1002},
		{"(f def)", errors.E1001},
		{"'", errors.E1001},
	}
	for _, tt := range tests {
		_, err := Parse(context.Background(), tt.input)
		require.Error(t, err, tt.input)
		require.Equal(t, tt.code, errors.CodeOf(err), "%s: %v", tt.input, err)
		require.True(t, errors.Is(err, errors.Syntax), tt.input)
	}
}

func TestParseErrorLocation(t *testing.T) {
	_, err := Parse(context.Background(), "(def x 1)\n(def y 1", WithFilename("main.orn"))
	require.Error(t, err)
	e, ok := errors.As(err)
	require.True(t, ok)
	require.Equal(t, "main.orn", e.Location.Filename)
	require.Equal(t, 2, e.Location.Line)
	require.Equal(t, 1, e.Location.Column)
	require.Equal(t, "(def y 1", e.Location.Source)
}

func TestParseMaxDepth(t *testing.T) {
	_, err := Parse(context.Background(), "''''1", WithMaxDepth(3))
	require.Error(t, err)
	require.Equal(t, errors.E1003, errors.CodeOf(err))

	_, err = Parse(context.Background(), "''1", WithMaxDepth(3))
	require.Nil(t, err)
}

func TestParseCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Parse(ctx, "1 2 3")
	require.ErrorIs(t, err, context.Canceled)
}
