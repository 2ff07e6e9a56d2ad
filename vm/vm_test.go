package vm

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/orion-lang/orion/builtins"
	"github.com/orion-lang/orion/bytecode"
	"github.com/orion-lang/orion/compiler"
	"github.com/orion-lang/orion/errors"
	"github.com/orion-lang/orion/object"
	"github.com/orion-lang/orion/op"
	"github.com/orion-lang/orion/parser"
)

func compile(t *testing.T, source string) *bytecode.Bytecode {
	t.Helper()
	program, err := parser.Parse(context.Background(), source)
	require.Nil(t, err)
	code, err := compiler.Compile(program, compiler.WithSource(source))
	require.Nil(t, err)
	return code
}

func eval(t *testing.T, source string, options ...Option) (*VirtualMachine, []object.Object, error) {
	t.Helper()
	machine := New(compile(t, source), options...)
	result, err := machine.Eval(context.Background())
	return machine, result, err
}

func TestScenario(t *testing.T) {
	machine, result, err := eval(t, `
(def x 5)
(def f (λ (y) (+ x y)))
(f 3)`)
	require.Nil(t, err)
	require.Len(t, result, 2)
	require.Equal(t, object.NewInt(5), result[0])
	require.Equal(t, object.NewLambda(0), result[1])

	tos, ok := machine.TOS()
	require.True(t, ok)
	require.Equal(t, object.NewInt(8), tos)
	require.Len(t, machine.Stack(), 1)
}

func TestArityGrid(t *testing.T) {
	names := []string{"a", "b", "c"}
	values := []string{"1", "2", "3"}
	for params := 0; params <= 3; params++ {
		for args := 0; args <= 3; args++ {
			source := fmt.Sprintf("(def f (λ (%s) ())) (f %s)",
				strings.Join(names[:params], " "),
				strings.Join(values[:args], " "))
			machine, _, err := eval(t, source)
			if params == args {
				require.Nil(t, err, source)
				tos, _ := machine.TOS()
				require.Equal(t, object.Nothing, tos, source)
				continue
			}
			require.Error(t, err, source)
			require.Equal(t, errors.E3003, errors.CodeOf(err), source)
			require.True(t, errors.Is(err, errors.Arity))
		}
	}
}

func TestParametersBindInOrder(t *testing.T) {
	machine, _, err := eval(t, `(def f (λ (a b) (- a b))) (f 10 3)`)
	require.Nil(t, err)
	tos, _ := machine.TOS()
	require.Equal(t, object.NewInt(7), tos)
}

func TestContextIsolation(t *testing.T) {
	machine, result, err := eval(t, `(def x 1) (def f (λ (x) (+ x 1))) (f 2) x`)
	require.Nil(t, err)
	require.Equal(t, []object.Object{object.NewInt(3), object.NewInt(1)}, machine.Stack())
	require.Equal(t, object.NewInt(1), result[0])
}

func TestDefinitionsInsideLambdaAreDiscarded(t *testing.T) {
	machine, result, err := eval(t, `(def f (λ (a) (def b a))) (f 1)`)
	require.Nil(t, err)
	require.Len(t, result, 1)
	require.Empty(t, machine.Stack())
}

func TestDefineLeavesValue(t *testing.T) {
	machine, result, err := eval(t, `(def x (+ 1 2))`)
	require.Nil(t, err)
	require.Equal(t, []object.Object{object.NewInt(3)}, result)
	require.Empty(t, machine.Stack())
}

func TestDefinePadsContext(t *testing.T) {
	// y is declared by the lambda but never bound before z is defined.
	_, result, err := eval(t, `(def f (λ (y) y)) (def z 4)`)
	require.Nil(t, err)
	require.Equal(t, []object.Object{object.NewLambda(0), object.Nothing, object.NewInt(4)}, result)
}

func TestHigherOrderLambdas(t *testing.T) {
	machine, _, err := eval(t, `
(def twice (λ (g v) (g (g v))))
(def inc (λ (n) (+ n 1)))
(twice inc 5)`)
	require.Nil(t, err)
	tos, _ := machine.TOS()
	require.Equal(t, object.NewInt(7), tos)
}

func TestConstructors(t *testing.T) {
	machine, _, err := eval(t, `(enum Option (Some v) None) (Some (+ 2 3)) None`)
	require.Nil(t, err)
	stack := machine.Stack()
	require.Len(t, stack, 2)
	some, ok := stack[0].(*object.Constructor)
	require.True(t, ok)
	require.Equal(t, uint16(0), some.Index())
	require.Equal(t, []object.Object{object.NewInt(5)}, some.Values())
	require.Equal(t, "Some(5)", some.Inspect())
	require.Equal(t, "None", stack[1].Inspect())
}

func TestTuples(t *testing.T) {
	machine, _, err := eval(t, `(def x 1.5) [x "a" () [1 2]]`)
	require.Nil(t, err)
	tos, _ := machine.TOS()
	tuple, ok := tos.(*object.Tuple)
	require.True(t, ok)
	require.Equal(t, 4, tuple.Len())
	require.Equal(t, `[1.5 "a" () [1 2]]`, tuple.Inspect())
}

func TestQuoteAndUnquote(t *testing.T) {
	machine, _, err := eval(t, `(def x 2) (def q '(* x 10)) (unquote q)`)
	require.Nil(t, err)
	stack := machine.Stack()
	require.Equal(t, object.NewInt(20), stack[len(stack)-1])

	machine, _, err = eval(t, `'(+ 1 2)`)
	require.Nil(t, err)
	tos, _ := machine.TOS()
	require.Equal(t, object.QUOTED, tos.Type())

	// A quoted definition leaves no value of its own.
	machine, result, err := eval(t, `(unquote '(def z 4)) z`)
	require.Nil(t, err)
	require.Equal(t, []object.Object{object.NewInt(4)}, result)
	require.Equal(t, []object.Object{object.Nothing, object.NewInt(4)}, machine.Stack())
}

func TestOutputBuiltins(t *testing.T) {
	var out bytes.Buffer
	machine, _, err := eval(t, `(dbg 5) (print "hi") (print (show "q"))`, WithStdout(&out))
	require.Nil(t, err)
	require.Equal(t, "integer(5)\nhi\n\"q\"\n", out.String())
	require.Equal(t, []object.Object{object.Nothing, object.Nothing, object.Nothing}, machine.Stack())
}

func TestInput(t *testing.T) {
	var out bytes.Buffer
	machine, _, err := eval(t, `(def! name (input "name? ")) (concat "hi " name)`,
		WithStdout(&out), WithStdin(strings.NewReader("bob\n")))
	require.Nil(t, err)
	require.Equal(t, "name? ", out.String())
	tos, _ := machine.TOS()
	require.Equal(t, object.NewString("hi bob"), tos)
}

func TestRuntimeErrors(t *testing.T) {
	tests := []struct {
		source string
		code   errors.ErrorCode
	}{
		{`(+ 1 "a")`, errors.E3001},
		{`(+ 1 1.0)`, errors.E3001},
		{`(/ 1 0)`, errors.E3002},
		{`(+ 1)`, errors.E3004},
		{`(def f (λ (y) y)) y`, errors.E3006},
		{`(def n 1) (n 2)`, errors.E3001},
		{`(neg "a")`, errors.E3001},
	}
	for _, tt := range tests {
		_, _, err := eval(t, tt.source)
		require.Error(t, err, tt.source)
		require.Equal(t, tt.code, errors.CodeOf(err), tt.source)
	}
}

func TestMalformedBytecode(t *testing.T) {
	tests := []struct {
		name         string
		instructions []op.Code
		code         errors.ErrorCode
	}{
		{"invalid opcode", []op.Code{99}, errors.E3009},
		{"truncated", []op.Code{op.LoadConst}, errors.E3009},
		{"constant out of range", []op.Code{op.LoadConst, 4}, errors.E3009},
		{"builtin out of range", []op.Code{op.Builtin, 900, 0}, errors.E3009},
		{"quote overrun", []op.Code{op.Quote, 5, op.LoadConst}, errors.E3009},
		{"tuple overrun", []op.Code{op.Tuple, 5, 1}, errors.E3009},
		{"underflow", []op.Code{op.Define, 0}, errors.E3007},
		{"tuple underflow", []op.Code{op.Tuple, 0, 2}, errors.E3007},
		{"unknown chunk", []op.Code{op.Lambda, 3, op.Call, 0}, errors.E3005},
		{"unbound slot", []op.Code{op.LoadSym, 3}, errors.E3006},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := bytecode.New(bytecode.Params{Instructions: tt.instructions})
			_, err := New(code).Eval(context.Background())
			require.Error(t, err)
			require.Equal(t, tt.code, errors.CodeOf(err))
		})
	}
}

func TestOperandBlockResultCount(t *testing.T) {
	// The lambda body is a definition, so the call leaves no value and the
	// block must not borrow the 5 sitting below it.
	_, _, err := eval(t, `(def f (λ (a) (def b a))) 5 [1 (f 2)]`)
	require.Error(t, err)
	require.Equal(t, errors.E3007, errors.CodeOf(err))
	require.Contains(t, err.Error(), "left 1 values, expected 2")

	_, _, err = eval(t, `(enum P (Pair l r)) (def f (λ (a) (def b a))) 7 (Pair 1 (f 2))`)
	require.Equal(t, errors.E3007, errors.CodeOf(err))

	code := bytecode.New(bytecode.Params{
		Instructions: []op.Code{op.Tuple, 4, 1, op.LoadConst, 0, op.LoadConst, 0},
		Constants:    []bytecode.Literal{bytecode.IntLiteral(1)},
	})
	_, err = New(code).Eval(context.Background())
	require.Equal(t, errors.E3012, errors.CodeOf(err))
}

func TestBuiltinResultContract(t *testing.T) {
	table := builtins.NewTable()
	table.MustRegister(builtins.New("noop", false, 0, func(ctx context.Context, m builtins.Machine) error {
		return nil
	}))
	code := bytecode.New(bytecode.Params{Instructions: []op.Code{op.Builtin, 0, 0}})
	_, err := New(code, WithBuiltins(table)).Eval(context.Background())
	require.Error(t, err)
	require.Equal(t, errors.E3012, errors.CodeOf(err))
}

func TestCallDepthLimit(t *testing.T) {
	_, _, err := eval(t, `(def f (λ (n) (f n))) (f 1)`, WithMaxCallDepth(50))
	require.Error(t, err)
	require.Equal(t, errors.E3008, errors.CodeOf(err))
	require.True(t, errors.Is(err, errors.ResourceExhaustion))
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(compile(t, `1`)).Eval(ctx)
	require.Error(t, err)
	require.Equal(t, errors.E3011, errors.CodeOf(err))
}

func TestEvalIsRepeatable(t *testing.T) {
	machine := New(compile(t, `(def x 1) x`))
	first, err := machine.Eval(context.Background())
	require.Nil(t, err)
	second, err := machine.Eval(context.Background())
	require.Nil(t, err)
	require.Equal(t, first, second)
	require.Len(t, machine.Stack(), 1)
}

type countingObserver struct {
	NoOpObserver
	steps, calls, returns int
	haltAfter            int
}

func (o *countingObserver) OnStep(StepEvent) bool {
	o.steps++
	return o.haltAfter == 0 || o.steps < o.haltAfter
}

func (o *countingObserver) OnCall(CallEvent) bool {
	o.calls++
	return true
}

func (o *countingObserver) OnReturn(ReturnEvent) bool {
	o.returns++
	return true
}

func TestObserver(t *testing.T) {
	observer := &countingObserver{}
	_, _, err := eval(t, `(def f (λ (a) a)) (f 1) (f 2)`, WithObserver(observer))
	require.Nil(t, err)
	require.Equal(t, 2, observer.calls)
	require.Equal(t, 2, observer.returns)
	require.Equal(t, 10, observer.steps)

	halting := &countingObserver{haltAfter: 2}
	_, _, err = eval(t, `1 2 3`, WithObserver(halting))
	require.Error(t, err)
	require.Equal(t, errors.E3011, errors.CodeOf(err))
}

func TestLogObserver(t *testing.T) {
	level := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(level) })

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.TraceLevel)
	_, _, err := eval(t, `(def f (λ () 1)) (f)`, WithObserver(NewLogObserver(logger)))
	require.Nil(t, err)
	require.Contains(t, buf.String(), `"message":"call"`)
	require.Contains(t, buf.String(), `"op":"LAMBDA"`)
}
