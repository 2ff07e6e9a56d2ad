// Package orion compiles and evaluates Orion programs.
//
// Source is parsed into an AST, compiled to immutable bytecode and run on
// a fresh virtual machine:
//
//	result, err := orion.Eval(ctx, "(def x 5) (+ x 3)")
//	value, _ := result.Value() // 8
package orion

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/orion-lang/orion/builtins"
	"github.com/orion-lang/orion/bytecode"
	"github.com/orion-lang/orion/compiler"
	"github.com/orion-lang/orion/object"
	"github.com/orion-lang/orion/parser"
	"github.com/orion-lang/orion/vm"
)

// Option configures an Orion compilation or execution.
type Option func(*options)

type options struct {
	filename     string
	libPath      string
	fs           afero.Fs
	builtins     *builtins.Table
	stdout       io.Writer
	stdin        io.Reader
	logger       *zerolog.Logger
	observer     vm.Observer
	maxCallDepth int
}

func collectOptions(opts ...Option) *options {
	o := &options{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

func (o *options) parserOpts() []parser.Option {
	var opts []parser.Option
	if o.filename != "" {
		opts = append(opts, parser.WithFilename(o.filename))
	}
	if o.builtins != nil {
		opts = append(opts, parser.WithBuiltins(o.builtins))
	}
	return opts
}

func (o *options) compilerOpts(source string) []compiler.Option {
	opts := []compiler.Option{compiler.WithSource(source)}
	if o.filename != "" {
		opts = append(opts, compiler.WithFilename(o.filename))
	}
	if o.libPath != "" {
		opts = append(opts, compiler.WithLibPath(o.libPath))
	}
	if o.fs != nil {
		opts = append(opts, compiler.WithFS(o.fs))
	}
	if o.builtins != nil {
		opts = append(opts, compiler.WithBuiltins(o.builtins))
	}
	if o.logger != nil {
		opts = append(opts, compiler.WithLogger(*o.logger))
	}
	return opts
}

func (o *options) vmOpts() []vm.Option {
	var opts []vm.Option
	if o.builtins != nil {
		opts = append(opts, vm.WithBuiltins(o.builtins))
	}
	if o.stdout != nil {
		opts = append(opts, vm.WithStdout(o.stdout))
	}
	if o.stdin != nil {
		opts = append(opts, vm.WithStdin(o.stdin))
	}
	if o.logger != nil {
		opts = append(opts, vm.WithLogger(*o.logger))
	}
	if o.observer != nil {
		opts = append(opts, vm.WithObserver(o.observer))
	}
	if o.maxCallDepth > 0 {
		opts = append(opts, vm.WithMaxCallDepth(o.maxCallDepth))
	}
	return opts
}

// WithFilename sets the filename for the source code being compiled.
// This is used in error messages.
func WithFilename(filename string) Option {
	return func(o *options) {
		o.filename = filename
	}
}

// WithLibPath sets the directory searched by load. When unset, the
// ORION_LIB environment variable is used.
func WithLibPath(path string) Option {
	return func(o *options) {
		o.libPath = path
	}
}

// WithFS sets the filesystem modules are loaded from.
func WithFS(fs afero.Fs) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// WithBuiltins replaces the default builtin table. The same table must be
// used to compile and to run a program.
func WithBuiltins(table *builtins.Table) Option {
	return func(o *options) {
		o.builtins = table
	}
}

// WithStdout sets where output builtins write.
func WithStdout(w io.Writer) Option {
	return func(o *options) {
		o.stdout = w
	}
}

// WithStdin sets where the input builtin reads.
func WithStdin(r io.Reader) Option {
	return func(o *options) {
		o.stdin = r
	}
}

// WithLogger sets the logger used by the compiler and the VM.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = &logger
	}
}

// WithObserver sets an observer for VM execution events.
func WithObserver(observer vm.Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}

// WithMaxCallDepth limits the number of nested lambda calls.
func WithMaxCallDepth(depth int) Option {
	return func(o *options) {
		o.maxCallDepth = depth
	}
}

// Result is the state left behind by an evaluation.
type Result struct {
	// Context holds the final value of each bound slot.
	Context []object.Object

	// Stack holds the operand stack, bottom first.
	Stack []object.Object

	// Symbols holds the name of each slot.
	Symbols []string
}

// Value returns the top of the stack, normally the value of the last
// expression.
func (r *Result) Value() (object.Object, bool) {
	if len(r.Stack) == 0 {
		return nil, false
	}
	return r.Stack[len(r.Stack)-1], true
}

// Lookup returns the final value bound to name.
func (r *Result) Lookup(name string) (object.Object, bool) {
	for slot, symbol := range r.Symbols {
		if symbol == name && slot < len(r.Context) {
			return r.Context[slot], true
		}
	}
	return nil, false
}

// Bindings converts the final context to Go values keyed by symbol name.
func (r *Result) Bindings() map[string]any {
	bindings := make(map[string]any, len(r.Context))
	for slot, value := range r.Context {
		if slot < len(r.Symbols) {
			bindings[r.Symbols[slot]] = value.Interface()
		}
	}
	return bindings
}

// Compile parses and compiles source code into bytecode. The returned
// Bytecode is immutable and may be run concurrently.
func Compile(source string, opts ...Option) (*bytecode.Bytecode, error) {
	o := collectOptions(opts...)
	program, err := parser.Parse(context.Background(), source, o.parserOpts()...)
	if err != nil {
		return nil, err
	}
	return compiler.Compile(program, o.compilerOpts(source)...)
}

// Run evaluates compiled bytecode on a fresh virtual machine.
func Run(ctx context.Context, code *bytecode.Bytecode, opts ...Option) (*Result, error) {
	o := collectOptions(opts...)
	machine := vm.New(code, o.vmOpts()...)
	final, err := machine.Eval(ctx)
	if err != nil {
		return nil, err
	}
	return &Result{
		Context: final,
		Stack:   machine.Stack(),
		Symbols: code.Symbols(),
	}, nil
}

// Eval compiles and runs source code. It is equivalent to Compile followed
// by Run.
func Eval(ctx context.Context, source string, opts ...Option) (*Result, error) {
	code, err := Compile(source, opts...)
	if err != nil {
		return nil, err
	}
	return Run(ctx, code, opts...)
}
