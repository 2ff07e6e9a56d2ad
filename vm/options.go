package vm

import (
	"bufio"
	"io"

	"github.com/rs/zerolog"

	"github.com/orion-lang/orion/builtins"
)

// Option is a configuration function for a Virtual Machine.
type Option func(*VirtualMachine)

// WithBuiltins sets the builtin table the bytecode was compiled against.
// Defaults to builtins.Default().
func WithBuiltins(table *builtins.Table) Option {
	return func(vm *VirtualMachine) {
		vm.builtins = table
	}
}

// WithStdout sets where output builtins write. Defaults to os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(vm *VirtualMachine) {
		vm.stdout = w
	}
}

// WithStdin sets where the input builtin reads. Defaults to os.Stdin.
func WithStdin(r io.Reader) Option {
	return func(vm *VirtualMachine) {
		if br, ok := r.(*bufio.Reader); ok {
			vm.stdin = br
			return
		}
		vm.stdin = bufio.NewReader(r)
	}
}

// WithLogger sets the logger used for evaluation diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(vm *VirtualMachine) {
		vm.logger = logger
	}
}

// WithObserver sets an observer for VM execution events.
// The observer receives callbacks for instruction steps, lambda calls
// and lambda returns. Returning false from any observer method halts
// evaluation.
func WithObserver(observer Observer) Option {
	return func(vm *VirtualMachine) {
		vm.observer = observer
	}
}

// WithMaxCallDepth limits the number of nested lambda calls. Values <= 0
// restore the default, MaxCallDepth.
func WithMaxCallDepth(depth int) Option {
	return func(vm *VirtualMachine) {
		vm.maxCallDepth = depth
	}
}
