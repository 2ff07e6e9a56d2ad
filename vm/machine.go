package vm

import (
	"bufio"
	"context"
	"io"

	"github.com/orion-lang/orion/object"
	"github.com/orion-lang/orion/op"
)

// machine exposes the running VM to builtins.
type machine struct {
	vm *VirtualMachine
}

func (m *machine) Pop() (object.Object, error) {
	return m.vm.pop()
}

func (m *machine) Push(obj object.Object) {
	m.vm.push(obj)
}

// Exec runs a block against the current context. Definitions made by the
// block stay visible to the caller.
func (m *machine) Exec(ctx context.Context, instructions []op.Code) error {
	if err := ctx.Err(); err != nil {
		return cancelled(err)
	}
	return m.vm.exec(ctx, instructions)
}

func (m *machine) StackDepth() int {
	return len(m.vm.stack)
}

func (m *machine) Stdout() io.Writer {
	return m.vm.stdout
}

func (m *machine) Stdin() *bufio.Reader {
	return m.vm.stdin
}
