// Package vm provides the virtual machine that evaluates Orion bytecode.
//
// The machine holds an operand stack and a context: a slot-indexed list of
// values, one per symbol table entry. Lambda calls bind their parameters
// into the context and restore the caller's context when they return.
package vm

import (
	"bufio"
	"context"
	stderrors "errors"
	"io"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog"

	"github.com/orion-lang/orion/builtins"
	"github.com/orion-lang/orion/bytecode"
	"github.com/orion-lang/orion/errors"
	"github.com/orion-lang/orion/object"
	"github.com/orion-lang/orion/op"
)

// MaxCallDepth is the default limit on nested lambda calls.
const MaxCallDepth = 1024

// ErrRunning is returned when Eval is called on a machine that is already
// evaluating.
var ErrRunning = stderrors.New("vm is already running")

type VirtualMachine struct {
	code      *bytecode.Bytecode
	builtins  *builtins.Table
	constants []object.Object
	chunks    [][]op.Code

	stack   []object.Object
	context []object.Object
	depth   int

	maxCallDepth int
	stdout       io.Writer
	stdin        *bufio.Reader
	logger       zerolog.Logger

	observer       Observer
	observerConfig ObserverConfig
	steps          int

	runMutex sync.Mutex
	running  bool
}

// New creates a virtual machine for the given bytecode.
func New(code *bytecode.Bytecode, options ...Option) *VirtualMachine {
	vm := &VirtualMachine{
		code:         code,
		builtins:     builtins.Default(),
		maxCallDepth: MaxCallDepth,
		stdout:       os.Stdout,
		logger:       zerolog.Nop(),
	}
	for _, opt := range options {
		opt(vm)
	}
	if vm.stdin == nil {
		vm.stdin = bufio.NewReader(os.Stdin)
	}
	if vm.maxCallDepth <= 0 {
		vm.maxCallDepth = MaxCallDepth
	}
	return vm
}

// Eval runs the main instruction stream and returns the final context.
// The operand stack is left in place and may be read with Stack or TOS.
func (vm *VirtualMachine) Eval(ctx context.Context) ([]object.Object, error) {
	vm.runMutex.Lock()
	if vm.running {
		vm.runMutex.Unlock()
		return nil, ErrRunning
	}
	vm.running = true
	vm.runMutex.Unlock()
	defer func() {
		vm.runMutex.Lock()
		vm.running = false
		vm.runMutex.Unlock()
	}()

	if err := vm.reset(); err != nil {
		return nil, err
	}
	runID := uuid.Must(uuid.NewV4())
	logger := vm.logger.With().Str("run_id", runID.String()).Logger()
	logger.Debug().
		Str("filename", vm.code.Filename()).
		Int("instructions", vm.code.InstructionCount()).
		Msg("evaluation started")
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return nil, cancelled(err)
	}
	if err := vm.exec(ctx, vm.code.Instructions()); err != nil {
		logger.Debug().Err(err).Msg("evaluation failed")
		return nil, err
	}

	logger.Debug().
		Dur("elapsed", time.Since(start)).
		Int("context", len(vm.context)).
		Int("stack", len(vm.stack)).
		Msg("evaluation finished")
	return slices.Clone(vm.context), nil
}

// Stack returns a copy of the operand stack, bottom first.
func (vm *VirtualMachine) Stack() []object.Object {
	return slices.Clone(vm.stack)
}

// TOS returns the top-of-stack value if there is one.
func (vm *VirtualMachine) TOS() (object.Object, bool) {
	if len(vm.stack) == 0 {
		return nil, false
	}
	return vm.stack[len(vm.stack)-1], true
}

// Context returns a copy of the current context, indexed by slot.
func (vm *VirtualMachine) Context() []object.Object {
	return slices.Clone(vm.context)
}

func (vm *VirtualMachine) reset() error {
	vm.stack = nil
	vm.context = nil
	vm.depth = 0
	vm.steps = 0
	vm.constants = make([]object.Object, vm.code.ConstantCount())
	for i := range vm.constants {
		obj, err := object.FromLiteral(vm.code.ConstantAt(i))
		if err != nil {
			return err
		}
		vm.constants[i] = obj
	}
	vm.chunks = make([][]op.Code, vm.code.ChunkCount())
	for i := range vm.chunks {
		vm.chunks[i] = vm.code.ChunkAt(i).Instructions()
	}
	if vm.observer != nil {
		vm.observerConfig = NormalizeConfig(vm.observer.Config())
	}
	return nil
}

// exec runs one instruction stream to completion.
func (vm *VirtualMachine) exec(ctx context.Context, instructions []op.Code) error {
	ip := 0
	for ip < len(instructions) {
		opcode := instructions[ip]
		info := op.GetInfo(opcode)
		if info.Name == "" {
			return errors.Errorf(errors.E3009, "invalid opcode %d at offset %d", opcode, ip)
		}
		next := ip + 1 + info.OperandCount
		if next > len(instructions) {
			return errors.Errorf(errors.E3009, "truncated %s instruction at offset %d", info.Name, ip)
		}
		operands := instructions[ip+1 : next]
		if err := vm.step(ip, opcode, info.Name); err != nil {
			return err
		}

		switch opcode {
		case op.LoadConst:
			id := int(operands[0])
			if id >= len(vm.constants) {
				return errors.Errorf(errors.E3009, "constant %d out of range", id)
			}
			vm.push(vm.constants[id])
		case op.LoadSym:
			slot := int(operands[0])
			if slot >= len(vm.context) {
				return errors.Errorf(errors.E3006, "symbol %s (slot %d) is not bound",
					vm.code.SymbolAt(slot), slot)
			}
			vm.push(vm.context[slot])
		case op.Define:
			value, err := vm.pop()
			if err != nil {
				return err
			}
			vm.define(uint16(operands[0]), value)
		case op.Lambda:
			vm.push(object.NewLambda(uint16(operands[0])))
		case op.Call:
			if err := vm.call(ctx, int(operands[0])); err != nil {
				return err
			}
		case op.Builtin:
			if err := vm.callBuiltin(ctx, int(operands[0]), int(operands[1])); err != nil {
				return err
			}
		case op.Constructor:
			index, count, size := uint16(operands[0]), int(operands[1]), int(operands[2])
			if int(index) >= vm.code.ConstructorCount() {
				return errors.Errorf(errors.E3009, "constructor %d out of range", index)
			}
			values, end, err := vm.execBlock(ctx, instructions, next, size, count)
			if err != nil {
				return err
			}
			vm.push(object.NewConstructor(index, vm.code.ConstructorName(int(index)), values))
			next = end
		case op.Tuple:
			size, count := int(operands[0]), int(operands[1])
			values, end, err := vm.execBlock(ctx, instructions, next, size, count)
			if err != nil {
				return err
			}
			vm.push(object.NewTuple(values))
			next = end
		case op.Quote:
			size := int(operands[0])
			end := next + size
			if end > len(instructions) {
				return errors.Errorf(errors.E3009, "quoted block at offset %d overruns the stream", ip)
			}
			vm.push(object.NewQuoted(instructions[next:end]))
			next = end
		}
		ip = next
	}
	return nil
}

// execBlock runs the operand block of size words starting at start and pops
// the count values it produced. It returns the values in push order and the
// offset just past the block.
func (vm *VirtualMachine) execBlock(ctx context.Context, instructions []op.Code, start, size, count int) ([]object.Object, int, error) {
	end := start + size
	if end > len(instructions) {
		return nil, 0, errors.Errorf(errors.E3009, "operand block at offset %d overruns the stream", start)
	}
	base := len(vm.stack)
	if err := vm.exec(ctx, instructions[start:end]); err != nil {
		return nil, 0, err
	}
	if left := len(vm.stack) - base; left < count {
		return nil, 0, errors.Errorf(errors.E3007,
			"stack underflow: operand block at offset %d left %d values, expected %d", start, left, count)
	} else if left > count {
		return nil, 0, errors.Errorf(errors.E3012,
			"operand block at offset %d left %d values, expected %d", start, left, count)
	}
	values, err := vm.popN(count)
	if err != nil {
		return nil, 0, err
	}
	return values, end, nil
}

// define stores value at slot. Writing past the end of the context pads
// the gap with unit.
func (vm *VirtualMachine) define(slot uint16, value object.Object) {
	i := int(slot)
	for len(vm.context) < i {
		vm.context = append(vm.context, object.Nothing)
	}
	if i == len(vm.context) {
		vm.context = append(vm.context, value)
		return
	}
	vm.context[i] = value
}

// call pops argc arguments and a callee, then runs the callee's chunk with
// the parameters bound. The caller's context is restored afterwards.
func (vm *VirtualMachine) call(ctx context.Context, argc int) error {
	args, err := vm.popN(argc)
	if err != nil {
		return err
	}
	callee, err := vm.pop()
	if err != nil {
		return err
	}
	fn, ok := callee.(*object.Lambda)
	if !ok {
		return errors.TypeErrorf("type error: %s is not callable", object.Describe(callee))
	}
	id := fn.Chunk()
	if int(id) >= len(vm.chunks) {
		return errors.Errorf(errors.E3005, "lambda refers to unknown chunk %d", id)
	}
	chunk := vm.code.ChunkAt(int(id))
	if chunk.ParameterCount() != argc {
		return errors.Errorf(errors.E3003, "lambda takes %d arguments, but %d were given",
			chunk.ParameterCount(), argc)
	}
	if vm.depth >= vm.maxCallDepth {
		return errors.Errorf(errors.E3008, "maximum call depth of %d exceeded", vm.maxCallDepth)
	}
	if err := ctx.Err(); err != nil {
		return cancelled(err)
	}

	saved := slices.Clone(vm.context)
	for i, arg := range args {
		vm.define(chunk.ParameterSlot(i), arg)
	}
	vm.depth++
	if vm.observes(vm.observerConfig.ObserveCalls) &&
		!vm.observer.OnCall(CallEvent{Chunk: id, ArgCount: argc, CallDepth: vm.depth}) {
		return halted()
	}
	err = vm.exec(ctx, vm.chunks[id])
	vm.depth--
	vm.context = saved
	if err != nil {
		return err
	}
	if vm.observes(vm.observerConfig.ObserveReturns) &&
		!vm.observer.OnReturn(ReturnEvent{Chunk: id, CallDepth: vm.depth}) {
		return halted()
	}
	return nil
}

// callBuiltin invokes a builtin and checks that it consumed its operands
// and left exactly one result.
func (vm *VirtualMachine) callBuiltin(ctx context.Context, index, argc int) error {
	b := vm.builtins.At(index)
	if b == nil {
		return errors.Errorf(errors.E3009, "builtin %d out of range", index)
	}
	if b.Arity() != argc {
		return errors.Errorf(errors.E3004, "builtin %s takes %d arguments, but %d were given",
			b.Name(), b.Arity(), argc)
	}
	if len(vm.stack) < argc {
		return errors.Errorf(errors.E3007, "stack underflow: %s needs %d operands, found %d",
			b.Name(), argc, len(vm.stack))
	}
	expected := len(vm.stack) - argc + 1
	if err := b.Call(ctx, &machine{vm: vm}); err != nil {
		return err
	}
	if len(vm.stack) != expected {
		return errors.Errorf(errors.E3012, "builtin %s left %d values on the stack, expected %d",
			b.Name(), len(vm.stack)-expected+1, 1)
	}
	return nil
}

func (vm *VirtualMachine) step(ip int, opcode op.Code, name string) error {
	if vm.observer == nil {
		return nil
	}
	switch vm.observerConfig.StepMode {
	case StepNone:
		return nil
	case StepSampled:
		vm.steps++
		if vm.steps%vm.observerConfig.SampleInterval != 0 {
			return nil
		}
	}
	if !vm.observer.OnStep(StepEvent{
		IP:         ip,
		Opcode:     opcode,
		OpcodeName: name,
		StackDepth: len(vm.stack),
		CallDepth:  vm.depth,
	}) {
		return halted()
	}
	return nil
}

func (vm *VirtualMachine) observes(enabled bool) bool {
	return vm.observer != nil && enabled
}

func (vm *VirtualMachine) push(obj object.Object) {
	vm.stack = append(vm.stack, obj)
}

func (vm *VirtualMachine) pop() (object.Object, error) {
	n := len(vm.stack)
	if n == 0 {
		return nil, errors.Errorf(errors.E3007, "stack underflow")
	}
	obj := vm.stack[n-1]
	vm.stack[n-1] = nil
	vm.stack = vm.stack[:n-1]
	return obj, nil
}

// popN pops n values and returns them in the order they were pushed.
func (vm *VirtualMachine) popN(n int) ([]object.Object, error) {
	if len(vm.stack) < n {
		return nil, errors.Errorf(errors.E3007, "stack underflow: need %d values, found %d", n, len(vm.stack))
	}
	start := len(vm.stack) - n
	values := slices.Clone(vm.stack[start:])
	clear(vm.stack[start:])
	vm.stack = vm.stack[:start]
	return values, nil
}

func cancelled(err error) error {
	return errors.Errorf(errors.E3011, "evaluation cancelled: %v", err)
}

func halted() error {
	return errors.Errorf(errors.E3011, "evaluation halted by observer")
}
