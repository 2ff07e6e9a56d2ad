// Package builtins defines the native function table used by the Orion
// compiler and virtual machine.
//
// A builtin is registered once with a name, a purity flag and a fixed arity.
// The compiler resolves builtin names to their index in the table and the
// VM dispatches by that index. A builtin's function receives the live
// machine, pops exactly its declared number of operands and pushes exactly
// one result.
package builtins

import (
	"bufio"
	"context"
	"io"

	"github.com/orion-lang/orion/errors"
	"github.com/orion-lang/orion/object"
	"github.com/orion-lang/orion/op"
)

// Machine is the view of the virtual machine available to builtins.
type Machine interface {
	// Pop removes and returns the top of the operand stack.
	Pop() (object.Object, error)

	// Push pushes a value onto the operand stack.
	Push(obj object.Object)

	// Exec runs an instruction block against the current context.
	Exec(ctx context.Context, instructions []op.Code) error

	// StackDepth returns the number of values on the operand stack.
	StackDepth() int

	// Stdout is where output builtins write.
	Stdout() io.Writer

	// Stdin is where input builtins read.
	Stdin() *bufio.Reader
}

// Func is the callable behind a builtin.
type Func func(ctx context.Context, m Machine) error

// Builtin describes one native function.
type Builtin struct {
	name   string
	impure bool
	arity  int
	fn     Func
}

// New creates a Builtin.
func New(name string, impure bool, arity int, fn Func) *Builtin {
	return &Builtin{name: name, impure: impure, arity: arity, fn: fn}
}

func (b *Builtin) Name() string {
	return b.name
}

// Impure reports whether the builtin may perform observable effects.
func (b *Builtin) Impure() bool {
	return b.impure
}

func (b *Builtin) Arity() int {
	return b.arity
}

// Call invokes the builtin against the machine.
func (b *Builtin) Call(ctx context.Context, m Machine) error {
	return b.fn(ctx, m)
}

// Table is an ordered set of builtins, indexed by registration order.
type Table struct {
	entries []*Builtin
	index   map[string]int
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{index: map[string]int{}}
}

// Register appends b to the table. Registering a name twice is an error.
func (t *Table) Register(b *Builtin) error {
	if _, found := t.index[b.name]; found {
		return errors.Errorf(errors.E2010, "builtin %q is already registered", b.name)
	}
	if len(t.entries) > int(^uint16(0)) {
		return errors.Errorf(errors.E2015, "too many builtins")
	}
	t.index[b.name] = len(t.entries)
	t.entries = append(t.entries, b)
	return nil
}

// MustRegister is like Register but panics on error.
func (t *Table) MustRegister(b *Builtin) {
	if err := t.Register(b); err != nil {
		panic(err)
	}
}

// Lookup returns the builtin with the given name and its index.
func (t *Table) Lookup(name string) (*Builtin, int, bool) {
	idx, found := t.index[name]
	if !found {
		return nil, 0, false
	}
	return t.entries[idx], idx, true
}

// At returns the builtin at index i, or nil if there is none.
func (t *Table) At(i int) *Builtin {
	if i < 0 || i >= len(t.entries) {
		return nil
	}
	return t.entries[i]
}

func (t *Table) Len() int {
	return len(t.entries)
}

// Names returns the builtin names in index order.
func (t *Table) Names() []string {
	names := make([]string, len(t.entries))
	for i, b := range t.entries {
		names[i] = b.name
	}
	return names
}

// Default returns a new table holding the standard builtins. Their indices
// are stable, so bytecode compiled against one default table runs against
// any other.
func Default() *Table {
	t := NewTable()
	t.MustRegister(New("+", false, 2, Arithmetic(op.Add)))
	t.MustRegister(New("-", false, 2, Arithmetic(op.Subtract)))
	t.MustRegister(New("*", false, 2, Arithmetic(op.Multiply)))
	t.MustRegister(New("/", false, 2, Arithmetic(op.Divide)))
	t.MustRegister(New("neg", false, 1, Neg))
	t.MustRegister(New("cos", false, 1, Trig(cos)))
	t.MustRegister(New("sin", false, 1, Trig(sin)))
	t.MustRegister(New("tan", false, 1, Trig(tan)))
	t.MustRegister(New("acos", false, 1, Trig(acos)))
	t.MustRegister(New("asin", false, 1, Trig(asin)))
	t.MustRegister(New("atan", false, 1, Trig(atan)))
	t.MustRegister(New("show", false, 1, Show))
	t.MustRegister(New("concat", false, 2, Concat))
	t.MustRegister(New("unquote", false, 1, Unquote))
	t.MustRegister(New("dbg", true, 1, Dbg))
	t.MustRegister(New("print", true, 1, Print))
	t.MustRegister(New("input", true, 1, Input))
	return t
}
