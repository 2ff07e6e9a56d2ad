package compiler

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/orion-lang/orion/bytecode"
	"github.com/orion-lang/orion/errors"
)

func TestSymbolTableDeclare(t *testing.T) {
	table := NewSymbolTable()
	require.Equal(t, 0, table.Len())

	a, t1, err := table.Declare("a", false)
	require.Nil(t, err)
	require.Equal(t, uint16(0), a)

	b, t2, err := t1.Declare("b", true)
	require.Nil(t, err)
	require.Equal(t, uint16(1), b)

	// Redeclaring keeps the slot and the recorded purity.
	again, t3, err := t2.Declare("a", true)
	require.Nil(t, err)
	require.Equal(t, uint16(0), again)
	require.Equal(t, Symbol{Name: "a"}, t3.At(0))

	require.Equal(t, 0, table.Len())
	require.Equal(t, 1, t1.Len())
	require.Equal(t, []string{"a", "b"}, t2.Names())
}

func TestSymbolTableValueSemantics(t *testing.T) {
	_, base, _ := NewSymbolTable().Declare("a", false)
	_, base, _ = base.Declare("b", false)

	// Two extensions of the same table must not see each other.
	_, left, _ := base.Declare("left", false)
	_, right, _ := base.Declare("right", false)
	require.Equal(t, []string{"a", "b", "left"}, left.Names())
	require.Equal(t, []string{"a", "b", "right"}, right.Names())

	replaced := base.Replace(0, Symbol{Name: "p"})
	require.Equal(t, []string{"p", "b"}, replaced.Names())
	require.Equal(t, []string{"a", "b"}, base.Names())
}

func TestSymbolTableLookup(t *testing.T) {
	_, table, _ := NewSymbolTable().Declare("x", true)
	slot, sym, found := table.Lookup("x")
	require.True(t, found)
	require.Equal(t, uint16(0), slot)
	require.True(t, sym.Impure)

	_, _, found = table.Lookup("y")
	require.False(t, found)
}

func TestSymbolTableLimit(t *testing.T) {
	names := make([]Symbol, bytecode.MaxIndex-1)
	for i := range names {
		names[i] = Symbol{Name: "s" + strconv.Itoa(i)}
	}
	table := SymbolTable{symbols: names}

	slot, table, err := table.Declare("last", false)
	require.Nil(t, err)
	require.Equal(t, uint16(bytecode.MaxIndex-1), slot)
	require.Equal(t, bytecode.MaxIndex, table.Len())

	_, same, err := table.Declare("overflow", false)
	require.Equal(t, errors.E2007, errors.CodeOf(err))
	require.True(t, errors.Is(err, errors.ResourceExhaustion))
	require.Equal(t, bytecode.MaxIndex, same.Len())
}
