package compiler

import (
	"slices"

	"github.com/orion-lang/orion/bytecode"
	"github.com/orion-lang/orion/errors"
)

// Symbol is one declared name and its purity.
type Symbol struct {
	Name   string
	Impure bool
}

// SymbolTable is the ordered list of declared symbols. A symbol's position
// is its context slot at run time.
//
// SymbolTable has value semantics: every method that changes the table
// returns a new one and leaves the receiver untouched, so a compile step
// can keep the table it was given while returning an extended one.
type SymbolTable struct {
	symbols []Symbol
}

// NewSymbolTable returns an empty table.
func NewSymbolTable() SymbolTable {
	return SymbolTable{}
}

// Len returns the number of declared symbols.
func (t SymbolTable) Len() int {
	return len(t.symbols)
}

// At returns the symbol at the given slot.
func (t SymbolTable) At(slot uint16) Symbol {
	return t.symbols[slot]
}

// Lookup returns the slot of the given name, if declared.
func (t SymbolTable) Lookup(name string) (uint16, Symbol, bool) {
	for i, s := range t.symbols {
		if s.Name == name {
			return uint16(i), s, true
		}
	}
	return 0, Symbol{}, false
}

// Declare returns the slot for name. A name that is already present keeps
// its slot and its recorded purity; otherwise a new slot is appended.
func (t SymbolTable) Declare(name string, impure bool) (uint16, SymbolTable, error) {
	if slot, _, found := t.Lookup(name); found {
		return slot, t, nil
	}
	if len(t.symbols) >= bytecode.MaxIndex {
		return 0, t, errors.Errorf(errors.E2007, "too many symbols are declared (limit %d)", bytecode.MaxIndex)
	}
	symbols := append(slices.Clip(t.symbols), Symbol{Name: name, Impure: impure})
	return uint16(len(symbols) - 1), SymbolTable{symbols: symbols}, nil
}

// Replace returns a copy of the table with the symbol at slot replaced.
func (t SymbolTable) Replace(slot uint16, sym Symbol) SymbolTable {
	if t.symbols[slot] == sym {
		return t
	}
	symbols := slices.Clone(t.symbols)
	symbols[slot] = sym
	return SymbolTable{symbols: symbols}
}

// Names returns the symbol names in slot order.
func (t SymbolTable) Names() []string {
	names := make([]string, len(t.symbols))
	for i, s := range t.symbols {
		names[i] = s.Name
	}
	return names
}
