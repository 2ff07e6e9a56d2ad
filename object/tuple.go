package object

import (
	"strings"
)

// Tuple is an ordered, fixed sequence of values.
type Tuple struct {
	items []Object
}

// NewTuple creates a Tuple holding a copy of items.
func NewTuple(items []Object) *Tuple {
	return &Tuple{items: copyObjects(items)}
}

func (t *Tuple) sealed() {}

func (t *Tuple) Type() Type {
	return TUPLE
}

func (t *Tuple) Len() int {
	return len(t.items)
}

func (t *Tuple) At(i int) Object {
	return t.items[i]
}

// Items returns a copy of the tuple's values.
func (t *Tuple) Items() []Object {
	return copyObjects(t.items)
}

func (t *Tuple) Inspect() string {
	return "[" + inspectAll(t.items) + "]"
}

func (t *Tuple) String() string {
	return t.Inspect()
}

func (t *Tuple) Interface() any {
	return interfaces(t.items)
}

func (t *Tuple) Equals(other Object) bool {
	o, ok := other.(*Tuple)
	return ok && equalSlices(t.items, o.items)
}

func inspectAll(items []Object) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = item.Inspect()
	}
	return strings.Join(parts, " ")
}
