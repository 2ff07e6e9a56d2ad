package object

import "fmt"

// Constructor is a value built by applying a registered algebraic
// constructor. Identity is the constructor index; the name is for display.
type Constructor struct {
	index  uint16
	name   string
	values []Object
}

// NewConstructor creates a Constructor holding a copy of values.
func NewConstructor(index uint16, name string, values []Object) *Constructor {
	return &Constructor{index: index, name: name, values: copyObjects(values)}
}

func (c *Constructor) sealed() {}

func (c *Constructor) Type() Type {
	return CONSTRUCTOR
}

func (c *Constructor) Index() uint16 {
	return c.index
}

func (c *Constructor) Name() string {
	return c.name
}

func (c *Constructor) Len() int {
	return len(c.values)
}

// Values returns a copy of the stored values, in application order.
func (c *Constructor) Values() []Object {
	return copyObjects(c.values)
}

func (c *Constructor) label() string {
	if c.name != "" {
		return c.name
	}
	return fmt.Sprintf("#%d", c.index)
}

func (c *Constructor) Inspect() string {
	if len(c.values) == 0 {
		return c.label()
	}
	return c.label() + "(" + inspectAll(c.values) + ")"
}

func (c *Constructor) String() string {
	return c.Inspect()
}

func (c *Constructor) Interface() any {
	return map[string]any{
		"constructor": c.label(),
		"values":      interfaces(c.values),
	}
}

func (c *Constructor) Equals(other Object) bool {
	o, ok := other.(*Constructor)
	return ok && o.index == c.index && equalSlices(c.values, o.values)
}
