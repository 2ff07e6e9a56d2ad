package object

import (
	"fmt"
	"slices"

	"github.com/orion-lang/orion/op"
)

// Quoted holds an instruction block that has not been executed.
type Quoted struct {
	instructions []op.Code
}

// NewQuoted creates a Quoted value holding a copy of instructions.
func NewQuoted(instructions []op.Code) *Quoted {
	return &Quoted{instructions: slices.Clone(instructions)}
}

func (q *Quoted) sealed() {}

func (q *Quoted) Type() Type {
	return QUOTED
}

// Instructions returns a copy of the quoted block.
func (q *Quoted) Instructions() []op.Code {
	return slices.Clone(q.instructions)
}

func (q *Quoted) Inspect() string {
	return fmt.Sprintf("<quoted %d>", len(q.instructions))
}

func (q *Quoted) String() string {
	return q.Inspect()
}

func (q *Quoted) Interface() any {
	return q.Inspect()
}

func (q *Quoted) Equals(other Object) bool {
	o, ok := other.(*Quoted)
	return ok && slices.Equal(q.instructions, o.instructions)
}
