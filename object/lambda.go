package object

import "fmt"

// Lambda references a chunk by index. It captures nothing: the chunk runs
// against the caller's context when called.
type Lambda struct {
	chunk uint16
}

func NewLambda(chunk uint16) *Lambda {
	return &Lambda{chunk: chunk}
}

func (l *Lambda) sealed() {}

func (l *Lambda) Type() Type {
	return LAMBDA
}

// Chunk returns the index of the chunk this lambda executes.
func (l *Lambda) Chunk() uint16 {
	return l.chunk
}

func (l *Lambda) Inspect() string {
	return fmt.Sprintf("<lambda %d>", l.chunk)
}

func (l *Lambda) String() string {
	return l.Inspect()
}

func (l *Lambda) Interface() any {
	return l.Inspect()
}

func (l *Lambda) Equals(other Object) bool {
	o, ok := other.(*Lambda)
	return ok && o.chunk == l.chunk
}
