package ast

import (
	"strconv"

	"github.com/orion-lang/orion/internal/token"
)

// Int is a 32-bit signed integer literal.
type Int struct {
	ValuePos token.Position
	Literal  string
	Value    int32
}

// NewInt creates an integer literal without position information.
func NewInt(v int32) *Int {
	return &Int{Literal: strconv.FormatInt(int64(v), 10), Value: v}
}

func (x *Int) exprNode()    {}
func (x *Int) literalNode() {}

func (x *Int) Pos() token.Position { return x.ValuePos }

func (x *Int) String() string { return x.Literal }

// Single is a 32-bit floating point literal.
type Single struct {
	ValuePos token.Position
	Literal  string
	Value    float32
}

// NewSingle creates a float literal without position information.
func NewSingle(v float32) *Single {
	return &Single{Literal: strconv.FormatFloat(float64(v), 'g', -1, 32), Value: v}
}

func (x *Single) exprNode()    {}
func (x *Single) literalNode() {}

func (x *Single) Pos() token.Position { return x.ValuePos }

func (x *Single) String() string { return x.Literal }

// String is a string literal.
type String struct {
	ValuePos token.Position
	Value    string
}

// NewString creates a string literal without position information.
func NewString(v string) *String {
	return &String{Value: v}
}

func (x *String) exprNode()    {}
func (x *String) literalNode() {}

func (x *String) Pos() token.Position { return x.ValuePos }

func (x *String) String() string { return strconv.Quote(x.Value) }

// Unit is the empty value, written "()".
type Unit struct {
	UnitPos token.Position
}

func (x *Unit) exprNode()    {}
func (x *Unit) literalNode() {}

func (x *Unit) Pos() token.Position { return x.UnitPos }

func (x *Unit) String() string { return "()" }
