// Package ast defines the expression tree consumed by the Orion compiler.
//
// Orion programs are sequences of expressions; there are no statements.
// Nodes are produced by the parser already validated, and the compiler
// treats them as read-only input.
package ast

import (
	"strings"

	"github.com/orion-lang/orion/internal/token"
)

// Node represents a portion of the syntax tree.
type Node interface {
	// Pos returns the position of the first character belonging to the node.
	Pos() token.Position

	// String returns a human friendly representation of the Node, similar to
	// the original source code but not necessarily identical.
	String() string
}

// Expr represents an expression node.
type Expr interface {
	Node
	exprNode()
}

// Literal is implemented by the expression nodes that denote constants:
// Int, Single, String and Unit.
type Literal interface {
	Expr
	literalNode()
}

// Program is the root node: an ordered sequence of top-level expressions.
type Program struct {
	Exprs []Expr
}

// NewProgram creates a program from the given expressions.
func NewProgram(exprs ...Expr) *Program {
	return &Program{Exprs: exprs}
}

func (p *Program) Pos() token.Position {
	if len(p.Exprs) > 0 {
		return p.Exprs[0].Pos()
	}
	return token.NoPos
}

func (p *Program) String() string {
	parts := make([]string, len(p.Exprs))
	for i, e := range p.Exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, "\n")
}

func joinExprs(exprs []Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, " ")
}
