package compiler

import (
	"strings"

	"github.com/orion-lang/orion/ast"
	"github.com/orion-lang/orion/errors"
)

// errorAt creates an error located at the given node.
func (c *Compiler) errorAt(code errors.ErrorCode, node ast.Node, format string, args ...any) error {
	return c.locate(errors.Errorf(code, format, args...), node)
}

// locate attaches the node's position to err unless it already has one.
func (c *Compiler) locate(err error, node ast.Node) error {
	e, ok := errors.As(err)
	if !ok || !e.Location.IsZero() {
		return err
	}
	pos := node.Pos()
	if !pos.IsValid() {
		return err
	}
	return e.At(errors.SourceLocation{
		Filename: c.filename,
		Line:     pos.LineNumber(),
		Column:   pos.ColumnNumber(),
		Source:   c.sourceLine(pos.Line),
	})
}

// undefinedVariable creates an error for an undeclared name, with "did you
// mean" suggestions drawn from the symbols in scope.
func (c *Compiler) undefinedVariable(node *ast.Var, table SymbolTable) error {
	err := errors.Errorf(errors.E2001, "variable not in scope: %s", node.Name)
	err.Suggestions = errors.SuggestSimilar(node.Name, table.Names())
	return c.locate(err, node)
}

// sourceLine returns a 0-indexed line of the current source.
func (c *Compiler) sourceLine(line int) string {
	if c.source == "" {
		return ""
	}
	lines := strings.Split(c.source, "\n")
	if line < 0 || line >= len(lines) {
		return ""
	}
	return lines[line]
}
