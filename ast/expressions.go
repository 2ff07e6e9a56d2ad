package ast

import (
	"strconv"
	"strings"

	"github.com/orion-lang/orion/internal/token"
)

// Var is a reference to a variable by name.
type Var struct {
	NamePos token.Position
	Name    string
}

// NewVar creates a variable reference without position information.
func NewVar(name string) *Var {
	return &Var{Name: name}
}

func (x *Var) exprNode() {}

func (x *Var) Pos() token.Position { return x.NamePos }

func (x *Var) String() string { return x.Name }

// Load includes other source files, in order, into the current program.
type Load struct {
	LoadPos token.Position
	Files   []string
}

func (x *Load) exprNode() {}

func (x *Load) Pos() token.Position { return x.LoadPos }

func (x *Load) String() string {
	quoted := make([]string, len(x.Files))
	for i, f := range x.Files {
		quoted[i] = strconv.Quote(f)
	}
	return "(load " + strings.Join(quoted, " ") + ")"
}

// Def binds a name to the value of an expression. Impure definitions may
// perform effects in their initializer.
type Def struct {
	DefPos token.Position
	Name   string
	Value  Expr
	Impure bool
}

func (x *Def) exprNode() {}

func (x *Def) Pos() token.Position { return x.DefPos }

func (x *Def) String() string {
	kw := "def"
	if x.Impure {
		kw = "def!"
	}
	return "(" + kw + " " + x.Name + " " + x.Value.String() + ")"
}

// Call applies a lambda-valued expression to arguments.
type Call struct {
	LParen token.Position
	Fun    Expr
	Args   []Expr
}

func (x *Call) exprNode() {}

func (x *Call) Pos() token.Position { return x.LParen }

func (x *Call) String() string {
	if len(x.Args) == 0 {
		return "(" + x.Fun.String() + ")"
	}
	return "(" + x.Fun.String() + " " + joinExprs(x.Args) + ")"
}

// Lambda is an anonymous function of named parameters with a single body
// expression.
type Lambda struct {
	LambdaPos token.Position
	Params    []string
	Body      Expr
}

func (x *Lambda) exprNode() {}

func (x *Lambda) Pos() token.Position { return x.LambdaPos }

func (x *Lambda) String() string {
	return "(λ (" + strings.Join(x.Params, " ") + ") " + x.Body.String() + ")"
}

// Builtin invokes a native builtin function by name.
type Builtin struct {
	NamePos token.Position
	Name    string
	Args    []Expr
}

func (x *Builtin) exprNode() {}

func (x *Builtin) Pos() token.Position { return x.NamePos }

func (x *Builtin) String() string {
	if len(x.Args) == 0 {
		return "(" + x.Name + ")"
	}
	return "(" + x.Name + " " + joinExprs(x.Args) + ")"
}

// Variant is one constructor of an enum declaration.
type Variant struct {
	Name   string
	Fields []string
}

// Arity returns the number of values the constructor holds.
func (v Variant) Arity() int {
	return len(v.Fields)
}

// Enum declares algebraic constructors.
type Enum struct {
	EnumPos  token.Position
	Name     string
	Variants []Variant
}

func (x *Enum) exprNode() {}

func (x *Enum) Pos() token.Position { return x.EnumPos }

func (x *Enum) String() string {
	var b strings.Builder
	b.WriteString("(enum ")
	b.WriteString(x.Name)
	for _, v := range x.Variants {
		b.WriteString(" ")
		if len(v.Fields) == 0 {
			b.WriteString(v.Name)
			continue
		}
		b.WriteString("(" + v.Name + " " + strings.Join(v.Fields, " ") + ")")
	}
	b.WriteString(")")
	return b.String()
}

// Constr applies a registered constructor to values.
type Constr struct {
	NamePos token.Position
	Name    string
	Args    []Expr
}

func (x *Constr) exprNode() {}

func (x *Constr) Pos() token.Position { return x.NamePos }

func (x *Constr) String() string {
	if len(x.Args) == 0 {
		return x.Name
	}
	return "(" + x.Name + " " + joinExprs(x.Args) + ")"
}

// Quote delays evaluation of an expression, producing it as a value.
type Quote struct {
	QuotePos token.Position
	X        Expr
}

func (x *Quote) exprNode() {}

func (x *Quote) Pos() token.Position { return x.QuotePos }

func (x *Quote) String() string { return "'" + x.X.String() }

// Tuple builds an ordered group of values.
type Tuple struct {
	LBracket token.Position
	Items    []Expr
}

func (x *Tuple) exprNode() {}

func (x *Tuple) Pos() token.Position { return x.LBracket }

func (x *Tuple) String() string { return "[" + joinExprs(x.Items) + "]" }
