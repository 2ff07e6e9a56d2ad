package ast

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	program := NewProgram(
		&Def{Name: "x", Value: NewInt(5)},
		&Def{Name: "f", Value: &Lambda{
			Params: []string{"y"},
			Body:   &Builtin{Name: "+", Args: []Expr{NewVar("x"), NewVar("y")}},
		}},
		&Call{Fun: NewVar("f"), Args: []Expr{NewInt(3)}},
		&Def{Name: "s", Value: NewString("hi"), Impure: true},
		&Enum{Name: "Option", Variants: []Variant{{Name: "Some", Fields: []string{"v"}}, {Name: "None"}}},
		&Constr{Name: "Some", Args: []Expr{NewSingle(1.5)}},
		&Constr{Name: "None"},
		&Quote{X: &Tuple{Items: []Expr{NewInt(1), &Unit{}}}},
		&Load{Files: []string{"std.orn"}},
	)
	expected := `(def x 5)
(def f (λ (y) (+ x y)))
(f 3)
(def! s "hi")
(enum Option (Some v) None)
(Some 1.5)
None
'[1 ()]
(load "std.orn")`
	require.Equal(t, expected, program.String())
}

func TestLiteralsImplementLiteral(t *testing.T) {
	var lits []Literal = []Literal{NewInt(1), NewSingle(2), NewString("s"), &Unit{}}
	require.Len(t, lits, 4)
}

func TestVariantArity(t *testing.T) {
	require.Equal(t, 2, Variant{Name: "Cons", Fields: []string{"h", "t"}}.Arity())
	require.Equal(t, 0, Variant{Name: "Nil"}.Arity())
}
