package bytecode

import (
	"strconv"
)

// LiteralKind identifies which field of a Literal is meaningful.
type LiteralKind uint8

const (
	KindInteger LiteralKind = iota + 1
	KindSingle
	KindString
	KindUnit
)

// String returns the kind name.
func (k LiteralKind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindSingle:
		return "single"
	case KindString:
		return "string"
	case KindUnit:
		return "unit"
	default:
		return "invalid"
	}
}

// Literal is a compile-time constant: the subset of values that can be
// written in source. Literals are comparable, and the constant pool interns
// them by structural equality.
type Literal struct {
	Kind   LiteralKind
	Int    int32
	Single float32
	Str    string
}

// IntLiteral returns an integer literal.
func IntLiteral(v int32) Literal {
	return Literal{Kind: KindInteger, Int: v}
}

// SingleLiteral returns a float literal.
func SingleLiteral(v float32) Literal {
	return Literal{Kind: KindSingle, Single: v}
}

// StringLiteral returns a string literal.
func StringLiteral(v string) Literal {
	return Literal{Kind: KindString, Str: v}
}

// UnitLiteral returns the unit literal.
func UnitLiteral() Literal {
	return Literal{Kind: KindUnit}
}

// String returns the literal as it would be written in source.
func (l Literal) String() string {
	switch l.Kind {
	case KindInteger:
		return strconv.FormatInt(int64(l.Int), 10)
	case KindSingle:
		return strconv.FormatFloat(float64(l.Single), 'g', -1, 32)
	case KindString:
		return strconv.Quote(l.Str)
	case KindUnit:
		return "()"
	default:
		return "<invalid>"
	}
}
