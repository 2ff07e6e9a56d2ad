package lexer

import (
	"testing"

	"github.com/orion-lang/orion/errors"
	"github.com/orion-lang/orion/internal/token"
	"github.com/stretchr/testify/require"
)

func TestNextToken(t *testing.T) {
	input := `(def x 5) ; comment
(def! y (λ (a) [a 'a -1.5 "s\n"]))`

	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.LPAREN, "("},
		{token.DEF, "def"},
		{token.IDENT, "x"},
		{token.INT, "5"},
		{token.RPAREN, ")"},
		{token.LPAREN, "("},
		{token.DEF_IMPURE, "def!"},
		{token.IDENT, "y"},
		{token.LPAREN, "("},
		{token.LAMBDA, "λ"},
		{token.LPAREN, "("},
		{token.IDENT, "a"},
		{token.RPAREN, ")"},
		{token.LBRACKET, "["},
		{token.IDENT, "a"},
		{token.QUOTE, "'"},
		{token.IDENT, "a"},
		{token.FLOAT, "-1.5"},
		{token.STRING, "s\n"},
		{token.RBRACKET, "]"},
		{token.RPAREN, ")"},
		{token.RPAREN, ")"},
		{token.EOF, ""},
		{token.EOF, ""},
	}
	l := New(input)
	for i, tt := range tests {
		tok, err := l.Next()
		require.Nil(t, err)
		require.Equal(t, tt.expectedType, tok.Type, "tests[%d]", i)
		require.Equal(t, tt.expectedLiteral, tok.Literal, "tests[%d]", i)
	}
}

func TestOperatorsAreIdentifiers(t *testing.T) {
	l := New("+ - * / neg")
	for _, want := range []string{"+", "-", "*", "/", "neg"} {
		tok, err := l.Next()
		require.Nil(t, err)
		require.Equal(t, token.IDENT, tok.Type)
		require.Equal(t, want, tok.Literal)
	}
}

func TestPositions(t *testing.T) {
	l := New("(a\n  bc)")
	l.SetFilename("p.orn")
	var toks []token.Token
	for {
		tok, err := l.Next()
		require.Nil(t, err)
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	require.Len(t, toks, 5)
	bc := toks[2]
	require.Equal(t, "bc", bc.Literal)
	require.Equal(t, 2, bc.StartPosition.LineNumber())
	require.Equal(t, 3, bc.StartPosition.ColumnNumber())
	require.Equal(t, "p.orn", bc.StartPosition.File)
}

func TestUnterminatedString(t *testing.T) {
	l := New(`(print "abc`)
	_, err := l.Next()
	require.Nil(t, err)
	_, err = l.Next()
	require.Nil(t, err)
	_, err = l.Next()
	require.NotNil(t, err)
	require.Equal(t, errors.E1002, errors.CodeOf(err))
	require.Equal(t, "parse error: unterminated string literal (1:8)", err.Error())
}

func TestInvalidEscape(t *testing.T) {
	_, err := New(`"a\qb"`).Next()
	require.NotNil(t, err)
	require.Equal(t, errors.E1006, errors.CodeOf(err))
}
