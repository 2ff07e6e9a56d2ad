// Package lexer turns Orion source text into tokens.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/orion-lang/orion/errors"
	"github.com/orion-lang/orion/internal/token"
)

// Lexer produces tokens from an input string, one per call to Next.
type Lexer struct {
	input     string
	pos       int // byte offset of the next rune
	line      int
	lineStart int
	filename  string
}

// New returns a lexer for the given input.
func New(input string) *Lexer {
	return &Lexer{input: input}
}

// SetFilename sets the filename recorded in token positions.
func (l *Lexer) SetFilename(filename string) {
	l.filename = filename
}

// Filename returns the filename recorded in token positions.
func (l *Lexer) Filename() string {
	return l.filename
}

// Input returns the source being lexed.
func (l *Lexer) Input() string {
	return l.input
}

func (l *Lexer) position() token.Position {
	return token.Position{
		Char:      l.pos,
		LineStart: l.lineStart,
		Line:      l.line,
		Column:    l.pos - l.lineStart,
		File:      l.filename,
	}
}

func (l *Lexer) peek() (rune, int) {
	if l.pos >= len(l.input) {
		return 0, 0
	}
	return utf8.DecodeRuneInString(l.input[l.pos:])
}

func (l *Lexer) advance() rune {
	r, size := l.peek()
	l.pos += size
	if r == '\n' {
		l.line++
		l.lineStart = l.pos
	}
	return r
}

func (l *Lexer) skipWhitespaceAndComments() {
	for l.pos < len(l.input) {
		r, _ := l.peek()
		switch {
		case r == ';':
			for l.pos < len(l.input) {
				if l.advance() == '\n' {
					break
				}
			}
		case unicode.IsSpace(r):
			l.advance()
		default:
			return
		}
	}
}

// Next returns the next token. At the end of input it returns an EOF token
// on every call.
func (l *Lexer) Next() (token.Token, error) {
	l.skipWhitespaceAndComments()
	start := l.position()
	if l.pos >= len(l.input) {
		return token.Token{Type: token.EOF, StartPosition: start, EndPosition: start}, nil
	}
	r, _ := l.peek()
	switch r {
	case '(':
		return l.single(token.LPAREN, start), nil
	case ')':
		return l.single(token.RPAREN, start), nil
	case '[':
		return l.single(token.LBRACKET, start), nil
	case ']':
		return l.single(token.RBRACKET, start), nil
	case '\'':
		return l.single(token.QUOTE, start), nil
	case '"':
		return l.readString(start)
	}
	word := l.readWord()
	tok := token.Token{Literal: word, StartPosition: start, EndPosition: l.position()}
	switch {
	case isNumber(word):
		tok.Type = token.INT
		if strings.ContainsAny(word, ".eE") {
			tok.Type = token.FLOAT
		}
	default:
		tok.Type = token.LookupIdentifier(word)
	}
	return tok, nil
}

func (l *Lexer) single(typ token.Type, start token.Position) token.Token {
	r := l.advance()
	return token.Token{
		Type:          typ,
		Literal:       string(r),
		StartPosition: start,
		EndPosition:   l.position(),
	}
}

func isDelimiter(r rune) bool {
	switch r {
	case '(', ')', '[', ']', '"', '\'', ';':
		return true
	}
	return unicode.IsSpace(r)
}

func (l *Lexer) readWord() string {
	begin := l.pos
	for l.pos < len(l.input) {
		r, _ := l.peek()
		if isDelimiter(r) {
			break
		}
		l.advance()
	}
	return l.input[begin:l.pos]
}

// isNumber reports whether word starts like a numeric literal: a digit,
// optionally preceded by a sign. Validation happens in the parser.
func isNumber(word string) bool {
	if word == "" {
		return false
	}
	if word[0] == '-' || word[0] == '+' {
		word = word[1:]
	}
	return word != "" && word[0] >= '0' && word[0] <= '9'
}

func (l *Lexer) readString(start token.Position) (token.Token, error) {
	l.advance() // opening quote
	var b strings.Builder
	for {
		if l.pos >= len(l.input) {
			return token.Token{}, l.errorAt(errors.E1002, start, "unterminated string literal")
		}
		r := l.advance()
		switch r {
		case '"':
			return token.Token{
				Type:          token.STRING,
				Literal:       b.String(),
				StartPosition: start,
				EndPosition:   l.position(),
			}, nil
		case '\\':
			escPos := l.position()
			if l.pos >= len(l.input) {
				return token.Token{}, l.errorAt(errors.E1002, start, "unterminated string literal")
			}
			esc := l.advance()
			switch esc {
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			case 'r':
				b.WriteRune('\r')
			case '0':
				b.WriteRune(0)
			case '\\', '"', '\'':
				b.WriteRune(esc)
			default:
				return token.Token{}, l.errorAt(errors.E1006, escPos, "invalid escape sequence '\\%c'", esc)
			}
		default:
			b.WriteRune(r)
		}
	}
}

func (l *Lexer) errorAt(code errors.ErrorCode, pos token.Position, format string, args ...any) error {
	return errors.Errorf(code, format, args...).At(errors.SourceLocation{
		Filename: l.filename,
		Line:     pos.LineNumber(),
		Column:   pos.ColumnNumber(),
		Source:   l.lineText(pos),
	})
}

func (l *Lexer) lineText(pos token.Position) string {
	rest := l.input[pos.LineStart:]
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		return rest[:i]
	}
	return rest
}
