// Package parser is used to generate the abstract syntax tree (AST) for a program.
//
// Orion source is a sequence of s-expressions:
//
//	(def x 5)                     ; pure definition
//	(def! name (input "name? "))  ; impure definition
//	(def f (λ (y) (+ x y)))       ; lambda with one body expression
//	(enum Option (Some v) None)   ; constructor declarations
//	(f (Some 3))                  ; call and constructor application
//	'(+ 1 2)                      ; quote
//	[1 "two" ()]                  ; tuple
//	(load "std.orn")              ; module inclusion
//
// A list headed by an identifier found in the builtin table is a builtin
// invocation. An identifier starting with an uppercase letter names a
// constructor.
package parser

import (
	"context"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/orion-lang/orion/ast"
	"github.com/orion-lang/orion/builtins"
	"github.com/orion-lang/orion/errors"
	"github.com/orion-lang/orion/internal/lexer"
	"github.com/orion-lang/orion/internal/token"
)

// DefaultMaxDepth is the default maximum nesting depth for parsing.
const DefaultMaxDepth = 500

// Parse the provided input as Orion source code and return the AST.
func Parse(ctx context.Context, input string, options ...Option) (*ast.Program, error) {
	p := New(input, options...)
	return p.Parse(ctx)
}

// Option is a configuration function for a Parser.
type Option func(*Parser)

// WithFilename sets the file name recorded in positions and errors.
func WithFilename(filename string) Option {
	return func(p *Parser) {
		p.filename = filename
	}
}

// WithBuiltins sets the table used to recognize builtin invocations.
func WithBuiltins(table *builtins.Table) Option {
	return func(p *Parser) {
		p.builtins = table
	}
}

// WithMaxDepth sets the maximum nesting depth for the parser.
// This prevents stack overflow on deeply nested input.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		p.maxDepth = depth
	}
}

// Parser builds an ast.Program from a token stream. A Parser should be used
// for a single call to Parse.
type Parser struct {
	l        *lexer.Lexer
	curToken token.Token
	filename string
	builtins *builtins.Table
	depth    int
	maxDepth int
}

// New returns a Parser for the given input.
func New(input string, options ...Option) *Parser {
	p := &Parser{maxDepth: DefaultMaxDepth}
	for _, opt := range options {
		opt(p)
	}
	if p.builtins == nil {
		p.builtins = builtins.Default()
	}
	p.l = lexer.New(input)
	p.l.SetFilename(p.filename)
	return p
}

// Parse the program.
func (p *Parser) Parse(ctx context.Context) (*ast.Program, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	program := &ast.Program{}
	for p.curToken.Type != token.EOF {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		program.Exprs = append(program.Exprs, expr)
	}
	return program, nil
}

func (p *Parser) next() error {
	tok, err := p.l.Next()
	if err != nil {
		return err
	}
	p.curToken = tok
	return nil
}

func (p *Parser) parseExpr() (ast.Expr, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > p.maxDepth {
		return nil, p.errorf(errors.E1003, p.curToken.StartPosition,
			"maximum nesting depth of %d exceeded", p.maxDepth)
	}
	tok := p.curToken
	switch tok.Type {
	case token.INT:
		return p.parseInt(tok)
	case token.FLOAT:
		return p.parseSingle(tok)
	case token.STRING:
		if err := p.next(); err != nil {
			return nil, err
		}
		return &ast.String{ValuePos: tok.StartPosition, Value: tok.Literal}, nil
	case token.IDENT:
		if err := p.next(); err != nil {
			return nil, err
		}
		if isConstructorName(tok.Literal) {
			return &ast.Constr{NamePos: tok.StartPosition, Name: tok.Literal}, nil
		}
		return &ast.Var{NamePos: tok.StartPosition, Name: tok.Literal}, nil
	case token.QUOTE:
		if err := p.next(); err != nil {
			return nil, err
		}
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.Quote{QuotePos: tok.StartPosition, X: x}, nil
	case token.LBRACKET:
		if err := p.next(); err != nil {
			return nil, err
		}
		items, err := p.parseExprsUntil(token.RBRACKET, tok)
		if err != nil {
			return nil, err
		}
		return &ast.Tuple{LBracket: tok.StartPosition, Items: items}, nil
	case token.LPAREN:
		return p.parseList()
	case token.EOF:
		return nil, p.errorf(errors.E1001, tok.StartPosition, "unexpected end of input")
	default:
		return nil, p.errorf(errors.E1001, tok.StartPosition, "unexpected token %q", tok.Literal)
	}
}

func (p *Parser) parseInt(tok token.Token) (ast.Expr, error) {
	value, err := strconv.ParseInt(tok.Literal, 10, 32)
	if err != nil {
		return nil, p.errorf(errors.E1005, tok.StartPosition, "invalid integer literal %q", tok.Literal)
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	return &ast.Int{ValuePos: tok.StartPosition, Literal: tok.Literal, Value: int32(value)}, nil
}

func (p *Parser) parseSingle(tok token.Token) (ast.Expr, error) {
	value, err := strconv.ParseFloat(tok.Literal, 32)
	if err != nil {
		return nil, p.errorf(errors.E1005, tok.StartPosition, "invalid single literal %q", tok.Literal)
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	return &ast.Single{ValuePos: tok.StartPosition, Literal: tok.Literal, Value: float32(value)}, nil
}

// parseList parses everything that starts with an opening parenthesis.
func (p *Parser) parseList() (ast.Expr, error) {
	open := p.curToken
	if err := p.next(); err != nil {
		return nil, err
	}
	head := p.curToken
	switch head.Type {
	case token.RPAREN:
		if err := p.next(); err != nil {
			return nil, err
		}
		return &ast.Unit{UnitPos: open.StartPosition}, nil
	case token.DEF, token.DEF_IMPURE:
		return p.parseDef(open, head.Type == token.DEF_IMPURE)
	case token.LAMBDA:
		return p.parseLambda(open)
	case token.LOAD:
		return p.parseLoad(open)
	case token.ENUM:
		return p.parseEnum(open)
	case token.IDENT:
		if isConstructorName(head.Literal) {
			if err := p.next(); err != nil {
				return nil, err
			}
			args, err := p.parseExprsUntil(token.RPAREN, open)
			if err != nil {
				return nil, err
			}
			return &ast.Constr{NamePos: head.StartPosition, Name: head.Literal, Args: args}, nil
		}
		if _, _, ok := p.builtins.Lookup(head.Literal); ok {
			if err := p.next(); err != nil {
				return nil, err
			}
			args, err := p.parseExprsUntil(token.RPAREN, open)
			if err != nil {
				return nil, err
			}
			return &ast.Builtin{NamePos: head.StartPosition, Name: head.Literal, Args: args}, nil
		}
	case token.EOF:
		return nil, p.unclosed(open)
	}
	fun, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	args, err := p.parseExprsUntil(token.RPAREN, open)
	if err != nil {
		return nil, err
	}
	return &ast.Call{LParen: open.StartPosition, Fun: fun, Args: args}, nil
}

// parseExprsUntil parses expressions up to and including the closing token.
func (p *Parser) parseExprsUntil(closing token.Type, open token.Token) ([]ast.Expr, error) {
	var exprs []ast.Expr
	for p.curToken.Type != closing {
		if p.curToken.Type == token.EOF {
			return nil, p.unclosed(open)
		}
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	return exprs, nil
}

func (p *Parser) parseDef(open token.Token, impure bool) (ast.Expr, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	name, err := p.expectIdent("definition name")
	if err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectClose(open); err != nil {
		return nil, err
	}
	return &ast.Def{DefPos: open.StartPosition, Name: name.Literal, Value: value, Impure: impure}, nil
}

func (p *Parser) parseLambda(open token.Token) (ast.Expr, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	if p.curToken.Type != token.LPAREN {
		return nil, p.unexpected("parameter list")
	}
	var params []string
	paramsOpen := p.curToken
	if err := p.next(); err != nil {
		return nil, err
	}
	for p.curToken.Type != token.RPAREN {
		if p.curToken.Type == token.EOF {
			return nil, p.unclosed(paramsOpen)
		}
		param, err := p.expectIdent("parameter name")
		if err != nil {
			return nil, err
		}
		params = append(params, param.Literal)
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectClose(open); err != nil {
		return nil, err
	}
	return &ast.Lambda{LambdaPos: open.StartPosition, Params: params, Body: body}, nil
}

func (p *Parser) parseLoad(open token.Token) (ast.Expr, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	var files []string
	for p.curToken.Type != token.RPAREN {
		if p.curToken.Type == token.EOF {
			return nil, p.unclosed(open)
		}
		if p.curToken.Type != token.STRING {
			return nil, p.unexpected("file name string")
		}
		files = append(files, p.curToken.Literal)
		if err := p.next(); err != nil {
			return nil, err
		}
	}
	if len(files) == 0 {
		return nil, p.errorf(errors.E1003, open.StartPosition, "load requires at least one file")
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	return &ast.Load{LoadPos: open.StartPosition, Files: files}, nil
}

func (p *Parser) parseEnum(open token.Token) (ast.Expr, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	name, err := p.expectIdent("enum name")
	if err != nil {
		return nil, err
	}
	enum := &ast.Enum{EnumPos: open.StartPosition, Name: name.Literal}
	for p.curToken.Type != token.RPAREN {
		switch p.curToken.Type {
		case token.EOF:
			return nil, p.unclosed(open)
		case token.IDENT:
			variant, err := p.expectConstructorName()
			if err != nil {
				return nil, err
			}
			enum.Variants = append(enum.Variants, ast.Variant{Name: variant})
		case token.LPAREN:
			variantOpen := p.curToken
			if err := p.next(); err != nil {
				return nil, err
			}
			variant, err := p.expectConstructorName()
			if err != nil {
				return nil, err
			}
			v := ast.Variant{Name: variant}
			for p.curToken.Type != token.RPAREN {
				if p.curToken.Type == token.EOF {
					return nil, p.unclosed(variantOpen)
				}
				field, err := p.expectIdent("field name")
				if err != nil {
					return nil, err
				}
				v.Fields = append(v.Fields, field.Literal)
			}
			if err := p.next(); err != nil {
				return nil, err
			}
			enum.Variants = append(enum.Variants, v)
		default:
			return nil, p.unexpected("constructor declaration")
		}
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	return enum, nil
}

func (p *Parser) expectIdent(what string) (token.Token, error) {
	tok := p.curToken
	if tok.Type != token.IDENT {
		return token.Token{}, p.unexpected(what)
	}
	if err := p.next(); err != nil {
		return token.Token{}, err
	}
	return tok, nil
}

func (p *Parser) expectConstructorName() (string, error) {
	tok := p.curToken
	if tok.Type != token.IDENT || !isConstructorName(tok.Literal) {
		return "", p.unexpected("constructor name")
	}
	if err := p.next(); err != nil {
		return "", err
	}
	return tok.Literal, nil
}

func (p *Parser) expectClose(open token.Token) error {
	switch p.curToken.Type {
	case token.RPAREN:
		return p.next()
	case token.EOF:
		return p.unclosed(open)
	default:
		return p.unexpected("')'")
	}
}

func (p *Parser) unexpected(expected string) error {
	tok := p.curToken
	if tok.Type == token.EOF {
		return p.errorf(errors.E1001, tok.StartPosition, "expected %s, found end of input", expected)
	}
	return p.errorf(errors.E1001, tok.StartPosition, "expected %s, found %q", expected, tok.Literal)
}

func (p *Parser) unclosed(open token.Token) error {
	return p.errorf(errors.E1004, open.StartPosition, "unclosed %q", open.Literal)
}

func (p *Parser) errorf(code errors.ErrorCode, pos token.Position, format string, args ...any) error {
	return errors.Errorf(code, format, args...).At(errors.SourceLocation{
		Filename: p.filename,
		Line:     pos.LineNumber(),
		Column:   pos.ColumnNumber(),
		Source:   lineText(p.l.Input(), pos),
	})
}

func lineText(input string, pos token.Position) string {
	if pos.LineStart > len(input) {
		return ""
	}
	rest := input[pos.LineStart:]
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		return rest[:i]
	}
	return rest
}

func isConstructorName(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}
