// Package compiler is used to compile an Orion abstract syntax tree (AST)
// into the corresponding bytecode.
//
// # Threaded Symbol Table
//
// Every compile step takes a SymbolTable and returns a possibly extended
// one alongside its instructions:
//
//	compileExpr(expr, table, impure) ([]op.Code, SymbolTable, error)
//
// There is no shared scope object. A symbol's position in the table is its
// slot in the VM context, and once assigned it never changes.
//
// # Purity
//
// Each step also receives the ambient purity. Top-level expressions and
// loaded modules compile as impure; a pure definition compiles its
// initializer as pure. Pure symbols may be used anywhere, while impure
// symbols and impure builtins are rejected inside a pure context.
//
// # Lambdas
//
// Lambdas capture nothing. Each parameter is given a slot through the same
// declaration mechanism as definitions, and the body is compiled against
// the outer table with each parameter's slot renamed to the parameter. At
// run time the VM binds arguments into those slots of the caller's context
// and restores the context after the call. Two lambdas whose parameters
// share a name therefore share a slot.
package compiler

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/orion-lang/orion/ast"
	"github.com/orion-lang/orion/builtins"
	"github.com/orion-lang/orion/bytecode"
	"github.com/orion-lang/orion/errors"
	"github.com/orion-lang/orion/op"
)

// LibPathEnv is the environment variable holding the module library path.
const LibPathEnv = "ORION_LIB"

// Compiler is used to compile Orion AST into its corresponding bytecode.
// A Compiler should be used for a single call to Compile.
type Compiler struct {
	constants     []bytecode.Literal
	constantIndex map[bytecode.Literal]uint16

	chunks []*bytecode.Chunk

	constructorNames []string
	constructorArity []uint8
	constructorIndex map[string]uint16

	// Resolved paths of modules loaded so far
	loaded map[string]bool

	builtins *builtins.Table
	fs       afero.Fs
	libPath  string
	logger   zerolog.Logger

	// Source filename and text, used for error locations
	filename string
	source   string
}

// Option is a configuration function for a Compiler.
type Option func(*Compiler)

// WithFilename sets the filename recorded in error locations.
func WithFilename(filename string) Option {
	return func(c *Compiler) {
		c.filename = filename
	}
}

// WithSource sets the source text used to show context in errors.
func WithSource(source string) Option {
	return func(c *Compiler) {
		c.source = source
	}
}

// WithLibPath sets the module library path. When unset, the ORION_LIB
// environment variable is used.
func WithLibPath(path string) Option {
	return func(c *Compiler) {
		c.libPath = path
	}
}

// WithFS sets the filesystem modules are loaded from.
func WithFS(fs afero.Fs) Option {
	return func(c *Compiler) {
		c.fs = fs
	}
}

// WithBuiltins sets the builtin table names are resolved against. The VM
// must run the bytecode with the same table.
func WithBuiltins(table *builtins.Table) Option {
	return func(c *Compiler) {
		c.builtins = table
	}
}

// WithLogger sets the logger used for module loading diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Compiler) {
		c.logger = logger
	}
}

// New creates and returns a new Compiler.
func New(options ...Option) *Compiler {
	c := &Compiler{
		constantIndex:    map[bytecode.Literal]uint16{},
		constructorIndex: map[string]uint16{},
		loaded:           map[string]bool{},
		logger:           zerolog.Nop(),
	}
	for _, opt := range options {
		opt(c)
	}
	if c.builtins == nil {
		c.builtins = builtins.Default()
	}
	if c.fs == nil {
		c.fs = afero.NewOsFs()
	}
	return c
}

// Compile compiles the given program and returns immutable bytecode.
func Compile(program *ast.Program, options ...Option) (*bytecode.Bytecode, error) {
	return New(options...).Compile(program)
}

// Compile compiles the program's expressions in order under an impure
// context, then freezes the final symbol names into the bytecode.
func (c *Compiler) Compile(program *ast.Program) (*bytecode.Bytecode, error) {
	instructions, table, err := c.compileSequence(program.Exprs, NewSymbolTable(), true)
	if err != nil {
		return nil, err
	}
	return bytecode.New(bytecode.Params{
		Instructions:     instructions,
		Constants:        c.constants,
		Chunks:           c.chunks,
		Symbols:          table.Names(),
		Constructors:     c.constructorArity,
		ConstructorNames: c.constructorNames,
		Filename:         c.filename,
	}), nil
}

// compileSequence compiles each expression in order, threading the table
// and concatenating the instructions.
func (c *Compiler) compileSequence(exprs []ast.Expr, table SymbolTable, impure bool) ([]op.Code, SymbolTable, error) {
	var out []op.Code
	for _, expr := range exprs {
		instructions, next, err := c.compileExpr(expr, table, impure)
		if err != nil {
			return nil, table, err
		}
		table = next
		out = append(out, instructions...)
	}
	return out, table, nil
}

func (c *Compiler) compileExpr(expr ast.Expr, table SymbolTable, impure bool) ([]op.Code, SymbolTable, error) {
	switch node := expr.(type) {
	case ast.Literal:
		return c.compileLiteral(node, table)
	case *ast.Var:
		return c.compileVar(node, table, impure)
	case *ast.Load:
		return c.compileLoad(node, table)
	case *ast.Def:
		return c.compileDef(node, table)
	case *ast.Call:
		return c.compileCall(node, table, impure)
	case *ast.Lambda:
		return c.compileLambda(node, table, impure)
	case *ast.Builtin:
		return c.compileBuiltin(node, table, impure)
	case *ast.Enum:
		return c.compileEnum(node, table)
	case *ast.Constr:
		return c.compileConstr(node, table, impure)
	case *ast.Quote:
		return c.compileQuote(node, table, impure)
	case *ast.Tuple:
		return c.compileTuple(node, table, impure)
	default:
		return nil, table, c.errorAt(errors.E1003, expr, "unsupported expression %T", expr)
	}
}

func (c *Compiler) compileLiteral(node ast.Literal, table SymbolTable) ([]op.Code, SymbolTable, error) {
	var lit bytecode.Literal
	switch node := node.(type) {
	case *ast.Int:
		lit = bytecode.IntLiteral(node.Value)
	case *ast.Single:
		lit = bytecode.SingleLiteral(node.Value)
	case *ast.String:
		lit = bytecode.StringLiteral(node.Value)
	case *ast.Unit:
		lit = bytecode.UnitLiteral()
	default:
		return nil, table, c.errorAt(errors.E1003, node, "unsupported literal %T", node)
	}
	id, err := c.constant(lit)
	if err != nil {
		return nil, table, c.locate(err, node)
	}
	return makeInstruction(op.LoadConst, id), table, nil
}

// compileVar resolves a name at the requested purity. A pure symbol may be
// used from an impure context; an impure symbol may not be used from a pure
// one.
func (c *Compiler) compileVar(node *ast.Var, table SymbolTable, impure bool) ([]op.Code, SymbolTable, error) {
	slot, sym, found := table.Lookup(node.Name)
	switch {
	case !found:
		return nil, table, c.undefinedVariable(node, table)
	case sym.Impure && !impure:
		return nil, table, c.errorAt(errors.E2004, node,
			"impure symbol used outside of an impure declaration: %s", node.Name)
	}
	return makeInstruction(op.LoadSym, slot), table, nil
}

// compileDef declares the name at the definition's purity, compiles the
// initializer under that purity and stores the result in the slot.
func (c *Compiler) compileDef(node *ast.Def, table SymbolTable) ([]op.Code, SymbolTable, error) {
	slot, table, err := table.Declare(node.Name, node.Impure)
	if err != nil {
		return nil, table, c.locate(err, node)
	}
	table = table.Replace(slot, Symbol{Name: node.Name, Impure: node.Impure})
	instructions, table, err := c.compileExpr(node.Value, table, node.Impure)
	if err != nil {
		return nil, table, err
	}
	return append(instructions, makeInstruction(op.Define, slot)...), table, nil
}

func (c *Compiler) compileCall(node *ast.Call, table SymbolTable, impure bool) ([]op.Code, SymbolTable, error) {
	if len(node.Args) > bytecode.MaxIndex {
		return nil, table, c.errorAt(errors.E2015, node, "too many arguments (%d)", len(node.Args))
	}
	instructions, table, err := c.compileExpr(node.Fun, table, impure)
	if err != nil {
		return nil, table, err
	}
	args, table, err := c.compileSequence(node.Args, table, impure)
	if err != nil {
		return nil, table, err
	}
	instructions = append(instructions, args...)
	return append(instructions, makeInstruction(op.Call, uint16(len(node.Args)))...), table, nil
}

// compileLambda assigns parameter slots, compiles the body against the
// outer table with those slots renamed to the parameters, and registers a
// chunk. The returned table keeps any new parameter slots but restores the
// outer symbols at reused ones.
func (c *Compiler) compileLambda(node *ast.Lambda, table SymbolTable, impure bool) ([]op.Code, SymbolTable, error) {
	params := make([]uint16, 0, len(node.Params))
	for _, name := range node.Params {
		slot, next, err := table.Declare(name, false)
		if err != nil {
			return nil, table, c.locate(err, node)
		}
		table = next
		params = append(params, slot)
	}
	scope := table
	for i, slot := range params {
		scope = scope.Replace(slot, Symbol{Name: node.Params[i]})
	}
	body, after, err := c.compileExpr(node.Body, scope, impure)
	if err != nil {
		return nil, table, err
	}
	for _, slot := range params {
		after = after.Replace(slot, table.At(slot))
	}
	if len(c.chunks) >= bytecode.MaxIndex {
		return nil, table, c.errorAt(errors.E2008, node, "too many lambdas (limit %d)", bytecode.MaxIndex)
	}
	c.chunks = append(c.chunks, bytecode.NewChunk(body, params))
	return makeInstruction(op.Lambda, uint16(len(c.chunks)-1)), after, nil
}

func (c *Compiler) compileBuiltin(node *ast.Builtin, table SymbolTable, impure bool) ([]op.Code, SymbolTable, error) {
	builtin, idx, found := c.builtins.Lookup(node.Name)
	if !found {
		err := errors.Errorf(errors.E2003, "undefined builtin %q", node.Name)
		err.Suggestions = errors.SuggestSimilar(node.Name, c.builtins.Names())
		return nil, table, c.locate(err, node)
	}
	if builtin.Impure() && !impure {
		return nil, table, c.errorAt(errors.E2005, node,
			"impure builtin used outside of an impure declaration: %s", node.Name)
	}
	if len(node.Args) > bytecode.MaxIndex {
		return nil, table, c.errorAt(errors.E2015, node, "too many arguments (%d)", len(node.Args))
	}
	instructions, table, err := c.compileSequence(node.Args, table, impure)
	if err != nil {
		return nil, table, err
	}
	return append(instructions, makeInstruction(op.Builtin, uint16(idx), uint16(len(node.Args)))...), table, nil
}

// compileEnum registers each variant as a constructor. It emits nothing.
func (c *Compiler) compileEnum(node *ast.Enum, table SymbolTable) ([]op.Code, SymbolTable, error) {
	for _, variant := range node.Variants {
		if err := c.registerConstructor(variant.Name, variant.Arity()); err != nil {
			return nil, table, c.locate(err, node)
		}
	}
	return nil, table, nil
}

// compileConstr emits the constructor opcode followed by the instructions
// of its values.
func (c *Compiler) compileConstr(node *ast.Constr, table SymbolTable, impure bool) ([]op.Code, SymbolTable, error) {
	idx, found := c.constructorIndex[node.Name]
	if !found {
		err := errors.Errorf(errors.E2002, "constructor %s does not exist", node.Name)
		err.Suggestions = errors.SuggestSimilar(node.Name, c.constructorNames)
		return nil, table, c.locate(err, node)
	}
	arity := int(c.constructorArity[idx])
	if arity != len(node.Args) {
		return nil, table, c.errorAt(errors.E2011, node,
			"constructor %s takes %d values, but %d values were given", node.Name, arity, len(node.Args))
	}
	values, table, err := c.compileSequence(node.Args, table, impure)
	if err != nil {
		return nil, table, err
	}
	if len(values) > bytecode.MaxIndex {
		return nil, table, c.errorAt(errors.E2015, node, "constructor operands are too large")
	}
	instructions := makeInstruction(op.Constructor, idx, uint16(len(node.Args)), uint16(len(values)))
	return append(instructions, values...), table, nil
}

// compileQuote emits the quote opcode followed by the unevaluated block.
func (c *Compiler) compileQuote(node *ast.Quote, table SymbolTable, impure bool) ([]op.Code, SymbolTable, error) {
	body, table, err := c.compileExpr(node.X, table, impure)
	if err != nil {
		return nil, table, err
	}
	if len(body) > bytecode.MaxIndex {
		return nil, table, c.errorAt(errors.E2015, node, "quoted expression is too large")
	}
	return append(makeInstruction(op.Quote, uint16(len(body))), body...), table, nil
}

// compileTuple emits the tuple opcode followed by the instructions of its
// elements.
func (c *Compiler) compileTuple(node *ast.Tuple, table SymbolTable, impure bool) ([]op.Code, SymbolTable, error) {
	values, table, err := c.compileSequence(node.Items, table, impure)
	if err != nil {
		return nil, table, err
	}
	if len(values) > bytecode.MaxIndex || len(node.Items) > bytecode.MaxIndex {
		return nil, table, c.errorAt(errors.E2015, node, "tuple is too large")
	}
	instructions := makeInstruction(op.Tuple, uint16(len(values)), uint16(len(node.Items)))
	return append(instructions, values...), table, nil
}

// constant interns lit in the constant pool and returns its id.
func (c *Compiler) constant(lit bytecode.Literal) (uint16, error) {
	if id, found := c.constantIndex[lit]; found {
		return id, nil
	}
	if len(c.constants) >= bytecode.MaxIndex {
		return 0, errors.Errorf(errors.E2006, "too many constants are used (limit %d)", bytecode.MaxIndex)
	}
	id := uint16(len(c.constants))
	c.constants = append(c.constants, lit)
	c.constantIndex[lit] = id
	return id, nil
}

func (c *Compiler) registerConstructor(name string, arity int) error {
	if idx, found := c.constructorIndex[name]; found {
		return errors.Errorf(errors.E2010,
			"constructor %s has already been defined (index 0x%04x)", name, idx)
	}
	if arity > 255 {
		return errors.Errorf(errors.E2015, "constructor %s has too many fields (%d)", name, arity)
	}
	if len(c.constructorArity) >= bytecode.MaxIndex {
		return errors.Errorf(errors.E2009, "too many constructors (limit %d)", bytecode.MaxIndex)
	}
	c.constructorIndex[name] = uint16(len(c.constructorArity))
	c.constructorNames = append(c.constructorNames, name)
	c.constructorArity = append(c.constructorArity, uint8(arity))
	return nil
}

func makeInstruction(opcode op.Code, operands ...uint16) []op.Code {
	opInfo := op.GetInfo(opcode)
	if len(operands) != opInfo.OperandCount {
		panic(fmt.Sprintf("compile error: wrong operand count for %s", opcode))
	}
	instruction := make([]op.Code, 1+opInfo.OperandCount)
	instruction[0] = opcode
	for i, o := range operands {
		instruction[i+1] = op.Code(o)
	}
	return instruction
}
