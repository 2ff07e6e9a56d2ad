package bytecode

import (
	"github.com/orion-lang/orion/op"
)

// MaxIndex is the largest number of entries any indexed table may hold:
// constants, chunks, symbols and constructors are all addressed by 16-bit
// operands.
const MaxIndex = 65535

// Chunk is a compiled closure template: its own instruction stream plus the
// context slots its parameters bind to when called. A chunk does not capture
// its defining scope; the VM binds parameters into the caller's context.
type Chunk struct {
	instructions []op.Code
	params       []uint16
}

// NewChunk creates an immutable chunk. Input slices are copied.
func NewChunk(instructions []op.Code, params []uint16) *Chunk {
	return &Chunk{
		instructions: copyInstructions(instructions),
		params:       copySlots(params),
	}
}

// InstructionCount returns the number of instruction words in the chunk.
func (c *Chunk) InstructionCount() int {
	return len(c.instructions)
}

// InstructionAt returns the instruction word at the given index.
func (c *Chunk) InstructionAt(index int) op.Code {
	return c.instructions[index]
}

// Instructions returns a copy of the chunk's instruction stream.
func (c *Chunk) Instructions() []op.Code {
	return copyInstructions(c.instructions)
}

// ParameterCount returns the number of formal parameters.
func (c *Chunk) ParameterCount() int {
	return len(c.params)
}

// ParameterSlot returns the context slot bound to parameter i.
func (c *Chunk) ParameterSlot(i int) uint16 {
	return c.params[i]
}

// Bytecode is the compiled program handed from the compiler to the VM. It
// is immutable after construction.
type Bytecode struct {
	instructions     []op.Code
	constants        []Literal
	chunks           []*Chunk
	symbols          []string
	constructors     []uint8
	constructorNames []string
	filename         string
}

// Params contains parameters for creating a new Bytecode.
type Params struct {
	Instructions     []op.Code
	Constants        []Literal
	Chunks           []*Chunk
	Symbols          []string
	Constructors     []uint8  // arity per registered constructor
	ConstructorNames []string // display names, parallel to Constructors
	Filename         string
}

// New creates an immutable Bytecode from the given parameters. Input slices
// are copied.
func New(params Params) *Bytecode {
	var chunks []*Chunk
	if len(params.Chunks) > 0 {
		chunks = make([]*Chunk, len(params.Chunks))
		copy(chunks, params.Chunks)
	}
	var constants []Literal
	if len(params.Constants) > 0 {
		constants = make([]Literal, len(params.Constants))
		copy(constants, params.Constants)
	}
	var arities []uint8
	if len(params.Constructors) > 0 {
		arities = make([]uint8, len(params.Constructors))
		copy(arities, params.Constructors)
	}
	return &Bytecode{
		instructions:     copyInstructions(params.Instructions),
		constants:        constants,
		chunks:           chunks,
		symbols:          copyStrings(params.Symbols),
		constructors:     arities,
		constructorNames: copyStrings(params.ConstructorNames),
		filename:         params.Filename,
	}
}

// Filename returns the name of the entrypoint source file, if known.
func (b *Bytecode) Filename() string {
	return b.filename
}

// InstructionCount returns the number of words in the top-level stream.
func (b *Bytecode) InstructionCount() int {
	return len(b.instructions)
}

// InstructionAt returns the top-level instruction word at the given index.
func (b *Bytecode) InstructionAt(index int) op.Code {
	return b.instructions[index]
}

// Instructions returns a copy of the top-level instruction stream.
func (b *Bytecode) Instructions() []op.Code {
	return copyInstructions(b.instructions)
}

// ConstantCount returns the number of entries in the constant pool.
func (b *Bytecode) ConstantCount() int {
	return len(b.constants)
}

// ConstantAt returns the constant with the given id.
func (b *Bytecode) ConstantAt(index int) Literal {
	return b.constants[index]
}

// ChunkCount returns the number of chunks.
func (b *Bytecode) ChunkCount() int {
	return len(b.chunks)
}

// ChunkAt returns the chunk with the given id.
func (b *Bytecode) ChunkAt(index int) *Chunk {
	return b.chunks[index]
}

// SymbolCount returns the number of declared symbols.
func (b *Bytecode) SymbolCount() int {
	return len(b.symbols)
}

// SymbolAt returns the name declared at the given slot, or "" when the slot
// is out of range.
func (b *Bytecode) SymbolAt(slot int) string {
	if slot < 0 || slot >= len(b.symbols) {
		return ""
	}
	return b.symbols[slot]
}

// Symbols returns a copy of the symbol names in slot order.
func (b *Bytecode) Symbols() []string {
	return copyStrings(b.symbols)
}

// ConstructorCount returns the number of registered constructors.
func (b *Bytecode) ConstructorCount() int {
	return len(b.constructors)
}

// ConstructorArity returns the declared arity of the constructor at index.
func (b *Bytecode) ConstructorArity(index int) uint8 {
	return b.constructors[index]
}

// ConstructorName returns the display name of the constructor at index, or
// "" if unknown.
func (b *Bytecode) ConstructorName(index int) string {
	if index < 0 || index >= len(b.constructorNames) {
		return ""
	}
	return b.constructorNames[index]
}

// Stats returns statistics about this program.
func (b *Bytecode) Stats() Stats {
	count := len(b.instructions)
	for _, c := range b.chunks {
		count += c.InstructionCount()
	}
	return Stats{
		InstructionCount: count,
		ConstantCount:    len(b.constants),
		ChunkCount:       len(b.chunks),
		SymbolCount:      len(b.symbols),
		ConstructorCount: len(b.constructors),
	}
}
