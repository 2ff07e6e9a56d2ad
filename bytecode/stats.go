package bytecode

// Stats contains statistics about compiled bytecode.
// This is useful for auditing scripts before execution.
type Stats struct {
	// InstructionCount is the number of instruction words, including those
	// in chunks.
	InstructionCount int

	// ConstantCount is the number of constants in the constant pool.
	ConstantCount int

	// ChunkCount is the number of lambda templates.
	ChunkCount int

	// SymbolCount is the number of context slots.
	SymbolCount int

	// ConstructorCount is the number of registered constructors.
	ConstructorCount int
}
