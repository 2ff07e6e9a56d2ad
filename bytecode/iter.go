package bytecode

import (
	"github.com/orion-lang/orion/errors"
	"github.com/orion-lang/orion/op"
)

// InstructionIter iterates over an instruction stream, yielding each opcode
// grouped with its operands. Operand blocks of Constructor, Tuple and Quote
// are not skipped; their contents are yielded as ordinary instructions.
type InstructionIter struct {
	instructions []op.Code
	pos          int
	err          error
}

// NewInstructionIter creates an iterator over the given stream.
func NewInstructionIter(instructions []op.Code) *InstructionIter {
	return &InstructionIter{instructions: instructions}
}

// Offset returns the index of the next instruction to be yielded.
func (i *InstructionIter) Offset() int {
	return i.pos
}

// Next returns the next instruction and its operands. It returns false at
// the end of the stream, or when the last instruction is truncated.
func (i *InstructionIter) Next() ([]op.Code, bool) {
	if i.pos >= len(i.instructions) {
		return nil, false
	}
	info := op.GetInfo(i.instructions[i.pos])
	end := i.pos + 1 + info.OperandCount
	if end > len(i.instructions) {
		i.err = errors.Errorf(errors.E3009, "truncated %s instruction at offset %d", info.Name, i.pos)
		i.pos = len(i.instructions)
		return nil, false
	}
	instr := make([]op.Code, end-i.pos)
	copy(instr, i.instructions[i.pos:end])
	i.pos = end
	return instr, true
}

// Err returns the error that stopped iteration early, if any.
func (i *InstructionIter) Err() error {
	return i.err
}

// All returns all remaining instructions as a newly allocated slice.
func (i *InstructionIter) All() [][]op.Code {
	var results [][]op.Code
	for {
		instr, ok := i.Next()
		if !ok {
			break
		}
		results = append(results, instr)
	}
	return results
}
