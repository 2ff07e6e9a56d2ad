package bytecode

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/orion-lang/orion/errors"
	"github.com/orion-lang/orion/op"
)

func TestNewCopiesInputs(t *testing.T) {
	instructions := []op.Code{op.LoadConst, 0, op.Define, 0}
	constants := []Literal{IntLiteral(5)}
	symbols := []string{"x"}
	code := New(Params{
		Instructions: instructions,
		Constants:    constants,
		Symbols:      symbols,
		Constructors: []uint8{1},
	})

	instructions[0] = op.Call
	constants[0] = IntLiteral(9)
	symbols[0] = "y"

	require.Equal(t, op.LoadConst, code.InstructionAt(0))
	require.Equal(t, IntLiteral(5), code.ConstantAt(0))
	require.Equal(t, "x", code.SymbolAt(0))
	require.Equal(t, uint8(1), code.ConstructorArity(0))

	out := code.Instructions()
	out[0] = op.Quote
	require.Equal(t, op.LoadConst, code.InstructionAt(0))
}

func TestAccessorsOutOfRange(t *testing.T) {
	code := New(Params{Symbols: []string{"x"}})
	require.Equal(t, "", code.SymbolAt(-1))
	require.Equal(t, "", code.SymbolAt(1))
	require.Equal(t, "", code.ConstructorName(0))
	require.Equal(t, 0, code.ChunkCount())
}

func TestChunk(t *testing.T) {
	params := []uint16{2, 3}
	chunk := NewChunk([]op.Code{op.LoadSym, 2}, params)
	params[0] = 7
	require.Equal(t, 2, chunk.ParameterCount())
	require.Equal(t, uint16(2), chunk.ParameterSlot(0))
	require.Equal(t, uint16(3), chunk.ParameterSlot(1))
	require.Equal(t, 2, chunk.InstructionCount())
	require.Equal(t, op.LoadSym, chunk.InstructionAt(0))
}

func TestStats(t *testing.T) {
	code := New(Params{
		Instructions: []op.Code{op.Lambda, 0, op.Define, 0},
		Constants:    []Literal{IntLiteral(1), StringLiteral("a")},
		Chunks:       []*Chunk{NewChunk([]op.Code{op.LoadConst, 0}, nil)},
		Symbols:      []string{"f"},
	})
	require.Equal(t, Stats{
		InstructionCount: 6,
		ConstantCount:    2,
		ChunkCount:       1,
		SymbolCount:      1,
	}, code.Stats())
}

func TestLiteralEquality(t *testing.T) {
	require.Equal(t, IntLiteral(3), IntLiteral(3))
	require.True(t, IntLiteral(3) == IntLiteral(3))
	require.False(t, IntLiteral(3) == SingleLiteral(3))
	require.True(t, UnitLiteral() == UnitLiteral())
	require.True(t, StringLiteral("a") == StringLiteral("a"))
}

func TestLiteralString(t *testing.T) {
	require.Equal(t, "-4", IntLiteral(-4).String())
	require.Equal(t, "2.5", SingleLiteral(2.5).String())
	require.Equal(t, `"a\n"`, StringLiteral("a\n").String())
	require.Equal(t, "()", UnitLiteral().String())
	require.Equal(t, "<invalid>", Literal{}.String())
	require.Equal(t, "single", KindSingle.String())
}

func TestInstructionIter(t *testing.T) {
	stream := []op.Code{
		op.LoadConst, 0,
		op.Builtin, 1, 2,
		op.Quote, 2, op.LoadSym, 0,
	}
	iter := NewInstructionIter(stream)
	all := iter.All()
	require.Equal(t, [][]op.Code{
		{op.LoadConst, 0},
		{op.Builtin, 1, 2},
		{op.Quote, 2},
		{op.LoadSym, 0},
	}, all)
	require.Equal(t, len(stream), iter.Offset())
}

func TestInstructionIterTruncated(t *testing.T) {
	iter := NewInstructionIter([]op.Code{op.LoadConst, 0, op.Builtin, 1})
	instr, ok := iter.Next()
	require.True(t, ok)
	require.Equal(t, []op.Code{op.LoadConst, 0}, instr)
	_, ok = iter.Next()
	require.False(t, ok)
	require.Equal(t, errors.E3009, errors.CodeOf(iter.Err()))
}
