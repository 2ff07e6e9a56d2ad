package dis

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/orion-lang/orion/bytecode"
	"github.com/orion-lang/orion/compiler"
	"github.com/orion-lang/orion/errors"
	"github.com/orion-lang/orion/op"
	"github.com/orion-lang/orion/parser"
)

func compile(t *testing.T, source string) *bytecode.Bytecode {
	t.Helper()
	program, err := parser.Parse(context.Background(), source)
	require.Nil(t, err)
	code, err := compiler.Compile(program)
	require.Nil(t, err)
	return code
}

func disableColor(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })
}

func TestPrint(t *testing.T) {
	disableColor(t)
	code := compile(t, `(def x 5) (print (show x))`)
	instructions, err := New(code, nil).Disassemble(code.Instructions())
	require.Nil(t, err)

	var buf bytes.Buffer
	Print(instructions, &buf)
	expected := strings.TrimSpace(`
+--------+------------+----------+-------+
| OFFSET |   OPCODE   | OPERANDS | INFO  |
+--------+------------+----------+-------+
|      0 | LOAD_CONST |        0 | 5     |
|      2 | DEFINE     |        0 | x     |
|      4 | LOAD_SYM   |        0 | x     |
|      6 | BUILTIN    |     11 1 | show  |
|      9 | BUILTIN    |     15 1 | print |
+--------+------------+----------+-------+
`)
	require.Equal(t, expected+"\n", buf.String())
}

func TestBlockDepth(t *testing.T) {
	code := compile(t, `[(+ 1 2) 3] 4`)
	instructions, err := New(code, nil).Disassemble(code.Instructions())
	require.Nil(t, err)

	var names []string
	var depths []int
	for _, instr := range instructions {
		names = append(names, instr.Name)
		depths = append(depths, instr.Depth)
	}
	require.Equal(t, []string{"TUPLE", "LOAD_CONST", "LOAD_CONST", "BUILTIN", "LOAD_CONST", "LOAD_CONST"}, names)
	require.Equal(t, []int{0, 1, 1, 1, 1, 0}, depths)
	require.Equal(t, "+", instructions[3].Info)
	require.Equal(t, "4", instructions[5].Info)
}

func TestAnnotations(t *testing.T) {
	code := compile(t, `(enum Option (Some v) None) (def f (λ (y) (Some y))) (f "s") None`)
	listing, err := New(code, nil).Program()
	require.Nil(t, err)

	var infos []string
	for _, instr := range listing.Main {
		infos = append(infos, instr.Info)
	}
	require.Equal(t, []string{"chunk 0", "f", "f", `"s"`, "", "None"}, infos)

	require.Len(t, listing.Chunks, 1)
	chunk := listing.Chunks[0]
	require.Equal(t, []string{"y"}, chunk.Parameters)
	require.Equal(t, "Some", chunk.Instructions[0].Info)
	require.Equal(t, 1, chunk.Instructions[1].Depth)
}

func TestPrintProgram(t *testing.T) {
	disableColor(t)
	code := compile(t, `(def id (λ (v) v)) (id 1)`)
	listing, err := New(code, nil).Program()
	require.Nil(t, err)

	var buf bytes.Buffer
	PrintProgram(listing, &buf)
	out := buf.String()
	require.True(t, strings.HasPrefix(out, "main:\n"))
	require.Contains(t, out, "chunk 0 (v):\n")
	require.Contains(t, out, "| CALL       |        1 |         |")
}

func TestMalformed(t *testing.T) {
	code := bytecode.New(bytecode.Params{})
	d := New(code, nil)

	_, err := d.Disassemble([]op.Code{op.LoadConst})
	require.Equal(t, errors.E3009, errors.CodeOf(err))

	_, err = d.Disassemble([]op.Code{77})
	require.Equal(t, errors.E3009, errors.CodeOf(err))
}
