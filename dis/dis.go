// Package dis disassembles Orion bytecode into a readable listing.
package dis

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/orion-lang/orion/builtins"
	"github.com/orion-lang/orion/bytecode"
	"github.com/orion-lang/orion/errors"
	"github.com/orion-lang/orion/op"
)

// Instruction is one decoded instruction with a human-readable annotation.
type Instruction struct {
	Offset   int
	Opcode   op.Code
	Name     string
	Operands []op.Code
	Info     string

	// Depth is the nesting level of operand blocks the instruction sits in.
	Depth int
}

// Listing is the disassembly of a whole program.
type Listing struct {
	Main   []Instruction
	Chunks []ChunkListing
}

// ChunkListing is the disassembly of one lambda chunk.
type ChunkListing struct {
	ID           int
	Parameters   []string
	Instructions []Instruction
}

// Disassembler annotates instructions using a program's tables.
type Disassembler struct {
	code     *bytecode.Bytecode
	builtins *builtins.Table
}

// New creates a Disassembler for code. A nil table means builtins.Default().
func New(code *bytecode.Bytecode, table *builtins.Table) *Disassembler {
	if table == nil {
		table = builtins.Default()
	}
	return &Disassembler{code: code, builtins: table}
}

// Program disassembles the main stream and every chunk.
func (d *Disassembler) Program() (*Listing, error) {
	main, err := d.Disassemble(d.code.Instructions())
	if err != nil {
		return nil, err
	}
	listing := &Listing{Main: main}
	for i := 0; i < d.code.ChunkCount(); i++ {
		chunk := d.code.ChunkAt(i)
		instructions, err := d.Disassemble(chunk.Instructions())
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", i, err)
		}
		params := make([]string, chunk.ParameterCount())
		for p := range params {
			params[p] = d.code.SymbolAt(int(chunk.ParameterSlot(p)))
		}
		listing.Chunks = append(listing.Chunks, ChunkListing{
			ID:           i,
			Parameters:   params,
			Instructions: instructions,
		})
	}
	return listing, nil
}

// Disassemble decodes an instruction stream. The contents of operand
// blocks are listed inline with an increased depth.
func (d *Disassembler) Disassemble(instructions []op.Code) ([]Instruction, error) {
	var results []Instruction
	var blockEnds []int
	iter := bytecode.NewInstructionIter(instructions)
	for {
		offset := iter.Offset()
		instr, ok := iter.Next()
		if !ok {
			break
		}
		for len(blockEnds) > 0 && offset >= blockEnds[len(blockEnds)-1] {
			blockEnds = blockEnds[:len(blockEnds)-1]
		}
		opcode := instr[0]
		info := op.GetInfo(opcode)
		if info.Name == "" {
			return nil, errors.Errorf(errors.E3009, "invalid opcode %d at offset %d", opcode, offset)
		}
		operands := instr[1:]
		results = append(results, Instruction{
			Offset:   offset,
			Opcode:   opcode,
			Name:     info.Name,
			Operands: operands,
			Info:     d.annotate(opcode, operands),
			Depth:    len(blockEnds),
		})
		if size := blockSize(opcode, operands); size > 0 {
			blockEnds = append(blockEnds, iter.Offset()+size)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func blockSize(opcode op.Code, operands []op.Code) int {
	switch opcode {
	case op.Constructor:
		return int(operands[2])
	case op.Tuple, op.Quote:
		return int(operands[0])
	}
	return 0
}

func (d *Disassembler) annotate(opcode op.Code, operands []op.Code) string {
	switch opcode {
	case op.LoadConst:
		if int(operands[0]) < d.code.ConstantCount() {
			return d.code.ConstantAt(int(operands[0])).String()
		}
	case op.LoadSym, op.Define:
		return d.code.SymbolAt(int(operands[0]))
	case op.Lambda:
		return fmt.Sprintf("chunk %d", operands[0])
	case op.Builtin:
		if b := d.builtins.At(int(operands[0])); b != nil {
			return b.Name()
		}
	case op.Constructor:
		return d.code.ConstructorName(int(operands[0]))
	}
	return ""
}

// Print writes the instructions as a table.
func Print(instructions []Instruction, writer io.Writer) {
	headers := []string{"OFFSET", "OPCODE", "OPERANDS", "INFO"}
	rows := make([][]string, 0, len(instructions))
	for _, instr := range instructions {
		operands := make([]string, len(instr.Operands))
		for i, operand := range instr.Operands {
			operands[i] = fmt.Sprint(uint16(operand))
		}
		rows = append(rows, []string{
			fmt.Sprint(instr.Offset),
			strings.Repeat("  ", instr.Depth) + instr.Name,
			strings.Join(operands, " "),
			instr.Info,
		})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}

	border := "+"
	for _, w := range widths {
		border += strings.Repeat("-", w+2) + "+"
	}
	fmt.Fprintln(writer, border)
	line := "|"
	for i, h := range headers {
		left := (widths[i] - len(h)) / 2
		right := widths[i] - len(h) - left
		line += " " + strings.Repeat(" ", left) + h + strings.Repeat(" ", right) + " |"
	}
	fmt.Fprintln(writer, line)
	fmt.Fprintln(writer, border)

	opcodeColor := color.New(color.FgCyan)
	for _, row := range rows {
		fmt.Fprintf(writer, "| %*s | %s | %*s | %-*s |\n",
			widths[0], row[0],
			opcodeColor.Sprint(fmt.Sprintf("%-*s", widths[1], row[1])),
			widths[2], row[2],
			widths[3], row[3])
	}
	fmt.Fprintln(writer, border)
}

// PrintProgram writes the main stream followed by each chunk.
func PrintProgram(listing *Listing, writer io.Writer) {
	header := color.New(color.Bold)
	header.Fprintln(writer, "main:")
	Print(listing.Main, writer)
	for _, chunk := range listing.Chunks {
		fmt.Fprintln(writer)
		header.Fprintf(writer, "chunk %d (%s):\n", chunk.ID, strings.Join(chunk.Parameters, " "))
		Print(chunk.Instructions, writer)
	}
}
