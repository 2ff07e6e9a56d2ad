package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/orion-lang/orion"
	"github.com/orion-lang/orion/dis"
)

func newDisCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dis [file]",
		Short: "Disassemble Orion bytecode",
		Args:  cobra.MaximumNArgs(1),
		RunE:  disHandler,
	}
	cmd.Flags().Int("chunk", -1, "only disassemble the chunk with this id")
	return cmd
}

func disHandler(cmd *cobra.Command, args []string) error {
	code, filename, err := getOrionCode(cmd, args)
	if err != nil {
		return err
	}
	opts := append(getOrionOptions(cmd), orion.WithFilename(filename))
	compiled, err := orion.Compile(code, opts...)
	if err != nil {
		return err
	}

	disassembler := dis.New(compiled, nil)
	out := cmd.OutOrStdout()
	if id, _ := cmd.Flags().GetInt("chunk"); id >= 0 {
		if id >= compiled.ChunkCount() {
			return fmt.Errorf("chunk %d not found", id)
		}
		instructions, err := disassembler.Disassemble(compiled.ChunkAt(id).Instructions())
		if err != nil {
			return err
		}
		dis.Print(instructions, out)
		return nil
	}

	listing, err := disassembler.Program()
	if err != nil {
		return err
	}
	dis.PrintProgram(listing, out)
	return nil
}
