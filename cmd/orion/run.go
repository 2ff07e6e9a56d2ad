package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/orion-lang/orion"
)

func runHandler(cmd *cobra.Command, args []string) error {
	code, filename, err := getOrionCode(cmd, args)
	if err != nil {
		return err
	}
	opts := append(getOrionOptions(cmd), orion.WithFilename(filename))

	start := time.Now()
	result, err := orion.Eval(cmd.Context(), code, opts...)
	if err != nil {
		return err
	}
	dt := time.Since(start)

	format, _ := cmd.Flags().GetString("output")
	output, err := getOutput(result, format)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if output != "" {
		fmt.Fprintln(out, output)
	}
	if timing, _ := cmd.Flags().GetBool("timing"); timing {
		fmt.Fprintf(out, "%v\n", dt)
	}
	return nil
}
