package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/orion-lang/orion"
	"github.com/orion-lang/orion/ast"
	"github.com/orion-lang/orion/bytecode"
	"github.com/orion-lang/orion/errors"
	"github.com/orion-lang/orion/parser"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check file...",
		Short: "Compile files without running them",
		Args:  cobra.MinimumNArgs(1),
		RunE:  checkHandler,
	}
}

// fileSummary counts the forms of a checked file.
type fileSummary struct {
	Definitions int
	Lambdas     int
	Loads       int
	Stats       bytecode.Stats
}

func checkHandler(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	opts := getOrionOptions(cmd)
	var result *multierror.Error
	for _, path := range args {
		summary, err := checkFile(cmd.Context(), path, opts)
		if err != nil {
			result = multierror.Append(result, err)
			fmt.Fprintf(out, "FAIL %s\n", path)
			continue
		}
		fmt.Fprintf(out, "ok   %s (%d definitions, %d lambdas, %d loads, %d instructions)\n",
			path, summary.Definitions, summary.Lambdas, summary.Loads, summary.Stats.InstructionCount)
	}
	if result != nil {
		result.ErrorFormat = checkErrorFormat
	}
	return result.ErrorOrNil()
}

func checkFile(ctx context.Context, path string, opts []orion.Option) (fileSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileSummary{}, err
	}
	source := string(data)
	program, err := parser.Parse(ctx, source, parser.WithFilename(path))
	if err != nil {
		return fileSummary{}, err
	}
	var summary fileSummary
	ast.Inspect(program, func(node ast.Node) bool {
		switch node.(type) {
		case *ast.Def:
			summary.Definitions++
		case *ast.Lambda:
			summary.Lambdas++
		case *ast.Load:
			summary.Loads++
		}
		return true
	})
	opts = append(opts[:len(opts):len(opts)], orion.WithFilename(path))
	code, err := orion.Compile(source, opts...)
	if err != nil {
		return fileSummary{}, err
	}
	summary.Stats = code.Stats()
	return summary, nil
}

func checkErrorFormat(errs []error) string {
	formatter := errors.NewFormatter(false)
	msg := fmt.Sprintf("%d file(s) failed to compile:\n", len(errs))
	for _, err := range errs {
		msg += formatter.Format(err)
	}
	return msg
}
