package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/orion-lang/orion"
)

func newBuiltinsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "builtins",
		Short: "List the builtin functions",
		Args:  cobra.NoArgs,
		RunE:  builtinsHandler,
	}
	cmd.Flags().StringP("output", "o", "", "output format (text, json)")
	return cmd
}

func builtinsHandler(cmd *cobra.Command, args []string) error {
	docs := orion.Docs(nil)
	out := cmd.OutOrStdout()
	format, _ := cmd.Flags().GetString("output")
	switch strings.ToLower(format) {
	case "json":
		data, err := getOutputJSON(docs)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
	case "", "text":
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "INDEX\tNAME\tARITY\tPURITY\tDESCRIPTION")
		for _, doc := range docs {
			purity := "pure"
			if doc.Impure {
				purity = "impure"
			}
			fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n", doc.Index, doc.Name, doc.Arity, purity, doc.Description)
		}
		return w.Flush()
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
	return nil
}
