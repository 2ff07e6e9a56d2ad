package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/orion-lang/orion"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE:  versionHandler,
	}
	cmd.Flags().StringP("output", "o", "", "output format (text, json)")
	return cmd
}

func versionHandler(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	format, _ := cmd.Flags().GetString("output")
	if strings.ToLower(format) == "json" {
		info, err := getOutputJSON(map[string]any{
			"version":  version,
			"language": orion.Version,
			"commit":   commit,
			"date":     date,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(info))
		return nil
	}
	fmt.Fprintln(out, version)
	return nil
}
