package main

import (
	stderrors "errors"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/orion-lang/orion"
	"github.com/orion-lang/orion/vm"
)

func getOrionOptions(cmd *cobra.Command) []orion.Option {
	logger := newLogger(cmd.ErrOrStderr(), viper.GetString("log-level"))
	opts := []orion.Option{
		orion.WithLogger(logger),
		orion.WithStdout(cmd.OutOrStdout()),
		orion.WithStdin(cmd.InOrStdin()),
	}
	if lib := viper.GetString("lib"); lib != "" {
		opts = append(opts, orion.WithLibPath(lib))
	}
	if viper.GetBool("trace") {
		opts = append(opts, orion.WithObserver(vm.NewLogObserver(traceLogger(cmd.ErrOrStderr()))))
	}
	if f := cmd.Flags().Lookup("max-depth"); f != nil && f.Changed {
		depth, _ := cmd.Flags().GetInt("max-depth")
		opts = append(opts, orion.WithMaxCallDepth(depth))
	}
	return opts
}

// getOrionCode determines what code is to be compiled. There are three
// possibilities:
// 1. --code <code>
// 2. --stdin (read code from stdin)
// 3. path as args[0]
func getOrionCode(cmd *cobra.Command, args []string) (code string, filename string, err error) {
	var codeFlagSet bool
	if f := cmd.Flags().Lookup("code"); f != nil && f.Changed {
		codeFlagSet = true
	}
	stdinFlagSet := viper.GetBool("stdin")
	pathSupplied := len(args) > 0
	if pathSupplied && (codeFlagSet || stdinFlagSet) {
		return "", "", stderrors.New("multiple input sources specified")
	} else if codeFlagSet && stdinFlagSet {
		return "", "", stderrors.New("multiple input sources specified")
	}
	switch {
	case stdinFlagSet:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", err
		}
		return string(data), "<stdin>", nil
	case pathSupplied:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", err
		}
		return string(data), args[0], nil
	case codeFlagSet:
		code, _ := cmd.Flags().GetString("code")
		return code, "<code>", nil
	}
	return "", "", stderrors.New("no input provided")
}
