package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/orion-lang/orion/errors"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		formatter := errors.NewFormatter(!color.NoColor)
		fmt.Fprint(os.Stderr, formatter.Format(err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "orion [file]",
		Short:         "Compile and evaluate Orion programs",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(); err != nil {
				return err
			}
			processGlobalFlags()
			return nil
		},
		RunE: runHandler,
	}

	flags := cmd.PersistentFlags()
	flags.String("config", "", "config file (default is $HOME/.orion.yaml)")
	flags.StringP("code", "c", "", "code to evaluate")
	flags.Bool("stdin", false, "read code from stdin")
	flags.String("lib", "", "library directory searched by load")
	flags.Bool("no-color", false, "disable colored output")
	flags.String("log-level", "warn", "log level (trace, debug, info, warn, error)")
	flags.Bool("trace", false, "log every executed instruction")
	for _, name := range []string{"config", "code", "stdin", "lib", "no-color", "log-level", "trace"} {
		viper.BindPFlag(name, flags.Lookup(name))
	}

	cmd.Flags().StringP("output", "o", "", "output format (text, json)")
	cmd.Flags().Int("max-depth", 0, "maximum lambda call depth")
	cmd.Flags().Bool("timing", false, "show execution time")
	cmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return outputFormatsCompletion, cobra.ShellCompDirectiveNoFileComp
	})

	cmd.AddCommand(newDisCmd(), newCheckCmd(), newBuiltinsCmd(), newVersionCmd())
	return cmd
}

// initConfig reads the optional config file and binds ORION_* environment
// variables to flags of the same name.
func initConfig() error {
	if file := viper.GetString("config"); file != "" {
		viper.SetConfigFile(file)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return err
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".orion")
		viper.SetConfigType("yaml")
	}
	viper.SetEnvPrefix("ORION")
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !stderrors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}
