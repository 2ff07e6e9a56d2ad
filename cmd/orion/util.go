package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/hokaccha/go-prettyjson"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/orion-lang/orion"
	"github.com/orion-lang/orion/object"
)

var outputFormatsCompletion = []string{"json", "text"}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Reads global flags from Viper and adjusts the environment accordingly.
func processGlobalFlags() {
	if viper.GetBool("no-color") || !isTerminal(os.Stdout) {
		color.NoColor = true
	}
}

func newLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.WarnLevel
	}
	if viper.GetBool("trace") {
		lvl = zerolog.TraceLevel
	}
	return zerolog.New(consoleWriter(w)).Level(lvl).With().Timestamp().Logger()
}

func traceLogger(w io.Writer) zerolog.Logger {
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	return zerolog.New(consoleWriter(w)).Level(zerolog.TraceLevel)
}

func consoleWriter(w io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{Out: w, NoColor: color.NoColor, TimeFormat: "15:04:05"}
}

// getOutput renders the result of an evaluation. With an unspecified
// format, the value of the last expression is printed unless it is unit.
func getOutput(result *orion.Result, format string) (string, error) {
	switch strings.ToLower(format) {
	case "", "text":
		value, ok := result.Value()
		if !ok || value == object.Nothing {
			return "", nil
		}
		return value.Inspect(), nil
	case "json":
		doc := map[string]any{"context": result.Bindings()}
		if value, ok := result.Value(); ok {
			doc["value"] = value.Interface()
		}
		output, err := getOutputJSON(doc)
		if err != nil {
			return "", err
		}
		return string(output), nil
	default:
		return "", fmt.Errorf("unknown output format: %s", format)
	}
}

func getOutputJSON(v any) ([]byte, error) {
	if color.NoColor {
		return json.MarshalIndent(v, "", "  ")
	}
	return prettyjson.Marshal(v)
}
