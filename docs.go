package orion

import (
	"github.com/orion-lang/orion/builtins"
)

// Version is the current Orion version.
const Version = "0.1.0"

// BuiltinDoc describes one builtin.
type BuiltinDoc struct {
	Index       int    `json:"index"`
	Name        string `json:"name"`
	Arity       int    `json:"arity"`
	Impure      bool   `json:"impure"`
	Description string `json:"description,omitempty"`
}

var builtinDescriptions = map[string]string{
	"+":       "add two integers or two singles",
	"-":       "subtract the second operand from the first",
	"*":       "multiply two integers or two singles",
	"/":       "divide the first operand by the second",
	"neg":     "negate an integer or a single",
	"cos":     "cosine of a single",
	"sin":     "sine of a single",
	"tan":     "tangent of a single",
	"acos":    "arc cosine of a single",
	"asin":    "arc sine of a single",
	"atan":    "arc tangent of a single",
	"show":    "string form of a value; strings are quoted",
	"concat":  "join two strings",
	"unquote": "evaluate a quoted expression in the current context",
	"dbg":     "write the type and debug form of a value",
	"print":   "write a value followed by a newline",
	"input":   "write a prompt and read one line",
}

// Docs lists the builtins of table in index order. A nil table means
// builtins.Default().
func Docs(table *builtins.Table) []BuiltinDoc {
	if table == nil {
		table = builtins.Default()
	}
	docs := make([]BuiltinDoc, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		b := table.At(i)
		docs = append(docs, BuiltinDoc{
			Index:       i,
			Name:        b.Name(),
			Arity:       b.Arity(),
			Impure:      b.Impure(),
			Description: builtinDescriptions[b.Name()],
		})
	}
	return docs
}
