package errors

// ErrorCode represents a unique identifier for error types.
// Codes are organized by phase:
//   - E1xxx: Parse errors
//   - E2xxx: Compile errors
//   - E3xxx: Runtime errors
type ErrorCode string

const (
	// Parse errors (E1xxx)
	E1001 ErrorCode = "E1001" // Unexpected token
	E1002 ErrorCode = "E1002" // Unterminated string literal
	E1003 ErrorCode = "E1003" // Invalid syntax
	E1004 ErrorCode = "E1004" // Unclosed delimiter
	E1005 ErrorCode = "E1005" // Invalid number literal
	E1006 ErrorCode = "E1006" // Invalid escape sequence

	// Compile errors (E2xxx)
	E2001 ErrorCode = "E2001" // Undefined variable
	E2002 ErrorCode = "E2002" // Undefined constructor
	E2003 ErrorCode = "E2003" // Undefined builtin
	E2004 ErrorCode = "E2004" // Impure symbol in pure context
	E2005 ErrorCode = "E2005" // Impure builtin in pure context
	E2006 ErrorCode = "E2006" // Too many constants
	E2007 ErrorCode = "E2007" // Too many symbols
	E2008 ErrorCode = "E2008" // Too many chunks
	E2009 ErrorCode = "E2009" // Too many constructors
	E2010 ErrorCode = "E2010" // Duplicate constructor
	E2011 ErrorCode = "E2011" // Constructor arity mismatch
	E2012 ErrorCode = "E2012" // Module file not found
	E2013 ErrorCode = "E2013" // Library path not configured
	E2014 ErrorCode = "E2014" // Module file unreadable
	E2015 ErrorCode = "E2015" // Too many operands

	// Runtime errors (E3xxx)
	E3001 ErrorCode = "E3001" // Type error
	E3002 ErrorCode = "E3002" // Division by zero
	E3003 ErrorCode = "E3003" // Lambda arity mismatch
	E3004 ErrorCode = "E3004" // Builtin arity mismatch
	E3005 ErrorCode = "E3005" // Unresolved lambda target
	E3006 ErrorCode = "E3006" // Unbound symbol slot
	E3007 ErrorCode = "E3007" // Stack underflow
	E3008 ErrorCode = "E3008" // Call depth exceeded
	E3009 ErrorCode = "E3009" // Malformed bytecode
	E3010 ErrorCode = "E3010" // I/O failure
	E3011 ErrorCode = "E3011" // Evaluation cancelled
	E3012 ErrorCode = "E3012" // Builtin result contract violated
)

// Category groups error codes into the classes callers are expected to
// distinguish.
type Category string

const (
	ResourceExhaustion Category = "resource exhaustion"
	Resolution         Category = "resolution"
	Purity             Category = "purity violation"
	Arity              Category = "arity mismatch"
	Type               Category = "type mismatch"
	Duplicate          Category = "duplicate declaration"
	Syntax             Category = "syntax"
	IO                 Category = "io"
	Runtime            Category = "runtime"
)

type codeInfo struct {
	description string
	category    Category
}

var codes = map[ErrorCode]codeInfo{
	E1001: {"unexpected token", Syntax},
	E1002: {"unterminated string literal", Syntax},
	E1003: {"invalid syntax", Syntax},
	E1004: {"unclosed delimiter", Syntax},
	E1005: {"invalid number literal", Syntax},
	E1006: {"invalid escape sequence", Syntax},

	E2001: {"undefined variable", Resolution},
	E2002: {"undefined constructor", Resolution},
	E2003: {"undefined builtin", Resolution},
	E2004: {"impure symbol used in a pure context", Purity},
	E2005: {"impure builtin used in a pure context", Purity},
	E2006: {"too many constants", ResourceExhaustion},
	E2007: {"too many symbols", ResourceExhaustion},
	E2008: {"too many lambdas", ResourceExhaustion},
	E2009: {"too many constructors", ResourceExhaustion},
	E2010: {"duplicate constructor", Duplicate},
	E2011: {"constructor arity mismatch", Arity},
	E2012: {"module not found", Resolution},
	E2013: {"library path not configured", Resolution},
	E2014: {"module unreadable", IO},
	E2015: {"too many operands", ResourceExhaustion},

	E3001: {"type error", Type},
	E3002: {"division by zero", Type},
	E3003: {"lambda arity mismatch", Arity},
	E3004: {"builtin arity mismatch", Arity},
	E3005: {"unresolved lambda target", Resolution},
	E3006: {"unbound symbol", Resolution},
	E3007: {"stack underflow", Runtime},
	E3008: {"call depth exceeded", ResourceExhaustion},
	E3009: {"malformed bytecode", Runtime},
	E3010: {"i/o failure", IO},
	E3011: {"evaluation cancelled", Runtime},
	E3012: {"builtin result contract violated", Runtime},
}

// Description returns a short description of the error code.
func (c ErrorCode) Description() string {
	if info, ok := codes[c]; ok {
		return info.description
	}
	return ""
}

// Category returns the category the code belongs to.
func (c ErrorCode) Category() Category {
	if info, ok := codes[c]; ok {
		return info.category
	}
	return Runtime
}

// Phase returns "parse", "compile" or "runtime" based on the code prefix.
func (c ErrorCode) Phase() string {
	if len(c) < 2 {
		return "runtime"
	}
	switch c[1] {
	case '1':
		return "parse"
	case '2':
		return "compile"
	default:
		return "runtime"
	}
}
