// Package op defines opcodes used by the Orion compiler and virtual machine.
package op

// Code is an integer opcode that indicates an operation to execute. Operands
// are stored inline in the instruction stream, directly after their opcode,
// using the same 16-bit representation.
type Code uint16

const (
	Invalid Code = 0

	// Load
	LoadConst Code = 10
	LoadSym   Code = 11
	Lambda    Code = 12

	// Store
	Define Code = 20

	// Execution
	Call    Code = 30
	Builtin Code = 31

	// Build
	Constructor Code = 40 // index, value count, operand block length
	Tuple       Code = 41 // operand block length, element count
	Quote       Code = 42 // block length
)

// BinaryOpType describes a type of binary operation, as in an operation that
// takes two operands. For example, addition, subtraction, multiplication, etc.
type BinaryOpType uint16

const (
	Add      BinaryOpType = 1
	Subtract BinaryOpType = 2
	Multiply BinaryOpType = 3
	Divide   BinaryOpType = 4
)

// String returns a string representation of the binary operation.
// For example "+" for addition.
func (bop BinaryOpType) String() string {
	switch bop {
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "*"
	case Divide:
		return "/"
	default:
		return ""
	}
}

// Info contains information about an opcode.
type Info struct {
	Code         Code
	Name         string
	OperandCount int
}

var infos = make([]Info, 256)

func init() {
	type opInfo struct {
		op    Code
		name  string
		count int
	}
	ops := []opInfo{
		{Builtin, "BUILTIN", 2},
		{Call, "CALL", 1},
		{Constructor, "CONSTRUCTOR", 3},
		{Define, "DEFINE", 1},
		{Lambda, "LAMBDA", 1},
		{LoadConst, "LOAD_CONST", 1},
		{LoadSym, "LOAD_SYM", 1},
		{Quote, "QUOTE", 1},
		{Tuple, "TUPLE", 2},
	}
	for _, o := range ops {
		infos[o.op] = Info{
			Name:         o.name,
			Code:         o.op,
			OperandCount: o.count,
		}
	}
}

// GetInfo returns information about the given opcode. Unknown opcodes yield
// an Info with an empty name.
func GetInfo(op Code) Info {
	if int(op) >= len(infos) {
		return Info{Code: op}
	}
	return infos[op]
}

// IsValid returns true if the opcode is one the virtual machine executes.
func (c Code) IsValid() bool {
	return GetInfo(c).Name != ""
}

// String returns the opcode name, e.g. "LOAD_CONST".
func (c Code) String() string {
	if name := GetInfo(c).Name; name != "" {
		return name
	}
	return "INVALID"
}
