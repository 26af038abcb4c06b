package chunk

// Opcode is a single bytecode instruction tag. Every instruction begins
// with one Opcode byte, optionally followed by operand bytes.
type Opcode byte

const (
	OP_CONSTANT Opcode = iota
	OP_NIL
	OP_TRUE
	OP_FALSE
	OP_POP
	OP_GET_LOCAL
	OP_SET_LOCAL
	OP_GET_GLOBAL
	OP_DEFINE_GLOBAL
	OP_SET_GLOBAL
	OP_EQUAL
	OP_GREATER
	OP_LESS
	OP_ADD
	OP_SUBTRACT
	OP_MULTIPLY
	OP_DIVIDE
	OP_EXPONENT
	OP_NOT
	OP_NEGATE
	OP_PRINT
	OP_JUMP
	OP_JUMP_IF_FALSE
	OP_LOOP
	OP_RETURN
)

// operandWidths gives the number of operand bytes following each opcode.
// Every width here is either 0 (no operand), 1 (a constant-pool or local
// slot index) or 2 (a big-endian jump offset).
var operandWidths = map[Opcode]int{
	OP_CONSTANT:      1,
	OP_NIL:           0,
	OP_TRUE:          0,
	OP_FALSE:         0,
	OP_POP:           0,
	OP_GET_LOCAL:     1,
	OP_SET_LOCAL:     1,
	OP_GET_GLOBAL:    1,
	OP_DEFINE_GLOBAL: 1,
	OP_SET_GLOBAL:    1,
	OP_EQUAL:         0,
	OP_GREATER:       0,
	OP_LESS:          0,
	OP_ADD:           0,
	OP_SUBTRACT:      0,
	OP_MULTIPLY:      0,
	OP_DIVIDE:        0,
	OP_EXPONENT:      0,
	OP_NOT:           0,
	OP_NEGATE:        0,
	OP_PRINT:         0,
	OP_JUMP:          2,
	OP_JUMP_IF_FALSE: 2,
	OP_LOOP:          2,
	OP_RETURN:        0,
}

var names = map[Opcode]string{
	OP_CONSTANT: "OP_CONSTANT", OP_NIL: "OP_NIL", OP_TRUE: "OP_TRUE", OP_FALSE: "OP_FALSE",
	OP_POP: "OP_POP", OP_GET_LOCAL: "OP_GET_LOCAL", OP_SET_LOCAL: "OP_SET_LOCAL",
	OP_GET_GLOBAL: "OP_GET_GLOBAL", OP_DEFINE_GLOBAL: "OP_DEFINE_GLOBAL", OP_SET_GLOBAL: "OP_SET_GLOBAL",
	OP_EQUAL: "OP_EQUAL", OP_GREATER: "OP_GREATER", OP_LESS: "OP_LESS",
	OP_ADD: "OP_ADD", OP_SUBTRACT: "OP_SUBTRACT", OP_MULTIPLY: "OP_MULTIPLY", OP_DIVIDE: "OP_DIVIDE",
	OP_EXPONENT: "OP_EXPONENT", OP_NOT: "OP_NOT", OP_NEGATE: "OP_NEGATE", OP_PRINT: "OP_PRINT",
	OP_JUMP: "OP_JUMP", OP_JUMP_IF_FALSE: "OP_JUMP_IF_FALSE", OP_LOOP: "OP_LOOP", OP_RETURN: "OP_RETURN",
}

func (op Opcode) String() string {
	if s, ok := names[op]; ok {
		return s
	}
	return "OP_UNKNOWN"
}

// OperandWidth returns the number of operand bytes that follow op.
func OperandWidth(op Opcode) int {
	return operandWidths[op]
}
