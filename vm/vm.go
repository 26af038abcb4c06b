// Package vm implements Blue's stack-based bytecode interpreter: a
// fetch-decode-execute loop over a compiled Chunk, an operand stack,
// runtime type checks, and the globals table.
package vm

import (
	"fmt"
	"io"
	"math"
	"os"

	"blue/chunk"
	"blue/value"
)

func exponent(a, b float64) value.Value {
	return value.Number(math.Pow(a, b))
}

const stackSize = 256

// VM executes one Chunk at a time. It is reused across REPL lines: globals,
// the interner and the stack all persist for the VM's lifetime, only ip and
// the active chunk change per call to Run.
type VM struct {
	chunk *chunk.Chunk
	ip    int

	stack    [stackSize]value.Value
	stackTop int

	globals  *Globals
	interner *value.Interner

	out io.Writer
}

// New creates a VM with a fresh globals table. Strings the VM creates at run
// time are interned through the caller-supplied interner, which the caller
// shares with the compiler so names and literals resolve to the same
// objects. PRINT writes to stdout by default; tests use SetOutput to
// capture it instead.
func New(interner *value.Interner) *VM {
	return &VM{globals: NewGlobals(), interner: interner, out: os.Stdout}
}

// SetOutput redirects where OP_PRINT writes, in place of stdout.
func (vm *VM) SetOutput(w io.Writer) {
	vm.out = w
}

// Release tears down everything the VM owns: its interned string heap. It
// mirrors the single bulk-free-on-teardown the non-goals allow in place of
// a real collector.
func (vm *VM) Release() {
	vm.interner.Release()
}

func (vm *VM) resetStack() {
	vm.stackTop = 0
}

func (vm *VM) push(v value.Value) {
	vm.stack[vm.stackTop] = v
	vm.stackTop++
}

func (vm *VM) pop() value.Value {
	vm.stackTop--
	return vm.stack[vm.stackTop]
}

func (vm *VM) peek(distance int) value.Value {
	return vm.stack[vm.stackTop-1-distance]
}

// Run executes c from its first byte until OP_RETURN or a runtime error.
func (vm *VM) Run(c *chunk.Chunk) error {
	vm.chunk = c
	vm.ip = 0

	for {
		op := chunk.Opcode(vm.readByte())

		switch op {
		case chunk.OP_CONSTANT:
			vm.push(vm.chunk.Constants[vm.readByte()])

		case chunk.OP_NIL:
			vm.push(value.Nil())
		case chunk.OP_TRUE:
			vm.push(value.Bool(true))
		case chunk.OP_FALSE:
			vm.push(value.Bool(false))

		case chunk.OP_POP:
			vm.pop()

		case chunk.OP_GET_LOCAL:
			slot := vm.readByte()
			vm.push(vm.stack[slot])
		case chunk.OP_SET_LOCAL:
			slot := vm.readByte()
			vm.stack[slot] = vm.peek(0)

		case chunk.OP_GET_GLOBAL:
			name := vm.chunk.Constants[vm.readByte()].AsString()
			v, ok := vm.globals.Get(name)
			if !ok {
				return vm.runtimeError("Undefined variable: %s", name.Bytes)
			}
			vm.push(v)
		case chunk.OP_DEFINE_GLOBAL:
			name := vm.chunk.Constants[vm.readByte()].AsString()
			vm.globals.Set(name, vm.peek(0))
			vm.pop()
		case chunk.OP_SET_GLOBAL:
			name := vm.chunk.Constants[vm.readByte()].AsString()
			// Set reports whether name was absent before this call; an
			// absent name means assignment to an undefined variable, so
			// the just-inserted entry is removed again before erroring.
			if vm.globals.Set(name, vm.peek(0)) {
				vm.globals.Delete(name)
				return vm.runtimeError("Undefined variable: %s", name.Bytes)
			}

		case chunk.OP_EQUAL:
			b := vm.pop()
			a := vm.pop()
			vm.push(value.Bool(value.Equal(a, b)))
		case chunk.OP_GREATER:
			if err := vm.binaryNumberOp(func(a, b float64) value.Value { return value.Bool(a > b) }); err != nil {
				return err
			}
		case chunk.OP_LESS:
			if err := vm.binaryNumberOp(func(a, b float64) value.Value { return value.Bool(a < b) }); err != nil {
				return err
			}

		case chunk.OP_ADD:
			if err := vm.add(); err != nil {
				return err
			}
		case chunk.OP_SUBTRACT:
			if err := vm.binaryNumberOp(func(a, b float64) value.Value { return value.Number(a - b) }); err != nil {
				return err
			}
		case chunk.OP_MULTIPLY:
			if err := vm.binaryNumberOp(func(a, b float64) value.Value { return value.Number(a * b) }); err != nil {
				return err
			}
		case chunk.OP_DIVIDE:
			if err := vm.binaryNumberOp(func(a, b float64) value.Value { return value.Number(a / b) }); err != nil {
				return err
			}
		case chunk.OP_EXPONENT:
			if err := vm.binaryNumberOp(exponent); err != nil {
				return err
			}

		case chunk.OP_NOT:
			vm.push(value.Bool(vm.pop().IsFalsey()))
		case chunk.OP_NEGATE:
			if !vm.peek(0).IsNumber() {
				return vm.runtimeError("The operand or value must be a number.")
			}
			vm.push(value.Number(-vm.pop().AsNumber()))

		case chunk.OP_PRINT:
			fmt.Fprintln(vm.out, vm.pop().String())

		case chunk.OP_JUMP:
			offset := vm.readUint16()
			vm.ip += offset
		case chunk.OP_JUMP_IF_FALSE:
			offset := vm.readUint16()
			if vm.peek(0).IsFalsey() {
				vm.ip += offset
			}
		case chunk.OP_LOOP:
			offset := vm.readUint16()
			vm.ip -= offset

		case chunk.OP_RETURN:
			return nil

		default:
			return vm.runtimeError("Unknown opcode %v.", op)
		}
	}
}

func (vm *VM) readByte() byte {
	b := vm.chunk.Code[vm.ip]
	vm.ip++
	return b
}

func (vm *VM) readUint16() int {
	offset := vm.chunk.ReadUint16(vm.ip)
	vm.ip += 2
	return offset
}

func (vm *VM) binaryNumberOp(op func(a, b float64) value.Value) error {
	if !vm.peek(0).IsNumber() || !vm.peek(1).IsNumber() {
		return vm.runtimeError("Values must be numbers.")
	}
	b := vm.pop().AsNumber()
	a := vm.pop().AsNumber()
	vm.push(op(a, b))
	return nil
}

func (vm *VM) add() error {
	if vm.peek(0).IsString() && vm.peek(1).IsString() {
		b := vm.pop().AsString()
		a := vm.pop().AsString()
		vm.push(value.Obj(vm.interner.TakeString(a.Bytes + b.Bytes)))
		return nil
	}
	if vm.peek(0).IsNumber() && vm.peek(1).IsNumber() {
		b := vm.pop().AsNumber()
		a := vm.pop().AsNumber()
		vm.push(value.Number(a + b))
		return nil
	}
	return vm.runtimeError("Values must be two strings or numbers.")
}

// runtimeError writes the "[line N] in script." diagnostic the dispatch
// loop owes on any type error, resets the stack, and returns the error for
// the caller to propagate.
func (vm *VM) runtimeError(format string, args ...interface{}) error {
	message := fmt.Sprintf(format, args...)
	line := vm.chunk.Line(vm.ip - 1)
	fmt.Fprintf(os.Stderr, "%s\n[line %d] in script.\n", message, line)
	vm.resetStack()
	return &RuntimeError{Message: message, Line: line}
}
