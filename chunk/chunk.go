// Package chunk implements Blue's compiled unit: a flat byte array of
// opcodes and operands, a parallel per-byte line table for diagnostics, and
// a constant pool addressed by one-byte index.
package chunk

import (
	"encoding/binary"
	"fmt"

	"blue/value"
)

// MaxConstants is the largest number of constants a single Chunk may hold;
// CONSTANT and the *_GLOBAL opcodes address the pool with a one-byte index.
const MaxConstants = 256

// MaxJump is the largest distance OP_JUMP/OP_JUMP_IF_FALSE/OP_LOOP can
// encode in their big-endian 16-bit operand.
const MaxJump = 65535

// Chunk is an append-only bytecode buffer: opcodes/operands, one source
// line per byte, and the constant pool the CONSTANT family of opcodes
// indexes into.
type Chunk struct {
	Code      []byte
	Lines     []int
	Constants []value.Value
}

// New returns an empty Chunk.
func New() *Chunk {
	return &Chunk{}
}

// WriteByte appends a raw byte (an opcode or an operand byte) tagged with
// the source line it came from.
func (c *Chunk) WriteByte(b byte, line int) {
	c.Code = append(c.Code, b)
	c.Lines = append(c.Lines, line)
}

// WriteOpcode appends an opcode byte and returns its offset. Any operand
// bytes the opcode takes are appended separately by the caller.
func (c *Chunk) WriteOpcode(op Opcode, line int) int {
	offset := len(c.Code)
	c.WriteByte(byte(op), line)
	return offset
}

// AddConstant appends value to the constant pool and returns its index.
// The caller must have already checked Len(Constants) < MaxConstants.
func (c *Chunk) AddConstant(v value.Value) int {
	c.Constants = append(c.Constants, v)
	return len(c.Constants) - 1
}

// WriteUint16 appends a big-endian 16-bit operand (a jump offset).
func (c *Chunk) WriteUint16(n int, line int) {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], uint16(n))
	c.WriteByte(buf[0], line)
	c.WriteByte(buf[1], line)
}

// PatchUint16 overwrites the big-endian 16-bit operand starting at offset.
// Used to back-patch a jump once its target is known.
func (c *Chunk) PatchUint16(offset int, n int) {
	binary.BigEndian.PutUint16(c.Code[offset:offset+2], uint16(n))
}

// ReadUint16 reads a big-endian 16-bit operand starting at offset.
func (c *Chunk) ReadUint16(offset int) int {
	return int(binary.BigEndian.Uint16(c.Code[offset : offset+2]))
}

// Line returns the source line recorded for the byte at ip.
func (c *Chunk) Line(ip int) int {
	if ip < 0 || ip >= len(c.Lines) {
		if len(c.Lines) == 0 {
			return 0
		}
		return c.Lines[len(c.Lines)-1]
	}
	return c.Lines[ip]
}

// Disassemble writes a human-readable listing of every instruction in c to
// a string, the debug front-end spec.md §1 allows implementers to provide
// in any shape.
func (c *Chunk) Disassemble(name string) string {
	out := fmt.Sprintf("== %s ==\n", name)
	for offset := 0; offset < len(c.Code); {
		var line string
		line, offset = c.DisassembleInstruction(offset)
		out += line
	}
	return out
}

// DisassembleInstruction formats the single instruction at offset and
// returns the formatted line plus the offset of the following instruction.
func (c *Chunk) DisassembleInstruction(offset int) (string, int) {
	op := Opcode(c.Code[offset])
	linePrefix := fmt.Sprintf("%04d %4d ", offset, c.Line(offset))

	switch op {
	case OP_CONSTANT, OP_GET_GLOBAL, OP_DEFINE_GLOBAL, OP_SET_GLOBAL:
		idx := c.Code[offset+1]
		return fmt.Sprintf("%s%-16s %4d '%s'\n", linePrefix, op, idx, c.Constants[idx]), offset + 2
	case OP_GET_LOCAL, OP_SET_LOCAL:
		slot := c.Code[offset+1]
		return fmt.Sprintf("%s%-16s %4d\n", linePrefix, op, slot), offset + 2
	case OP_JUMP, OP_JUMP_IF_FALSE:
		jump := c.ReadUint16(offset + 1)
		return fmt.Sprintf("%s%-16s %4d -> %d\n", linePrefix, op, offset, offset+3+jump), offset + 3
	case OP_LOOP:
		jump := c.ReadUint16(offset + 1)
		return fmt.Sprintf("%s%-16s %4d -> %d\n", linePrefix, op, offset, offset+3-jump), offset + 3
	default:
		return fmt.Sprintf("%s%s\n", linePrefix, op), offset + 1
	}
}
