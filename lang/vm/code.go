package vm

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Instructions is a flat, big-endian encoded instruction stream: one opcode
// byte followed by its fixed-width operands (spec.md's opcode table gives
// each operand's width in bytes).
type Instructions []byte

// Make encodes a single instruction: op followed by its operands, each
// truncated to the width OperandWidths(op) declares.
func Make(op Op, operands ...int) Instructions {
	widths := OperandWidths(op)
	buf := make([]byte, 1, 1+totalWidth(widths))
	buf[0] = byte(op)
	for i, operand := range operands {
		w := widths[i]
		switch w {
		case 1:
			buf = append(buf, byte(operand))
		case 2:
			var tmp [2]byte
			binary.BigEndian.PutUint16(tmp[:], uint16(operand))
			buf = append(buf, tmp[:]...)
		default:
			panic(fmt.Sprintf("compiler: unsupported operand width %d for %s", w, op))
		}
	}
	return buf
}

func totalWidth(widths []int) int {
	n := 0
	for _, w := range widths {
		n += w
	}
	return n
}

// ReadUint16 decodes a big-endian 2-byte operand at ins[0:2].
func ReadUint16(ins Instructions) uint16 { return binary.BigEndian.Uint16(ins) }

// ReadUint8 decodes a 1-byte operand at ins[0].
func ReadUint8(ins Instructions) uint8 { return ins[0] }

// Decode reads the operands of the instruction starting at ins[0] (the
// opcode byte itself excluded) and returns them plus the number of bytes
// consumed.
func Decode(op Op, ins Instructions) ([]int, int) {
	widths := OperandWidths(op)
	operands := make([]int, len(widths))
	offset := 0
	for i, w := range widths {
		switch w {
		case 1:
			operands[i] = int(ReadUint8(ins[offset:]))
		case 2:
			operands[i] = int(ReadUint16(ins[offset:]))
		}
		offset += w
	}
	return operands, offset
}

// Disassemble renders ins in a human-readable "pc op operands" form, used
// by tests and the `dump` CLI command rather than anything the VM reads.
func Disassemble(ins Instructions) string {
	var sb strings.Builder
	for i := 0; i < len(ins); {
		op := Op(ins[i])
		operands, n := Decode(op, ins[i+1:])
		fmt.Fprintf(&sb, "%04d %s", i, op)
		for _, o := range operands {
			fmt.Fprintf(&sb, " %d", o)
		}
		sb.WriteByte('\n')
		i += 1 + n
	}
	return sb.String()
}
