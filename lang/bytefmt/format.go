// Package bytefmt implements the big-endian bytecode file format of
// spec.md §6: a VERSION section stamped with a build UUID, a CONSTANTS
// section, and a CODE section. It is an external collaborator, never used
// by the core compiler/VM loop (spec.md §1). The CLI reaches it only through
// `smog dump --out`, which calls Write; no subcommand calls Read.
package bytefmt

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/smog-lang/smog/lang/compiler"
	"github.com/smog-lang/smog/lang/vm"
)

// Section tags (spec.md §6).
const (
	tagVersion   = 0xF0
	tagConstants = 0xF1
	tagCode      = 0xF3
)

// Value tags (spec.md §6).
const (
	valInt              = 0xA0
	valBool             = 0xA1
	valString           = 0xA2
	valNull             = 0xA3
	valCompiledFunction = 0xA4
)

// BuildNumber is bumped on every format revision; it has no relation to the
// smog language version.
const BuildNumber = 1

// Write serializes bc to w. The VERSION section holds BuildNumber and the
// version string "<versionString>+<uuid>", where uuid is a freshly
// generated build UUID; the section has no separate field for it.
func Write(w io.Writer, bc *compiler.Bytecode, versionString string) error {
	vs := fmt.Sprintf("%s+%s", versionString, uuid.New().String())

	if err := writeByte(w, tagVersion); err != nil {
		return err
	}
	if err := writeU16(w, BuildNumber); err != nil {
		return err
	}
	if err := writeU16(w, uint16(len(vs))); err != nil {
		return err
	}
	if _, err := w.Write([]byte(vs)); err != nil {
		return err
	}

	if err := writeByte(w, tagConstants); err != nil {
		return err
	}
	if err := writeU16(w, uint16(len(bc.Constants))); err != nil {
		return err
	}
	for _, c := range bc.Constants {
		if err := writeValue(w, c); err != nil {
			return err
		}
	}

	if err := writeByte(w, tagCode); err != nil {
		return err
	}
	if err := writeU16(w, uint16(len(bc.Instructions))); err != nil {
		return err
	}
	_, err := w.Write(bc.Instructions)
	return err
}

// Read deserializes a bytecode file written by Write, returning the
// reconstructed Bytecode and the version string stamped in its VERSION
// section.
func Read(r io.Reader) (*compiler.Bytecode, string, error) {
	tag, err := readByte(r)
	if err != nil {
		return nil, "", err
	}
	if tag != tagVersion {
		return nil, "", fmt.Errorf("bytefmt: expected VERSION section, got tag 0x%02X", tag)
	}
	if _, err := readU16(r); err != nil { // build_number, unused on read
		return nil, "", err
	}
	vsLen, err := readU16(r)
	if err != nil {
		return nil, "", err
	}
	vsBuf := make([]byte, vsLen)
	if _, err := io.ReadFull(r, vsBuf); err != nil {
		return nil, "", err
	}

	tag, err = readByte(r)
	if err != nil {
		return nil, "", err
	}
	if tag != tagConstants {
		return nil, "", fmt.Errorf("bytefmt: expected CONSTANTS section, got tag 0x%02X", tag)
	}
	count, err := readU16(r)
	if err != nil {
		return nil, "", err
	}
	constants := make([]vm.Value, count)
	for i := range constants {
		v, err := readValue(r)
		if err != nil {
			return nil, "", err
		}
		constants[i] = v
	}

	tag, err = readByte(r)
	if err != nil {
		return nil, "", err
	}
	if tag != tagCode {
		return nil, "", fmt.Errorf("bytefmt: expected CODE section, got tag 0x%02X", tag)
	}
	codeLen, err := readU16(r)
	if err != nil {
		return nil, "", err
	}
	code := make([]byte, codeLen)
	if _, err := io.ReadFull(r, code); err != nil {
		return nil, "", err
	}

	return &compiler.Bytecode{Instructions: code, Constants: constants}, string(vsBuf), nil
}

func writeValue(w io.Writer, v vm.Value) error {
	switch v := v.(type) {
	case vm.Int:
		if err := writeByte(w, valInt); err != nil {
			return err
		}
		return writeOperand(w, int32ToBytes(int32(v)))
	case vm.Bool:
		if err := writeByte(w, valBool); err != nil {
			return err
		}
		b := byte(0)
		if bool(v) {
			b = 1
		}
		return writeOperand(w, []byte{b})
	case vm.String:
		if err := writeByte(w, valString); err != nil {
			return err
		}
		return writeOperand(w, []byte(v))
	case *vm.CompiledFunction:
		if err := writeByte(w, valCompiledFunction); err != nil {
			return err
		}
		if err := writeOperand(w, int32ToBytes(int32(v.NumLocals))); err != nil {
			return err
		}
		if err := writeOperand(w, int32ToBytes(int32(v.NumParams))); err != nil {
			return err
		}
		return writeOperand(w, v.Instructions)
	default:
		if v == vm.Null {
			return writeByte(w, valNull)
		}
		return fmt.Errorf("bytefmt: value kind %s is not constant-serializable", v.Kind())
	}
}

func readValue(r io.Reader) (vm.Value, error) {
	tag, err := readByte(r)
	if err != nil {
		return nil, err
	}
	switch tag {
	case valInt:
		b, err := readOperand(r)
		if err != nil {
			return nil, err
		}
		return vm.Int(int32(binary.BigEndian.Uint32(b))), nil
	case valBool:
		b, err := readOperand(r)
		if err != nil {
			return nil, err
		}
		return vm.Bool(b[0] != 0), nil
	case valString:
		b, err := readOperand(r)
		if err != nil {
			return nil, err
		}
		return vm.String(b), nil
	case valNull:
		return vm.Null, nil
	case valCompiledFunction:
		locals, err := readOperand(r)
		if err != nil {
			return nil, err
		}
		params, err := readOperand(r)
		if err != nil {
			return nil, err
		}
		ins, err := readOperand(r)
		if err != nil {
			return nil, err
		}
		return &vm.CompiledFunction{
			Instructions: ins,
			NumLocals:    int(int32(binary.BigEndian.Uint32(locals))),
			NumParams:    int(int32(binary.BigEndian.Uint32(params))),
		}, nil
	default:
		return nil, fmt.Errorf("bytefmt: unknown value tag 0x%02X", tag)
	}
}

func int32ToBytes(v int32) []byte {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, uint32(v))
	return buf
}

func writeOperand(w io.Writer, payload []byte) error {
	if err := writeU16(w, uint16(len(payload))); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}

func readOperand(r io.Reader) ([]byte, error) {
	n, err := readU16(r)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	_, err = io.ReadFull(r, buf)
	return buf, err
}

func writeByte(w io.Writer, b byte) error {
	_, err := w.Write([]byte{b})
	return err
}

func readByte(r io.Reader) (byte, error) {
	var buf [1]byte
	_, err := io.ReadFull(r, buf[:])
	return buf[0], err
}

func writeU16(w io.Writer, v uint16) error {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func readU16(r io.Reader) (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf[:]), nil
}
