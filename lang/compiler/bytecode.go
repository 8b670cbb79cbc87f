package compiler

import "github.com/smog-lang/smog/lang/vm"

// Bytecode is a compiled program's instructions and constant pool, the unit
// the VM executes and bytefmt serializes (spec.md §4.4/§6).
type Bytecode struct {
	Instructions vm.Instructions
	Constants    []vm.Value
}
