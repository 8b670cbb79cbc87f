package maincmd

import (
	"context"
	"os"

	"github.com/mna/mainer"
	"github.com/smog-lang/smog/lang/compiler"
	"github.com/smog-lang/smog/lang/interp"
	"github.com/smog-lang/smog/lang/parser"
	"github.com/smog-lang/smog/lang/resolver"
	"github.com/smog-lang/smog/lang/vm"
)

// Run compiles and executes each script in turn, each in its own resolver,
// compiler and VM (no state carries between files, unlike the REPL). With
// --walk it runs the tree-walking evaluator instead of the compiler/VM
// pipeline (spec.md §8 property 6).
func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	lim, err := loadLimits()
	if err != nil {
		return printError(stdio, err)
	}

	var failed error
	for _, path := range args {
		src, err := os.ReadFile(path)
		if err != nil {
			failed = printError(stdio, err)
			continue
		}

		file, prog, err := parser.Parse(path, src)
		if err != nil {
			failed = printError(stdio, err)
			continue
		}

		if c.Walk {
			in := interp.NewWithStepBudget(lim.MaxSteps)
			val, err := in.Eval(prog)
			if re, ok := val.(*vm.RuntimeError); ok && err == nil {
				err = re
			}
			if err != nil {
				failed = printError(stdio, err)
			}
			continue
		}

		res, err := resolver.Resolve(file, prog)
		if err != nil {
			failed = printError(stdio, err)
			continue
		}
		bc, err := compiler.New(res).Compile(prog)
		if err != nil {
			failed = printError(stdio, err)
			continue
		}
		machine := vm.New(bc.Instructions, bc.Constants)
		if err := machine.Run(); err != nil {
			failed = printError(stdio, err)
		}
	}
	return failed
}
