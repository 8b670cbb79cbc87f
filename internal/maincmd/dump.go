package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"
	"github.com/smog-lang/smog/lang/bytefmt"
	"github.com/smog-lang/smog/lang/compiler"
	"github.com/smog-lang/smog/lang/parser"
	"github.com/smog-lang/smog/lang/resolver"
	"github.com/smog-lang/smog/lang/vm"
)

// Dump compiles each script and either prints a disassembly of its
// bytecode, or, with --out, writes it to a bytecode file via lang/bytefmt
// (spec.md §6's wire format).
func (c *Cmd) Dump(ctx context.Context, stdio mainer.Stdio, args []string) error {
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

		if c.Out == "" {
			fmt.Fprintf(stdio.Stdout, "-- %s --\n", path)
			fmt.Fprint(stdio.Stdout, vm.Disassemble(bc.Instructions))
			continue
		}

		out, err := os.Create(c.Out)
		if err != nil {
			failed = printError(stdio, err)
			continue
		}
		err = bytefmt.Write(out, bc, "smog")
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			failed = printError(stdio, err)
		}
	}
	return failed
}
