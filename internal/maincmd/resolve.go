package maincmd

import (
	"context"
	"os"

	"github.com/mna/mainer"
	"github.com/smog-lang/smog/lang/parser"
	"github.com/smog-lang/smog/lang/resolver"
)

// Resolve executes the parser and resolver phases on each file in args and
// prints the AST annotated with each identifier's resolved Symbol.
func (c *Cmd) Resolve(ctx context.Context, stdio mainer.Stdio, args []string) error {
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
		dumpProgram(stdio.Stdout, file, prog, res)
		if err != nil {
			failed = printError(stdio, err)
		}
	}
	return failed
}
