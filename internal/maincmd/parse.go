package maincmd

import (
	"context"
	"os"

	"github.com/mna/mainer"
	"github.com/smog-lang/smog/lang/parser"
)

// Parse executes the parser phase on each file in args and prints the
// resulting AST, one line per node with source position.
func (c *Cmd) Parse(ctx context.Context, stdio mainer.Stdio, args []string) error {
	var failed error
	for _, path := range args {
		src, err := os.ReadFile(path)
		if err != nil {
			failed = printError(stdio, err)
			continue
		}
		file, prog, err := parser.Parse(path, src)
		if prog != nil {
			dumpProgram(stdio.Stdout, file, prog, nil)
		}
		if err != nil {
			failed = printError(stdio, err)
		}
	}
	return failed
}
