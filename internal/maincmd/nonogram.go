package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"
	"github.com/smog-lang/smog/internal/nonogram"
)

// Nonogram solves each given puzzle description file and prints the
// resulting grid. The solver is unrelated to the scripting language; it is
// carried over from the teacher repo and kept reachable as its own
// subcommand rather than deleted.
func (c *Cmd) Nonogram(ctx context.Context, stdio mainer.Stdio, args []string) error {
	var failed error
	for _, path := range args {
		src, err := os.ReadFile(path)
		if err != nil {
			failed = printError(stdio, err)
			continue
		}

		board, err := nonogram.Parse(src)
		if err != nil {
			failed = printError(stdio, err)
			continue
		}

		solved, err := nonogram.Solve(board)
		if err != nil {
			failed = printError(stdio, err)
			continue
		}

		fmt.Fprintf(stdio.Stdout, "-- %s --\n", path)
		fmt.Fprintln(stdio.Stdout, board.String())
		if !solved {
			fmt.Fprintln(stdio.Stdout, "(not fully solved)")
		}
	}
	return failed
}
