package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"
	"github.com/smog-lang/smog/lang/lexer"
	"github.com/smog-lang/smog/lang/token"
)

// Tokenize executes the lexer phase on each file in args and prints every
// token with its resolved source position.
func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	var failed error
	for _, path := range args {
		src, err := os.ReadFile(path)
		if err != nil {
			failed = printError(stdio, err)
			continue
		}

		fset := token.NewFileSet()
		file := fset.AddFile(path, -1, len(src))
		var errs token.ErrorList
		l := lexer.New(file, src, errs.Add)
		for {
			tok, val := l.NextToken()
			pos := file.Position(val.Pos)
			fmt.Fprintf(stdio.Stdout, "%s: %s", pos, tok)
			if lit := tok.Literal(val); lit != "" {
				fmt.Fprintf(stdio.Stdout, " %s", lit)
			}
			fmt.Fprintln(stdio.Stdout)
			if tok == token.EOF {
				break
			}
		}
		if errs.Len() > 0 {
			errs.Sort()
			failed = printError(stdio, errs.Err())
		}
	}
	return failed
}
