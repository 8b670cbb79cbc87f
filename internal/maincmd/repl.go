package maincmd

import (
	"context"
	"fmt"
	"io"

	"github.com/mna/mainer"
	"github.com/peterh/liner"
	"github.com/smog-lang/smog/lang/ast"
	"github.com/smog-lang/smog/lang/compiler"
	"github.com/smog-lang/smog/lang/parser"
	"github.com/smog-lang/smog/lang/resolver"
	"github.com/smog-lang/smog/lang/vm"
)

const replPrompt = "smog> "

// Repl runs an interactive read-eval-print loop, one line at a time, until
// EOF or an interrupt. Every accepted line is appended to a single
// ever-growing program and the whole thing is re-resolved and recompiled
// on each turn: Compiler.Compile is a deterministic function of (resolved
// AST, statement order), so the bytecode for already-accepted lines never
// changes shape, only grows a new tail - only that tail is ever executed,
// against the same globals store carried over from the previous turn
// (vm.NewWithGlobalsStore; spec.md §6, §4.4's with_new_state).
func (c *Cmd) Repl(ctx context.Context, stdio mainer.Stdio, _ []string) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	prog := &ast.Program{}
	globals := make([]vm.Value, vm.GlobalsSize)
	var prevInsLen int

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		input, err := line.Prompt(replPrompt)
		if err != nil {
			if err == io.EOF || err == liner.ErrPromptAborted {
				return nil
			}
			return printError(stdio, err)
		}
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		file, stmtProg, err := parser.Parse("<repl>", []byte(input))
		if err != nil {
			printError(stdio, err)
			continue
		}
		prog.Stmts = append(prog.Stmts, stmtProg.Stmts...)

		res, err := resolver.Resolve(file, prog)
		if err != nil {
			// drop the bad line so the accumulated program stays valid
			prog.Stmts = prog.Stmts[:len(prog.Stmts)-len(stmtProg.Stmts)]
			printError(stdio, err)
			continue
		}

		bc, err := compiler.New(res).Compile(prog)
		if err != nil {
			prog.Stmts = prog.Stmts[:len(prog.Stmts)-len(stmtProg.Stmts)]
			printError(stdio, err)
			continue
		}

		newIns := bc.Instructions[prevInsLen:]
		machine := vm.NewWithGlobalsStore(newIns, bc.Constants, globals)
		if err := machine.Run(); err != nil {
			printError(stdio, err)
			continue
		}
		prevInsLen = len(bc.Instructions)

		if result := machine.LastPoppedStackElem(); result != vm.Null {
			fmt.Fprintln(stdio.Stdout, result.Inspect())
		}
	}
}
