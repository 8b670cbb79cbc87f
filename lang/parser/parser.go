// Package parser implements the parser that transforms smog source into an
// abstract syntax tree, using precedence climbing for expressions (spec.md
// §4.2), adapted from the teacher's panic/recover statement-recovery model
// (lang/parser/parser.go in the teacher).
package parser

import (
	"errors"
	"strings"

	"github.com/smog-lang/smog/lang/ast"
	"github.com/smog-lang/smog/lang/lexer"
	"github.com/smog-lang/smog/lang/token"
)

// Parse lexes and parses a full smog source file, returning the program and
// its file handle (for position reporting) even when err is non-nil; err,
// when non-nil, is always a *token.ErrorList.
func Parse(filename string, src []byte) (*token.File, *ast.Program, error) {
	fset := token.NewFileSet()
	file := fset.AddFile(filename, -1, len(src))

	var p parser
	p.file = file
	p.lex = lexer.New(file, src, p.errs.Add)
	p.advance()

	prog := p.parseProgram()
	if p.errs.Len() == 0 {
		return file, prog, nil
	}
	p.errs.Sort()
	return file, prog, p.errs.Err()
}

type parser struct {
	file *token.File
	lex  *lexer.Lexer
	errs token.ErrorList

	tok token.Token
	val token.Value
}

var errPanicMode = errors.New("panic")

func (p *parser) advance() {
	p.tok, p.val = p.lex.NextToken()
	for p.tok == token.COMMENT {
		p.tok, p.val = p.lex.NextToken()
	}
}

func (p *parser) error(pos token.Pos, msg string) {
	p.errs.Add(p.file.Position(pos), msg)
}

func (p *parser) errorExpected(pos token.Pos, msg string) {
	msg = "expected " + msg
	if pos == p.val.Pos {
		switch lit := p.tok.Literal(p.val); lit {
		case "":
			msg += ", found " + p.tok.GoString()
		default:
			msg += ", found " + lit
		}
	}
	p.error(pos, msg)
}

// expect consumes and returns the position of the current token if it
// matches one of toks; otherwise it records an error and panics with
// errPanicMode, unwound by parseStmt's per-statement recovery.
func (p *parser) expect(toks ...token.Token) token.Pos {
	pos := p.val.Pos
	for _, tok := range toks {
		if p.tok == tok {
			p.advance()
			return pos
		}
	}
	var sb strings.Builder
	for i, tok := range toks {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(tok.GoString())
	}
	lbl := sb.String()
	if len(toks) > 1 {
		lbl = "one of " + lbl
	}
	p.errorExpected(pos, lbl)
	panic(errPanicMode)
}

func (p *parser) parseProgram() *ast.Program {
	prog := &ast.Program{Name: p.file.Name()}
	for p.tok != token.EOF {
		prog.Stmts = append(prog.Stmts, p.parseStmtRecover())
	}
	prog.EOF = p.val.Pos
	return prog
}

// parseStmtRecover parses one statement, recovering from a panic(errPanicMode)
// raised by expect() by skipping tokens up to the next statement boundary
// (';', a block-closing '}', or EOF), per spec.md §7's parser error
// recovery policy: report as many distinct errors as possible rather than
// stopping at the first.
func (p *parser) parseStmtRecover() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if r != errPanicMode {
				panic(r)
			}
			start := p.val.Pos
			for !tokenIn(p.tok, token.SEMI, token.RBRACE, token.EOF) {
				p.advance()
			}
			if p.tok == token.SEMI {
				p.advance()
			}
			stmt = &ast.ExprStmt{X: &ast.NullLit{ValuePos: start}}
		}
	}()
	return p.parseStmt()
}

func tokenIn(tok token.Token, toks ...token.Token) bool {
	for _, t := range toks {
		if tok == t {
			return true
		}
	}
	return false
}
