// Package ast defines the abstract syntax tree produced by the parser
// (spec.md §3). Node families are tagged variants (sum types): Stmt and
// Expr are closed interfaces implemented only by the node types declared in
// this package, each with Span/Walk/String methods, cut down
// to smog's smaller grammar.
package ast

import (
	"fmt"

	"github.com/smog-lang/smog/lang/token"
)

// Node is implemented by every AST node.
type Node interface {
	// Span returns the start and end position of the node in the source.
	Span() (start, end token.Pos)
	// Walk visits the node's direct children with v.
	Walk(v Visitor)
	fmt.Stringer
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmt()
}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	expr()
}

// Program is the root of a parsed chunk: a sequence of top-level statements.
type Program struct {
	Name  string // source filename, may be empty
	Stmts []Stmt
	EOF   token.Pos
}

func (n *Program) Span() (start, end token.Pos) {
	if len(n.Stmts) == 0 {
		return n.EOF, n.EOF
	}
	start, _ = n.Stmts[0].Span()
	_, end = n.Stmts[len(n.Stmts)-1].Span()
	return start, end
}
func (n *Program) Walk(v Visitor) {
	for _, s := range n.Stmts {
		Walk(v, s)
	}
}
func (n *Program) String() string { return fmt.Sprintf("program(%d stmts)", len(n.Stmts)) }

// IsAssignable reports whether e is a valid assignment target: an
// identifier, an index expression, or an attribute-get expression (spec.md
// §3 "Assign targets are restricted to Ident | Index | Get").
func IsAssignable(e Expr) bool {
	switch e.(type) {
	case *Ident, *Index, *Get:
		return true
	default:
		return false
	}
}
