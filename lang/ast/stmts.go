package ast

import (
	"fmt"

	"github.com/smog-lang/smog/lang/token"
)

type (
	// Let represents `let name = value;`.
	Let struct {
		LetPos token.Pos
		Name   *Ident
		Value  Expr
	}

	// Assign represents `target = value;`. Target is restricted to Ident,
	// Index or Get by the parser (spec.md §3, §4.2).
	Assign struct {
		Target Expr
		Eq     token.Pos
		Value  Expr
	}

	// Return represents `return [value];`.
	Return struct {
		ReturnPos token.Pos
		Value     Expr // nil if bare `return;`
	}

	// ExprStmt represents an expression used as a statement.
	ExprStmt struct {
		X Expr
	}

	// Block represents a `{ ... }` sequence of statements, and is also the
	// body used by if/while/for/function nodes.
	Block struct {
		Lbrace token.Pos
		Stmts  []Stmt
		Rbrace token.Pos
	}

	// While represents `while (cond) { body }`.
	While struct {
		WhilePos token.Pos
		Cond     Expr
		Body     *Block
	}

	// For represents `for (Var in Iterable) { body }`.
	For struct {
		ForPos   token.Pos
		Var      *Ident
		Iterable Expr
		Body     *Block
	}

	// Break represents a `break;` statement.
	Break struct {
		Pos token.Pos
	}

	// Continue represents a `continue;` statement.
	Continue struct {
		Pos token.Pos
	}

	// Class represents `class Name { ctor/methods }`.
	Class struct {
		ClassPos token.Pos
		Name     *Ident
		Ctor     *Method // nil if no constructor
		Methods  []*Method
		Rbrace   token.Pos
	}

	// Method is a named function definition inside a class body.
	Method struct {
		Name *Ident
		Fn   *FuncLit
	}
)

func (n *Let) Span() (start, end token.Pos) {
	_, end = n.Value.Span()
	return n.LetPos, end
}
func (n *Let) Walk(v Visitor) { Walk(v, n.Name); Walk(v, n.Value) }
func (n *Let) String() string { return fmt.Sprintf("let %s", n.Name.Name) }
func (n *Let) stmt()          {}

func (n *Assign) Span() (start, end token.Pos) {
	start, _ = n.Target.Span()
	_, end = n.Value.Span()
	return start, end
}
func (n *Assign) Walk(v Visitor) { Walk(v, n.Target); Walk(v, n.Value) }
func (n *Assign) String() string { return "assign" }
func (n *Assign) stmt()          {}

func (n *Return) Span() (start, end token.Pos) {
	end = n.ReturnPos + token.Pos(len("return"))
	if n.Value != nil {
		_, end = n.Value.Span()
	}
	return n.ReturnPos, end
}
func (n *Return) Walk(v Visitor) {
	if n.Value != nil {
		Walk(v, n.Value)
	}
}
func (n *Return) String() string { return "return" }
func (n *Return) stmt()          {}

func (n *ExprStmt) Span() (start, end token.Pos) { return n.X.Span() }
func (n *ExprStmt) Walk(v Visitor)                { Walk(v, n.X) }
func (n *ExprStmt) String() string                { return "expr stmt" }
func (n *ExprStmt) stmt()                         {}

func (n *Block) Span() (start, end token.Pos) { return n.Lbrace, n.Rbrace }
func (n *Block) Walk(v Visitor) {
	for _, s := range n.Stmts {
		Walk(v, s)
	}
}
func (n *Block) String() string { return fmt.Sprintf("block(%d)", len(n.Stmts)) }
func (n *Block) stmt()          {}

func (n *While) Span() (start, end token.Pos) { return n.WhilePos, n.Body.Rbrace }
func (n *While) Walk(v Visitor)                { Walk(v, n.Cond); Walk(v, n.Body) }
func (n *While) String() string                { return "while" }
func (n *While) stmt()                         {}

func (n *For) Span() (start, end token.Pos) { return n.ForPos, n.Body.Rbrace }
func (n *For) Walk(v Visitor) {
	Walk(v, n.Var)
	Walk(v, n.Iterable)
	Walk(v, n.Body)
}
func (n *For) String() string { return "for" }
func (n *For) stmt()          {}

func (n *Break) Span() (start, end token.Pos) { return n.Pos, n.Pos + token.Pos(len("break")) }
func (n *Break) Walk(v Visitor)                {}
func (n *Break) String() string                { return "break" }
func (n *Break) stmt()                         {}

func (n *Continue) Span() (start, end token.Pos) {
	return n.Pos, n.Pos + token.Pos(len("continue"))
}
func (n *Continue) Walk(v Visitor) {}
func (n *Continue) String() string { return "continue" }
func (n *Continue) stmt()          {}

func (n *Class) Span() (start, end token.Pos) { return n.ClassPos, n.Rbrace }
func (n *Class) Walk(v Visitor) {
	Walk(v, n.Name)
	if n.Ctor != nil {
		Walk(v, n.Ctor.Fn)
	}
	for _, m := range n.Methods {
		Walk(v, m.Fn)
	}
}
func (n *Class) String() string {
	return fmt.Sprintf("class %s(%d methods)", n.Name.Name, len(n.Methods))
}
func (n *Class) stmt() {}
