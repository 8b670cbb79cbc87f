package ast

import (
	"fmt"

	"github.com/smog-lang/smog/lang/token"
)

type (
	// Ident represents an identifier reference.
	Ident struct {
		NamePos token.Pos
		Name    string
	}

	// This represents the `this` keyword expression.
	This struct {
		Pos token.Pos
	}

	// IntLit represents an integer literal.
	IntLit struct {
		ValuePos token.Pos
		Raw      string
		Value    int64
	}

	// StrLit represents a string literal.
	StrLit struct {
		ValuePos token.Pos
		Raw      string
		Value    string
	}

	// BoolLit represents `true` or `false`.
	BoolLit struct {
		ValuePos token.Pos
		Value    bool
	}

	// NullLit represents `null`.
	NullLit struct {
		ValuePos token.Pos
	}

	// ArrayLit represents `[e1, e2, ...]`.
	ArrayLit struct {
		Lbrack token.Pos
		Elems  []Expr
		Rbrack token.Pos
	}

	// KeyVal is one key/value pair of a HashLit.
	KeyVal struct {
		Key   Expr
		Value Expr
	}

	// HashLit represents `{k1: v1, k2: v2}`.
	HashLit struct {
		Lbrace token.Pos
		Pairs  []*KeyVal
		Rbrace token.Pos
	}

	// FuncLit represents a function literal `fn(params){body}`.
	FuncLit struct {
		FnPos  token.Pos
		Name   string // non-empty if bound by `let name = fn...` (spec.md §4.2)
		Params []*Ident
		Body   *Block
	}

	// Prefix represents a prefix/unary expression, e.g. `-x`, `!x`, `not x`.
	Prefix struct {
		OpPos token.Pos
		Op    token.Token
		Right Expr
	}

	// Infix represents a binary expression, e.g. `x + y`.
	Infix struct {
		Left  Expr
		OpPos token.Pos
		Op    token.Token
		Right Expr
	}

	// Index represents `left[index]`.
	Index struct {
		Left   Expr
		Lbrack token.Pos
		Index  Expr
		Rbrack token.Pos
	}

	// Get represents `object.property`.
	Get struct {
		Object   Expr
		Dot      token.Pos
		Property *Ident
	}

	// Branch is one (condition, block) pair of an If chain.
	Branch struct {
		Cond  Expr
		Block *Block
	}

	// If represents an if/elif/.../else chain.
	If struct {
		IfPos    token.Pos
		Branches []*Branch
		Else     *Block // nil if no else clause
	}

	// Call represents a function call `fn(args...)`.
	Call struct {
		Fn     Expr
		Lparen token.Pos
		Args   []Expr
		Rparen token.Pos
	}
)

func (n *Ident) Span() (start, end token.Pos) {
	return n.NamePos, n.NamePos + token.Pos(len(n.Name))
}
func (n *Ident) Walk(v Visitor)  {}
func (n *Ident) String() string { return n.Name }
func (n *Ident) expr()          {}

func (n *This) Span() (start, end token.Pos) { return n.Pos, n.Pos + token.Pos(len("this")) }
func (n *This) Walk(v Visitor)                {}
func (n *This) String() string                { return "this" }
func (n *This) expr()                         {}

func (n *IntLit) Span() (start, end token.Pos) {
	return n.ValuePos, n.ValuePos + token.Pos(len(n.Raw))
}
func (n *IntLit) Walk(v Visitor)  {}
func (n *IntLit) String() string { return n.Raw }
func (n *IntLit) expr()          {}

func (n *StrLit) Span() (start, end token.Pos) {
	return n.ValuePos, n.ValuePos + token.Pos(len(n.Raw))
}
func (n *StrLit) Walk(v Visitor)  {}
func (n *StrLit) String() string { return fmt.Sprintf("%q", n.Value) }
func (n *StrLit) expr()          {}

func (n *BoolLit) Span() (start, end token.Pos) {
	lit := "false"
	if n.Value {
		lit = "true"
	}
	return n.ValuePos, n.ValuePos + token.Pos(len(lit))
}
func (n *BoolLit) Walk(v Visitor) {}
func (n *BoolLit) String() string {
	if n.Value {
		return "true"
	}
	return "false"
}
func (n *BoolLit) expr() {}

func (n *NullLit) Span() (start, end token.Pos) {
	return n.ValuePos, n.ValuePos + token.Pos(len("null"))
}
func (n *NullLit) Walk(v Visitor)  {}
func (n *NullLit) String() string { return "null" }
func (n *NullLit) expr()          {}

func (n *ArrayLit) Span() (start, end token.Pos) { return n.Lbrack, n.Rbrack + 1 }
func (n *ArrayLit) Walk(v Visitor) {
	for _, e := range n.Elems {
		Walk(v, e)
	}
}
func (n *ArrayLit) String() string { return fmt.Sprintf("array(%d)", len(n.Elems)) }
func (n *ArrayLit) expr()          {}

func (n *HashLit) Span() (start, end token.Pos) { return n.Lbrace, n.Rbrace + 1 }
func (n *HashLit) Walk(v Visitor) {
	for _, kv := range n.Pairs {
		Walk(v, kv.Key)
		Walk(v, kv.Value)
	}
}
func (n *HashLit) String() string { return fmt.Sprintf("hash(%d)", len(n.Pairs)) }
func (n *HashLit) expr()          {}

func (n *FuncLit) Span() (start, end token.Pos) { return n.FnPos, n.Body.Rbrace }
func (n *FuncLit) Walk(v Visitor) {
	for _, p := range n.Params {
		Walk(v, p)
	}
	Walk(v, n.Body)
}
func (n *FuncLit) String() string {
	if n.Name != "" {
		return fmt.Sprintf("fn %s(%d)", n.Name, len(n.Params))
	}
	return fmt.Sprintf("fn(%d)", len(n.Params))
}
func (n *FuncLit) expr() {}

func (n *Prefix) Span() (start, end token.Pos) {
	_, end = n.Right.Span()
	return n.OpPos, end
}
func (n *Prefix) Walk(v Visitor)  { Walk(v, n.Right) }
func (n *Prefix) String() string {
	if n.Op == token.NOT {
		return fmt.Sprintf("(%s %s)", n.Op, n.Right)
	}
	return fmt.Sprintf("(%s%s)", n.Op, n.Right)
}
func (n *Prefix) expr()          {}

func (n *Infix) Span() (start, end token.Pos) {
	start, _ = n.Left.Span()
	_, end = n.Right.Span()
	return start, end
}
func (n *Infix) Walk(v Visitor) { Walk(v, n.Left); Walk(v, n.Right) }
func (n *Infix) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Left, n.Op, n.Right)
}
func (n *Infix) expr() {}

func (n *Index) Span() (start, end token.Pos) {
	start, _ = n.Left.Span()
	return start, n.Rbrack + 1
}
func (n *Index) Walk(v Visitor)  { Walk(v, n.Left); Walk(v, n.Index) }
func (n *Index) String() string { return fmt.Sprintf("(%s[%s])", n.Left, n.Index) }
func (n *Index) expr()          {}

func (n *Get) Span() (start, end token.Pos) {
	start, _ = n.Object.Span()
	_, end = n.Property.Span()
	return start, end
}
func (n *Get) Walk(v Visitor)  { Walk(v, n.Object); Walk(v, n.Property) }
func (n *Get) String() string { return fmt.Sprintf("(%s.%s)", n.Object, n.Property.Name) }
func (n *Get) expr()          {}

func (n *If) Span() (start, end token.Pos) {
	last := n.Branches[len(n.Branches)-1].Block
	end = last.Rbrace
	if n.Else != nil {
		end = n.Else.Rbrace
	}
	return n.IfPos, end
}
func (n *If) Walk(v Visitor) {
	for _, b := range n.Branches {
		Walk(v, b.Cond)
		Walk(v, b.Block)
	}
	if n.Else != nil {
		Walk(v, n.Else)
	}
}
func (n *If) String() string { return fmt.Sprintf("if(%d branches)", len(n.Branches)) }
func (n *If) expr()          {}

func (n *Call) Span() (start, end token.Pos) {
	start, _ = n.Fn.Span()
	return start, n.Rparen + 1
}
func (n *Call) Walk(v Visitor) {
	Walk(v, n.Fn)
	for _, a := range n.Args {
		Walk(v, a)
	}
}
func (n *Call) String() string { return fmt.Sprintf("(%s(%d args))", n.Fn, len(n.Args)) }
func (n *Call) expr()          {}
