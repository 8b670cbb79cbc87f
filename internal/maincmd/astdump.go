package maincmd

import (
	"fmt"
	"io"

	"github.com/smog-lang/smog/lang/ast"
	"github.com/smog-lang/smog/lang/resolver"
	"github.com/smog-lang/smog/lang/token"
)

// dumpProgram prints prog as an indented tree, one line per node, in the
// teacher's parse/resolve command style (position, then the node's own
// String() form). When res is non-nil (the `resolve` command), every
// *ast.Ident line is annotated with its resolved Symbol.
//
// The new ast package has no Printer/Format type (it was cut down from the
// teacher's Starlark-sized grammar), so unlike the teacher's
// ast.Printer-based commands this walks the tree by hand: ast.Visitor.Visit
// carries no depth, so indenting through a generic Walk would need a
// stateful visitor anyway, and a direct recursive switch is simpler.
func dumpProgram(w io.Writer, file *token.File, prog *ast.Program, res *resolver.Resolution) {
	for _, s := range prog.Stmts {
		dumpNode(w, file, s, 0, res)
	}
}

func dumpNode(w io.Writer, file *token.File, n ast.Node, depth int, res *resolver.Resolution) {
	if n == nil {
		return
	}
	start, _ := n.Span()
	pos := file.Position(start)
	indent := ""
	if depth > 0 {
		indent = fmt.Sprintf("%*s", depth*2, "")
	}
	fmt.Fprintf(w, "%s%s: %s", indent, pos, n)
	if res != nil {
		if id, ok := n.(*ast.Ident); ok {
			if sym, ok := res.Idents[id]; ok {
				fmt.Fprintf(w, "  [%s %s idx=%d depth=%d]", sym.Name, sym.Scope, sym.Index, sym.Depth)
			}
		}
	}
	fmt.Fprintln(w)

	children := childrenOf(n)
	for _, c := range children {
		dumpNode(w, file, c, depth+1, res)
	}
}

// childrenOf returns n's direct children in source order, mirroring each
// node's own Walk method but as a slice instead of a callback, so dumpNode
// can control indentation depth itself.
func childrenOf(n ast.Node) []ast.Node {
	switch n := n.(type) {
	case *ast.Program:
		out := make([]ast.Node, len(n.Stmts))
		for i, s := range n.Stmts {
			out[i] = s
		}
		return out
	case *ast.Let:
		return []ast.Node{n.Name, n.Value}
	case *ast.Assign:
		return []ast.Node{n.Target, n.Value}
	case *ast.Return:
		if n.Value != nil {
			return []ast.Node{n.Value}
		}
		return nil
	case *ast.ExprStmt:
		return []ast.Node{n.X}
	case *ast.Block:
		out := make([]ast.Node, len(n.Stmts))
		for i, s := range n.Stmts {
			out[i] = s
		}
		return out
	case *ast.While:
		return []ast.Node{n.Cond, n.Body}
	case *ast.For:
		return []ast.Node{n.Var, n.Iterable, n.Body}
	case *ast.Class:
		out := []ast.Node{n.Name}
		if n.Ctor != nil {
			out = append(out, n.Ctor.Fn)
		}
		for _, m := range n.Methods {
			out = append(out, m.Fn)
		}
		return out
	case *ast.ArrayLit:
		out := make([]ast.Node, len(n.Elems))
		for i, e := range n.Elems {
			out[i] = e
		}
		return out
	case *ast.HashLit:
		var out []ast.Node
		for _, kv := range n.Pairs {
			out = append(out, kv.Key, kv.Value)
		}
		return out
	case *ast.FuncLit:
		out := make([]ast.Node, 0, len(n.Params)+1)
		for _, p := range n.Params {
			out = append(out, p)
		}
		return append(out, n.Body)
	case *ast.Prefix:
		return []ast.Node{n.Right}
	case *ast.Infix:
		return []ast.Node{n.Left, n.Right}
	case *ast.Index:
		return []ast.Node{n.Left, n.Index}
	case *ast.Get:
		return []ast.Node{n.Object, n.Property}
	case *ast.If:
		var out []ast.Node
		for _, b := range n.Branches {
			out = append(out, b.Cond, b.Block)
		}
		if n.Else != nil {
			out = append(out, n.Else)
		}
		return out
	case *ast.Call:
		out := []ast.Node{n.Fn}
		for _, a := range n.Args {
			out = append(out, a)
		}
		return out
	default:
		return nil
	}
}
