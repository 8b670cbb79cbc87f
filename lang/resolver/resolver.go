package resolver

import (
	"fmt"

	"github.com/smog-lang/smog/lang/ast"
	"github.com/smog-lang/smog/lang/token"
)

// ScopeInfo is what the compiler needs about one scope-creating node: how
// many local slots its frame requires, and which outer-scope values it
// must capture as free variables before constructing its closure.
type ScopeInfo struct {
	NumLocals   int
	FreeSymbols []Symbol
}

// Resolution is the resolver's complete output for one program.
type Resolution struct {
	// Idents maps every identifier occurrence (both defining, e.g. a Let's
	// Name, and referencing, e.g. a later read of that name) to its
	// resolved Symbol.
	Idents map[*ast.Ident]Symbol

	// Scopes maps every scope-creating node (a *ast.FuncLit, or a
	// *ast.Block used as an if/while/for/else body) to its ScopeInfo.
	Scopes map[ast.Node]*ScopeInfo

	// Classes maps each *ast.Class to the class-table index assigned to
	// it, matching DEF_CLASS/GET_CLASS's class_idx operand.
	Classes map[*ast.Class]int
}

func newResolution() *Resolution {
	return &Resolution{
		Idents:  make(map[*ast.Ident]Symbol),
		Scopes:  make(map[ast.Node]*ScopeInfo),
		Classes: make(map[*ast.Class]int),
	}
}

type resolver struct {
	file  *token.File
	errs  token.ErrorList
	table *SymbolTable
	res   *Resolution

	nextClassIndex int
}

// Resolve walks prog, assigning every name reference a Symbol. It returns
// the accumulated Resolution even on error, so callers that want partial
// results (e.g. a REPL after a failed statement) can still inspect it; err
// is non-nil iff at least one name failed to resolve.
func Resolve(file *token.File, prog *ast.Program) (*Resolution, error) {
	r := &resolver{
		file:  file,
		table: NewGlobalSymbolTable(),
		res:   newResolution(),
	}
	for _, s := range prog.Stmts {
		r.resolveStmt(s)
	}
	if r.errs.Len() == 0 {
		return r.res, nil
	}
	return r.res, r.errs.Err()
}

func (r *resolver) errorf(pos token.Pos, format string, args ...any) {
	r.errs.Add(r.file.Position(pos), fmt.Sprintf(format, args...))
}

func (r *resolver) define(id *ast.Ident) Symbol {
	sym := r.table.Define(id.Name)
	r.res.Idents[id] = sym
	return sym
}

func (r *resolver) reference(id *ast.Ident) {
	sym, ok := r.table.Resolve(id.Name)
	if !ok {
		start, _ := id.Span()
		r.errorf(start, "undefined name: %s", id.Name)
		return
	}
	r.res.Idents[id] = sym
}

// enterScope pushes a new table, runs fn, records the resulting ScopeInfo
// under key, and pops back to the enclosing table.
func (r *resolver) enterScope(key ast.Node, isFunctionBoundary bool, fn func()) {
	outer := r.table
	r.table = outer.NewEnclosedSymbolTable(isFunctionBoundary)
	fn()
	r.res.Scopes[key] = &ScopeInfo{
		NumLocals:   r.table.NumDefinitions(),
		FreeSymbols: r.table.FreeSymbols,
	}
	r.table = outer
}

func (r *resolver) resolveStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.Let:
		r.resolveExpr(n.Value)
		r.define(n.Name)

	case *ast.Assign:
		switch t := n.Target.(type) {
		case *ast.Ident:
			r.reference(t)
		default:
			r.resolveExpr(n.Target)
		}
		r.resolveExpr(n.Value)

	case *ast.Return:
		if n.Value != nil {
			r.resolveExpr(n.Value)
		}

	case *ast.ExprStmt:
		r.resolveExpr(n.X)

	case *ast.Block:
		r.enterScope(n, false, func() {
			for _, stmt := range n.Stmts {
				r.resolveStmt(stmt)
			}
		})

	case *ast.While:
		r.resolveExpr(n.Cond)
		r.enterScope(n.Body, false, func() {
			for _, stmt := range n.Body.Stmts {
				r.resolveStmt(stmt)
			}
		})

	case *ast.For:
		r.resolveExpr(n.Iterable)
		r.enterScope(n.Body, false, func() {
			r.define(n.Var)
			for _, stmt := range n.Body.Stmts {
				r.resolveStmt(stmt)
			}
		})

	case *ast.Break, *ast.Continue:
		// no names to resolve

	case *ast.Class:
		idx := r.nextClassIndex
		r.nextClassIndex++
		r.table.DefineClass(n.Name.Name, idx)
		r.res.Idents[n.Name] = Symbol{Name: n.Name.Name, Scope: CLASS, Index: idx}
		r.res.Classes[n] = idx
		if n.Ctor != nil {
			r.resolveMethod(n.Ctor)
		}
		for _, m := range n.Methods {
			r.resolveMethod(m)
		}

	default:
		panic(fmt.Sprintf("resolver: unhandled statement type %T", s))
	}
}

func (r *resolver) resolveMethod(m *ast.Method) {
	r.resolveFuncLit(m.Fn)
}

func (r *resolver) resolveFuncLit(fn *ast.FuncLit) {
	r.enterScope(fn, true, func() {
		if fn.Name != "" {
			r.table.DefineFunctionName(fn.Name)
		}
		for _, p := range fn.Params {
			r.define(p)
		}
		for _, stmt := range fn.Body.Stmts {
			r.resolveStmt(stmt)
		}
	})
}

func (r *resolver) resolveExpr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.Ident:
		r.reference(n)

	case *ast.This, *ast.IntLit, *ast.StrLit, *ast.BoolLit, *ast.NullLit:
		// no names to resolve

	case *ast.ArrayLit:
		for _, el := range n.Elems {
			r.resolveExpr(el)
		}

	case *ast.HashLit:
		for _, kv := range n.Pairs {
			r.resolveExpr(kv.Key)
			r.resolveExpr(kv.Value)
		}

	case *ast.FuncLit:
		r.resolveFuncLit(n)

	case *ast.Prefix:
		r.resolveExpr(n.Right)

	case *ast.Infix:
		r.resolveExpr(n.Left)
		r.resolveExpr(n.Right)

	case *ast.Index:
		r.resolveExpr(n.Left)
		r.resolveExpr(n.Index)

	case *ast.Get:
		// Property is a field/method name resolved dynamically at
		// runtime (GET_ATTR), not through the symbol table.
		r.resolveExpr(n.Object)

	case *ast.If:
		for _, b := range n.Branches {
			r.resolveExpr(b.Cond)
			r.enterScope(b.Block, false, func() {
				for _, stmt := range b.Block.Stmts {
					r.resolveStmt(stmt)
				}
			})
		}
		if n.Else != nil {
			r.enterScope(n.Else, false, func() {
				for _, stmt := range n.Else.Stmts {
					r.resolveStmt(stmt)
				}
			})
		}

	case *ast.Call:
		r.resolveExpr(n.Fn)
		for _, a := range n.Args {
			r.resolveExpr(a)
		}

	default:
		panic(fmt.Sprintf("resolver: unhandled expression type %T", e))
	}
}
