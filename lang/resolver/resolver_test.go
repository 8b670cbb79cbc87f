package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smog-lang/smog/lang/ast"
	"github.com/smog-lang/smog/lang/parser"
	"github.com/smog-lang/smog/lang/resolver"
	"github.com/smog-lang/smog/lang/token"
)

func parseProgram(t *testing.T, src string) (*token.File, *ast.Program) {
	t.Helper()
	file, prog, err := parser.Parse("test.smog", []byte(src))
	require.NoError(t, err)
	return file, prog
}

func TestResolveGlobalLet(t *testing.T) {
	file, prog := parseProgram(t, `let a = 1; let b = a + 1;`)
	res, err := resolver.Resolve(file, prog)
	require.NoError(t, err)

	letA := prog.Stmts[0].(*ast.Let)
	symA, ok := res.Idents[letA.Name]
	require.True(t, ok)
	assert.Equal(t, resolver.GLOBAL, symA.Scope)
	assert.Equal(t, 0, symA.Index)

	letB := prog.Stmts[1].(*ast.Let)
	ref := letB.Value.(*ast.Infix).Left.(*ast.Ident)
	symRef, ok := res.Idents[ref]
	require.True(t, ok)
	assert.Equal(t, resolver.GLOBAL, symRef.Scope)
	assert.Equal(t, 0, symRef.Index)
}

func TestResolveUndefinedNameIsError(t *testing.T) {
	file, prog := parseProgram(t, `let a = b;`)
	_, err := resolver.Resolve(file, prog)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undefined name: b")
}

func TestResolveFunctionParamsAreLocal(t *testing.T) {
	file, prog := parseProgram(t, `let add = fn(a, b) { a + b };`)
	res, err := resolver.Resolve(file, prog)
	require.NoError(t, err)

	letAdd := prog.Stmts[0].(*ast.Let)
	fn := letAdd.Value.(*ast.FuncLit)

	symA, ok := res.Idents[fn.Params[0]]
	require.True(t, ok)
	assert.Equal(t, resolver.LOCAL, symA.Scope)
	assert.Equal(t, 0, symA.Index)

	symB, ok := res.Idents[fn.Params[1]]
	require.True(t, ok)
	assert.Equal(t, resolver.LOCAL, symB.Scope)
	assert.Equal(t, 1, symB.Index)

	info, ok := res.Scopes[fn]
	require.True(t, ok)
	assert.Equal(t, 2, info.NumLocals)
	assert.Empty(t, info.FreeSymbols)
}

func TestResolveClosureCapturesFree(t *testing.T) {
	file, prog := parseProgram(t, `
		let newAdder = fn(a) {
			fn(b) { a + b }
		};
	`)
	res, err := resolver.Resolve(file, prog)
	require.NoError(t, err)

	outer := prog.Stmts[0].(*ast.Let).Value.(*ast.FuncLit)
	inner := outer.Body.Stmts[0].(*ast.ExprStmt).X.(*ast.FuncLit)

	innerInfo, ok := res.Scopes[inner]
	require.True(t, ok)
	require.Len(t, innerInfo.FreeSymbols, 1)
	assert.Equal(t, resolver.LOCAL, innerInfo.FreeSymbols[0].Scope)
	assert.Equal(t, 0, innerInfo.FreeSymbols[0].Index)

	aRef := inner.Body.Stmts[0].(*ast.ExprStmt).X.(*ast.Infix).Left.(*ast.Ident)
	symA, ok := res.Idents[aRef]
	require.True(t, ok)
	assert.Equal(t, resolver.FREE, symA.Scope)
	assert.Equal(t, 0, symA.Index)
}

func TestResolveIfBranchReadsOuterLocalAsBlock(t *testing.T) {
	file, prog := parseProgram(t, `
		let f = fn(n) {
			let a = 1;
			if (n) {
				a = 2;
			}
			a;
		};
	`)
	res, err := resolver.Resolve(file, prog)
	require.NoError(t, err)

	fn := prog.Stmts[0].(*ast.Let).Value.(*ast.FuncLit)
	ifStmt := fn.Body.Stmts[1].(*ast.ExprStmt).X.(*ast.If)
	branch := ifStmt.Branches[0]
	assign := branch.Block.Stmts[0].(*ast.Assign)
	target := assign.Target.(*ast.Ident)

	symA, ok := res.Idents[target]
	require.True(t, ok)
	assert.Equal(t, resolver.BLOCK, symA.Scope)
	assert.Equal(t, 1, symA.Depth)
	assert.Equal(t, 1, symA.Index)

	info, ok := res.Scopes[branch.Block]
	require.True(t, ok)
	assert.Empty(t, info.FreeSymbols, "block scopes reach outward by frame depth, not free capture")
}

func TestResolveRecursiveFunctionName(t *testing.T) {
	file, prog := parseProgram(t, `
		let fib = fn fib(n) {
			if (n) {
				fib(n);
			}
			n;
		};
	`)
	res, err := resolver.Resolve(file, prog)
	require.NoError(t, err)

	fn := prog.Stmts[0].(*ast.Let).Value.(*ast.FuncLit)
	ifStmt := fn.Body.Stmts[0].(*ast.ExprStmt).X.(*ast.If)
	branch := ifStmt.Branches[0]
	call := branch.Block.Stmts[0].(*ast.ExprStmt).X.(*ast.Call)
	callee := call.Fn.(*ast.Ident)

	sym, ok := res.Idents[callee]
	require.True(t, ok)
	assert.Equal(t, resolver.FREE, sym.Scope, "own name read from a nested block is captured like any other free value")
}

func TestResolveForLoopVarIsLocalToBody(t *testing.T) {
	file, prog := parseProgram(t, `
		let xs = [1, 2, 3];
		for (x in xs) {
			print(x);
		}
	`)
	res, err := resolver.Resolve(file, prog)
	require.NoError(t, err)

	forStmt := prog.Stmts[1].(*ast.For)
	call := forStmt.Body.Stmts[0].(*ast.ExprStmt).X.(*ast.Call)
	arg := call.Args[0].(*ast.Ident)

	sym, ok := res.Idents[arg]
	require.True(t, ok)
	assert.Equal(t, resolver.LOCAL, sym.Scope)
	assert.Equal(t, 0, sym.Index)

	printSym, ok := res.Idents[call.Fn.(*ast.Ident)]
	require.True(t, ok)
	assert.Equal(t, resolver.BUILTIN, printSym.Scope)
}

func TestResolveClassNameIsClassScope(t *testing.T) {
	file, prog := parseProgram(t, `
		class Counter {
			constructor() {
				this.n = 0;
			}
			bump() {
				this.n;
			}
		}
		let c = Counter();
	`)
	res, err := resolver.Resolve(file, prog)
	require.NoError(t, err)

	class := prog.Stmts[0].(*ast.Class)
	idx, ok := res.Classes[class]
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	letC := prog.Stmts[1].(*ast.Let)
	call := letC.Value.(*ast.Call)
	callee := call.Fn.(*ast.Ident)
	sym, ok := res.Idents[callee]
	require.True(t, ok)
	assert.Equal(t, resolver.CLASS, sym.Scope)
	assert.Equal(t, idx, sym.Index)
}
