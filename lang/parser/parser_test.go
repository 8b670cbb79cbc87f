package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smog-lang/smog/lang/ast"
	"github.com/smog-lang/smog/lang/parser"
)

func TestParseLetAndExprPrecedence(t *testing.T) {
	_, prog, err := parser.Parse("t.smog", []byte(`let x = 1 + 2 * 3;`))
	require.NoError(t, err)
	require.Len(t, prog.Stmts, 1)
	let := prog.Stmts[0].(*ast.Let)
	assert.Equal(t, "x", let.Name.Name)
	assert.Equal(t, "(1 + (2 * 3))", let.Value.String())
}

func TestParseUnaryBindsTighterThanBinary(t *testing.T) {
	_, prog, err := parser.Parse("t.smog", []byte(`-a * b;`))
	require.NoError(t, err)
	stmt := prog.Stmts[0].(*ast.ExprStmt)
	assert.Equal(t, "((-a) * b)", stmt.X.String())
}

func TestParseAssignToIndexAndGet(t *testing.T) {
	_, prog, err := parser.Parse("t.smog", []byte(`a[0] = 1; a.b = 2;`))
	require.NoError(t, err)
	require.Len(t, prog.Stmts, 2)

	a1 := prog.Stmts[0].(*ast.Assign)
	_, ok := a1.Target.(*ast.Index)
	assert.True(t, ok)

	a2 := prog.Stmts[1].(*ast.Assign)
	_, ok = a2.Target.(*ast.Get)
	assert.True(t, ok)
}

func TestParseIfElifElseExpression(t *testing.T) {
	_, prog, err := parser.Parse("t.smog", []byte(`
		let x = if (a) { 1 } elif (b) { 2 } else { 3 };
	`))
	require.NoError(t, err)
	let := prog.Stmts[0].(*ast.Let)
	ifExpr := let.Value.(*ast.If)
	assert.Len(t, ifExpr.Branches, 2)
	require.NotNil(t, ifExpr.Else)
}

func TestParseWhileAndFor(t *testing.T) {
	_, prog, err := parser.Parse("t.smog", []byte(`
		while (true) { break; }
		for (x in xs) { continue; }
	`))
	require.NoError(t, err)
	require.Len(t, prog.Stmts, 2)
	w := prog.Stmts[0].(*ast.While)
	assert.IsType(t, &ast.Break{}, w.Body.Stmts[0])
	f := prog.Stmts[1].(*ast.For)
	assert.Equal(t, "x", f.Var.Name)
	assert.IsType(t, &ast.Continue{}, f.Body.Stmts[0])
}

func TestParseFuncLitNamedAndAnonymous(t *testing.T) {
	_, prog, err := parser.Parse("t.smog", []byte(`
		let f = fn(a, b) { return a + b; };
		let g = fn fact(n) { return n; };
	`))
	require.NoError(t, err)
	f := prog.Stmts[0].(*ast.Let).Value.(*ast.FuncLit)
	assert.Equal(t, "f", f.Name)
	assert.Len(t, f.Params, 2)

	g := prog.Stmts[1].(*ast.Let).Value.(*ast.FuncLit)
	assert.Equal(t, "fact", g.Name)
}

func TestParseClassWithConstructorAndMethods(t *testing.T) {
	_, prog, err := parser.Parse("t.smog", []byte(`
		class Counter {
			constructor(start) {
				this.n = start;
			}
			bump() {
				this.n = this.n + 1;
			}
		}
	`))
	require.NoError(t, err)
	class := prog.Stmts[0].(*ast.Class)
	assert.Equal(t, "Counter", class.Name.Name)
	require.NotNil(t, class.Ctor)
	assert.Len(t, class.Ctor.Fn.Params, 1)
	require.Len(t, class.Methods, 1)
	assert.Equal(t, "bump", class.Methods[0].Name.Name)
}

func TestParseCallChainAndIndexing(t *testing.T) {
	_, prog, err := parser.Parse("t.smog", []byte(`f(1, 2)[0].x;`))
	require.NoError(t, err)
	stmt := prog.Stmts[0].(*ast.ExprStmt)
	get := stmt.X.(*ast.Get)
	assert.Equal(t, "x", get.Property.Name)
	idx := get.Object.(*ast.Index)
	call := idx.Left.(*ast.Call)
	assert.Len(t, call.Args, 2)
}

func TestParseErrorsAccumulateAcrossStatements(t *testing.T) {
	_, _, err := parser.Parse("t.smog", []byte(`let = 1; let y = ;`))
	require.Error(t, err)
}

func TestParseHashLiteral(t *testing.T) {
	_, prog, err := parser.Parse("t.smog", []byte(`let h = {"a": 1, "b": 2};`))
	require.NoError(t, err)
	hash := prog.Stmts[0].(*ast.Let).Value.(*ast.HashLit)
	assert.Len(t, hash.Pairs, 2)
}
