package parser

import (
	"github.com/smog-lang/smog/lang/ast"
	"github.com/smog-lang/smog/lang/token"
)

func (p *parser) parseStmt() ast.Stmt {
	switch p.tok {
	case token.LET:
		return p.parseLetStmt()
	case token.RETURN:
		return p.parseReturnStmt()
	case token.BREAK:
		pos := p.expect(token.BREAK)
		p.expect(token.SEMI)
		return &ast.Break{Pos: pos}
	case token.CONTINUE:
		pos := p.expect(token.CONTINUE)
		p.expect(token.SEMI)
		return &ast.Continue{Pos: pos}
	case token.WHILE:
		return p.parseWhileStmt()
	case token.FOR:
		return p.parseForStmt()
	case token.CLASS:
		return p.parseClassStmt()
	case token.LBRACE:
		return p.parseBlock()
	default:
		return p.parseExprOrAssignStmt()
	}
}

func (p *parser) parseLetStmt() *ast.Let {
	letPos := p.expect(token.LET)
	name := p.parseIdent()
	p.expect(token.EQ)
	val := p.parseExpr()
	p.expect(token.SEMI)
	if fn, ok := val.(*ast.FuncLit); ok && fn.Name == "" {
		// spec.md §4.2: a function literal bound directly by `let` takes
		// the bound name, so the body can recurse through it by name.
		fn.Name = name.Name
	}
	return &ast.Let{LetPos: letPos, Name: name, Value: val}
}

func (p *parser) parseReturnStmt() *ast.Return {
	pos := p.expect(token.RETURN)
	var val ast.Expr
	if p.tok != token.SEMI {
		val = p.parseExpr()
	}
	p.expect(token.SEMI)
	return &ast.Return{ReturnPos: pos, Value: val}
}

func (p *parser) parseWhileStmt() *ast.While {
	pos := p.expect(token.WHILE)
	p.expect(token.LPAREN)
	cond := p.parseExpr()
	p.expect(token.RPAREN)
	body := p.parseBlock()
	return &ast.While{WhilePos: pos, Cond: cond, Body: body}
}

func (p *parser) parseForStmt() *ast.For {
	pos := p.expect(token.FOR)
	p.expect(token.LPAREN)
	v := p.parseIdent()
	p.expect(token.IN)
	iter := p.parseExpr()
	p.expect(token.RPAREN)
	body := p.parseBlock()
	return &ast.For{ForPos: pos, Var: v, Iterable: iter, Body: body}
}

// parseExprOrAssignStmt parses an expression; if it is immediately followed
// by '=' it is reinterpreted as an assignment target (spec.md §4.2: Assign
// targets are restricted to Ident | Index | Get, checked here rather than
// by speculative backtracking, since smog has no multi-target assignment).
// The terminating ';' may be left out before a closing '}' or at end of
// input, and after a statement whose last expression is an if expression or
// a function literal.
func (p *parser) parseExprOrAssignStmt() ast.Stmt {
	expr := p.parseExpr()
	var stmt ast.Stmt = &ast.ExprStmt{X: expr}
	last := expr
	if p.tok == token.EQ {
		if !ast.IsAssignable(expr) {
			start, _ := expr.Span()
			p.errorExpected(start, "assignable expression")
		}
		eq := p.expect(token.EQ)
		val := p.parseExpr()
		stmt = &ast.Assign{Target: expr, Eq: eq, Value: val}
		last = val
	}
	_, isIf := last.(*ast.If)
	_, isFn := last.(*ast.FuncLit)
	if p.tok == token.SEMI || !(isIf || isFn || p.tok == token.RBRACE || p.tok == token.EOF) {
		p.expect(token.SEMI)
	}
	return stmt
}

func (p *parser) parseClassStmt() *ast.Class {
	classPos := p.expect(token.CLASS)
	name := p.parseIdent()
	p.expect(token.LBRACE)

	var ctor *ast.Method
	var methods []*ast.Method
	for p.tok != token.RBRACE && p.tok != token.EOF {
		methodName := p.parseIdent()
		fn := p.parseMethodBody(methodName.Name)
		m := &ast.Method{Name: methodName, Fn: fn}
		if methodName.Name == "constructor" {
			ctor = m
		} else {
			methods = append(methods, m)
		}
	}
	rbrace := p.expect(token.RBRACE)
	return &ast.Class{ClassPos: classPos, Name: name, Ctor: ctor, Methods: methods, Rbrace: rbrace}
}

// parseMethodBody parses a class method's `(params) { body }`, reusing
// FuncLit as the method's underlying function node (spec.md §3: methods and
// the constructor compile like ordinary functions bound to an instance).
func (p *parser) parseMethodBody(name string) *ast.FuncLit {
	fnPos := p.val.Pos
	p.expect(token.LPAREN)
	var params []*ast.Ident
	for p.tok != token.RPAREN && p.tok != token.EOF {
		params = append(params, p.parseIdent())
		if p.tok != token.COMMA {
			break
		}
		p.expect(token.COMMA)
	}
	p.expect(token.RPAREN)
	body := p.parseBlock()
	return &ast.FuncLit{FnPos: fnPos, Name: name, Params: params, Body: body}
}
