package parser

import (
	"strconv"

	"github.com/smog-lang/smog/lang/ast"
	"github.com/smog-lang/smog/lang/token"
)

// binopPriority gives the left/right binding power of every infix operator,
// ranked loosest to tightest: or < and < equality < comparison/membership <
// sum < product. Precedence climbing recurses with the right power so that
// same-priority operators associate left, per spec.md §4.2 and §8's
// parenthesization property.
var binopPriority = map[token.Token][2]int{
	token.OR:    {1, 1},
	token.AND:   {2, 2},
	token.EQEQ:  {3, 3},
	token.NEQ:   {3, 3},
	token.LT:    {4, 4},
	token.LE:    {4, 4},
	token.GT:    {4, 4},
	token.GE:    {4, 4},
	token.IN:    {4, 4},
	token.NOTIN: {4, 4},
	token.PLUS:  {5, 5},
	token.MINUS: {5, 5},
	token.STAR:  {6, 6},
	token.SLASH: {6, 6},
}

const unopPriority = 7

func (p *parser) parseExpr() ast.Expr {
	return p.parseSubExpr(0)
}

func (p *parser) parseSubExpr(priority int) ast.Expr {
	var left ast.Expr
	if p.tok == token.MINUS || p.tok == token.BANG || p.tok == token.NOT {
		opPos, op := p.val.Pos, p.tok
		p.advance()
		left = &ast.Prefix{OpPos: opPos, Op: op, Right: p.parseSubExpr(unopPriority)}
	} else {
		left = p.parseSuffixedExpr()
	}

	for {
		bp, ok := binopPriority[p.tok]
		if !ok || bp[0] <= priority {
			break
		}
		opPos, op := p.val.Pos, p.tok
		p.advance()
		right := p.parseSubExpr(bp[1])
		left = &ast.Infix{Left: left, OpPos: opPos, Op: op, Right: right}
	}
	return left
}

// parseSuffixedExpr parses a primary expression followed by any run of
// call/index/attribute suffixes.
func (p *parser) parseSuffixedExpr() ast.Expr {
	e := p.parsePrimaryExpr()
	for {
		switch p.tok {
		case token.DOT:
			dot := p.expect(token.DOT)
			prop := p.parseIdent()
			e = &ast.Get{Object: e, Dot: dot, Property: prop}
		case token.LBRACK:
			lbrack := p.expect(token.LBRACK)
			idx := p.parseExpr()
			rbrack := p.expect(token.RBRACK)
			e = &ast.Index{Left: e, Lbrack: lbrack, Index: idx, Rbrack: rbrack}
		case token.LPAREN:
			e = p.parseCallExpr(e)
		default:
			return e
		}
	}
}

func (p *parser) parseCallExpr(fn ast.Expr) *ast.Call {
	lparen := p.expect(token.LPAREN)
	var args []ast.Expr
	for p.tok != token.RPAREN && p.tok != token.EOF {
		args = append(args, p.parseExpr())
		if p.tok != token.COMMA {
			break
		}
		p.expect(token.COMMA)
	}
	rparen := p.expect(token.RPAREN)
	return &ast.Call{Fn: fn, Lparen: lparen, Args: args, Rparen: rparen}
}

func (p *parser) parseIdent() *ast.Ident {
	pos, name := p.val.Pos, p.val.Raw
	p.expect(token.IDENT)
	return &ast.Ident{NamePos: pos, Name: name}
}

func (p *parser) parsePrimaryExpr() ast.Expr {
	switch p.tok {
	case token.IDENT:
		return p.parseIdent()
	case token.THIS:
		pos := p.expect(token.THIS)
		return &ast.This{Pos: pos}
	case token.INT:
		pos, raw := p.val.Pos, p.val.Raw
		p.expect(token.INT)
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			p.error(pos, "invalid integer literal: "+raw)
		}
		return &ast.IntLit{ValuePos: pos, Raw: raw, Value: v}
	case token.STR:
		pos, raw, val := p.val.Pos, p.val.Raw, p.val.Str
		p.expect(token.STR)
		return &ast.StrLit{ValuePos: pos, Raw: raw, Value: val}
	case token.TRUE:
		pos := p.expect(token.TRUE)
		return &ast.BoolLit{ValuePos: pos, Value: true}
	case token.FALSE:
		pos := p.expect(token.FALSE)
		return &ast.BoolLit{ValuePos: pos, Value: false}
	case token.NULL:
		pos := p.expect(token.NULL)
		return &ast.NullLit{ValuePos: pos}
	case token.LPAREN:
		p.expect(token.LPAREN)
		e := p.parseExpr()
		p.expect(token.RPAREN)
		return e
	case token.LBRACK:
		return p.parseArrayLit()
	case token.LBRACE:
		return p.parseHashLit()
	case token.FN:
		return p.parseFuncLit()
	case token.IF:
		return p.parseIfExpr()
	default:
		pos := p.val.Pos
		p.errorExpected(pos, "expression")
		panic(errPanicMode)
	}
}

func (p *parser) parseArrayLit() *ast.ArrayLit {
	lbrack := p.expect(token.LBRACK)
	var elems []ast.Expr
	for p.tok != token.RBRACK && p.tok != token.EOF {
		elems = append(elems, p.parseExpr())
		if p.tok != token.COMMA {
			break
		}
		p.expect(token.COMMA)
	}
	rbrack := p.expect(token.RBRACK)
	return &ast.ArrayLit{Lbrack: lbrack, Elems: elems, Rbrack: rbrack}
}

func (p *parser) parseHashLit() *ast.HashLit {
	lbrace := p.expect(token.LBRACE)
	var pairs []*ast.KeyVal
	for p.tok != token.RBRACE && p.tok != token.EOF {
		key := p.parseExpr()
		p.expect(token.COLON)
		val := p.parseExpr()
		pairs = append(pairs, &ast.KeyVal{Key: key, Value: val})
		if p.tok != token.COMMA {
			break
		}
		p.expect(token.COMMA)
	}
	rbrace := p.expect(token.RBRACE)
	return &ast.HashLit{Lbrace: lbrace, Pairs: pairs, Rbrace: rbrace}
}

func (p *parser) parseFuncLit() *ast.FuncLit {
	fnPos := p.expect(token.FN)
	var name string
	if p.tok == token.IDENT {
		name = p.val.Raw
		p.advance()
	}
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

func (p *parser) parseIfExpr() *ast.If {
	ifPos := p.expect(token.IF)
	var branches []*ast.Branch
	branches = append(branches, p.parseBranch())
	for p.tok == token.ELIF {
		p.expect(token.ELIF)
		branches = append(branches, p.parseBranch())
	}
	var els *ast.Block
	if p.tok == token.ELSE {
		p.expect(token.ELSE)
		els = p.parseBlock()
	}
	return &ast.If{IfPos: ifPos, Branches: branches, Else: els}
}

func (p *parser) parseBranch() *ast.Branch {
	p.expect(token.LPAREN)
	cond := p.parseExpr()
	p.expect(token.RPAREN)
	return &ast.Branch{Cond: cond, Block: p.parseBlock()}
}

func (p *parser) parseBlock() *ast.Block {
	lbrace := p.expect(token.LBRACE)
	var stmts []ast.Stmt
	for p.tok != token.RBRACE && p.tok != token.EOF {
		stmts = append(stmts, p.parseStmtRecover())
	}
	rbrace := p.expect(token.RBRACE)
	return &ast.Block{Lbrace: lbrace, Stmts: stmts, Rbrace: rbrace}
}
