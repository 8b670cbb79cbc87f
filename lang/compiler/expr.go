package compiler

import (
	"fmt"

	"github.com/smog-lang/smog/lang/ast"
	"github.com/smog-lang/smog/lang/resolver"
	"github.com/smog-lang/smog/lang/token"
	"github.com/smog-lang/smog/lang/vm"
)

func (c *Compiler) compileExpr(e ast.Expr) error {
	switch n := e.(type) {
	case *ast.Ident:
		return c.compileIdentRead(n)

	case *ast.This:
		c.emit(vm.GET_INSTANCE)
		return nil

	case *ast.IntLit:
		idx := c.addConstant(vm.Int(n.Value))
		c.emit(vm.CONST, idx)
		return nil

	case *ast.StrLit:
		idx := c.addConstant(vm.String(n.Value))
		c.emit(vm.CONST, idx)
		return nil

	case *ast.BoolLit:
		if n.Value {
			c.emit(vm.TRUE)
		} else {
			c.emit(vm.FALSE)
		}
		return nil

	case *ast.NullLit:
		c.emit(vm.NULL)
		return nil

	case *ast.ArrayLit:
		for _, el := range n.Elems {
			if err := c.compileExpr(el); err != nil {
				return err
			}
		}
		c.emit(vm.ARRAY, len(n.Elems))
		return nil

	case *ast.HashLit:
		for _, kv := range n.Pairs {
			if err := c.compileExpr(kv.Key); err != nil {
				return err
			}
			if err := c.compileExpr(kv.Value); err != nil {
				return err
			}
		}
		c.emit(vm.HASH, len(n.Pairs))
		return nil

	case *ast.FuncLit:
		return c.compileFuncLit(n)

	case *ast.Prefix:
		return c.compilePrefix(n)

	case *ast.Infix:
		return c.compileInfix(n)

	case *ast.Index:
		if err := c.compileExpr(n.Left); err != nil {
			return err
		}
		if err := c.compileExpr(n.Index); err != nil {
			return err
		}
		c.emit(vm.INDEX)
		return nil

	case *ast.Get:
		if err := c.compileExpr(n.Object); err != nil {
			return err
		}
		nameIdx := c.addConstant(vm.String(n.Property.Name))
		c.emit(vm.GET_ATTR, nameIdx)
		return nil

	case *ast.If:
		return c.compileIf(n)

	case *ast.Call:
		return c.compileCall(n)

	default:
		return fmt.Errorf("compiler: unhandled expression type %T", e)
	}
}

func (c *Compiler) compilePrefix(n *ast.Prefix) error {
	if err := c.compileExpr(n.Right); err != nil {
		return err
	}
	switch n.Op {
	case token.MINUS:
		c.emit(vm.MINUS)
	case token.NOT, token.BANG:
		c.emit(vm.NOT)
	default:
		return fmt.Errorf("compiler: unsupported prefix operator %s", n.Op)
	}
	return nil
}

// compileInfix follows spec.md's rule that `<`/`<=` have no dedicated
// opcode: they're compiled by swapping operand order and using GT/GTEQ, so
// the VM's binary-comparison set stays minimal.
func (c *Compiler) compileInfix(n *ast.Infix) error {
	if n.Op == token.LT || n.Op == token.LE {
		if err := c.compileExpr(n.Right); err != nil {
			return err
		}
		if err := c.compileExpr(n.Left); err != nil {
			return err
		}
		if n.Op == token.LT {
			c.emit(vm.GT)
		} else {
			c.emit(vm.GTEQ)
		}
		return nil
	}

	if n.Op == token.AND {
		return c.compileAnd(n)
	}
	if n.Op == token.OR {
		return c.compileOr(n)
	}
	if n.Op == token.IN {
		return c.compileIn(n, false)
	}
	if n.Op == token.NOTIN {
		return c.compileIn(n, true)
	}

	if err := c.compileExpr(n.Left); err != nil {
		return err
	}
	if err := c.compileExpr(n.Right); err != nil {
		return err
	}
	switch n.Op {
	case token.PLUS:
		c.emit(vm.ADD)
	case token.MINUS:
		c.emit(vm.SUB)
	case token.STAR:
		c.emit(vm.MUL)
	case token.SLASH:
		c.emit(vm.DIV)
	case token.EQEQ:
		c.emit(vm.EQ)
	case token.NEQ:
		c.emit(vm.NEQ)
	case token.GT:
		c.emit(vm.GT)
	case token.GE:
		c.emit(vm.GTEQ)
	default:
		return fmt.Errorf("compiler: unsupported infix operator %s", n.Op)
	}
	return nil
}

// compileAnd/compileOr give `and`/`or` their short-circuit semantics: the
// right operand is only evaluated (and its bytecode only executed) when
// the left doesn't already decide the result. JUMP_NOT_TRUE consumes the
// condition it tests, so the result is pushed afresh: FALSE/TRUE when the
// left operand decides it, else the right operand's truthiness as a BOOL
// (NOT NOT), the same values the tree-walking evaluator produces.
func (c *Compiler) compileAnd(n *ast.Infix) error {
	if err := c.compileExpr(n.Left); err != nil {
		return err
	}
	jumpShortCircuit := c.emit(vm.JUMP_NOT_TRUE, 9999)
	if err := c.compileExpr(n.Right); err != nil {
		return err
	}
	c.emit(vm.NOT)
	c.emit(vm.NOT)
	jumpToEnd := c.emit(vm.JUMP, 9999)
	c.replaceOperand(jumpShortCircuit, vm.JUMP_NOT_TRUE, c.currentPos())
	c.emit(vm.FALSE)
	c.replaceOperand(jumpToEnd, vm.JUMP, c.currentPos())
	return nil
}

func (c *Compiler) compileOr(n *ast.Infix) error {
	if err := c.compileExpr(n.Left); err != nil {
		return err
	}
	jumpIfFalse := c.emit(vm.JUMP_NOT_TRUE, 9999)
	c.emit(vm.TRUE)
	jumpToEnd := c.emit(vm.JUMP, 9999)
	c.replaceOperand(jumpIfFalse, vm.JUMP_NOT_TRUE, c.currentPos())
	if err := c.compileExpr(n.Right); err != nil {
		return err
	}
	c.emit(vm.NOT)
	c.emit(vm.NOT)
	c.replaceOperand(jumpToEnd, vm.JUMP, c.currentPos())
	return nil
}

// compileIn has no dedicated opcode to lean on (the opcode table is closed,
// spec.md's bytecode section), so `left in right`/`left notin right` compile
// to an inline scan over right's iterator: ITER once, then a small
// EQ-against-each-element loop built from ITER_HAS_NEXT/ITER_NEXT/JUMP_NOT_TRUE,
// the same primitives a for-loop uses, without the overhead of a LOOPCALL
// frame since membership testing has no break/continue to support.
func (c *Compiler) compileIn(n *ast.Infix, negate bool) error {
	if err := c.compileExpr(n.Right); err != nil {
		return err
	}
	c.emit(vm.ITER)

	loopCheck := c.currentPos()
	c.emit(vm.ITER_HAS_NEXT)
	jumpNotFound := c.emit(vm.JUMP_NOT_TRUE, 9999)

	c.emit(vm.ITER_NEXT)
	if err := c.compileExpr(n.Left); err != nil {
		return err
	}
	c.emit(vm.EQ)
	c.emit(vm.JUMP_NOT_TRUE, loopCheck)

	// found: pop the iterator, push the membership result
	c.emit(vm.POP)
	if negate {
		c.emit(vm.FALSE)
	} else {
		c.emit(vm.TRUE)
	}
	jumpEnd := c.emit(vm.JUMP, 9999)

	c.replaceOperand(jumpNotFound, vm.JUMP_NOT_TRUE, c.currentPos())
	c.emit(vm.POP)
	if negate {
		c.emit(vm.TRUE)
	} else {
		c.emit(vm.FALSE)
	}

	c.replaceOperand(jumpEnd, vm.JUMP, c.currentPos())
	return nil
}

func (c *Compiler) compileCall(n *ast.Call) error {
	if err := c.compileExpr(n.Fn); err != nil {
		return err
	}
	for _, a := range n.Args {
		if err := c.compileExpr(a); err != nil {
			return err
		}
	}
	c.emit(vm.CALL, len(n.Args))
	return nil
}

// compileIf compiles an if/elif/else chain as a sequence of BLOCKCALL'd
// branch closures, exactly the way a function call produces a value: each
// branch's Block is compiled in its own scope and always yields a value
// via BLOCKRETURN (spec.md §4.4), so `if` reads uniformly as an expression
// whether or not the caller keeps the result.
func (c *Compiler) compileIf(n *ast.If) error {
	var endJumps []int
	for _, branch := range n.Branches {
		if err := c.compileExpr(branch.Cond); err != nil {
			return err
		}
		jumpToNext := c.emit(vm.JUMP_NOT_TRUE, 9999)
		if err := c.compileBranchClosure(branch.Block); err != nil {
			return err
		}
		endJumps = append(endJumps, c.emit(vm.JUMP, 9999))
		c.replaceOperand(jumpToNext, vm.JUMP_NOT_TRUE, c.currentPos())
	}
	if n.Else != nil {
		if err := c.compileBranchClosure(n.Else); err != nil {
			return err
		}
	} else {
		c.emit(vm.NULL)
	}
	endPos := c.currentPos()
	for _, pos := range endJumps {
		c.replaceOperand(pos, vm.JUMP, endPos)
	}
	return nil
}

// compileBranchClosure compiles block as a standalone closure whose body
// always ends in BLOCKRETURN, then emits the CLOSURE+BLOCKCALL pair that
// invokes it in place, leaving its value on the stack.
func (c *Compiler) compileBranchClosure(block *ast.Block) error {
	info := c.res.Scopes[block]
	c.enterScope()
	if err := c.compileStmts(block.Stmts); err != nil {
		return err
	}
	c.rewriteTrailingPopAsBlockReturn()
	ins := c.leaveScope()

	fn := &vm.CompiledFunction{Instructions: ins, NumLocals: info.NumLocals}
	constIdx := c.addConstant(fn)
	if err := c.loadFreeSymbols(info.FreeSymbols); err != nil {
		return err
	}
	c.emit(vm.CLOSURE, constIdx, len(info.FreeSymbols))
	c.emit(vm.BLOCKCALL)
	return nil
}

// rewriteTrailingPopAsBlockReturn turns a block's final "value; POP" into
// "value; BLOCKRETURN" so the block yields its last expression's value
// instead of discarding it; an empty or non-expression-ending block
// instead gets an explicit NULL to return.
func (c *Compiler) rewriteTrailingPopAsBlockReturn() {
	ins := c.scope.instructions
	if len(ins) > 0 && vm.Op(ins[len(ins)-1]) == vm.POP {
		c.scope.instructions[len(ins)-1] = byte(vm.BLOCKRETURN)
		return
	}
	c.emit(vm.NULL)
	c.emit(vm.BLOCKRETURN)
}

func (c *Compiler) loadFreeSymbols(syms []resolver.Symbol) error {
	for _, sym := range syms {
		if err := c.compileIdentReadSymbol(sym); err != nil {
			return err
		}
	}
	return nil
}
