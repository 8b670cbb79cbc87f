package compiler

import (
	"github.com/smog-lang/smog/lang/ast"
	"github.com/smog-lang/smog/lang/resolver"
	"github.com/smog-lang/smog/lang/vm"
)

// compileWhile and compileFor both compile their body as a standalone
// closure invoked once per iteration through LOOPCALL, the way
// compileBranchClosure does for if-branches via BLOCKCALL - every looping
// or branching body in this language runs as its own Frame (spec.md
// §4.4/§4.5). Unlike an if-branch, a loop body's last statement is never
// implicitly returned: falling off the end is equivalent to an explicit
// `continue;`, so the compiler appends CONTINUE rather than rewriting a
// trailing POP.
//
// LOOPCALL's calling convention is deliberately the reverse of CALL's: the
// closure is pushed *after* its arguments ("a1..an closure LOOPCALL<argc>
// -"), so whatever the loop condition left further down the stack (the
// loop's Iterator for a for-in loop) stays untouched beneath the call's
// own operands, without needing a dedicated stack-shuffling opcode.
func (c *Compiler) compileWhile(n *ast.While) error {
	constIdx, free, err := c.compileLoopBodyClosure(n.Body, nil)
	if err != nil {
		return err
	}

	loopStart := c.currentPos()
	if err := c.compileExpr(n.Cond); err != nil {
		return err
	}
	jumpEnd := c.emit(vm.JUMP_NOT_TRUE, 9999)

	if err := c.loadFreeSymbols(free); err != nil {
		return err
	}
	c.emit(vm.CLOSURE, constIdx, len(free))
	c.emit(vm.LOOPCALL, 0)
	c.emit(vm.JUMP, loopStart)

	c.replaceOperand(jumpEnd, vm.JUMP_NOT_TRUE, c.currentPos())
	return nil
}

func (c *Compiler) compileFor(n *ast.For) error {
	constIdx, free, err := c.compileLoopBodyClosure(n.Body, []*ast.Ident{n.Var})
	if err != nil {
		return err
	}

	if err := c.compileExpr(n.Iterable); err != nil {
		return err
	}
	c.emit(vm.ITER)

	loopStart := c.currentPos()
	c.emit(vm.ITER_HAS_NEXT)
	jumpEnd := c.emit(vm.JUMP_NOT_TRUE, 9999)
	c.emit(vm.ITER_NEXT)

	if err := c.loadFreeSymbols(free); err != nil {
		return err
	}
	c.emit(vm.CLOSURE, constIdx, len(free))
	c.emit(vm.LOOPCALL, 1)
	c.emit(vm.JUMP, loopStart)

	c.replaceOperand(jumpEnd, vm.JUMP_NOT_TRUE, c.currentPos())
	c.emit(vm.POP) // discard the exhausted iterator left on the stack by ITER
	return nil
}

// compileLoopBodyClosure compiles body in its own scope, ending with an
// implicit CONTINUE, and returns the constant-pool index of the resulting
// CompiledFunction plus the free symbols its enclosing CLOSURE must load.
// params names only the for-loop's own bound variable (already defined in
// body's scope by the resolver); while loops pass nil.
func (c *Compiler) compileLoopBodyClosure(body *ast.Block, params []*ast.Ident) (int, []resolver.Symbol, error) {
	info := c.res.Scopes[body]
	c.enterScope()
	if err := c.compileStmts(body.Stmts); err != nil {
		return 0, nil, err
	}
	c.emit(vm.CONTINUE)
	ins := c.leaveScope()

	fn := &vm.CompiledFunction{Instructions: ins, NumLocals: info.NumLocals, NumParams: len(params)}
	constIdx := c.addConstant(fn)
	return constIdx, info.FreeSymbols, nil
}

// compileFuncLit compiles a function literal to a CompiledFunction and
// emits CLOSURE to bind its free variables at this point in the enclosing
// code - a named literal's own name resolves as FUNCTION scope inside its
// body and is read back via CURRENT_CLOSURE (spec.md §4.3/§4.4).
func (c *Compiler) compileFuncLit(n *ast.FuncLit) error {
	info := c.res.Scopes[n]
	c.enterScope()
	if err := c.compileStmts(n.Body.Stmts); err != nil {
		return err
	}
	c.rewriteTrailingPopAsReturn()
	ins := c.leaveScope()

	fn := &vm.CompiledFunction{
		Instructions: ins,
		NumLocals:    info.NumLocals,
		NumParams:    len(n.Params),
		Name:         n.Name,
	}
	constIdx := c.addConstant(fn)
	if err := c.loadFreeSymbols(info.FreeSymbols); err != nil {
		return err
	}
	c.emit(vm.CLOSURE, constIdx, len(info.FreeSymbols))
	return nil
}

// rewriteTrailingPopAsReturn mirrors rewriteTrailingPopAsBlockReturn for
// ordinary function bodies: the last expression statement's value becomes
// the function's implicit return value.
func (c *Compiler) rewriteTrailingPopAsReturn() {
	ins := c.scope.instructions
	if len(ins) > 0 && vm.Op(ins[len(ins)-1]) == vm.POP {
		c.scope.instructions[len(ins)-1] = byte(vm.RETURN_VALUE)
		return
	}
	c.emit(vm.NULL)
	c.emit(vm.RETURN_VALUE)
}

// compileClass compiles a class declaration's constructor and methods each
// to their own CompiledFunction closure, pushing the class name and each
// method's name as a CONST immediately ahead of its CLOSURE, then emits
// DEF_CLASS: the VM pops the name+pairs this leaves on the stack and
// assembles the runtime vm.Class itself, storing it at the resolved class
// index (spec.md §4.3's CLASS scope, resolver.DefineClass; §4.4's "pushing
// its name string constant before the CLOSURE").
func (c *Compiler) compileClass(n *ast.Class) error {
	classIdx := c.res.Classes[n]

	nameIdx := c.addConstant(vm.String(n.Name.Name))
	c.emit(vm.CONST, nameIdx)

	hasCtor := 0
	if n.Ctor != nil {
		fn, free, err := c.compileMethodBody(n.Ctor.Fn)
		if err != nil {
			return err
		}
		if err := c.loadFreeSymbols(free); err != nil {
			return err
		}
		constIdx := c.addConstant(fn)
		c.emit(vm.CLOSURE, constIdx, len(free))
		hasCtor = 1
	}

	for _, m := range n.Methods {
		fn, free, err := c.compileMethodBody(m.Fn)
		if err != nil {
			return err
		}
		methodNameIdx := c.addConstant(vm.String(m.Name.Name))
		c.emit(vm.CONST, methodNameIdx)
		if err := c.loadFreeSymbols(free); err != nil {
			return err
		}
		constIdx := c.addConstant(fn)
		c.emit(vm.CLOSURE, constIdx, len(free))
	}

	c.emit(vm.DEF_CLASS, classIdx, hasCtor, len(n.Methods))
	return nil
}

func (c *Compiler) compileMethodBody(fn *ast.FuncLit) (*vm.CompiledFunction, []resolver.Symbol, error) {
	info := c.res.Scopes[fn]
	c.enterScope()
	if err := c.compileStmts(fn.Body.Stmts); err != nil {
		return nil, nil, err
	}
	c.rewriteTrailingPopAsReturn()
	ins := c.leaveScope()
	return &vm.CompiledFunction{
		Instructions: ins,
		NumLocals:    info.NumLocals,
		NumParams:    len(fn.Params),
		Name:         fn.Name,
	}, info.FreeSymbols, nil
}
