// Package compiler takes a parsed, resolved AST and compiles it to flat
// bytecode the VM can execute directly. It replaces the teacher's CFG-based
// compiler (basic blocks linearized after the fact, to support Starlark's
// defer/catch control structures) with a single-pass, direct-emission
// design: this language has none of Starlark's escaping control flow, so
// the simpler model the spec's own design notes describe (§9) is both
// sufficient and closer to how a single scripting-language VM is usually
// built. The opcode table, emission order, and naming conventions are
// still grounded on the teacher's compiler package.
package compiler

import (
	"fmt"

	"github.com/smog-lang/smog/lang/ast"
	"github.com/smog-lang/smog/lang/resolver"
	"github.com/smog-lang/smog/lang/vm"
)

// CompilationScope holds the instructions being built for one function,
// block, or loop body. Scopes nest via Outer exactly the way the resolver's
// SymbolTables do, since every scope-creating AST node produces exactly
// one CompilationScope and one SymbolTable together.
type CompilationScope struct {
	Outer        *CompilationScope
	instructions vm.Instructions
}

// Compiler walks a resolved AST and produces Bytecode. A Compiler serves
// the single Resolve result it was created with; Compile appends to its
// outermost scope and constant pool. The REPL creates a new Compiler every
// turn and recompiles the whole accumulated program.
type Compiler struct {
	res *resolver.Resolution

	constants []vm.Value

	scope *CompilationScope
}

// New creates a Compiler for a single Resolve result.
func New(res *resolver.Resolution) *Compiler {
	return &Compiler{
		res:   res,
		scope: &CompilationScope{},
	}
}

// Compile compiles prog's statements into the current (outermost) scope
// and returns the resulting Bytecode.
func (c *Compiler) Compile(prog *ast.Program) (*Bytecode, error) {
	for _, s := range prog.Stmts {
		if err := c.compileStmt(s); err != nil {
			return nil, err
		}
	}
	return &Bytecode{
		Instructions: c.scope.instructions,
		Constants:    c.constants,
	}, nil
}

func (c *Compiler) addConstant(v vm.Value) int {
	c.constants = append(c.constants, v)
	return len(c.constants) - 1
}

func (c *Compiler) emit(op vm.Op, operands ...int) int {
	ins := vm.Make(op, operands...)
	pos := len(c.scope.instructions)
	c.scope.instructions = append(c.scope.instructions, ins...)
	return pos
}

func (c *Compiler) replaceOperand(pos int, op vm.Op, operands ...int) {
	ins := vm.Make(op, operands...)
	copy(c.scope.instructions[pos:], ins)
}

func (c *Compiler) currentPos() int { return len(c.scope.instructions) }

func (c *Compiler) enterScope() {
	c.scope = &CompilationScope{Outer: c.scope}
}

func (c *Compiler) leaveScope() vm.Instructions {
	ins := c.scope.instructions
	c.scope = c.scope.Outer
	return ins
}

func (c *Compiler) compileStmt(s ast.Stmt) error {
	switch n := s.(type) {
	case *ast.Let:
		if err := c.compileExpr(n.Value); err != nil {
			return err
		}
		return c.emitBind(c.res.Idents[n.Name])

	case *ast.Assign:
		return c.compileAssign(n)

	case *ast.Return:
		if n.Value != nil {
			if err := c.compileExpr(n.Value); err != nil {
				return err
			}
		} else {
			c.emit(vm.NULL)
		}
		c.emit(vm.RETURN_VALUE)
		return nil

	case *ast.ExprStmt:
		if err := c.compileExpr(n.X); err != nil {
			return err
		}
		c.emit(vm.POP)
		return nil

	case *ast.Block:
		if err := c.compileBranchClosure(n); err != nil {
			return err
		}
		c.emit(vm.POP)
		return nil

	case *ast.While:
		return c.compileWhile(n)

	case *ast.For:
		return c.compileFor(n)

	case *ast.Break:
		c.emit(vm.BREAK)
		return nil

	case *ast.Continue:
		c.emit(vm.CONTINUE)
		return nil

	case *ast.Class:
		return c.compileClass(n)

	default:
		return fmt.Errorf("compiler: unhandled statement type %T", s)
	}
}

func (c *Compiler) compileStmts(stmts []ast.Stmt) error {
	for _, s := range stmts {
		if err := c.compileStmt(s); err != nil {
			return err
		}
	}
	return nil
}

// emitBind emits the "store top of stack into sym" instruction appropriate
// to sym's scope. Only GLOBAL and LOCAL are ever bind targets for a `let`
// (block/free/builtin/function/class symbols are never themselves
// definitions produced this way).
func (c *Compiler) emitBind(sym resolver.Symbol) error {
	switch sym.Scope {
	case resolver.GLOBAL:
		c.emit(vm.SET_GLOBAL, sym.Index)
	case resolver.LOCAL:
		c.emit(vm.SET_LOCAL, sym.Index)
	default:
		return fmt.Errorf("compiler: cannot bind a let to scope %s", sym.Scope)
	}
	return nil
}

func (c *Compiler) compileAssign(n *ast.Assign) error {
	switch t := n.Target.(type) {
	case *ast.Ident:
		if err := c.compileExpr(n.Value); err != nil {
			return err
		}
		sym := c.res.Idents[t]
		switch sym.Scope {
		case resolver.GLOBAL:
			c.emit(vm.SET_GLOBAL, sym.Index)
		case resolver.LOCAL:
			c.emit(vm.SET_LOCAL, sym.Index)
		case resolver.BLOCK:
			c.emit(vm.SET_BLOCK, sym.Depth, sym.Index)
		case resolver.FREE:
			return fmt.Errorf("compiler: captured variable %q is not assignable", t.Name)
		default:
			return fmt.Errorf("compiler: cannot assign to scope %s", sym.Scope)
		}
		return nil

	case *ast.Index:
		if err := c.compileExpr(t.Left); err != nil {
			return err
		}
		if err := c.compileExpr(t.Index); err != nil {
			return err
		}
		if err := c.compileExpr(n.Value); err != nil {
			return err
		}
		c.emit(vm.SET_INDEX)
		return nil

	case *ast.Get:
		if err := c.compileExpr(t.Object); err != nil {
			return err
		}
		if err := c.compileExpr(n.Value); err != nil {
			return err
		}
		nameIdx := c.addConstant(vm.String(t.Property.Name))
		c.emit(vm.SET_ATTR, nameIdx)
		return nil

	default:
		return fmt.Errorf("compiler: invalid assignment target %T", n.Target)
	}
}

func (c *Compiler) compileIdentRead(id *ast.Ident) error {
	sym, ok := c.res.Idents[id]
	if !ok {
		return fmt.Errorf("compiler: unresolved identifier %q", id.Name)
	}
	return c.compileIdentReadSymbol(sym)
}

// compileIdentReadSymbol emits the "push this symbol's value" instruction
// for an already-resolved Symbol, shared between ordinary identifier reads
// and loading a closure's free-variable captures before CLOSURE.
func (c *Compiler) compileIdentReadSymbol(sym resolver.Symbol) error {
	switch sym.Scope {
	case resolver.GLOBAL:
		c.emit(vm.GET_GLOBAL, sym.Index)
	case resolver.LOCAL:
		c.emit(vm.GET_LOCAL, sym.Index)
	case resolver.BLOCK:
		c.emit(vm.GET_BLOCK, sym.Depth, sym.Index)
	case resolver.FREE:
		c.emit(vm.GET_FREE, sym.Index)
	case resolver.BUILTIN:
		c.emit(vm.GET_BUILTIN, sym.Index)
	case resolver.FUNCTION:
		c.emit(vm.CURRENT_CLOSURE)
	case resolver.CLASS:
		c.emit(vm.GET_CLASS, sym.Index)
	default:
		return fmt.Errorf("compiler: unhandled symbol scope %s", sym.Scope)
	}
	return nil
}
