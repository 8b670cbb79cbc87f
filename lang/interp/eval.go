// Package interp implements the tree-walking evaluator: a slower
// alternative to the compiler/VM pipeline that runs directly over the
// parser's AST, used to cross-check the VM's behaviour (spec.md §8
// property 6) and exposed by the CLI's `run --walk` flag (SPEC_FULL.md §6).
// It is not part of the compiler/VM core.
package interp

import (
	"fmt"

	"github.com/smog-lang/smog/lang/ast"
	"github.com/smog-lang/smog/lang/token"
	"github.com/smog-lang/smog/lang/vm"
)

// signal is how control-flow statements (break/continue/return) unwind
// through nested evalStmts calls without Go panics: each evalStmt/evalStmts
// call returns the signal alongside the value it produced, and callers
// check it before continuing to the next statement.
type signal int

const (
	sigNone signal = iota
	sigBreak
	sigContinue
	sigReturn
)

// Interp runs one or more programs against a shared global environment,
// mirroring the VM's one-globals-array-per-run model closely enough for
// the §8 equivalence tests to compare results directly.
type Interp struct {
	arena  *arena
	global envID

	steps    int
	maxSteps int // 0 means unbounded
}

// New creates an Interp with a fresh global environment and no step budget.
func New() *Interp {
	a := newArena()
	return &Interp{arena: a, global: a.new(noEnv)}
}

// NewWithStepBudget is like New, but aborts evaluation with a
// StepBudgetExceeded error once more than maxSteps statements and
// expressions have been evaluated - the tree-walker's equivalent of the
// VM's stack/frame bounds (spec.md §9's step-budget design note), since the
// evaluator has no bytecode instruction count to cap instead.
func NewWithStepBudget(maxSteps int) *Interp {
	in := New()
	in.maxSteps = maxSteps
	return in
}

func (in *Interp) tickStep() *vm.RuntimeError {
	if in.maxSteps == 0 {
		return nil
	}
	in.steps++
	if in.steps > in.maxSteps {
		return &vm.RuntimeError{Kind: vm.StepBudgetExceeded, Msg: fmt.Sprintf("step budget of %d exceeded", in.maxSteps)}
	}
	return nil
}

// Eval runs prog's top-level statements in the global environment and
// returns the value of the last statement evaluated (Null if prog is empty
// or the last statement doesn't produce one), matching the VM's
// LastPoppedStackElem semantics closely enough for equivalence testing.
func (in *Interp) Eval(prog *ast.Program) (vm.Value, error) {
	val, sig := in.evalStmts(prog.Stmts, in.global)
	if sig == sigBreak || sig == sigContinue {
		return nil, fmt.Errorf("interp: %v outside of a loop", sig)
	}
	return val, nil
}

func (in *Interp) evalStmts(stmts []ast.Stmt, env envID) (vm.Value, signal) {
	var val vm.Value = vm.Null
	for _, s := range stmts {
		var sig signal
		val, sig = in.evalStmt(s, env)
		if cs, ok := val.(*controlSignal); ok {
			val, sig = cs.val, cs.sig
		}
		if isError(val) || sig != sigNone {
			return val, sig
		}
	}
	return val, sigNone
}

func (in *Interp) evalStmt(s ast.Stmt, env envID) (vm.Value, signal) {
	if err := in.tickStep(); err != nil {
		return err, sigNone
	}
	switch s := s.(type) {
	case *ast.Let:
		val := in.evalExpr(s.Value, env)
		if isError(val) {
			return val, sigNone
		}
		in.arena.define(env, s.Name.Name, val)
		return vm.Null, sigNone

	case *ast.Assign:
		val := in.evalExpr(s.Value, env)
		if isError(val) {
			return val, sigNone
		}
		return in.evalAssign(s.Target, val, env), sigNone

	case *ast.Return:
		if s.Value == nil {
			return vm.Null, sigReturn
		}
		val := in.evalExpr(s.Value, env)
		if isError(val) {
			return val, sigNone
		}
		return val, sigReturn

	case *ast.ExprStmt:
		return in.evalExpr(s.X, env), sigNone

	case *ast.Block:
		inner := in.arena.new(env)
		return in.evalStmts(s.Stmts, inner)

	case *ast.While:
		return in.evalWhile(s, env)

	case *ast.For:
		return in.evalFor(s, env)

	case *ast.Break:
		return vm.Null, sigBreak

	case *ast.Continue:
		return vm.Null, sigContinue

	case *ast.Class:
		in.arena.define(env, s.Name.Name, in.evalClassDecl(s, env))
		return vm.Null, sigNone

	default:
		return newError(vm.TypeMismatch, "interp: unhandled statement %T", s), sigNone
	}
}

func (in *Interp) evalWhile(s *ast.While, env envID) (vm.Value, signal) {
	for {
		cond := in.evalExpr(s.Cond, env)
		if isError(cond) {
			return cond, sigNone
		}
		if !truthy(cond) {
			return vm.Null, sigNone
		}
		inner := in.arena.new(env)
		val, sig := in.evalStmts(s.Body.Stmts, inner)
		if isError(val) {
			return val, sigNone
		}
		switch sig {
		case sigBreak:
			return vm.Null, sigNone
		case sigReturn:
			return val, sigReturn
		}
	}
}

func (in *Interp) evalFor(s *ast.For, env envID) (vm.Value, signal) {
	iterable := in.evalExpr(s.Iterable, env)
	if isError(iterable) {
		return iterable, sigNone
	}
	it, ok := iterable.(vm.Iterable)
	if !ok {
		return newError(vm.NotIterable, "for: %s is not iterable", iterable.Kind()), sigNone
	}
	iter := it.NewIterator()
	for iter.HasNext() {
		v, err := iter.Next()
		if err != nil {
			return &vm.RuntimeError{Kind: vm.IteratorExhausted, Msg: err.Error()}, sigNone
		}
		inner := in.arena.new(env)
		in.arena.define(inner, s.Var.Name, v)
		val, sig := in.evalStmts(s.Body.Stmts, inner)
		if isError(val) {
			return val, sigNone
		}
		switch sig {
		case sigBreak:
			return vm.Null, sigNone
		case sigReturn:
			return val, sigReturn
		}
	}
	return vm.Null, sigNone
}

func (in *Interp) evalClassDecl(s *ast.Class, env envID) *Class {
	class := &Class{Name: s.Name.Name, Methods: make(map[string]*Function)}
	if s.Ctor != nil {
		class.Ctor = in.evalFuncLit(s.Ctor.Fn, env)
	}
	for _, m := range s.Methods {
		class.Methods[m.Name.Name] = in.evalFuncLit(m.Fn, env)
	}
	return class
}

func (in *Interp) evalFuncLit(fn *ast.FuncLit, env envID) *Function {
	return &Function{Name: fn.Name, Params: fn.Params, Body: fn.Body, Env: env}
}

// evalAssign stores val at target, implicitly rebinding a bare Function
// value into a Method when the target is an attribute-get (spec.md §9
// "class binding": SET_ATTR of a function implicitly binds it).
func (in *Interp) evalAssign(target ast.Expr, val vm.Value, env envID) vm.Value {
	switch t := target.(type) {
	case *ast.Ident:
		if !in.arena.assign(env, t.Name, val) {
			return newError(vm.UnknownIdentifier, "assign: unknown identifier %q", t.Name)
		}
		return val

	case *ast.Index:
		left := in.evalExpr(t.Left, env)
		if isError(left) {
			return left
		}
		idx := in.evalExpr(t.Index, env)
		if isError(idx) {
			return idx
		}
		i, ok := idx.(vm.Int)
		if !ok {
			return newError(vm.TypeMismatch, "index: not an integer: %s", idx.Kind())
		}
		s, ok := left.(vm.Settable)
		if !ok {
			return newError(vm.NotSubscriptable, "index assign: %s is not settable", left.Kind())
		}
		if err := s.SetIndex(int64(i), val); err != nil {
			return errToValue(err)
		}
		return val

	case *ast.Get:
		obj := in.evalExpr(t.Object, env)
		if isError(obj) {
			return obj
		}
		val = bindAsMethod(obj, val)
		hs, ok := obj.(vm.HasSetAttrs)
		if !ok {
			return newError(vm.TypeMismatch, "get: %s has no attributes", obj.Kind())
		}
		if err := hs.SetAttr(t.Property.Name, val); err != nil {
			return errToValue(err)
		}
		return val

	default:
		return newError(vm.TypeMismatch, "interp: invalid assign target %T", target)
	}
}

// bindAsMethod wraps a bare Function being stored onto recv's attribute
// bag into a Method bound to recv, so that `this` resolves inside it
// without needing a class (spec.md §9).
func bindAsMethod(recv, val vm.Value) vm.Value {
	if fn, ok := val.(*Function); ok {
		return &Method{Recv: recv, Fn: fn}
	}
	return val
}

func (in *Interp) evalExpr(e ast.Expr, env envID) vm.Value {
	if err := in.tickStep(); err != nil {
		return err
	}
	switch e := e.(type) {
	case *ast.Ident:
		if v, ok := in.arena.lookup(env, e.Name); ok {
			return v
		}
		for _, b := range vm.Builtins {
			if b.Name == e.Name {
				return b
			}
		}
		return newError(vm.UnknownIdentifier, "unknown identifier %q", e.Name)

	case *ast.This:
		if v, ok := in.arena.lookup(env, "this"); ok {
			return v
		}
		return &vm.RuntimeError{Kind: vm.NoBoundInstance, Msg: "this: no bound instance"}

	case *ast.IntLit:
		return vm.Int(e.Value)
	case *ast.StrLit:
		return vm.String(e.Value)
	case *ast.BoolLit:
		return vm.Bool(e.Value)
	case *ast.NullLit:
		return vm.Null

	case *ast.ArrayLit:
		elems := make([]vm.Value, len(e.Elems))
		for i, el := range e.Elems {
			v := in.evalExpr(el, env)
			if isError(v) {
				return v
			}
			elems[i] = v
		}
		return vm.NewArray(elems)

	case *ast.HashLit:
		h := vm.NewHash()
		for _, kv := range e.Pairs {
			k := in.evalExpr(kv.Key, env)
			if isError(k) {
				return k
			}
			hk, ok := k.(vm.Hashable)
			if !ok {
				return newError(vm.UnhashableKey, "hash: unhashable key %s", k.Kind())
			}
			v := in.evalExpr(kv.Value, env)
			if isError(v) {
				return v
			}
			h.Set(hk, v)
		}
		return h

	case *ast.FuncLit:
		return in.evalFuncLit(e, env)

	case *ast.Prefix:
		right := in.evalExpr(e.Right, env)
		if isError(right) {
			return right
		}
		return evalPrefix(e.Op, right)

	case *ast.Infix:
		return in.evalInfix(e, env)

	case *ast.Index:
		left := in.evalExpr(e.Left, env)
		if isError(left) {
			return left
		}
		idx := in.evalExpr(e.Index, env)
		if isError(idx) {
			return idx
		}
		i, ok := idx.(vm.Int)
		if !ok {
			return newError(vm.TypeMismatch, "index: not an integer: %s", idx.Kind())
		}
		ix, ok := left.(vm.Indexable)
		if !ok {
			return newError(vm.NotSubscriptable, "index: %s is not subscriptable", left.Kind())
		}
		v, err := ix.Index(int64(i))
		if err != nil {
			return errToValue(err)
		}
		return v

	case *ast.Get:
		obj := in.evalExpr(e.Object, env)
		if isError(obj) {
			return obj
		}
		ha, ok := obj.(vm.HasAttrs)
		if !ok {
			return newError(vm.TypeMismatch, "get: %s has no attributes", obj.Kind())
		}
		v, ok := ha.GetAttr(e.Property.Name)
		if !ok {
			return newError(vm.UnknownIdentifier, "get: no attribute %q", e.Property.Name)
		}
		return v

	case *ast.If:
		return in.evalIf(e, env)

	case *ast.Call:
		return in.evalCall(e, env)

	default:
		return newError(vm.TypeMismatch, "interp: unhandled expression %T", e)
	}
}

func (in *Interp) evalIf(e *ast.If, env envID) vm.Value {
	for _, b := range e.Branches {
		cond := in.evalExpr(b.Cond, env)
		if isError(cond) {
			return cond
		}
		if truthy(cond) {
			inner := in.arena.new(env)
			val, sig := in.evalStmts(b.Block.Stmts, inner)
			if sig == sigReturn || sig == sigBreak || sig == sigContinue {
				return propagateSignal(val, sig)
			}
			return val
		}
	}
	if e.Else == nil {
		return vm.Null
	}
	inner := in.arena.new(env)
	val, sig := in.evalStmts(e.Else.Stmts, inner)
	if sig == sigReturn || sig == sigBreak || sig == sigContinue {
		return propagateSignal(val, sig)
	}
	return val
}

// propagateSignal lets a bare `if { break; }`/`if { return x; }` used as a
// statement (not bound via `let`) unwind past evalIf: evalIf itself has no
// signal channel back to its caller since `if` is an expression, so a
// break/continue/return inside one of its branches is carried as a
// *controlSignal sentinel value that evalStmts recognizes and re-raises as
// a real signal.
func propagateSignal(val vm.Value, sig signal) vm.Value {
	return &controlSignal{val: val, sig: sig}
}

// controlSignal is a Value only in the structural sense (it satisfies the
// interface so it can travel through evalExpr's return type). evalStmts
// unwraps it after each statement, which covers loop bodies too. An `if`
// evaluated elsewhere, such as the value of a `let`, keeps the sentinel as
// an ordinary value: its signal is dropped, it reports NULL as its Kind and
// inspects as the value it wraps.
type controlSignal struct {
	val vm.Value
	sig signal
}

func (*controlSignal) Kind() vm.Kind        { return vm.NULL }
func (c *controlSignal) Inspect() string { return c.val.Inspect() }

func (in *Interp) evalCall(e *ast.Call, env envID) vm.Value {
	fnVal := in.evalExpr(e.Fn, env)
	if isError(fnVal) {
		return fnVal
	}
	args := make([]vm.Value, len(e.Args))
	for i, a := range e.Args {
		v := in.evalExpr(a, env)
		if isError(v) {
			return v
		}
		args[i] = v
	}
	return in.call(fnVal, args)
}

func (in *Interp) call(fnVal vm.Value, args []vm.Value) vm.Value {
	switch fn := fnVal.(type) {
	case *Function:
		return in.callFunction(fn, args, nil)

	case *Method:
		return in.callFunction(fn.Fn, args, fn.Recv)

	case *Class:
		inst := NewInstance(fn)
		if fn.Ctor != nil {
			if v := in.callFunction(fn.Ctor, args, inst); isError(v) {
				return v
			}
		}
		return inst

	case *vm.BuiltinFunction:
		v, err := fn.Fn(args)
		if err != nil {
			return errToValue(err)
		}
		return v

	default:
		return newError(vm.NotCallable, "%s is not callable", fnVal.Kind())
	}
}

func (in *Interp) callFunction(fn *Function, args []vm.Value, this vm.Value) vm.Value {
	if len(args) != len(fn.Params) {
		return newError(vm.ArityMismatch, "%s: expected %d argument(s), got %d", fn.Inspect(), len(fn.Params), len(args))
	}
	callEnv := in.arena.new(fn.Env)
	if this != nil {
		in.arena.define(callEnv, "this", this)
	}
	for i, p := range fn.Params {
		in.arena.define(callEnv, p.Name, args[i])
	}
	val, sig := in.evalStmts(fn.Body.Stmts, callEnv)
	if isError(val) {
		return val
	}
	switch sig {
	case sigReturn:
		return val
	case sigBreak, sigContinue:
		return newError(vm.TypeMismatch, "%v outside of a loop", sig)
	default:
		return val
	}
}

func (s signal) String() string {
	switch s {
	case sigBreak:
		return "break"
	case sigContinue:
		return "continue"
	case sigReturn:
		return "return"
	default:
		return "none"
	}
}

func isError(v vm.Value) bool {
	_, ok := v.(*vm.RuntimeError)
	return ok
}

func errToValue(err error) vm.Value {
	if re, ok := err.(*vm.RuntimeError); ok {
		return re
	}
	return &vm.RuntimeError{Kind: vm.TypeMismatch, Msg: err.Error()}
}

func newError(kind vm.RuntimeErrorKind, format string, args ...any) *vm.RuntimeError {
	return &vm.RuntimeError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func truthy(v vm.Value) bool {
	switch v := v.(type) {
	case vm.Bool:
		return bool(v)
	default:
		return v != vm.Null
	}
}

func evalPrefix(op token.Token, right vm.Value) vm.Value {
	switch op {
	case token.MINUS:
		i, ok := right.(vm.Int)
		if !ok {
			return newError(vm.TypeMismatch, "unary -: not an integer: %s", right.Kind())
		}
		return -i
	case token.NOT, token.BANG:
		return vm.Bool(!truthy(right))
	default:
		return newError(vm.TypeMismatch, "unsupported prefix operator %s", op)
	}
}

func (in *Interp) evalInfix(e *ast.Infix, env envID) vm.Value {
	switch e.Op {
	case token.AND:
		left := in.evalExpr(e.Left, env)
		if isError(left) {
			return left
		}
		if !truthy(left) {
			return vm.Bool(false)
		}
		right := in.evalExpr(e.Right, env)
		if isError(right) {
			return right
		}
		return vm.Bool(truthy(right))

	case token.OR:
		left := in.evalExpr(e.Left, env)
		if isError(left) {
			return left
		}
		if truthy(left) {
			return vm.Bool(true)
		}
		right := in.evalExpr(e.Right, env)
		if isError(right) {
			return right
		}
		return vm.Bool(truthy(right))

	case token.IN, token.NOTIN:
		return in.evalInNotIn(e, env)
	}

	left := in.evalExpr(e.Left, env)
	if isError(left) {
		return left
	}
	right := in.evalExpr(e.Right, env)
	if isError(right) {
		return right
	}

	li, lIsInt := left.(vm.Int)
	ri, rIsInt := right.(vm.Int)
	if lIsInt && rIsInt {
		return evalIntInfix(e.Op, li, ri)
	}

	ls, lIsStr := left.(vm.String)
	rs, rIsStr := right.(vm.String)
	switch e.Op {
	case token.PLUS:
		if lIsStr && rIsStr {
			return ls + rs
		}
	case token.EQEQ:
		return vm.Bool(valuesEqual(left, right))
	case token.NEQ:
		return vm.Bool(!valuesEqual(left, right))
	}
	return newError(vm.TypeMismatch, "unsupported operand types for %s: %s, %s", e.Op, left.Kind(), right.Kind())
}

func evalIntInfix(op token.Token, l, r vm.Int) vm.Value {
	switch op {
	case token.PLUS:
		return l + r
	case token.MINUS:
		return l - r
	case token.STAR:
		return l * r
	case token.SLASH:
		if r == 0 {
			// no FLOAT kind exists (spec.md §9's division-semantics open
			// question); division by zero reuses TypeMismatch.
			return newError(vm.TypeMismatch, "integer division by zero")
		}
		return l / r
	case token.LT:
		return vm.Bool(l < r)
	case token.LE:
		return vm.Bool(l <= r)
	case token.GT:
		return vm.Bool(l > r)
	case token.GE:
		return vm.Bool(l >= r)
	case token.EQEQ:
		return vm.Bool(l == r)
	case token.NEQ:
		return vm.Bool(l != r)
	default:
		return newError(vm.TypeMismatch, "unsupported integer operator %s", op)
	}
}

func (in *Interp) evalInNotIn(e *ast.Infix, env envID) vm.Value {
	needle := in.evalExpr(e.Left, env)
	if isError(needle) {
		return needle
	}
	haystack := in.evalExpr(e.Right, env)
	if isError(haystack) {
		return haystack
	}
	it, ok := haystack.(vm.Iterable)
	if !ok {
		return newError(vm.NotIterable, "in: %s is not iterable", haystack.Kind())
	}
	iter := it.NewIterator()
	found := false
	for iter.HasNext() {
		v, err := iter.Next()
		if err != nil {
			return errToValue(err)
		}
		if valuesEqual(needle, v) {
			found = true
			break
		}
	}
	if e.Op == token.NOTIN {
		return vm.Bool(!found)
	}
	return vm.Bool(found)
}

func valuesEqual(a, b vm.Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a := a.(type) {
	case vm.Int:
		return a == b.(vm.Int)
	case vm.Bool:
		return a == b.(vm.Bool)
	case vm.String:
		return a == b.(vm.String)
	default:
		return a == b
	}
}
