package vm

import "fmt"

// CompiledFunction is the output of the compiler for a function literal: a
// flat instruction stream plus the frame-sizing metadata the VM needs to
// push a FUNCTION-kind Frame for it (spec.md §4.4/§4.5).
type CompiledFunction struct {
	Instructions []byte
	NumLocals    int
	NumParams    int
	Name         string // empty for anonymous literals
}

func (*CompiledFunction) Kind() Kind { return COMPILED_FUNCTION }
func (f *CompiledFunction) Inspect() string {
	if f.Name != "" {
		return fmt.Sprintf("compiled_function[%s]", f.Name)
	}
	return "compiled_function"
}

// Closure pairs a CompiledFunction with the free values captured at the
// point its literal was evaluated (spec.md §4.5's CLOSURE opcode).
type Closure struct {
	Fn   *CompiledFunction
	Free []Value
}

func (*Closure) Kind() Kind        { return CLOSURE }
func (c *Closure) Inspect() string { return fmt.Sprintf("closure[%s]", c.Fn.Inspect()) }

// Function is a CLOSURE value observed from the language's own semantics
// (spec.md's runtime value kind list keeps FUNCTION and CLOSURE distinct so
// that a closure still reads as "function" to `str()`/user code, while the
// VM internally tags it CLOSURE for the calling convention). Function
// simply forwards to the wrapped Closure.
type Function struct {
	*Closure
}

func (*Function) Kind() Kind { return FUNCTION }

// Method is a Closure bound to a receiver value, produced either by
// attribute access on a CLASS_INSTANCE that resolves to a class method, or
// by SET_ATTR implicitly rebinding a plain function assigned onto any
// attribute-bearing value (spec.md §4.5/§9: "obj.m = fn(){ this.x }" works
// without a class). Recv is the generic attribute-owner Value rather than
// specifically *Instance, since a bare OBJECT value can own a bound method
// too.
type Method struct {
	Recv    Value
	Closure *Closure
}

func (*Method) Kind() Kind        { return METHOD }
func (m *Method) Inspect() string { return fmt.Sprintf("method[%s]", m.Closure.Inspect()) }

// BuiltinFn is the Go implementation behind a BUILTIN_FUNCTION value.
type BuiltinFn func(args []Value) (Value, error)

type BuiltinFunction struct {
	Name string
	Fn   BuiltinFn
}

func (*BuiltinFunction) Kind() Kind        { return BUILTIN_FUNCTION }
func (b *BuiltinFunction) Inspect() string { return fmt.Sprintf("builtin_function[%s]", b.Name) }

// BuiltinMethodFn is bound to a concrete receiver value at GetAttr time
// (used by String's toUpper/toLower, spec.md's ambient string attributes).
type BuiltinMethodFn func(recv Value, args []Value) (Value, error)

type BuiltinMethod struct {
	Name string
	Recv Value
	Fn   BuiltinMethodFn
}

func (*BuiltinMethod) Kind() Kind        { return BUILTIN_METHOD }
func (b *BuiltinMethod) Inspect() string { return fmt.Sprintf("builtin_method[%s]", b.Name) }

// Callable is implemented by every value kind the CALL opcode accepts.
type Callable interface {
	Value
	Arity() int
}

func (c *Closure) Arity() int         { return c.Fn.NumParams }
func (f *Function) Arity() int        { return f.Fn.NumParams }
func (m *Method) Arity() int          { return m.Closure.Fn.NumParams }
func (b *BuiltinFunction) Arity() int { return -1 } // variadic; arity checked inside Fn
func (b *BuiltinMethod) Arity() int   { return -1 }
func (c *CompiledClass) Arity() int   { return c.NumCtorParams }
