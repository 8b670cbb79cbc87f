package vm

import "fmt"

// CompiledClass is the compiler's output for a class declaration: the
// constructor body (if any) plus its named methods, each already compiled
// to a CompiledFunction (spec.md §4.4's DEF_CLASS opcode).
type CompiledClass struct {
	Name          string
	Ctor          *CompiledFunction // nil if the class declares no constructor
	NumCtorParams int
	MethodNames   []string
	Methods       []*CompiledFunction
}

func (*CompiledClass) Kind() Kind        { return COMPILED_CLASS }
func (c *CompiledClass) Inspect() string { return fmt.Sprintf("compiled_class[%s]", c.Name) }

// Class is the runtime, closure-bearing counterpart of CompiledClass,
// produced by DEF_CLASS the same way CLOSURE wraps a CompiledFunction: its
// methods may close over the enclosing scope's free variables.
type Class struct {
	Def     *CompiledClass
	Ctor    *Closure // nil if Def.Ctor is nil
	Methods map[string]*Closure
}

func (*Class) Kind() Kind        { return CLASS }
func (c *Class) Inspect() string { return fmt.Sprintf("class[%s]", c.Def.Name) }
func (c *Class) Arity() int {
	if c.Ctor == nil {
		return 0
	}
	return c.Ctor.Fn.NumParams
}

// Instance is a CLASS_INSTANCE: a class plus its own attribute bag,
// populated by `this.field = ...` assignments inside the constructor or
// any method (spec.md §4.2/§4.5).
type Instance struct {
	Class *Class
	attrs map[string]Value
}

func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, attrs: make(map[string]Value)}
}

func (*Instance) Kind() Kind        { return CLASS_INSTANCE }
func (i *Instance) Inspect() string { return fmt.Sprintf("instance[%s]", i.Class.Def.Name) }

func (i *Instance) GetAttr(name string) (Value, bool) {
	if v, ok := i.attrs[name]; ok {
		return v, true
	}
	if closure, ok := i.Class.Methods[name]; ok {
		return &Method{Recv: i, Closure: closure}, true
	}
	return nil, false
}

func (i *Instance) SetAttr(name string, v Value) error {
	i.attrs[name] = v
	return nil
}
