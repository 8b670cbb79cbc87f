package interp

import (
	"fmt"

	"github.com/smog-lang/smog/lang/ast"
	"github.com/smog-lang/smog/lang/vm"
)

// Function is the tree-walker's equivalent of a CLOSURE: an AST function
// literal paired with the environment it closes over. Unlike the VM, which
// flattens captures into a Free slice at CLOSURE-construction time, the
// evaluator simply keeps a live reference to the defining environment,
// since there is no bytecode boundary to cross (spec.md §9's "store
// closures as (body, captures_array)" note is the VM's problem, not this
// one's).
type Function struct {
	Name   string
	Params []*ast.Ident
	Body   *ast.Block
	Env    envID
}

func (*Function) Kind() vm.Kind { return vm.FUNCTION }
func (f *Function) Inspect() string {
	if f.Name != "" {
		return fmt.Sprintf("fn %s(%d)", f.Name, len(f.Params))
	}
	return fmt.Sprintf("fn(%d)", len(f.Params))
}

// Method is a Function bound to a receiver, produced either by GetAttr on
// an Instance/Object or by SET_ATTR's implicit function-to-method
// rebinding (spec.md §9 "class binding").
type Method struct {
	Recv vm.Value
	Fn   *Function
}

func (*Method) Kind() vm.Kind        { return vm.METHOD }
func (m *Method) Inspect() string { return fmt.Sprintf("method[%s]", m.Fn.Inspect()) }

// Class is the evaluator's runtime class value: a constructor function
// (optional) plus a table of methods, each still closing over the
// environment in effect where the class was declared.
type Class struct {
	Name    string
	Ctor    *Function
	Methods map[string]*Function
}

func (*Class) Kind() vm.Kind        { return vm.CLASS }
func (c *Class) Inspect() string { return fmt.Sprintf("class[%s]", c.Name) }

// Instance is a CLASS_INSTANCE: a Class plus its own attribute bag,
// populated by `this.field = ...` inside the constructor or any method.
type Instance struct {
	Class *Class
	attrs map[string]vm.Value
}

func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, attrs: make(map[string]vm.Value)}
}

func (*Instance) Kind() vm.Kind        { return vm.CLASS_INSTANCE }
func (i *Instance) Inspect() string { return fmt.Sprintf("instance[%s]", i.Class.Name) }

func (i *Instance) GetAttr(name string) (vm.Value, bool) {
	if v, ok := i.attrs[name]; ok {
		return v, true
	}
	if fn, ok := i.Class.Methods[name]; ok {
		return &Method{Recv: i, Fn: fn}, true
	}
	return nil, false
}

func (i *Instance) SetAttr(name string, v vm.Value) error {
	i.attrs[name] = v
	return nil
}
