// Package vm implements the bytecode virtual machine: the runtime Value
// model, frames, and the dispatch loop (spec.md §4.5), generalized from the
// teacher's lang/machine package (which this package replaces) down to the
// smaller, closed value-kind list this spec requires.
package vm

import (
	"fmt"

	"github.com/dolthub/swiss"
)

// Kind identifies a Value's runtime tag. The set is closed: every Value
// implementation in this package returns one of these (spec.md §3).
type Kind int

const (
	INT Kind = iota
	BOOL
	STRING
	NULL
	ARRAY
	HASH
	RETURN_VALUE
	ERROR
	FUNCTION
	METHOD
	COMPILED_FUNCTION
	CLOSURE
	BUILTIN_FUNCTION
	BUILTIN_METHOD
	CLASS
	COMPILED_CLASS
	CLASS_INSTANCE
	BREAK
	CONTINUE
	ITERATOR
	HASH_PAIR
	OBJECT
)

var kindNames = [...]string{
	INT: "INT", BOOL: "BOOL", STRING: "STRING", NULL: "NULL",
	ARRAY: "ARRAY", HASH: "HASH", RETURN_VALUE: "RETURN_VALUE", ERROR: "ERROR",
	FUNCTION: "FUNCTION", METHOD: "METHOD", COMPILED_FUNCTION: "COMPILED_FUNCTION",
	CLOSURE: "CLOSURE", BUILTIN_FUNCTION: "BUILTIN_FUNCTION", BUILTIN_METHOD: "BUILTIN_METHOD",
	CLASS: "CLASS", COMPILED_CLASS: "COMPILED_CLASS", CLASS_INSTANCE: "CLASS_INSTANCE",
	BREAK: "BREAK", CONTINUE: "CONTINUE", ITERATOR: "ITERATOR", HASH_PAIR: "HASH_PAIR",
	OBJECT: "OBJECT",
}

func (k Kind) String() string { return kindNames[k] }

// Value is implemented by every runtime value the VM can hold on its stack.
type Value interface {
	Kind() Kind
	Inspect() string
}

// Hashable is implemented by the value kinds the HASH type accepts as keys
// (spec.md §3: "STRING, INT, BOOL are hashable"). The fingerprint need only
// be internally consistent; it is never observed outside the HASH type.
type Hashable interface {
	Value
	hashKey() any
}

// Iterable values can produce an Iterator via ITER.
type Iterable interface {
	Value
	NewIterator() *Iterator
}

// Indexable values support INDEX/SET_INDEX.
type Indexable interface {
	Value
	Index(i int64) (Value, error)
}

// Settable is implemented by Indexable values whose elements may be
// reassigned via SET_INDEX.
type Settable interface {
	Indexable
	SetIndex(i int64, v Value) error
}

// Lengthy values expose a `length` attribute (spec.md §3).
type Lengthy interface {
	Value
	Len() int
}

// HasAttrs values respond to GET_ATTR.
type HasAttrs interface {
	Value
	GetAttr(name string) (Value, bool)
}

// HasSetAttrs values respond to SET_ATTR.
type HasSetAttrs interface {
	HasAttrs
	SetAttr(name string, v Value) error
}

// --- INT ---

type Int int64

func (Int) Kind() Kind           { return INT }
func (i Int) Inspect() string    { return fmt.Sprintf("%d", int64(i)) }
func (i Int) hashKey() any       { return int64(i) }

// --- BOOL ---

type Bool bool

func (Bool) Kind() Kind        { return BOOL }
func (b Bool) Inspect() string { if b { return "true" }; return "false" }
func (b Bool) hashKey() any    { return bool(b) }

var (
	True  = Bool(true)
	False = Bool(false)
)

func NativeBool(b bool) Bool {
	if b {
		return True
	}
	return False
}

// --- STRING ---

type String string

func (String) Kind() Kind         { return STRING }
func (s String) Inspect() string  { return fmt.Sprintf("%q", string(s)) }
func (s String) hashKey() any     { return string(s) }
func (s String) Len() int { return len(s) }
func (s String) Index(i int64) (Value, error) {
	runes := []rune(s)
	if i < 0 || i >= int64(len(runes)) {
		return nil, &RuntimeError{Kind: IndexOutOfRange, Msg: fmt.Sprintf("index out of range: %d", i)}
	}
	return String(string(runes[i])), nil
}
func (s String) NewIterator() *Iterator {
	runes := []rune(s)
	elems := make([]Value, len(runes))
	for i, r := range runes {
		elems[i] = String(string(r))
	}
	return newSliceIterator(elems)
}
func (s String) GetAttr(name string) (Value, bool) {
	switch name {
	case "length":
		return Int(len(s)), true
	case "toUpper":
		return &BuiltinMethod{Name: "toUpper", Recv: s, Fn: func(recv Value, args []Value) (Value, error) {
			return String(toUpper(string(recv.(String)))), nil
		}}, true
	case "toLower":
		return &BuiltinMethod{Name: "toLower", Recv: s, Fn: func(recv Value, args []Value) (Value, error) {
			return String(toLower(string(recv.(String)))), nil
		}}, true
	}
	return nil, false
}

func toUpper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}

func toLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c - 'A' + 'a'
		}
	}
	return string(b)
}

// --- NULL ---

type nullValue struct{}

func (nullValue) Kind() Kind        { return NULL }
func (nullValue) Inspect() string   { return "null" }

var Null = nullValue{}

// --- singletons BREAK / CONTINUE ---

type breakValue struct{}

func (breakValue) Kind() Kind      { return BREAK }
func (breakValue) Inspect() string { return "break" }

var BreakSignal = breakValue{}

type continueValue struct{}

func (continueValue) Kind() Kind      { return CONTINUE }
func (continueValue) Inspect() string { return "continue" }

var ContinueSignal = continueValue{}

// --- ARRAY ---

type Array struct {
	Elems []Value
}

func NewArray(elems []Value) *Array { return &Array{Elems: elems} }

func (*Array) Kind() Kind { return ARRAY }
func (a *Array) Inspect() string {
	s := "["
	for i, e := range a.Elems {
		if i > 0 {
			s += ", "
		}
		s += e.Inspect()
	}
	return s + "]"
}
func (a *Array) Len() int { return len(a.Elems) }
func (a *Array) Index(i int64) (Value, error) {
	if i < 0 || i >= int64(len(a.Elems)) {
		return nil, &RuntimeError{Kind: IndexOutOfRange, Msg: fmt.Sprintf("index out of range: %d", i)}
	}
	return a.Elems[i], nil
}
func (a *Array) SetIndex(i int64, v Value) error {
	if i < 0 || i >= int64(len(a.Elems)) {
		return &RuntimeError{Kind: IndexOutOfRange, Msg: fmt.Sprintf("index out of range: %d", i)}
	}
	a.Elems[i] = v
	return nil
}
func (a *Array) NewIterator() *Iterator { return newSliceIterator(a.Elems) }
func (a *Array) GetAttr(name string) (Value, bool) {
	if name == "length" {
		return Int(len(a.Elems)), true
	}
	return nil, false
}

// --- HASH ---

// Hash is a mapping from a hashable fingerprint to a HashPair, preserving
// the original key for re-inspection (spec.md §3). The backing store is the
// teacher's swiss-table Map (lang/machine/map.go's swiss.Map[Value,Value]),
// keyed instead on the fingerprint any so STRING/INT/BOOL keys that compare
// unequal as Go values but equal by fingerprint collide the way spec.md's
// hashing rules require; order is tracked alongside it for the
// deterministic Inspect/ITER snapshot order the swiss table doesn't
// promise.
type Hash struct {
	entries *swiss.Map[any, *HashPair]
	order   []any
}

func NewHash() *Hash { return &Hash{entries: swiss.NewMap[any, *HashPair](0)} }

func (*Hash) Kind() Kind { return HASH }
func (h *Hash) Inspect() string {
	s := "{"
	for i, k := range h.order {
		if i > 0 {
			s += ", "
		}
		p, _ := h.entries.Get(k)
		s += p.Key.Inspect() + ": " + p.Value.Inspect()
	}
	return s + "}"
}
func (h *Hash) Len() int { return len(h.order) }

func (h *Hash) Get(key Hashable) (Value, bool) {
	p, ok := h.entries.Get(key.hashKey())
	if !ok {
		return nil, false
	}
	return p.Value, true
}

func (h *Hash) Set(key Hashable, val Value) {
	fp := key.hashKey()
	if _, exists := h.entries.Get(fp); !exists {
		h.order = append(h.order, fp)
	}
	h.entries.Put(fp, &HashPair{Key: key.(Value), Value: val})
}

func (h *Hash) NewIterator() *Iterator {
	// Hashes snapshot their keys at ITER and iterate over the snapshot, so
	// mutation during iteration is well-defined (spec.md §4.5).
	snapshot := make([]Value, len(h.order))
	for i, fp := range h.order {
		p, _ := h.entries.Get(fp)
		snapshot[i] = p
	}
	return newSliceIterator(snapshot)
}
func (h *Hash) GetAttr(name string) (Value, bool) {
	if name == "length" {
		return Int(len(h.order)), true
	}
	return nil, false
}

// HashPair preserves a HASH entry's original key alongside its value.
type HashPair struct {
	Key   Value
	Value Value
}

func (*HashPair) Kind() Kind        { return HASH_PAIR }
func (p *HashPair) Inspect() string { return p.Key.Inspect() + ": " + p.Value.Inspect() }

// --- RETURN_VALUE / ERROR wrapper kinds ---

// ReturnValue wraps a value produced by a `return` statement while it is
// still propagating up through nested block/loop frames.
type ReturnValue struct{ Value Value }

func (*ReturnValue) Kind() Kind        { return RETURN_VALUE }
func (r *ReturnValue) Inspect() string { return r.Value.Inspect() }

// RuntimeErrorKind enumerates the error kinds listed in spec.md §7.
type RuntimeErrorKind int

const (
	UnknownIdentifier RuntimeErrorKind = iota
	ArityMismatch
	TypeMismatch
	IndexOutOfRange
	UnhashableKey
	NotCallable
	NotSubscriptable
	NotIterable
	StackOverflow
	FrameOverflow
	IteratorExhausted
	NoBoundInstance
	ClassAlreadyDefined
	StepBudgetExceeded
)

// RuntimeError is both a Go error (for the VM-internal-error dispatch
// model, spec.md §7) and a Value (ERROR kind), so the same representation
// serves the tree-walking evaluator's error-value path and the VM's error
// return path alike.
type RuntimeError struct {
	Kind RuntimeErrorKind
	Msg  string
}

func (e *RuntimeError) Error() string    { return e.Msg }
func (*RuntimeError) Kind() Kind         { return ERROR }
func (e *RuntimeError) Inspect() string  { return "ERROR: " + e.Msg }

// --- OBJECT (bare attribute bag, produced by the `object()` builtin) ---

type Object struct {
	attrs map[string]Value
}

func NewObject() *Object { return &Object{attrs: make(map[string]Value)} }

func (*Object) Kind() Kind        { return OBJECT }
func (o *Object) Inspect() string { return "object{}" }
func (o *Object) GetAttr(name string) (Value, bool) {
	v, ok := o.attrs[name]
	return v, ok
}
func (o *Object) SetAttr(name string, v Value) error {
	o.attrs[name] = v
	return nil
}

// --- Iterator ---

// Iterator implements the counting/snapshot iterator protocol (spec.md
// §4.5): arrays and strings iterate their elements by position, hashes
// iterate a key snapshot taken at ITER time.
type Iterator struct {
	elems []Value
	pos   int
}

func newSliceIterator(elems []Value) *Iterator { return &Iterator{elems: elems} }

func (*Iterator) Kind() Kind        { return ITERATOR }
func (it *Iterator) Inspect() string { return "iterator" }
func (it *Iterator) HasNext() bool  { return it.pos < len(it.elems) }
func (it *Iterator) Next() (Value, error) {
	if !it.HasNext() {
		return nil, &RuntimeError{Kind: IteratorExhausted, Msg: "iterator exhausted"}
	}
	v := it.elems[it.pos]
	it.pos++
	return v, nil
}
