package vm

import "fmt"

// Builtins implements the fixed builtin table in the same order as
// resolver.Builtins; GET_BUILTIN's operand indexes directly into this
// slice, so the two must stay in lockstep.
var Builtins = []*BuiltinFunction{
	{Name: "len", Fn: builtinLen},
	{Name: "first", Fn: builtinFirst},
	{Name: "last", Fn: builtinLast},
	{Name: "rest", Fn: builtinRest},
	{Name: "push", Fn: builtinPush},
	{Name: "pop", Fn: builtinPop},
	{Name: "print", Fn: builtinPrint},
	{Name: "str", Fn: builtinStr},
	{Name: "object", Fn: builtinObject},
}

func arityError(name string, want, got int) error {
	return &RuntimeError{Kind: ArityMismatch, Msg: fmt.Sprintf("%s: expected %d argument(s), got %d", name, want, got)}
}

func builtinLen(args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, arityError("len", 1, len(args))
	}
	l, ok := args[0].(Lengthy)
	if !ok {
		return nil, &RuntimeError{Kind: TypeMismatch, Msg: fmt.Sprintf("len: no length on %s", args[0].Kind())}
	}
	return Int(l.Len()), nil
}

// builtinFirst/builtinLast return a soft ERROR value (not a Go error) when
// called on an empty array: the array isn't malformed, there's simply
// nothing there, and the caller may want to branch on that without aborting
// the whole program (spec.md §7's builtin-push-vs-VM-throw distinction).
func builtinFirst(args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, arityError("first", 1, len(args))
	}
	arr, ok := args[0].(*Array)
	if !ok {
		return nil, &RuntimeError{Kind: TypeMismatch, Msg: fmt.Sprintf("first: not an array: %s", args[0].Kind())}
	}
	if len(arr.Elems) == 0 {
		return &RuntimeError{Kind: IndexOutOfRange, Msg: "first: empty array"}, nil
	}
	return arr.Elems[0], nil
}

func builtinLast(args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, arityError("last", 1, len(args))
	}
	arr, ok := args[0].(*Array)
	if !ok {
		return nil, &RuntimeError{Kind: TypeMismatch, Msg: fmt.Sprintf("last: not an array: %s", args[0].Kind())}
	}
	if len(arr.Elems) == 0 {
		return &RuntimeError{Kind: IndexOutOfRange, Msg: "last: empty array"}, nil
	}
	return arr.Elems[len(arr.Elems)-1], nil
}

func builtinRest(args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, arityError("rest", 1, len(args))
	}
	arr, ok := args[0].(*Array)
	if !ok {
		return nil, &RuntimeError{Kind: TypeMismatch, Msg: fmt.Sprintf("rest: not an array: %s", args[0].Kind())}
	}
	if len(arr.Elems) == 0 {
		return NewArray(nil), nil
	}
	rest := make([]Value, len(arr.Elems)-1)
	copy(rest, arr.Elems[1:])
	return NewArray(rest), nil
}

// builtinPush and builtinPop are array-returning transforms, not mutators:
// arrays are otherwise only ever changed in place through SET_INDEX, so
// these two stay consistent with push always growing and pop always
// shrinking a freshly allocated copy.
func builtinPush(args []Value) (Value, error) {
	if len(args) != 2 {
		return nil, arityError("push", 2, len(args))
	}
	arr, ok := args[0].(*Array)
	if !ok {
		return nil, &RuntimeError{Kind: TypeMismatch, Msg: fmt.Sprintf("push: not an array: %s", args[0].Kind())}
	}
	next := make([]Value, len(arr.Elems)+1)
	copy(next, arr.Elems)
	next[len(arr.Elems)] = args[1]
	return NewArray(next), nil
}

func builtinPop(args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, arityError("pop", 1, len(args))
	}
	arr, ok := args[0].(*Array)
	if !ok {
		return nil, &RuntimeError{Kind: TypeMismatch, Msg: fmt.Sprintf("pop: not an array: %s", args[0].Kind())}
	}
	if len(arr.Elems) == 0 {
		return &RuntimeError{Kind: IndexOutOfRange, Msg: "pop: empty array"}, nil
	}
	next := make([]Value, len(arr.Elems)-1)
	copy(next, arr.Elems[:len(arr.Elems)-1])
	return NewArray(next), nil
}

func builtinPrint(args []Value) (Value, error) {
	parts := make([]any, len(args))
	for i, a := range args {
		parts[i] = stringify(a)
	}
	fmt.Println(parts...)
	return Null, nil
}

func builtinStr(args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, arityError("str", 1, len(args))
	}
	return String(stringify(args[0])), nil
}

func builtinObject(args []Value) (Value, error) {
	if len(args) != 0 {
		return nil, arityError("object", 0, len(args))
	}
	return NewObject(), nil
}

// stringify is str()/print()'s display form: a bare String prints
// unquoted, unlike Inspect (used everywhere else, e.g. inside an Array's
// own Inspect), which quotes it.
func stringify(v Value) string {
	if s, ok := v.(String); ok {
		return string(s)
	}
	return v.Inspect()
}
