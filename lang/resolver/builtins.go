package resolver

// Builtins lists the builtin functions available in every scope, in the
// fixed order referenced by GET_BUILTIN's index operand (spec.md §4.4).
// The index of a name in this slice is its GET_BUILTIN operand, and must
// stay in sync with lang/vm's builtin implementation table.
var Builtins = []string{
	"len",
	"first",
	"last",
	"rest",
	"push",
	"pop",
	"print",
	"str",
	"object",
}

// NewGlobalSymbolTable returns the program's top-level table with every
// builtin predefined, so ordinary name resolution finds them without any
// special-casing in the resolver's AST walk.
func NewGlobalSymbolTable() *SymbolTable {
	t := NewSymbolTable()
	for i, name := range Builtins {
		t.DefineBuiltin(i, name)
	}
	return t
}
