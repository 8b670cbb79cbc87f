// Package resolver implements the symbol resolver: it walks a parsed AST
// and assigns every name reference a (scope-kind, index, depth) Symbol,
// as specified in spec.md §4.3. The SymbolTable forms a singly-linked
// chain via Outer, mirroring the teacher's resolver package's chain of
// scopes (lang/resolver/resolver.go in the teacher), generalized from its
// Starlark-flavored label/cell machinery down to this spec's simpler
// three-axis scheme (GLOBAL/LOCAL/BLOCK/FREE/BUILTIN/FUNCTION/CLASS).
package resolver

// Scope classifies where a Symbol's storage lives.
type Scope int

const (
	GLOBAL Scope = iota
	LOCAL
	FREE
	BUILTIN
	BLOCK
	FUNCTION
	CLASS
)

func (s Scope) String() string {
	switch s {
	case GLOBAL:
		return "GLOBAL"
	case LOCAL:
		return "LOCAL"
	case FREE:
		return "FREE"
	case BUILTIN:
		return "BUILTIN"
	case BLOCK:
		return "BLOCK"
	case FUNCTION:
		return "FUNCTION"
	case CLASS:
		return "CLASS"
	default:
		return "UNKNOWN"
	}
}

// Symbol is a resolved name: its storage classification, its slot index
// within that scope, and (for BLOCK symbols) the number of enclosing block
// frames to skip when reaching it at runtime.
type Symbol struct {
	Name  string
	Scope Scope
	Index int
	Depth int
}
