package resolver

// SymbolTable is one scope in the resolver's scope chain. A new table is
// pushed for the program's top level, for every function literal body, and
// for every if/elif/else/while/for body (spec.md §4.3: "a new scope is
// entered on function literals, if branches, while/for bodies, and
// else-blocks").
//
// IsFunctionBoundary distinguishes a true function scope (fn literal; the
// program's top level behaves like one too, via Outer==nil) from a block
// scope (if/while/for/else body). Crossing a block boundary reclassifies a
// name as BLOCK, addressed live by frame depth; crossing a function
// boundary reclassifies it as FREE, captured by value at closure creation.
type SymbolTable struct {
	Outer              *SymbolTable
	IsFunctionBoundary bool

	store   map[string]Symbol
	numDefs int

	// FreeSymbols holds, in capture order, the origin Symbol (as seen in
	// the enclosing table) for each FREE symbol defined in this table.
	// The compiler uses this to emit "push captured value" instructions
	// ahead of each CLOSURE.
	FreeSymbols []Symbol
}

// NewSymbolTable creates the program's top-level table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{store: make(map[string]Symbol)}
}

// NewEnclosedSymbolTable pushes a new scope whose Outer is t.
func (t *SymbolTable) NewEnclosedSymbolTable(isFunctionBoundary bool) *SymbolTable {
	return &SymbolTable{
		Outer:              t,
		IsFunctionBoundary: isFunctionBoundary,
		store:              make(map[string]Symbol),
	}
}

// NumDefinitions is the count of LOCAL/BLOCK/GLOBAL slots allocated
// directly in this table (not counting FREE captures), i.e. the frame's
// required locals-array size.
func (t *SymbolTable) NumDefinitions() int { return t.numDefs }

// Define allocates a new slot for name in this table. At the outermost
// table (Outer == nil) it is GLOBAL; inside a function boundary it is
// LOCAL; inside a block scope it is still LOCAL relative to that block's
// own frame (only becomes BLOCK when read from a nested scope).
func (t *SymbolTable) Define(name string) Symbol {
	scope := LOCAL
	if t.Outer == nil {
		scope = GLOBAL
	}
	sym := Symbol{Name: name, Scope: scope, Index: t.numDefs}
	t.store[name] = sym
	t.numDefs++
	return sym
}

// DefineBuiltin binds name to a fixed builtin-function index, visible from
// every scope (BUILTIN passes through scope crossings unchanged).
func (t *SymbolTable) DefineBuiltin(index int, name string) Symbol {
	sym := Symbol{Name: name, Scope: BUILTIN, Index: index}
	t.store[name] = sym
	return sym
}

// DefineFunctionName binds a named function literal's own name within its
// own body, so the body can call itself recursively via CURRENT_CLOSURE.
func (t *SymbolTable) DefineFunctionName(name string) Symbol {
	sym := Symbol{Name: name, Scope: FUNCTION}
	t.store[name] = sym
	return sym
}

// DefineClass binds a class's own name to its class-table index, read via
// GET_CLASS. Like FUNCTION, it carries no local storage slot.
func (t *SymbolTable) DefineClass(name string, classIndex int) Symbol {
	sym := Symbol{Name: name, Scope: CLASS, Index: classIndex}
	t.store[name] = sym
	return sym
}

// defineFree records that this table captures origin (as seen in some
// enclosing table) as a free variable, returning the new FREE symbol local
// to this table.
func (t *SymbolTable) defineFree(origin Symbol) Symbol {
	t.FreeSymbols = append(t.FreeSymbols, origin)
	sym := Symbol{Name: origin.Name, Scope: FREE, Index: len(t.FreeSymbols) - 1}
	t.store[origin.Name] = sym
	return sym
}

// Resolve looks up name, walking outward through the scope chain and
// reclassifying the result according to spec.md §4.3:
//
//   - found in this table: returned as-is.
//   - found in an outer table as GLOBAL, BUILTIN or CLASS: passed through
//     unchanged, since those are addressable from anywhere.
//   - found in an outer table as LOCAL or BLOCK, with no function boundary
//     crossed getting there: reclassified as BLOCK, depth incremented by
//     one per block scope crossed. BLOCK symbols are addressed live, by
//     walking N frames up the runtime frame stack.
//   - otherwise (a function boundary was crossed, or the symbol is a
//     function's own FUNCTION-scoped name): captured as FREE in every
//     function scope between the use site and the definition.
func (t *SymbolTable) Resolve(name string) (Symbol, bool) {
	if sym, ok := t.store[name]; ok {
		return sym, true
	}
	if t.Outer == nil {
		return Symbol{}, false
	}
	sym, ok := t.Outer.Resolve(name)
	if !ok {
		return Symbol{}, false
	}
	switch sym.Scope {
	case GLOBAL, BUILTIN, CLASS:
		return sym, true
	}
	if !t.IsFunctionBoundary && (sym.Scope == LOCAL || sym.Scope == BLOCK) {
		depth := 1
		if sym.Scope == BLOCK {
			depth = sym.Depth + 1
		}
		blockSym := Symbol{Name: name, Scope: BLOCK, Index: sym.Index, Depth: depth}
		t.store[name] = blockSym
		return blockSym, true
	}
	return t.defineFree(sym), true
}
