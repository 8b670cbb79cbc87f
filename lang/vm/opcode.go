package vm

import "fmt"

// Op is a single bytecode instruction's opcode byte. The full set and each
// opcode's operand widths are fixed by spec.md's opcode table; widths are
// documented here in the "stack picture" comment style the teacher's
// lang/machine/opcode.go uses, adapted to this language's closed,
// fixed-width instruction set (no VarInt-encoded operands).
type Op byte

const ( //nolint:revive
	CONST Op = iota // - CONST<const_index:2> value
	POP             // x POP -

	ADD // a b ADD (a+b)
	SUB // a b SUB (a-b)
	MUL // a b MUL (a*b)
	DIV // a b DIV (a/b)

	TRUE  // - TRUE true
	FALSE // - FALSE false
	NULL  // - NULL null

	EQ   // a b EQ (a==b)
	NEQ  // a b NEQ (a!=b)
	GT   // a b GT (a>b)
	GTEQ // a b GTEQ (a>=b)

	MINUS // x MINUS -x
	NOT   // x NOT !x

	JUMP          // - JUMP<target:2> -
	JUMP_NOT_TRUE // cond JUMP_NOT_TRUE<target:2> -

	GET_GLOBAL // - GET_GLOBAL<global_index:2> value
	SET_GLOBAL // value SET_GLOBAL<global_index:2> -

	GET_LOCAL // - GET_LOCAL<local_index:1> value
	SET_LOCAL // value SET_LOCAL<local_index:1> -

	GET_BLOCK // - GET_BLOCK<depth:2><idx:2> value
	SET_BLOCK // value SET_BLOCK<depth:2><idx:2> -

	GET_FREE // - GET_FREE<free_index:1> value

	CURRENT_CLOSURE // - CURRENT_CLOSURE closure

	GET_BUILTIN // - GET_BUILTIN<builtin_index:1> value

	ARRAY // x1..xn ARRAY<count:2> array
	HASH  // k1 v1..kn vn HASH<count:2> hash

	INDEX     // x i INDEX elem
	SET_INDEX // x i v SET_INDEX -

	GET_ATTR // x GET_ATTR<name_const:2> value
	SET_ATTR // x v SET_ATTR<name_const:2> -

	GET_INSTANCE // - GET_INSTANCE this

	CALL // fn a1..an CALL<argc:1> retval

	BLOCKCALL // closure BLOCKCALL value
	LOOPCALL  // a1..an closure LOOPCALL<argc:1> -

	RETURN_VALUE // value RETURN_VALUE -
	BLOCKRETURN  // value BLOCKRETURN -

	BREAK    // - BREAK -
	CONTINUE // - CONTINUE -

	CLOSURE // f1..fn CLOSURE<const_idx:2><free:1> closure

	ITER          // iterable ITER iterator
	ITER_HAS_NEXT // iterator ITER_HAS_NEXT iterator bool
	ITER_NEXT     // iterator ITER_NEXT iterator value

	DEF_CLASS // name [ctor] name1 m1..namen mn DEF_CLASS<class_idx:2><nctor:2><nmethods:2> -
	GET_CLASS // - GET_CLASS<class_idx:2> class

	maxOp
)

// widths gives the operand byte-widths for opcodes that take one or more
// fixed-width operands, in operand order. Opcodes absent from this map take
// no operand.
var widths = map[Op][]int{
	CONST:         {2},
	JUMP:          {2},
	JUMP_NOT_TRUE: {2},
	GET_GLOBAL:    {2},
	SET_GLOBAL:    {2},
	GET_LOCAL:     {1},
	SET_LOCAL:     {1},
	GET_BLOCK:     {2, 2},
	SET_BLOCK:     {2, 2},
	GET_FREE:      {1},
	GET_BUILTIN:   {1},
	ARRAY:         {2},
	HASH:          {2},
	GET_ATTR:      {2},
	SET_ATTR:      {2},
	CALL:          {1},
	LOOPCALL:      {1},
	CLOSURE:       {2, 1},
	DEF_CLASS:     {2, 2, 2},
	GET_CLASS:     {2},
}

// OperandWidths returns the byte widths of op's operands in order.
func OperandWidths(op Op) []int { return widths[op] }

var names = map[Op]string{
	CONST: "CONST", POP: "POP", ADD: "ADD", SUB: "SUB", MUL: "MUL", DIV: "DIV",
	TRUE: "TRUE", FALSE: "FALSE", NULL: "NULL", EQ: "EQ", NEQ: "NEQ", GT: "GT", GTEQ: "GTEQ",
	MINUS: "MINUS", NOT: "NOT", JUMP: "JUMP", JUMP_NOT_TRUE: "JUMP_NOT_TRUE",
	GET_GLOBAL: "GET_GLOBAL", SET_GLOBAL: "SET_GLOBAL", GET_LOCAL: "GET_LOCAL", SET_LOCAL: "SET_LOCAL",
	GET_BLOCK: "GET_BLOCK", SET_BLOCK: "SET_BLOCK", GET_FREE: "GET_FREE", CURRENT_CLOSURE: "CURRENT_CLOSURE",
	GET_BUILTIN: "GET_BUILTIN", ARRAY: "ARRAY", HASH: "HASH", INDEX: "INDEX", SET_INDEX: "SET_INDEX",
	GET_ATTR: "GET_ATTR", SET_ATTR: "SET_ATTR", GET_INSTANCE: "GET_INSTANCE", CALL: "CALL",
	BLOCKCALL: "BLOCKCALL", LOOPCALL: "LOOPCALL", RETURN_VALUE: "RETURN_VALUE", BLOCKRETURN: "BLOCKRETURN",
	BREAK: "BREAK", CONTINUE: "CONTINUE", CLOSURE: "CLOSURE", ITER: "ITER",
	ITER_HAS_NEXT: "ITER_HAS_NEXT", ITER_NEXT: "ITER_NEXT", DEF_CLASS: "DEF_CLASS", GET_CLASS: "GET_CLASS",
}

func (op Op) String() string {
	if n, ok := names[op]; ok {
		return n
	}
	return fmt.Sprintf("OP(%d)", byte(op))
}
