package compiler_test

import (
	"testing"

	"github.com/smog-lang/smog/lang/compiler"
	"github.com/smog-lang/smog/lang/parser"
	"github.com/smog-lang/smog/lang/resolver"
	"github.com/smog-lang/smog/lang/vm"
	"github.com/stretchr/testify/require"
)

// run lexes, parses, resolves and compiles src, then runs it on a fresh VM
// and returns the value of the program's last expression statement
// (spec.md §8's testable-property scenarios run exactly this way).
func run(t *testing.T, src string) vm.Value {
	t.Helper()
	file, prog, err := parser.Parse("test.smog", []byte(src))
	require.NoError(t, err)

	res, err := resolver.Resolve(file, prog)
	require.NoError(t, err)

	bc, err := compiler.New(res).Compile(prog)
	require.NoError(t, err)

	machine := vm.New(bc.Instructions, bc.Constants)
	require.NoError(t, machine.Run())
	return machine.LastPoppedStackElem()
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		src  string
		want vm.Value
	}{
		{"1 + 2;", vm.Int(3)},
		{"10 - 4 * 2;", vm.Int(2)},
		{"(10 - 4) * 2;", vm.Int(12)},
		{"7 / 2;", vm.Int(3)}, // integer division truncates
		{"1 < 2;", vm.True},
		{"1 > 2;", vm.False},
		{"1 == 1;", vm.True},
		{"1 != 1;", vm.False},
		{"!true;", vm.False},
		{"-5 + 10;", vm.Int(5)},
		{`"foo" + "bar";`, vm.String("foobar")},
	}
	for _, tt := range tests {
		got := run(t, tt.src)
		require.Equal(t, tt.want, got, tt.src)
	}
}

func TestLetAndGlobals(t *testing.T) {
	got := run(t, `
		let x = 5;
		let y = x + 1;
		y;
	`)
	require.Equal(t, vm.Int(6), got)
}

func TestIfExpression(t *testing.T) {
	got := run(t, `
		let x = if (1 < 2) { 10; } else { 20; };
		x;
	`)
	require.Equal(t, vm.Int(10), got)

	got = run(t, `
		let x = if (1 > 2) { 10; };
		x;
	`)
	require.Equal(t, vm.Null, got)
}

// TestFibonacci matches spec.md §8's fib(9) == 34 scenario, exercising
// recursion via FUNCTION-scope self-reference (CURRENT_CLOSURE).
func TestFibonacci(t *testing.T) {
	got := run(t, `
		let fib = fn(n) {
			if (n < 2) {
				n;
			} else {
				fib(n - 1) + fib(n - 2);
			};
		};
		fib(9);
	`)
	require.Equal(t, vm.Int(34), got)
}

// TestForLoopBreak matches spec.md §8's for-loop-with-break scenario:
// summing 1..4 (breaking before 5) yields 10.
func TestForLoopBreak(t *testing.T) {
	got := run(t, `
		let sum = 0;
		for (x in [1, 2, 3, 4, 5]) {
			if (x > 4) {
				break;
			};
			sum = sum + x;
		}
		sum;
	`)
	require.Equal(t, vm.Int(10), got)
}

func TestWhileLoopContinue(t *testing.T) {
	got := run(t, `
		let i = 0;
		let sum = 0;
		while (i < 10) {
			i = i + 1;
			if (i == 5) {
				continue;
			};
			sum = sum + i;
		}
		sum;
	`)
	require.Equal(t, vm.Int(50), got)
}

// TestClosures matches spec.md §8's add(1,2)(8) == 11 scenario: a function
// returning a function that captures its outer parameters as free
// variables.
func TestClosures(t *testing.T) {
	got := run(t, `
		let adder = fn(a, b) {
			fn(c) { a + b + c; };
		};
		let add = adder(1, 2);
		add(8);
	`)
	require.Equal(t, vm.Int(11), got)
}

// TestClasses matches spec.md §8's class P("J").getN() == "J" scenario.
func TestClasses(t *testing.T) {
	got := run(t, `
		class Person {
			constructor(name) {
				this.name = name;
			}
			getName() {
				this.name;
			}
		}
		let p = Person("J");
		p.getName();
	`)
	require.Equal(t, vm.String("J"), got)
}

func TestClassWithoutCtor(t *testing.T) {
	got := run(t, `
		class Empty {
			greet() {
				"hi";
			}
		}
		let e = Empty();
		e.greet();
	`)
	require.Equal(t, vm.String("hi"), got)
}

func TestArraysAndIndex(t *testing.T) {
	got := run(t, `
		let a = [1, 2, 3];
		a[1];
	`)
	require.Equal(t, vm.Int(2), got)

	got = run(t, `
		let a = [1, 2, 3];
		a[1] = 99;
		a[1];
	`)
	require.Equal(t, vm.Int(99), got)
}

func TestHash(t *testing.T) {
	got := run(t, `
		let h = {"one": 1, "two": 2};
		h["one"];
	`)
	require.Equal(t, vm.Int(1), got)
}

func TestInAndNotIn(t *testing.T) {
	require.Equal(t, vm.True, run(t, `2 in [1, 2, 3];`))
	require.Equal(t, vm.False, run(t, `5 in [1, 2, 3];`))
	require.Equal(t, vm.True, run(t, `5 notin [1, 2, 3];`))
	require.Equal(t, vm.False, run(t, `2 notin [1, 2, 3];`))
}

func TestAndOrShortCircuit(t *testing.T) {
	require.Equal(t, vm.True, run(t, `true or (1 / 0 == 0);`))
	require.Equal(t, vm.False, run(t, `false and (1 / 0 == 0);`))
}

func TestBuiltins(t *testing.T) {
	require.Equal(t, vm.Int(3), run(t, `len([1, 2, 3]);`))
	require.Equal(t, vm.Int(1), run(t, `first([1, 2, 3]);`))
	require.Equal(t, vm.Int(3), run(t, `last([1, 2, 3]);`))
	require.Equal(t, vm.String("5"), run(t, `str(5);`))

	got := run(t, `push([1, 2], 3);`)
	arr, ok := got.(*vm.Array)
	require.True(t, ok)
	require.Equal(t, []vm.Value{vm.Int(1), vm.Int(2), vm.Int(3)}, arr.Elems)
}

// TestSetAttrRebindsMethod matches spec.md §9's class-binding note: assigning
// a bare function onto an OBJECT's attribute implicitly binds it as a
// method, so `this` resolves inside it without a class.
func TestSetAttrRebindsMethod(t *testing.T) {
	got := run(t, `
		let o = object();
		o.x = 42;
		o.get = fn() { this.x; };
		o.get();
	`)
	require.Equal(t, vm.Int(42), got)
}
