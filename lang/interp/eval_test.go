package interp_test

import (
	"testing"

	"github.com/smog-lang/smog/lang/interp"
	"github.com/smog-lang/smog/lang/parser"
	"github.com/smog-lang/smog/lang/vm"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, src string) vm.Value {
	t.Helper()
	_, prog, err := parser.Parse("test.smog", []byte(src))
	require.NoError(t, err)
	got, err := interp.New().Eval(prog)
	require.NoError(t, err)
	return got
}

func TestArithmetic(t *testing.T) {
	require.Equal(t, vm.Int(3), run(t, "1 + 2;"))
	require.Equal(t, vm.Int(3), run(t, "7 / 2;"))
	require.Equal(t, vm.String("foobar"), run(t, `"foo" + "bar";`))
}

// TestFibonacci matches spec.md §8's fib(9) == 34 scenario, cross-checked
// against the compiler/VM's TestFibonacci for property 6 (evaluator/VM
// equivalence).
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

func TestBuiltins(t *testing.T) {
	require.Equal(t, vm.Int(3), run(t, `len([1, 2, 3]);`))
	require.Equal(t, vm.String("5"), run(t, `str(5);`))
}
