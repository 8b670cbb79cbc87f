package bytefmt_test

import (
	"bytes"
	"testing"

	"github.com/smog-lang/smog/lang/bytefmt"
	"github.com/smog-lang/smog/lang/compiler"
	"github.com/smog-lang/smog/lang/vm"
	"github.com/stretchr/testify/require"
)

func TestWriteReadRoundTrip(t *testing.T) {
	bc := &compiler.Bytecode{
		Instructions: vm.Instructions{byte(vm.CONST), 0, 0, byte(vm.POP)},
		Constants: []vm.Value{
			vm.Int(42),
			vm.Bool(true),
			vm.String("hi"),
			vm.Null,
			&vm.CompiledFunction{Instructions: []byte{byte(vm.RETURN_VALUE)}, NumLocals: 2, NumParams: 1},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, bytefmt.Write(&buf, bc, "smog-test"))

	got, vs, err := bytefmt.Read(&buf)
	require.NoError(t, err)
	require.Contains(t, vs, "smog-test+")

	require.Equal(t, bc.Instructions, got.Instructions)
	require.Equal(t, vm.Int(42), got.Constants[0])
	require.Equal(t, vm.Bool(true), got.Constants[1])
	require.Equal(t, vm.String("hi"), got.Constants[2])
	require.Equal(t, vm.Null, got.Constants[3])

	fn, ok := got.Constants[4].(*vm.CompiledFunction)
	require.True(t, ok)
	require.Equal(t, 2, fn.NumLocals)
	require.Equal(t, 1, fn.NumParams)
}
