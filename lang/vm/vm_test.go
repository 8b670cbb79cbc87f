package vm_test

import (
	"testing"

	"github.com/smog-lang/smog/lang/vm"
	"github.com/stretchr/testify/require"
)

// TestArrayIndexOutOfRange exercises the soft-error path directly: an
// out-of-range Index call returns a *RuntimeError rather than panicking.
func TestArrayIndexOutOfRange(t *testing.T) {
	arr := vm.NewArray([]vm.Value{vm.Int(1), vm.Int(2)})
	_, err := arr.Index(5)
	require.Error(t, err)
	rerr, ok := err.(*vm.RuntimeError)
	require.True(t, ok)
	require.Equal(t, vm.IndexOutOfRange, rerr.Kind)
}

func TestHashRoundTrip(t *testing.T) {
	h := vm.NewHash()
	h.Set(vm.String("a"), vm.Int(1))
	h.Set(vm.String("b"), vm.Int(2))
	h.Set(vm.String("a"), vm.Int(3)) // overwrite, order unaffected

	v, ok := h.Get(vm.String("a"))
	require.True(t, ok)
	require.Equal(t, vm.Int(3), v)

	require.Equal(t, 2, h.Len())

	it := h.NewIterator()
	var keys []string
	for it.HasNext() {
		pair, err := it.Next()
		require.NoError(t, err)
		keys = append(keys, string(pair.(*vm.HashPair).Key.(vm.String)))
	}
	require.Equal(t, []string{"a", "b"}, keys)
}

func TestStringIndexAndIterator(t *testing.T) {
	s := vm.String("abc")
	v, err := s.Index(1)
	require.NoError(t, err)
	require.Equal(t, vm.String("b"), v)

	_, err = s.Index(10)
	require.Error(t, err)

	it := s.NewIterator()
	var got []string
	for it.HasNext() {
		v, err := it.Next()
		require.NoError(t, err)
		got = append(got, string(v.(vm.String)))
	}
	require.Equal(t, []string{"a", "b", "c"}, got)
}

func TestIteratorExhaustion(t *testing.T) {
	it := vm.NewArray([]vm.Value{vm.Int(1)}).NewIterator()
	require.True(t, it.HasNext())
	_, err := it.Next()
	require.NoError(t, err)
	require.False(t, it.HasNext())
	_, err = it.Next()
	require.Error(t, err)
}
