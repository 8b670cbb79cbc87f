package nonogram_test

import (
	"testing"

	"github.com/smog-lang/smog/internal/nonogram"
	"github.com/stretchr/testify/require"
)

// A 3x3 plus sign, small enough to solve by line propagation alone (no
// guessing required).
func TestSolvePlus(t *testing.T) {
	rows := [][]int{{1}, {3}, {1}}
	cols := [][]int{{1}, {3}, {1}}
	b := nonogram.NewBoard(rows, cols)
	solved, err := nonogram.Solve(b)
	require.NoError(t, err)
	require.True(t, solved)

	want := "" +
		".#.\n" +
		"###\n" +
		".#."
	require.Equal(t, want, b.String())
}

func TestSolveContradiction(t *testing.T) {
	rows := [][]int{{3}, {3}}
	cols := [][]int{{1}, {1}, {1}}
	b := nonogram.NewBoard(rows, cols)
	_, err := nonogram.Solve(b)
	require.Error(t, err)
}

func TestParse(t *testing.T) {
	b, err := nonogram.Parse([]byte(`{"rows": [[1]], "cols": [[1]]}`))
	require.NoError(t, err)
	require.Equal(t, 1, b.Width)
	require.Equal(t, 1, b.Height)
}
