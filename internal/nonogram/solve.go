package nonogram

import "fmt"

// Solve narrows b in place until no row or column can be narrowed further,
// and reports whether the board ended up fully decided. It returns an error
// if some row or column clue has no filling consistent with the cells
// already fixed by its crossing lines — a contradictory puzzle.
func Solve(b *Board) (bool, error) {
	for {
		changed := false

		for y := 0; y < b.Height; y++ {
			line := b.row(y)
			states := generateStates(b.RowClues[y], b.Width, line)
			if len(states) == 0 {
				return false, fmt.Errorf("nonogram: row %d has no filling consistent with its clue", y)
			}
			merged := intersectStates(states)
			if applyLine(line, merged) {
				b.setRow(y, merged)
				changed = true
			}
		}

		for x := 0; x < b.Width; x++ {
			line := b.col(x)
			states := generateStates(b.ColClues[x], b.Height, line)
			if len(states) == 0 {
				return false, fmt.Errorf("nonogram: column %d has no filling consistent with its clue", x)
			}
			merged := intersectStates(states)
			if applyLine(line, merged) {
				b.setCol(x, merged)
				changed = true
			}
		}

		if !changed {
			break
		}
	}
	return b.Solved(), nil
}

// applyLine reports whether merged fixes any cell that line left Unknown.
func applyLine(line, merged []Cell) bool {
	for i, c := range line {
		if c == Unknown && merged[i] != Unknown {
			return true
		}
	}
	return false
}

// generateStates enumerates every filling of a line of the given length
// that satisfies clue (a run-length sequence, e.g. [3, 1] means a run of 3
// filled cells, a gap, then a single filled cell) and agrees with whatever
// cells known already fixes.
func generateStates(clue []int, length int, known []Cell) [][]Cell {
	var out [][]Cell
	remainingAfter := make([]int, len(clue)+1)
	for i := len(clue) - 1; i >= 0; i-- {
		remainingAfter[i] = remainingAfter[i+1] + clue[i] + 1
	}

	var rec func(idx, pos int, line []Cell)
	rec = func(idx, pos int, line []Cell) {
		if idx == len(clue) {
			full := append([]Cell(nil), line...)
			for i := pos; i < length; i++ {
				full[i] = Crossed
			}
			if consistent(full, known) {
				out = append(out, full)
			}
			return
		}
		runLen := clue[idx]
		maxStart := length - remainingAfter[idx] + 1
		for start := pos; start <= maxStart; start++ {
			next := append([]Cell(nil), line...)
			for i := pos; i < start; i++ {
				next[i] = Crossed
			}
			for i := start; i < start+runLen; i++ {
				next[i] = Filled
			}
			nextPos := start + runLen
			if nextPos < length {
				next[nextPos] = Crossed
				nextPos++
			}
			rec(idx+1, nextPos, next)
		}
	}
	rec(0, 0, make([]Cell, length))
	return out
}

func consistent(full, known []Cell) bool {
	for i, k := range known {
		if k != Unknown && k != full[i] {
			return false
		}
	}
	return true
}

// intersectStates collapses a set of candidate fillings into the cells they
// all agree on, leaving the rest Unknown.
func intersectStates(states [][]Cell) []Cell {
	merged := append([]Cell(nil), states[0]...)
	for _, s := range states[1:] {
		for i, c := range s {
			if merged[i] != Unknown && merged[i] != c {
				merged[i] = Unknown
			}
		}
	}
	return merged
}
