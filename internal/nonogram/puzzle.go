package nonogram

import "encoding/json"

// Puzzle is the on-disk JSON shape for a nonogram: one clue list per row,
// top to bottom, and one per column, left to right.
type Puzzle struct {
	Rows [][]int `json:"rows"`
	Cols [][]int `json:"cols"`
}

// Parse decodes a Puzzle and builds its starting Board.
func Parse(data []byte) (*Board, error) {
	var p Puzzle
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return NewBoard(p.Rows, p.Cols), nil
}
