package token

import "testing"

func TestMakePosLineCol(t *testing.T) {
	cases := []struct {
		line, col int
	}{
		{1, 1},
		{1, 80},
		{42, 7},
		{MaxLines, MaxCols},
	}
	for _, c := range cases {
		p := MakePos(c.line, c.col)
		gotLine, gotCol := p.LineCol()
		if gotLine != c.line || gotCol != c.col {
			t.Errorf("MakePos(%d,%d).LineCol() = (%d,%d)", c.line, c.col, gotLine, gotCol)
		}
		if p.Unknown() {
			t.Errorf("MakePos(%d,%d) unexpectedly Unknown", c.line, c.col)
		}
	}
}

func TestPosUnknown(t *testing.T) {
	if !Pos(0).Unknown() {
		t.Errorf("zero Pos should be Unknown")
	}
	if MakePos(1, 1).Unknown() {
		t.Errorf("MakePos(1,1) should not be Unknown")
	}
}

func TestFileLineCol(t *testing.T) {
	f := NewFile("test.smog", -1)
	// "let a = 1\nlet b = 2\n"
	//  0         10
	f.AddLine(10)
	f.AddLine(20)

	cases := []struct {
		off        int
		wantLine   int
		wantCol    int
	}{
		{0, 1, 1},
		{9, 1, 10},
		{10, 2, 1},
		{19, 2, 10},
		{20, 3, 1},
	}
	for _, c := range cases {
		p := f.Pos(c.off)
		line, col := p.LineCol()
		if line != c.wantLine || col != c.wantCol {
			t.Errorf("Pos(%d).LineCol() = (%d,%d), want (%d,%d)", c.off, line, col, c.wantLine, c.wantCol)
		}
	}
}

func TestFilePosition(t *testing.T) {
	f := NewFile("main.smog", 5)
	p := f.Pos(0)
	pos := f.Position(p)
	if pos.Filename != "main.smog" || pos.Line != 1 || pos.Col != 1 {
		t.Errorf("Position() = %+v", pos)
	}
	if pos.String() != "main.smog:1:1" {
		t.Errorf("String() = %q", pos.String())
	}
}

func TestErrorList(t *testing.T) {
	var el ErrorList
	if el.Err() != nil {
		t.Fatalf("empty list should report no error")
	}
	el.Add(Position{Filename: "a.smog", Line: 3, Col: 1}, "boom")
	el.Add(Position{Filename: "a.smog", Line: 1, Col: 1}, "first")
	el.Sort()
	if el.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", el.Len())
	}
	errs := el.Errors()
	if errs[0].Msg != "first" || errs[1].Msg != "boom" {
		t.Errorf("Sort() did not order by position: %+v", errs)
	}
	if el.Err() == nil {
		t.Fatalf("non-empty list should report an error")
	}
}
