package board

import "testing"

func TestSquareString(t *testing.T) {
	cases := []struct {
		sq   Square
		want string
	}{
		{SquareA1, "a1"},
		{SquareH8, "h8"},
		{SquareE4, "e4"},
		{SquareNone, "-"},
	}
	for _, c := range cases {
		if got := c.sq.String(); got != c.want {
			t.Errorf("Square(%d).String() = %q, want %q", c.sq, got, c.want)
		}
	}
}

func TestSquareFromString(t *testing.T) {
	sq, err := SquareFromString("e4")
	if err != nil || sq != SquareE4 {
		t.Fatalf("SquareFromString(e4) = %v, %v, want SquareE4, nil", sq, err)
	}
	if _, err := SquareFromString("z9"); err == nil {
		t.Fatalf("SquareFromString(z9) should have failed")
	}
}

func TestColorFigureRoundTrip(t *testing.T) {
	for c := White; c <= Black; c++ {
		for f := Pawn; f <= King; f++ {
			p := ColorFigure(c, f)
			if p.Color() != c {
				t.Errorf("ColorFigure(%v,%v).Color() = %v, want %v", c, f, p.Color(), c)
			}
			if p.Figure() != f {
				t.Errorf("ColorFigure(%v,%v).Figure() = %v, want %v", c, f, p.Figure(), f)
			}
		}
	}
}

func TestMoveUCI(t *testing.T) {
	m := Move{From: SquareE7, To: SquareE8, Piece: WhitePawn, Promotion: WhiteQueen}
	if got, want := m.UCI(), "e7e8q"; got != want {
		t.Errorf("UCI() = %q, want %q", got, want)
	}
	if NullMove.UCI() != "0000" {
		t.Errorf("NullMove.UCI() = %q, want 0000", NullMove.UCI())
	}
}
