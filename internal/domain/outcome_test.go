package domain

import "testing"

func TestDetectAllLines(t *testing.T) {
	for i, ln := range Lines {
		for _, side := range []Player{PlayerX, PlayerO} {
			var b Board
			for _, p := range ln {
				b[p.index()] = side.Cell()
			}
			got := Detect(b)
			if got.Status != Win || got.Winner != side {
				t.Fatalf("line %d side %v: expected win, got %+v", i, side, got)
			}
			if got.Line != ln {
				t.Fatalf("line %d: expected %v, got %v", i, ln, got.Line)
			}
			for _, p := range ln {
				if !got.Contains(p) {
					t.Fatalf("line %d: expected %v in winning line", i, p)
				}
			}
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name   string
		board  string
		status Status
		winner Player
	}{
		{"empty", "_________", InProgress, 0},
		{"in progress", "XOX/_O_/OX_", InProgress, 0},
		{"draw", "XOX/XOO/OXX", Draw, 0},
		{"draw alternate", "XOX/OOX/XXO", Draw, 0},
		{"win on last cell beats draw", "XOX/OXO/OXX", Win, PlayerX},
		{"col O", "XO_/_OX/_O_", Win, PlayerO},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Detect(mustParse(t, tt.board))
			if got.Status != tt.status || got.Winner != tt.winner {
				t.Fatalf("expected %v/%v, got %v/%v", tt.status, tt.winner, got.Status, got.Winner)
			}
		})
	}
}

func TestDetectCanonicalOrder(t *testing.T) {
	// Both row 0 and column 0 are complete; rows come first.
	b := mustParse(t, "XXX/X__/X__")
	got := Detect(b)
	if got.Line != Lines[0] {
		t.Fatalf("expected row 0, got %v", got.Line)
	}
	// Both diagonals complete; main diagonal first.
	b = mustParse(t, "O_O/_O_/O_O")
	got = Detect(b)
	if got.Line != Lines[6] {
		t.Fatalf("expected main diagonal, got %v", got.Line)
	}
	// X row 1 and O row 2 on the same board: first found wins.
	b = mustParse(t, "___/XXX/OOO")
	if got := Detect(b); got.Winner != PlayerX || got.Line != Lines[1] {
		t.Fatalf("expected X on row 1, got %+v", got)
	}
}

func TestDetectIsPure(t *testing.T) {
	b := mustParse(t, "XO_/XO_/___")
	first := Detect(b)
	for i := 0; i < 10; i++ {
		if got := Detect(b); got != first {
			t.Fatalf("call %d: expected %+v, got %+v", i, first, got)
		}
	}
	if b.String() != "XO_/XO_/___" {
		t.Fatalf("board changed by Detect: %v", b)
	}
}
