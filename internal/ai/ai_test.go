package ai

import (
	"math/rand/v2"
	"testing"

	"github.com/jaminalder/tictactoe-ai/internal/domain"
)

func board(t *testing.T, s string) domain.Board {
	t.Helper()
	b, err := domain.ParseBoard(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return b
}

func seeded() *rand.Rand { return rand.New(rand.NewPCG(1, 2)) }

func TestRandomPicksEmptyCell(t *testing.T) {
	b := board(t, "XO_/X_O/_XO")
	r := NewRandom(seeded())
	seen := map[domain.Pos]bool{}
	for i := 0; i < 200; i++ {
		p, ok := r.ChooseMove(b)
		if !ok {
			t.Fatalf("expected a move")
		}
		if b.At(p) != domain.Empty {
			t.Fatalf("picked occupied cell %v", p)
		}
		seen[p] = true
	}
	if len(seen) != 3 {
		t.Fatalf("expected all 3 empty cells to be picked eventually, got %v", seen)
	}
}

func TestGeneratorsOnFullBoard(t *testing.T) {
	b := board(t, "XOX/XOO/OXX")
	movers := map[string]Mover{
		"random":    NewRandom(seeded()),
		"heuristic": NewHeuristic(seeded()),
		"minimax":   Minimax{},
	}
	for name, m := range movers {
		if p, ok := m.ChooseMove(b); ok {
			t.Fatalf("%s: expected no move on full board, got %v", name, p)
		}
	}
}

func TestHeuristicWinBeforeBlock(t *testing.T) {
	h := NewHeuristic(seeded())
	p, ok := h.ChooseMove(board(t, "XX_/OO_/___"))
	if !ok || p != (domain.Pos{Row: 1, Col: 2}) {
		t.Fatalf("expected winning move (1,2), got %v ok=%v", p, ok)
	}
}

func TestHeuristicBlocks(t *testing.T) {
	h := NewHeuristic(seeded())
	p, ok := h.ChooseMove(board(t, "XX_/O__/___"))
	if !ok || p != (domain.Pos{Row: 0, Col: 2}) {
		t.Fatalf("expected block at (0,2), got %v ok=%v", p, ok)
	}
}

func TestHeuristicFirstWinInRowMajorOrder(t *testing.T) {
	// O wins at (0,2) via the row or at (2,0) via the column.
	h := NewHeuristic(seeded())
	p, _ := h.ChooseMove(board(t, "OO_/OXX/_X_"))
	if p != (domain.Pos{Row: 0, Col: 2}) {
		t.Fatalf("expected (0,2), got %v", p)
	}
}

func TestHeuristicMissesFork(t *testing.T) {
	// X at opposite corners with O in the center: no immediate win or block,
	// so the move comes from the random fallback.
	h := NewHeuristic(seeded())
	b := board(t, "X__/_O_/__X")
	for i := 0; i < 20; i++ {
		p, ok := h.ChooseMove(b)
		if !ok || b.At(p) != domain.Empty {
			t.Fatalf("expected an empty cell, got %v ok=%v", p, ok)
		}
	}
}

func TestMinimaxTakesImmediateWin(t *testing.T) {
	p, ok := Minimax{}.ChooseMove(board(t, "O_O/XX_/X__"))
	if !ok || p != (domain.Pos{Row: 0, Col: 1}) {
		t.Fatalf("expected (0,1), got %v ok=%v", p, ok)
	}
}

func TestMinimaxBlocksWhenNoWin(t *testing.T) {
	p, ok := Minimax{}.ChooseMove(board(t, "XX_/_O_/___"))
	if !ok || p != (domain.Pos{Row: 0, Col: 2}) {
		t.Fatalf("expected block at (0,2), got %v ok=%v", p, ok)
	}
}

func TestMinimaxAnswersCornerWithCenter(t *testing.T) {
	b := board(t, "X__/___/___")
	p, ok := Minimax{}.ChooseMove(b)
	if !ok {
		t.Fatalf("expected a move")
	}
	if p != (domain.Pos{Row: 1, Col: 1}) {
		t.Fatalf("expected center, got %v", p)
	}
	nb, _ := b.Place(p, domain.PlayerO)
	if s := Score(nb, false); s < 0 {
		t.Fatalf("reply %v loses under optimal play (score %d)", p, s)
	}
}

func TestMinimaxTieKeepsFirstCell(t *testing.T) {
	// Every opening move draws, so the first empty cell is kept.
	p, ok := Minimax{}.ChooseMove(domain.Board{})
	if !ok || p != (domain.Pos{Row: 0, Col: 0}) {
		t.Fatalf("expected (0,0), got %v ok=%v", p, ok)
	}
}

func TestScoreTerminal(t *testing.T) {
	tests := []struct {
		board string
		want  int
	}{
		{"XXX/OO_/___", -1},
		{"OOO/XX_/X__", 1},
		{"XOX/XOO/OXX", 0},
	}
	for _, tt := range tests {
		for _, maximizing := range []bool{true, false} {
			if got := Score(board(t, tt.board), maximizing); got != tt.want {
				t.Fatalf("%s maximizing=%v: expected %d, got %d", tt.board, maximizing, tt.want, got)
			}
		}
	}
}

func TestScoreEmptyBoardIsDraw(t *testing.T) {
	if s := Score(domain.Board{}, false); s != 0 {
		t.Fatalf("expected perfect play to draw, got %d", s)
	}
}

// Every line of human play against Minimax ends in a draw or an O win.
func TestMinimaxNeverLoses(t *testing.T) {
	var games int
	var walk func(b domain.Board)
	walk = func(b domain.Board) {
		for _, p := range b.EmptyCells() {
			nb, _ := b.Place(p, domain.PlayerX)
			out := domain.Detect(nb)
			if out.Won(domain.PlayerX) {
				t.Fatalf("X won against minimax: %v", nb)
			}
			if out.Over() {
				games++
				continue
			}
			reply, ok := Minimax{}.ChooseMove(nb)
			if !ok {
				t.Fatalf("no reply on %v", nb)
			}
			nb, _ = nb.Place(reply, domain.PlayerO)
			if domain.Detect(nb).Over() {
				games++
				continue
			}
			walk(nb)
		}
	}
	walk(domain.Board{})
	if games == 0 {
		t.Fatalf("expected games to be played")
	}
}

func TestForDifficulty(t *testing.T) {
	if _, ok := ForDifficulty(domain.Easy, seeded()).(*Random); !ok {
		t.Fatalf("Easy should map to Random")
	}
	if _, ok := ForDifficulty(domain.Medium, seeded()).(*Heuristic); !ok {
		t.Fatalf("Medium should map to Heuristic")
	}
	if _, ok := ForDifficulty(domain.Hard, seeded()).(Minimax); !ok {
		t.Fatalf("Hard should map to Minimax")
	}
}
