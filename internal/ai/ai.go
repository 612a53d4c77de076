// Package ai implements the computer's move generators. The computer always
// plays O; every generator is a pure function of the board apart from the
// random source used by Random.
package ai

import (
	"math/rand/v2"

	"github.com/jaminalder/tictactoe-ai/internal/domain"
)

// Mover chooses the computer's next move. ok is false when the board has no
// empty cell.
type Mover interface {
	ChooseMove(b domain.Board) (p domain.Pos, ok bool)
}

// ForDifficulty returns the generator for a tier. Unknown tiers play Hard.
func ForDifficulty(d domain.Difficulty, rng *rand.Rand) Mover {
	switch d {
	case domain.Easy:
		return NewRandom(rng)
	case domain.Medium:
		return NewHeuristic(rng)
	default:
		return Minimax{}
	}
}

// Random picks uniformly among the empty cells.
type Random struct {
	rng *rand.Rand
}

// NewRandom returns a Random generator. A nil rng uses the global source.
func NewRandom(rng *rand.Rand) *Random { return &Random{rng: rng} }

func (r *Random) ChooseMove(b domain.Board) (domain.Pos, bool) {
	cells := b.EmptyCells()
	if len(cells) == 0 {
		return domain.Pos{}, false
	}
	var i int
	if r.rng != nil {
		i = r.rng.IntN(len(cells))
	} else {
		i = rand.IntN(len(cells))
	}
	return cells[i], true
}

// Heuristic looks one ply ahead: take a winning cell, else block the
// opponent's winning cell, else play randomly. It does not see forks.
type Heuristic struct {
	fallback Mover
}

// NewHeuristic returns a Heuristic that falls back to Random on rng.
func NewHeuristic(rng *rand.Rand) *Heuristic {
	return &Heuristic{fallback: NewRandom(rng)}
}

func (h *Heuristic) ChooseMove(b domain.Board) (domain.Pos, bool) {
	if p, ok := completing(b, domain.PlayerO); ok {
		return p, true
	}
	if p, ok := completing(b, domain.PlayerX); ok {
		return p, true
	}
	return h.fallback.ChooseMove(b)
}

// completing returns the first empty cell, row-major, where side would win.
func completing(b domain.Board, side domain.Player) (domain.Pos, bool) {
	for _, p := range b.EmptyCells() {
		nb, _ := b.Place(p, side)
		if domain.Detect(nb).Won(side) {
			return p, true
		}
	}
	return domain.Pos{}, false
}
