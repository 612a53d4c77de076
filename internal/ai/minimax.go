package ai

import "github.com/jaminalder/tictactoe-ai/internal/domain"

// Minimax searches the full game tree with O maximizing. Scores are -1, 0 and
// +1 with no depth weighting, so a win in one ply and a win in five rank the
// same. Ties keep the first cell found in row-major order.
type Minimax struct{}

func (Minimax) ChooseMove(b domain.Board) (domain.Pos, bool) {
	var best domain.Pos
	found := false
	bestScore := 0
	for _, p := range b.EmptyCells() {
		nb, _ := b.Place(p, domain.PlayerO)
		s := Score(nb, false)
		if !found || s > bestScore {
			best, bestScore, found = p, s, true
		}
	}
	return best, found
}

// Score evaluates b under optimal play. maximizing means O is to move.
func Score(b domain.Board, maximizing bool) int {
	out := domain.Detect(b)
	switch {
	case out.Won(domain.PlayerX):
		return -1
	case out.Won(domain.PlayerO):
		return 1
	case out.Status == domain.Draw:
		return 0
	}

	mover := domain.PlayerX
	if maximizing {
		mover = domain.PlayerO
	}
	best := 0
	for i, p := range b.EmptyCells() {
		nb, _ := b.Place(p, mover)
		s := Score(nb, !maximizing)
		if i == 0 || (maximizing && s > best) || (!maximizing && s < best) {
			best = s
		}
	}
	return best
}
