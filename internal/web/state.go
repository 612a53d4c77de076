package web

import (
	"encoding/json"
	"net/http"

	"github.com/jaminalder/tictactoe-ai/internal/app"
	"github.com/jaminalder/tictactoe-ai/internal/domain"
	"github.com/jaminalder/tictactoe-ai/internal/engine"
)

// stateJSON is the wire form of a game for the JSON and websocket endpoints.
type stateJSON struct {
	ID         string       `json:"id"`
	Difficulty string       `json:"difficulty"`
	Board      [9]string    `json:"board"`
	Turn       string       `json:"turn"`
	Phase      string       `json:"phase"`
	Outcome    outcomeJSON  `json:"outcome"`
	Score      engine.Score `json:"score"`
	Moves      int          `json:"moves"`
	LastAI     *domain.Pos  `json:"lastAi,omitempty"`
	Owner      bool         `json:"owner"`
}

type outcomeJSON struct {
	Status string       `json:"status"`
	Winner string       `json:"winner,omitempty"`
	Line   []domain.Pos `json:"line,omitempty"`
}

func newStateJSON(gs app.GameState, owner bool) stateJSON {
	g := gs.Game
	out := stateJSON{
		ID:         gs.ID,
		Difficulty: g.Difficulty.String(),
		Turn:       g.Turn.String(),
		Phase:      g.Phase.String(),
		Outcome:    outcomeJSON{Status: g.Outcome.Status.String()},
		Score:      g.Score,
		Moves:      g.Moves,
		Owner:      owner,
	}
	for i, c := range g.Board {
		out.Board[i] = c.String()
	}
	if g.Outcome.Status == domain.Win {
		out.Outcome.Winner = g.Outcome.Winner.String()
		out.Outcome.Line = g.Outcome.Line[:]
	}
	if g.HasLastAI {
		p := g.LastAI
		out.LastAI = &p
	}
	return out
}

type errorJSON struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
