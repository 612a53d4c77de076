// Package engine holds the session controller that drives a human (X)
// against the computer (O).
package engine

import (
	"log/slog"
	"math/rand/v2"

	"github.com/jaminalder/tictactoe-ai/internal/ai"
	"github.com/jaminalder/tictactoe-ai/internal/domain"
)

// Phase is the controller state.
type Phase uint8

const (
	AwaitingHumanMove Phase = iota
	AwaitingAIMove
	GameOver
)

func (p Phase) String() string {
	switch p {
	case AwaitingAIMove:
		return "awaiting_ai_move"
	case GameOver:
		return "game_over"
	default:
		return "awaiting_human_move"
	}
}

// Score counts won games per player. Draws are not counted.
type Score struct {
	X int `json:"x"`
	O int `json:"o"`
}

// Snapshot is an immutable copy of a session's observable state.
type Snapshot struct {
	Difficulty domain.Difficulty
	Board      domain.Board
	Turn       domain.Player
	Phase      Phase
	Outcome    domain.Outcome
	Score      Score
	Moves      int
	// LastAI is the computer's most recent move, if any since restart.
	LastAI    domain.Pos
	HasLastAI bool
}

// Session is a single human-vs-computer match plus the running score. It is
// not safe for concurrent use; callers that share one must serialize access.
type Session struct {
	difficulty domain.Difficulty
	mover      ai.Mover
	log        *slog.Logger

	board     domain.Board
	turn      domain.Player
	phase     Phase
	outcome   domain.Outcome
	score     Score
	moves     int
	lastAI    domain.Pos
	hasLastAI bool
}

// Option configures a Session.
type Option func(*config)

type config struct {
	mover ai.Mover
	rng   *rand.Rand
	log   *slog.Logger
}

// WithMover overrides the generator chosen from the difficulty.
func WithMover(m ai.Mover) Option { return func(c *config) { c.mover = m } }

// WithRand sets the random source used by the Easy and Medium generators.
func WithRand(r *rand.Rand) Option { return func(c *config) { c.rng = r } }

// WithLogger sets the logger for internal-consistency warnings.
func WithLogger(l *slog.Logger) Option { return func(c *config) { c.log = l } }

// NewSession starts a session at difficulty d with X to move.
func NewSession(d domain.Difficulty, opts ...Option) *Session {
	var cfg config
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.mover == nil {
		cfg.mover = ai.ForDifficulty(d, cfg.rng)
	}
	if cfg.log == nil {
		cfg.log = slog.Default()
	}
	s := &Session{difficulty: d, mover: cfg.mover, log: cfg.log}
	s.Restart()
	return s
}

// ApplyHumanMove places X at (r, c) and, if the game goes on, lets the
// computer answer immediately. On error the session is left unchanged.
func (s *Session) ApplyHumanMove(r, c int) error {
	if s.phase == GameOver {
		return domain.ErrGameOver
	}
	if s.phase != AwaitingHumanMove || s.turn != domain.PlayerX {
		return domain.ErrNotYourTurn
	}
	nb, err := s.board.Place(domain.Pos{Row: r, Col: c}, domain.PlayerX)
	if err != nil {
		return err
	}
	s.commit(nb)
	if s.phase == AwaitingAIMove {
		s.applyAIMove()
	}
	return nil
}

// applyAIMove lets the generator answer from the current board. The board is
// a value, so the generator sees a snapshot it cannot alter.
func (s *Session) applyAIMove() {
	snapshot := s.board
	p, ok := s.mover.ChooseMove(snapshot)
	if !ok {
		s.log.Warn("ai produced no move", "err", domain.ErrExhaustedBoard, "board", snapshot.String(), "difficulty", s.difficulty.String())
		return
	}
	nb, err := snapshot.Place(p, domain.PlayerO)
	if err != nil {
		s.log.Warn("ai produced an illegal move", "err", err, "pos", p.String(), "board", snapshot.String())
		return
	}
	s.lastAI, s.hasLastAI = p, true
	s.commit(nb)
}

// commit installs nb, evaluates it and advances the turn or ends the game.
func (s *Session) commit(nb domain.Board) {
	mover := s.turn
	s.board = nb
	s.moves++
	s.outcome = domain.Detect(nb)
	if s.outcome.Over() {
		s.phase = GameOver
		switch {
		case s.outcome.Won(domain.PlayerX):
			s.score.X++
		case s.outcome.Won(domain.PlayerO):
			s.score.O++
		}
		return
	}
	s.turn = domain.Opponent(mover)
	if s.turn == domain.PlayerO {
		s.phase = AwaitingAIMove
	} else {
		s.phase = AwaitingHumanMove
	}
}

// Restart clears the board and keeps the score.
func (s *Session) Restart() {
	s.board = domain.Board{}
	s.turn = domain.PlayerX
	s.phase = AwaitingHumanMove
	s.outcome = domain.Outcome{}
	s.moves = 0
	s.lastAI, s.hasLastAI = domain.Pos{}, false
}

func (s *Session) Difficulty() domain.Difficulty { return s.difficulty }
func (s *Session) Board() domain.Board           { return s.board }
func (s *Session) Turn() domain.Player           { return s.turn }
func (s *Session) Phase() Phase                  { return s.phase }
func (s *Session) Outcome() domain.Outcome       { return s.outcome }
func (s *Session) Score() Score                  { return s.score }

// Snapshot returns a copy of the observable state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Difficulty: s.difficulty,
		Board:      s.board,
		Turn:       s.turn,
		Phase:      s.phase,
		Outcome:    s.outcome,
		Score:      s.score,
		Moves:      s.moves,
		LastAI:     s.lastAI,
		HasLastAI:  s.hasLastAI,
	}
}
