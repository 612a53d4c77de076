package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jaminalder/tictactoe-ai/internal/domain"
	"github.com/jaminalder/tictactoe-ai/internal/engine"
)

// Errors exposed by the service layer.
var (
	ErrNotFound   = errors.New("game not found")
	ErrNotAPlayer = errors.New("not a player")
)

// GameState is a copy of a hosted session as seen by callers.
type GameState struct {
	ID      string
	Owner   string
	Game    engine.Snapshot
	Created time.Time
	Updated time.Time
}

type hosted struct {
	id      string
	owner   string
	session *engine.Session
	created time.Time
	updated time.Time
}

func (h *hosted) state() GameState {
	return GameState{
		ID:      h.id,
		Owner:   h.owner,
		Game:    h.session.Snapshot(),
		Created: h.created,
		Updated: h.updated,
	}
}

type subscriber struct {
	ch        chan GameState
	closeOnce sync.Once
}

func (s *subscriber) close() { s.closeOnce.Do(func() { close(s.ch) }) }

// Service hosts sessions in memory and fans out state changes to subscribers.
// Each session is owned by the player who created it; everyone else may watch.
type Service struct {
	mu    sync.Mutex
	games map[string]*hosted
	subs  map[string]map[*subscriber]struct{}
	log   *slog.Logger
	opts  []engine.Option
}

// NewService creates a service logging to slog.Default.
func NewService(opts ...engine.Option) *Service {
	return NewServiceWithLogger(slog.Default(), opts...)
}

// NewServiceWithLogger creates a service; opts are applied to every session.
func NewServiceWithLogger(log *slog.Logger, opts ...engine.Option) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		games: make(map[string]*hosted),
		subs:  make(map[string]map[*subscriber]struct{}),
		log:   log,
		opts:  opts,
	}
}

// CreateGame starts a session at difficulty d owned by owner.
func (s *Service) CreateGame(owner string, d domain.Difficulty) (*GameState, error) {
	if owner == "" {
		return nil, ErrNotAPlayer
	}
	id := uuid.NewString()
	opts := append([]engine.Option{engine.WithLogger(s.log.With("game", id))}, s.opts...)
	now := time.Now()
	h := &hosted{
		id:      id,
		owner:   owner,
		session: engine.NewSession(d, opts...),
		created: now,
		updated: now,
	}

	s.mu.Lock()
	s.games[id] = h
	gs := h.state()
	s.mu.Unlock()

	s.log.Info("game created", "game", id, "difficulty", d.String())
	return &gs, nil
}

// Get returns a copy of the game state if present.
func (s *Service) Get(id string) (*GameState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.games[id]
	if !ok {
		return nil, false
	}
	gs := h.state()
	return &gs, true
}

// Play applies the owner's move; the computer answers within the same call.
func (s *Service) Play(id, playerID string, r, c int) (*GameState, error) {
	return s.mutate(id, playerID, func(h *hosted) error {
		if err := h.session.ApplyHumanMove(r, c); err != nil {
			return err
		}
		if out := h.session.Outcome(); out.Over() {
			s.log.Info("game finished", "game", id, "status", out.Status.String(), "winner", out.Winner.String())
		}
		return nil
	})
}

// Restart clears the board of a session, keeping its score.
func (s *Service) Restart(id, playerID string) (*GameState, error) {
	return s.mutate(id, playerID, func(h *hosted) error {
		h.session.Restart()
		return nil
	})
}

// Quit discards a session and its score, closing every subscriber.
func (s *Service) Quit(id, playerID string) error {
	s.mu.Lock()
	h, ok := s.games[id]
	if !ok {
		s.mu.Unlock()
		return ErrNotFound
	}
	if h.owner != playerID {
		s.mu.Unlock()
		return ErrNotAPlayer
	}
	delete(s.games, id)
	subs := s.subs[id]
	delete(s.subs, id)
	s.mu.Unlock()

	for sub := range subs {
		sub.close()
	}
	s.log.Info("game discarded", "game", id)
	return nil
}

// mutate validates ownership, runs fn under the lock and broadcasts the result.
func (s *Service) mutate(id, playerID string, fn func(*hosted) error) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	if h.owner != playerID {
		return nil, ErrNotAPlayer
	}
	if err := fn(h); err != nil {
		return nil, err
	}
	h.updated = time.Now()
	gs := h.state()
	s.broadcastLocked(id, gs)
	return &gs, nil
}

// broadcastLocked fans gs out without blocking; a subscriber whose buffer is
// still full is closed and dropped.
func (s *Service) broadcastLocked(id string, gs GameState) {
	set := s.subs[id]
	dropped := 0
	for sub := range set {
		select {
		case sub.ch <- gs:
		default:
			sub.close()
			delete(set, sub)
			dropped++
		}
	}
	if dropped > 0 {
		s.log.Debug("dropped slow subscribers", "game", id, "count", dropped)
	}
}

// Subscribe registers a subscriber for a game. The channel is closed when ctx
// ends, the subscriber falls behind, or the game is discarded.
func (s *Service) Subscribe(ctx context.Context, id string) (<-chan GameState, func(), error) {
	return s.SubscribeBuffered(ctx, id, 1)
}

// SubscribeBuffered is Subscribe with room for size pending updates before
// the subscriber counts as slow.
func (s *Service) SubscribeBuffered(ctx context.Context, id string, size int) (<-chan GameState, func(), error) {
	if size < 1 {
		size = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[id]; !ok {
		return nil, nil, ErrNotFound
	}
	set := s.subs[id]
	if set == nil {
		set = make(map[*subscriber]struct{})
		s.subs[id] = set
	}
	sub := &subscriber{ch: make(chan GameState, size)}
	set[sub] = struct{}{}

	unsubOnce := &sync.Once{}
	unsub := func() {
		unsubOnce.Do(func() {
			s.mu.Lock()
			if set, ok := s.subs[id]; ok {
				delete(set, sub)
			}
			s.mu.Unlock()
			sub.close()
		})
	}
	go func() {
		<-ctx.Done()
		unsub()
	}()
	return sub.ch, unsub, nil
}
