package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jaminalder/tictactoe-ai/internal/app"
	"github.com/jaminalder/tictactoe-ai/internal/domain"
)

type handlers struct {
	svc       *app.Service
	tpl       *templates
	log       *slog.Logger
	tokens    playerTokens
	heartbeat time.Duration
}

func (h *handlers) renderBoard(gs app.GameState, pid, errMsg string) []byte {
	return renderTemplate(h.tpl.board, "", newBoardView(gs, pid == gs.Owner, errMsg))
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// errorMessage maps service and domain errors to the text shown above the board.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, app.ErrNotAPlayer):
		return "You are a spectator"
	case errors.Is(err, domain.ErrOccupied):
		return "Cell is occupied"
	case errors.Is(err, domain.ErrOutOfBounds):
		return "Out of bounds"
	case errors.Is(err, domain.ErrGameOver):
		return "Game is over"
	case errors.Is(err, domain.ErrNotYourTurn):
		return "Not your turn"
	default:
		return "Invalid move"
	}
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, app.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, app.ErrNotAPlayer):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrIllegalMove):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *handlers) player(w http.ResponseWriter, r *http.Request) (string, bool) {
	pid, err := h.tokens.ensurePlayer(w, r)
	if err != nil {
		h.log.Error("issue player token", "err", err)
		http.Error(w, "failed to identify player", http.StatusInternalServerError)
		return "", false
	}
	return pid, true
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Difficulties []domain.Difficulty
		Selected     domain.Difficulty
	}{Difficulties: domain.Difficulties, Selected: domain.Hard}
	writeHTML(w, http.StatusOK, renderTemplate(h.tpl.index, "base", data))
}

func (h *handlers) create(w http.ResponseWriter, r *http.Request) {
	pid, ok := h.player(w, r)
	if !ok {
		return
	}
	_ = r.ParseForm()
	d := domain.Hard
	if v := r.Form.Get("difficulty"); v != "" {
		var err error
		if d, err = domain.ParseDifficulty(v); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	gs, err := h.svc.CreateGame(pid, d)
	if err != nil {
		http.Error(w, "failed to create", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/game/"+gs.ID, http.StatusSeeOther)
}

func (h *handlers) view(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	pid, ok := h.player(w, r)
	if !ok {
		return
	}
	gs, found := h.svc.Get(id)
	if !found {
		http.NotFound(w, r)
		return
	}
	// Render page with embedded board container
	writeHTML(w, http.StatusOK, renderTemplate(h.tpl.game, "base", newBoardView(*gs, pid == gs.Owner, "")))
}

func (h *handlers) state(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	gs, found := h.svc.Get(id)
	if !found {
		writeJSON(w, http.StatusNotFound, errorJSON{Error: app.ErrNotFound.Error()})
		return
	}
	pid, _ := h.tokens.playerID(r)
	writeJSON(w, http.StatusOK, newStateJSON(*gs, pid == gs.Owner))
}

func parseCoord(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	return v
}

func (h *handlers) play(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	pid, ok := h.player(w, r)
	if !ok {
		return
	}
	_ = r.ParseForm()
	ri := parseCoord(r.Form.Get("r"))
	ci := parseCoord(r.Form.Get("c"))
	gs, err := h.svc.Play(id, pid, ri, ci)
	h.respondBoard(w, r, id, pid, gs, err)
}

func (h *handlers) restart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	pid, ok := h.player(w, r)
	if !ok {
		return
	}
	gs, err := h.svc.Restart(id, pid)
	h.respondBoard(w, r, id, pid, gs, err)
}

// respondBoard renders the board fragment, with the error message if the
// action was rejected.
func (h *handlers) respondBoard(w http.ResponseWriter, r *http.Request, id, pid string, gs *app.GameState, err error) {
	var errMsg string
	if err != nil {
		if gs == nil {
			if g, ok := h.svc.Get(id); ok {
				gs = g
			}
		}
		errMsg = errorMessage(err)
		h.log.Debug("action rejected", "game", id, "err", err)
	}
	if gs == nil {
		http.NotFound(w, r)
		return
	}
	writeHTML(w, http.StatusOK, h.renderBoard(*gs, pid, errMsg))
}

func (h *handlers) quit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	pid, ok := h.player(w, r)
	if !ok {
		return
	}
	if err := h.svc.Quit(id, pid); err != nil {
		http.Error(w, errorMessage(err), errorStatus(err))
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *handlers) events(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	ctx := r.Context()
	ch, unsub, err := h.svc.Subscribe(ctx, id)
	if err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}
	defer unsub()
	pid, _ := h.tokens.playerID(r)

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	// Initial flush of headers
	flusher.Flush()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case gs, ok := <-ch:
			if !ok {
				return
			}
			_, _ = fmt.Fprintf(w, "event: board\n")
			_, _ = fmt.Fprintf(w, "data: %s\n\n", oneLine(h.renderBoard(gs, pid, "")))
			flusher.Flush()
		}
	}
}

// oneLine strips newlines so a fragment fits a single SSE data field.
func oneLine(b []byte) []byte {
	out := make([]byte, 0, len(b))
	for _, c := range b {
		if c != '\n' && c != '\r' {
			out = append(out, c)
		}
	}
	return out
}
