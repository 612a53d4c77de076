package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jaminalder/tictactoe-ai/internal/app"
)

// Options configures the HTTP layer. Zero values pick usable defaults.
type Options struct {
	Logger      *slog.Logger
	TokenSecret []byte
	TokenTTL    time.Duration
	Heartbeat   time.Duration
}

// NewServer wires routes and returns an http.Handler.
func NewServer(s *app.Service, opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	if opts.Heartbeat <= 0 {
		opts.Heartbeat = 15 * time.Second
	}
	h := &handlers{
		svc:       s,
		tpl:       loadTemplates(),
		log:       opts.Logger,
		tokens:    playerTokens{secret: opts.TokenSecret, ttl: opts.TokenTTL},
		heartbeat: opts.Heartbeat,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(opts.Logger))
	r.Use(middleware.Recoverer)
	r.Get("/", h.index)
	r.Post("/game", h.create)
	r.Route("/game/{id}", func(r chi.Router) {
		r.Get("/", h.view)
		r.Get("/state", h.state)
		r.Post("/play", h.play)
		r.Post("/restart", h.restart)
		r.Post("/quit", h.quit)
		r.Get("/events", h.events)
		r.Get("/ws", h.ws)
	})
	return r
}

// requestLogger logs method, path, status, bytes, and duration.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("http",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"dur", time.Since(start).Round(time.Millisecond),
				"req", middleware.GetReqID(r.Context()),
			)
		})
	}
}
