// internal/httpserver/server.go
//
// HTTP server wiring for Emojile.
// Responsibilities:
//   - Router + middleware (request IDs, request logging, panic recovery, timeouts, CORS).
//   - Game pages: "/" and "/more-games" (HTML).
//   - Game API: GET /api/state, POST /guess, GET /api/get-emoji/{riddleID}.
//   - Diagnostics: "/health".
//
// Notes:
//   - CORS is origin-aware and credentials-enabled so the session cookies work
//     for a separately hosted client.
//   - The answer never leaves the server until a game is completed.

package httpserver

import (
	"context"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/robalobadob/emojile/internal/catalog"
	"github.com/robalobadob/emojile/internal/config"
	"github.com/robalobadob/emojile/internal/game"
	"github.com/robalobadob/emojile/internal/stats"
	"github.com/robalobadob/emojile/internal/store"
)

// RiddleSelector resolves the riddle of the day.
type RiddleSelector interface {
	Today(ctx context.Context, mode game.Mode, date time.Time) (*catalog.Riddle, error)
}

// RiddleLookup reads riddles by id.
type RiddleLookup interface {
	Get(ctx context.Context, id int64) (*catalog.Riddle, error)
}

// StatsRecorder reads and updates player statistics.
type StatsRecorder interface {
	Get(ctx context.Context, player string, mode game.Mode) (stats.PlayerStats, error)
	Record(ctx context.Context, player string, mode game.Mode, res stats.GameResult) (stats.PlayerStats, error)
}

// Deps are the collaborators a Server needs.
type Deps struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Sessions store.Store
	Selector RiddleSelector
	Riddles  RiddleLookup
	Stats    StatsRecorder
	// Now defaults to time.Now.
	Now func() time.Time
}

// Server bundles the router and game dependencies.
type Server struct {
	r         *chi.Mux
	cfg       *config.Config
	logger    zerolog.Logger
	sessions  store.Store
	selector  RiddleSelector
	riddles   RiddleLookup
	stats     StatsRecorder
	templates *template.Template
	now       func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(d Deps) (*Server, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	s := &Server{
		r:         chi.NewRouter(),
		cfg:       d.Config,
		logger:    d.Logger,
		sessions:  d.Sessions,
		selector:  d.Selector,
		riddles:   d.Riddles,
		stats:     d.Stats,
		templates: tmpl,
		now:       d.Now,
	}
	if s.now == nil {
		s.now = time.Now
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add request id to context
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger(s.logger))         // per-request zerolog logger
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{s.cfg.ClientOrigin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}).Handler)

	// --- pages ---
	s.r.Get("/", s.handleHome)
	s.r.Get("/more-games", s.handleMoreGames)

	// --- json api ---
	s.r.Group(func(r chi.Router) {
		r.Use(jsonContentType)
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"ok":true}`))
		})
		r.Get("/api/state", s.handleState)
		r.Post("/guess", s.handleGuess)
		r.Post("/api/make-guess", s.handleGuess)
		r.Get("/api/get-emoji/{riddleID}", s.handleGetEmoji)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s, nil
}

// Handler exposes the router (used by the http.Server and by tests).
func (s *Server) Handler() http.Handler { return s.r }
