// internal/store/store.go
//
// Session persistence for in-progress games.
//
// Two backends are available:
//   - cookie: the whole State travels in a signed JWT cookie (default).
//   - memory: State lives in this process, the cookie holds only an id.
//
// Neither backend ever sees a riddle's answer.

package store

import (
	"net/http"
	"time"

	"github.com/robalobadob/emojile/internal/config"
	"github.com/rs/zerolog"
)

// CookieName is shared by both backends.
const CookieName = "emojile_session"

// Lifetime bounds how long an idle session survives.
const Lifetime = 7 * 24 * time.Hour

// Store loads and saves per-browser session state.
type Store interface {
	// Load returns the session for r. A missing or unreadable session yields
	// an empty State, not an error.
	Load(r *http.Request) (*State, error)

	// Save persists st and writes whatever cookie the backend needs.
	Save(w http.ResponseWriter, r *http.Request, st *State) error
}

// New picks the backend named in cfg.
func New(cfg *config.Config, logger zerolog.Logger) Store {
	if cfg.SessionBackend == config.SessionMemory {
		logger.Info().Msg("using in-memory session store")
		return NewMemoryStore()
	}
	return NewCookieStore(cfg.SecretKey, logger)
}
