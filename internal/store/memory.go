// internal/store/memory.go
//
// In-memory implementation of Store.
//
// Characteristics:
//   - Sessions are keyed by a random nanoid held in the session cookie.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Stored and returned states are copies, so handlers never share a map.
//   - State is lost when the process restarts.

package store

import (
	"net/http"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/robalobadob/emojile/internal/security"
)

type memory struct {
	mu       sync.RWMutex
	sessions map[string]*State
}

// NewMemoryStore constructs an in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*State)}
}

func (m *memory) Load(r *http.Request) (*State, error) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return NewState(), nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if st, ok := m.sessions[c.Value]; ok {
		return st.Clone(), nil
	}
	return NewState(), nil
}

func (m *memory) Save(w http.ResponseWriter, r *http.Request, st *State) error {
	id := ""
	if c, err := r.Cookie(CookieName); err == nil {
		id = c.Value
	}
	if id == "" {
		var err error
		if id, err = gonanoid.New(); err != nil {
			return err
		}
	}

	m.mu.Lock()
	m.sessions[id] = st.Clone()
	m.mu.Unlock()

	http.SetCookie(w, security.NewCookie(r, CookieName, id, time.Now().Add(Lifetime)))
	return nil
}
