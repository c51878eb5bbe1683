package store

import (
	"strings"

	"github.com/robalobadob/emojile/internal/game"
)

// State is everything a browser session carries between requests.
type State struct {
	// Games is keyed by Key(date, mode).
	Games map[string]*game.Game `json:"games"`
	// Active is the key of the game the last page load resolved.
	Active string `json:"active,omitempty"`
}

// NewState returns an empty session.
func NewState() *State {
	return &State{Games: map[string]*game.Game{}}
}

// Key identifies one daily game within a session.
func Key(date string, mode game.Mode) string {
	return date + "|" + string(mode)
}

// Game returns the cached game for (date, mode), or nil.
func (s *State) Game(date string, mode game.Mode) *game.Game {
	return s.Games[Key(date, mode)]
}

// Put stores g under its own date and mode.
func (s *State) Put(g *game.Game) {
	if s.Games == nil {
		s.Games = map[string]*game.Game{}
	}
	s.Games[Key(g.Date, g.Mode)] = g
}

// SetActive marks (date, mode) as the game guesses apply to.
func (s *State) SetActive(date string, mode game.Mode) {
	s.Active = Key(date, mode)
}

// ActiveGame returns the active game, or nil.
func (s *State) ActiveGame() *game.Game {
	if s.Active == "" {
		return nil
	}
	return s.Games[s.Active]
}

// GameForRiddle returns the session game bound to riddle id, or nil. The
// active game wins when several dates share a riddle.
func (s *State) GameForRiddle(id int64) *game.Game {
	if g := s.ActiveGame(); g != nil && g.RiddleID == id {
		return g
	}
	for _, g := range s.Games {
		if g.RiddleID == id {
			return g
		}
	}
	return nil
}

// Prune drops games for any date other than date.
func (s *State) Prune(date string) {
	prefix := date + "|"
	for k := range s.Games {
		if !strings.HasPrefix(k, prefix) {
			delete(s.Games, k)
		}
	}
	if _, ok := s.Games[s.Active]; !ok {
		s.Active = ""
	}
}

// Clone returns a deep copy.
func (s *State) Clone() *State {
	out := &State{Games: make(map[string]*game.Game, len(s.Games)), Active: s.Active}
	for k, g := range s.Games {
		c := *g
		c.Guessed = append([]string(nil), g.Guessed...)
		out.Games[k] = &c
	}
	return out
}
