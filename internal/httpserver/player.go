package httpserver

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/emojile/internal/security"
)

const (
	playerCookieName     = "player_uuid"
	playerCookieLifetime = 5 * 365 * 24 * time.Hour
)

// playerID returns the player's UUID from the cookie, or "" when it is
// missing or malformed.
func playerID(r *http.Request) string {
	c, err := r.Cookie(playerCookieName)
	if err != nil {
		return ""
	}
	id, err := uuid.Parse(c.Value)
	if err != nil {
		return ""
	}
	return id.String()
}

// ensurePlayer returns the existing player id or issues a new one.
func ensurePlayer(w http.ResponseWriter, r *http.Request) string {
	if id := playerID(r); id != "" {
		return id
	}
	id := uuid.NewString()
	http.SetCookie(w, security.NewCookie(r, playerCookieName, id, time.Now().Add(playerCookieLifetime)))
	return id
}
