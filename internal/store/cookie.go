package store

import (
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/hkdf"

	"github.com/robalobadob/emojile/internal/security"
)

// sessionClaims carries the State inside the token.
type sessionClaims struct {
	State *State `json:"st"`
	jwt.RegisteredClaims
}

type cookieStore struct {
	key    []byte
	logger zerolog.Logger
	now    func() time.Time
}

// NewCookieStore signs sessions with a key derived from secret.
func NewCookieStore(secret string, logger zerolog.Logger) Store {
	return &cookieStore{
		key:    deriveKey(secret),
		logger: logger.With().Str("component", "session").Logger(),
		now:    time.Now,
	}
}

// deriveKey stretches SECRET_KEY into a dedicated HMAC key.
func deriveKey(secret string) []byte {
	key := make([]byte, 32)
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte("emojile session cookie"))
	if _, err := io.ReadFull(r, key); err != nil {
		panic(fmt.Sprintf("derive session key: %v", err))
	}
	return key
}

func (s *cookieStore) Load(r *http.Request) (*State, error) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return NewState(), nil
	}

	claims := &sessionClaims{}
	_, err = jwt.ParseWithClaims(c.Value, claims,
		func(t *jwt.Token) (interface{}, error) { return s.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		s.logger.Debug().Err(err).Msg("discarding unreadable session cookie")
		return NewState(), nil
	}
	st := NewState()
	if claims.State != nil {
		st.Active = claims.State.Active
		for k, g := range claims.State.Games {
			if g != nil {
				st.Games[k] = g
			}
		}
	}
	return st, nil
}

func (s *cookieStore) Save(w http.ResponseWriter, r *http.Request, st *State) error {
	now := s.now()
	exp := now.Add(Lifetime)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		State: st,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	signed, err := tok.SignedString(s.key)
	if err != nil {
		return fmt.Errorf("sign session: %w", err)
	}
	http.SetCookie(w, security.NewCookie(r, CookieName, signed, exp))
	return nil
}
