package service

import (
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session holds the bearer token handed over by the (out-of-scope)
// authentication flow and answers the sync driver's "is there a signed-in
// session" question. It implements [adapter.SessionProvider].
type Session struct {
	mu    sync.RWMutex
	token string
}

// NewSession returns an empty, signed-out session.
func NewSession() *Session {
	return &Session{}
}

// SetToken installs the bearer token of a signed-in session.
func (s *Session) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = strings.TrimSpace(token)
}

// SignOut clears the session.
func (s *Session) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

// Token returns the current bearer token, empty when signed out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// UserID returns the "sub" claim of the current token, the owner id the
// per-user reads filter on. Empty when signed out or when the token is
// opaque.
func (s *Session) UserID() string {
	token := s.Token()
	if token == "" {
		return ""
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return ""
	}
	sub, err := parsed.Claims.GetSubject()
	if err != nil {
		return ""
	}
	return sub
}

// Active reports whether a usable session exists. A token whose JWT "exp"
// claim is parseable and in the past counts as signed out; a token that is
// not a parseable JWT is treated as opaque-but-present and trusted, the
// server being the final authority.
func (s *Session) Active() bool {
	token := s.Token()
	if token == "" {
		return false
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return true
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return exp.After(time.Now())
}
