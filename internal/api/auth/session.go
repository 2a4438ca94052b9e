// internal/api/auth/session.go
package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const sessionTTL = 12 * time.Hour

// Sessions is an in-memory admin session table. The league has exactly one
// shared admin credential, so there is nothing to persist across restarts;
// a restart just means logging in again.
type Sessions struct {
	mu     sync.Mutex
	tokens map[string]time.Time // token -> expiry
	now    func() time.Time
}

func NewSessions() *Sessions {
	return &Sessions{
		tokens: make(map[string]time.Time),
		now:    time.Now,
	}
}

// Issue creates a new session token.
func (s *Sessions) Issue() string {
	token := uuid.New().String()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = s.now().Add(sessionTTL)
	return token
}

// Valid reports whether the token names a live session, dropping it if
// expired.
func (s *Sessions) Valid(token string) bool {
	if token == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	expiry, ok := s.tokens[token]
	if !ok {
		return false
	}
	if s.now().After(expiry) {
		delete(s.tokens, token)
		return false
	}
	return true
}

// Revoke removes a session token (logout).
func (s *Sessions) Revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
}
