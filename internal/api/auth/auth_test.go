package auth

import (
	"testing"
	"time"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if !VerifyPassword(hash, "correct horse battery staple") {
		t.Error("expected hash to verify against original password")
	}
	if VerifyPassword(hash, "wrong password") {
		t.Error("expected wrong password to fail verification")
	}
}

func TestSessionLifecycle(t *testing.T) {
	sessions := NewSessions()

	token := sessions.Issue()
	if token == "" {
		t.Fatal("expected a non-empty token")
	}
	if !sessions.Valid(token) {
		t.Error("freshly issued token should be valid")
	}

	sessions.Revoke(token)
	if sessions.Valid(token) {
		t.Error("revoked token should be invalid")
	}

	if sessions.Valid("never-issued") {
		t.Error("unknown token should be invalid")
	}
}

func TestSessionExpiry(t *testing.T) {
	sessions := NewSessions()
	token := sessions.Issue()

	sessions.mu.Lock()
	sessions.tokens[token] = time.Now().Add(-time.Minute)
	sessions.mu.Unlock()

	if sessions.Valid(token) {
		t.Error("expired token should be invalid")
	}
}
