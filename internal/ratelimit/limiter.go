// Package ratelimit throttles admin login attempts.
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Clock interface for testing time-dependent behavior.
type Clock interface {
	Now() time.Time
}

// realClock implements Clock using the system time.
type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Config holds rate limit configuration.
type Config struct {
	MaxAttempts int           // Failed attempts before lockout (default: 5)
	Window      time.Duration // Window the attempts are counted in (default: 15m)
	Lockout     time.Duration // Lockout duration after max attempts (default: 5m)

	// Clock for testing (nil uses real time)
	Clock Clock
}

// DefaultConfig returns production-ready defaults.
func DefaultConfig() *Config {
	return &Config{
		MaxAttempts: 5,
		Window:      15 * time.Minute,
		Lockout:     5 * time.Minute,
	}
}

type attemptState struct {
	failures    []time.Time
	lockedUntil time.Time
}

// Limiter tracks failed login attempts per client IP.
type Limiter struct {
	cfg   *Config
	clock Clock

	mu    sync.Mutex
	byKey map[string]*attemptState
}

func NewLimiter(cfg *Config) *Limiter {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = realClock{}
	}
	return &Limiter{
		cfg:   cfg,
		clock: clock,
		byKey: make(map[string]*attemptState),
	}
}

// Allow reports whether the key may attempt a login right now.
func (l *Limiter) Allow(key string) bool {
	now := l.clock.Now()
	l.mu.Lock()
	defer l.mu.Unlock()

	state, ok := l.byKey[key]
	if !ok {
		return true
	}
	if now.Before(state.lockedUntil) {
		return false
	}
	l.pruneLocked(state, now)
	return len(state.failures) < l.cfg.MaxAttempts
}

// RecordFailure counts one failed attempt; crossing the threshold locks the
// key out.
func (l *Limiter) RecordFailure(key string) {
	now := l.clock.Now()
	l.mu.Lock()
	defer l.mu.Unlock()

	state, ok := l.byKey[key]
	if !ok {
		state = &attemptState{}
		l.byKey[key] = state
	}
	l.pruneLocked(state, now)
	state.failures = append(state.failures, now)
	if len(state.failures) >= l.cfg.MaxAttempts {
		state.lockedUntil = now.Add(l.cfg.Lockout)
		log.Warn().
			Str("key", key).
			Time("locked_until", state.lockedUntil).
			Msg("Login attempts locked out")
	}
}

// RecordSuccess clears the key's failure history.
func (l *Limiter) RecordSuccess(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.byKey, key)
}

func (l *Limiter) pruneLocked(state *attemptState, now time.Time) {
	cutoff := now.Add(-l.cfg.Window)
	kept := state.failures[:0]
	for _, t := range state.failures {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	state.failures = kept
}

// ClientIP extracts the caller's IP, trusting X-Forwarded-For only for its
// first hop (the league runs behind a single reverse proxy in production).
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if first, _, ok := strings.Cut(fwd, ","); ok {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
