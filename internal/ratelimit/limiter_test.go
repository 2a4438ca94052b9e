package ratelimit

import (
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestLimiter() (*Limiter, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC)}
	return NewLimiter(&Config{
		MaxAttempts: 3,
		Window:      10 * time.Minute,
		Lockout:     5 * time.Minute,
		Clock:       clock,
	}), clock
}

func TestLimiterLocksAfterMaxFailures(t *testing.T) {
	limiter, _ := newTestLimiter()

	for i := 0; i < 3; i++ {
		if !limiter.Allow("10.0.0.1") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
		limiter.RecordFailure("10.0.0.1")
	}
	if limiter.Allow("10.0.0.1") {
		t.Fatalf("expected lockout after 3 failures")
	}
	if !limiter.Allow("10.0.0.2") {
		t.Fatalf("other clients must be unaffected")
	}
}

func TestLimiterUnlocksAfterLockout(t *testing.T) {
	limiter, clock := newTestLimiter()

	for i := 0; i < 3; i++ {
		limiter.RecordFailure("10.0.0.1")
	}
	if limiter.Allow("10.0.0.1") {
		t.Fatalf("expected lockout")
	}

	clock.advance(5*time.Minute + time.Second)
	// Lockout expired, but failures only age out of the counting window.
	clock.advance(10 * time.Minute)
	if !limiter.Allow("10.0.0.1") {
		t.Fatalf("expected attempts allowed after lockout and window expiry")
	}
}

func TestLimiterSuccessClearsHistory(t *testing.T) {
	limiter, _ := newTestLimiter()

	limiter.RecordFailure("10.0.0.1")
	limiter.RecordFailure("10.0.0.1")
	limiter.RecordSuccess("10.0.0.1")
	for i := 0; i < 2; i++ {
		if !limiter.Allow("10.0.0.1") {
			t.Fatalf("history should reset after a success")
		}
		limiter.RecordFailure("10.0.0.1")
	}
}
