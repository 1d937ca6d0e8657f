package ratelimit

import (
	"sync"
	"time"
)

// Decision is the outcome of a cooldown check. RetryAfter is meaningful
// only when Allowed is false.
type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
}

// CooldownLimiter enforces a minimum interval between accepted submissions
// per client key. State is in-memory only and resets on restart.
type CooldownLimiter struct {
	mu        sync.Mutex
	window    time.Duration
	entries   map[string]time.Time
	lastSweep time.Time
}

func NewCooldown(window time.Duration) *CooldownLimiter {
	return &CooldownLimiter{
		window:  window,
		entries: make(map[string]time.Time),
	}
}

// CheckAndRecord decides whether a submission from key at instant now is
// permitted and, only when it is, records now as the key's last acceptance.
// A denied call never refreshes the stored timestamp, so a client who keeps
// retrying becomes eligible at the original acceptance time plus the window.
// The check-then-update sequence runs under one lock, so of N concurrent
// callers with the same key and instant exactly one is allowed.
func (l *CooldownLimiter) CheckAndRecord(key string, now time.Time) Decision {
	if l.window <= 0 {
		return Decision{Allowed: true}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.maybeSweep(key, now)

	if last, ok := l.entries[key]; ok {
		elapsed := now.Sub(last)
		if elapsed < l.window {
			remaining := l.window - elapsed
			// A clock that moved backward yields elapsed < 0; stay denied
			// but never report a wait longer than the window itself.
			if remaining > l.window {
				remaining = l.window
			}
			return Decision{Allowed: false, RetryAfter: remaining}
		}
	}

	l.entries[key] = now
	return Decision{Allowed: true}
}

// Window returns the configured cooldown interval.
func (l *CooldownLimiter) Window() time.Duration {
	return l.window
}

// Len reports the number of tracked keys.
func (l *CooldownLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// maybeSweep drops entries stale past twice the window. It runs at most
// once per window and never touches the key being processed; callers hold
// the lock. Removal is pure housekeeping: an expired entry denies nothing,
// so dropping it early cannot change any decision.
func (l *CooldownLimiter) maybeSweep(current string, now time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}
	l.lastSweep = now

	cutoff := now.Add(-2 * l.window)
	for key, last := range l.entries {
		if key != current && last.Before(cutoff) {
			delete(l.entries, key)
		}
	}
}
