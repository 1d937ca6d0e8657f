package ratelimit

import (
	"sync"
	"time"
)

// AttemptLimiter is the hard gate behind the cooldown: it caps how many
// submission attempts (accepted or cooldown-denied) a client key can make
// within a sliding window, so a client cycling retries cannot hammer the
// form forever. Attempts that are already over the cap are not recorded.
type AttemptLimiter struct {
	mu        sync.Mutex
	max       int
	window    time.Duration
	attempts  map[string][]time.Time
	lastSweep time.Time
}

func NewAttempts(max int, window time.Duration) *AttemptLimiter {
	return &AttemptLimiter{
		max:      max,
		window:   window,
		attempts: make(map[string][]time.Time),
	}
}

// Over reports whether key has reached the attempt cap within the window.
func (l *AttemptLimiter) Over(key string, now time.Time) bool {
	if l.max <= 0 {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.maybeSweep(key, now)
	return len(l.prune(key, now)) >= l.max
}

// Record counts one attempt for key at instant now.
func (l *AttemptLimiter) Record(key string, now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.attempts[key] = append(l.prune(key, now), now)
}

// prune drops timestamps outside the window for key; callers hold the lock.
func (l *AttemptLimiter) prune(key string, now time.Time) []time.Time {
	cutoff := now.Add(-l.window)
	recent := l.attempts[key][:0]
	for _, t := range l.attempts[key] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}
	if len(recent) == 0 {
		delete(l.attempts, key)
		return nil
	}
	l.attempts[key] = recent
	return recent
}

// maybeSweep clears keys whose every attempt has aged out, keeping the map
// bounded by active clients; callers hold the lock.
func (l *AttemptLimiter) maybeSweep(current string, now time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}
	l.lastSweep = now

	cutoff := now.Add(-l.window)
	for key, stamps := range l.attempts {
		if key == current {
			continue
		}
		stale := true
		for _, t := range stamps {
			if t.After(cutoff) {
				stale = false
				break
			}
		}
		if stale {
			delete(l.attempts, key)
		}
	}
}
