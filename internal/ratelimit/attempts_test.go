package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttempts_UnderCap(t *testing.T) {
	l := NewAttempts(3, time.Hour)
	now := time.Now()

	for i := 0; i < 3; i++ {
		require.False(t, l.Over("1.2.3.4", now))
		l.Record("1.2.3.4", now)
	}

	assert.True(t, l.Over("1.2.3.4", now))
}

func TestAttempts_WindowSlides(t *testing.T) {
	l := NewAttempts(2, time.Hour)
	start := time.Now()

	l.Record("1.2.3.4", start)
	l.Record("1.2.3.4", start.Add(30*time.Minute))
	require.True(t, l.Over("1.2.3.4", start.Add(31*time.Minute)))

	// The first attempt ages out of the window; one slot frees up.
	assert.False(t, l.Over("1.2.3.4", start.Add(61*time.Minute)))
}

func TestAttempts_KeysIndependent(t *testing.T) {
	l := NewAttempts(1, time.Hour)
	now := time.Now()

	l.Record("1.2.3.4", now)
	assert.True(t, l.Over("1.2.3.4", now))
	assert.False(t, l.Over("5.6.7.8", now))
}

func TestAttempts_ZeroMaxDisables(t *testing.T) {
	l := NewAttempts(0, time.Hour)
	now := time.Now()

	l.Record("1.2.3.4", now)
	assert.False(t, l.Over("1.2.3.4", now))
}

func TestAttempts_StaleKeysSwept(t *testing.T) {
	l := NewAttempts(5, time.Hour)
	start := time.Now()

	l.Record("1.2.3.4", start)
	l.Record("5.6.7.8", start)

	// Access far in the future prunes everything that aged out.
	require.False(t, l.Over("1.2.3.4", start.Add(3*time.Hour)))

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Empty(t, l.attempts)
}
