package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCooldown_FirstCallAllowed(t *testing.T) {
	l := NewCooldown(30 * time.Minute)

	decision := l.CheckAndRecord("1.2.3.4", time.Now())

	assert.True(t, decision.Allowed)
	assert.Zero(t, decision.RetryAfter)
}

func TestCooldown_DeniedWithinWindow(t *testing.T) {
	l := NewCooldown(30 * time.Minute)
	start := time.Now()

	require.True(t, l.CheckAndRecord("1.2.3.4", start).Allowed)

	decision := l.CheckAndRecord("1.2.3.4", start.Add(10*time.Minute))
	assert.False(t, decision.Allowed)
	assert.Equal(t, 20*time.Minute, decision.RetryAfter)
}

func TestCooldown_AllowedAtWindowBoundary(t *testing.T) {
	l := NewCooldown(30 * time.Minute)
	start := time.Now()

	require.True(t, l.CheckAndRecord("1.2.3.4", start).Allowed)

	decision := l.CheckAndRecord("1.2.3.4", start.Add(30*time.Minute))
	assert.True(t, decision.Allowed)
}

func TestCooldown_ZeroWindowDisablesLimiting(t *testing.T) {
	l := NewCooldown(0)
	now := time.Now()

	for i := 0; i < 5; i++ {
		assert.True(t, l.CheckAndRecord("1.2.3.4", now).Allowed)
	}
}

func TestCooldown_DifferentKeysIndependent(t *testing.T) {
	l := NewCooldown(30 * time.Minute)
	now := time.Now()

	assert.True(t, l.CheckAndRecord("1.2.3.4", now).Allowed)
	assert.True(t, l.CheckAndRecord("5.6.7.8", now).Allowed)
	assert.False(t, l.CheckAndRecord("1.2.3.4", now.Add(time.Minute)).Allowed)
}

func TestCooldown_DeniedDoesNotRefreshTimestamp(t *testing.T) {
	l := NewCooldown(30 * time.Minute)
	start := time.Now()

	require.True(t, l.CheckAndRecord("1.2.3.4", start).Allowed)

	// Rapid retries must not extend the block window.
	for i := 1; i <= 5; i++ {
		decision := l.CheckAndRecord("1.2.3.4", start.Add(time.Duration(i)*time.Minute))
		require.False(t, decision.Allowed)
	}

	// Eligibility is still the original acceptance plus the window.
	assert.True(t, l.CheckAndRecord("1.2.3.4", start.Add(30*time.Minute)).Allowed)
}

func TestCooldown_ClockMovedBackward(t *testing.T) {
	l := NewCooldown(30 * time.Minute)
	start := time.Now()

	require.True(t, l.CheckAndRecord("1.2.3.4", start).Allowed)

	decision := l.CheckAndRecord("1.2.3.4", start.Add(-5*time.Minute))
	assert.False(t, decision.Allowed)
	assert.Equal(t, 30*time.Minute, decision.RetryAfter)
}

func TestCooldown_ExactlyOneAllowedUnderConcurrency(t *testing.T) {
	l := NewCooldown(30 * time.Minute)
	now := time.Now()

	const n = 32
	var wg sync.WaitGroup
	results := make(chan bool, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- l.CheckAndRecord("1.2.3.4", now).Allowed
		}()
	}
	wg.Wait()
	close(results)

	allowed := 0
	for ok := range results {
		if ok {
			allowed++
		}
	}
	assert.Equal(t, 1, allowed)
}

func TestCooldown_EvictionDoesNotChangeDecisions(t *testing.T) {
	l := NewCooldown(30 * time.Minute)
	start := time.Now()

	require.True(t, l.CheckAndRecord("1.2.3.4", start).Allowed)
	require.Equal(t, 1, l.Len())

	// A call far in the future sweeps the stale entry and still allows,
	// exactly as if the entry had simply expired in place.
	decision := l.CheckAndRecord("5.6.7.8", start.Add(2*time.Hour))
	assert.True(t, decision.Allowed)
	assert.Equal(t, 1, l.Len(), "stale entry should have been evicted")

	assert.True(t, l.CheckAndRecord("1.2.3.4", start.Add(2*time.Hour)).Allowed)
}

func TestCooldown_EmptyKeyIsSingleBucket(t *testing.T) {
	l := NewCooldown(30 * time.Minute)
	now := time.Now()

	assert.True(t, l.CheckAndRecord("", now).Allowed)
	assert.False(t, l.CheckAndRecord("", now.Add(time.Minute)).Allowed)
}

func TestCooldown_ExampleScenario(t *testing.T) {
	// window = 30m: allowed at t=0, denied at 10m (retry 20m), denied at
	// 29m (retry 1m), allowed at 30m.
	l := NewCooldown(30 * time.Minute)
	t0 := time.Now()

	require.True(t, l.CheckAndRecord("1.2.3.4", t0).Allowed)

	d := l.CheckAndRecord("1.2.3.4", t0.Add(10*time.Minute))
	require.False(t, d.Allowed)
	assert.Equal(t, 20*time.Minute, d.RetryAfter)

	d = l.CheckAndRecord("1.2.3.4", t0.Add(29*time.Minute))
	require.False(t, d.Allowed)
	assert.Equal(t, time.Minute, d.RetryAfter)

	assert.True(t, l.CheckAndRecord("1.2.3.4", t0.Add(30*time.Minute)).Allowed)
}
