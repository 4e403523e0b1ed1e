package security

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTracker(t *testing.T, cfg LoginTrackerConfig) (*LoginTracker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewLoginTracker(client, cfg, Nop()), mr
}

func TestLoginTrackerBlocksAfterMaxAttempts(t *testing.T) {
	ctx := context.Background()
	cfg := LoginTrackerConfig{MaxAttempts: 3, AttemptWindow: time.Minute, BlockDuration: 10 * time.Minute, UseIPTracking: true}
	tracker, mr := newTestTracker(t, cfg)

	for i := 0; i < 2; i++ {
		blocked, err := tracker.RecordFailedAttempt(ctx, "a@x.com", "10.0.0.1", "req")
		require.NoError(t, err)
		assert.False(t, blocked)
	}

	remaining, err := tracker.RemainingAttempts(ctx, "A@x.com")
	require.NoError(t, err)
	assert.Equal(t, 1, remaining)

	blocked, err := tracker.RecordFailedAttempt(ctx, "a@x.com", "10.0.0.1", "req")
	require.NoError(t, err)
	assert.True(t, blocked)

	isBlocked, err := tracker.IsBlocked(ctx, " a@x.com ", "")
	require.NoError(t, err)
	assert.True(t, isBlocked)

	mr.FastForward(11 * time.Minute)
	isBlocked, err = tracker.IsBlocked(ctx, "a@x.com", "")
	require.NoError(t, err)
	assert.False(t, isBlocked)
}

func TestLoginTrackerClearAttempts(t *testing.T) {
	ctx := context.Background()
	tracker, _ := newTestTracker(t, DefaultLoginTrackerConfig())

	_, err := tracker.RecordFailedAttempt(ctx, "a@x.com", "10.0.0.1", "")
	require.NoError(t, err)
	require.NoError(t, tracker.ClearAttempts(ctx, "a@x.com", "10.0.0.1"))

	remaining, err := tracker.RemainingAttempts(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, 5, remaining)
}

func TestLoginTrackerWithoutRedisFailsOpen(t *testing.T) {
	ctx := context.Background()
	tracker := NewLoginTracker(nil, DefaultLoginTrackerConfig(), nil)

	blocked, err := tracker.RecordFailedAttempt(ctx, "a@x.com", "10.0.0.1", "")
	require.NoError(t, err)
	assert.False(t, blocked)

	isBlocked, err := tracker.IsBlocked(ctx, "a@x.com", "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, isBlocked)
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "j***@example.com", MaskEmail("john@example.com"))
	assert.Equal(t, "***@x.com", MaskEmail("a@x.com"))
	assert.Equal(t, "***", MaskEmail("ab"))
}
