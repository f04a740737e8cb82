package cache

import (
	"context"
	"testing"
	"time"

	"pantry-chef/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, maxSize int, ttl time.Duration) *Manager {
	t.Helper()
	cfg := &config.Config{}
	cfg.Cache = config.CacheConfig{
		Enabled:         true,
		MaxSize:         maxSize,
		TTL:             ttl,
		CleanupInterval: time.Minute,
	}
	m := NewManager(cfg)
	require.NotNil(t, m)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func TestManagerRoundTrip(t *testing.T) {
	m := newTestManager(t, 10, time.Minute)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "prompt", "", "response"))

	got, err := m.Get(ctx, "prompt", "")
	require.NoError(t, err)
	assert.Equal(t, "response", got)
}

func TestManagerMiss(t *testing.T) {
	m := newTestManager(t, 10, time.Minute)

	_, err := m.Get(context.Background(), "unknown", "")
	assert.Error(t, err)
}

func TestManagerMediaKeyedSeparately(t *testing.T) {
	m := newTestManager(t, 10, time.Minute)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "prompt", "video.mp4", "video answer"))

	_, err := m.Get(ctx, "prompt", "")
	assert.Error(t, err)

	got, err := m.Get(ctx, "prompt", "video.mp4")
	require.NoError(t, err)
	assert.Equal(t, "video answer", got)
}

func TestManagerTTLExpiry(t *testing.T) {
	m := newTestManager(t, 10, 10*time.Millisecond)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "prompt", "", "response"))
	time.Sleep(20 * time.Millisecond)

	_, err := m.Get(ctx, "prompt", "")
	assert.Error(t, err)
}

func TestManagerEvictsWhenFull(t *testing.T) {
	m := newTestManager(t, 2, time.Minute)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "a", "", "1"))
	require.NoError(t, m.Set(ctx, "b", "", "2"))

	// Touch "b" so "a" is the LRU victim.
	_, err := m.Get(ctx, "b", "")
	require.NoError(t, err)

	require.NoError(t, m.Set(ctx, "c", "", "3"))

	_, err = m.Get(ctx, "a", "")
	assert.Error(t, err)

	got, err := m.Get(ctx, "c", "")
	require.NoError(t, err)
	assert.Equal(t, "3", got)
}

func TestManagerStats(t *testing.T) {
	m := newTestManager(t, 10, time.Minute)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "a", "", "1"))
	_, _ = m.Get(ctx, "a", "")
	_, _ = m.Get(ctx, "missing", "")

	stats := m.Stats()
	assert.Equal(t, int64(1), stats["hits"])
	assert.Equal(t, int64(1), stats["misses"])
	assert.Equal(t, 1, stats["size"])
}
