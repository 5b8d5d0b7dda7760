package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	cache := &memoryCache{entries: map[string]memoryEntry{}, now: func() time.Time { return now }}

	require.NoError(t, cache.Set(ctx, "k", 42, time.Minute))
	require.NoError(t, cache.Set(ctx, "forever", "v", 0))

	var got int
	require.NoError(t, cache.Get(ctx, "k", &got))
	assert.Equal(t, 42, got)

	now = now.Add(time.Minute)
	assert.ErrorIs(t, cache.Get(ctx, "k", &got), ErrCacheMiss)

	var s string
	require.NoError(t, cache.Get(ctx, "forever", &s))
	assert.Equal(t, "v", s)

	require.NoError(t, cache.Delete(ctx, "forever"))
	assert.ErrorIs(t, cache.Get(ctx, "forever", &s), ErrCacheMiss)
}
