package cache

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMemoryCacheGetSet(t *testing.T) {
	c := NewMemoryCache(10, zap.NewNop())
	ctx := context.Background()

	_, err := c.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, c.Set(ctx, "hello", []float32{1, 2, 3}))

	vec, err := c.Get(ctx, "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3}, vec)
}

func TestMemoryCacheOverwrite(t *testing.T) {
	c := NewMemoryCache(10, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key", []float32{1}))
	require.NoError(t, c.Set(ctx, "key", []float32{2}))

	vec, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []float32{2}, vec)
	assert.Equal(t, 1, c.Len())
}

func TestMemoryCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewMemoryCache(DefaultCapacity, zap.NewNop())
	ctx := context.Background()

	for i := 0; i < DefaultCapacity; i++ {
		require.NoError(t, c.Set(ctx, fmt.Sprintf("text-%d", i), []float32{float32(i)}))
	}
	assert.Equal(t, DefaultCapacity, c.Len())

	// Touch the oldest entry so text-1 becomes the eviction candidate
	_, err := c.Get(ctx, "text-0")
	require.NoError(t, err)

	require.NoError(t, c.Set(ctx, "text-overflow", []float32{0}))
	assert.Equal(t, DefaultCapacity, c.Len())

	_, err = c.Get(ctx, "text-1")
	assert.ErrorIs(t, err, ErrNotFound)

	// The promoted entry and the new entry both survive
	_, err = c.Get(ctx, "text-0")
	assert.NoError(t, err)
	_, err = c.Get(ctx, "text-overflow")
	assert.NoError(t, err)
}

func TestMemoryCacheZeroCapacityUsesDefault(t *testing.T) {
	c := NewMemoryCache(0, zap.NewNop())
	ctx := context.Background()

	for i := 0; i < DefaultCapacity+5; i++ {
		require.NoError(t, c.Set(ctx, fmt.Sprintf("text-%d", i), []float32{1}))
	}
	assert.Equal(t, DefaultCapacity, c.Len())
}
