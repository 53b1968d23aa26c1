package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheSetGet(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryCache()

	type payload struct {
		Name string `json:"name"`
	}

	require.NoError(t, m.Set(ctx, "carousel:rec:abc", payload{Name: "Summer"}, time.Minute))

	var got payload
	found, err := m.Get(ctx, "carousel:rec:abc", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Summer", got.Name)

	found, err = m.Get(ctx, "carousel:rec:missing", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryCache()

	require.NoError(t, m.Set(ctx, "k", "v", time.Nanosecond))
	time.Sleep(5 * time.Millisecond)

	var got string
	found, err := m.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryCacheDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryCache()

	require.NoError(t, m.Set(ctx, "a", 1, 0))
	require.NoError(t, m.Set(ctx, "b", 2, 0))

	require.NoError(t, m.Delete(ctx, "a", "does-not-exist"))

	var got int
	found, err := m.Get(ctx, "a", &got)
	require.NoError(t, err)
	assert.False(t, found)

	found, err = m.Get(ctx, "b", &got)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestMemoryCacheDeletePattern(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryCache()

	require.NoError(t, m.Set(ctx, "carousel:warm:1", "a", 0))
	require.NoError(t, m.Set(ctx, "carousel:frag:1:desktop", "b", 0))
	require.NoError(t, m.Set(ctx, "other:1", "c", 0))

	require.NoError(t, m.DeletePattern(ctx, "carousel:*"))

	var got string
	found, _ := m.Get(ctx, "carousel:warm:1", &got)
	assert.False(t, found)
	found, _ = m.Get(ctx, "carousel:frag:1:desktop", &got)
	assert.False(t, found)
	found, _ = m.Get(ctx, "other:1", &got)
	assert.True(t, found)

	// Idempotent: a second pass over an empty namespace succeeds.
	require.NoError(t, m.DeletePattern(ctx, "carousel:*"))
}
