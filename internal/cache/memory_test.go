package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/bandarscan/internal/contracts"
	"github.com/wonny/bandarscan/pkg/logger"
)

func TestMemory_GetSet(t *testing.T) {
	c := NewMemory(logger.Nop())
	ctx := context.Background()

	in := contracts.RankingResult{Mode: "lq45", Items: []contracts.RankingItem{{Symbol: "AAA"}}, Total: 1}
	require.NoError(t, c.Set(ctx, "k", in, time.Minute))

	var out contracts.RankingResult
	hit, err := c.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, in, out)

	hit, err = c.Get(ctx, "missing", &out)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestMemory_Expiry(t *testing.T) {
	c := NewMemory(logger.Nop())
	now := time.Date(2025, 2, 14, 9, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "short", 1, time.Minute))
	require.NoError(t, c.Set(ctx, "long", 2, time.Hour))

	now = now.Add(2 * time.Minute)

	var v int
	hit, err := c.Get(ctx, "short", &v)
	require.NoError(t, err)
	assert.False(t, hit)

	stats := c.Stats()
	assert.Equal(t, 2, stats.TotalCount)
	assert.Equal(t, 1, stats.ExpiredCount)

	assert.Equal(t, 1, c.CleanExpired())
	assert.Equal(t, 1, c.Len())

	hit, err = c.Get(ctx, "long", &v)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 2, v)
}

func TestMemory_DeleteClear(t *testing.T) {
	c := NewMemory(logger.Nop())
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "a", 1, time.Minute))
	require.NoError(t, c.Set(ctx, "b", 2, time.Minute))

	c.Delete("a")
	assert.Equal(t, 1, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())
}
