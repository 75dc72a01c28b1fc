package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/bandarscan/pkg/config"
)

func disabledClient(t *testing.T) *Client {
	t.Helper()
	client, err := New(&config.Config{Redis: config.RedisConfig{Enabled: false}})
	require.NoError(t, err)
	return client
}

func TestNewClient_Disabled(t *testing.T) {
	client := disabledClient(t)
	assert.False(t, client.Enabled())
	assert.NoError(t, client.Close())
}

func TestRateLimiter_Disabled(t *testing.T) {
	limiter := NewRateLimiter(disabledClient(t), "test")
	cfg := StockbitRateLimit(4)

	allowed, remaining, err := limiter.Allow(context.Background(), cfg)
	require.NoError(t, err)
	assert.True(t, allowed, "requests are allowed when Redis is disabled")
	assert.Equal(t, 4, remaining)

	assert.NoError(t, limiter.Wait(context.Background(), cfg))
}

func TestStockbitRateLimit_Default(t *testing.T) {
	cfg := StockbitRateLimit(0)
	assert.Equal(t, 10, cfg.Limit)
	assert.Equal(t, time.Second, cfg.Window)
	assert.Equal(t, "stockbit", cfg.Key)
}

func TestCache_Disabled(t *testing.T) {
	cache := NewCache(disabledClient(t), "test")
	ctx := context.Background()

	var result []string
	found, err := cache.Get(ctx, "key", &result)
	require.NoError(t, err)
	assert.False(t, found, "cache miss when Redis disabled")

	assert.NoError(t, cache.Set(ctx, "key", []string{"BBCA"}, TTLShort))
	assert.NoError(t, cache.Delete(ctx, "key"))
}

func TestRankingKey(t *testing.T) {
	tests := []struct {
		name     string
		mode     string
		groupID  string
		expected string
	}{
		{"static index", "LQ45", "", "ranking:lq45:2025-02-01:2025-02-14"},
		{"watchlist", "watchlist", "12", "ranking:watchlist:12:2025-02-01:2025-02-14"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RankingKey(tt.mode, tt.groupID, "2025-02-01", "2025-02-14"))
		})
	}
}
