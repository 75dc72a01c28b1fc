package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/wonny/bandarscan/pkg/logger"
)

// entry is one stored value, kept encoded so readers never share memory
type entry struct {
	value     []byte
	expiresAt time.Time
}

// Memory is an in-process TTL cache for ranking results, used when Redis is
// disabled. It has the same Get/Set contract as the Redis cache.
// ⭐ SSOT: 프로세스 내 결과 캐싱은 이 구조체에서만
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
	logger  *logger.Logger
}

// NewMemory creates a new in-memory cache
func NewMemory(log *logger.Logger) *Memory {
	return &Memory{
		entries: make(map[string]entry),
		now:     time.Now,
		logger:  log.Module("cache"),
	}
}

// Get decodes the value at key into dest. Expired keys read as misses.
func (c *Memory) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	c.mu.RLock()
	e, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists || !c.now().Before(e.expiresAt) {
		return false, nil
	}

	if err := json.Unmarshal(e.value, dest); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

// Set stores value under key for ttl
func (c *Memory) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{value: raw, expiresAt: c.now().Add(ttl)}
	return nil
}

// Delete removes key from cache
func (c *Memory) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

// Clear removes every entry
func (c *Memory) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]entry)
	c.logger.Info("Cleared result cache")
}

// Len returns the number of entries, expired ones included
func (c *Memory) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// CleanExpired removes expired entries and returns how many were dropped
func (c *Memory) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	count := 0

	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, key)
			count++
		}
	}

	if count > 0 {
		c.logger.WithField("count", count).Debug("Cleaned expired results from cache")
	}

	return count
}

// Stats returns cache statistics
func (c *Memory) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := Stats{TotalCount: len(c.entries)}

	now := c.now()
	for _, e := range c.entries {
		if !now.Before(e.expiresAt) {
			stats.ExpiredCount++
		}
		stats.Bytes += len(e.value)
	}
	stats.LiveCount = stats.TotalCount - stats.ExpiredCount

	return stats
}

// Stats represents cache statistics
type Stats struct {
	TotalCount   int `json:"total_count"`
	LiveCount    int `json:"live_count"`
	ExpiredCount int `json:"expired_count"`
	Bytes        int `json:"bytes"`
}
