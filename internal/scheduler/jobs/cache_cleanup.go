package jobs

import (
	"context"

	"github.com/wonny/bandarscan/internal/cache"
	"github.com/wonny/bandarscan/pkg/logger"
)

// CacheCleanupJob drops expired results from the in-process cache
type CacheCleanupJob struct {
	cache  *cache.Memory
	logger *logger.Logger
}

// NewCacheCleanupJob creates a new cache cleanup job
func NewCacheCleanupJob(memory *cache.Memory, log *logger.Logger) *CacheCleanupJob {
	return &CacheCleanupJob{
		cache:  memory,
		logger: log.Module("cache_cleanup"),
	}
}

// Name returns the job name
func (j *CacheCleanupJob) Name() string {
	return "cache_cleanup"
}

// Schedule returns the cron schedule (every 5 minutes)
func (j *CacheCleanupJob) Schedule() string {
	return "0 */5 * * * *"
}

// Run executes the cache cleanup
func (j *CacheCleanupJob) Run(ctx context.Context) error {
	count := j.cache.CleanExpired()

	if count > 0 {
		j.logger.WithFields(map[string]interface{}{
			"removed":   count,
			"remaining": j.cache.Len(),
		}).Info("Cache cleanup completed")
	}

	return nil
}
