package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/bandarscan/internal/cache"
	"github.com/wonny/bandarscan/internal/contracts"
	"github.com/wonny/bandarscan/internal/indices"
	"github.com/wonny/bandarscan/internal/ranking"
	"github.com/wonny/bandarscan/pkg/logger"
)

type recordingRanker struct {
	reqs []ranking.RankRequest
	fail map[string]bool
}

func (r *recordingRanker) Rank(ctx context.Context, req ranking.RankRequest) (*contracts.RankingResult, error) {
	r.reqs = append(r.reqs, req)
	if r.fail[req.Mode] {
		return nil, errors.New("upstream down")
	}
	return &contracts.RankingResult{Mode: req.Mode}, nil
}

func fixedJob(ranker Ranker) *RankingWarmupJob {
	job := NewRankingWarmupJob(ranker, indices.Default(), "0 */30 9-16 * * 1-5", 7, logger.Nop())
	// 2025-02-13 23:30 UTC is already Friday in Jakarta
	job.now = func() time.Time { return time.Date(2025, 2, 13, 23, 30, 0, 0, time.UTC) }
	return job
}

func TestRankingWarmupJob_Window(t *testing.T) {
	from, to := fixedJob(&recordingRanker{}).Window()
	assert.Equal(t, "2025-02-07", from)
	assert.Equal(t, "2025-02-14", to)
}

func TestRankingWarmupJob_RanksEveryIndex(t *testing.T) {
	ranker := &recordingRanker{}
	require.NoError(t, fixedJob(ranker).Run(context.Background()))

	modes := []string{}
	for _, req := range ranker.reqs {
		modes = append(modes, req.Mode)
		assert.True(t, req.NoCache)
		assert.Equal(t, "2025-02-14", req.ToDate)
	}
	assert.Equal(t, []string{"idx30", "idx80", "lq45"}, modes)
}

func TestRankingWarmupJob_PartialFailure(t *testing.T) {
	ranker := &recordingRanker{fail: map[string]bool{"idx80": true}}
	assert.NoError(t, fixedJob(ranker).Run(context.Background()))

	ranker = &recordingRanker{fail: map[string]bool{"idx30": true, "idx80": true, "lq45": true}}
	err := fixedJob(ranker).Run(context.Background())
	assert.ErrorContains(t, err, "idx80: upstream down")
}

func TestCacheCleanupJob(t *testing.T) {
	memory := cache.NewMemory(logger.Nop())
	require.NoError(t, memory.Set(context.Background(), "gone", 1, -time.Second))
	require.NoError(t, memory.Set(context.Background(), "kept", 1, time.Hour))

	job := NewCacheCleanupJob(memory, logger.Nop())
	assert.Equal(t, "cache_cleanup", job.Name())
	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, 1, memory.Len())
}
