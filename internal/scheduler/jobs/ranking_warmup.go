package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wonny/bandarscan/internal/contracts"
	"github.com/wonny/bandarscan/internal/indices"
	"github.com/wonny/bandarscan/internal/ranking"
	"github.com/wonny/bandarscan/pkg/logger"
)

// wib is the exchange's local time (UTC+7)
var wib = time.FixedZone("WIB", 7*60*60)

// Ranker runs a ranking. *ranking.Service satisfies it.
type Ranker interface {
	Rank(ctx context.Context, req ranking.RankRequest) (*contracts.RankingResult, error)
}

// RankingWarmupJob re-ranks every static index over a trailing window so the
// result cache is hot when clients ask for it.
// ⭐ SSOT: 랭킹 캐시 예열은 이 Job에서만
type RankingWarmupJob struct {
	ranker   Ranker
	registry *indices.Registry
	schedule string
	days     int
	now      func() time.Time
	logger   *logger.Logger
}

// NewRankingWarmupJob creates a new warm-up job
func NewRankingWarmupJob(ranker Ranker, registry *indices.Registry, schedule string, days int, log *logger.Logger) *RankingWarmupJob {
	if days < 1 {
		days = 7
	}
	return &RankingWarmupJob{
		ranker:   ranker,
		registry: registry,
		schedule: schedule,
		days:     days,
		now:      time.Now,
		logger:   log.Module("ranking_warmup"),
	}
}

// Name returns the job name
func (j *RankingWarmupJob) Name() string {
	return "ranking_warmup"
}

// Schedule returns the cron schedule (with seconds)
func (j *RankingWarmupJob) Schedule() string {
	return j.schedule
}

// Window returns the [from, to] dates the job ranks, in exchange time
func (j *RankingWarmupJob) Window() (string, string) {
	to := j.now().In(wib)
	from := to.AddDate(0, 0, -j.days)
	return from.Format("2006-01-02"), to.Format("2006-01-02")
}

// Run ranks every index. It fails only when no index could be ranked.
func (j *RankingWarmupJob) Run(ctx context.Context) error {
	from, to := j.Window()
	names := j.registry.Names()

	var errs []error
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}

		result, err := j.ranker.Rank(ctx, ranking.RankRequest{
			Mode:     name,
			FromDate: from,
			ToDate:   to,
			NoCache:  true,
		})
		if err != nil {
			j.logger.WithError(err).WithField("index", name).Warn("Warm-up ranking failed")
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}

		j.logger.WithFields(map[string]interface{}{
			"index":    name,
			"total":    result.Total,
			"failures": result.Failures(),
		}).Info("Index ranking warmed")
	}

	if len(names) > 0 && len(errs) == len(names) {
		return errors.Join(errs...)
	}
	return nil
}
