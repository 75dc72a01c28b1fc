package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wonny/bandarscan/internal/indices"
	"github.com/wonny/bandarscan/pkg/config"
	"github.com/wonny/bandarscan/pkg/logger"
)

func TestSchedulerJobs(t *testing.T) {
	d := &deps{
		cfg: &config.Config{Ranking: config.RankingConfig{
			WarmupSchedule: "0 */30 9-16 * * 1-5",
			WarmupDays:     7,
		}},
		log:      logger.Nop(),
		registry: indices.Default(),
	}

	assert.Empty(t, schedulerJobs(d), "process-local cache is never read by the api process")

	d.sharedCache = true
	jobList := schedulerJobs(d)
	if assert.Len(t, jobList, 1) {
		assert.Equal(t, "ranking_warmup", jobList[0].Name())
	}
}
