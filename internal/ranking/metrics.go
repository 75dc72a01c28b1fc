package ranking

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records ranking runs. A nil *Metrics is a no-op.
type Metrics struct {
	runsTotal    *prometheus.CounterVec
	symbolsTotal *prometheus.CounterVec
	runDuration  *prometheus.HistogramVec
	cacheHits    *prometheus.CounterVec
}

// NewMetrics registers the ranking collectors on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		runsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bandarscan_ranking_runs_total",
				Help: "Total number of ranking runs",
			},
			[]string{"mode", "status"},
		),
		symbolsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bandarscan_ranking_symbols_total",
				Help: "Total number of analyzed symbols by outcome",
			},
			[]string{"outcome"},
		),
		runDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bandarscan_ranking_run_duration_seconds",
				Help:    "Duration of ranking runs in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"mode"},
		),
		cacheHits: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bandarscan_ranking_cache_lookups_total",
				Help: "Ranking cache lookups by result",
			},
			[]string{"result"},
		),
	}
}

func (m *Metrics) recordRun(mode, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.runsTotal.WithLabelValues(mode, status).Inc()
	m.runDuration.WithLabelValues(mode).Observe(elapsed.Seconds())
}

func (m *Metrics) recordSymbol(failed bool) {
	if m == nil {
		return
	}
	outcome := "ok"
	if failed {
		outcome = "failed"
	}
	m.symbolsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) recordCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheHits.WithLabelValues(result).Inc()
}
