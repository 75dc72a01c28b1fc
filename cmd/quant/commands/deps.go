package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/wonny/bandarscan/internal/cache"
	"github.com/wonny/bandarscan/internal/external/stockbit"
	"github.com/wonny/bandarscan/internal/indices"
	"github.com/wonny/bandarscan/internal/ranking"
	"github.com/wonny/bandarscan/internal/watchlist"
	"github.com/wonny/bandarscan/pkg/config"
	"github.com/wonny/bandarscan/pkg/database"
	"github.com/wonny/bandarscan/pkg/httputil"
	"github.com/wonny/bandarscan/pkg/logger"
	"github.com/wonny/bandarscan/pkg/redis"
)

// deps is the object graph shared by every command
type deps struct {
	cfg      *config.Config
	log      *logger.Logger
	registry *indices.Registry
	service  *ranking.Service
	metrics  *prometheus.Registry
	memory   *cache.Memory // in-process result cache, nil unless caching without Redis
	// sharedCache is set when results land in Redis, visible to other processes
	sharedCache bool

	closers []func()
}

// Close releases connections in reverse order of creation
func (d *deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
}

// loadConfig loads config and applies global flags
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// buildDeps wires config → redis → http → stockbit/watchlist → ranking.
// Logs go to logOut so machine-readable stdout stays clean.
func buildDeps(logOut io.Writer) (*deps, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if logOut == nil {
		logOut = os.Stdout
	}
	log := logger.NewWithWriter(cfg, logOut)

	d := &deps{cfg: cfg, log: log}

	// 1. Redis (optional: cache + shared rate limit)
	rdb, err := redis.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	d.closers = append(d.closers, func() { _ = rdb.Close() })

	// 2. Static indices
	registry, err := indices.Load(cfg.Indices.File)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("load indices: %w", err)
	}
	d.registry = registry

	// 3. Upstream market data (no retry: a failed symbol becomes a failure row)
	marketHTTP := httputil.New(log, cfg.Stockbit.Timeout).
		DisableRetry().
		WithHeader("Authorization", bearer(cfg.Stockbit.Token)).
		WithLimit(cfg.Stockbit.RPS)
	if rdb.Enabled() {
		marketHTTP.WithRateLimiter(redis.NewRateLimiter(rdb, "ratelimit"), redis.StockbitRateLimit(cfg.Stockbit.RPS))
	}
	market := stockbit.NewClient(marketHTTP, cfg.Stockbit.BaseURL, log)

	// 4. Watchlist source
	wl, err := buildWatchlist(d)
	if err != nil {
		d.Close()
		return nil, err
	}

	// 5. Ranking service
	d.metrics = prometheus.NewRegistry()
	d.metrics.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	svc := ranking.NewService(
		ranking.NewAnalyzer(market, log),
		wl,
		registry,
		ranking.Config{
			BatchSize: cfg.Ranking.BatchSize,
			CacheTTL:  cfg.Ranking.CacheTTL,
		},
		log,
	)
	if cfg.MetricsEnabled {
		svc.WithMetrics(ranking.NewMetrics(d.metrics))
	}
	// RANKING_CACHE_TTL=0 (default): every request is its own run
	if cfg.Ranking.CacheTTL > 0 {
		if rdb.Enabled() {
			svc.WithCache(redis.NewCache(rdb, "bandarscan"))
			d.sharedCache = true
		} else {
			d.memory = cache.NewMemory(log)
			svc.WithCache(d.memory)
		}
	}
	d.service = svc

	return d, nil
}

func buildWatchlist(d *deps) (ranking.WatchlistProvider, error) {
	switch d.cfg.Watchlist.Source {
	case "postgres":
		db, err := database.New(d.cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		d.closers = append(d.closers, db.Close)
		d.log.Info("Watchlist source: postgres")
		return watchlist.NewPostgresProvider(db.Pool), nil
	default:
		client := httputil.New(d.log, d.cfg.Stockbit.Timeout)
		d.log.WithField("base_url", d.cfg.Watchlist.BaseURL).Info("Watchlist source: http")
		return watchlist.NewHTTPProvider(client, d.cfg.Watchlist.BaseURL, d.log), nil
	}
}

func bearer(token string) string {
	if token == "" {
		return ""
	}
	return "Bearer " + token
}
