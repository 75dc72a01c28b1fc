package ranking

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wonny/bandarscan/internal/contracts"
	"github.com/wonny/bandarscan/internal/indices"
	"github.com/wonny/bandarscan/pkg/logger"
	"github.com/wonny/bandarscan/pkg/redis"
)

// DefaultBatchSize bounds how many symbols are analyzed at once
const DefaultBatchSize = 5

// WatchlistProvider resolves a watchlist group into its members
type WatchlistProvider interface {
	FetchGroup(ctx context.Context, groupID string) ([]contracts.SymbolRequest, error)
}

// SymbolAnalyzer analyzes one symbol. *Analyzer satisfies it.
type SymbolAnalyzer interface {
	Analyze(ctx context.Context, req contracts.SymbolRequest, from, to string) (contracts.RankingItem, error)
}

// ResultCache stores finished runs. *redis.Cache satisfies it.
type ResultCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// Config tunes the orchestrator
type Config struct {
	BatchSize int
	CacheTTL  time.Duration // 0 disables caching
}

// Service runs batch rankings
// ⭐ SSOT: Universe → Batch analyze → Sort
type Service struct {
	analyzer  SymbolAnalyzer
	watchlist WatchlistProvider
	indices   *indices.Registry
	cache     ResultCache
	metrics   *Metrics
	cfg       Config
	logger    *logger.Logger
}

// NewService creates a new ranking service
func NewService(analyzer SymbolAnalyzer, watchlist WatchlistProvider, registry *indices.Registry, cfg Config, log *logger.Logger) *Service {
	if cfg.BatchSize < 1 {
		cfg.BatchSize = DefaultBatchSize
	}
	if registry == nil {
		registry = indices.Default()
	}
	return &Service{
		analyzer:  analyzer,
		watchlist: watchlist,
		indices:   registry,
		cfg:       cfg,
		logger:    log.Module("ranking"),
	}
}

// WithCache enables result caching. It has no effect while CacheTTL is zero.
func (s *Service) WithCache(cache ResultCache) *Service {
	s.cache = cache
	return s
}

// WithMetrics enables run metrics
func (s *Service) WithMetrics(m *Metrics) *Service {
	s.metrics = m
	return s
}

// Indices returns the static index registry the service resolves modes from
func (s *Service) Indices() *indices.Registry {
	return s.indices
}

// Rank resolves the universe of req, analyzes every symbol in bounded batches
// and returns the sorted result. Per-symbol failures become failure rows; only
// validation and universe errors fail the run.
func (s *Service) Rank(ctx context.Context, req RankRequest) (*contracts.RankingResult, error) {
	if err := req.Validate(s.indices); err != nil {
		return nil, err
	}

	start := time.Now()
	runID := uuid.NewString()
	log := s.logger.WithFields(map[string]interface{}{
		"run_id": runID,
		"mode":   req.Mode,
		"from":   req.FromDate,
		"to":     req.ToDate,
	})

	key := redis.RankingKey(req.Mode, req.GroupID, req.FromDate, req.ToDate)
	if cached, ok := s.cached(ctx, key, req.NoCache); ok {
		log.WithField("cached_run_id", cached.RunID).Debug("Serving cached ranking")
		return cached, nil
	}

	universe, err := s.resolveUniverse(ctx, req)
	if err != nil {
		s.metrics.recordRun(req.Mode, "upstream_error", time.Since(start))
		log.WithError(err).Warn("Universe resolution failed")
		return nil, err
	}

	result := &contracts.RankingResult{
		RunID: runID,
		Mode:  req.Mode,
		Items: []contracts.RankingItem{},
	}

	if len(universe) > 0 {
		result.Items = s.analyzeAll(ctx, log, universe, req.FromDate, req.ToDate)
		SortRankingItems(result.Items)
	}
	result.Total = len(result.Items)

	s.store(ctx, log, key, result)
	s.metrics.recordRun(req.Mode, "ok", time.Since(start))

	log.WithFields(map[string]interface{}{
		"total":    result.Total,
		"failures": result.Failures(),
		"elapsed":  time.Since(start).String(),
	}).Info("Ranking completed")

	return result, nil
}

func (s *Service) resolveUniverse(ctx context.Context, req RankRequest) ([]contracts.SymbolRequest, error) {
	if req.IsWatchlist() {
		if s.watchlist == nil {
			return nil, fmt.Errorf("%w: no watchlist provider configured", ErrUpstreamUnavailable)
		}
		members, err := s.watchlist.FetchGroup(ctx, req.GroupID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
		}
		return members, nil
	}

	// Validate already checked the mode
	symbols, _ := s.indices.Symbols(req.Mode)
	members := make([]contracts.SymbolRequest, 0, len(symbols))
	for _, sym := range symbols {
		members = append(members, contracts.SymbolRequest{Symbol: sym})
	}
	return members, nil
}

// analyzeAll runs the universe batch by batch. Inside a batch every symbol is
// analyzed concurrently into its own slot; the next batch starts only after
// the whole batch settled.
func (s *Service) analyzeAll(ctx context.Context, log *logger.Logger, universe []contracts.SymbolRequest, from, to string) []contracts.RankingItem {
	items := make([]contracts.RankingItem, len(universe))

	for n, b := range splitBatches(len(universe), s.cfg.BatchSize) {
		var wg sync.WaitGroup
		for i := b[0]; i < b[1]; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				items[i] = s.analyzeOne(ctx, log, universe[i], from, to)
			}(i)
		}
		wg.Wait()

		log.WithFields(map[string]interface{}{
			"batch": n + 1,
			"size":  b[1] - b[0],
		}).Debug("Batch settled")
	}

	return items
}

func (s *Service) analyzeOne(ctx context.Context, log *logger.Logger, req contracts.SymbolRequest, from, to string) (item contracts.RankingItem) {
	defer func() {
		if r := recover(); r != nil {
			item = contracts.FailedItem(req, fmt.Errorf("analysis panicked: %v", r))
			s.metrics.recordSymbol(true)
			log.WithField("symbol", req.Symbol).Error(fmt.Sprintf("Analysis panicked: %v", r))
		}
	}()

	item, err := s.analyzer.Analyze(ctx, req, from, to)
	if err != nil {
		s.metrics.recordSymbol(true)
		log.WithError(err).WithField("symbol", strings.ToUpper(req.Symbol)).Warn("Symbol analysis failed")
		return contracts.FailedItem(req, err)
	}

	s.metrics.recordSymbol(false)
	return item
}

// splitBatches returns [start, end) bounds covering n items in chunks of size
func splitBatches(n, size int) [][2]int {
	if size < 1 {
		size = 1
	}
	batches := make([][2]int, 0, (n+size-1)/size)
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		batches = append(batches, [2]int{start, end})
	}
	return batches
}

func (s *Service) cached(ctx context.Context, key string, skip bool) (*contracts.RankingResult, bool) {
	if s.cache == nil || s.cfg.CacheTTL <= 0 || skip {
		return nil, false
	}

	var result contracts.RankingResult
	hit, err := s.cache.Get(ctx, key, &result)
	if err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Ranking cache read failed")
		return nil, false
	}
	s.metrics.recordCache(hit)
	if !hit {
		return nil, false
	}
	if result.Items == nil {
		result.Items = []contracts.RankingItem{}
	}
	return &result, true
}

func (s *Service) store(ctx context.Context, log *logger.Logger, key string, result *contracts.RankingResult) {
	if s.cache == nil || s.cfg.CacheTTL <= 0 {
		return
	}
	// failures are final only within their own run
	if ctx.Err() != nil || result.Failures() > 0 {
		log.WithField("failures", result.Failures()).Debug("Ranking not cached")
		return
	}
	if err := s.cache.Set(ctx, key, result, s.cfg.CacheTTL); err != nil {
		log.WithError(err).WithField("key", key).Warn("Ranking cache write failed")
	}
}
