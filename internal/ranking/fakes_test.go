package ranking

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/wonny/bandarscan/internal/contracts"
	"github.com/wonny/bandarscan/internal/external/stockbit"
)

// fakeMarket serves canned upstream responses per symbol
type fakeMarket struct {
	mu        sync.Mutex
	detectors map[string]*stockbit.MarketDetector
	books     map[string]*stockbit.Orderbook
	errs      map[string]error // market detector failures
	bookErrs  map[string]error // orderbook failures
	calls     []string
}

func newFakeMarket() *fakeMarket {
	return &fakeMarket{
		detectors: map[string]*stockbit.MarketDetector{},
		books:     map[string]*stockbit.Orderbook{},
		errs:      map[string]error{},
		bookErrs:  map[string]error{},
	}
}

func (f *fakeMarket) FetchMarketDetector(ctx context.Context, symbol, from, to string) (*stockbit.MarketDetector, error) {
	f.record("md:" + symbol)
	if err := f.errs[symbol]; err != nil {
		return nil, err
	}
	return f.detectors[symbol], nil
}

func (f *fakeMarket) FetchOrderbook(ctx context.Context, symbol string) (*stockbit.Orderbook, error) {
	f.record("ob:" + symbol)
	if err := f.bookErrs[symbol]; err != nil {
		return nil, err
	}
	return f.books[symbol], nil
}

func (f *fakeMarket) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

// fakeWatchlist returns a fixed group
type fakeWatchlist struct {
	members []contracts.SymbolRequest
	err     error
	calls   int
}

func (f *fakeWatchlist) FetchGroup(ctx context.Context, groupID string) ([]contracts.SymbolRequest, error) {
	f.calls++
	return f.members, f.err
}

// analyzerFunc adapts a function to SymbolAnalyzer
type analyzerFunc func(ctx context.Context, req contracts.SymbolRequest, from, to string) (contracts.RankingItem, error)

func (fn analyzerFunc) Analyze(ctx context.Context, req contracts.SymbolRequest, from, to string) (contracts.RankingItem, error) {
	return fn(ctx, req, from, to)
}

func failingAnalyzer(calls *int, mu *sync.Mutex) analyzerFunc {
	return func(ctx context.Context, req contracts.SymbolRequest, from, to string) (contracts.RankingItem, error) {
		mu.Lock()
		*calls++
		mu.Unlock()
		return contracts.RankingItem{}, errors.New("upstream 401")
	}
}

// flakyAnalyzer fails its first call and succeeds afterwards
func flakyAnalyzer(calls *int, mu *sync.Mutex) analyzerFunc {
	return func(ctx context.Context, req contracts.SymbolRequest, from, to string) (contracts.RankingItem, error) {
		mu.Lock()
		*calls++
		n := *calls
		mu.Unlock()
		if n == 1 {
			return contracts.RankingItem{}, errors.New("upstream 503")
		}
		return contracts.RankingItem{Symbol: strings.ToUpper(req.Symbol), ProximityPercentRealistic: 10}, nil
	}
}

// memoryCache round-trips through JSON like the redis cache does
type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]byte{}}
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = raw
	return nil
}

func members(syms ...string) []contracts.SymbolRequest {
	out := make([]contracts.SymbolRequest, 0, len(syms))
	for _, s := range syms {
		out = append(out, contracts.SymbolRequest{Symbol: strings.ToLower(s)})
	}
	return out
}
