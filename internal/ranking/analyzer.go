package ranking

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/wonny/bandarscan/internal/contracts"
	"github.com/wonny/bandarscan/internal/external/stockbit"
	"github.com/wonny/bandarscan/pkg/logger"
)

// MarketData is the upstream the analyzer reads from.
// *stockbit.Client satisfies it.
type MarketData interface {
	FetchMarketDetector(ctx context.Context, symbol, from, to string) (*stockbit.MarketDetector, error)
	FetchOrderbook(ctx context.Context, symbol string) (*stockbit.Orderbook, error)
}

// Analyzer turns one symbol into a ranking row
// ⭐ SSOT: 종목 단위 분석 (broker + orderbook → target)
type Analyzer struct {
	market MarketData
	logger *logger.Logger
}

// NewAnalyzer creates a new analyzer
func NewAnalyzer(market MarketData, log *logger.Logger) *Analyzer {
	return &Analyzer{
		market: market,
		logger: log.Module("analyzer"),
	}
}

// Analyze fetches broker accumulation and the order book concurrently and
// computes the symbol's targets. Both fetches settle before it returns.
func (a *Analyzer) Analyze(ctx context.Context, req contracts.SymbolRequest, from, to string) (contracts.RankingItem, error) {
	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))

	var (
		md *stockbit.MarketDetector
		ob *stockbit.Orderbook
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		md, err = a.market.FetchMarketDetector(gctx, symbol, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		ob, err = a.market.FetchOrderbook(gctx, symbol)
		return err
	})
	if err := g.Wait(); err != nil {
		return contracts.RankingItem{}, err
	}

	broker, err := TopBroker(md)
	if err != nil {
		return contracts.RankingItem{}, fmt.Errorf("%s: %w", symbol, err)
	}

	book := ReadOrderBook(ob)
	targets := CalculateTargets(
		broker.AveragePrice, broker.NetAccumulatedVolume,
		book.BestOfferAbove, book.BestBidBelow,
		book.TotalBidVolumeLots, book.TotalOfferVolumeLots,
		book.LastPrice,
	)

	a.logger.WithFields(map[string]interface{}{
		"symbol":    symbol,
		"broker":    broker.BrokerCode,
		"avg_price": broker.AveragePrice,
		"target":    targets.TargetRealistic,
	}).Debug("Analyzed symbol")

	return contracts.RankingItem{
		Symbol:                    symbol,
		Price:                     book.LastPrice,
		AverageAccumulatorPrice:   broker.AveragePrice,
		TargetRealistic:           targets.TargetRealistic,
		TargetMax:                 targets.TargetMax,
		ProximityPercentRealistic: targets.ProximityPercentRealistic,
		ProximityPercentMax:       targets.ProximityPercentMax,
		GainPercentRealistic:      GainPercent(targets.TargetRealistic, book.LastPrice),
		Sector:                    req.Sector,
		Flag:                      req.Flag,
	}, nil
}
