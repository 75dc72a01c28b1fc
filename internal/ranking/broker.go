package ranking

import (
	"math"

	"github.com/wonny/bandarscan/internal/contracts"
	"github.com/wonny/bandarscan/internal/external/stockbit"
)

// TopBroker picks the dominant accumulator from a market detector response.
// Brokers arrive ranked by significance; the first one with a usable average
// price wins.
func TopBroker(md *stockbit.MarketDetector) (contracts.BrokerSummary, error) {
	if md == nil {
		return contracts.BrokerSummary{}, ErrNoBrokerData
	}

	for _, rec := range md.BrokerSummary.BrokersBuy {
		avg := rec.AvgPrice.Float64()
		if avg <= 0 {
			continue
		}
		return contracts.BrokerSummary{
			BrokerCode:           rec.BrokerCode,
			AveragePrice:         avg,
			NetAccumulatedVolume: math.Abs(rec.Lot.Float64()),
		}, nil
	}

	return contracts.BrokerSummary{}, ErrNoBrokerData
}
