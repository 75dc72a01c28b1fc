package ranking

import (
	"math"

	"github.com/wonny/bandarscan/internal/contracts"
)

// accumulatorPremium is the markup over the accumulator's average cost that
// both targets start from.
const accumulatorPremium = 0.05

// TickSize returns the exchange price fraction that applies at price
func TickSize(price float64) float64 {
	switch {
	case price < 200:
		return 1
	case price < 500:
		return 2
	case price < 2000:
		return 5
	case price < 5000:
		return 10
	default:
		return 25
	}
}

// CalculateTargets derives the realistic and maximum targets of a symbol from
// the accumulator's average price and volume and the current order book.
//
// The order book is spread over (bestOffer-bestBid)/tick price levels. The
// accumulated volume divided by the average volume per level says how many
// levels the accumulator can push the price through; the realistic target
// assumes half of that, the max target all of it.
// ⭐ SSOT: 목표가 계산식은 여기서만
func CalculateTargets(
	avgPrice, accumulatedVolume float64,
	bestOffer, bestBid float64,
	scaledBid, scaledOffer float64,
	lastPrice float64,
) contracts.TargetResult {
	tick := TickSize(lastPrice)

	levels := (bestOffer - bestBid) / tick
	var perLevel float64
	if levels > 0 {
		perLevel = (scaledBid + scaledOffer) / levels
	}

	var pressure float64
	if perLevel > 0 {
		pressure = accumulatedVolume / perLevel
	}

	base := avgPrice + avgPrice*accumulatorPremium
	realistic := finite(math.Round(base + pressure/2*tick))
	max := finite(math.Round(base + pressure*tick))

	return contracts.TargetResult{
		TargetRealistic:           realistic,
		TargetMax:                 max,
		ProximityPercentRealistic: Proximity(lastPrice, avgPrice, realistic),
		ProximityPercentMax:       Proximity(lastPrice, avgPrice, max),
	}
}

// Proximity is how far lastPrice has travelled from avgPrice toward target, in
// percent: 0 at the average, 100 at the target. Zero when target == avgPrice.
// A value landing on the failure sentinel is pushed one step below it.
func Proximity(lastPrice, avgPrice, target float64) float64 {
	span := target - avgPrice
	if span == 0 {
		return 0
	}
	p := finite(roundTo((lastPrice-avgPrice)/span*100, 2))
	if p == contracts.SentinelFailure {
		p = contracts.SentinelFailure - 0.01
	}
	return p
}

// GainPercent is the upside from lastPrice to target in percent, one decimal.
func GainPercent(target, lastPrice float64) float64 {
	if lastPrice <= 0 {
		return 0
	}
	return finite(roundTo((target-lastPrice)/lastPrice*100, 1))
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// finite maps NaN and ±Inf to 0
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
