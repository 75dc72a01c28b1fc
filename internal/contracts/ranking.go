package contracts

import (
	"strings"
)

// SentinelFailure marks a row whose analysis failed. Successful rows never
// carry it; see ranking.Proximity.
const SentinelFailure = -999

// Flag is the watchlist verdict attached to a symbol.
type Flag string

const (
	FlagUnset   Flag = ""
	FlagOK      Flag = "OK"
	FlagNG      Flag = "NG"
	FlagNeutral Flag = "Neutral"
)

// ParseFlag maps a loosely typed watchlist value onto Flag.
// Unknown values and nil become FlagUnset.
func ParseFlag(v interface{}) Flag {
	s, ok := v.(string)
	if !ok {
		return FlagUnset
	}
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "OK":
		return FlagOK
	case "NG":
		return FlagNG
	case "NEUTRAL":
		return FlagNeutral
	default:
		return FlagUnset
	}
}

// SymbolRequest is one member of the resolved universe
// ⭐ SSOT: Universe → Analyzer 입력
type SymbolRequest struct {
	Symbol         string  `json:"symbol"`
	Flag           Flag    `json:"flag,omitempty"`
	Sector         string  `json:"sector,omitempty"`
	LastKnownPrice float64 `json:"last_price,omitempty"`
}

// BrokerSummary is the dominant accumulator ("bandar") for a date range
type BrokerSummary struct {
	BrokerCode           string  `json:"broker_code"`
	AveragePrice         float64 `json:"average_price"`
	NetAccumulatedVolume float64 `json:"net_accumulated_volume"` // lots
}

// OrderBookSnapshot is the order book reduced to what the target calculator needs.
// Volumes are already scaled by 1/100.
type OrderBookSnapshot struct {
	LastPrice            float64 `json:"last_price"`
	BestOfferAbove       float64 `json:"best_offer_above"`
	BestBidBelow         float64 `json:"best_bid_below"`
	TotalBidVolumeLots   float64 `json:"total_bid_volume_lots"`
	TotalOfferVolumeLots float64 `json:"total_offer_volume_lots"`
}

// TargetResult is the output of the target calculator
type TargetResult struct {
	TargetRealistic           float64 `json:"target_realistic"`
	TargetMax                 float64 `json:"target_max"`
	ProximityPercentRealistic float64 `json:"proximity_percent_realistic"`
	ProximityPercentMax       float64 `json:"proximity_percent_max"`
}

// RankingItem is one row of the ranked output
// ⭐ SSOT: 랭킹 결과 행
type RankingItem struct {
	Symbol                    string  `json:"symbol"`
	Price                     float64 `json:"price"`
	AverageAccumulatorPrice   float64 `json:"averageAccumulatorPrice"`
	TargetRealistic           float64 `json:"targetRealistic"`
	TargetMax                 float64 `json:"targetMax"`
	ProximityPercentRealistic float64 `json:"proximityPercentRealistic"`
	ProximityPercentMax       float64 `json:"proximityPercentMax"`
	GainPercentRealistic      float64 `json:"gainPercentRealistic"`
	Sector                    string  `json:"sector,omitempty"`
	Flag                      Flag    `json:"flag,omitempty"`
	Error                     string  `json:"error,omitempty"`
}

// IsFailure reports whether the row is a failure row: sentinel proximity and
// an error message.
func (r RankingItem) IsFailure() bool {
	return r.Error != "" && r.ProximityPercentRealistic == SentinelFailure
}

// FailedItem builds the row emitted when a symbol could not be analyzed.
// Previously known price, sector and flag are carried forward.
func FailedItem(req SymbolRequest, err error) RankingItem {
	msg := "failed to fetch data"
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return RankingItem{
		Symbol:                    strings.ToUpper(req.Symbol),
		Price:                     req.LastKnownPrice,
		ProximityPercentRealistic: SentinelFailure,
		ProximityPercentMax:       SentinelFailure,
		Sector:                    req.Sector,
		Flag:                      req.Flag,
		Error:                     msg,
	}
}

// RankingResult is a fully materialized ranking run
type RankingResult struct {
	RunID string        `json:"run_id,omitempty"`
	Mode  string        `json:"mode"`
	Items []RankingItem `json:"items"`
	Total int           `json:"total"`
}

// Failures counts failure rows
func (r *RankingResult) Failures() int {
	n := 0
	for _, item := range r.Items {
		if item.IsFailure() {
			n++
		}
	}
	return n
}
