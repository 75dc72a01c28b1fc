package ranking

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wonny/bandarscan/internal/contracts"
)

func row(symbol string, proximity float64) contracts.RankingItem {
	return contracts.RankingItem{Symbol: symbol, ProximityPercentRealistic: proximity}
}

func failed(symbol string) contracts.RankingItem {
	return contracts.FailedItem(contracts.SymbolRequest{Symbol: symbol}, errors.New("timeout"))
}

func symbols(items []contracts.RankingItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Symbol)
	}
	return out
}

func TestSortRankingItems(t *testing.T) {
	items := []contracts.RankingItem{
		failed("A"),
		row("B", 10),
		failed("C"),
		row("D", -5),
		row("E", 10),
	}

	SortRankingItems(items)

	assert.Equal(t, []string{"D", "B", "E", "A", "C"}, symbols(items))
}

func TestSortRankingItems_FailuresAlwaysLast(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 200; round++ {
		items := make([]contracts.RankingItem, rng.Intn(20))
		for i := range items {
			if rng.Intn(3) == 0 {
				items[i] = failed("F")
				continue
			}
			items[i] = row("S", rng.Float64()*400-200)
		}

		SortRankingItems(items)

		seenFailure := false
		for i, it := range items {
			if it.IsFailure() {
				seenFailure = true
				continue
			}
			assert.False(t, seenFailure, "success row after a failure row")
			if i > 0 {
				assert.LessOrEqual(t, items[i-1].ProximityPercentRealistic, it.ProximityPercentRealistic)
			}
		}
	}
}

func TestSortRankingItems_SentinelValuedSuccessIsNotAFailure(t *testing.T) {
	items := []contracts.RankingItem{
		failed("BAD"),
		row("OK2", 40),
		row("LOW", contracts.SentinelFailure),
	}

	SortRankingItems(items)

	assert.Equal(t, []string{"LOW", "OK2", "BAD"}, symbols(items))
	assert.False(t, items[0].IsFailure())
}
