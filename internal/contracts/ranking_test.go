package contracts

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlag(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  Flag
	}{
		{"ok", "OK", FlagOK},
		{"lowercase ng", "ng", FlagNG},
		{"neutral", "Neutral", FlagNeutral},
		{"padded", "  ok ", FlagOK},
		{"nil", nil, FlagUnset},
		{"number", 1, FlagUnset},
		{"unknown", "HOLD", FlagUnset},
		{"empty", "", FlagUnset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseFlag(tt.input))
		})
	}
}

func TestFailedItem(t *testing.T) {
	req := SymbolRequest{Symbol: "bbri", Flag: FlagNG, Sector: "Finance", LastKnownPrice: 4300}

	item := FailedItem(req, errors.New("orderbook: timeout"))

	assert.Equal(t, "BBRI", item.Symbol)
	assert.Equal(t, 4300.0, item.Price)
	assert.Equal(t, float64(SentinelFailure), item.ProximityPercentRealistic)
	assert.Equal(t, float64(SentinelFailure), item.ProximityPercentMax)
	assert.Equal(t, "Finance", item.Sector)
	assert.Equal(t, FlagNG, item.Flag)
	assert.Equal(t, "orderbook: timeout", item.Error)
	assert.True(t, item.IsFailure())
	assert.Zero(t, item.TargetRealistic)
}

func TestFailedItem_NilError(t *testing.T) {
	item := FailedItem(SymbolRequest{Symbol: "TLKM"}, nil)
	assert.Equal(t, "failed to fetch data", item.Error)
}

func TestRankingItem_JSONOmitsUnsetOptionals(t *testing.T) {
	data, err := json.Marshal(RankingItem{Symbol: "BBCA", Price: 9000})
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))

	assert.NotContains(t, raw, "flag")
	assert.NotContains(t, raw, "sector")
	assert.NotContains(t, raw, "error")
	assert.Contains(t, raw, "proximityPercentRealistic")
}

func TestRankingItem_IsFailure_RequiresError(t *testing.T) {
	item := RankingItem{Symbol: "LOW", ProximityPercentRealistic: SentinelFailure}
	assert.False(t, item.IsFailure())

	item.Error = "timeout"
	assert.True(t, item.IsFailure())
}

func TestRankingResult_Failures(t *testing.T) {
	res := &RankingResult{Items: []RankingItem{
		{Symbol: "A", ProximityPercentRealistic: 12},
		FailedItem(SymbolRequest{Symbol: "B"}, errors.New("x")),
		FailedItem(SymbolRequest{Symbol: "C"}, errors.New("y")),
	}}
	assert.Equal(t, 2, res.Failures())
}
