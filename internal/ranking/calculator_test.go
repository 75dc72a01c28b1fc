package ranking

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wonny/bandarscan/internal/contracts"
)

func TestTickSize(t *testing.T) {
	tests := []struct {
		price float64
		want  float64
	}{
		{50, 1},
		{199, 1},
		{200, 2},
		{499, 2},
		{500, 5},
		{1999, 5},
		{2000, 10},
		{4990, 10},
		{5000, 25},
		{9500, 25},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TickSize(tt.price), "price %v", tt.price)
	}
}

func TestCalculateTargets(t *testing.T) {
	// tick 5, 40 levels, 25 per level, pressure 200
	got := CalculateTargets(1000, 5000, 1100, 900, 400, 600, 1050)

	assert.Equal(t, 1550.0, got.TargetRealistic)
	assert.Equal(t, 2050.0, got.TargetMax)
	assert.Equal(t, 9.09, got.ProximityPercentRealistic)
	assert.Equal(t, 4.76, got.ProximityPercentMax)
	assert.Equal(t, 47.6, GainPercent(got.TargetRealistic, 1050))
}

func TestCalculateTargets_NoBoardDepth(t *testing.T) {
	// crossed / empty book: targets fall back to the premium over the average
	got := CalculateTargets(1000, 5000, 900, 1000, 0, 0, 1000)

	assert.Equal(t, 1050.0, got.TargetRealistic)
	assert.Equal(t, 1050.0, got.TargetMax)
	assert.Equal(t, 0.0, got.ProximityPercentRealistic)
}

func TestCalculateTargets_AllZero(t *testing.T) {
	got := CalculateTargets(0, 0, 0, 0, 0, 0, 0)

	assert.Equal(t, 0.0, got.TargetRealistic)
	assert.Equal(t, 0.0, got.TargetMax)
	assert.Equal(t, 0.0, got.ProximityPercentRealistic)
	assert.Equal(t, 0.0, got.ProximityPercentMax)
}

func TestCalculateTargets_AlwaysFinite(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	pick := func(max float64) float64 {
		// a quarter of the draws are exact zeros
		if rng.Intn(4) == 0 {
			return 0
		}
		return rng.Float64() * max
	}

	for i := 0; i < 5000; i++ {
		got := CalculateTargets(
			pick(10000), pick(1e7),
			pick(10000), pick(10000),
			pick(1e5), pick(1e5),
			pick(10000),
		)
		for _, v := range []float64{got.TargetRealistic, got.TargetMax, got.ProximityPercentRealistic, got.ProximityPercentMax} {
			assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "iteration %d: %+v", i, got)
		}
	}
}

func TestProximity_MonotonicInLastPrice(t *testing.T) {
	prev := math.Inf(-1)
	for last := 800.0; last <= 1600; last += 5 {
		p := Proximity(last, 1000, 1500)
		assert.GreaterOrEqual(t, p, prev)
		prev = p
	}

	assert.Equal(t, 0.0, Proximity(1000, 1000, 1500))
	assert.Equal(t, 100.0, Proximity(1500, 1000, 1500))
	assert.Equal(t, 0.0, Proximity(1200, 1000, 1000))
}

func TestCalculateTargets_NeverEmitsFailureSentinel(t *testing.T) {
	// no board depth: target = 1050, proximity = (500.5-1000)/50*100
	got := CalculateTargets(1000, 5000, 0, 0, 0, 0, 500.5)

	assert.Equal(t, 1050.0, got.TargetRealistic)
	assert.NotEqual(t, float64(contracts.SentinelFailure), got.ProximityPercentRealistic)
	assert.InDelta(t, -999.01, got.ProximityPercentRealistic, 1e-9)

	item := contracts.RankingItem{Symbol: "LOW", ProximityPercentRealistic: got.ProximityPercentRealistic}
	assert.False(t, item.IsFailure())
}

func TestGainPercent(t *testing.T) {
	assert.Equal(t, 20.0, GainPercent(120, 100))
	assert.Equal(t, -10.0, GainPercent(90, 100))
	assert.Equal(t, 0.0, GainPercent(120, 0))
	assert.Equal(t, 0.0, GainPercent(120, -5))
}
