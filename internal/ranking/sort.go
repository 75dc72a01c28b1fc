package ranking

import (
	"sort"

	"github.com/wonny/bandarscan/internal/contracts"
)

// SortRankingItems orders rows by realistic proximity ascending. Failed rows
// always go last and keep their relative order.
func SortRankingItems(items []contracts.RankingItem) {
	sort.SliceStable(items, func(i, j int) bool {
		fi, fj := items[i].IsFailure(), items[j].IsFailure()
		switch {
		case fi:
			return false
		case fj:
			return true
		default:
			return items[i].ProximityPercentRealistic < items[j].ProximityPercentRealistic
		}
	})
}
