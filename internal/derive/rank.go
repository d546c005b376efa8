package derive

import (
	"sort"

	"github.com/polycopy/Copy-Trading-Backend/internal/model"
)

// RankByWinRate sorts traders by win rate descending and reassigns ranks
// densely as 1..N. The sort is stable: ties keep their original relative
// order, so the upstream PnL ordering breaks win-rate ties.
func RankByWinRate(traders []model.TopTrader) {
	sort.SliceStable(traders, func(i, j int) bool {
		return traders[i].WinRate > traders[j].WinRate
	})
	Redensify(traders)
}

// Redensify reassigns ranks 1..N in the current slice order. Call after any
// re-sort or truncation so ranks stay dense with no gaps.
func Redensify(traders []model.TopTrader) {
	for i := range traders {
		traders[i].Rank = i + 1
	}
}
