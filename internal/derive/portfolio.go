package derive

import (
	"github.com/polycopy/Copy-Trading-Backend/internal/model"
)

// pnl24hFactor approximates a 24-hour PnL as a fixed share of lifetime PnL.
// Without persisted valuation history a true windowed figure is not
// computable; the factor keeps the proxy deterministic.
const pnl24hFactor = 0.03

// CalculatePortfolioMetrics folds the copied set into portfolio aggregates.
// The fold is plain summation, so the result is identical regardless of
// iteration order. Monetary values are rounded to two decimals, the ROI
// percentage to one.
func CalculatePortfolioMetrics(copied []model.CopiedTrader) model.PortfolioMetrics {
	var totalCapital, totalValue float64
	for _, t := range copied {
		totalCapital += sanitize(t.CapitalAllocated)
		totalValue += sanitize(t.CurrentValue)
	}

	pnl := totalValue - totalCapital

	roiPercent := 0.0
	if totalCapital > 0 {
		roiPercent = pnl / totalCapital * 100
	}

	return model.PortfolioMetrics{
		TotalPortfolioValue: round2(totalValue),
		TotalCopiedCapital:  round2(totalCapital),
		LifetimeCopyPnL:     round2(pnl),
		ROIPercent:          round1(sanitize(roiPercent)),
		PnL24h:              round2(pnl * pnl24hFactor),
	}
}

// Returns computes a copied trader's absolute and percentage returns from
// its allocation and mark-to-market value. The percentage is 0 when no
// capital is allocated.
func Returns(capitalAllocated, currentValue float64) (returns, returnsPercent float64) {
	capitalAllocated = sanitize(capitalAllocated)
	currentValue = sanitize(currentValue)

	returns = round2(currentValue - capitalAllocated)
	if capitalAllocated > 0 {
		returnsPercent = round1(sanitize(returns / capitalAllocated * 100))
	}
	return returns, returnsPercent
}

// TrendFor maps a percentage return onto a display trend.
func TrendFor(returnsPercent float64) model.Trend {
	if returnsPercent >= 0 {
		return model.TrendUp
	}
	return model.TrendDown
}
