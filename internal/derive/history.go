package derive

import (
	"math"
	"time"

	"github.com/polycopy/Copy-Trading-Backend/internal/model"
)

// Trade-history metrics. These operate on per-fill data from the activity
// subgraph. True win/loss classification needs market-resolution outcomes,
// which this system does not consume; a fill price above 0.5 is used as a
// simplified profitability proxy throughout.

// WinRateFromFills returns the percentage of fills priced above 0.5.
// Returns 0 when there are no fills.
func WinRateFromFills(fills []model.Fill) float64 {
	if len(fills) == 0 {
		return 0
	}
	profitable := 0
	for _, f := range fills {
		if sanitize(f.Price) > 0.5 {
			profitable++
		}
	}
	return round1(float64(profitable) / float64(len(fills)) * 100)
}

// RiskScoreFromFills combines trade frequency (weight 30), average position
// size (weight 30), and price variance (weight 40) into a 0-100 risk score.
// Returns the neutral 50 when there are no fills.
func RiskScoreFromFills(fills []model.Fill) float64 {
	if len(fills) == 0 {
		return 50
	}

	var totalAmount float64
	for _, f := range fills {
		totalAmount += sanitize(f.Amount)
	}
	avgAmount := totalAmount / float64(len(fills))

	frequencyRisk := math.Min(float64(len(fills))/10, 1) * 30
	sizeRisk := math.Min(avgAmount/1000, 1) * 30
	volatilityRisk := math.Min(priceStdDev(fills)*10, 1) * 40

	return math.Round(frequencyRisk + sizeRisk + volatilityRisk)
}

// ROIFromFills estimates a signed percentage return over fills newer than
// since: notional on fills priced above 0.5 counts as gain, the rest as loss,
// relative to total notional. Bounded to [-100, 100]; 0 when the window holds
// no notional.
func ROIFromFills(fills []model.Fill, since time.Time) float64 {
	var total, signed float64
	cutoff := since.Unix()
	for _, f := range fills {
		if f.Timestamp <= cutoff {
			continue
		}
		notional := sanitize(f.Price) * sanitize(f.Amount)
		if notional <= 0 {
			continue
		}
		total += notional
		if sanitize(f.Price) > 0.5 {
			signed += notional
		} else {
			signed -= notional
		}
	}
	if total <= 0 {
		return 0
	}
	return round1(sanitize(signed / total * 100))
}

// PerformanceFromHistory derives the full per-account performance set from
// fills and open positions. now anchors the 7-day and 30-day ROI windows.
func PerformanceFromHistory(fills []model.Fill, positions []model.Position, now time.Time) model.Performance {
	markets := make(map[string]struct{}, len(positions))
	for _, p := range positions {
		markets[p.Market] = struct{}{}
	}

	return model.Performance{
		TotalTrades:   len(fills),
		WinRate:       WinRateFromFills(fills),
		ROI7d:         ROIFromFills(fills, now.AddDate(0, 0, -7)),
		ROI30d:        ROIFromFills(fills, now.AddDate(0, 0, -30)),
		RiskScore:     RiskScoreFromFills(fills),
		MarketsActive: len(markets),
	}
}

// priceStdDev returns the standard deviation of fill prices, 0 for fewer
// than two fills.
func priceStdDev(fills []model.Fill) float64 {
	if len(fills) < 2 {
		return 0
	}
	var sum float64
	for _, f := range fills {
		sum += sanitize(f.Price)
	}
	mean := sum / float64(len(fills))

	var variance float64
	for _, f := range fills {
		d := sanitize(f.Price) - mean
		variance += d * d
	}
	variance /= float64(len(fills))
	return math.Sqrt(variance)
}
