package service

import (
	"math"
	"time"

	"github.com/polycopy/Copy-Trading-Backend/internal/model"
)

// PortfolioHistory synthesizes a performance chart series from the current
// portfolio metrics. With no persisted valuation history, the series is a
// deterministic interpolation from total copied capital to current portfolio
// value across the requested window, oldest point first.
func PortfolioHistory(metrics model.PortfolioMetrics, timeRange model.TimeRange, now time.Time) []model.PerformanceDataPoint {
	points := timeRange.Days() + 1
	step := 24 * time.Hour
	dateFormat := "Jan 2"
	if timeRange == model.Range1D {
		points = 25
		step = time.Hour
		dateFormat = "15:04"
	}

	start := metrics.TotalCopiedCapital
	end := metrics.TotalPortfolioValue
	span := float64(points - 1)

	series := make([]model.PerformanceDataPoint, points)
	prev := start
	for i := 0; i < points; i++ {
		ts := now.Add(-time.Duration(points-1-i) * step)
		value := start + (end-start)*float64(i)/span

		series[i] = model.PerformanceDataPoint{
			Date:  ts.Format(dateFormat),
			Value: round2(value),
			PnL:   round2(value - prev),
		}
		prev = value
	}
	return series
}

// round2 rounds to two decimals for chart display.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
