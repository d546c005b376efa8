package service

import (
	"math"
	"testing"
	"time"

	"github.com/polycopy/Copy-Trading-Backend/internal/model"
)

// TestPortfolioHistory tests the synthesized performance chart series.
//
// WHY: The chart has no persisted history behind it, so the series must be a
// deterministic interpolation with predictable endpoints and point counts.
func TestPortfolioHistory(t *testing.T) {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	metrics := model.PortfolioMetrics{
		TotalPortfolioValue: 1200,
		TotalCopiedCapital:  1000,
	}

	t.Run("point counts per time range", func(t *testing.T) {
		tests := []struct {
			timeRange model.TimeRange
			want      int
		}{
			{model.Range1D, 25},
			{model.Range1W, 8},
			{model.Range1M, 31},
			{model.Range3M, 91},
			{model.Range1Y, 366},
			{model.TimeRange("bogus"), 31}, // unknown ranges fall back to a month
		}
		for _, tt := range tests {
			got := PortfolioHistory(metrics, tt.timeRange, now)
			if len(got) != tt.want {
				t.Errorf("range %q: got %d points, want %d", tt.timeRange, len(got), tt.want)
			}
		}
	})

	t.Run("interpolates capital to current value, oldest first", func(t *testing.T) {
		series := PortfolioHistory(metrics, model.Range1W, now)

		if series[0].Value != 1000 {
			t.Errorf("first point = %v, want starting capital 1000", series[0].Value)
		}
		if series[len(series)-1].Value != 1200 {
			t.Errorf("last point = %v, want current value 1200", series[len(series)-1].Value)
		}
		step := (1200.0 - 1000.0) / float64(len(series)-1)
		for i := 1; i < len(series); i++ {
			if series[i].Value < series[i-1].Value {
				t.Errorf("point %d (%v) below point %d (%v); series must be monotonic for a gaining portfolio",
					i, series[i].Value, i-1, series[i-1].Value)
			}
			if math.Abs(series[i].PnL-step) > 0.02 {
				t.Errorf("point %d pnl = %v, want per-step delta near %v", i, series[i].PnL, step)
			}
		}
	})

	t.Run("intraday range uses hourly timestamps", func(t *testing.T) {
		series := PortfolioHistory(metrics, model.Range1D, now)
		if series[len(series)-1].Date != "12:00" {
			t.Errorf("last intraday label = %q, want %q", series[len(series)-1].Date, "12:00")
		}
		if series[0].Date != "12:00" {
			// 24 hours back from noon is noon the previous day.
			t.Errorf("first intraday label = %q, want %q", series[0].Date, "12:00")
		}
	})

	t.Run("daily range labels are month and day", func(t *testing.T) {
		series := PortfolioHistory(metrics, model.Range1W, now)
		if series[len(series)-1].Date != "Jan 15" {
			t.Errorf("last daily label = %q, want %q", series[len(series)-1].Date, "Jan 15")
		}
		if series[0].Date != "Jan 8" {
			t.Errorf("first daily label = %q, want %q", series[0].Date, "Jan 8")
		}
	})

	t.Run("empty portfolio yields a flat zero series", func(t *testing.T) {
		series := PortfolioHistory(model.PortfolioMetrics{}, model.Range1M, now)
		for i, p := range series {
			if p.Value != 0 || p.PnL != 0 {
				t.Fatalf("point %d = %+v, want flat zeros for an empty portfolio", i, p)
			}
		}
	})
}
