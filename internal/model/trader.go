package model

import "time"

// Trader represents a trading account's identity and performance snapshot.
// Records are read-only projections of upstream leaderboard/subgraph data and
// are replaced wholesale on each fetch.
type Trader struct {
	ID            string  `json:"id"`            // Stable per source address/account
	Username      string  `json:"username"`      // Display label, derived from address if absent
	Avatar        string  `json:"avatar,omitempty"`
	WinRate       float64 `json:"winRate"`       // Percentage of profitable resolved positions (0-100)
	ROI7d         float64 `json:"roi7d"`         // Signed percentage return, trailing 7 days
	ROI30d        float64 `json:"roi30d"`        // Signed percentage return, trailing 30 days
	RiskScore     float64 `json:"riskScore"`     // 0-100, higher is riskier
	MarketsActive int     `json:"marketsActive"` // Distinct markets with open positions
	TotalTrades   int     `json:"totalTrades"`
	Followers     int     `json:"followers,omitempty"`
}

// TopTrader is a Trader projected into a ranked leaderboard row.
// Rank is 1-based and dense; it must be reassigned after any re-sort or filter.
type TopTrader struct {
	Trader
	Rank     int  `json:"rank"`
	IsCopied bool `json:"isCopied"` // True iff the trader id is in the current copied set
}

// Trend describes the direction of a copied trader's returns.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
)

// SparklinePoint is a single sample in a copied trader's inline chart.
type SparklinePoint struct {
	Value float64 `json:"value"`
}

// CopiedTrader extends Trader with allocation and performance-since-copy state.
// CurrentValue is mutated only by mark-to-market recomputation, never by
// partial user edits. CopiedAt is immutable once created.
type CopiedTrader struct {
	Trader
	CopyID           string           `json:"copyId"` // Internal record identifier
	CapitalAllocated float64          `json:"capitalAllocated"`
	CurrentValue     float64          `json:"currentValue"`
	Returns          float64          `json:"returns"`        // currentValue - capitalAllocated
	ReturnsPercent   float64          `json:"returnsPercent"` // 0 when capitalAllocated is 0
	Trend            Trend            `json:"trend"`
	ChartData        []SparklinePoint `json:"chartData"` // Oldest first
	CopiedAt         time.Time        `json:"copiedAt"`
	IsActive         bool             `json:"isActive"`
	MaxDrawdown      float64          `json:"maxDrawdown,omitempty"` // 0 disables the stop-copy rule
}

// PortfolioMetrics aggregates the copied set. It is always a derived view,
// recomputed as a pure fold over the copied traders at the moment of read;
// it is never independently mutable state.
type PortfolioMetrics struct {
	TotalPortfolioValue float64 `json:"totalPortfolioValue"`
	TotalCopiedCapital  float64 `json:"totalCopiedCapital"`
	LifetimeCopyPnL     float64 `json:"lifetimeCopyPnL"`
	ROIPercent          float64 `json:"roiPercent"`
	PnL24h              float64 `json:"pnl24h"` // Derived proxy; no persisted history exists
}

// Performance holds trade-history-derived metrics for a single account.
type Performance struct {
	TotalTrades   int     `json:"totalTrades"`
	WinRate       float64 `json:"winRate"`
	ROI7d         float64 `json:"roi7d"`
	ROI30d        float64 `json:"roi30d"`
	RiskScore     float64 `json:"riskScore"`
	MarketsActive int     `json:"marketsActive"`
}

// Fill is a single executed trade for an account, as reported by the
// activity subgraph. Numeric fields arrive as strings and are parsed
// tolerantly by the derivation engine.
type Fill struct {
	ID        string  `json:"id"`
	User      string  `json:"user"`
	Market    string  `json:"market"`
	Outcome   string  `json:"outcome"`
	Price     float64 `json:"price"`
	Amount    float64 `json:"amount"`
	Timestamp int64   `json:"timestamp"`
}

// Position is an account's open exposure to one market outcome.
type Position struct {
	User         string  `json:"user"`
	Market       string  `json:"market"`
	Outcome      string  `json:"outcome"`
	Size         float64 `json:"size"`
	AveragePrice float64 `json:"averagePrice"`
}

// PerformanceDataPoint is one sample in a portfolio performance chart.
type PerformanceDataPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
	PnL   float64 `json:"pnl,omitempty"`
}

// TimeRange selects the window for performance chart data.
type TimeRange string

const (
	Range1D TimeRange = "1D"
	Range1W TimeRange = "1W"
	Range1M TimeRange = "1M"
	Range3M TimeRange = "3M"
	Range1Y TimeRange = "1Y"
)

// Days returns the number of days covered by the range. Unknown ranges
// fall back to one month.
func (r TimeRange) Days() int {
	switch r {
	case Range1D:
		return 1
	case Range1W:
		return 7
	case Range1M:
		return 30
	case Range3M:
		return 90
	case Range1Y:
		return 365
	default:
		return 30
	}
}
