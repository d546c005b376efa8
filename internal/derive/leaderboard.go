// Package derive computes display-ready trader and portfolio metrics from raw
// upstream records. Every function is pure and total: malformed numeric input
// degrades to a defined neutral value and no NaN or infinity ever escapes.
package derive

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/polycopy/Copy-Trading-Backend/internal/model"
)

// Tuning constants for the leaderboard heuristics. The leaderboard only
// exposes aggregate PnL and volume per account, so win rate, risk, market
// count, and trade count are heuristic estimates, not authoritative values;
// ground truth would require resolved-market win/loss data this system does
// not have.
const (
	winRateFloor = 40.0
	winRateCeil  = 80.0

	// assumedAvgTradeSize approximates trade count from volume.
	assumedAvgTradeSize = 100.0

	// volumePerMarket approximates distinct active markets from volume.
	volumePerMarket = 5000.0
)

// LeaderboardEntry is the derivation input for one leaderboard account,
// already parsed from the data API's wire shape.
type LeaderboardEntry struct {
	Address      string
	Username     string
	ProfileImage string
	PnL          float64 // Aggregate profit/loss over the leaderboard window
	Vol          float64 // Aggregate traded volume over the leaderboard window
	Verified     bool
}

// EstimateROI estimates percentage return from aggregate PnL and volume.
// Volume is total traded rather than initial capital, so this understates
// true ROI; 0 when volume is 0.
func EstimateROI(pnl, vol float64) float64 {
	pnl, vol = sanitize(pnl), sanitize(vol)
	if vol <= 0 {
		return 0
	}
	return sanitize(pnl / vol * 100)
}

// EstimateWinRate estimates a win-rate percentage from aggregate PnL, volume,
// and the account's 0-based leaderboard position. Base 50; profitable
// accounts scale up toward 75 with their PnL/volume ratio, losing accounts
// scale down toward 40, and top-5/top-10 placement earns a small bonus.
// The result is always in [40, 80].
func EstimateWinRate(pnl, vol float64, index int) float64 {
	pnl, vol = sanitize(pnl), sanitize(vol)

	ratio := 0.0
	if vol > 0 {
		ratio = pnl / vol
	}

	winRate := 50.0
	switch {
	case pnl > 0 && ratio > 0:
		winRate = math.Min(75, 55+ratio*400)
	case pnl < 0:
		winRate = math.Max(40, 50+ratio*50)
	}

	// Top-ranked accounts tend to have slightly better win rates.
	switch {
	case index < 5:
		winRate = math.Min(80, winRate+2)
	case index < 10:
		winRate = math.Min(75, winRate+1)
	}

	return clamp(sanitize(winRate), winRateFloor, winRateCeil)
}

// EstimateRiskScore estimates a 20-80 risk score: higher volume and larger
// absolute PnL swings imply higher risk.
func EstimateRiskScore(pnl, vol float64) float64 {
	pnl, vol = sanitize(pnl), sanitize(vol)
	return math.Round(clamp(30+vol/10000+math.Abs(pnl)/1000, 20, 80))
}

// EstimateMarketsActive estimates distinct active markets from volume,
// bounded to [1, 20].
func EstimateMarketsActive(vol float64) int {
	return int(clamp(math.Floor(sanitize(vol)/volumePerMarket), 1, 20))
}

// EstimateTotalTrades estimates trade count from volume at an assumed
// average trade size, with a floor of 10.
func EstimateTotalTrades(vol float64) int {
	n := int(math.Floor(sanitize(vol) / assumedAvgTradeSize))
	if n < 10 {
		return 10
	}
	return n
}

// Estimator derives Trader records from leaderboard entries. The optional
// jitter source spreads otherwise identical win-rate estimates apart for
// display; it is cosmetic and disabled (nil) by default so output stays
// deterministic and reproducible under a fixed seed.
type Estimator struct {
	jitter *rand.Rand
}

// NewEstimator returns a deterministic estimator with jitter disabled.
func NewEstimator() *Estimator {
	return &Estimator{}
}

// NewEstimatorWithJitter returns an estimator that perturbs win-rate
// estimates by up to ±2 points using the given seed.
func NewEstimatorWithJitter(seed int64) *Estimator {
	return &Estimator{jitter: rand.New(rand.NewSource(seed))}
}

// TraderFromLeaderboard assembles a Trader from one leaderboard entry.
// index is the 0-based position in the upstream PnL ordering. The 7-day ROI
// is estimated as 30% of the monthly figure since the leaderboard window is
// monthly.
func (e *Estimator) TraderFromLeaderboard(entry LeaderboardEntry, index int) model.Trader {
	winRate := EstimateWinRate(entry.PnL, entry.Vol, index)
	if e.jitter != nil {
		winRate = clamp(winRate+(e.jitter.Float64()-0.5)*4, winRateFloor, winRateCeil)
	}

	roi := EstimateROI(entry.PnL, entry.Vol)

	id := entry.Address
	if id == "" {
		id = fmt.Sprintf("trader-%d", index)
	}

	username := entry.Username
	if username == "" {
		username = FormatAddress(entry.Address)
	}
	if username == "" {
		username = fmt.Sprintf("Trader%d", index+1)
	}

	followers := 0
	if entry.Verified {
		followers = 1000
	}

	return model.Trader{
		ID:            id,
		Username:      username,
		Avatar:        entry.ProfileImage,
		WinRate:       round1(winRate),
		ROI7d:         round1(roi * 0.3),
		ROI30d:        round1(roi),
		RiskScore:     EstimateRiskScore(entry.PnL, entry.Vol),
		MarketsActive: EstimateMarketsActive(entry.Vol),
		TotalTrades:   EstimateTotalTrades(entry.Vol),
		Followers:     followers,
	}
}

// FormatAddress shortens an account address for display ("0x1234...abcd").
// Returns the input unchanged when it is too short to elide.
func FormatAddress(address string) string {
	if address == "" {
		return ""
	}
	if len(address) <= 10 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}
