package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/polycopy/Copy-Trading-Backend/internal/derive"
	"github.com/polycopy/Copy-Trading-Backend/internal/metrics"
	"github.com/polycopy/Copy-Trading-Backend/internal/model"
	"github.com/polycopy/Copy-Trading-Backend/internal/polymarket"
	"github.com/polycopy/Copy-Trading-Backend/internal/store"
)

// LeaderboardFetcher is the upstream surface TraderService needs; satisfied
// by polymarket.DataAPIClient.
type LeaderboardFetcher interface {
	FetchLeaderboard(ctx context.Context, limit int) ([]polymarket.LeaderboardRow, error)
}

// TraderService turns raw leaderboard rows into ranked TopTraders and keeps
// a last-good snapshot for fallback when the upstream is unavailable.
type TraderService struct {
	leaderboard LeaderboardFetcher
	copyStore   *store.CopyStore
	estimator   *derive.Estimator

	mu      sync.Mutex
	issued  uint64            // fetch generations handed out
	applied uint64            // generation currently in the cache
	cache   []model.TopTrader // last good result, unstamped
	cacheAt time.Time
}

// NewTraderService creates a TraderService.
func NewTraderService(leaderboard LeaderboardFetcher, copyStore *store.CopyStore, estimator *derive.Estimator) *TraderService {
	return &TraderService{
		leaderboard: leaderboard,
		copyStore:   copyStore,
		estimator:   estimator,
	}
}

// TopTraders fetches and derives the ranked leaderboard. The boolean
// reports whether the result is a cached fallback served because the
// upstream failed; the error is non-nil only when the upstream failed and
// no fallback exists.
//
// Concurrent calls follow a last-write-wins-by-issuance policy: a fetch
// that was superseded by a newer one before completing still returns its
// own result to its caller, but never overwrites the newer cache entry.
func (s *TraderService) TopTraders(ctx context.Context, limit int) ([]model.TopTrader, bool, error) {
	if limit <= 0 {
		limit = 100
	}

	s.mu.Lock()
	s.issued++
	gen := s.issued
	s.mu.Unlock()

	rows, err := s.leaderboard.FetchLeaderboard(ctx, limit)
	if err != nil {
		s.mu.Lock()
		cached := cloneTraders(s.cache)
		s.mu.Unlock()

		if cached == nil {
			return nil, false, err
		}
		log.Printf("leaderboard fetch failed, serving cached snapshot: %v", err)
		metrics.LeaderboardFallbacksTotal.Inc()
		if len(cached) > limit {
			cached = cached[:limit]
			derive.Redensify(cached)
		}
		s.stampCopied(cached)
		return cached, true, nil
	}

	traders := make([]model.TopTrader, len(rows))
	for i, row := range rows {
		traders[i] = model.TopTrader{Trader: s.estimator.TraderFromLeaderboard(row.Entry(), i)}
	}
	derive.RankByWinRate(traders)
	if len(traders) > limit {
		traders = traders[:limit]
		derive.Redensify(traders)
	}

	s.mu.Lock()
	if gen > s.applied {
		s.applied = gen
		s.cache = cloneTraders(traders)
		s.cacheAt = time.Now()
	}
	s.mu.Unlock()

	s.stampCopied(traders)
	return traders, false, nil
}

// RefreshLeaderboard re-warms the fallback cache; used by the scheduled job.
func (s *TraderService) RefreshLeaderboard(ctx context.Context, limit int) error {
	_, _, err := s.TopTraders(ctx, limit)
	return err
}

// stampCopied marks traders present in the current copied set. Done at read
// time so cached snapshots reflect copy state changes made after caching.
func (s *TraderService) stampCopied(traders []model.TopTrader) {
	for i := range traders {
		traders[i].IsCopied = s.copyStore.IsCopied(traders[i].ID)
	}
}

func cloneTraders(traders []model.TopTrader) []model.TopTrader {
	if traders == nil {
		return nil
	}
	return append([]model.TopTrader(nil), traders...)
}
