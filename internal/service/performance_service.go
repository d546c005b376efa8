package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/polycopy/Copy-Trading-Backend/internal/derive"
	"github.com/polycopy/Copy-Trading-Backend/internal/model"
)

// fillHistoryLimit bounds how many fills feed the per-account metrics.
const fillHistoryLimit = 1000

// HistoryFetcher is the upstream surface PerformanceService needs; satisfied
// by polymarket.SubgraphClient. Both calls are best-effort and return empty
// slices on failure.
type HistoryFetcher interface {
	FetchUserFills(ctx context.Context, address string, limit int) []model.Fill
	FetchUserPositions(ctx context.Context, address string) []model.Position
}

// PerformanceService derives per-account performance metrics from subgraph
// trade history.
type PerformanceService struct {
	subgraph HistoryFetcher
	now      func() time.Time
}

// NewPerformanceService creates a PerformanceService.
func NewPerformanceService(subgraph HistoryFetcher) *PerformanceService {
	return &PerformanceService{subgraph: subgraph, now: time.Now}
}

// NewPerformanceServiceWithClock creates a PerformanceService with an
// injected clock for stable ROI windows in tests.
func NewPerformanceServiceWithClock(subgraph HistoryFetcher, now func() time.Time) *PerformanceService {
	return &PerformanceService{subgraph: subgraph, now: now}
}

// UserPerformance fetches fills and positions concurrently and derives the
// account's metrics. Upstream failures degrade to metrics over empty data
// (neutral defaults), never to an error.
func (s *PerformanceService) UserPerformance(ctx context.Context, address string) model.Performance {
	var (
		fills     []model.Fill
		positions []model.Position
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fills = s.subgraph.FetchUserFills(gctx, address, fillHistoryLimit)
		return nil
	})
	g.Go(func() error {
		positions = s.subgraph.FetchUserPositions(gctx, address)
		return nil
	})
	_ = g.Wait() // goroutines never return errors; fetches are best-effort

	return derive.PerformanceFromHistory(fills, positions, s.now())
}
