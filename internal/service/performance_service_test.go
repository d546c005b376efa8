package service

import (
	"context"
	"testing"
	"time"

	"github.com/polycopy/Copy-Trading-Backend/internal/model"
)

type stubHistory struct {
	fills     []model.Fill
	positions []model.Position

	fillCalls     int
	positionCalls int
	gotAddress    string
}

func (s *stubHistory) FetchUserFills(ctx context.Context, address string, limit int) []model.Fill {
	s.fillCalls++
	s.gotAddress = address
	return s.fills
}

func (s *stubHistory) FetchUserPositions(ctx context.Context, address string) []model.Position {
	s.positionCalls++
	return s.positions
}

func TestPerformanceService_UserPerformance(t *testing.T) {
	now := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	t.Run("derives metrics from fills and positions", func(t *testing.T) {
		recent := now.Add(-24 * time.Hour).Unix()
		stub := &stubHistory{
			fills: []model.Fill{
				{ID: "f1", Market: "m1", Price: 0.7, Amount: 100, Timestamp: recent},
				{ID: "f2", Market: "m2", Price: 0.3, Amount: 100, Timestamp: recent},
			},
			positions: []model.Position{
				{Market: "m1", Size: 10, AveragePrice: 0.6},
			},
		}
		svc := NewPerformanceServiceWithClock(stub, clock)

		perf := svc.UserPerformance(context.Background(), "0xabc")

		if stub.fillCalls != 1 || stub.positionCalls != 1 {
			t.Fatalf("fills fetched %d times, positions %d times; want one each", stub.fillCalls, stub.positionCalls)
		}
		if stub.gotAddress != "0xabc" {
			t.Errorf("fetched address %q, want %q", stub.gotAddress, "0xabc")
		}
		if perf.TotalTrades != 2 {
			t.Errorf("TotalTrades = %d, want 2", perf.TotalTrades)
		}
		if perf.WinRate != 50 {
			t.Errorf("WinRate = %v, want 50 (one of two fills above 0.5)", perf.WinRate)
		}
		if perf.MarketsActive != 1 {
			t.Errorf("MarketsActive = %d, want 1 open market", perf.MarketsActive)
		}
	})

	t.Run("empty history degrades to neutral defaults", func(t *testing.T) {
		svc := NewPerformanceServiceWithClock(&stubHistory{}, clock)

		perf := svc.UserPerformance(context.Background(), "0xnobody")

		if perf.TotalTrades != 0 {
			t.Errorf("TotalTrades = %d, want 0", perf.TotalTrades)
		}
		if perf.WinRate != 0 {
			t.Errorf("WinRate = %v, want 0", perf.WinRate)
		}
		if perf.RiskScore != 50 {
			t.Errorf("RiskScore = %v, want neutral 50", perf.RiskScore)
		}
	})
}
