package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/polycopy/Copy-Trading-Backend/internal/api/handlers"
	"github.com/polycopy/Copy-Trading-Backend/internal/model"
	"github.com/polycopy/Copy-Trading-Backend/internal/service"
	"github.com/polycopy/Copy-Trading-Backend/internal/testutil"
)

// countingHistory counts upstream calls so tests can assert that invalid
// requests never reach the network.
type countingHistory struct {
	fills []model.Fill
	calls int
}

func (c *countingHistory) FetchUserFills(ctx context.Context, address string, limit int) []model.Fill {
	c.calls++
	return c.fills
}

func (c *countingHistory) FetchUserPositions(ctx context.Context, address string) []model.Position {
	c.calls++
	return nil
}

// TestPerformanceHandler_UserPerformance tests GET /api/polymarket/user-performance.
//
// WHY: The address parameter gates every upstream call. A missing address
// must fail fast with a 400 and must never trigger a network request.
func TestPerformanceHandler_UserPerformance(t *testing.T) {
	t.Run("missing address returns 400 without touching the upstream", func(t *testing.T) {
		upstream := &countingHistory{}
		handler := handlers.NewPerformanceHandler(service.NewPerformanceService(upstream))

		req := httptest.NewRequest(http.MethodGet, "/api/polymarket/user-performance", nil)
		w := httptest.NewRecorder()

		handler.UserPerformance(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}

		var response map[string]string
		testutil.DecodeJSON(t, w, &response)
		if response["error"] == "" {
			t.Error("Expected a non-empty error field in the 400 body")
		}

		if upstream.calls != 0 {
			t.Errorf("Expected 0 upstream calls for an invalid request, got %d", upstream.calls)
		}
	})

	t.Run("malformed hex address returns 400", func(t *testing.T) {
		upstream := &countingHistory{}
		handler := handlers.NewPerformanceHandler(service.NewPerformanceService(upstream))

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/polymarket/user-performance",
			map[string]string{"address": "0x123"})
		w := httptest.NewRecorder()

		handler.UserPerformance(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
		if upstream.calls != 0 {
			t.Errorf("Expected 0 upstream calls for an invalid request, got %d", upstream.calls)
		}
	})

	t.Run("valid address returns derived performance", func(t *testing.T) {
		upstream := &countingHistory{
			fills: []model.Fill{
				{ID: "f1", Market: "m1", Price: 0.8, Amount: 50, Timestamp: 1},
			},
		}
		handler := handlers.NewPerformanceHandler(service.NewPerformanceService(upstream))

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/polymarket/user-performance",
			map[string]string{"address": "0x1234567890abcdef1234567890abcdef12345678"})
		w := httptest.NewRecorder()

		handler.UserPerformance(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}

		var response struct {
			Performance model.Performance `json:"performance"`
		}
		testutil.DecodeJSON(t, w, &response)

		if response.Performance.TotalTrades != 1 {
			t.Errorf("Expected 1 trade, got %d", response.Performance.TotalTrades)
		}
		if response.Performance.WinRate != 100 {
			t.Errorf("Expected win rate 100, got %v", response.Performance.WinRate)
		}
	})
}
