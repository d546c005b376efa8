package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/polycopy/Copy-Trading-Backend/internal/api/handlers"
	"github.com/polycopy/Copy-Trading-Backend/internal/derive"
	"github.com/polycopy/Copy-Trading-Backend/internal/model"
	"github.com/polycopy/Copy-Trading-Backend/internal/polymarket"
	"github.com/polycopy/Copy-Trading-Backend/internal/service"
	"github.com/polycopy/Copy-Trading-Backend/internal/store"
	"github.com/polycopy/Copy-Trading-Backend/internal/testutil"
)

type leaderboardStub struct {
	rows []polymarket.LeaderboardRow
	err  error
}

func (s *leaderboardStub) FetchLeaderboard(ctx context.Context, limit int) ([]polymarket.LeaderboardRow, error) {
	return s.rows, s.err
}

func stubRows(n int) []polymarket.LeaderboardRow {
	rows := make([]polymarket.LeaderboardRow, n)
	for i := range rows {
		rows[i] = polymarket.LeaderboardRow{
			ProxyWallet: "0x1111111111111111111111111111111111111111",
			PnL:         polymarket.FlexFloat(500 - 10*float64(i)),
			Vol:         4000,
		}
	}
	return rows
}

// TestTraderHandler_TopTraders tests GET /api/polymarket/top-traders.
func TestTraderHandler_TopTraders(t *testing.T) {
	t.Run("returns ranked traders", func(t *testing.T) {
		stub := &leaderboardStub{rows: stubRows(3)}
		svc := service.NewTraderService(stub, store.NewCopyStore(), derive.NewEstimator())
		handler := handlers.NewTraderHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/polymarket/top-traders", nil)
		w := httptest.NewRecorder()

		handler.TopTraders(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}

		var response handlers.TopTradersResponse
		testutil.DecodeJSON(t, w, &response)
		if len(response.Traders) != 3 {
			t.Fatalf("Expected 3 traders, got %d", len(response.Traders))
		}
		if response.Fallback {
			t.Error("Fresh result must not carry the fallback flag")
		}
		if response.Traders[0].Rank != 1 {
			t.Errorf("Expected first rank 1, got %d", response.Traders[0].Rank)
		}
	})

	t.Run("upstream failure without cache returns 500 with empty traders array", func(t *testing.T) {
		stub := &leaderboardStub{err: errors.New("connection refused")}
		svc := service.NewTraderService(stub, store.NewCopyStore(), derive.NewEstimator())
		handler := handlers.NewTraderHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/polymarket/top-traders", nil)
		w := httptest.NewRecorder()

		handler.TopTraders(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("Expected status 500, got %d", w.Code)
		}

		var response struct {
			Error   string            `json:"error"`
			Message string            `json:"message"`
			Traders []model.TopTrader `json:"traders"`
		}
		testutil.DecodeJSON(t, w, &response)
		if response.Error == "" || response.Message == "" {
			t.Errorf("Expected error and message fields, got %+v", response)
		}
		if response.Traders == nil || len(response.Traders) != 0 {
			t.Errorf("Expected an empty traders array in the failure body, got %v", response.Traders)
		}
	})

	t.Run("upstream failure with cache returns 200 with the fallback flag", func(t *testing.T) {
		stub := &leaderboardStub{rows: stubRows(3)}
		svc := service.NewTraderService(stub, store.NewCopyStore(), derive.NewEstimator())
		handler := handlers.NewTraderHandler(svc)

		// Warm the cache, then break the upstream.
		warm := httptest.NewRecorder()
		handler.TopTraders(warm, httptest.NewRequest(http.MethodGet, "/api/polymarket/top-traders", nil))
		if warm.Code != http.StatusOK {
			t.Fatalf("Warm-up request failed with status %d", warm.Code)
		}
		stub.rows = nil
		stub.err = errors.New("connection refused")

		w := httptest.NewRecorder()
		handler.TopTraders(w, httptest.NewRequest(http.MethodGet, "/api/polymarket/top-traders", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200 from cached fallback, got %d", w.Code)
		}

		var response handlers.TopTradersResponse
		testutil.DecodeJSON(t, w, &response)
		if !response.Fallback {
			t.Error("Expected the fallback flag on a cached response")
		}
		if len(response.Traders) != 3 {
			t.Errorf("Expected 3 cached traders, got %d", len(response.Traders))
		}
	})

	t.Run("invalid limit returns 400", func(t *testing.T) {
		stub := &leaderboardStub{rows: stubRows(1)}
		svc := service.NewTraderService(stub, store.NewCopyStore(), derive.NewEstimator())
		handler := handlers.NewTraderHandler(svc)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/polymarket/top-traders",
			map[string]string{"limit": "banana"})
		w := httptest.NewRecorder()

		handler.TopTraders(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}
