package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/polycopy/Copy-Trading-Backend/internal/apperrors"
	"github.com/polycopy/Copy-Trading-Backend/internal/metrics"
	"github.com/polycopy/Copy-Trading-Backend/internal/model"
	"github.com/polycopy/Copy-Trading-Backend/internal/service"
	"github.com/polycopy/Copy-Trading-Backend/internal/store"
	"github.com/polycopy/Copy-Trading-Backend/internal/validation"
)

// CopyTradingHandler handles copy-portfolio HTTP requests
type CopyTradingHandler struct {
	copyStore *store.CopyStore
	now       func() time.Time
}

// NewCopyTradingHandler creates a new CopyTradingHandler
func NewCopyTradingHandler(copyStore *store.CopyStore) *CopyTradingHandler {
	return &CopyTradingHandler{
		copyStore: copyStore,
		now:       time.Now,
	}
}

// Portfolio handles GET requests for the full copy-portfolio state.
//
// Endpoint: GET /api/copy-trading/portfolio
// Response: 200 OK with the portfolio snapshot
func (h *CopyTradingHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.copyStore.Snapshot())
}

// CopiedTraders handles GET requests for the copied-trader list.
//
// Endpoint: GET /api/copy-trading/copied-traders
// Response: 200 OK with {"copiedTraders": [...]}
func (h *CopyTradingHandler) CopiedTraders(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"copiedTraders": h.copyStore.CopiedTraders(),
	})
}

// CopyTraderRequest represents the copy command body
type CopyTraderRequest struct {
	Trader model.Trader     `json:"trader"`
	Config model.CopyConfig `json:"config"`
}

// CopyTrader handles POST requests to start copying a trader. Copying an
// already-copied trader is idempotent and returns the existing entry.
//
// Endpoint: POST /api/copy-trading/copied-traders
// Response: 201 Created with the new CopiedTrader, 200 OK when already copied
// Error: 400 if the body or config is invalid
func (h *CopyTradingHandler) CopyTrader(w http.ResponseWriter, r *http.Request) {
	var req CopyTraderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid request body: " + err.Error(),
		})
		return
	}

	if req.Config.TraderID == "" {
		req.Config.TraderID = req.Trader.ID
	}
	if err := validation.ValidateCopyConfig(req.Config); err != nil {
		respondValidationError(w, err)
		return
	}

	copied, created := h.copyStore.AddCopiedTrader(req.Config, req.Trader)

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		metrics.CopyActionsTotal.WithLabelValues("copy").Inc()
		metrics.CopiedTraders.Set(float64(len(h.copyStore.CopiedTraders())))
	}
	respondJSON(w, status, copied)
}

// UncopyTrader handles DELETE requests to stop copying a trader.
//
// Endpoint: DELETE /api/copy-trading/copied-traders/{traderID}
// Response: 204 No Content
// Error: 404 if the trader is not in the copied set
func (h *CopyTradingHandler) UncopyTrader(w http.ResponseWriter, r *http.Request) {
	traderID := chi.URLParam(r, "traderID")
	if !h.copyStore.RemoveCopiedTrader(traderID) {
		respondJSON(w, http.StatusNotFound, map[string]string{
			"error": "trader is not copied",
		})
		return
	}

	metrics.CopyActionsTotal.WithLabelValues("uncopy").Inc()
	metrics.CopiedTraders.Set(float64(len(h.copyStore.CopiedTraders())))
	respondJSON(w, http.StatusNoContent, nil)
}

// SelectTraderRequest represents the selection body
type SelectTraderRequest struct {
	TraderID string `json:"traderId"`
}

// SelectTrader handles PUT requests to change the detail-view selection.
// An empty traderId clears the selection.
//
// Endpoint: PUT /api/copy-trading/selected-trader
// Response: 204 No Content
func (h *CopyTradingHandler) SelectTrader(w http.ResponseWriter, r *http.Request) {
	var req SelectTraderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid request body: " + err.Error(),
		})
		return
	}

	h.copyStore.SetSelectedTrader(req.TraderID)
	respondJSON(w, http.StatusNoContent, nil)
}

// ValuationRequest represents a mark-to-market update body
type ValuationRequest struct {
	CurrentValue float64 `json:"currentValue"`
}

// UpdateValuation handles PUT requests to revalue one copied position.
//
// Endpoint: PUT /api/copy-trading/copied-traders/{traderID}/value
// Response: 200 OK with the updated CopiedTrader
// Error: 404 if the trader is not in the copied set
func (h *CopyTradingHandler) UpdateValuation(w http.ResponseWriter, r *http.Request) {
	traderID := chi.URLParam(r, "traderID")

	var req ValuationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid request body: " + err.Error(),
		})
		return
	}

	if err := h.copyStore.MarkToMarket(traderID, req.CurrentValue); err != nil {
		if errors.Is(err, apperrors.ErrTraderNotCopied) {
			respondJSON(w, http.StatusNotFound, map[string]string{
				"error": err.Error(),
			})
			return
		}
		respondJSON(w, http.StatusInternalServerError, map[string]string{
			"error": err.Error(),
		})
		return
	}

	for _, ct := range h.copyStore.CopiedTraders() {
		if ct.ID == traderID {
			respondJSON(w, http.StatusOK, ct)
			return
		}
	}
	respondJSON(w, http.StatusOK, nil)
}

// PerformanceHistory handles GET requests for the portfolio chart series.
//
// Endpoint: GET /api/copy-trading/performance-history
// Response: 200 OK with {"range", "data": [...]}
// Error: 400 if the range parameter is unrecognized
func (h *CopyTradingHandler) PerformanceHistory(w http.ResponseWriter, r *http.Request) {
	timeRange, err := validation.ValidateTimeRange(r.URL.Query().Get("range"))
	if err != nil {
		respondValidationError(w, err)
		return
	}

	series := service.PortfolioHistory(h.copyStore.Metrics(), timeRange, h.now())

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"range": timeRange,
		"data":  series,
	})
}
