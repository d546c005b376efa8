package handlers

import (
	"net/http"

	"github.com/polycopy/Copy-Trading-Backend/internal/model"
	"github.com/polycopy/Copy-Trading-Backend/internal/service"
	"github.com/polycopy/Copy-Trading-Backend/internal/validation"
)

// TraderHandler handles leaderboard HTTP requests
type TraderHandler struct {
	traderService *service.TraderService
}

// NewTraderHandler creates a new TraderHandler
func NewTraderHandler(traderService *service.TraderService) *TraderHandler {
	return &TraderHandler{
		traderService: traderService,
	}
}

// TopTradersResponse represents the ranked leaderboard response
type TopTradersResponse struct {
	Traders  []model.TopTrader `json:"traders"`
	Fallback bool              `json:"fallback,omitempty"`
}

// TopTraders handles GET requests for the ranked trader leaderboard.
// When the upstream is down and a previous result is cached, the cached
// snapshot is served with the fallback flag set.
//
// Endpoint: GET /api/polymarket/top-traders
// Response: 200 OK with TopTradersResponse
// Error: 500 with {"error", "message", "traders": []} if the upstream fails
// and no cached snapshot exists
func (h *TraderHandler) TopTraders(w http.ResponseWriter, r *http.Request) {
	limit, err := validation.ValidateLimit(r.URL.Query().Get("limit"))
	if err != nil {
		respondValidationError(w, err)
		return
	}

	traders, fallback, err := h.traderService.TopTraders(r.Context(), limit)
	if err != nil {
		errorResponse := map[string]interface{}{
			"error":   "Failed to fetch top traders",
			"message": err.Error(),
			"traders": []model.TopTrader{},
		}
		respondJSON(w, http.StatusInternalServerError, errorResponse)
		return
	}

	respondJSON(w, http.StatusOK, TopTradersResponse{
		Traders:  traders,
		Fallback: fallback,
	})
}
