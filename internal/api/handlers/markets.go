package handlers

import (
	"net/http"
	"strconv"

	"github.com/polycopy/Copy-Trading-Backend/internal/model"
	"github.com/polycopy/Copy-Trading-Backend/internal/service"
	"github.com/polycopy/Copy-Trading-Backend/internal/validation"
)

// MarketHandler handles market-discovery HTTP requests
type MarketHandler struct {
	marketService *service.MarketService
}

// NewMarketHandler creates a new MarketHandler
func NewMarketHandler(marketService *service.MarketService) *MarketHandler {
	return &MarketHandler{
		marketService: marketService,
	}
}

// Markets handles GET requests for prediction market listings. Filter
// parameters absent from the query are not defaulted and stay absent from
// the upstream request.
//
// Endpoint: GET /api/polymarket/markets
// Response: 200 OK with {"markets": [...]}
// Error: 500 with {"error", "message", "markets": []} if the upstream fails
func (h *MarketHandler) Markets(w http.ResponseWriter, r *http.Request) {
	limit, err := validation.ValidateLimit(r.URL.Query().Get("limit"))
	if err != nil {
		respondValidationError(w, err)
		return
	}
	if limit == 0 {
		limit = 50
	}

	filter := model.MarketFilter{
		Active:   parseBoolParam(r, "active"),
		Closed:   parseBoolParam(r, "closed"),
		Archived: parseBoolParam(r, "archived"),
		Limit:    limit,
		Category: r.URL.Query().Get("category"),
	}
	if offset := r.URL.Query().Get("offset"); offset != "" {
		if n, err := strconv.Atoi(offset); err == nil && n > 0 {
			filter.Offset = n
		}
	}

	markets, err := h.marketService.Markets(r.Context(), filter)
	if err != nil {
		errorResponse := map[string]interface{}{
			"error":   "Failed to fetch markets",
			"message": err.Error(),
			"markets": []model.Market{},
		}
		respondJSON(w, http.StatusInternalServerError, errorResponse)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"markets": markets,
	})
}

// parseBoolParam returns nil when the parameter is absent or unparsable.
func parseBoolParam(r *http.Request, name string) *bool {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}
