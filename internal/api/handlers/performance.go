package handlers

import (
	"net/http"
	"strings"

	"github.com/polycopy/Copy-Trading-Backend/internal/service"
	"github.com/polycopy/Copy-Trading-Backend/internal/validation"
)

// PerformanceHandler handles per-account performance HTTP requests
type PerformanceHandler struct {
	performanceService *service.PerformanceService
}

// NewPerformanceHandler creates a new PerformanceHandler
func NewPerformanceHandler(performanceService *service.PerformanceService) *PerformanceHandler {
	return &PerformanceHandler{
		performanceService: performanceService,
	}
}

// UserPerformance handles GET requests for one account's trading metrics.
// The address is validated before any upstream call; upstream failures
// degrade to neutral metrics rather than an error status.
//
// Endpoint: GET /api/polymarket/user-performance
// Response: 200 OK with {"performance": {...}}
// Error: 400 if the address parameter is missing or malformed
func (h *PerformanceHandler) UserPerformance(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("address")
	if strings.TrimSpace(address) == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error": "User address is required",
		})
		return
	}
	if err := validation.ValidateAddress(address); err != nil {
		respondValidationError(w, err)
		return
	}

	performance := h.performanceService.UserPerformance(r.Context(), address)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"performance": performance,
	})
}
