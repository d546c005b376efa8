package handlers

import (
	"net/http"
	"time"
)

// SystemHandler handles system-related HTTP requests
type SystemHandler struct {
	startedAt time.Time
	version   string
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(version string) *SystemHandler {
	return &SystemHandler{
		startedAt: time.Now(),
		version:   version,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
}

// Health reports process liveness. Upstream reachability is deliberately
// not probed here; a dead upstream degrades responses, it does not make
// the service unhealthy.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:  "healthy",
		Uptime:  time.Since(h.startedAt).Round(time.Second).String(),
		Version: h.version,
	}
	respondJSON(w, http.StatusOK, response)
}
