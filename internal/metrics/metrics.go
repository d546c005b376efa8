// Package metrics provides Prometheus instrumentation for the copy-trading
// backend.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// UpstreamRequestsTotal counts outbound requests to Polymarket services,
	// partitioned by source (gamma, data-api, subgraph) and outcome.
	UpstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "copytrading_upstream_requests_total",
		Help: "Total outbound requests to upstream data sources",
	}, []string{"source", "outcome"})

	// LeaderboardFallbacksTotal counts leaderboard responses served from the
	// cached snapshot because the upstream was unavailable.
	LeaderboardFallbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "copytrading_leaderboard_fallbacks_total",
		Help: "Leaderboard responses served from the cached snapshot",
	})

	// CopiedTraders tracks the number of traders currently copied.
	CopiedTraders = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "copytrading_copied_traders",
		Help: "Number of traders currently copied",
	})

	// CopyActionsTotal counts copy-state mutations by action (copy, uncopy).
	CopyActionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "copytrading_copy_actions_total",
		Help: "Total copy-state mutations",
	}, []string{"action"})

	// HTTPRequestsTotal counts HTTP requests by method, path, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "copytrading_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration tracks request duration by method and path.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "copytrading_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
	}, []string{"method", "path"})
)

// ObserveUpstream records one upstream request outcome.
func ObserveUpstream(source string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	UpstreamRequestsTotal.WithLabelValues(source, outcome).Inc()
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware returns an HTTP middleware that records request metrics.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		duration := time.Since(start).Seconds()

		// Use the request path for the path label; the route surface is small
		// and parameter-free, so cardinality stays bounded.
		path := r.URL.Path
		HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
