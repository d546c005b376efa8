package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/polycopy/Copy-Trading-Backend/internal/api/handlers"
	custommiddleware "github.com/polycopy/Copy-Trading-Backend/internal/api/middleware"
	"github.com/polycopy/Copy-Trading-Backend/internal/config"
	"github.com/polycopy/Copy-Trading-Backend/internal/metrics"
	"github.com/polycopy/Copy-Trading-Backend/internal/service"
	"github.com/polycopy/Copy-Trading-Backend/internal/store"
)

// Version is the application version reported by the health endpoint.
const Version = "1.0.0"

// NewRouter creates and configures the HTTP router
func NewRouter(
	traderService *service.TraderService,
	marketService *service.MarketService,
	performanceService *service.PerformanceService,
	copyStore *store.CopyStore,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(Version)
			r.Get("/health", systemHandler.Health)
		})

		// Upstream data namespace
		r.Route("/polymarket", func(r chi.Router) {
			marketHandler := handlers.NewMarketHandler(marketService)
			traderHandler := handlers.NewTraderHandler(traderService)
			performanceHandler := handlers.NewPerformanceHandler(performanceService)
			r.Get("/markets", marketHandler.Markets)
			r.Get("/top-traders", traderHandler.TopTraders)
			r.Get("/user-performance", performanceHandler.UserPerformance)
		})

		// Copy-portfolio namespace
		r.Route("/copy-trading", func(r chi.Router) {
			copyHandler := handlers.NewCopyTradingHandler(copyStore)
			r.Get("/portfolio", copyHandler.Portfolio)
			r.Get("/copied-traders", copyHandler.CopiedTraders)
			r.Post("/copied-traders", copyHandler.CopyTrader)
			r.Delete("/copied-traders/{traderID}", copyHandler.UncopyTrader)
			r.Put("/copied-traders/{traderID}/value", copyHandler.UpdateValuation)
			r.Put("/selected-trader", copyHandler.SelectTrader)
			r.Get("/performance-history", copyHandler.PerformanceHistory)
		})
	})

	// Prometheus scrape endpoint
	r.Handle("/metrics", metrics.Handler())

	return r
}
