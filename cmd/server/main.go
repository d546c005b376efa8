package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/polycopy/Copy-Trading-Backend/internal/api"
	"github.com/polycopy/Copy-Trading-Backend/internal/config"
	"github.com/polycopy/Copy-Trading-Backend/internal/derive"
	"github.com/polycopy/Copy-Trading-Backend/internal/polymarket"
	"github.com/polycopy/Copy-Trading-Backend/internal/service"
	"github.com/polycopy/Copy-Trading-Backend/internal/store"
)

// leaderboardWarmLimit is how many traders each scheduled refresh caches.
const leaderboardWarmLimit = 100

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create upstream clients
	gammaClient := polymarket.NewGammaClient(cfg.Upstream.GammaBaseURL, cfg.Upstream.RequestTimeout)
	dataAPIClient := polymarket.NewDataAPIClient(cfg.Upstream.DataAPIBaseURL, cfg.Upstream.LeaderboardPageSize, cfg.Upstream.RequestTimeout)
	subgraphClient := polymarket.NewSubgraphClient(cfg.Upstream.ActivitySubgraphURL, cfg.Upstream.PositionsSubgraphURL, cfg.Upstream.RequestTimeout)

	// Create the copy-portfolio store
	copyStore := store.NewCopyStore()

	// Create services
	traderService := service.NewTraderService(dataAPIClient, copyStore, derive.NewEstimator())
	marketService := service.NewMarketService(gammaClient)
	performanceService := service.NewPerformanceService(subgraphClient)

	// Schedule the leaderboard cache refresh
	c := cron.New()
	if _, err := c.AddFunc(cfg.Upstream.RefreshSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Upstream.RequestTimeout)
		defer cancel()
		if err := traderService.RefreshLeaderboard(ctx, leaderboardWarmLimit); err != nil {
			log.Printf("Scheduled leaderboard refresh failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule leaderboard refresh (%q): %v", cfg.Upstream.RefreshSchedule, err)
	}
	c.Start()
	defer c.Stop()

	// Create router
	router := api.NewRouter(traderService, marketService, performanceService, copyStore, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
