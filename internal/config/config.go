package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Upstream UpstreamConfig
	CORS     CORSConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// UpstreamConfig holds base URLs and tuning for the external data providers.
// The defaults point at Polymarket's public, unauthenticated endpoints.
type UpstreamConfig struct {
	GammaBaseURL         string
	DataAPIBaseURL       string
	ActivitySubgraphURL  string
	PositionsSubgraphURL string

	// LeaderboardPageSize is the per-request maximum imposed by the data API.
	LeaderboardPageSize int

	// RefreshSchedule is a cron expression for the leaderboard cache refresh.
	RefreshSchedule string

	// RequestTimeout bounds each upstream HTTP call.
	RequestTimeout time.Duration
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Upstream: UpstreamConfig{
			GammaBaseURL:         getEnv("GAMMA_API_BASE", "https://gamma-api.polymarket.com"),
			DataAPIBaseURL:       getEnv("DATA_API_BASE", "https://data-api.polymarket.com"),
			ActivitySubgraphURL:  getEnv("ACTIVITY_SUBGRAPH_URL", "https://api.goldsky.com/api/public/project_cl6mb8i9h0003e201j6li0diw/subgraphs/activity-subgraph/0.0.4/gn"),
			PositionsSubgraphURL: getEnv("POSITIONS_SUBGRAPH_URL", "https://api.goldsky.com/api/public/project_cl6mb8i9h0003e201j6li0diw/subgraphs/positions-subgraph/0.0.7/gn"),
			LeaderboardPageSize:  getEnvInt("LEADERBOARD_PAGE_SIZE", 50),
			RefreshSchedule:      getEnv("LEADERBOARD_REFRESH_SCHEDULE", "@every 5m"),
			RequestTimeout:       getEnvDuration("UPSTREAM_TIMEOUT", 15*time.Second),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

// getEnvDuration gets a duration environment variable or returns a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}
