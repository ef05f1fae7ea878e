// Package config provides configuration loading and management for the application.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// HTTP server port
	Port string

	// Covalent API credential and base URL
	CovalentAPIKey string
	CovalentURL    string

	// Calendar year the aggregation is scoped to
	TargetYear int

	// Wall-clock budget for each chain's pagination loop
	FetchBudget time.Duration

	// Transaction list page size
	PageSize int

	// Pinata credential and base URL for the mint-metadata upload endpoint
	PinataJWT string
	PinataURL string

	// OpenTelemetry endpoint for observability
	OtelEndpoint string

	// Request rate limiting
	RateLimitRPS   float64
	RateLimitBurst int
}

// Load creates a new Config from environment variables
func Load() Config {
	return Config{
		Port:           GetEnvOrDefault("PORT", "8080"),
		CovalentAPIKey: os.Getenv("COVALENT_API_KEY"),
		CovalentURL:    GetEnvOrDefault("COVALENT_URL", "https://api.covalenthq.com"),
		TargetYear:     GetEnvAsInt("TARGET_YEAR", 2025),
		FetchBudget:    GetEnvAsDuration("FETCH_BUDGET", 8500*time.Millisecond),
		PageSize:       GetEnvAsInt("PAGE_SIZE", 100),
		PinataJWT:      os.Getenv("PINATA_JWT"),
		PinataURL:      GetEnvOrDefault("PINATA_URL", "https://api.pinata.cloud"),
		OtelEndpoint:   GetEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		RateLimitRPS:   GetEnvAsFloat("RATE_LIMIT_RPS", 10.0),
		RateLimitBurst: GetEnvAsInt("RATE_LIMIT_BURST", 20),
	}
}

// GetEnv retrieves an environment variable and whether it exists
func GetEnv(key string) (string, bool) {
	value, exists := os.LookupEnv(key)
	return value, exists
}

// GetEnvOrDefault retrieves an environment variable or returns the default value if not set
func GetEnvOrDefault(key, defaultValue string) string {
	if value, exists := GetEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetEnvAsInt retrieves an environment variable as an integer with a default value
func GetEnvAsInt(key string, defaultValue int) int {
	if value, exists := GetEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// GetEnvAsFloat retrieves an environment variable as a float with a default value
func GetEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := GetEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// GetEnvAsDuration retrieves an environment variable as a duration with a default value
func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := GetEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
