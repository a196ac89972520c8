// ABOUTME: Configuration loader for the estimation service
// ABOUTME: Loads .env when present, then environment variables with defaults

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port               string
	ShutdownTimeout    time.Duration
	CORSAllowedOrigins []string // allowed CORS origins (empty = block all cross-origin)

	// Cache
	CacheTTL  int // seconds
	CacheSize int // max entries

	// Rate Limiting
	RateLimitEnabled bool
	RateLimitRPS     float64 // sustained requests per second per client
	RateLimitBurst   int

	// Store
	StoreDriver string // memory, sqlite, postgres
	StoreDSN    string

	// Estimation defaults
	DefaultContingencyPct float64
	DefaultOverheadPct    float64
}

var validDrivers = []string{"memory", "sqlite", "postgres"}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first; variables already set take precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		ShutdownTimeout:    time.Duration(getEnvInt("SHUTDOWN_TIMEOUT", 10)) * time.Second,
		CORSAllowedOrigins: getEnvStringList("CORS_ALLOWED_ORIGINS"),

		CacheTTL:  getEnvInt("CACHE_TTL", 300),
		CacheSize: getEnvInt("CACHE_SIZE", 512),

		RateLimitEnabled: getEnvBool("RATE_LIMIT_ENABLED", true),
		RateLimitRPS:     getEnvFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst:   getEnvInt("RATE_LIMIT_BURST", 40),

		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", "memory")),
		StoreDSN:    os.Getenv("STORE_DSN"),

		DefaultContingencyPct: getEnvFloat("DEFAULT_CONTINGENCY_PCT", 15),
		DefaultOverheadPct:    getEnvFloat("DEFAULT_OVERHEAD_PCT", 10),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate reports every invalid setting at once.
func (c *Config) validate() error {
	var result *multierror.Error

	if c.CacheTTL < 1 {
		result = multierror.Append(result, fmt.Errorf("CACHE_TTL must be at least 1, got %d", c.CacheTTL))
	}
	if c.CacheSize < 1 {
		result = multierror.Append(result, fmt.Errorf("CACHE_SIZE must be at least 1, got %d", c.CacheSize))
	}
	if c.ShutdownTimeout <= 0 {
		result = multierror.Append(result, fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout))
	}
	if c.RateLimitRPS <= 0 || c.RateLimitRPS > 10000 {
		result = multierror.Append(result, fmt.Errorf("RATE_LIMIT_RPS must be between 0 and 10000, got %g", c.RateLimitRPS))
	}
	if c.RateLimitBurst < 1 || c.RateLimitBurst > 10000 {
		result = multierror.Append(result, fmt.Errorf("RATE_LIMIT_BURST must be between 1 and 10000, got %d", c.RateLimitBurst))
	}

	for _, pct := range []struct {
		name  string
		value float64
	}{
		{"DEFAULT_CONTINGENCY_PCT", c.DefaultContingencyPct},
		{"DEFAULT_OVERHEAD_PCT", c.DefaultOverheadPct},
	} {
		if pct.value < 0 || pct.value > 100 {
			result = multierror.Append(result, fmt.Errorf("%s must be between 0 and 100, got %g", pct.name, pct.value))
		}
	}

	if !contains(validDrivers, c.StoreDriver) {
		result = multierror.Append(result, fmt.Errorf("STORE_DRIVER must be one of %s, got %q",
			strings.Join(validDrivers, ", "), c.StoreDriver))
	} else if c.StoreDriver != "memory" && c.StoreDSN == "" {
		result = multierror.Append(result, fmt.Errorf("STORE_DSN is required for STORE_DRIVER=%s", c.StoreDriver))
	}

	return result.ErrorOrNil()
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvStringList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
