package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Cleanup(withCleanEnv(t, nil))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Port)
	}
	if cfg.CacheTTL != 300 {
		t.Errorf("Expected default cache TTL 300, got %d", cfg.CacheTTL)
	}
	if cfg.CacheSize != 512 {
		t.Errorf("Expected default cache size 512, got %d", cfg.CacheSize)
	}
	if !cfg.RateLimitEnabled {
		t.Error("Expected rate limiting enabled by default")
	}
	if cfg.RateLimitRPS != 20 || cfg.RateLimitBurst != 40 {
		t.Errorf("Expected rate 20/40, got %g/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	if cfg.StoreDriver != "memory" {
		t.Errorf("Expected memory store, got %s", cfg.StoreDriver)
	}
	if cfg.DefaultContingencyPct != 15 || cfg.DefaultOverheadPct != 10 {
		t.Errorf("Expected 15/10 defaults, got %g/%g", cfg.DefaultContingencyPct, cfg.DefaultOverheadPct)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("Expected 10s shutdown timeout, got %s", cfg.ShutdownTimeout)
	}
	if cfg.CORSAllowedOrigins != nil {
		t.Errorf("Expected no CORS origins, got %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Cleanup(withCleanEnv(t, map[string]string{
		"PORT":                    "9090",
		"CORS_ALLOWED_ORIGINS":    "http://localhost:3000, https://app.example.com ,",
		"RATE_LIMIT_ENABLED":      "false",
		"RATE_LIMIT_RPS":          "2.5",
		"STORE_DRIVER":            "SQLite",
		"STORE_DSN":               "file:estimates.db",
		"DEFAULT_CONTINGENCY_PCT": "20",
		"SHUTDOWN_TIMEOUT":        "3",
	}))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Port)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://app.example.com" {
		t.Errorf("Expected two trimmed origins, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.RateLimitEnabled {
		t.Error("Expected rate limiting disabled")
	}
	if cfg.RateLimitRPS != 2.5 {
		t.Errorf("Expected RPS 2.5, got %g", cfg.RateLimitRPS)
	}
	if cfg.StoreDriver != "sqlite" {
		t.Errorf("Expected sqlite driver, got %s", cfg.StoreDriver)
	}
	if cfg.DefaultContingencyPct != 20 {
		t.Errorf("Expected contingency 20, got %g", cfg.DefaultContingencyPct)
	}
	if cfg.ShutdownTimeout != 3*time.Second {
		t.Errorf("Expected 3s shutdown timeout, got %s", cfg.ShutdownTimeout)
	}
}

func TestLoadConfig_InvalidValuesIgnored(t *testing.T) {
	t.Cleanup(withCleanEnv(t, map[string]string{
		"CACHE_TTL":          "soon",
		"RATE_LIMIT_ENABLED": "maybe",
	}))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.CacheTTL != 300 {
		t.Errorf("Expected fallback cache TTL 300, got %d", cfg.CacheTTL)
	}
	if !cfg.RateLimitEnabled {
		t.Error("Expected fallback rate limiting enabled")
	}
}

func TestLoadConfig_ValidationCollectsAllErrors(t *testing.T) {
	t.Cleanup(withCleanEnv(t, map[string]string{
		"CACHE_SIZE":           "0",
		"RATE_LIMIT_BURST":     "0",
		"DEFAULT_OVERHEAD_PCT": "150",
		"STORE_DRIVER":         "mongo",
	}))

	_, err := Load()
	if err == nil {
		t.Fatal("Expected validation error, got nil")
	}
	for _, want := range []string{"CACHE_SIZE", "RATE_LIMIT_BURST", "DEFAULT_OVERHEAD_PCT", "STORE_DRIVER"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Expected error to mention %s, got %v", want, err)
		}
	}
}

func TestLoadConfig_SQLDriverRequiresDSN(t *testing.T) {
	tests := []struct {
		driver  string
		wantErr bool
	}{
		{"memory", false},
		{"sqlite", true},
		{"postgres", true},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			t.Cleanup(withCleanEnv(t, map[string]string{"STORE_DRIVER": tt.driver}))

			_, err := Load()
			if tt.wantErr && (err == nil || !strings.Contains(err.Error(), "STORE_DSN")) {
				t.Errorf("Expected STORE_DSN error, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

func TestLoadConfig_DotEnv(t *testing.T) {
	t.Cleanup(withCleanEnv(t, map[string]string{"CACHE_TTL": "60"}))

	dir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	content := "PORT=7070\nCACHE_TTL=5\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.Port != "7070" {
		t.Errorf("Expected port from .env 7070, got %s", cfg.Port)
	}
	if cfg.CacheTTL != 60 {
		t.Errorf("Expected environment to win over .env, got %d", cfg.CacheTTL)
	}
}
