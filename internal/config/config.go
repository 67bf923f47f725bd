// Package config provides centralized configuration management for the
// catalog service. It loads configuration from environment variables with
// sensible defaults and validates all settings on startup to fail fast on
// misconfiguration.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Sheet    SheetConfig
	Cache    CacheConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// SheetConfig holds spreadsheet source settings.
type SheetConfig struct {
	// SheetID is the Google spreadsheet document id (required unless URL is set)
	SheetID string `env:"SHEET_ID"`

	// GID selects a worksheet within the document (default: first worksheet)
	GID string `env:"SHEET_GID"`

	// APIKey is an optional API key appended to export requests
	APIKey string `env:"SHEET_API_KEY"`

	// URL overrides the derived export URL entirely; any CSV endpoint works.
	// Primarily for tests and non-Google deployments.
	URL string `env:"SHEET_URL"`

	// FetchTimeout caps a single export fetch (default: 15s)
	FetchTimeout time.Duration `env:"SHEET_FETCH_TIMEOUT" default:"15s"`

	// StrictErrors makes derived catalog queries propagate source failures
	// instead of degrading to empty results (default: false, matching the
	// storefront's original behavior)
	StrictErrors bool `env:"SHEET_STRICT_ERRORS" default:"false"`
}

// CacheConfig holds catalog snapshot cache settings.
type CacheConfig struct {
	// Enabled turns the Redis snapshot cache on (default: false)
	Enabled bool `env:"CACHE_ENABLED" default:"false"`

	// TTL is how long a catalog snapshot stays fresh (default: 60s)
	TTL time.Duration `env:"CACHE_TTL" default:"60s"`

	// RedisAddr is the Redis host:port (default: localhost:6379)
	RedisAddr string `env:"REDIS_ADDR" default:"localhost:6379"`

	// RedisPassword is the optional Redis password
	RedisPassword string `env:"REDIS_PASSWORD"`

	// RedisDB selects the Redis database (default: 0)
	RedisDB int `env:"REDIS_DB" default:"0"`
}

// RateLimitConfig holds rate limiting settings.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the sustained rate limit per IP (default: 100)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`

	// Burst is the short-term burst allowance per IP (default: 25)
	Burst int `env:"RATE_LIMIT_BURST" default:"25"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`

	// RequireAPIKey gates the admin API behind X-API-Key (default: false)
	RequireAPIKey bool `env:"ADMIN_REQUIRE_API_KEY" default:"false"`

	// APIKeys is the comma-separated list of accepted admin API keys
	APIKeys []string `env:"ADMIN_API_KEYS"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	if c.Host == "" {
		return ":" + strconv.Itoa(c.Port)
	}
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	// Sheet validation
	if c.Sheet.SheetID == "" && c.Sheet.URL == "" {
		errs = append(errs, "one of SHEET_ID or SHEET_URL is required")
	}
	if c.Sheet.FetchTimeout <= 0 {
		errs = append(errs, "SHEET_FETCH_TIMEOUT must be positive")
	}

	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("SERVER_PORT (%d) must be 1-65535", c.Server.Port))
	}
	if c.Server.ReadTimeout < 0 {
		errs = append(errs, "SERVER_READ_TIMEOUT must be non-negative")
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, "SERVER_SHUTDOWN_TIMEOUT must be positive")
	}

	// Cache validation
	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			errs = append(errs, "CACHE_TTL must be positive when caching is enabled")
		}
		if c.Cache.RedisAddr == "" {
			errs = append(errs, "REDIS_ADDR is required when caching is enabled")
		}
	}
	if c.Cache.RedisDB < 0 {
		errs = append(errs, "REDIS_DB must be non-negative")
	}

	// Rate limit validation
	if c.Rate.Enabled {
		if c.Rate.RequestsPerMinute <= 0 {
			errs = append(errs, "RATE_LIMIT_REQUESTS_PER_MINUTE must be positive when rate limiting is enabled")
		}
		if c.Rate.Burst <= 0 {
			errs = append(errs, "RATE_LIMIT_BURST must be positive when rate limiting is enabled")
		}
	}

	// Security validation
	if c.Security.RequireAPIKey && len(c.Security.APIKeys) == 0 {
		errs = append(errs, "ADMIN_REQUIRE_API_KEY is true but ADMIN_API_KEYS is empty; configure at least one key or disable auth")
	}

	// Logging validation
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// String returns a safe string representation of the config for logging.
// Secrets (API keys, Redis password) are masked.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	b.WriteString(fmt.Sprintf("Server: {Host: %q, Port: %d}, ", c.Server.Host, c.Server.Port))
	b.WriteString(fmt.Sprintf("Sheet: {SheetID: %q, URL: %q, APIKey: [MASKED], FetchTimeout: %v}, ",
		c.Sheet.SheetID, c.Sheet.URL, c.Sheet.FetchTimeout))
	b.WriteString(fmt.Sprintf("Cache: {Enabled: %v, TTL: %v, RedisAddr: %q}, ",
		c.Cache.Enabled, c.Cache.TTL, c.Cache.RedisAddr))
	b.WriteString(fmt.Sprintf("Rate: {Enabled: %v, RequestsPerMinute: %d, Burst: %d}, ",
		c.Rate.Enabled, c.Rate.RequestsPerMinute, c.Rate.Burst))
	b.WriteString(fmt.Sprintf("Logging: {Level: %q, Format: %q}",
		c.Logging.Level, c.Logging.Format))
	b.WriteString("}")
	return b.String()
}
