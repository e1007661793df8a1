// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
	IsDatabaseEnabled() bool
}

// JWTConfig provides bearer token validation settings for middleware.
type JWTConfig interface {
	GetJWTSecret() string
	IsAuthEnabled() bool
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
	GetRateLimitRPS() float64
	GetRateLimitBurst() int
}

// CatalogConfig provides settings for loading the task catalog.
type CatalogConfig interface {
	GetCatalogFile() string
}

// SessionStoreConfig provides settings for intake session storage.
type SessionStoreConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
	GetSessionTTL() time.Duration
}

// PricingConfig provides default pricing parameters for estimates.
type PricingConfig interface {
	GetLaborPricePerHour() float64
	GetGlobalMarkupPct() float64
	GetROTRate() float64
	GetROTCap() float64
	GetMinMappingConfidence() float64
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                  string
	HTTPAddr             string
	CORSAllowAll         bool
	CORSOrigins          []string
	CORSAllowCreds       bool
	RateLimitRPS         float64
	RateLimitBurst       int
	JWTSecret            string
	CatalogFile          string
	DatabaseURL          string
	RedisURL             string
	RedisTLSInsecure     bool
	SessionTTL           time.Duration
	LaborPricePerHour    float64
	GlobalMarkupPct      float64
	ROTRate              float64
	ROTCap               float64
	MinMappingConfidence float64
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string  { return c.DatabaseURL }
func (c *Config) IsDatabaseEnabled() bool { return c.DatabaseURL != "" }

// JWTConfig implementation
func (c *Config) GetJWTSecret() string { return c.JWTSecret }
func (c *Config) IsAuthEnabled() bool  { return c.JWTSecret != "" }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }
func (c *Config) GetRateLimitRPS() float64 { return c.RateLimitRPS }
func (c *Config) GetRateLimitBurst() int   { return c.RateLimitBurst }

// CatalogConfig implementation
func (c *Config) GetCatalogFile() string { return c.CatalogFile }

// SessionStoreConfig implementation
func (c *Config) GetRedisURL() string          { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool    { return c.RedisTLSInsecure }
func (c *Config) GetSessionTTL() time.Duration { return c.SessionTTL }

// PricingConfig implementation
func (c *Config) GetLaborPricePerHour() float64    { return c.LaborPricePerHour }
func (c *Config) GetGlobalMarkupPct() float64      { return c.GlobalMarkupPct }
func (c *Config) GetROTRate() float64              { return c.ROTRate }
func (c *Config) GetROTCap() float64               { return c.ROTCap }
func (c *Config) GetMinMappingConfidence() float64 { return c.MinMappingConfidence }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                  getEnv("APP_ENV", "development"),
		HTTPAddr:             getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:         corsAllowAll,
		CORSOrigins:          corsOrigins,
		CORSAllowCreds:       strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		RateLimitRPS:         mustFloat(getEnv("RATE_LIMIT_RPS", "5")),
		RateLimitBurst:       mustInt(getEnv("RATE_LIMIT_BURST", "20")),
		JWTSecret:            getEnv("API_JWT_SECRET", ""),
		CatalogFile:          getEnv("CATALOG_FILE", "catalog.yaml"),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		RedisURL:             getEnv("REDIS_URL", ""),
		RedisTLSInsecure:     strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		SessionTTL:           mustDuration(getEnv("SESSION_TTL", "2h")),
		LaborPricePerHour:    mustFloat(getEnv("LABOR_PRICE_PER_HOUR", "500")),
		GlobalMarkupPct:      mustFloat(getEnv("GLOBAL_MARKUP_PCT", "10")),
		ROTRate:              mustFloat(getEnv("ROT_RATE", "0.30")),
		ROTCap:               mustFloat(getEnv("ROT_CAP", "50000")),
		MinMappingConfidence: mustFloat(getEnv("MIN_MAPPING_CONFIDENCE", "1.0")),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.CORSAllowAll && c.CORSAllowCreds {
		return fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}
	if c.DatabaseURL == "" && strings.TrimSpace(c.CatalogFile) == "" {
		return fmt.Errorf("either CATALOG_FILE or DATABASE_URL is required")
	}
	if c.LaborPricePerHour <= 0 {
		return fmt.Errorf("LABOR_PRICE_PER_HOUR must be positive")
	}
	if c.GlobalMarkupPct < 0 {
		return fmt.Errorf("GLOBAL_MARKUP_PCT cannot be negative")
	}
	if c.ROTRate < 0 || c.ROTRate > 1 {
		return fmt.Errorf("ROT_RATE must be between 0 and 1")
	}
	if c.ROTCap < 0 {
		return fmt.Errorf("ROT_CAP cannot be negative")
	}
	if c.MinMappingConfidence < 0 || c.MinMappingConfidence > 1 {
		return fmt.Errorf("MIN_MAPPING_CONFIDENCE must be between 0 and 1")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be a positive duration")
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return result
}

// mustFloat accepts both decimal separators, "0,30" reads as 0.30.
func mustFloat(value string) float64 {
	cleaned := strings.ReplaceAll(strings.TrimSpace(value), ",", ".")
	result, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return -1
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
