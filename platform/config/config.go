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

// JWTConfig provides JWT validation settings for middleware.
type JWTConfig interface {
	GetJWTAccessSecret() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// GeocoderConfig provides settings for the geocoding provider client.
type GeocoderConfig interface {
	GetGeocoderBaseURL() string
	GetGeocoderUserAgent() string
	GetGeocoderCountryCodes() string
	GetGeocoderResultLimit() int
	GetGeocoderTimeout() time.Duration
}

// LocaleConfig provides the default locality used when address fields are absent.
type LocaleConfig interface {
	GetDefaultCity() string
	GetDefaultProvince() string
	GetDefaultCenterLat() float64
	GetDefaultCenterLng() float64
}

// UpstreamConfig provides base URLs for the property and listing backends.
type UpstreamConfig interface {
	GetPropertyAPIBaseURL() string
	GetListingAPIBaseURL() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                  string
	HTTPAddr             string
	JWTAccessSecret      string
	CORSAllowAll         bool
	CORSOrigins          []string
	CORSAllowCreds       bool
	GeocoderBaseURL      string
	GeocoderUserAgent    string
	GeocoderCountryCodes string
	GeocoderResultLimit  int
	GeocoderTimeout      time.Duration
	DefaultCity          string
	DefaultProvince      string
	DefaultCenterLat     float64
	DefaultCenterLng     float64
	PropertyAPIBaseURL   string
	ListingAPIBaseURL    string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// JWTConfig implementation
func (c *Config) GetJWTAccessSecret() string { return c.JWTAccessSecret }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// GeocoderConfig implementation
func (c *Config) GetGeocoderBaseURL() string        { return c.GeocoderBaseURL }
func (c *Config) GetGeocoderUserAgent() string      { return c.GeocoderUserAgent }
func (c *Config) GetGeocoderCountryCodes() string   { return c.GeocoderCountryCodes }
func (c *Config) GetGeocoderResultLimit() int       { return c.GeocoderResultLimit }
func (c *Config) GetGeocoderTimeout() time.Duration { return c.GeocoderTimeout }

// LocaleConfig implementation
func (c *Config) GetDefaultCity() string       { return c.DefaultCity }
func (c *Config) GetDefaultProvince() string   { return c.DefaultProvince }
func (c *Config) GetDefaultCenterLat() float64 { return c.DefaultCenterLat }
func (c *Config) GetDefaultCenterLng() float64 { return c.DefaultCenterLng }

// UpstreamConfig implementation
func (c *Config) GetPropertyAPIBaseURL() string { return c.PropertyAPIBaseURL }
func (c *Config) GetListingAPIBaseURL() string  { return c.ListingAPIBaseURL }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                  getEnv("APP_ENV", "development"),
		HTTPAddr:             getEnv("HTTP_ADDR", ":8080"),
		JWTAccessSecret:      getEnv("JWT_ACCESS_SECRET", ""),
		CORSAllowAll:         corsAllowAll,
		CORSOrigins:          corsOrigins,
		CORSAllowCreds:       strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		GeocoderBaseURL:      getEnv("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org"),
		GeocoderUserAgent:    getEnv("GEOCODER_USER_AGENT", "JACSPortal/1.0"),
		GeocoderCountryCodes: getEnv("GEOCODER_COUNTRY_CODES", "ph"),
		GeocoderResultLimit:  mustInt(getEnv("GEOCODER_RESULT_LIMIT", "5")),
		GeocoderTimeout:      mustDuration(getEnv("GEOCODER_TIMEOUT", "5s")),
		DefaultCity:          getEnv("DEFAULT_CITY", "Cebu City"),
		DefaultProvince:      getEnv("DEFAULT_PROVINCE", "Cebu"),
		DefaultCenterLat:     mustFloat(getEnv("DEFAULT_CENTER_LAT", "10.3157")),
		DefaultCenterLng:     mustFloat(getEnv("DEFAULT_CENTER_LNG", "123.8854")),
		PropertyAPIBaseURL:   getEnv("PROPERTY_API_BASE_URL", ""),
		ListingAPIBaseURL:    getEnv("LISTING_API_BASE_URL", ""),
	}

	if cfg.JWTAccessSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.PropertyAPIBaseURL == "" {
		return nil, fmt.Errorf("PROPERTY_API_BASE_URL is required")
	}
	if cfg.ListingAPIBaseURL == "" {
		return nil, fmt.Errorf("LISTING_API_BASE_URL is required")
	}
	if cfg.GeocoderResultLimit <= 0 {
		cfg.GeocoderResultLimit = 5
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
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
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
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
