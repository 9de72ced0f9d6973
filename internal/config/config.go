// Package config handles application configuration.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// Server settings
	Port    int
	BaseURL string

	// Database
	DatabaseURL string

	// Authentication
	// JWTSecret is the shared HS256 secret the auth provider signs access
	// tokens with. AuthWebhookSecret is the Svix signing secret for the
	// provider's user lifecycle webhooks.
	JWTSecret         string
	AuthWebhookSecret string

	// Stripe
	StripeSecretKey     string
	StripeWebhookSecret string

	// CORS
	CORSOrigins []string

	// Feature gates
	// GateRefreshInterval controls how long the resolved feature_gates row
	// is cached in-process before it is re-read from the store.
	GateRefreshInterval time.Duration

	// Chord diagram assets
	// AssetBaseURL is the public base URL diagram URLs are derived from.
	// Storage* configure the S3-compatible bucket the diagrams live in;
	// when unset the asset service runs in URL-derivation-only mode.
	AssetBaseURL     string
	StorageEnabled   bool
	StorageEndpoint  string // AWS_ENDPOINT_URL_S3 for S3-compatible providers
	StorageAccessKey string // AWS_ACCESS_KEY_ID
	StorageSecretKey string // AWS_SECRET_ACCESS_KEY
	StorageBucket    string
	StorageRegion    string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnvInt("PORT", 8080),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),
		DatabaseURL: getEnv("DATABASE_URL", "file:chordbase.db?_journal=WAL&_timeout=5000"),

		JWTSecret:         getEnv("JWT_SECRET", ""),
		AuthWebhookSecret: getEnv("AUTH_WEBHOOK_SECRET", ""),

		StripeSecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),

		CORSOrigins: getEnvSlice("CORS_ORIGINS", []string{"http://localhost:3000"}),

		GateRefreshInterval: getEnvDuration("GATE_REFRESH_INTERVAL", 5*time.Minute),

		AssetBaseURL: getEnv("ASSET_BASE_URL", "https://assets.chordbase.app"),

		StorageEndpoint:  getEnv("AWS_ENDPOINT_URL_S3", ""),
		StorageAccessKey: getEnv("AWS_ACCESS_KEY_ID", ""),
		StorageSecretKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		StorageBucket:    getEnv("BUCKET_NAME", ""),
		StorageRegion:    getEnv("AWS_REGION", "auto"),
	}

	// Storage is enabled when a bucket is configured
	cfg.StorageEnabled = cfg.StorageBucket != ""

	return cfg, nil
}

// AuthEnabled returns true if JWT verification is configured.
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
