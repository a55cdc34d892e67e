package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Server
	Port        string
	Environment string
	AppURL      string

	// Database
	DatabaseURL string

	// Sessions
	SessionSecret string
	SessionTTL    time.Duration

	// Identity provider
	OIDCIssuerURL    string
	OIDCClientID     string
	OIDCClientSecret string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:             getEnv("PORT", "5000"),
		Environment:      getEnv("ENVIRONMENT", "development"),
		AppURL:           getEnv("APP_URL", "http://localhost:5000"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		SessionSecret:    getEnv("SESSION_SECRET", ""),
		SessionTTL:       time.Duration(getEnvInt("SESSION_TTL_HOURS", 7*24)) * time.Hour,
		OIDCIssuerURL:    getEnv("OIDC_ISSUER_URL", ""),
		OIDCClientID:     getEnv("OIDC_CLIENT_ID", ""),
		OIDCClientSecret: getEnv("OIDC_CLIENT_SECRET", ""),
	}

	required := map[string]string{
		"DATABASE_URL":       cfg.DatabaseURL,
		"SESSION_SECRET":     cfg.SessionSecret,
		"OIDC_ISSUER_URL":    cfg.OIDCIssuerURL,
		"OIDC_CLIENT_ID":     cfg.OIDCClientID,
		"OIDC_CLIENT_SECRET": cfg.OIDCClientSecret,
	}
	for name, value := range required {
		if value == "" {
			return nil, fmt.Errorf("%s environment variable is required", name)
		}
	}

	return cfg, nil
}

// CallbackURL is the redirect URI registered with the identity provider.
func (c *Config) CallbackURL() string {
	return c.AppURL + "/api/callback"
}

// SecureCookies reports whether session cookies should carry the Secure flag.
// Local development runs over plain HTTP.
func (c *Config) SecureCookies() bool {
	return c.Environment != "development" && c.Environment != "test"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
