package config

import (
	"os"
	"strings"
	"time"
)

// Config holds process-level settings for the API server. Store connection
// parameters live in the db package's own Config.
type Config struct {
	Addr        string
	Env         string // development, production
	LogLevel    string
	CORSOrigins []string
	SeedData    bool
	TokenTTL    time.Duration
}

// FromEnv loads configuration from environment variables.
func FromEnv() Config {
	return Config{
		Addr:        ":" + getEnv("PORT", "8080"),
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
		SeedData:    getEnv("SEED_DATA", "false") == "true",
		TokenTTL:    parseDuration(getEnv("TOKEN_TTL", "24h"), 24*time.Hour),
	}
}

// Production reports whether the server runs in production mode. Seeding is
// refused in production regardless of the flag.
func (c Config) Production() bool {
	return strings.EqualFold(c.Env, "production")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseDuration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
