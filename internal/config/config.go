package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv             string
	Port               string
	RedisURL           string
	CORSAllowedOrigins []string

	// ScrapeEnabled gates live page scraping. Disabled by default: the
	// service then answers every lookup with a link-only result.
	ScrapeEnabled       bool
	ScrapeNavTimeout    time.Duration
	ScrapeSettleTimeout time.Duration
	BrowserControlURL   string
	BrowserNoSandbox    bool

	TrackCacheTTL time.Duration

	RateLimitWindow time.Duration
	RateLimitMax    int

	StaticDir string
}

// Load reads configuration from environment variables and an optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:              valueOrDefault(k.String("APP_ENV"), "development"),
		Port:                valueOrDefault(k.String("PORT"), "8080"),
		RedisURL:            strings.TrimSpace(k.String("REDIS_URL")),
		CORSAllowedOrigins:  splitAndTrim(k.String("CORS_ALLOWED_ORIGINS")),
		ScrapeEnabled:       parseBool(k.String("SCRAPE_ENABLED")),
		ScrapeNavTimeout:    parseDuration(k.String("SCRAPE_NAV_TIMEOUT"), "25s"),
		ScrapeSettleTimeout: parseDuration(k.String("SCRAPE_SETTLE_TIMEOUT"), "3s"),
		BrowserControlURL:   strings.TrimSpace(k.String("BROWSER_CONTROL_URL")),
		BrowserNoSandbox:    parseBool(k.String("BROWSER_NO_SANDBOX")),
		TrackCacheTTL:       parseDuration(k.String("TRACK_CACHE_TTL"), "10m"),
		RateLimitWindow:     parseDuration(k.String("RATE_LIMIT_WINDOW"), "1m"),
		RateLimitMax:        int(k.Int64("RATE_LIMIT_MAX")),
		StaticDir:           strings.TrimSpace(k.String("STATIC_DIR")),
	}
	if cfg.RateLimitMax <= 0 {
		cfg.RateLimitMax = 30
	}
	return cfg, nil
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func splitAndTrim(value string) []string {
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

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// LoadForTests allows tests to override environment variables without
// touching the real environment.
func LoadForTests(env map[string]string) (*Config, error) {
	original := make(map[string]string, len(env))
	for key := range env {
		original[key] = os.Getenv(key)
		if err := setEnvVar(key, env[key]); err != nil {
			return nil, err
		}
	}
	cfg, err := Load()
	restoreErr := restoreEnv(original)
	if err != nil {
		return nil, err
	}
	return cfg, restoreErr
}

func setEnvVar(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func restoreEnv(values map[string]string) error {
	var errs []string
	for key, value := range values {
		if err := setEnvVar(key, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("restore env: %s", strings.Join(errs, "; "))
	}
	return nil
}
