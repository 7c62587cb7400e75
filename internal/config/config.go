package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultJWTSecret = "change-me"

type Config struct {
	// Application
	AppName     string
	AppEnv      string
	Port        string
	ContentPath string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver       string
	DBConnection   string
	MigrateOnStart bool

	// Security
	JWTSecret   string
	JWTExpiry   time.Duration
	CORSOrigins []string

	// Rate limiting (per client IP)
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Cache (optional, search and content responses)
	RedisURL       string
	SearchCacheTTL time.Duration

	// Observability (optional)
	SentryDSN string
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName:     envString("APP_NAME", "Lumen"),
		AppEnv:      envRequired("APP_ENV"), // Required: 'development' or 'production'
		Port:        envString("PORT", "8090"),
		ContentPath: envString("CONTENT_PATH", "content"),

		// Database
		DBDriver:       envString("DB_DRIVER", "sqlite"),
		DBConnection:   envString("DB_CONNECTION", "./data/lumen.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"),
		MigrateOnStart: envBool("MIGRATE_ON_START", true),

		// Security
		JWTSecret:   envRequired("JWT_SECRET"),
		JWTExpiry:   envDuration("JWT_EXPIRY", 168*time.Hour), // 7 days
		CORSOrigins: envList("CORS_ORIGINS"),

		// Rate limiting
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   envDuration("RATE_LIMIT_WINDOW", 15*time.Minute),

		// Cache
		RedisURL:       envString("REDIS_URL", ""),
		SearchCacheTTL: envDuration("SEARCH_CACHE_TTL", 5*time.Minute),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),
	}

	// Production: validate required services
	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction rejects development defaults that must not reach production.
func validateProduction(cfg *Config) {
	if cfg.JWTSecret == defaultJWTSecret || len(cfg.JWTSecret) < 32 {
		slog.Error("production deployment requires a strong JWT_SECRET",
			"hint", "use at least 32 random characters")
		os.Exit(1)
	}
	if cfg.DBDriver != "sqlite" && cfg.DBDriver != "pgx" {
		slog.Error("unsupported DB_DRIVER", "driver", cfg.DBDriver)
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

// envList splits a comma separated value, dropping blanks.
func envList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// CacheEnabled reports whether response caching is configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisURL != "" && c.SearchCacheTTL > 0
}
