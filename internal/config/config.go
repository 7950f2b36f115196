package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is tempyd's environment-driven configuration. The daemon holds the
// weatherapi.com key so tempy clients don't have to.
type Config struct {
	Addr          string
	WeatherAPIKey string
	CacheTTL      time.Duration

	RedisAddr        string
	RedisPassword    string
	RateLimitEnabled bool
	RateLimitRPS     int
	RateLimitBurst   int

	DBPath   string
	Postgres DBConfig

	RetentionDays  int
	ZipkinEndpoint string
}

type DBConfig struct {
	User     string
	Password string
	DBName   string
	Host     string
	Port     string
	SSLMode  string
}

// Enabled reports whether enough POSTGRES_* variables are set to prefer
// postgres over the sqlite file.
func (c DBConfig) Enabled() bool { return c.Host != "" && c.DBName != "" }

func Load() *Config {
	cfg := &Config{
		Addr:             getEnv("TEMPYD_ADDR", ":8470"),
		WeatherAPIKey:    strings.TrimSpace(os.Getenv("WEATHERAPI_KEY")),
		CacheTTL:         getDuration("CACHE_TTL", 10*time.Minute),
		RedisAddr:        strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		RateLimitEnabled: parseBool(getEnv("RATE_LIMIT_ENABLED", "true")),
		RateLimitRPS:     getInt("RATE_LIMIT_RPS", 1),
		RateLimitBurst:   getInt("RATE_LIMIT_BURST", 5),
		DBPath:           getEnv("DB_PATH", "tempyd.db"),
		Postgres: DBConfig{
			User:     strings.TrimSpace(os.Getenv("POSTGRES_USER")),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   strings.TrimSpace(os.Getenv("POSTGRES_DB")),
			Host:     strings.TrimSpace(os.Getenv("POSTGRES_HOST")),
			Port:     strings.TrimSpace(os.Getenv("POSTGRES_PORT")),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		},
		RetentionDays:  getInt("RETENTION_DAYS", 30),
		ZipkinEndpoint: strings.TrimSpace(os.Getenv("ZIPKIN_ENDPOINT")),
	}

	slog.Info("tempyd config loaded",
		"addr", cfg.Addr,
		"cache_ttl", cfg.CacheTTL,
		"rate_limit", cfg.RateLimitEnabled && cfg.RedisAddr != "",
		"postgres", cfg.Postgres.Enabled(),
	)
	return cfg
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func getDuration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}

func parseBool(val string) bool {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}
