package config

import (
	"fmt"
	"os"
	"time"
)

// Config carries everything the process reads from the environment.
// Values are resolved once at startup and passed down by constructor.
type Config struct {
	Environment    string
	Port           string
	MetricsPort    string
	JWTSecret      string
	DatabaseDriver string
	DatabaseURL    string
	DatabasePath   string
	MigrationsPath string
	OTLPEndpoint   string
	RedisAddr      string
	PostmarkAPIKey string
	PostmarkFrom   string

	RateLimitEnabled bool
	RateLimits       map[string]RateLimit
}

type RateLimit struct {
	Requests int
	Window   time.Duration
}

func Load() (*Config, error) {
	driver := getEnv("DATABASE_DRIVER", "sqlite")

	cfg := &Config{
		Environment:    getEnv("GIN_MODE", "debug"),
		Port:           getEnv("PORT", "3000"),
		MetricsPort:    getEnv("METRICS_PORT", "9090"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		DatabaseDriver: driver,
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		DatabasePath:   getEnv("DATABASE_PATH", "db/app.db"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", defaultMigrationsPath(driver)),
		OTLPEndpoint:   getEnv("OTLP_ENDPOINT", "localhost:4317"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		PostmarkAPIKey: os.Getenv("POSTMARK_API_KEY"),
		PostmarkFrom:   getEnv("POSTMARK_FROM", "andrew@mead.io"),

		RateLimitEnabled: getEnv("RATE_LIMIT_ENABLED", "true") == "true",
		RateLimits: map[string]RateLimit{
			"POST /users":       {Requests: 5, Window: time.Minute},
			"POST /users/login": {Requests: 10, Window: time.Minute},
		},
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	if cfg.DatabaseDriver == "postgres" && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required when DATABASE_DRIVER=postgres")
	}

	return cfg, nil
}

// defaultMigrationsPath follows the driver because the two migration sets
// are written in different SQL dialects.
func defaultMigrationsPath(driver string) string {
	if driver == "postgres" {
		return "infra/migrations"
	}

	return "db/migrations"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}
