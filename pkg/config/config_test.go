package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()

	assert.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "9090", cfg.MetricsPort)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, "db/migrations", cfg.MigrationsPath)
	assert.True(t, cfg.RateLimitEnabled)
	assert.Contains(t, cfg.RateLimits, "POST /users")
}

func TestLoadPostgresRequiresURL(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "")

	_, err := Load()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoadMigrationsPathFollowsDriver(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/app")

	cfg, err := Load()

	assert.NoError(t, err)
	assert.Equal(t, "infra/migrations", cfg.MigrationsPath)

	t.Setenv("MIGRATIONS_PATH", "custom/migrations")

	cfg, err = Load()

	assert.NoError(t, err)
	assert.Equal(t, "custom/migrations", cfg.MigrationsPath)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/app")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg, err := Load()

	assert.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.False(t, cfg.RateLimitEnabled)
}
