package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Env-driven tests cannot run in parallel; t.Setenv enforces that.

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TASKFORGE_DATABASE_URL", "postgres://localhost:5432/taskforge_test")
	t.Setenv("TASKFORGE_AUTH_JWT_SECRET", "test-secret-that-is-long-enough-for-testing")
}

func TestLoad(t *testing.T) {
	t.Run("loads with defaults and required env", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, "info", cfg.Server.LogLevel)
		assert.Equal(t, "postgres://localhost:5432/taskforge_test", cfg.Database.URL)
		assert.Equal(t, 7*24*60, cfg.Auth.TokenLifetimeMinutes)
		assert.Equal(t, "uploads", cfg.Storage.UploadsDir)
		assert.Equal(t, int64(32<<20), cfg.Storage.MaxUploadBytes)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("TASKFORGE_SERVER_PORT", "9090")
		t.Setenv("TASKFORGE_SERVER_LOG_LEVEL", "debug")
		t.Setenv("TASKFORGE_AUTH_TOKEN_LIFETIME_MINUTES", "120")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "debug", cfg.Server.LogLevel)
		assert.Equal(t, 120, cfg.Auth.TokenLifetimeMinutes)
	})

	t.Run("rejects missing database url", func(t *testing.T) {
		t.Setenv("TASKFORGE_AUTH_JWT_SECRET", "test-secret-that-is-long-enough-for-testing")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("rejects short jwt secret", func(t *testing.T) {
		t.Setenv("TASKFORGE_DATABASE_URL", "postgres://localhost:5432/taskforge_test")
		t.Setenv("TASKFORGE_AUTH_JWT_SECRET", "too-short")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("rejects unknown log level", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("TASKFORGE_SERVER_LOG_LEVEL", "verbose")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("initial admin is optional", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := Load()
		require.NoError(t, err)
		assert.Empty(t, cfg.InitialAdmin.Email)
	})
}
