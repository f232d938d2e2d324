package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("SMM_ENV", "test")
	t.Setenv("SMM_DB_HOST", "localhost")
	t.Setenv("SMM_DB_USERNAME", "panel")
	t.Setenv("SMM_DB_NAME", "panel_test")
	t.Setenv("SMM_REDIS_ADDR", "localhost:6379")
	t.Setenv("SMM_JWT_SECRET", "test-secret")
}

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults fill everything the environment does not set", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := LoadConfig()
		require.NoError(t, err)
		require.NoError(t, cfg.Validate())

		assert.Equal(t, Test, cfg.Environment)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
		assert.Equal(t, 30*time.Second, cfg.Provider.RequestTimeout)
		assert.Equal(t, 256, cfg.Dispatcher.QueueSize)
		assert.Equal(t, 4, cfg.Dispatcher.Workers)
		assert.Equal(t, "*/2 * * * *", cfg.Poller.CronSpec)
		assert.InDelta(t, 1.2, cfg.Panel.DefaultMarkup, 0.0001)

		require.Len(t, cfg.Referral.TierSeeds, 3)
		assert.Equal(t, int64(10000), cfg.Referral.TierSeeds[0].Threshold)
		assert.Equal(t, int64(1000), cfg.Referral.TierSeeds[0].Commission)
	})

	t.Run("Environment variables override connection settings", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("SMM_DB_HOST", "db.internal")
		t.Setenv("SMM_SERVER_PORT", "9000")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, 9000, cfg.Server.Port)
	})
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		setRequiredEnv(t)
		cfg, err := LoadConfig()
		require.NoError(t, err)
		return cfg
	}

	t.Run("Missing JWT secret reported by name", func(t *testing.T) {
		cfg := valid()
		cfg.Auth.JWTSecret = ""
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "auth.jwtSecret")
	})

	t.Run("Missing database host reported by name", func(t *testing.T) {
		cfg := valid()
		cfg.Database.Host = ""
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.host")
	})

	t.Run("Unknown environment rejected", func(t *testing.T) {
		cfg := valid()
		cfg.Environment = "staging"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid environment")
	})
}
