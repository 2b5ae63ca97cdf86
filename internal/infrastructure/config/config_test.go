package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"BILLING_APP_ENV", "BILLING_APP_PORT", "BILLING_STORAGE_DRIVER",
		"BILLING_DATABASE_DSN", "BILLING_DATABASE_MAX_OPEN_CONNS", "BILLING_LOG_FORMAT",
		"BILLING_DYNAMODB_ENDPOINT", "BILLING_METRICS_ENABLED",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "project-billing", cfg.App.Name)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, ":8080", cfg.Addr())
		assert.Equal(t, DriverDynamoDB, cfg.Storage.Driver)
		assert.Equal(t, "us-east-1", cfg.DynamoDB.Region)
		assert.Equal(t, "local", cfg.DynamoDB.AccessKeyID)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
		assert.Equal(t, "console", cfg.Log.Format)
		assert.Equal(t, "/metrics", cfg.Metrics.Path)
		assert.False(t, cfg.Metrics.Enabled)
	})

	t.Run("environment overrides", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("BILLING_APP_ENV", "production")
		t.Setenv("BILLING_APP_PORT", "9000")
		t.Setenv("BILLING_STORAGE_DRIVER", "Postgres")
		t.Setenv("BILLING_DATABASE_DSN", "postgres://billing@db/billing")
		t.Setenv("BILLING_DATABASE_MAX_OPEN_CONNS", "50")
		t.Setenv("BILLING_METRICS_ENABLED", "true")

		cfg, err := Load()
		require.NoError(t, err)

		assert.True(t, cfg.IsProduction())
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, "json", cfg.Log.Format)
		assert.True(t, cfg.Metrics.Enabled)
	})

	t.Run("postgres needs a dsn", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("BILLING_STORAGE_DRIVER", "postgres")

		_, err := Load()
		assert.ErrorContains(t, err, "BILLING_DATABASE_DSN")
	})

	t.Run("unknown driver", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("BILLING_STORAGE_DRIVER", "mongo")

		_, err := Load()
		assert.Error(t, err)
	})
}
