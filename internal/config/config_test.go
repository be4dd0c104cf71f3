package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("uses defaults when environment is empty", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "localhost:5001", cfg.Server.Addr)
		assert.Equal(t, int64(32<<20), cfg.Server.MaxUploadSize)
		assert.Equal(t, "@every 15m", cfg.Reference.RefreshSchedule)
		assert.Equal(t, 2, cfg.Yahoo.WindowDays)
		assert.Equal(t, 8*time.Second, cfg.Yahoo.Timeout)
		assert.Empty(t, cfg.Redis.Addr)
		assert.Equal(t, []string{"http://localhost:3000", "http://localhost"}, cfg.CORS.AllowedOrigins)
	})

	t.Run("reads overrides from environment", func(t *testing.T) {
		t.Setenv("SERVER_HOST", "0.0.0.0")
		t.Setenv("SERVER_PORT", "8080")
		t.Setenv("YAHOO_CONCURRENCY", "0")
		t.Setenv("QUOTE_CACHE_TTL", "1h")
		t.Setenv("REDIS_ADDR", "cache:6379")
		t.Setenv("YAHOO_DISABLED", "true")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr)
		assert.Equal(t, 1, cfg.Yahoo.Concurrency, "concurrency is clamped to at least one worker")
		assert.Equal(t, time.Hour, cfg.Redis.TTL)
		assert.Equal(t, "cache:6379", cfg.Redis.Addr)
		assert.True(t, cfg.Yahoo.Disabled)
	})

	t.Run("rejects malformed numbers", func(t *testing.T) {
		t.Setenv("YAHOO_BURST", "many")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "YAHOO_BURST")
	})
}
