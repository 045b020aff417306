package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"malariadash/internal/errors"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "SHUTDOWN_TIMEOUT", "MAX_UPLOAD_BYTES", "MAX_ROWS", "PREVIEW_ROWS", "SESSION_TTL", "LOG_LEVEL", "SEQ_URL"} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, int64(10<<20), cfg.Upload.MaxBytes)
	assert.Equal(t, 100000, cfg.Upload.MaxRows)
	assert.Equal(t, 20, cfg.Upload.PreviewRows)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, slog.LevelInfo, cfg.Log.Level)
	assert.Empty(t, cfg.Log.SeqURL)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MAX_ROWS", "50")
	t.Setenv("SESSION_TTL", "15m")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SEQ_URL", "http://localhost:5341")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 50, cfg.Upload.MaxRows)
	assert.Equal(t, 15*time.Minute, cfg.Session.TTL)
	assert.Equal(t, slog.LevelDebug, cfg.Log.Level)
	assert.Equal(t, "http://localhost:5341", cfg.Log.SeqURL)
}

func TestFromEnvRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non numeric port", "PORT", "http"},
		{"zero rows", "MAX_ROWS", "0"},
		{"negative ttl", "SESSION_TTL", "-1m"},
		{"unknown level", "LOG_LEVEL", "chatty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := FromEnv()
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}
