package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetupConsoleOnly(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup := Setup(Options{Level: slog.LevelInfo, Output: &buf})
	defer cleanup()

	logger.Debug("hidden")
	logger.Info("table loaded", "rows", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "table loaded")
	assert.Contains(t, out, "rows=3")
}

func TestMultiHandlerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	h := &multiHandler{handlers: []slog.Handler{
		slog.NewTextHandler(&a, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&b, &slog.HandlerOptions{Level: slog.LevelWarn}),
	}}

	assert.True(t, h.Enabled(context.Background(), slog.LevelDebug))

	logger := slog.New(h).With("session", "abc")
	logger.Info("upload")
	logger.Warn("skipped cells")

	assert.Contains(t, a.String(), "upload")
	assert.Contains(t, a.String(), "skipped cells")
	assert.NotContains(t, b.String(), "upload")
	assert.Contains(t, b.String(), "session=abc")
}
