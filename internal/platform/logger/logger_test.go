package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"

	"astroengine/internal/platform/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}

func TestHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(newHandler(&buf, config.LoggingConfig{Level: "info", Format: "json"}))
	log.Debug("dropped")
	log.Info("chart computed", "request_id", "r-1")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "chart computed", entry["msg"])
	assert.Equal(t, "r-1", entry["request_id"])

	buf.Reset()
	slog.New(newHandler(&buf, config.LoggingConfig{Format: "text"})).Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")
}

func TestOutputRotatesWhenFileConfigured(t *testing.T) {
	w := output(config.LoggingConfig{File: t.TempDir() + "/astro.log"})
	lj, ok := w.(*lumberjack.Logger)
	require.True(t, ok)
	assert.Equal(t, 100, lj.MaxSize)
	require.NoError(t, lj.Close())
}
