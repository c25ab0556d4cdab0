package adapter

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"Warning": slog.LevelWarn,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLogLevel(in), "level %q", in)
	}
}

func TestNewLoggerWritesJSONAtLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "WARN")

	logger.Info("dropped")
	logger.Warn("kept", "lesson", "enumeration")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "enumeration", entry["lesson"])
}

func TestSetupLoggerCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "dojo.log")

	logger, err := SetupLogger(&LoggingConfig{File: path, Level: "INFO"})
	require.NoError(t, err)
	logger.Info("hello")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}
