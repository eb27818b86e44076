package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/VanDung-dev/QNetX-Engine/config"
)

func setupTestLogger(cfg config.LoggerConfig) (*zap.Logger, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	return newLogger(cfg, zapcore.AddSync(buf)), buf
}

func TestJSONLogger(t *testing.T) {
	logger, buf := setupTestLogger(config.LoggerConfig{
		Level:       "info",
		Format:      "json",
		ServiceName: "qnetx",
	})

	logger.Info("channel created", zap.String("channel_id", "0,2,0,0"))
	logger.Debug("hidden")
	Sync(logger)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "qnetx", entry["logger"])
	assert.Equal(t, "channel created", entry["msg"])
	assert.Equal(t, "0,2,0,0", entry["channel_id"])
}

func TestConsoleLogger(t *testing.T) {
	logger, buf := setupTestLogger(config.LoggerConfig{Level: "debug", Format: "console"})

	logger.Debug("route selected")
	Sync(logger)

	assert.Contains(t, buf.String(), "DEBUG")
	assert.Contains(t, buf.String(), "route selected")
}

func TestInvalidLevelFallsBackToInfo(t *testing.T) {
	logger, buf := setupTestLogger(config.LoggerConfig{Level: "nope", Format: "json"})

	logger.Debug("dropped")
	logger.Info("kept")
	Sync(logger)

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "node.log")
	logger, buf := setupTestLogger(config.LoggerConfig{
		Level:   "info",
		Format:  "console",
		LogFile: path,
		MaxSize: 1,
	})

	logger.Warn("anomaly detected")
	Sync(logger)

	assert.Contains(t, buf.String(), "anomaly detected")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	assert.Equal(t, "WARN", entry["level"])
}
