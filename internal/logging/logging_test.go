package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "reportview.log")
	logger, closeFn, err := New(Config{Level: "debug", Encoding: "json", File: path})
	require.NoError(t, err)

	logger.Debug("parsed report", zap.Int("blocks", 12))
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(data))), &entry))
	require.Equal(t, "parsed report", entry["msg"])
	require.Equal(t, float64(12), entry["blocks"])
}

func TestNewRespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warn.log")
	logger, closeFn, err := New(Config{Level: "warn", File: path})
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(data), "hidden")
	require.Contains(t, string(data), "shown")
}

func TestNewQuietWithoutFileIsNop(t *testing.T) {
	logger, closeFn, err := New(Config{Quiet: true})
	require.NoError(t, err)
	require.False(t, logger.Core().Enabled(zap.ErrorLevel))
	require.NoError(t, closeFn())
}

func TestNewRejectsUnknownSettings(t *testing.T) {
	_, _, err := New(Config{Level: "verbose"})
	require.Error(t, err)

	_, _, err = New(Config{Encoding: "logfmt"})
	require.Error(t, err)
}
