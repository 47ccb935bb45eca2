package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "classdesk.log")
	cfg := DefaultConfig()
	cfg.File = path
	cfg.Level = "debug"

	logger, err := New(cfg)
	require.NoError(t, err)
	logger.Named("tutoring").Warn("lesson materials defaulted", zap.String("lesson_id", "l9"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	line := strings.TrimSpace(strings.Split(string(data), "\n")[0])
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "lesson materials defaulted", entry["message"])
	assert.Equal(t, "tutoring", entry["logger"])
	assert.Equal(t, "l9", entry["lesson_id"])
}

func TestNewRespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "classdesk.log")
	logger, err := New(Config{File: path, Level: "error"})
	require.NoError(t, err)

	logger.Info("dropped")
	_ = logger.Sync()

	data, _ := os.ReadFile(path)
	assert.NotContains(t, string(data), "dropped")
}

func TestNewNopWithoutSinks(t *testing.T) {
	logger, err := New(Config{Level: "info"})
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("CLASSDESK_LOG_FILE", "")
	t.Setenv("CLASSDESK_LOG_LEVEL", "debug")

	cfg := ConfigFromEnv()
	assert.Equal(t, "", cfg.File)
	assert.Equal(t, "debug", cfg.Level)
}
