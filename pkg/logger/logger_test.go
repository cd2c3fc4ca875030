package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestDefaultLoggerIsUsable(t *testing.T) {
	Log = zap.NewNop()
	assert.NotPanics(t, func() {
		Log.Info("before init")
		Sync()
	})
}

func TestInitLogger(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "test.log")

	cfg := &Config{
		Service:    "promptpilot-backend",
		Level:      "DEBUG",
		Filename:   filename,
		MaxSize:    1,
		MaxBackups: 1,
		MaxAge:     1,
		Compress:   false,
	}

	err := InitLogger(cfg)
	assert.NoError(t, err)
	assert.NotNil(t, Log)

	Log.Info("Test log message", zap.String("component", "logger_test"))
	Sync()

	data, err := os.ReadFile(filename)
	assert.NoError(t, err)
	assert.Contains(t, string(data), "Test log message")
	assert.Contains(t, string(data), `"level":"INFO"`)
	assert.Contains(t, string(data), `"service":"promptpilot-backend"`)
}

func TestInitLoggerWithoutFile(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	assert.NoError(t, err)
	assert.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	assert.NoError(t, InitLogger(&Config{Level: "INFO"}))

	Log.Info("stdout only")
	Sync()

	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	cfg := &Config{
		Level:    "INVALID",
		Filename: filepath.Join(t.TempDir(), "test_invalid.log"),
	}

	err := InitLogger(cfg)
	assert.Error(t, err)
}
