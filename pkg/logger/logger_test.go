package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTruncatesWhenPreserveFalse(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	err := os.WriteFile(logPath, []byte("old content\n"), 0644)
	require.NoError(t, err)

	l, err := New(LevelInfo, logPath, false)
	require.NoError(t, err)
	l.Info("fresh start")
	require.NoError(t, l.Close())

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "old content")
	assert.Contains(t, string(content), "fresh start")
}

func TestNewAppendsWhenPreserveTrue(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	err := os.WriteFile(logPath, []byte("previous session\n"), 0644)
	require.NoError(t, err)

	l, err := New(LevelInfo, logPath, true)
	require.NoError(t, err)
	l.Info("new session")
	require.NoError(t, l.Close())

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "previous session")
	assert.Contains(t, string(content), "new session")
}

func TestLevelFiltering(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	l, err := New(LevelWarn, logPath, false)
	require.NoError(t, err)
	l.Debug("debug message")
	l.Info("info message")
	l.Warn("warn message")
	require.NoError(t, l.Close())

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "debug message")
	assert.NotContains(t, string(content), "info message")
	assert.Contains(t, string(content), "warn message")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"fatal", LevelFatal},
		{"bogus", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, parseLevel(tt.input), "input: %q", tt.input)
	}
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "INFO", LevelInfo.String())
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "FATAL", LevelFatal.String())
	assert.Equal(t, "UNKNOWN", LogLevel(99).String())
}

func TestPackageLevelFunctionsNilSafe(t *testing.T) {
	saved := defaultLogger
	defaultLogger = nil
	defer func() { defaultLogger = saved }()

	// Must not panic when Init was never called
	Debug("no-op")
	Info("no-op")
	Warn("no-op")
	Error("no-op")
	assert.NoError(t, Close())
}
