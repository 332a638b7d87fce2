package debuglog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LevelOff, "OFF"},
		{LogLevel(42), "UNKNOWN"},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, test.level.String())
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"DEBUG", LevelDebug},
		{"debug", LevelDebug},
		{" info ", LevelInfo},
		{"WARN", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"off", LevelOff},
		{"none", LevelOff},
		{"INVALID", LevelInfo},
		{"", LevelInfo},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, ParseLogLevel(test.input), "ParseLogLevel(%q)", test.input)
	}
}

func TestSetupWithLevel(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "nested", "test.log")

	require.NoError(t, Setup(LevelInfo, logPath))
	assert.Equal(t, LevelInfo, GetLevel())

	Debugf("debug message")
	Infof("info message")
	Warnf("warn message")
	Errorf("error message")

	require.NoError(t, Close())

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)

	logContent := string(content)
	assert.NotContains(t, logContent, "debug message")
	assert.Contains(t, logContent, "[INFO] info message")
	assert.Contains(t, logContent, "[WARN] warn message")
	assert.Contains(t, logContent, "[ERROR] error message")
	assert.True(t, strings.HasPrefix(logContent, "hnstories "))
}

func TestSetupWithLevelOff(t *testing.T) {
	require.NoError(t, Setup(LevelOff))
	assert.Equal(t, LevelOff, GetLevel())

	// Must not panic without a logger
	Debugf("debug message")
	Errorf("error message")
	WithFields(map[string]interface{}{"k": "v"}).Errorf("field message")
}

func TestFieldLogger(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(LevelDebug, &buf)
	defer SetOutput(LevelOff, nil)

	WithFields(map[string]interface{}{
		"component": "test",
		"action":    "testing",
		"count":     42,
	}).Infof("test message with fields")

	assert.Contains(t, buf.String(), "test message with fields [action=testing component=test count=42]")
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(LevelDebug, &buf)
	defer SetOutput(LevelOff, nil)

	SetLevel(LevelError)
	assert.Equal(t, LevelError, GetLevel())

	Warnf("filtered")
	Errorf("kept")

	assert.NotContains(t, buf.String(), "filtered")
	assert.Contains(t, buf.String(), "kept")
}
