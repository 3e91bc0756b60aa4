package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CVLENS_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("CVLENS_SERVER_URL", "")
	t.Setenv("CVLENS_TIMEOUT", "")
	t.Setenv("CVLENS_HISTORY_FILE", "")
	t.Setenv("CVLENS_LOG_FILE", "")
	t.Setenv("CVLENS_LOG_LEVEL", "")

	cfg := Load()
	assert.Equal(t, "http://localhost:8000", cfg.ServerURL)
	assert.Equal(t, 2*time.Minute, cfg.RequestTimeout)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.NotEmpty(t, cfg.LogFile)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "config.yaml")
	content := "server_url: http://file:9999\nrequest_timeout: 30s\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(cfgFile, []byte(content), 0644))

	t.Setenv("CVLENS_CONFIG", cfgFile)
	t.Setenv("CVLENS_SERVER_URL", "http://env:1234")
	t.Setenv("CVLENS_TIMEOUT", "")
	t.Setenv("CVLENS_LOG_LEVEL", "")

	cfg := Load()
	assert.Equal(t, "http://env:1234", cfg.ServerURL, "env wins over file")
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout, "file wins over default")
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoadMalformedFileIgnored(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("{not yaml: ["), 0644))

	t.Setenv("CVLENS_CONFIG", cfgFile)
	t.Setenv("CVLENS_SERVER_URL", "")

	cfg := Load()
	assert.Equal(t, "http://localhost:8000", cfg.ServerURL)
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, time.Minute, parseDuration("", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("garbage", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("-5s", time.Minute))
	assert.Equal(t, 10*time.Second, parseDuration("10s", time.Minute))
}
