// Package config loads CVLens configuration and sets up logging.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration values.
type Config struct {
	// Backend parsing service
	ServerURL      string
	RequestTimeout time.Duration

	// Local history snapshot; empty disables persistence
	HistoryFile string

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// fileConfig mirrors the optional YAML config file. Every field is
// overridable by environment variables.
type fileConfig struct {
	ServerURL      string `yaml:"server_url"`
	RequestTimeout string `yaml:"request_timeout"`
	HistoryFile    string `yaml:"history_file"`
	LogFile        string `yaml:"log_file"`
	LogLevel       string `yaml:"log_level"`
}

// Load reads configuration with precedence: env > config file > defaults.
// A .env file in the working directory is loaded first if present.
func Load() Config {
	// Best effort; missing .env is the normal case.
	_ = godotenv.Load()

	fc := loadFile(configFilePath())

	return Config{
		ServerURL:      firstNonEmpty(os.Getenv("CVLENS_SERVER_URL"), fc.ServerURL, "http://localhost:8000"),
		RequestTimeout: parseDuration(firstNonEmpty(os.Getenv("CVLENS_TIMEOUT"), fc.RequestTimeout), 2*time.Minute),
		HistoryFile:    firstNonEmpty(os.Getenv("CVLENS_HISTORY_FILE"), fc.HistoryFile, defaultHistoryFile()),
		LogFile:        firstNonEmpty(os.Getenv("CVLENS_LOG_FILE"), fc.LogFile, filepath.Join(os.TempDir(), "cvlens.log")),
		LogLevel:       ParseLogLevel(firstNonEmpty(os.Getenv("CVLENS_LOG_LEVEL"), fc.LogLevel, "INFO")),
	}
}

// configFilePath returns the YAML config location, overridable for tests
// via CVLENS_CONFIG.
func configFilePath() string {
	if p := os.Getenv("CVLENS_CONFIG"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "cvlens", "config.yaml")
}

// loadFile parses the YAML config file. Missing or unreadable files
// yield zero values; the config file is always optional.
func loadFile(path string) fileConfig {
	var fc fileConfig
	if path == "" {
		return fc
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fc
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		slog.Warn("ignoring malformed config file", "path", path, "error", err)
		return fileConfig{}
	}
	return fc
}

func defaultHistoryFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "cvlens", "history.json")
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func parseDuration(s string, defaultVal time.Duration) time.Duration {
	if s == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}

// ParseLogLevel maps a level name to a slog.Level, defaulting to info.
func ParseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
