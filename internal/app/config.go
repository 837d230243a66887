package app

import (
	"fmt"
	"strings"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// Paths are configuration files or directories to validate.
	Paths []string

	LogFormat string
	LogLevel  string

	// LogPath replaces the default log_path used when a model's settings
	// do not set one. Empty means <cwd>/logs.
	LogPath string
	// HistoryDB is the SQLite history file. Empty disables history.
	HistoryDB string
	// Solvers overrides solver detection on PATH when non-empty.
	Solvers []string
}

// NewConfig validates cfg and returns a normalized copy.
func NewConfig(cfg Config) (*Config, error) {
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", cfg.LogFormat)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}

	var solvers []string
	for _, s := range cfg.Solvers {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				solvers = append(solvers, part)
			}
		}
	}
	cfg.Solvers = solvers

	return &cfg, nil
}
