// Package config handles configuration loading and defaults.
//
// Values are resolved in priority order: built-in defaults, then the user
// config file (~/.tudu/tudu.toml), then TUDU_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// ConfigFileName is the user config file, looked up under the data dir.
const ConfigFileName = "tudu.toml"

// Default values.
const (
	DefaultTheme     = "classic"
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// Config holds the full configuration for tudu.
type Config struct {
	// DataDir holds the todo document and the config file.
	DataDir string `toml:"data_dir" env:"TUDU_DATA_DIR"`

	// Theme selects the UI palette: classic or mono.
	Theme string `toml:"theme" env:"TUDU_THEME"`

	// Logging configuration
	LogLevel  string `toml:"log_level" env:"TUDU_LOG_LEVEL"`
	LogFormat string `toml:"log_format" env:"TUDU_LOG_FORMAT"`
}

// Load resolves the configuration from defaults, the user config file and
// the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	// TUDU_DATA_DIR also decides where the config file lives, so it has to
	// be honored before the file lookup, not just in the env pass below.
	if dir := os.Getenv("TUDU_DATA_DIR"); dir != "" {
		cfg.DataDir = dir
	}

	if path := findConfigFile(cfg.DataDir); path != "" {
		if err := loadConfigFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.DataDir = defaultDataDir()
	cfg.Theme = DefaultTheme
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
}

// defaultDataDir is ~/.tudu, falling back to the working directory when the
// home directory cannot be resolved.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".tudu")
}

func findConfigFile(dataDir string) string {
	path := filepath.Join(dataDir, ConfigFileName)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

func loadConfigFile(cfg *Config, path string) error {
	_, err := toml.DecodeFile(path, cfg)
	return err
}

func validate(cfg *Config) error {
	switch cfg.Theme {
	case "classic", "mono":
	default:
		return fmt.Errorf("unknown theme %q (expected classic or mono)", cfg.Theme)
	}
	if cfg.DataDir == "" {
		return errors.New("data_dir must not be empty")
	}
	return nil
}
