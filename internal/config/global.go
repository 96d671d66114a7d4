package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// UserConfigDir is the directory name under XDG_CONFIG_HOME.
	UserConfigDir = "citectx"
	// UserConfigFile is the config file name.
	UserConfigFile = "config.yml"
)

// userConfigCache caches the loaded user config.
var userConfigCache *Config

// UserConfigPath returns the path to the user config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/citectx/config.yml.
func UserConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, UserConfigDir, UserConfigFile)
}

// LoadUserConfig loads the user configuration file.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadUserConfig() (*Config, error) {
	if userConfigCache != nil {
		return userConfigCache, nil
	}

	path := UserConfigPath()
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading user config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing user config: %w", err)
	}

	// Paths in the user config are not relative to any project
	cfg.BibTeX = ExpandPath(cfg.BibTeX)
	cfg.MetricsFile = ExpandPath(cfg.MetricsFile)

	userConfigCache = &cfg
	return &cfg, nil
}

// ResetUserConfigCache clears the cached user config.
// Useful for testing.
func ResetUserConfigCache() {
	userConfigCache = nil
}

// HelpfulConfigMessage returns a helpful message when no project is found.
func HelpfulConfigMessage() string {
	return fmt.Sprintf(`No citectx project found.

Tip: create %s in your project directory:
  data_dir: data/raw
  output: data/interim/CITATION.csv

or run 'citectx config init'. User defaults go in %s.`,
		ProjectFile,
		UserConfigPath())
}
