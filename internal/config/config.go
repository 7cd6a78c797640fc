package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/pnkjpro/oathly/internal/storage"
)

// Config holds the few knobs Oathly has. Resolution order for each value:
// environment variable, then the yaml config file, then the default.
type Config struct {
	DBPath string `yaml:"db_path"`
}

// DefaultConfigPath returns ~/.config/oathly/config.yaml.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, ".config", "oathly", "config.yaml"), nil
}

// Load reads the config file at path (missing file is fine) and applies
// environment overrides. An empty path means the default location.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// No config file; defaults apply.
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if v, ok := os.LookupEnv("OATHLY_DB"); ok && v != "" {
		cfg.DBPath = v
	}
	if cfg.DBPath == "" {
		p, err := storage.DefaultDBPath()
		if err != nil {
			return nil, err
		}
		cfg.DBPath = p
	}
	return &cfg, nil
}
