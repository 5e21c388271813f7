package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the optional YAML config file. Flags override file values.
type Config struct {
	// Database is the SQLite database path.
	Database string `yaml:"database"`
	// Guild is the default guild id for all commands.
	Guild string `yaml:"guild"`
	// Actor is the default author/member id for write commands.
	Actor string `yaml:"actor"`
}

// defaultConfigPath returns ~/.config/pagekeep/config.yaml, or "" when
// the home directory cannot be determined.
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "pagekeep", "config.yaml")
}

// loadConfig reads the config file at path. A missing file at the
// default location is not an error; a missing file named explicitly is.
func loadConfig(path string, explicit bool) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
