// Package config loads and saves the user configuration file,
// a TOML document under the platform config directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const defaultTickMillis = 50

type Config struct {
	// EnableLogger routes the log package to mino.log instead of
	// discarding it.
	EnableLogger bool `toml:"enable_logger"`

	// TickMillis is the key-poll interval; it bounds how stale the
	// status-bar clock can get while no keys arrive.
	TickMillis int `toml:"tick_ms"`

	// AltScreen restores the caller's terminal content on exit.
	AltScreen bool `toml:"alt_screen"`
}

func DefaultConfig() Config {
	return Config{
		EnableLogger: false,
		TickMillis:   defaultTickMillis,
		AltScreen:    true,
	}
}

func configPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config dir: %w", err)
	}
	return filepath.Join(dir, "mino", "config.toml"), nil
}

// LoadConfig reads the user config file. A missing or malformed file
// falls back to defaults; the editor never refuses to start over its
// configuration.
func LoadConfig() Config {
	path, err := configPath()
	if err != nil {
		return DefaultConfig()
	}
	cfg, err := loadFrom(path)
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

func loadFrom(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return DefaultConfig(), err
	}
	if cfg.TickMillis <= 0 {
		cfg.TickMillis = defaultTickMillis
	}
	return cfg, nil
}

// SaveConfig writes cfg to the user config path, creating the
// directory if needed.
func SaveConfig(cfg Config) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}
