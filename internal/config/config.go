// Package config loads the user's settings from the YAML file at
// ~/.tally/config.yaml. A missing file yields the defaults; a malformed
// file is an error so a typo does not silently fall back.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// DBPath is the local SQLite store location.
	DBPath string `yaml:"db_path"`

	// RemoteURL, when set, switches storage to the hosted HTTP store.
	RemoteURL string `yaml:"remote_url"`

	// EmployeeID is attached to entries logged from this machine.
	EmployeeID string `yaml:"employee_id"`

	// Color forces terminal color on or off; empty means auto-detect.
	Color string `yaml:"color,omitempty"`
}

// Default returns the configuration used when no config file exists.
func Default() Config {
	return Config{
		DBPath: filepath.Join(configDir(), "tally.db"),
	}
}

// DefaultPath is the config file location Load falls back to.
func DefaultPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// Load reads the config file at path, applying values on top of the
// defaults. A nonexistent file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg.overlay(parsed), nil
}

func (base Config) overlay(over Config) Config {
	result := base
	if over.DBPath != "" {
		result.DBPath = over.DBPath
	}
	if over.RemoteURL != "" {
		result.RemoteURL = over.RemoteURL
	}
	if over.EmployeeID != "" {
		result.EmployeeID = over.EmployeeID
	}
	if over.Color != "" {
		result.Color = over.Color
	}
	return result
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".tally")
}
