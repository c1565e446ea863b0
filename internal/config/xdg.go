// Package config provides configuration loading, validation and XDG
// Base Directory compliance for keyhud.
package config

import (
	"os"
	"path/filepath"
)

const (
	appName = "keyhud"
	dirPerm = 0o755
)

// GetConfigDir returns the XDG config directory for keyhud:
// $XDG_CONFIG_HOME/keyhud (default: ~/.config/keyhud).
func GetConfigDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configHome = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configHome, appName), nil
}

// EnsureConfigDir creates the config directory if it doesn't exist.
func EnsureConfigDir() error {
	dir, err := GetConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, dirPerm)
}
