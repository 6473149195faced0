package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultConfigName is the config file loglady looks for in the working
// directory before falling back to the user config dir.
const DefaultConfigName = "loglady.yaml"

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/loglady/loglady.yaml
// - macOS: ~/Library/Application Support/loglady/loglady.yaml
// - Windows: %APPDATA%\loglady\loglady.yaml
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "loglady", DefaultConfigName), nil
}

// UserConfigDir returns the path to the user-level config directory.
func UserConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "loglady"), nil
}

// ResolveConfigPath locates the config file to load. An explicitly given
// path must exist; otherwise the working directory is checked first, then
// the user config dir. An empty result with nil error means no config file:
// defaults and the environment still apply.
func ResolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		if !fileExists(explicit) {
			return "", fmt.Errorf("config file not found: %s: %w", explicit, fs.ErrNotExist)
		}
		return explicit, nil
	}

	if fileExists(DefaultConfigName) {
		return DefaultConfigName, nil
	}

	if userPath, err := UserConfigPath(); err == nil && fileExists(userPath) {
		return userPath, nil
	}

	return "", nil
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
