// Package paths resolves where schemaboard keeps its configuration and its
// JSONL data files.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "schemaboard"

// DefaultDataDirName is the data directory created under the working
// directory when nothing else is configured.
const DefaultDataDirName = ".schemaboard-db"

// ConfigFileName is the config file read from the config directory.
const ConfigFileName = "config.yaml"

// Environment overrides.
const (
	EnvConfigDir = "SCHEMABOARD_CONFIG_DIR"
	EnvDataDir   = "SCHEMABOARD_DATA_DIR"
)

// Overridden in tests.
var (
	homeDir       = os.UserHomeDir
	userConfigDir = os.UserConfigDir
	getwd         = os.Getwd
)

// DefaultConfigDir returns the per-user config directory: $XDG_CONFIG_HOME
// or ~/.config on Linux, os.UserConfigDir elsewhere.
func DefaultConfigDir() (string, error) {
	if runtime.GOOS != "linux" {
		dir, err := userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appName), nil
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// ResolveConfigDir applies flag > SCHEMABOARD_CONFIG_DIR > DefaultConfigDir.
func ResolveConfigDir(flag string) (string, error) {
	if dir := firstSet(flag, os.Getenv(EnvConfigDir)); dir != "" {
		return filepath.Abs(dir)
	}
	return DefaultConfigDir()
}

// ResolveDataDir applies flag > config data_dir > SCHEMABOARD_DATA_DIR >
// $(CWD)/.schemaboard-db.
func ResolveDataDir(flag, configured string) (string, error) {
	if dir := firstSet(flag, configured, os.Getenv(EnvDataDir)); dir != "" {
		return filepath.Abs(dir)
	}
	cwd, err := getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}

// ConfigFile returns the config file path inside dir.
func ConfigFile(dir string) string {
	return filepath.Join(dir, ConfigFileName)
}

func firstSet(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
