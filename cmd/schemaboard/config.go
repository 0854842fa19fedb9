// Config loading for the schemaboard CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/schemaboard/internal/paths"
	"github.com/mesh-intelligence/schemaboard/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	cfgKeyBackend        = "backend"
	cfgKeyDataDir        = "data_dir"
	cfgKeySyncStrategy   = "sync_strategy"
	cfgKeyListenAddr     = "listen_addr"
	cfgKeyLogLevel       = "log_level"
	cfgKeyAllowedOrigins = "allowed_origins"

	defaultListenAddr = ":8080"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# schemaboard configuration

backend: sqlite

# Data directory (optional; overridable by --data-dir)
# data_dir:

# immediate or on_close
sync_strategy: immediate

listen_addr: ":8080"
log_level: info

# allowed_origins:
#   - http://localhost:3000
`

// loadConfig reads config.yaml from configDir, creating the directory and a
// default file on first run. A missing file is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeySyncStrategy, types.SyncImmediate)
	v.SetDefault(cfgKeyListenAddr, defaultListenAddr)
	v.SetDefault(cfgKeyLogLevel, "info")
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return v, nil
}

func ensureDefaultConfigFile(configDir string) error {
	path := paths.ConfigFile(configDir)
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

// storeConfig builds the backend config from the loaded settings.
func storeConfig(v *viper.Viper, dataDir string) types.Config {
	return types.Config{
		Backend:      v.GetString(cfgKeyBackend),
		DataDir:      dataDir,
		SyncStrategy: v.GetString(cfgKeySyncStrategy),
	}
}
