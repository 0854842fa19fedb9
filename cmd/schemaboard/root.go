// Root command for the schemaboard CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/schemaboard/internal/logging"
	"github.com/mesh-intelligence/schemaboard/internal/paths"
	"github.com/mesh-intelligence/schemaboard/internal/sqlite"
	"github.com/mesh-intelligence/schemaboard/internal/workflow"
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagLogLevel  string
)

// Loaded by PersistentPreRunE.
var (
	settings *viper.Viper
	logger   = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:           "schemaboard",
	Short:         "Review and edit JSON-LD structured data as form fields",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := paths.ResolveConfigDir(flagConfigDir)
		if err != nil {
			return systemError("resolving config dir: %w", err)
		}
		v, err := loadConfig(configDir)
		if err != nil {
			return &sysError{err: err}
		}
		if err := v.BindPFlag(cfgKeyLogLevel, cmd.Root().PersistentFlags().Lookup("log-level")); err != nil {
			return systemError("binding log level: %w", err)
		}
		l, err := logging.New(v.GetString(cfgKeyLogLevel))
		if err != nil {
			return fmt.Errorf("configuring logging: %w", err)
		}
		settings, logger = v, l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: per-user config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.schemaboard-db)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(fieldsCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(approveCmd)
	rootCmd.AddCommand(rejectCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(commentCmd)
	rootCmd.AddCommand(commentsCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(serveCmd)
}

// resolveDataDir applies --data-dir > config data_dir > env > default.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, settings.GetString(cfgKeyDataDir))
}

// openService attaches the backend and binds a workflow service to it. The
// returned function detaches the backend.
func openService() (*workflow.Service, func() error, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, nil, systemError("resolving data dir: %w", err)
	}
	backend := sqlite.NewBackend()
	if err := backend.Attach(storeConfig(settings, dataDir)); err != nil {
		return nil, nil, systemError("attaching backend: %w", err)
	}
	svc, err := workflow.New(backend, nil, logger)
	if err != nil {
		_ = backend.Detach()
		return nil, nil, systemError("starting workflow: %w", err)
	}
	logger.Debug("backend attached", zap.String("data_dir", dataDir))
	return svc, backend.Detach, nil
}

// withService runs fn against an attached service and detaches afterwards.
func withService(fn func(svc *workflow.Service) error) (err error) {
	svc, closeFn, err := openService()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeFn(); cerr != nil && err == nil {
			err = systemError("detaching backend: %w", cerr)
		}
	}()
	return fn(svc)
}

func printJSON(cmd *cobra.Command, v any) error {
	out, err := encodeIndent(v)
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
