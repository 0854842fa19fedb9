// Init command for the schemaboard CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/schemaboard/internal/paths"
	"github.com/mesh-intelligence/schemaboard/internal/workflow"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the config file and the data directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := paths.ResolveConfigDir(flagConfigDir)
		if err != nil {
			return systemError("resolving config dir: %w", err)
		}
		dataDir, err := resolveDataDir()
		if err != nil {
			return systemError("resolving data dir: %w", err)
		}
		// Attaching creates the data directory and the empty JSONL files.
		if err := withService(func(*workflow.Service) error { return nil }); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "schemaboard initialized")
		fmt.Fprintln(out, "  config:", paths.ConfigFile(configDir))
		fmt.Fprintln(out, "  data:  ", dataDir)
		return nil
	},
}
