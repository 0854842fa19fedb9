// History command for the schemaboard CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/schemaboard/internal/workflow"
)

var historyCmd = &cobra.Command{
	Use:   "history <id>",
	Short: "Print the saved versions of a schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *workflow.Service) error {
			entries, err := svc.History(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, entries)
		})
	},
}
