// Edit command for the schemaboard CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/schemaboard/internal/workflow"
	"github.com/mesh-intelligence/schemaboard/pkg/types"
)

var (
	editFeedback    string
	editStatus      string
	editActor       string
	editBaseVersion int64
)

var editCmd = &cobra.Command{
	Use:   "edit <id> <field=value>...",
	Short: "Edit field values and save a new version",
	Long: `Edit applies field edits to the stored document and saves the next version.

Values starting with [ or { are parsed as JSON. List fields also accept
comma-separated text.

Example:
  schemaboard edit 0190... name="Acme Ltd" areaServed="US, UK"
  schemaboard edit 0190... telephone=+1-555-0100 --status needs_revision --feedback "check hours"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		buf, err := parseAssignments(args[1:])
		if err != nil {
			return err
		}
		return withService(func(svc *workflow.Service) error {
			res, err := svc.Save(args[0], workflow.SaveRequest{
				Buffer: buf,
				Approval: types.Approval{
					Status:   types.Status(editStatus),
					Feedback: editFeedback,
					Actor:    editActor,
				},
				BaseVersion: editBaseVersion,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		})
	},
}

func init() {
	editCmd.Flags().StringVar(&editFeedback, "feedback", "", "feedback stored with the save")
	editCmd.Flags().StringVar(&editStatus, "status", "", "approval status: pending, approved, rejected, needs_revision")
	editCmd.Flags().StringVar(&editActor, "actor", "", "who made the edit")
	editCmd.Flags().Int64Var(&editBaseVersion, "base-version", 0, "fail unless the stored version matches")
}
