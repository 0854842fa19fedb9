// Approve and reject commands for the schemaboard CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/schemaboard/internal/workflow"
	"github.com/mesh-intelligence/schemaboard/pkg/types"
)

var (
	decisionFeedback string
	decisionActor    string
)

var approveCmd = newDecisionCmd("approve", "Approve a schema", types.StatusApproved)

var rejectCmd = newDecisionCmd("reject", "Reject a schema", types.StatusRejected)

func newDecisionCmd(use, short string, status types.Status) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(func(svc *workflow.Service) error {
				rec, err := svc.SetStatus(args[0], types.Approval{
					Status:   status,
					Feedback: decisionFeedback,
					Actor:    decisionActor,
				})
				if err != nil {
					return err
				}
				return printJSON(cmd, rec)
			})
		},
	}
	cmd.Flags().StringVar(&decisionFeedback, "feedback", "", "feedback for the decision")
	cmd.Flags().StringVar(&decisionActor, "actor", "", "who made the decision")
	return cmd
}
