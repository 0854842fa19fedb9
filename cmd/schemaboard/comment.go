// Comment commands for the schemaboard CLI.
package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/schemaboard/internal/workflow"
)

var commentUser string

var commentCmd = &cobra.Command{
	Use:   "comment <id> <text>...",
	Short: "Add a comment to the discussion thread of a schema",
	Long: `Comment appends a message to the thread of a schema. Remaining arguments are
joined with spaces. The schema itself and its version are unchanged.

Example:
  schemaboard comment 0192f3 "Phone number is outdated" --user ann`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args[1:], " ")
		return withService(func(svc *workflow.Service) error {
			c, err := svc.AddComment(args[0], commentUser, text)
			if err != nil {
				return err
			}
			return printJSON(cmd, c)
		})
	},
}

var commentsCmd = &cobra.Command{
	Use:   "comments <id>",
	Short: "Print the discussion thread of a schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *workflow.Service) error {
			thread, err := svc.Comments(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, thread)
		})
	},
}

func init() {
	commentCmd.Flags().StringVar(&commentUser, "user", "", "who wrote the comment")
}
