// AI review commands for the schemaboard CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/schemaboard/internal/workflow"
)

var (
	reviewer        string
	reviewNotes     string
	pageContent     string
	pageContentFile string
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "AI reviewer actions",
}

var reviewAnalyzeCmd = &cobra.Command{
	Use:   "analyze <id>",
	Short: "Score a schema against its page content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content := pageContent
		if pageContentFile != "" {
			data, err := os.ReadFile(pageContentFile)
			if err != nil {
				return fmt.Errorf("reading page content: %w", err)
			}
			content = string(data)
		}
		return withService(func(svc *workflow.Service) error {
			analysis, err := svc.Analyze(args[0], content, reviewer)
			if err != nil {
				return err
			}
			return printJSON(cmd, analysis)
		})
	},
}

var reviewApproveCmd = newAIDecisionCmd("approve", "Mark a schema AI-approved", true)

var reviewRejectCmd = newAIDecisionCmd("reject", "Mark a schema AI-rejected", false)

func newAIDecisionCmd(use, short string, approve bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(func(svc *workflow.Service) error {
				rec, err := svc.AIReview(args[0], reviewer, approve, reviewNotes)
				if err != nil {
					return err
				}
				return printJSON(cmd, rec)
			})
		},
	}
}

var reviewCorrectCmd = &cobra.Command{
	Use:   "correct <id> <file>",
	Short: "Replace a schema with a corrected document",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := readDocument(args[1], cmd.InOrStdin())
		if err != nil {
			return err
		}
		return withService(func(svc *workflow.Service) error {
			rec, err := svc.AICorrect(args[0], reviewer, doc, reviewNotes)
			if err != nil {
				return err
			}
			return printJSON(cmd, rec)
		})
	},
}

var reviewLogCmd = &cobra.Command{
	Use:   "log <id>",
	Short: "Print the reviewer log of a schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *workflow.Service) error {
			if _, err := svc.Get(args[0]); err != nil {
				return err
			}
			entries, err := svc.Reviews(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, entries)
		})
	},
}

func init() {
	reviewCmd.PersistentFlags().StringVar(&reviewer, "reviewer", "", "reviewer id")
	reviewCmd.PersistentFlags().StringVar(&reviewNotes, "notes", "", "reviewer notes")
	reviewAnalyzeCmd.Flags().StringVar(&pageContent, "page-content", "", "page text to compare against")
	reviewAnalyzeCmd.Flags().StringVar(&pageContentFile, "page-file", "", "read page text from a file")

	reviewCmd.AddCommand(reviewAnalyzeCmd, reviewApproveCmd, reviewRejectCmd, reviewCorrectCmd, reviewLogCmd)
}
