// Import command for the schemaboard CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/schemaboard/internal/workflow"
)

var importActor string

var importCmd = &cobra.Command{
	Use:   "import <client-id> <page-url> <file>",
	Short: "Store a JSON-LD document for a client page",
	Long: `Import reads a JSON-LD document (JSON or YAML, "-" for stdin), derives its
editable fields and stores it pending review.

Example:
  schemaboard import acme https://acme.test/about about.jsonld
  cat faq.json | schemaboard import acme https://acme.test/faq -`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := readDocument(args[2], cmd.InOrStdin())
		if err != nil {
			return err
		}
		return withService(func(svc *workflow.Service) error {
			rec, err := svc.Import(workflow.ImportRequest{
				ClientID: args[0],
				PageURL:  args[1],
				Document: doc,
				Actor:    importActor,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, rec)
		})
	},
}

func init() {
	importCmd.Flags().StringVar(&importActor, "actor", "", "who imported the document")
}
