// Show and fields commands for the schemaboard CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/schemaboard/internal/workflow"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a stored schema record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *workflow.Service) error {
			rec, err := svc.Get(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, rec)
		})
	},
}

var fieldsYAML bool

var fieldsCmd = &cobra.Command{
	Use:   "fields <id>",
	Short: "Print the editable fields of a schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *workflow.Service) error {
			sess, err := svc.Open(args[0])
			if err != nil {
				return err
			}
			if !fieldsYAML {
				return printJSON(cmd, sess.Fields)
			}
			out, err := yaml.Marshal(yamlFriendly(sess.Fields))
			if err != nil {
				return fmt.Errorf("encoding output: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		})
	},
}

func init() {
	fieldsCmd.Flags().BoolVar(&fieldsYAML, "yaml", false, "print as YAML")
}
