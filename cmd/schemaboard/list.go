// List command for the schemaboard CLI.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/schemaboard/internal/workflow"
)

var listCmd = &cobra.Command{
	Use:   "list [filter...]",
	Short: "List stored schemas",
	Long: `List prints the stored schemas matching every key=value filter.

Filter keys: client_id, page_url, schema_type, status, ai_status, limit, offset.

Example:
  schemaboard list
  schemaboard list client_id=acme status=pending`,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := parseFilter(args)
		if err != nil {
			return err
		}
		return withService(func(svc *workflow.Service) error {
			recs, err := svc.List(filter)
			if err != nil {
				return err
			}
			return printJSON(cmd, recs)
		})
	},
}

func parseFilter(args []string) (map[string]any, error) {
	filter := make(map[string]any, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid filter %q (expected key=value)", arg)
		}
		if key == "limit" || key == "offset" {
			n, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("invalid %s %q", key, value)
			}
			filter[key] = n
			continue
		}
		filter[key] = value
	}
	return filter, nil
}
