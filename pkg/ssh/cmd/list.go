package cmd

import (
	"encoding/json"

	"github.com/caarlos0/tablewriter"
	"github.com/charmbracelet/soft-orgs/pkg/columns"
	"github.com/charmbracelet/soft-orgs/pkg/proto"
	"github.com/charmbracelet/soft-orgs/pkg/virtual"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// ListCommand returns a command that lists organizations.
func ListCommand() *cobra.Command {
	var (
		q      string
		sort   string
		limit  int
		asJSON bool
		asYAML bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List organizations",
		Example: "  list --query acme --sort -users",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cols := columns.Organizations()
			s, err := virtual.ParseSort(cols, sort)
			if err != nil {
				return err
			}

			orgs, err := organizations(cmd)
			if err != nil {
				return err
			}

			orgs = query(orgs, cols, q, s)
			if limit > 0 && len(orgs) > limit {
				orgs = orgs[:limit]
			}

			out := cmd.OutOrStdout()
			switch {
			case asJSON:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(orgs) //nolint:wrapcheck
			case asYAML:
				return yaml.NewEncoder(out).Encode(orgs) //nolint:wrapcheck
			}

			if len(orgs) == 0 {
				cmd.Println("No organizations found")
				return nil
			}

			return tablewriter.Render(
				out,
				orgs,
				[]string{"ID", "Company", "Admin", "Plan", "Users", "Invitations"},
				func(o proto.Organization) ([]string, error) {
					row := []string{columns.ID(o.ID)}
					for _, c := range cols {
						row = append(row, c.Text(o))
					}
					return row, nil
				},
			)
		},
	}

	cmd.Flags().StringVarP(&q, "query", "q", "", "Only list organizations matching the query")
	cmd.Flags().StringVarP(&sort, "sort", "s", "", "Sort by column, prefix with - for descending order")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of organizations to list")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Output as YAML")
	cmd.MarkFlagsMutuallyExclusive("json", "yaml")

	return cmd
}
