package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/soft-orgs/pkg/columns"
	"github.com/charmbracelet/soft-orgs/pkg/proto"
	"github.com/charmbracelet/soft-orgs/pkg/virtual"
	"github.com/spf13/cobra"
)

// UsersCommand returns a command that lists the users of an organization.
func UsersCommand() *cobra.Command {
	var (
		q      string
		sort   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "users ORG_ID",
		Short: "List the users of an organization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid organization id %q: %w", args[0], err)
			}

			cols := columns.Users()
			s, err := virtual.ParseSort(cols, sort)
			if err != nil {
				return err
			}

			orgs, err := organizations(cmd)
			if err != nil {
				return err
			}

			org, err := proto.FindOrganization(orgs, id)
			if err != nil {
				return err //nolint:wrapcheck
			}

			users := query(org.Users, cols, q, s)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(users) //nolint:wrapcheck
			}

			cmd.Printf("%s (%s, %s plan)\n", org.CompanyName, columns.ID(org.ID), org.Plan)
			if len(users) == 0 {
				cmd.Println("No users found")
				return nil
			}

			lastLogin, _ := cols.Get(columns.LastLoginKey)
			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("ID", "Name", "Email", "Role", "Status", "Last Login")
			for _, u := range users {
				t = t.Row(
					strconv.FormatInt(u.ID, 10),
					u.FullName(),
					u.Email,
					u.Role.String(),
					u.Status.String(),
					lastLogin.Text(u),
				)
			}
			cmd.Println(t.Render())
			return nil
		},
	}

	cmd.Flags().StringVarP(&q, "query", "q", "", "Only list users matching the query")
	cmd.Flags().StringVarP(&sort, "sort", "s", "", "Sort by column, prefix with - for descending order")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")

	return cmd
}
