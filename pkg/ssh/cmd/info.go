package cmd

import (
	"github.com/charmbracelet/soft-orgs/pkg/config"
	"github.com/charmbracelet/soft-orgs/pkg/proto"
	"github.com/charmbracelet/soft-orgs/pkg/provider"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// InfoCommand returns a command that summarizes the dataset.
func InfoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show dataset info",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			orgs, err := organizations(cmd)
			if err != nil {
				return err
			}

			if cfg := config.FromContext(cmd.Context()); cfg != nil {
				cmd.Printf("Name: %s\n", cfg.Name)
			}
			if s, ok := provider.FromContext(cmd.Context()).(interface{ Source() string }); ok {
				cmd.Printf("Source: %s\n", s.Source())
			}

			var users int
			plans := make(map[proto.Plan]int, len(proto.Plans))
			for _, o := range orgs {
				users += o.NumUsers()
				plans[o.Plan]++
			}

			cmd.Printf("Organizations: %s\n", humanize.Comma(int64(len(orgs))))
			cmd.Printf("Users: %s\n", humanize.Comma(int64(users)))
			cmd.Printf("Plans:\n")
			for _, p := range proto.Plans {
				cmd.Printf("  %s: %s\n", p, humanize.Comma(int64(plans[p])))
			}
			return nil
		},
	}

	return cmd
}
