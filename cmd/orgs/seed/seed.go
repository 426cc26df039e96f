package seed

import (
	"fmt"
	"time"

	"github.com/caarlos0/duration"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/soft-orgs/cmd"
	"github.com/charmbracelet/soft-orgs/pkg/config"
	"github.com/charmbracelet/soft-orgs/pkg/db"
	"github.com/charmbracelet/soft-orgs/pkg/provider"
	"github.com/charmbracelet/soft-orgs/pkg/store"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	organizations int
	users         int
	seed          int64
	window        string

	// Command is the seed command.
	Command = &cobra.Command{
		Use:                "seed",
		Short:              "Generate organizations into the database",
		Long:               "Seed replaces the organizations stored in the database with generated ones.",
		Args:               cobra.NoArgs,
		PersistentPreRunE:  cmd.InitBackendContext,
		PersistentPostRunE: cmd.CloseDBContext,
		RunE: func(c *cobra.Command, _ []string) error {
			ctx := c.Context()
			cfg := config.FromContext(ctx)
			logger := log.FromContext(ctx).WithPrefix("seed")

			g := provider.Generator{
				Count:    cfg.Dataset.Organizations,
				MaxUsers: cfg.Dataset.Users,
				Seed:     cfg.Dataset.Seed,
			}
			if c.Flags().Changed("organizations") {
				g.Count = organizations
			}
			if c.Flags().Changed("users") {
				g.MaxUsers = users
			}
			if c.Flags().Changed("seed") {
				g.Seed = seed
			}
			if g.Count < 0 || g.MaxUsers < 0 {
				return config.ErrInvalidDataset
			}
			if window != "" {
				d, err := duration.Parse(window)
				if err != nil {
					return fmt.Errorf("window: %w", err)
				}
				g.Window = d
			}

			start := time.Now()
			orgs, err := g.Organizations(ctx)
			if err != nil {
				return fmt.Errorf("generate: %w", err)
			}

			if err := provider.Save(ctx, db.FromContext(ctx), store.FromContext(ctx), orgs); err != nil {
				return fmt.Errorf("save: %w", err)
			}

			var n int
			for _, o := range orgs {
				n += o.NumUsers()
			}
			logger.Debug("seeded database", "took", time.Since(start))
			c.Printf("Seeded %s organizations and %s users\n",
				humanize.Comma(int64(len(orgs))), humanize.Comma(int64(n)))
			return nil
		},
	}
)

func init() {
	Command.Flags().IntVarP(&organizations, "organizations", "n", 0, "number of organizations (default from config)")
	Command.Flags().IntVarP(&users, "users", "u", 0, "maximum number of users per organization (default from config)")
	Command.Flags().Int64Var(&seed, "seed", 0, "random seed, 0 picks a random one (default from config)")
	Command.Flags().StringVar(&window, "window", "", "how far back generated dates go (e.g. 1y, 3mo, 2w)")
}
