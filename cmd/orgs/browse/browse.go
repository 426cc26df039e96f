package browse

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/soft-orgs/cmd"
	"github.com/charmbracelet/soft-orgs/pkg/config"
	"github.com/charmbracelet/soft-orgs/pkg/provider"
	"github.com/charmbracelet/soft-orgs/pkg/ui"
	"github.com/charmbracelet/soft-orgs/pkg/ui/common"
	"github.com/spf13/cobra"
)

// Command is the browse command.
var Command = &cobra.Command{
	Use:                "browse",
	Short:              "Browse organizations",
	Args:               cobra.NoArgs,
	PersistentPreRunE:  cmd.InitBackendContext,
	PersistentPostRunE: cmd.CloseDBContext,
	RunE: func(c *cobra.Command, _ []string) error {
		ctx := c.Context()
		cfg := config.FromContext(ctx)

		// Logs would draw over the dashboard.
		logger := log.FromContext(ctx).WithPrefix("browse")
		if cfg.Log.Path == "" {
			logPath := filepath.Join(cfg.DataPath, "log", "browse.log")
			if err := os.MkdirAll(filepath.Dir(logPath), os.ModePerm); err != nil {
				return fmt.Errorf("create log directory: %w", err)
			}
			f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec
			if err != nil {
				return err
			}
			defer f.Close() // nolint:errcheck
			logger.SetOutput(f)
		}
		ctx = log.WithContext(ctx, logger)

		// Bubble Tea uses Termenv default output so we have to use the same
		// thing here.
		com := common.NewCommon(ctx, lipgloss.DefaultRenderer(), 0, 0)
		m := ui.New(com, provider.FromContext(ctx))
		defer m.Close()

		p := tea.NewProgram(m,
			tea.WithAltScreen(),
			tea.WithMouseCellMotion(),
			tea.WithContext(ctx),
		)

		_, err := p.Run()
		return err
	},
}
