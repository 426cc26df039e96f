package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/soft-orgs/pkg/config"
	"github.com/charmbracelet/soft-orgs/pkg/db"
	"github.com/charmbracelet/soft-orgs/pkg/db/migrate"
	"github.com/charmbracelet/soft-orgs/pkg/provider"
	"github.com/charmbracelet/soft-orgs/pkg/store"
	"github.com/charmbracelet/soft-orgs/pkg/store/database"
	"github.com/spf13/cobra"
)

// InitBackendContext opens and migrates the database, then attaches the
// database, the store and the configured dataset provider to the command
// context. The context must carry a config.
func InitBackendContext(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	if cfg == nil {
		return config.ErrNilConfig
	}
	if _, err := os.Stat(cfg.DataPath); errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(cfg.DataPath, os.ModePerm); err != nil {
			return fmt.Errorf("create data directory: %w", err)
		}
	}
	dbx, err := db.Open(ctx, cfg.DB.Driver, cfg.DB.DataSource)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := migrate.Migrate(ctx, dbx); err != nil {
		dbx.Close() // nolint: errcheck
		return fmt.Errorf("migration error: %w", err)
	}

	ctx = db.WithContext(ctx, dbx)
	ctx = store.WithContext(ctx, database.New(ctx))

	ds, err := provider.New(ctx)
	if err != nil {
		dbx.Close() // nolint: errcheck
		return fmt.Errorf("dataset: %w", err)
	}
	ctx = provider.WithContext(ctx, ds)

	cmd.SetContext(ctx)

	return nil
}

// CloseDBContext closes the database context.
func CloseDBContext(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	dbx := db.FromContext(ctx)
	if dbx != nil {
		if err := dbx.Close(); err != nil {
			return fmt.Errorf("close database: %w", err)
		}
	}

	return nil
}

// WithBackend makes c run with the backend context.
func WithBackend(c *cobra.Command) *cobra.Command {
	c.PersistentPreRunE = InitBackendContext
	c.PersistentPostRunE = CloseDBContext
	return c
}
