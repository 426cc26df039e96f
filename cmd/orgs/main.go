package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/soft-orgs/cmd"
	"github.com/charmbracelet/soft-orgs/cmd/orgs/browse"
	"github.com/charmbracelet/soft-orgs/cmd/orgs/seed"
	"github.com/charmbracelet/soft-orgs/cmd/orgs/serve"
	"github.com/charmbracelet/soft-orgs/pkg/config"
	logr "github.com/charmbracelet/soft-orgs/pkg/log"
	sshcmd "github.com/charmbracelet/soft-orgs/pkg/ssh/cmd"
	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"
)

var (
	// Version contains the application version number. It's set via ldflags
	// when building.
	Version = ""

	// CommitSHA contains the SHA of the commit that this application was built
	// against. It's set via ldflags when building.
	CommitSHA = ""

	configPath string

	logFile *os.File

	rootCmd = &cobra.Command{
		Use:               "orgs",
		Short:             "A dashboard of organizations for the command line",
		Long:              "Soft Orgs browses organizations and their users in the terminal, locally or over SSH.",
		SilenceUsage:      true,
		PersistentPreRunE: initConfig,
	}
)

func init() {
	// Run the config hook of the root command before the backend hooks of
	// subcommands.
	cobra.EnableTraverseRunHooks = true

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file")
	rootCmd.AddCommand(
		browse.Command,
		serve.Command,
		seed.Command,
		cmd.WithBackend(sshcmd.ListCommand()),
		cmd.WithBackend(sshcmd.UsersCommand()),
		cmd.WithBackend(sshcmd.InfoCommand()),
		manCmd,
	)

	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Sum != "" {
			Version = info.Main.Version
		} else {
			Version = "unknown (built from source)"
		}
	}
	rootCmd.Version = Version
}

// initConfig loads the config and sets up the logger of the command context.
func initConfig(c *cobra.Command, _ []string) error {
	ctx := c.Context()
	cfg := config.DefaultConfig()
	if configPath != "" {
		cfg.SetPath(configPath)
		if !cfg.Exist() {
			return fmt.Errorf("config file %q: %w", configPath, os.ErrNotExist)
		}
	}
	if err := cfg.Parse(); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	logger, f, err := logr.NewLogger(cfg)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	logFile = f

	// Set global logger
	log.SetDefault(logger)

	ctx = config.WithContext(ctx, cfg)
	ctx = log.WithContext(ctx, logger)
	c.SetContext(ctx)
	return nil
}

func main() {
	os.Exit(run())
}

func run() int {
	// Set the max number of processes to the number of CPUs
	// This is useful when running soft orgs in a container
	if _, err := maxprocs.Set(maxprocs.Logger(log.Debugf)); err != nil {
		log.Warn("couldn't set automaxprocs", "error", err)
	}

	rootCmd.SetOut(os.Stdout)
	err := rootCmd.ExecuteContext(context.Background())
	if logFile != nil {
		logFile.Close() // nolint: errcheck
	}
	if err != nil {
		return 1
	}
	return 0
}
