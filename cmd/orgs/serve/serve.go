package serve

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/soft-orgs/cmd"
	"github.com/charmbracelet/soft-orgs/pkg/config"
	"github.com/spf13/cobra"
)

var (
	warm bool

	// Command is the serve command.
	Command = &cobra.Command{
		Use:                "serve",
		Short:              "Start the server",
		Args:               cobra.NoArgs,
		PersistentPreRunE:  cmd.InitBackendContext,
		PersistentPostRunE: cmd.CloseDBContext,
		RunE: func(c *cobra.Command, _ []string) error {
			ctx := c.Context()
			cfg := config.FromContext(ctx)
			logger := log.FromContext(ctx)
			if !cfg.Exist() {
				if err := cfg.WriteConfig(); err != nil {
					return fmt.Errorf("write config file: %w", err)
				}
			}

			s, err := NewServer(ctx)
			if err != nil {
				return fmt.Errorf("start server: %w", err)
			}

			if warm {
				if err := s.Dataset.Refresh(ctx); err != nil {
					return fmt.Errorf("load dataset: %w", err)
				}
			}

			lch := make(chan error, 1)
			done := make(chan os.Signal, 1)
			doneOnce := sync.OnceFunc(func() {
				signal.Stop(done)
				close(done)
			})

			signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

			// This endpoint is added for testing purposes
			// It allows us to stop the server from the test suite.
			// This is needed since Windows doesn't support signals.
			if testRun, _ := strconv.ParseBool(os.Getenv("SOFT_ORGS_TESTRUN")); testRun {
				h := s.StatsServer.Handler()
				s.StatsServer.SetHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					if r.URL.Path == "/__stop" && r.Method == http.MethodHead {
						doneOnce()
						return
					}
					h.ServeHTTP(w, r)
				}))
			}

			go func() {
				lch <- s.Start()
				doneOnce()
			}()

			select {
			case err := <-lch:
				if err != nil {
					return fmt.Errorf("server error: %w", err)
				}
			case <-done:
			}

			logger.Info("shutting down")
			ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			return s.Shutdown(ctx)
		},
	}
)

func init() {
	Command.Flags().BoolVar(&warm, "warm", false, "load the dataset before accepting connections")
}
