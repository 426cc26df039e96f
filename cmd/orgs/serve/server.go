package serve

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/soft-orgs/pkg/config"
	"github.com/charmbracelet/soft-orgs/pkg/cron"
	"github.com/charmbracelet/soft-orgs/pkg/jobs"
	"github.com/charmbracelet/soft-orgs/pkg/provider"
	sshsrv "github.com/charmbracelet/soft-orgs/pkg/ssh"
	"github.com/charmbracelet/soft-orgs/pkg/stats"
	"github.com/charmbracelet/soft-orgs/pkg/web"
	"github.com/charmbracelet/ssh"
	"golang.org/x/sync/errgroup"
)

// Server is the Soft Orgs server.
type Server struct {
	SSHServer   *sshsrv.SSHServer
	HTTPServer  *web.HTTPServer
	StatsServer *stats.StatsServer
	Cron        *cron.Scheduler
	Config      *config.Config
	Dataset     *provider.Dataset

	jobs   []int
	logger *log.Logger
	ctx    context.Context
}

// NewServer returns a new *Server serving the dataset over SSH and, when
// enabled, HTTP. The SSH
// server key-pair will be created if none exists.
// It expects a context with a *provider.Dataset, *log.Logger, and
// *config.Config attached.
func NewServer(ctx context.Context) (*Server, error) {
	var err error
	cfg := config.FromContext(ctx)
	if cfg == nil {
		return nil, config.ErrNilConfig
	}
	ds, ok := provider.FromContext(ctx).(*provider.Dataset)
	if !ok {
		return nil, provider.ErrNoProvider
	}
	logger := log.FromContext(ctx).WithPrefix("server")
	srv := &Server{
		Config:  cfg,
		Dataset: ds,
		logger:  logger,
		ctx:     ctx,
	}

	// Add cron jobs.
	sched := cron.NewScheduler(ctx)
	for _, j := range jobs.List() {
		spec := j.Runner.Spec(ctx)
		if spec == "" {
			continue
		}
		id, err := sched.AddFunc(j.Name, spec, j.Runner.Func(ctx))
		if err != nil {
			logger.Warn("error adding cron job", "job", j.Name, "err", err)
			continue
		}
		j.ID = id
		srv.jobs = append(srv.jobs, id)
	}
	srv.Cron = sched

	srv.SSHServer, err = sshsrv.NewSSHServer(ctx)
	if err != nil {
		return nil, fmt.Errorf("create ssh server: %w", err)
	}

	if cfg.HTTP.Enabled {
		srv.HTTPServer, err = web.NewHTTPServer(ctx)
		if err != nil {
			return nil, fmt.Errorf("create http server: %w", err)
		}
	}

	srv.StatsServer, err = stats.NewStatsServer(ctx)
	if err != nil {
		return nil, fmt.Errorf("create stats server: %w", err)
	}

	return srv, nil
}

// Start starts the servers and the scheduler. It returns when a server fails
// or when all of them are shut down.
func (s *Server) Start() error {
	errg, _ := errgroup.WithContext(s.ctx)
	errg.Go(func() error {
		if err := s.SSHServer.ListenAndServe(); !errors.Is(err, ssh.ErrServerClosed) {
			return err
		}
		return nil
	})
	if s.HTTPServer != nil {
		errg.Go(func() error {
			if err := s.HTTPServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}
	errg.Go(func() error {
		if err := s.StatsServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	errg.Go(func() error {
		s.Cron.Start()
		return nil
	})
	return errg.Wait()
}

// Shutdown lets the server gracefully shutdown.
func (s *Server) Shutdown(ctx context.Context) error {
	errg, ctx := errgroup.WithContext(ctx)
	errg.Go(func() error {
		return s.SSHServer.Shutdown(ctx)
	})
	if s.HTTPServer != nil {
		errg.Go(func() error {
			return s.HTTPServer.Shutdown(ctx)
		})
	}
	errg.Go(func() error {
		return s.StatsServer.Shutdown(ctx)
	})
	errg.Go(func() error {
		for _, id := range s.jobs {
			s.Cron.Remove(id)
		}
		s.Cron.Shutdown()
		return nil
	})
	return errg.Wait()
}

// Close closes the servers.
func (s *Server) Close() error {
	var errg errgroup.Group
	errg.Go(s.SSHServer.Close)
	if s.HTTPServer != nil {
		errg.Go(s.HTTPServer.Close)
	}
	errg.Go(s.StatsServer.Close)
	errg.Go(func() error {
		s.Cron.Stop()
		return nil
	})
	return errg.Wait()
}
