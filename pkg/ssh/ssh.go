// Package ssh serves the organizations dashboard to interactive sessions and
// the CLI commands to the others.
package ssh

import (
	"context"
	"fmt"
	"net"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/soft-orgs/pkg/config"
	"github.com/charmbracelet/soft-orgs/pkg/provider"
	"github.com/charmbracelet/soft-orgs/pkg/ui/common"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	rm "github.com/charmbracelet/wish/recover"
	gossh "golang.org/x/crypto/ssh"
)

// SSHServer serves the dashboard and the CLI over SSH.
type SSHServer struct { // nolint: revive
	srv    *ssh.Server
	cfg    *config.Config
	logger *log.Logger
}

// NewSSHServer returns a new SSHServer. The config, logger and provider are
// taken from ctx. The host key is created on first run.
func NewSSHServer(ctx context.Context) (*SSHServer, error) {
	cfg := config.FromContext(ctx)
	if cfg == nil {
		return nil, config.ErrNilConfig
	}
	p := provider.FromContext(ctx)
	if p == nil {
		return nil, provider.ErrNoProvider
	}
	if _, err := config.KeyPair(cfg); err != nil {
		return nil, fmt.Errorf("host ssh key: %w", err)
	}

	s := &SSHServer{
		cfg:    cfg,
		logger: log.FromContext(ctx).WithPrefix("ssh"),
	}
	srv, err := wish.NewServer(s.options(p)...)
	if err != nil {
		return nil, err
	}
	if config.IsDebug() {
		srv.ServerConfigCallback = s.serverConfig
	}
	srv.MaxTimeout = seconds(cfg.SSH.MaxTimeout)
	srv.IdleTimeout = seconds(cfg.SSH.IdleTimeout)
	s.srv = srv

	return s, nil
}

// options returns the server options. Middlewares run last to first: a
// session is authenticated, given a context, logged, then handed to the CLI
// or the dashboard.
func (s *SSHServer) options(p provider.Provider) []ssh.Option {
	opts := []ssh.Option{
		ssh.PublicKeyAuth(s.PublicKeyHandler),
		ssh.KeyboardInteractiveAuth(s.KeyboardInteractiveHandler),
		wish.WithAddress(s.cfg.SSH.ListenAddr),
		wish.WithHostKeyPath(s.cfg.SSH.KeyPath),
		wish.WithMiddleware(
			rm.MiddlewareWithLogger(
				s.logger,
				SessionMiddleware(common.DefaultColorProfile),
				CommandMiddleware,
				LoggingMiddleware,
				ContextMiddleware(s.cfg, p, s.logger),
				AuthenticationMiddleware,
			),
		),
	}
	if runtime.GOOS == "windows" {
		return append(opts, ssh.EmulatePty())
	}
	return append(opts, ssh.AllocatePty())
}

func (s *SSHServer) serverConfig(ssh.Context) *gossh.ServerConfig {
	return &gossh.ServerConfig{
		AuthLogCallback: func(conn gossh.ConnMetadata, method string, err error) {
			s.logger.Debug("authentication", "user", conn.User(), "method", method, "err", err)
		},
	}
}

// seconds converts a timeout setting. Zero disables the timeout.
func seconds(n int) time.Duration {
	return time.Duration(max(n, 0)) * time.Second
}

// ListenAndServe starts the SSH server.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "addr", s.cfg.SSH.ListenAddr)
	return s.srv.ListenAndServe()
}

// Serve starts the SSH server on the given net.Listener.
func (s *SSHServer) Serve(l net.Listener) error {
	return s.srv.Serve(l)
}

// Close closes the SSH server.
func (s *SSHServer) Close() error {
	return s.srv.Close()
}

// Shutdown gracefully shuts down the SSH server.
func (s *SSHServer) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
