package ssh

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/soft-orgs/pkg/config"
	"github.com/charmbracelet/soft-orgs/pkg/provider"
	"github.com/charmbracelet/soft-orgs/pkg/ssh/cmd"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/spf13/cobra"
	gossh "golang.org/x/crypto/ssh"
)

// ErrPermissionDenied is returned when a user is not allowed connect.
var ErrPermissionDenied = errors.New("permission denied")

// ContextKeySessionID is the context key of the session identifier.
var ContextKeySessionID = &struct{ string }{"session-id"}

// verifyKey checks that the key of the session is the last key accepted by
// the public key handler.
func verifyKey(s ssh.Session) error {
	pk := s.PublicKey()
	if pk == nil {
		// Keyboard-interactive session.
		return nil
	}
	perms := s.Permissions().Permissions
	if perms == nil || perms.Extensions["pubkey-fp"] != gossh.FingerprintSHA256(pk) {
		return ErrPermissionDenied
	}
	return nil
}

// AuthenticationMiddleware rejects sessions whose key does not match the
// authenticated one.
func AuthenticationMiddleware(sh ssh.Handler) ssh.Handler {
	return func(s ssh.Session) {
		if err := verifyKey(s); err != nil {
			wish.Fatalln(s, err)
			return
		}
		sh(s)
	}
}

// ContextMiddleware adds the config, provider, and logger to the session
// context. Every session gets its own identifier.
func ContextMiddleware(cfg *config.Config, p provider.Provider, logger *log.Logger) func(ssh.Handler) ssh.Handler {
	return func(sh ssh.Handler) ssh.Handler {
		return func(s ssh.Session) {
			ctx := s.Context()
			id := uuid.New().String()
			ctx.SetValue(ContextKeySessionID, id)
			ctx.SetValue(config.ContextKey, cfg)
			ctx.SetValue(provider.ContextKey, p)
			ctx.SetValue(log.ContextKey, logger.With("session", id))
			sh(s)
		}
	}
}

var cliCommandCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "soft_orgs",
	Subsystem: "cli",
	Name:      "commands_total",
	Help:      "Total times each command was called",
}, []string{"command", "ok"})

// RootCommand returns the command tree served to non-interactive sessions.
func RootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Short:        "Soft Orgs is a dashboard of organizations for the command line.",
		SilenceUsage: true,
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.SetUsageTemplate(cmd.UsageTemplate)
	rootCmd.SetUsageFunc(cmd.UsageFunc)
	rootCmd.AddCommand(
		cmd.ListCommand(),
		cmd.UsersCommand(),
		cmd.InfoCommand(),
	)
	return rootCmd
}

// runCommand executes the command of a session. A session without a command
// gets the help.
func runCommand(s ssh.Session) error {
	args := s.Command()
	if len(args) == 0 {
		// cobra falls back to os.Args on nil args.
		args = []string{"--help"}
	}

	rootCmd := RootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetIn(s)
	rootCmd.SetOut(s)
	rootCmd.SetErr(s.Stderr())
	return rootCmd.ExecuteContext(s.Context()) //nolint:wrapcheck
}

// CommandMiddleware runs CLI commands for sessions without a pty. Sessions
// with a pty are passed on to the dashboard.
// This middleware must be run after the ContextMiddleware.
func CommandMiddleware(sh ssh.Handler) ssh.Handler {
	return func(s ssh.Session) {
		if _, _, isPty := s.Pty(); isPty {
			sh(s)
			return
		}

		err := runCommand(s)
		cliCommandCounter.WithLabelValues(cmd.CommandName(s.Command()), strconv.FormatBool(err == nil)).Inc()
		if err != nil {
			s.Exit(1) //nolint:errcheck
			return
		}
		sh(s)
	}
}

// LoggingMiddleware logs the ssh connection and command.
func LoggingMiddleware(sh ssh.Handler) ssh.Handler {
	return func(s ssh.Session) {
		logger := log.FromContext(s.Context()).WithPrefix("ssh").With(
			"user", s.User(),
			"addr", s.RemoteAddr().String(),
		)
		if ptyReq, _, isPty := s.Pty(); isPty {
			logger = logger.With(
				"term", ptyReq.Term,
				"width", ptyReq.Window.Width,
				"height", ptyReq.Window.Height,
			)
		} else {
			logger = logger.With("cmd", strings.Join(s.Command(), " "))
		}

		if config.IsVerbose() {
			var hpk string
			if pk := s.PublicKey(); pk != nil {
				hpk = strings.TrimSpace(string(gossh.MarshalAuthorizedKey(pk)))
			}
			logger = logger.With("key", hpk, "envs", s.Environ())
		}

		start := time.Now()
		logger.Debug("connected")
		sh(s)
		logger.Debug("disconnected", "duration", time.Since(start))
	}
}
