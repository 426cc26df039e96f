package ssh

import (
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/soft-orgs/pkg/provider"
	"github.com/charmbracelet/soft-orgs/pkg/ui"
	"github.com/charmbracelet/soft-orgs/pkg/ui/common"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	bm "github.com/charmbracelet/wish/bubbletea"
	"github.com/muesli/termenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var tuiSessionCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "soft_orgs",
	Subsystem: "ssh",
	Name:      "tui_session_total",
	Help:      "The total number of TUI sessions",
}, []string{"term"})

var tuiSessionDuration = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "soft_orgs",
	Subsystem: "ssh",
	Name:      "tui_session_seconds_total",
	Help:      "The total time spent in TUI sessions",
}, []string{"term"})

// SessionMiddleware serves the dashboard to pty sessions. The dashboard is
// closed once its program exits, discarding loads still in flight.
// This middleware must be run after the ContextMiddleware.
func SessionMiddleware(profile termenv.Profile) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(s ssh.Session) {
			var m *ui.UI
			handler := func(s ssh.Session) *tea.Program {
				var p *tea.Program
				p, m = newProgram(s)
				return p
			}
			bm.MiddlewareWithProgramHandler(handler, profile)(next)(s)
			if m != nil {
				m.Close()
			}
		}
	}
}

// newProgram returns the dashboard program of a session, or nil when the
// session has no pty.
func newProgram(s ssh.Session) (*tea.Program, *ui.UI) {
	pty, _, active := s.Pty()
	if !active {
		return nil, nil
	}

	ctx := s.Context()
	renderer := bm.MakeRenderer(s)
	if testrun, ok := os.LookupEnv("SOFT_ORGS_NO_COLOR"); ok && testrun == "1" {
		// Disable colors when running tests.
		renderer.SetColorProfile(termenv.Ascii)
	}

	c := common.NewCommon(ctx, renderer, pty.Window.Width, pty.Window.Height)
	m := ui.New(c, provider.FromContext(ctx))
	opts := bm.MakeOptions(s)
	opts = append(opts,
		tea.WithAltScreen(),
		tea.WithoutCatchPanics(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	p := tea.NewProgram(m, opts...)

	tuiSessionCounter.WithLabelValues(pty.Term).Inc()

	start := time.Now()
	go func() {
		<-ctx.Done()
		tuiSessionDuration.WithLabelValues(pty.Term).Add(time.Since(start).Seconds())
	}()

	return p, m
}
