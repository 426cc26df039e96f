package common

import (
	"context"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/soft-orgs/pkg/config"
	"github.com/charmbracelet/soft-orgs/pkg/provider"
	"github.com/charmbracelet/soft-orgs/pkg/ui/keymap"
	"github.com/charmbracelet/soft-orgs/pkg/ui/styles"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/termenv"
)

// DefaultColorProfile is the default color profile used by the SSH server.
var DefaultColorProfile = termenv.ANSI256

// Common is the state shared by the dashboard components: the session
// context, the size given to the component, and the styles, keys and mouse
// zones of the session.
type Common struct {
	ctx           context.Context
	Width, Height int
	Styles        *styles.Styles
	KeyMap        *keymap.KeyMap
	Zone          *zone.Manager
	Renderer      *lipgloss.Renderer
	Logger        *log.Logger
}

// NewCommon returns the Common of a session rendering with r.
func NewCommon(ctx context.Context, r *lipgloss.Renderer, width, height int) Common {
	if ctx == nil {
		ctx = context.TODO()
	}
	return Common{
		ctx:      ctx,
		Width:    width,
		Height:   height,
		Renderer: r,
		Styles:   styles.DefaultStyles(r),
		KeyMap:   keymap.DefaultKeyMap(),
		Zone:     zone.New(),
		Logger:   log.FromContext(ctx).WithPrefix("ui"),
	}
}

// SetSize sets the size given to the component.
func (c *Common) SetSize(width, height int) {
	c.Width = width
	c.Height = height
}

// Context returns the context.
func (c *Common) Context() context.Context {
	return c.ctx
}

// Config returns the config of the session, if any.
func (c *Common) Config() *config.Config {
	return config.FromContext(c.ctx)
}

// Provider returns the organizations provider.
func (c *Common) Provider() provider.Provider {
	return provider.FromContext(c.ctx)
}
