package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/soft-orgs/pkg/provider"
	"github.com/charmbracelet/soft-orgs/pkg/ui/common"
	"github.com/charmbracelet/soft-orgs/pkg/ui/components/footer"
	"github.com/charmbracelet/soft-orgs/pkg/ui/components/header"
	"github.com/charmbracelet/soft-orgs/pkg/ui/components/statusbar"
	"github.com/charmbracelet/soft-orgs/pkg/ui/pages/organizations"
)

type sessionState int

const (
	loadingState sessionState = iota
	readyState
)

// UI is the main UI model.
type UI struct {
	common     common.Common
	page       *organizations.Organizations
	header     *header.Header
	statusbar  *statusbar.StatusBar
	footer     *footer.Footer
	showFooter bool
	state      sessionState
	error      error
}

// New returns a new UI model showing the organizations of p. When p is nil,
// the provider of the context is used.
func New(c common.Common, p provider.Provider) *UI {
	name := "Soft Orgs"
	if cfg := c.Config(); cfg != nil && cfg.Name != "" {
		name = cfg.Name
	}
	ui := &UI{
		common:     c,
		header:     header.New(c, name),
		statusbar:  statusbar.New(c),
		page:       organizations.New(c, p, organizations.OptionsFromContext(c.Context())),
		showFooter: true,
		state:      loadingState,
	}
	if s, ok := p.(interface{ Source() string }); ok {
		ui.header.SetInfo("source: " + s.Source())
	}
	ui.footer = footer.New(c, ui)
	ui.SetSize(c.Width, c.Height)
	return ui
}

// Page returns the organizations page.
func (ui *UI) Page() *organizations.Organizations {
	return ui.page
}

func (ui *UI) getMargins() (wm, hm int) {
	style := ui.common.Styles.App
	wm = style.GetHorizontalFrameSize()
	hm = style.GetVerticalFrameSize() +
		lipgloss.Height(ui.header.View()) +
		1 // statusbar
	if ui.showFooter {
		hm += ui.footer.Height()
	}
	return
}

// ShortHelp implements help.KeyMap.
func (ui *UI) ShortHelp() []key.Binding {
	b := make([]key.Binding, 0)
	b = append(b, ui.page.ShortHelp()...)
	b = append(b, ui.common.KeyMap.Quit, ui.common.KeyMap.Help)
	return b
}

// FullHelp implements help.KeyMap.
func (ui *UI) FullHelp() [][]key.Binding {
	b := make([][]key.Binding, 0)
	b = append(b, ui.page.FullHelp()...)
	b = append(b, []key.Binding{ui.common.KeyMap.Help, ui.common.KeyMap.Quit})
	return b
}

// SetSize implements common.Component.
func (ui *UI) SetSize(width, height int) {
	ui.common.SetSize(width, height)
	ui.header.SetSize(width, height)
	ui.footer.SetSize(width, height)
	wm, hm := ui.getMargins()
	ui.header.SetSize(width-wm, 1)
	ui.statusbar.SetSize(width-wm, 1)
	ui.footer.SetSize(width-wm, height-hm)
	ui.page.SetSize(max(width-wm, 0), max(height-hm, 0))
}

// Init implements tea.Model.
func (ui *UI) Init() tea.Cmd {
	ui.state = loadingState
	return ui.page.Init()
}

// Close releases the resources of the UI. Loads in flight are discarded.
func (ui *UI) Close() {
	ui.page.Close()
}

// Update implements tea.Model.
func (ui *UI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		ui.SetSize(msg.Width, msg.Height)
		return ui, nil
	case tea.KeyMsg:
		switch {
		case msg.Type == tea.KeyCtrlC:
			return ui, tea.Quit
		case ui.page.Typing():
			// Keys go to the search input.
		case key.Matches(msg, ui.common.KeyMap.Quit):
			return ui, tea.Quit
		case key.Matches(msg, ui.common.KeyMap.Help):
			ui.toggleHelp()
			return ui, nil
		}
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft &&
			ui.common.Zone.Get("statusbar-help").InBounds(msg) {
			ui.toggleHelp()
			return ui, nil
		}
	case common.ErrorMsg:
		ui.error = msg
	case organizations.LoadedMsg:
		ui.error = nil
	}

	_, cmd := ui.page.Update(msg)
	if !ui.page.Loading() {
		ui.state = readyState
	} else {
		ui.state = loadingState
	}
	ui.statusbar.SetError(ui.error)
	return ui, cmd
}

func (ui *UI) toggleHelp() {
	ui.footer.SetShowAll(!ui.footer.ShowAll())
	ui.SetSize(ui.common.Width, ui.common.Height)
}

// View implements tea.Model.
func (ui *UI) View() string {
	ui.statusbar.SetStatus(ui.statusKey(), ui.page.StatusBarValue(), ui.page.StatusBarInfo())
	view := lipgloss.JoinVertical(lipgloss.Left,
		ui.header.View(),
		ui.page.View(),
		ui.statusbar.View(),
	)
	if ui.showFooter {
		view = lipgloss.JoinVertical(lipgloss.Left, view, ui.footer.View())
	}
	return ui.common.Zone.Scan(
		ui.common.Styles.App.Render(view),
	)
}

func (ui *UI) statusKey() string {
	switch {
	case ui.state == loadingState:
		return "Loading"
	case ui.page.Selected() != nil:
		return "Organization"
	}
	return fmt.Sprintf("%s Organizations", common.FormatCount(ui.page.Table().List().Total()))
}
