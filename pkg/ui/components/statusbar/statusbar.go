package statusbar

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/soft-orgs/pkg/ui/common"
)

// StatusBar is a status bar model.
type StatusBar struct {
	common common.Common
	key    string
	value  string
	info   string
	err    error
}

// Model is an interface that supports setting the status bar information.
type Model interface {
	StatusBarValue() string
	StatusBarInfo() string
}

// New creates a new status bar component.
func New(c common.Common) *StatusBar {
	return &StatusBar{
		common: c,
	}
}

// SetSize implements common.Component.
func (s *StatusBar) SetSize(width, height int) {
	s.common.Width = width
	s.common.Height = height
}

// SetStatus sets the status bar status.
func (s *StatusBar) SetStatus(key, value, info string) {
	if key != "" {
		s.key = key
	}
	s.value = value
	s.info = info
}

// SetError shows err in place of the status value until it is cleared
// with nil.
func (s *StatusBar) SetError(err error) {
	s.err = err
}

// ShortHelp implements help.KeyMap.
func (s *StatusBar) ShortHelp() []key.Binding {
	return nil
}

// FullHelp implements help.KeyMap.
func (s *StatusBar) FullHelp() [][]key.Binding {
	return nil
}

// Init implements tea.Model.
func (s *StatusBar) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (s *StatusBar) Update(_ tea.Msg) (common.Model, tea.Cmd) {
	return s, nil
}

// View implements tea.Model.
func (s *StatusBar) View() string {
	st := s.common.Styles
	w := lipgloss.Width
	help := s.common.Zone.Mark(
		"statusbar-help",
		st.StatusBarInfo.Render("? Help"),
	)
	key := st.StatusBarKey.Render(s.key)
	info := ""
	if s.info != "" {
		info = st.StatusBarInfo.Render(s.info)
	}
	valueStyle, value := st.StatusBarValue, s.value
	if s.err != nil {
		valueStyle, value = st.StatusBarError, "Error: "+s.err.Error()
	}
	maxWidth := s.common.Width - w(key) - w(info) - w(help)
	v := valueStyle.
		Width(max(maxWidth, 0)).
		Render(common.TruncateString(value, maxWidth-valueStyle.GetHorizontalFrameSize()))

	return st.StatusBar.Render(lipgloss.JoinHorizontal(lipgloss.Top,
		key,
		v,
		info,
		help,
	))
}
