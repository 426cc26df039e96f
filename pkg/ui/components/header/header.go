package header

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/soft-orgs/pkg/ui/common"
)

// Header represents a header component.
type Header struct {
	common common.Common
	text   string
	info   string
}

// New creates a new header component.
func New(c common.Common, text string) *Header {
	return &Header{
		common: c,
		text:   text,
	}
}

// SetInfo sets the text shown on the right of the header.
func (h *Header) SetInfo(info string) {
	h.info = info
}

// SetSize implements common.Component.
func (h *Header) SetSize(width, height int) {
	h.common.SetSize(width, height)
}

// ShortHelp implements help.KeyMap.
func (h *Header) ShortHelp() []key.Binding {
	return nil
}

// FullHelp implements help.KeyMap.
func (h *Header) FullHelp() [][]key.Binding {
	return nil
}

// Init implements tea.Model.
func (h *Header) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (h *Header) Update(_ tea.Msg) (common.Model, tea.Cmd) {
	return h, nil
}

// View implements tea.Model.
func (h *Header) View() string {
	name := h.common.Styles.ServerName.Render(strings.TrimSpace(h.text))
	if h.info == "" {
		return name
	}
	info := h.common.Styles.HelpKey.Render(h.info)
	gap := h.common.Width - lipgloss.Width(name) - lipgloss.Width(info)
	if gap < 1 {
		return name
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, name, strings.Repeat(" ", gap), info)
}
