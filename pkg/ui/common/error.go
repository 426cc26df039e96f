package common

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrMissingProvider indicates that no organizations provider is available.
var ErrMissingProvider = errors.New("missing organizations provider")

// ErrorMsg is a Bubble Tea message that represents an error.
type ErrorMsg error

// ErrorCmd returns an ErrorMsg from error.
func ErrorCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg(err)
	}
}
