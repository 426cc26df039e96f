// Package styles holds the lipgloss styles of the dashboard, built for the
// renderer of each session.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/soft-orgs/pkg/proto"
)

// Styles defines styles for the UI.
type Styles struct {
	ActiveBorderColor   lipgloss.Color
	InactiveBorderColor lipgloss.Color

	App        lipgloss.Style
	ServerName lipgloss.Style

	Footer      lipgloss.Style
	HelpKey     lipgloss.Style
	HelpValue   lipgloss.Style
	HelpDivider lipgloss.Style

	Error      lipgloss.Style
	ErrorTitle lipgloss.Style
	ErrorBody  lipgloss.Style

	Spinner          lipgloss.Style
	SpinnerContainer lipgloss.Style

	NoContent lipgloss.Style

	StatusBar      lipgloss.Style
	StatusBarKey   lipgloss.Style
	StatusBarValue lipgloss.Style
	StatusBarInfo  lipgloss.Style
	StatusBarError lipgloss.Style

	Search struct {
		Prompt        lipgloss.Style
		PromptFocused lipgloss.Style
		Text          lipgloss.Style
		Placeholder   lipgloss.Style
	}

	Table struct {
		Base          lipgloss.Style
		Header        lipgloss.Style
		HeaderSorted  lipgloss.Style
		Summary       lipgloss.Style
		Empty         lipgloss.Style
		Scrollbar     lipgloss.Style
		ScrollbarDrag lipgloss.Style
		Normal        struct {
			Base lipgloss.Style
			Cell lipgloss.Style
			Dim  lipgloss.Style
		}
		Active struct {
			Base lipgloss.Style
			Cell lipgloss.Style
			Dim  lipgloss.Style
		}
	}

	Plan   map[proto.Plan]lipgloss.Style
	Status map[proto.Status]lipgloss.Style
	Role   map[proto.Role]lipgloss.Style

	Detail struct {
		Backdrop      lipgloss.Style
		Base          lipgloss.Style
		Title         lipgloss.Style
		ID            lipgloss.Style
		Label         lipgloss.Style
		Value         lipgloss.Style
		Section       lipgloss.Style
		Button        lipgloss.Style
		ButtonPrimary lipgloss.Style
		Action        lipgloss.Style
	}
}

// DefaultStyles returns default styles for the UI.
func DefaultStyles(r *lipgloss.Renderer) *Styles {
	highlightColor := lipgloss.Color("210")
	highlightColorDim := lipgloss.Color("174")
	selectorColor := lipgloss.Color("167")

	s := new(Styles)

	s.ActiveBorderColor = lipgloss.Color("62")
	s.InactiveBorderColor = lipgloss.Color("241")

	s.App = r.NewStyle().
		Margin(1, 2)

	s.ServerName = r.NewStyle().
		Height(1).
		MarginLeft(1).
		MarginBottom(1).
		Padding(0, 1).
		Background(lipgloss.Color("57")).
		Foreground(lipgloss.Color("229")).
		Bold(true)

	s.Footer = r.NewStyle().
		MarginTop(1).
		Padding(0, 1).
		Height(1)

	s.HelpKey = r.NewStyle().
		Foreground(lipgloss.Color("241"))

	s.HelpValue = r.NewStyle().
		Foreground(lipgloss.Color("239"))

	s.HelpDivider = r.NewStyle().
		Foreground(lipgloss.Color("237")).
		SetString(" • ")

	s.Error = r.NewStyle().
		MarginTop(2)

	s.ErrorTitle = r.NewStyle().
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("204")).
		Bold(true).
		Padding(0, 1)

	s.ErrorBody = r.NewStyle().
		Foreground(lipgloss.Color("252")).
		MarginLeft(2)

	s.Spinner = r.NewStyle().
		Foreground(lipgloss.Color("205"))

	s.SpinnerContainer = r.NewStyle()

	s.NoContent = r.NewStyle().
		SetString("No Content.").
		MarginTop(1).
		MarginLeft(2).
		Foreground(lipgloss.Color("242"))

	s.StatusBar = r.NewStyle().
		Height(1)

	s.StatusBarKey = r.NewStyle().
		Bold(true).
		Padding(0, 1).
		Background(lipgloss.Color("206")).
		Foreground(lipgloss.Color("228"))

	s.StatusBarValue = r.NewStyle().
		Padding(0, 1).
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("243"))

	s.StatusBarInfo = r.NewStyle().
		Padding(0, 1).
		Background(lipgloss.Color("212")).
		Foreground(lipgloss.Color("230"))

	s.StatusBarError = s.StatusBarValue.
		Foreground(lipgloss.Color("204"))

	s.Search.Prompt = r.NewStyle().
		Foreground(lipgloss.Color("241"))

	s.Search.PromptFocused = r.NewStyle().
		Foreground(highlightColor)

	s.Search.Text = r.NewStyle()

	s.Search.Placeholder = r.NewStyle().
		Foreground(lipgloss.Color("240"))

	s.Table.Base = r.NewStyle()

	s.Table.Header = r.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("252")).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("236"))

	s.Table.HeaderSorted = s.Table.Header.
		Foreground(highlightColor)

	s.Table.Summary = r.NewStyle().
		Foreground(lipgloss.Color("243")).
		MarginTop(1)

	s.Table.Empty = r.NewStyle().
		Foreground(lipgloss.Color("242")).
		Padding(1, 2)

	s.Table.Scrollbar = r.NewStyle().
		Foreground(lipgloss.Color("236"))

	s.Table.ScrollbarDrag = r.NewStyle().
		Foreground(highlightColorDim)

	s.Table.Normal.Base = r.NewStyle().
		PaddingLeft(1).
		Border(lipgloss.Border{Left: " "}, false, false, false, true)

	s.Table.Normal.Cell = r.NewStyle()

	s.Table.Normal.Dim = r.NewStyle().
		Foreground(lipgloss.Color("243"))

	s.Table.Active.Base = s.Table.Normal.Base.
		BorderStyle(lipgloss.Border{Left: "┃"}).
		BorderForeground(selectorColor)

	s.Table.Active.Cell = s.Table.Normal.Cell.
		Foreground(lipgloss.Color("212"))

	s.Table.Active.Dim = s.Table.Normal.Dim.
		Foreground(lipgloss.Color("246"))

	badge := r.NewStyle().Padding(0, 1)

	s.Plan = map[proto.Plan]lipgloss.Style{
		proto.BasicPlan: badge.
			Background(lipgloss.Color("238")).
			Foreground(lipgloss.Color("252")),
		proto.ProPlan: badge.
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230")),
		proto.EnterprisePlan: badge.
			Background(lipgloss.Color("99")).
			Foreground(lipgloss.Color("230")),
	}

	s.Status = map[proto.Status]lipgloss.Style{
		proto.ActiveStatus: badge.
			Foreground(lipgloss.Color("42")),
		proto.InactiveStatus: badge.
			Foreground(lipgloss.Color("204")),
		proto.PendingStatus: badge.
			Foreground(lipgloss.Color("185")),
	}

	s.Role = map[proto.Role]lipgloss.Style{
		proto.AdminRole: r.NewStyle().
			Foreground(lipgloss.Color("212")),
		proto.StandardRole: r.NewStyle().
			Foreground(lipgloss.Color("250")),
	}

	s.Detail.Backdrop = r.NewStyle().
		Foreground(lipgloss.Color("236"))

	s.Detail.Base = r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.ActiveBorderColor).
		Padding(1, 2)

	s.Detail.Title = r.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("212"))

	s.Detail.ID = r.NewStyle().
		Foreground(lipgloss.Color("241"))

	s.Detail.Label = r.NewStyle().
		Foreground(lipgloss.Color("243"))

	s.Detail.Value = r.NewStyle().
		Foreground(lipgloss.Color("252")).
		Bold(true)

	s.Detail.Section = r.NewStyle().
		MarginTop(1)

	s.Detail.Button = r.NewStyle().
		Padding(0, 2).
		MarginRight(1).
		Foreground(lipgloss.Color("252")).
		Background(lipgloss.Color("237"))

	s.Detail.ButtonPrimary = s.Detail.Button.
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("62"))

	s.Detail.Action = r.NewStyle().
		Foreground(lipgloss.Color("243")).
		MarginLeft(1)

	return s
}

// PlanBadge renders the plan of an organization.
func (s *Styles) PlanBadge(p proto.Plan) string {
	return s.Plan[p].Render(p.String())
}

// StatusBadge renders the status of a user.
func (s *Styles) StatusBadge(st proto.Status) string {
	return s.Status[st].Render(st.String())
}
