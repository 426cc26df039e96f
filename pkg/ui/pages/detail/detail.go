package detail

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/soft-orgs/pkg/columns"
	"github.com/charmbracelet/soft-orgs/pkg/proto"
	"github.com/charmbracelet/soft-orgs/pkg/ui/common"
	"github.com/charmbracelet/soft-orgs/pkg/ui/components/table"
	"github.com/charmbracelet/soft-orgs/pkg/virtual"
)

// CloseMsg is sent when the detail view is dismissed.
type CloseMsg struct{}

// CloseCmd dismisses the detail view.
func CloseCmd() tea.Msg {
	return CloseMsg{}
}

// Options configures the users table of the detail view.
type Options struct {
	RowHeight int
	Overscan  int
}

// Detail shows an organization and a table of its users.
type Detail struct {
	common common.Common
	org    proto.Organization
	users  *table.Table[proto.User]
}

var _ common.Component = (*Detail)(nil)

// New returns the detail view of org. The users table starts with an empty
// query at the top.
func New(c common.Common, org proto.Organization, opts Options) *Detail {
	d := &Detail{
		common: c,
		org:    org,
	}
	d.users = table.New(c, "users", table.Options[proto.User]{
		Options: virtual.Options[proto.User]{
			Columns:  columns.Users(),
			RowSize:  max(opts.RowHeight, 1),
			Overscan: opts.Overscan,
		},
		Noun:        "users",
		Placeholder: "Search users",
		Cell:        d.renderCell,
	})
	d.users.SetItems(org.Users)
	d.SetSize(c.Width, c.Height)
	return d
}

// Organization returns the displayed organization.
func (d *Detail) Organization() proto.Organization {
	return d.org
}

// Users returns the users table.
func (d *Detail) Users() *table.Table[proto.User] {
	return d.users
}

// SetSize implements common.Component. The size includes the frame of the
// detail view.
func (d *Detail) SetSize(width, height int) {
	d.common.SetSize(width, height)
	st := d.common.Styles.Detail.Base
	w := max(width-st.GetHorizontalFrameSize(), 0)
	h := height - st.GetVerticalFrameSize() -
		lipgloss.Height(d.headerView(w)) -
		lipgloss.Height(d.buttonsView())
	d.users.SetSize(w, max(h, 0))
}

// ShortHelp implements help.KeyMap.
func (d *Detail) ShortHelp() []key.Binding {
	b := d.users.ShortHelp()
	if !d.users.Focused() {
		b = append(b, d.closeBinding())
	}
	return b
}

// FullHelp implements help.KeyMap.
func (d *Detail) FullHelp() [][]key.Binding {
	b := d.users.FullHelp()
	b = append(b, []key.Binding{d.closeBinding()})
	return b
}

func (d *Detail) closeBinding() key.Binding {
	return key.NewBinding(
		key.WithKeys(d.common.KeyMap.Back.Keys()...),
		key.WithHelp("esc", "close"),
	)
}

// Init implements tea.Model.
func (d *Detail) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (d *Detail) Update(msg tea.Msg) (common.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, d.common.KeyMap.Back) && !d.users.Back() {
			return d, CloseCmd
		}
		if key.Matches(msg, d.common.KeyMap.Back) {
			return d, nil
		}
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			z := d.common.Zone
			if z.Get("detail-close").InBounds(msg) || z.Get("detail-cancel").InBounds(msg) {
				return d, CloseCmd
			}
		}
	case table.SelectMsg[proto.User]:
		// Users are not editable.
		return d, nil
	}
	_, cmd := d.users.Update(msg)
	return d, cmd
}

// View implements tea.Model.
func (d *Detail) View() string {
	st := d.common.Styles.Detail
	w := max(d.common.Width-st.Base.GetHorizontalFrameSize(), 0)
	h := max(d.common.Height-st.Base.GetVerticalFrameSize(), 0)
	return st.Base.Render(lipgloss.NewStyle().Width(w).Height(h).MaxHeight(h).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			d.headerView(w),
			d.users.View(),
			d.buttonsView(),
		),
	))
}

func (d *Detail) headerView(width int) string {
	st := d.common.Styles.Detail
	title := lipgloss.JoinHorizontal(lipgloss.Center,
		st.Title.Render(common.TruncateString(d.org.CompanyName, width/2)),
		" ",
		d.common.Styles.PlanBadge(d.org.Plan),
	)
	id := st.ID.Render(columns.ID(d.org.ID))
	closeBtn := d.common.Zone.Mark("detail-close", st.ID.Render(" ✕"))
	gap := max(width-lipgloss.Width(title)-lipgloss.Width(id)-lipgloss.Width(closeBtn), 1)
	top := title + strings.Repeat(" ", gap) + id + closeBtn

	field := func(label, value string) string {
		return lipgloss.JoinVertical(lipgloss.Left,
			st.Label.Render(label),
			st.Value.Render(value),
		)
	}
	cell := lipgloss.NewStyle().Width(max(width/3, 1))
	grid := lipgloss.JoinHorizontal(lipgloss.Top,
		cell.Render(field("Primary Admin", d.org.AdminName)),
		cell.Render(field("Users", common.FormatCount(d.org.NumUsers()))),
		cell.Render(field("Invitations Remaining", common.FormatCount(d.org.InvitationsRemaining))),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		top,
		st.Section.Render(grid),
	)
}

func (d *Detail) buttonsView() string {
	st := d.common.Styles.Detail
	return st.Section.Render(lipgloss.JoinHorizontal(lipgloss.Top,
		st.Button.Render("+ Add User"),
		d.common.Zone.Mark("detail-cancel", st.Button.Render("Cancel")),
		st.ButtonPrimary.Render("Save Changes"),
	))
}

func (d *Detail) renderCell(u proto.User, col virtual.Column[proto.User], active bool) string {
	st := d.common.Styles.Table.Normal
	if active {
		st = d.common.Styles.Table.Active
	}
	switch col.Key {
	case columns.NameKey:
		return st.Cell.Bold(true).Render(u.FullName()) + "\n" + st.Dim.Render(u.Email)
	case columns.RoleKey:
		return d.common.Styles.Role[u.Role].Render(u.Role.String())
	case columns.StatusKey:
		return d.common.Styles.StatusBadge(u.Status)
	case columns.ActionsKey:
		return d.common.Styles.Detail.Action.Render("Edit") + d.common.Styles.Detail.Action.Render("Remove")
	}
	return st.Cell.Render(col.Text(u))
}
