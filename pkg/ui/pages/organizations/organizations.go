package organizations

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/soft-orgs/pkg/columns"
	"github.com/charmbracelet/soft-orgs/pkg/config"
	"github.com/charmbracelet/soft-orgs/pkg/proto"
	"github.com/charmbracelet/soft-orgs/pkg/provider"
	"github.com/charmbracelet/soft-orgs/pkg/ui/common"
	"github.com/charmbracelet/soft-orgs/pkg/ui/components/table"
	"github.com/charmbracelet/soft-orgs/pkg/ui/pages/detail"
	"github.com/charmbracelet/soft-orgs/pkg/virtual"
)

// LoadedMsg carries the result of a load. Gen identifies the load it
// answers.
type LoadedMsg struct {
	Gen           int
	Organizations []proto.Organization
	Err           error
}

// Options configures the organizations page.
type Options struct {
	RowHeight     int
	Overscan      int
	UserRowHeight int
	UserOverscan  int
}

// OptionsFromContext returns the list layout of the context config, or the
// default layout.
func OptionsFromContext(ctx context.Context) Options {
	opts := Options{RowHeight: 1, Overscan: 20, UserRowHeight: 2, UserOverscan: 10}
	if cfg := config.FromContext(ctx); cfg != nil {
		opts = Options{
			RowHeight:     cfg.List.OrganizationRowHeight,
			Overscan:      cfg.List.OrganizationOverscan,
			UserRowHeight: cfg.List.UserRowHeight,
			UserOverscan:  cfg.List.UserOverscan,
		}
	}
	return opts
}

// Organizations is the page listing organizations. Opening a row shows the
// organization in a detail view on top of the list.
type Organizations struct {
	common   common.Common
	opts     Options
	provider provider.Provider
	table    *table.Table[proto.Organization]
	spinner  spinner.Model
	detail   *detail.Detail
	selected *proto.Organization

	gen     int
	loading bool
	cancel  context.CancelFunc
	err     error
}

var _ common.Page = (*Organizations)(nil)

// New returns a new organizations page loading from p.
func New(c common.Common, p provider.Provider, opts Options) *Organizations {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(c.Styles.Spinner))
	o := &Organizations{
		common:   c,
		opts:     opts,
		provider: p,
		spinner:  sp,
	}
	o.table = table.New(c, "orgs", table.Options[proto.Organization]{
		Options: virtual.Options[proto.Organization]{
			Columns:  columns.Organizations(),
			RowSize:  max(opts.RowHeight, 1),
			Overscan: opts.Overscan,
		},
		Noun:        "organizations",
		Placeholder: "Search organizations",
		Cell:        o.renderCell,
	})
	o.SetSize(c.Width, c.Height)
	return o
}

// Table returns the organizations table.
func (o *Organizations) Table() *table.Table[proto.Organization] {
	return o.table
}

// Selected returns the organization shown in the detail view.
func (o *Organizations) Selected() *proto.Organization {
	return o.selected
}

// Detail returns the detail view, or nil when no organization is selected.
func (o *Organizations) Detail() *detail.Detail {
	return o.detail
}

// Loading reports whether a load is in flight.
func (o *Organizations) Loading() bool {
	return o.loading
}

// Err returns the error of the last load.
func (o *Organizations) Err() error {
	return o.err
}

// Typing reports whether key presses go to a text input.
func (o *Organizations) Typing() bool {
	if o.detail != nil {
		return o.detail.Users().Focused()
	}
	return o.table.Focused()
}

// SetSize implements common.Component.
func (o *Organizations) SetSize(width, height int) {
	o.common.SetSize(width, height)
	o.table.SetSize(width, max(height-1, 0)) // spinner line
	if o.detail != nil {
		w, h := o.detailSize()
		o.detail.SetSize(w, h)
	}
}

func (o *Organizations) detailSize() (int, int) {
	return max(min(o.common.Width-4, 110), 0), max(o.common.Height-2, 0)
}

// ShortHelp implements help.KeyMap.
func (o *Organizations) ShortHelp() []key.Binding {
	if o.detail != nil {
		return o.detail.ShortHelp()
	}
	b := o.table.ShortHelp()
	if !o.table.Focused() {
		b = append(b, o.common.KeyMap.Select)
	}
	return b
}

// FullHelp implements help.KeyMap.
func (o *Organizations) FullHelp() [][]key.Binding {
	if o.detail != nil {
		return o.detail.FullHelp()
	}
	b := o.table.FullHelp()
	b = append(b, []key.Binding{o.common.KeyMap.Reload})
	return b
}

// StatusBarValue implements common.Page.
func (o *Organizations) StatusBarValue() string {
	if o.selected != nil {
		return o.selected.CompanyName
	}
	if o.loading {
		return "Loading organizations…"
	}
	s := o.table.List().Sort()
	if s.IsZero() {
		return ""
	}
	col, _ := o.table.List().Columns().Get(s.Column)
	dir := "ascending"
	if s.Desc {
		dir = "descending"
	}
	return fmt.Sprintf("Sorted by %s, %s", col.Title, dir)
}

// StatusBarInfo implements common.Page.
func (o *Organizations) StatusBarInfo() string {
	if o.selected != nil {
		return columns.ID(o.selected.ID)
	}
	l := o.table.List()
	if o.loading || l.Len() == 0 {
		return ""
	}
	return fmt.Sprintf("%s/%s", common.FormatCount(l.Cursor()+1), common.FormatCount(l.Len()))
}

// Init implements tea.Model.
func (o *Organizations) Init() tea.Cmd {
	return o.Load()
}

// Load starts loading the organizations. A load in flight is cancelled and
// its result discarded.
func (o *Organizations) Load() tea.Cmd {
	if o.cancel != nil {
		o.cancel()
	}
	o.gen++
	o.loading = true
	o.err = nil
	o.table.SetLoading(true)

	p := o.provider
	if p == nil {
		p = o.common.Provider()
	}
	if p == nil {
		o.finish(nil, common.ErrMissingProvider)
		return nil
	}

	ctx, cancel := context.WithCancel(o.common.Context())
	o.cancel = cancel
	gen := o.gen
	load := func() tea.Msg {
		orgs, err := p.Organizations(ctx)
		return LoadedMsg{Gen: gen, Organizations: orgs, Err: err}
	}
	return tea.Batch(o.spinner.Tick, load)
}

// Close cancels the load in flight. Its result is never applied.
func (o *Organizations) Close() {
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
	o.gen++
}

func (o *Organizations) finish(orgs []proto.Organization, err error) {
	o.loading = false
	o.table.SetLoading(false)
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
	if err != nil {
		o.err = err
		o.common.Logger.Error("failed to load organizations", "err", err)
		o.table.SetItems(nil)
		return
	}
	o.table.SetItems(orgs)
}

// Update implements tea.Model.
func (o *Organizations) Update(msg tea.Msg) (common.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		if msg.Gen != o.gen || !o.loading {
			// Stale or cancelled load.
			return o, nil
		}
		o.finish(msg.Organizations, msg.Err)
		if msg.Err != nil {
			return o, common.ErrorCmd(msg.Err)
		}
		return o, nil
	case spinner.TickMsg:
		if o.loading && o.spinner.ID() == msg.ID {
			var cmd tea.Cmd
			o.spinner, cmd = o.spinner.Update(msg)
			return o, cmd
		}
		return o, nil
	case table.SelectMsg[proto.Organization]:
		o.open(msg.Item)
		return o, nil
	case detail.CloseMsg:
		o.detail = nil
		o.selected = nil
		return o, nil
	}

	if o.detail != nil {
		if _, ok := msg.(tea.WindowSizeMsg); !ok {
			_, cmd := o.detail.Update(msg)
			return o, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !o.table.Focused() && key.Matches(msg, o.common.KeyMap.Reload) {
			return o, o.Load()
		}
		if o.loading {
			return o, nil
		}
	}

	_, cmd := o.table.Update(msg)
	return o, cmd
}

func (o *Organizations) open(org proto.Organization) {
	o.selected = &org
	w, h := o.detailSize()
	c := o.common
	c.SetSize(w, h)
	o.detail = detail.New(c, org, detail.Options{
		RowHeight: o.opts.UserRowHeight,
		Overscan:  o.opts.UserOverscan,
	})
}

// View implements tea.Model.
func (o *Organizations) View() string {
	if o.detail != nil {
		return o.common.Renderer.Place(o.common.Width, o.common.Height,
			lipgloss.Center, lipgloss.Center,
			o.detail.View(),
			lipgloss.WithWhitespaceChars("░"),
			lipgloss.WithWhitespaceForeground(o.common.Styles.Detail.Backdrop.GetForeground()),
		)
	}

	status := ""
	switch {
	case o.loading:
		status = o.spinner.View() + " Loading organizations…"
	case o.err != nil:
		status = o.common.Styles.ErrorTitle.Render("Error") + " " +
			o.common.Styles.ErrorBody.Render(common.TruncateString(o.err.Error(), o.common.Width-10))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		o.table.View(),
		lipgloss.NewStyle().Height(1).MaxHeight(1).Render(status),
	)
}

func (o *Organizations) renderCell(org proto.Organization, col virtual.Column[proto.Organization], active bool) string {
	st := o.common.Styles.Table.Normal
	if active {
		st = o.common.Styles.Table.Active
	}
	switch col.Key {
	case columns.CompanyKey:
		return st.Cell.Bold(active).Render(org.CompanyName)
	case columns.PlanKey:
		return o.common.Styles.PlanBadge(org.Plan)
	case columns.UsersKey, columns.InvitationsKey:
		return st.Dim.Render(col.Text(org))
	}
	return st.Cell.Render(col.Text(org))
}
