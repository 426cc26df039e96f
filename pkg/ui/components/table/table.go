package table

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/soft-orgs/pkg/ui/common"
	"github.com/charmbracelet/soft-orgs/pkg/virtual"
)

// wheelStep is the number of lines scrolled by a mouse wheel tick.
const wheelStep = 3

// CellFunc renders the cell of column col for item. The result may span as
// many lines as the row height.
type CellFunc[T any] func(item T, col virtual.Column[T], active bool) string

// SelectMsg is sent when a row is opened.
type SelectMsg[T any] struct {
	Item T
}

// Options configures a Table.
type Options[T any] struct {
	virtual.Options[T]
	// Noun names the items in the summary and empty state, e.g.
	// "organizations".
	Noun string
	// Placeholder is the search input placeholder.
	Placeholder string
	// Cell renders a cell. Defaults to the column text.
	Cell CellFunc[T]
}

// Table is a searchable, sortable table that renders only the rows
// intersecting its viewport.
type Table[T any] struct {
	common    common.Common
	id        string
	list      *virtual.List[T]
	search    textinput.Model
	noun      string
	cell      CellFunc[T]
	rowHeight int
	loading   bool
	renders   int
}

// New returns a new Table. id prefixes the mouse zones of the table and must
// be unique within a program.
func New[T any](c common.Common, id string, opts Options[T]) *Table[T] {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = opts.Placeholder
	ti.PromptStyle = c.Styles.Search.Prompt
	ti.TextStyle = c.Styles.Search.Text
	ti.PlaceholderStyle = c.Styles.Search.Placeholder

	t := &Table[T]{
		common:    c,
		id:        id,
		list:      virtual.NewList(opts.Options),
		search:    ti,
		noun:      opts.Noun,
		cell:      opts.Cell,
		rowHeight: max(opts.RowSize, 1),
	}
	if t.cell == nil {
		t.cell = func(item T, col virtual.Column[T], _ bool) string {
			return col.Text(item)
		}
	}
	t.SetSize(c.Width, c.Height)
	return t
}

// List returns the list state of the table.
func (t *Table[T]) List() *virtual.List[T] {
	return t.list
}

// SetItems replaces the items of the table.
func (t *Table[T]) SetItems(items []T) {
	t.list.SetItems(items)
}

// SetLoading toggles the loading placeholder. No rows are rendered while
// loading.
func (t *Table[T]) SetLoading(loading bool) {
	t.loading = loading
}

// Loading reports whether the table shows the loading placeholder.
func (t *Table[T]) Loading() bool {
	return t.loading
}

// Renders returns the number of rows rendered so far.
func (t *Table[T]) Renders() int {
	return t.renders
}

// SetQuery sets the search query.
func (t *Table[T]) SetQuery(q string) {
	t.search.SetValue(q)
	t.list.SetQuery(q)
}

// Query returns the search query.
func (t *Table[T]) Query() string {
	return t.list.Query()
}

// Focused reports whether the search input has focus.
func (t *Table[T]) Focused() bool {
	return t.search.Focused()
}

// Focus focuses the search input.
func (t *Table[T]) Focus() tea.Cmd {
	t.search.PromptStyle = t.common.Styles.Search.PromptFocused
	return t.search.Focus()
}

// Blur removes focus from the search input.
func (t *Table[T]) Blur() {
	t.search.PromptStyle = t.common.Styles.Search.Prompt
	t.search.Blur()
}

// Back handles the back key. It blurs the search input or clears the query
// and reports whether there was anything to do.
func (t *Table[T]) Back() bool {
	switch {
	case t.Focused():
		t.Blur()
		return true
	case t.Query() != "":
		t.SetQuery("")
		return true
	}
	return false
}

// Summary returns the match count line.
func (t *Table[T]) Summary() string {
	return fmt.Sprintf("Found %s of %s %s",
		common.FormatCount(t.list.Len()),
		common.FormatCount(t.list.Total()),
		t.noun)
}

// Empty returns the empty state text.
func (t *Table[T]) Empty() string {
	if q := t.Query(); q != "" {
		return fmt.Sprintf("No %s match %q.", t.noun, q)
	}
	return fmt.Sprintf("No %s found.", t.noun)
}

// SetSize implements common.Component. The height covers the search input,
// the column headers, the body and the summary.
func (t *Table[T]) SetSize(width, height int) {
	t.common.SetSize(width, height)
	t.search.Width = max(width-lipgloss.Width(t.search.Prompt)-1, 1)
	t.list.SetViewportHeight(max(height-t.chromeHeight(), 0))
}

func (t *Table[T]) chromeHeight() int {
	st := t.common.Styles.Table
	return 1 + // search
		1 + st.Header.GetVerticalFrameSize() +
		1 + st.Summary.GetVerticalFrameSize()
}

// ShortHelp implements help.KeyMap.
func (t *Table[T]) ShortHelp() []key.Binding {
	k := t.common.KeyMap
	if t.Focused() {
		return []key.Binding{k.Back, k.Select}
	}
	return []key.Binding{k.Up, k.Down, k.Search, k.SortNext}
}

// FullHelp implements help.KeyMap.
func (t *Table[T]) FullHelp() [][]key.Binding {
	k := t.common.KeyMap
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Home, k.End, k.Search, k.Back},
		{k.SortNext, k.SortDir, k.SortColumn, k.Select},
	}
}

// Init implements tea.Model.
func (t *Table[T]) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (t *Table[T]) Update(msg tea.Msg) (common.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if t.Focused() {
			return t, t.updateSearch(msg)
		}
		return t, t.handleKey(msg)
	case tea.MouseMsg:
		return t, t.handleMouse(msg)
	}
	if t.Focused() {
		return t, t.updateSearch(msg)
	}
	return t, nil
}

func (t *Table[T]) updateSearch(msg tea.Msg) tea.Cmd {
	if km, ok := msg.(tea.KeyMsg); ok {
		k := t.common.KeyMap
		switch {
		case key.Matches(km, k.Back), key.Matches(km, k.Select):
			t.Blur()
			return nil
		case km.Type == tea.KeyUp || km.Type == tea.KeyDown:
			t.Blur()
			return t.handleKey(km)
		}
	}
	var cmd tea.Cmd
	t.search, cmd = t.search.Update(msg)
	t.list.SetQuery(t.search.Value())
	return cmd
}

func (t *Table[T]) handleKey(msg tea.KeyMsg) tea.Cmd {
	k := t.common.KeyMap
	l := t.list
	switch {
	case key.Matches(msg, k.Search):
		return t.Focus()
	case key.Matches(msg, k.Back):
		t.Back()
	case key.Matches(msg, k.Up):
		l.MoveCursor(-1)
	case key.Matches(msg, k.Down):
		l.MoveCursor(1)
	case key.Matches(msg, k.PageUp):
		l.MoveCursor(-l.PageSize())
	case key.Matches(msg, k.PageDown):
		l.MoveCursor(l.PageSize())
	case key.Matches(msg, k.Home):
		l.SetCursor(0)
	case key.Matches(msg, k.End):
		l.SetCursor(l.Len() - 1)
	case key.Matches(msg, k.SortNext):
		t.nextSortColumn()
	case key.Matches(msg, k.SortDir):
		t.toggleSortDirection()
	case key.Matches(msg, k.SortColumn):
		n, err := strconv.Atoi(msg.String())
		if err == nil && n >= 1 && n <= len(l.Columns()) {
			l.ToggleSort(l.Columns()[n-1].Key)
		}
	case key.Matches(msg, k.Select):
		return t.selectCmd()
	}
	return nil
}

// nextSortColumn sorts by the sortable column after the current one in its
// first direction, wrapping to no sort after the last.
func (t *Table[T]) nextSortColumn() {
	cols := t.list.Columns()
	keys := cols.Sortable()
	if len(keys) == 0 {
		return
	}
	cur := t.list.Sort()
	next := ""
	if cur.IsZero() {
		next = keys[0]
	}
	for i, k := range keys {
		if k == cur.Column && i+1 < len(keys) {
			next = keys[i+1]
		}
	}
	if next == "" {
		t.list.SetSort(virtual.SortState{})
		return
	}
	c, _ := cols.Get(next)
	t.list.SetSort(virtual.SortState{Column: next, Desc: c.DescFirst})
}

func (t *Table[T]) toggleSortDirection() {
	cur := t.list.Sort()
	if cur.IsZero() {
		keys := t.list.Columns().Sortable()
		if len(keys) == 0 {
			return
		}
		cur = virtual.SortState{Column: keys[0], Desc: true}
	} else {
		cur.Desc = !cur.Desc
	}
	t.list.SetSort(cur)
}

func (t *Table[T]) selectCmd() tea.Cmd {
	item, ok := t.list.Active()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		return SelectMsg[T]{Item: item}
	}
}

func (t *Table[T]) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if t.loading {
		return nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		t.list.ScrollBy(-wheelStep)
		return nil
	case tea.MouseButtonWheelDown:
		t.list.ScrollBy(wheelStep)
		return nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}

	z := t.common.Zone
	if z.Get(t.zoneID("search")).InBounds(msg) {
		return t.Focus()
	}
	for _, col := range t.list.Columns() {
		if col.Sortable() && z.Get(t.zoneID("col", col.Key)).InBounds(msg) {
			t.list.ToggleSort(col.Key)
			return nil
		}
	}
	lo, hi := t.list.ViewRange()
	for i := lo; i < hi; i++ {
		if z.Get(t.zoneID("row", strconv.Itoa(i))).InBounds(msg) {
			t.list.SetCursor(i)
			return t.selectCmd()
		}
	}
	return nil
}

func (t *Table[T]) zoneID(parts ...string) string {
	return t.id + "-" + strings.Join(parts, "-")
}

// View implements tea.Model.
func (t *Table[T]) View() string {
	widths := t.widths()
	parts := []string{
		t.common.Zone.Mark(t.zoneID("search"), t.search.View()),
		t.headerView(widths),
		t.bodyView(widths),
	}
	if !t.loading {
		parts = append(parts, t.common.Styles.Table.Summary.Render(t.Summary()))
	}
	return t.common.Styles.Table.Base.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// widths returns the column widths of a row, leaving room for the row
// selector and the scrollbar.
func (t *Table[T]) widths() []int {
	inner := t.common.Width -
		t.common.Styles.Table.Normal.Base.GetHorizontalFrameSize() -
		1 // scrollbar
	return t.list.Columns().Widths(max(inner, 0))
}

func (t *Table[T]) headerView(widths []int) string {
	st := t.common.Styles.Table
	sort := t.list.Sort()
	cells := make([]string, 0, len(widths)+1)
	cells = append(cells, strings.Repeat(" ", st.Normal.Base.GetHorizontalFrameSize()))
	for i, col := range t.list.Columns() {
		title := col.Title
		if sort.Column == col.Key {
			if sort.Desc {
				title += " ↓"
			} else {
				title += " ↑"
			}
		}
		cell := common.Pad(title, widths[i])
		if col.Sortable() {
			cell = t.common.Zone.Mark(t.zoneID("col", col.Key), cell)
		}
		cells = append(cells, cell)
	}
	s := st.Header
	if !sort.IsZero() {
		s = st.HeaderSorted
	}
	return s.Width(max(t.common.Width, 0)).Render(strings.Join(cells, ""))
}

func (t *Table[T]) bodyView(widths []int) string {
	st := t.common.Styles.Table
	height := t.list.ViewportHeight()
	if height <= 0 {
		return ""
	}

	if t.loading {
		lines := make([]string, height)
		for i := range lines {
			if i < 3 {
				lines[i] = st.Normal.Dim.Render(common.Pad("  ░░░░░░░░░░░░░░░░░░░░", t.common.Width))
			}
		}
		return strings.Join(lines, "\n")
	}

	if t.list.Len() == 0 {
		return lipgloss.NewStyle().Height(height).MaxHeight(height).
			Render(st.Empty.Render(t.Empty()))
	}

	scroll := t.list.ScrollOffset()
	bottom := scroll + height
	cursor := t.list.Cursor()
	lines := make([]string, 0, height)
	for _, row := range t.list.Rows() {
		rendered := t.renderRow(row, widths, row.Index == cursor)
		from := max(scroll, row.Start) - row.Start
		to := min(bottom, row.End()) - row.Start
		if from >= to {
			// Overscan row outside the viewport.
			continue
		}
		visible := strings.Join(rendered[from:to], "\n")
		lines = append(lines, t.common.Zone.Mark(t.zoneID("row", strconv.Itoa(row.Index)), visible))
	}

	body := strings.Join(lines, "\n")
	if n := strings.Count(body, "\n") + 1; n < height {
		body += strings.Repeat("\n", height-n)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, body, t.scrollbar(height))
}

// renderRow renders a row into exactly row.Size lines.
func (t *Table[T]) renderRow(row virtual.Row[T], widths []int, active bool) []string {
	t.renders++
	st := t.common.Styles.Table.Normal
	if active {
		st = t.common.Styles.Table.Active
	}

	cols := t.list.Columns()
	cells := make([]string, len(cols))
	for i, col := range cols {
		cells[i] = fitCell(t.cell(row.Item, col, active), widths[i], row.Size)
	}
	s := st.Base.Render(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	lines := strings.Split(s, "\n")
	for len(lines) < row.Size {
		lines = append(lines, "")
	}
	return lines[:row.Size]
}

// fitCell pads or truncates every line of s to w cells and s itself to h
// lines.
func fitCell(s string, w, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > h {
		lines = lines[:h]
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	for i, l := range lines {
		lines[i] = common.Pad(l, w)
	}
	return strings.Join(lines, "\n")
}

// scrollbar renders a vertical scrollbar of the given height.
func (t *Table[T]) scrollbar(height int) string {
	st := t.common.Styles.Table
	total := t.list.TotalSize()
	bar := make([]string, height)
	if total <= height {
		for i := range bar {
			bar[i] = " "
		}
		return strings.Join(bar, "\n")
	}
	size := max(height*height/total, 1)
	top := t.list.ScrollOffset() * (height - size) / max(total-height, 1)
	for i := range bar {
		if i >= top && i < top+size {
			bar[i] = st.ScrollbarDrag.Render("┃")
		} else {
			bar[i] = st.Scrollbar.Render("│")
		}
	}
	return strings.Join(bar, "\n")
}
