package virtual

import "slices"

// Event describes which part of a List changed.
type Event uint8

const (
	// ItemsChanged is sent when the item sequence is replaced.
	ItemsChanged Event = 1 << iota
	// QueryChanged is sent when the query changes.
	QueryChanged
	// SortChanged is sent when the sort state changes.
	SortChanged
	// ScrollChanged is sent when the scroll offset changes.
	ScrollChanged
	// ViewportChanged is sent when the viewport is resized.
	ViewportChanged
	// CursorChanged is sent when the active row changes.
	CursorChanged
	// SizeChanged is sent when a row is measured.
	SizeChanged
)

// Has reports whether e includes every flag of f.
func (e Event) Has(f Event) bool {
	return e&f == f
}

// Row is an item materialized for rendering.
type Row[T any] struct {
	// Index is the position of the item in the filtered sequence.
	Index int
	Item  T
	Start int
	Size  int
}

// End returns the offset right after the row.
func (r Row[T]) End() int {
	return r.Start + r.Size
}

// Options configures a List.
type Options[T any] struct {
	Columns Columns[T]
	// RowSize is the fixed size of every row. Defaults to 1.
	RowSize int
	// Estimate sizes rows individually when set.
	Estimate func(T) int
	// Overscan is the number of rows materialized on each side of the
	// viewport.
	Overscan int
}

type subscription struct {
	id int
	fn func(Event)
}

// List is the state of a filterable, sortable, virtualized list along with
// its derived sequences. It is not safe for concurrent use.
type List[T any] struct {
	cols     Columns[T]
	estimate func(T) int
	virt     *Virtualizer

	items  []T
	query  string
	sort   SortState
	cursor int

	sorted   []T
	filtered []T
	rows     []Row[T]

	sortedOK   bool
	filteredOK bool
	rowsOK     bool

	subs   []subscription
	nextID int
}

// NewList returns an empty list.
func NewList[T any](opts Options[T]) *List[T] {
	l := &List[T]{
		cols:     opts.Columns,
		estimate: opts.Estimate,
		virt:     NewVirtualizer(0, max(opts.RowSize, 1), opts.Overscan),
	}
	l.sync()
	return l
}

// Subscribe registers fn to be called after every change. The returned
// function unregisters it.
func (l *List[T]) Subscribe(fn func(Event)) func() {
	id := l.nextID
	l.nextID++
	l.subs = append(l.subs, subscription{id: id, fn: fn})
	return func() {
		l.subs = slices.DeleteFunc(l.subs, func(s subscription) bool {
			return s.id == id
		})
	}
}

func (l *List[T]) notify(e Event) {
	if e == 0 {
		return
	}
	for _, s := range slices.Clone(l.subs) {
		s.fn(e)
	}
}

// sync recomputes the invalidated sorted and filtered sequences.
func (l *List[T]) sync() {
	if !l.sortedOK {
		l.sorted = Sort(l.items, l.cols, l.sort)
		l.sortedOK = true
		l.filteredOK = false
	}
	if !l.filteredOK {
		l.filtered = Filter(l.sorted, l.query, l.cols.Fields)
		l.filteredOK = true
		l.virt.SetCount(len(l.filtered))
		if l.estimate != nil {
			filtered := l.filtered
			l.virt.SetEstimateSize(func(i int) int {
				return l.estimate(filtered[i])
			})
		}
		l.rowsOK = false
	}
}

// clamp brings the scroll offset and cursor back in bounds and reports what
// changed.
func (l *List[T]) clamp() Event {
	var e Event
	if y := l.virt.ClampScroll(l.virt.ScrollOffset()); y != l.virt.ScrollOffset() {
		l.virt.SetScrollOffset(y)
		l.rowsOK = false
		e |= ScrollChanged
	}
	if c := clamp(l.cursor, 0, max(len(l.filtered)-1, 0)); c != l.cursor {
		l.cursor = c
		e |= CursorChanged
	}
	return e
}

// follow moves the cursor inside the viewport after a scroll.
func (l *List[T]) follow() Event {
	if len(l.filtered) == 0 {
		return 0
	}
	lo, hi := l.virt.ViewRange()
	if hi <= lo {
		return 0
	}
	c := clamp(l.cursor, lo, hi-1)
	if c == l.cursor {
		return 0
	}
	l.cursor = c
	return CursorChanged
}

// SetItems replaces the item sequence.
func (l *List[T]) SetItems(items []T) {
	l.items = items
	l.sortedOK = false
	l.sync()
	l.notify(ItemsChanged | l.clamp())
}

// Items returns the full item sequence.
func (l *List[T]) Items() []T {
	return l.items
}

// Total returns the number of items before filtering.
func (l *List[T]) Total() int {
	return len(l.items)
}

// Columns returns the column configuration.
func (l *List[T]) Columns() Columns[T] {
	return l.cols
}

// SetQuery sets the filter query. The cursor and scroll offset are reset.
func (l *List[T]) SetQuery(q string) {
	if q == l.query {
		return
	}
	l.query = q
	l.filteredOK = false
	l.sync()
	e := QueryChanged
	if l.cursor != 0 {
		l.cursor = 0
		e |= CursorChanged
	}
	if l.virt.ScrollOffset() != 0 {
		l.virt.SetScrollOffset(0)
		e |= ScrollChanged
	}
	l.notify(e)
}

// Query returns the filter query.
func (l *List[T]) Query() string {
	return l.query
}

// SetSort sets the sort state.
func (l *List[T]) SetSort(s SortState) {
	if s == l.sort {
		return
	}
	l.sort = s
	l.sortedOK = false
	l.sync()
	l.notify(SortChanged | l.clamp())
}

// ToggleSort advances the sort state of the column with the given key.
// Unsortable columns are ignored.
func (l *List[T]) ToggleSort(key string) {
	c, ok := l.cols.Get(key)
	if !ok || !c.Sortable() {
		return
	}
	l.SetSort(l.sort.Toggle(key, c.DescFirst))
}

// Sort returns the sort state.
func (l *List[T]) Sort() SortState {
	return l.sort
}

// Sorted returns the items in sort order.
func (l *List[T]) Sorted() []T {
	return l.sorted
}

// Filtered returns the sorted items matching the query.
func (l *List[T]) Filtered() []T {
	return l.filtered
}

// Len returns the number of items matching the query.
func (l *List[T]) Len() int {
	return len(l.filtered)
}

// ScrollTo sets the scroll offset, clamped to the content. The cursor is kept
// inside the viewport.
func (l *List[T]) ScrollTo(y int) {
	y = l.virt.ClampScroll(y)
	if y == l.virt.ScrollOffset() {
		return
	}
	l.virt.SetScrollOffset(y)
	l.rowsOK = false
	l.notify(ScrollChanged | l.follow())
}

// ScrollBy moves the scroll offset by dy.
func (l *List[T]) ScrollBy(dy int) {
	l.ScrollTo(l.virt.ScrollOffset() + dy)
}

// ScrollOffset returns the scroll offset.
func (l *List[T]) ScrollOffset() int {
	return l.virt.ScrollOffset()
}

// SetViewportHeight resizes the viewport.
func (l *List[T]) SetViewportHeight(h int) {
	if h == l.virt.ViewportHeight() {
		return
	}
	l.virt.SetViewportHeight(h)
	l.rowsOK = false
	e := ViewportChanged | l.clamp()
	if len(l.filtered) > 0 {
		if y := l.virt.ScrollToIndex(l.cursor); y != l.virt.ScrollOffset() {
			l.virt.SetScrollOffset(y)
			e |= ScrollChanged
		}
	}
	l.notify(e)
}

// ViewportHeight returns the viewport height.
func (l *List[T]) ViewportHeight() int {
	return l.virt.ViewportHeight()
}

// TotalSize returns the size of the filtered content.
func (l *List[T]) TotalSize() int {
	return l.virt.TotalSize()
}

// SetCursor activates the row at index i of the filtered sequence and scrolls
// it into view.
func (l *List[T]) SetCursor(i int) {
	if len(l.filtered) == 0 {
		return
	}
	i = clamp(i, 0, len(l.filtered)-1)
	var e Event
	if i != l.cursor {
		l.cursor = i
		e |= CursorChanged
	}
	if y := l.virt.ScrollToIndex(i); y != l.virt.ScrollOffset() {
		l.virt.SetScrollOffset(y)
		l.rowsOK = false
		e |= ScrollChanged
	}
	l.notify(e)
}

// MoveCursor moves the cursor by delta rows.
func (l *List[T]) MoveCursor(delta int) {
	l.SetCursor(l.cursor + delta)
}

// PageSize returns the number of rows intersecting the viewport.
func (l *List[T]) PageSize() int {
	lo, hi := l.virt.ViewRange()
	return max(hi-lo, 1)
}

// Cursor returns the index of the active row.
func (l *List[T]) Cursor() int {
	return l.cursor
}

// Active returns the item under the cursor.
func (l *List[T]) Active() (T, bool) {
	if l.cursor < 0 || l.cursor >= len(l.filtered) {
		var zero T
		return zero, false
	}
	return l.filtered[l.cursor], true
}

// Measure corrects the size of row i of the filtered sequence.
func (l *List[T]) Measure(i, size int) {
	l.virt.Measure(i, size)
	l.rowsOK = false
	l.notify(SizeChanged | l.clamp())
}

// Range returns the materialized index range.
func (l *List[T]) Range() (lo, hi int) {
	return l.virt.Range()
}

// ViewRange returns the index range intersecting the viewport.
func (l *List[T]) ViewRange() (lo, hi int) {
	return l.virt.ViewRange()
}

// Rows returns the materialized rows: those intersecting the viewport plus
// the overscan margin.
func (l *List[T]) Rows() []Row[T] {
	if l.rowsOK {
		return l.rows
	}
	items := l.virt.Items()
	rows := make([]Row[T], len(items))
	for i, it := range items {
		rows[i] = Row[T]{
			Index: it.Index,
			Item:  l.filtered[it.Index],
			Start: it.Start,
			Size:  it.Size,
		}
	}
	l.rows = rows
	l.rowsOK = true
	return rows
}
