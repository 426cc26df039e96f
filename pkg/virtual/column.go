package virtual

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ErrUnknownColumn is returned when sorting by a column that does not exist
// or cannot be sorted.
var ErrUnknownColumn = errors.New("unknown column")

// Column describes a field of T: how it is titled, sized, rendered, compared
// and searched.
type Column[T any] struct {
	// Key identifies the column.
	Key string
	// Title is the header text.
	Title string
	// Width is the relative width of the column.
	Width int
	// Value returns the display text of the field.
	Value func(T) string
	// Compare orders two items by the field. A nil Compare makes the column
	// unsortable.
	Compare func(a, b T) int
	// DescFirst makes the first activation of the header sort descending.
	DescFirst bool
	// Searchable includes the column in the query match.
	Searchable bool
	// Terms overrides Value as the searched text.
	Terms func(T) []string
}

// Sortable reports whether the column can be sorted.
func (c Column[T]) Sortable() bool {
	return c.Compare != nil
}

// Text returns the display text of the field for item.
func (c Column[T]) Text(item T) string {
	if c.Value == nil {
		return ""
	}
	return c.Value(item)
}

// Columns is an ordered list of columns.
type Columns[T any] []Column[T]

// Index returns the position of the column with the given key, or -1.
func (cs Columns[T]) Index(key string) int {
	for i, c := range cs {
		if c.Key == key {
			return i
		}
	}
	return -1
}

// Get returns the column with the given key.
func (cs Columns[T]) Get(key string) (Column[T], bool) {
	i := cs.Index(key)
	if i < 0 {
		return Column[T]{}, false
	}
	return cs[i], true
}

// Sortable returns the keys of the sortable columns.
func (cs Columns[T]) Sortable() []string {
	var keys []string
	for _, c := range cs {
		if c.Sortable() {
			keys = append(keys, c.Key)
		}
	}
	return keys
}

// Fields returns the searchable text of item.
func (cs Columns[T]) Fields(item T) []string {
	fields := make([]string, 0, len(cs))
	for _, c := range cs {
		if !c.Searchable {
			continue
		}
		if c.Terms != nil {
			fields = append(fields, c.Terms(item)...)
			continue
		}
		fields = append(fields, c.Text(item))
	}
	return fields
}

// Titles returns the column titles.
func (cs Columns[T]) Titles() []string {
	titles := make([]string, len(cs))
	for i, c := range cs {
		titles[i] = c.Title
	}
	return titles
}

// Widths distributes total cells between the columns proportionally to their
// relative widths. The result always sums to total.
func (cs Columns[T]) Widths(total int) []int {
	widths := make([]int, len(cs))
	if len(cs) == 0 || total <= 0 {
		return widths
	}
	var sum int
	for _, c := range cs {
		sum += max(c.Width, 1)
	}
	used := 0
	for i, c := range cs {
		widths[i] = total * max(c.Width, 1) / sum
		used += widths[i]
	}
	for i := 0; used < total; i = (i + 1) % len(widths) {
		widths[i]++
		used++
	}
	return widths
}

// CompareString returns a lexicographic comparator on the text returned by
// fn.
func CompareString[T any](fn func(T) string) func(a, b T) int {
	return func(a, b T) int {
		return strings.Compare(fn(a), fn(b))
	}
}

// CompareOrdered returns a comparator on the value returned by fn.
func CompareOrdered[T any, V cmp.Ordered](fn func(T) V) func(a, b T) int {
	return func(a, b T) int {
		return cmp.Compare(fn(a), fn(b))
	}
}

// Itoa is a Value helper for integer fields.
func Itoa[T any](fn func(T) int) func(T) string {
	return func(item T) string {
		return strconv.Itoa(fn(item))
	}
}

// SortState is the active sort column and direction. The zero value means
// unsorted.
type SortState struct {
	Column string
	Desc   bool
}

// IsZero reports whether no sort is applied.
func (s SortState) IsZero() bool {
	return s.Column == ""
}

// Toggle returns the next state after activating the header of column key.
// Activating another column sorts it in its first direction, descending when
// descFirst is set. Repeated activation flips the direction once, then
// clears the sort.
func (s SortState) Toggle(key string, descFirst bool) SortState {
	switch {
	case s.Column != key:
		return SortState{Column: key, Desc: descFirst}
	case s.Desc == descFirst:
		return SortState{Column: key, Desc: !descFirst}
	default:
		return SortState{}
	}
}

// ParseSort parses a sort expression: a column key, optionally prefixed with
// "-" for descending order. An empty expression disables sorting.
func ParseSort[T any](cols Columns[T], s string) (SortState, error) {
	if s == "" {
		return SortState{}, nil
	}
	desc := strings.HasPrefix(s, "-")
	key := strings.TrimPrefix(s, "-")
	c, ok := cols.Get(key)
	if !ok || !c.Sortable() {
		return SortState{}, fmt.Errorf("%w: %q (valid: %s)", ErrUnknownColumn, key,
			strings.Join(cols.Sortable(), ", "))
	}
	return SortState{Column: key, Desc: desc}, nil
}

// Sort returns a sorted copy of items. Unknown or unsortable columns leave the
// order unchanged, in which case items is returned as is.
func Sort[T any](items []T, cols Columns[T], s SortState) []T {
	if s.IsZero() {
		return items
	}
	c, ok := cols.Get(s.Column)
	if !ok || !c.Sortable() {
		return items
	}
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		if s.Desc {
			return c.Compare(b, a)
		}
		return c.Compare(a, b)
	})
	return out
}
