package virtual

import (
	"strings"

	"golang.org/x/text/cases"
)

// Matcher tests strings for a case-insensitive substring match.
type Matcher struct {
	query string
	fold  cases.Caser
}

// NewMatcher returns a Matcher for the given query.
func NewMatcher(query string) *Matcher {
	fold := cases.Fold()
	return &Matcher{
		query: fold.String(query),
		fold:  fold,
	}
}

// Empty reports whether the query matches everything.
func (m *Matcher) Empty() bool {
	return m.query == ""
}

// Match reports whether any of the fields contains the query.
func (m *Matcher) Match(fields ...string) bool {
	if m.Empty() {
		return true
	}
	for _, f := range fields {
		if strings.Contains(m.fold.String(f), m.query) {
			return true
		}
	}
	return false
}

// Filter returns the items for which at least one of the fields contains
// query, ignoring case. Relative order is preserved. An empty query returns
// items as is.
func Filter[T any](items []T, query string, fields func(T) []string) []T {
	if query == "" {
		return items
	}

	m := NewMatcher(query)
	out := make([]T, 0)
	for _, item := range items {
		if m.Match(fields(item)...) {
			out = append(out, item)
		}
	}
	return out
}
