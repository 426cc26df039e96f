// Package virtual implements a filterable, sortable and virtualized list.
//
// A List holds the full item sequence along with a query, a sort state and
// the viewport of the widget displaying it. From that state it derives the
// sorted sequence, the filtered sequence and the rows that intersect the
// viewport, in that order. Derived state is memoized and recomputed only when
// one of its inputs changes.
package virtual
