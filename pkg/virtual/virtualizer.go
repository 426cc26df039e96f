package virtual

import "sort"

// SizeFunc returns the estimated size of the row at index i.
type SizeFunc func(i int) int

// Item is a row that intersects the viewport or its overscan margin.
type Item struct {
	Index int
	Start int
	Size  int
}

// End returns the offset right after the row.
func (i Item) End() int {
	return i.Start + i.Size
}

// Virtualizer computes which rows of a list intersect a scrollable viewport.
// Sizes and offsets share the same unit, which is up to the caller (pixels,
// terminal lines).
type Virtualizer struct {
	count    int
	overscan int
	scroll   int
	viewport int

	size     int
	estimate SizeFunc
	measured map[int]int

	// offsets[i] is the start of row i, offsets[count] the total size. It is
	// nil while every row has the same fixed size.
	offsets []int
	dirty   bool
}

// NewVirtualizer returns a virtualizer for count rows of a fixed size.
func NewVirtualizer(count, size, overscan int) *Virtualizer {
	v := &Virtualizer{}
	v.SetCount(count)
	v.SetFixedSize(size)
	v.SetOverscan(overscan)
	return v
}

// SetCount sets the number of rows. Measurements are discarded.
func (v *Virtualizer) SetCount(n int) {
	if n < 0 {
		n = 0
	}
	v.count = n
	v.measured = nil
	v.dirty = true
}

// Count returns the number of rows.
func (v *Virtualizer) Count() int {
	return v.count
}

// SetFixedSize makes every row size rows. Measurements are discarded.
func (v *Virtualizer) SetFixedSize(size int) {
	if size < 1 {
		size = 1
	}
	v.size = size
	v.estimate = nil
	v.measured = nil
	v.dirty = true
}

// SetEstimateSize sizes rows with fn until they are measured.
func (v *Virtualizer) SetEstimateSize(fn SizeFunc) {
	v.estimate = fn
	v.measured = nil
	v.dirty = true
}

// Measure corrects the size of row i once its actual size is known.
func (v *Virtualizer) Measure(i, size int) {
	if i < 0 || i >= v.count {
		return
	}
	if size < 0 {
		size = 0
	}
	old := v.sizeOf(i)
	if v.measured == nil {
		v.measured = make(map[int]int)
	}
	v.measured[i] = size
	if old == size {
		return
	}
	if v.offsets == nil || v.dirty {
		v.dirty = true
		return
	}
	delta := size - old
	for j := i + 1; j <= v.count; j++ {
		v.offsets[j] += delta
	}
}

// SetOverscan sets the number of extra rows kept on each side of the
// viewport.
func (v *Virtualizer) SetOverscan(n int) {
	if n < 0 {
		n = 0
	}
	v.overscan = n
}

// Overscan returns the overscan margin.
func (v *Virtualizer) Overscan() int {
	return v.overscan
}

// SetScrollOffset sets the offset of the top of the viewport.
func (v *Virtualizer) SetScrollOffset(y int) {
	if y < 0 {
		y = 0
	}
	v.scroll = y
}

// ScrollOffset returns the offset of the top of the viewport.
func (v *Virtualizer) ScrollOffset() int {
	return v.scroll
}

// SetViewportHeight sets the height of the viewport.
func (v *Virtualizer) SetViewportHeight(h int) {
	if h < 0 {
		h = 0
	}
	v.viewport = h
}

// ViewportHeight returns the height of the viewport.
func (v *Virtualizer) ViewportHeight() int {
	return v.viewport
}

func (v *Virtualizer) fixed() bool {
	return v.estimate == nil && len(v.measured) == 0
}

func (v *Virtualizer) sizeOf(i int) int {
	if s, ok := v.measured[i]; ok {
		return s
	}
	if v.estimate != nil {
		if s := v.estimate(i); s > 0 {
			return s
		}
		return 0
	}
	return v.size
}

func (v *Virtualizer) build() {
	if v.fixed() {
		v.offsets = nil
		v.dirty = false
		return
	}
	if !v.dirty && v.offsets != nil {
		return
	}
	if cap(v.offsets) >= v.count+1 {
		v.offsets = v.offsets[:v.count+1]
	} else {
		v.offsets = make([]int, v.count+1)
	}
	v.offsets[0] = 0
	for i := 0; i < v.count; i++ {
		v.offsets[i+1] = v.offsets[i] + v.sizeOf(i)
	}
	v.dirty = false
}

// start returns the offset of row i, 0 <= i <= count.
func (v *Virtualizer) start(i int) int {
	v.build()
	if v.offsets == nil {
		return i * v.size
	}
	return v.offsets[i]
}

// TotalSize returns the sum of all row sizes.
func (v *Virtualizer) TotalSize() int {
	return v.start(v.count)
}

// IndexAt returns the row containing offset y, clamped to the list. It
// returns -1 for an empty list.
func (v *Virtualizer) IndexAt(y int) int {
	if v.count == 0 {
		return -1
	}
	if y < 0 {
		return 0
	}
	v.build()
	var i int
	if v.offsets == nil {
		i = y / v.size
	} else {
		i = sort.Search(v.count, func(j int) bool { return v.offsets[j+1] > y })
	}
	if i >= v.count {
		i = v.count - 1
	}
	return i
}

// ViewRange returns the rows intersecting the viewport, without overscan.
func (v *Virtualizer) ViewRange() (lo, hi int) {
	if v.count == 0 {
		return 0, 0
	}
	v.build()
	top, bottom := v.scroll, v.scroll+v.viewport
	if v.offsets == nil {
		lo = top / v.size
		hi = (bottom + v.size - 1) / v.size
	} else {
		lo = sort.Search(v.count, func(j int) bool { return v.offsets[j+1] > top })
		hi = sort.Search(v.count, func(j int) bool { return v.offsets[j] >= bottom })
	}
	lo = clamp(lo, 0, v.count)
	hi = clamp(hi, lo, v.count)
	return lo, hi
}

// Range returns the rows intersecting the viewport expanded by the overscan
// margin on each side, clamped to [0, Count).
func (v *Virtualizer) Range() (lo, hi int) {
	lo, hi = v.ViewRange()
	if v.count == 0 {
		return 0, 0
	}
	lo = clamp(lo-v.overscan, 0, v.count)
	hi = clamp(hi+v.overscan, lo, v.count)
	return lo, hi
}

// Items returns the rows in Range with their offsets.
func (v *Virtualizer) Items() []Item {
	lo, hi := v.Range()
	items := make([]Item, 0, hi-lo)
	for i := lo; i < hi; i++ {
		start := v.start(i)
		items = append(items, Item{
			Index: i,
			Start: start,
			Size:  v.start(i+1) - start,
		})
	}
	return items
}

// MaxScroll returns the largest useful scroll offset.
func (v *Virtualizer) MaxScroll() int {
	return max(0, v.TotalSize()-v.viewport)
}

// ClampScroll clamps y to [0, MaxScroll].
func (v *Virtualizer) ClampScroll(y int) int {
	return clamp(y, 0, v.MaxScroll())
}

// ScrollToIndex returns the scroll offset closest to the current one that
// fully shows row i.
func (v *Virtualizer) ScrollToIndex(i int) int {
	if v.count == 0 {
		return 0
	}
	i = clamp(i, 0, v.count-1)
	start, end := v.start(i), v.start(i+1)
	y := v.scroll
	switch {
	case start < y:
		y = start
	case end > y+v.viewport:
		y = min(start, end-v.viewport)
	}
	return v.ClampScroll(y)
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
