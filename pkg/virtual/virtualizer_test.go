package virtual

import (
	"math/rand/v2"
	"testing"

	"github.com/matryer/is"
)

func TestVirtualizerScenario(t *testing.T) {
	is := is.New(t)
	v := NewVirtualizer(1000, 60, 20)
	v.SetViewportHeight(600)

	lo, hi := v.Range()
	is.Equal(lo, 0)
	is.Equal(hi, 30)
	is.Equal(v.TotalSize(), 60000)

	v.SetScrollOffset(6000)
	lo, hi = v.Range()
	is.Equal(lo, 80)
	is.Equal(hi, 130)
	is.Equal(v.TotalSize(), 60000)

	lo, hi = v.ViewRange()
	is.Equal(lo, 100)
	is.Equal(hi, 110)

	items := v.Items()
	is.Equal(len(items), 50)
	is.Equal(items[0], Item{Index: 80, Start: 4800, Size: 60})
	is.Equal(items[49].End(), 7800)
}

func TestVirtualizerEmpty(t *testing.T) {
	is := is.New(t)
	v := NewVirtualizer(0, 60, 20)
	v.SetViewportHeight(600)
	v.SetScrollOffset(1200)

	lo, hi := v.Range()
	is.Equal(lo, 0)
	is.Equal(hi, 0)
	is.Equal(v.TotalSize(), 0)
	is.Equal(len(v.Items()), 0)
	is.Equal(v.IndexAt(10), -1)
	is.Equal(v.MaxScroll(), 0)
	is.Equal(v.ScrollToIndex(3), 0)
}

func TestVirtualizerRangeProperties(t *testing.T) {
	is := is.New(t)
	r := rand.New(rand.NewPCG(3, 4))

	for round := 0; round < 2000; round++ {
		n := r.IntN(300)
		h := 1 + r.IntN(80)
		k := r.IntN(25)
		height := r.IntN(1000)
		y := r.IntN(n*h + 2000)

		v := NewVirtualizer(n, h, k)
		v.SetViewportHeight(height)
		v.SetScrollOffset(y)

		lo, hi := v.Range()
		is.True(0 <= lo)
		is.True(lo <= hi)
		is.True(hi <= n)
		is.Equal(v.TotalSize(), n*h)

		// Every row starting within the overscanned viewport is materialized.
		for i := 0; i < n; i++ {
			start := i * h
			if start >= y-k*h && start < y+height+k*h {
				is.True(lo <= i && i < hi)
			}
		}
	}
}

func TestVirtualizerEstimateAndMeasure(t *testing.T) {
	is := is.New(t)
	v := NewVirtualizer(5, 1, 0)
	v.SetEstimateSize(func(i int) int { return i + 1 }) // 1 2 3 4 5
	v.SetViewportHeight(4)

	is.Equal(v.TotalSize(), 15)
	is.Equal(v.IndexAt(0), 0)
	is.Equal(v.IndexAt(1), 1)
	is.Equal(v.IndexAt(3), 2)
	is.Equal(v.IndexAt(100), 4)

	v.SetScrollOffset(3) // rows 2 [3,6) and 3 [6,10)
	lo, hi := v.Range()
	is.Equal(lo, 2)
	is.Equal(hi, 4)

	v.Measure(0, 3)
	is.Equal(v.TotalSize(), 17)
	items := v.Items()
	is.Equal(items[0], Item{Index: 1, Start: 3, Size: 2})

	v.SetCount(5)
	is.Equal(v.TotalSize(), 15)
}

func TestVirtualizerMeasureFixed(t *testing.T) {
	is := is.New(t)
	v := NewVirtualizer(4, 2, 0)
	v.SetViewportHeight(10)
	v.Measure(1, 5)
	is.Equal(v.TotalSize(), 11)
	items := v.Items()
	is.Equal(len(items), 4)
	is.Equal(items[2].Start, 7)

	v.Measure(9, 5) // out of range
	is.Equal(v.TotalSize(), 11)
}

func TestVirtualizerScrollToIndex(t *testing.T) {
	is := is.New(t)
	v := NewVirtualizer(100, 2, 0)
	v.SetViewportHeight(10)

	is.Equal(v.ScrollToIndex(2), 0)  // already visible
	is.Equal(v.ScrollToIndex(10), 12) // bottom aligned
	v.SetScrollOffset(40)
	is.Equal(v.ScrollToIndex(5), 10)  // top aligned
	is.Equal(v.ScrollToIndex(99), 190)
	is.Equal(v.ClampScroll(1000), 190)
	is.Equal(v.ClampScroll(-3), 0)
}
