package timeline

import "sort"

// WindowIter yields every interval touching the closed window
// [center-expand, center+expand] in (start, end) order. It is valid until
// the next mutation of its set.
type WindowIter struct {
	set   *Set
	lo    int
	hi    int
	first int
	cur   int
}

// Window seeds a scan over the expanded window around centerMs.
//
// Intervals can be long enough to span the window's left edge, so the scan
// starts behind the first interval starting at lo: at the earliest position
// whose running maximum end reaches lo. Nothing before that position can
// overlap the window.
func (s *Set) Window(centerMs, expandMs int) *WindowIter {
	s.settle()
	it := &WindowIter{
		set: s,
		lo:  centerMs - expandMs,
		hi:  centerMs + expandMs,
	}
	it.first = sort.Search(len(s.maxEnd), func(i int) bool {
		return s.maxEnd[i] >= it.lo
	})
	it.cur = it.first
	return it
}

// Next returns the next overlapping interval. The scan stops for good the
// first time an interval starts past the window.
func (it *WindowIter) Next() (Interval, bool) {
	items := it.set.items
	for it.cur < len(items) {
		iv := items[it.cur]
		if iv.StartMs > it.hi {
			it.cur = len(items)
			break
		}
		it.cur++
		if iv.EndMs >= it.lo {
			return iv, true
		}
	}
	return Interval{}, false
}

// Reset rewinds the iterator to the beginning of the window.
func (it *WindowIter) Reset() {
	it.cur = it.first
}
