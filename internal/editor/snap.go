package editor

import "github.com/mgpai22/waveline/internal/timeline"

// Selection is a range of the timeline. StartMs < 0 means no selection; a
// zero duration selection is a point.
type Selection struct {
	StartMs int
	EndMs   int
}

var NoSelection = Selection{StartMs: -1, EndMs: -1}

func (s Selection) Valid() bool {
	return s.StartMs >= 0
}

func (s Selection) Duration() int {
	if !s.Valid() {
		return 0
	}
	return s.EndMs - s.StartMs
}

func orderedSelection(a, b int) Selection {
	if a > b {
		a, b = b, a
	}
	return Selection{StartMs: a, EndMs: b}
}

// Bounds constrain a drag to the free gap it started in. A missing side
// is unconstrained.
type Bounds struct {
	MinMs  int
	MaxMs  int
	HasMin bool
	HasMax bool
}

func (b Bounds) Clamp(ms int) int {
	if b.HasMin && ms < b.MinMs {
		ms = b.MinMs
	}
	if b.HasMax && ms > b.MaxMs {
		ms = b.MaxMs
	}
	return ms
}

// Admit widens b just enough for ms to satisfy it.
func (b Bounds) Admit(ms int) Bounds {
	if b.HasMin && ms < b.MinMs {
		b.MinMs = ms
	}
	if b.HasMax && ms > b.MaxMs {
		b.MaxMs = ms
	}
	return b
}

// AntiOverlap derives the drag bounds and snapping advisors for a drag
// anchored at anchorMs. The neighbours are the intervals immediately
// before and after the anchor's insertion position, exclude skipped: the
// predecessor's end plus minGap is the lower bound, the successor's start
// minus minGap the upper one.
//
// When the data already overlaps, a bound is relaxed to the anchor so the
// anchor itself always satisfies it.
func AntiOverlap(set *timeline.Set, anchorMs int, exclude timeline.ID, minGapMs int) (Bounds, []timeline.GapAdvisor) {
	var (
		b        Bounds
		advisors []timeline.GapAdvisor
	)
	if set == nil || set.Len() == 0 {
		return b, nil
	}
	prev, next, hasPrev, hasNext := set.Neighbors(anchorMs, exclude)
	if hasPrev {
		b.MinMs = min(prev.EndMs+minGapMs, anchorMs)
		b.HasMin = true
		advisors = append(advisors, timeline.GapAdvisor{Interval: prev, Part: timeline.PartEnd})
	}
	if hasNext {
		b.MaxMs = max(next.StartMs-minGapMs, anchorMs)
		b.HasMax = true
		advisors = append(advisors, timeline.GapAdvisor{Interval: next, Part: timeline.PartBegin})
	}
	return b, advisors
}

// Snap moves ms onto the nearest advisor snapping point when one lies
// within toleranceMs, then clamps into bounds so snapping never
// reintroduces an overlap. Without a positive minimum gap there is nothing
// to snap to.
func Snap(ms int, advisors []timeline.GapAdvisor, minGapMs, toleranceMs int, b Bounds) int {
	if minGapMs <= 0 {
		return ms
	}
	best, found := 0, false
	for _, g := range advisors {
		c := g.SnappingPoint(minGapMs)
		d := abs(c - ms)
		if d <= toleranceMs && (!found || d < abs(best-ms)) {
			best, found = c, true
		}
	}
	if !found {
		return ms
	}
	return b.Clamp(best)
}
