package editor

import "github.com/mgpai22/waveline/internal/timeline"

type FocusMode int

const (
	FocusNone FocusMode = iota
	FocusBegin
	FocusEnd
)

func (m FocusMode) String() string {
	switch m {
	case FocusBegin:
		return "begin"
	case FocusEnd:
		return "end"
	default:
		return "none"
	}
}

// Focus names the boundary under the pointer that a press would drag.
// Interval is NoID when the boundary belongs to a selection that is not
// bound to an interval.
type Focus struct {
	Mode     FocusMode
	TimeMs   int
	Interval timeline.ID
}

func (f Focus) Active() bool {
	return f.Mode != FocusNone
}

// FocusQuery is everything focus detection looks at for one pointer event.
type FocusQuery struct {
	PointerMs            int
	Set                  *timeline.Set
	IntervalToleranceMs  int
	Selection            Selection
	SelectionToleranceMs int
	SelectedID           timeline.ID
}

// ComputeFocus finds the draggable boundary nearest the pointer: first any
// interval boundary within the tight tolerance, then a boundary of the
// current selection within the looser one. It has no side effects.
func ComputeFocus(q FocusQuery) Focus {
	tol := max(q.IntervalToleranceMs, 1)
	if q.Set != nil && q.Set.Len() > 0 {
		it := q.Set.Window(q.PointerMs, tol)
		for iv, ok := it.Next(); ok; iv, ok = it.Next() {
			if mode, at := boundaryNear(iv.StartMs, iv.EndMs, q.PointerMs, tol); mode != FocusNone {
				return Focus{Mode: mode, TimeMs: at, Interval: iv.ID}
			}
		}
	}

	if q.Selection.Valid() {
		selTol := max(q.SelectionToleranceMs, 1)
		sel := q.Selection
		if mode, at := boundaryNear(sel.StartMs, sel.EndMs, q.PointerMs, selTol); mode != FocusNone {
			return Focus{Mode: mode, TimeMs: at, Interval: q.SelectedID}
		}
	}
	return Focus{}
}

// a range only offers its boundaries when it is wider than two tolerances,
// otherwise the begin and end grab zones would overlap
func boundaryNear(startMs, endMs, pointerMs, tol int) (FocusMode, int) {
	if (endMs-startMs)/tol <= 2 {
		return FocusNone, 0
	}
	if abs(pointerMs-startMs) < tol {
		return FocusBegin, startMs
	}
	if abs(pointerMs-endMs) < tol {
		return FocusEnd, endMs
	}
	return FocusNone, 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
