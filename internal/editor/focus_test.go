package editor

import (
	"testing"

	"github.com/mgpai22/waveline/internal/timeline"
)

func TestComputeFocus(t *testing.T) {
	set := mustSet(t,
		timeline.Record{StartMs: 1000, EndMs: 2000},
		timeline.Record{StartMs: 3000, EndMs: 3050},
	)
	a := set.At(0)
	tests := []struct {
		name   string
		q      FocusQuery
		want   FocusMode
		wantMs int
		wantID timeline.ID
	}{
		{"begin", FocusQuery{PointerMs: 1020, Set: set, IntervalToleranceMs: 40, Selection: NoSelection}, FocusBegin, 1000, a.ID},
		{"end", FocusQuery{PointerMs: 1975, Set: set, IntervalToleranceMs: 40, Selection: NoSelection}, FocusEnd, 2000, a.ID},
		{"outside tolerance", FocusQuery{PointerMs: 1040, Set: set, IntervalToleranceMs: 40, Selection: NoSelection}, FocusNone, 0, timeline.NoID},
		{"too short to grab", FocusQuery{PointerMs: 3000, Set: set, IntervalToleranceMs: 40, Selection: NoSelection}, FocusNone, 0, timeline.NoID},
		{"no set", FocusQuery{PointerMs: 1000, IntervalToleranceMs: 40, Selection: NoSelection}, FocusNone, 0, timeline.NoID},
		{
			"selection end",
			FocusQuery{PointerMs: 5550, IntervalToleranceMs: 40, Selection: Selection{StartMs: 4000, EndMs: 5500}, SelectionToleranceMs: 60},
			FocusEnd, 5500, timeline.NoID,
		},
		{
			"interval wins over selection",
			FocusQuery{PointerMs: 1000, Set: set, IntervalToleranceMs: 40, Selection: Selection{StartMs: 990, EndMs: 1800}, SelectionToleranceMs: 60},
			FocusBegin, 1000, a.ID,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ComputeFocus(tt.q)
			if f.Mode != tt.want {
				t.Fatalf("mode = %v, want %v", f.Mode, tt.want)
			}
			if f.Active() && (f.TimeMs != tt.wantMs || f.Interval != tt.wantID) {
				t.Errorf("focus = %+v, want %dms on %d", f, tt.wantMs, tt.wantID)
			}
		})
	}
}

func TestComputeFocusHasNoSideEffects(t *testing.T) {
	set := mustSet(t, timeline.Record{StartMs: 1000, EndMs: 2000})
	q := FocusQuery{PointerMs: 1000, Set: set, IntervalToleranceMs: 40, Selection: NoSelection}
	first := ComputeFocus(q)
	for i := 0; i < 3; i++ {
		if got := ComputeFocus(q); got != first {
			t.Fatalf("call %d = %+v, want %+v", i, got, first)
		}
	}
	if set.Dirty() {
		t.Error("focus detection dirtied the set")
	}
}
