package waveform

import "testing"

func newTestRuler(t *testing.T, cacheSize int) *Ruler {
	t.Helper()
	r, err := NewRuler(60, cacheSize)
	if err != nil {
		t.Fatalf("NewRuler: %v", err)
	}
	return r
}

func TestRulerStep(t *testing.T) {
	r := newTestRuler(t, 16)
	tests := []struct {
		page, width   int
		wantStep      int
		wantPrecision int
	}{
		{8000, 600, 1000, 1000},
		{800, 600, 100, 100},
		{60000, 600, 10000, 10000},
		{8000, 50, 8000, 1000},
		{3, 600, 1, 1},
	}
	for _, tt := range tests {
		step, precision := r.Step(tt.page, tt.width)
		if step != tt.wantStep || precision != tt.wantPrecision {
			t.Errorf("Step(%d, %d) = %d, %d; want %d, %d",
				tt.page, tt.width, step, precision, tt.wantStep, tt.wantPrecision)
		}
	}
}

func TestRulerTicks(t *testing.T) {
	r := newTestRuler(t, 64)
	ticks := r.Ticks(0, 8000, 600)

	var majors, minors int
	for _, tk := range ticks {
		if tk.Major {
			majors++
		} else {
			minors++
		}
	}
	if majors != 8 || minors != 8 {
		t.Fatalf("got %d major / %d minor ticks, want 8 / 8", majors, minors)
	}
	if ticks[0].X != 0 || ticks[0].Label != "0:00" {
		t.Errorf("first tick = %+v, want X=0 label 0:00", ticks[0])
	}
	if ticks[2].X != 75 || ticks[2].Label != "0:01" {
		t.Errorf("second major tick = %+v, want X=75 label 0:01", ticks[2])
	}
	if r.CachedLabels() != 8 {
		t.Errorf("CachedLabels() = %d, want 8", r.CachedLabels())
	}
}

func TestRulerTicksStartMidStep(t *testing.T) {
	r := newTestRuler(t, 64)
	ticks := r.Ticks(1700, 8000, 600)
	if len(ticks) == 0 {
		t.Fatal("no ticks")
	}
	// 1000 and 1500 fall before the page; 2000 is the first mark
	if !ticks[0].Major || ticks[0].Label != "0:02" || ticks[0].X != 23 {
		t.Errorf("first tick = %+v, want major 0:02 at X=23", ticks[0])
	}
	for _, tk := range ticks {
		if tk.X < 0 || tk.X >= 600 {
			t.Errorf("tick outside the surface: %+v", tk)
		}
	}
}

func TestRulerLabelCacheIsBounded(t *testing.T) {
	r := newTestRuler(t, 4)
	for pos := 0; pos < 100000; pos += 8000 {
		r.Ticks(pos, 8000, 600)
	}
	if got := r.CachedLabels(); got > 4 {
		t.Errorf("CachedLabels() = %d, want at most 4", got)
	}
}

func TestFormatShortTime(t *testing.T) {
	tests := []struct {
		ms, precision int
		want          string
	}{
		{0, 1000, "0:00"},
		{3723456, 1000, "1:02:03"},
		{61500, 100, "1:01.5"},
		{1230, 10, "0:01.23"},
		{1234, 1, "0:01.234"},
		{-1500, 100, "-0:01.5"},
	}
	for _, tt := range tests {
		if got := FormatShortTime(tt.ms, tt.precision); got != tt.want {
			t.Errorf("FormatShortTime(%d, %d) = %q, want %q", tt.ms, tt.precision, got, tt.want)
		}
	}
}
