package editor

import "testing"

func TestViewportConversions(t *testing.T) {
	v := Viewport{PositionMs: 2000, PageSizeMs: 8000, Width: 800}
	if got := v.PixelToTime(150); got != 3500 {
		t.Errorf("PixelToTime(150) = %d, want 3500", got)
	}
	if got := v.TimeToPixel(3500); got != 150 {
		t.Errorf("TimeToPixel(3500) = %d, want 150", got)
	}
	if got := v.PixelsToRelTime(8); got != 80 {
		t.Errorf("PixelsToRelTime(8) = %d, want 80", got)
	}
	if !v.Contains(2000) || v.Contains(10000) {
		t.Error("Contains is not half-open over the page")
	}
	if got := (Viewport{}).PixelsToRelTime(8); got != 0 {
		t.Errorf("zero-width viewport converted to %d", got)
	}
}

func TestViewportScrollClamps(t *testing.T) {
	v := Viewport{PageSizeMs: 8000, Width: 800, LengthMs: 20000}
	v.ScrollTo(15000)
	if v.PositionMs != 12000 {
		t.Errorf("position = %d, want 12000", v.PositionMs)
	}
	v.ScrollBy(-20000)
	if v.PositionMs != 0 {
		t.Errorf("position = %d, want 0", v.PositionMs)
	}
}

func TestViewportZoomKeepsAnchor(t *testing.T) {
	v := Viewport{PositionMs: 4000, PageSizeMs: 8000, Width: 800, LengthMs: 60000}
	before := v.PixelToTime(400)
	v.Zoom(0.5, 400)
	if v.PageSizeMs != 4000 {
		t.Errorf("page = %d, want 4000", v.PageSizeMs)
	}
	if got := v.PixelToTime(400); got != before {
		t.Errorf("anchor moved from %d to %d", before, got)
	}

	v.Zoom(0.0001, 0)
	if v.PageSizeMs != MinPageMs {
		t.Errorf("page = %d, want %d", v.PageSizeMs, MinPageMs)
	}
	v.Zoom(1000, 0)
	if v.PageSizeMs != 60000 {
		t.Errorf("page = %d, want media length", v.PageSizeMs)
	}
}

func TestLayoutLanes(t *testing.T) {
	l := Layout{Height: 200, RulerHeight: 20, VoiceOverHeight: 40}
	tests := []struct {
		y      int
		withVO bool
		want   Lane
	}{
		{0, true, LaneSubtitles},
		{139, true, LaneSubtitles},
		{140, true, LaneVoiceOver},
		{150, false, LaneSubtitles},
		{180, true, LaneRuler},
		{199, false, LaneRuler},
	}
	for _, tt := range tests {
		if got := l.LaneAt(tt.y, tt.withVO); got != tt.want {
			t.Errorf("LaneAt(%d, %v) = %v, want %v", tt.y, tt.withVO, got, tt.want)
		}
	}
	if l.WaveformHeight() != 180 {
		t.Errorf("WaveformHeight() = %d, want 180", l.WaveformHeight())
	}
}
