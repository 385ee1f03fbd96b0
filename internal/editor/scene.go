package editor

import (
	"github.com/mgpai22/waveline/internal/timeline"
	"github.com/mgpai22/waveline/internal/waveform"
)

// DrawnInterval is an interval positioned on the surface.
type DrawnInterval struct {
	Interval  timeline.Interval
	Lane      Lane
	X1        int
	X2        int
	Alternate bool // odd ordinal, drawn with the second fill colour
	Editable  bool
	Selected  bool
	Focused   bool
}

// Rect is a pixel span of the surface.
type Rect struct {
	X1 int
	X2 int
}

// Columns renders the waveform for the visible page.
func (s *Session) Columns() []waveform.Column {
	return waveform.RenderColumns(s.env, waveform.Window{
		StartMs:       s.view.PositionMs,
		DurationMs:    s.view.PageSizeMs,
		Width:         s.view.Width,
		RowHeight:     s.layout.WaveformHeight(),
		VerticalScale: s.opts.VerticalScale,
	})
}

// IntervalsInWindow positions every interval of both tracks that intersects
// the visible page.
func (s *Session) IntervalsInWindow() []DrawnInterval {
	var out []DrawnInterval
	out = s.appendVisible(out, s.subs, LaneSubtitles)
	if s.vo != nil {
		out = s.appendVisible(out, s.vo, LaneVoiceOver)
	}
	return out
}

func (s *Session) appendVisible(out []DrawnInterval, set *timeline.Set, lane Lane) []DrawnInterval {
	half := s.view.PageSizeMs / 2
	it := set.Window(s.view.PositionMs+half, half)
	editable := set.Editable() && lane == LaneSubtitles
	for iv, ok := it.Next(); ok; iv, ok = it.Next() {
		d := DrawnInterval{
			Interval:  iv,
			Lane:      lane,
			X1:        s.view.TimeToPixel(iv.StartMs),
			X2:        s.view.TimeToPixel(iv.EndMs),
			Alternate: iv.Ordinal%2 == 1,
			Editable:  editable,
		}
		if lane == LaneSubtitles {
			d.Selected = iv.ID == s.selected
			d.Focused = s.focus.Active() && iv.ID == s.focus.Interval
		}
		out = append(out, d)
	}
	return out
}

// SelectionRect is the selection's span on the surface, clipped to it.
func (s *Session) SelectionRect() (Rect, bool) {
	if !s.selection.Valid() {
		return Rect{}, false
	}
	if s.selection.EndMs < s.view.PositionMs || s.selection.StartMs > s.view.EndMs() {
		return Rect{}, false
	}
	x1 := max(s.view.TimeToPixel(s.selection.StartMs), 0)
	x2 := min(s.view.TimeToPixel(s.selection.EndMs), s.view.Width)
	return Rect{X1: x1, X2: x2}, true
}

// CursorPosition is the edit cursor's column, when it is on the page.
func (s *Session) CursorPosition() (int, bool) {
	return s.visibleX(s.cursorMs)
}

// PlayCursorPosition is the playback cursor's column, when playing and on
// the page.
func (s *Session) PlayCursorPosition() (int, bool) {
	if s.playCursorMs < 0 {
		return 0, false
	}
	return s.visibleX(s.playCursorMs)
}

func (s *Session) visibleX(ms int) (int, bool) {
	if !s.view.Contains(ms) {
		return 0, false
	}
	return s.view.TimeToPixel(ms), true
}

// Ruler returns the time ruler marks for the visible page.
func (s *Session) Ruler() []waveform.Tick {
	return s.ruler.Ticks(s.view.PositionMs, s.view.PageSizeMs, s.view.Width)
}
