package editor

import "math"

// MinPageMs is the narrowest page a zoom can reach.
const MinPageMs = 100

// Viewport maps time to pixels for a surface Width pixels wide showing
// PageSizeMs of media starting at PositionMs.
type Viewport struct {
	PositionMs int
	PageSizeMs int
	Width      int
	LengthMs   int // media length, 0 when unknown
}

// converts a pixel distance to a time span
func (v Viewport) PixelsToRelTime(px int) int {
	if v.Width <= 0 {
		return 0
	}
	return int(math.Round(float64(px) * float64(v.PageSizeMs) / float64(v.Width)))
}

// converts a time span to a pixel distance
func (v Viewport) RelTimeToPixels(ms int) int {
	if v.PageSizeMs <= 0 {
		return 0
	}
	return int(math.Round(float64(ms) * float64(v.Width) / float64(v.PageSizeMs)))
}

func (v Viewport) PixelToTime(x int) int {
	return v.PositionMs + v.PixelsToRelTime(x)
}

func (v Viewport) TimeToPixel(ms int) int {
	return v.RelTimeToPixels(ms - v.PositionMs)
}

// EndMs is the first instant past the page.
func (v Viewport) EndMs() int {
	return v.PositionMs + v.PageSizeMs
}

func (v Viewport) Contains(ms int) bool {
	return ms >= v.PositionMs && ms < v.EndMs()
}

// ScrollTo moves the page start, keeping the page inside the media.
func (v *Viewport) ScrollTo(ms int) {
	if v.LengthMs > 0 && ms+v.PageSizeMs > v.LengthMs {
		ms = v.LengthMs - v.PageSizeMs
	}
	if ms < 0 {
		ms = 0
	}
	v.PositionMs = ms
}

func (v *Viewport) ScrollBy(deltaMs int) {
	v.ScrollTo(v.PositionMs + deltaMs)
}

// Zoom scales the page by factor while the time under anchorX stays put.
func (v *Viewport) Zoom(factor float64, anchorX int) {
	if factor <= 0 || v.Width <= 0 {
		return
	}
	anchorMs := v.PixelToTime(anchorX)
	page := int(math.Round(float64(v.PageSizeMs) * factor))
	if v.LengthMs > 0 && page > v.LengthMs {
		page = v.LengthMs
	}
	if page < MinPageMs {
		page = MinPageMs
	}
	v.PageSizeMs = page
	v.ScrollTo(anchorMs - v.PixelsToRelTime(anchorX))
}

// Lane is a horizontal band of the editing surface.
type Lane int

const (
	LaneSubtitles Lane = iota
	LaneVoiceOver
	LaneRuler
)

func (l Lane) String() string {
	switch l {
	case LaneSubtitles:
		return "subtitles"
	case LaneVoiceOver:
		return "voice-over"
	case LaneRuler:
		return "ruler"
	default:
		return "unknown"
	}
}

// Layout stacks the lanes from the top: subtitles over the waveform, the
// voice-over band (when present) and the ruler at the bottom.
type Layout struct {
	Height          int
	RulerHeight     int
	VoiceOverHeight int
}

// WaveformHeight is the row height available to the waveform.
func (l Layout) WaveformHeight() int {
	h := l.Height - l.RulerHeight
	if h < 0 {
		return 0
	}
	return h
}

func (l Layout) LaneAt(y int, hasVoiceOver bool) Lane {
	rulerTop := l.Height - l.RulerHeight
	if y >= rulerTop {
		return LaneRuler
	}
	if hasVoiceOver && y >= rulerTop-l.VoiceOverHeight {
		return LaneVoiceOver
	}
	return LaneSubtitles
}
