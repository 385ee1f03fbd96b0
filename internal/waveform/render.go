package waveform

import "math"

// Window describes the slice of audio to draw and the surface it maps to.
type Window struct {
	StartMs       int
	DurationMs    int
	Width         int // pixel columns
	RowHeight     int // pixels available to the waveform row
	VerticalScale int // percent, 100 = unscaled
}

// Column is one pixel column of the waveform. Min and Max are offsets from
// the zero line in pixels, positive upwards. Blocks [First, End) were
// aggregated into it.
type Column struct {
	Min   int
	Max   int
	First int
	End   int
}

// RenderColumns downsamples env into exactly w.Width columns.
//
// Column x aggregates blocks [round(ppp*x+off), round(ppp*(x+1)+off)), at
// least one block, so consecutive columns partition the envelope. When
// zoomed in past one block per pixel the same block backs several columns.
// Indices past either end of the envelope clamp silently.
//
// The result depends only on its arguments.
func RenderColumns(env *Envelope, w Window) []Column {
	if w.Width <= 0 {
		return nil
	}
	cols := make([]Column, w.Width)
	if env.Empty() || env.SampleRate <= 0 || env.SamplesPerBlock <= 0 {
		return cols
	}

	n := len(env.Peaks)
	peaksPerPixel := env.blocksAt(float64(w.DurationMs)) / float64(w.Width)
	offset := env.blocksAt(float64(w.StartMs))

	for x := range cols {
		start := int(math.Round(peaksPerPixel*float64(x) + offset))
		end := int(math.Round(peaksPerPixel*float64(x+1) + offset))
		start = clamp(start, 0, n-1)
		if end > n {
			end = n
		}
		if end <= start {
			end = start + 1
		}

		peakMin, peakMax := env.Peaks[start].Min, env.Peaks[start].Max
		for _, p := range env.Peaks[start+1 : end] {
			if p.Max > peakMax {
				peakMax = p.Max
			}
			if p.Min < peakMin {
				peakMin = p.Min
			}
		}

		cols[x] = Column{
			Min:   ToPixels(peakMin, w.VerticalScale, w.RowHeight),
			Max:   ToPixels(peakMax, w.VerticalScale, w.RowHeight),
			First: start,
			End:   end,
		}
	}
	return cols
}

// ToPixels scales a signed 16-bit sample extreme to a vertical offset.
func ToPixels(value, verticalScale, rowHeight int) int {
	v := float64(value) * float64(verticalScale) / 100
	return int(math.Round(v * float64(rowHeight) / 65536))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
