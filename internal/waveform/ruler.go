package waveform

import (
	"fmt"
	"math"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	DefaultLabelWidthPx = 60
	DefaultLabelCache   = 256
)

// Tick is one ruler mark. Major ticks carry a label.
type Tick struct {
	X     int
	Major bool
	Label string
}

type labelKey struct {
	ms        int
	precision int
}

// Ruler lays out time marks under the waveform. Label strings are kept in
// a bounded LRU so a scroll back and forth does not reformat them.
type Ruler struct {
	labelWidthPx int
	labels       *lru.Cache[labelKey, string]
}

func NewRuler(labelWidthPx, cacheSize int) (*Ruler, error) {
	if labelWidthPx <= 0 {
		labelWidthPx = DefaultLabelWidthPx
	}
	if cacheSize <= 0 {
		cacheSize = DefaultLabelCache
	}
	cache, err := lru.New[labelKey, string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create label cache: %w", err)
	}
	return &Ruler{labelWidthPx: labelWidthPx, labels: cache}, nil
}

// Step picks a "round" spacing between major ticks: at most one label per
// two label widths, truncated to a single significant digit. The second
// value is the power of ten of the step, which sets label precision.
func (r *Ruler) Step(pageMs, width int) (stepMs, precision int) {
	maxSteps := int(math.Round(float64(width) / float64(r.labelWidthPx*2)))
	if maxSteps < 1 {
		maxSteps = 1
	}
	stepMs = int(math.Round(float64(pageMs) / float64(maxSteps)))
	if stepMs <= 0 {
		stepMs = 1
	}
	precision = int(math.Pow(10, math.Trunc(math.Log10(float64(stepMs)))))
	stepMs = (stepMs / precision) * precision
	return stepMs, precision
}

// Ticks returns the marks visible in [positionMs, positionMs+pageMs) on a
// surface width pixels wide. Each major tick is followed by a minor one
// half a step later.
func (r *Ruler) Ticks(positionMs, pageMs, width int) []Tick {
	if pageMs <= 0 || width <= 0 {
		return nil
	}
	step, precision := r.Step(pageMs, width)
	toX := func(ms int) int {
		return int(math.Round(float64(ms-positionMs) * float64(width) / float64(pageMs)))
	}

	var ticks []Tick
	end := positionMs + pageMs
	p := floorTo(positionMs, step)
	for ; p < end; p += step {
		if p >= positionMs {
			ticks = append(ticks, Tick{X: toX(p), Major: true, Label: r.label(p, precision)})
		}
		if half := p + step/2; step > 1 && half >= positionMs && half < end {
			ticks = append(ticks, Tick{X: toX(half)})
		}
	}
	return ticks
}

func (r *Ruler) label(ms, precision int) string {
	key := labelKey{ms: ms, precision: precision}
	if s, ok := r.labels.Get(key); ok {
		return s
	}
	s := FormatShortTime(ms, precision)
	r.labels.Add(key, s)
	return s
}

// CachedLabels reports how many labels the ruler currently holds.
func (r *Ruler) CachedLabels() int {
	return r.labels.Len()
}

// FormatShortTime renders ms as m:ss or h:mm:ss, with as many decimals as a
// tick precision below one second needs.
func FormatShortTime(ms, precision int) string {
	sign := ""
	if ms < 0 {
		sign = "-"
		ms = -ms
	}
	hours := ms / 3_600_000
	minutes := (ms / 60_000) % 60
	seconds := (ms / 1000) % 60
	millis := ms % 1000

	var s string
	if hours > 0 {
		s = fmt.Sprintf("%s%d:%02d:%02d", sign, hours, minutes, seconds)
	} else {
		s = fmt.Sprintf("%s%d:%02d", sign, minutes, seconds)
	}

	switch {
	case precision >= 1000:
		return s
	case precision >= 100:
		return fmt.Sprintf("%s.%d", s, millis/100)
	case precision >= 10:
		return fmt.Sprintf("%s.%02d", s, millis/10)
	default:
		return fmt.Sprintf("%s.%03d", s, millis)
	}
}

func floorTo(v, step int) int {
	q := v / step
	if v < 0 && v%step != 0 {
		q--
	}
	return q * step
}
