package timeline

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRange is returned when an interval ends before it starts.
	ErrInvalidRange = errors.New("invalid range: end before start")
	// ErrNotEditable is returned when mutating a read-only set.
	ErrNotEditable = errors.New("interval set is not editable")
	// ErrUnknownInterval is returned for an id the set does not hold.
	ErrUnknownInterval = errors.New("unknown interval")
)

// ID identifies an interval for the lifetime of its set. Positions change
// on every re-sort, ids never do.
type ID uint64

// NoID is the "no interval" sentinel.
const NoID ID = 0

// Interval is a time range in milliseconds with an ordinal and free text.
type Interval struct {
	ID      ID
	StartMs int
	EndMs   int
	Ordinal int
	Text    string
}

// flat input row, unordered
type Record struct {
	StartMs int
	EndMs   int
	Text    string
}

func NewInterval(startMs, endMs, ordinal int, text string) (Interval, error) {
	if endMs < startMs {
		return Interval{}, fmt.Errorf(
			"%w: %d > %d",
			ErrInvalidRange,
			startMs,
			endMs,
		)
	}
	return Interval{
		StartMs: startMs,
		EndMs:   endMs,
		Ordinal: ordinal,
		Text:    text,
	}, nil
}

func (i Interval) Duration() int {
	return i.EndMs - i.StartMs
}

// reports whether ms lies within [start, end]
func (i Interval) Contains(ms int) bool {
	return i.StartMs <= ms && ms <= i.EndMs
}

// reports whether the interval touches the closed window [lo, hi]
func (i Interval) Overlaps(lo, hi int) bool {
	return i.StartMs <= hi && i.EndMs >= lo
}

// Distance returns how far ms lies outside the interval, 0 when inside.
func (i Interval) Distance(ms int) int {
	switch {
	case ms < i.StartMs:
		return i.StartMs - ms
	case ms > i.EndMs:
		return ms - i.EndMs
	default:
		return 0
	}
}

func (i Interval) Record() Record {
	return Record{StartMs: i.StartMs, EndMs: i.EndMs, Text: i.Text}
}

// orders by (start, end)
func less(aStart, aEnd, bStart, bEnd int) bool {
	if aStart != bStart {
		return aStart < bStart
	}
	return aEnd < bEnd
}
