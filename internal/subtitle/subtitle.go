package subtitle

import (
	"time"

	"github.com/mgpai22/waveline/internal/timeline"
)

// represents single subtitle entry
type Entry struct {
	Index     int
	StartTime time.Duration
	EndTime   time.Duration
	Text      string
	// raw Dialogue columns of an ASS/SSA cue
	Fields    []string
}

// represents complete subtitle track
type Subtitle struct {
	Entries []Entry
	Format  Format
	// non-cue content of an ASS/SSA file, nil for SRT and WebVTT
	Script  *ASSScript
}

// represents supported subtitle formats
type Format string

const (
	FormatSRT Format = "srt"
	FormatVTT Format = "vtt"
	FormatASS Format = "ass"
	FormatSSA Format = "ssa"
)

// Source supplies the (unordered) records an interval set is built from.
type Source interface {
	Records() []timeline.Record
}

// Records converts the entries to millisecond records in file order.
func (s *Subtitle) Records() []timeline.Record {
	out := make([]timeline.Record, 0, len(s.Entries))
	for _, e := range s.Entries {
		out = append(out, timeline.Record{
			StartMs: int(e.StartTime.Milliseconds()),
			EndMs:   int(e.EndTime.Milliseconds()),
			Text:    e.Text,
		})
	}
	return out
}

// FromRecords builds a track from records, numbering entries from 1.
func FromRecords(records []timeline.Record, format Format) *Subtitle {
	sub := &Subtitle{Format: format, Entries: make([]Entry, 0, len(records))}
	for i, r := range records {
		sub.Entries = append(sub.Entries, Entry{
			Index:     i + 1,
			StartTime: time.Duration(r.StartMs) * time.Millisecond,
			EndTime:   time.Duration(r.EndMs) * time.Millisecond,
			Text:      r.Text,
		})
	}
	return sub
}
