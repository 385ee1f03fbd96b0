package subtitle

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mgpai22/waveline/internal/timeline"
)

// Write stores records as a subtitle file in the format of base. For ASS and
// SSA the script of base is kept, and each record reuses the style columns
// of the source cue with the same text, or else the same start.
func Write(path string, records []timeline.Record, base *Subtitle) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	sub := FromRecords(records, base.Format)
	if base.Script != nil {
		sub.Script = base.Script
		byText := make(map[string][]string, len(base.Entries))
		byStart := make(map[time.Duration][]string, len(base.Entries))
		for _, e := range base.Entries {
			if _, ok := byText[e.Text]; !ok {
				byText[e.Text] = e.Fields
			}
			if _, ok := byStart[e.StartTime]; !ok {
				byStart[e.StartTime] = e.Fields
			}
		}
		for i, e := range sub.Entries {
			fields, ok := byText[e.Text]
			if !ok {
				fields = byStart[e.StartTime]
			}
			sub.Entries[i].Fields = fields
		}
	}

	var sb strings.Builder
	if err := Encode(&sb, sub); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(sb.String()), 0644)
}

// Encode renders a track in its own format.
func Encode(w io.Writer, sub *Subtitle) error {
	var (
		sb     strings.Builder
		format func(time.Duration) string
	)
	switch sub.Format {
	case FormatSRT:
		format = formatSRTTime
	case FormatVTT:
		// VTT header
		sb.WriteString("WEBVTT\n\n")
		format = formatVTTTime
	case FormatASS, FormatSSA:
		encodeASS(&sb, sub)
		_, err := io.WriteString(w, sb.String())
		return err
	default:
		return fmt.Errorf("unsupported format: %s", sub.Format)
	}

	for i, entry := range sub.Entries {
		// index (1-based)
		fmt.Fprintf(&sb, "%d\n", i+1)
		fmt.Fprintf(&sb, "%s --> %s\n", format(entry.StartTime), format(entry.EndTime))
		sb.WriteString(entry.Text)
		sb.WriteString("\n\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func formatSRTTime(d time.Duration) string {
	return formatClock(d, ',')
}

func formatVTTTime(d time.Duration) string {
	return formatClock(d, '.')
}

func formatClock(d time.Duration, sep rune) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	millis := int(d.Milliseconds()) % 1000

	return fmt.Sprintf("%02d:%02d:%02d%c%03d", hours, minutes, seconds, sep, millis)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0755)
}
