package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// ASSScript holds everything in an ASS/SSA file that is not a cue, so a
// rewrite only replaces Dialogue timing and text.
type ASSScript struct {
	// script info, styles, fonts and the [Events] header, verbatim
	Head []string
	// Format line of the [Events] section
	FormatLine string
	Columns    []string
	// Comment:, Picture: and other event lines, verbatim
	Events []string
	// sections that follow [Events]
	Tail []string

	textCol, startCol, endCol int
}

const defaultASSHead = `[Script Info]
ScriptType: v4.00+
Collisions: Normal
PlayDepth: 0

[V4+ Styles]
Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding
Style: Default,Arial,20,&H00FFFFFF,&H000000FF,&H00000000,&H00000000,0,0,0,0,100,100,0,0,1,2,2,2,10,10,10,1

[Events]`

const defaultASSFormat = "Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text"

// default dialogue columns for a cue with no source line
var defaultASSFields = []string{"0", "", "", "Default", "", "0", "0", "0", "", ""}

func defaultASSScript() *ASSScript {
	s := &ASSScript{Head: strings.Split(defaultASSHead, "\n")}
	if err := s.setFormat(defaultASSFormat); err != nil {
		panic(err)
	}
	return s
}

func (s *ASSScript) setFormat(line string) error {
	s.FormatLine = line
	cols := strings.Split(strings.TrimPrefix(strings.TrimSpace(line), "Format:"), ",")
	for i := range cols {
		cols[i] = strings.TrimSpace(cols[i])
	}
	s.Columns = cols
	s.textCol, s.startCol, s.endCol = -1, -1, -1
	for i, col := range cols {
		switch strings.ToLower(col) {
		case "text":
			s.textCol = i
		case "start":
			s.startCol = i
		case "end":
			s.endCol = i
		}
	}
	// Text must be last: it is the only column allowed to contain commas
	if s.textCol != len(cols)-1 {
		return fmt.Errorf("format line must end with a Text column")
	}
	if s.startCol < 0 || s.endCol < 0 {
		return fmt.Errorf("format line is missing Start or End")
	}
	return nil
}

// parseASS reads an ASS or SSA script. Dialogue lines become entries and
// keep their raw columns; the rest of the file is kept on the script.
func parseASS(r io.Reader, format Format) (*Subtitle, error) {
	script := &ASSScript{textCol: -1}
	sub := &Subtitle{Format: format, Script: script}

	const (
		beforeEvents = iota
		inEvents
		afterEvents
	)
	section := beforeEvents

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		line := scanner.Text()
		lineNum++
		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			switch {
			case strings.EqualFold(trimmed, "[Events]"):
				section = inEvents
				script.Head = append(script.Head, line)
				continue
			case section == inEvents:
				section = afterEvents
			}
		}

		switch section {
		case beforeEvents:
			script.Head = append(script.Head, line)
			continue
		case afterEvents:
			script.Tail = append(script.Tail, line)
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, "Format:"):
			if err := script.setFormat(line); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
		case strings.HasPrefix(trimmed, "Dialogue:"):
			if script.FormatLine == "" {
				return nil, fmt.Errorf("dialogue before format line at line %d", lineNum)
			}
			entry, err := script.parseDialogue(trimmed)
			if err != nil {
				return nil, fmt.Errorf("failed to parse Dialogue at line %d: %w", lineNum, err)
			}
			entry.Index = len(sub.Entries) + 1
			sub.Entries = append(sub.Entries, entry)
		case trimmed == "":
		default:
			script.Events = append(script.Events, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s file: %w", strings.ToUpper(string(format)), err)
	}
	if script.FormatLine == "" {
		return nil, fmt.Errorf("missing Format line in [Events] section")
	}
	return sub, nil
}

func (s *ASSScript) parseDialogue(line string) (Entry, error) {
	content := strings.TrimSpace(strings.TrimPrefix(line, "Dialogue:"))
	fields := strings.SplitN(content, ",", len(s.Columns))
	if len(fields) < len(s.Columns) {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", len(s.Columns), len(fields))
	}

	start, err := parseASSTimestamp(fields[s.startCol])
	if err != nil {
		return Entry{}, fmt.Errorf("invalid start: %w", err)
	}
	end, err := parseASSTimestamp(fields[s.endCol])
	if err != nil {
		return Entry{}, fmt.Errorf("invalid end: %w", err)
	}
	if end < start {
		return Entry{}, fmt.Errorf("cue ends before it starts")
	}

	text := strings.NewReplacer(`\N`, "\n", `\n`, "\n").Replace(fields[s.textCol])
	return Entry{StartTime: start, EndTime: end, Text: text, Fields: fields}, nil
}

// parseASSTimestamp reads H:MM:SS.cc.
func parseASSTimestamp(ts string) (time.Duration, error) {
	parts := strings.Split(strings.TrimSpace(ts), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("malformed timestamp %q", ts)
	}
	secs, frac, ok := strings.Cut(parts[2], ".")
	if !ok {
		return 0, fmt.Errorf("malformed timestamp %q", ts)
	}

	var vals [4]int
	for i, p := range []string{parts[0], parts[1], secs, frac} {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("malformed timestamp %q", ts)
		}
		vals[i] = v
	}
	// two fraction digits are centiseconds; tolerate millisecond precision
	fracMs := vals[3] * 10
	if len(frac) == 3 {
		fracMs = vals[3]
	}

	return time.Duration(vals[0])*time.Hour +
		time.Duration(vals[1])*time.Minute +
		time.Duration(vals[2])*time.Second +
		time.Duration(fracMs)*time.Millisecond, nil
}

func formatASSTime(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	centis := (int(d.Milliseconds()) % 1000) / 10

	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, seconds, centis)
}

// encodeASS writes the script head, one Dialogue line per entry, then the
// remaining event lines and trailing sections.
func encodeASS(sb *strings.Builder, sub *Subtitle) {
	script := sub.Script
	if script == nil {
		script = defaultASSScript()
	}

	for _, line := range script.Head {
		sb.WriteString(line + "\n")
	}
	sb.WriteString(script.FormatLine + "\n")

	for _, entry := range sub.Entries {
		fields := make([]string, len(script.Columns))
		if len(entry.Fields) == len(script.Columns) {
			copy(fields, entry.Fields)
		} else if len(script.Columns) == len(defaultASSFields) {
			copy(fields, defaultASSFields)
		}
		fields[script.startCol] = formatASSTime(entry.StartTime)
		fields[script.endCol] = formatASSTime(entry.EndTime)
		fields[script.textCol] = strings.ReplaceAll(entry.Text, "\n", `\N`)
		sb.WriteString("Dialogue: " + strings.Join(fields, ",") + "\n")
	}

	for _, line := range script.Events {
		sb.WriteString(line + "\n")
	}
	if len(script.Tail) > 0 {
		sb.WriteString("\n")
		for _, line := range script.Tail {
			sb.WriteString(line + "\n")
		}
	}
}
