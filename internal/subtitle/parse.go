package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// hours are optional in WebVTT; SRT uses a comma before the millis
var cueTimingRegex = regexp.MustCompile(
	`(?:(\d{1,2}):)?(\d{2}):(\d{2})[,.](\d{3})\s*-->\s*(?:(\d{1,2}):)?(\d{2}):(\d{2})[,.](\d{3})`,
)

// Parse reads cue blocks: an optional identifier line, a timing line and
// one or more text lines, separated by blank lines. WebVTT headers, NOTE
// and STYLE blocks are skipped. ASS and SSA scripts are read by Dialogue
// line instead.
func Parse(r io.Reader, format Format) (*Subtitle, error) {
	if format == FormatASS || format == FormatSSA {
		return parseASS(r, format)
	}

	var (
		entries   []Entry
		current   *Entry
		textLines []string
		lineNum   int
	)
	scanner := bufio.NewScanner(r)

	flush := func() {
		if current != nil && len(textLines) > 0 {
			current.Text = strings.Join(textLines, "\n")
			entries = append(entries, *current)
		}
		current = nil
		textLines = nil
	}

	skipBlock := false
	for scanner.Scan() {
		line := scanner.Text()
		lineNum++
		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			skipBlock = false
			flush()
			continue
		}
		if skipBlock {
			continue
		}
		if format == FormatVTT && current == nil &&
			(strings.HasPrefix(trimmed, "WEBVTT") ||
				strings.HasPrefix(trimmed, "NOTE") ||
				strings.HasPrefix(trimmed, "STYLE")) {
			skipBlock = true
			continue
		}

		if m := cueTimingRegex.FindStringSubmatch(line); m != nil && len(textLines) == 0 {
			start, err := parseTimestamp(m[1], m[2], m[3], m[4])
			if err != nil {
				return nil, fmt.Errorf("invalid start timestamp at line %d: %w", lineNum, err)
			}
			end, err := parseTimestamp(m[5], m[6], m[7], m[8])
			if err != nil {
				return nil, fmt.Errorf("invalid end timestamp at line %d: %w", lineNum, err)
			}
			if end < start {
				return nil, fmt.Errorf("cue at line %d ends before it starts", lineNum)
			}
			current = &Entry{Index: len(entries) + 1, StartTime: start, EndTime: end}
			continue
		}

		if current != nil {
			textLines = append(textLines, line)
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", format, err)
	}

	return &Subtitle{Entries: entries, Format: format}, nil
}

func parseTimestamp(hours, minutes, seconds, millis string) (time.Duration, error) {
	h := 0
	if hours != "" {
		var err error
		if h, err = strconv.Atoi(hours); err != nil {
			return 0, err
		}
	}
	m, err := strconv.Atoi(minutes)
	if err != nil {
		return 0, err
	}
	s, err := strconv.Atoi(seconds)
	if err != nil {
		return 0, err
	}
	ms, err := strconv.Atoi(millis)
	if err != nil {
		return 0, err
	}
	if m > 59 || s > 59 {
		return 0, fmt.Errorf("out of range: %s:%s", minutes, seconds)
	}

	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(ms)*time.Millisecond, nil
}
