package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/mgpai22/waveline/internal/waveform"
	"github.com/spf13/cobra"
)

// terminal cells are much narrower than a screen ruler label
const terminalLabelWidth = 10

var waveformCmd = &cobra.Command{
	Use:   "waveform [media_file]",
	Short: "Draw a stretch of the waveform in the terminal",
	Long: `Extract the peak envelope of a media file and draw [from, from+duration)
as a block of characters, one column per character, with a time ruler below.

Examples:
  waveline waveform interview.mp4 --from 60000 --duration 10000
  waveline waveform narration.wav --width 160 --height 24`,
	Args: cobra.ExactArgs(1),
	RunE: runWaveform,
}

func init() {
	rootCmd.AddCommand(waveformCmd)

	waveformCmd.Flags().Int("from", 0, "Start of the window in milliseconds")
	waveformCmd.Flags().
		Int("duration", 0, "Length of the window in milliseconds (default: configured page size)")
	waveformCmd.Flags().Int("width", 100, "Columns to draw")
	waveformCmd.Flags().Int("height", 16, "Rows to draw")
}

func runWaveform(cmd *cobra.Command, args []string) error {
	from, _ := cmd.Flags().GetInt("from")
	duration, _ := cmd.Flags().GetInt("duration")
	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")

	if duration == 0 {
		duration = cfg.View.PageSizeMs
	}
	if duration <= 0 {
		return fmt.Errorf("duration must be positive, got %d", duration)
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("width and height must be positive, got %dx%d", width, height)
	}

	env, err := loadEnvelope(context.Background(), args[0])
	if err != nil {
		return err
	}

	cols := waveform.RenderColumns(env, waveform.Window{
		StartMs:       from,
		DurationMs:    duration,
		Width:         width,
		RowHeight:     height,
		VerticalScale: cfg.View.VerticalScale,
	})

	ruler, err := waveform.NewRuler(terminalLabelWidth, cfg.View.RulerLabelCache)
	if err != nil {
		return fmt.Errorf("failed to create ruler: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, line := range drawColumns(cols, height) {
		_, _ = fmt.Fprintln(out, line)
	}
	marks, labels := drawRuler(ruler.Ticks(from, duration, width), width)
	_, _ = fmt.Fprintln(out, marks)
	_, _ = fmt.Fprintln(out, labels)
	return nil
}

// drawColumns paints each column's [Min, Max] span around the middle row.
func drawColumns(cols []waveform.Column, height int) []string {
	mid := height / 2
	lines := make([]string, height)
	var b strings.Builder
	for row := 0; row < height; row++ {
		b.Reset()
		offset := mid - row
		for _, c := range cols {
			switch {
			case offset <= c.Max && offset >= c.Min:
				b.WriteRune('█')
			case offset == 0:
				b.WriteRune('─')
			default:
				b.WriteRune(' ')
			}
		}
		lines[row] = b.String()
	}
	return lines
}

// drawRuler returns the tick line and the label line. Labels that would
// run into the previous one are dropped.
func drawRuler(ticks []waveform.Tick, width int) (string, string) {
	marks := []rune(strings.Repeat(" ", width))
	labels := []rune(strings.Repeat(" ", width))
	next := 0
	for _, t := range ticks {
		if t.X < 0 || t.X >= width {
			continue
		}
		if !t.Major {
			marks[t.X] = '╵'
			continue
		}
		marks[t.X] = '│'
		if t.X < next || t.X+len(t.Label) > width {
			continue
		}
		copy(labels[t.X:], []rune(t.Label))
		next = t.X + len(t.Label) + 1
	}
	return string(marks), strings.TrimRight(string(labels), " ")
}
