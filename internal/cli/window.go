package cli

import (
	"fmt"
	"strconv"

	"github.com/mgpai22/waveline/internal/timeline"
	"github.com/spf13/cobra"
)

var windowCmd = &cobra.Command{
	Use:   "window [subtitle_file]",
	Short: "List the cues overlapping a time window",
	Long: `List every cue of a subtitle file that overlaps [at-expand, at+expand],
in timeline order.

Examples:
  waveline window movie.srt --at 90000 --expand 5000
  waveline window movie.vtt --at 0 --expand 600000`,
	Args: cobra.ExactArgs(1),
	RunE: runWindow,
}

func init() {
	rootCmd.AddCommand(windowCmd)

	windowCmd.Flags().Int("at", 0, "Window centre in milliseconds")
	windowCmd.Flags().Int("expand", 5000, "Half-width of the window in milliseconds")
}

func runWindow(cmd *cobra.Command, args []string) error {
	at, _ := cmd.Flags().GetInt("at")
	expand, _ := cmd.Flags().GetInt("expand")
	if expand < 0 {
		return fmt.Errorf("expand must not be negative, got %d", expand)
	}

	set, source, err := loadTrack(args[0], false)
	if err != nil {
		return err
	}
	logger.Debugw("Loaded track",
		"input", args[0],
		"format", source.Format,
		"intervals", set.Len(),
	)

	var found []timeline.Interval
	it := set.Window(at, expand)
	for iv, ok := it.Next(); ok; iv, ok = it.Next() {
		found = append(found, iv)
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), windowTable(found))
	logger.Infow("Window scanned",
		"from_ms", at-expand,
		"to_ms", at+expand,
		"matches", len(found),
	)
	return nil
}

func windowTable(items []timeline.Interval) string {
	rows := make([][]string, 0, len(items))
	for _, iv := range items {
		rows = append(rows, []string{
			strconv.Itoa(iv.Ordinal),
			formatMs(iv.StartMs),
			formatMs(iv.EndMs),
			strconv.Itoa(iv.Duration()),
			truncate(iv.Text, 48),
		})
	}
	return renderTable(
		[]string{"#", "Start", "End", "Ms", "Text"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignRight, alignRight, alignLeft},
	)
}

// truncate shortens s to n runes on one line.
func truncate(s string, n int) string {
	r := []rune(s)
	for i, c := range r {
		if c == '\n' || c == '\r' {
			r[i] = ' '
		}
	}
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n-3]) + "..."
}
