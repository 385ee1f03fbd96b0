package cli

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/mgpai22/waveline/internal/waveform"
	"github.com/spf13/cobra"
)

var peaksCmd = &cobra.Command{
	Use:   "peaks [media_file]",
	Short: "Extract the peak envelope of a media file",
	Long: `Decode the audio of a media file and fold it into per-block (min, max)
peaks, then print a summary of the envelope.

Block size and sample rate come from the [waveform] config section.

Examples:
  waveline peaks interview.mp4
  waveline peaks narration.wav --config ./waveline.toml`,
	Args: cobra.ExactArgs(1),
	RunE: runPeaks,
}

func init() {
	rootCmd.AddCommand(peaksCmd)
}

func runPeaks(cmd *cobra.Command, args []string) error {
	env, err := loadEnvelope(context.Background(), args[0])
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), peaksTable(summarizePeaks(env)))
	return nil
}

type peakSummary struct {
	Blocks      int
	LengthMs    int
	BlockMs     float64
	Min         int
	Max         int
	MeanAbs     int
	ClipBlocks  int
	QuietBlocks int
}

const (
	clipLevel  = math.MaxInt16 - 1
	quietLevel = 64
)

func summarizePeaks(env *waveform.Envelope) peakSummary {
	s := peakSummary{LengthMs: env.LengthMs()}
	if env.Empty() {
		return s
	}
	s.Blocks = len(env.Peaks)
	s.BlockMs = float64(env.SamplesPerBlock) * 1000 / float64(env.SampleRate)
	s.Min, s.Max = math.MaxInt, math.MinInt

	var total int64
	for _, p := range env.Peaks {
		s.Min = min(s.Min, p.Min)
		s.Max = max(s.Max, p.Max)
		amp := max(p.Max, -p.Min)
		total += int64(amp)
		if amp >= clipLevel {
			s.ClipBlocks++
		}
		if amp < quietLevel {
			s.QuietBlocks++
		}
	}
	s.MeanAbs = int(total / int64(s.Blocks))
	return s
}

func peaksTable(s peakSummary) string {
	rows := [][]string{
		{"Blocks", strconv.Itoa(s.Blocks)},
		{"Length", formatMs(s.LengthMs)},
		{"Block ms", strconv.FormatFloat(s.BlockMs, 'f', 2, 64)},
		{"Min", strconv.Itoa(s.Min)},
		{"Max", strconv.Itoa(s.Max)},
		{"Mean |peak|", strconv.Itoa(s.MeanAbs)},
		{"Clipped blocks", strconv.Itoa(s.ClipBlocks)},
		{"Quiet blocks", strconv.Itoa(s.QuietBlocks)},
	}
	return renderTable([]string{"Field", "Value"}, rows, []columnAlignment{alignLeft, alignRight})
}
