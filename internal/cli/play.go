package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/mgpai22/waveline/internal/editor"
	"github.com/mgpai22/waveline/internal/media"
	"github.com/mgpai22/waveline/internal/timeline"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play [media_file]",
	Short: "Run the headless player and log the play cursor",
	Long: `Load a media file into the headless renderer, start playback and log the
play cursor at the configured poll rate. Positions closer than
playback.min_delta_ms to the last one logged are skipped.

With --subs the cue under the cursor is logged whenever it changes.

Examples:
  waveline play movie.mp4 --for 5s
  waveline play movie.mp4 --seek 60000 --subs movie.srt`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().Duration("for", 0, "How long to play (default: until the end)")
	playCmd.Flags().Int("seek", 0, "Start position in milliseconds")
	playCmd.Flags().String("subs", "", "Subtitle file whose cues are logged as they play")
}

func runPlay(cmd *cobra.Command, args []string) error {
	mediaPath := args[0]
	playFor, _ := cmd.Flags().GetDuration("for")
	seek, _ := cmd.Flags().GetInt("seek")
	subsPath, _ := cmd.Flags().GetString("subs")

	if _, err := os.Stat(mediaPath); os.IsNotExist(err) {
		return fmt.Errorf("media file not found: %s", mediaPath)
	}
	if playFor < 0 {
		return fmt.Errorf("--for must not be negative, got %s", playFor)
	}

	var subs *timeline.Set
	if subsPath != "" {
		var err error
		if subs, _, err = loadTrack(subsPath, false); err != nil {
			return err
		}
	}

	renderer := media.NewClockRenderer(nil, nil)
	if err := renderer.Load(mediaPath); err != nil {
		return err
	}
	if err := renderer.Seek(seek); err != nil {
		return err
	}

	if playFor == 0 {
		playFor = renderer.Duration() - time.Duration(renderer.PositionMs())*time.Millisecond
	}
	interval := time.Duration(cfg.Playback.PollIntervalMs) * time.Millisecond

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, playFor+interval)
	defer cancel()

	logger.Infow("Playing",
		"input", mediaPath,
		"duration", renderer.Duration(),
		"from_ms", renderer.PositionMs(),
		"for", playFor,
	)
	if err := renderer.Play(); err != nil {
		return err
	}
	defer renderer.Pause()

	tracker := cueTracker{set: subs}
	sampler := editor.NewCursorSampler(cfg.Playback.MinDeltaMs)
	samples := 0
	err := media.Poll(ctx, renderer, interval, sampler, func(ms int) {
		samples++
		logger.Debugw("Play cursor", "ms", ms)
		if iv, changed := tracker.at(ms); changed && iv.ID != timeline.NoID {
			logger.Infow("Cue",
				"at", formatMs(iv.StartMs),
				"ordinal", iv.Ordinal,
				"text", truncate(iv.Text, 80),
			)
		}
	})
	if err != nil {
		return fmt.Errorf("playback polling failed: %w", err)
	}

	logger.Infow("Playback stopped",
		"position_ms", renderer.PositionMs(),
		"samples", samples,
	)
	return nil
}

// cueTracker reports the cue under the play cursor when it changes.
type cueTracker struct {
	set     *timeline.Set
	current timeline.ID
}

func (t *cueTracker) at(ms int) (timeline.Interval, bool) {
	if t.set == nil {
		return timeline.Interval{}, false
	}
	iv, _ := t.set.Window(ms, 0).Next()
	if iv.ID == t.current {
		return iv, false
	}
	t.current = iv.ID
	return iv, true
}
