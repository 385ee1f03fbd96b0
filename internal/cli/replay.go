package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mgpai22/waveline/internal/editor"
	"github.com/mgpai22/waveline/internal/replay"
	"github.com/mgpai22/waveline/internal/subtitle"
	"github.com/mgpai22/waveline/internal/timeline"
	"github.com/mgpai22/waveline/internal/waveform"
	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay [subtitle_file]",
	Short: "Replay recorded pointer events against a subtitle track",
	Long: `Open a subtitle file as the editable track, feed it the pointer events
of a YAML script, and write the edited track.

A voice-over track (--vo) is shown read-only in its own lane. With --media
the timeline length comes from the audio; otherwise from the last cue.

Examples:
  waveline replay movie.srt --events drag.yaml -o movie.fixed.srt
  waveline replay dub.vtt --events session.yaml --vo original.vtt --media movie.mp4
  waveline replay signs.ass --events retime.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().String("events", "", "YAML event script (required)")
	replayCmd.Flags().String("vo", "", "Read-only voice-over subtitle file")
	replayCmd.Flags().String("media", "", "Media file to take the waveform and length from")

	_ = replayCmd.MarkFlagRequired("events")
}

func runReplay(cmd *cobra.Command, args []string) error {
	subsPath := args[0]
	eventsPath, _ := cmd.Flags().GetString("events")
	voPath, _ := cmd.Flags().GetString("vo")
	mediaPath, _ := cmd.Flags().GetString("media")
	outputPath := outputPathFor(cmd, subsPath, "edited")

	script, err := replay.Load(eventsPath)
	if err != nil {
		return err
	}

	subs, source, err := loadTrack(subsPath, true)
	if err != nil {
		return err
	}

	var vo *timeline.Set
	if voPath != "" {
		if vo, _, err = loadTrack(voPath, false); err != nil {
			return err
		}
	}

	var env *waveform.Envelope
	if mediaPath != "" {
		if env, err = loadEnvelope(context.Background(), mediaPath); err != nil {
			return err
		}
	}

	opts, err := editorOptions(cfg)
	if err != nil {
		return err
	}
	script.Configure(&opts)

	session, err := editor.New(subs, vo, env, opts)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	logger.Infow("Replaying events",
		"input", subsPath,
		"events", len(script.Events),
		"intervals", subs.Len(),
		"voice_over", voPath != "",
	)

	trace, err := replay.Run(session, script)
	if err != nil {
		return fmt.Errorf("replay failed: %w", err)
	}
	if session.State() == editor.StateDragging {
		logger.Warnw("Script ended mid-drag, aborting the drag")
		session.Abort()
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), traceTable(trace))

	if err := subtitle.Write(outputPath, session.Subtitles().Records(), source); err != nil {
		return fmt.Errorf("failed to write subtitle file: %w", err)
	}

	logger.Infow("Replay complete",
		"steps", len(trace.Steps),
		"output", outputPath,
	)
	return nil
}

func traceTable(trace replay.Trace) string {
	rows := make([][]string, 0, len(trace.Steps))
	for _, st := range trace.Steps {
		sel := "-"
		if st.Selection.Valid() {
			sel = fmt.Sprintf("%s-%s", formatMs(st.Selection.StartMs), formatMs(st.Selection.EndMs))
		}
		focus := "-"
		if st.Focus.Active() {
			focus = fmt.Sprintf("%s@%s", st.Focus.Mode, formatMs(st.Focus.TimeMs))
		}
		editing := "-"
		if st.Editing != timeline.NoID {
			editing = strconv.FormatUint(uint64(st.Editing), 10)
		}
		rows = append(rows, []string{
			strconv.Itoa(st.Index),
			st.Kind,
			st.State.String(),
			formatMs(st.CursorMs),
			sel,
			focus,
			editing,
		})
	}
	return renderTable(
		[]string{"#", "Event", "State", "Cursor", "Selection", "Focus", "Editing"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft, alignLeft, alignRight},
	)
}
