package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mgpai22/waveline/internal/audio"
	"github.com/mgpai22/waveline/internal/config"
	"github.com/mgpai22/waveline/internal/editor"
	"github.com/mgpai22/waveline/internal/subtitle"
	"github.com/mgpai22/waveline/internal/timeline"
	"github.com/mgpai22/waveline/internal/waveform"
	"github.com/spf13/cobra"
)

// editorOptions maps the loaded configuration onto session options.
func editorOptions(c *config.Config) (editor.Options, error) {
	ruler, err := waveform.NewRuler(c.View.RulerLabelWidthPx, c.View.RulerLabelCache)
	if err != nil {
		return editor.Options{}, fmt.Errorf("failed to create ruler: %w", err)
	}

	opts := editor.DefaultOptions()
	opts.MinBlankMs = c.Editor.MinBlankMs
	opts.SnapDistancePx = c.Editor.SnapDistancePx
	opts.FocusTolerancePx = c.Editor.FocusTolerancePx
	opts.SelectionTolerancePx = c.Editor.SelectionTolerancePx
	opts.MinSelectionMs = c.Editor.MinSelectionMs
	opts.MinPlayDeltaMs = c.Playback.MinDeltaMs
	opts.VerticalScale = c.View.VerticalScale
	opts.Viewport.PageSizeMs = c.View.PageSizeMs
	opts.Layout.RulerHeight = c.View.RulerHeight
	opts.Layout.VoiceOverHeight = c.View.VoiceOverHeight
	opts.Ruler = ruler
	if logger != nil {
		opts.Logger = logger.Zap()
	}
	return opts, nil
}

func peakOptions(c *config.Config) audio.PeakOptions {
	return audio.PeakOptions{
		SampleRate:      c.Waveform.SampleRate,
		SamplesPerBlock: c.Waveform.SamplesPerBlock,
	}
}

// loadTrack reads a subtitle file into an interval set. The parsed file is
// returned too, as the template the edited track is written back with.
func loadTrack(path string, editable bool) (*timeline.Set, *subtitle.Subtitle, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("subtitle file not found: %s", path)
	}

	sub, err := subtitle.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse subtitle file: %w", err)
	}

	set, err := timeline.NewSet(sub.Records(), editable)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid cue in %s: %w", path, err)
	}
	return set, sub, nil
}

// loadEnvelope extracts the peak envelope of a media file.
func loadEnvelope(ctx context.Context, path string) (*waveform.Envelope, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("media file not found: %s", path)
	}
	if !audio.IsMediaFile(path) {
		return nil, fmt.Errorf("unsupported media file: %s", path)
	}

	logger.Infow("Extracting peaks",
		"input", path,
		"sample_rate", cfg.Waveform.SampleRate,
		"samples_per_block", cfg.Waveform.SamplesPerBlock,
	)
	env, err := audio.ExtractPeaks(ctx, path, peakOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to extract peaks: %w", err)
	}
	logger.Infow("Extracted peaks",
		"blocks", len(env.Peaks),
		"length_ms", env.LengthMs(),
	)
	return env, nil
}

// outputPathFor returns --output, or input with suffix inserted before the
// extension.
func outputPathFor(cmd *cobra.Command, input, suffix string) string {
	out, _ := cmd.Flags().GetString("output")
	if out != "" {
		return out
	}
	ext := filepath.Ext(input)
	return fmt.Sprintf("%s.%s%s", strings.TrimSuffix(input, ext), suffix, ext)
}

func formatMs(ms int) string {
	return waveform.FormatShortTime(ms, 1)
}
