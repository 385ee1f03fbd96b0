package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateEditor(); err != nil {
		return err
	}
	if err := c.validateView(); err != nil {
		return err
	}
	if err := c.validateWaveform(); err != nil {
		return err
	}
	if err := c.validatePlayback(); err != nil {
		return err
	}
	return c.validateTranslate()
}

func (c *Config) validateEditor() error {
	e := c.Editor
	if e.MinBlankMs < 0 {
		return errors.New("editor.min_blank_ms must not be negative")
	}
	if e.SnapDistancePx < 0 || e.FocusTolerancePx < 0 || e.SelectionTolerancePx < 0 {
		return errors.New("editor tolerances must not be negative")
	}
	if e.MinSelectionMs < 0 {
		return errors.New("editor.min_selection_ms must not be negative")
	}
	return nil
}

func (c *Config) validateView() error {
	v := c.View
	if v.PageSizeMs <= 0 {
		return fmt.Errorf("view.page_size_ms must be positive, got %d", v.PageSizeMs)
	}
	if v.VerticalScale <= 0 || v.VerticalScale > 1000 {
		return fmt.Errorf("view.vertical_scale must be in (0, 1000], got %d", v.VerticalScale)
	}
	if v.RulerHeight < 0 || v.VoiceOverHeight < 0 {
		return errors.New("view lane heights must not be negative")
	}
	if v.RulerLabelCache <= 0 {
		return errors.New("view.ruler_label_cache must be positive")
	}
	if v.RulerLabelWidthPx <= 0 {
		return errors.New("view.ruler_label_width_px must be positive")
	}
	return nil
}

func (c *Config) validateWaveform() error {
	if c.Waveform.SampleRate <= 0 {
		return fmt.Errorf("waveform.sample_rate must be positive, got %d", c.Waveform.SampleRate)
	}
	if c.Waveform.SamplesPerBlock <= 0 {
		return fmt.Errorf("waveform.samples_per_block must be positive, got %d", c.Waveform.SamplesPerBlock)
	}
	return nil
}

func (c *Config) validatePlayback() error {
	if c.Playback.PollIntervalMs <= 0 {
		return fmt.Errorf("playback.poll_interval_ms must be positive, got %d", c.Playback.PollIntervalMs)
	}
	if c.Playback.MinDeltaMs < 0 {
		return errors.New("playback.min_delta_ms must not be negative")
	}
	return nil
}

func (c *Config) validateTranslate() error {
	if _, ok := APIKeyEnv[c.Translate.Provider]; !ok {
		return fmt.Errorf("translate.provider %q is not supported (gemini, openai, anthropic)", c.Translate.Provider)
	}
	if c.Translate.BatchSize <= 0 {
		return fmt.Errorf("translate.batch_size must be positive, got %d", c.Translate.BatchSize)
	}
	if c.Translate.Concurrency <= 0 {
		return fmt.Errorf("translate.concurrency must be positive, got %d", c.Translate.Concurrency)
	}
	return nil
}
