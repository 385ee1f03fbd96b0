package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Editor holds the interaction tolerances of the editing surface.
type Editor struct {
	MinBlankMs           int `toml:"min_blank_ms"`
	SnapDistancePx       int `toml:"snap_distance_px"`
	FocusTolerancePx     int `toml:"focus_tolerance_px"`
	SelectionTolerancePx int `toml:"selection_tolerance_px"`
	MinSelectionMs       int `toml:"min_selection_ms"`
}

// View holds the initial zoom and the lane geometry.
type View struct {
	PageSizeMs        int `toml:"page_size_ms"`
	VerticalScale     int `toml:"vertical_scale"`
	RulerHeight       int `toml:"ruler_height"`
	VoiceOverHeight   int `toml:"voice_over_height"`
	RulerLabelCache   int `toml:"ruler_label_cache"`
	RulerLabelWidthPx int `toml:"ruler_label_width_px"`
}

// Waveform controls peak extraction.
type Waveform struct {
	SampleRate      int `toml:"sample_rate"`
	SamplesPerBlock int `toml:"samples_per_block"`
}

// Playback controls how often the play cursor is sampled.
type Playback struct {
	PollIntervalMs int `toml:"poll_interval_ms"`
	MinDeltaMs     int `toml:"min_delta_ms"`
}

// Translate configures the LLM used to seed an editable track.
type Translate struct {
	Provider    string `toml:"provider"`
	Model       string `toml:"model"`
	APIKey      string `toml:"api_key"`
	BatchSize   int    `toml:"batch_size"`
	Concurrency int    `toml:"concurrency"`
}

// Config is the full waveline configuration.
type Config struct {
	Editor    Editor    `toml:"editor"`
	View      View      `toml:"view"`
	Waveform  Waveform  `toml:"waveform"`
	Playback  Playback  `toml:"playback"`
	Translate Translate `toml:"translate"`
}

// DefaultConfigPath returns the absolute path of the per-user config file.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, normalizes and validates a configuration file. A
// missing file is not an error: the defaults apply. It returns the path it
// resolved and whether a file was read.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file).DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// Encode renders the configuration as TOML.
func (c *Config) Encode() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}
