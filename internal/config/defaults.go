package config

const (
	defaultConfigPath  = "~/.config/waveline/config.toml"
	projectConfigName  = "waveline.toml"
	defaultProvider    = "gemini"
	defaultBatchSize   = 50
	defaultConcurrency = 3
)

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Editor: Editor{
			MinBlankMs:           0,
			SnapDistancePx:       8,
			FocusTolerancePx:     4,
			SelectionTolerancePx: 6,
			MinSelectionMs:       40,
		},
		View: View{
			PageSizeMs:        8000,
			VerticalScale:     100,
			RulerHeight:       20,
			VoiceOverHeight:   40,
			RulerLabelCache:   256,
			RulerLabelWidthPx: 60,
		},
		Waveform: Waveform{
			SampleRate:      8000,
			SamplesPerBlock: 256,
		},
		Playback: Playback{
			PollIntervalMs: 40,
			MinDeltaMs:     10,
		},
		Translate: Translate{
			Provider:    defaultProvider,
			BatchSize:   defaultBatchSize,
			Concurrency: defaultConcurrency,
		},
	}
}
