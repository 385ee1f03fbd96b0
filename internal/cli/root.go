package cli

import (
	"fmt"

	"github.com/mgpai22/waveline/internal/config"
	"github.com/mgpai22/waveline/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	logger     *logging.Logger
	cfg        *config.Config
	cfgPath    string
	cfgFound   bool
)

var rootCmd = &cobra.Command{
	Use:   "waveline",
	Short: "Timeline engine for subtitle and waveform editing",
	Long: `Waveline keeps subtitle cues on a timeline next to the audio waveform.

It extracts peak envelopes from media, renders them at any zoom, and drives
the interactive editing session (focus, snapping, anti-overlap drags) from
recorded pointer scripts.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.NewLogger(verbose)

		loaded, path, found, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg, cfgPath, cfgFound = loaded, path, found

		logger.Debugw("Loaded configuration",
			"path", cfgPath,
			"found", cfgFound,
			"session", logger.Session,
		)
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", "", "Config file path (default ~/.config/waveline/config.toml)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
}
