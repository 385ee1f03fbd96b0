package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mgpai22/waveline/internal/config"
	"github.com/mgpai22/waveline/internal/subtitle"
	"github.com/mgpai22/waveline/internal/translate"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed [voice_over_file]",
	Short: "Seed an editable track by translating the voice-over track",
	Long: `Translate a voice-over subtitle file with an LLM and write the result as
a new track with the same timings, ready to be edited against the original.

Provider, model, batch size and concurrency default to the [translate]
config section; flags override it.

Examples:
  waveline seed original.srt --target-language japanese
  waveline seed original.vtt -t es --provider anthropic -o dub.es.vtt`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().
		StringP("target-language", "t", "", "Target language for translation (required)")
	seedCmd.Flags().
		StringP("language", "l", "", "Language of the voice-over track (e.g., en, es, fr)")
	seedCmd.Flags().
		StringP("api-key", "k", "", "API key (or set GEMINI_API_KEY/OPENAI_API_KEY/ANTHROPIC_API_KEY)")
	seedCmd.Flags().String("provider", "", "Translation provider (gemini, openai, anthropic)")
	seedCmd.Flags().String("model", "", "Model to use (provider-specific, uses sensible defaults)")
	seedCmd.Flags().Int("concurrency", 0, "Number of parallel translation requests")
	seedCmd.Flags().Int("batch-size", 0, "Number of cues per API request")

	_ = seedCmd.MarkFlagRequired("target-language")
}

func runSeed(cmd *cobra.Command, args []string) error {
	voPath := args[0]
	ctx := context.Background()

	targetLang, _ := cmd.Flags().GetString("target-language")
	inputLang, _ := cmd.Flags().GetString("language")

	settings, err := seedSettings(cmd, cfg.Translate)
	if err != nil {
		return err
	}

	targetLang = strings.TrimSpace(targetLang)
	if targetLang == "" {
		return fmt.Errorf("target language is required")
	}
	if inputLang != "" && strings.EqualFold(strings.TrimSpace(inputLang), targetLang) {
		return fmt.Errorf(
			"input language %q and target language %q cannot be the same",
			inputLang,
			targetLang,
		)
	}
	if settings.APIKey == "" {
		return fmt.Errorf(
			"API key is required: use --api-key flag or set %s environment variable",
			config.APIKeyEnv[settings.Provider],
		)
	}

	vo, source, err := loadTrack(voPath, false)
	if err != nil {
		return err
	}
	if vo.Len() == 0 {
		return fmt.Errorf("subtitle file contains no entries")
	}

	outputPath := outputPathFor(cmd, voPath, targetLang)

	logger.Infow("Seeding track from voice-over",
		"input", voPath,
		"output", outputPath,
		"provider", settings.Provider,
		"model", settings.Model,
		"target_language", targetLang,
		"entries", vo.Len(),
	)

	translator, err := translate.Factory(ctx, translate.Provider(settings.Provider), settings.APIKey, translate.Options{
		InputLanguage:  inputLang,
		TargetLanguage: targetLang,
		Model:          settings.Model,
		BatchSize:      settings.BatchSize,
		Concurrency:    settings.Concurrency,
	})
	if err != nil {
		return fmt.Errorf("failed to create translator: %w", err)
	}

	records, err := translate.SeedTrack(ctx, translator, vo)
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}

	if err := subtitle.Write(outputPath, records, source); err != nil {
		return fmt.Errorf("failed to write subtitle file: %w", err)
	}

	logger.Infow("Seeded track written",
		"output", outputPath,
		"entries", len(records),
	)
	return nil
}

// seedSettings layers the seed flags over the [translate] config section.
func seedSettings(cmd *cobra.Command, base config.Translate) (config.Translate, error) {
	s := base
	flags := cmd.Flags()

	if flags.Changed("provider") {
		p, _ := flags.GetString("provider")
		p = strings.ToLower(strings.TrimSpace(p))
		if _, ok := config.APIKeyEnv[p]; !ok {
			return s, fmt.Errorf("unsupported translation provider %q: use gemini, openai or anthropic", p)
		}
		if p != s.Provider {
			s.APIKey = os.Getenv(config.APIKeyEnv[p])
			s.Model = ""
		}
		s.Provider = p
	}
	if flags.Changed("model") {
		s.Model, _ = flags.GetString("model")
	}
	if flags.Changed("api-key") {
		s.APIKey, _ = flags.GetString("api-key")
	}
	if flags.Changed("concurrency") {
		s.Concurrency, _ = flags.GetInt("concurrency")
		if s.Concurrency <= 0 {
			return s, fmt.Errorf("concurrency must be positive, got %d", s.Concurrency)
		}
	}
	if flags.Changed("batch-size") {
		s.BatchSize, _ = flags.GetInt("batch-size")
		if s.BatchSize <= 0 {
			return s, fmt.Errorf("batch-size must be positive, got %d", s.BatchSize)
		}
	}
	return s, nil
}
