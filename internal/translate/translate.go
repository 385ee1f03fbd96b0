package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// TranslationItem is one cue's text, keyed by its position in the track.
type TranslationItem struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

type TranslationResult struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

type Translator interface {
	Translate(ctx context.Context, items []TranslationItem) ([]TranslationResult, error)
}

// Completer sends one prompt to a language model and returns its raw text
// answer. Each provider implements it.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Name() string
}

type Provider string

const (
	ProviderGemini    Provider = "gemini"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

const (
	DefaultBatchSize   = 50
	DefaultConcurrency = 3
)

type Options struct {
	InputLanguage  string
	TargetLanguage string
	Model          string
	Prompt         string
	BatchSize      int // items per API request (default 50)
	Concurrency    int // requests in flight (default 3)
}

// Factory builds a batch translator backed by the named provider.
func Factory(
	ctx context.Context,
	provider Provider,
	apiKey string,
	opts Options,
) (*BatchTranslator, error) {
	if opts.TargetLanguage == "" {
		return nil, fmt.Errorf("target language is required")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	var (
		c   Completer
		err error
	)
	switch provider {
	case ProviderGemini:
		c, err = newGeminiCompleter(ctx, apiKey, opts.Model)
	case ProviderOpenAI:
		c = newOpenAICompleter(apiKey, opts.Model)
	case ProviderAnthropic:
		c = newAnthropicCompleter(apiKey, opts.Model)
	default:
		return nil, fmt.Errorf("unsupported translation provider: %s", provider)
	}
	if err != nil {
		return nil, err
	}
	return NewBatchTranslator(c, opts), nil
}

// BuildPrompt asks for the items back as a JSON array with the same
// indices. Items are voice-over cues, so the model is told to keep each
// line speakable in the cue's time.
func BuildPrompt(opts Options, items []TranslationItem) (string, error) {
	source := "voice-over lines"
	if opts.InputLanguage != "" {
		source = opts.InputLanguage + " " + source
	}
	payload, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode cues: %w", err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are seeding a subtitle track. Translate these %s to %s.\n\n", source, opts.TargetLanguage)
	for _, rule := range promptRules {
		sb.WriteString("- ")
		sb.WriteString(rule)
		sb.WriteByte('\n')
	}
	if opts.Prompt != "" {
		fmt.Fprintf(&sb, "- %s\n", opts.Prompt)
	}
	sb.WriteString("\nCues:\n")
	sb.Write(payload)
	sb.WriteString("\n\nAnswer with the JSON array only.")
	return sb.String(), nil
}

var promptRules = []string{
	"Each cue is on screen only while its speaker talks; keep the translation about as long as the source.",
	"Keep line breaks where they are.",
	`Answer with a JSON array of {"index", "text"} objects, one per cue, reusing each cue's index.`,
	"No commentary and no markdown.",
}
