package translate

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// completes prompts with Google Gemini
type geminiCompleter struct {
	client *genai.Client
	model  string
}

func newGeminiCompleter(ctx context.Context, apiKey, model string) (*geminiCompleter, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &geminiCompleter{client: client, model: model}, nil
}

func (c *geminiCompleter) Name() string {
	return "Gemini"
}

func (c *geminiCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(prompt)}, genai.RoleUser),
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", err
	}
	if result == nil || len(result.Candidates) == 0 {
		return "", fmt.Errorf("empty response from Gemini")
	}

	// first candidate with any text wins
	for _, candidate := range result.Candidates {
		if candidate.Content == nil {
			continue
		}
		var sb strings.Builder
		for _, part := range candidate.Content.Parts {
			sb.WriteString(part.Text)
		}
		if sb.Len() > 0 {
			return sb.String(), nil
		}
	}
	return "", nil
}
