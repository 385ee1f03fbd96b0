package translate

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// completes prompts with OpenAI Chat Completions
type openAICompleter struct {
	client openai.Client
	model  string
}

func newOpenAICompleter(apiKey, model string) *openAICompleter {
	if model == "" {
		model = "gpt-5-mini"
	}
	return &openAICompleter{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

func (c *openAICompleter) Name() string {
	return "OpenAI"
}

func (c *openAICompleter) Complete(ctx context.Context, prompt string) (string, error) {
	completion, err := c.client.Chat.Completions.New(
		ctx,
		openai.ChatCompletionNewParams{
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.UserMessage(prompt),
			},
			Model: c.model,
		},
	)
	if err != nil {
		return "", err
	}
	if completion == nil || len(completion.Choices) == 0 {
		return "", fmt.Errorf("empty response from OpenAI")
	}
	return completion.Choices[0].Message.Content, nil
}
