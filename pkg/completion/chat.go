package completion

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

// ChatCompleter sends prompts to an OpenAI-compatible chat completions endpoint
type ChatCompleter struct {
	client openai.Client
	model  string
}

// NewChatCompleter creates a chat completer. An empty baseURL uses the client default.
func NewChatCompleter(apiKey, model, baseURL string, opts ...option.RequestOption) *ChatCompleter {
	clientOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(baseURL))
	}
	clientOpts = append(clientOpts, opts...)

	return &ChatCompleter{
		client: openai.NewClient(clientOpts...),
		model:  model,
	}
}

// Model returns the model identifier used for completions
func (c *ChatCompleter) Model() string {
	return c.model
}

// Complete sends the prompt as a single user message and returns the first choice verbatim
func (c *ChatCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCompletion, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: response contained no choices", ErrCompletion)
	}

	return resp.Choices[0].Message.Content, nil
}
