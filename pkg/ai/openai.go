package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
)

// OpenAIClient is the production Completer backed by the OpenAI chat
// completions API.
type OpenAIClient struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

func NewOpenAIClient(apiKey, model string, timeout time.Duration) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY not configured")
	}
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OpenAIClient{
		client:  openai.NewClient(apiKey),
		model:   model,
		timeout: timeout,
	}, nil
}

// Complete sends a single-message chat completion. The call is bounded by
// the configured timeout on top of whatever deadline the request context
// carries.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
