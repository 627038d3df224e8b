package completion

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/kkarthika293/Learn-Edge/internal/app_errors"
	"github.com/kkarthika293/Learn-Edge/internal/config"
)

// Client is the one seam between the app and the chat-completion provider.
// Every call carries a hard timeout; any provider failure comes back as
// app_errors.ErrCompletionUnavailable so callers decide between fallback and
// surfacing the error.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type OpenAIClient struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

func NewOpenAIClient(cfg config.Completion) *OpenAIClient {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &OpenAIClient{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}
}

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
		return "", fmt.Errorf("%w: %v", app_errors.ErrCompletionUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return "", app_errors.ErrCompletionUnavailable
	}
	return resp.Choices[0].Message.Content, nil
}
