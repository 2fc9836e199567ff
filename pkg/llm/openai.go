package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/brightpath-ai/brightpath/pkg/config"
)

// OpenAIClient implements Client against an OpenAI-compatible backend.
type OpenAIClient struct {
	client *openai.Client
	cfg    config.BackendConfig
}

// NewOpenAIClient creates an OpenAIClient from backend config.
func NewOpenAIClient(cfg config.BackendConfig) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("backend api key not configured")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.URL != "" {
		clientConfig.BaseURL = cfg.URL
	}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
	}, nil
}

// Complete performs one chat completion and returns text and token counts.
func (c *OpenAIClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (Completion, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		return Completion{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Completion{}, errors.New("empty chat response")
	}

	return Completion{
		Text:         strings.TrimSpace(resp.Choices[0].Message.Content),
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
	}, nil
}
