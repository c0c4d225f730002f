package openai

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	domai "github.com/selvicim45/LegalEagleEyeAI/internal/domain/ai"
)

const (
	maxTokens   = 800
	temperature = 0.4
)

// Client wraps the go-openai chat completion API. The same type serves both
// the public OpenAI endpoint and an Azure OpenAI deployment; only the client
// configuration differs.
type Client struct {
	client *openai.Client
	name   string
	model  string
}

var _ domai.Provider = (*Client)(nil)

// NewClient builds a provider for api.openai.com. An empty apiKey leaves the
// provider unconfigured so the fallback chain skips it.
func NewClient(apiKey, model string) *Client {
	c := &Client{name: "openai", model: model}
	if apiKey != "" {
		c.client = openai.NewClient(apiKey)
	}
	return c
}

// NewAzureClient builds a provider for an Azure OpenAI deployment. All three
// of apiKey, endpoint and deployment are required for it to be configured.
func NewAzureClient(apiKey, endpoint, deployment string) *Client {
	c := &Client{name: "azure-openai", model: deployment}
	if apiKey != "" && endpoint != "" && deployment != "" {
		cfg := openai.DefaultAzureConfig(apiKey, endpoint)
		c.client = openai.NewClientWithConfig(cfg)
	}
	return c
}

func (c *Client) Name() string { return c.name }

func (c *Client) Configured() bool { return c.client != nil }

func (c *Client) Complete(ctx context.Context, systemPrompt, userText string) (string, error) {
	if c.client == nil {
		return "", domai.ErrNotConfigured
	}
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userText},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from %s", c.name)
	}
	return resp.Choices[0].Message.Content, nil
}
