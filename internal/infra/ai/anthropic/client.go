package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	domai "github.com/selvicim45/LegalEagleEyeAI/internal/domain/ai"
)

const (
	maxTokens   = 800
	temperature = 0.4
)

// Client is the Claude completion provider.
type Client struct {
	client     anthropic.Client
	model      string
	configured bool
}

var _ domai.Provider = (*Client)(nil)

func NewClient(apiKey, model string) *Client {
	c := &Client{model: model}
	if apiKey != "" {
		c.client = anthropic.NewClient(option.WithAPIKey(apiKey))
		c.configured = true
	}
	return c
}

func (c *Client) Name() string { return "anthropic" }

func (c *Client) Configured() bool { return c.configured }

func (c *Client) Complete(ctx context.Context, systemPrompt, userText string) (string, error) {
	if !c.configured {
		return "", domai.ErrNotConfigured
	}
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   maxTokens,
		Temperature: anthropic.Float(temperature),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userText)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("claude message failed: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("empty response from claude")
	}
	return text.String(), nil
}
