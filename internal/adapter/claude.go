package adapter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/Yarielito06/humanizer-app/internal/config"
	"github.com/Yarielito06/humanizer-app/internal/rewrite"
)

const claudeMaxTokens = 4096

// ClaudeAdapter connects to the Anthropic Messages API.
type ClaudeAdapter struct {
	model       string
	temperature float64
	hasKey      bool
	client      anthropic.Client
}

func NewClaudeAdapter(pc ProviderConfig) *ClaudeAdapter {
	opts := []option.RequestOption{
		option.WithAPIKey(pc.APIKey),
		option.WithMaxRetries(pc.MaxRetries),
		option.WithHTTPClient(pc.httpClient()),
	}
	if pc.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(pc.BaseURL))
	}

	return &ClaudeAdapter{
		model:       pc.Model,
		temperature: pc.Temperature,
		hasKey:      pc.APIKey != "",
		client:      anthropic.NewClient(opts...),
	}
}

func (c *ClaudeAdapter) Name() string {
	return fmt.Sprintf("Claude (%s)", c.model)
}

func (c *ClaudeAdapter) Ready() error {
	if !c.hasKey {
		return rewrite.MissingCredential(config.EnvAnthropicKey)
	}
	return nil
}

func (c *ClaudeAdapter) Generate(ctx context.Context, prompt string) (string, error) {
	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: claudeMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
		Temperature: anthropic.Float(c.temperature),
	})
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return "", rewrite.Upstream(apiErrorMessage("", apiErr.RawJSON()))
		}
		return "", rewrite.Wrap(rewrite.KindTransport, err)
	}

	if errMsg, ok := bodyError(msg.RawJSON()); ok {
		return "", rewrite.Upstream(errMsg)
	}

	var result strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			result.WriteString(block.Text)
		}
	}
	if strings.TrimSpace(result.String()) == "" {
		return "", rewrite.EmptyResult()
	}
	return result.String(), nil
}
