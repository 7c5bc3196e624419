package adapter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/Yarielito06/humanizer-app/internal/config"
	"github.com/Yarielito06/humanizer-app/internal/rewrite"
)

// OpenAIAdapter calls the Chat Completions API with the whole prompt as a
// single user message.
type OpenAIAdapter struct {
	model       string
	temperature float64
	hasKey      bool
	client      openai.Client
}

func NewOpenAIAdapter(pc ProviderConfig) *OpenAIAdapter {
	opts := []option.RequestOption{
		option.WithAPIKey(pc.APIKey),
		option.WithMaxRetries(pc.MaxRetries),
		option.WithHTTPClient(pc.httpClient()),
	}
	if pc.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(pc.BaseURL))
	}

	return &OpenAIAdapter{
		model:       pc.Model,
		temperature: pc.Temperature,
		hasKey:      pc.APIKey != "",
		client:      openai.NewClient(opts...),
	}
}

func (o *OpenAIAdapter) Name() string {
	return fmt.Sprintf("OpenAI (%s)", o.model)
}

func (o *OpenAIAdapter) Ready() error {
	if !o.hasKey {
		return rewrite.MissingCredential(config.EnvOpenAIKey)
	}
	return nil
}

func (o *OpenAIAdapter) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(o.temperature),
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", rewrite.Upstream(apiErrorMessage(apiErr.Message, apiErr.RawJSON()))
		}
		return "", rewrite.Wrap(rewrite.KindTransport, err)
	}

	// An error field fails the call whatever the status.
	if msg, ok := bodyError(resp.RawJSON()); ok {
		return "", rewrite.Upstream(msg)
	}

	if len(resp.Choices) == 0 {
		return "", rewrite.EmptyResult()
	}
	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", rewrite.EmptyResult()
	}
	return content, nil
}
