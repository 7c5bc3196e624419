// Package adapter implements rewrite.Generator for each supported upstream
// text-generation provider. Exactly one adapter is active per process.
package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Yarielito06/humanizer-app/internal/config"
	"github.com/Yarielito06/humanizer-app/internal/rewrite"
)

// ModelInfo is exposed via GET /api/models.
type ModelInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
}

// ProviderConfig carries the settings shared by the HTTP-backed adapters.
type ProviderConfig struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
	MaxRetries  int
	// Client is used for upstream calls. Nil means a client without timeout.
	Client *http.Client
}

func (p ProviderConfig) httpClient() *http.Client {
	if p.Client != nil {
		return p.Client
	}
	return &http.Client{}
}

// New builds the adapter selected by cfg.Provider. useMock forces the mock
// adapter regardless of configuration.
func New(cfg config.Config, useMock bool) (rewrite.Generator, ModelInfo, error) {
	provider := cfg.Provider
	if useMock {
		provider = config.ProviderMock
	}

	client := &http.Client{Timeout: cfg.UpstreamTimeout}
	_, apiKey := cfg.Credential()

	switch provider {
	case config.ProviderOpenAI:
		a := NewOpenAIAdapter(ProviderConfig{
			APIKey:      apiKey,
			Model:       cfg.OpenAIModel,
			BaseURL:     cfg.OpenAIBaseURL,
			Temperature: cfg.Temperature,
			MaxRetries:  cfg.MaxRetries,
			Client:      client,
		})
		return a, ModelInfo{ID: cfg.OpenAIModel, Name: a.Name(), Provider: provider}, nil

	case config.ProviderGemini:
		a := &GeminiAdapter{
			BaseURL:     cfg.GeminiBaseURL,
			APIKey:      apiKey,
			Model:       cfg.GeminiModel,
			Temperature: cfg.Temperature,
			MaxRetries:  cfg.MaxRetries,
			Client:      client,
		}
		return a, ModelInfo{ID: cfg.GeminiModel, Name: a.Name(), Provider: provider}, nil

	case config.ProviderAnthropic:
		a := NewClaudeAdapter(ProviderConfig{
			APIKey:      apiKey,
			Model:       cfg.AnthropicModel,
			BaseURL:     cfg.AnthropicBaseURL,
			Temperature: cfg.Temperature,
			MaxRetries:  cfg.MaxRetries,
			Client:      client,
		})
		return a, ModelInfo{ID: cfg.AnthropicModel, Name: a.Name(), Provider: provider}, nil

	case config.ProviderMock:
		a := &MockAdapter{Delay: 500 * time.Millisecond}
		return a, ModelInfo{ID: "mock", Name: "Mock (dev)", Provider: provider}, nil
	}

	return nil, ModelInfo{}, fmt.Errorf("adapter: unknown provider %q", provider)
}

// bodyError reports whether a decoded 2xx body still carries a top-level
// error field, and the provider's message for it.
func bodyError(raw string) (string, bool) {
	var env struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return "", false
	}
	if len(env.Error) == 0 || string(env.Error) == "null" {
		return "", false
	}
	return apiErrorMessage("", raw), true
}

type errorEnvelope struct {
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
	Message string `json:"message"`
}

// apiErrorMessage picks the provider's own message out of an SDK error,
// accepting both the {"error":{"message":...}} envelope and a bare object.
func apiErrorMessage(parsed, raw string) string {
	if parsed != "" {
		return parsed
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	var env errorEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return ""
	}
	if env.Error != nil && env.Error.Message != "" {
		return env.Error.Message
	}
	return env.Message
}
