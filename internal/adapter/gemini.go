package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Yarielito06/humanizer-app/internal/config"
	"github.com/Yarielito06/humanizer-app/internal/rewrite"
)

const geminiDefaultBaseURL = "https://generativelanguage.googleapis.com"

// geminiRetryBase is the first retry delay; it doubles per attempt.
var geminiRetryBase = 500 * time.Millisecond

// GeminiAdapter calls the Generative Language generateContent endpoint. The
// API key travels as the key query parameter.
type GeminiAdapter struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	MaxRetries  int
	Client      *http.Client
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature float64 `json:"temperature"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}

type geminiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
	Error      *geminiError      `json:"error"`
}

func (g *GeminiAdapter) Name() string {
	return fmt.Sprintf("Gemini (%s)", g.Model)
}

func (g *GeminiAdapter) Ready() error {
	if g.APIKey == "" {
		return rewrite.MissingCredential(config.EnvGeminiKey)
	}
	return nil
}

func (g *GeminiAdapter) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: geminiGenerationConfig{Temperature: g.Temperature},
	})
	if err != nil {
		return "", rewrite.Wrap(rewrite.KindTransport, fmt.Errorf("gemini: marshal request: %w", err))
	}

	status, data, err := g.post(ctx, body)
	if err != nil {
		return "", rewrite.Wrap(rewrite.KindTransport, err)
	}

	var resp geminiResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", rewrite.Wrap(rewrite.KindTransport, fmt.Errorf("gemini: decode response: %w", err))
	}

	// The error field wins regardless of the HTTP status.
	if resp.Error != nil {
		return "", rewrite.Upstream(resp.Error.Message)
	}
	if status < 200 || status > 299 {
		return "", rewrite.Upstream(fmt.Sprintf("gemini: unexpected status %d", status))
	}

	if len(resp.Candidates) == 0 {
		return "", rewrite.EmptyResult()
	}
	var result strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		result.WriteString(p.Text)
	}
	if strings.TrimSpace(result.String()) == "" {
		return "", rewrite.EmptyResult()
	}
	return result.String(), nil
}

// post sends body, retrying network errors and 429/5xx responses up to
// MaxRetries times with exponential backoff.
func (g *GeminiAdapter) post(ctx context.Context, body []byte) (int, []byte, error) {
	baseURL := g.BaseURL
	if baseURL == "" {
		baseURL = geminiDefaultBaseURL
	}
	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		strings.TrimRight(baseURL, "/"), url.PathEscape(g.Model), url.QueryEscape(g.APIKey))

	client := g.Client
	if client == nil {
		client = &http.Client{}
	}

	var lastErr error
	for attempt := 0; attempt <= g.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := geminiRetryBase << (attempt - 1)
			slog.Debug("retrying upstream request",
				"provider", "gemini",
				"attempt", attempt,
				"max_retries", g.MaxRetries,
				"backoff", backoff,
			)
			select {
			case <-ctx.Done():
				return 0, nil, fmt.Errorf("gemini: %w", ctx.Err())
			case <-time.After(backoff):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return 0, nil, fmt.Errorf("gemini: create request: %w", redactKey(err, g.APIKey))
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return 0, nil, fmt.Errorf("gemini: request: %w", ctx.Err())
			}
			lastErr = fmt.Errorf("gemini: request: %w", redactKey(err, g.APIKey))
			continue
		}

		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("gemini: read response: %w", err)
			continue
		}

		if retryableStatus(resp.StatusCode) && attempt < g.MaxRetries {
			lastErr = fmt.Errorf("gemini: unexpected status %d", resp.StatusCode)
			continue
		}
		return resp.StatusCode, data, nil
	}
	return 0, nil, lastErr
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

// redactKey strips the API key from errors that echo the request URL.
func redactKey(err error, key string) error {
	if key == "" || !strings.Contains(err.Error(), url.QueryEscape(key)) {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), url.QueryEscape(key), "REDACTED"))
}
