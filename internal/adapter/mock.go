package adapter

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// MockAdapter returns simulated responses with a configurable delay.
// Used for development and testing without a real LLM backend.
type MockAdapter struct {
	Delay time.Duration
	// Reply, when set, is returned verbatim instead of the echoed prompt.
	Reply string
}

func (m *MockAdapter) Name() string { return "Mock" }

func (m *MockAdapter) Ready() error { return nil }

func (m *MockAdapter) Generate(ctx context.Context, prompt string) (string, error) {
	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return "", fmt.Errorf("mock: %w", ctx.Err())
		}
	}
	if m.Reply != "" {
		return m.Reply, nil
	}

	out := strings.TrimSpace(prompt)
	if len(out) > 0 && out[0] >= 'a' && out[0] <= 'z' {
		out = strings.ToUpper(out[:1]) + out[1:]
	}
	return out, nil
}
