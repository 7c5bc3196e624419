package adapter

import (
	"strings"
	"testing"

	"github.com/Yarielito06/humanizer-app/internal/config"
)

func TestNew(t *testing.T) {
	base := config.Config{
		OpenAIModel:    "gpt-3.5-turbo",
		GeminiModel:    "gemini-1.5-flash",
		AnthropicModel: "claude-haiku-4-5",
		Temperature:    0.7,
	}

	tests := []struct {
		provider string
		useMock  bool
		wantID   string
		wantName string
	}{
		{config.ProviderOpenAI, false, "gpt-3.5-turbo", "OpenAI (gpt-3.5-turbo)"},
		{config.ProviderGemini, false, "gemini-1.5-flash", "Gemini (gemini-1.5-flash)"},
		{config.ProviderAnthropic, false, "claude-haiku-4-5", "Claude (claude-haiku-4-5)"},
		{config.ProviderMock, false, "mock", "Mock (dev)"},
		{config.ProviderOpenAI, true, "mock", "Mock (dev)"},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			cfg := base
			cfg.Provider = tt.provider

			gen, info, err := New(cfg, tt.useMock)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if gen == nil {
				t.Fatal("expected generator, got nil")
			}
			if info.ID != tt.wantID {
				t.Errorf("id: got %q, want %q", info.ID, tt.wantID)
			}
			if info.Name != tt.wantName {
				t.Errorf("name: got %q, want %q", info.Name, tt.wantName)
			}
		})
	}
}

func TestNewUnknownProvider(t *testing.T) {
	_, _, err := New(config.Config{Provider: "cohere"}, false)
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestNewCarriesCredential(t *testing.T) {
	cfg := config.Config{Provider: config.ProviderGemini, GeminiModel: "gemini-1.5-flash"}

	gen, _, err := New(cfg, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if gen.Ready() == nil {
		t.Error("expected not ready without GEMINI_API_KEY")
	}

	cfg.GeminiAPIKey = "g-test"
	gen, _, _ = New(cfg, false)
	if err := gen.Ready(); err != nil {
		t.Errorf("expected ready, got %v", err)
	}
}

func TestAPIErrorMessage(t *testing.T) {
	tests := []struct {
		name   string
		parsed string
		raw    string
		want   string
	}{
		{"parsed wins", "rate limited", `{"message":"other"}`, "rate limited"},
		{"envelope", "", `{"error":{"message":"rate limited"}}`, "rate limited"},
		{"bare object", "", `{"type":"rate_limit_error","message":"slow down"}`, "slow down"},
		{"no message", "", `{"type":"error"}`, ""},
		{"not json", "", `bad gateway`, ""},
		{"empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := apiErrorMessage(tt.parsed, tt.raw); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewUsesActiveProviderCredential(t *testing.T) {
	cfg := config.Config{
		Provider:        config.ProviderOpenAI,
		OpenAIModel:     "gpt-3.5-turbo",
		AnthropicAPIKey: "ak-test",
	}
	gen, _, err := New(cfg, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	err = gen.Ready()
	if err == nil {
		t.Fatal("expected not ready: only another provider's key is set")
	}
	if name, _ := cfg.Credential(); !strings.Contains(err.Error(), name) {
		t.Errorf("error %q should name %s", err.Error(), name)
	}
}

func TestBodyError(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantMsg string
		wantOK  bool
	}{
		{"envelope", `{"error":{"message":"rate limited"}}`, "rate limited", true},
		{"no message", `{"error":{"code":500}}`, "", true},
		{"string error", `{"error":"boom"}`, "", true},
		{"null error", `{"error":null,"choices":[]}`, "", false},
		{"no error", `{"choices":[]}`, "", false},
		{"not json", `bad gateway`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, ok := bodyError(tt.raw)
			if ok != tt.wantOK || msg != tt.wantMsg {
				t.Errorf("got (%q, %v), want (%q, %v)", msg, ok, tt.wantMsg, tt.wantOK)
			}
		})
	}
}
