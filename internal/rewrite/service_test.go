package rewrite

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

type stubGenerator struct {
	out      string
	err      error
	readyErr error
	prompts  []string
}

func (s *stubGenerator) Name() string { return "stub" }
func (s *stubGenerator) Ready() error { return s.readyErr }
func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.out, s.err
}

type quotePrompt struct{}

func (quotePrompt) Render(text string) string { return `rewrite "` + text + `"` }

func TestServiceRewrite(t *testing.T) {
	tests := []struct {
		name     string
		gen      *stubGenerator
		want     string
		wantKind Kind
		wantMsg  string
	}{
		{
			name: "success",
			gen:  &stubGenerator{out: "Hi there."},
			want: "Hi there.",
		},
		{
			name:     "missing credential",
			gen:      &stubGenerator{readyErr: MissingCredential("OPENAI_API_KEY")},
			wantKind: KindConfiguration,
			wantMsg:  "Server Config Error: OPENAI_API_KEY missing",
		},
		{
			name:     "upstream error",
			gen:      &stubGenerator{err: Upstream("rate limited")},
			wantKind: KindUpstream,
			wantMsg:  "rate limited",
		},
		{
			name:     "empty text",
			gen:      &stubGenerator{out: ""},
			wantKind: KindEmptyResult,
			wantMsg:  MsgNoText,
		},
		{
			name:     "whitespace only",
			gen:      &stubGenerator{out: "  \n"},
			wantKind: KindEmptyResult,
			wantMsg:  MsgNoText,
		},
		{
			name:     "unclassified error becomes transport",
			gen:      &stubGenerator{err: fmt.Errorf("dial tcp: connection refused")},
			wantKind: KindTransport,
			wantMsg:  "dial tcp: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.gen, quotePrompt{})
			got, err := svc.Rewrite(context.Background(), "Hello world.")

			if tt.wantKind == KindUnknown {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got != tt.want {
					t.Errorf("got %q, want %q", got, tt.want)
				}
				return
			}

			if err == nil {
				t.Fatalf("expected error, got result %q", got)
			}
			if k := KindOf(err); k != tt.wantKind {
				t.Errorf("kind: got %v, want %v", k, tt.wantKind)
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("message: got %q, want %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestServiceSkipsUpstreamWhenNotReady(t *testing.T) {
	gen := &stubGenerator{readyErr: MissingCredential("GEMINI_API_KEY"), out: "unused"}
	svc := NewService(gen, quotePrompt{})

	if _, err := svc.Rewrite(context.Background(), "x"); err == nil {
		t.Fatal("expected error, got nil")
	}
	if len(gen.prompts) != 0 {
		t.Errorf("upstream called %d times, want 0", len(gen.prompts))
	}
}

func TestServicePromptContainsTextVerbatim(t *testing.T) {
	gen := &stubGenerator{out: "ok"}
	svc := NewService(gen, quotePrompt{})

	text := `She said "don't" & left.`
	if _, err := svc.Rewrite(context.Background(), text); err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if len(gen.prompts) != 1 {
		t.Fatalf("prompts: got %d, want 1", len(gen.prompts))
	}
	if want := `rewrite "` + text + `"`; gen.prompts[0] != want {
		t.Errorf("prompt: got %q, want %q", gen.prompts[0], want)
	}
}

func TestKindStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindMethodNotAllowed, http.StatusMethodNotAllowed},
		{KindConfiguration, http.StatusInternalServerError},
		{KindUpstream, http.StatusInternalServerError},
		{KindEmptyResult, http.StatusInternalServerError},
		{KindTransport, http.StatusInternalServerError},
		{KindUnknown, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := tt.kind.Status(); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWrapKeepsExistingKind(t *testing.T) {
	orig := EmptyResult()
	wrapped := Wrap(KindTransport, fmt.Errorf("gemini: %w", orig))
	if KindOf(wrapped) != KindEmptyResult {
		t.Errorf("kind: got %v, want %v", KindOf(wrapped), KindEmptyResult)
	}
	if wrapped.Error() != MsgNoText {
		t.Errorf("message: got %q, want %q", wrapped.Error(), MsgNoText)
	}
	if !errors.Is(wrapped, orig) {
		t.Error("wrapped error lost its cause")
	}
}

func TestUpstreamFallbackMessage(t *testing.T) {
	if got := Upstream("").Error(); got != MsgUpstreamFallback {
		t.Errorf("got %q, want %q", got, MsgUpstreamFallback)
	}
}
