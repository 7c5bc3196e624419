// Package rewrite holds the request-independent part of the rewrite flow:
// credential check, prompt construction, the upstream call and result
// validation. The HTTP, Lambda and CLI surfaces all go through Service.
package rewrite

import (
	"context"
	"strings"
)

// Generator is the capability every upstream provider adapter implements.
type Generator interface {
	// Name returns a human-readable name such as "OpenAI (gpt-3.5-turbo)".
	Name() string

	// Ready returns a KindConfiguration error when the adapter cannot be
	// used, typically because its credential is unset.
	Ready() error

	// Generate sends prompt upstream and returns the generated text.
	Generate(ctx context.Context, prompt string) (string, error)
}

// PromptSource renders the instructional prompt around the caller's text.
type PromptSource interface {
	Render(text string) string
}

type Service struct {
	gen    Generator
	prompt PromptSource
}

func NewService(gen Generator, prompt PromptSource) *Service {
	return &Service{gen: gen, prompt: prompt}
}

// Provider returns the name of the configured generator.
func (s *Service) Provider() string { return s.gen.Name() }

// Rewrite runs one rewrite. Every returned error is an *Error.
func (s *Service) Rewrite(ctx context.Context, text string) (string, error) {
	if err := s.gen.Ready(); err != nil {
		return "", Wrap(KindConfiguration, err)
	}

	out, err := s.gen.Generate(ctx, s.prompt.Render(text))
	if err != nil {
		return "", Wrap(KindTransport, err)
	}
	if strings.TrimSpace(out) == "" {
		return "", EmptyResult()
	}
	return out, nil
}
