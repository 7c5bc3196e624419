// Package prompt owns the instructional template the caller's text is
// embedded in before it is sent upstream.
package prompt

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync/atomic"
)

// Placeholder is replaced by the caller's text, verbatim and unescaped.
const Placeholder = "{{text}}"

// Default is used when no prompt file is configured.
const Default = `
You are a professional editor. Rewrite the following text so it reads as if a person wrote it.

Guidelines:
- Vary sentence length. Mix short sentences with longer, more complex ones.
- Use varied vocabulary and natural phrasing while keeping the meaning clear.
- Tone: natural, slightly informal but still academic.
- Do NOT change the core meaning or facts.
- Return ONLY the rewritten text.

Text to rewrite:
"{{text}}"
`

var ErrNoPlaceholder = errors.New("prompt: template has no " + Placeholder + " placeholder")

type Template struct {
	raw string
}

// Parse validates raw as a template.
func Parse(raw string) (Template, error) {
	if !strings.Contains(raw, Placeholder) {
		return Template{}, ErrNoPlaceholder
	}
	return Template{raw: raw}, nil
}

// Render substitutes text into the template. No quoting or escaping is
// applied: quote characters in text reach the provider as-is.
func (t Template) Render(text string) string {
	return strings.ReplaceAll(t.raw, Placeholder, text)
}

func (t Template) String() string { return t.raw }

// Store holds the current template and may be swapped while requests read it.
type Store struct {
	path    string
	current atomic.Pointer[Template]
}

// Load reads the template at path. An empty path yields Default.
func Load(path string) (*Store, error) {
	s := &Store{path: path}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewStore wraps an already parsed template. Reload is a no-op for it.
func NewStore(t Template) *Store {
	s := &Store{}
	s.current.Store(&t)
	return s
}

// Path returns the backing file, or "" for the built-in template.
func (s *Store) Path() string { return s.path }

// Reload re-reads the backing file. On failure the previous template is kept.
func (s *Store) Reload() error {
	raw := Default
	if s.path != "" {
		data, err := os.ReadFile(s.path)
		if err != nil {
			return fmt.Errorf("prompt: read %s: %w", s.path, err)
		}
		raw = string(data)
	} else if s.current.Load() != nil {
		return nil
	}

	t, err := Parse(raw)
	if err != nil {
		return fmt.Errorf("prompt: %s: %w", s.describe(), err)
	}
	s.current.Store(&t)
	return nil
}

func (s *Store) Template() Template { return *s.current.Load() }

func (s *Store) Render(text string) string { return s.Template().Render(text) }

func (s *Store) describe() string {
	if s.path == "" {
		return "built-in"
	}
	return s.path
}
