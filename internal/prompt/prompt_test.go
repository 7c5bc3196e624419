package prompt

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestRenderVerbatim(t *testing.T) {
	tmpl, err := Parse(`Rewrite: "{{text}}"`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain", "Hello world.", `Rewrite: "Hello world."`},
		{"quotes not escaped", `He said "hi"`, `Rewrite: "He said "hi""`},
		{"newlines kept", "a\nb", "Rewrite: \"a\nb\""},
		{"placeholder in text not re-expanded", "{{text}}", `Rewrite: "{{text}}"`},
		{"empty", "", `Rewrite: ""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tmpl.Render(tt.text); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseRequiresPlaceholder(t *testing.T) {
	_, err := Parse("no placeholder here")
	if !errors.Is(err, ErrNoPlaceholder) {
		t.Errorf("got %v, want ErrNoPlaceholder", err)
	}
}

func TestDefaultIsValid(t *testing.T) {
	if _, err := Parse(Default); err != nil {
		t.Fatalf("Default: %v", err)
	}
}

func TestLoadBuiltIn(t *testing.T) {
	s, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Template().String() != Default {
		t.Error("expected built-in default template")
	}
	if err := s.Reload(); err != nil {
		t.Errorf("Reload of built-in: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt.txt")
	if err := os.WriteFile(path, []byte("Fix: {{text}}"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := s.Render("x"); got != "Fix: x" {
		t.Errorf("got %q, want %q", got, "Fix: x")
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := Load("/nonexistent/prompt.txt"); err == nil {
			t.Error("expected error for missing file, got nil")
		}
	})

	t.Run("no placeholder", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "prompt.txt")
		if err := os.WriteFile(path, []byte("static"), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
		if _, err := Load(path); !errors.Is(err, ErrNoPlaceholder) {
			t.Errorf("got %v, want ErrNoPlaceholder", err)
		}
	})
}

func TestReloadKeepsPreviousOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt.txt")
	if err := os.WriteFile(path, []byte("A {{text}}"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if err := os.WriteFile(path, []byte("broken"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := s.Reload(); err == nil {
		t.Fatal("expected reload error, got nil")
	}
	if got := s.Render("x"); got != "A x" {
		t.Errorf("got %q, want previous template output %q", got, "A x")
	}
}

func TestWatchReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt.txt")
	if err := os.WriteFile(path, []byte("v1 {{text}}"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Watch(ctx, nil) }()
	defer func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("Watch: %v", err)
		}
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte("v2 {{text}}"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if strings.HasPrefix(s.Render("x"), "v2") {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Errorf("template not reloaded, got %q", s.Render("x"))
}

func TestWatchBuiltInFails(t *testing.T) {
	s, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := s.Watch(context.Background(), nil); err == nil {
		t.Error("expected error watching built-in template, got nil")
	}
}
