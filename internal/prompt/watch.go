package prompt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 100 * time.Millisecond

// Watch reloads the template whenever its file is written or replaced. It
// blocks until ctx is cancelled. The parent directory is watched so editors
// that save via rename are picked up.
func (s *Store) Watch(ctx context.Context, logger *slog.Logger) error {
	if s.path == "" {
		return errors.New("prompt: watch: built-in template has no file")
	}
	if logger == nil {
		logger = slog.Default()
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("prompt: create watcher: %w", err)
	}
	defer w.Close()

	target := filepath.Clean(s.path)
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("prompt: watch %s: %w", target, err)
	}
	logger.Info("prompt watcher started", "path", target)

	var timer *time.Timer
	reload := make(chan struct{}, 1)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			logger.Info("prompt watcher stopped")
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return errors.New("prompt: watcher events channel closed")
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(reloadDebounce, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})

		case <-reload:
			if err := s.Reload(); err != nil {
				logger.Error("prompt reload failed, keeping previous template", "error", err)
				continue
			}
			logger.Info("prompt reloaded", "path", target)

		case err, ok := <-w.Errors:
			if !ok {
				return errors.New("prompt: watcher errors channel closed")
			}
			logger.Error("prompt watcher error", "error", err)
		}
	}
}
