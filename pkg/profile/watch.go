package profile

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/macropower/needs/api/v1beta1/profiles"
	"github.com/macropower/needs/pkg/log"
)

// Watch calls fn for every change to a profile file in the store directory
// until ctx is done. Permission-only changes are ignored.
func (s *Store) Watch(ctx context.Context, fn func(fsnotify.Event)) error {
	err := os.MkdirAll(s.dir, 0o700)
	if err != nil {
		return fmt.Errorf("create profile directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}

	logger := log.WithContext(ctx)

	defer func() {
		err := watcher.Close()
		if err != nil {
			logger.ErrorContext(ctx, "close watcher", slog.Any("err", err))
		}
	}()

	err = watcher.Add(s.dir)
	if err != nil {
		return fmt.Errorf("watch %s: %w", s.dir, err)
	}

	logger.DebugContext(ctx, "watching profile directory", slog.String("path", s.dir))

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if evt.Has(fsnotify.Chmod) || filepath.Ext(evt.Name) != profiles.Ext {
				continue
			}

			fn(evt)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			logger.WarnContext(ctx, "profile watcher", slog.Any("err", err))
		}
	}
}
