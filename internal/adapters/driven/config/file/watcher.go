package file

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Prerna-lily/EstateFlow-AI/internal/logger"
)

// DefaultDebounce coalesces the burst of events an editor produces on save.
const DefaultDebounce = 150 * time.Millisecond

// Watch reloads the store whenever the config file changes on disk and
// then calls onChange. It blocks until ctx is cancelled.
//
// The directory is watched rather than the file, since editors and Save
// replace the file by renaming over it.
func (s *ConfigStore) Watch(ctx context.Context, debounce time.Duration, onChange func()) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(s.filePath)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(s.filePath), err)
	}

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(s.filePath) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if err := s.Load(); err != nil {
				logger.Warn("config reload failed: %v", err)
				continue
			}
			logger.Debug("config reloaded from %s", s.filePath)
			if onChange != nil {
				onChange()
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("config watcher: %v", err)
		}
	}
}
