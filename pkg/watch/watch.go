// Package watch re-runs a callback when a file changes.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/arthur-debert/varsub/pkg/errors"
	"github.com/arthur-debert/varsub/pkg/logging"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce coalesces editor save bursts into one change
const DefaultDebounce = 250 * time.Millisecond

// Watcher observes a single file
type Watcher struct {
	path     string
	debounce time.Duration
	logger   zerolog.Logger
}

// New creates a Watcher for path. A non-positive debounce uses
// DefaultDebounce.
func New(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to resolve %s", path)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		path:     abs,
		debounce: debounce,
		logger:   logging.GetLogger("watch").With().Str("path", abs).Logger(),
	}, nil
}

// Run calls onChange after the file is written, created or replaced, and
// blocks until ctx is cancelled. Callbacks run on the calling goroutine,
// never concurrently with each other.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to create file watcher")
	}
	defer watcher.Close()

	// Editors often replace files on save, so the directory is watched
	dir, name := filepath.Split(w.path)
	if err := watcher.Add(filepath.Clean(dir)); err != nil {
		return errors.Wrapf(err, errors.ErrNotFound, "failed to watch directory %s", dir)
	}
	w.logger.Info().Dur("debounce", w.debounce).Msg("Watching for changes")

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug().Msg("Watch stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name || !relevant(event.Op) {
				continue
			}
			w.logger.Trace().Str("op", event.Op.String()).Msg("File event")
			timer.Reset(w.debounce)

		case <-timer.C:
			w.logger.Debug().Msg("File changed")
			onChange()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error().Err(err).Msg("File watcher error")
		}
	}
}

func relevant(op fsnotify.Op) bool {
	return op.Has(fsnotify.Write) || op.Has(fsnotify.Create) || op.Has(fsnotify.Rename)
}
