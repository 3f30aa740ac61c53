package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/rshade/binderlca/internal/logging"
)

// DefaultDebounce collapses bursts of editor writes into one reload.
const DefaultDebounce = 200 * time.Millisecond

// Watch calls onChange whenever one of the catalog files is written, created or
// renamed into place. It watches the parent directories so that editors which
// replace files atomically are still seen. Watch blocks until ctx is cancelled.
//
// onChange runs on the goroutine that called Watch, one call at a time, and is
// never called after Watch returns. A change still inside its debounce window
// when ctx is cancelled is dropped.
func Watch(ctx context.Context, paths []string, debounce time.Duration, onChange func()) error {
	if len(paths) == 0 {
		return nil
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating catalog watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	wanted := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, absErr := filepath.Abs(p)
		if absErr != nil {
			return fmt.Errorf("resolving %s: %w", p, absErr)
		}
		wanted[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err = watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	log := logging.FromContext(ctx)
	log.Debug().Ctx(ctx).
		Str("component", "catalog").
		Str("operation", "watch").
		Strs("paths", paths).
		Msg("watching catalog files")

	// fire is nil while no reload is pending.
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-fire:
			fire = nil
			onChange()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			name, absErr := filepath.Abs(event.Name)
			if absErr != nil || !wanted[name] {
				continue
			}

			log.Debug().Ctx(ctx).
				Str("component", "catalog").
				Str("file", name).
				Str("op", event.Op.String()).
				Msg("catalog file changed")

			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Ctx(ctx).
				Str("component", "catalog").
				Err(watchErr).
				Msg("catalog watcher error")
		}
	}
}
