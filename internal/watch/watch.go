// Package watch monitors a source tree and triggers debounced rebuilds.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/websmith/internal/logfields"
)

// DefaultDebounce batches rapid editor writes into one rebuild.
const DefaultDebounce = 500 * time.Millisecond

// RebuildFunc performs one rebuild after source changes.
type RebuildFunc func(ctx context.Context) error

// Watcher monitors a source tree recursively.
type Watcher struct {
	root     string
	ignore   string
	debounce time.Duration
	logger   *slog.Logger
	watcher  *fsnotify.Watcher
}

// New creates a watcher for the tree rooted at root. Paths under ignore
// (typically the target base, when it lives inside the source tree) do not
// trigger rebuilds.
func New(root, ignore string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("resolve watch root: %w", err)
	}
	absIgnore := ""
	if ignore != "" {
		if absIgnore, err = filepath.Abs(ignore); err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("resolve ignore path: %w", err)
		}
	}

	return &Watcher{
		root:     absRoot,
		ignore:   absIgnore,
		debounce: DefaultDebounce,
		logger:   slog.Default(),
		watcher:  fsw,
	}, nil
}

// WithLogger sets a custom logger.
func (w *Watcher) WithLogger(logger *slog.Logger) *Watcher {
	w.logger = logger
	return w
}

// WithDebounce sets the debounce interval.
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	if d > 0 {
		w.debounce = d
	}
	return w
}

// Run watches the tree and calls rebuild after changes settle, until the
// context is cancelled. Rebuild failures are logged, not fatal: the next
// change triggers another attempt.
func (w *Watcher) Run(ctx context.Context, rebuild RebuildFunc) error {
	defer func() { _ = w.watcher.Close() }()

	if err := w.addRecursive(w.root); err != nil {
		return err
	}
	w.logger.Info("Watching source tree", logfields.Path(w.root))

	var timer *time.Timer
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher event channel closed")
			}
			if w.ignored(event.Name) {
				continue
			}
			// Watch newly created directories so changes inside them are seen.
			if event.Has(fsnotify.Create) {
				if err := w.addRecursive(event.Name); err != nil {
					w.logger.Debug("Could not watch new path", logfields.Path(event.Name), logfields.Error(err))
				}
			}
			w.logger.Debug("Source change", logfields.Path(event.Name), slog.String("op", event.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				// Drain a buffered expiry so Reset arms a clean timer and a
				// stale tick cannot cut the debounce window short.
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			pending = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			w.logger.Warn("Watcher error", logfields.Error(err))

		case <-pending:
			pending = nil
			w.logger.Info("Source changed, rebuilding")
			if err := rebuild(ctx); err != nil {
				w.logger.Error("Rebuild failed", logfields.Error(err))
			}
		}
	}
}

// addRecursive watches path and, if it is a directory, everything below it.
func (w *Watcher) addRecursive(path string) error {
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() || w.ignored(p) {
			return nil
		}
		if err := w.watcher.Add(p); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		return nil
	})
}

func (w *Watcher) ignored(path string) bool {
	if w.ignore == "" {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	return abs == w.ignore || strings.HasPrefix(abs, w.ignore+string(filepath.Separator))
}
