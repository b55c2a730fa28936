package settings

import (
	"context"
	"path/filepath"
	"time"

	"github.com/conneroisu/patterns/internal/logging"
	"github.com/conneroisu/patterns/internal/watcher"
)

// Reloader keeps a store in sync with a settings file on disk.
type Reloader struct {
	store   *Store
	path    string
	watcher *watcher.FileWatcher
	logger  logging.Logger

	// onReload, when set, is called after every reload attempt.
	onReload func(events []watcher.ChangeEvent, err error)
}

// NewReloader prepares a reloader for path. Nothing is watched until Start.
func NewReloader(store *Store, path string, debounce time.Duration, logger logging.Logger) (*Reloader, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	fw, err := watcher.NewFileWatcher(debounce, logger)
	if err != nil {
		return nil, err
	}

	r := &Reloader{
		store:   store,
		path:    path,
		watcher: fw,
		logger:  logger.WithComponent("settings-reloader"),
	}

	fw.AddFilter(watcher.BaseNameFilter(path))
	fw.AddHandler(r.handle)
	return r, nil
}

// OnReload registers a callback invoked after every reload attempt.
func (r *Reloader) OnReload(fn func(events []watcher.ChangeEvent, err error)) {
	r.onReload = fn
}

// Start watches the directory holding the settings file until ctx is done.
func (r *Reloader) Start(ctx context.Context) error {
	if err := r.watcher.AddPath(filepath.Dir(r.path)); err != nil {
		return err
	}
	return r.watcher.Start(ctx)
}

// Stop releases the underlying watcher.
func (r *Reloader) Stop() error {
	return r.watcher.Stop()
}

func (r *Reloader) handle(events []watcher.ChangeEvent) error {
	ctx := context.Background()

	for _, ev := range events {
		if ev.Type == watcher.EventTypeDeleted {
			r.logger.Warn(ctx, nil, "Settings file removed, keeping current values", "path", ev.Path)
			r.report(events, nil)
			return nil
		}
	}

	fresh := New()
	if err := fresh.LoadFromFile(r.path); err != nil {
		r.report(events, err)
		return err
	}
	r.store.Replace(fresh.Snapshot())

	r.logger.Info(ctx, "Settings reloaded", "path", r.path, "keys", r.store.Len())
	r.report(events, nil)
	return nil
}

func (r *Reloader) report(events []watcher.ChangeEvent, err error) {
	if r.onReload != nil {
		r.onReload(events, err)
	}
}
