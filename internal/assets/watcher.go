package assets

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads textures whose files change under root. Loader paths are
// relative to root, slash separated.
type Watcher struct {
	fsw    *fsnotify.Watcher
	loader *Loader
	root   string
	log    *slog.Logger
}

func NewWatcher(loader *Loader, root string, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	// fsnotify is not recursive
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fsw.Add(path)
		}
		return nil
	})
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", root, err)
	}

	return &Watcher{
		fsw:    fsw,
		loader: loader,
		root:   root,
		log:    logger.With("component", "watcher"),
	}, nil
}

// Run forwards file changes to the loader until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			rel, err := filepath.Rel(w.root, ev.Name)
			if err != nil {
				continue
			}
			if w.loader.Reload(filepath.ToSlash(rel)) {
				w.log.Debug("asset changed", "path", rel)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "err", err)
		}
	}
}

func (w *Watcher) Close() error {
	return w.fsw.Close()
}
