// Package fsnotify keeps an index fresh while a long-lived tool server is
// running: it watches the documentation root for files changed outside the
// server's own mutation paths and triggers a rebuild.
package fsnotify

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/awray/docmap"
)

// Watcher watches a documentation root and rebuilds the index when
// documentation files are created, written, removed, or renamed. Bursts of
// events (editor save dances, bulk copies) collapse into one rebuild.
type Watcher struct {
	root   string
	svc    docmap.IndexService
	logger *slog.Logger

	// Debounce is the quiet period required after the last relevant event
	// before a rebuild fires.
	Debounce time.Duration
}

// NewWatcher creates a new Watcher over the documentation root.
func NewWatcher(root string, svc docmap.IndexService, logger *slog.Logger) *Watcher {
	return &Watcher{
		root:     root,
		svc:      svc,
		logger:   logger,
		Debounce: 500 * time.Millisecond,
	}
}

// Run watches until the context is canceled. Watch errors are logged, not
// fatal; a broken watch degrades to a stale-until-next-mutation index
// rather than taking the server down.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := addRecursive(fw, w.root); err != nil {
		return err
	}

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			// New subdirectories need their own watch before files inside
			// them produce events.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addRecursive(fw, event.Name); err != nil {
						w.logger.Warn("watch new directory", "path", event.Name, "err", err)
					}
				}
			}
			if !relevant(event) {
				continue
			}
			w.logger.Debug("documentation changed", "path", event.Name, "op", event.Op.String())
			pending = time.After(w.Debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "err", err)

		case <-pending:
			pending = nil
			if err := w.svc.Rebuild(ctx); err != nil {
				w.logger.Error("rebuild after file change", "err", err)
				continue
			}
			w.logger.Info("index rebuilt after file change")
		}
	}
}

// relevant reports whether an event concerns a documentation file or the
// removal of a directory that may have contained them.
func relevant(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return false
	}
	if _, ok := docmap.FormatForPath(event.Name); ok {
		return true
	}
	// Removed or renamed directories no longer stat; assume they held docs.
	if event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename) {
		if filepath.Ext(event.Name) == "" {
			return true
		}
	}
	return false
}

func addRecursive(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return fw.Add(path)
	})
}
