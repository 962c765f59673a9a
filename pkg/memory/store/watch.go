package store

import (
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch starts an fsnotify watcher on the store directory that drops cached
// parses when files change outside the store's own write paths — memory
// files are human-editable, and a stale cache would make dedup and stats
// reflect text that is no longer on disk.
//
// The mtime check in Entries already defends against most external edits;
// the watcher closes the remaining gap of same-size, same-second rewrites.
// Returns a stop function.
func (s *Store) Watch() (func() error, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := watcher.Add(s.dir); err != nil {
		watcher.Close()
		return nil, err
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				name := filepath.Base(event.Name)
				if !strings.HasSuffix(name, ".md") {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
					s.cache.invalidate(name)
					s.logger.Debug("memory file changed on disk",
						zap.String("file", name),
						zap.String("op", event.Op.String()),
					)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Warn("memory file watcher error", zap.Error(err))
			}
		}
	}()

	return watcher.Close, nil
}
