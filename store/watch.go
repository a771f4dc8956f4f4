package store

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the store whenever a template file in its directory is
// created, written, removed or renamed, until ctx is done. After every
// reload attempt onReload, if non-nil, is called with the Refresh result.
//
// Watch blocks. It uses fsnotify and falls back to polling the directory
// when a watcher cannot be set up.
func (s *Store) Watch(ctx context.Context, onReload func(error)) {
	if onReload == nil {
		onReload = func(error) {}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		s.logger.Warn("file watcher unavailable, polling", slog.Any("error", err))
		s.watchPolling(ctx, onReload)
		return
	}
	defer watcher.Close()

	if err := watcher.Add(s.dir); err != nil {
		s.logger.Warn("cannot watch template dir, polling", slog.String("dir", s.dir), slog.Any("error", err))
		s.watchPolling(ctx, onReload)
		return
	}

	s.watchEvents(ctx, watcher, onReload)
}

const watchedOps = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

func (s *Store) watchEvents(ctx context.Context, watcher *fsnotify.Watcher, onReload func(error)) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if _, isTemplate := s.templateName(filepath.Base(event.Name)); !isTemplate {
				continue
			}
			if event.Op&watchedOps == 0 {
				continue
			}
			s.logger.Debug("template changed", slog.String("file", event.Name), slog.String("op", event.Op.String()))
			s.reload(onReload)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			// Usually recoverable, e.g. an overflowed event queue.
			s.logger.Warn("file watcher error", slog.Any("error", err))
		}
	}
}

// fileStamp identifies one version of a template file for polling.
type fileStamp struct {
	modTime time.Time
	size    int64
}

func (s *Store) watchPolling(ctx context.Context, onReload func(error)) {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	last := s.snapshot()
	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			current := s.snapshot()
			if sameSnapshot(last, current) {
				continue
			}
			last = current
			s.reload(onReload)
		}
	}
}

// snapshot stats every template file in the directory. Unreadable entries
// are skipped; the next Refresh reports them.
func (s *Store) snapshot() map[string]fileStamp {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil
	}

	stamps := make(map[string]fileStamp, len(entries))
	for _, entry := range entries {
		if _, ok := s.templateName(entry.Name()); !ok || entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		stamps[entry.Name()] = fileStamp{modTime: info.ModTime(), size: info.Size()}
	}
	return stamps
}

func sameSnapshot(a, b map[string]fileStamp) bool {
	if len(a) != len(b) {
		return false
	}
	for name, stamp := range a {
		other, ok := b[name]
		if !ok || !other.modTime.Equal(stamp.modTime) || other.size != stamp.size {
			return false
		}
	}
	return true
}

func (s *Store) reload(onReload func(error)) {
	err := s.Refresh()
	if err != nil {
		s.logger.Warn("template reload failed", slog.Any("error", err))
	}
	onReload(err)
}
