package watcher

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// NotifyWatcher re-reads the file when the filesystem reports a change to it.
// The parent directory is watched so that editors replacing the file by rename are seen too.
// A fallback ticker re-reads the file every interval in case an event is missed.
type NotifyWatcher struct {
	tracker
	interval time.Duration
	watcher  *fsnotify.Watcher
}

// NewNotifyWatcher starts watching the directory containing path.
func NewNotifyWatcher(path string, interval time.Duration) (*NotifyWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch %q: %w", filepath.Dir(abs), err)
	}
	log.Printf("Watching %s (fsnotify, fallback every %s)", abs, interval)

	return &NotifyWatcher{
		tracker:  tracker{path: abs},
		interval: interval,
		watcher:  w,
	}, nil
}

// Close stops the underlying filesystem watcher.
func (w *NotifyWatcher) Close() error {
	return w.watcher.Close()
}

// Next blocks until the file's trailing digit differs from the one last returned.
func (w *NotifyWatcher) Next(ctx context.Context) (string, error) {
	if digit, ok := w.check(); ok {
		return digit, nil
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return "", ErrClosed
			}
			if !w.relevant(ev) {
				continue
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return "", ErrClosed
			}
			log.Printf("watch error: %v", err)
			continue
		case <-ticker.C:
		}

		if digit, ok := w.check(); ok {
			return digit, nil
		}
	}
}

func (w *NotifyWatcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}
