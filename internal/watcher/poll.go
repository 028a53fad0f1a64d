package watcher

import (
	"context"
	"time"
)

// PollWatcher re-reads the file at a fixed interval.
type PollWatcher struct {
	tracker
	interval time.Duration
}

// NewPollWatcher creates a PollWatcher for path that re-reads it every interval.
func NewPollWatcher(path string, interval time.Duration) *PollWatcher {
	return &PollWatcher{
		tracker:  tracker{path: path},
		interval: interval,
	}
}

// Next blocks until the file's trailing digit differs from the one last returned.
// Read errors are logged and retried. It returns early only when ctx is done.
func (w *PollWatcher) Next(ctx context.Context) (string, error) {
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}

		if digit, ok := w.check(); ok {
			return digit, nil
		}
		timer.Reset(w.interval)
	}
}
