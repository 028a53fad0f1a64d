// Package watcher reports the last digit typed into a text file, once per change.
package watcher

import (
	"context"
	"errors"
	"log"
	"os"
	"unicode"
)

// ErrClosed is returned by Next after the underlying notifier has been closed.
var ErrClosed = errors.New("watcher closed")

// InputWatcher blocks until the trailing digit of the watched file changes and returns it.
type InputWatcher interface {
	Next(ctx context.Context) (string, error)
}

// TrailingDigit returns the last digit character in content.
func TrailingDigit(content string) (string, bool) {
	last := rune(-1)
	for _, r := range content {
		if unicode.IsDigit(r) {
			last = r
		}
	}
	if last < 0 {
		return "", false
	}
	return string(last), true
}

// tracker holds the digit most recently returned to the caller.
type tracker struct {
	path string
	last string
}

// Last returns the digit most recently returned by Next, or "" before the first one.
func (t *tracker) Last() string {
	return t.last
}

// check reads the file once and reports a trailing digit that differs from the last one returned.
func (t *tracker) check() (string, bool) {
	content, err := os.ReadFile(t.path)
	if err != nil {
		log.Printf("Error reading input file: %v", err)
		return "", false
	}
	return t.observe(string(content))
}

func (t *tracker) observe(content string) (string, bool) {
	digit, ok := TrailingDigit(content)
	if !ok || digit == t.last {
		return "", false
	}
	t.last = digit
	return digit, true
}
