package session

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"careport/internal/pubsub"
)

// EventType identifies what happened to the persisted token.
type EventType int

const (
	// TokenChanged means the token file was written (re-auth elsewhere).
	TokenChanged EventType = iota
	// TokenCleared means the token file was removed (session torn down).
	TokenCleared
	// WatcherError carries a filesystem watcher failure.
	WatcherError
)

// Event is published on the watcher's broker when the token file changes.
type Event struct {
	Type  EventType
	Error error
}

// Watcher monitors the token file and publishes change events with debouncing.
// Editors and token writers often produce several filesystem events per
// logical change; the debounce collapses them.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	tokenPath string
	debounce  time.Duration
	broker    *pubsub.Broker[Event]
	done      chan struct{}
}

// WatcherConfig holds watcher options.
type WatcherConfig struct {
	TokenPath   string
	DebounceDur time.Duration
}

// DefaultWatcherConfig returns sensible defaults for the watcher.
func DefaultWatcherConfig(tokenPath string) WatcherConfig {
	return WatcherConfig{
		TokenPath:   tokenPath,
		DebounceDur: 500 * time.Millisecond,
	}
}

// NewWatcher creates a token file watcher.
func NewWatcher(cfg WatcherConfig) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	return &Watcher{
		fsWatcher: fsw,
		tokenPath: cfg.TokenPath,
		debounce:  cfg.DebounceDur,
		broker:    pubsub.NewBroker[Event](),
		done:      make(chan struct{}),
	}, nil
}

// Broker exposes the event broker for subscription.
func (w *Watcher) Broker() *pubsub.Broker[Event] {
	return w.broker
}

// Start begins watching the directory containing the token file.
// The directory (not the file) is watched so removal and re-creation are seen.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.tokenPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating token directory: %w", err)
	}
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("watching directory %s: %w", dir, err)
	}

	go w.loop()
	return nil
}

// Stop terminates the watcher and releases resources.
func (w *Watcher) Stop() error {
	close(w.done)
	w.broker.Close()
	return w.fsWatcher.Close()
}

func (w *Watcher) loop() {
	var (
		timer   *time.Timer
		pending EventType
		have    bool
	)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(w.tokenPath) {
				continue
			}

			switch {
			case event.Op&(fsnotify.Write|fsnotify.Create) != 0:
				pending = TokenChanged
			case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				pending = TokenCleared
			default:
				continue
			}
			have = true

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-timerC(timer):
			if have {
				w.broker.Publish(pubsub.UpdatedEvent, Event{Type: pending})
				have = false
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.broker.Publish(pubsub.UpdatedEvent, Event{Type: WatcherError, Error: err})

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// timerC returns the timer channel, or nil when no timer is armed yet.
func timerC(t *time.Timer) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C
}
