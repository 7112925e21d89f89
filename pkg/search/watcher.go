package search

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/unowned-ai/daybook/pkg/logging"
)

var watchLog = logging.ForComponent(logging.CompWatch)

// Watcher watches the entries directory and invokes onChange when entry
// files are written, created, or removed out from under the application.
// It exists to tighten staleness, not to guarantee it: the index's own
// staleness window remains the correctness backstop.
type Watcher struct {
	dir      string
	watcher  *fsnotify.Watcher
	onChange func()
	debounce time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once

	mu        sync.Mutex
	lastEvent time.Time
}

// NewWatcher creates a watcher over dir. onChange typically points at
// Index.MarkStale.
func NewWatcher(dir string, onChange func()) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		dir:      dir,
		watcher:  fsWatcher,
		onChange: onChange,
		debounce: 100 * time.Millisecond, // settle rapid bursts of writes
		stopCh:   make(chan struct{}),
	}, nil
}

// Start begins watching the entries directory (non-blocking).
func (w *Watcher) Start() error {
	if err := w.watcher.Add(w.dir); err != nil {
		return err
	}
	go w.watchLoop()
	return nil
}

// Stop stops the watcher. Safe to call multiple times.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopCh)
		err = w.watcher.Close()
	})
	return err
}

// SetDebounce sets the debounce duration.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

func (w *Watcher) watchLoop() {
	var debounceTimer *time.Timer

	for {
		select {
		case <-w.stopCh:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			w.mu.Lock()
			w.lastEvent = time.Now()
			w.mu.Unlock()

			if debounceTimer != nil {
				debounceTimer.Stop()
			}

			debounceTimer = time.AfterFunc(w.debounce, func() {
				w.mu.Lock()
				elapsed := time.Since(w.lastEvent)
				w.mu.Unlock()

				if elapsed >= w.debounce {
					watchLog.Debug("entries directory changed", "dir", w.dir)
					w.onChange()
				}
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			watchLog.Warn("watch error", "error", err.Error())
		}
	}
}
