package dataset

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/j-veylop/govnews-dashboard-tui/internal/logger"
)

const debounceInterval = 100 * time.Millisecond

// Watcher calls onChange after the watched file is written or replaced.
// Bursts of events within the debounce interval produce one call.
type Watcher struct {
	watcher       *fsnotify.Watcher
	onChange      func()
	debounceTimer *time.Timer
	stopChan      chan struct{}
	errors        chan error
	path          string
	mu            sync.Mutex
	stopOnce      sync.Once
}

// NewWatcher starts watching path. The parent directory is watched so that
// files created or swapped in after startup are seen.
func NewWatcher(path string, onChange func()) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := fw.Add(filepath.Dir(path)); err != nil {
		if closeErr := fw.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	w := &Watcher{
		watcher:  fw,
		onChange: onChange,
		stopChan: make(chan struct{}),
		errors:   make(chan error, 8),
		path:     path,
	}
	go w.watchLoop()
	return w, nil
}

// Errors returns watcher errors. Errors are dropped when nobody reads them.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops watching.
func (w *Watcher) Close() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopChan)
		w.mu.Lock()
		if w.debounceTimer != nil {
			w.debounceTimer.Stop()
		}
		w.mu.Unlock()
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.schedule()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("dataset watcher error", "error", err)
			select {
			case w.errors <- err:
			default:
			}

		case <-w.stopChan:
			return
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(debounceInterval, func() {
		select {
		case <-w.stopChan:
			return
		default:
		}
		logger.Debug("dataset file changed", "path", w.path)
		if w.onChange != nil {
			w.onChange()
		}
	})
}
