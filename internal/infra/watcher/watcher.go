// Package watcher reports changes of a file on disk, debounced.
package watcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/runoshun/daytrack/internal/domain"
)

// DefaultDebounce is the quiet period before a change is reported.
const DefaultDebounce = 200 * time.Millisecond

var _ domain.StoreWatcher = (*FileWatcher)(nil)

// FileWatcher calls onChanged once per burst of writes to a single file.
// The parent directory is watched so atomic replace-by-rename is seen.
type FileWatcher struct {
	watcher   *fsnotify.Watcher
	onChanged func()
	timer     *time.Timer
	path      string
	debounce  time.Duration
	mu        sync.Mutex
	closeOnce sync.Once
	closed    bool
}

// New starts watching path. onChanged runs on a timer goroutine.
func New(path string, debounce time.Duration, onChanged func()) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	fw := &FileWatcher{
		watcher:   w,
		onChanged: onChanged,
		path:      filepath.Clean(path),
		debounce:  debounce,
	}
	if err := w.Add(filepath.Dir(fw.path)); err != nil {
		_ = w.Close()
		return nil, err
	}
	return fw, nil
}

// Run processes events until ctx is done or the watcher is closed.
func (fw *FileWatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return nil
			}
			if fw.matches(event) {
				fw.schedule()
			}
		case _, ok := <-fw.watcher.Errors:
			if !ok {
				return nil
			}
			// Ignore errors; watcher will continue running.
		}
	}
}

// Close stops the watcher and any pending notification.
func (fw *FileWatcher) Close() error {
	var err error
	fw.closeOnce.Do(func() {
		fw.mu.Lock()
		fw.closed = true
		if fw.timer != nil {
			fw.timer.Stop()
			fw.timer = nil
		}
		fw.mu.Unlock()
		err = fw.watcher.Close()
	})
	return err
}

func (fw *FileWatcher) matches(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != fw.path {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0
}

func (fw *FileWatcher) schedule() {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.closed || fw.onChanged == nil {
		return
	}
	if fw.timer == nil {
		fw.timer = time.AfterFunc(fw.debounce, fw.fire)
	} else {
		fw.timer.Reset(fw.debounce)
	}
}

func (fw *FileWatcher) fire() {
	fw.mu.Lock()
	if fw.closed {
		fw.mu.Unlock()
		return
	}
	fw.timer = nil
	fw.mu.Unlock()

	fw.onChanged()
}
