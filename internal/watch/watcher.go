package watch

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"dwd/internal/providers"
)

// Watcher wraps an fsnotify watch on the log directory. Events for the
// active file are coalesced into a one-slot kick channel drained by a single
// worker goroutine, so onChange never runs concurrently with itself no
// matter how many duplicate events the platform delivers.
type Watcher struct {
	mu      sync.Mutex
	logger  providers.Logger
	fsw     *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup
	started bool
}

func NewWatcher(logger providers.Logger) *Watcher {
	return &Watcher{logger: logger}
}

// Start begins watching dir. activePath is re-read per event because the
// active file changes at rollover; everything else in the directory is
// ignored.
func (w *Watcher) Start(dir string, activePath func() string, onChange func()) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started {
		w.stopLocked()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return err
	}

	w.fsw = fsw
	w.done = make(chan struct{})
	w.started = true

	kick := make(chan struct{}, 1)
	done := w.done

	w.wg.Add(2)
	go func() {
		defer w.wg.Done()
		defer close(kick)
		for {
			select {
			case ev, ok := <-fsw.Events:
				if !ok {
					return
				}
				if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
					continue
				}
				if filepath.Clean(ev.Name) != filepath.Clean(activePath()) {
					continue
				}
				select {
				case kick <- struct{}{}:
				default: // a drain is already pending, coalesce
				}
			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				w.logger.Warnf(providers.TypeWatch, "watch error: %s", err)
			case <-done:
				return
			}
		}
	}()
	go func() {
		defer w.wg.Done()
		for range kick {
			onChange()
		}
	}()

	return nil
}

// Running reports whether a watch is currently established.
func (w *Watcher) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.started
}

// Stop closes the underlying watch and waits for both goroutines to drain.
// The wait is bounded: the worker finishes at most one in-flight onChange.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopLocked()
}

func (w *Watcher) stopLocked() {
	if !w.started {
		return
	}
	close(w.done)
	_ = w.fsw.Close()
	w.wg.Wait()
	w.started = false
}
