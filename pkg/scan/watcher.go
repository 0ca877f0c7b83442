package scan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/cons0leweb/cons0leweb-utils/pkg/fileops"
)

// debounceDelay coalesces the event bursts editors produce for one save.
const debounceDelay = 100 * time.Millisecond

// Watcher emits the files created or modified under watched directories
// that pass an Options filter. Deletes, renames, and directories are not
// reported. Backup copies are skipped so watched edits that write backups
// do not retrigger the watch.
type Watcher struct {
	watcher    *fsnotify.Watcher
	opts       Options
	events     chan File
	errors     chan error
	watched    map[string]bool
	stopped    bool
	mu         sync.RWMutex
	ctx        context.Context
	cancel     context.CancelFunc
	debounce   map[string]*time.Timer
	debounceMu sync.Mutex
}

// NewWatcher creates a watcher filtering with opts. Watch directories are
// added with Watch.
func NewWatcher(opts Options) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	opts.Extensions = NormalizeExtensions(opts.Extensions)
	ctx, cancel := context.WithCancel(context.Background())

	w := &Watcher{
		watcher:  fsw,
		opts:     opts,
		events:   make(chan File, 100),
		errors:   make(chan error, 10),
		watched:  make(map[string]bool),
		ctx:      ctx,
		cancel:   cancel,
		debounce: make(map[string]*time.Timer),
	}

	go w.eventLoop()

	return w, nil
}

// Watch adds a directory to the watch set. With Recursive options every
// subdirectory is watched too, and directories created later are picked up
// as they appear.
func (w *Watcher) Watch(root string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watched[root] {
		return nil
	}

	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch %s: not a directory", root)
	}

	if err := w.watcher.Add(root); err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	w.watched[root] = true

	if !w.opts.Recursive {
		return nil
	}

	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() || path == root || w.watched[path] {
			return nil
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		w.watched[path] = true
		return nil
	})
}

// Events returns the channel of files that passed the filter
func (w *Watcher) Events() <-chan File {
	return w.events
}

// Errors returns the channel of watch errors
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// WatchedPaths returns a copy of the currently watched directories
func (w *Watcher) WatchedPaths() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	paths := make([]string, 0, len(w.watched))
	for path := range w.watched {
		paths = append(paths, path)
	}
	return paths
}

// Stop shuts the watcher down and closes both channels. Safe to call twice.
func (w *Watcher) Stop() error {
	w.cancel()

	w.debounceMu.Lock()
	for _, timer := range w.debounce {
		timer.Stop()
	}
	w.debounceMu.Unlock()

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true

	err := w.watcher.Close()
	close(w.events)
	close(w.errors)
	if err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	return nil
}

// eventLoop forwards fsnotify traffic into debounced emits
func (w *Watcher) eventLoop() {
	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.reportError(err)
		}
	}
}

// handleEvent debounces creates and writes per path; everything else is
// dropped here.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}
	if strings.HasSuffix(event.Name, fileops.BackupSuffix) {
		return
	}

	w.debounceMu.Lock()
	if timer, exists := w.debounce[event.Name]; exists {
		timer.Stop()
	}
	w.debounce[event.Name] = time.AfterFunc(debounceDelay, func() {
		w.emit(event.Name)

		w.debounceMu.Lock()
		delete(w.debounce, event.Name)
		w.debounceMu.Unlock()
	})
	w.debounceMu.Unlock()
}

// emit stats a debounced path and sends it if it is a regular file that
// passes the filter. Paths gone by now are dropped silently; the burst that
// announced them ended in a delete.
func (w *Watcher) emit(name string) {
	select {
	case <-w.ctx.Done():
		return
	default:
	}

	info, err := os.Stat(name)
	if err != nil {
		return
	}

	if info.IsDir() {
		// Extend the watch into directories created after Watch
		if w.opts.Recursive {
			w.mu.Lock()
			if !w.stopped && !w.watched[name] {
				if err := w.watcher.Add(name); err != nil {
					w.mu.Unlock()
					w.reportError(fmt.Errorf("watch %s: %w", name, err))
					return
				}
				w.watched[name] = true
			}
			w.mu.Unlock()
		}
		return
	}

	if !info.Mode().IsRegular() || !w.opts.matches(name, info.Size()) {
		return
	}

	f := File{Path: name, Size: info.Size(), ModTime: info.ModTime()}

	// Holding the read lock keeps Stop from closing the channel mid-send
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.stopped {
		return
	}
	select {
	case w.events <- f:
	default:
		w.sendErrorLocked(fmt.Errorf("event channel full, dropping %s", name))
	}
}

func (w *Watcher) reportError(err error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.stopped {
		return
	}
	w.sendErrorLocked(err)
}

// sendErrorLocked needs the caller to hold mu so the errors channel cannot
// close underneath the send.
func (w *Watcher) sendErrorLocked(err error) {
	select {
	case w.errors <- err:
	default:
	}
}
