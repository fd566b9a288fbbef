package document

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	watchDebounce = 100 * time.Millisecond
	// Writes that land this soon after our own Save are treated as ours.
	ownSaveWindow = time.Second
)

// Watcher reports writes to a buffer's file made by other programs.
type Watcher struct {
	buf     *Buffer
	fs      *fsnotify.Watcher
	changes chan struct{}
	errs    chan error
	done    chan struct{}
	once    sync.Once
}

// Watch starts watching the directory that holds buf's file.
func Watch(buf *Buffer) (*Watcher, error) {
	if buf == nil || buf.Path() == "" {
		return nil, errors.New("document is not backed by a file")
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(buf.Path())); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch directory: %w", err)
	}
	w := &Watcher{
		buf:     buf,
		fs:      fsw,
		changes: make(chan struct{}, 1),
		errs:    make(chan error, 1),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Changes delivers one value per burst of external writes.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Errors delivers watcher failures. Sends are dropped when nobody listens.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return err
}

func (w *Watcher) loop() {
	var debounce *time.Timer
	target := filepath.Clean(w.buf.Path())
	for {
		select {
		case <-w.done:
			if debounce != nil {
				debounce.Stop()
			}
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, w.notify)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Printf("[watch] %v", err)
			select {
			case w.errs <- err:
			default:
			}
		}
	}
}

func (w *Watcher) notify() {
	if saved := w.buf.SavedAt(); !saved.IsZero() && time.Since(saved) < ownSaveWindow {
		return
	}
	select {
	case w.changes <- struct{}{}:
	default:
	}
}
