package definition

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a sheet must stay quiet before it is reported
const DefaultDebounce = 250 * time.Millisecond

// Watcher reports design sheets that changed in a directory. Bursts of
// writes to one file are reported once.
type Watcher struct {
	Dir     string
	Changes <-chan string // Absolute sheet paths
	Errors  <-chan error

	debounce time.Duration
	changes  chan string
	errors   chan error
	done     chan struct{}
	watcher  *fsnotify.Watcher
	started  atomic.Bool
	stopOnce sync.Once
}

// NewWatcher creates a watcher for dir. A non-positive debounce uses DefaultDebounce.
func NewWatcher(dir string, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		fw.Close()
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	changes := make(chan string, 16)
	errs := make(chan error, 4)
	return &Watcher{
		Dir:      abs,
		Changes:  changes,
		Errors:   errs,
		debounce: debounce,
		changes:  changes,
		errors:   errs,
		done:     make(chan struct{}),
		watcher:  fw,
	}, nil
}

// Start begins watching. The watcher stops when ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.watcher.Add(w.Dir); err != nil {
		return err
	}
	w.started.Store(true)
	go w.loop(ctx)
	return nil
}

// Stop closes the watcher and waits for the loop to exit
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		w.watcher.Close()
		if w.started.Load() {
			<-w.done
		}
	})
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.done)
	defer close(w.changes)
	defer close(w.errors)

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.watcher.Close()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				for file := range pending {
					w.emit(file)
				}
				return
			}
			if !IsSheet(event.Name) {
				continue
			}
			// Editors often save by rename, which shows up as Create
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				pending[event.Name] = time.Now()
			}

		case <-ticker.C:
			now := time.Now()
			for file, t := range pending {
				if now.Sub(t) >= w.debounce {
					w.emit(file)
					delete(pending, file)
				}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
			}
		}
	}
}

func (w *Watcher) emit(file string) {
	path, err := filepath.Abs(file)
	if err != nil {
		path = file
	}
	w.changes <- path
}

// IsSheet reports whether name looks like a design sheet
func IsSheet(name string) bool {
	base := filepath.Base(name)
	return strings.HasSuffix(base, ".toml") && !strings.HasPrefix(base, ".")
}
