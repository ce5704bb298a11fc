// Package watch reports changes to the files a banner is rendered from.
//
// Parent directories are watched rather than the files themselves, so
// editors that save by writing a temp file and renaming it over the
// original still produce events. When fsnotify is unavailable, or fails
// mid-run, the watcher falls back to polling modification times.
package watch

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultPollInterval is the stat interval in polling mode.
const DefaultPollInterval = 2 * time.Second

// ///////////////////////////////////////////////
// Watcher
// ///////////////////////////////////////////////

// Watcher monitors a set of files for changes using fsnotify with a polling
// fallback.
type Watcher struct {
	// files holds the cleaned absolute paths being monitored.
	files map[string]struct{}
	// events delivers a signal each time a watched file changes.
	// The channel is buffered to 1 so back-to-back writes coalesce.
	events chan struct{}
	// done is closed by [Watcher.Close] to signal goroutines to exit.
	done chan struct{}
	// mu guards fsw, which is swapped out when falling back to polling.
	mu  sync.Mutex
	fsw *fsnotify.Watcher
	// once ensures [Watcher.Close] is idempotent.
	once sync.Once
	// polling is true when the watcher has fallen back to stat-based polling.
	polling atomic.Bool
	// pollInterval is the duration between stat calls in polling mode.
	pollInterval time.Duration
	log          *slog.Logger
}

// New starts watching paths. Missing files are fine: creating one later is
// reported as a change, as long as its directory exists.
func New(log *slog.Logger, paths ...string) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("watch: no files given")
	}
	if log == nil {
		log = slog.Default()
	}
	w := &Watcher{
		files:        make(map[string]struct{}, len(paths)),
		events:       make(chan struct{}, 1),
		done:         make(chan struct{}),
		pollInterval: DefaultPollInterval,
		log:          log,
	}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("watch %s: %w", p, err)
		}
		w.files[abs] = struct{}{}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		log.Info("fsnotify unavailable, falling back to polling", "error", err)
		w.startPolling()
		return w, nil
	}
	for _, dir := range w.dirs() {
		if err := fsw.Add(dir); err != nil {
			log.Info("cannot watch directory, falling back to polling", "path", dir, "error", err)
			fsw.Close()
			w.startPolling()
			return w, nil
		}
	}

	w.fsw = fsw
	go w.watch(fsw)
	return w, nil
}

// Files returns the watched paths in no particular order.
func (w *Watcher) Files() []string {
	out := make([]string, 0, len(w.files))
	for f := range w.files {
		out = append(out, f)
	}
	return out
}

// Polling reports whether the watcher is using polling instead of fsnotify.
func (w *Watcher) Polling() bool {
	return w.polling.Load()
}

// Events returns a channel that receives a signal when a watched file changes.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

// Close stops the watcher and releases resources.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		w.mu.Lock()
		defer w.mu.Unlock()
		if w.fsw != nil {
			if closeErr := w.fsw.Close(); closeErr != nil {
				err = fmt.Errorf("closing fsnotify watcher: %w", closeErr)
			}
			w.fsw = nil
		}
	})
	return err
}

// dirs returns the unique parent directories of the watched files.
func (w *Watcher) dirs() []string {
	seen := make(map[string]struct{})
	var out []string
	for f := range w.files {
		d := filepath.Dir(f)
		if _, ok := seen[d]; !ok {
			seen[d] = struct{}{}
			out = append(out, d)
		}
	}
	return out
}

// relevant reports whether an fsnotify event touches a watched file.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	_, ok := w.files[filepath.Clean(event.Name)]
	return ok
}

// watch loops over fsnotify events and forwards relevant ones to the events
// channel. On an fsnotify error it closes the native watcher and switches
// to polling.
func (w *Watcher) watch(fsw *fsnotify.Watcher) {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if w.relevant(event) {
				w.log.Debug("watched file changed", "path", event.Name, "op", event.Op.String())
				w.notify()
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.log.Info("fsnotify error, switching to polling", "error", err)
			w.mu.Lock()
			if w.fsw != nil {
				w.fsw.Close()
				w.fsw = nil
			}
			w.mu.Unlock()
			w.startPolling()
			return
		}
	}
}

func (w *Watcher) startPolling() {
	w.polling.Store(true)
	go w.poll()
}

// poll periodically stats the watched files and sends a notification when
// any modification time advances or a file appears.
func (w *Watcher) poll() {
	last := w.snapshot()

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return
		case <-ticker.C:
			cur := w.snapshot()
			for f, mod := range cur {
				if prev, ok := last[f]; !ok || mod.After(prev) {
					w.notify()
					break
				}
			}
			last = cur
		}
	}
}

// snapshot returns the modification time of every watched file that exists.
func (w *Watcher) snapshot() map[string]time.Time {
	out := make(map[string]time.Time, len(w.files))
	for f := range w.files {
		if info, err := os.Stat(f); err == nil {
			out[f] = info.ModTime()
		}
	}
	return out
}

// notify sends a single signal to the events channel. If a signal is already
// pending the call is a no-op, coalescing rapid successive changes.
func (w *Watcher) notify() {
	select {
	case w.events <- struct{}{}:
	default:
		// Channel already has a pending event, skip
	}
}
