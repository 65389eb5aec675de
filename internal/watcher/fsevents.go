package watcher

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jonboulle/clockwork"

	"github.com/tharanidharane77-prog/senti/internal/batch"
)

// DefaultDebounce is how long a file must go without events before it is
// parsed.
const DefaultDebounce = 500 * time.Millisecond

// Batch holds the texts of one inbox file that have not been delivered
// before.
type Batch struct {
	Path  string
	Texts []string
	Err   error
}

// Watcher delivers a Batch whenever an inbox file gains texts.
type Watcher struct {
	dir        string
	extensions map[string]bool
	debounce   time.Duration
	existing   bool
	clock      clockwork.Clock
	logger     *slog.Logger

	fsw     *fsnotify.Watcher
	batches chan Batch
	stopCh  chan struct{}
	wg      sync.WaitGroup
	due     map[string]time.Time
	seen    map[string]fileState
}

// fileState is what has already been delivered from one inbox file.
type fileState struct {
	info  os.FileInfo
	texts []string
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithExtensions limits the watched files to the given extensions
// (".txt", "csv"...). Matching is case-insensitive.
func WithExtensions(exts ...string) Option {
	return func(w *Watcher) {
		w.extensions = make(map[string]bool, len(exts))
		for _, ext := range exts {
			ext = strings.ToLower(strings.TrimSpace(ext))
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			w.extensions[ext] = true
		}
	}
}

// WithDebounce sets the quiet period. Zero parses on the first event.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithExistingFiles makes Start deliver files already in the directory.
func WithExistingFiles() Option {
	return func(w *Watcher) { w.existing = true }
}

// WithClock replaces the real clock.
func WithClock(c clockwork.Clock) Option {
	return func(w *Watcher) { w.clock = c }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}

// New creates a Watcher for dir, which must exist.
func New(dir string, opts ...Option) (*Watcher, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open inbox: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("inbox %s is not a directory", dir)
	}

	w := &Watcher{
		dir:      dir,
		debounce: DefaultDebounce,
		batches:  make(chan Batch, 16),
		stopCh:   make(chan struct{}),
		due:      make(map[string]time.Time),
		seen:     make(map[string]fileState),
	}
	WithExtensions(".txt", ".csv")(w)
	for _, opt := range opts {
		opt(w)
	}
	if w.clock == nil {
		w.clock = clockwork.NewRealClock()
	}
	if w.logger == nil {
		w.logger = slog.Default()
	}
	return w, nil
}

// Batches returns the channel batches are delivered on. It is closed by
// Stop.
func (w *Watcher) Batches() <-chan Batch {
	return w.batches
}

// Start begins watching the inbox.
func (w *Watcher) Start() error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fsw.Add(w.dir); err != nil {
		fsw.Close()
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	w.fsw = fsw

	w.wg.Add(1)
	go w.run()

	w.logger.Info("watching inbox", "dir", w.dir, "debounce", w.debounce)
	return nil
}

// Stop halts the watcher and closes Batches. Files still waiting out their
// debounce period are dropped.
func (w *Watcher) Stop() error {
	close(w.stopCh)
	w.wg.Wait()
	close(w.batches)

	if w.fsw != nil {
		if err := w.fsw.Close(); err != nil {
			return fmt.Errorf("failed to close file watcher: %w", err)
		}
	}
	return nil
}

func (w *Watcher) run() {
	defer w.wg.Done()

	if w.existing {
		if err := w.deliverExisting(); err != nil {
			w.logger.Warn("failed to scan inbox", "dir", w.dir, "error", err)
		}
	}

	ticker := w.clock.NewTicker(w.pollInterval())
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error", "error", err)

		case <-ticker.Chan():
			w.flushDue()

		case <-w.stopCh:
			return
		}
	}
}

func (w *Watcher) pollInterval() time.Duration {
	interval := w.debounce / 2
	if interval < 10*time.Millisecond {
		interval = 10 * time.Millisecond
	}
	return interval
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
		delete(w.seen, ev.Name)
		delete(w.due, ev.Name)
		return
	}
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return
	}
	if !w.accepts(ev.Name) {
		return
	}

	if w.debounce <= 0 {
		w.deliver(ev.Name)
		return
	}
	w.due[ev.Name] = w.clock.Now().Add(w.debounce)
}

func (w *Watcher) flushDue() {
	now := w.clock.Now()
	for path, at := range w.due {
		if now.Before(at) {
			continue
		}
		delete(w.due, path)
		w.deliver(path)
	}
}

// accepts reports whether path has a watched extension. Hidden files are
// ignored so editor swap files never become batches.
func (w *Watcher) accepts(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}
	return w.extensions[strings.ToLower(filepath.Ext(base))]
}

func (w *Watcher) deliverExisting() error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || !w.accepts(entry.Name()) {
			continue
		}
		w.deliver(filepath.Join(w.dir, entry.Name()))
	}
	return nil
}

// deliver parses path and sends the texts added since the last delivery,
// unless the watcher is stopping. A file that was replaced, or whose
// earlier texts changed, is delivered again from the start.
func (w *Watcher) deliver(path string) {
	info, err := os.Stat(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			w.logger.Warn("failed to stat inbox file", "path", path, "error", err)
		}
		return
	}
	if !info.Mode().IsRegular() {
		return
	}

	texts, err := batch.ParseFile(path)
	if err != nil {
		w.logger.Debug("inbox file unreadable", "path", path, "error", err)
		w.send(Batch{Path: path, Err: err})
		return
	}

	fresh := texts
	if prev, ok := w.seen[path]; ok {
		if os.SameFile(prev.info, info) && len(texts) >= len(prev.texts) && slices.Equal(texts[:len(prev.texts)], prev.texts) {
			fresh = texts[len(prev.texts):]
		} else {
			w.logger.Debug("inbox file replaced, reading from the start", "path", path)
		}
	}
	w.seen[path] = fileState{info: info, texts: texts}

	w.logger.Debug("inbox file parsed", "path", path, "texts", len(texts), "new", len(fresh))
	if len(fresh) == 0 {
		return
	}

	w.send(Batch{Path: path, Texts: fresh})
}

func (w *Watcher) send(b Batch) {
	select {
	case w.batches <- b:
	case <-w.stopCh:
	}
}
