package geoconf

import (
	"context"
	"path/filepath"
	"reflect"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/geoatlas/geoconf/pkg/document"
	"github.com/geoatlas/geoconf/pkg/errors"
	"github.com/geoatlas/geoconf/pkg/logging"
)

// defaultDebounce coalesces the burst of filesystem events an editor emits
// during a single save into one reload.
const defaultDebounce = 200 * time.Millisecond

// watchConfig collects the configured options for a Watcher.
type watchConfig struct {
	debounce time.Duration
	loadOpts []document.Option
	onUpdate []UpdateHook
	onError  []ErrorHook
}

// WatchOption is a function that configures a Watcher.
type WatchOption func(*watchConfig) error

// WithUpdateHook registers a callback invoked after each successful reload
// that produced a different document.
func WithUpdateHook(fn UpdateHook) WatchOption {
	return func(c *watchConfig) error {
		c.onUpdate = append(c.onUpdate, fn)
		return nil
	}
}

// WithErrorHook registers a callback invoked when a reload attempt fails.
func WithErrorHook(fn ErrorHook) WatchOption {
	return func(c *watchConfig) error {
		c.onError = append(c.onError, fn)
		return nil
	}
}

// WithDebounce configures how long the watcher waits after the last
// filesystem event before reloading.
func WithDebounce(d time.Duration) WatchOption {
	return func(c *watchConfig) error {
		if d <= 0 {
			return &errors.ValidationError{
				Field:   "debounce",
				Value:   d,
				Message: "debounce interval must be positive",
			}
		}
		c.debounce = d
		return nil
	}
}

// WithLoadOptions configures the document load options used for the initial
// load and every reload.
func WithLoadOptions(opts ...document.Option) WatchOption {
	return func(c *watchConfig) error {
		c.loadOpts = append(c.loadOpts, opts...)
		return nil
	}
}

// Watcher keeps a document loaded from disk and reloads it whenever the
// underlying file changes. Reload failures leave the last good document in
// place, so Document never returns a half-written or invalid state.
type Watcher struct {
	path     string
	debounce time.Duration
	loadOpts []document.Option

	mu       sync.RWMutex
	document *document.Document

	hooks    *hooks
	notify   *fsnotify.Watcher
	stopCh   chan struct{}
	stopOnce sync.Once
}

// Watch loads the document at path and begins watching it for changes.
// The initial load must succeed. Watching stops when ctx is canceled or
// Stop is called.
func Watch(ctx context.Context, path string, opts ...WatchOption) (*Watcher, error) {
	cfg := &watchConfig{debounce: defaultDebounce}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	path = filepath.Clean(path)
	doc, err := document.Load(path, cfg.loadOpts...)
	if err != nil {
		return nil, err
	}

	notify, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WrapIO("watch", path, err)
	}

	// Watch the parent directory rather than the file itself so that
	// atomic saves (write to a temp file, rename over the target) are
	// still observed after the original inode disappears.
	dir := filepath.Dir(path)
	if err := notify.Add(dir); err != nil {
		_ = notify.Close()
		return nil, errors.WrapIO("watch", dir, err)
	}

	w := &Watcher{
		path:     path,
		debounce: cfg.debounce,
		loadOpts: cfg.loadOpts,
		document: doc,
		hooks:    newHooks(),
		notify:   notify,
		stopCh:   make(chan struct{}),
	}
	for _, fn := range cfg.onUpdate {
		w.hooks.OnUpdate(fn)
	}
	for _, fn := range cfg.onError {
		w.hooks.OnError(fn)
	}

	go w.run(ctx)

	return w, nil
}

// Document returns the most recently loaded good document.
func (w *Watcher) Document() *document.Document {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.document
}

// Path returns the watched file path.
func (w *Watcher) Path() string {
	return w.path
}

// OnUpdate registers a callback for successful reloads.
func (w *Watcher) OnUpdate(fn UpdateHook) {
	w.hooks.OnUpdate(fn)
}

// OnError registers a callback for failed reloads.
func (w *Watcher) OnError(fn ErrorHook) {
	w.hooks.OnError(fn)
}

// Stop ends watching. It is safe to call more than once.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopCh)
		err = w.notify.Close()
	})
	return err
}

// run is the watch loop. It exits when ctx is canceled, Stop is called,
// or the underlying filesystem watcher closes.
func (w *Watcher) run(ctx context.Context) {
	defer func() {
		_ = w.notify.Close()
	}()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.notify.Events:
			if !ok {
				return
			}
			if !w.matches(event) {
				continue
			}
			logging.Debug().
				Str("file", w.path).
				Str("op", event.Op.String()).
				Msg("Document changed on disk")
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.debounce)
		case <-timer.C:
			w.reload()
		case err, ok := <-w.notify.Errors:
			if !ok {
				return
			}
			w.hooks.triggerError(errors.WrapIO("watch", w.path, err))
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		}
	}
}

// matches reports whether event is a content change of the watched file.
func (w *Watcher) matches(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return false
	}
	return filepath.Clean(event.Name) == w.path
}

// reload loads the document again and swaps it in if it changed. A failed
// load keeps the current document and notifies error hooks instead.
func (w *Watcher) reload() {
	newDoc, err := document.Load(w.path, w.loadOpts...)
	if err != nil {
		logging.Warn().
			Err(err).
			Str("file", w.path).
			Msg("Reload failed, keeping last good document")
		w.hooks.triggerError(err)
		return
	}

	w.mu.Lock()
	oldDoc := w.document
	w.document = newDoc
	w.mu.Unlock()

	if reflect.DeepEqual(oldDoc, newDoc) {
		return
	}

	logging.Info().
		Str("file", w.path).
		Int("resources", len(newDoc.Resources)).
		Msg("Document reloaded")
	w.hooks.triggerUpdate(oldDoc, newDoc)
}
