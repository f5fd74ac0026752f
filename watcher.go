package blockstatus

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Reloader is anything that can reload itself; *Resolver is the usual one.
type Reloader interface {
	Reload(ctx context.Context) (*Report, error)
}

// Watcher reloads a Reloader whenever its config file changes. Bursts of
// events, such as an editor's write-then-rename, are debounced into one reload.
type Watcher struct {
	path     string
	target   Reloader
	debounce time.Duration
	logger   Logger
	subject  Subject
	onReload func(*Report, error)

	fsWatcher *fsnotify.Watcher
	startOnce sync.Once
	stopOnce  sync.Once
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets how long the file must be quiet before reloading.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithWatcherLogger sets the logger.
func WithWatcherLogger(logger Logger) WatcherOption {
	return func(w *Watcher) {
		w.logger = loggerOrNop(logger)
	}
}

// WithWatcherSubject publishes watch.error events to subject.
func WithWatcherSubject(subject Subject) WatcherOption {
	return func(w *Watcher) {
		w.subject = subject
	}
}

// WithReloadHook is called after every reload the watcher triggers.
func WithReloadHook(hook func(*Report, error)) WatcherOption {
	return func(w *Watcher) {
		w.onReload = hook
	}
}

// NewWatcher creates a watcher for the config file at path.
func NewWatcher(path string, target Reloader, opts ...WatcherOption) (*Watcher, error) {
	if target == nil {
		return nil, ErrReloaderNil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	w := &Watcher{
		path:      path,
		target:    target,
		debounce:  250 * time.Millisecond,
		logger:    NopLogger{},
		fsWatcher: fsw,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start watches the file's directory, so the file may be replaced or created
// later. The watcher runs until Stop or until ctx is done.
func (w *Watcher) Start(ctx context.Context) error {
	err := ErrWatcherStarted
	w.startOnce.Do(func() {
		dir := filepath.Dir(w.path)
		if addErr := w.fsWatcher.Add(dir); addErr != nil {
			err = fmt.Errorf("watching directory %s: %w", dir, addErr)
			return
		}

		ctx, w.cancel = context.WithCancel(ctx)
		w.wg.Add(1)
		go w.loop(ctx)
		w.logger.Info("Watching block status configuration", "path", w.path)
		err = nil
	})
	return err
}

// Stop ends the watch and waits for an in-flight reload to finish.
// Calling it more than once is harmless.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		if w.cancel != nil {
			w.cancel()
		}
		err = w.fsWatcher.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) loop(ctx context.Context) {
	defer w.wg.Done()

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.isRelevantEvent(event) {
				continue
			}
			w.logger.Debug("Config file changed", "path", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			report, err := w.target.Reload(ctx)
			if err != nil {
				w.logger.Error("Reload after config change failed", "path", w.path, "error", err)
			}
			if w.onReload != nil {
				w.onReload(report, err)
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Config watch error", "path", w.path, "error", err)
			emitEvent(ctx, w.subject, w.logger, EventTypeWatchError, map[string]string{
				"path":  w.path,
				"error": err.Error(),
			})

		case <-ctx.Done():
			return
		}
	}
}

// isRelevantEvent keeps content changes to the watched file, including the
// create and rename an atomic save produces, and ignores chmod.
func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	return filepath.Base(event.Name) == filepath.Base(w.path)
}
