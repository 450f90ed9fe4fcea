package pluginmodule

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"
)

// Watcher watches the plugin directory and resynchronizes the manager when
// plugins appear or disappear at runtime. Events are debounced per plugin
// directory so a plugin being copied in (sidecar, binary, settings) triggers
// a single resync.
type Watcher struct {
	logger  hclog.Logger
	manager *Manager
	watcher *fsnotify.Watcher

	debounceDelay   time.Duration
	excludePatterns []string

	// pending debounce timers, keyed by plugin directory name
	pendingMu sync.Mutex
	pending   map[string]*time.Timer

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWatcher creates a watcher over the manager's plugin directory.
func NewWatcher(manager *Manager, cfg WatchConfig, logger hclog.Logger) (*Watcher, error) {
	delay := cfg.DebounceDelay
	if delay <= 0 {
		delay = DefaultWatchConfig().DebounceDelay
	}
	return &Watcher{
		logger:          logger.Named("watcher"),
		manager:         manager,
		debounceDelay:   delay,
		excludePatterns: cfg.ExcludePatterns,
		pending:         make(map[string]*time.Timer),
	}, nil
}

// Start begins watching. The watcher runs until Stop is called or ctx is
// cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(w.manager.cfg.PluginDir); err != nil {
		watcher.Close()
		return err
	}
	w.watcher = watcher

	ctx, w.cancel = context.WithCancel(ctx)
	w.wg.Add(1)
	go w.run(ctx)

	w.logger.Info("watching plugin directory",
		"dir", w.manager.cfg.PluginDir, "debounce_delay", w.debounceDelay.String())
	return nil
}

// Stop stops watching and cancels pending resyncs.
func (w *Watcher) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.watcher != nil {
		w.watcher.Close()
	}
	w.wg.Wait()

	w.pendingMu.Lock()
	for key, timer := range w.pending {
		timer.Stop()
		delete(w.pending, key)
	}
	w.pendingMu.Unlock()
}

func (w *Watcher) run(ctx context.Context) {
	defer w.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if w.shouldProcessEvent(event) {
				w.scheduleResync(event)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watch error", "error", err)
		}
	}
}

// shouldProcessEvent filters out noise: chmod-only events and files matching
// the exclude patterns.
func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	base := filepath.Base(event.Name)
	for _, pattern := range w.excludePatterns {
		if ok, _ := filepath.Match(pattern, base); ok {
			return false
		}
	}
	return true
}

// scheduleResync (re)arms the debounce timer for the plugin directory the
// event belongs to.
func (w *Watcher) scheduleResync(event fsnotify.Event) {
	key := w.pluginKey(event.Name)

	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	if timer, exists := w.pending[key]; exists {
		timer.Stop()
	}
	w.pending[key] = time.AfterFunc(w.debounceDelay, func() {
		w.pendingMu.Lock()
		delete(w.pending, key)
		w.pendingMu.Unlock()

		w.logger.Debug("resyncing plugin directory", "trigger", key)
		if err := w.manager.Resync(); err != nil {
			w.logger.Error("resync failed", "error", err)
		}
	})
}

// pluginKey maps an event path to the name of the plugin directory it
// belongs to, so all events for one plugin share a debounce timer.
func (w *Watcher) pluginKey(path string) string {
	rel, err := filepath.Rel(w.manager.cfg.PluginDir, path)
	if err != nil {
		return path
	}
	if i := strings.IndexRune(rel, filepath.Separator); i >= 0 {
		return rel[:i]
	}
	return rel
}
