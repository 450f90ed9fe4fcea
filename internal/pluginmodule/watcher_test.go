package pluginmodule

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatchedManager(t *testing.T, root string) *Manager {
	t.Helper()
	m := newTestManager(t, root)
	m.cfg.Watch.Enabled = true
	m.cfg.Watch.DebounceDelay = 20 * time.Millisecond
	require.NoError(t, m.Start(context.Background()))
	t.Cleanup(m.Stop)
	return m
}

func TestWatcherLoadsAppearingPlugin(t *testing.T) {
	root := t.TempDir()
	m := startWatchedManager(t, root)

	// Stage the plugin elsewhere and move it in atomically, the way an
	// installer would; the watcher only sees events in the root.
	staging := t.TempDir()
	makePluginDir(t, staging, "late", true)
	require.NoError(t, os.Rename(filepath.Join(staging, "late"), filepath.Join(root, "late")))

	require.Eventually(t, func() bool {
		_, ok := m.Registry().Library("late")
		return ok
	}, 3*time.Second, 25*time.Millisecond, "watcher never loaded the new plugin")
}

func TestWatcherDeregistersRemovedPlugin(t *testing.T) {
	root := t.TempDir()
	makePluginDir(t, root, "doomed", true)
	m := startWatchedManager(t, root)

	_, ok := m.Registry().Library("doomed")
	require.True(t, ok)

	require.NoError(t, os.RemoveAll(filepath.Join(root, "doomed")))

	require.Eventually(t, func() bool {
		_, ok := m.Registry().Library("doomed")
		return !ok
	}, 3*time.Second, 25*time.Millisecond, "watcher never deregistered the removed plugin")
}

func TestWatcherEventFilter(t *testing.T) {
	m := newTestManager(t, t.TempDir())
	w, err := NewWatcher(m, DefaultWatchConfig(), testLogger())
	require.NoError(t, err)

	assert.False(t, w.shouldProcessEvent(fsnotify.Event{Name: "x/plugin.yml", Op: fsnotify.Chmod}))
	assert.False(t, w.shouldProcessEvent(fsnotify.Event{Name: "x/copy.tmp", Op: fsnotify.Create}))
	assert.False(t, w.shouldProcessEvent(fsnotify.Event{Name: "x/.gitignore", Op: fsnotify.Write}))
	assert.True(t, w.shouldProcessEvent(fsnotify.Event{Name: "x/plugin.yml", Op: fsnotify.Create}))
	assert.True(t, w.shouldProcessEvent(fsnotify.Event{Name: "x/edistance.so", Op: fsnotify.Write}))
}

func TestWatcherPluginKey(t *testing.T) {
	m := newTestManager(t, filepath.Join("/", "plugins"))
	w, err := NewWatcher(m, DefaultWatchConfig(), testLogger())
	require.NoError(t, err)

	assert.Equal(t, "edistance", w.pluginKey(filepath.Join("/", "plugins", "edistance", "plugin.yml")))
	assert.Equal(t, "edistance", w.pluginKey(filepath.Join("/", "plugins", "edistance")))
}

func TestWatcherStopCancelsPending(t *testing.T) {
	root := t.TempDir()
	m := newTestManager(t, root)
	w, err := NewWatcher(m, WatchConfig{DebounceDelay: time.Hour}, testLogger())
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))

	w.scheduleResync(fsnotify.Event{Name: filepath.Join(root, "x", "plugin.yml"), Op: fsnotify.Create})
	w.Stop()

	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()
	assert.Empty(t, w.pending)
}
