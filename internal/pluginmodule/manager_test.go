package pluginmodule

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestManager returns a manager whose loader fabricates libraries instead
// of dlopening shared objects, so tests can run without building plugin
// binaries.
func newTestManager(t *testing.T, pluginDir string) *Manager {
	t.Helper()
	m := NewManager(&Config{PluginDir: pluginDir, Watch: DefaultWatchConfig()}, testLogger())
	m.open = func(path string) (*Library, error) {
		return &Library{
			LoadID:   path, // deterministic for assertions
			Path:     path,
			Manifest: stubManifest("loaded from " + path),
		}, nil
	}
	return m
}

func TestManagerStartLoadsDirectory(t *testing.T) {
	root := t.TempDir()
	makePluginDir(t, root, "alpha", true)
	makePluginDir(t, root, "beta", true)

	m := newTestManager(t, root)
	require.NoError(t, m.Start(context.Background()))
	defer m.Stop()

	for _, id := range []string{"alpha", "beta"} {
		lib, ok := m.Registry().Library(id)
		require.True(t, ok, "library %s not registered", id)
		assert.Equal(t, id, lib.Metadata.ID)
		assert.False(t, lib.BuiltIn)
	}
}

func TestManagerStartWithoutPluginDir(t *testing.T) {
	m := newTestManager(t, filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, m.Start(context.Background()))
	defer m.Stop()
}

func TestManagerInstallsBuiltins(t *testing.T) {
	RegisterBuiltinManifest("builtin-under-test", stubManifest("builtin classes"))

	m := newTestManager(t, filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, m.Start(context.Background()))
	defer m.Stop()

	lib, ok := m.Registry().Library("builtin-under-test")
	require.True(t, ok)
	assert.True(t, lib.BuiltIn)

	obj, err := m.Registry().CreateObject("StubDistance")
	require.NoError(t, err)
	assert.Equal(t, "StubDistance", obj.Name())
}

func TestManagerLoadPluginIdempotent(t *testing.T) {
	root := t.TempDir()
	makePluginDir(t, root, "alpha", true)

	m := newTestManager(t, root)
	discovered, err := DiscoverPlugins(root, testLogger())
	require.NoError(t, err)
	require.Len(t, discovered, 1)

	first, err := m.LoadPlugin(discovered[0])
	require.NoError(t, err)
	second, err := m.LoadPlugin(discovered[0])
	require.NoError(t, err)
	assert.Same(t, first, second, "an already loaded plugin is returned as-is")
}

func TestManagerResync(t *testing.T) {
	root := t.TempDir()
	makePluginDir(t, root, "alpha", true)

	m := newTestManager(t, root)
	require.NoError(t, m.Start(context.Background()))
	defer m.Stop()

	// A new plugin appears.
	makePluginDir(t, root, "gamma", true)
	require.NoError(t, m.Resync())
	_, ok := m.Registry().Library("gamma")
	assert.True(t, ok)

	// A plugin disappears; it gets deregistered, built-ins are untouched.
	require.NoError(t, os.RemoveAll(filepath.Join(root, "alpha")))
	require.NoError(t, m.Resync())
	_, ok = m.Registry().Library("alpha")
	assert.False(t, ok)
	_, ok = m.Registry().Library("gamma")
	assert.True(t, ok)
}

func TestManagerLoadFailureIsSkipped(t *testing.T) {
	root := t.TempDir()
	makePluginDir(t, root, "alpha", true)
	makePluginDir(t, root, "broken", true)

	m := newTestManager(t, root)
	m.open = func(path string) (*Library, error) {
		if filepath.Base(filepath.Dir(path)) == "broken" {
			return nil, assert.AnError
		}
		return &Library{LoadID: path, Path: path, Manifest: stubManifest("ok")}, nil
	}

	loaded, err := m.LoadDirectory()
	require.NoError(t, err)
	assert.Equal(t, 1, loaded)

	_, ok := m.Registry().Library("alpha")
	assert.True(t, ok)
	_, ok = m.Registry().Library("broken")
	assert.False(t, ok)
}

func TestOpenLibraryMissingFile(t *testing.T) {
	_, err := OpenLibrary(filepath.Join(t.TempDir(), "nope.so"))
	assert.Error(t, err)
}

func TestLibraryInfo(t *testing.T) {
	lib := NewBuiltinLibrary("stub", stubManifest("stub classes"))
	info := lib.Info()

	assert.Equal(t, "stub", info.PluginID)
	assert.True(t, info.BuiltIn)
	assert.Equal(t, "stub classes", info.Description)
	assert.Equal(t, []string{"StubDistance", "StubDistance_sgo"}, info.Classes)
	assert.NotEmpty(t, info.LoadID)
}
