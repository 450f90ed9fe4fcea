package pluginmodule

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makePluginDir lays out one plugin directory under root with a sidecar and,
// when withBinary is set, an empty file standing in for the shared object.
func makePluginDir(t *testing.T, root, id string, withBinary bool) string {
	t.Helper()
	dir := filepath.Join(root, id)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	writeMetadata(t, dir, "id: "+id+"\nname: "+id+"\nversion: 1.0.0\n")
	if withBinary {
		require.NoError(t, os.WriteFile(filepath.Join(dir, id+".so"), nil, 0o644))
	}
	return dir
}

func TestDiscoverPlugins(t *testing.T) {
	root := t.TempDir()
	makePluginDir(t, root, "beta", true)
	makePluginDir(t, root, "alpha", true)

	discovered, err := DiscoverPlugins(root, testLogger())
	require.NoError(t, err)
	require.Len(t, discovered, 2)

	// Sorted by plugin ID for determinism.
	assert.Equal(t, "alpha", discovered[0].Metadata.ID)
	assert.Equal(t, "beta", discovered[1].Metadata.ID)
	assert.Equal(t, filepath.Join(root, "alpha", "alpha.so"), discovered[0].Binary)
}

func TestDiscoverPluginsSkipsIncomplete(t *testing.T) {
	root := t.TempDir()
	makePluginDir(t, root, "good", true)

	// No binary next to the sidecar.
	makePluginDir(t, root, "nobinary", false)

	// No sidecar at all.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0o755))

	// Invalid sidecar.
	badDir := filepath.Join(root, "bad")
	require.NoError(t, os.MkdirAll(badDir, 0o755))
	writeMetadata(t, badDir, "id: bad\n")

	// Plain files are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(root, "stray.so"), nil, 0o644))

	discovered, err := DiscoverPlugins(root, testLogger())
	require.NoError(t, err)
	require.Len(t, discovered, 1)
	assert.Equal(t, "good", discovered[0].Metadata.ID)
}

func TestDiscoverPluginsMissingDir(t *testing.T) {
	_, err := DiscoverPlugins(filepath.Join(t.TempDir(), "nope"), testLogger())
	assert.Error(t, err)
}
