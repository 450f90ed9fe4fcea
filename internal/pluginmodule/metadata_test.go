package pluginmodule

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMetadata(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, MetadataFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadPluginMetadataFile(t *testing.T) {
	path := writeMetadata(t, t.TempDir(), `
id: edistance
name: Euclidean Distance
version: 1.0.0
description: distance classes
author: sgo-ml
`)

	meta, err := ReadPluginMetadataFile(path)
	require.NoError(t, err)
	assert.Equal(t, "edistance", meta.ID)
	assert.Equal(t, "Euclidean Distance", meta.Name)
	assert.Equal(t, "1.0.0", meta.Version)
	assert.Equal(t, "edistance.so", meta.BinaryName())
}

func TestReadPluginMetadataFileBinaryOverride(t *testing.T) {
	path := writeMetadata(t, t.TempDir(), `
id: edistance
name: Euclidean Distance
version: 1.0.0
binary: custom.so
`)

	meta, err := ReadPluginMetadataFile(path)
	require.NoError(t, err)
	assert.Equal(t, "custom.so", meta.BinaryName())
}

func TestReadPluginMetadataFileMissingFields(t *testing.T) {
	path := writeMetadata(t, t.TempDir(), `
id: edistance
`)

	_, err := ReadPluginMetadataFile(path)
	assert.ErrorContains(t, err, "missing required fields")
}

func TestReadPluginMetadataFileBadYAML(t *testing.T) {
	path := writeMetadata(t, t.TempDir(), "id: [unterminated")

	_, err := ReadPluginMetadataFile(path)
	assert.ErrorContains(t, err, "failed to parse YAML metadata")
}

func TestReadPluginMetadataFileAbsent(t *testing.T) {
	_, err := ReadPluginMetadataFile(filepath.Join(t.TempDir(), MetadataFile))
	assert.Error(t, err)
}
