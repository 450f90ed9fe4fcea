package pluginmodule

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/go-hclog"
)

// DiscoveredPlugin pairs a plugin directory's sidecar metadata with the
// binary it describes.
type DiscoveredPlugin struct {
	Dir      string
	Binary   string
	Metadata *PluginMetadata
}

// DiscoverPlugins scans dir for plugin directories: immediate subdirectories
// containing a plugin.yml sidecar next to the plugin's shared object.
// Directories with an unreadable sidecar or a missing binary are skipped
// with a warning; they are not errors for the scan as a whole.
func DiscoverPlugins(dir string, logger hclog.Logger) ([]DiscoveredPlugin, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read plugin directory %s: %w", dir, err)
	}

	var discovered []DiscoveredPlugin
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		pluginDir := filepath.Join(dir, entry.Name())

		metaPath := filepath.Join(pluginDir, MetadataFile)
		if _, err := os.Stat(metaPath); err != nil {
			logger.Debug("skipping directory without metadata sidecar", "dir", pluginDir)
			continue
		}

		meta, err := ReadPluginMetadataFile(metaPath)
		if err != nil {
			logger.Warn("skipping plugin with invalid metadata", "dir", pluginDir, "error", err)
			continue
		}

		binary := filepath.Join(pluginDir, meta.BinaryName())
		if _, err := os.Stat(binary); err != nil {
			logger.Warn("skipping plugin without binary", "plugin_id", meta.ID, "binary", binary)
			continue
		}

		discovered = append(discovered, DiscoveredPlugin{
			Dir:      pluginDir,
			Binary:   binary,
			Metadata: meta,
		})
	}

	sort.Slice(discovered, func(i, j int) bool {
		return discovered[i].Metadata.ID < discovered[j].Metadata.ID
	})
	return discovered, nil
}
