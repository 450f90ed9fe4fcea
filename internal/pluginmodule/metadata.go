package pluginmodule

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MetadataFile is the sidecar file describing a plugin binary, stored in the
// plugin's directory next to the shared object.
const MetadataFile = "plugin.yml"

// ReadPluginMetadataFile reads a plugin metadata sidecar (YAML only) and
// returns the parsed metadata.
func ReadPluginMetadataFile(path string) (*PluginMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var meta PluginMetadata
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse YAML metadata: %w", err)
	}

	if meta.ID == "" || meta.Name == "" || meta.Version == "" {
		return nil, fmt.Errorf("invalid plugin metadata: missing required fields")
	}

	return &meta, nil
}

// BinaryName returns the shared-object file name for the plugin.
func (m *PluginMetadata) BinaryName() string {
	if m.Binary != "" {
		return m.Binary
	}
	return m.ID + ".so"
}
