// Package pluginmodule implements the host side of the plugin system:
// discovering plugin binaries on disk, loading them, and aggregating their
// manifests into a queryable registry.
package pluginmodule

import (
	"time"
)

// PluginMetadata is the plugin.yml sidecar model describing one plugin
// binary. ID, Name and Version are required.
type PluginMetadata struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Version     string `yaml:"version" json:"version"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Author      string `yaml:"author,omitempty" json:"author,omitempty"`

	// Binary overrides the shared-object file name; defaults to "<id>.so".
	Binary string `yaml:"binary,omitempty" json:"binary,omitempty"`
}

// LibraryInfo summarizes one loaded library for host-facing listings.
type LibraryInfo struct {
	LoadID      string    `json:"load_id"`
	PluginID    string    `json:"plugin_id"`
	Path        string    `json:"path,omitempty"`
	Description string    `json:"description"`
	Classes     []string  `json:"classes"`
	BuiltIn     bool      `json:"built_in"`
	LoadedAt    time.Time `json:"loaded_at"`
}

// Config defines configuration for the plugin module.
type Config struct {
	PluginDir string      `json:"plugin_dir" mapstructure:"plugin_dir"`
	Watch     WatchConfig `json:"watch" mapstructure:"watch"`
}

// WatchConfig configures runtime plugin discovery.
type WatchConfig struct {
	Enabled         bool          `json:"enabled" mapstructure:"enabled"`
	DebounceDelay   time.Duration `json:"debounce_delay" mapstructure:"debounce_delay"`
	ExcludePatterns []string      `json:"exclude_patterns" mapstructure:"exclude_patterns"`
}

// DefaultWatchConfig returns the default runtime discovery configuration.
func DefaultWatchConfig() WatchConfig {
	return WatchConfig{
		Enabled:         false,
		DebounceDelay:   500 * time.Millisecond,
		ExcludePatterns: []string{"*.tmp", "*.log", "*.swp", "*.swo", ".git*"},
	}
}
