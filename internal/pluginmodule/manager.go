package pluginmodule

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
)

// Manager orchestrates plugin discovery, loading and registration for one
// host process. Built-in manifests registered via RegisterBuiltinManifest
// are installed on Start, then the plugin directory is scanned and every
// discovered binary is loaded.
type Manager struct {
	logger   hclog.Logger
	cfg      *Config
	registry *Registry
	watcher  *Watcher

	// open loads one plugin binary; replaced in tests.
	open func(path string) (*Library, error)
}

// NewManager creates a plugin manager for the given configuration.
func NewManager(cfg *Config, logger hclog.Logger) *Manager {
	return &Manager{
		logger:   logger.Named("pluginmodule"),
		cfg:      cfg,
		registry: NewRegistry(logger),
		open:     OpenLibrary,
	}
}

// Registry returns the manager's class registry.
func (m *Manager) Registry() *Registry { return m.registry }

// Start installs built-in manifests, loads every plugin discoverable in the
// configured directory, and starts the directory watcher when enabled. A
// missing plugin directory is not an error; the host may run with built-ins
// only.
func (m *Manager) Start(ctx context.Context) error {
	for pluginID, manifest := range BuiltinManifests() {
		m.registry.Register(NewBuiltinLibrary(pluginID, manifest))
	}

	if m.cfg.PluginDir != "" {
		if _, err := os.Stat(m.cfg.PluginDir); err == nil {
			if _, err := m.LoadDirectory(); err != nil {
				return err
			}
		} else {
			m.logger.Debug("plugin directory not present, running with built-ins only", "dir", m.cfg.PluginDir)
		}

		if m.cfg.Watch.Enabled {
			watcher, err := NewWatcher(m, m.cfg.Watch, m.logger)
			if err != nil {
				return fmt.Errorf("failed to start plugin watcher: %w", err)
			}
			if err := watcher.Start(ctx); err != nil {
				return fmt.Errorf("failed to start plugin watcher: %w", err)
			}
			m.watcher = watcher
		}
	}

	m.logger.Info("plugin manager started", "libraries", len(m.registry.Libraries()))
	return nil
}

// Stop shuts down the directory watcher. Loaded libraries stay registered;
// their binaries remain mapped for the life of the process regardless.
func (m *Manager) Stop() {
	if m.watcher != nil {
		m.watcher.Stop()
		m.watcher = nil
	}
}

// LoadDirectory discovers and loads every plugin in the configured plugin
// directory, returning the number of libraries loaded. Individual plugin
// failures are logged and skipped.
func (m *Manager) LoadDirectory() (int, error) {
	discovered, err := DiscoverPlugins(m.cfg.PluginDir, m.logger)
	if err != nil {
		return 0, err
	}

	loaded := 0
	for _, p := range discovered {
		if _, err := m.LoadPlugin(p); err != nil {
			m.logger.Error("failed to load plugin", "plugin_id", p.Metadata.ID, "binary", p.Binary, "error", err)
			continue
		}
		loaded++
	}
	return loaded, nil
}

// LoadPlugin loads one discovered plugin binary and registers its manifest.
// An already-loaded plugin ID is returned as-is: plugin binaries cannot be
// reloaded in place, the process must restart to pick up a new build.
func (m *Manager) LoadPlugin(p DiscoveredPlugin) (*Library, error) {
	if lib, ok := m.registry.Library(p.Metadata.ID); ok {
		m.logger.Debug("plugin already loaded", "plugin_id", p.Metadata.ID, "load_id", lib.LoadID)
		return lib, nil
	}

	lib, err := m.open(p.Binary)
	if err != nil {
		return nil, err
	}
	lib.PluginID = p.Metadata.ID
	lib.Metadata = p.Metadata

	m.registry.Register(lib)
	return lib, nil
}

// Resync reconciles the registry with the plugin directory: newly appearing
// plugins are loaded, and libraries whose binary has disappeared are
// deregistered. Built-in libraries are never touched.
func (m *Manager) Resync() error {
	discovered, err := DiscoverPlugins(m.cfg.PluginDir, m.logger)
	if err != nil {
		return err
	}

	present := make(map[string]bool, len(discovered))
	for _, p := range discovered {
		present[p.Metadata.ID] = true
		if _, err := m.LoadPlugin(p); err != nil {
			m.logger.Error("failed to load plugin", "plugin_id", p.Metadata.ID, "error", err)
		}
	}

	for _, info := range m.registry.Libraries() {
		if info.BuiltIn || present[info.PluginID] {
			continue
		}
		m.registry.Deregister(info.PluginID)
		m.logger.Warn("plugin removed from directory; its code stays mapped until restart",
			"plugin_id", info.PluginID)
	}
	return nil
}
