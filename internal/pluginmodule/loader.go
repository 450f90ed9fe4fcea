package pluginmodule

import (
	"fmt"
	"plugin"
	"time"

	"github.com/google/uuid"

	"github.com/sgo-ml/sgo/sdk"
)

// Library is one loaded plugin binary together with its manifest. Go never
// unloads a mapped plugin, so factories obtained from the manifest stay
// valid for the life of the process even after the library is deregistered
// from the host registry.
type Library struct {
	LoadID   string
	PluginID string
	Path     string
	Metadata *PluginMetadata
	Manifest *sdk.Manifest
	BuiltIn  bool
	LoadedAt time.Time

	handle *plugin.Plugin
}

// Info summarizes the library for host-facing listings.
func (l *Library) Info() LibraryInfo {
	return LibraryInfo{
		LoadID:      l.LoadID,
		PluginID:    l.PluginID,
		Path:        l.Path,
		Description: l.Manifest.Description(),
		Classes:     l.Manifest.ClassList(),
		BuiltIn:     l.BuiltIn,
		LoadedAt:    l.LoadedAt,
	}
}

// OpenLibrary maps the shared object at path and invokes its manifest entry
// point. The entry point is called exactly once per process for a given
// binary; the manifest it returns is cached by the plugin itself.
func OpenLibrary(path string) (*Library, error) {
	handle, err := plugin.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open plugin %s: %w", path, err)
	}

	sym, err := handle.Lookup(sdk.EntrySymbol)
	if err != nil {
		return nil, fmt.Errorf("plugin %s has no %s entry point: %w", path, sdk.EntrySymbol, err)
	}

	entry, ok := sym.(sdk.ManifestFunc)
	if !ok {
		return nil, fmt.Errorf("plugin %s: %s has type %T, want func() *sdk.Manifest", path, sdk.EntrySymbol, sym)
	}

	manifest := entry()
	if manifest == nil {
		return nil, fmt.Errorf("plugin %s: entry point returned no manifest", path)
	}

	return &Library{
		LoadID:   uuid.NewString(),
		Path:     path,
		Manifest: manifest,
		LoadedAt: time.Now(),
		handle:   handle,
	}, nil
}

// NewBuiltinLibrary wraps a manifest registered from inside the host binary
// itself, giving built-in class catalogs the same shape as external ones.
func NewBuiltinLibrary(pluginID string, manifest *sdk.Manifest) *Library {
	return &Library{
		LoadID:   uuid.NewString(),
		PluginID: pluginID,
		Manifest: manifest,
		BuiltIn:  true,
		LoadedAt: time.Now(),
	}
}
