package pluginmodule

import (
	"sort"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/sgo-ml/sgo/sdk"
)

// Registry aggregates the manifests of every loaded library and indexes
// their registered class names for host-side lookup. Collisions between
// libraries are resolved last-registration-wins, matching the overwrite
// semantics inside a single manifest; avoiding collisions across unrelated
// plugins is the plugin authors' concern, the registry only logs them.
type Registry struct {
	mu        sync.RWMutex
	logger    hclog.Logger
	libraries map[string]*Library // plugin ID -> library
	classes   map[string]*Library // class name -> owning library
}

// NewRegistry creates an empty registry.
func NewRegistry(logger hclog.Logger) *Registry {
	return &Registry{
		logger:    logger.Named("registry"),
		libraries: make(map[string]*Library),
		classes:   make(map[string]*Library),
	}
}

// Register adds a loaded library and indexes its classes. Re-registering a
// plugin ID replaces the previous library.
func (r *Registry) Register(lib *Library) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, exists := r.libraries[lib.PluginID]; exists {
		r.logger.Warn("replacing registered library", "plugin_id", lib.PluginID, "previous_load_id", prev.LoadID)
		r.dropClassesLocked(prev)
	}
	r.libraries[lib.PluginID] = lib

	for _, name := range lib.Manifest.ClassList() {
		if owner, taken := r.classes[name]; taken && owner.PluginID != lib.PluginID {
			r.logger.Warn("class name collision, last registration wins",
				"class", name, "previous_plugin", owner.PluginID, "plugin", lib.PluginID)
		}
		r.classes[name] = lib
	}

	r.logger.Info("registered library",
		"plugin_id", lib.PluginID, "load_id", lib.LoadID,
		"classes", len(lib.Manifest.ClassList()), "built_in", lib.BuiltIn)
}

// Deregister removes a library and its class index entries. The underlying
// binary stays mapped; only the catalog is forgotten.
func (r *Registry) Deregister(pluginID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	lib, exists := r.libraries[pluginID]
	if !exists {
		return false
	}
	delete(r.libraries, pluginID)
	r.dropClassesLocked(lib)

	r.logger.Info("deregistered library", "plugin_id", pluginID, "load_id", lib.LoadID)
	return true
}

func (r *Registry) dropClassesLocked(lib *Library) {
	for _, name := range lib.Manifest.ClassList() {
		if owner, ok := r.classes[name]; ok && owner.LoadID == lib.LoadID {
			delete(r.classes, name)
		}
	}
}

// Library returns the library registered under pluginID.
func (r *Registry) Library(pluginID string) (*Library, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	lib, ok := r.libraries[pluginID]
	return lib, ok
}

// Libraries lists all registered libraries sorted by plugin ID.
func (r *Registry) Libraries() []LibraryInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]LibraryInfo, 0, len(r.libraries))
	for _, lib := range r.libraries {
		infos = append(infos, lib.Info())
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].PluginID < infos[j].PluginID })
	return infos
}

// ClassNames returns the sorted names of every class registered by any
// library.
func (r *Registry) ClassNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.classes))
	for name := range r.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupClass returns the library owning the given class name.
func (r *Registry) LookupClass(name string) (*Library, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	lib, ok := r.classes[name]
	return lib, ok
}

// CreateObject mints a new instance of the named class typed as the
// universal Object capability, whichever library registered it and whatever
// specific capability it was registered under.
func (r *Registry) CreateObject(name string) (sdk.Object, error) {
	lib, ok := r.LookupClass(name)
	if !ok {
		return nil, &sdk.ManifestError{Op: "create_object", Name: name, Err: sdk.ErrClassNotFound}
	}

	mc, err := sdk.ClassByName[sdk.Object](lib.Manifest, name)
	if err != nil {
		return nil, err
	}
	return mc.Create()
}

// Built-in manifest registration. Packages inside the host binary register
// their manifests from init() functions, before any Manager exists; the
// Manager installs them into its registry on Start.

var (
	builtinMu sync.Mutex
	builtins  = make(map[string]*sdk.Manifest)
)

// RegisterBuiltinManifest registers a manifest produced inside the host
// binary under the given plugin ID. Intended to be called from init().
func RegisterBuiltinManifest(pluginID string, manifest *sdk.Manifest) {
	builtinMu.Lock()
	defer builtinMu.Unlock()
	builtins[pluginID] = manifest
}

// BuiltinManifests returns a copy of the registered built-in manifests.
func BuiltinManifests() map[string]*sdk.Manifest {
	builtinMu.Lock()
	defer builtinMu.Unlock()

	out := make(map[string]*sdk.Manifest, len(builtins))
	for id, m := range builtins {
		out[id] = m
	}
	return out
}
