package sdk

import (
	"reflect"
	"sort"
)

// EntrySymbol is the name of the exported symbol every plugin binary must
// provide. The symbol's value must have type ManifestFunc.
const EntrySymbol = "SgoManifest"

// ObjectSuffix is appended to a registration identifier for the catalog
// entry bound to the universal Object capability.
const ObjectSuffix = "_sgo"

// ManifestFunc is the signature of a plugin's entry point. The first call
// builds the manifest; repeated calls return the same cached value. Plugins
// conventionally implement this with sync.OnceValue.
type ManifestFunc = func() *Manifest

// ManifestEntry is one (registration name, erased metaclass) pair used
// during manifest construction.
type ManifestEntry struct {
	Name  string
	Class Any
}

// Manifest is an immutable catalog of the classes one plugin binary exports.
// It is built once, at plugin initialization, and never mutated afterwards;
// all query operations are safe for unlimited concurrent readers. A manifest
// holds no reference to the binary it came from — keeping that binary mapped
// while factories may still be invoked is the host's responsibility.
type Manifest struct {
	description string
	classes     map[string]Any
}

// NewManifest builds a manifest from entries in sequence order. A repeated
// name overwrites the earlier entry; names are otherwise not validated.
func NewManifest(description string, entries ...ManifestEntry) *Manifest {
	m := &Manifest{
		description: description,
		classes:     make(map[string]Any, len(entries)),
	}
	for _, e := range entries {
		m.addClass(e.Name, e.Class)
	}
	return m
}

// BuildManifest assembles a manifest from the per-class entry pairs produced
// by Export.
func BuildManifest(description string, exports ...[]ManifestEntry) *Manifest {
	var entries []ManifestEntry
	for _, pair := range exports {
		entries = append(entries, pair...)
	}
	return NewManifest(description, entries...)
}

// Export produces the two catalog entries that register one exported class:
// identifier+"_sgo" bound to the universal Object capability, and the plain
// identifier bound to the capability Base the author chose. Registering
// through Export makes the pairing impossible to forget.
func Export[Base Object](identifier string, newFn func() Base) []ManifestEntry {
	return []ManifestEntry{
		{
			Name:  identifier + ObjectSuffix,
			Class: MakeAny(NewMetaClass(func() Object { return newFn() })),
		},
		{
			Name:  identifier,
			Class: MakeAny(NewMetaClass(newFn)),
		},
	}
}

// Description returns the human-readable description stored at construction.
func (m *Manifest) Description() string { return m.description }

// ClassList returns the sorted set of registered names.
func (m *Manifest) ClassList() []string {
	names := make([]string, 0, len(m.classes))
	for name := range m.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether name is registered.
func (m *Manifest) Has(name string) bool {
	_, ok := m.classes[name]
	return ok
}

// Clone returns an independent deep copy of the manifest.
func (m *Manifest) Clone() *Manifest {
	c := &Manifest{
		description: m.description,
		classes:     make(map[string]Any, len(m.classes)),
	}
	for name, clazz := range m.classes {
		c.classes[name] = clazz
	}
	return c
}

// Equal reports value equality: same description, same name set, and for
// each name a factory with the same underlying constructor target. Equality
// is reference-based per entry because closures have no value identity.
func (m *Manifest) Equal(other *Manifest) bool {
	if m == other {
		return true
	}
	if m == nil || other == nil {
		return false
	}
	if m.description != other.description || len(m.classes) != len(other.classes) {
		return false
	}
	for name, clazz := range m.classes {
		o, ok := other.classes[name]
		if !ok || !clazz.Same(o) {
			return false
		}
	}
	return true
}

var objectType = reflect.TypeFor[Object]()

// ClassByName recovers the metaclass registered under name, typed as the
// capability T. When T is the universal Object capability the lookup
// performs a capability cast: it succeeds whatever specific capability the
// entry was registered under. For every other T the stored type must match
// exactly, else the lookup fails with ErrTypeMismatch. An absent name fails
// with ErrClassNotFound.
func ClassByName[T Object](m *Manifest, name string) (MetaClass[T], error) {
	clazz, err := m.findClass(name)
	if err != nil {
		return MetaClass[T]{}, err
	}
	if reflect.TypeFor[T]() == objectType {
		oc, ok := clazz.value.(objectClass)
		if !ok {
			return MetaClass[T]{}, &ManifestError{Op: "class_by_name", Name: name, Err: ErrTypeMismatch}
		}
		generic, err := oc.asObjectClass()
		if err != nil {
			return MetaClass[T]{}, &ManifestError{Op: "class_by_name", Name: name, Err: err}
		}
		// T and Object are the same type on this branch.
		return any(generic).(MetaClass[T]), nil
	}
	mc, err := AnyCast[MetaClass[T]](clazz)
	if err != nil {
		return MetaClass[T]{}, &ManifestError{Op: "class_by_name", Name: name, Err: ErrTypeMismatch}
	}
	return mc, nil
}

// addClass inserts or overwrites one entry. Construction-time only; the map
// is never touched once NewManifest returns.
func (m *Manifest) addClass(name string, clazz Any) {
	m.classes[name] = clazz
}

// findClass returns the erased entry registered under name.
func (m *Manifest) findClass(name string) (Any, error) {
	clazz, ok := m.classes[name]
	if !ok {
		return Any{}, &ManifestError{Op: "find_class", Name: name, Err: ErrClassNotFound}
	}
	return clazz, nil
}
