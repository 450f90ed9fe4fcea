package sdk

// MetaClass is a type-erased factory for one concrete class, exposed only
// through the capability type T it was registered under. It is a value type:
// copies are independent and reference the same constructor target. The
// constructor typically lives inside the plugin binary that produced the
// manifest, so a MetaClass must not be invoked after the host would have
// unmapped that binary (Go never unloads plugins, which satisfies this by
// construction).
type MetaClass[T Object] struct {
	factory Any // holds func() T
}

// NewMetaClass wraps a zero-argument constructor for some concrete class,
// typed as the capability T it is being registered under.
func NewMetaClass[T Object](factory func() T) MetaClass[T] {
	return MetaClass[T]{factory: MakeAny(factory)}
}

// Create invokes the held constructor and returns a freshly allocated
// instance, non-nil on success. Each call mints an independent object; the
// caller receives a fresh reference it may share freely. A zero-value
// MetaClass fails with ErrNilFactory.
func (m MetaClass[T]) Create() (T, error) {
	var zero T
	if m.factory.Empty() {
		return zero, ErrNilFactory
	}
	fn, err := AnyCast[func() T](m.factory)
	if err != nil {
		return zero, err
	}
	return fn(), nil
}

// objectClass is the erasure-crossing hook used by ClassByName: any
// MetaClass, whatever its capability parameter, can restate itself as a
// factory for the universal Object capability.
type objectClass interface {
	asObjectClass() (MetaClass[Object], error)
}

func (m MetaClass[T]) asObjectClass() (MetaClass[Object], error) {
	if m.factory.Empty() {
		return MetaClass[Object]{}, ErrNilFactory
	}
	fn, err := AnyCast[func() T](m.factory)
	if err != nil {
		return MetaClass[Object]{}, err
	}
	return NewMetaClass(func() Object { return fn() }), nil
}

// sameValue implements the equality hook consulted by Any.Same: two
// metaclasses are the same when their constructors share a function-pointer
// target.
func (m MetaClass[T]) sameValue(other any) bool {
	o, ok := other.(MetaClass[T])
	return ok && m.factory.Same(o.factory)
}
