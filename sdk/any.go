package sdk

import (
	"fmt"
	"reflect"
)

// Any is a type-erasure container. It stores exactly one value together with
// the static type the value was stored under; the value can only be recovered
// by supplying that same type to AnyCast. Recovery under any other type fails
// with ErrTypeMismatch rather than returning garbage.
type Any struct {
	typ   reflect.Type
	value any
}

// MakeAny erases v, recording T as the stored static type.
func MakeAny[T any](v T) Any {
	return Any{typ: reflect.TypeFor[T](), value: v}
}

// AnyCast recovers the value stored in a as T. The stored static type must
// match T exactly.
func AnyCast[T any](a Any) (T, error) {
	var zero T
	want := reflect.TypeFor[T]()
	if a.typ != want {
		return zero, fmt.Errorf("cannot recover %v from container holding %v: %w",
			want, a.typ, ErrTypeMismatch)
	}
	return a.value.(T), nil
}

// Empty reports whether a holds no value.
func (a Any) Empty() bool { return a.typ == nil }

// Type returns the static type the stored value was erased from, or nil for
// an empty container.
func (a Any) Type() reflect.Type { return a.typ }

// Same reports whether two containers hold the same value. Callables are
// compared by function-pointer target since closures have no value equality;
// stored types that define their own sameValue hook (such as MetaClass)
// delegate to it.
func (a Any) Same(b Any) bool {
	if a.typ != b.typ {
		return false
	}
	if a.typ == nil {
		return true
	}
	if eq, ok := a.value.(interface{ sameValue(other any) bool }); ok {
		return eq.sameValue(b.value)
	}
	if a.typ.Kind() == reflect.Func {
		return reflect.ValueOf(a.value).Pointer() == reflect.ValueOf(b.value).Pointer()
	}
	if !a.typ.Comparable() {
		return false
	}
	return a.value == b.value
}
