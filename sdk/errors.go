package sdk

import (
	"errors"
	"fmt"
)

// Failure taxonomy for manifest lookups and factory invocation. All lookup
// failures wrap one of these sentinels so hosts can branch with errors.Is
// while log lines keep the operation and name context.
var (
	// ErrClassNotFound reports a registration name absent from a manifest.
	ErrClassNotFound = errors.New("class not found")

	// ErrTypeMismatch reports recovery of an erased value under a type it
	// was not stored with.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrNilFactory reports Create on a zero-value MetaClass.
	ErrNilFactory = errors.New("metaclass holds no factory")
)

// ManifestError is a lookup failure carrying the operation and the
// registration name that failed.
type ManifestError struct {
	Op   string
	Name string
	Err  error
}

func (e *ManifestError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Name, e.Err)
}

func (e *ManifestError) Unwrap() error { return e.Err }
