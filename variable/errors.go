package variable

import "errors"

// Usage errors. They are logged wrapped with the variable name and never
// returned from per-tick operations.
var (
	ErrNoCachedValue   = errors.New("no cached value")
	ErrStaleRead       = errors.New("read of a value with an unflushed local write")
	ErrDirtyRefresh    = errors.New("refresh of a value with an unflushed local write")
	ErrReadOnly        = errors.New("variable is read-only")
	ErrUnknownVariable = errors.New("host does not know the variable")
	ErrPeriodicRequest = errors.New("periodic request on an auto-read variable")
)
