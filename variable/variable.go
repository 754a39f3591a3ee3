// Package variable caches host-owned values. Every kind shares the same
// staleness policy and change notification; kinds differ in how they move
// data to and from the host.
package variable

import "github.com/sarchlab/simsync/notify"

// Scalar is a cached single value: a named or an indexed variable.
type Scalar interface {
	Name() string
	Kind() string
	IsAutoRead() bool
	IsAutoWrite() bool
	IsDirty() bool
	HasChanged() bool
	Get() float64
	Set(value float64)
	RefreshIfDue(timeStamp float64, tickCounter uint64) float64
	FlushIfDirty()
	Merge(mode UpdateMode, maxAgeTime float64, maxAgeTicks uint64)
	AddCallback(fn func()) notify.CallbackID
	RemoveCallback(id notify.CallbackID) bool
	Snapshot() Snapshot
}

var (
	_ Scalar = (*Named)(nil)
	_ Scalar = (*Indexed)(nil)
)
