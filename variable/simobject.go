package variable

import (
	"bytes"
	"fmt"

	"github.com/sarchlab/simsync/idgen"
	"github.com/sarchlab/simsync/notify"
)

// SimObject is a variable whose data is requested by ID and answered later
// through the dispatch queue.
type SimObject interface {
	Name() string
	Kind() string
	RequestID() idgen.ID
	IsAutoRead() bool
	IsAutoWrite() bool
	IsDirty() bool
	HasChanged() bool
	RequestUpdate(timeStamp float64, tickCounter uint64)
	RequestData() bool
	Process(payload []byte, timeStamp float64, tickCounter uint64)
	FlushIfDirty()
	Merge(mode UpdateMode, maxAgeTime float64, maxAgeTicks uint64)
	Release()
	AddCallback(fn func()) notify.CallbackID
	RemoveCallback(id notify.CallbackID) bool
	Snapshot() Snapshot
}

// ObjectIDs are the correlation IDs a sim object is created with.
type ObjectIDs struct {
	DataDefID    idgen.ID
	RequestID    idgen.ID
	ClientDataID idgen.ID
}

type simObject struct {
	Managed

	kind        string
	ids         ObjectIDs
	codec       Codec
	dirtyPolicy DirtyPolicy
	received    bool
	dirty       bool
	lastPayload []byte
}

func newSimObject(p Params, kind string, ids ObjectIDs, codec Codec) simObject {
	if codec == nil {
		codec = CBOR
	}

	return simObject{
		Managed:     newManaged(p, kind),
		kind:        kind,
		ids:         ids,
		codec:       codec,
		dirtyPolicy: p.DirtyPolicy,
	}
}

// Kind names the variable kind.
func (o *simObject) Kind() string {
	return o.kind
}

// RequestID returns the ID responses are routed by.
func (o *simObject) RequestID() idgen.ID {
	return o.ids.RequestID
}

// DataDefID returns the ID of the host data definition.
func (o *simObject) DataDefID() idgen.ID {
	return o.ids.DataDefID
}

// IsDirty tells if local data waits to be written.
func (o *simObject) IsDirty() bool {
	return o.dirty
}

// HasData tells if a response was ever accepted.
func (o *simObject) HasData() bool {
	return o.received
}

func (o *simObject) shouldRequest(timeStamp float64, tickCounter uint64) bool {
	return !o.received || o.Due(timeStamp, tickCounter)
}

func (o *simObject) usageError(err error, args ...any) {
	o.logger.Error(fmt.Errorf("%w: %s", err, o.name).Error(), args...)
}

// accept runs change detection on a response payload and decodes it when
// it differs from the last one. A pending local write that the host
// overrides is always replaced by the payload, even an unchanged one.
func (o *simObject) accept(
	payload []byte,
	timeStamp float64,
	tickCounter uint64,
	decode func([]byte) error,
) {
	overridesLocal := o.dirty

	if o.dirty {
		o.usageError(ErrDirtyRefresh, "policy", o.dirtyPolicy.String())

		if o.dirtyPolicy == LocalWins {
			o.SetChanged(false)
			return
		}
	}

	o.Stamp(timeStamp, tickCounter)

	if !overridesLocal && !o.skipChangeCheck && o.received &&
		bytes.Equal(payload, o.lastPayload) {
		o.dirty = false
		o.SetChanged(false)

		return
	}

	if err := decode(payload); err != nil {
		o.logger.Error("cannot decode host data", "error", err)
		o.SetChanged(false)

		return
	}

	o.lastPayload = append(o.lastPayload[:0], payload...)
	o.received = true
	o.dirty = false
	o.SetChanged(true)
}

func (o *simObject) snapshot() Snapshot {
	return Snapshot{
		Kind:        o.kind,
		Name:        o.name,
		Cached:      o.received,
		Dirty:       o.dirty,
		Changed:     o.HasChanged(),
		AutoRead:    o.autoRead,
		AutoWrite:   o.autoWrite,
		TimeStamp:   o.timeStamp,
		TickStamp:   o.tickStamp,
		MaxAgeTime:  o.maxAgeTime,
		MaxAgeTicks: o.maxAgeTicks,
		Callbacks:   o.NumCallbacks(),
		RequestID:   uint64(o.ids.RequestID),
		Bytes:       len(o.lastPayload),
	}
}
