package variable

import (
	"bytes"
	"fmt"

	"github.com/sarchlab/simsync/host"
	"github.com/sarchlab/simsync/idgen"
)

// DefaultClientDataSize is the largest client data area the host allows.
const DefaultClientDataSize = 8192

// ClientDataArea is named shared memory holding one encoded T.
type ClientDataArea[T any] struct {
	simObject

	host host.ClientData
	size int
	data T
}

// NewClientDataArea maps the area name to its client data ID and defines
// the data layout.
func NewClientDataArea[T any](
	h host.ClientData,
	ids ObjectIDs,
	size int,
	codec Codec,
	p Params,
) *ClientDataArea[T] {
	if size <= 0 {
		size = DefaultClientDataSize
	}

	v := &ClientDataArea[T]{
		simObject: newSimObject(p, "client-data", ids, codec),
		host:      h,
		size:      size,
	}

	if err := h.MapClientDataNameToID(p.Name, ids.ClientDataID); err != nil {
		v.logger.Error("cannot map client data name", "error", err)
	}

	if err := h.AddToClientDataDefinition(ids.DataDefID, size); err != nil {
		v.logger.Error("cannot define client data", "error", err)
	}

	return v
}

// ClientDataID returns the ID the area name is mapped to.
func (v *ClientDataArea[T]) ClientDataID() idgen.ID {
	return v.ids.ClientDataID
}

// Size returns the size of the area in bytes.
func (v *ClientDataArea[T]) Size() int {
	return v.size
}

// Allocate creates the area. Only one add-on allocates a shared area; the
// others just map the name.
func (v *ClientDataArea[T]) Allocate(readOnly bool) bool {
	if err := v.host.CreateClientData(v.ids.ClientDataID, v.size, readOnly); err != nil {
		v.logger.Error("cannot allocate client data", "error", err)
		return false
	}

	return true
}

// Data returns a copy of the last accepted or locally set data.
func (v *ClientDataArea[T]) Data() T {
	return v.data
}

// SetData replaces the data and marks it dirty, unless it encodes to the
// same payload as the current data.
func (v *ClientDataArea[T]) SetData(data T) {
	current, errCur := v.codec.Marshal(v.data)
	next, errNext := v.codec.Marshal(data)

	if errCur == nil && errNext == nil && bytes.Equal(current, next) {
		return
	}

	v.data = data
	v.dirty = true
}

// RequestData asks the host for the area content once.
func (v *ClientDataArea[T]) RequestData() bool {
	return v.request(host.ClientDataPeriodOnce)
}

// RequestPeriodic asks the host to send the content on its own schedule.
// It is refused for auto-read variables.
func (v *ClientDataArea[T]) RequestPeriodic(period host.ClientDataPeriod) bool {
	if v.autoRead && period != host.ClientDataPeriodNever {
		v.usageError(ErrPeriodicRequest, "period", period)
		return false
	}

	return v.request(period)
}

func (v *ClientDataArea[T]) request(period host.ClientDataPeriod) bool {
	err := v.host.RequestClientData(
		v.ids.ClientDataID, v.ids.RequestID, v.ids.DataDefID, period)
	if err != nil {
		v.logger.Error("client data request failed", "error", err)
		return false
	}

	return true
}

// RequestUpdate requests the content if none was received yet or the
// policy says it is due.
func (v *ClientDataArea[T]) RequestUpdate(timeStamp float64, tickCounter uint64) {
	if !v.shouldRequest(timeStamp, tickCounter) {
		v.SetChanged(false)
		return
	}

	v.RequestData()
}

// Process accepts a response payload.
func (v *ClientDataArea[T]) Process(payload []byte, timeStamp float64, tickCounter uint64) {
	v.accept(payload, timeStamp, tickCounter, func(b []byte) error {
		var data T
		if err := v.codec.Unmarshal(b, &data); err != nil {
			return err
		}

		v.data = data

		return nil
	})
}

// WriteData sends the data to the host and clears the dirty flag.
func (v *ClientDataArea[T]) WriteData() bool {
	payload, err := v.codec.Marshal(v.data)
	if err != nil {
		v.logger.Error("cannot encode data", "error", err)
		return false
	}

	v.dirty = false

	if len(payload) > v.size {
		v.logger.Error("encoded data exceeds client data area",
			"bytes", len(payload), "size", v.size)
		return false
	}

	err = v.host.SetClientData(v.ids.ClientDataID, v.ids.DataDefID, payload)
	if err != nil {
		v.logger.Error("client data write failed", "error", err)
		return false
	}

	return true
}

// FlushIfDirty writes local changes.
func (v *ClientDataArea[T]) FlushIfDirty() {
	if v.dirty {
		v.WriteData()
	}
}

// Release clears the client data definition.
func (v *ClientDataArea[T]) Release() {
	if err := v.host.ClearClientDataDefinition(v.ids.DataDefID); err != nil {
		v.logger.Warn("cannot clear client data definition", "error", err)
	}
}

// Snapshot describes the variable for monitoring.
func (v *ClientDataArea[T]) Snapshot() Snapshot {
	return v.snapshot()
}

func (v *ClientDataArea[T]) String() string {
	return fmt.Sprintf("client-data %s size=%d request=%d data=%+v",
		v.name, v.size, v.ids.RequestID, v.data)
}
