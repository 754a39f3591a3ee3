package variable

import (
	"bytes"
	"fmt"

	"github.com/sarchlab/simsync/host"
)

// FieldDef is one field of a structured variable.
type FieldDef struct {
	Name    string
	Index   int
	Unit    host.Unit
	Epsilon float32
}

// FullName is the name the host knows the field by: "NAME" or "NAME:index".
func (f FieldDef) FullName() string {
	if f.Index != 0 {
		return fmt.Sprintf("%s:%d", f.Name, f.Index)
	}

	return f.Name
}

// Struct is a group of sim object fields read and written together. T is
// decoded from and encoded to the host payload by the codec; with the
// default codec its fields carry cbor tags holding the full field names.
type Struct[T any] struct {
	simObject

	host   host.DataDefinitions
	fields []FieldDef
	data   T
}

// NewStruct registers every field under the data definition ID and creates
// the variable.
func NewStruct[T any](
	h host.DataDefinitions,
	ids ObjectIDs,
	fields []FieldDef,
	codec Codec,
	p Params,
) *Struct[T] {
	v := &Struct[T]{
		simObject: newSimObject(p, "struct", ids, codec),
		host:      h,
		fields:    fields,
	}

	for _, f := range fields {
		err := h.AddToDataDefinition(ids.DataDefID, f.FullName(), f.Unit, f.Epsilon)
		if err != nil {
			v.logger.Error("cannot add field to data definition",
				"field", f.FullName(), "error", err)
		}
	}

	return v
}

// Fields returns the field definitions.
func (v *Struct[T]) Fields() []FieldDef {
	return v.fields
}

// Data returns a copy of the last accepted or locally set data.
func (v *Struct[T]) Data() T {
	return v.data
}

// SetData replaces the data and marks it dirty, unless it encodes to the
// same payload as the current data.
func (v *Struct[T]) SetData(data T) {
	current, errCur := v.codec.Marshal(v.data)
	next, errNext := v.codec.Marshal(data)

	if errCur == nil && errNext == nil && bytes.Equal(current, next) {
		return
	}

	v.data = data
	v.dirty = true
}

// RequestData asks the host for the data once.
func (v *Struct[T]) RequestData() bool {
	err := v.host.RequestDataOnSimObject(
		v.ids.RequestID, v.ids.DataDefID, host.PeriodOnce)
	if err != nil {
		v.logger.Error("data request failed", "error", err)
		return false
	}

	return true
}

// RequestPeriodic asks the host to send the data on its own schedule. This
// conflicts with auto-read and is refused for auto-read variables.
func (v *Struct[T]) RequestPeriodic(period host.Period) bool {
	if v.autoRead && period != host.PeriodNever {
		v.usageError(ErrPeriodicRequest, "period", period)
		return false
	}

	err := v.host.RequestDataOnSimObject(v.ids.RequestID, v.ids.DataDefID, period)
	if err != nil {
		v.logger.Error("periodic data request failed", "error", err)
		return false
	}

	return true
}

// RequestUpdate requests the data if none was received yet or the policy
// says it is due.
func (v *Struct[T]) RequestUpdate(timeStamp float64, tickCounter uint64) {
	if !v.shouldRequest(timeStamp, tickCounter) {
		v.SetChanged(false)
		return
	}

	v.RequestData()
}

// Process accepts a response payload.
func (v *Struct[T]) Process(payload []byte, timeStamp float64, tickCounter uint64) {
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
func (v *Struct[T]) WriteData() bool {
	payload, err := v.codec.Marshal(v.data)
	if err != nil {
		v.logger.Error("cannot encode data", "error", err)
		return false
	}

	v.dirty = false

	if err := v.host.SetDataOnSimObject(v.ids.DataDefID, payload); err != nil {
		v.logger.Error("data write failed", "error", err)
		return false
	}

	return true
}

// FlushIfDirty writes local changes.
func (v *Struct[T]) FlushIfDirty() {
	if v.dirty {
		v.WriteData()
	}
}

// Release clears the host data definition.
func (v *Struct[T]) Release() {
	if err := v.host.ClearDataDefinition(v.ids.DataDefID); err != nil {
		v.logger.Warn("cannot clear data definition", "error", err)
	}
}

// Snapshot describes the variable for monitoring.
func (v *Struct[T]) Snapshot() Snapshot {
	return v.snapshot()
}

func (v *Struct[T]) String() string {
	return fmt.Sprintf("struct %s fields=%d request=%d data=%+v",
		v.name, len(v.fields), v.ids.RequestID, v.data)
}
