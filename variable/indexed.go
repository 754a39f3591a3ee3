package variable

import (
	"fmt"

	"github.com/sarchlab/simsync/host"
)

// EventSetter triggers the host event that writes an indexed variable.
type EventSetter interface {
	Name() string
	TriggerEx1(d0, d1, d2, d3, d4 uint32) bool
}

// Indexed is a scalar backed by an aircraft variable with an optional index.
// It is read-only unless a setter event or a setter event name is given.
type Indexed struct {
	*Cacheable

	host        host.AircraftVars
	index       int
	dataID      host.DataID
	setterName  string
	setterEvent EventSetter
}

// NewIndexed looks the name up with the host and creates the variable. An
// unknown name is logged and every later read fails with
// ErrUnknownVariable.
func NewIndexed(
	h host.AircraftVars,
	index int,
	setterName string,
	setterEvent EventSetter,
	p Params,
) *Indexed {
	v := &Indexed{
		host:        h,
		index:       index,
		setterName:  setterName,
		setterEvent: setterEvent,
	}

	wantsWrite := p.Mode.Writes()
	if wantsWrite && !v.writable() {
		p.Mode &^= AutoWrite
	}

	v.Cacheable = newCacheable(p, "indexed", v)
	v.dataID = h.AircraftVarEnum(p.Name)

	if !v.dataID.Valid() {
		v.usageError(ErrUnknownVariable, "index", index)
	}

	if wantsWrite && !v.writable() {
		v.usageError(ErrReadOnly, "index", index)
	}

	return v
}

func (v *Indexed) writable() bool {
	return v.setterName != "" || v.setterEvent != nil
}

// Index returns the index of the variable. Zero means not indexed.
func (v *Indexed) Index() int {
	return v.index
}

// DataID returns the host handle of the variable.
func (v *Indexed) DataID() host.DataID {
	return v.dataID
}

// SetterName returns the name of the setter event, if any.
func (v *Indexed) SetterName() string {
	if v.setterEvent != nil {
		return v.setterEvent.Name()
	}

	return v.setterName
}

// HasSetterEvent tells if writes go through an event.
func (v *Indexed) HasSetterEvent() bool {
	return v.setterEvent != nil
}

// AttachSetter gives a read-only variable a way to write. An already
// writable variable keeps its setter.
func (v *Indexed) AttachSetter(setterName string, setterEvent EventSetter) {
	if v.writable() {
		return
	}

	v.setterName = setterName
	v.setterEvent = setterEvent
}

// RawRead reads the value from the host.
func (v *Indexed) RawRead() (float64, error) {
	if !v.dataID.Valid() {
		return 0, fmt.Errorf("%w: %s", ErrUnknownVariable, v.name)
	}

	return v.host.AircraftVarValue(v.dataID, v.unit, v.index)
}

// RawWrite writes through the setter event if there is one, or through
// calculator code otherwise.
func (v *Indexed) RawWrite(value float64) error {
	if !v.writable() {
		return fmt.Errorf("%w: %s", ErrReadOnly, v.name)
	}

	if v.setterEvent != nil {
		data := uint32(int64(value))

		var ok bool
		if v.index != 0 {
			ok = v.setterEvent.TriggerEx1(uint32(v.index), data, 0, 0, 0)
		} else {
			ok = v.setterEvent.TriggerEx1(data, 0, 0, 0, 0)
		}

		if !ok {
			return fmt.Errorf("setter event %s failed", v.setterEvent.Name())
		}

		return nil
	}

	return v.host.ExecuteCalculatorCode(v.calculatorCode(value))
}

func (v *Indexed) calculatorCode(value float64) string {
	if v.index != 0 {
		return fmt.Sprintf("%f %d (>K:2:%s)", value, v.index, v.setterName)
	}

	return fmt.Sprintf("%f (>K:%s)", value, v.setterName)
}

// Snapshot describes the variable for monitoring.
func (v *Indexed) Snapshot() Snapshot {
	s := v.Cacheable.Snapshot()
	s.Index = v.index

	return s
}

func (v *Indexed) String() string {
	return fmt.Sprintf("%s index=%d", v.Cacheable.String(), v.index)
}
