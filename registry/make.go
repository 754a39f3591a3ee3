package registry

import (
	"fmt"
	"strings"

	"github.com/sarchlab/simsync/host"
	"github.com/sarchlab/simsync/hostevent"
	"github.com/sarchlab/simsync/idgen"
	"github.com/sarchlab/simsync/variable"
)

func scalarKey(kind, name string, index int, unit host.Unit) string {
	return fmt.Sprintf("%s:%s:%d:%s", kind, name, index, unit.Name)
}

func structKey(name string, fields []variable.FieldDef) string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.FullName() + "[" + f.Unit.Name + "]"
	}

	return "struct:" + name + "|" + strings.Join(names, ",")
}

// MakeNamedVar returns the named variable with the given name and unit,
// creating it on first use. A repeated request upgrades the shared instance
// with the new mode and max ages.
func (r *Registry) MakeNamedVar(
	name string,
	unit host.Unit,
	mode variable.UpdateMode,
	maxAgeTime float64,
	maxAgeTicks uint64,
) *variable.Named {
	fullName := r.namePrefix + name
	key := scalarKey("named", fullName, 0, unit)

	if existing, found := r.scalars[key]; found {
		v := existing.(*variable.Named)
		v.Merge(mode, maxAgeTime, maxAgeTicks)
		r.logger.Debug("named variable shared", "var", fullName, "mode", v.Mode())

		return v
	}

	v := variable.NewNamed(r.host,
		r.params(fullName, unit, mode, maxAgeTime, maxAgeTicks))
	r.addScalar(key, v)

	return v
}

// MakeIndexedVar returns the aircraft variable with the given name, index
// and unit, creating it on first use. Without setterName and setterEvent
// the variable is read-only. A repeated request upgrades the shared
// instance and may give it the setter it lacked.
func (r *Registry) MakeIndexedVar(
	name string,
	index int,
	setterName string,
	setterEvent variable.EventSetter,
	unit host.Unit,
	mode variable.UpdateMode,
	maxAgeTime float64,
	maxAgeTicks uint64,
) *variable.Indexed {
	key := scalarKey("indexed", name, index, unit)

	if existing, found := r.scalars[key]; found {
		v := existing.(*variable.Indexed)
		if setterName != "" || setterEvent != nil {
			v.AttachSetter(setterName, setterEvent)
		}

		v.Merge(mode, maxAgeTime, maxAgeTicks)
		r.logger.Debug("indexed variable shared",
			"var", name, "index", index, "mode", v.Mode())

		return v
	}

	v := variable.NewIndexed(r.host, index, setterName, setterEvent,
		r.params(name, unit, mode, maxAgeTime, maxAgeTicks))
	r.addScalar(key, v)

	return v
}

// MakeSimpleIndexedVar is MakeIndexedVar for a read-only, non-indexed
// variable.
func (r *Registry) MakeSimpleIndexedVar(
	name string,
	unit host.Unit,
	autoRead bool,
	maxAgeTime float64,
	maxAgeTicks uint64,
) *variable.Indexed {
	return r.MakeIndexedVar(name, 0, "", nil, unit,
		variable.ModeOf(autoRead, false), maxAgeTime, maxAgeTicks)
}

func (r *Registry) addScalar(key string, v variable.Scalar) {
	r.scalars[key] = v
	r.scalarOrder = append(r.scalarOrder, key)
	r.metrics.registered.WithLabelValues(v.Kind()).Inc()

	r.logger.Debug("variable created", "key", key)
}

// MakeStructVar returns the structured variable with the given name and
// fields, creating it on first use.
func MakeStructVar[T any](
	r *Registry,
	name string,
	fields []variable.FieldDef,
	mode variable.UpdateMode,
	maxAgeTime float64,
	maxAgeTicks uint64,
) *variable.Struct[T] {
	key := structKey(name, fields)

	if existing, found := r.simObjects[key]; found {
		if v, ok := existing.(*variable.Struct[T]); ok {
			v.Merge(mode, maxAgeTime, maxAgeTicks)
			return v
		}

		r.logger.Error("struct variable requested with another data type, not shared",
			"var", name, "type", fmt.Sprintf("%T", existing))
	}

	ids := variable.ObjectIDs{
		DataDefID: r.ids.Next(idgen.DataDefinition),
		RequestID: r.ids.Next(idgen.Request),
	}

	v := variable.NewStruct[T](r.host, ids, fields, r.codec,
		r.params(name, host.Unit{}, mode, maxAgeTime, maxAgeTicks))
	r.addSimObject(uniqueKey(r, key, ids.RequestID), v)

	return v
}

// MakeClientDataAreaVar returns the client data area with the given name,
// creating it on first use. A size of zero uses the largest area.
func MakeClientDataAreaVar[T any](
	r *Registry,
	name string,
	size int,
	mode variable.UpdateMode,
	maxAgeTime float64,
	maxAgeTicks uint64,
) *variable.ClientDataArea[T] {
	key := "client-data:" + name

	if existing, found := r.simObjects[key]; found {
		if v, ok := existing.(*variable.ClientDataArea[T]); ok {
			v.Merge(mode, maxAgeTime, maxAgeTicks)
			return v
		}

		r.logger.Error("client data area requested with another data type, not shared",
			"var", name, "type", fmt.Sprintf("%T", existing))
	}

	ids := variable.ObjectIDs{
		ClientDataID: r.ids.Next(idgen.ClientData),
		DataDefID:    r.ids.Next(idgen.DataDefinition),
		RequestID:    r.ids.Next(idgen.Request),
	}

	v := variable.NewClientDataArea[T](r.host, ids, size, r.codec,
		r.params(name, host.Unit{}, mode, maxAgeTime, maxAgeTicks))
	r.addSimObject(uniqueKey(r, key, ids.RequestID), v)

	return v
}

// MakeBufferedClientDataAreaVar returns the buffered client data area with
// the given name, creating it on first use.
func (r *Registry) MakeBufferedClientDataAreaVar(
	name string,
	chunkSize int,
	mode variable.UpdateMode,
	maxAgeTime float64,
	maxAgeTicks uint64,
) *variable.BufferedClientDataArea {
	key := "buffered-client-data:" + name

	if existing, found := r.simObjects[key]; found {
		v := existing.(*variable.BufferedClientDataArea)
		v.Merge(mode, maxAgeTime, maxAgeTicks)

		return v
	}

	ids := variable.ObjectIDs{
		ClientDataID: r.ids.Next(idgen.ClientData),
		DataDefID:    r.ids.Next(idgen.DataDefinition),
		RequestID:    r.ids.Next(idgen.Request),
	}

	v := variable.NewBufferedClientDataArea(r.host, ids, chunkSize,
		r.params(name, host.Unit{}, mode, maxAgeTime, maxAgeTicks))
	r.addSimObject(key, v)

	return v
}

func uniqueKey(r *Registry, key string, reqID idgen.ID) string {
	if _, taken := r.simObjects[key]; !taken {
		return key
	}

	return fmt.Sprintf("%s#%d", key, reqID)
}

func (r *Registry) addSimObject(key string, v variable.SimObject) {
	r.simObjects[key] = v
	r.simObjectOrder = append(r.simObjectOrder, key)
	r.byRequest[v.RequestID()] = v
	r.metrics.registered.WithLabelValues(v.Kind()).Inc()
	r.metrics.pending.Set(float64(len(r.byRequest)))

	r.logger.Debug("variable created", "key", key, "request", v.RequestID())
}

// MakeEvent maps a new event ID to the host event name. Events are not
// shared: every call returns a new event with a new ID.
func (r *Registry) MakeEvent(name string, mask bool) *hostevent.Event {
	e := hostevent.New(r.host, r.ids.Next(idgen.Event), name, mask, r.logger)
	r.addEvent(e)

	return e
}

// MakeSystemEvent subscribes a new event ID to a host system event.
func (r *Registry) MakeSystemEvent(name string) *hostevent.Event {
	e := hostevent.NewSystemEvent(r.host, r.ids.Next(idgen.Event), name, r.logger)
	r.addEvent(e)

	return e
}

func (r *Registry) addEvent(e *hostevent.Event) {
	r.events[e.ID()] = e
	r.eventOrder = append(r.eventOrder, e.ID())
	r.metrics.registered.WithLabelValues("event").Inc()

	r.logger.Debug("event created", "event", e.Name(), "event_id", e.ID())
}
