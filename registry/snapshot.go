package registry

import (
	"github.com/sarchlab/simsync/hostevent"
	"github.com/sarchlab/simsync/variable"
)

// Stats counts what the registry did since it was built.
type Stats struct {
	Variables         int    `json:"variables"`
	SimObjects        int    `json:"sim_objects"`
	Events            int    `json:"events"`
	KeyEventListeners int    `json:"key_event_listeners"`
	Routed            uint64 `json:"routed"`
	Dropped           uint64 `json:"dropped"`
	Exceptions        uint64 `json:"exceptions"`
	Changes           uint64 `json:"changes"`
	Flushes           uint64 `json:"flushes"`
	Drains            uint64 `json:"drains"`
}

// Stats returns the current counters.
func (r *Registry) Stats() Stats {
	s := r.stats
	s.Variables = len(r.scalars)
	s.SimObjects = len(r.simObjects)
	s.Events = len(r.events)

	for _, listeners := range r.keyEvents {
		s.KeyEventListeners += listeners.Len()
	}

	return s
}

// Variables describes every scalar variable in creation order.
func (r *Registry) Variables() []variable.Snapshot {
	out := make([]variable.Snapshot, 0, len(r.scalarOrder))
	for _, key := range r.scalarOrder {
		out = append(out, r.scalars[key].Snapshot())
	}

	return out
}

// SimObjects describes every sim object in creation order.
func (r *Registry) SimObjects() []variable.Snapshot {
	out := make([]variable.Snapshot, 0, len(r.simObjectOrder))
	for _, key := range r.simObjectOrder {
		out = append(out, r.simObjects[key].Snapshot())
	}

	return out
}

// Events describes every event in creation order.
func (r *Registry) Events() []hostevent.Snapshot {
	out := make([]hostevent.Snapshot, 0, len(r.eventOrder))
	for _, id := range r.eventOrder {
		out = append(out, r.events[id].Snapshot())
	}

	return out
}

// LookupVariable finds a scalar or sim object by name. Scalars are
// searched first.
func (r *Registry) LookupVariable(name string) (any, bool) {
	for _, key := range r.scalarOrder {
		if v := r.scalars[key]; v.Name() == name {
			return v, true
		}
	}

	for _, key := range r.simObjectOrder {
		if v := r.simObjects[key]; v.Name() == name {
			return v, true
		}
	}

	return nil, false
}
