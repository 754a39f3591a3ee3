package registry

import (
	"github.com/sarchlab/simsync/hostevent"
	"github.com/sarchlab/simsync/idgen"
	"github.com/sarchlab/simsync/variable"
)

// ReleaseVariable forgets a scalar variable. A later request for the same
// name creates a new instance.
func (r *Registry) ReleaseVariable(v variable.Scalar) bool {
	for i, key := range r.scalarOrder {
		if r.scalars[key] != v {
			continue
		}

		delete(r.scalars, key)
		r.scalarOrder = append(r.scalarOrder[:i], r.scalarOrder[i+1:]...)
		r.metrics.registered.WithLabelValues(v.Kind()).Dec()

		return true
	}

	return false
}

// ReleaseSimObject stops routing responses to a sim object and clears its
// host definition. Responses that arrive later are dropped.
func (r *Registry) ReleaseSimObject(v variable.SimObject) bool {
	for i, key := range r.simObjectOrder {
		if r.simObjects[key] != v {
			continue
		}

		delete(r.simObjects, key)
		delete(r.byRequest, v.RequestID())
		r.simObjectOrder = append(r.simObjectOrder[:i], r.simObjectOrder[i+1:]...)
		r.metrics.registered.WithLabelValues(v.Kind()).Dec()
		r.metrics.pending.Set(float64(len(r.byRequest)))

		v.Release()

		return true
	}

	return false
}

// ReleaseEvent stops routing notifications to an event and unsubscribes it.
func (r *Registry) ReleaseEvent(e *hostevent.Event) bool {
	if _, found := r.events[e.ID()]; !found {
		return false
	}

	delete(r.events, e.ID())

	for i, id := range r.eventOrder {
		if id == e.ID() {
			r.eventOrder = append(r.eventOrder[:i], r.eventOrder[i+1:]...)
			break
		}
	}

	r.metrics.registered.WithLabelValues("event").Dec()
	e.Unsubscribe()

	return true
}

// Event returns the event with the given ID.
func (r *Registry) Event(id idgen.ID) (*hostevent.Event, bool) {
	e, found := r.events[id]
	return e, found
}
