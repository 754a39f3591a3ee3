package registry

import (
	"github.com/sarchlab/simsync/host"
	"github.com/sarchlab/simsync/logging"
	"github.com/sarchlab/simsync/notify"
)

// AddKeyEventCallback adds an independent listener for a key event.
func (r *Registry) AddKeyEventCallback(id host.KeyEventID, fn KeyEventFunc) notify.CallbackID {
	listeners, found := r.keyEvents[id]
	if !found {
		listeners = notify.NewListWithIDs[KeyEventFunc](r.keyEventIDs)
		r.keyEvents[id] = listeners
	}

	cbID := listeners.Add(fn)
	r.logger.Debug("key event callback added", "key_event", id, "callback", cbID)

	return cbID
}

// RemoveKeyEventCallback removes one listener of a key event. Other
// listeners are not affected. A miss returns false.
func (r *Registry) RemoveKeyEventCallback(id host.KeyEventID, cbID notify.CallbackID) bool {
	listeners, found := r.keyEvents[id]
	if !found || !listeners.Remove(cbID) {
		r.logger.Warn("key event callback not found",
			"key_event", id, "callback", cbID)
		return false
	}

	if listeners.Len() == 0 {
		delete(r.keyEvents, id)
	}

	return true
}

// SendKeyEvent triggers a key event on the host.
func (r *Registry) SendKeyEvent(id host.KeyEventID, d0, d1, d2, d3, d4 uint32) bool {
	if err := r.host.TriggerKeyEvent(id, [5]uint32{d0, d1, d2, d3, d4}); err != nil {
		r.logger.Error("cannot send key event", "key_event", id, "error", err)
		return false
	}

	return true
}

// ProcessKeyEvent calls every listener of the key event in registration
// order. The parameters are passed through untouched.
func (r *Registry) ProcessKeyEvent(id host.KeyEventID, d0, d1, d2, d3, d4 uint32) {
	listeners, found := r.keyEvents[id]
	if !found {
		logging.Trace(r.logger, "key event without listeners", "key_event", id)
		return
	}

	listeners.Each(func(_ notify.CallbackID, fn KeyEventFunc) {
		fn(d0, d1, d2, d3, d4)
	})
}

// NumKeyEventCallbacks returns the number of listeners of a key event.
func (r *Registry) NumKeyEventCallbacks(id host.KeyEventID) int {
	if listeners, found := r.keyEvents[id]; found {
		return listeners.Len()
	}

	return 0
}
