// Package hostevent wraps host events. An event is mapped to a host event
// name when created, can be triggered with up to five parameters, and
// delivers host notifications to its callbacks.
package hostevent

import (
	"fmt"
	"log/slog"

	"github.com/sarchlab/simsync/host"
	"github.com/sarchlab/simsync/idgen"
	"github.com/sarchlab/simsync/logging"
	"github.com/sarchlab/simsync/notify"
)

// Func receives an event notification. numParams tells how many of the
// data values the host set.
type Func func(numParams int, d0, d1, d2, d3, d4 uint32)

// Event is one client event.
type Event struct {
	host   host.Events
	logger *slog.Logger

	id          idgen.ID
	name        string
	mask        bool
	system      bool
	subscribed  bool
	callbacks   notify.List[Func]
	lastData    [5]uint32
	lastNParams int
	received    uint64
}

// New maps the event ID to the host event name. A failed mapping is logged
// and the event stays usable for callbacks.
func New(h host.Events, id idgen.ID, name string, mask bool, logger *slog.Logger) *Event {
	e := newEvent(h, id, name, mask, logger)

	if err := h.MapClientEventToSimEvent(id, name); err != nil {
		e.logger.Error("cannot map event", "error", err)
	}

	return e
}

// NewSystemEvent subscribes the event ID to a host system event such as
// "Pause_EX1". System events are never triggered by the client.
func NewSystemEvent(h host.Events, id idgen.ID, name string, logger *slog.Logger) *Event {
	e := newEvent(h, id, name, false, logger)
	e.system = true

	if err := h.SubscribeToSystemEvent(id, name); err != nil {
		e.logger.Error("cannot subscribe to system event", "error", err)
		return e
	}

	e.subscribed = true

	return e
}

func newEvent(h host.Events, id idgen.ID, name string, mask bool, logger *slog.Logger) *Event {
	if logger == nil {
		logger = slog.Default()
	}

	return &Event{
		host:   h,
		logger: logger.With("event", name, "event_id", id),
		id:     id,
		name:   name,
		mask:   mask,
	}
}

// ID returns the event ID messages are routed by.
func (e *Event) ID() idgen.ID {
	return e.id
}

// Name returns the host event name.
func (e *Event) Name() string {
	return e.name
}

// IsSystem tells if the event is a system event subscription.
func (e *Event) IsSystem() bool {
	return e.system
}

// IsSubscribed tells if the host delivers notifications for the event.
func (e *Event) IsSubscribed() bool {
	return e.subscribed
}

// NumCallbacks returns the number of callbacks.
func (e *Event) NumCallbacks() int {
	return e.callbacks.Len()
}

// Received returns the number of notifications processed.
func (e *Event) Received() uint64 {
	return e.received
}

// LastData returns the parameters of the last notification.
func (e *Event) LastData() (int, [5]uint32) {
	return e.lastNParams, e.lastData
}

// Trigger sends the event with one parameter.
func (e *Event) Trigger(data uint32) bool {
	return e.TriggerEx1(data, 0, 0, 0, 0)
}

// TriggerEx1 sends the event with five parameters.
func (e *Event) TriggerEx1(d0, d1, d2, d3, d4 uint32) bool {
	if e.system {
		e.logger.Error("system events cannot be triggered")
		return false
	}

	err := e.host.TransmitClientEvent(e.id, [5]uint32{d0, d1, d2, d3, d4})
	if err != nil {
		e.logger.Error("cannot trigger event", "error", err)
		return false
	}

	logging.Trace(e.logger, "triggered", "data", []uint32{d0, d1, d2, d3, d4})

	return true
}

// AddCallback registers fn. The first callback subscribes the event to the
// host notification group.
func (e *Event) AddCallback(fn Func) notify.CallbackID {
	if e.callbacks.Len() == 0 && !e.system {
		e.Subscribe()
	}

	return e.callbacks.Add(fn)
}

// RemoveCallback unregisters a callback. Removing the last one unsubscribes
// the event. A miss is logged as a warning and reported as false.
func (e *Event) RemoveCallback(id notify.CallbackID) bool {
	if !e.callbacks.Remove(id) {
		e.logger.Warn("callback not found", "callback", id)
		return false
	}

	if e.callbacks.Len() == 0 && !e.system {
		e.Unsubscribe()
	}

	return true
}

// Subscribe adds the event to the notification group.
func (e *Event) Subscribe() bool {
	if e.subscribed {
		return true
	}

	err := e.host.AddClientEventToNotificationGroup(host.DefaultGroup, e.id, e.mask)
	if err != nil {
		e.logger.Error("cannot subscribe event", "error", err)
		return false
	}

	e.subscribed = true

	return true
}

// Unsubscribe removes the event from the notification group, or drops the
// system event subscription.
func (e *Event) Unsubscribe() bool {
	if !e.subscribed {
		return true
	}

	var err error
	if e.system {
		err = e.host.UnsubscribeFromSystemEvent(e.id)
	} else {
		err = e.host.RemoveClientEvent(host.DefaultGroup, e.id)
	}

	if err != nil {
		e.logger.Error("cannot unsubscribe event", "error", err)
		return false
	}

	e.subscribed = false

	return true
}

// Process delivers a notification to every callback in registration order.
func (e *Event) Process(numParams int, data [5]uint32) {
	e.received++
	e.lastNParams = numParams
	e.lastData = data

	logging.Trace(e.logger, "received", "params", numParams, "data", data[:])

	e.callbacks.Each(func(_ notify.CallbackID, fn Func) {
		fn(numParams, data[0], data[1], data[2], data[3], data[4])
	})
}

// Snapshot describes the event for monitoring.
type Snapshot struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	System     bool   `json:"system"`
	Subscribed bool   `json:"subscribed"`
	Callbacks  int    `json:"callbacks"`
	Received   uint64 `json:"received"`
}

// Snapshot returns the monitoring view of the event.
func (e *Event) Snapshot() Snapshot {
	return Snapshot{
		ID:         uint64(e.id),
		Name:       e.name,
		System:     e.system,
		Subscribed: e.subscribed,
		Callbacks:  e.callbacks.Len(),
		Received:   e.received,
	}
}

func (e *Event) String() string {
	return fmt.Sprintf("event %s id=%d subscribed=%t callbacks=%d",
		e.name, e.id, e.subscribed, e.callbacks.Len())
}
