package timing

import "github.com/sarchlab/simsync/hooking"

// Hook positions raised by the engine. Item is the *ScheduledEvent.
var (
	HookPosBeforeEvent = &hooking.HookPos{Name: "BeforeEvent"}
	HookPosAfterEvent  = &hooking.HookPos{Name: "AfterEvent"}
)

// Handler processes events. Events are plain data; handlers switch on the
// event type.
type Handler interface {
	Handle(event any) error
}

// TimeTeller exposes the current simulation time.
type TimeTeller interface {
	CurrentTime() VTimeInSec
}

// EventScheduler schedules events in the simulation timeline.
type EventScheduler interface {
	TimeTeller
	Schedule(event ScheduledEvent)
}

// ScheduledEvent is the engine-facing wrapper of a user event.
type ScheduledEvent struct {
	// Event is the data payload delivered to the handler.
	Event any

	// Time is when the event should be processed.
	Time VTimeInSec

	// Handler is the component that processes the event.
	Handler Handler

	seq uint64
}
