package timing

import (
	"fmt"
	"sync"

	"github.com/sarchlab/simsync/hooking"
)

// SerialEngine runs scheduled events one at a time in time order. Events
// with equal times run in the order they were scheduled.
type SerialEngine struct {
	*hooking.HookableBase

	mu     sync.Mutex
	resume *sync.Cond
	now    VTimeInSec
	paused bool
	queue  *scheduledEventQueue

	running sync.Mutex
}

// NewSerialEngine creates an engine with an empty queue at time 0.
func NewSerialEngine() *SerialEngine {
	e := &SerialEngine{
		HookableBase: hooking.NewHookableBase(),
		queue:        newScheduledEventQueue(),
	}
	e.resume = sync.NewCond(&e.mu)

	return e
}

// Schedule queues an event. Scheduling before the current time is a
// programming error and panics.
func (e *SerialEngine) Schedule(evt ScheduledEvent) {
	now := e.CurrentTime()
	if evt.Time < now {
		panic(fmt.Sprintf("timing: %T scheduled at %.9f, now is %.9f",
			evt.Event, evt.Time, now))
	}

	e.queue.Push(&evt)
}

// Run handles events until the queue is empty. A handler error stops the
// run and is returned; later events stay queued.
func (e *SerialEngine) Run() error {
	e.running.Lock()
	defer e.running.Unlock()

	for {
		evt := e.next()
		if evt == nil {
			return nil
		}

		if err := e.handle(evt); err != nil {
			return err
		}
	}
}

// next waits while paused, then pops the earliest event and moves the
// clock to it.
func (e *SerialEngine) next() *ScheduledEvent {
	e.mu.Lock()
	defer e.mu.Unlock()

	for e.paused {
		e.resume.Wait()
	}

	evt := e.queue.Pop()
	if evt != nil {
		e.now = evt.Time
	}

	return evt
}

func (e *SerialEngine) handle(evt *ScheduledEvent) error {
	ctx := hooking.HookCtx{Domain: e, Pos: HookPosBeforeEvent, Item: evt}
	e.InvokeHook(ctx)

	var err error
	if evt.Handler != nil {
		err = evt.Handler.Handle(evt.Event)
	}

	ctx.Pos = HookPosAfterEvent
	e.InvokeHook(ctx)

	if err != nil {
		return fmt.Errorf("%T at %.9f: %w", evt.Event, evt.Time, err)
	}

	return nil
}

// Pause holds the engine before its next event. The event being handled
// finishes first.
func (e *SerialEngine) Pause() {
	e.mu.Lock()
	e.paused = true
	e.mu.Unlock()
}

// Continue releases a paused engine.
func (e *SerialEngine) Continue() {
	e.mu.Lock()
	e.paused = false
	e.mu.Unlock()

	e.resume.Broadcast()
}

// IsPaused tells if the engine is held.
func (e *SerialEngine) IsPaused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.paused
}

// CurrentTime returns the time of the latest event taken from the queue.
func (e *SerialEngine) CurrentTime() VTimeInSec {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.now
}

// Pending returns the number of queued events.
func (e *SerialEngine) Pending() int {
	return e.queue.Len()
}
