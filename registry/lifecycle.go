package registry

import (
	"github.com/sarchlab/simsync/hooking"
	"github.com/sarchlab/simsync/host"
	"github.com/sarchlab/simsync/logging"
	"github.com/sarchlab/simsync/variable"
)

// Initialize prepares the registry for the first tick.
func (r *Registry) Initialize() bool {
	r.initialized = true
	r.logger.Info("registry initialized")

	return true
}

// PreUpdate refreshes every auto-read variable, requests data for every
// due auto-read sim object, then drains the dispatch queue completely. It
// does nothing on a registry that is not initialized.
func (r *Registry) PreUpdate() {
	if !r.initialized {
		r.logger.Error("pre-update called before initialization")
		return
	}

	ts, tick := r.clock.TimeStamp(), r.clock.TickCounter()

	for _, key := range r.scalarOrder {
		v := r.scalars[key]
		if !v.IsAutoRead() {
			continue
		}

		v.RefreshIfDue(ts, tick)

		if v.HasChanged() {
			r.varChanged(v)
		}
	}

	for _, key := range r.simObjectOrder {
		v := r.simObjects[key]
		if v.IsAutoRead() {
			v.RequestUpdate(ts, tick)
		}
	}

	r.DrainMessages()
}

// Update is the application phase. The registry does nothing here.
func (r *Registry) Update() {
	logging.Trace(r.logger, "update", "tick", r.clock.TickCounter())
}

// PostUpdate flushes every dirty auto-write variable. It does nothing on a
// registry that is not initialized.
func (r *Registry) PostUpdate() {
	if !r.initialized {
		r.logger.Error("post-update called before initialization")
		return
	}

	for _, key := range r.scalarOrder {
		v := r.scalars[key]
		if !v.IsAutoWrite() || !v.IsDirty() {
			continue
		}

		v.FlushIfDirty()
		r.varFlushed(v)
	}

	for _, key := range r.simObjectOrder {
		v := r.simObjects[key]
		if !v.IsAutoWrite() || !v.IsDirty() {
			continue
		}

		v.FlushIfDirty()
		r.varFlushed(v)
	}
}

// Shutdown releases every sim object and event and forgets all variables.
func (r *Registry) Shutdown() {
	for _, key := range r.simObjectOrder {
		r.simObjects[key].Release()
	}

	for _, id := range r.eventOrder {
		r.events[id].Unsubscribe()
	}

	r.host.UnregisterAllNamedVars()

	for key := range r.scalars {
		delete(r.scalars, key)
	}

	for key := range r.simObjects {
		delete(r.simObjects, key)
	}

	for id := range r.byRequest {
		delete(r.byRequest, id)
	}

	for id := range r.events {
		delete(r.events, id)
	}

	for id := range r.keyEvents {
		delete(r.keyEvents, id)
	}

	r.scalarOrder = nil
	r.simObjectOrder = nil
	r.eventOrder = nil
	r.initialized = false
	r.metrics.registered.Reset()
	r.metrics.pending.Set(0)

	r.logger.Info("registry shut down", "routed", r.stats.Routed,
		"dropped", r.stats.Dropped, "exceptions", r.stats.Exceptions)
}

// DrainMessages routes queued host messages until the queue is empty and
// returns how many were handled.
func (r *Registry) DrainMessages() int {
	n := 0

	for {
		msg, ok := r.host.NextDispatch()
		if !ok {
			break
		}

		r.dispatch(msg)
		n++
	}

	r.stats.Drains++
	r.metrics.drained.Observe(float64(n))

	return n
}

func (r *Registry) dispatch(msg host.Message) {
	switch msg.Kind {
	case host.MsgNull:
	case host.MsgOpen:
		r.logger.Info("host connection open")
	case host.MsgQuit:
		r.logger.Info("host connection closed")
	case host.MsgException:
		r.hostException(msg)
	case host.MsgSimObjectData, host.MsgClientData:
		r.routeData(msg)
	case host.MsgEvent, host.MsgEventEx1:
		r.routeEvent(msg)
	case host.MsgKeyEvent:
		r.ProcessKeyEvent(msg.KeyEventID, msg.Data[0], msg.Data[1],
			msg.Data[2], msg.Data[3], msg.Data[4])
		r.routed(msg, "key-event")
	default:
		r.logger.Warn("unknown message kind", "kind", msg.Kind)
		r.dropped(msg)
	}
}

func (r *Registry) routeData(msg host.Message) {
	v, found := r.byRequest[msg.RequestID]
	if !found {
		r.logger.Warn("no variable for request, message dropped",
			"request", msg.RequestID, "kind", msg.Kind)
		r.dropped(msg)

		return
	}

	v.Process(msg.Payload, r.clock.TimeStamp(), r.clock.TickCounter())
	r.routed(msg, v.Name())

	if v.HasChanged() {
		r.varChanged(v)
	}
}

func (r *Registry) routeEvent(msg host.Message) {
	e, found := r.events[msg.EventID]
	if !found {
		r.logger.Warn("no event for id, message dropped",
			"event_id", msg.EventID, "kind", msg.Kind)
		r.dropped(msg)

		return
	}

	e.Process(msg.NumParams, msg.Data)
	r.routed(msg, e.Name())
}

func (r *Registry) hostException(msg host.Message) {
	r.stats.Exceptions++
	r.metrics.exceptions.WithLabelValues(msg.Exception.String()).Inc()

	r.logger.Error("host exception",
		"exception", msg.Exception.String(),
		"send_id", msg.SendID,
		"index", msg.Index)

	r.InvokeHook(hooking.HookCtx{
		Domain: r,
		Pos:    HookPosHostException,
		Item:   msg,
	})
}

func (r *Registry) routed(msg host.Message, owner string) {
	r.stats.Routed++
	r.metrics.routed.WithLabelValues(msg.Kind.String()).Inc()

	logging.Trace(r.logger, "message routed", "msg", msg.String(), "owner", owner)

	r.InvokeHook(hooking.HookCtx{
		Domain: r,
		Pos:    HookPosMsgRouted,
		Item:   msg,
		Detail: owner,
	})
}

func (r *Registry) dropped(msg host.Message) {
	r.stats.Dropped++
	r.metrics.dropped.WithLabelValues(msg.Kind.String()).Inc()

	r.InvokeHook(hooking.HookCtx{
		Domain: r,
		Pos:    HookPosMsgDropped,
		Item:   msg,
	})
}

type snapshotter interface {
	Snapshot() variable.Snapshot
}

func (r *Registry) varChanged(v snapshotter) {
	r.stats.Changes++
	r.metrics.changes.Inc()

	if r.NumHooks() == 0 {
		return
	}

	r.InvokeHook(hooking.HookCtx{
		Domain: r,
		Pos:    HookPosVarChanged,
		Item:   v.Snapshot(),
	})
}

func (r *Registry) varFlushed(v snapshotter) {
	r.stats.Flushes++
	r.metrics.flushes.Inc()

	if r.NumHooks() == 0 {
		return
	}

	r.InvokeHook(hooking.HookCtx{
		Domain: r,
		Pos:    HookPosVarFlushed,
		Item:   v.Snapshot(),
	})
}
