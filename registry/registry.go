// Package registry owns every synchronized variable and event. It hands out
// shared instances, runs the per-tick read/dispatch/write protocol, and
// routes host responses by their correlation IDs.
package registry

import (
	"log/slog"

	"github.com/sarchlab/simsync/hooking"
	"github.com/sarchlab/simsync/host"
	"github.com/sarchlab/simsync/hostevent"
	"github.com/sarchlab/simsync/idgen"
	"github.com/sarchlab/simsync/notify"
	"github.com/sarchlab/simsync/variable"
)

// Hook positions raised by the registry.
var (
	// HookPosMsgRouted fires after a message reached its owner. Item is the
	// host.Message, Detail the owner name.
	HookPosMsgRouted = &hooking.HookPos{Name: "MsgRouted"}

	// HookPosMsgDropped fires for messages without an owner. Item is the
	// host.Message.
	HookPosMsgDropped = &hooking.HookPos{Name: "MsgDropped"}

	// HookPosHostException fires for exception messages. Item is the
	// host.Message.
	HookPosHostException = &hooking.HookPos{Name: "HostException"}

	// HookPosVarChanged fires when a refresh or response changed a
	// variable. Item is its variable.Snapshot.
	HookPosVarChanged = &hooking.HookPos{Name: "VarChanged"}

	// HookPosVarFlushed fires after an auto-write flushed a variable. Item
	// is its variable.Snapshot.
	HookPosVarFlushed = &hooking.HookPos{Name: "VarFlushed"}
)

// Clock tells the registry the current simulation time and tick.
type Clock interface {
	TimeStamp() float64
	TickCounter() uint64
}

// KeyEventFunc receives the parameters of a key event.
type KeyEventFunc func(d0, d1, d2, d3, d4 uint32)

// Observable is anything callbacks can be attached to.
type Observable interface {
	AddCallback(fn func()) notify.CallbackID
	RemoveCallback(id notify.CallbackID) bool
}

// Registry is the single owner of variables and events. It is not safe for
// concurrent use; all calls happen on the frame path.
type Registry struct {
	*hooking.HookableBase

	name        string
	host        host.Host
	clock       Clock
	logger      *slog.Logger
	ids         *idgen.Namespaces
	codec       variable.Codec
	epsilon     float64
	dirtyPolicy variable.DirtyPolicy
	namePrefix  string
	metrics     *metrics

	scalars        map[string]variable.Scalar
	scalarOrder    []string
	simObjects     map[string]variable.SimObject
	simObjectOrder []string
	byRequest      map[idgen.ID]variable.SimObject
	events         map[idgen.ID]*hostevent.Event
	eventOrder     []idgen.ID
	keyEvents      map[host.KeyEventID]*notify.List[KeyEventFunc]
	keyEventIDs    idgen.Generator

	initialized bool
	stats       Stats
}

// Name returns the registry name.
func (r *Registry) Name() string {
	return r.name
}

// Host returns the host the registry talks to.
func (r *Registry) Host() host.Host {
	return r.host
}

// TimeStamp returns the simulation time of the clock.
func (r *Registry) TimeStamp() float64 {
	return r.clock.TimeStamp()
}

// TickCounter returns the tick of the clock.
func (r *Registry) TickCounter() uint64 {
	return r.clock.TickCounter()
}

// IsInitialized tells if Initialize succeeded and Shutdown was not called.
func (r *Registry) IsInitialized() bool {
	return r.initialized
}

// AddCallback attaches fn to a variable or event-like observable.
func (r *Registry) AddCallback(v Observable, fn func()) notify.CallbackID {
	return v.AddCallback(fn)
}

// RemoveCallback detaches a callback. A miss returns false.
func (r *Registry) RemoveCallback(v Observable, id notify.CallbackID) bool {
	return v.RemoveCallback(id)
}

func (r *Registry) params(
	name string,
	unit host.Unit,
	mode variable.UpdateMode,
	maxAgeTime float64,
	maxAgeTicks uint64,
) variable.Params {
	return variable.Params{
		Name:        name,
		Unit:        unit,
		Mode:        mode,
		MaxAgeTime:  maxAgeTime,
		MaxAgeTicks: maxAgeTicks,
		Epsilon:     r.epsilon,
		DirtyPolicy: r.dirtyPolicy,
		Logger:      r.logger,
	}
}
