package handler

import (
	"log/slog"
	"sync"

	"github.com/sarchlab/simsync/hooking"
	"github.com/sarchlab/simsync/host"
	"github.com/sarchlab/simsync/hostevent"
	"github.com/sarchlab/simsync/registry"
	"github.com/sarchlab/simsync/variable"
)

// Hook positions raised by the handler. Item is the FrameData.
var (
	// HookPosFrameProcessed fires after all phases of a frame ran.
	HookPosFrameProcessed = &hooking.HookPos{Name: "FrameProcessed"}

	// HookPosFrameSkipped fires for frames skipped by pause detection.
	// Detail is the reason.
	HookPosFrameSkipped = &hooking.HookPos{Name: "FrameSkipped"}
)

// Pause state flags carried by the Pause_EX1 system event.
const (
	PauseOff       uint32 = 0
	PauseFull      uint32 = 1
	PauseWithSound uint32 = 2
	PauseActive    uint32 = 4
	PauseSimOnly   uint32 = 8
)

// PauseSystemEventName is the host system event reporting pause changes.
const PauseSystemEventName = "Pause_EX1"

// BaseSimData is the structured variable the handler reads every frame.
type BaseSimData struct {
	SimulationTime float64 `cbor:"SIMULATION TIME"`
}

// Handler owns the registry and the modules. It is the registry's clock.
type Handler struct {
	*hooking.HookableBase

	name     string
	logger   *slog.Logger
	registry *registry.Registry
	modules  []Module

	frameLock sync.Mutex

	initialized bool
	timeStamp   float64
	tickCounter uint64
	pauseState  uint32

	isReady          *variable.Named
	developmentState *variable.Named
	baseSimData      *variable.Struct[BaseSimData]
	pauseEvent       *hostevent.Event
}

// Name returns the handler name.
func (h *Handler) Name() string {
	return h.name
}

// Registry returns the registry modules create their variables in.
func (h *Handler) Registry() *registry.Registry {
	return h.registry
}

// TimeStamp returns the simulation time of the last processed frame.
func (h *Handler) TimeStamp() float64 {
	return h.timeStamp
}

// TickCounter returns the number of processed frames.
func (h *Handler) TickCounter() uint64 {
	return h.tickCounter
}

// IsPaused tells if the last pause event reported a pause other than
// active pause.
func (h *Handler) IsPaused() bool {
	return h.pauseState&^PauseActive != 0
}

// PauseState returns the flags of the last pause event.
func (h *Handler) PauseState() uint32 {
	return h.pauseState
}

// IsReady returns the aircraft ready flag read in the last frame.
func (h *Handler) IsReady() bool {
	return h.isReady != nil && h.isReady.IsCached() && h.isReady.GetBool()
}

// DevelopmentState returns the development state read in the last frame.
func (h *Handler) DevelopmentState() float64 {
	if h.developmentState == nil || !h.developmentState.IsCached() {
		return 0
	}

	return h.developmentState.Get()
}

// RegisterModule adds a module. Modules run in registration order.
func (h *Handler) RegisterModule(m Module) {
	h.modules = append(h.modules, m)
	h.logger.Debug("module registered", "module", m.Name())
}

// Modules returns the registered modules.
func (h *Handler) Modules() []Module {
	return h.modules
}

// Inspect runs fn while no frame is in progress.
func (h *Handler) Inspect(fn func(r *registry.Registry)) {
	h.frameLock.Lock()
	defer h.frameLock.Unlock()

	fn(h.registry)
}

// Initialize prepares the registry, the handler's own variables and every
// module.
func (h *Handler) Initialize() bool {
	h.frameLock.Lock()
	defer h.frameLock.Unlock()

	if !h.registry.Initialize() {
		h.logger.Error("cannot initialize registry")
		return false
	}

	h.developmentState = h.registry.MakeNamedVar("DEVELOPER_STATE",
		host.Number, variable.NoAutoUpdate, 0, 0)
	h.isReady = h.registry.MakeNamedVar("IS_READY",
		host.Bool, variable.NoAutoUpdate, 0, 0)

	h.baseSimData = registry.MakeStructVar[BaseSimData](h.registry, "BASE DATA",
		[]variable.FieldDef{{Name: "SIMULATION TIME", Unit: host.Number}},
		variable.NoAutoUpdate, 0, 0)
	if !h.baseSimData.RequestPeriodic(host.PeriodVisualFrame) {
		h.logger.Error("cannot request base sim data")
		return false
	}

	h.pauseEvent = h.registry.MakeSystemEvent(PauseSystemEventName)
	h.pauseEvent.AddCallback(h.onPause)

	result := true
	for _, m := range h.modules {
		if !m.Initialize() {
			h.logger.Error("cannot initialize module", "module", m.Name())
			result = false
		}
	}

	if !result {
		return false
	}

	h.initialized = true
	h.logger.Info("handler initialized", "modules", len(h.modules))

	return true
}

func (h *Handler) onPause(_ int, state, _, _, _, _ uint32) {
	h.pauseState = state
	h.logger.Debug("pause state changed", "state", state, "paused", h.IsPaused())
}

// Update runs one frame. Frames are skipped while paused or when the
// simulation time did not move; a skipped frame does not advance the tick
// counter.
func (h *Handler) Update(frame FrameData) bool {
	h.frameLock.Lock()
	defer h.frameLock.Unlock()

	if !h.initialized {
		h.logger.Error("update called before initialization")
		return false
	}

	h.isReady.Read()
	h.developmentState.Read()

	h.registry.DrainMessages()

	if h.IsPaused() {
		h.skip(frame, "paused")
		return true
	}

	simTime := h.baseSimData.Data().SimulationTime
	if simTime == h.timeStamp {
		h.skip(frame, "simulation time unchanged")
		return true
	}

	h.timeStamp = simTime
	h.tickCounter++

	result := true

	h.registry.PreUpdate()
	result = h.forEachModule("pre-update", func(m Module) bool {
		return m.PreUpdate(frame)
	}) && result

	h.registry.Update()
	result = h.forEachModule("update", func(m Module) bool {
		return m.Update(frame)
	}) && result

	h.registry.PostUpdate()
	result = h.forEachModule("post-update", func(m Module) bool {
		return m.PostUpdate(frame)
	}) && result

	if !result {
		h.logger.Error("frame failed", "tick", h.tickCounter)
	}

	h.InvokeHook(hooking.HookCtx{
		Domain: h,
		Pos:    HookPosFrameProcessed,
		Item:   frame,
	})

	return result
}

func (h *Handler) forEachModule(phase string, call func(m Module) bool) bool {
	result := true

	for _, m := range h.modules {
		if !call(m) {
			h.logger.Warn("module failed", "module", m.Name(), "phase", phase)
			result = false
		}
	}

	return result
}

func (h *Handler) skip(frame FrameData, reason string) {
	h.InvokeHook(hooking.HookCtx{
		Domain: h,
		Pos:    HookPosFrameSkipped,
		Item:   frame,
		Detail: reason,
	})
}

// Shutdown shuts the modules down, then the registry.
func (h *Handler) Shutdown() bool {
	h.frameLock.Lock()
	defer h.frameLock.Unlock()

	result := true
	for _, m := range h.modules {
		if !m.Shutdown() {
			h.logger.Error("cannot shut module down", "module", m.Name())
			result = false
		}
	}

	h.modules = nil
	h.registry.Shutdown()
	h.initialized = false

	h.logger.Info("handler shut down", "ticks", h.tickCounter)

	return result
}
