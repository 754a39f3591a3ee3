// Package handler runs the per-frame lifecycle: it owns the registry,
// counts ticks, detects pauses and calls the registered modules in phase
// order.
package handler

// FrameData is what the host passes to every frame.
type FrameData struct {
	Frame        uint64
	T            float64
	DT           float64
	WindowWidth  int
	WindowHeight int
}

// A Module is application logic driven by the handler. Every method
// reports success; a failure is logged and does not stop other modules.
type Module interface {
	Name() string
	Initialize() bool
	PreUpdate(frame FrameData) bool
	Update(frame FrameData) bool
	PostUpdate(frame FrameData) bool
	Shutdown() bool
}
