package handler

import (
	"fmt"
	"log/slog"

	"github.com/sarchlab/simsync/hooking"
	"github.com/sarchlab/simsync/timing"
)

// Hook positions raised by the frame driver. Item is the FrameData.
var (
	HookPosFrameStart = &hooking.HookPos{Name: "FrameStart"}
	HookPosFrameEnd   = &hooking.HookPos{Name: "FrameEnd"}
)

// Frameable is anything that can run a frame.
type Frameable interface {
	Update(frame FrameData) bool
}

type frameEvent struct {
	frame uint64
}

// FrameDriver schedules frames on an event engine at a fixed frame rate,
// standing in for the host's per-frame callback.
type FrameDriver struct {
	*hooking.HookableBase

	name     string
	engine   timing.EventScheduler
	target   Frameable
	freq     timing.Freq
	frames   uint64
	logger   *slog.Logger
	stopped  bool
	ran      uint64
	failures uint64
}

// FrameDriverBuilder can build frame drivers.
type FrameDriverBuilder struct {
	engine timing.EventScheduler
	freq   timing.Freq
	frames uint64
	logger *slog.Logger
}

// MakeFrameDriverBuilder creates a builder that runs at 60 frames per
// second until stopped.
func MakeFrameDriverBuilder() FrameDriverBuilder {
	return FrameDriverBuilder{freq: 60 * timing.Hz}
}

// WithEngine sets the engine frames are scheduled on.
func (b FrameDriverBuilder) WithEngine(e timing.EventScheduler) FrameDriverBuilder {
	b.engine = e
	return b
}

// WithFreq sets the frame rate.
func (b FrameDriverBuilder) WithFreq(f timing.Freq) FrameDriverBuilder {
	b.freq = f
	return b
}

// WithFrames limits the number of frames. Zero runs until Stop.
func (b FrameDriverBuilder) WithFrames(n uint64) FrameDriverBuilder {
	b.frames = n
	return b
}

// WithLogger sets the logger.
func (b FrameDriverBuilder) WithLogger(logger *slog.Logger) FrameDriverBuilder {
	b.logger = logger
	return b
}

// Build creates a frame driver for target.
func (b FrameDriverBuilder) Build(name string, target Frameable) *FrameDriver {
	if b.engine == nil {
		panic("frame driver needs an engine")
	}

	logger := b.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &FrameDriver{
		HookableBase: hooking.NewHookableBase(),
		name:         name,
		engine:       b.engine,
		target:       target,
		freq:         b.freq,
		frames:       b.frames,
		logger:       logger.With("driver", name),
	}
}

// Start schedules the first frame at the current engine time.
func (d *FrameDriver) Start() {
	d.stopped = false
	d.schedule(0, d.engine.CurrentTime())
}

// Stop keeps the driver from scheduling further frames.
func (d *FrameDriver) Stop() {
	d.stopped = true
}

// FramesRun returns the number of frames handed to the target.
func (d *FrameDriver) FramesRun() uint64 {
	return d.ran
}

// Failures returns the number of frames the target reported as failed.
func (d *FrameDriver) Failures() uint64 {
	return d.failures
}

func (d *FrameDriver) schedule(frame uint64, at timing.VTimeInSec) {
	d.engine.Schedule(timing.ScheduledEvent{
		Event:   &frameEvent{frame: frame},
		Time:    at,
		Handler: d,
	})
}

// Handle runs a frame event.
func (d *FrameDriver) Handle(event any) error {
	switch e := event.(type) {
	case *frameEvent:
		d.runFrame(e.frame)
		return nil
	default:
		return fmt.Errorf("frame driver cannot handle %T", event)
	}
}

func (d *FrameDriver) runFrame(n uint64) {
	now := d.engine.CurrentTime()
	frame := FrameData{
		Frame: n,
		T:     float64(now),
		DT:    float64(d.freq.Period()),
	}

	ctx := hooking.HookCtx{Domain: d, Pos: HookPosFrameStart, Item: frame}
	d.InvokeHook(ctx)

	if !d.target.Update(frame) {
		d.failures++
	}

	d.ran++

	ctx.Pos = HookPosFrameEnd
	d.InvokeHook(ctx)

	if d.stopped || (d.frames != 0 && d.ran >= d.frames) {
		d.logger.Debug("frame driver done", "frames", d.ran, "failures", d.failures)
		return
	}

	d.schedule(n+1, d.freq.NCyclesLater(1, now))
}
