// Package simulation assembles a session: a frame handler and its registry
// driven by an event engine, with optional recording and monitoring.
package simulation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sarchlab/simsync/datarecording"
	"github.com/sarchlab/simsync/handler"
	"github.com/sarchlab/simsync/hooking"
	"github.com/sarchlab/simsync/host"
	"github.com/sarchlab/simsync/monitoring"
	"github.com/sarchlab/simsync/registry"
	"github.com/sarchlab/simsync/timing"
)

// Stepper is a host that produces its per-frame responses when stepped.
type Stepper interface {
	Step()
}

// frameStartHook runs the before-frame callbacks, then steps the host.
type frameStartHook struct {
	s *Simulation
}

func (h frameStartHook) Func(ctx hooking.HookCtx) {
	if ctx.Pos != handler.HookPosFrameStart {
		return
	}

	frame := ctx.Item.(handler.FrameData)
	for _, fn := range h.s.beforeFrame {
		fn(frame)
	}

	if stepper, ok := h.s.host.(Stepper); ok {
		stepper.Step()
	}
}

// A Simulation owns everything a session needs.
type Simulation struct {
	id     string
	host   host.Host
	logger *slog.Logger

	engine  *timing.SerialEngine
	handler *handler.Handler
	driver  *handler.FrameDriver
	metrics *prometheus.Registry

	recorder   *datarecording.Recorder
	outputPath string

	monitor    *monitoring.Monitor
	monitorURL string

	beforeFrame []func(frame handler.FrameData)
}

// ID returns the unique ID of the session.
func (s *Simulation) ID() string {
	return s.id
}

// Engine returns the engine that drives the frames.
func (s *Simulation) Engine() *timing.SerialEngine {
	return s.engine
}

// Handler returns the frame handler.
func (s *Simulation) Handler() *handler.Handler {
	return s.handler
}

// Registry returns the handler's registry.
func (s *Simulation) Registry() *registry.Registry {
	return s.handler.Registry()
}

// Driver returns the frame driver.
func (s *Simulation) Driver() *handler.FrameDriver {
	return s.driver
}

// Metrics returns the Prometheus registry of the session.
func (s *Simulation) Metrics() *prometheus.Registry {
	return s.metrics
}

// Recorder returns the recorder, or nil when recording is off.
func (s *Simulation) Recorder() *datarecording.Recorder {
	return s.recorder
}

// OutputPath returns the recording database, or "" when recording is off.
func (s *Simulation) OutputPath() string {
	return s.outputPath
}

// Monitor returns the monitor, or nil when monitoring is off.
func (s *Simulation) Monitor() *monitoring.Monitor {
	return s.monitor
}

// MonitorURL returns the address of the monitoring server.
func (s *Simulation) MonitorURL() string {
	return s.monitorURL
}

// RegisterModule adds a module to the handler.
func (s *Simulation) RegisterModule(m handler.Module) {
	s.handler.RegisterModule(m)
}

// BeforeFrame adds a callback that runs at the start of every frame,
// before the host is stepped.
func (s *Simulation) BeforeFrame(fn func(frame handler.FrameData)) {
	s.beforeFrame = append(s.beforeFrame, fn)
}

// Run initializes the handler and runs frames until the driver is done.
func (s *Simulation) Run() error {
	if !s.handler.Initialize() {
		return fmt.Errorf("cannot initialize %s", s.handler.Name())
	}

	s.driver.Start()

	if err := s.engine.Run(); err != nil {
		return err
	}

	if failures := s.driver.Failures(); failures > 0 {
		s.logger.Warn("frames failed", "failures", failures, "frames", s.driver.FramesRun())
	}

	return nil
}

// Stop ends the session after the current frame.
func (s *Simulation) Stop() {
	s.driver.Stop()
}

// Terminate shuts the handler down and closes the recorder and the
// monitoring server.
func (s *Simulation) Terminate() error {
	var errs []error

	if !s.handler.Shutdown() {
		errs = append(errs, fmt.Errorf("cannot shut %s down", s.handler.Name()))
	}

	if s.recorder != nil {
		errs = append(errs, s.recorder.Close())
	}

	if s.monitor != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		errs = append(errs, s.monitor.StopServer(ctx))
	}

	return errors.Join(errs...)
}
