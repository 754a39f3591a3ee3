package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/pkg/browser"

	"github.com/sarchlab/simsync/handler"
	"github.com/sarchlab/simsync/hooking"
	"github.com/sarchlab/simsync/host"
	"github.com/sarchlab/simsync/host/memhost"
	"github.com/sarchlab/simsync/hostevent"
	"github.com/sarchlab/simsync/registry"
	"github.com/sarchlab/simsync/simulation"
	"github.com/sarchlab/simsync/timing"
	"github.com/sarchlab/simsync/variable"
)

// simTimeBase keeps the scripted simulation time away from zero, which the
// handler treats as "no time seen yet".
const simTimeBase = 100.0

type runOptions struct {
	record      string
	monitorPort int
	openMonitor bool
}

// runner plays a scenario against the in-memory host and writes a
// transcript of what the session saw.
type runner struct {
	sc     *Scenario
	opts   runOptions
	out    io.Writer
	logger *slog.Logger

	host    *memhost.Host
	session *simulation.Simulation
	steps   map[uint64][]FrameAction

	vars   map[string]variable.Scalar
	events map[string]*hostevent.Event
}

func newRunner(sc *Scenario, opts runOptions, out io.Writer, logger *slog.Logger) *runner {
	return &runner{
		sc:     sc,
		opts:   opts,
		out:    out,
		logger: logger,
		host:   memhost.New(logger),
		steps:  sc.stepsByFrame(),
		vars:   make(map[string]variable.Scalar),
		events: make(map[string]*hostevent.Event),
	}
}

func (r *runner) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format+"\n", args...)
}

func (r *runner) run() error {
	r.setUpHost()

	b := simulation.MakeBuilder().
		WithHost(r.host).
		WithLogger(r.logger).
		WithNamedVarPrefix(r.sc.Prefix).
		WithFrameRate(timing.Freq(r.sc.FrameRate) * timing.Hz).
		WithFrames(r.sc.Frames)

	if r.opts.record != "" {
		b = b.WithRecording().WithOutputFileName(r.opts.record)
	}

	if r.opts.monitorPort != 0 {
		b = b.WithMonitoring().WithMonitorPort(r.opts.monitorPort)
	}

	s, err := b.Build(r.sc.Name)
	if err != nil {
		return err
	}

	r.session = s

	s.RegisterModule(r)
	s.BeforeFrame(r.beforeFrame)
	s.Handler().AcceptHook(r)
	s.Registry().AcceptHook(r)

	if s.Monitor() != nil {
		r.trackProgress(s)

		if r.opts.openMonitor {
			if err := browser.OpenURL(s.MonitorURL()); err != nil {
				r.logger.Warn("cannot open browser", "url", s.MonitorURL(), "error", err)
			}
		}
	}

	r.printf("scenario %s: %d frames at %g Hz", r.sc.Name, r.sc.Frames, r.sc.FrameRate)

	runErr := s.Run()
	if runErr == nil {
		r.summarize()
	}

	if err := s.Terminate(); err != nil && runErr == nil {
		return err
	}

	if s.OutputPath() != "" {
		r.logger.Info("session recorded", "path", s.OutputPath(), "session", s.Recorder().SessionID())
	}

	return runErr
}

func (r *runner) setUpHost() {
	for name, value := range r.sc.Host.Named {
		r.host.SetNamed(name, value)
	}

	for _, a := range r.sc.Host.Aircraft {
		r.host.SetAircraft(a.Name, a.Index, a.Value)
	}
}

func (r *runner) trackProgress(s *simulation.Simulation) {
	bar := s.Monitor().CreateProgressBar(r.sc.Name, r.sc.Frames)

	s.Driver().AcceptHook(hooking.NewFuncHook(func(ctx hooking.HookCtx) {
		switch ctx.Pos {
		case handler.HookPosFrameStart:
			bar.IncrementInProgress(1)
		case handler.HookPosFrameEnd:
			bar.MoveInProgressToFinished(1)
		}
	}))
}

// beforeFrame applies the host-side changes of a frame and moves the
// simulation time unless the frame holds it.
func (r *runner) beforeFrame(frame handler.FrameData) {
	r.printf("frame %d t=%.3f", frame.Frame, frame.T)

	hold := false

	for _, step := range r.steps[frame.Frame] {
		hold = hold || step.HoldTime

		for name, value := range step.Named {
			r.host.SetNamed(name, value)
		}

		for _, a := range step.Aircraft {
			r.host.SetAircraft(a.Name, a.Index, a.Value)
		}

		for _, f := range step.Fire {
			r.host.FireEvent(f.Event, f.Data...)
		}

		if step.Pause != nil {
			r.host.FireEvent(handler.PauseSystemEventName, *step.Pause)
		}

		for _, k := range step.Keys {
			r.host.PressKey(host.KeyEventID(k.ID), k.Params...)
		}

		if e := step.Exception; e != nil {
			exc, _ := host.LookupException(e.Name)
			r.host.InjectException(exc, e.SendID, e.Index)
		}
	}

	if !hold {
		r.host.SetSimValue("SIMULATION TIME", simTimeBase+frame.T)
	}
}

func (r *runner) summarize() {
	for _, code := range r.host.CalculatorCodes() {
		r.printf("calculator code: %s", code)
	}

	for _, t := range r.host.Transmissions() {
		r.printf("transmission: %s data=%v", t.Name, t.Data)
	}

	for _, k := range r.host.KeyPresses() {
		r.printf("key sent: %d data=%v", k.ID, k.Params)
	}

	st := r.session.Registry().Stats()
	r.printf("stats: routed=%d dropped=%d exceptions=%d changes=%d flushes=%d",
		st.Routed, st.Dropped, st.Exceptions, st.Changes, st.Flushes)
	r.printf("frames: run=%d ticks=%d failures=%d",
		r.session.Driver().FramesRun(),
		r.session.Handler().TickCounter(),
		r.session.Driver().Failures())
}

// Name names the scenario module.
func (r *runner) Name() string {
	return "Scenario"
}

// Initialize creates the scenario's variables, events and key listeners.
func (r *runner) Initialize() bool {
	reg := r.session.Registry()

	for _, spec := range r.sc.Variables {
		r.vars[spec.Name] = r.makeVar(reg, spec)
	}

	for _, spec := range r.sc.Events {
		name := spec.Name
		e := reg.MakeEvent(name, spec.Mask)
		e.AddCallback(func(n int, d0, d1, d2, d3, d4 uint32) {
			r.printf("  event %s params=%d data=%v", name, n, [5]uint32{d0, d1, d2, d3, d4})
		})
		r.events[name] = e
	}

	for _, id := range r.sc.KeyEvents {
		keyID := id
		reg.AddKeyEventCallback(host.KeyEventID(keyID), func(d0, d1, d2, d3, d4 uint32) {
			r.printf("  key %d data=%v", keyID, [5]uint32{d0, d1, d2, d3, d4})
		})
	}

	return true
}

func (r *runner) makeVar(reg *registry.Registry, spec VarSpec) variable.Scalar {
	unit, _ := spec.unit()
	mode, _ := spec.mode()

	if spec.Kind == "named" {
		return reg.MakeNamedVar(spec.Name, unit, mode, spec.MaxAgeTime, spec.MaxAgeTicks)
	}

	return reg.MakeIndexedVar(spec.Name, spec.Index, spec.Setter, nil,
		unit, mode, spec.MaxAgeTime, spec.MaxAgeTicks)
}

// PreUpdate does nothing.
func (r *runner) PreUpdate(_ handler.FrameData) bool {
	return true
}

// Update applies the local writes and triggers of the frame.
func (r *runner) Update(frame handler.FrameData) bool {
	reg := r.session.Registry()
	result := true

	for _, step := range r.steps[frame.Frame] {
		for _, w := range step.Set {
			v := r.vars[w.Var]
			if !w.Flush {
				v.Set(w.Value)
				continue
			}

			flusher, ok := v.(interface{ SetAndFlush(float64) })
			if !ok {
				result = false
				continue
			}

			flusher.SetAndFlush(w.Value)
		}

		for _, t := range step.Trigger {
			data := [5]uint32{}
			copy(data[:], t.Data)

			if !r.events[t.Event].TriggerEx1(data[0], data[1], data[2], data[3], data[4]) {
				result = false
			}
		}

		for _, k := range step.SendKeys {
			data := [5]uint32{}
			copy(data[:], k.Params)

			if !reg.SendKeyEvent(host.KeyEventID(k.ID), data[0], data[1], data[2], data[3], data[4]) {
				result = false
			}
		}
	}

	return result
}

// PostUpdate does nothing.
func (r *runner) PostUpdate(_ handler.FrameData) bool {
	return true
}

// Shutdown does nothing; the registry releases everything.
func (r *runner) Shutdown() bool {
	return true
}

// Func writes what the registry and the handler report.
func (r *runner) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case registry.HookPosVarChanged:
		r.printf("  changed %s", describe(ctx.Item.(variable.Snapshot)))
	case registry.HookPosVarFlushed:
		r.printf("  flushed %s", describe(ctx.Item.(variable.Snapshot)))
	case registry.HookPosMsgDropped:
		r.printf("  dropped %s", ctx.Item.(host.Message).Kind)
	case registry.HookPosHostException:
		msg := ctx.Item.(host.Message)
		r.printf("  exception %s send=%d index=%d", msg.Exception, msg.SendID, msg.Index)
	case handler.HookPosFrameProcessed:
		h := r.session.Handler()
		r.printf("  tick %d time %.3f", h.TickCounter(), h.TimeStamp())
	case handler.HookPosFrameSkipped:
		r.printf("  skipped: %s", ctx.Detail)
	}
}

func describe(s variable.Snapshot) string {
	switch s.Kind {
	case "named":
		return fmt.Sprintf("%s %s = %g", s.Kind, s.Name, s.Value)
	case "indexed":
		return fmt.Sprintf("%s %s:%d = %g", s.Kind, s.Name, s.Index, s.Value)
	default:
		return fmt.Sprintf("%s %s", s.Kind, s.Name)
	}
}

var _ handler.Module = (*runner)(nil)
