package registry

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sarchlab/simsync/hooking"
	"github.com/sarchlab/simsync/host"
	"github.com/sarchlab/simsync/hostevent"
	"github.com/sarchlab/simsync/idgen"
	"github.com/sarchlab/simsync/notify"
	"github.com/sarchlab/simsync/variable"
)

// Builder can build registries.
type Builder struct {
	host        host.Host
	clock       Clock
	logger      *slog.Logger
	idFloor     idgen.ID
	codec       variable.Codec
	epsilon     float64
	dirtyPolicy variable.DirtyPolicy
	namePrefix  string
	registerer  prometheus.Registerer
}

// MakeBuilder creates a builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		codec:       variable.CBOR,
		dirtyPolicy: variable.HostWins,
	}
}

// WithHost sets the host. It is required.
func (b Builder) WithHost(h host.Host) Builder {
	b.host = h
	return b
}

// WithClock sets the clock. It is required.
func (b Builder) WithClock(c Clock) Builder {
	b.clock = c
	return b
}

// WithLogger sets the logger of the registry and of every variable and
// event it creates.
func (b Builder) WithLogger(logger *slog.Logger) Builder {
	b.logger = logger
	return b
}

// WithIDFloor reserves the IDs up to floor in every namespace for the host.
func (b Builder) WithIDFloor(floor idgen.ID) Builder {
	b.idFloor = floor
	return b
}

// WithCodec sets the codec of structured and client data variables.
func (b Builder) WithCodec(c variable.Codec) Builder {
	b.codec = c
	return b
}

// WithEpsilon sets the change threshold of new scalar variables.
func (b Builder) WithEpsilon(epsilon float64) Builder {
	b.epsilon = epsilon
	return b
}

// WithDirtyPolicy sets how refreshes treat unflushed local writes.
func (b Builder) WithDirtyPolicy(p variable.DirtyPolicy) Builder {
	b.dirtyPolicy = p
	return b
}

// WithNamedVarPrefix prepends prefix to every named variable name.
func (b Builder) WithNamedVarPrefix(prefix string) Builder {
	b.namePrefix = prefix
	return b
}

// WithMetricsRegisterer registers the registry metrics with reg.
func (b Builder) WithMetricsRegisterer(reg prometheus.Registerer) Builder {
	b.registerer = reg
	return b
}

// Build creates a registry.
func (b Builder) Build(name string) *Registry {
	if b.host == nil {
		panic("registry needs a host")
	}

	if b.clock == nil {
		panic("registry needs a clock")
	}

	logger := b.logger
	if logger == nil {
		logger = slog.Default()
	}

	codec := b.codec
	if codec == nil {
		codec = variable.CBOR
	}

	m := newMetrics(b.registerer, name)

	return &Registry{
		HookableBase: hooking.NewHookableBase(),
		name:         name,
		host:         &instrumentedHost{Host: b.host, metrics: m},
		clock:        b.clock,
		logger:       logger.With("registry", name),
		ids:          idgen.NewNamespaces(b.idFloor),
		codec:        codec,
		epsilon:      b.epsilon,
		dirtyPolicy:  b.dirtyPolicy,
		namePrefix:   b.namePrefix,
		metrics:      m,
		scalars:      make(map[string]variable.Scalar),
		simObjects:   make(map[string]variable.SimObject),
		byRequest:    make(map[idgen.ID]variable.SimObject),
		events:       make(map[idgen.ID]*hostevent.Event),
		keyEvents:    make(map[host.KeyEventID]*notify.List[KeyEventFunc]),
		keyEventIDs:  idgen.New(),
	}
}

// ManualClock is a Clock that only moves when told to.
type ManualClock struct {
	Time float64
	Tick uint64
}

// TimeStamp returns Time.
func (c *ManualClock) TimeStamp() float64 {
	return c.Time
}

// TickCounter returns Tick.
func (c *ManualClock) TickCounter() uint64 {
	return c.Tick
}

// Advance moves the clock by one tick of dt seconds.
func (c *ManualClock) Advance(dt float64) {
	c.Time += dt
	c.Tick++
}
