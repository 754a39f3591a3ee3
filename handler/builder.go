package handler

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sarchlab/simsync/hooking"
	"github.com/sarchlab/simsync/host"
	"github.com/sarchlab/simsync/registry"
	"github.com/sarchlab/simsync/variable"
)

// Builder can build handlers.
type Builder struct {
	host        host.Host
	logger      *slog.Logger
	registerer  prometheus.Registerer
	namePrefix  string
	dirtyPolicy variable.DirtyPolicy
	epsilon     float64
}

// MakeBuilder creates a builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		dirtyPolicy: variable.HostWins,
	}
}

// WithHost sets the host. It is required.
func (b Builder) WithHost(h host.Host) Builder {
	b.host = h
	return b
}

// WithLogger sets the logger.
func (b Builder) WithLogger(logger *slog.Logger) Builder {
	b.logger = logger
	return b
}

// WithMetricsRegisterer registers the registry metrics with reg.
func (b Builder) WithMetricsRegisterer(reg prometheus.Registerer) Builder {
	b.registerer = reg
	return b
}

// WithNamedVarPrefix sets the prefix of named variables, such as "A32NX_".
func (b Builder) WithNamedVarPrefix(prefix string) Builder {
	b.namePrefix = prefix
	return b
}

// WithDirtyPolicy sets how refreshes treat unflushed local writes.
func (b Builder) WithDirtyPolicy(p variable.DirtyPolicy) Builder {
	b.dirtyPolicy = p
	return b
}

// WithEpsilon sets the change threshold of new scalar variables.
func (b Builder) WithEpsilon(epsilon float64) Builder {
	b.epsilon = epsilon
	return b
}

// Build creates a handler and its registry.
func (b Builder) Build(name string) *Handler {
	if b.host == nil {
		panic("handler needs a host")
	}

	logger := b.logger
	if logger == nil {
		logger = slog.Default()
	}

	h := &Handler{
		HookableBase: hooking.NewHookableBase(),
		name:         name,
		logger:       logger.With("handler", name),
	}

	h.registry = registry.MakeBuilder().
		WithHost(b.host).
		WithClock(h).
		WithLogger(logger).
		WithMetricsRegisterer(b.registerer).
		WithNamedVarPrefix(b.namePrefix).
		WithDirtyPolicy(b.dirtyPolicy).
		WithEpsilon(b.epsilon).
		Build(name + ".Registry")

	return h
}
