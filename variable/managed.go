package variable

import (
	"log/slog"

	"github.com/sarchlab/simsync/notify"
)

// Managed is the part every variable kind shares: a name, the auto
// read/write flags, a staleness policy and change notification.
type Managed struct {
	notify.Notifier
	Policy

	name            string
	logger          *slog.Logger
	autoRead        bool
	autoWrite       bool
	skipChangeCheck bool
}

func newManaged(p Params, kind string) Managed {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return Managed{
		Policy:    NewPolicy(p.MaxAgeTime, p.MaxAgeTicks),
		name:      p.Name,
		logger:    logger.With("kind", kind, "var", p.Name),
		autoRead:  p.Mode.Reads(),
		autoWrite: p.Mode.Writes(),
	}
}

// Name returns the host name of the variable.
func (m *Managed) Name() string {
	return m.name
}

// Logger returns the logger of the variable.
func (m *Managed) Logger() *slog.Logger {
	return m.logger
}

// IsAutoRead tells if the registry refreshes the variable before every
// update.
func (m *Managed) IsAutoRead() bool {
	return m.autoRead
}

// SetAutoRead changes the auto-read flag.
func (m *Managed) SetAutoRead(autoRead bool) {
	m.autoRead = autoRead
}

// IsAutoWrite tells if the registry flushes the variable after every
// update.
func (m *Managed) IsAutoWrite() bool {
	return m.autoWrite
}

// SetAutoWrite changes the auto-write flag.
func (m *Managed) SetAutoWrite(autoWrite bool) {
	m.autoWrite = autoWrite
}

// Mode returns the auto flags as an UpdateMode.
func (m *Managed) Mode() UpdateMode {
	return ModeOf(m.autoRead, m.autoWrite)
}

// SkipChangeCheck tells if every refresh is reported as a change.
func (m *Managed) SkipChangeCheck() bool {
	return m.skipChangeCheck
}

// SetSkipChangeCheck makes every refresh report a change.
func (m *Managed) SetSkipChangeCheck(skip bool) {
	m.skipChangeCheck = skip
}

// RemoveCallback unregisters a callback. A miss is reported to the caller
// and logged as a warning.
func (m *Managed) RemoveCallback(id notify.CallbackID) bool {
	if m.Notifier.RemoveCallback(id) {
		return true
	}

	m.logger.Warn("callback not found", "callback", id)

	return false
}

// Merge upgrades the variable when another caller asks for the same one:
// the auto flags are OR-ed and the smaller max ages win.
func (m *Managed) Merge(mode UpdateMode, maxAgeTime float64, maxAgeTicks uint64) {
	m.autoRead = m.autoRead || mode.Reads()
	m.autoWrite = m.autoWrite || mode.Writes()

	if maxAgeTime < m.maxAgeTime {
		m.maxAgeTime = maxAgeTime
	}

	if maxAgeTicks < m.maxAgeTicks {
		m.maxAgeTicks = maxAgeTicks
	}
}
