package variable

import (
	"log/slog"
	"strings"

	"github.com/sarchlab/simsync/host"
)

// UpdateMode tells the registry which per-tick phases handle a variable.
type UpdateMode uint8

// Update modes. They combine as bit flags.
const (
	NoAutoUpdate  UpdateMode = 0
	AutoRead      UpdateMode = 1 << 0
	AutoWrite     UpdateMode = 1 << 1
	AutoReadWrite            = AutoRead | AutoWrite
)

// ModeOf builds a mode from two flags.
func ModeOf(autoRead, autoWrite bool) UpdateMode {
	m := NoAutoUpdate
	if autoRead {
		m |= AutoRead
	}

	if autoWrite {
		m |= AutoWrite
	}

	return m
}

// Reads tells if the mode includes AutoRead.
func (m UpdateMode) Reads() bool {
	return m&AutoRead != 0
}

// Writes tells if the mode includes AutoWrite.
func (m UpdateMode) Writes() bool {
	return m&AutoWrite != 0
}

func (m UpdateMode) String() string {
	parts := []string{}
	if m.Reads() {
		parts = append(parts, "read")
	}

	if m.Writes() {
		parts = append(parts, "write")
	}

	if len(parts) == 0 {
		return "none"
	}

	return strings.Join(parts, "|")
}

// DirtyPolicy decides what a refresh does to an unflushed local write.
type DirtyPolicy uint8

const (
	// HostWins reads from the host and overwrites the local write.
	HostWins DirtyPolicy = iota

	// LocalWins skips the host read and keeps the local write pending.
	LocalWins
)

func (p DirtyPolicy) String() string {
	if p == LocalWins {
		return "local-wins"
	}

	return "host-wins"
}

// DefaultEpsilon is the smallest relative step of a float64.
const DefaultEpsilon = 2.220446049250313e-16

// Params carries the settings shared by every variable kind.
type Params struct {
	Name        string
	Unit        host.Unit
	Mode        UpdateMode
	MaxAgeTime  float64
	MaxAgeTicks uint64

	// Epsilon is the change threshold of scalar kinds. Zero means
	// DefaultEpsilon.
	Epsilon float64

	DirtyPolicy DirtyPolicy
	Logger      *slog.Logger
}
