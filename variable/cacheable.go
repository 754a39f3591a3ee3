package variable

import (
	"fmt"
	"math"

	"github.com/sarchlab/simsync/host"
	"github.com/sarchlab/simsync/logging"
)

// Accessor performs the raw host transfer of a scalar variable kind.
type Accessor interface {
	RawRead() (float64, error)
	RawWrite(value float64) error
}

// writeGuard is implemented by accessors that may be read-only.
type writeGuard interface {
	writable() bool
}

// Cacheable caches one scalar host value. It tracks whether the cache holds
// a value, whether a local write is pending, and whether the last refresh
// changed the value.
type Cacheable struct {
	Managed

	kind        string
	accessor    Accessor
	unit        host.Unit
	value       float64
	cached      bool
	dirty       bool
	epsilon     float64
	dirtyPolicy DirtyPolicy
}

func newCacheable(p Params, kind string, accessor Accessor) *Cacheable {
	epsilon := p.Epsilon
	if epsilon == 0 {
		epsilon = DefaultEpsilon
	}

	return &Cacheable{
		Managed:     newManaged(p, kind),
		kind:        kind,
		accessor:    accessor,
		unit:        p.Unit,
		epsilon:     epsilon,
		dirtyPolicy: p.DirtyPolicy,
	}
}

// Unit returns the unit the value is read and written in.
func (c *Cacheable) Unit() host.Unit {
	return c.unit
}

// Kind names the variable kind.
func (c *Cacheable) Kind() string {
	return c.kind
}

// Epsilon returns the change threshold.
func (c *Cacheable) Epsilon() float64 {
	return c.epsilon
}

// SetEpsilon changes the change threshold. Zero compares exactly.
func (c *Cacheable) SetEpsilon(epsilon float64) {
	c.epsilon = epsilon
}

// DirtyPolicy returns how a refresh treats an unflushed local write.
func (c *Cacheable) DirtyPolicy() DirtyPolicy {
	return c.dirtyPolicy
}

// SetDirtyPolicy changes how a refresh treats an unflushed local write.
func (c *Cacheable) SetDirtyPolicy(p DirtyPolicy) {
	c.dirtyPolicy = p
}

// IsCached tells if a value has ever been cached.
func (c *Cacheable) IsCached() bool {
	return c.cached
}

// IsDirty tells if a local write is waiting to be flushed.
func (c *Cacheable) IsDirty() bool {
	return c.dirty
}

// Writable tells if the variable accepts local writes.
func (c *Cacheable) Writable() bool {
	if g, ok := c.accessor.(writeGuard); ok {
		return g.writable()
	}

	return true
}

func (c *Cacheable) usageError(err error, args ...any) {
	c.logger.Error(fmt.Errorf("%w: %s", err, c.name).Error(), args...)
}

// Get returns the cached value. Without a cached value it logs
// ErrNoCachedValue and returns 0. With a pending local write it logs
// ErrStaleRead as a warning and still returns the value.
func (c *Cacheable) Get() float64 {
	if !c.cached {
		c.usageError(ErrNoCachedValue)
		return 0
	}

	if c.dirty {
		c.logger.Warn(fmt.Errorf("%w: %s", ErrStaleRead, c.name).Error())
	}

	return c.value
}

// GetBool returns Get() != 0.
func (c *Cacheable) GetBool() bool {
	return c.Get() != 0
}

// GetInt64 returns Get() truncated to an integer.
func (c *Cacheable) GetInt64() int64 {
	return int64(c.Get())
}

// RefreshIfDue returns the cached value if it is still fresh, clearing the
// change flag. Otherwise it stamps the policy and reads from the host.
func (c *Cacheable) RefreshIfDue(timeStamp float64, tickCounter uint64) float64 {
	if c.cached && !c.Due(timeStamp, tickCounter) {
		c.SetChanged(false)
		return c.value
	}

	c.Stamp(timeStamp, tickCounter)

	return c.Read()
}

// Read reads from the host regardless of staleness. The policy stamps are
// left untouched.
func (c *Cacheable) Read() float64 {
	if c.dirty {
		c.usageError(ErrDirtyRefresh, "policy", c.dirtyPolicy.String())

		if c.dirtyPolicy == LocalWins {
			c.SetChanged(false)
			return c.value
		}
	}

	fromHost, err := c.accessor.RawRead()
	if err != nil {
		c.logger.Error("host read failed", "error", err)
		c.SetChanged(false)

		return c.value
	}

	changed := c.skipChangeCheck ||
		!c.cached ||
		math.Abs(fromHost-c.value) > c.epsilon

	logging.Trace(c.logger, "read from host",
		"value", fromHost, "changed", changed)

	if changed {
		c.value = fromHost
		c.cached = true
	}

	c.dirty = false
	c.SetChanged(changed)

	return c.value
}

// Set replaces the cached value and marks it dirty. Setting the exact
// cached value is a no-op. Callbacks do not fire on local writes.
func (c *Cacheable) Set(value float64) {
	if !c.Writable() {
		c.usageError(ErrReadOnly)
		return
	}

	if c.cached && c.value == value {
		return
	}

	c.value = value
	c.cached = true
	c.dirty = true
}

// SetBool stores 1 or 0.
func (c *Cacheable) SetBool(b bool) {
	if b {
		c.Set(1)
		return
	}

	c.Set(0)
}

// SetInt64 stores an integer value.
func (c *Cacheable) SetInt64(v int64) {
	c.Set(float64(v))
}

// FlushIfDirty writes a pending local write to the host.
func (c *Cacheable) FlushIfDirty() {
	if c.cached && c.dirty {
		c.Flush()
	}
}

// Flush writes the cached value to the host and clears the dirty flag.
// Without a cached value it logs ErrNoCachedValue and writes nothing.
func (c *Cacheable) Flush() {
	if !c.cached {
		c.usageError(ErrNoCachedValue)
		return
	}

	if !c.Writable() {
		c.usageError(ErrReadOnly)
		return
	}

	c.dirty = false

	if err := c.accessor.RawWrite(c.value); err != nil {
		c.logger.Error("host write failed", "error", err)
		return
	}

	logging.Trace(c.logger, "wrote to host", "value", c.value)
}

// SetAndFlush sets the value and writes it right away, even if it did not
// change.
func (c *Cacheable) SetAndFlush(value float64) {
	c.Set(value)
	c.Flush()
}

// SetAutoWrite changes the auto-write flag. Read-only variables refuse it.
func (c *Cacheable) SetAutoWrite(autoWrite bool) {
	if autoWrite && !c.Writable() {
		c.usageError(ErrReadOnly)
		return
	}

	c.Managed.SetAutoWrite(autoWrite)
}

// Merge upgrades the variable for another caller. Read-only variables never
// gain auto-write.
func (c *Cacheable) Merge(mode UpdateMode, maxAgeTime float64, maxAgeTicks uint64) {
	if mode.Writes() && !c.Writable() {
		c.usageError(ErrReadOnly)
		mode &^= AutoWrite
	}

	c.Managed.Merge(mode, maxAgeTime, maxAgeTicks)
}

// Snapshot describes the variable for monitoring.
func (c *Cacheable) Snapshot() Snapshot {
	return Snapshot{
		Kind:        c.kind,
		Name:        c.name,
		Unit:        c.unit.Name,
		Value:       c.value,
		Cached:      c.cached,
		Dirty:       c.dirty,
		Changed:     c.HasChanged(),
		AutoRead:    c.autoRead,
		AutoWrite:   c.autoWrite,
		TimeStamp:   c.timeStamp,
		TickStamp:   c.tickStamp,
		MaxAgeTime:  c.maxAgeTime,
		MaxAgeTicks: c.maxAgeTicks,
		Callbacks:   c.NumCallbacks(),
	}
}

func (c *Cacheable) String() string {
	return fmt.Sprintf("%s %s[%s] value=%v cached=%t dirty=%t changed=%t",
		c.kind, c.name, c.unit.Name, c.value, c.cached, c.dirty, c.HasChanged())
}
