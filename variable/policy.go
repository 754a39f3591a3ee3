package variable

// IsDue reports whether a value stamped with the given thresholds must be
// refreshed at (timeStamp, tickCounter). Both the time and the tick must
// have moved past their thresholds, so a zero max age still refreshes at
// most once per tick.
func IsDue(
	timeStamp float64,
	tickCounter uint64,
	nextUpdateTime float64,
	nextUpdateTick uint64,
) bool {
	return nextUpdateTime < timeStamp && nextUpdateTick < tickCounter
}

// Policy keeps the staleness thresholds of a value.
type Policy struct {
	maxAgeTime  float64
	maxAgeTicks uint64

	timeStamp      float64
	tickStamp      uint64
	nextUpdateTime float64
	nextUpdateTick uint64
}

// NewPolicy creates a policy with the given max ages.
func NewPolicy(maxAgeTime float64, maxAgeTicks uint64) Policy {
	return Policy{maxAgeTime: maxAgeTime, maxAgeTicks: maxAgeTicks}
}

// Due applies IsDue to the current thresholds.
func (p *Policy) Due(timeStamp float64, tickCounter uint64) bool {
	return IsDue(timeStamp, tickCounter, p.nextUpdateTime, p.nextUpdateTick)
}

// Stamp records a refresh. The next thresholds are the current stamps plus
// the max ages.
func (p *Policy) Stamp(timeStamp float64, tickCounter uint64) {
	p.timeStamp = timeStamp
	p.tickStamp = tickCounter
	p.nextUpdateTime = timeStamp + p.maxAgeTime
	p.nextUpdateTick = tickCounter + p.maxAgeTicks
}

// TimeStamp returns the time of the last refresh.
func (p *Policy) TimeStamp() float64 {
	return p.timeStamp
}

// TickStamp returns the tick of the last refresh.
func (p *Policy) TickStamp() uint64 {
	return p.tickStamp
}

// NextUpdateTime returns the time threshold.
func (p *Policy) NextUpdateTime() float64 {
	return p.nextUpdateTime
}

// NextUpdateTick returns the tick threshold.
func (p *Policy) NextUpdateTick() uint64 {
	return p.nextUpdateTick
}

// MaxAgeTime returns the max age in seconds.
func (p *Policy) MaxAgeTime() float64 {
	return p.maxAgeTime
}

// SetMaxAgeTime changes the max age in seconds. It takes effect at the next
// stamp.
func (p *Policy) SetMaxAgeTime(maxAgeTime float64) {
	p.maxAgeTime = maxAgeTime
}

// MaxAgeTicks returns the max age in ticks.
func (p *Policy) MaxAgeTicks() uint64 {
	return p.maxAgeTicks
}

// SetMaxAgeTicks changes the max age in ticks. It takes effect at the next
// stamp.
func (p *Policy) SetMaxAgeTicks(maxAgeTicks uint64) {
	p.maxAgeTicks = maxAgeTicks
}
