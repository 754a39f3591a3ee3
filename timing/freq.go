// Package timing converts between frame rates and simulation time and runs
// a serial event engine that drives frames.
package timing

import "math"

// VTimeInSec is simulation time in seconds.
type VTimeInSec float64

// Freq is a rate in ticks per second.
type Freq float64

// Hz is one tick per second. Frame rates are written as 60 * Hz.
const Hz Freq = 1

// Period returns the time between two ticks. A zero rate panics.
func (f Freq) Period() VTimeInSec {
	if f == 0 {
		panic("timing: zero frequency has no period")
	}

	return VTimeInSec(1 / float64(f))
}

// Cycle returns the nearest tick number at the given time.
func (f Freq) Cycle(t VTimeInSec) uint64 {
	return uint64(math.Round(float64(t) * float64(f)))
}

// ticks returns the time in ticks, rounded to a tenth of a tick so that
// float noise does not move a time across a tick boundary.
func (f Freq) ticks(t VTimeInSec) float64 {
	if math.IsNaN(float64(t)) {
		panic("timing: NaN time")
	}

	return math.Round(float64(t)*float64(f)*10) / 10
}

// ThisTick returns the first tick at or after t.
func (f Freq) ThisTick(t VTimeInSec) VTimeInSec {
	return VTimeInSec(math.Ceil(f.ticks(t)) / float64(f))
}

// NextTick returns the first tick strictly after t.
func (f Freq) NextTick(t VTimeInSec) VTimeInSec {
	return VTimeInSec((math.Floor(f.ticks(t)) + 1) / float64(f))
}

// NCyclesLater returns the tick n periods after t, aligned to a whole
// tick.
func (f Freq) NCyclesLater(n int, t VTimeInSec) VTimeInSec {
	return f.ThisTick(t + VTimeInSec(float64(n)/float64(f)))
}
