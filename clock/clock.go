// Package clock abstracts "now" so time-dependent computations are
// deterministic and testable. Engine code captures the clock reading once
// per computation; it never consults the ambient global clock.
package clock

import "time"

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// System is the production clock backed by wall-clock time.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed is a clock pinned to a single instant, for tests.
type Fixed struct {
	t time.Time
}

// NewFixed returns a clock that always reports t.
func NewFixed(t time.Time) Fixed { return Fixed{t: t} }

func (f Fixed) Now() time.Time { return f.t }

const day = 24 * time.Hour

// DaysUntil returns the number of whole calendar days from now until target,
// rounded up. A target six hours ahead counts as 1 day left, not 0; a target
// one hour ago counts as 0; a target 25 hours ago counts as -1.
func DaysUntil(now, target time.Time) int {
	diff := target.Sub(now)
	d := diff / day
	if diff%day > 0 {
		d++
	}
	return int(d)
}
