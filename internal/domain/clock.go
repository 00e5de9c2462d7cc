package domain

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// JST is the fixed zone all report timestamps are normalized to. A fixed
// offset avoids a tzdata dependency; Japan has no DST.
var JST = time.FixedZone("JST", 9*60*60)

// clock is a package-level time source so tests can freeze time via SetClock.
// Production code uses the real clock; tests inject a fake for deterministic output.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Now returns the current time in JST. Dated upstream URLs and the aggregate
// generation timestamp both derive from this single source.
func Now() time.Time {
	return clock.Now().In(JST)
}
