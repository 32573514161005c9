package version

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Clock is the reference "now" that queries without an explicit date resolve against.
//
// Unless pinned via Set, it follows its time source. Callers own their Clock and pass it
// to whatever needs it; there is no package-level instance.
type Clock struct {
	mu     sync.RWMutex
	source clockwork.Clock
	pinned *time.Time
}

// NewClock returns a Clock following the given source. A nil source means the real clock.
func NewClock(source clockwork.Clock) *Clock {
	if source == nil {
		source = clockwork.NewRealClock()
	}
	return &Clock{source: source}
}

// Now returns the pinned time if there is one, otherwise the source's current time
func (c *Clock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.pinned != nil {
		return *c.pinned
	}
	return c.source.Now()
}

// Set pins the Clock to the given time and returns it
func (c *Clock) Set(at time.Time) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pinned = &at
	return at
}

// Reset unpins the Clock so that it follows its source again
func (c *Clock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pinned = nil
}

// Pinned reports whether the Clock is currently pinned
func (c *Clock) Pinned() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pinned != nil
}

// Source returns the wall-clock source the Clock follows when not pinned
func (c *Clock) Source() clockwork.Clock {
	return c.source
}
