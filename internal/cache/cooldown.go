package cache

import "time"

// Cooldown remembers the last trigger time per name and suppresses repeats
// inside a fixed window. Not safe for concurrent use.
type Cooldown struct {
	window time.Duration
	last   map[string]time.Time
}

// NewCooldown creates a cooldown map with the given window.
func NewCooldown(window time.Duration) *Cooldown {
	return &Cooldown{window: window, last: make(map[string]time.Time)}
}

// Allow records a trigger for name at now and reports true, unless the
// previous trigger is less than the window ago.
func (c *Cooldown) Allow(name string, now time.Time) bool {
	if prev, ok := c.last[name]; ok && now.Sub(prev) < c.window {
		return false
	}
	c.last[name] = now
	return true
}

// Evict drops entries whose window has elapsed.
func (c *Cooldown) Evict(now time.Time) {
	for name, ts := range c.last {
		if now.Sub(ts) >= c.window {
			delete(c.last, name)
		}
	}
}

// Len returns the number of names still cooling down.
func (c *Cooldown) Len() int {
	return len(c.last)
}

// Reset forgets every name.
func (c *Cooldown) Reset() {
	c.last = make(map[string]time.Time)
}
