// Package clock provides the logical clock abstraction used for cooldown
// arithmetic. Time is a monotonically increasing tick counter advanced by
// the host environment between operations; it is never sampled mid-way
// through an operation and never rolls back.
package clock

import "sync"

// Clock reports the current logical tick.
type Clock interface {
	Tick() uint64
}

// Manual is a host-driven clock. Tests and embedders advance it
// explicitly; it never moves on its own and never goes backwards.
type Manual struct {
	mu   sync.Mutex
	tick uint64
}

// NewManual creates a manual clock starting at the given tick.
func NewManual(start uint64) *Manual {
	return &Manual{tick: start}
}

// Tick implements Clock.
func (c *Manual) Tick() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tick
}

// Advance moves the clock forward by n ticks and returns the new value.
func (c *Manual) Advance(n uint64) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tick += n
	return c.tick
}

// AdvanceTo moves the clock forward to the given tick. Values at or below
// the current tick leave the clock unchanged; the counter is monotone.
func (c *Manual) AdvanceTo(tick uint64) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if tick > c.tick {
		c.tick = tick
	}
	return c.tick
}
