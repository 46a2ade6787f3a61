package tetris

import "time"

// Clock converts fixed-length frames into the two fall cadences.
// Each cadence has its own accumulator, mirroring two independent timers;
// the session ignores whichever one does not match its soft drop state.
type Clock struct {
	normal time.Duration
	fast   time.Duration
}

// Advance adds one frame of elapsed time and delivers due ticks to s.
// Returns how many ticks the session applied.
func (c *Clock) Advance(s *Session, frame time.Duration) int {
	applied := 0

	c.normal += frame
	for interval := s.FallInterval(); c.normal >= interval; interval = s.FallInterval() {
		c.normal -= interval
		if s.Tick(false) {
			applied++
		}
	}

	c.fast += frame
	for interval := s.FastInterval(); c.fast >= interval; {
		c.fast -= interval
		if s.Tick(true) {
			applied++
		}
	}
	return applied
}

// Reset zeroes both accumulators.
func (c *Clock) Reset() {
	c.normal = 0
	c.fast = 0
}
