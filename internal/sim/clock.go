package sim

import (
	"context"
	"fmt"
	"time"
)

// maxCatchUp bounds how many ticks a single Advance may report, so a stalled
// frame loop does not replay seconds of motion at once.
const maxCatchUp = 5

// Clock turns a variable-rate frame loop into fixed-interval ticks.
type Clock struct {
	interval time.Duration
	acc      time.Duration
}

func NewClock(interval time.Duration) *Clock {
	return &Clock{interval: interval}
}

// Advance adds elapsed wall time and returns the number of ticks now due.
func (c *Clock) Advance(elapsed time.Duration) int {
	if c.interval <= 0 {
		return 1
	}
	c.acc += elapsed
	n := int(c.acc / c.interval)
	c.acc -= time.Duration(n) * c.interval
	if n > maxCatchUp {
		n = maxCatchUp
		c.acc = 0
	}
	return n
}

func (c *Clock) Reset() { c.acc = 0 }

// Run drives s at a fixed interval: each tick calls Tick, then Render when a
// redraw is due, handing the frame to draw. It returns nil once the session
// reports Done, or the context error on cancellation.
func Run(ctx context.Context, s *Session, interval time.Duration, draw func(Frame)) error {
	if interval <= 0 {
		return fmt.Errorf("run: %w (got %v)", ErrInterval, interval)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for !s.Done() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		s.Tick()
		if s.RedrawDue() {
			f := s.Render()
			if draw != nil {
				draw(f)
			}
		}
	}
	return nil
}
