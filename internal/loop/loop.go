// Package loop runs the simulation: per-frame update, spawning, collision
// resolution, scoring and frame pacing.
package loop

import (
	"context"
	"fmt"
	"time"

	"github.com/tomz197/asteroidfield/internal/draw"
	"github.com/tomz197/asteroidfield/internal/input"
)

// Clock paces the loop and reports the real time elapsed since the previous tick.
type Clock interface {
	Tick() time.Duration
}

// SleepClock sleeps out the remainder of each frame.
type SleepClock struct {
	frame time.Duration
	last  time.Time
	now   func() time.Time
	sleep func(time.Duration)
}

// NewSleepClock creates a clock targeting one tick per frame. Timing starts
// at the first Tick, which reports a single frame.
func NewSleepClock(frame time.Duration) *SleepClock {
	return &SleepClock{
		frame: frame,
		now:   time.Now,
		sleep: time.Sleep,
	}
}

// Tick blocks until at least one frame has passed since the previous tick and
// returns the measured elapsed time.
func (c *SleepClock) Tick() time.Duration {
	now := c.now()
	if c.last.IsZero() {
		c.last = now
		return c.frame
	}
	if elapsed := now.Sub(c.last); elapsed < c.frame {
		c.sleep(c.frame - elapsed)
		now = c.now()
	}
	dt := now.Sub(c.last)
	c.last = now
	return dt
}

// Run drives game with the standard Input → Update → Draw cycle until it ends
// or ctx is done. On cancellation it returns the result so far and ctx.Err().
func Run(ctx context.Context, game *Game, src input.Source, r draw.Renderer, clk Clock) (Result, error) {
	for {
		select {
		case <-ctx.Done():
			return game.Result(), ctx.Err()
		default:
		}

		dt := clk.Tick()

		// ===== INPUT + UPDATE PHASE =====
		phase := game.Step(dt, src.Poll())
		if phase == PhaseQuit {
			return game.Result(), nil
		}

		// ===== DRAW PHASE =====
		if err := game.Draw(r); err != nil {
			return game.Result(), fmt.Errorf("draw frame: %w", err)
		}

		if phase != PhaseRunning {
			return game.Result(), nil
		}
	}
}
