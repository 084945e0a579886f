package sim

import (
	"context"
	"errors"
	"time"
)

// Target is what the runner steps: a controller that takes input and ticks.
type Target interface {
	InputSink
	Tick(dt float64)
}

// Runner ticks a target in real time. Each tick first delivers pending
// mailbox input, then advances by the measured wall-clock delta, so motion
// stays frame-rate independent when ticks arrive late.
type Runner struct {
	Target   Target
	Mailbox  *Mailbox
	Interval time.Duration
	// MaxDelta caps a single step after a stall. Zero means four intervals.
	MaxDelta time.Duration

	BeforeTick func(now time.Time)
	AfterTick  func(tick int, dt float64)

	ticks int
}

func (r *Runner) Run(ctx context.Context) error {
	if r.Target == nil {
		return errors.New("runner target is nil")
	}
	if r.Interval <= 0 {
		return errors.New("runner interval must be positive")
	}
	if r.Mailbox == nil {
		r.Mailbox = NewMailbox()
	}

	ticker := time.NewTicker(r.Interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			r.Step(now, r.clampDelta(now.Sub(last)).Seconds())
			last = now
		}
	}
}

// Step runs one tick outside the ticker loop.
func (r *Runner) Step(now time.Time, dt float64) {
	if r.BeforeTick != nil {
		r.BeforeTick(now)
	}
	if r.Mailbox != nil {
		r.Mailbox.Deliver(r.Target)
	}
	r.Target.Tick(dt)
	r.ticks++
	if r.AfterTick != nil {
		r.AfterTick(r.ticks, dt)
	}
}

func (r *Runner) Ticks() int {
	return r.ticks
}

func (r *Runner) clampDelta(d time.Duration) time.Duration {
	limit := r.MaxDelta
	if limit <= 0 {
		limit = 4 * r.Interval
	}
	if d > limit {
		return limit
	}
	if d < 0 {
		return 0
	}
	return d
}
