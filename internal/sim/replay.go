package sim

import (
	"context"
	"math"
)

// stepEpsilon absorbs float drift when comparing step times to tick times.
const stepEpsilon = 1e-9

// Replay steps the rig through the script at a fixed delta and returns one
// frame per tick. fallbackRate is used when the script has no tick_rate.
// Replay stops early if ctx is cancelled.
func Replay(ctx context.Context, r *Rig, s *Script, fallbackRate float64) ([]Frame, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	rate := s.TickRate
	if rate == 0 {
		rate = fallbackRate
	}
	if rate <= 0 {
		return nil, ErrInvalidScript
	}

	dt := 1 / rate
	ticks := int(math.Ceil(s.Duration*rate - stepEpsilon))
	frames := make([]Frame, 0, ticks)
	next := 0

	for i := 0; i < ticks; i++ {
		if err := ctx.Err(); err != nil {
			return frames, err
		}
		now := float64(i) * dt
		for next < len(s.Steps) && s.Steps[next].At <= now+stepEpsilon {
			s.Steps[next].apply(r)
			next++
		}
		r.Controller.Tick(dt)
		frames = append(frames, r.Frame(i+1, float64(i+1)*dt))
	}
	return frames, nil
}
