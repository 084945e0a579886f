package locomotion

// Gait is the pair of animation flags derived from input.
type Gait struct {
	Walking bool
	Running bool
}

// nextGait derives the flags for this tick from the previous ones. Walking
// follows the pressed state. Outside aim mode running needs a run request
// while already walking and drops when the request ends or walking stops.
// The running rule reads walking as it was before this tick. While aiming,
// running is left as it was.
func nextGait(prev Gait, pressed, runRequested, aiming bool) Gait {
	next := prev
	if pressed != prev.Walking {
		next.Walking = pressed
	}
	if aiming {
		return next
	}

	switch {
	case runRequested && !prev.Running && prev.Walking:
		next.Running = true
	case (!runRequested && prev.Running) || !prev.Walking:
		next.Running = false
	}
	return next
}

// Phase describes what the velocity blend did on the last tick.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAccelerating
	PhaseDecelerating
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAccelerating:
		return "accelerating"
	case PhaseDecelerating:
		return "decelerating"
	default:
		return "unknown"
	}
}
