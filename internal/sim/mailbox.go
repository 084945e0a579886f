package sim

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// InputSink receives input events on the tick goroutine.
type InputSink interface {
	OnMovementInput(axis mgl64.Vec2)
	OnRunToggle(pressed bool)
}

// Mailbox carries input from device goroutines to the tick goroutine. Only
// the latest value of each input survives until the next Deliver.
type Mailbox struct {
	mu      sync.Mutex
	axis    mgl64.Vec2
	hasAxis bool
	run     bool
	hasRun  bool
}

func NewMailbox() *Mailbox {
	return &Mailbox{}
}

func (m *Mailbox) PostMovement(axis mgl64.Vec2) {
	m.mu.Lock()
	m.axis = axis
	m.hasAxis = true
	m.mu.Unlock()
}

func (m *Mailbox) PostRun(pressed bool) {
	m.mu.Lock()
	m.run = pressed
	m.hasRun = true
	m.mu.Unlock()
}

// Deliver hands pending input to sink and reports whether anything was sent.
func (m *Mailbox) Deliver(sink InputSink) bool {
	m.mu.Lock()
	axis, hasAxis := m.axis, m.hasAxis
	run, hasRun := m.run, m.hasRun
	m.hasAxis, m.hasRun = false, false
	m.mu.Unlock()

	if hasAxis {
		sink.OnMovementInput(axis)
	}
	if hasRun {
		sink.OnRunToggle(run)
	}
	return hasAxis || hasRun
}
