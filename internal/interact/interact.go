package interact

import (
	"log/slog"
	"sync/atomic"

	"github.com/Versifine/stride/internal/event"
)

// Flag tracks whether the avatar is in the middle of an interaction. Any
// movement input cancels it through the bus.
type Flag struct {
	active atomic.Bool
}

func NewFlag(bus *event.Bus) *Flag {
	f := &Flag{}
	bus.Subscribe(event.EventInteractionCancelled, func(raw any) {
		if f.active.Swap(false) {
			evt, _ := raw.(event.InteractionCancelledEvent)
			slog.Debug("Interaction cancelled", "source", evt.Source)
		}
	})
	return f
}

func (f *Flag) Begin() {
	f.active.Store(true)
}

func (f *Flag) Active() bool {
	return f.active.Load()
}

// Notifier returns a function that publishes the cancel event for source.
func Notifier(bus *event.Bus, source string) func() {
	return func() {
		bus.Publish(event.EventInteractionCancelled, event.InteractionCancelledEvent{Source: source})
	}
}
