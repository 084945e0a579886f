package animator

import (
	"sort"
	"sync"

	"github.com/Versifine/stride/internal/event"
)

// ParamAiming is the bool the locomotion controller polls for aim mode.
const ParamAiming = "Aiming"

// Animator is a named parameter store standing in for an animation graph.
// Bool changes are published on the bus when one is attached.
type Animator struct {
	mu     sync.RWMutex
	bools  map[string]bool
	floats map[string]float64
	bus    *event.Bus
}

type Snapshot struct {
	Bools  map[string]bool
	Floats map[string]float64
}

func New(bus *event.Bus) *Animator {
	return &Animator{
		bools:  make(map[string]bool),
		floats: make(map[string]float64),
		bus:    bus,
	}
}

func (a *Animator) IsAiming() bool {
	return a.Bool(ParamAiming)
}

func (a *Animator) SetAiming(aiming bool) {
	if a.setBool(ParamAiming, aiming) {
		a.bus.Publish(event.EventAimChanged, event.AimChangedEvent{Aiming: aiming})
	}
}

func (a *Animator) SetBool(name string, value bool) {
	a.setBool(name, value)
}

// setBool stores the value and reports whether it changed.
func (a *Animator) setBool(name string, value bool) bool {
	if a == nil {
		return false
	}
	a.mu.Lock()
	prev, seen := a.bools[name]
	a.bools[name] = value
	a.mu.Unlock()

	changed := !seen || prev != value
	if changed {
		a.bus.Publish(event.EventAnimatorBool, event.AnimatorBoolEvent{Name: name, Value: value})
	}
	return changed
}

func (a *Animator) SetFloat(name string, value float64) {
	if a == nil {
		return
	}
	a.mu.Lock()
	a.floats[name] = value
	a.mu.Unlock()
}

func (a *Animator) Bool(name string) bool {
	if a == nil {
		return false
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.bools[name]
}

func (a *Animator) Float(name string) float64 {
	if a == nil {
		return 0
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.floats[name]
}

func (a *Animator) Snapshot() Snapshot {
	if a == nil {
		return Snapshot{}
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := Snapshot{
		Bools:  make(map[string]bool, len(a.bools)),
		Floats: make(map[string]float64, len(a.floats)),
	}
	for k, v := range a.bools {
		out.Bools[k] = v
	}
	for k, v := range a.floats {
		out.Floats[k] = v
	}
	return out
}

// Names lists every parameter that has been written, sorted.
func (s Snapshot) Names() []string {
	names := make([]string, 0, len(s.Bools)+len(s.Floats))
	for k := range s.Bools {
		names = append(names, k)
	}
	for k := range s.Floats {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
