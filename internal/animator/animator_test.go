package animator

import (
	"testing"

	"github.com/Versifine/stride/internal/event"
	"github.com/Versifine/stride/internal/locomotion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ locomotion.AnimationState         = (*Animator)(nil)
	_ locomotion.AnimationParameterSink = (*Animator)(nil)
)

func TestAnimatorAimingFlag(t *testing.T) {
	a := New(nil)
	assert.False(t, a.IsAiming())

	a.SetAiming(true)
	assert.True(t, a.IsAiming())
	assert.True(t, a.Bool(ParamAiming))
}

func TestAnimatorPublishesBoolChangesOnly(t *testing.T) {
	bus := event.NewBus()
	var got []event.AnimatorBoolEvent
	bus.Subscribe(event.EventAnimatorBool, func(raw any) {
		got = append(got, raw.(event.AnimatorBoolEvent))
	})
	a := New(bus)

	a.SetBool(locomotion.ParamIsWalking, true)
	a.SetBool(locomotion.ParamIsWalking, true)
	a.SetBool(locomotion.ParamIsWalking, false)

	require.Len(t, got, 2)
	assert.Equal(t, event.AnimatorBoolEvent{Name: locomotion.ParamIsWalking, Value: true}, got[0])
	assert.Equal(t, event.AnimatorBoolEvent{Name: locomotion.ParamIsWalking, Value: false}, got[1])
}

func TestAnimatorAimEvent(t *testing.T) {
	bus := event.NewBus()
	var aims []bool
	bus.Subscribe(event.EventAimChanged, func(raw any) {
		aims = append(aims, raw.(event.AimChangedEvent).Aiming)
	})
	a := New(bus)

	a.SetAiming(true)
	a.SetAiming(true)
	a.SetAiming(false)

	assert.Equal(t, []bool{true, false}, aims)
}

func TestAnimatorSnapshotIsCopy(t *testing.T) {
	a := New(nil)
	a.SetFloat(locomotion.ParamAimedWalkForward, 0.25)
	a.SetBool(locomotion.ParamIsRunning, true)

	snap := a.Snapshot()
	snap.Floats[locomotion.ParamAimedWalkForward] = 9

	assert.Equal(t, 0.25, a.Float(locomotion.ParamAimedWalkForward))
	assert.Equal(t, []string{locomotion.ParamAimedWalkForward, locomotion.ParamIsRunning}, snap.Names())
}

func TestAnimatorNilSafe(t *testing.T) {
	var a *Animator
	assert.NotPanics(t, func() {
		a.SetBool("x", true)
		a.SetFloat("y", 1)
		_ = a.IsAiming()
		_ = a.Snapshot()
	})
}
