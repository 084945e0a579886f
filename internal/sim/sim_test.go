package sim

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Versifine/stride/internal/locomotion"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTarget struct {
	axes  []mgl64.Vec2
	runs  []bool
	ticks []float64
}

func (r *recordingTarget) OnMovementInput(axis mgl64.Vec2) { r.axes = append(r.axes, axis) }
func (r *recordingTarget) OnRunToggle(pressed bool)        { r.runs = append(r.runs, pressed) }
func (r *recordingTarget) Tick(dt float64)                 { r.ticks = append(r.ticks, dt) }

func newTestRig(t *testing.T, mutate func(*locomotion.Settings)) *Rig {
	t.Helper()
	s := locomotion.DefaultSettings()
	if mutate != nil {
		mutate(&s)
	}
	r, err := NewRig(RigOptions{Settings: s})
	require.NoError(t, err)
	return r
}

func TestRigWatchesAnimatorEvents(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	r, err := NewRig(RigOptions{Settings: locomotion.DefaultSettings(), Logger: logger})
	require.NoError(t, err)

	r.Animator.SetAiming(true)
	r.Controller.OnMovementInput(mgl64.Vec2{0, 1})
	r.Controller.Tick(0.1)

	// Aiming and isWalking each flipped once.
	assert.Equal(t, int64(2), r.Transitions())
	out := buf.String()
	assert.Contains(t, out, "Aiming toggled")
	assert.Contains(t, out, "aiming=true")
	assert.Contains(t, out, "name=isWalking")

	r.Controller.Tick(0.1)
	assert.Equal(t, int64(2), r.Transitions())
}

func TestMailboxLastValueWins(t *testing.T) {
	m := NewMailbox()
	target := &recordingTarget{}

	assert.False(t, m.Deliver(target))

	m.PostMovement(mgl64.Vec2{1, 0})
	m.PostMovement(mgl64.Vec2{0, 1})
	m.PostRun(true)
	m.PostRun(false)
	assert.True(t, m.Deliver(target))

	assert.Equal(t, []mgl64.Vec2{{0, 1}}, target.axes)
	assert.Equal(t, []bool{false}, target.runs)

	assert.False(t, m.Deliver(target), "delivered input is consumed")
}

func TestRunnerStepOrdering(t *testing.T) {
	target := &recordingTarget{}
	var order []string
	r := &Runner{
		Target:  target,
		Mailbox: NewMailbox(),
		BeforeTick: func(time.Time) {
			order = append(order, "before")
		},
		AfterTick: func(tick int, dt float64) {
			order = append(order, "after")
			assert.Equal(t, 1, tick)
			assert.Equal(t, 0.02, dt)
		},
	}
	r.Mailbox.PostMovement(mgl64.Vec2{1, 1})

	r.Step(time.Now(), 0.02)

	assert.Equal(t, []string{"before", "after"}, order)
	assert.Equal(t, []mgl64.Vec2{{1, 1}}, target.axes)
	assert.Equal(t, []float64{0.02}, target.ticks)
	assert.Equal(t, 1, r.Ticks())
}

func TestRunnerRunStopsOnCancel(t *testing.T) {
	target := &recordingTarget{}
	ctx, cancel := context.WithCancel(context.Background())
	r := &Runner{
		Target:   target,
		Interval: time.Millisecond,
		AfterTick: func(tick int, dt float64) {
			if tick >= 3 {
				cancel()
			}
		},
	}

	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not stop after cancel")
	}
	assert.GreaterOrEqual(t, len(target.ticks), 3)
	for _, dt := range target.ticks {
		assert.LessOrEqual(t, dt, (4 * time.Millisecond).Seconds())
	}
}

func TestRunnerRejectsBadConfig(t *testing.T) {
	assert.Error(t, (&Runner{Interval: time.Millisecond}).Run(context.Background()))
	assert.Error(t, (&Runner{Target: &recordingTarget{}}).Run(context.Background()))
}

func TestParseScript(t *testing.T) {
	s, err := ParseScript([]byte(`
name: strafe
tick_rate: 50
duration: 1.5
steps:
  - at: 0
    move: [1, 0]
    run: true
  - at: 0.5
    aim: true
    camera_yaw: 90
  - at: 1.0
    move: [0, 0]
    interact: true
`))
	require.NoError(t, err)
	assert.Equal(t, "strafe", s.Name)
	require.Len(t, s.Steps, 3)
	require.NotNil(t, s.Steps[0].Move)
	assert.Equal(t, [2]float64{1, 0}, *s.Steps[0].Move)
	assert.True(t, *s.Steps[0].Run)
	assert.Nil(t, s.Steps[1].Move)
	assert.Equal(t, 90.0, *s.Steps[1].CameraYaw)
	assert.True(t, s.Steps[2].Interact)
}

func TestParseScriptValidation(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"no duration", "steps: []\n"},
		{"negative tick rate", "duration: 1\ntick_rate: -5\n"},
		{"steps out of order", "duration: 2\nsteps:\n  - at: 1\n  - at: 0.5\n"},
		{"nan step time", "duration: 2\nsteps:\n  - at: .nan\n  - at: 0.5\n"},
		{"infinite step time", "duration: 2\nsteps:\n  - at: .inf\n"},
		{"nan duration", "duration: .nan\n"},
		{"infinite duration", "duration: .inf\n"},
		{"infinite tick rate", "duration: 1\ntick_rate: .inf\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScript([]byte(tt.src))
			assert.ErrorIs(t, err, ErrInvalidScript)
		})
	}
}

func TestLoadScriptMissingFile(t *testing.T) {
	_, err := LoadScript(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestReplayWalkStopAndAim(t *testing.T) {
	r := newTestRig(t, func(s *locomotion.Settings) {
		s.Acceleration = 1000
		s.Deceleration = 1000
		s.RotationSpeed = 1000
		s.AimingWalkSpeed = 0.5
	})
	walk := [2]float64{0, 1}
	stop := [2]float64{0, 0}
	aim := true
	yaw := 90.0
	script := &Script{
		TickRate: 10,
		Duration: 3,
		Steps: []Step{
			{At: 0, Move: &walk},
			{At: 1, Move: &stop},
			{At: 2, Aim: &aim, CameraYaw: &yaw, Move: &walk},
		},
	}

	frames, err := Replay(context.Background(), r, script, 60)
	require.NoError(t, err)
	require.Len(t, frames, 30)

	// one second at walk speed 1 along +Z
	f := frames[9]
	assert.InDelta(t, 1.0, f.Time, 1e-9)
	assert.InDelta(t, 1.0, f.Position.Z(), 1e-9)
	assert.True(t, f.Gait.Walking)
	assert.InDelta(t, 0, f.Yaw, 1e-9)

	// stopped
	f = frames[19]
	assert.InDelta(t, 1.0, f.Position.Z(), 1e-9)
	assert.Equal(t, locomotion.PhaseIdle, f.Phase)
	assert.False(t, f.Gait.Walking)

	// aiming with camera turned right: forward input walks +X at aim speed
	f = frames[29]
	assert.True(t, f.Aiming)
	assert.InDelta(t, 0.5, f.Velocity.X(), 1e-9)
	assert.InDelta(t, 0.5, f.Position.X(), 1e-9)
	assert.InDelta(t, 90, f.Yaw, 1e-9)
	for _, fr := range frames {
		assert.Equal(t, 0.0, fr.Velocity.Y())
	}
	assert.InDelta(t, 1, r.Animator.Float(locomotion.ParamAimedWalkForward), 2e-3)
}

func TestReplayInteractionCancelledByMovement(t *testing.T) {
	r := newTestRig(t, nil)
	move := [2]float64{1, 0}
	script := &Script{
		TickRate: 20,
		Duration: 1,
		Steps: []Step{
			{At: 0, Interact: true},
			{At: 0.5, Move: &move},
		},
	}

	frames, err := Replay(context.Background(), r, script, 0)
	require.NoError(t, err)
	require.Len(t, frames, 20)
	assert.True(t, frames[9].Interacting)
	assert.False(t, frames[10].Interacting)
}

func TestReplayFallbackRateAndCancel(t *testing.T) {
	r := newTestRig(t, nil)
	script := &Script{Duration: 1}

	_, err := Replay(context.Background(), r, script, 0)
	assert.ErrorIs(t, err, ErrInvalidScript)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	frames, err := Replay(ctx, r, script, 30)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, frames)
}

func TestReplayFrameTimesAreUniform(t *testing.T) {
	r := newTestRig(t, nil)
	frames, err := Replay(context.Background(), r, &Script{TickRate: 60, Duration: 0.5}, 0)
	require.NoError(t, err)
	require.Len(t, frames, 30)
	for i, f := range frames {
		assert.Equal(t, i+1, f.Tick)
		assert.InDelta(t, float64(i+1)/60, f.Time, 1e-12)
	}
	assert.False(t, math.IsNaN(frames[len(frames)-1].Yaw))
}
