package sim

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/Versifine/stride/internal/animator"
	"github.com/Versifine/stride/internal/body"
	"github.com/Versifine/stride/internal/camera"
	"github.com/Versifine/stride/internal/event"
	"github.com/Versifine/stride/internal/interact"
	"github.com/Versifine/stride/internal/locomotion"
	"github.com/go-gl/mathgl/mgl64"
)

// Rig is a locomotion controller wired to the reference collaborators.
type Rig struct {
	Bus         *event.Bus
	Controller  *locomotion.Controller
	Animator    *animator.Animator
	Camera      *camera.Orbit
	Body        *body.Body
	Interaction *interact.Flag

	transitions atomic.Int64
}

type RigOptions struct {
	Settings    locomotion.Settings
	CameraYaw   float64
	CameraPitch float64
	Start       mgl64.Vec3
	Listener    body.PoseListener
	Logger      *slog.Logger
}

func NewRig(opts RigOptions) (*Rig, error) {
	bus := event.NewBus()
	r := &Rig{
		Bus:         bus,
		Animator:    animator.New(bus),
		Camera:      camera.NewOrbit(opts.CameraYaw, opts.CameraPitch),
		Body:        body.New(opts.Start, opts.Listener),
		Interaction: interact.NewFlag(bus),
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ctrl, err := locomotion.New(opts.Settings, locomotion.Deps{
		Mover:      r.Body,
		Camera:     r.Camera,
		Animation:  r.Animator,
		Parameters: r.Animator,
		Cancel:     locomotion.CancelFunc(interact.Notifier(bus, "locomotion")),
		Logger:     logger.With("component", "locomotion"),
	})
	if err != nil {
		return nil, fmt.Errorf("build locomotion controller: %w", err)
	}
	r.Controller = ctrl
	r.watchAnimator(logger.With("component", "animator"))
	return r, nil
}

// watchAnimator logs animator flag changes and counts them for reports.
func (r *Rig) watchAnimator(log *slog.Logger) {
	r.Bus.Subscribe(event.EventAnimatorBool, func(raw any) {
		evt, ok := raw.(event.AnimatorBoolEvent)
		if !ok {
			return
		}
		r.transitions.Add(1)
		log.Debug("Animator flag changed", "name", evt.Name, "value", evt.Value)
	})
	r.Bus.Subscribe(event.EventAimChanged, func(raw any) {
		if evt, ok := raw.(event.AimChangedEvent); ok {
			log.Info("Aiming toggled", "aiming", evt.Aiming)
		}
	})
}

// Transitions is the number of animator flag changes seen so far.
func (r *Rig) Transitions() int64 {
	return r.transitions.Load()
}

// Frame is what the rig looks like after one tick.
type Frame struct {
	Tick          int
	Time          float64
	Position      mgl64.Vec3
	Velocity      mgl64.Vec3
	Yaw           float64
	Phase         locomotion.Phase
	Gait          locomotion.Gait
	Aiming        bool
	AimedMovement mgl64.Vec2
	Interacting   bool
}

func (r *Rig) Frame(tick int, t float64) Frame {
	pose := r.Body.Pose()
	return Frame{
		Tick:          tick,
		Time:          t,
		Position:      pose.Position,
		Velocity:      r.Controller.Velocity(),
		Yaw:           pose.Yaw,
		Phase:         r.Controller.Phase(),
		Gait:          r.Controller.Gait(),
		Aiming:        r.Controller.Aiming(),
		AimedMovement: r.Controller.AimedMovement(),
		Interacting:   r.Interaction.Active(),
	}
}

func (f Frame) LogAttrs() []any {
	return []any{
		"tick", f.Tick,
		"t", f.Time,
		"position", f.Position,
		"velocity", f.Velocity,
		"yaw", f.Yaw,
		"phase", f.Phase.String(),
		"walking", f.Gait.Walking,
		"running", f.Gait.Running,
		"aiming", f.Aiming,
	}
}
