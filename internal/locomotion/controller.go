package locomotion

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/Versifine/stride/internal/physics"
	"github.com/go-gl/mathgl/mgl64"
)

// Deps wires a controller to the systems around it. Mover, Camera and
// Animation are required; the rest fall back to no-ops.
type Deps struct {
	Mover      BodyMover
	Camera     CameraBasis
	Animation  AnimationState
	Parameters AnimationParameterSink
	Cancel     InteractionCancelNotifier
	Logger     *slog.Logger
}

// MotionVectors are the per-tick movement targets. Raw vectors are in input
// space, world vectors are camera relative and horizontal.
type MotionVectors struct {
	WalkRaw   mgl64.Vec3
	RunRaw    mgl64.Vec3
	WalkWorld mgl64.Vec3
	RunWorld  mgl64.Vec3
}

type inputState struct {
	axis         mgl64.Vec2
	pressed      bool
	runRequested bool
}

// Controller turns movement input into smoothed horizontal velocity, body
// rotation and animation parameters, one Tick per frame.
//
// A Controller is not safe for concurrent use. Input callbacks and Tick must
// run on the same goroutine; see sim.Mailbox for hosts that receive input
// elsewhere.
type Controller struct {
	settings Settings

	mover    BodyMover
	orienter Orienter
	camera   CameraBasis
	basis    BasisReader
	anim     AnimationState
	params   AnimationParameterSink
	cancel   InteractionCancelNotifier
	log      *slog.Logger

	input     inputState
	aimTarget mgl64.Vec2
	aiming    bool
	motion    MotionVectors

	velocity      mgl64.Vec3
	rotation      mgl64.Quat
	aimedMovement mgl64.Vec2
	gait          Gait
	phase         Phase
}

func New(settings Settings, deps Deps) (*Controller, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if deps.Mover == nil {
		return nil, fmt.Errorf("%w: body mover", ErrMissingCollaborator)
	}
	if deps.Camera == nil {
		return nil, fmt.Errorf("%w: camera basis", ErrMissingCollaborator)
	}
	if deps.Animation == nil {
		return nil, fmt.Errorf("%w: animation state", ErrMissingCollaborator)
	}

	c := &Controller{
		settings: settings,
		mover:    deps.Mover,
		camera:   deps.Camera,
		anim:     deps.Animation,
		params:   deps.Parameters,
		cancel:   deps.Cancel,
		log:      deps.Logger,
		rotation: mgl64.QuatIdent(),
	}
	if c.params == nil {
		c.params = discardParams{}
	}
	if c.cancel == nil {
		c.cancel = CancelFunc(nil)
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	if b, ok := deps.Camera.(BasisReader); ok {
		c.basis = b
	}
	if o, ok := deps.Mover.(Orienter); ok {
		c.orienter = o
	}
	if r, ok := deps.Mover.(interface{ Rotation() mgl64.Quat }); ok {
		c.rotation = r.Rotation()
	}
	return c, nil
}

// OnMovementInput records a new raw input axis. The axis is not clamped.
func (c *Controller) OnMovementInput(axis mgl64.Vec2) {
	c.cancel.Cancel()

	c.input.axis = axis
	c.input.pressed = axis.X() != 0 || axis.Y() != 0
	c.aimTarget = axis
	c.recomputeRaw()
}

// OnRunToggle sets the run request from the current button level.
func (c *Controller) OnRunToggle(pressed bool) {
	c.input.runRequested = pressed
}

func (c *Controller) SetRunRequested(requested bool) {
	c.OnRunToggle(requested)
}

func (c *Controller) recomputeRaw() {
	axis := c.input.axis
	walk, run := c.settings.WalkSpeed, c.settings.RunSpeed
	if c.aiming {
		walk, run = c.settings.AimingWalkSpeed, c.settings.AimingWalkSpeed
	}
	c.motion.WalkRaw = mgl64.Vec3{axis.X() * walk, 0, axis.Y() * walk}
	c.motion.RunRaw = mgl64.Vec3{axis.X() * run, 0, axis.Y() * run}
}

// Tick advances the controller by dt seconds. Negative or NaN deltas are
// treated as zero. A tick always asks the mover to move, even by zero.
func (c *Controller) Tick(dt float64) {
	if math.IsNaN(dt) || dt < 0 {
		dt = 0
	}

	aiming := c.anim.IsAiming()
	if aiming != c.aiming {
		c.aiming = aiming
		c.recomputeRaw()
		c.log.Debug("Aim mode changed", "aiming", aiming)
	}

	forward, right := c.cameraBasis()
	c.motion.WalkWorld = physics.ProjectOnBasis(c.motion.WalkRaw, forward, right)
	c.motion.RunWorld = physics.ProjectOnBasis(c.motion.RunRaw, forward, right)

	c.blendVelocity(dt)
	c.mover.Move(c.velocity.Mul(dt))

	c.updateRotation(forward, dt)
	if aiming {
		c.updateAimBlend(dt)
	}
	c.updateGait()
}

func (c *Controller) cameraBasis() (forward, right mgl64.Vec3) {
	if c.basis != nil {
		return c.basis.Basis()
	}
	return c.camera.Forward(), c.camera.Right()
}

func (c *Controller) blendVelocity(dt float64) {
	target := c.motion.WalkWorld
	if c.input.runRequested {
		target = c.motion.RunWorld
	}

	targetLen, currentLen := target.Len(), c.velocity.Len()
	rate := c.settings.Deceleration
	switch {
	case physics.NearlyZero(targetLen) && physics.NearlyZero(currentLen):
		c.phase = PhaseIdle
	case targetLen > currentLen:
		rate = c.settings.Acceleration
		c.phase = PhaseAccelerating
	default:
		c.phase = PhaseDecelerating
	}

	c.velocity = physics.LerpVec3(c.velocity, target, rate*dt)
	c.velocity[1] = 0
}

func (c *Controller) updateRotation(cameraForward mgl64.Vec3, dt float64) {
	var dir mgl64.Vec3
	if c.aiming {
		dir = cameraForward
	} else {
		if !c.input.pressed {
			return
		}
		dir = c.motion.WalkWorld
	}

	target, ok := physics.LookRotation(dir)
	if !ok {
		c.log.Debug("Skipping rotation update, look direction is degenerate", "aiming", c.aiming, "direction", dir)
		return
	}
	c.rotation = physics.SlerpClamped(c.rotation, target, c.settings.RotationSpeed*dt)
	if c.orienter != nil {
		c.orienter.SetRotation(c.rotation)
	}
}

func (c *Controller) updateAimBlend(dt float64) {
	factor := c.settings.AimBlendRate * dt
	if c.settings.AimBlendPerFrame {
		factor = c.settings.AimBlendRate
	}
	c.aimedMovement = physics.LerpVec2(c.aimedMovement, c.aimTarget, factor)
	c.params.SetFloat(ParamAimedWalkForward, c.aimedMovement.Y())
	c.params.SetFloat(ParamAimedWalkLeft, c.aimedMovement.X())
}

func (c *Controller) updateGait() {
	next := nextGait(c.gait, c.input.pressed, c.input.runRequested, c.aiming)
	if next.Walking != c.gait.Walking {
		c.params.SetBool(ParamIsWalking, next.Walking)
	}
	if next.Running != c.gait.Running {
		c.params.SetBool(ParamIsRunning, next.Running)
	}
	c.gait = next
}

// SetRotation overrides the current body rotation, e.g. after a teleport.
func (c *Controller) SetRotation(q mgl64.Quat) {
	c.rotation = q.Normalize()
	if c.orienter != nil {
		c.orienter.SetRotation(c.rotation)
	}
}

func (c *Controller) Settings() Settings        { return c.settings }
func (c *Controller) Velocity() mgl64.Vec3      { return c.velocity }
func (c *Controller) Rotation() mgl64.Quat      { return c.rotation }
func (c *Controller) AimedMovement() mgl64.Vec2 { return c.aimedMovement }
func (c *Controller) Motion() MotionVectors     { return c.motion }
func (c *Controller) Gait() Gait                { return c.gait }
func (c *Controller) Phase() Phase              { return c.phase }
func (c *Controller) Aiming() bool              { return c.aiming }
func (c *Controller) Pressed() bool             { return c.input.pressed }
func (c *Controller) RunRequested() bool        { return c.input.runRequested }
func (c *Controller) Axis() mgl64.Vec2          { return c.input.axis }
func (c *Controller) YawDegrees() float64       { return physics.YawDegrees(c.rotation) }
