package locomotion

import "github.com/go-gl/mathgl/mgl64"

// BodyMover applies a frame displacement to the avatar. Collision and
// constraint handling belong to the mover.
type BodyMover interface {
	Move(displacement mgl64.Vec3)
}

// Orienter is implemented by movers that also carry the avatar rotation.
type Orienter interface {
	SetRotation(q mgl64.Quat)
}

// CameraBasis supplies the camera axes used for camera-relative input.
type CameraBasis interface {
	Forward() mgl64.Vec3
	Right() mgl64.Vec3
}

// BasisReader is implemented by cameras that can return both axes from one
// consistent read. When the camera has it, Tick uses it instead of separate
// Forward and Right calls.
type BasisReader interface {
	Basis() (forward, right mgl64.Vec3)
}

// AnimationState is the authority on whether the avatar is aiming.
type AnimationState interface {
	IsAiming() bool
}

type AnimationParameterSink interface {
	SetFloat(name string, value float64)
	SetBool(name string, value bool)
}

// InteractionCancelNotifier is told whenever movement input arrives.
type InteractionCancelNotifier interface {
	Cancel()
}

// CancelFunc adapts a plain function to InteractionCancelNotifier.
type CancelFunc func()

func (f CancelFunc) Cancel() {
	if f != nil {
		f()
	}
}

const (
	ParamAimedWalkForward = "AimedWalkForward"
	ParamAimedWalkLeft    = "AimedWalkLeft"
	ParamIsWalking        = "isWalking"
	ParamIsRunning        = "isRunning"
)

type discardParams struct{}

func (discardParams) SetFloat(string, float64) {}
func (discardParams) SetBool(string, bool)     {}
