package body

import (
	"log/slog"
	"sync"

	"github.com/Versifine/stride/internal/physics"
	"github.com/go-gl/mathgl/mgl64"
)

// Pose is a snapshot of the body transform.
type Pose struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Yaw      float64
}

type PoseListener interface {
	UpdatePose(pose Pose)
}

// Body is a kinematic avatar: it applies requested displacements as-is and
// holds the rotation the locomotion controller hands it.
type Body struct {
	mu        sync.Mutex
	position  mgl64.Vec3
	rotation  mgl64.Quat
	travelled float64
	moves     uint64
	listener  PoseListener
}

func New(initial mgl64.Vec3, listener PoseListener) *Body {
	return &Body{
		position: initial,
		rotation: mgl64.QuatIdent(),
		listener: listener,
	}
}

func (b *Body) Move(displacement mgl64.Vec3) {
	if b == nil {
		return
	}
	b.mu.Lock()
	b.position = b.position.Add(displacement)
	b.travelled += displacement.Len()
	b.moves++
	pose := b.poseLocked()
	b.mu.Unlock()

	b.notify(pose)
}

func (b *Body) SetRotation(q mgl64.Quat) {
	if b == nil {
		return
	}
	b.mu.Lock()
	b.rotation = q
	pose := b.poseLocked()
	b.mu.Unlock()

	b.notify(pose)
}

func (b *Body) Rotation() mgl64.Quat {
	if b == nil {
		return mgl64.QuatIdent()
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rotation
}

// SetLocalPosition teleports the body without counting the jump as travel.
func (b *Body) SetLocalPosition(pos mgl64.Vec3) {
	if b == nil {
		return
	}
	b.mu.Lock()
	b.position = pos
	pose := b.poseLocked()
	b.mu.Unlock()

	slog.Debug("Body teleported", "position", pos)
	b.notify(pose)
}

func (b *Body) Pose() Pose {
	if b == nil {
		return Pose{Rotation: mgl64.QuatIdent()}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.poseLocked()
}

// Travelled is the summed length of every displacement applied so far.
func (b *Body) Travelled() float64 {
	if b == nil {
		return 0
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.travelled
}

func (b *Body) Moves() uint64 {
	if b == nil {
		return 0
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.moves
}

func (b *Body) poseLocked() Pose {
	return Pose{
		Position: b.position,
		Rotation: b.rotation,
		Yaw:      physics.YawDegrees(b.rotation),
	}
}

func (b *Body) notify(pose Pose) {
	if b.listener != nil {
		b.listener.UpdatePose(pose)
	}
}
