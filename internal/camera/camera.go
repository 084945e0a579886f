package camera

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	DefaultMinPitch = -80.0
	DefaultMaxPitch = 80.0
)

// Orbit is a yaw/pitch camera. Yaw 0 looks down +Z and positive yaw turns
// toward +X; positive pitch looks down. Angles are degrees.
type Orbit struct {
	mu       sync.RWMutex
	yaw      float64
	pitch    float64
	minPitch float64
	maxPitch float64
}

func NewOrbit(yaw, pitch float64) *Orbit {
	o := &Orbit{minPitch: DefaultMinPitch, maxPitch: DefaultMaxPitch}
	o.SetYawPitch(yaw, pitch)
	return o
}

func (o *Orbit) Forward() mgl64.Vec3 {
	yaw, pitch := o.Angles()
	return forward(yaw, pitch)
}

// Right is always horizontal.
func (o *Orbit) Right() mgl64.Vec3 {
	yaw, _ := o.Angles()
	return right(yaw)
}

// Basis returns Forward and Right from the same yaw/pitch read, so a Turn
// from another goroutine cannot land between them.
func (o *Orbit) Basis() (fwd, rgt mgl64.Vec3) {
	yaw, pitch := o.Angles()
	return forward(yaw, pitch), right(yaw)
}

func forward(yaw, pitch float64) mgl64.Vec3 {
	yawRad := mgl64.DegToRad(yaw)
	pitchRad := mgl64.DegToRad(pitch)
	return mgl64.Vec3{
		math.Sin(yawRad) * math.Cos(pitchRad),
		-math.Sin(pitchRad),
		math.Cos(yawRad) * math.Cos(pitchRad),
	}
}

func right(yaw float64) mgl64.Vec3 {
	yawRad := mgl64.DegToRad(yaw)
	return mgl64.Vec3{math.Cos(yawRad), 0, -math.Sin(yawRad)}
}

func (o *Orbit) Angles() (yaw, pitch float64) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.yaw, o.pitch
}

func (o *Orbit) SetYawPitch(yaw, pitch float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.yaw = normalizeAngle(yaw)
	o.pitch = mgl64.Clamp(pitch, o.minPitch, o.maxPitch)
}

func (o *Orbit) Turn(deltaYaw, deltaPitch float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.yaw = normalizeAngle(o.yaw + deltaYaw)
	o.pitch = mgl64.Clamp(o.pitch+deltaPitch, o.minPitch, o.maxPitch)
}

// SmoothYawTo turns toward target by at most maxStep degrees along the
// shorter direction and reports whether the target was reached. A
// non-positive step snaps.
func (o *Orbit) SmoothYawTo(target, maxStep float64) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.yaw = lerpAngle(o.yaw, target, maxStep)
	return math.Abs(signedAngleDelta(o.yaw, target)) < 1e-9
}

func lerpAngle(current, target, maxStep float64) float64 {
	if maxStep <= 0 {
		return normalizeAngle(target)
	}
	delta := signedAngleDelta(current, target)
	if delta > maxStep {
		delta = maxStep
	} else if delta < -maxStep {
		delta = -maxStep
	}
	return normalizeAngle(current + delta)
}

func signedAngleDelta(from, to float64) float64 {
	return normalizeAngle(to - from)
}

func normalizeAngle(v float64) float64 {
	v = math.Mod(v, 360)
	if v <= -180 {
		v += 360
	}
	if v > 180 {
		v -= 360
	}
	return v
}
