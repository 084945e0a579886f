package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// LookRotation returns the rotation that turns +Z onto the horizontal part of
// dir around the world up axis. ok is false when dir has no usable heading.
func LookRotation(dir mgl64.Vec3) (mgl64.Quat, bool) {
	flat := Flatten(dir)
	if flat.Len() < MinLookDirection {
		return mgl64.QuatIdent(), false
	}
	yaw := math.Atan2(flat.X(), flat.Z())
	return mgl64.QuatRotate(yaw, mgl64.Vec3(WorldUp)), true
}

// SlerpClamped interpolates from toward to along the shortest arc. The factor
// is clamped, so t <= 0 returns from unchanged and t >= 1 returns to exactly.
func SlerpClamped(from, to mgl64.Quat, t float64) mgl64.Quat {
	t = Clamp01(t)
	if t == 0 {
		return from
	}
	if t == 1 {
		return to
	}
	if from.Dot(to) < SlerpDotThreshold {
		to = to.Scale(-1)
	}
	return mgl64.QuatSlerp(from, to, t)
}

// Heading is the world direction +Z points to after applying q.
func Heading(q mgl64.Quat) mgl64.Vec3 {
	return q.Rotate(mgl64.Vec3(WorldForward))
}

// YawDegrees reports the heading of q around the up axis, 0 facing +Z and
// positive toward +X, in (-180, 180].
func YawDegrees(q mgl64.Quat) float64 {
	h := Heading(q)
	if NearlyZero(h.X()) && NearlyZero(h.Z()) {
		return 0
	}
	return mgl64.RadToDeg(math.Atan2(h.X(), h.Z()))
}
