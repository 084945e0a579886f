package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Clamp01 limits an interpolation factor to [0,1]. NaN collapses to 0.
func Clamp01(t float64) float64 {
	if math.IsNaN(t) || t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t
}

// LerpVec3 moves a toward b by the clamped factor t.
func LerpVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	t = Clamp01(t)
	if t == 0 {
		return a
	}
	if t == 1 {
		return b
	}
	return a.Add(b.Sub(a).Mul(t))
}

// LerpVec2 moves a toward b by the clamped factor t.
func LerpVec2(a, b mgl64.Vec2, t float64) mgl64.Vec2 {
	t = Clamp01(t)
	if t == 0 {
		return a
	}
	if t == 1 {
		return b
	}
	return a.Add(b.Sub(a).Mul(t))
}

// Flatten drops the vertical component.
func Flatten(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X(), 0, v.Z()}
}

// ProjectOnBasis maps a local vector (x = strafe, z = forward) into world
// space using the given camera basis and flattens the result.
func ProjectOnBasis(local, forward, right mgl64.Vec3) mgl64.Vec3 {
	world := forward.Mul(local.Z()).Add(right.Mul(local.X()))
	return Flatten(world)
}

func NearlyZero(v float64) bool {
	return math.Abs(v) < VectorTolerance
}
