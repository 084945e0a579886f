package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClamp01(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-1, 0},
		{0, 0},
		{0.25, 0.25},
		{1, 1},
		{12.5, 1},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Clamp01(tt.in), "Clamp01(%v)", tt.in)
	}
}

func TestLerpVec3_ClampsLargeFactor(t *testing.T) {
	a := mgl64.Vec3{1, 0, 1}
	b := mgl64.Vec3{-3, 0, 5}

	assert.Equal(t, b, LerpVec3(a, b, 40), "overshoot")
	assert.Equal(t, a, LerpVec3(a, b, 0))

	mid := LerpVec3(a, b, 0.5)
	assert.InDelta(t, -1, mid.X(), 1e-12)
	assert.InDelta(t, 3, mid.Z(), 1e-12)
}

func TestLerpVec2_Halfway(t *testing.T) {
	got := LerpVec2(mgl64.Vec2{0, 0}, mgl64.Vec2{1, -1}, 0.5)
	assert.InDelta(t, 0.5, got.X(), 1e-12)
	assert.InDelta(t, -0.5, got.Y(), 1e-12)
}

func TestProjectOnBasis_IdentityCamera(t *testing.T) {
	got := ProjectOnBasis(mgl64.Vec3{2, 0, 0}, mgl64.Vec3{0, 0, 1}, mgl64.Vec3{1, 0, 0})
	assert.Equal(t, mgl64.Vec3{2, 0, 0}, got)
}

func TestProjectOnBasis_PitchedCameraIsFlattened(t *testing.T) {
	pitch := math.Pi / 4
	forward := mgl64.Vec3{0, -math.Sin(pitch), math.Cos(pitch)}
	right := mgl64.Vec3{1, 0, 0}

	got := ProjectOnBasis(mgl64.Vec3{0, 0, 1}, forward, right)
	assert.Zero(t, got.Y())
	assert.InDelta(t, math.Cos(pitch), got.Z(), 1e-12)
}

func TestNearlyZero(t *testing.T) {
	assert.True(t, NearlyZero(0))
	assert.True(t, NearlyZero(-VectorTolerance/2))
	assert.False(t, NearlyZero(VectorTolerance))
	assert.False(t, NearlyZero(0.01))
}

func TestLookRotation_Headings(t *testing.T) {
	tests := []struct {
		name string
		dir  mgl64.Vec3
		yaw  float64
	}{
		{"forward", mgl64.Vec3{0, 0, 1}, 0},
		{"right", mgl64.Vec3{1, 0, 0}, 90},
		{"left", mgl64.Vec3{-3, 0, 0}, -90},
		{"diagonal ignores y", mgl64.Vec3{1, 5, 1}, 45},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, ok := LookRotation(tt.dir)
			require.True(t, ok)
			assert.InDelta(t, tt.yaw, YawDegrees(q), 1e-9)
		})
	}
}

func TestLookRotation_DegenerateDirection(t *testing.T) {
	for _, dir := range []mgl64.Vec3{{}, {0, 1, 0}, {1e-9, 0, -1e-9}} {
		q, ok := LookRotation(dir)
		assert.False(t, ok, "LookRotation(%v)", dir)
		assert.Equal(t, mgl64.QuatIdent(), q)
	}
}

func TestSlerpClamped_Endpoints(t *testing.T) {
	from := mgl64.QuatIdent()
	to, _ := LookRotation(mgl64.Vec3{1, 0, 0})

	assert.Equal(t, from, SlerpClamped(from, to, 0))
	assert.Equal(t, to, SlerpClamped(from, to, 3))
	assert.InDelta(t, 45, YawDegrees(SlerpClamped(from, to, 0.5)), 1e-6)
}

func TestSlerpClamped_TakesShortestArc(t *testing.T) {
	from, _ := LookRotation(mgl64.Vec3{-0.1, 0, -1}) // just left of behind
	to, _ := LookRotation(mgl64.Vec3{0.1, 0, -1})    // just right of behind

	mid := SlerpClamped(from, to, 0.5)
	assert.Greater(t, math.Abs(YawDegrees(mid)), 179.0, "short arc goes through behind")
}
