package locomotion

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidSettings     = errors.New("invalid locomotion settings")
	ErrMissingCollaborator = errors.New("missing locomotion collaborator")
)

// Settings holds the per-session tuning of a controller. It is copied into
// the controller at construction and never changes afterwards.
type Settings struct {
	WalkSpeed       float64
	RunSpeed        float64
	AimingWalkSpeed float64
	Acceleration    float64
	Deceleration    float64
	RotationSpeed   float64

	// AimBlendRate drives the lean blend while aiming. It is multiplied by the
	// tick delta unless AimBlendPerFrame is set, in which case it is used as a
	// raw per-tick factor.
	AimBlendRate     float64
	AimBlendPerFrame bool
}

const DefaultAimBlendRate = 5.0

func DefaultSettings() Settings {
	return Settings{
		WalkSpeed:       1,
		RunSpeed:        3,
		AimingWalkSpeed: 1,
		Acceleration:    1,
		Deceleration:    1,
		RotationSpeed:   1,
		AimBlendRate:    DefaultAimBlendRate,
	}
}

func (s Settings) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"walk speed", s.WalkSpeed},
		{"run speed", s.RunSpeed},
		{"aiming walk speed", s.AimingWalkSpeed},
		{"acceleration", s.Acceleration},
		{"deceleration", s.Deceleration},
		{"rotation speed", s.RotationSpeed},
	}
	for _, p := range positive {
		if !isFinite(p.value) || p.value <= 0 {
			return fmt.Errorf("%w: %s must be a positive number, got %v", ErrInvalidSettings, p.name, p.value)
		}
	}
	if !isFinite(s.AimBlendRate) || s.AimBlendRate < 0 {
		return fmt.Errorf("%w: aim blend rate must not be negative, got %v", ErrInvalidSettings, s.AimBlendRate)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
