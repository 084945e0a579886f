package locomotion

import (
	"errors"
	"math"
	"testing"
)

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{"defaults", func(*Settings) {}, false},
		{"zero walk speed", func(s *Settings) { s.WalkSpeed = 0 }, true},
		{"negative run speed", func(s *Settings) { s.RunSpeed = -1 }, true},
		{"nan acceleration", func(s *Settings) { s.Acceleration = math.NaN() }, true},
		{"inf rotation", func(s *Settings) { s.RotationSpeed = math.Inf(1) }, true},
		{"zero aim walk", func(s *Settings) { s.AimingWalkSpeed = 0 }, true},
		{"zero aim blend is allowed", func(s *Settings) { s.AimBlendRate = 0 }, false},
		{"negative aim blend", func(s *Settings) { s.AimBlendRate = -2 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidSettings) {
				t.Fatalf("Validate() error = %v, want ErrInvalidSettings", err)
			}
		})
	}
}
