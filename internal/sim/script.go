package sim

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// Script is a timeline of input changes replayed against a rig.
type Script struct {
	Name     string  `yaml:"name"`
	TickRate float64 `yaml:"tick_rate"`
	Duration float64 `yaml:"duration"`
	Steps    []Step  `yaml:"steps"`
}

// Step applies its non-nil fields at time At (seconds from start).
type Step struct {
	At          float64     `yaml:"at"`
	Move        *[2]float64 `yaml:"move,omitempty"`
	Run         *bool       `yaml:"run,omitempty"`
	Aim         *bool       `yaml:"aim,omitempty"`
	CameraYaw   *float64    `yaml:"camera_yaw,omitempty"`
	CameraPitch *float64    `yaml:"camera_pitch,omitempty"`
	Interact    bool        `yaml:"interact,omitempty"`
}

var ErrInvalidScript = errors.New("invalid script")

func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := ParseScript(data)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", path, err)
	}
	return s, nil
}

func ParseScript(data []byte) (*Script, error) {
	s := &Script{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Script) Validate() error {
	if s.TickRate < 0 || !isFinite(s.TickRate) {
		return fmt.Errorf("%w: tick_rate must be a finite non-negative number", ErrInvalidScript)
	}
	if s.Duration <= 0 || !isFinite(s.Duration) {
		return fmt.Errorf("%w: duration must be a finite positive number", ErrInvalidScript)
	}
	prev := 0.0
	for i, step := range s.Steps {
		if !isFinite(step.At) {
			return fmt.Errorf("%w: step %d has non-finite time", ErrInvalidScript, i)
		}
		if step.At < prev {
			return fmt.Errorf("%w: step %d at %.3fs comes before %.3fs", ErrInvalidScript, i, step.At, prev)
		}
		prev = step.At
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (s Step) apply(r *Rig) {
	if s.Aim != nil {
		r.Animator.SetAiming(*s.Aim)
	}
	if s.CameraYaw != nil || s.CameraPitch != nil {
		yaw, pitch := r.Camera.Angles()
		if s.CameraYaw != nil {
			yaw = *s.CameraYaw
		}
		if s.CameraPitch != nil {
			pitch = *s.CameraPitch
		}
		r.Camera.SetYawPitch(yaw, pitch)
	}
	if s.Interact {
		r.Interaction.Begin()
	}
	if s.Run != nil {
		r.Controller.OnRunToggle(*s.Run)
	}
	if s.Move != nil {
		r.Controller.OnMovementInput(mgl64.Vec2(*s.Move))
	}
}
