package config

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/Versifine/stride/internal/locomotion"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Mode       string           `yaml:"mode"`
	Logging    LoggingConfig    `yaml:"logging"`
	Locomotion LocomotionConfig `yaml:"locomotion"`
	Camera     CameraConfig     `yaml:"camera"`
	Sim        SimConfig        `yaml:"sim"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

type LocomotionConfig struct {
	WalkSpeed        float64 `yaml:"walk_speed"`
	RunSpeed         float64 `yaml:"run_speed"`
	AimingWalkSpeed  float64 `yaml:"aiming_walk_speed"`
	Acceleration     float64 `yaml:"acceleration"`
	Deceleration     float64 `yaml:"deceleration"`
	RotationSpeed    float64 `yaml:"rotation_speed"`
	AimBlendRate     float64 `yaml:"aim_blend_rate"`
	AimBlendPerFrame bool    `yaml:"aim_blend_per_frame"`
}

type CameraConfig struct {
	Yaw      float64 `yaml:"yaw"`
	Pitch    float64 `yaml:"pitch"`
	TurnStep float64 `yaml:"turn_step"`
}

type SimConfig struct {
	TickRate    float64 `yaml:"tick_rate"`
	Script      string  `yaml:"script"`
	ReportEvery int     `yaml:"report_every"`
}

const (
	ModeReplay  = "replay"
	ModeConsole = "console"
)

func Default() *Config {
	s := locomotion.DefaultSettings()
	return &Config{
		Mode: ModeReplay,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Locomotion: LocomotionConfig{
			WalkSpeed:        s.WalkSpeed,
			RunSpeed:         s.RunSpeed,
			AimingWalkSpeed:  s.AimingWalkSpeed,
			Acceleration:     s.Acceleration,
			Deceleration:     s.Deceleration,
			RotationSpeed:    s.RotationSpeed,
			AimBlendRate:     s.AimBlendRate,
			AimBlendPerFrame: s.AimBlendPerFrame,
		},
		Camera: CameraConfig{
			TurnStep: 5,
		},
		Sim: SimConfig{
			TickRate:    60,
			ReportEvery: 30,
		},
	}
}

// Load reads a YAML config on top of Default. Fields missing from the file
// keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := c.Settings().Validate(); err != nil {
		return err
	}
	switch c.Mode {
	case ModeReplay, ModeConsole:
	default:
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	if c.Sim.TickRate <= 0 || math.IsNaN(c.Sim.TickRate) || math.IsInf(c.Sim.TickRate, 0) {
		return fmt.Errorf("sim.tick_rate must be finite and positive, got %v", c.Sim.TickRate)
	}
	for name, v := range map[string]float64{"camera.yaw": c.Camera.Yaw, "camera.pitch": c.Camera.Pitch, "camera.turn_step": c.Camera.TurnStep} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s must be finite, got %v", name, v)
		}
	}
	return nil
}

func (c *Config) Settings() locomotion.Settings {
	l := c.Locomotion
	return locomotion.Settings{
		WalkSpeed:        l.WalkSpeed,
		RunSpeed:         l.RunSpeed,
		AimingWalkSpeed:  l.AimingWalkSpeed,
		Acceleration:     l.Acceleration,
		Deceleration:     l.Deceleration,
		RotationSpeed:    l.RotationSpeed,
		AimBlendRate:     l.AimBlendRate,
		AimBlendPerFrame: l.AimBlendPerFrame,
	}
}

// TickInterval is the wall-clock period of one simulation tick.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(float64(time.Second) / c.Sim.TickRate)
}
