package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Versifine/stride/internal/config"
	"github.com/Versifine/stride/internal/debug"
	"github.com/Versifine/stride/internal/logger"
	"github.com/Versifine/stride/internal/sim"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the YAML config")
	mode := flag.String("mode", "", "override config mode (replay|console)")
	script := flag.String("script", "", "override sim.script for replay mode")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if *mode != "" {
		cfg.Mode = *mode
	}
	if *script != "" {
		cfg.Sim.Script = *script
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid config", "error", err)
		os.Exit(1)
	}

	var output io.Writer
	if cfg.Logging.File != "" {
		w, closer, err := logger.OpenFile(cfg.Logging.File)
		if err != nil {
			slog.Error("Failed to open log file", "error", err)
			os.Exit(1)
		}
		defer closer.Close()
		output = w
	}
	logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: output,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("stride stopped", "mode", cfg.Mode, "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	rig, err := sim.NewRig(sim.RigOptions{
		Settings:    cfg.Settings(),
		CameraYaw:   cfg.Camera.Yaw,
		CameraPitch: cfg.Camera.Pitch,
	})
	if err != nil {
		return err
	}
	slog.Info("rig ready",
		"mode", cfg.Mode,
		"walk_speed", cfg.Locomotion.WalkSpeed,
		"run_speed", cfg.Locomotion.RunSpeed,
		"tick_rate", cfg.Sim.TickRate,
	)

	switch cfg.Mode {
	case config.ModeConsole:
		return debug.NewConsole(rig, cfg.TickInterval(), cfg.Camera.TurnStep).Start(ctx)
	default:
		return replay(ctx, rig, cfg)
	}
}

func replay(ctx context.Context, rig *sim.Rig, cfg *config.Config) error {
	if cfg.Sim.Script == "" {
		return errors.New("replay mode needs sim.script")
	}
	script, err := sim.LoadScript(cfg.Sim.Script)
	if err != nil {
		return err
	}

	frames, err := sim.Replay(ctx, rig, script, cfg.Sim.TickRate)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("replay %s: %w", script.Name, err)
	}

	every := cfg.Sim.ReportEvery
	for i, f := range frames {
		if every > 0 && (i+1)%every != 0 && i != len(frames)-1 {
			continue
		}
		slog.Info("frame", f.LogAttrs()...)
	}

	pose := rig.Body.Pose()
	var last sim.Frame
	if len(frames) > 0 {
		last = frames[len(frames)-1]
	}
	slog.Info("replay done",
		"script", script.Name,
		"ticks", len(frames),
		"position", pose.Position,
		"travelled", rig.Body.Travelled(),
		"moves", rig.Body.Moves(),
		"flag_changes", rig.Transitions(),
		"yaw", pose.Yaw,
		"aimed", last.AimedMovement,
		"params", len(rig.Animator.Snapshot().Names()),
	)
	return nil
}
