package debug

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Versifine/stride/internal/sim"
	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/term"
)

const (
	defaultTickInterval = 50 * time.Millisecond
	defaultMovePulse    = 180 * time.Millisecond
	defaultTurnStep     = 5.0
	pitchStep           = 5.0
)

type Console struct {
	rig          *sim.Rig
	mailbox      *sim.Mailbox
	out          io.Writer
	tickInterval time.Duration
	movePulse    time.Duration
	turnStep     float64

	mu            sync.Mutex
	axis          mgl64.Vec2
	run           bool
	forwardUntil  time.Time
	backwardUntil time.Time
	leftUntil     time.Time
	rightUntil    time.Time
	commandMode   bool
	commandBuf    []rune
	statusWidth   int
	lastFrame     sim.Frame
	started       time.Time
	yawTarget     *float64
}

func NewConsole(rig *sim.Rig, tickInterval time.Duration, turnStep float64) *Console {
	if tickInterval <= 0 {
		tickInterval = defaultTickInterval
	}
	if turnStep <= 0 {
		turnStep = defaultTurnStep
	}
	return &Console{
		rig:          rig,
		mailbox:      sim.NewMailbox(),
		out:          os.Stdout,
		tickInterval: tickInterval,
		movePulse:    defaultMovePulse,
		turnStep:     turnStep,
	}
}

func (c *Console) Start(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("console is nil")
	}
	if c.rig == nil || c.rig.Controller == nil {
		return fmt.Errorf("console rig is nil")
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("set terminal raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
		fmt.Fprint(c.out, "\r\n")
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprint(c.out, "[debug] console started (W/A/S/D pulse, ] run, [ aim, E interact, arrows camera, : command, Q quit)\r\n")

	runner := c.runner()
	c.started = time.Now()
	go func() {
		if err := runner.Run(ctx); err != nil {
			slog.Error("debug tick loop stopped", "error", err)
		}
	}()

	reader := bufio.NewReader(os.Stdin)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		b, err := reader.ReadByte()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read console input: %w", err)
		}
		if !c.isCommandMode() && (b == 'q' || b == 'Q' || b == 3) {
			return nil
		}
		c.handleKey(reader, b)
	}
}

func (c *Console) runner() *sim.Runner {
	return &sim.Runner{
		Target:   c.rig.Controller,
		Mailbox:  c.mailbox,
		Interval: c.tickInterval,
		BeforeTick: func(now time.Time) {
			c.expirePulses(now)
			c.steerCamera()
		},
		AfterTick: func(tick int, _ float64) {
			frame := c.rig.Frame(tick, time.Since(c.started).Seconds())
			c.mu.Lock()
			c.lastFrame = frame
			c.mu.Unlock()
			c.renderStatusLine()
		},
	}
}

func (c *Console) handleKey(reader *bufio.Reader, b byte) {
	if c.isCommandMode() {
		c.handleCommandByte(b)
		return
	}

	switch b {
	case ':':
		c.enterCommandMode()
		return
	case 'w', 'W':
		c.pulse(&c.forwardUntil, &c.backwardUntil)
	case 's', 'S':
		c.pulse(&c.backwardUntil, &c.forwardUntil)
	case 'a', 'A':
		c.pulse(&c.leftUntil, &c.rightUntil)
	case 'd', 'D':
		c.pulse(&c.rightUntil, &c.leftUntil)
	case ']':
		c.toggleRun()
	case '[':
		c.toggleAim()
	case 'e', 'E':
		c.rig.Interaction.Begin()
	case 'x', 'X':
		c.clearInput()
	case 27: // ESC + arrow sequence
		next, err := reader.ReadByte()
		if err != nil || next != '[' {
			return
		}
		arrow, err := reader.ReadByte()
		if err != nil {
			return
		}
		switch arrow {
		case 'D': // left
			c.clearYawTarget()
			c.rig.Camera.Turn(-c.turnStep, 0)
		case 'C': // right
			c.clearYawTarget()
			c.rig.Camera.Turn(c.turnStep, 0)
		case 'A': // up
			c.rig.Camera.Turn(0, -pitchStep)
		case 'B': // down
			c.rig.Camera.Turn(0, pitchStep)
		}
	}
}

func (c *Console) enterCommandMode() {
	c.mu.Lock()
	c.commandMode = true
	c.commandBuf = c.commandBuf[:0]
	c.mu.Unlock()
	fmt.Fprint(c.out, "\r\n:")
}

func (c *Console) handleCommandByte(b byte) {
	switch b {
	case 13, 10: // Enter
		c.mu.Lock()
		cmd := strings.TrimSpace(string(c.commandBuf))
		c.commandMode = false
		c.commandBuf = c.commandBuf[:0]
		c.mu.Unlock()

		fmt.Fprint(c.out, "\r\n")
		if cmd != "" {
			c.executeCommand(cmd)
		}
		return
	case 27: // ESC cancel command mode
		c.mu.Lock()
		c.commandMode = false
		c.commandBuf = c.commandBuf[:0]
		c.mu.Unlock()
		fmt.Fprint(c.out, "\r\n[debug] command cancelled\r\n")
		return
	case 8, 127: // Backspace
		c.mu.Lock()
		if len(c.commandBuf) > 0 {
			c.commandBuf = c.commandBuf[:len(c.commandBuf)-1]
		}
		buf := string(c.commandBuf)
		c.mu.Unlock()
		fmt.Fprintf(c.out, "\r:%s ", buf)
		fmt.Fprintf(c.out, "\r:%s", buf)
		return
	default:
		if b < 32 || b > 126 {
			return
		}
		c.mu.Lock()
		c.commandBuf = append(c.commandBuf, rune(b))
		buf := string(c.commandBuf)
		c.mu.Unlock()
		fmt.Fprintf(c.out, "\r:%s", buf)
	}
}

func (c *Console) executeCommand(cmd string) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return
	}

	switch parts[0] {
	case "help":
		c.printHelp()
	case "state":
		c.mu.Lock()
		f := c.lastFrame
		c.mu.Unlock()
		fmt.Fprintf(c.out, "[debug] pos=(%.3f,%.3f,%.3f) vel=(%.3f,%.3f,%.3f) yaw=%.1f phase=%s walk=%t run=%t aim=%t lean=(%.2f,%.2f) moves=%d travelled=%.2f\r\n",
			f.Position.X(), f.Position.Y(), f.Position.Z(),
			f.Velocity.X(), f.Velocity.Y(), f.Velocity.Z(),
			f.Yaw, f.Phase, f.Gait.Walking, f.Gait.Running, f.Aiming,
			f.AimedMovement.X(), f.AimedMovement.Y(),
			c.rig.Body.Moves(), c.rig.Body.Travelled(),
		)
	case "params":
		snap := c.rig.Animator.Snapshot()
		for _, name := range snap.Names() {
			if v, ok := snap.Bools[name]; ok {
				fmt.Fprintf(c.out, "[debug] %s=%t\r\n", name, v)
				continue
			}
			fmt.Fprintf(c.out, "[debug] %s=%.3f\r\n", name, snap.Floats[name])
		}
		fmt.Fprintf(c.out, "[debug] flag changes=%d\r\n", c.rig.Transitions())
	case "tp":
		if len(parts) != 4 {
			fmt.Fprint(c.out, "[debug] usage: :tp <x> <y> <z>\r\n")
			return
		}
		x, err1 := strconv.ParseFloat(parts[1], 64)
		y, err2 := strconv.ParseFloat(parts[2], 64)
		z, err3 := strconv.ParseFloat(parts[3], 64)
		if err1 != nil || err2 != nil || err3 != nil || !finite(x, y, z) {
			fmt.Fprint(c.out, "[debug] invalid tp args\r\n")
			return
		}
		c.rig.Body.SetLocalPosition(mgl64.Vec3{x, y, z})
		fmt.Fprintf(c.out, "[debug] local tp set to (%.3f, %.3f, %.3f)\r\n", x, y, z)
	case "yaw":
		if len(parts) != 2 {
			fmt.Fprint(c.out, "[debug] usage: :yaw <degrees>\r\n")
			return
		}
		yaw, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			fmt.Fprint(c.out, "[debug] invalid yaw\r\n")
			return
		}
		if math.IsNaN(yaw) || math.IsInf(yaw, 0) {
			fmt.Fprint(c.out, "[debug] invalid yaw\r\n")
			return
		}
		c.mu.Lock()
		c.yawTarget = &yaw
		c.mu.Unlock()
		fmt.Fprintf(c.out, "[debug] camera turning to yaw %.1f\r\n", yaw)
	default:
		fmt.Fprintf(c.out, "[debug] unknown command: %s\r\n", parts[0])
	}
}

func (c *Console) printHelp() {
	fmt.Fprint(c.out, "[debug] keys:\r\n")
	fmt.Fprint(c.out, "  W/S/A/D: pulse movement (~180ms)\r\n")
	fmt.Fprint(c.out, "  ]: toggle run\r\n")
	fmt.Fprint(c.out, "  [: toggle aim\r\n")
	fmt.Fprint(c.out, "  E: start interaction (movement cancels it)\r\n")
	fmt.Fprint(c.out, "  Arrow Left/Right: camera yaw\r\n")
	fmt.Fprint(c.out, "  Arrow Up/Down: camera pitch\r\n")
	fmt.Fprint(c.out, "  X: clear all input\r\n")
	fmt.Fprint(c.out, "  Q: quit\r\n")
	fmt.Fprint(c.out, "  : enter command mode\r\n")
	fmt.Fprint(c.out, "[debug] commands:\r\n")
	fmt.Fprint(c.out, "  :state\r\n")
	fmt.Fprint(c.out, "  :params\r\n")
	fmt.Fprint(c.out, "  :tp <x> <y> <z>\r\n")
	fmt.Fprint(c.out, "  :yaw <degrees> (eases at the turn step per tick)\r\n")
	fmt.Fprint(c.out, "  :help\r\n")
}

func (c *Console) renderStatusLine() {
	c.mu.Lock()
	if c.commandMode {
		c.mu.Unlock()
		return
	}
	f := c.lastFrame
	run := c.run
	width := c.statusWidth
	c.mu.Unlock()

	camYaw, camPitch := c.rig.Camera.Angles()
	line := fmt.Sprintf(
		"[RUN:%s AIM:%s INT:%s | CAM:%.0f/%.0f | X:%.2f Z:%.2f SPD:%.2f YAW:%.1f %s]",
		boolLabel(run),
		boolLabel(f.Aiming),
		boolLabel(f.Interacting),
		camYaw,
		camPitch,
		f.Position.X(),
		f.Position.Z(),
		f.Velocity.Len(),
		f.Yaw,
		f.Phase,
	)

	padding := ""
	if width > len(line) {
		padding = strings.Repeat(" ", width-len(line))
	}
	fmt.Fprintf(c.out, "\r%s%s", line, padding)

	c.mu.Lock()
	if len(line) > c.statusWidth {
		c.statusWidth = len(line)
	}
	c.mu.Unlock()
}

func (c *Console) isCommandMode() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.commandMode
}

// steerCamera eases the camera toward a pending :yaw target, turnStep
// degrees per tick.
func (c *Console) steerCamera() {
	c.mu.Lock()
	target := c.yawTarget
	c.mu.Unlock()
	if target == nil {
		return
	}
	if c.rig.Camera.SmoothYawTo(*target, c.turnStep) {
		c.clearYawTarget()
	}
}

func (c *Console) clearYawTarget() {
	c.mu.Lock()
	c.yawTarget = nil
	c.mu.Unlock()
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func boolLabel(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// pulse holds one direction for movePulse and releases its opposite.
func (c *Console) pulse(until, opposite *time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	*until = time.Now().Add(c.movePulse)
	*opposite = time.Time{}
	c.postAxisLocked()
}

func (c *Console) expirePulses(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, until := range []*time.Time{&c.forwardUntil, &c.backwardUntil, &c.leftUntil, &c.rightUntil} {
		if !until.IsZero() && !now.Before(*until) {
			*until = time.Time{}
		}
	}
	c.postAxisLocked()
}

func (c *Console) postAxisLocked() {
	axis := pulseAxis(!c.forwardUntil.IsZero(), !c.backwardUntil.IsZero(), !c.leftUntil.IsZero(), !c.rightUntil.IsZero())
	if axis == c.axis {
		return
	}
	c.axis = axis
	c.mailbox.PostMovement(axis)
}

func pulseAxis(forward, backward, left, right bool) mgl64.Vec2 {
	var axis mgl64.Vec2
	if right {
		axis[0]++
	}
	if left {
		axis[0]--
	}
	if forward {
		axis[1]++
	}
	if backward {
		axis[1]--
	}
	if axis[0] != 0 && axis[1] != 0 {
		axis = axis.Normalize()
	}
	return axis
}

func (c *Console) toggleRun() {
	c.mu.Lock()
	c.run = !c.run
	enabled := c.run
	c.mu.Unlock()
	c.mailbox.PostRun(enabled)
	slog.Debug("debug run toggled", "enabled", enabled)
}

func (c *Console) toggleAim() {
	aiming := !c.rig.Animator.IsAiming()
	c.rig.Animator.SetAiming(aiming)
	slog.Debug("debug aim toggled", "enabled", aiming)
}

func (c *Console) clearInput() {
	c.mu.Lock()
	c.forwardUntil = time.Time{}
	c.backwardUntil = time.Time{}
	c.leftUntil = time.Time{}
	c.rightUntil = time.Time{}
	c.postAxisLocked()
	wasRunning := c.run
	c.run = false
	c.mu.Unlock()
	if wasRunning {
		c.mailbox.PostRun(false)
	}
}
