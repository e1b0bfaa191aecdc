package modifier

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/strafekit/strafe/game"
	"github.com/strafekit/strafe/hook"
	"github.com/strafekit/strafe/input"
	"github.com/strafekit/strafe/locomotion"
)

// JumpConfig holds the jump tunables.
type JumpConfig struct {
	// Height is the desired apex height of a jump from rest.
	Height float32
	// BufferTime is how long before landing a press still produces a jump, in seconds.
	BufferTime float64
	// GroundGraceTime is how long after leaving the ground a press still produces a jump, in seconds.
	GroundGraceTime float64
}

// DefaultJumpConfig returns a one metre jump with a short buffer and grace window.
func DefaultJumpConfig() JumpConfig {
	return JumpConfig{
		Height:          game.DefaultJumpHeight,
		BufferTime:      game.DefaultJumpBufferTime,
		GroundGraceTime: game.DefaultGroundGraceTime,
	}
}

// Jump adds jumping with a press buffer and a ground grace window ("coyote time") to a core.
type Jump struct {
	cfg   JumpConfig
	core  *locomotion.Core
	input *input.Handler
	clock locomotion.Clock

	pending              bool
	lastJumpPressTime    float64
	lastGroundedLossTime float64

	beforeMove, groundChanged, pressed hook.Handle
}

// NewJump creates a Jump modifier and attaches it to the core and input handler. Close must be
// called to detach it again.
func NewJump(core *locomotion.Core, in *input.Handler, clock locomotion.Clock, cfg JumpConfig) *Jump {
	j := &Jump{
		cfg:                  cfg,
		core:                 core,
		input:                in,
		clock:                clock,
		lastJumpPressTime:    math.Inf(-1),
		lastGroundedLossTime: math.Inf(-1),
	}
	j.beforeMove = core.BeforeMove().Register(j.prepare)
	j.groundChanged = core.GroundStateChanged().Register(j.onGroundStateChange)
	j.pressed = in.JumpPressed().Register(j.onJumpPressed)
	return j
}

// Close detaches the modifier from the core and the input handler.
func (j *Jump) Close() error {
	j.core.BeforeMove().Unregister(j.beforeMove)
	j.core.GroundStateChanged().Unregister(j.groundChanged)
	j.input.JumpPressed().Unregister(j.pressed)
	return nil
}

// Velocity returns the vertical velocity a jump adds for the given mass and gravity multiplier.
func (j *Jump) Velocity(mass, gravityMultiplier float32) float32 {
	return math32.Sqrt(-2 * game.Gravity * mass * gravityMultiplier * j.cfg.Height)
}

func (j *Jump) onJumpPressed() {
	j.pending = true
	j.lastJumpPressTime = j.clock.Now()
}

func (j *Jump) onGroundStateChange(grounded bool) {
	if !grounded {
		j.lastGroundedLossTime = j.clock.Now()
	}
}

// prepare runs before the move direction is computed and performs the jump if one is due.
func (j *Jump) prepare(ctx *locomotion.TickContext) {
	// A press is only ever considered on the pass right after it happened.
	defer func() { j.pending = false }()

	if (!ctx.Input.JumpHeld && !ctx.Jumping) || ctx.Sliding {
		return
	}
	if ctx.Grounded {
		ctx.Jumping = false
	}

	withinBuffer := ctx.Now-j.lastJumpPressTime < j.cfg.BufferTime
	withinGrace := ctx.Now-j.lastGroundedLossTime < j.cfg.GroundGraceTime

	tryingToJump := j.pending || (withinBuffer && ctx.Grounded)
	mayJump := ctx.Grounded || withinGrace
	if ctx.OnSlope || ctx.Jumping || !tryingToJump || !mayJump {
		return
	}

	// The jump velocity is added on top of the current vertical velocity, so jumping while falling
	// or sliding does not reach the same height as a jump from rest.
	ctx.Velocity[1] += j.Velocity(ctx.Mass, ctx.GravityMultiplier)
	ctx.Jumping = true
	ctx.SpeedMultiplier = 0
}
