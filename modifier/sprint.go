package modifier

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/strafekit/strafe/game"
	"github.com/strafekit/strafe/hook"
	"github.com/strafekit/strafe/locomotion"
)

// SprintConfig holds the sprint tunables.
type SprintConfig struct {
	// Multiplier is the speed multiplier reached when moving straight forward.
	Multiplier float32
}

// DefaultSprintConfig ...
func DefaultSprintConfig() SprintConfig {
	return SprintConfig{Multiplier: game.DefaultSprintMultiplier}
}

// Sprint scales the core's speed multiplier while the sprint button is held, rewarding movement in
// the facing direction only.
type Sprint struct {
	cfg    SprintConfig
	core   *locomotion.Core
	handle hook.Handle
}

// NewSprint creates a Sprint modifier attached to the core. Close must be called to detach it.
func NewSprint(core *locomotion.Core, cfg SprintConfig) *Sprint {
	s := &Sprint{cfg: cfg, core: core}
	s.handle = core.BeforeMove().Register(s.prepare)
	return s
}

// Close detaches the modifier from the core.
func (s *Sprint) Close() error {
	s.core.BeforeMove().Unregister(s.handle)
	return nil
}

// Factor returns the multiplier applied for the given facing direction and velocity. Strafing or
// moving backwards yields 1.
func (s *Sprint) Factor(forward, velocity mgl32.Vec3) float32 {
	forwardFactor := game.Clamp01(forward.Dot(game.SafeNormalize(velocity)))
	return game.Lerp(1, s.cfg.Multiplier, forwardFactor)
}

func (s *Sprint) prepare(ctx *locomotion.TickContext) {
	if !ctx.Input.Sprint || ctx.Jumping {
		return
	}
	ctx.SpeedMultiplier *= s.Factor(ctx.Forward, ctx.Velocity)
}
