package locomotion

import (
	"io"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
	"github.com/strafekit/strafe/assert"
	"github.com/strafekit/strafe/game"
	"github.com/strafekit/strafe/ground"
	"github.com/strafekit/strafe/hook"
	"github.com/strafekit/strafe/input"
	"github.com/strafekit/strafe/oerror"
)

// Environment bundles the collaborators a Core drives and reads from.
type Environment struct {
	Body    Body
	Caster  ground.Caster
	Clock   Clock
	Heading Heading
	Input   *input.Handler
}

// Core is the locomotion state machine of a single character. Every call to Tick detects the
// ground, integrates gravity, lets the BeforeMove subscribers adjust the tick, computes the
// horizontal move and finally moves the body.
//
// A Core is not safe for concurrent use: ticks, hook registration and reads must all happen on the
// goroutine that drives the simulation.
type Core struct {
	cfg    Config
	env    Environment
	sensor *ground.Sensor
	log    *logrus.Logger

	// Dbg traces each step of a tick when enabled.
	Dbg *Debugger

	tick   uint64
	now    float64
	sample ground.Sample

	velocity          mgl32.Vec3
	moveDirection     mgl32.Vec3
	lastMoveDirection mgl32.Vec3
	speedMultiplier   float32

	grounded bool
	jumping  bool
	onSlope  bool
	sliding  bool

	beforeMove    *hook.Registry[func(*TickContext)]
	groundChanged *hook.Registry[func(bool)]
	afterMove     *hook.Registry[func(Snapshot)]
}

// New creates a Core. The configuration is validated once here; values with a fixed range are
// clamped and logged instead of rejected. A nil logger discards all output.
func New(cfg Config, env Environment, log *logrus.Logger) (*Core, error) {
	if log == nil {
		log = logrus.New()
		log.Out = io.Discard
	}
	switch {
	case env.Body == nil:
		return nil, oerror.New(game.ErrorMissingBody)
	case env.Caster == nil:
		return nil, oerror.New(game.ErrorMissingCaster)
	case env.Clock == nil:
		return nil, oerror.New(game.ErrorMissingClock)
	case env.Heading == nil:
		return nil, oerror.New(game.ErrorMissingHeading)
	case env.Input == nil:
		return nil, oerror.New(game.ErrorMissingInput)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.Sanitize(log)

	return &Core{
		cfg:             cfg,
		env:             env,
		sensor:          ground.NewSensor(env.Caster, cfg.Ground),
		log:             log,
		Dbg:             &Debugger{log: log},
		speedMultiplier: 1,
		beforeMove:      hook.NewRegistry[func(*TickContext)](),
		groundChanged:   hook.NewRegistry[func(bool)](),
		afterMove:       hook.NewRegistry[func(Snapshot)](),
	}, nil
}

// BeforeMove returns the registry of subscribers run every tick before the move direction is
// computed. This is where modifiers attach.
func (c *Core) BeforeMove() *hook.Registry[func(*TickContext)] {
	return c.beforeMove
}

// GroundStateChanged returns the registry notified whenever the grounded flag flips.
func (c *Core) GroundStateChanged() *hook.Registry[func(bool)] {
	return c.groundChanged
}

// AfterMove returns the registry notified with a snapshot after the body has been moved.
func (c *Core) AfterMove() *hook.Registry[func(Snapshot)] {
	return c.afterMove
}

// Config returns the sanitised configuration of the core.
func (c *Core) Config() Config {
	return c.cfg
}

// Tick runs a single simulation step.
func (c *Core) Tick() {
	c.tick++
	c.now = c.env.Clock.Now()
	dt := c.env.Clock.DeltaTime()
	if !game.IsFinite(dt) || dt < 0 {
		c.Dbg.Notify(true, "tick %d: invalid delta time %v treated as 0", c.tick, dt)
		dt = 0
	}

	c.Dbg.Notify(true, "BEGIN tick %d (t=%.4f dt=%.4f)", c.tick, c.now, dt)
	defer c.Dbg.Notify(true, "END tick %d", c.tick)

	c.updateGround()
	c.updateGravity(dt)
	c.updateMovement(dt)
}

func (c *Core) updateGround() {
	body := c.env.Body
	grounded := body.IsGrounded()
	if grounded {
		radius, halfHeight := body.Radius(), body.Height()/2
		foot := body.Position().Sub(game.Up.Mul(halfHeight - radius))
		c.sample = c.sensor.Sample(foot, radius, halfHeight, body.SlopeLimit(), c.sample)
	} else {
		c.sample = c.sensor.Airborne(c.sample)
	}
	c.onSlope, c.sliding = c.sample.OnSlope, c.sample.Sliding
	assert.IsTrue(!c.sliding || c.onSlope, "sliding without being on a slope (sample=%+v)", c.sample)
	c.Dbg.Notify(grounded, "ground: source=%v angle=%.2f onSlope=%v sliding=%v sticky=%v", c.sample.Source, c.sample.Angle, c.onSlope, c.sliding, c.sample.Sticky)

	if grounded != c.grounded {
		c.grounded = grounded
		c.Dbg.Notify(true, "grounded state changed: %v", grounded)
		c.groundChanged.Each(func(f func(bool)) { f(grounded) })
	}
}

func (c *Core) updateGravity(dt float32) {
	gravityStep := game.Gravity * c.cfg.Mass * c.cfg.GravityMultiplier * dt

	switch {
	case c.onSlope && c.grounded:
		// The downhill force uses the same scale as gravity so that sliding is independent of the
		// tick rate. The vertical component is assigned rather than accumulated, keeping the capsule
		// pressed against the slope.
		slide := game.SlideDirection(c.sample.Normal).Mul(math32.Abs(c.cfg.SlopeSlide) * -gravityStep)
		c.velocity[0] += slide.X()
		c.velocity[2] += slide.Z()
		c.velocity[1] = c.cfg.SlopeSlide + gravityStep
		if c.sliding {
			c.clampSlideSpeed()
		}
		c.Dbg.Notify(true, "slope gravity applied: %v", c.velocity)
	case c.grounded:
		c.velocity[1] = c.cfg.GroundSnapSpeed
	default:
		c.velocity[1] += gravityStep
		c.Dbg.Notify(true, "airborne gravity applied: %v", c.velocity)
	}

	if finite := game.FiniteVec3(c.velocity); finite != c.velocity {
		c.log.Warnf(game.ErrorNonFiniteVelocity, c.velocity, c.tick)
		c.velocity = finite
	}
}

// clampSlideSpeed limits the horizontal slide speed to the configured maximum once it has exceeded
// the minimum. Slower slides are left alone.
func (c *Core) clampSlideSpeed() {
	// MaxSlideSpeed >= MinSlideSpeed is enforced by Validate, so anything at or below the maximum,
	// including every slide slower than the minimum, is left untouched.
	hz := game.Vec3HzLen(c.velocity)
	if hz <= c.cfg.MaxSlideSpeed {
		return
	}
	scale := c.cfg.MaxSlideSpeed / hz
	c.velocity[0] *= scale
	c.velocity[2] *= scale
}

func (c *Core) updateMovement(dt float32) {
	in := c.env.Input.State()
	forward, right := c.axes()

	c.speedMultiplier = 1
	ctx := &TickContext{
		Now:               c.now,
		DeltaTime:         dt,
		Tick:              c.tick,
		Grounded:          c.grounded,
		OnSlope:           c.onSlope,
		Sliding:           c.sliding,
		Input:             in,
		Forward:           forward,
		Mass:              c.cfg.Mass,
		GravityMultiplier: c.cfg.GravityMultiplier,
		Velocity:          c.velocity,
		Jumping:           c.jumping,
		SpeedMultiplier:   c.speedMultiplier,
	}
	c.beforeMove.Each(func(f func(*TickContext)) { f(ctx) })
	c.applyContext(ctx)

	dir := c.inputDirection(in.Movement, forward, right).Mul(c.cfg.MovementSpeed * c.speedMultiplier)
	if c.grounded {
		c.moveDirection = dir
		if !c.jumping {
			c.lastMoveDirection = dir
		}
	} else {
		c.moveDirection[0] = game.Lerp(c.lastMoveDirection.X(), dir.X(), c.cfg.MidAirControl)
		c.moveDirection[2] = game.Lerp(c.lastMoveDirection.Z(), dir.Z(), c.cfg.MidAirControl)
	}

	// Sliding bypasses smoothing so the slope force is not damped.
	if !c.sliding {
		factor := c.cfg.Acceleration * dt
		c.velocity[0] = game.Lerp(c.velocity.X(), c.moveDirection.X(), factor)
		c.velocity[2] = game.Lerp(c.velocity.Z(), c.moveDirection.Z(), factor)
	}

	if finite := game.FiniteVec3(c.velocity); finite != c.velocity {
		c.log.Warnf(game.ErrorNonFiniteVelocity, c.velocity, c.tick)
		c.velocity = finite
	}
	c.env.Body.Move(c.velocity.Mul(dt))
	c.Dbg.Notify(true, "moved by %v (vel=%v mult=%.3f)", c.velocity.Mul(dt), c.velocity, c.speedMultiplier)

	if c.afterMove.Len() > 0 {
		snap := c.Snapshot()
		c.afterMove.Each(func(f func(Snapshot)) { f(snap) })
	}
}

// applyContext copies the fields subscribers may write back into the core.
func (c *Core) applyContext(ctx *TickContext) {
	if v := game.FiniteVec3(ctx.Velocity); v != ctx.Velocity {
		c.log.Warnf(game.ErrorNonFiniteModifierVel, ctx.Velocity, c.tick)
	} else {
		c.velocity = v
	}

	if c.jumping && !ctx.Jumping && !c.grounded {
		c.Dbg.Notify(true, "rejected clearing the jumping flag while airborne")
	} else {
		c.jumping = ctx.Jumping
	}

	c.speedMultiplier = ctx.SpeedMultiplier
	if !game.IsFinite(c.speedMultiplier) {
		c.log.Warnf(game.ErrorNonFiniteMultiplier, c.speedMultiplier, c.tick)
		c.speedMultiplier = 1
	}
}

// axes returns the heading's forward and right vectors flattened onto the horizontal plane. A
// non-finite heading yields zero axes, so the character does not move horizontally.
func (c *Core) axes() (forward, right mgl32.Vec3) {
	f, r := game.FiniteVec3(c.env.Heading.Forward()), game.FiniteVec3(c.env.Heading.Right())
	return game.SafeNormalize(mgl32.Vec3{f.X(), 0, f.Z()}), game.SafeNormalize(mgl32.Vec3{r.X(), 0, r.Z()})
}

// inputDirection returns the normalised heading-relative direction of the move axis.
func (c *Core) inputDirection(movement mgl32.Vec2, forward, right mgl32.Vec3) mgl32.Vec3 {
	movement = game.FiniteVec2(movement)
	return game.SafeNormalize(forward.Mul(movement.Y()).Add(right.Mul(movement.X())))
}

// Snapshot returns the current read-only state of the core.
func (c *Core) Snapshot() Snapshot {
	in := c.env.Input.State()
	speed := c.env.Body.VelocityMagnitude()
	return Snapshot{
		Tick:            c.tick,
		Time:            c.now,
		Grounded:        c.grounded,
		OnSlope:         c.onSlope,
		Sliding:         c.sliding,
		Jumping:         c.jumping,
		Velocity:        c.velocity,
		SpeedMultiplier: c.speedMultiplier,
		BodySpeed:       speed,
		IsInputMoving:   speed > game.MovingThreshold && in.IsMoving(),
		IsSprinting:     c.grounded && in.Sprint,
		GroundSource:    c.sample.Source,
		Position:        c.env.Body.Position(),
	}
}

// Grounded returns whether the body touched the ground at the start of the last tick.
func (c *Core) Grounded() bool {
	return c.grounded
}

// OnSlope returns whether the character stands on a surface steeper than the slope limit.
func (c *Core) OnSlope() bool {
	return c.onSlope
}

// Sliding returns whether slide forces are being applied.
func (c *Core) Sliding() bool {
	return c.sliding
}

// Jumping returns whether a jump is in progress.
func (c *Core) Jumping() bool {
	return c.jumping
}

// Velocity returns the world-space velocity of the character.
func (c *Core) Velocity() mgl32.Vec3 {
	return c.velocity
}

// SetVelocity overrides the velocity of the character, for example after a teleport or knockback.
// Non-finite velocities are replaced with zero.
func (c *Core) SetVelocity(v mgl32.Vec3) {
	c.velocity = game.FiniteVec3(v)
}

// SpeedMultiplier returns the speed multiplier computed during the last tick.
func (c *Core) SpeedMultiplier() float32 {
	return c.speedMultiplier
}

// GroundSample returns the ground sample of the last tick.
func (c *Core) GroundSample() ground.Sample {
	return c.sample
}

// MoveDirection returns the target horizontal velocity of the last tick.
func (c *Core) MoveDirection() mgl32.Vec3 {
	return c.moveDirection
}
