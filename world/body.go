package world

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/strafekit/strafe/game"
	"github.com/strafekit/strafe/locomotion"
	"github.com/strafekit/strafe/oerror"
)

// BodyConfig describes the capsule of a Body.
type BodyConfig struct {
	Radius float32
	Height float32
	// StepOffset is the tallest obstacle the body climbs without jumping.
	StepOffset float32
	// SkinWidth is how far above the ground a body that was grounded may hover and still be
	// snapped down onto it.
	SkinWidth  float32
	SlopeLimit float32
}

// DefaultBodyConfig ...
func DefaultBodyConfig() BodyConfig {
	return BodyConfig{
		Radius:     game.DefaultCapsuleRadius,
		Height:     game.DefaultCapsuleHeight,
		StepOffset: game.DefaultStepOffset,
		SkinWidth:  game.DefaultSkinWidth,
		SlopeLimit: game.DefaultSlopeLimit,
	}
}

// Validate ...
func (c BodyConfig) Validate() error {
	for _, v := range []float32{c.Radius, c.Height, c.StepOffset, c.SkinWidth, c.SlopeLimit} {
		if !game.IsFinite(v) {
			return oerror.New("world: body dimensions must be finite, got %+v", c)
		}
	}
	switch {
	case c.Radius <= 0:
		return oerror.New("world: body radius must be positive, got %v", c.Radius)
	case c.Height < 2*c.Radius:
		return oerror.New("world: body height %v is shorter than its diameter %v", c.Height, 2*c.Radius)
	case c.StepOffset < 0 || c.SkinWidth < 0:
		return oerror.New("world: step offset and skin width must not be negative")
	case c.SlopeLimit < 0 || c.SlopeLimit > 90:
		return oerror.New("world: slope limit must be within [0, 90], got %v", c.SlopeLimit)
	}
	return nil
}

// Body is a kinematic capsule moving through a World. Collisions are resolved against the
// capsule's bounding box: it climbs boxes up to StepOffset high, is blocked by taller ones, stands
// on ramps and stays pressed to the ground while walking down steps and slopes.
type Body struct {
	cfg   BodyConfig
	world *World
	clock locomotion.Clock

	// feet is the centre of the bottom of the capsule.
	feet     mgl32.Vec3
	grounded bool
	speed    float32
}

// NewBody places a body with its feet at spawn. The body starts grounded if it stands on a surface.
func NewBody(w *World, cfg BodyConfig, clock locomotion.Clock, spawn mgl32.Vec3) (*Body, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if game.FiniteVec3(spawn) != spawn {
		return nil, oerror.New("world: spawn position %v must be finite", spawn)
	}
	b := &Body{cfg: cfg, world: w, clock: clock}
	b.place(spawn)
	return b, nil
}

// place puts the feet at pos, settling them onto a surface no more than SkinWidth below.
func (b *Body) place(pos mgl32.Vec3) {
	b.feet, b.grounded, b.speed = pos, false, 0
	if g, ok := b.support(pos); ok && pos.Y()-g <= b.cfg.SkinWidth && pos.Y() >= g {
		b.feet[1], b.grounded = g, true
	}
}

// IsGrounded returns whether the last move ended on the ground.
func (b *Body) IsGrounded() bool {
	return b.grounded
}

// Position returns the centre of the capsule.
func (b *Body) Position() mgl32.Vec3 {
	return b.feet.Add(game.Up.Mul(b.cfg.Height / 2))
}

// Feet returns the centre of the bottom of the capsule.
func (b *Body) Feet() mgl32.Vec3 {
	return b.feet
}

func (b *Body) Radius() float32     { return b.cfg.Radius }
func (b *Body) Height() float32     { return b.cfg.Height }
func (b *Body) SlopeLimit() float32 { return b.cfg.SlopeLimit }

// VelocityMagnitude returns the speed of the body during the last move, from the distance it
// actually travelled.
func (b *Body) VelocityMagnitude() float32 {
	return b.speed
}

// Teleport places the body at the given feet position without resolving collisions against the
// way there. Like NewBody, the body is grounded if it lands within SkinWidth of a surface. A
// non-finite position is ignored.
func (b *Body) Teleport(feet mgl32.Vec3) {
	if game.FiniteVec3(feet) != feet {
		return
	}
	b.place(feet)
}

// Move moves the body by delta, resolving the horizontal axes before the vertical one.
func (b *Body) Move(delta mgl32.Vec3) {
	delta = game.FiniteVec3(delta)
	start := b.feet

	b.feet[0] = b.moveAxis(0, delta.X())
	b.feet[2] = b.moveAxis(2, delta.Z())
	b.moveVertical(delta.Y())

	if dt := b.clock.DeltaTime(); dt > 0 {
		b.speed = b.feet.Sub(start).Len() / dt
	} else {
		b.speed = 0
	}
}

// bbox returns the bounding box of the body with its feet at feet, lifted by lift.
func (b *Body) bbox(feet mgl32.Vec3, lift float32) cube.BBox {
	return game.AABBFromDimensions(b.cfg.Radius*2, b.cfg.Height-lift).Translate(feet.Add(game.Up.Mul(lift)))
}

// contactEpsilon keeps surfaces the body merely touches from counting as overlaps.
const contactEpsilon = 1e-3

// moveAxis moves the body along a horizontal axis, stepping onto low boxes. It returns the new
// coordinate on that axis and may raise the feet when stepping.
func (b *Body) moveAxis(axis int, d float32) float32 {
	if d == 0 {
		return b.feet[axis]
	}
	target := b.feet
	target[axis] += d

	limit, blocked := target[axis], false
	stepTo := b.feet.Y()
	for _, box := range b.world.boxes {
		if !box.BBox.IntersectsWith(b.bbox(target, contactEpsilon)) {
			continue
		}
		if top := box.BBox.Max().Y(); top-b.feet.Y() > b.cfg.StepOffset {
			limit, blocked = b.clampToBox(axis, d, limit, box.BBox), true
		} else {
			stepTo = math32.Max(stepTo, top)
		}
	}
	if blocked {
		return limit
	}
	if stepTo > b.feet.Y() {
		stepped := target
		stepped[1] = stepTo
		if b.overlapsAny(stepped) {
			return b.feet[axis]
		}
		b.feet[1] = stepTo
	}
	return target[axis]
}

// clampToBox limits a move along the axis so the body stops where it touches the box. The body
// never moves backwards.
func (b *Body) clampToBox(axis int, d, limit float32, bb cube.BBox) float32 {
	current := b.feet[axis]
	if d > 0 {
		return math32.Min(limit, math32.Max(current, bb.Min()[axis]-b.cfg.Radius))
	}
	return math32.Max(limit, math32.Min(current, bb.Max()[axis]+b.cfg.Radius))
}

func (b *Body) overlapsAny(feet mgl32.Vec3) bool {
	bb := b.bbox(feet, contactEpsilon)
	for _, box := range b.world.boxes {
		if box.BBox.IntersectsWith(bb) {
			return true
		}
	}
	return false
}

func (b *Body) moveVertical(dy float32) {
	wasGrounded := b.grounded
	target := b.feet.Y() + dy

	if dy > 0 {
		target = b.ceiling(target)
	}

	g, ok := b.support(b.feet)
	switch {
	case ok && target <= g:
		b.feet[1], b.grounded = g, true
	case ok && wasGrounded && dy <= 0 && target-g <= b.cfg.SkinWidth+b.cfg.StepOffset:
		// Walking down a step or a slope: stay on the ground instead of falling off each frame.
		b.feet[1], b.grounded = g, true
	default:
		b.feet[1], b.grounded = target, false
	}
}

// ceiling clamps an upward move so the head stops below any box above it.
func (b *Body) ceiling(target float32) float32 {
	head := b.feet.Y() + b.cfg.Height
	footprint := b.bbox(b.feet, 0)
	for _, box := range b.world.boxes {
		bottom := box.BBox.Min().Y()
		if bottom < head-contactEpsilon || !game.OverlapsXZ(footprint, box.BBox, contactEpsilon) {
			continue
		}
		target = math32.Min(target, bottom-b.cfg.Height)
	}
	return target
}

// support returns the height of the highest surface the body at feet can stand on: boxes whose top
// is at or below the feet, and ramps under the centre of the body rising no more than a step.
func (b *Body) support(feet mgl32.Vec3) (float32, bool) {
	best, found := float32(math.Inf(-1)), false
	footprint := b.bbox(feet, 0)
	for _, box := range b.world.boxes {
		top := box.BBox.Max().Y()
		if top > feet.Y()+contactEpsilon || !game.OverlapsXZ(footprint, box.BBox, contactEpsilon) {
			continue
		}
		if top > best {
			best, found = top, true
		}
	}
	for _, r := range b.world.ramps {
		h, ok := r.HeightAt(feet.X(), feet.Z())
		if !ok || h > feet.Y()+b.cfg.StepOffset {
			continue
		}
		if h > best {
			best, found = h, true
		}
	}
	return best, found
}
