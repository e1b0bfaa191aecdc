package world

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/strafekit/strafe/game"
)

const step = 0.02

func newBody(t *testing.T, w *World, spawn mgl32.Vec3) *Body {
	t.Helper()
	b, err := NewBody(w, DefaultBodyConfig(), NewClock(step), spawn)
	if err != nil {
		t.Fatalf("unexpected error creating body: %v", err)
	}
	return b
}

func TestBodyWalksOnFlatGround(t *testing.T) {
	b := newBody(t, flatWorld(), mgl32.Vec3{})
	if !b.IsGrounded() {
		t.Fatalf("expected the body to spawn grounded")
	}
	if want := (mgl32.Vec3{0, 1, 0}); b.Position() != want {
		t.Fatalf("expected the centre at %v, got %v", want, b.Position())
	}

	b.Move(mgl32.Vec3{0.1, -0.02, 0})
	if !b.IsGrounded() || b.Feet() != (mgl32.Vec3{0.1, 0, 0}) {
		t.Fatalf("expected to walk along the floor, got %v (grounded=%v)", b.Feet(), b.IsGrounded())
	}
	if want := float32(0.1 / step); !mgl32.FloatEqualThreshold(b.VelocityMagnitude(), want, 1e-3) {
		t.Fatalf("expected speed %v, got %v", want, b.VelocityMagnitude())
	}
}

func TestBodyObstacles(t *testing.T) {
	tests := []struct {
		name     string
		obstacle cube.BBox
		wantFeet mgl32.Vec3
	}{
		{"step", cube.Box(1, 0, -5, 3, 0.2, 5), mgl32.Vec3{0.6, 0.2, 0}},
		{"wall", cube.Box(1, 0, -5, 3, 1, 5), mgl32.Vec3{0.5, 0, 0}},
		{"just too tall", cube.Box(1, 0, -5, 3, game.DefaultStepOffset+0.01, 5), mgl32.Vec3{0.5, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := flatWorld()
			w.AddBox(tt.obstacle)
			b := newBody(t, w, mgl32.Vec3{})
			b.Move(mgl32.Vec3{0.6, -0.02, 0})
			if !game.Vec3ApproxEq(b.Feet(), tt.wantFeet) {
				t.Fatalf("expected feet at %v, got %v", tt.wantFeet, b.Feet())
			}
			if !b.IsGrounded() {
				t.Fatalf("expected the body to stay grounded")
			}
		})
	}
}

func TestBodySlidesAlongWall(t *testing.T) {
	w := flatWorld()
	w.AddBox(cube.Box(1, 0, -5, 3, 1, 5))
	b := newBody(t, w, mgl32.Vec3{})
	b.Move(mgl32.Vec3{0.6, -0.02, 0.3})
	if want := (mgl32.Vec3{0.5, 0, 0.3}); !game.Vec3ApproxEq(b.Feet(), want) {
		t.Fatalf("expected the blocked axis only to stop, got %v", b.Feet())
	}
}

func TestBodyLedges(t *testing.T) {
	tests := []struct {
		name         string
		drop         float32
		wantGrounded bool
	}{
		// Within skin width + step offset the body stays on the ground.
		{"small step down", 0.2, true},
		{"cliff", 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := New()
			w.AddBox(cube.Box(-5, -1, -5, 0, 0, 5))
			w.AddBox(cube.Box(0, -2, -5, 5, -tt.drop, 5))
			b := newBody(t, w, mgl32.Vec3{-0.6, 0, 0})

			b.Move(mgl32.Vec3{1.2, -0.02, 0})
			if b.IsGrounded() != tt.wantGrounded {
				t.Fatalf("expected grounded=%v, got %v at %v", tt.wantGrounded, b.IsGrounded(), b.Feet())
			}
			if tt.wantGrounded && !mgl32.FloatEqualThreshold(b.Feet().Y(), -tt.drop, 1e-5) {
				t.Fatalf("expected to snap onto the lower floor, got %v", b.Feet())
			}
			if !tt.wantGrounded && !mgl32.FloatEqualThreshold(b.Feet().Y(), -0.02, 1e-5) {
				t.Fatalf("expected to start falling, got %v", b.Feet())
			}
		})
	}
}

func TestBodyDoesNotSnapWhileRising(t *testing.T) {
	b := newBody(t, flatWorld(), mgl32.Vec3{})
	b.Move(mgl32.Vec3{0, 0.1, 0})
	if b.IsGrounded() {
		t.Fatalf("expected a jump to leave the ground")
	}
	if !mgl32.FloatEqualThreshold(b.Feet().Y(), 0.1, 1e-6) {
		t.Fatalf("expected to rise to 0.1, got %v", b.Feet().Y())
	}
}

func TestBodyTeleport(t *testing.T) {
	tests := []struct {
		name         string
		to           mgl32.Vec3
		wantFeet     mgl32.Vec3
		wantGrounded bool
	}{
		{"onto a box", mgl32.Vec3{3, 0.55, 3}, mgl32.Vec3{3, 0.5, 3}, true},
		{"into the air", mgl32.Vec3{3, 2, 3}, mgl32.Vec3{3, 2, 3}, false},
		{"off the world", mgl32.Vec3{30, 0, 0}, mgl32.Vec3{30, 0, 0}, false},
		{"not finite", mgl32.Vec3{math32.NaN(), 0, 0}, mgl32.Vec3{0.6, 0, 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := flatWorld()
			w.AddBox(cube.Box(2, 0, 2, 4, 0.5, 4))
			b := newBody(t, w, mgl32.Vec3{})
			b.Move(mgl32.Vec3{0.6, 0, 0})

			b.Teleport(tt.to)
			if !game.Vec3ApproxEq(b.Feet(), tt.wantFeet) || b.IsGrounded() != tt.wantGrounded {
				t.Fatalf("expected feet at %v (grounded=%v), got %v (grounded=%v)", tt.wantFeet, tt.wantGrounded, b.Feet(), b.IsGrounded())
			}
		})
	}
}

func TestBodyHitsCeiling(t *testing.T) {
	w := flatWorld()
	w.AddBox(cube.Box(-5, 2.5, -5, 5, 3, 5))
	b := newBody(t, w, mgl32.Vec3{})
	b.Move(mgl32.Vec3{0, 1, 0})
	if !mgl32.FloatEqualThreshold(b.Feet().Y(), 0.5, 1e-5) {
		t.Fatalf("expected the head to stop at the ceiling, got feet at %v", b.Feet())
	}
}

func TestBodyWalksUpRamp(t *testing.T) {
	w := New()
	if err := w.AddRamp(NewRamp(mgl32.Vec2{-5, -5}, mgl32.Vec2{5, 5}, 0, 20, 90)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b := newBody(t, w, mgl32.Vec3{})
	if !b.IsGrounded() {
		t.Fatalf("expected to spawn on the ramp")
	}

	for iter := 0; iter < 10; iter++ {
		b.Move(mgl32.Vec3{0.1, -0.02, 0})
		if !b.IsGrounded() {
			t.Fatalf("expected to stay on the ramp, got %v", b.Feet())
		}
	}
	if want := math32.Tan(mgl32.DegToRad(20)); !mgl32.FloatEqualThreshold(b.Feet().Y(), want, 1e-4) {
		t.Fatalf("expected to climb to %v, got %v", want, b.Feet().Y())
	}
}

func TestBodyConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BodyConfig)
	}{
		{"zero radius", func(c *BodyConfig) { c.Radius = 0 }},
		{"short", func(c *BodyConfig) { c.Height = 0.5 }},
		{"negative step", func(c *BodyConfig) { c.StepOffset = -1 }},
		{"slope limit", func(c *BodyConfig) { c.SlopeLimit = 91 }},
		{"nan", func(c *BodyConfig) { c.SkinWidth = math32.NaN() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultBodyConfig()
			tt.mutate(&cfg)
			if cfg.Validate() == nil {
				t.Fatalf("expected %+v to be rejected", cfg)
			}
			if _, err := NewBody(New(), cfg, NewClock(step), mgl32.Vec3{}); err == nil {
				t.Fatalf("expected NewBody to reject %+v", cfg)
			}
		})
	}
	if err := DefaultBodyConfig().Validate(); err != nil {
		t.Fatalf("unexpected error for the default config: %v", err)
	}
}
