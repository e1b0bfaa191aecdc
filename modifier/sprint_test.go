package modifier

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/strafekit/strafe/game"
	"github.com/strafekit/strafe/input"
	"github.com/strafekit/strafe/locomotion"
)

func TestSprintFactor(t *testing.T) {
	s := &Sprint{cfg: DefaultSprintConfig()}
	forward := mgl32.Vec3{0, 0, 1}

	tests := []struct {
		name     string
		velocity mgl32.Vec3
		want     float32
	}{
		{"forward", mgl32.Vec3{0, 0, 5}, game.DefaultSprintMultiplier},
		{"strafe", mgl32.Vec3{3, 0, 0}, 1},
		{"backward", mgl32.Vec3{0, 0, -3}, 1},
		{"diagonal backward", mgl32.Vec3{2, 0, -2}, 1},
		{"standing", mgl32.Vec3{}, 1},
		{"diagonal", mgl32.Vec3{1, 0, 1}, game.Lerp(1, game.DefaultSprintMultiplier, 0.70710678)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Factor(forward, tt.velocity); !mgl32.FloatEqualThreshold(got, tt.want, 1e-5) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSprintIgnoredWhileJumping(t *testing.T) {
	s := &Sprint{cfg: DefaultSprintConfig()}
	ctx := &locomotion.TickContext{
		Input:           input.State{Sprint: true},
		Forward:         mgl32.Vec3{0, 0, 1},
		Velocity:        mgl32.Vec3{0, 0, 5},
		Jumping:         true,
		SpeedMultiplier: 1,
	}
	s.prepare(ctx)
	if ctx.SpeedMultiplier != 1 {
		t.Fatalf("expected no sprint while jumping, got %v", ctx.SpeedMultiplier)
	}

	ctx.Jumping = false
	ctx.Input.Sprint = false
	s.prepare(ctx)
	if ctx.SpeedMultiplier != 1 {
		t.Fatalf("expected no sprint without the button, got %v", ctx.SpeedMultiplier)
	}
}

func TestSprintComposesMultiplicatively(t *testing.T) {
	s := &Sprint{cfg: DefaultSprintConfig()}
	ctx := &locomotion.TickContext{
		Input:           input.State{Sprint: true},
		Forward:         mgl32.Vec3{0, 0, 1},
		Velocity:        mgl32.Vec3{0, 0, 5},
		SpeedMultiplier: 0.5,
	}
	s.prepare(ctx)
	if want := 0.5 * game.DefaultSprintMultiplier; !mgl32.FloatEqualThreshold(ctx.SpeedMultiplier, want, 1e-5) {
		t.Fatalf("expected %v, got %v", want, ctx.SpeedMultiplier)
	}
}

func TestSprintBuildsUpMovingForward(t *testing.T) {
	h := newHarness(t)
	h.input.SetMovement(mgl32.Vec2{0, 1})
	h.input.SetSprint(true)

	for i := 0; i < 300; i++ {
		h.tickAt(float64(i) * 0.01)
	}

	if got := h.core.SpeedMultiplier(); got < 1.45 || got > game.DefaultSprintMultiplier {
		t.Fatalf("expected the multiplier to approach %v, got %v", game.DefaultSprintMultiplier, got)
	}
	if vz := h.core.Velocity().Z(); vz <= game.DefaultMovementSpeed {
		t.Fatalf("expected sprinting to exceed the walk speed, got %v", vz)
	}
}
