package modifier

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/strafekit/strafe/game"
	"github.com/strafekit/strafe/ground"
	"github.com/strafekit/strafe/input"
	"github.com/strafekit/strafe/locomotion"
)

type mockBody struct {
	grounded bool
	pos      mgl32.Vec3
}

func (b *mockBody) IsGrounded() bool           { return b.grounded }
func (b *mockBody) Move(delta mgl32.Vec3)      { b.pos = b.pos.Add(delta) }
func (b *mockBody) Position() mgl32.Vec3       { return b.pos }
func (b *mockBody) Radius() float32            { return 0.5 }
func (b *mockBody) Height() float32            { return 2 }
func (b *mockBody) SlopeLimit() float32        { return 45 }
func (b *mockBody) VelocityMagnitude() float32 { return 0 }

type mockCaster struct {
	normal mgl32.Vec3
}

func (c *mockCaster) RaycastDown(mgl32.Vec3, float32, ground.LayerMask) (ground.Hit, bool) {
	return ground.Hit{Normal: c.normal}, true
}

func (c *mockCaster) SpherecastDown(mgl32.Vec3, float32, float32, ground.LayerMask) (ground.Hit, bool) {
	return ground.Hit{Normal: c.normal}, true
}

type mockClock struct {
	now float64
	dt  float32
}

func (c *mockClock) Now() float64       { return c.now }
func (c *mockClock) DeltaTime() float32 { return c.dt }

type mockHeading struct{}

func (mockHeading) Forward() mgl32.Vec3 { return mgl32.Vec3{0, 0, 1} }
func (mockHeading) Right() mgl32.Vec3   { return mgl32.Vec3{1, 0, 0} }

type harness struct {
	core   *locomotion.Core
	body   *mockBody
	caster *mockCaster
	clock  *mockClock
	input  *input.Handler
	jump   *Jump
	sprint *Sprint
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		body:   &mockBody{grounded: true},
		caster: &mockCaster{normal: game.Up},
		clock:  &mockClock{dt: 0.01},
		input:  input.NewHandler(),
	}
	core, err := locomotion.New(locomotion.DefaultConfig(), locomotion.Environment{
		Body:    h.body,
		Caster:  h.caster,
		Clock:   h.clock,
		Heading: mockHeading{},
		Input:   h.input,
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error creating core: %v", err)
	}
	h.core = core
	h.jump = NewJump(core, h.input, h.clock, DefaultJumpConfig())
	h.sprint = NewSprint(core, DefaultSprintConfig())
	return h
}

// tickAt runs a tick at the given simulation time.
func (h *harness) tickAt(now float64) {
	h.clock.now = now
	h.core.Tick()
}

// pressAt presses (and keeps holding) the jump button at the given time.
func (h *harness) pressAt(now float64) {
	h.clock.now = now
	h.input.SetJump(false)
	h.input.SetJump(true)
}
