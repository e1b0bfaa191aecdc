package world

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/strafekit/strafe/game"
	"github.com/strafekit/strafe/ground"
)

func flatWorld() *World {
	w := New()
	w.AddBox(cube.Box(-10, -1, -10, 10, 0, 10))
	return w
}

func TestRaycastDown(t *testing.T) {
	w := flatWorld()
	tests := []struct {
		name    string
		origin  mgl32.Vec3
		exclude ground.LayerMask
		wantHit bool
		wantDst float32
	}{
		{"above floor", mgl32.Vec3{1, 1, 2}, ground.LayerPlayer, true, 1},
		{"out of reach", mgl32.Vec3{1, 2, 2}, ground.LayerPlayer, false, 0},
		{"outside footprint", mgl32.Vec3{11, 1, 0}, ground.LayerPlayer, false, 0},
		{"excluded layer", mgl32.Vec3{1, 1, 2}, ground.LayerDefault, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := w.RaycastDown(tt.origin, 1.5, tt.exclude)
			if ok != tt.wantHit {
				t.Fatalf("expected hit=%v, got %v", tt.wantHit, ok)
			}
			if !ok {
				return
			}
			if !mgl32.FloatEqualThreshold(hit.Distance, tt.wantDst, 1e-5) {
				t.Fatalf("expected distance %v, got %v", tt.wantDst, hit.Distance)
			}
			if hit.Normal != game.Up {
				t.Fatalf("expected an upward normal, got %v", hit.Normal)
			}
			if want := (mgl32.Vec3{tt.origin.X(), 0, tt.origin.Z()}); !game.Vec3ApproxEq(hit.Point, want) {
				t.Fatalf("expected hit point %v, got %v", want, hit.Point)
			}
		})
	}
}

func TestRaycastDownPicksClosestSurface(t *testing.T) {
	w := flatWorld()
	w.AddBox(cube.Box(-1, 0, -1, 1, 0.5, 1))
	hit, ok := w.RaycastDown(mgl32.Vec3{0, 1, 0}, 1.5, ground.LayerPlayer)
	if !ok || !mgl32.FloatEqualThreshold(hit.Distance, 0.5, 1e-5) {
		t.Fatalf("expected to hit the upper box at 0.5, got %+v (ok=%v)", hit, ok)
	}
}

func TestRamp(t *testing.T) {
	w := New()
	if err := w.AddRamp(NewRamp(mgl32.Vec2{-5, -5}, mgl32.Vec2{5, 5}, 0, 30, 0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := w.Ramps()[0]

	h, ok := r.HeightAt(0, 1)
	if want := math32.Tan(mgl32.DegToRad(30)); !ok || !mgl32.FloatEqualThreshold(h, want, 1e-5) {
		t.Fatalf("expected height %v, got %v (ok=%v)", want, h, ok)
	}
	if _, ok := r.HeightAt(6, 0); ok {
		t.Fatalf("expected no height outside the footprint")
	}

	hit, ok := w.RaycastDown(mgl32.Vec3{0, 2, 1}, 3, ground.LayerPlayer)
	if !ok {
		t.Fatalf("expected the ray to hit the ramp")
	}
	if angle := game.AngleDeg(hit.Normal, game.Up); !mgl32.FloatEqualThreshold(angle, 30, 1e-3) {
		t.Fatalf("expected a 30° normal, got %v", angle)
	}
	if !mgl32.FloatEqualThreshold(hit.Distance, 2-h, 1e-5) {
		t.Fatalf("expected distance %v, got %v", 2-h, hit.Distance)
	}
}

func TestAddRampRejectsInvalidRamps(t *testing.T) {
	w := New()
	tests := []Ramp{
		{Min: mgl32.Vec2{-1, -1}, Max: mgl32.Vec2{1, 1}, Normal: mgl32.Vec3{1, 0, 0}},
		{Min: mgl32.Vec2{-1, -1}, Max: mgl32.Vec2{1, 1}, Normal: mgl32.Vec3{0, -1, 0}},
		{Min: mgl32.Vec2{-1, -1}, Max: mgl32.Vec2{1, 1}, Normal: mgl32.Vec3{math32.NaN(), 1, 0}},
		{Min: mgl32.Vec2{1, 1}, Max: mgl32.Vec2{-1, -1}, Normal: game.Up},
	}
	for i, r := range tests {
		if err := w.AddRamp(r); err == nil {
			t.Fatalf("ramp %d: expected an error", i)
		}
	}
	if len(w.Ramps()) != 0 {
		t.Fatalf("expected no ramps to be added")
	}
}

func TestSpherecastDown(t *testing.T) {
	ledge := New()
	ledge.AddBox(cube.Box(-5, -1, -5, 0, 0, 5))

	ramp := New()
	if err := ramp.AddRamp(NewRamp(mgl32.Vec2{-5, -5}, mgl32.Vec2{5, 5}, 0, 30, 0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	const radius = 0.49
	tests := []struct {
		name      string
		world     *World
		origin    mgl32.Vec3
		wantHit   bool
		wantAngle float32
	}{
		{"flat", flatWorld(), mgl32.Vec3{0, 0.5, 0}, true, 0},
		{"too high", flatWorld(), mgl32.Vec3{0, 0.6, 0}, false, 0},
		// Centre 0.3 past the edge: the normal tilts by asin(0.3/0.49).
		{"rim", ledge, mgl32.Vec3{0.3, 0.4, 0}, true, mgl32.RadToDeg(math32.Asin(0.3 / radius))},
		{"past the rim", ledge, mgl32.Vec3{0.6, 0.4, 0}, false, 0},
		{"ramp", ramp, mgl32.Vec3{0, 0.58, 0}, true, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := tt.world.SpherecastDown(tt.origin, radius, 0.05, ground.LayerPlayer)
			if ok != tt.wantHit {
				t.Fatalf("expected hit=%v, got %v (%+v)", tt.wantHit, ok, hit)
			}
			if !ok {
				return
			}
			if !mgl32.FloatEqualThreshold(hit.Normal.Len(), 1, 1e-4) {
				t.Fatalf("expected a unit normal, got %v", hit.Normal)
			}
			if angle := game.AngleDeg(hit.Normal, game.Up); !mgl32.FloatEqualThreshold(angle, tt.wantAngle, 1e-2) {
				t.Fatalf("expected a %v° normal, got %v", tt.wantAngle, angle)
			}
			if hit.Distance < 0 || hit.Distance > 0.05 {
				t.Fatalf("distance %v outside the probe", hit.Distance)
			}
		})
	}
}

func TestRimNormalTiltsAwayFromBox(t *testing.T) {
	w := New()
	w.AddBox(cube.Box(-5, -1, -5, 0, 0, 5))
	hit, ok := w.SpherecastDown(mgl32.Vec3{0.3, 0.4, 0}, 0.49, 0.05, ground.LayerPlayer)
	if !ok || hit.Normal.X() <= 0 {
		t.Fatalf("expected the normal to point away from the box, got %v", hit.Normal)
	}
}

func TestClock(t *testing.T) {
	c := NewClock(0.02)
	for iter := 0; iter < 50; iter++ {
		c.Advance()
	}
	if c.Tick() != 50 || !mgl32.FloatEqualThreshold(float32(c.Now()), 1, 1e-5) {
		t.Fatalf("expected t=1 after 50 ticks, got %v at tick %d", c.Now(), c.Tick())
	}
	if c.DeltaTime() != 0.02 {
		t.Fatalf("expected a fixed step, got %v", c.DeltaTime())
	}
}
