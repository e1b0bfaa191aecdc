package presentation

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/strafekit/strafe/game"
	"github.com/strafekit/strafe/locomotion"
)

func TestLookClampsPitch(t *testing.T) {
	l := NewLook(DefaultLookConfig())
	l.Update(mgl32.Vec2{0, 100000})
	if l.Pitch() != game.DefaultMaxPitch {
		t.Fatalf("expected pitch to clamp at %v, got %v", game.DefaultMaxPitch, l.Pitch())
	}
	l.Update(mgl32.Vec2{0, -100000})
	if l.Pitch() != -game.DefaultMaxPitch {
		t.Fatalf("expected pitch to clamp at %v, got %v", -game.DefaultMaxPitch, l.Pitch())
	}
}

func TestLookHeading(t *testing.T) {
	tests := []struct {
		name           string
		yawDelta       float32
		forward, right mgl32.Vec3
	}{
		{"identity", 0, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}},
		{"quarter turn", 90 / game.DefaultMouseSensitivity, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
		{"half turn", 180 / game.DefaultMouseSensitivity, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLook(DefaultLookConfig())
			l.Update(mgl32.Vec2{tt.yawDelta, 30})
			if !game.Vec3ApproxEq(l.Forward(), tt.forward) {
				t.Fatalf("expected forward %v, got %v", tt.forward, l.Forward())
			}
			if !game.Vec3ApproxEq(l.Right(), tt.right) {
				t.Fatalf("expected right %v, got %v", tt.right, l.Right())
			}
			// The body heading ignores pitch, the camera orientation does not.
			if got := l.Orientation().Rotate(mgl32.Vec3{0, 0, 1}); got.Y() <= 0 {
				t.Fatalf("expected the camera to look up, got %v", got)
			}
		})
	}
}

func TestLookWrapsYaw(t *testing.T) {
	tests := []struct {
		name    string
		set     float32
		delta   float32
		wantYaw float32
	}{
		{"past a full turn", 350, 20 / game.DefaultMouseSensitivity, 10},
		{"below zero", 10, -20 / game.DefaultMouseSensitivity, 350},
		{"many turns", 0, 36000 / game.DefaultMouseSensitivity, 0},
		{"set negative", -90, 0, 270},
		{"set large", 720 + 45, 0, 45},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLook(DefaultLookConfig())
			l.SetRotation(tt.set, 0)
			l.Update(mgl32.Vec2{tt.delta, 0})
			if l.Yaw() < 0 || l.Yaw() >= 360 {
				t.Fatalf("expected yaw within [0, 360), got %v", l.Yaw())
			}
			// 0 and 360 are the same heading, so compare directions rather than angles.
			want, _ := game.DirectionFromYaw(tt.wantYaw)
			if !mgl32.FloatEqualThreshold(l.Forward().Dot(want), 1, 1e-4) {
				t.Fatalf("expected a yaw of %v, got %v", tt.wantYaw, l.Yaw())
			}
		})
	}
}

func TestLookIgnoresNonFiniteInput(t *testing.T) {
	l := NewLook(DefaultLookConfig())
	l.Update(mgl32.Vec2{math32.NaN(), math32.Inf(1)})
	if l.Yaw() != 0 || l.Pitch() != 0 {
		t.Fatalf("expected non-finite input to be ignored, got yaw=%v pitch=%v", l.Yaw(), l.Pitch())
	}
}

func TestHeadBob(t *testing.T) {
	b := NewHeadBob(DefaultHeadBobConfig())
	walk := locomotion.Snapshot{Grounded: true, Velocity: mgl32.Vec3{0, -1, 3}}

	const dt = 0.01
	got := b.Update(walk, dt)
	want := math32.Sin(dt*game.DefaultBobFrequency) * game.DefaultBobAmplitude
	if !mgl32.FloatEqualThreshold(got, want, 1e-6) {
		t.Fatalf("expected offset %v, got %v", want, got)
	}

	// Sprinting bobs faster and higher.
	sprint := walk
	sprint.IsSprinting = true
	s := NewHeadBob(DefaultHeadBobConfig())
	var peak float32
	for iter := 0; iter < 100; iter++ {
		peak = max(peak, s.Update(sprint, dt))
	}
	if want := game.DefaultBobAmplitude * game.DefaultBobSprintMultiplier; !mgl32.FloatEqualThreshold(peak, want, 1e-3) {
		t.Fatalf("expected a sprint peak of %v, got %v", want, peak)
	}

	// Standing still eases back to rest.
	idle := locomotion.Snapshot{Grounded: true, Velocity: mgl32.Vec3{0.05, -1, 0}}
	for iter := 0; iter < 200; iter++ {
		s.Update(idle, dt)
	}
	if after := math32.Abs(s.Offset()); after > 1e-4 {
		t.Fatalf("expected the offset to return to rest, got %v", after)
	}
}

func TestHeadBobAirborne(t *testing.T) {
	b := NewHeadBob(DefaultHeadBobConfig())
	if got := b.Update(locomotion.Snapshot{Velocity: mgl32.Vec3{5, 0, 5}}, 0.01); got != 0 {
		t.Fatalf("expected no bob while airborne, got %v", got)
	}
}

type mockSink struct {
	playing bool
	played  []int
}

func (s *mockSink) Playing() bool { return s.playing }
func (s *mockSink) PlayOneShot(clip int) {
	s.played = append(s.played, clip)
}

func TestFootsteps(t *testing.T) {
	walking := locomotion.Snapshot{Grounded: true, IsInputMoving: true, Velocity: mgl32.Vec3{0, -1, 4}}
	sprinting := walking
	sprinting.IsSprinting = true

	tests := []struct {
		name    string
		snap    locomotion.Snapshot
		playing bool
		want    int
	}{
		// 0.9s, 1.8s, ..., 9.9s
		{"walking", walking, false, 11},
		// 0.6s, 1.2s, ..., 9.6s
		{"sprinting", sprinting, false, 16},
		{"sink busy", walking, true, 0},
		{"too slow", locomotion.Snapshot{Grounded: true, IsInputMoving: true, Velocity: mgl32.Vec3{0, -1, 2}}, false, 0},
		{"airborne", locomotion.Snapshot{IsInputMoving: true, Velocity: mgl32.Vec3{0, -1, 4}}, false, 0},
		{"pushed without input", locomotion.Snapshot{Grounded: true, Velocity: mgl32.Vec3{0, -1, 4}}, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &mockSink{playing: tt.playing}
			f := NewFootsteps(DefaultFootstepsConfig(), sink, 4, 1)
			for i := 1; i <= 33; i++ {
				f.Update(tt.snap, float64(i)*0.3)
			}
			if len(sink.played) != tt.want || f.Steps() != tt.want {
				t.Fatalf("expected %d steps, got %d", tt.want, len(sink.played))
			}
			for _, clip := range sink.played {
				if clip < 0 || clip >= 4 {
					t.Fatalf("clip %d out of range", clip)
				}
			}
		})
	}
}

func TestFootstepsDisabled(t *testing.T) {
	cfg := DefaultFootstepsConfig()
	cfg.Enabled = false
	sink := &mockSink{}
	f := NewFootsteps(cfg, sink, 4, 1)
	snap := locomotion.Snapshot{Grounded: true, IsInputMoving: true, Velocity: mgl32.Vec3{0, 0, 5}}
	if got := f.Update(snap, 10); got != -1 || len(sink.played) != 0 {
		t.Fatalf("expected no step when disabled")
	}
	if got := NewFootsteps(DefaultFootstepsConfig(), sink, 0, 1).Update(snap, 10); got != -1 {
		t.Fatalf("expected no step without clips")
	}
}

func TestCurveEvaluate(t *testing.T) {
	c := DefaultShakeCurve()
	tests := []struct {
		t, want float32
	}{
		{-1, 0},
		{0, 0},
		{0.1, 0.125},
		{0.2, 0.25},
		{0.6, 0.125},
		{1, 0},
		{2, 0},
	}
	for _, tt := range tests {
		if got := c.Evaluate(tt.t); !mgl32.FloatEqualThreshold(got, tt.want, 1e-6) {
			t.Fatalf("curve(%v): expected %v, got %v", tt.t, tt.want, got)
		}
	}
	if got := Curve(nil).Evaluate(0.5); got != 0 {
		t.Fatalf("expected an empty curve to evaluate to 0, got %v", got)
	}
}

func TestShake(t *testing.T) {
	s := NewShake(DefaultShakeConfig(), nil, 7)
	if s.Update(0.1) != (mgl32.Vec3{}) {
		t.Fatalf("expected no offset before the shake starts")
	}

	s.Start()
	const dt = 0.05
	limit := DefaultShakeCurve().Evaluate(0.2) * game.DefaultShakeStrength
	var moved bool
	for iter := 0; iter < int(game.DefaultShakeDuration/dt)+1; iter++ {
		off := s.Update(dt)
		if off.Len() > limit+1e-6 {
			t.Fatalf("offset %v exceeds the curve peak %v", off, limit)
		}
		moved = moved || off.Len() > 0
	}
	if !moved {
		t.Fatalf("expected the camera to shake")
	}
	if off := s.Update(dt); off != (mgl32.Vec3{}) || s.Active() {
		t.Fatalf("expected the shake to end and reset the offset, got %v", off)
	}
}

func TestShakeRejectsInvalidDuration(t *testing.T) {
	s := NewShake(DefaultShakeConfig(), nil, 1)
	s.StartWith(0, 1)
	s.StartWith(math32.NaN(), 1)
	if s.Active() {
		t.Fatalf("expected invalid shakes to be ignored")
	}
}
