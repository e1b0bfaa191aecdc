package presentation

import (
	"math/rand"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/strafekit/strafe/game"
)

// Key is a point on a Curve.
type Key struct {
	Time, Value float32
}

// Curve is a piecewise-linear function defined by keys sorted by time. Outside of the keyed range
// the first or last value is held.
type Curve []Key

// DefaultShakeCurve rises quickly to its peak and decays over the rest of the shake.
func DefaultShakeCurve() Curve {
	return Curve{{0, 0}, {0.2, 0.25}, {1, 0}}
}

// Evaluate returns the value of the curve at t.
func (c Curve) Evaluate(t float32) float32 {
	switch {
	case len(c) == 0:
		return 0
	case t <= c[0].Time:
		return c[0].Value
	case t >= c[len(c)-1].Time:
		return c[len(c)-1].Value
	}
	i := sort.Search(len(c), func(i int) bool { return c[i].Time > t })
	a, b := c[i-1], c[i]
	if b.Time == a.Time {
		return b.Value
	}
	return game.Lerp(a.Value, b.Value, (t-a.Time)/(b.Time-a.Time))
}

// ShakeConfig holds the camera shake tunables.
type ShakeConfig struct {
	Duration float32
	Strength float32
}

// DefaultShakeConfig ...
func DefaultShakeConfig() ShakeConfig {
	return ShakeConfig{Duration: game.DefaultShakeDuration, Strength: game.DefaultShakeStrength}
}

// Shake produces a random, time-boxed camera offset shaped by a curve.
type Shake struct {
	cfg   ShakeConfig
	curve Curve
	rng   *rand.Rand

	elapsed, duration, strength float32
	active                      bool
	offset                      mgl32.Vec3
}

// NewShake creates an idle Shake. A nil curve selects DefaultShakeCurve.
func NewShake(cfg ShakeConfig, curve Curve, seed int64) *Shake {
	if curve == nil {
		curve = DefaultShakeCurve()
	}
	return &Shake{cfg: cfg, curve: curve, rng: rand.New(rand.NewSource(seed))}
}

// Start starts a shake with the configured duration and strength, replacing any running one.
func (s *Shake) Start() {
	s.StartWith(s.cfg.Duration, s.cfg.Strength)
}

// StartWith starts a shake with an explicit duration and strength.
func (s *Shake) StartWith(duration, strength float32) {
	if !game.IsFinite(duration) || duration <= 0 || !game.IsFinite(strength) {
		return
	}
	s.elapsed, s.duration, s.strength = 0, duration, strength
	s.active = true
}

// Update advances the shake by dt seconds and returns the camera offset. The offset is zero once
// the shake has run for its full duration.
func (s *Shake) Update(dt float32) mgl32.Vec3 {
	if !s.active {
		return mgl32.Vec3{}
	}
	if s.elapsed >= s.duration {
		s.active = false
		s.offset = mgl32.Vec3{}
		return s.offset
	}
	s.offset = s.insideUnitSphere().Mul(s.curve.Evaluate(s.elapsed/s.duration) * s.strength)
	s.elapsed += dt
	return s.offset
}

// Active reports whether a shake is running.
func (s *Shake) Active() bool {
	return s.active
}

// Offset returns the offset computed by the last Update.
func (s *Shake) Offset() mgl32.Vec3 {
	return s.offset
}

func (s *Shake) insideUnitSphere() mgl32.Vec3 {
	for {
		p := mgl32.Vec3{
			s.rng.Float32()*2 - 1,
			s.rng.Float32()*2 - 1,
			s.rng.Float32()*2 - 1,
		}
		if p.Dot(p) <= 1 {
			return p
		}
	}
}
