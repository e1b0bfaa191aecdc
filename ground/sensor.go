package ground

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/strafekit/strafe/game"
)

// Source describes which probe in the fallback chain produced a Sample.
type Source uint8

const (
	// SourceNoHit is used when no probe found ground, or the sensor was not evaluated.
	SourceNoHit Source = iota
	// SourceRaycastHit is used when the straight ray below the capsule found ground.
	SourceRaycastHit
	// SourceSphereCastHit is used when the thin sphere under the feet found ground.
	SourceSphereCastHit
	// SourceCarriedOverHit is used when both probes missed and the previous slope hit was re-used.
	SourceCarriedOverHit
)

func (s Source) String() string {
	switch s {
	case SourceRaycastHit:
		return "raycast"
	case SourceSphereCastHit:
		return "spherecast"
	case SourceCarriedOverHit:
		return "carried-over"
	default:
		return "none"
	}
}

// Sample is the ground state for a single tick.
type Sample struct {
	Grounded bool

	Normal    mgl32.Vec3
	HasNormal bool
	Angle     float32

	// Steep is true when the angle between Normal and up exceeds the slope limit.
	Steep   bool
	OnSlope bool
	Sliding bool

	// Sticky is set once the sphere cast was needed while sliding. While set, the ray probe is
	// skipped so that the sensor does not flap between the two methods at the edge of a slope.
	Sticky bool

	Source Source
}

// Options configures the probes used by a Sensor.
type Options struct {
	RayProbeLength    float32
	SphereProbeLength float32
	SphereRadiusInset float32
	// ExcludeLayers are ignored by every probe, usually the character's own layer.
	ExcludeLayers LayerMask
}

// DefaultOptions returns the default probe lengths, excluding the player layer.
func DefaultOptions() Options {
	return Options{
		RayProbeLength:    game.DefaultRayProbeLength,
		SphereProbeLength: game.DefaultSphereProbeLength,
		SphereRadiusInset: game.DefaultSphereRadiusInset,
		ExcludeLayers:     LayerPlayer,
	}
}

// Sensor performs the layered ground and slope detection.
type Sensor struct {
	Caster  Caster
	Options Options
}

// NewSensor returns a Sensor probing through c.
func NewSensor(c Caster, opts Options) *Sensor {
	return &Sensor{Caster: c, Options: opts}
}

// Sample evaluates the fallback chain for a grounded capsule. foot is the centre of the capsule's
// bottom hemisphere, and prev is the sample produced on the previous tick.
func (s *Sensor) Sample(foot mgl32.Vec3, radius, halfHeight, slopeLimit float32, prev Sample) Sample {
	sample := Sample{Grounded: true, Sticky: prev.Sticky}

	if !prev.Sticky {
		origin := foot.Add(game.Up.Mul(halfHeight - radius))
		if hit, ok := s.Caster.RaycastDown(origin, s.Options.RayProbeLength, s.Options.ExcludeLayers); ok {
			sample.Source = SourceRaycastHit
			sample.evaluate(hit.Normal, slopeLimit)
			return sample
		}
	}

	sphereRadius := radius - s.Options.SphereRadiusInset
	if hit, ok := s.Caster.SpherecastDown(foot, sphereRadius, s.Options.SphereProbeLength, s.Options.ExcludeLayers); ok {
		sample.Source = SourceSphereCastHit
		sample.Sticky = true
		sample.evaluate(hit.Normal, slopeLimit)
		return sample
	}

	if prev.Grounded && prev.Sliding && prev.HasNormal {
		sample.Source = SourceCarriedOverHit
		sample.Sticky = false
		sample.evaluate(prev.Normal, slopeLimit)
		return sample
	}

	sample.Source = SourceNoHit
	sample.Sticky = false
	return sample
}

// Airborne returns the sample for a tick where the body reports no ground contact. The chain is not
// evaluated, so slope state and the sticky flag carry over until the body lands again.
func (s *Sensor) Airborne(prev Sample) Sample {
	prev.Grounded = false
	prev.Source = SourceNoHit
	return prev
}

// evaluate applies the slope-angle test for the given hit normal.
func (sample *Sample) evaluate(normal mgl32.Vec3, slopeLimit float32) {
	sample.Normal, sample.HasNormal = normal, true
	sample.Angle = game.AngleDeg(normal, game.Up)
	if sample.Angle > slopeLimit {
		sample.Steep, sample.OnSlope, sample.Sliding = true, true, true
		return
	}
	sample.Steep, sample.OnSlope, sample.Sliding = false, false, false
	sample.Sticky = false
}
