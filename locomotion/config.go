package locomotion

import (
	"github.com/sirupsen/logrus"
	"github.com/strafekit/strafe/game"
	"github.com/strafekit/strafe/ground"
	"github.com/strafekit/strafe/oerror"
)

// Config holds the tunables of the core. All of them are fixed once the core is constructed.
type Config struct {
	// MovementSpeed is the walking speed in units per second.
	MovementSpeed float32
	// Acceleration controls how quickly horizontal velocity approaches the target direction.
	Acceleration float32
	// MidAirControl is the fraction of fresh input blended into the last grounded direction
	// while airborne, in [0, 1].
	MidAirControl float32

	// SlopeSlide scales the downhill force on steep slopes. It must be zero or negative.
	SlopeSlide    float32
	MinSlideSpeed float32
	MaxSlideSpeed float32

	Mass              float32
	GravityMultiplier float32
	GroundSnapSpeed   float32

	Ground ground.Options
}

// DefaultConfig returns the tunables of a freshly placed controller.
func DefaultConfig() Config {
	return Config{
		MovementSpeed:     game.DefaultMovementSpeed,
		Acceleration:      game.DefaultAcceleration,
		MidAirControl:     game.DefaultMidAirControl,
		SlopeSlide:        game.DefaultSlopeSlide,
		MinSlideSpeed:     game.DefaultMinSlideSpeed,
		MaxSlideSpeed:     game.DefaultMaxSlideSpeed,
		Mass:              game.DefaultMass,
		GravityMultiplier: game.DefaultGravityMultiplier,
		GroundSnapSpeed:   game.DefaultGroundSnapSpeed,
		Ground:            ground.DefaultOptions(),
	}
}

// Validate reports the first tunable that cannot be used.
func (c Config) Validate() error {
	finite := []struct {
		name string
		v    float32
	}{
		{"movement speed", c.MovementSpeed},
		{"acceleration", c.Acceleration},
		{"mid-air control", c.MidAirControl},
		{"slope slide", c.SlopeSlide},
		{"min slide speed", c.MinSlideSpeed},
		{"max slide speed", c.MaxSlideSpeed},
		{"mass", c.Mass},
		{"gravity multiplier", c.GravityMultiplier},
		{"ground snap speed", c.GroundSnapSpeed},
		{"ray probe length", c.Ground.RayProbeLength},
		{"sphere probe", c.Ground.SphereProbeLength},
		{"sphere inset", c.Ground.SphereRadiusInset},
	}
	for _, f := range finite {
		if !game.IsFinite(f.v) {
			return oerror.New("locomotion: %s must be finite, got %v", f.name, f.v)
		}
	}

	switch {
	case c.MovementSpeed < 0:
		return oerror.New("locomotion: movement speed must not be negative, got %v", c.MovementSpeed)
	case c.Acceleration < 0:
		return oerror.New("locomotion: acceleration must not be negative, got %v", c.Acceleration)
	case c.Mass <= 0:
		return oerror.New("locomotion: mass must be positive, got %v", c.Mass)
	case c.GravityMultiplier < 0:
		return oerror.New("locomotion: gravity multiplier must not be negative, got %v", c.GravityMultiplier)
	case c.MinSlideSpeed < 0:
		return oerror.New("locomotion: min slide speed must not be negative, got %v", c.MinSlideSpeed)
	case c.MaxSlideSpeed < c.MinSlideSpeed:
		return oerror.New("locomotion: max slide speed %v is below min slide speed %v", c.MaxSlideSpeed, c.MinSlideSpeed)
	case c.GroundSnapSpeed > 0:
		return oerror.New("locomotion: ground snap speed must not be positive, got %v", c.GroundSnapSpeed)
	case c.Ground.RayProbeLength <= 0 || c.Ground.SphereProbeLength <= 0:
		return oerror.New("locomotion: probe lengths must be positive")
	case c.Ground.SphereRadiusInset < 0:
		return oerror.New("locomotion: sphere radius inset must not be negative, got %v", c.Ground.SphereRadiusInset)
	}
	return nil
}

// Sanitize clamps the tunables that have a fixed range instead of rejecting them, logging each
// adjustment once.
func (c Config) Sanitize(log *logrus.Logger) Config {
	if clamped := game.Clamp01(c.MidAirControl); clamped != c.MidAirControl {
		log.Warnf("locomotion: mid-air control %v clamped to %v", c.MidAirControl, clamped)
		c.MidAirControl = clamped
	}
	if c.SlopeSlide > 0 {
		log.Warnf("locomotion: slope slide %v clamped to 0", c.SlopeSlide)
		c.SlopeSlide = 0
	}
	return c
}
