package config

import (
	"github.com/strafekit/strafe/game"
	"github.com/strafekit/strafe/ground"
	"github.com/strafekit/strafe/locomotion"
	"github.com/strafekit/strafe/modifier"
	"github.com/strafekit/strafe/oerror"
	"github.com/strafekit/strafe/presentation"
	"github.com/strafekit/strafe/world"
)

// Validate reports the first setting that cannot be used. Mid-air control and slope slide are
// clamped by the core instead.
func (s Settings) Validate() error {
	if err := s.LocomotionConfig().Validate(); err != nil {
		return err
	}
	if err := s.BodyConfig().Validate(); err != nil {
		return err
	}

	f32 := []struct {
		name string
		v    float32
	}{
		{"jump height", s.Jump.Height},
		{"sprint multiplier", s.Sprint.Multiplier},
		{"camera sensitivity", s.Camera.Sensitivity},
		{"camera max pitch", s.Camera.MaxPitch},
		{"head bob frequency", s.HeadBob.Frequency},
		{"head bob amplitude", s.HeadBob.Amplitude},
		{"head bob sprint multiplier", s.HeadBob.SprintMultiplier},
		{"footstep min speed", s.Footsteps.MinSpeed},
		{"shake duration", s.Shake.Duration},
		{"shake strength", s.Shake.Strength},
	}
	for _, f := range f32 {
		if !game.IsFinite(f.v) || f.v < 0 {
			return oerror.New("config: %s must be a non-negative number, got %v", f.name, f.v)
		}
	}

	switch {
	case s.Jump.BufferTime < 0 || s.Jump.BufferTime > game.MaxJumpBufferTime:
		return oerror.New("config: jump buffer time must be within [0, %v], got %v", game.MaxJumpBufferTime, s.Jump.BufferTime)
	case s.Jump.GraceTime < 0:
		return oerror.New("config: jump grace time must not be negative, got %v", s.Jump.GraceTime)
	case s.Camera.MaxPitch > 90:
		return oerror.New("config: camera max pitch must not exceed 90, got %v", s.Camera.MaxPitch)
	case s.Footsteps.WalkInterval < 0 || s.Footsteps.SprintInterval < 0:
		return oerror.New("config: footstep intervals must not be negative")
	case s.Footsteps.Clips < 0:
		return oerror.New("config: footstep clip count must not be negative, got %v", s.Footsteps.Clips)
	}
	return nil
}

// LocomotionConfig returns the core tunables.
func (s Settings) LocomotionConfig() locomotion.Config {
	return locomotion.Config{
		MovementSpeed:     s.Movement.Speed,
		Acceleration:      s.Movement.Acceleration,
		MidAirControl:     s.Movement.MidAirControl,
		SlopeSlide:        s.Slopes.Slide,
		MinSlideSpeed:     s.Slopes.MinSlideSpeed,
		MaxSlideSpeed:     s.Slopes.MaxSlideSpeed,
		Mass:              s.Gravity.Mass,
		GravityMultiplier: s.Gravity.Multiplier,
		GroundSnapSpeed:   s.Gravity.SnapSpeed,
		Ground: ground.Options{
			RayProbeLength:    s.Ground.RayProbeLength,
			SphereProbeLength: s.Ground.SphereProbeLength,
			SphereRadiusInset: s.Ground.SphereRadiusInset,
			ExcludeLayers:     ground.LayerPlayer,
		},
	}
}

// BodyConfig returns the capsule of the reference body.
func (s Settings) BodyConfig() world.BodyConfig {
	return world.BodyConfig{
		Radius:     s.Body.Radius,
		Height:     s.Body.Height,
		StepOffset: s.Body.StepOffset,
		SkinWidth:  s.Body.SkinWidth,
		SlopeLimit: s.Ground.SlopeLimit,
	}
}

// JumpConfig ...
func (s Settings) JumpConfig() modifier.JumpConfig {
	return modifier.JumpConfig{
		Height:          s.Jump.Height,
		BufferTime:      s.Jump.BufferTime,
		GroundGraceTime: s.Jump.GraceTime,
	}
}

// SprintConfig ...
func (s Settings) SprintConfig() modifier.SprintConfig {
	return modifier.SprintConfig{Multiplier: s.Sprint.Multiplier}
}

// LookConfig ...
func (s Settings) LookConfig() presentation.LookConfig {
	return presentation.LookConfig{Sensitivity: s.Camera.Sensitivity, MaxPitch: s.Camera.MaxPitch}
}

// HeadBobConfig ...
func (s Settings) HeadBobConfig() presentation.HeadBobConfig {
	return presentation.HeadBobConfig{
		Frequency:        s.HeadBob.Frequency,
		Amplitude:        s.HeadBob.Amplitude,
		SprintMultiplier: s.HeadBob.SprintMultiplier,
	}
}

// FootstepsConfig ...
func (s Settings) FootstepsConfig() presentation.FootstepsConfig {
	return presentation.FootstepsConfig{
		Enabled:        s.Footsteps.Enabled,
		MinSpeed:       s.Footsteps.MinSpeed,
		WalkInterval:   s.Footsteps.WalkInterval,
		SprintInterval: s.Footsteps.SprintInterval,
	}
}

// ShakeConfig ...
func (s Settings) ShakeConfig() presentation.ShakeConfig {
	return presentation.ShakeConfig{Duration: s.Shake.Duration, Strength: s.Shake.Strength}
}
