package config

import (
	"github.com/strafekit/strafe/game"
)

// Settings contains every tunable of a character: its locomotion, its modifiers, its body and its
// presentation. Durations are in seconds, angles in degrees.
type Settings struct {
	Movement struct {
		Speed         float32 `toml:"speed" yaml:"speed"`
		Acceleration  float32 `toml:"acceleration" yaml:"acceleration"`
		MidAirControl float32 `toml:"mid_air_control" yaml:"mid_air_control"`
	} `toml:"movement" yaml:"movement"`
	Slopes struct {
		Slide         float32 `toml:"slide" yaml:"slide"`
		MinSlideSpeed float32 `toml:"min_slide_speed" yaml:"min_slide_speed"`
		MaxSlideSpeed float32 `toml:"max_slide_speed" yaml:"max_slide_speed"`
	} `toml:"slopes" yaml:"slopes"`
	Gravity struct {
		Mass       float32 `toml:"mass" yaml:"mass"`
		Multiplier float32 `toml:"multiplier" yaml:"multiplier"`
		SnapSpeed  float32 `toml:"snap_speed" yaml:"snap_speed"`
	} `toml:"gravity" yaml:"gravity"`
	Ground struct {
		SlopeLimit        float32 `toml:"slope_limit" yaml:"slope_limit"`
		RayProbeLength    float32 `toml:"ray_probe_length" yaml:"ray_probe_length"`
		SphereProbeLength float32 `toml:"sphere_probe_length" yaml:"sphere_probe_length"`
		SphereRadiusInset float32 `toml:"sphere_radius_inset" yaml:"sphere_radius_inset"`
	} `toml:"ground" yaml:"ground"`
	Body struct {
		Radius     float32 `toml:"radius" yaml:"radius"`
		Height     float32 `toml:"height" yaml:"height"`
		StepOffset float32 `toml:"step_offset" yaml:"step_offset"`
		SkinWidth  float32 `toml:"skin_width" yaml:"skin_width"`
	} `toml:"body" yaml:"body"`
	Jump struct {
		Height     float32 `toml:"height" yaml:"height"`
		BufferTime float64 `toml:"buffer_time" yaml:"buffer_time"`
		GraceTime  float64 `toml:"grace_time" yaml:"grace_time"`
	} `toml:"jump" yaml:"jump"`
	Sprint struct {
		Multiplier float32 `toml:"multiplier" yaml:"multiplier"`
	} `toml:"sprint" yaml:"sprint"`
	Camera struct {
		Sensitivity float32 `toml:"sensitivity" yaml:"sensitivity"`
		MaxPitch    float32 `toml:"max_pitch" yaml:"max_pitch"`
	} `toml:"camera" yaml:"camera"`
	HeadBob struct {
		Frequency        float32 `toml:"frequency" yaml:"frequency"`
		Amplitude        float32 `toml:"amplitude" yaml:"amplitude"`
		SprintMultiplier float32 `toml:"sprint_multiplier" yaml:"sprint_multiplier"`
	} `toml:"head_bob" yaml:"head_bob"`
	Footsteps struct {
		Enabled        bool    `toml:"enabled" yaml:"enabled"`
		MinSpeed       float32 `toml:"min_speed" yaml:"min_speed"`
		WalkInterval   float64 `toml:"walk_interval" yaml:"walk_interval"`
		SprintInterval float64 `toml:"sprint_interval" yaml:"sprint_interval"`
		Clips          int     `toml:"clips" yaml:"clips"`
	} `toml:"footsteps" yaml:"footsteps"`
	Shake struct {
		Duration float32 `toml:"duration" yaml:"duration"`
		Strength float32 `toml:"strength" yaml:"strength"`
	} `toml:"shake" yaml:"shake"`
}

// DefaultSettings returns the settings a newly spawned character uses.
func DefaultSettings() Settings {
	s := Settings{}
	s.Movement.Speed = game.DefaultMovementSpeed
	s.Movement.Acceleration = game.DefaultAcceleration
	s.Movement.MidAirControl = game.DefaultMidAirControl

	s.Slopes.Slide = game.DefaultSlopeSlide
	s.Slopes.MinSlideSpeed = game.DefaultMinSlideSpeed
	s.Slopes.MaxSlideSpeed = game.DefaultMaxSlideSpeed

	s.Gravity.Mass = game.DefaultMass
	s.Gravity.Multiplier = game.DefaultGravityMultiplier
	s.Gravity.SnapSpeed = game.DefaultGroundSnapSpeed

	s.Ground.SlopeLimit = game.DefaultSlopeLimit
	s.Ground.RayProbeLength = game.DefaultRayProbeLength
	s.Ground.SphereProbeLength = game.DefaultSphereProbeLength
	s.Ground.SphereRadiusInset = game.DefaultSphereRadiusInset

	s.Body.Radius = game.DefaultCapsuleRadius
	s.Body.Height = game.DefaultCapsuleHeight
	s.Body.StepOffset = game.DefaultStepOffset
	s.Body.SkinWidth = game.DefaultSkinWidth

	s.Jump.Height = game.DefaultJumpHeight
	s.Jump.BufferTime = game.DefaultJumpBufferTime
	s.Jump.GraceTime = game.DefaultGroundGraceTime

	s.Sprint.Multiplier = game.DefaultSprintMultiplier

	s.Camera.Sensitivity = game.DefaultMouseSensitivity
	s.Camera.MaxPitch = game.DefaultMaxPitch

	s.HeadBob.Frequency = game.DefaultBobFrequency
	s.HeadBob.Amplitude = game.DefaultBobAmplitude
	s.HeadBob.SprintMultiplier = game.DefaultBobSprintMultiplier

	s.Footsteps.Enabled = true
	s.Footsteps.MinSpeed = game.DefaultFootstepMinSpeed
	s.Footsteps.WalkInterval = game.DefaultFootstepWalkInterval
	s.Footsteps.SprintInterval = game.DefaultFootstepSprintInterval
	s.Footsteps.Clips = 4

	s.Shake.Duration = game.DefaultShakeDuration
	s.Shake.Strength = game.DefaultShakeStrength
	return s
}
