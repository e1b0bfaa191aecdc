package game

// Defaults for the locomotion tunables. These mirror the values a freshly placed
// controller starts with before any settings file is applied.
const (
	DefaultMovementSpeed = float32(4)
	DefaultAcceleration  = float32(15)
	DefaultMidAirControl = float32(0.4)

	DefaultSlopeSlide    = float32(-4)
	DefaultMinSlideSpeed = float32(1)
	DefaultMaxSlideSpeed = float32(12)

	DefaultMass              = float32(1)
	DefaultGravityMultiplier = float32(1)
	// DefaultGroundSnapSpeed is the vertical velocity kept while standing on walkable ground so
	// the capsule stays pressed against it.
	DefaultGroundSnapSpeed = float32(-1)

	DefaultJumpHeight      = float32(1)
	DefaultJumpBufferTime  = 0.05
	MaxJumpBufferTime      = 0.2
	DefaultGroundGraceTime = 0.2

	DefaultSprintMultiplier = float32(1.5)
)

// Ground probing defaults.
const (
	DefaultRayProbeLength    = float32(1.5)
	DefaultSphereProbeLength = float32(0.05)
	DefaultSphereRadiusInset = float32(0.01)
	DefaultSlopeLimit        = float32(45)
)

// Capsule defaults for the reference body.
const (
	DefaultCapsuleRadius = float32(0.5)
	DefaultCapsuleHeight = float32(2)
	DefaultStepOffset    = float32(0.3)
	DefaultSkinWidth     = float32(0.08)
)

// Presentation defaults.
const (
	DefaultMouseSensitivity = float32(0.05)
	DefaultMaxPitch         = float32(90)

	DefaultBobFrequency        = float32(15)
	DefaultBobAmplitude        = float32(0.04)
	DefaultBobSprintMultiplier = float32(1.3)

	DefaultFootstepMinSpeed       = float32(3)
	DefaultFootstepWalkInterval   = 0.8
	DefaultFootstepSprintInterval = 0.5

	DefaultShakeDuration = float32(1)
	DefaultShakeStrength = float32(0.2)
)

// Gravity is the world gravity along the Y axis in units/s².
const Gravity = float32(-9.81)

// MovingThreshold is the speed under which a body is considered to be standing still.
const MovingThreshold = float32(0.1)
