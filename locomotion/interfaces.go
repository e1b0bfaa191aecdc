package locomotion

import "github.com/go-gl/mathgl/mgl32"

// Body is the kinematic capsule driven by the core. It owns collision resolution: Move sweeps the
// capsule by delta and updates IsGrounded according to what it touched.
type Body interface {
	IsGrounded() bool
	Move(delta mgl32.Vec3)

	// Position returns the centre of the capsule.
	Position() mgl32.Vec3
	Radius() float32
	Height() float32
	// SlopeLimit returns the steepest walkable surface angle in degrees.
	SlopeLimit() float32

	// VelocityMagnitude returns the speed actually achieved by the last Move.
	VelocityMagnitude() float32
}

// Clock provides simulation time.
type Clock interface {
	// Now returns the simulation time in seconds.
	Now() float64
	// DeltaTime returns the duration of the current tick in seconds.
	DeltaTime() float32
}

// Heading provides the horizontal axes input is relative to, usually taken from the camera.
type Heading interface {
	Forward() mgl32.Vec3
	Right() mgl32.Vec3
}
