package locomotion

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/strafekit/strafe/input"
)

// TickContext is the mutable per-tick state handed to BeforeMove subscribers. The core builds a
// fresh one every tick, passes it by pointer to each subscriber in registration order, and copies
// the writable fields back before computing the move direction.
type TickContext struct {
	// Now is the simulation time of this tick.
	Now float64
	// DeltaTime is the sanitised length of this tick.
	DeltaTime float32
	Tick      uint64

	Grounded bool
	OnSlope  bool
	Sliding  bool

	Input   input.State
	Forward mgl32.Vec3

	// Mass and GravityMultiplier are exposed so modifiers can derive forces consistent with the
	// core's gravity integration.
	Mass              float32
	GravityMultiplier float32

	// Velocity may be modified by subscribers.
	Velocity mgl32.Vec3
	// Jumping may be modified by subscribers. It may only be cleared while Grounded.
	Jumping bool
	// SpeedMultiplier starts at 1 and is scaled multiplicatively by subscribers.
	SpeedMultiplier float32
}
