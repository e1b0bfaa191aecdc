package locomotion

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/strafekit/strafe/ground"
)

// Snapshot is a read-only view of the core after a tick, for observers such as the camera, head
// bob, footsteps and recorders.
type Snapshot struct {
	Tick uint64
	Time float64

	Grounded bool
	OnSlope  bool
	Sliding  bool
	Jumping  bool

	Velocity        mgl32.Vec3
	SpeedMultiplier float32
	// BodySpeed is the speed the body actually achieved during the last move.
	BodySpeed float32

	IsInputMoving bool
	IsSprinting   bool

	GroundSource ground.Source
	Position     mgl32.Vec3
}
