package ground

import "github.com/go-gl/mathgl/mgl32"

// LayerMask is a bit set of collision layers.
type LayerMask uint32

// LayerPlayer is the layer the controlled character's own collider lives on.
const LayerPlayer LayerMask = 1 << 0

// LayerDefault is the layer scene geometry lives on unless specified otherwise.
const LayerDefault LayerMask = 1 << 1

// Hit describes the nearest surface found by a downward cast.
type Hit struct {
	Point    mgl32.Vec3
	Normal   mgl32.Vec3
	Distance float32
}

// Caster bridges the scene's collision geometry for downward probes. Surfaces on any layer in
// exclude must be ignored.
type Caster interface {
	RaycastDown(origin mgl32.Vec3, maxDistance float32, exclude LayerMask) (Hit, bool)
	SpherecastDown(origin mgl32.Vec3, radius, maxDistance float32, exclude LayerMask) (Hit, bool)
}
