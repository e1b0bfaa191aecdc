package world

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/ethaniccc/float32-cube/cube/trace"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/strafekit/strafe/game"
	"github.com/strafekit/strafe/ground"
	"github.com/strafekit/strafe/oerror"
)

// Box is a solid axis-aligned box.
type Box struct {
	BBox  cube.BBox
	Layer ground.LayerMask
}

// Ramp is a walkable plane bounded by a rectangle on the XZ plane. Ramps have no thickness and
// only collide from above.
type Ramp struct {
	// Min and Max are the corners of the footprint, as (X, Z).
	Min, Max mgl32.Vec2
	// Origin is any point on the plane.
	Origin mgl32.Vec3
	// Normal is the unit normal of the plane. It must point upwards.
	Normal mgl32.Vec3
	Layer  ground.LayerMask
}

// NewRamp returns a ramp over the footprint whose surface passes through the footprint's centre
// at the given height and rises at angle degrees towards yaw.
func NewRamp(min, max mgl32.Vec2, height, angle, yaw float32) Ramp {
	ascent, _ := game.DirectionFromYaw(yaw)
	rad := mgl32.DegToRad(angle)
	centre := min.Add(max).Mul(0.5)
	return Ramp{
		Min:    min,
		Max:    max,
		Origin: mgl32.Vec3{centre.X(), height, centre.Y()},
		Normal: game.Up.Mul(math32.Cos(rad)).Sub(ascent.Mul(math32.Sin(rad))),
		Layer:  ground.LayerDefault,
	}
}

// HeightAt returns the height of the ramp surface at x, z. The second return value is false if
// the point is outside the footprint.
func (r Ramp) HeightAt(x, z float32) (float32, bool) {
	if !r.contains(x, z) {
		return 0, false
	}
	n := r.Normal
	return r.Origin.Y() - (n.X()*(x-r.Origin.X())+n.Z()*(z-r.Origin.Z()))/n.Y(), true
}

func (r Ramp) contains(x, z float32) bool {
	return x >= r.Min.X() && x <= r.Max.X() && z >= r.Min.Y() && z <= r.Max.Y()
}

// World is a static collection of boxes and ramps. It answers the ground probes of a sensor and
// resolves the movement of bodies. A World must not be modified while bodies move through it.
type World struct {
	boxes []Box
	ramps []Ramp
}

// New returns an empty World.
func New() *World {
	return &World{}
}

// AddBox adds a solid box on the default layer.
func (w *World) AddBox(bb cube.BBox) {
	w.boxes = append(w.boxes, Box{BBox: bb, Layer: ground.LayerDefault})
}

// AddRamp adds a ramp. The normal is normalised; ramps facing sideways or down are rejected.
func (w *World) AddRamp(r Ramp) error {
	n := game.FiniteVec3(r.Normal)
	if n.Len() == 0 || n.Normalize().Y() <= 0 {
		return oerror.New("world: ramp normal %v must point upwards", r.Normal)
	}
	if r.Min.X() > r.Max.X() || r.Min.Y() > r.Max.Y() {
		return oerror.New("world: ramp footprint %v-%v is inverted", r.Min, r.Max)
	}
	r.Normal = n.Normalize()
	if r.Layer == 0 {
		r.Layer = ground.LayerDefault
	}
	w.ramps = append(w.ramps, r)
	return nil
}

// Boxes returns the boxes of the world.
func (w *World) Boxes() []Box {
	return w.boxes
}

// Ramps returns the ramps of the world.
func (w *World) Ramps() []Ramp {
	return w.ramps
}

// RaycastDown casts a ray straight down from origin and returns the closest surface within
// maxDistance. Boxes are only hit on their top face.
func (w *World) RaycastDown(origin mgl32.Vec3, maxDistance float32, exclude ground.LayerMask) (ground.Hit, bool) {
	end := origin.Sub(game.Up.Mul(maxDistance))
	best, found := ground.Hit{Distance: maxDistance}, false

	for _, b := range w.boxes {
		if b.Layer&exclude != 0 || b.BBox.Max().Y() > origin.Y() {
			continue
		}
		result, ok := trace.BBoxIntercept(b.BBox, origin, end)
		if !ok {
			continue
		}
		if dist := origin.Y() - result.Position().Y(); dist <= best.Distance {
			best = ground.Hit{Point: result.Position(), Normal: game.Up, Distance: dist}
			found = true
		}
	}

	for _, r := range w.ramps {
		if r.Layer&exclude != 0 {
			continue
		}
		h, ok := r.HeightAt(origin.X(), origin.Z())
		if !ok || h > origin.Y() {
			continue
		}
		if dist := origin.Y() - h; dist <= best.Distance {
			best = ground.Hit{Point: mgl32.Vec3{origin.X(), h, origin.Z()}, Normal: r.Normal, Distance: dist}
			found = true
		}
	}
	return best, found
}

// SpherecastDown sweeps a sphere centred at origin straight down and returns the first surface it
// touches within maxDistance. Touching the rim of a box yields a normal tilted away from the box,
// like a rounded edge would. Surfaces the sphere already overlaps are ignored.
func (w *World) SpherecastDown(origin mgl32.Vec3, radius, maxDistance float32, exclude ground.LayerMask) (ground.Hit, bool) {
	best, found := ground.Hit{Distance: maxDistance}, false

	for _, b := range w.boxes {
		if b.Layer&exclude != 0 || game.AABBVectorDistance(b.BBox, origin) > radius+maxDistance {
			continue
		}
		if hit, ok := sweepBoxTop(b.BBox, origin, radius); ok && hit.Distance <= best.Distance {
			best, found = hit, true
		}
	}

	for _, r := range w.ramps {
		if r.Layer&exclude != 0 {
			continue
		}
		if hit, ok := sweepRamp(r, origin, radius); ok && hit.Distance <= best.Distance {
			best, found = hit, true
		}
	}
	return best, found
}

// overlapTolerance is how far a sphere may already sink into a surface and still be considered
// touching it.
const overlapTolerance = 1e-4

func sweepBoxTop(bb cube.BBox, origin mgl32.Vec3, radius float32) (ground.Hit, bool) {
	top := bb.Max().Y()
	closest := game.ClosestPointXZ(bb, origin)
	dx, dz := origin.X()-closest.X(), origin.Z()-closest.Z()
	d2 := dx*dx + dz*dz
	if d2 >= radius*radius {
		return ground.Hit{}, false
	}

	// Height of the sphere centre above the contact point at the moment of contact.
	rise := math32.Sqrt(radius*radius - d2)
	dist := origin.Y() - top - rise
	if dist < -overlapTolerance {
		return ground.Hit{}, false
	}
	dist = math32.Max(dist, 0)

	normal := game.Up
	if d2 > 0 {
		normal = mgl32.Vec3{dx, rise, dz}.Mul(1 / radius)
	}
	return ground.Hit{Point: mgl32.Vec3{closest.X(), top, closest.Z()}, Normal: normal, Distance: dist}, true
}

func sweepRamp(r Ramp, origin mgl32.Vec3, radius float32) (ground.Hit, bool) {
	n := r.Normal
	above := n.Dot(origin.Sub(r.Origin))
	dist := (above - radius) / n.Y()
	if above < 0 || dist < -overlapTolerance {
		return ground.Hit{}, false
	}
	dist = math32.Max(dist, 0)

	point := origin.Sub(game.Up.Mul(dist)).Sub(n.Mul(radius))
	if !r.contains(point.X(), point.Z()) {
		return ground.Hit{}, false
	}
	return ground.Hit{Point: point, Normal: n, Distance: dist}, true
}
