package game

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// AABBFromDimensions returns a bounding box from the given dimensions, with its origin at the
// centre of the bottom face.
func AABBFromDimensions(width, height float32) cube.BBox {
	h := width / 2
	return cube.Box(
		-h, 0, -h,
		h, height, h,
	)
}

// ClosestPointXZ returns the point of the box's XZ footprint closest to v, ignoring heights. The
// Y component of the result is zero.
func ClosestPointXZ(a cube.BBox, v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		ClampFloat(v.X(), a.Min().X(), a.Max().X()),
		0,
		ClampFloat(v.Z(), a.Min().Z(), a.Max().Z()),
	}
}

// OverlapsXZ returns whether the XZ footprints of two boxes overlap by more than epsilon.
func OverlapsXZ(a, b cube.BBox, epsilon float32) bool {
	return a.Max().X()-b.Min().X() > epsilon && b.Max().X()-a.Min().X() > epsilon &&
		a.Max().Z()-b.Min().Z() > epsilon && b.Max().Z()-a.Min().Z() > epsilon
}

// AABBVectorDistance calculates the distance between an AABB and a vector.
func AABBVectorDistance(a cube.BBox, v mgl32.Vec3) float32 {
	x := math32.Max(a.Min().X()-v.X(), math32.Max(0, v.X()-a.Max().X()))
	y := math32.Max(a.Min().Y()-v.Y(), math32.Max(0, v.Y()-a.Max().Y()))
	z := math32.Max(a.Min().Z()-v.Z(), math32.Max(0, v.Z()-a.Max().Z()))
	return math32.Sqrt(x*x + y*y + z*z)
}
