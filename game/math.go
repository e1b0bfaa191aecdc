package game

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Up is the world up vector.
var Up = mgl32.Vec3{0, 1, 0}

// ClampFloat clamps the given value to the given range.
func ClampFloat(num, min, max float32) float32 {
	if num < min {
		return min
	}
	return math32.Min(num, max)
}

// Clamp01 clamps the given value to [0, 1].
func Clamp01(num float32) float32 {
	return ClampFloat(num, 0, 1)
}

// Lerp interpolates between a and b by t, with t clamped to [0, 1].
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*Clamp01(t)
}

// Float32ApproxEq determines whether two floating point numbers are close enough to each other
// by a threshold of 1e-5.
func Float32ApproxEq(a, b float32) bool {
	return math32.Abs(a-b) <= 1e-5
}

// Vec3ApproxEq reports whether every component of a and b is within the Float32ApproxEq threshold.
func Vec3ApproxEq(a, b mgl32.Vec3) bool {
	return Float32ApproxEq(a[0], b[0]) && Float32ApproxEq(a[1], b[1]) && Float32ApproxEq(a[2], b[2])
}

// WrapDegrees wraps an angle in degrees into [0, 360).
func WrapDegrees(deg float32) float32 {
	deg = math32.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		return 0
	}
	return deg
}

// IsFinite reports whether f is neither NaN nor infinite.
func IsFinite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}

// FiniteVec2 returns the vector unchanged if every component is finite, and the zero vector otherwise.
func FiniteVec2(v mgl32.Vec2) mgl32.Vec2 {
	if !IsFinite(v[0]) || !IsFinite(v[1]) {
		return mgl32.Vec2{}
	}
	return v
}

// FiniteVec3 returns the vector unchanged if every component is finite, and the zero vector otherwise.
func FiniteVec3(v mgl32.Vec3) mgl32.Vec3 {
	if !IsFinite(v[0]) || !IsFinite(v[1]) || !IsFinite(v[2]) {
		return mgl32.Vec3{}
	}
	return v
}

// SafeNormalize normalizes the vector, returning the zero vector when its length is zero or not
// finite.
func SafeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if !IsFinite(l) || l <= 1e-6 {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}

// Vec3HzDistSqr returns the squared horizontal distance in a vector.
func Vec3HzDistSqr(vec3 mgl32.Vec3) float32 {
	return vec3.X()*vec3.X() + vec3.Z()*vec3.Z()
}

// Vec3HzLen returns the horizontal length of a vector.
func Vec3HzLen(vec3 mgl32.Vec3) float32 {
	return math32.Sqrt(Vec3HzDistSqr(vec3))
}

// AngleDeg returns the unsigned angle between two vectors in degrees.
func AngleDeg(a, b mgl32.Vec3) float32 {
	denom := a.Len() * b.Len()
	if denom <= 1e-12 {
		return 0
	}
	return mgl32.RadToDeg(math32.Acos(ClampFloat(a.Dot(b)/denom, -1, 1)))
}

// SlideDirection returns the downhill direction along a surface with the given normal. Its length is
// the sine of the surface's inclination, so flat ground yields the zero vector.
func SlideDirection(normal mgl32.Vec3) mgl32.Vec3 {
	return Up.Cross(normal).Cross(normal)
}

// DirectionFromYaw returns the horizontal forward and right vectors for a yaw in degrees. A yaw of zero
// faces +Z and positive yaw turns towards +X.
func DirectionFromYaw(yaw float32) (forward, right mgl32.Vec3) {
	rad := mgl32.DegToRad(yaw)
	sin, cos := math32.Sin(rad), math32.Cos(rad)
	return mgl32.Vec3{sin, 0, cos}, mgl32.Vec3{cos, 0, -sin}
}
