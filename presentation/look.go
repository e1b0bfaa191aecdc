package presentation

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/strafekit/strafe/game"
)

// LookConfig holds the mouse look tunables.
type LookConfig struct {
	// Sensitivity scales the raw look delta, in degrees per input unit.
	Sensitivity float32
	// MaxPitch is the maximum angle the camera can look up or down, in degrees.
	MaxPitch float32
}

// DefaultLookConfig ...
func DefaultLookConfig() LookConfig {
	return LookConfig{Sensitivity: game.DefaultMouseSensitivity, MaxPitch: game.DefaultMaxPitch}
}

// Look accumulates look input into a yaw and a pitch. The body turns with the yaw only, so Look
// doubles as the heading of a locomotion core.
type Look struct {
	cfg        LookConfig
	yaw, pitch float32
}

// NewLook creates a Look facing +Z.
func NewLook(cfg LookConfig) *Look {
	return &Look{cfg: cfg}
}

// Update applies a look delta. X turns the body, Y tilts the camera.
func (l *Look) Update(delta mgl32.Vec2) {
	delta = game.FiniteVec2(delta)
	l.yaw = game.WrapDegrees(l.yaw + delta.X()*l.cfg.Sensitivity)
	l.pitch = game.ClampFloat(l.pitch+delta.Y()*l.cfg.Sensitivity, -l.cfg.MaxPitch, l.cfg.MaxPitch)
}

// SetRotation sets the yaw and pitch directly, in degrees. The pitch is clamped.
func (l *Look) SetRotation(yaw, pitch float32) {
	if game.IsFinite(yaw) {
		l.yaw = game.WrapDegrees(yaw)
	}
	if game.IsFinite(pitch) {
		l.pitch = game.ClampFloat(pitch, -l.cfg.MaxPitch, l.cfg.MaxPitch)
	}
}

// Yaw returns the body rotation around the Y axis in degrees, within [0, 360).
func (l *Look) Yaw() float32 {
	return l.yaw
}

// Pitch returns the camera tilt in degrees. Positive values look up.
func (l *Look) Pitch() float32 {
	return l.pitch
}

// Forward ...
func (l *Look) Forward() mgl32.Vec3 {
	forward, _ := game.DirectionFromYaw(l.yaw)
	return forward
}

// Right ...
func (l *Look) Right() mgl32.Vec3 {
	_, right := game.DirectionFromYaw(l.yaw)
	return right
}

// Orientation returns the full camera rotation: the body yaw followed by the camera pitch.
func (l *Look) Orientation() mgl32.Quat {
	yaw := mgl32.QuatRotate(mgl32.DegToRad(l.yaw), game.Up)
	pitch := mgl32.QuatRotate(mgl32.DegToRad(-l.pitch), mgl32.Vec3{1, 0, 0})
	return yaw.Mul(pitch)
}
