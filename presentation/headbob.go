package presentation

import (
	"github.com/chewxy/math32"
	"github.com/strafekit/strafe/game"
	"github.com/strafekit/strafe/locomotion"
)

// HeadBobConfig holds the head bobbing tunables.
type HeadBobConfig struct {
	Frequency float32
	Amplitude float32
	// SprintMultiplier scales both the frequency and the amplitude while sprinting.
	SprintMultiplier float32
}

// DefaultHeadBobConfig ...
func DefaultHeadBobConfig() HeadBobConfig {
	return HeadBobConfig{
		Frequency:        game.DefaultBobFrequency,
		Amplitude:        game.DefaultBobAmplitude,
		SprintMultiplier: game.DefaultBobSprintMultiplier,
	}
}

// HeadBob computes a vertical camera offset that oscillates while the character walks on the ground.
type HeadBob struct {
	cfg    HeadBobConfig
	phase  float32
	offset float32
}

// NewHeadBob ...
func NewHeadBob(cfg HeadBobConfig) *HeadBob {
	return &HeadBob{cfg: cfg}
}

// Update advances the bob by dt seconds using the state of the last tick and returns the new offset.
func (b *HeadBob) Update(snap locomotion.Snapshot, dt float32) float32 {
	frequency, amplitude := b.cfg.Frequency, b.cfg.Amplitude
	if snap.IsSprinting {
		frequency *= b.cfg.SprintMultiplier
		amplitude *= b.cfg.SprintMultiplier
	}

	if walking(snap) {
		b.phase += dt * frequency
		b.offset = math32.Sin(b.phase) * amplitude
		return b.offset
	}
	// Ease back to the rest position.
	b.phase = 0
	b.offset = game.Lerp(b.offset, 0, dt*frequency)
	return b.offset
}

// Offset returns the offset computed by the last Update.
func (b *HeadBob) Offset() float32 {
	return b.offset
}

func walking(snap locomotion.Snapshot) bool {
	return snap.Grounded && (math32.Abs(snap.Velocity.X()) > game.MovingThreshold || math32.Abs(snap.Velocity.Z()) > game.MovingThreshold)
}
