package presentation

import (
	"math/rand"

	"github.com/strafekit/strafe/game"
	"github.com/strafekit/strafe/locomotion"
)

// AudioSink plays footstep clips. Clips are referred to by their index.
type AudioSink interface {
	// Playing reports whether a clip is still playing.
	Playing() bool
	// PlayOneShot starts playing the clip once.
	PlayOneShot(clip int)
}

// FootstepsConfig holds the footstep tunables.
type FootstepsConfig struct {
	Enabled bool
	// MinSpeed is the speed the character must exceed for steps to be heard.
	MinSpeed float32
	// WalkInterval and SprintInterval are the minimum times between two steps, in seconds.
	WalkInterval   float64
	SprintInterval float64
}

// DefaultFootstepsConfig ...
func DefaultFootstepsConfig() FootstepsConfig {
	return FootstepsConfig{
		Enabled:        true,
		MinSpeed:       game.DefaultFootstepMinSpeed,
		WalkInterval:   game.DefaultFootstepWalkInterval,
		SprintInterval: game.DefaultFootstepSprintInterval,
	}
}

// Footsteps plays a random clip at a fixed interval while the character walks.
type Footsteps struct {
	cfg   FootstepsConfig
	sink  AudioSink
	clips int
	rng   *rand.Rand

	lastStep float64
	steps    int
}

// NewFootsteps creates a Footsteps player choosing among clips clips. The seed makes the clip
// selection reproducible.
func NewFootsteps(cfg FootstepsConfig, sink AudioSink, clips int, seed int64) *Footsteps {
	return &Footsteps{cfg: cfg, sink: sink, clips: clips, rng: rand.New(rand.NewSource(seed))}
}

// Update plays a step if one is due and returns the clip played, or -1 if none was.
func (f *Footsteps) Update(snap locomotion.Snapshot, now float64) int {
	if !f.cfg.Enabled || f.sink == nil || f.clips <= 0 {
		return -1
	}
	if f.sink.Playing() || !snap.Grounded || !snap.IsInputMoving || snap.Velocity.Len() <= f.cfg.MinSpeed {
		return -1
	}

	interval := f.cfg.WalkInterval
	if snap.IsSprinting {
		interval = f.cfg.SprintInterval
	}
	if now-f.lastStep <= interval {
		return -1
	}

	clip := f.rng.Intn(f.clips)
	f.sink.PlayOneShot(clip)
	f.lastStep = now
	f.steps++
	return clip
}

// Steps returns the number of steps played so far.
func (f *Footsteps) Steps() int {
	return f.steps
}
