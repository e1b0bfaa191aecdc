package recording

import (
	"github.com/strafekit/strafe/game"
	"github.com/strafekit/strafe/hook"
	"github.com/strafekit/strafe/input"
	"github.com/strafekit/strafe/locomotion"
	"github.com/strafekit/strafe/presentation"
)

// Recorder appends a frame to a recording after every tick of a core.
type Recorder struct {
	rec    *Recording
	core   *locomotion.Core
	input  *input.Handler
	camera func() presentation.Camera
	handle hook.Handle
}

// NewRecorder attaches a recorder to the core. camera may be nil; when set it is read after every
// tick, so a presentation rig must be attached to the core before the recorder.
func NewRecorder(rec *Recording, core *locomotion.Core, in *input.Handler, camera func() presentation.Camera) *Recorder {
	r := &Recorder{rec: rec, core: core, input: in, camera: camera}
	r.handle = core.AfterMove().Register(r.capture)
	return r
}

// Close detaches the recorder from the core.
func (r *Recorder) Close() error {
	r.core.AfterMove().Unregister(r.handle)
	return nil
}

// Recording returns the recording being written.
func (r *Recorder) Recording() *Recording {
	return r.rec
}

func (r *Recorder) capture(snap locomotion.Snapshot) {
	f := Frame{
		Tick:            snap.Tick,
		Time:            snap.Time,
		Input:           r.input.State(),
		Position:        snap.Position,
		Velocity:        snap.Velocity,
		SpeedMultiplier: snap.SpeedMultiplier,
		BodySpeed:       snap.BodySpeed,
		Grounded:        snap.Grounded,
		OnSlope:         snap.OnSlope,
		Sliding:         snap.Sliding,
		Jumping:         snap.Jumping,
		GroundSource:    snap.GroundSource,
		Camera:          presentation.Camera{Footstep: -1},
	}
	if r.camera != nil {
		f.Camera = r.camera()
	}
	r.rec.Frames = append(r.rec.Frames, f)
}

// Summary holds aggregate statistics of a recording.
type Summary struct {
	Ticks       int
	Duration    float64
	Distance    float64
	MeanSpeed   float64
	SpeedDev    float64
	MedianSpeed float64
	MaxSpeed    float64
	Jumps       int
	AirTime     float64
	SlideTime   float64
	Footsteps   int
}

// Summarize computes the summary of the recording.
func (r *Recording) Summarize() Summary {
	s := Summary{Ticks: len(r.Frames)}
	if len(r.Frames) == 0 {
		return s
	}

	speeds := make([]float64, 0, len(r.Frames))
	prev := r.Frames[0]
	for i, f := range r.Frames {
		speed := float64(f.BodySpeed)
		speeds = append(speeds, speed)
		s.MaxSpeed = max(s.MaxSpeed, speed)
		if f.Camera.Footstep >= 0 {
			s.Footsteps++
		}
		if i == 0 {
			if f.Jumping {
				s.Jumps++
			}
			continue
		}

		dt := f.Time - prev.Time
		s.Distance += float64(f.Position.Sub(prev.Position).Len())
		if f.Jumping && !prev.Jumping {
			s.Jumps++
		}
		if !f.Grounded {
			s.AirTime += dt
		}
		if f.Sliding {
			s.SlideTime += dt
		}
		prev = f
	}

	s.Duration = r.Frames[len(r.Frames)-1].Time - r.Frames[0].Time
	s.MeanSpeed = game.Mean(speeds)
	s.SpeedDev = game.StandardDeviation(speeds)
	s.MedianSpeed = game.Median(speeds)
	return s
}
