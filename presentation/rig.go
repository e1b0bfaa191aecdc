package presentation

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/strafekit/strafe/hook"
	"github.com/strafekit/strafe/locomotion"
)

// Camera is the presentation state of a single tick.
type Camera struct {
	Yaw, Pitch float32
	Bob        float32
	Shake      mgl32.Vec3
	// Footstep is the clip played during the tick, or -1.
	Footstep int
}

// Rig drives the camera effects and footsteps of a character from the snapshots its core publishes
// after every move. Any of the effects may be nil.
type Rig struct {
	Look      *Look
	HeadBob   *HeadBob
	Footsteps *Footsteps
	Shake     *Shake

	core   *locomotion.Core
	clock  locomotion.Clock
	handle hook.Handle
	camera Camera
}

// NewRig attaches a rig to the core. Close must be called to detach it.
func NewRig(core *locomotion.Core, clock locomotion.Clock, look *Look, bob *HeadBob, steps *Footsteps, shake *Shake) *Rig {
	r := &Rig{
		Look:      look,
		HeadBob:   bob,
		Footsteps: steps,
		Shake:     shake,
		core:      core,
		clock:     clock,
		camera:    Camera{Footstep: -1},
	}
	r.handle = core.AfterMove().Register(r.update)
	return r
}

// Close detaches the rig from the core.
func (r *Rig) Close() error {
	r.core.AfterMove().Unregister(r.handle)
	return nil
}

// Camera returns the state computed after the last tick.
func (r *Rig) Camera() Camera {
	return r.camera
}

func (r *Rig) update(snap locomotion.Snapshot) {
	dt := r.clock.DeltaTime()
	cam := Camera{Footstep: -1}
	if r.Look != nil {
		cam.Yaw, cam.Pitch = r.Look.Yaw(), r.Look.Pitch()
	}
	if r.HeadBob != nil {
		cam.Bob = r.HeadBob.Update(snap, dt)
	}
	if r.Footsteps != nil {
		cam.Footstep = r.Footsteps.Update(snap, snap.Time)
	}
	if r.Shake != nil {
		cam.Shake = r.Shake.Update(dt)
	}
	r.camera = cam
}
