package scenario

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/strafekit/strafe/config"
	"github.com/strafekit/strafe/input"
	"github.com/strafekit/strafe/locomotion"
	"github.com/strafekit/strafe/modifier"
	"github.com/strafekit/strafe/oerror"
	"github.com/strafekit/strafe/presentation"
	"github.com/strafekit/strafe/recording"
	"github.com/strafekit/strafe/world"
)

// ClipLength is how long a footstep clip keeps the simulated audio source busy, in seconds.
const ClipLength = 0.25

// clipSink is an audio source that plays nothing, but stays busy for ClipLength after every clip.
type clipSink struct {
	clock *world.Clock
	until float64
}

func (s *clipSink) Playing() bool {
	return s.clock.Now() < s.until
}

func (s *clipSink) PlayOneShot(int) {
	s.until = s.clock.Now() + ClipLength
}

// Run plays the scenario with the given settings and returns the recording of every tick. The
// context is checked between ticks. A nil logger discards all output; at trace level every step of
// every tick is logged.
func Run(ctx context.Context, sc Scenario, s config.Settings, log *logrus.Logger) (*recording.Recording, error) {
	if log == nil {
		log = logrus.New()
		log.Out = io.Discard
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	w, err := sc.World()
	if err != nil {
		return nil, oerror.New("scenario %q: %v", sc.Name, err)
	}
	spawn, _ := vec3(sc.Spawn, "spawn", true)
	clock := world.NewClock(1 / sc.TickRate)
	body, err := world.NewBody(w, s.BodyConfig(), clock, spawn)
	if err != nil {
		return nil, oerror.New("scenario %q: %v", sc.Name, err)
	}

	in := input.NewHandler()
	look := presentation.NewLook(s.LookConfig())
	look.SetRotation(sc.Yaw, 0)

	core, err := locomotion.New(s.LocomotionConfig(), locomotion.Environment{
		Body:    body,
		Caster:  w,
		Clock:   clock,
		Heading: look,
		Input:   in,
	}, log)
	if err != nil {
		return nil, oerror.New("scenario %q: %v", sc.Name, err)
	}
	core.Dbg.Enabled = log.IsLevelEnabled(logrus.TraceLevel)

	jump := modifier.NewJump(core, in, clock, s.JumpConfig())
	defer jump.Close()
	sprint := modifier.NewSprint(core, s.SprintConfig())
	defer sprint.Close()

	shake := presentation.NewShake(s.ShakeConfig(), nil, sc.Seed)
	rig := presentation.NewRig(core, clock, look,
		presentation.NewHeadBob(s.HeadBobConfig()),
		presentation.NewFootsteps(s.FootstepsConfig(), &clipSink{clock: clock}, s.Footsteps.Clips, sc.Seed),
		shake,
	)
	defer rig.Close()

	rec := recording.NewRecorder(recording.New(recording.Header{Name: sc.Name, TickRate: sc.TickRate}), core, in, rig.Camera)
	defer rec.Close()

	log.WithFields(logrus.Fields{"scenario": sc.Name, "ticks": sc.Ticks, "boxes": len(sc.Boxes), "ramps": len(sc.Ramps)}).Debug("running scenario")

	next := 0
	for tick := 0; tick < sc.Ticks; tick++ {
		if err := ctx.Err(); err != nil {
			return nil, oerror.New("scenario %q stopped at tick %d: %v", sc.Name, tick, err)
		}
		clock.Advance()
		for next < len(sc.Keyframes) && sc.Keyframes[next].Tick <= tick {
			k := sc.Keyframes[next]
			in.Apply(k.State())
			if k.Shake {
				shake.Start()
			}
			if dst, ok := k.Destination(); ok {
				body.Teleport(dst)
				log.WithFields(logrus.Fields{"scenario": sc.Name, "tick": tick}).Debugf("teleported to %v", dst)
			}
			next++
		}
		look.Update(in.State().Look)
		core.Tick()
	}

	out := rec.Recording()
	log.WithFields(logrus.Fields{"scenario": sc.Name, "frames": len(out.Frames)}).Debugf("scenario finished with digest %s", FormatDigest(out.Digest()))
	return out, nil
}

// Verify compares the digest of a recording with the one the scenario expects. A scenario without
// an expected digest always verifies.
func Verify(sc Scenario, rec *recording.Recording) error {
	if sc.ExpectedDigest == "" {
		return nil
	}
	want, err := sc.Expected()
	if err != nil {
		return err
	}
	if got := rec.Digest(); got != want {
		return oerror.New("scenario %q: digest mismatch: expected %s, got %s", sc.Name, FormatDigest(want), FormatDigest(got))
	}
	return nil
}
