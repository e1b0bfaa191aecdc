package scenario

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml"
	"github.com/strafekit/strafe/config"
	"github.com/strafekit/strafe/game"
	"github.com/strafekit/strafe/input"
	"github.com/strafekit/strafe/oerror"
	"github.com/strafekit/strafe/world"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted run of a single character through a static world.
type Scenario struct {
	Name string `toml:"name" yaml:"name"`
	// TickRate is the number of ticks per second.
	TickRate float32 `toml:"tick_rate" yaml:"tick_rate"`
	Ticks    int     `toml:"ticks" yaml:"ticks"`
	// Seed drives the random footstep clips and camera shake.
	Seed int64 `toml:"seed" yaml:"seed"`

	// Spawn is the position of the character's feet.
	Spawn []float32 `toml:"spawn" yaml:"spawn"`
	Yaw   float32   `toml:"yaw" yaml:"yaw"`

	Boxes []Box  `toml:"box" yaml:"boxes"`
	Ramps []Ramp `toml:"ramp" yaml:"ramps"`

	Keyframes []Keyframe `toml:"keyframe" yaml:"keyframes"`

	// ExpectedDigest is the hex digest of the recording of a correct run. It is optional.
	ExpectedDigest string `toml:"expected_digest" yaml:"expected_digest"`
}

// Box is a solid box given by two opposite corners.
type Box struct {
	Min []float32 `toml:"min" yaml:"min"`
	Max []float32 `toml:"max" yaml:"max"`
}

// Ramp is a walkable slope. Min and Max are the (X, Z) corners of its footprint; Height is the
// height of its surface at the centre of the footprint and it rises at Angle degrees towards Yaw.
type Ramp struct {
	Min    []float32 `toml:"min" yaml:"min"`
	Max    []float32 `toml:"max" yaml:"max"`
	Height float32   `toml:"height" yaml:"height"`
	Angle  float32   `toml:"angle" yaml:"angle"`
	Yaw    float32   `toml:"yaw" yaml:"yaw"`
}

// Keyframe sets the input from its tick onwards, until the next keyframe.
type Keyframe struct {
	Tick int `toml:"tick" yaml:"tick"`
	// Move is the move axis, X strafing right and Y moving forward.
	Move []float32 `toml:"move" yaml:"move"`
	// Look is the look delta applied on every tick while the keyframe is active.
	Look   []float32 `toml:"look" yaml:"look"`
	Sprint bool      `toml:"sprint" yaml:"sprint"`
	Jump   bool      `toml:"jump" yaml:"jump"`
	// Shake starts a camera shake on the keyframe's tick.
	Shake bool `toml:"shake" yaml:"shake"`
	// Teleport moves the character's feet to this position on the keyframe's tick. It is optional.
	Teleport []float32 `toml:"teleport" yaml:"teleport"`
}

// Load reads a scenario from a TOML or YAML file, chosen by its extension.
func Load(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, oerror.New("error reading scenario: %v", err)
	}
	return Decode(data, config.Format(path))
}

// Decode decodes a scenario in the given format, "toml" or "yaml", and validates it.
func Decode(data []byte, format string) (Scenario, error) {
	var sc Scenario
	switch format {
	case "yaml":
		if err := yaml.Unmarshal(data, &sc); err != nil {
			return Scenario{}, oerror.New("error decoding yaml scenario: %v", err)
		}
	case "toml":
		if err := toml.Unmarshal(data, &sc); err != nil {
			return Scenario{}, oerror.New("error decoding toml scenario: %v", err)
		}
	default:
		return Scenario{}, oerror.New("unknown scenario format %q", format)
	}
	if err := sc.Validate(); err != nil {
		return Scenario{}, err
	}
	slices.SortStableFunc(sc.Keyframes, func(a, b Keyframe) int { return a.Tick - b.Tick })
	return sc, nil
}

// Validate reports the first problem with the scenario.
func (sc Scenario) Validate() error {
	switch {
	case !game.IsFinite(sc.TickRate) || sc.TickRate <= 0:
		return oerror.New("scenario %q: tick rate must be positive, got %v", sc.Name, sc.TickRate)
	case sc.Ticks <= 0:
		return oerror.New("scenario %q: tick count must be positive, got %v", sc.Name, sc.Ticks)
	}
	if _, err := vec3(sc.Spawn, "spawn", true); err != nil {
		return oerror.New("scenario %q: %v", sc.Name, err)
	}
	for i, b := range sc.Boxes {
		if _, err := b.BBox(); err != nil {
			return oerror.New("scenario %q: box %d: %v", sc.Name, i, err)
		}
	}
	for i, r := range sc.Ramps {
		if _, err := r.Ramp(); err != nil {
			return oerror.New("scenario %q: ramp %d: %v", sc.Name, i, err)
		}
	}
	for i, k := range sc.Keyframes {
		if k.Tick < 0 {
			return oerror.New("scenario %q: keyframe %d has a negative tick", sc.Name, i)
		}
		if _, err := vec2(k.Move, "move"); err != nil {
			return oerror.New("scenario %q: keyframe %d: %v", sc.Name, i, err)
		}
		if _, err := vec2(k.Look, "look"); err != nil {
			return oerror.New("scenario %q: keyframe %d: %v", sc.Name, i, err)
		}
		if _, err := vec3(k.Teleport, "teleport", true); err != nil {
			return oerror.New("scenario %q: keyframe %d: %v", sc.Name, i, err)
		}
	}
	if sc.ExpectedDigest != "" {
		if _, err := sc.Expected(); err != nil {
			return oerror.New("scenario %q: %v", sc.Name, err)
		}
	}
	return nil
}

// Expected parses ExpectedDigest.
func (sc Scenario) Expected() (uint64, error) {
	d, err := strconv.ParseUint(strings.TrimPrefix(sc.ExpectedDigest, "0x"), 16, 64)
	if err != nil {
		return 0, oerror.New("invalid expected digest %q", sc.ExpectedDigest)
	}
	return d, nil
}

// FormatDigest formats a digest the way ExpectedDigest is written.
func FormatDigest(d uint64) string {
	return fmt.Sprintf("%016x", d)
}

// World builds the world described by the scenario.
func (sc Scenario) World() (*world.World, error) {
	w := world.New()
	for i, b := range sc.Boxes {
		bb, err := b.BBox()
		if err != nil {
			return nil, oerror.New("box %d: %v", i, err)
		}
		w.AddBox(bb)
	}
	for i, r := range sc.Ramps {
		ramp, err := r.Ramp()
		if err != nil {
			return nil, oerror.New("ramp %d: %v", i, err)
		}
		if err := w.AddRamp(ramp); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// BBox ...
func (b Box) BBox() (cube.BBox, error) {
	lo, err := vec3(b.Min, "min", false)
	if err != nil {
		return cube.BBox{}, err
	}
	hi, err := vec3(b.Max, "max", false)
	if err != nil {
		return cube.BBox{}, err
	}
	return cube.Box(lo.X(), lo.Y(), lo.Z(), hi.X(), hi.Y(), hi.Z()), nil
}

// Ramp ...
func (r Ramp) Ramp() (world.Ramp, error) {
	lo, err := vec2(r.Min, "min")
	if err != nil {
		return world.Ramp{}, err
	}
	hi, err := vec2(r.Max, "max")
	if err != nil {
		return world.Ramp{}, err
	}
	if !game.IsFinite(r.Height) || !game.IsFinite(r.Angle) || !game.IsFinite(r.Yaw) {
		return world.Ramp{}, oerror.New("ramp values must be finite")
	}
	if r.Angle < 0 || r.Angle >= 90 {
		return world.Ramp{}, oerror.New("ramp angle must be within [0, 90), got %v", r.Angle)
	}
	return world.NewRamp(lo, hi, r.Height, r.Angle, r.Yaw), nil
}

// State returns the input state the keyframe holds.
func (k Keyframe) State() input.State {
	move, _ := vec2(k.Move, "move")
	look, _ := vec2(k.Look, "look")
	return input.State{Movement: move, Look: look, Sprint: k.Sprint, JumpHeld: k.Jump}
}

// Destination returns where the keyframe teleports the character to, if anywhere.
func (k Keyframe) Destination() (mgl32.Vec3, bool) {
	if len(k.Teleport) == 0 {
		return mgl32.Vec3{}, false
	}
	v, err := vec3(k.Teleport, "teleport", false)
	return v, err == nil
}

// vec3 converts a three element list. An empty list is the zero vector if optional is set.
func vec3(v []float32, name string, optional bool) (mgl32.Vec3, error) {
	if len(v) == 0 && optional {
		return mgl32.Vec3{}, nil
	}
	if len(v) != 3 {
		return mgl32.Vec3{}, oerror.New("%s must have 3 components, got %d", name, len(v))
	}
	out := mgl32.Vec3{v[0], v[1], v[2]}
	if game.FiniteVec3(out) != out {
		return mgl32.Vec3{}, oerror.New("%s must be finite, got %v", name, out)
	}
	return out, nil
}

// vec2 converts an optional two element list.
func vec2(v []float32, name string) (mgl32.Vec2, error) {
	if len(v) == 0 {
		return mgl32.Vec2{}, nil
	}
	if len(v) != 2 {
		return mgl32.Vec2{}, oerror.New("%s must have 2 components, got %d", name, len(v))
	}
	out := mgl32.Vec2{v[0], v[1]}
	if game.FiniteVec2(out) != out {
		return mgl32.Vec2{}, oerror.New("%s must be finite, got %v", name, out)
	}
	return out, nil
}
