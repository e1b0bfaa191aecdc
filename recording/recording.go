package recording

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"strings"

	"github.com/disgoorg/json"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/strafekit/strafe/ground"
	"github.com/strafekit/strafe/input"
	"github.com/strafekit/strafe/oerror"
	"github.com/strafekit/strafe/presentation"
	"github.com/zeebo/xxh3"
)

// CurrentVersion is written as the first line of every recording file so that older files can be
// rejected instead of misread.
const CurrentVersion = "1"

// Header describes what was recorded.
type Header struct {
	Name     string  `json:"name"`
	TickRate float32 `json:"tick_rate"`
}

// Frame is the state of a character after a single tick.
type Frame struct {
	Tick uint64  `json:"tick"`
	Time float64 `json:"time"`

	Input input.State `json:"input"`

	Position        mgl32.Vec3    `json:"position"`
	Velocity        mgl32.Vec3    `json:"velocity"`
	SpeedMultiplier float32       `json:"speed_multiplier"`
	BodySpeed       float32       `json:"body_speed"`
	Grounded        bool          `json:"grounded"`
	OnSlope         bool          `json:"on_slope"`
	Sliding         bool          `json:"sliding"`
	Jumping         bool          `json:"jumping"`
	GroundSource    ground.Source `json:"ground_source"`

	Camera presentation.Camera `json:"camera"`
}

// Recording is a header followed by one frame per tick.
type Recording struct {
	Version string
	Header  Header
	Frames  []Frame
}

// New returns an empty recording.
func New(h Header) *Recording {
	return &Recording{Version: CurrentVersion, Header: h}
}

// quantum is the resolution floats are rounded to before hashing, so that digests are stable
// against differences in the last bits of a float.
const quantum = 1e4

// Digest returns a hash of every frame. Two runs of the same scenario produce the same digest.
func (r *Recording) Digest() uint64 {
	h := xxh3.New()
	buf := make([]byte, 0, 256)
	for _, f := range r.Frames {
		buf = f.appendQuantised(buf[:0])
		_, _ = h.Write(buf)
	}
	return h.Sum64()
}

func (f Frame) appendQuantised(buf []byte) []byte {
	q := func(v float64) {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(int64(math.Round(v*quantum))))
	}
	b := func(v bool) {
		if v {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
	}

	buf = binary.LittleEndian.AppendUint64(buf, f.Tick)
	q(f.Time)
	for _, v := range [...]float32{
		f.Input.Movement.X(), f.Input.Movement.Y(), f.Input.Look.X(), f.Input.Look.Y(),
		f.Position.X(), f.Position.Y(), f.Position.Z(),
		f.Velocity.X(), f.Velocity.Y(), f.Velocity.Z(),
		f.SpeedMultiplier, f.BodySpeed,
		f.Camera.Yaw, f.Camera.Pitch, f.Camera.Bob,
		f.Camera.Shake.X(), f.Camera.Shake.Y(), f.Camera.Shake.Z(),
	} {
		q(float64(v))
	}
	b(f.Input.Sprint)
	b(f.Input.JumpHeld)
	b(f.Grounded)
	b(f.OnSlope)
	b(f.Sliding)
	b(f.Jumping)
	buf = append(buf, byte(f.GroundSource))
	return binary.LittleEndian.AppendUint64(buf, uint64(int64(f.Camera.Footstep)))
}

// Save writes the recording to path: the version, the header and then one JSON frame per line.
func (r *Recording) Save(path string) error {
	var buf bytes.Buffer
	buf.WriteString(r.Version + "\n")

	enc, err := json.Marshal(r.Header)
	if err != nil {
		return oerror.New("unable to encode recording header: %v", err)
	}
	buf.Write(enc)
	buf.WriteString("\n")

	for _, f := range r.Frames {
		enc, err := json.Marshal(f)
		if err != nil {
			return oerror.New("unable to encode frame %d: %v", f.Tick, err)
		}
		buf.Write(enc)
		buf.WriteString("\n")
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return oerror.New("unable to write recording file: %v", err)
	}
	return nil
}

// Load decodes a recording file written by Save. It returns an error if the file could not be
// parsed, or if the version of the recording is not supported.
func Load(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, oerror.New("unable to open recording file: %v", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	rec := &Recording{}
	if !sc.Scan() {
		return nil, oerror.New("recording file is empty")
	}
	rec.Version = strings.TrimSpace(sc.Text())
	if rec.Version != CurrentVersion {
		return nil, oerror.New("unsupported recording version: %s", rec.Version)
	}

	if !sc.Scan() {
		return nil, oerror.New("recording file has no header")
	}
	if err := json.Unmarshal(sc.Bytes(), &rec.Header); err != nil {
		return nil, oerror.New("unable to decode recording header: %v", err)
	}

	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var frame Frame
		if err := json.Unmarshal(line, &frame); err != nil {
			return nil, oerror.New("unable to decode frame %d: %v", len(rec.Frames), err)
		}
		rec.Frames = append(rec.Frames, frame)
	}
	if err := sc.Err(); err != nil {
		return nil, oerror.New("unable to read recording file: %v", err)
	}
	return rec, nil
}
