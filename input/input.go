package input

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/strafekit/strafe/game"
	"github.com/strafekit/strafe/hook"
)

// State represents a single tick's input intents.
type State struct {
	// Movement is the move axis: X strafes right, Y moves forward. Each axis is in [-1, 1].
	Movement mgl32.Vec2 `json:"movement"`
	// Look is the raw look delta for this tick.
	Look mgl32.Vec2 `json:"look"`

	Sprint   bool `json:"sprint"`
	JumpHeld bool `json:"jump_held"`
}

// IsMoving reports whether any movement axis is non-zero.
func (s State) IsMoving() bool {
	return s.Movement[0] != 0 || s.Movement[1] != 0
}

// Handler owns the input State. The platform input layer writes into it once per tick and the
// locomotion core reads from it.
type Handler struct {
	state       State
	jumpPressed *hook.Registry[func()]
}

// NewHandler returns a Handler with no input applied.
func NewHandler() *Handler {
	return &Handler{jumpPressed: hook.NewRegistry[func()]()}
}

// State returns the current input state.
func (h *Handler) State() State {
	return h.state
}

// JumpPressed returns the registry notified every time the jump button goes from released to held.
func (h *Handler) JumpPressed() *hook.Registry[func()] {
	return h.jumpPressed
}

// SetMovement updates the move axis. Non-finite values are dropped and each axis is clamped to [-1, 1].
func (h *Handler) SetMovement(v mgl32.Vec2) {
	v = game.FiniteVec2(v)
	h.state.Movement = mgl32.Vec2{game.ClampFloat(v[0], -1, 1), game.ClampFloat(v[1], -1, 1)}
}

// SetLook updates the look delta. Non-finite deltas are dropped.
func (h *Handler) SetLook(v mgl32.Vec2) {
	h.state.Look = game.FiniteVec2(v)
}

// SetSprint updates the sprint button.
func (h *Handler) SetSprint(held bool) {
	h.state.Sprint = held
}

// SetJump updates the jump button. Pressing it notifies the JumpPressed subscribers; holding it
// does not notify them again.
func (h *Handler) SetJump(held bool) {
	pressed := held && !h.state.JumpHeld
	h.state.JumpHeld = held
	if pressed {
		h.jumpPressed.Each(func(f func()) { f() })
	}
}

// Apply replaces the whole state, firing the jump edge where applicable.
func (h *Handler) Apply(s State) {
	h.SetMovement(s.Movement)
	h.SetLook(s.Look)
	h.SetSprint(s.Sprint)
	h.SetJump(s.JumpHeld)
}
