package game

const (
	ErrorMissingBody    = "locomotion: a body is required"
	ErrorMissingCaster  = "locomotion: a ground caster is required"
	ErrorMissingClock   = "locomotion: a clock is required"
	ErrorMissingHeading = "locomotion: a heading is required"
	ErrorMissingInput   = "locomotion: an input handler is required"

	ErrorNonFiniteVelocity    = "locomotion: non-finite velocity %v reset at tick %d"
	ErrorNonFiniteModifierVel = "locomotion: non-finite velocity %v from modifiers ignored at tick %d"
	ErrorNonFiniteMultiplier  = "locomotion: non-finite speed multiplier %v reset to 1 at tick %d"
)
