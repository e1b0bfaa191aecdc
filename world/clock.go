package world

// Clock advances simulation time by a fixed step.
type Clock struct {
	step float32
	tick uint64
}

// NewClock returns a Clock at time zero advancing by step seconds.
func NewClock(step float32) *Clock {
	return &Clock{step: step}
}

// Advance moves the clock forward by one step.
func (c *Clock) Advance() {
	c.tick++
}

// Now returns the simulation time in seconds.
func (c *Clock) Now() float64 {
	return float64(c.tick) * float64(c.step)
}

// DeltaTime returns the fixed step.
func (c *Clock) DeltaTime() float32 {
	return c.step
}

// Tick returns the number of steps taken.
func (c *Clock) Tick() uint64 {
	return c.tick
}
