package fdtd

// Clock is the accumulated simulation time. It only moves forward, by the dt
// of each completed tick.
type Clock struct {
	t     float64
	ticks int
}

func (c *Clock) Now() float64 { return c.t }
func (c *Clock) Ticks() int   { return c.ticks }

func (c *Clock) advance(dt float64) {
	c.t += dt
	c.ticks++
}

// Reset rewinds the clock to zero.
func (c *Clock) Reset() {
	c.t = 0
	c.ticks = 0
}
