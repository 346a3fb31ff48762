package frame

// Tick is the read-only context handed to every per-frame update.
// Elapsed is seconds since the scene was mounted; Delta is seconds since the previous tick.
type Tick struct {
	Elapsed float32
	Delta   float32
}

// Clock accumulates elapsed time from frame deltas. It only moves when Advance is called,
// so time stands still while the loop is stopped. A new Clock starts at zero.
type Clock struct {
	elapsed float64 // float64 so long sessions do not drift
	ticks   uint64
}

// Advance adds delta seconds (negative values count as zero) and returns the tick for this frame.
func (c *Clock) Advance(delta float32) Tick {
	if delta < 0 {
		delta = 0
	}
	c.elapsed += float64(delta)
	c.ticks++
	return Tick{Elapsed: float32(c.elapsed), Delta: delta}
}

// Elapsed returns seconds accumulated so far.
func (c *Clock) Elapsed() float32 {
	return float32(c.elapsed)
}

// Ticks returns how many times Advance has been called.
func (c *Clock) Ticks() uint64 {
	return c.ticks
}
