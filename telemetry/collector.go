package telemetry

// Collector accumulates per-tick event counts and produces WindowStats.
type Collector struct {
	windowDurationTicks int32

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	terrainContacts int
	pairCollisions  int
	reflections     int
}

// NewCollector creates a collector that flushes every windowTicks ticks.
func NewCollector(windowTicks int32) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowDurationTicks: windowTicks}
}

// RecordTick adds the event counts of one simulation step.
func (c *Collector) RecordTick(contacts, pairs, reflections int) {
	c.terrainContacts += contacts
	c.pairCollisions += pairs
	c.reflections += reflections
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats from the grain buffers at the window end and
// resets the counters for the next window.
func (c *Collector) Flush(currentTick int32, pos, vel []float32) WindowStats {
	stats := BufferStats(pos, vel)
	stats.WindowStartTick = c.windowStartTick
	stats.WindowEndTick = currentTick
	stats.TerrainContacts = c.terrainContacts
	stats.PairCollisions = c.pairCollisions
	stats.Reflections = c.reflections

	c.Reset(currentTick)
	return stats
}

// Reset discards the current counts and starts a new window at tick.
func (c *Collector) Reset(tick int32) {
	c.windowStartTick = tick
	c.terrainContacts = 0
	c.pairCollisions = 0
	c.reflections = 0
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
