package telemetry

// AgentSample is one agent's contribution to the current window.
type AgentSample struct {
	Speed           float64
	AngularRate     float64
	NearestDistance float64
	HasNearest      bool
	Firing          bool
}

// Collector accumulates samples within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float64

	// Current window tracking
	windowStartTick int32

	speeds    []float64
	turns     []float64
	distances []float64
	firing    int
	events    [len(eventNames)]int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int32(1)
	if dt > 0 {
		ticksPerWindow = max(1, int32(windowDurationSec/dt+0.5))
	}
	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// WindowTicks returns the window length in ticks.
func (c *Collector) WindowTicks() int32 { return c.windowDurationTicks }

// RecordAgent records one agent's state for the current tick.
func (c *Collector) RecordAgent(s AgentSample) {
	c.speeds = append(c.speeds, s.Speed)
	if s.AngularRate < 0 {
		c.turns = append(c.turns, -s.AngularRate)
	} else {
		c.turns = append(c.turns, s.AngularRate)
	}
	if s.HasNearest {
		c.distances = append(c.distances, s.NearestDistance)
	}
	if s.Firing {
		c.firing++
	}
}

// RecordEvent counts an event in the current window.
func (c *Collector) RecordEvent(e Event) {
	if int(e.Type) < len(c.events) {
		c.events[e.Type]++
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets the window.
func (c *Collector) Flush(currentTick int32, agentCount, stimulusCount int) WindowStats {
	s := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,
		Agents:          agentCount,
		Stimuli:         stimulusCount,
		Samples:         len(c.speeds),
		Recognitions:    c.events[EventRecognized],
		Losses:          c.events[EventLost],
		Collisions:      c.events[EventCollision],
		Reconfigures:    c.events[EventReconfigure] + c.events[EventReset],
	}
	s.SpeedMean, s.SpeedStd, _, s.SpeedP50, _ = ComputeDistribution(c.speeds)
	s.TurnMean, s.TurnStd, _, _, s.TurnP90 = ComputeDistribution(c.turns)
	s.NearestMean, s.NearestStd, s.NearestP10, s.NearestP50, s.NearestP90 = ComputeDistribution(c.distances)
	if len(c.speeds) > 0 {
		s.FiringFraction = float64(c.firing) / float64(len(c.speeds))
	}

	c.windowStartTick = currentTick
	c.speeds = c.speeds[:0]
	c.turns = c.turns[:0]
	c.distances = c.distances[:0]
	c.firing = 0
	c.events = [len(eventNames)]int{}
	return s
}
