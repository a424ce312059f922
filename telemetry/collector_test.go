package telemetry

import (
	"math"
	"testing"
)

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(1, 0.25)
	if c.WindowTicks() != 4 {
		t.Fatalf("window = %d ticks, want 4", c.WindowTicks())
	}
	if c.ShouldFlush(3) {
		t.Error("flushed early")
	}
	if !c.ShouldFlush(4) {
		t.Error("did not flush at window end")
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(1, 0.25)
	c.RecordAgent(AgentSample{Speed: 1, AngularRate: -2, NearestDistance: 100, HasNearest: true})
	c.RecordAgent(AgentSample{Speed: 3, AngularRate: 2, NearestDistance: 300, HasNearest: true, Firing: true})
	c.RecordAgent(AgentSample{Speed: 2})
	c.RecordEvent(NewEvent(EventCollision, 2, 0, 1, ""))
	c.RecordEvent(NewEvent(EventRecognized, 3, 1, 5, "olive"))
	c.RecordEvent(NewEvent(EventReset, 3, -1, -1, "all"))

	s := c.Flush(4, 2, 1)

	if s.Samples != 3 || s.Agents != 2 || s.Stimuli != 1 {
		t.Errorf("counts = %+v", s)
	}
	if math.Abs(s.SpeedMean-2) > 1e-9 {
		t.Errorf("speed mean = %v, want 2", s.SpeedMean)
	}
	if math.Abs(s.TurnMean-4.0/3) > 1e-9 {
		t.Errorf("turn mean = %v, want |rate| mean 4/3", s.TurnMean)
	}
	if math.Abs(s.NearestMean-200) > 1e-9 || s.NearestP50 != 200 {
		t.Errorf("nearest = %v / %v", s.NearestMean, s.NearestP50)
	}
	if math.Abs(s.FiringFraction-1.0/3) > 1e-9 {
		t.Errorf("firing fraction = %v", s.FiringFraction)
	}
	if s.Collisions != 1 || s.Recognitions != 1 || s.Reconfigures != 1 {
		t.Errorf("events = %+v", s)
	}
	if math.Abs(s.SimTimeSec-1) > 1e-9 {
		t.Errorf("sim time = %v", s.SimTimeSec)
	}

	// Next window starts clean.
	next := c.Flush(8, 2, 1)
	if next.Samples != 0 || next.Collisions != 0 || next.WindowStartTick != 4 {
		t.Errorf("window not reset: %+v", next)
	}
}

func TestEventNames(t *testing.T) {
	for i, name := range eventNames {
		if EventType(i).String() != name {
			t.Errorf("EventType(%d) = %s", i, EventType(i))
		}
	}
	if e := NewEvent(EventLost, 1, 2, 3, ""); e.Name != "lost" {
		t.Errorf("name = %q", e.Name)
	}
}
