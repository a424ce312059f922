package game

import (
	"log/slog"

	"github.com/pthm-cable/vehicles/telemetry"
	"github.com/pthm-cable/vehicles/vehicle"
)

// recordTick feeds the tick into the collector, emits recognition and
// collision events, writes trace rows and flushes a finished window.
func (a *Arena) recordTick(r TickResult) {
	for i, s := range r.Agents {
		a.collector.RecordAgent(telemetry.AgentSample{
			Speed:           s.Output.Speed,
			AngularRate:     s.Output.AngularRate,
			NearestDistance: s.NearestDistance,
			HasNearest:      s.Nearest >= 0,
			Firing:          s.TargetID >= 0,
		})

		prev := a.lastTarget[i]
		switch {
		case s.TargetID >= 0 && s.TargetID != prev:
			a.emit(telemetry.NewEvent(telemetry.EventRecognized, r.Tick, s.ID, s.TargetID, ""))
		case s.TargetID < 0 && prev >= 0:
			a.emit(telemetry.NewEvent(telemetry.EventLost, r.Tick, s.ID, prev, ""))
		}
		a.lastTarget[i] = s.TargetID
	}

	for _, c := range r.Contacts {
		a.emit(telemetry.NewEvent(telemetry.EventCollision, r.Tick, c.A, c.B, ""))
	}

	if every := a.cfg.Telemetry.TraceEvery; every > 0 && a.output != nil && r.Tick%int32(every) == 0 {
		if err := a.output.WriteTrace(traceRows(r)); err != nil {
			slog.Error("failed to write trace", "error", err)
		}
	}

	a.flushTelemetry()
}

// emit counts an event and records it to the enabled sinks.
func (a *Arena) emit(e telemetry.Event) {
	a.collector.RecordEvent(e)
	if a.opts.LogStats {
		e.LogEvent()
	}
	if a.output != nil {
		if err := a.output.WriteEvent(e); err != nil {
			slog.Error("failed to write event", "error", err)
		}
	}
}

// flushTelemetry checks if the stats window should be flushed.
func (a *Arena) flushTelemetry() {
	if !a.collector.ShouldFlush(a.tick) {
		return
	}

	stats := a.collector.Flush(a.tick, len(a.agents), a.stimuli.Len())
	perfStats := a.perf.Stats()

	if a.opts.StatsCallback != nil {
		a.opts.StatsCallback(stats)
	}

	if a.opts.LogStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if a.output != nil {
		if err := a.output.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := a.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

func traceRows(r TickResult) []telemetry.TraceRow {
	rows := make([]telemetry.TraceRow, len(r.Agents))
	for i, s := range r.Agents {
		rows[i] = traceRow(r, s)
	}
	return rows
}

func traceRow(r TickResult, s vehicle.State) telemetry.TraceRow {
	return telemetry.TraceRow{
		Tick:            r.Tick,
		SimTimeSec:      r.Time,
		AgentID:         s.ID,
		Name:            s.Name,
		X:               s.Pose.Position.X,
		Y:               s.Pose.Position.Y,
		Heading:         s.Pose.Heading,
		LeftActivation:  s.Output.LeftActivation,
		RightActivation: s.Output.RightActivation,
		LeftMotor:       s.Output.LeftMotor,
		RightMotor:      s.Output.RightMotor,
		Speed:           s.Output.Speed,
		AngularRate:     s.Output.AngularRate,
		Nearest:         s.Nearest,
		NearestDistance: s.NearestDistance,
		TargetID:        s.TargetID,
		Law:             string(s.Law),
		Crossed:         s.Wiring.Crossed,
		Inhibitory:      s.Wiring.Inhibitory,
	}
}
