package telemetry

import (
	"log/slog"
	"maps"
	"slices"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase names for the simulation step.
const (
	PhaseTargets   = "targets"
	PhaseSnapshot  = "snapshot"
	PhaseAgents    = "agents"
	PhaseCollision = "collision"
	PhaseTelemetry = "telemetry"
)

// Phases lists the step phases in execution order.
var Phases = []string{PhaseTargets, PhaseSnapshot, PhaseAgents, PhaseCollision, PhaseTelemetry}

func phaseIndex(phase string) int {
	return slices.Index(Phases, phase)
}

// tickTiming is one tick's wall time split by phase.
type tickTiming struct {
	total  time.Duration
	phases [5]time.Duration // indexed like Phases
}

// stepSmoothing is the moving-average weight of a new vehicle step.
const stepSmoothing = 0.05

// agentTiming is a moving average of vehicle step time for one behaviour.
type agentTiming struct {
	avg   float64 // nanoseconds
	steps int
}

func (t *agentTiming) add(d time.Duration) {
	if t.steps == 0 {
		t.avg = float64(d)
	} else {
		t.avg += stepSmoothing * (float64(d) - t.avg)
	}
	t.steps++
}

// PerfCollector times arena ticks over a rolling window of ticks, split by
// phase, and vehicle steps split by behaviour. Not safe for concurrent use.
type PerfCollector struct {
	ticks []tickTiming
	next  int
	count int

	current    tickTiming
	tickStart  time.Time
	phaseStart time.Time
	phase      int // index into Phases, -1 between ticks

	agents    map[string]*agentTiming
	allAgents agentTiming

	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector keeps the last window ticks; values below 1 mean 60.
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	return &PerfCollector{
		ticks:  make([]tickTiming, window),
		phase:  -1,
		agents: make(map[string]*agentTiming),
	}
}

// StartTick begins timing a tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.current = tickTiming{}
	p.phase = -1
}

// StartPhase closes the running phase and starts timing phase. Unknown
// phase names still close the running phase but are not recorded.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	p.closePhase(now)
	p.phaseStart = now
	p.phase = phaseIndex(phase)
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase >= 0 {
		p.current.phases[p.phase] += now.Sub(p.phaseStart)
	}
	p.phase = -1
}

// RecordAgent adds one vehicle step of duration d under behavior.
func (p *PerfCollector) RecordAgent(behavior string, d time.Duration) {
	t, ok := p.agents[behavior]
	if !ok {
		t = &agentTiming{}
		p.agents[behavior] = t
	}
	t.add(d)
	p.allAgents.add(d)
}

// EndTick closes the running phase and stores the tick.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.current.total = now.Sub(p.tickStart)

	p.ticks[p.next] = p.current
	p.next = (p.next + 1) % len(p.ticks)
	p.count = min(p.count+1, len(p.ticks))
}

// RecordFrame marks a rendered frame.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats summarizes the window.
type PerfStats struct {
	AvgTick        time.Duration
	P95Tick        time.Duration
	MaxTick        time.Duration
	TicksPerSecond float64

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64 // share of the average tick

	// AgentAvg is the smoothed single-vehicle step time per behaviour.
	AgentAvg   map[string]time.Duration
	AgentStep  time.Duration // smoothed over all behaviours
	AgentSteps int

	FPS float64
}

// Stats summarizes the tick window and the vehicle step averages.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		PhaseAvg: make(map[string]time.Duration, len(Phases)),
		PhasePct: make(map[string]float64, len(Phases)),
		AgentAvg: make(map[string]time.Duration, len(p.agents)),
	}
	if p.frame > 0 {
		s.FPS = float64(time.Second) / float64(p.frame)
	}

	for name, t := range p.agents {
		s.AgentAvg[name] = time.Duration(t.avg)
	}
	s.AgentStep = time.Duration(p.allAgents.avg)
	s.AgentSteps = p.allAgents.steps

	if p.count == 0 {
		return s
	}

	totals := make([]float64, p.count)
	var phaseSum [5]time.Duration
	for i, t := range p.ticks[:p.count] {
		totals[i] = float64(t.total)
		for j, d := range t.phases {
			phaseSum[j] += d
		}
	}

	avg := stat.Mean(totals, nil)
	slices.Sort(totals)
	s.AvgTick = time.Duration(avg)
	s.P95Tick = time.Duration(Percentile(totals, 0.95))
	s.MaxTick = time.Duration(totals[len(totals)-1])
	if avg > 0 {
		s.TicksPerSecond = float64(time.Second) / avg
	}

	for j, name := range Phases {
		phaseAvg := phaseSum[j] / time.Duration(p.count)
		s.PhaseAvg[name] = phaseAvg
		if avg > 0 {
			s.PhasePct[name] = float64(phaseAvg) / avg * 100
		}
	}
	return s
}

// LogStats logs the summary at info level.
func (s PerfStats) LogStats() {
	slog.Info("perf", "stats", s)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTick.Microseconds()),
		slog.Int64("p95_tick_us", s.P95Tick.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTick.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, name := range Phases {
		if pct := s.PhasePct[name]; pct > 0.1 {
			attrs = append(attrs, slog.Float64(name+"_pct", pct))
		}
	}
	for _, name := range slices.Sorted(maps.Keys(s.AgentAvg)) {
		attrs = append(attrs, slog.Float64(name+"_step_us", float64(s.AgentAvg[name].Nanoseconds())/1e3))
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd    int32   `csv:"window_end"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	P95TickUS    int64   `csv:"p95_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	AgentStepUS  float64 `csv:"agent_step_us"`
	AgentsPct    float64 `csv:"agents_pct"`
	CollisionPct float64 `csv:"collision_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgTickUS:    s.AvgTick.Microseconds(),
		P95TickUS:    s.P95Tick.Microseconds(),
		MaxTickUS:    s.MaxTick.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		AgentStepUS:  float64(s.AgentStep.Nanoseconds()) / 1e3,
		AgentsPct:    s.PhasePct[PhaseAgents],
		CollisionPct: s.PhasePct[PhaseCollision],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
