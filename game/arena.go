// Package game drives the arena: stimuli in an ECS world, vehicles in a
// fixed order, and the per-tick telemetry hooks. It owns no rendering.
package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/vehicles/config"
	"github.com/pthm-cable/vehicles/kinematics"
	"github.com/pthm-cable/vehicles/systems"
	"github.com/pthm-cable/vehicles/telemetry"
	"github.com/pthm-cable/vehicles/vehicle"
)

// GridCellSize is the spatial grid cell size used for stimulus picking.
const GridCellSize = 64.0

// ErrUnknownAgent is returned when an agent ID does not exist.
var ErrUnknownAgent = errors.New("unknown agent")

// ErrUnknownStimulus is returned when a stimulus ID does not exist.
var ErrUnknownStimulus = systems.ErrUnknownStimulus

// Options configures an Arena beyond its config.
type Options struct {
	Seed          int64                       // jitter seed, 0 = config value
	Output        *telemetry.OutputManager    // nil disables CSV output
	LogStats      bool                        // log window stats and events
	StatsCallback func(telemetry.WindowStats) // called after each flushed window
}

// TickResult is the read-only outcome of one tick.
type TickResult struct {
	Tick     int32
	Time     float64
	Agents   []vehicle.State
	Stimuli  []systems.StimulusView // as sensed this tick
	Contacts []kinematics.Contact   // agent index pairs
}

// Arena advances all agents and stimuli one tick at a time. It is not safe
// for concurrent use; renderers read results between ticks.
type Arena struct {
	cfg  *config.Config
	opts Options
	seed int64

	world   *ecs.World
	stimuli *systems.StimulusStore
	targets *systems.TargetSystem
	grid    *systems.SpatialGrid

	agents      []*vehicle.Agent
	stepProfile []int // current threshold profile per agent, 0 = none
	lastTarget  []int // recognized target per agent on the previous tick
	jitter      bool

	tick     int32
	time     float64
	snapshot []systems.StimulusView
	last     TickResult

	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	output    *telemetry.OutputManager
}

// NewArena builds an arena from a validated config.
func NewArena(cfg *config.Config, opts Options) (*Arena, error) {
	if cfg == nil {
		return nil, errors.New("game: nil config")
	}
	seed := opts.Seed
	if seed == 0 {
		seed = cfg.Jitter.Seed
	}

	world := ecs.NewWorld()
	bounds := systems.Bounds{Width: cfg.Derived.ArenaW, Height: cfg.Derived.ArenaH}
	a := &Arena{
		cfg:       cfg,
		opts:      opts,
		seed:      seed,
		world:     world,
		stimuli:   systems.NewStimulusStore(world),
		targets:   systems.NewTargetSystem(world, bounds, cfg.Physics.TargetScale),
		grid:      systems.NewSpatialGrid(bounds.Width, bounds.Height, GridCellSize),
		jitter:    cfg.Jitter.Enabled,
		collector: telemetry.NewCollector(cfg.Telemetry.StatsWindowSec, cfg.Physics.DT),
		perf:      telemetry.NewPerfCollector(60),
		output:    opts.Output,
	}

	if err := a.populate(); err != nil {
		return nil, err
	}
	a.last = a.result(nil)
	return a, nil
}

// populate creates stimuli and agents from the config.
func (a *Arena) populate() error {
	for i, sc := range a.cfg.Stimuli {
		spec, err := stimulusSpec(sc)
		if err != nil {
			return fmt.Errorf("stimuli[%d]: %w", i, err)
		}
		a.stimuli.Add(spec)
	}

	var errs []error
	for i, ac := range a.cfg.Agents {
		agent, err := buildAgent(i, ac, a.cfg)
		if err != nil {
			errs = append(errs, fmt.Errorf("agents[%d]: %w", i, err))
			continue
		}
		a.agents = append(a.agents, agent)
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	a.stepProfile = make([]int, len(a.agents))
	a.lastTarget = make([]int, len(a.agents))
	for i, ag := range a.agents {
		a.lastTarget[i] = -1
		ag.SetJitter(a.newJitter(i))
	}
	a.snapshot = a.stimuli.Snapshot(a.snapshot)
	return nil
}

// Step advances the arena by dt seconds. A non-positive or non-finite dt falls
// back to the configured physics.dt.
func (a *Arena) Step(dt float64) TickResult {
	if !(dt > 0) || math.IsInf(dt, 0) {
		dt = a.cfg.Physics.DT
	}

	a.perf.StartTick()

	a.perf.StartPhase(telemetry.PhaseTargets)
	a.targets.Update(dt)

	// Every agent senses the same stimulus positions this tick.
	a.perf.StartPhase(telemetry.PhaseSnapshot)
	a.snapshot = a.stimuli.Snapshot(a.snapshot)

	a.perf.StartPhase(telemetry.PhaseAgents)
	dtScale := 1.0
	if a.cfg.Physics.DeltaTime {
		dtScale = dt
	}
	states := make([]vehicle.State, len(a.agents))
	for i, ag := range a.agents {
		start := time.Now()
		states[i] = ag.Step(a.snapshot, a.time, dtScale)
		a.perf.RecordAgent(ag.Behavior().String(), time.Since(start))
	}

	a.perf.StartPhase(telemetry.PhaseCollision)
	var contacts []kinematics.Contact
	if a.cfg.Physics.Collisions {
		contacts = a.resolveCollisions(states)
	}

	a.tick++
	a.time += dt

	a.perf.StartPhase(telemetry.PhaseTelemetry)
	a.last = TickResult{
		Tick:     a.tick,
		Time:     a.time,
		Agents:   states,
		Stimuli:  slices.Clone(a.snapshot),
		Contacts: contacts,
	}
	a.recordTick(a.last)

	a.perf.EndTick()
	return a.last
}

// resolveCollisions reflects overlapping vehicles after everyone has moved.
func (a *Arena) resolveCollisions(states []vehicle.State) []kinematics.Contact {
	if len(a.agents) < 2 {
		return nil
	}
	poses := make([]kinematics.Pose, len(a.agents))
	bodies := make([]kinematics.Body, len(a.agents))
	for i, ag := range a.agents {
		poses[i] = ag.Pose()
		bodies[i] = kinematics.Body{Pose: &poses[i], Radius: ag.Radius()}
	}
	contacts := kinematics.ResolveCollisions(bodies)
	for _, c := range contacts {
		for _, idx := range []int{c.A, c.B} {
			states[idx] = a.agents[idx].SetHeading(poses[idx].Heading)
		}
	}
	return contacts
}

func (a *Arena) result(contacts []kinematics.Contact) TickResult {
	states := make([]vehicle.State, len(a.agents))
	for i, ag := range a.agents {
		states[i] = ag.Last()
	}
	return TickResult{
		Tick:     a.tick,
		Time:     a.time,
		Agents:   states,
		Stimuli:  a.stimuli.Snapshot(nil),
		Contacts: contacts,
	}
}

// Snapshot returns the most recent tick result.
func (a *Arena) Snapshot() TickResult { return a.last }

// Stimuli returns the current stimuli, including moves made since the last tick.
func (a *Arena) Stimuli() []systems.StimulusView { return a.stimuli.Snapshot(nil) }

// Tick returns the number of ticks run since the last reset.
func (a *Arena) Tick() int32 { return a.tick }

// Time returns the simulated seconds since the last reset.
func (a *Arena) Time() float64 { return a.time }

// AgentCount returns the number of agents.
func (a *Arena) AgentCount() int { return len(a.agents) }

// Bounds returns the arena size.
func (a *Arena) Bounds() (width, height float64) {
	return a.cfg.Derived.ArenaW, a.cfg.Derived.ArenaH
}

// Config returns the arena's configuration.
func (a *Arena) Config() *config.Config { return a.cfg }

// Perf returns the step timing collector.
func (a *Arena) Perf() *telemetry.PerfCollector { return a.perf }

// JitterEnabled reports whether heading noise is on.
func (a *Arena) JitterEnabled() bool { return a.jitter }

// StimulusAt returns the stimulus under a point, within its radius or slack,
// whichever is larger. Ties go to the nearer stimulus.
func (a *Arena) StimulusAt(x, y, slack float64) (int, bool) {
	a.stimuli.Index(a.grid)
	reach := slack
	for _, s := range a.stimuli.Snapshot(nil) {
		reach = max(reach, s.Radius)
	}
	best, bestDist := -1, math.Inf(1)
	for _, n := range a.grid.QueryRadiusInto(nil, x, y, reach+1, a.stimuli.Positions()) {
		v := a.stimuli.View(n.E)
		d := math.Sqrt(n.DistSq)
		if d > max(v.Radius, slack) || d >= bestDist {
			continue
		}
		best, bestDist = v.ID, d
	}
	return best, best >= 0
}

func (a *Arena) agent(id int) (*vehicle.Agent, error) {
	if id < 0 || id >= len(a.agents) {
		return nil, fmt.Errorf("agent %d: %w", id, ErrUnknownAgent)
	}
	return a.agents[id], nil
}

func (a *Arena) warn(op string, id int, err error) error {
	slog.Warn("reconfiguration rejected", "op", op, "agent", id, "error", err)
	return err
}

func (a *Arena) warnStimulus(op string, id int, err error) error {
	slog.Warn("reconfiguration rejected", "op", op, "stimulus", id, "error", err)
	return err
}
