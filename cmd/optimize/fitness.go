package main

import (
	"fmt"
	"math"
	"sync"

	"github.com/pthm-cable/vehicles/config"
	"github.com/pthm-cable/vehicles/game"
	"github.com/pthm-cable/vehicles/telemetry"
)

// Goal selects what a run is scored on.
type Goal string

const (
	GoalApproach Goal = "approach" // stay close to stimuli
	GoalAvoid    Goal = "avoid"    // stay far from stimuli
	GoalPursue   Goal = "pursue"   // recognizers fire as often as possible
)

// ParseGoal validates a goal name.
func ParseGoal(s string) (Goal, error) {
	switch g := Goal(s); g {
	case GoalApproach, GoalAvoid, GoalPursue:
		return g, nil
	}
	return "", fmt.Errorf("unknown goal %q (want approach, avoid or pursue)", s)
}

const (
	collisionPenalty = 5.0  // per collision, in distance units
	invalidFitness   = 1e9  // returned when the arena cannot be built
	unsensedDistance = 1000 // stand-in distance for ticks with nothing in range
)

// FitnessEvaluator runs headless arenas and computes fitness (lower is better).
type FitnessEvaluator struct {
	params     *ParamVector
	goal       Goal
	maxTicks   int32
	seeds      []int64
	configPath string

	mu          sync.Mutex
	lastSummary runSummary
}

// NewFitnessEvaluator creates a new evaluator. Every evaluation reloads
// configPath so runs never share state.
func NewFitnessEvaluator(params *ParamVector, goal Goal, maxTicks int32, seeds []int64, configPath string) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		goal:       goal,
		maxTicks:   maxTicks,
		seeds:      seeds,
		configPath: configPath,
	}
}

// runSummary holds the results from a single arena run.
type runSummary struct {
	meanDistance float64 // over agent-ticks, unsensed counted as unsensedDistance
	firing       float64 // mean window firing fraction
	collisions   int
	err          error
}

// LastSummary returns the seed-averaged summary of the most recent evaluation.
func (fe *FitnessEvaluator) LastSummary() (meanDistance, firing float64, collisions int) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastSummary.meanDistance, fe.lastSummary.firing, fe.lastSummary.collisions
}

// Evaluate computes fitness for a raw parameter vector.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]runSummary, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.run(x, s)
		}(i, seed)
	}
	wg.Wait()

	var avg runSummary
	for _, r := range results {
		if r.err != nil {
			return invalidFitness
		}
		avg.meanDistance += r.meanDistance
		avg.firing += r.firing
		avg.collisions += r.collisions
	}
	n := float64(len(results))
	avg.meanDistance /= n
	avg.firing /= n

	fe.mu.Lock()
	fe.lastSummary = avg
	fe.mu.Unlock()

	return fe.score(avg, n)
}

func (fe *FitnessEvaluator) score(s runSummary, seeds float64) float64 {
	penalty := collisionPenalty * float64(s.collisions) / seeds
	switch fe.goal {
	case GoalAvoid:
		return -s.meanDistance + penalty
	case GoalPursue:
		return -s.firing*1000 + s.meanDistance*0.01 + penalty
	default:
		return s.meanDistance + penalty
	}
}

func (fe *FitnessEvaluator) run(x []float64, seed int64) runSummary {
	cfg, err := config.Load(fe.configPath)
	if err != nil {
		return runSummary{err: err}
	}
	fe.params.ApplyToConfig(cfg, x)

	var windows []telemetry.WindowStats
	arena, err := game.NewArena(cfg, game.Options{
		Seed: seed,
		StatsCallback: func(s telemetry.WindowStats) {
			windows = append(windows, s)
		},
	})
	if err != nil {
		return runSummary{err: err}
	}

	var sum runSummary
	var distTotal float64
	var samples int
	for arena.Tick() < fe.maxTicks {
		res := arena.Step(cfg.Physics.DT)
		for _, a := range res.Agents {
			d := float64(unsensedDistance)
			if a.Nearest >= 0 {
				d = a.NearestDistance
			}
			distTotal += d
			samples++
		}
	}
	if samples > 0 {
		sum.meanDistance = distTotal / float64(samples)
	}

	for _, w := range windows {
		sum.firing += w.FiringFraction
		sum.collisions += w.Collisions
	}
	if len(windows) > 0 {
		sum.firing /= float64(len(windows))
	}
	if math.IsNaN(sum.meanDistance) {
		sum.err = fmt.Errorf("non-finite distance")
	}
	return sum
}
