package game

import (
	"fmt"
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/vehicles/kinematics"
	"github.com/pthm-cable/vehicles/motor"
	"github.com/pthm-cable/vehicles/response"
	"github.com/pthm-cable/vehicles/systems"
	"github.com/pthm-cable/vehicles/telemetry"
	"github.com/pthm-cable/vehicles/vehicle"
)

// Reconfiguration takes effect on the next tick. Rejected changes leave the
// agent as it was.

// SetWiring replaces an agent's wiring.
func (a *Arena) SetWiring(id int, w motor.Wiring) error {
	ag, err := a.agent(id)
	if err != nil {
		return a.warn("set_wiring", id, err)
	}
	ag.SetWiring(w)
	a.emit(telemetry.NewEvent(telemetry.EventReconfigure, a.tick, id, -1,
		fmt.Sprintf("crossed=%t inhibitory=%t", w.Crossed, w.Inhibitory)))
	return nil
}

// ToggleCrossed flips whether an agent's sensors cross to the opposite motors.
func (a *Arena) ToggleCrossed(id int) error {
	ag, err := a.agent(id)
	if err != nil {
		return a.warn("toggle_crossed", id, err)
	}
	w := ag.Wiring()
	w.Crossed = !w.Crossed
	return a.SetWiring(id, w)
}

// ToggleInhibition flips an agent between excitatory and inhibitory.
func (a *Arena) ToggleInhibition(id int) error {
	ag, err := a.agent(id)
	if err != nil {
		return a.warn("toggle_inhibition", id, err)
	}
	w := ag.Wiring()
	w.Inhibitory = !w.Inhibitory
	return a.SetWiring(id, w)
}

// SetLaw replaces an agent's response law. An invalid law is rejected.
func (a *Arena) SetLaw(id int, cfg response.Config) error {
	ag, err := a.agent(id)
	if err != nil {
		return a.warn("set_law", id, err)
	}
	if err := ag.SetLaw(cfg); err != nil {
		return a.warn("set_law", id, err)
	}
	a.stepProfile[id] = 0
	a.emit(telemetry.NewEvent(telemetry.EventReconfigure, a.tick, id, -1, "law="+string(cfg.Law)))
	return nil
}

// CycleStepProfile switches an agent to the next threshold profile, wrapping
// from the last back to the first. It returns the new profile number.
func (a *Arena) CycleStepProfile(id int) (int, error) {
	ag, err := a.agent(id)
	if err != nil {
		return 0, a.warn("cycle_step_profile", id, err)
	}
	n := a.stepProfile[id]%response.NumStepProfiles + 1
	threshold := a.cfg.Response.Threshold
	if threshold <= 0 {
		threshold = vehicle.PresetStepThreshold
	}
	cfg, err := response.StepProfile(n, ag.Law().Scale, threshold, ag.Law().MaxDistance)
	if err != nil {
		return 0, a.warn("cycle_step_profile", id, err)
	}
	if err := ag.SetLaw(cfg); err != nil {
		return 0, a.warn("cycle_step_profile", id, err)
	}
	a.stepProfile[id] = n
	a.emit(telemetry.NewEvent(telemetry.EventReconfigure, a.tick, id, -1,
		"profile="+response.StepProfileName(n)))
	return n, nil
}

// SetJitter turns heading noise on or off for every agent. Streams restart
// from their seeds.
func (a *Arena) SetJitter(enabled bool) {
	a.jitter = enabled
	for i, ag := range a.agents {
		ag.SetJitter(a.newJitter(i))
	}
	a.emit(telemetry.NewEvent(telemetry.EventReconfigure, a.tick, -1, -1,
		fmt.Sprintf("jitter=%t", enabled)))
}

// ResetAgent returns one agent to its starting pose.
func (a *Arena) ResetAgent(id int) error {
	ag, err := a.agent(id)
	if err != nil {
		return a.warn("reset", id, err)
	}
	ag.Reset()
	a.lastTarget[id] = -1
	a.last.Agents = a.result(nil).Agents
	a.emit(telemetry.NewEvent(telemetry.EventReset, a.tick, id, -1, "agent"))
	return nil
}

// ResetAll restores every agent and stimulus to the configured layout and
// restarts the clock. Agent wiring and laws are kept.
func (a *Arena) ResetAll() error {
	a.stimuli.Clear()
	for i, sc := range a.cfg.Stimuli {
		spec, err := stimulusSpec(sc)
		if err != nil {
			return fmt.Errorf("stimuli[%d]: %w", i, err)
		}
		a.stimuli.Add(spec)
	}
	for i, ag := range a.agents {
		ag.Reset()
		ag.SetJitter(a.newJitter(i))
		a.lastTarget[i] = -1
	}
	a.tick = 0
	a.time = 0
	a.collector = telemetry.NewCollector(a.cfg.Telemetry.StatsWindowSec, a.cfg.Physics.DT)
	a.emit(telemetry.NewEvent(telemetry.EventReset, a.tick, -1, -1, "arena"))
	a.snapshot = a.stimuli.Snapshot(a.snapshot)
	a.last = a.result(nil)
	slog.Info("arena reset", "agents", len(a.agents), "stimuli", a.stimuli.Len())
	return nil
}

// AddStimulus places a new stimulus and returns its ID.
func (a *Arena) AddStimulus(spec systems.StimulusSpec) int {
	return a.stimuli.Add(spec)
}

// MoveStimulus relocates a stimulus. Agents sense the new position from the
// next tick on.
func (a *Arena) MoveStimulus(id int, pos r2.Vec) error {
	if err := a.stimuli.Move(id, pos.X, pos.Y); err != nil {
		return a.warnStimulus("move_stimulus", id, err)
	}
	return nil
}

// RemoveStimulus deletes a stimulus.
func (a *Arena) RemoveStimulus(id int) error {
	if err := a.stimuli.Remove(id); err != nil {
		return a.warnStimulus("remove_stimulus", id, err)
	}
	return nil
}

// MoveAgent places an agent at pos, subject to the boundary policy, with its
// heading unchanged. Its reset pose stays where it was.
func (a *Arena) MoveAgent(id int, pos r2.Vec) error {
	ag, err := a.agent(id)
	if err != nil {
		return a.warn("move_agent", id, err)
	}
	agents := slices.Clone(a.last.Agents)
	agents[id] = ag.SetPose(kinematics.Pose{Position: pos, Heading: ag.Pose().Heading})
	a.last.Agents = agents
	return nil
}

// Pose returns an agent's current pose.
func (a *Arena) Pose(id int) (kinematics.Pose, error) {
	ag, err := a.agent(id)
	if err != nil {
		return kinematics.Pose{}, err
	}
	return ag.Pose(), nil
}

// Law returns an agent's current response law.
func (a *Arena) Law(id int) (response.Config, error) {
	ag, err := a.agent(id)
	if err != nil {
		return response.Config{}, err
	}
	return ag.Law(), nil
}
