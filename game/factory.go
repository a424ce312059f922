package game

import (
	"fmt"

	"github.com/pthm-cable/vehicles/config"
	"github.com/pthm-cable/vehicles/kinematics"
	"github.com/pthm-cable/vehicles/motor"
	"github.com/pthm-cable/vehicles/systems"
	"github.com/pthm-cable/vehicles/vehicle"
)

// buildAgent creates agent i from its config entry. The preset is applied
// first, then the per-agent overrides.
func buildAgent(i int, ac config.AgentConfig, cfg *config.Config) (*vehicle.Agent, error) {
	name := ac.Name
	if name == "" {
		name = fmt.Sprintf("vehicle-%d", i)
	}
	p := vehicle.Params{
		ID:            i,
		Name:          name,
		Pose:          kinematics.NewPose(ac.X, ac.Y, ac.Heading),
		BodyRadius:    cfg.Vehicle.BodyRadius,
		SensorRadius:  cfg.Vehicle.SensorRadius,
		SensorSpacing: cfg.Vehicle.SensorSpacing,
		Response:      cfg.Response,
		Wiring:        cfg.Wiring,
		Kinds:         cfg.Derived.KindWiring,
		RotationGain:  cfg.Vehicle.RotationGain,
		MotorFloor:    cfg.Vehicle.MotorFloor,
	}

	if ac.Preset != "" {
		if err := vehicle.ApplyPreset(ac.Preset, &p); err != nil {
			return nil, err
		}
	} else {
		b, err := vehicle.ParseBehavior(ac.Behavior)
		if err != nil {
			return nil, err
		}
		p.Behavior = b
	}
	if p.Behavior == vehicle.BehaviorRecognizer {
		p.Recognition = cfg.Recognition.Config
		p.Pursuit = vehicle.Pursuit{
			TurnFraction: cfg.Recognition.TurnFraction,
			Speed:        cfg.Recognition.PursuitSpeed,
		}
	}

	if ac.Wiring != nil {
		p.Wiring = *ac.Wiring
	}
	if ac.Response != nil {
		p.Response = *ac.Response
	}
	for _, s := range ac.Senses {
		k, err := motor.ParseKind(s)
		if err != nil {
			return nil, err
		}
		p.Senses = append(p.Senses, k)
	}

	boundary := cfg.Derived.Boundary
	if ac.Boundary != "" {
		b, err := kinematics.ParseBoundary(ac.Boundary)
		if err != nil {
			return nil, err
		}
		boundary = b
	}
	integ := kinematics.NewIntegrator(cfg.Derived.ArenaW, cfg.Derived.ArenaH, p.BodyRadius, boundary)
	return vehicle.New(p, integ)
}

// stimulusSpec converts a stimulus config entry.
func stimulusSpec(sc config.StimulusConfig) (systems.StimulusSpec, error) {
	kind, err := motor.ParseKind(sc.Kind)
	if err != nil {
		return systems.StimulusSpec{}, err
	}
	return systems.StimulusSpec{
		Kind:      kind,
		Tag:       sc.Tag,
		X:         sc.X,
		Y:         sc.Y,
		Radius:    sc.Radius,
		Moving:    sc.Moving,
		Heading:   sc.Heading,
		Speed:     sc.Speed,
		Frequency: sc.Frequency,
	}, nil
}

// newJitter returns the heading noise source for agent i, or nil when jitter
// is off. Each agent gets its own stream so order changes stay reproducible.
func (a *Arena) newJitter(i int) kinematics.Jitter {
	if !a.jitter {
		return nil
	}
	j := a.cfg.Jitter
	if j.Mode == config.JitterSimplex {
		return kinematics.NewSimplexJitter(j.Amplitude, j.Frequency, a.seed, i)
	}
	return kinematics.NewUniformJitter(j.Amplitude, a.seed+int64(i))
}
