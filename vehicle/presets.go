package vehicle

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pthm-cable/vehicles/motor"
	"github.com/pthm-cable/vehicles/neural"
	"github.com/pthm-cable/vehicles/response"
)

// Preset parameters shared by the lab vehicles.
const (
	PresetMaxDistance   = 400.0
	PresetPeakOptimal   = 200.0
	PresetPeakWidth     = 150.0
	PresetStepThreshold = 300.0
	PresetTurnFraction  = 0.1
	PresetPursuitSpeed  = 2.5
)

// Preset names. The threshold family is "threshold1" .. "threshold5".
const (
	PresetVehicle1     = "vehicle1"
	PresetAggression   = "aggression"
	PresetFear         = "fear"
	PresetLove         = "love"
	PresetExplorer     = "explorer"
	PresetMultisensory = "multisensory"
	PresetPeak         = "peak"
	PresetRecognizer   = "recognizer"
	presetThreshold    = "threshold"
)

// Presets lists every preset name.
func Presets() []string {
	names := []string{
		PresetVehicle1, PresetAggression, PresetFear, PresetLove, PresetExplorer,
		PresetMultisensory, PresetPeak,
	}
	for n := 1; n <= response.NumStepProfiles; n++ {
		names = append(names, presetThreshold+strconv.Itoa(n))
	}
	return append(names, PresetRecognizer)
}

// ApplyPreset overwrites p's behavior, law and wiring with a named lab
// vehicle. Geometry, gain and pose are left alone. The law keeps p's scale.
func ApplyPreset(name string, p *Params) error {
	scale := p.Response.Scale
	inverse := response.Config{Law: response.LawInverse, Scale: scale, MaxDistance: p.Response.MaxDistance}

	switch name {
	case PresetVehicle1:
		p.Behavior = BehaviorSingle
		p.Response = inverse
		p.Wiring = motor.Wiring{}
	case PresetAggression:
		p.Behavior = BehaviorReactive
		p.Response = inverse
		p.Wiring = motor.Wiring{}
	case PresetFear:
		p.Behavior = BehaviorReactive
		p.Response = inverse
		p.Wiring = motor.Wiring{Crossed: true}
	case PresetLove:
		p.Behavior = BehaviorReactive
		p.Response = inverse
		p.Wiring = motor.Wiring{Crossed: true, Inhibitory: true}
	case PresetExplorer:
		p.Behavior = BehaviorReactive
		p.Response = inverse
		p.Wiring = motor.Wiring{Inhibitory: true}
	case PresetMultisensory:
		p.Behavior = BehaviorMulti
		p.Response = inverse
		p.Wiring = motor.Wiring{}
		if p.Kinds == nil {
			p.Kinds = motor.DefaultKindWiring()
		}
	case PresetPeak:
		p.Behavior = BehaviorReactive
		p.Response = response.Config{
			Law:         response.LawGaussian,
			Scale:       scale,
			MaxDistance: PresetMaxDistance,
			Optimal:     PresetPeakOptimal,
			Width:       PresetPeakWidth,
		}
		p.Wiring = motor.Wiring{}
	case PresetRecognizer:
		p.Behavior = BehaviorRecognizer
		p.Recognition = neural.DefaultConfig()
		p.Pursuit = Pursuit{TurnFraction: PresetTurnFraction, Speed: PresetPursuitSpeed}
	default:
		n, ok := thresholdIndex(name)
		if !ok {
			return fmt.Errorf("unknown preset %q", name)
		}
		cfg, err := response.StepProfile(n, scale, PresetStepThreshold, PresetMaxDistance)
		if err != nil {
			return err
		}
		p.Behavior = BehaviorReactive
		p.Response = cfg
		p.Wiring = motor.Wiring{}
	}
	return nil
}

func thresholdIndex(name string) (int, bool) {
	rest, ok := strings.CutPrefix(name, presetThreshold)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 1 || n > response.NumStepProfiles {
		return 0, false
	}
	return n, true
}
