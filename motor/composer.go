// Package motor turns sensor activations into speed and turn rate.
//
// This is where a vehicle's personality lives: the same activations drive
// the vehicle toward or away from a stimulus depending on the wiring.
package motor

import (
	"fmt"
	"math"

	"github.com/pthm-cable/vehicles/kinematics"
	"github.com/pthm-cable/vehicles/response"
)

// Wiring decides how sensor activations reach the motors.
type Wiring struct {
	Crossed    bool `yaml:"crossed"`    // left sensor drives right motor and vice versa
	Inhibitory bool `yaml:"inhibitory"` // activation is inverted (scale - a) before driving
}

// Output is the full motor result for one tick, kept for display.
type Output struct {
	LeftActivation  float64
	RightActivation float64
	LeftMotor       float64
	RightMotor      float64
	Speed           float64
	AngularRate     float64
}

// Motion returns the kinematic part of the output.
func (o Output) Motion() kinematics.Motion {
	return kinematics.Motion{Speed: o.Speed, AngularRate: o.AngularRate}
}

// Composer derives motor commands from activations.
type Composer struct {
	RotationGain float64 // degrees of turn per unit of motor difference
	Scale        float64 // activation scale, used for inhibition
	Floor        float64 // minimum motor value in multi-stimulus mode
}

// Compose maps a left/right activation pair through the wiring.
func (c Composer) Compose(left, right float64, w Wiring) Output {
	out := Output{LeftActivation: left, RightActivation: right}
	if w.Inhibitory {
		left = response.Inhibit(left, c.Scale)
		right = response.Inhibit(right, c.Scale)
	}
	if w.Crossed {
		left, right = right, left
	}
	out.LeftMotor, out.RightMotor = left, right
	c.derive(&out)
	return out
}

// ComposeSingle drives a one-sensor vehicle: both motors get the same
// activation, so it never turns.
func (c Composer) ComposeSingle(a float64, w Wiring) Output {
	if w.Inhibitory {
		a = response.Inhibit(a, c.Scale)
	}
	out := Output{LeftActivation: a, RightActivation: a, LeftMotor: a, RightMotor: a}
	c.derive(&out)
	return out
}

func (c Composer) derive(out *Output) {
	out.Speed = (out.LeftMotor + out.RightMotor) / 2
	out.AngularRate = (out.RightMotor - out.LeftMotor) * c.RotationGain
}

// Kind labels a stimulus type for per-kind wiring.
type Kind string

const (
	KindLight   Kind = "light"
	KindHeat    Kind = "heat"
	KindOxygen  Kind = "oxygen"
	KindOrganic Kind = "organic"
	KindTarget  Kind = "target"
)

// Kinds lists every stimulus kind.
var Kinds = []Kind{KindLight, KindHeat, KindOxygen, KindOrganic, KindTarget}

// ParseKind parses a stimulus kind. An empty name means light.
func ParseKind(s string) (Kind, error) {
	if s == "" {
		return KindLight, nil
	}
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown stimulus kind %q", s)
}

// Contribution is one stimulus' activation at each sensor.
type Contribution struct {
	Kind  Kind
	Left  float64
	Right float64
}

// KindWiring maps a stimulus kind to how it reaches the motors. Inhibitory
// kinds subtract from the motor they reach instead of adding.
type KindWiring map[Kind]Wiring

// DefaultKindWiring is the classic four-kind multi-sensory vehicle.
func DefaultKindWiring() KindWiring {
	return KindWiring{
		KindLight:   {Crossed: false, Inhibitory: false},
		KindHeat:    {Crossed: true, Inhibitory: false},
		KindOxygen:  {Crossed: true, Inhibitory: true},
		KindOrganic: {Crossed: false, Inhibitory: true},
	}
}

// ComposeMulti sums signed contributions per side across all stimuli, then
// applies the vehicle-level crossing, then saturates each motor at Floor
// before deriving speed and turn rate. Kinds missing from the table are
// ignored.
func (c Composer) ComposeMulti(contribs []Contribution, kinds KindWiring, w Wiring) Output {
	var out Output
	var straightL, straightR, crossedL, crossedR float64
	for _, ct := range contribs {
		kw, ok := kinds[ct.Kind]
		if !ok {
			continue
		}
		sign := 1.0
		if kw.Inhibitory {
			sign = -1
		}
		l, r := sign*ct.Left, sign*ct.Right
		out.LeftActivation += l
		out.RightActivation += r
		if kw.Crossed {
			crossedL += l
			crossedR += r
		} else {
			straightL += l
			straightR += r
		}
	}

	left := straightL + crossedR
	right := straightR + crossedL
	if w.Crossed {
		left, right = right, left
	}

	floor := math.Max(c.Floor, 0)
	out.LeftMotor = math.Max(left, floor)
	out.RightMotor = math.Max(right, floor)
	c.derive(&out)
	return out
}
