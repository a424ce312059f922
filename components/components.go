// Package components defines ECS components for the arena's stimuli.
package components

import (
	"math"

	"github.com/pthm-cable/vehicles/motor"
)

// Stimulus marks an entity that vehicles can sense.
type Stimulus struct {
	ID   int        // stable ID, also the deterministic iteration order
	Kind motor.Kind // selects per-kind wiring on multi-sensory vehicles
	Tag  string     // display colour name; also the colour detectors see
}

// Signature holds the features a recognition network observes on a moving
// target besides its speed.
type Signature struct {
	Frequency float64 // buzz frequency, Hz
	Phase     float64 // buzz phase, radians
}

// Buzz returns the buzz intensity in [0, 1].
func (s Signature) Buzz() float64 {
	return (math.Sin(s.Phase) + 1) / 2
}
