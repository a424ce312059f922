// Package vehicle implements a Braitenberg vehicle: one agent type whose
// personality comes entirely from its response law, wiring and behavior.
package vehicle

import "fmt"

// Behavior selects how an agent senses and drives.
type Behavior uint8

const (
	BehaviorReactive   Behavior = iota // two sensors, nearest stimulus
	BehaviorSingle                     // one sensor, never turns
	BehaviorMulti                      // two sensors, every stimulus, per-kind wiring
	BehaviorRecognizer                 // threshold network gates pursuit
)

var behaviorNames = [...]string{"reactive", "single", "multi", "recognizer"}

func (b Behavior) String() string {
	if int(b) < len(behaviorNames) {
		return behaviorNames[b]
	}
	return fmt.Sprintf("Behavior(%d)", uint8(b))
}

// ParseBehavior parses a behavior name. An empty name means reactive.
func ParseBehavior(s string) (Behavior, error) {
	if s == "" {
		return BehaviorReactive, nil
	}
	for i, name := range behaviorNames {
		if s == name {
			return Behavior(i), nil
		}
	}
	return 0, fmt.Errorf("unknown behavior %q", s)
}
