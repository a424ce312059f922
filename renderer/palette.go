package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/vehicles/motor"
	"github.com/pthm-cable/vehicles/vehicle"
)

// Background colors.
var (
	arenaColor = rl.Color{R: 18, G: 22, B: 28, A: 255}
	gridColor  = rl.Color{R: 30, G: 36, B: 44, A: 255}
	edgeColor  = rl.Color{R: 70, G: 80, B: 95, A: 255}
)

var kindColors = map[motor.Kind]rl.Color{
	motor.KindLight:   {R: 255, G: 220, B: 90, A: 255},
	motor.KindHeat:    {R: 255, G: 120, B: 50, A: 255},
	motor.KindOxygen:  {R: 90, G: 200, B: 255, A: 255},
	motor.KindOrganic: {R: 120, G: 200, B: 90, A: 255},
	motor.KindTarget:  {R: 200, G: 200, B: 200, A: 255},
}

var tagColors = map[string]rl.Color{
	"olive":  {R: 128, G: 128, B: 0, A: 255},
	"red":    {R: 210, G: 60, B: 60, A: 255},
	"yellow": {R: 255, G: 220, B: 90, A: 255},
	"blue":   {R: 80, G: 120, B: 230, A: 255},
	"green":  {R: 80, G: 190, B: 90, A: 255},
}

// StimulusColor returns the draw color for a stimulus. Targets use their tag.
func StimulusColor(kind motor.Kind, tag string) rl.Color {
	if kind == motor.KindTarget {
		if c, ok := tagColors[tag]; ok {
			return c
		}
	}
	if c, ok := kindColors[kind]; ok {
		return c
	}
	return rl.Gray
}

// VehicleColor colors a vehicle by its temperament.
func VehicleColor(s vehicle.State) rl.Color {
	switch {
	case s.Behavior == vehicle.BehaviorRecognizer:
		return rl.Color{R: 200, G: 160, B: 255, A: 255}
	case s.Behavior == vehicle.BehaviorMulti:
		return rl.Color{R: 230, G: 230, B: 230, A: 255}
	case !s.Wiring.Crossed && !s.Wiring.Inhibitory:
		return rl.Color{R: 230, G: 70, B: 70, A: 255} // aggression
	case s.Wiring.Crossed && !s.Wiring.Inhibitory:
		return rl.Color{R: 80, G: 140, B: 240, A: 255} // fear
	case s.Wiring.Crossed && s.Wiring.Inhibitory:
		return rl.Color{R: 240, G: 120, B: 200, A: 255} // love
	default:
		return rl.Color{R: 90, G: 210, B: 120, A: 255} // explorer
	}
}

// activationColor shades from dark to bright as a approaches scale.
func activationColor(a, scale float64) rl.Color {
	t := 0.0
	if scale > 0 {
		t = min(max(a/scale, 0), 1)
	}
	return rl.Color{R: uint8(60 + 195*t), G: uint8(60 + 180*t), B: uint8(70 + 40*t), A: 255}
}
