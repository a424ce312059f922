// Package renderer draws the arena, its stimuli and vehicles with raylib.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// drawRadialGlow draws a soft radial gradient around a source. intensity is
// in [0, 1].
func drawRadialGlow(x, y, maxRadius, intensity float32, tint rl.Color) {
	steps := 12
	for i := steps; i >= 0; i-- {
		t := float32(i) / float32(steps)
		radius := maxRadius * t

		// Fast falloff, light concentrated near source.
		falloff := float32(math.Pow(float64(1-t), 3.0))
		alpha := falloff * 0.06 * intensity * 255
		if alpha < 1 {
			continue
		}
		rl.DrawCircleV(rl.Vector2{X: x, Y: y}, radius, rl.Color{R: tint.R, G: tint.G, B: tint.B, A: uint8(alpha)})
	}
}

// drawCoreGlow draws layered halos and a bright core.
func drawCoreGlow(x, y, radius, intensity float32, tint rl.Color) {
	layers := []struct {
		scale float32
		alpha float32
	}{
		{2.5, 12},
		{1.8, 25},
		{1.3, 50},
	}
	center := rl.Vector2{X: x, Y: y}
	for _, layer := range layers {
		rl.DrawCircleV(center, radius*layer.scale, rl.Color{R: tint.R, G: tint.G, B: tint.B, A: uint8(layer.alpha * intensity)})
	}
	rl.DrawCircleV(center, radius, tint)
	rl.DrawCircleV(center, radius*0.4, rl.Color{R: 255, G: 250, B: 230, A: uint8(200 * intensity)})
}

// drawDashedLine draws a dashed segment; used for inhibitory connections.
func drawDashedLine(from, to rl.Vector2, dash float32, color rl.Color) {
	dx, dy := to.X-from.X, to.Y-from.Y
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if length < 1e-3 || dash <= 0 {
		return
	}
	ux, uy := dx/length, dy/length
	for s := float32(0); s < length; s += dash * 2 {
		e := min(s+dash, length)
		rl.DrawLineEx(
			rl.Vector2{X: from.X + ux*s, Y: from.Y + uy*s},
			rl.Vector2{X: from.X + ux*e, Y: from.Y + uy*e},
			1.5, color,
		)
	}
}
