package renderer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/vehicles/response"
)

// CurvePlot draws activation against distance for a response law.
type CurvePlot struct {
	X, Y, Width, Height int32
	Samples             int
}

// NewCurvePlot creates a plot at the given screen rectangle.
func NewCurvePlot(x, y, width, height int32) *CurvePlot {
	return &CurvePlot{X: x, Y: y, Width: width, Height: height, Samples: 120}
}

// Draw plots law over [0, maxDist] and marks the current distance, if any.
func (c *CurvePlot) Draw(law response.Config, maxDist, marker float64, hasMarker bool) {
	if maxDist <= 0 {
		maxDist = 400
	}
	rl.DrawRectangle(c.X, c.Y, c.Width, c.Height, rl.Color{R: 20, G: 25, B: 30, A: 235})
	rl.DrawRectangleLines(c.X, c.Y, c.Width, c.Height, rl.Color{R: 60, G: 70, B: 80, A: 255})
	rl.DrawText(fmt.Sprintf("%s response", law.Law), c.X+6, c.Y+4, 12, rl.Yellow)

	const pad = 20
	px, py := float32(c.X+pad), float32(c.Y+pad)
	pw, ph := float32(c.Width-pad*2), float32(c.Height-pad*2)

	// The inverse laws peak far above scale near zero; cap the axis at scale.
	top := law.Scale
	if top <= 0 {
		top = 1
	}
	toScreen := func(d, a float64) rl.Vector2 {
		return rl.Vector2{
			X: px + pw*float32(d/maxDist),
			Y: py + ph*(1-float32(min(a/top, 1))),
		}
	}

	rl.DrawLineV(rl.Vector2{X: px, Y: py + ph}, rl.Vector2{X: px + pw, Y: py + ph}, rl.Gray)
	rl.DrawLineV(rl.Vector2{X: px, Y: py}, rl.Vector2{X: px, Y: py + ph}, rl.Gray)

	prev := toScreen(0, law.Evaluate(0))
	for i := 1; i <= c.Samples; i++ {
		d := maxDist * float64(i) / float64(c.Samples)
		p := toScreen(d, law.Evaluate(d))
		rl.DrawLineEx(prev, p, 2, rl.SkyBlue)
		prev = p
	}

	if hasMarker && marker >= 0 && marker <= maxDist {
		m := toScreen(marker, law.Evaluate(marker))
		rl.DrawCircleV(m, 4, rl.Orange)
	}
	rl.DrawText("0", int32(px)-4, int32(py+ph)+4, 10, rl.Gray)
	rl.DrawText(fmt.Sprintf("%.0f", maxDist), int32(px+pw)-16, int32(py+ph)+4, 10, rl.Gray)
}
