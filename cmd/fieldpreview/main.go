// Steering field preview tool - shows how a vehicle facing one way would
// turn at every point around a single stimulus, with sliders for the
// response law and wiring.
//
// Usage: go run ./cmd/fieldpreview
package main

import (
	"fmt"
	"image/color"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/vehicles/config"
	"github.com/pthm-cable/vehicles/motor"
	"github.com/pthm-cable/vehicles/response"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
	gridSize     = 128
)

func defaultParams() FieldParams {
	cfg := config.Default()
	return FieldParams{
		Law:          cfg.Response,
		Wiring:       cfg.Wiring,
		RotationGain: cfg.Vehicle.RotationGain,
		BodyRadius:   cfg.Vehicle.BodyRadius,
		SensorRadius: cfg.Vehicle.SensorRadius,
		Spacing:      cfg.Vehicle.SensorSpacing,
		Extent:       600,
	}
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Steering Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := defaultParams()
	lawIndex := lawPosition(params.Law.Law)

	grid := make([]float32, gridSize*gridSize)
	img := rl.GenImageColor(gridSize, gridSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	var peak float32
	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			peak = generateField(grid, gridSize, params)
			updateTexture(texture, grid, peak)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: gridSize, Height: gridSize},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)
		rl.DrawCircle(10+previewSize/2, 10+previewSize/2, 5, rl.Yellow)

		statsY := int32(previewSize + 25)
		what := "turn rate (deg/tick)"
		if params.ShowSpeed {
			what = "speed"
		}
		rl.DrawText(fmt.Sprintf("Peak %s: %.2f", what, peak), 15, statsY, 16, rl.DarkGray)
		rl.DrawText("Blue turns left, red turns right", 15, statsY+20, 16, rl.DarkGray)

		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Vehicle Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		// Law selection
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 26}, "< Law") {
			lawIndex = (lawIndex + len(response.Laws) - 1) % len(response.Laws)
			params.Law.Law = response.Laws[lawIndex]
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 26}, "Law >") {
			lawIndex = (lawIndex + 1) % len(response.Laws)
			params.Law.Law = response.Laws[lawIndex]
			needsRegen = true
		}
		rl.DrawText(string(params.Law.Law), int32(panelX+260), int32(panelY+6), 16, rl.DarkGray)
		panelY += 40

		sliders := []struct {
			label    string
			value    *float64
			min, max float32
		}{
			{"Scale (activation at unit distance)", &params.Law.Scale, 10, 300},
			{"Max distance", &params.Law.MaxDistance, 50, 600},
			{"Optimal distance (gaussian)", &params.Law.Optimal, 0, 400},
			{"Width (gaussian)", &params.Law.Width, 10, 300},
			{"Threshold", &params.Law.Threshold, 20, 600},
			{"Rotation gain", &params.RotationGain, 0.5, 15},
			{"Sensor spacing", &params.Spacing, 2, 60},
			{"Heading", &params.Heading, 0, 359},
		}
		for _, s := range sliders {
			rl.DrawText(s.label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			next := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				fmt.Sprintf("%.0f", s.min), fmt.Sprintf("%.0f", s.max),
				float32(*s.value), s.min, s.max,
			)
			rl.DrawText(fmt.Sprintf("%.1f", *s.value), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			if float64(next) != float64(float32(*s.value)) {
				*s.value = float64(next)
				needsRegen = true
			}
			panelY += 35
		}

		// Wiring buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(params.Wiring.Crossed, "Crossed", "Uncrossed")) {
			params.Wiring.Crossed = !params.Wiring.Crossed
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, toggleText(params.Wiring.Inhibitory, "Inhibitory", "Excitatory")) {
			params.Wiring.Inhibitory = !params.Wiring.Inhibitory
			needsRegen = true
		}
		panelY += 40

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(params.ShowSpeed, "Show Turn", "Show Speed")) {
			params.ShowSpeed = !params.ShowSpeed
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaultParams()
			lawIndex = lawPosition(params.Law.Law)
			needsRegen = true
		}
		panelY += 45

		rl.DrawText(behaviorName(params.Wiring), int32(panelX), int32(panelY), 16, rl.DarkGray)
		if err := params.Law.Validate(); err != nil {
			rl.DrawText("invalid law: "+err.Error(), int32(panelX), int32(panelY+20), 12, rl.Red)
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(yamlSnippet(params))
		}

		rl.EndDrawing()
	}
}

func lawPosition(l response.Law) int {
	for i, law := range response.Laws {
		if law == l {
			return i
		}
	}
	return 0
}

func behaviorName(w motor.Wiring) string {
	switch {
	case !w.Crossed && !w.Inhibitory:
		return "aggression"
	case w.Crossed && !w.Inhibitory:
		return "fear"
	case w.Crossed && w.Inhibitory:
		return "love"
	default:
		return "explorer"
	}
}

func yamlSnippet(p FieldParams) string {
	return fmt.Sprintf(`vehicle:
  rotation_gain: %.2f
  sensor_spacing: %.1f
response:
  law: %s
  scale: %.1f
  max_distance: %.1f
  optimal: %.1f
  width: %.1f
  threshold: %.1f
wiring:
  crossed: %t
  inhibitory: %t`,
		p.RotationGain, p.Spacing, p.Law.Law, p.Law.Scale, p.Law.MaxDistance,
		p.Law.Optimal, p.Law.Width, p.Law.Threshold, p.Wiring.Crossed, p.Wiring.Inhibitory)
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

// updateTexture updates the GPU texture from the grid values
func updateTexture(texture rl.Texture2D, grid []float32, peak float32) {
	pixels := make([]color.RGBA, len(grid))
	for i, v := range grid {
		pixels[i] = fieldColor(v, peak)
	}
	rl.UpdateTexture(texture, pixels)
}
