package renderer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/vehicles/camera"
	"github.com/pthm-cable/vehicles/config"
	"github.com/pthm-cable/vehicles/game"
	"github.com/pthm-cable/vehicles/kinematics"
	"github.com/pthm-cable/vehicles/motor"
	"github.com/pthm-cable/vehicles/systems"
	"github.com/pthm-cable/vehicles/vehicle"
)

// Layers selects what ArenaRenderer draws on top of bodies.
type Layers struct {
	Sensors  bool
	Wiring   bool
	Headings bool
	Trails   bool
	Range    bool
	Labels   bool
}

// ArenaRenderer draws one tick result through a camera.
type ArenaRenderer struct {
	cam       *camera.Camera
	scale     float64 // activation scale for sensor shading
	rangeDist float64 // max response distance for the range overlay
	detection float64 // recognizer detection range
	bodyR     float64
	sensorR   float64
}

// NewArenaRenderer creates an arena renderer from the run configuration.
func NewArenaRenderer(cam *camera.Camera, cfg *config.Config) *ArenaRenderer {
	return &ArenaRenderer{
		cam:       cam,
		scale:     cfg.Response.Scale,
		rangeDist: cfg.Response.MaxDistance,
		detection: cfg.Recognition.DetectionRange,
		bodyR:     cfg.Vehicle.BodyRadius,
		sensorR:   cfg.Vehicle.SensorRadius,
	}
}

// Draw renders background, stimuli, trails and vehicles. selected is an
// agent index to highlight, -1 for none.
func (r *ArenaRenderer) Draw(res game.TickResult, trails *Trails, layers Layers, selected int) {
	r.drawBackground()
	for _, s := range res.Stimuli {
		r.drawStimulus(s)
	}
	if layers.Trails && trails != nil {
		for i := range res.Agents {
			r.drawTrail(trails, i, VehicleColor(res.Agents[i]))
		}
	}
	for i, s := range res.Agents {
		r.drawVehicle(s, res.Stimuli, layers, i == selected)
	}
}

func (r *ArenaRenderer) screen(p r2.Vec) rl.Vector2 {
	x, y := r.cam.WorldToScreen(float32(p.X), float32(p.Y))
	return rl.Vector2{X: x, Y: y}
}

func (r *ArenaRenderer) px(d float64) float32 { return float32(d) * r.cam.Scale() }

func (r *ArenaRenderer) drawBackground() {
	w, h := float64(r.cam.WorldW), float64(r.cam.WorldH)
	if r.cam.Wrap {
		// A torus has no fixed edge on screen; fill the viewport.
		rl.DrawRectangle(0, 0, int32(r.cam.ViewportW), int32(r.cam.ViewportH), arenaColor)
		return
	}

	tl := r.screen(r2.Vec{})
	br := r.screen(r2.Vec{X: w, Y: h})
	rl.DrawRectangleV(tl, rl.Vector2{X: br.X - tl.X, Y: br.Y - tl.Y}, arenaColor)

	const step = 50.0
	for x := step; x < w; x += step {
		rl.DrawLineV(r.screen(r2.Vec{X: x}), r.screen(r2.Vec{X: x, Y: h}), gridColor)
	}
	for y := step; y < h; y += step {
		rl.DrawLineV(r.screen(r2.Vec{Y: y}), r.screen(r2.Vec{X: w, Y: y}), gridColor)
	}
	rl.DrawRectangleLinesEx(rl.Rectangle{X: tl.X, Y: tl.Y, Width: br.X - tl.X, Height: br.Y - tl.Y}, 1, edgeColor)
}

func (r *ArenaRenderer) drawStimulus(s systems.StimulusView) {
	if !r.cam.IsVisible(float32(s.Position.X), float32(s.Position.Y), float32(s.Radius*4)) {
		return
	}
	c := r.screen(s.Position)
	color := StimulusColor(s.Kind, s.Tag)
	radius := max(r.px(s.Radius), 3)

	switch s.Kind {
	case motor.KindLight, motor.KindHeat:
		drawRadialGlow(c.X, c.Y, r.px(r.rangeDist)*0.5, 1, color)
		drawCoreGlow(c.X, c.Y, radius, 1, color)
	case motor.KindTarget:
		// Targets pulse with their buzz.
		pulse := float32(1 + 0.25*s.Buzz)
		rl.DrawCircleV(c, radius*pulse, rl.Color{R: color.R, G: color.G, B: color.B, A: 60})
		rl.DrawCircleV(c, radius, color)
		if s.Moving {
			tip := r.screen(r2.Add(s.Position, r2.Scale(s.Radius*1.6, kinematics.Forward(s.Heading))))
			rl.DrawLineEx(c, tip, 2, color)
		}
	default:
		rl.DrawCircleV(c, radius*1.6, rl.Color{R: color.R, G: color.G, B: color.B, A: 50})
		rl.DrawCircleV(c, radius, color)
	}
}

func (r *ArenaRenderer) drawTrail(trails *Trails, i int, color rl.Color) {
	n := trails.Len(i)
	if n < 2 {
		return
	}
	var prev r2.Vec
	trails.Each(i, func(k int, p r2.Vec) {
		if k > 0 && r2.Norm(r2.Sub(p, prev)) < float64(r.cam.WorldW)/2 {
			alpha := uint8(20 + 120*k/n)
			rl.DrawLineV(r.screen(prev), r.screen(p), rl.Color{R: color.R, G: color.G, B: color.B, A: alpha})
		}
		prev = p
	})
}

func (r *ArenaRenderer) drawVehicle(s vehicle.State, stimuli []systems.StimulusView, layers Layers, selected bool) {
	pose := s.Pose
	c := r.screen(pose.Position)
	color := VehicleColor(s)
	bodyR := r.px(r.bodyR)

	if layers.Range {
		dist := r.rangeDist
		if s.Behavior == vehicle.BehaviorRecognizer {
			dist = r.detection
		}
		if dist > 0 {
			rl.DrawCircleLines(int32(c.X), int32(c.Y), r.px(dist), rl.Color{R: color.R, G: color.G, B: color.B, A: 60})
		}
	}

	if s.TargetID >= 0 {
		for _, st := range stimuli {
			if st.ID == s.TargetID {
				rl.DrawLineEx(c, r.screen(st.Position), 1.5, rl.Color{R: 255, G: 255, B: 255, A: 120})
				break
			}
		}
	}

	rl.DrawCircleV(c, bodyR, color)
	if selected {
		rl.DrawCircleLines(int32(c.X), int32(c.Y), bodyR+4, rl.White)
	}

	fwd := kinematics.Forward(pose.Heading)
	right := kinematics.Right(pose.Heading)

	// Wheels at the rear of the body.
	rb := r.bodyR
	wheels := [2]r2.Vec{
		r2.Add(pose.Position, r2.Add(r2.Scale(-0.5*rb, fwd), r2.Scale(-0.85*rb, right))),
		r2.Add(pose.Position, r2.Add(r2.Scale(-0.5*rb, fwd), r2.Scale(0.85*rb, right))),
	}
	motors := [2]float64{s.Output.LeftMotor, s.Output.RightMotor}
	for i, w := range wheels {
		rl.DrawCircleV(r.screen(w), max(bodyR*0.22, 2), activationColor(motors[i], r.scale))
	}

	if layers.Wiring && s.Behavior != vehicle.BehaviorRecognizer && len(s.Sensors) > 0 {
		r.drawWiring(s, wheels)
	}
	if layers.Sensors {
		acts := [2]float64{s.Output.LeftActivation, s.Output.RightActivation}
		for i, sen := range s.Sensors {
			rl.DrawCircleV(r.screen(sen.Position), max(r.px(r.sensorR), 2), activationColor(acts[min(i, 1)], r.scale))
		}
	}

	if layers.Headings {
		length := rb + max(s.Output.Speed, 0)*10
		tip := r.screen(r2.Add(pose.Position, r2.Scale(length, fwd)))
		rl.DrawLineEx(c, tip, 2, rl.White)
	} else {
		tip := r.screen(r2.Add(pose.Position, r2.Scale(rb, fwd)))
		rl.DrawLineEx(c, tip, 2, rl.Color{R: 20, G: 20, B: 20, A: 200})
	}

	if layers.Labels {
		label := s.Name
		if s.Behavior != vehicle.BehaviorRecognizer {
			label = fmt.Sprintf("%s (%s)", s.Name, s.Law)
		}
		rl.DrawText(label, int32(c.X+bodyR+4), int32(c.Y-bodyR), 12, rl.LightGray)
	}
}

// drawWiring connects each sensor to the wheel it drives.
func (r *ArenaRenderer) drawWiring(s vehicle.State, wheels [2]r2.Vec) {
	color := rl.Color{R: 240, G: 240, B: 240, A: 180}
	if len(s.Sensors) == 1 {
		from := r.screen(s.Sensors[0].Position)
		for _, w := range wheels {
			r.drawConnection(from, r.screen(w), s.Wiring.Inhibitory, color)
		}
		return
	}
	for i, sen := range s.Sensors[:2] {
		target := i
		if s.Wiring.Crossed {
			target = 1 - i
		}
		r.drawConnection(r.screen(sen.Position), r.screen(wheels[target]), s.Wiring.Inhibitory, color)
	}
}

func (r *ArenaRenderer) drawConnection(from, to rl.Vector2, inhibitory bool, color rl.Color) {
	if inhibitory {
		drawDashedLine(from, to, 4, color)
		return
	}
	rl.DrawLineEx(from, to, 1.5, color)
}
