package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/vehicles/camera"
	"github.com/pthm-cable/vehicles/config"
	"github.com/pthm-cable/vehicles/game"
	"github.com/pthm-cable/vehicles/kinematics"
	"github.com/pthm-cable/vehicles/telemetry"
	"github.com/pthm-cable/vehicles/ui"
)

const (
	trailLength  = 240
	panelWidth   = 260
	pickSlack    = 12.0 // arena units around a stimulus that still grab it
	controlsHelp = "[Space] pause  [.] step  [C] cross  [I] inhibit  [T] profile  [F] friction  [R] reset  [Tab] next  [O] overlays  wheel zoom  right-drag pan"
)

// Viewer runs the interactive window: input, stepping and drawing.
type Viewer struct {
	arena *game.Arena
	cfg   *config.Config

	cam      *camera.Camera
	arenaR   *ArenaRenderer
	trails   *Trails
	curve    *CurvePlot
	overlays *ui.OverlayRegistry

	hud        *ui.HUD
	controls   *ui.ControlsPanel
	actions    *ui.ActionPanel
	inspector  *ui.Inspector
	perfPanel  *ui.PerfPanel
	statsPanel *ui.StatsPanel

	screenW, screenH int32

	paused        bool
	speed         int
	selected      int
	dragging      int // stimulus ID being dragged, -1 if none
	draggingAgent int // agent ID being dragged, -1 if none

	lastStats telemetry.WindowStats
	hasStats  bool
}

// NewViewer creates a viewer over an arena. Call after rl.InitWindow.
func NewViewer(arena *game.Arena, screenW, screenH int32) *Viewer {
	cfg := arena.Config()
	w, h := arena.Bounds()
	cam := camera.New(float32(screenW), float32(screenH), float32(w), float32(h),
		cfg.Derived.Boundary == kinematics.BoundaryWrap)

	maxTurn := float32(cfg.Vehicle.RotationGain * cfg.Response.Scale)
	return &Viewer{
		arena:         arena,
		cfg:           cfg,
		cam:           cam,
		arenaR:        NewArenaRenderer(cam, cfg),
		trails:        NewTrails(arena.AgentCount(), trailLength),
		curve:         NewCurvePlot(screenW-panelWidth-10, screenH-180, panelWidth, 140),
		overlays:      ui.NewOverlayRegistry(),
		hud:           ui.NewHUD(),
		controls:      ui.NewControlsPanel(10, 100, 200),
		actions:       ui.NewActionPanel(screenW-panelWidth-10, 10, panelWidth),
		inspector:     ui.NewInspector(screenW-panelWidth-10, 20+ui.ActionPanelHeight, panelWidth, float32(cfg.Response.Scale), maxTurn),
		perfPanel:     ui.NewPerfPanel(10, screenH-190),
		statsPanel:    ui.NewStatsPanel(10, screenH-160-10, 220),
		screenW:       screenW,
		screenH:       screenH,
		speed:         max(cfg.Physics.StepsPerUpdate, 1),
		dragging:      -1,
		draggingAgent: -1,
	}
}

// OnStats receives closed telemetry windows; pass it as the arena's
// StatsCallback.
func (v *Viewer) OnStats(s telemetry.WindowStats) {
	v.lastStats = s
	v.hasStats = true
}

// Update handles input and advances the arena.
func (v *Viewer) Update() {
	v.handleKeys()
	v.handleMouse()

	if v.paused {
		return
	}
	for range v.speed {
		v.step()
	}
}

func (v *Viewer) step() {
	dt := v.cfg.Physics.DT
	if v.cfg.Physics.DeltaTime {
		dt = float64(rl.GetFrameTime()) / float64(v.speed)
	}
	res := v.arena.Step(dt)
	for i, s := range res.Agents {
		v.trails.Push(i, s.Pose.Position)
	}
}

func (v *Viewer) handleKeys() {
	switch {
	case rl.IsKeyPressed(rl.KeySpace):
		v.apply(ui.ActionPause)
	case rl.IsKeyPressed(rl.KeyPeriod):
		v.apply(ui.ActionStep)
	case rl.IsKeyPressed(rl.KeyC):
		v.apply(ui.ActionToggleCrossed)
	case rl.IsKeyPressed(rl.KeyI):
		v.apply(ui.ActionToggleInhibition)
	case rl.IsKeyPressed(rl.KeyT):
		v.apply(ui.ActionCycleProfile)
	case rl.IsKeyPressed(rl.KeyF):
		v.apply(ui.ActionToggleJitter)
	case rl.IsKeyPressed(rl.KeyR):
		v.apply(ui.ActionResetAgent)
	case rl.IsKeyPressed(rl.KeyTab):
		v.apply(ui.ActionNextAgent)
	case rl.IsKeyPressed(rl.KeyO):
		v.controls.Toggle()
	case rl.IsKeyPressed(rl.KeyHome):
		v.cam.Reset()
	}
	for _, key := range v.overlays.Keys() {
		if rl.IsKeyPressed(key) {
			v.overlays.HandleKeyPress(key)
		}
	}
}

func (v *Viewer) handleMouse() {
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		v.cam.ZoomBy(float32(math.Pow(1.1, float64(wheel))))
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		v.cam.Pan(-d.X, -d.Y)
	}

	mouse := rl.GetMousePosition()
	wx, wy := v.cam.ScreenToWorld(mouse.X, mouse.Y)
	world := r2.Vec{X: float64(wx), Y: float64(wy)}

	switch {
	case rl.IsMouseButtonPressed(rl.MouseButtonLeft):
		if v.actions.Contains(mouse) {
			return
		}
		if id, ok := v.arena.StimulusAt(world.X, world.Y, pickSlack); ok {
			v.dragging = id
			return
		}
		if v.selectAgentAt(world) {
			v.draggingAgent = v.selected
		}
	case rl.IsMouseButtonDown(rl.MouseButtonLeft) && v.dragging >= 0:
		// Rejections are logged by the arena.
		_ = v.arena.MoveStimulus(v.dragging, world)
	case rl.IsMouseButtonDown(rl.MouseButtonLeft) && v.draggingAgent >= 0:
		_ = v.arena.MoveAgent(v.draggingAgent, world)
	case rl.IsMouseButtonReleased(rl.MouseButtonLeft):
		v.dragging = -1
		v.draggingAgent = -1
	}
}

// selectAgentAt selects the vehicle under p and reports whether there was one.
func (v *Viewer) selectAgentAt(p r2.Vec) bool {
	best, bestDist := -1, v.cfg.Vehicle.BodyRadius*1.5
	for i, s := range v.arena.Snapshot().Agents {
		if d := r2.Norm(r2.Sub(s.Pose.Position, p)); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best >= 0 {
		v.selected = best
	}
	return best >= 0
}

// apply runs one user action against the selected vehicle. Rejections are
// logged by the arena.
func (v *Viewer) apply(a ui.Action) {
	switch a {
	case ui.ActionPause:
		v.paused = !v.paused
	case ui.ActionStep:
		if v.paused {
			v.step()
		}
	case ui.ActionToggleCrossed:
		_ = v.arena.ToggleCrossed(v.selected)
	case ui.ActionToggleInhibition:
		_ = v.arena.ToggleInhibition(v.selected)
	case ui.ActionCycleProfile:
		_, _ = v.arena.CycleStepProfile(v.selected)
	case ui.ActionToggleJitter:
		v.arena.SetJitter(!v.arena.JitterEnabled())
	case ui.ActionResetAgent:
		if v.arena.ResetAgent(v.selected) == nil {
			v.trails.Clear(v.selected)
		}
	case ui.ActionResetAll:
		if v.arena.ResetAll() == nil {
			v.trails.Clear(-1)
			v.hasStats = false
		}
	case ui.ActionNextAgent:
		if n := v.arena.AgentCount(); n > 0 {
			v.selected = (v.selected + 1) % n
		}
	}
}

// Draw renders one frame.
func (v *Viewer) Draw() {
	v.arena.Perf().RecordFrame()

	res := v.arena.Snapshot()
	res.Stimuli = v.arena.Stimuli() // show drags while paused

	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 10, G: 12, B: 16, A: 255})

	layers := Layers{
		Sensors:  v.overlays.IsEnabled(ui.OverlaySensors),
		Wiring:   v.overlays.IsEnabled(ui.OverlayWiring),
		Headings: v.overlays.IsEnabled(ui.OverlayHeadings),
		Trails:   v.overlays.IsEnabled(ui.OverlayTrails),
		Range:    v.overlays.IsEnabled(ui.OverlayRange),
		Labels:   v.overlays.IsEnabled(ui.OverlayLabels),
	}
	v.arenaR.Draw(res, v.trails, layers, v.selected)

	v.hud.Draw(ui.HUDData{
		Title:    v.cfg.Screen.Title,
		Agents:   len(res.Agents),
		Stimuli:  len(res.Stimuli),
		Tick:     res.Tick,
		SimTime:  res.Time,
		Speed:    v.speed,
		FPS:      rl.GetFPS(),
		Paused:   v.paused,
		Jitter:   v.arena.JitterEnabled(),
		Boundary: v.cfg.Derived.Boundary.String(),
	})
	v.controls.Draw(v.overlays)

	if v.selected < len(res.Agents) {
		v.drawSelected(res)
	}

	if v.overlays.IsEnabled(ui.OverlayPerf) {
		v.perfPanel.Draw(v.arena.Perf().Stats())
	} else {
		v.statsPanel.Draw(v.lastStats, v.hasStats)
	}
	v.hud.DrawControls(v.screenH, controlsHelp)

	rl.EndDrawing()
}

func (v *Viewer) drawSelected(res game.TickResult) {
	s := res.Agents[v.selected]
	law, err := v.arena.Law(v.selected)
	if err != nil {
		return
	}

	actions, speed, scale := v.actions.Draw(ui.ActionState{
		Agent:      s.Name,
		Crossed:    s.Wiring.Crossed,
		Inhibitory: s.Wiring.Inhibitory,
		Law:        string(law.Law),
		Paused:     v.paused,
		Jitter:     v.arena.JitterEnabled(),
		Speed:      float32(v.speed),
		Scale:      float32(law.Scale),
	})
	for _, a := range actions {
		v.apply(a)
	}
	v.speed = max(int(math.Round(float64(speed))), 1)
	if math.Abs(float64(scale)-law.Scale) >= 1 {
		law.Scale = math.Round(float64(scale))
		_ = v.arena.SetLaw(v.selected, law)
	}

	if v.overlays.IsEnabled(ui.OverlayInspector) {
		bottom := v.inspector.Draw(s)
		if len(s.Brain) > 0 {
			ui.DrawNetworkDiagram(v.screenW-panelWidth+40, bottom+10, panelWidth-50, ui.NetworkDiagramHeight, s.Brain)
		}
	}
	if v.overlays.IsEnabled(ui.OverlayResponse) {
		v.curve.Draw(law, law.MaxDistance, s.NearestDistance, s.Nearest >= 0)
	}
}
