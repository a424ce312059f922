package ui

import (
	"fmt"
	"maps"
	"slices"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/vehicles/systems"
	"github.com/pthm-cable/vehicles/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title    string
	Agents   int
	Stimuli  int
	Tick     int32
	SimTime  float64
	Speed    int
	FPS      int32
	Paused   bool
	Jitter   bool
	Boundary string
}

// HUD renders the main heads-up display.
type HUD struct{}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Vehicles: %d | Stimuli: %d | Boundary: %s", data.Agents, data.Stimuli, data.Boundary),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Tick: %d | Time: %.1fs | Speed: %dx | FPS: %d", data.Tick, data.SimTime, data.Speed, data.FPS),
		10, 55, 16, rl.LightGray,
	)

	statusText := "Running"
	if data.Paused {
		statusText = "PAUSED"
	}
	if data.Jitter {
		statusText += " | friction on"
	}
	rl.DrawText(statusText, 10, 75, 16, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders per-phase step timing.
type PerfPanel struct {
	x, y     int32
	registry *systems.SystemRegistry
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{x: x, y: y, registry: systems.NewSystemRegistry()}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x, y := p.x, p.y

	rl.DrawText("Step Performance", x, y, 16, rl.White)
	y += 20
	rl.DrawText(fmt.Sprintf("Tick: %s (%.0f/s)", stats.AvgTick.Round(time.Microsecond), stats.TicksPerSecond),
		x, y, 14, rl.Yellow)
	y += 16

	for _, phase := range p.registry.IDs() {
		pct := stats.PhasePct[phase]
		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}
		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", p.registry.GetName(phase), stats.PhaseAvg[phase].Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}

	for _, name := range slices.Sorted(maps.Keys(stats.AgentAvg)) {
		rl.DrawText(fmt.Sprintf("  %-12s %6s/vehicle", name, stats.AgentAvg[name].Round(100*time.Nanosecond)),
			x, y, 12, rl.Gray)
		y += 14
	}
}

// StatsPanel renders the most recent telemetry window.
type StatsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewStatsPanel creates a new window stats panel.
func NewStatsPanel(x, y, width int32) *StatsPanel {
	return &StatsPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (s *StatsPanel) SetPosition(x, y int32) {
	s.x = x
	s.y = y
}

// Draw renders the panel. ok is false until the first window closes.
func (s *StatsPanel) Draw(stats telemetry.WindowStats, ok bool) int32 {
	r := s.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	r.DrawPanel(s.x, s.y, s.width, lineHeight*7+padding*2)
	y := s.y + padding
	rl.DrawText("Last Window", s.x+padding, y, 14, rl.White)
	y += lineHeight + 2
	if !ok {
		rl.DrawText("collecting...", s.x+padding, y, r.Theme.FontSize, r.Theme.LabelColor)
		return s.y + lineHeight*7 + padding*2
	}

	x := s.x + padding
	y = r.DrawLabelValue(x, y, "Speed", fmt.Sprintf("%.2f ± %.2f", stats.SpeedMean, stats.SpeedStd))
	y = r.DrawLabelValue(x, y, "Turn", fmt.Sprintf("%.2f (p90 %.2f)", stats.TurnMean, stats.TurnP90))
	y = r.DrawLabelValue(x, y, "Nearest", fmt.Sprintf("%.0f (p10 %.0f)", stats.NearestP50, stats.NearestP10))
	y = r.DrawLabelValue(x, y, "Firing", fmt.Sprintf("%.0f%%", stats.FiringFraction*100))
	y = r.DrawLabelValue(x, y, "Events", fmt.Sprintf("%d rec, %d lost, %d hits", stats.Recognitions, stats.Losses, stats.Collisions))
	return y
}
