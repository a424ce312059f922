package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsPanel renders the overlay toggle list.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the controls panel and returns the Y below it.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry) int32 {
	if !c.visible {
		return c.y
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	categories := overlays.Categories()
	totalItems := 0
	for _, cat := range categories {
		totalItems += len(overlays.ByCategory(cat)) + 1
	}
	panelHeight := int32(totalItems)*lineHeight + padding*3 + lineHeight
	r.DrawPanel(c.x, c.y, c.width, panelHeight)

	y := c.y + padding
	rl.DrawText("Overlays", c.x+padding, y, 16, rl.White)
	y += lineHeight + 4

	for _, category := range categories {
		rl.DrawText(categoryLabel(category), c.x+padding, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += lineHeight

		for _, desc := range overlays.ByCategory(category) {
			c.drawToggle(c.x+padding, y, desc, overlays.IsEnabled(desc.ID), c.width-padding*2)
			y += lineHeight
		}
		y += 4
	}
	return y
}

func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	nameColor := r.Theme.LabelColor
	if enabled {
		statusColor = rl.Color{R: 100, G: 200, B: 100, A: 255}
		nameColor = rl.White
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
	}
}

func categoryLabel(cat string) string {
	switch cat {
	case "vehicle":
		return "Vehicle"
	case "perception":
		return "Perception"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}

// Action is a user command from the action panel.
type Action int

const (
	ActionNone Action = iota
	ActionPause
	ActionStep
	ActionToggleCrossed
	ActionToggleInhibition
	ActionCycleProfile
	ActionToggleJitter
	ActionResetAgent
	ActionResetAll
	ActionNextAgent
)

// ActionState is what the action panel shows.
type ActionState struct {
	Agent      string
	Crossed    bool
	Inhibitory bool
	Law        string
	Paused     bool
	Jitter     bool
	Speed      float32 // ticks per frame
	Scale      float32 // selected vehicle's activation scale
}

// ActionPanel renders raygui buttons and sliders for reconfiguring vehicles.
type ActionPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// ActionPanelHeight is the fixed height of the action panel.
const ActionPanelHeight = 262

// NewActionPanel creates an action panel.
func NewActionPanel(x, y, width int32) *ActionPanel {
	return &ActionPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (p *ActionPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Contains reports whether a screen point is over the panel.
func (p *ActionPanel) Contains(pt rl.Vector2) bool {
	return rl.CheckCollisionPointRec(pt, rl.Rectangle{
		X: float32(p.x), Y: float32(p.y), Width: float32(p.width), Height: ActionPanelHeight,
	})
}

// Draw renders the panel. It returns the triggered actions and the slider
// values, which the caller applies when they differ from st.
func (p *ActionPanel) Draw(st ActionState) (actions []Action, speed, scale float32) {
	r := p.renderer
	pad := float32(r.Theme.Padding)
	r.DrawPanel(p.x, p.y, p.width, ActionPanelHeight)

	x := float32(p.x) + pad
	y := float32(p.y) + pad
	half := (float32(p.width) - pad*3) / 2

	rl.DrawText("Vehicle: "+st.Agent, int32(x), int32(y), 14, rl.White)
	y += 20
	rl.DrawText(fmt.Sprintf("law %s", st.Law), int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
	y += 18

	button := func(col int, label string, a Action) {
		bx := x + float32(col)*(half+pad)
		if gui.Button(rl.Rectangle{X: bx, Y: y, Width: half, Height: 24}, label) {
			actions = append(actions, a)
		}
	}

	button(0, toggleText(st.Crossed, "Crossed [C]", "Uncrossed [C]"), ActionToggleCrossed)
	button(1, toggleText(st.Inhibitory, "Inhibitory [I]", "Excitatory [I]"), ActionToggleInhibition)
	y += 30
	button(0, "Step profile [T]", ActionCycleProfile)
	button(1, toggleText(st.Jitter, "Friction on [F]", "Friction off [F]"), ActionToggleJitter)
	y += 30
	button(0, "Reset vehicle [R]", ActionResetAgent)
	button(1, "Reset all", ActionResetAll)
	y += 30
	button(0, toggleText(st.Paused, "Resume [Space]", "Pause [Space]"), ActionPause)
	button(1, "Next vehicle [Tab]", ActionNextAgent)
	y += 34

	sliderW := float32(p.width) - pad*2 - 70
	rl.DrawText("Ticks per frame", int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
	y += 14
	speed = gui.SliderBar(rl.Rectangle{X: x + 20, Y: y, Width: sliderW, Height: 16}, "1", "20", st.Speed, 1, 20)
	rl.DrawText(fmt.Sprintf("%.0f", speed), int32(x+sliderW+50), int32(y), r.Theme.FontSize, r.Theme.ValueColor)
	y += 24

	rl.DrawText("Activation scale", int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
	y += 14
	scale = gui.SliderBar(rl.Rectangle{X: x + 20, Y: y, Width: sliderW, Height: 16}, "10", "300", st.Scale, 10, 300)
	rl.DrawText(fmt.Sprintf("%.0f", scale), int32(x+sliderW+50), int32(y), r.Theme.FontSize, r.Theme.ValueColor)

	return actions, speed, scale
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
