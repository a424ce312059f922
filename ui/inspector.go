package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/vehicles/neural"
	"github.com/pthm-cable/vehicles/vehicle"
)

// Inspector shows readouts for one vehicle, laid out from descriptors.
type Inspector struct {
	renderer *Renderer
	x, y     int32
	width    int32
	sections []SectionDescriptor
}

// NewInspector creates an inspector. activationScale sets the bar range for
// sensor and motor readouts; maxTurn the range for the turn rate bar.
func NewInspector(x, y, width int32, activationScale, maxTurn float32) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		sections: vehicleSections(activationScale, maxTurn),
	}
}

// SetPosition updates the panel position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Draw renders the panel for s and returns the Y below it.
func (ins *Inspector) Draw(s vehicle.State) int32 {
	r := ins.renderer
	padding := r.Theme.Padding

	height := padding*2 + r.Theme.LineHeight + 4
	for _, sd := range ins.sections {
		height += r.SectionHeight(sd, s)
	}
	for range s.Brain {
		height += r.Theme.LineHeight
	}
	r.DrawPanel(ins.x, ins.y, ins.width, height)

	x := ins.x + padding
	y := ins.y + padding
	rl.DrawText(fmt.Sprintf("#%d %s", s.ID, s.Name), x, y, 16, rl.White)
	y += r.Theme.LineHeight + 4

	inner := ins.width - padding*2
	for _, sd := range ins.sections {
		y = r.DrawSection(x, y, sd, s, inner)
	}
	for _, d := range s.Brain {
		y = ins.drawDevice(x, y, d)
	}
	return y
}

func (ins *Inspector) drawDevice(x, y int32, d neural.DeviceSnapshot) int32 {
	r := ins.renderer
	color := r.Theme.LabelColor
	switch d.State {
	case neural.StateAccumulating:
		color = rl.Orange
	case neural.StateFiring:
		color = rl.Green
	}
	rl.DrawCircle(x+4, y+6, 4, color)
	rl.DrawText(fmt.Sprintf("%-10s sum %.1f / %.1f  %s", d.Name, d.Sum, d.Threshold, d.State),
		x+14, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

func vehicleSections(scale, maxTurn float32) []SectionDescriptor {
	state := func(data any) vehicle.State { return data.(vehicle.State) }
	isReactive := func(data any) bool { return state(data).Behavior != vehicle.BehaviorRecognizer }
	actRange := FieldRange{Min: 0, Max: scale}

	return []SectionDescriptor{
		{
			ID:    "vehicle",
			Title: "Vehicle",
			Fields: []FieldDescriptor{
				{ID: "behavior", Label: "Behavior", Widget: WidgetText,
					TextGetter: func(d any) string { return state(d).Behavior.String() }},
				{ID: "wiring", Label: "Wiring", Widget: WidgetText, Visible: isReactive,
					TextGetter: func(d any) string { return wiringLabel(state(d)) }},
				{ID: "law", Label: "Law", Widget: WidgetText, Visible: isReactive,
					TextGetter: func(d any) string { return string(state(d).Law) }},
				{ID: "pose", Label: "Pose", Widget: WidgetText,
					TextGetter: func(d any) string {
						p := state(d).Pose
						return fmt.Sprintf("(%.0f, %.0f) %.0f°", p.Position.X, p.Position.Y, p.Heading)
					}},
				{ID: "nearest", Label: "Nearest", Widget: WidgetText,
					TextGetter: func(d any) string {
						s := state(d)
						if s.Nearest < 0 {
							return "none"
						}
						return fmt.Sprintf("#%d at %.0f", s.Nearest, s.NearestDistance)
					}},
			},
		},
		{
			ID:      "sensors",
			Title:   "Sensors",
			Visible: isReactive,
			Fields: []FieldDescriptor{
				{ID: "left_act", Label: "Left", Widget: WidgetBar, Range: actRange,
					Getter: func(d any) float32 { return float32(state(d).Output.LeftActivation) }},
				{ID: "right_act", Label: "Right", Widget: WidgetBar, Range: actRange,
					Getter: func(d any) float32 { return float32(state(d).Output.RightActivation) }},
			},
		},
		{
			ID:    "motors",
			Title: "Motors",
			Fields: []FieldDescriptor{
				{ID: "left_motor", Label: "Left", Widget: WidgetBar, Range: actRange, Visible: isReactive,
					Getter: func(d any) float32 { return float32(state(d).Output.LeftMotor) }},
				{ID: "right_motor", Label: "Right", Widget: WidgetBar, Range: actRange, Visible: isReactive,
					Getter: func(d any) float32 { return float32(state(d).Output.RightMotor) }},
				{ID: "speed", Label: "Speed", Widget: WidgetText, Format: "%.2f",
					Getter: func(d any) float32 { return float32(state(d).Output.Speed) }},
				{ID: "turn", Label: "Turn", Widget: WidgetCenteredBar, Range: CenteredRange(maxTurn),
					Getter: func(d any) float32 { return float32(state(d).Output.AngularRate) }},
			},
		},
		{
			ID:      "brain",
			Title:   "Recognition",
			Visible: func(d any) bool { return !isReactive(d) },
			Fields: []FieldDescriptor{
				{ID: "target", Label: "Target", Widget: WidgetText,
					TextGetter: func(d any) string {
						if id := state(d).TargetID; id >= 0 {
							return fmt.Sprintf("#%d", id)
						}
						return "none"
					}},
			},
		},
	}
}

func wiringLabel(s vehicle.State) string {
	cross := "uncrossed"
	if s.Wiring.Crossed {
		cross = "crossed"
	}
	sign := "excitatory"
	if s.Wiring.Inhibitory {
		sign = "inhibitory"
	}
	return cross + ", " + sign
}
