package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/vehicles/neural"
)

// Network colors for device state visualization.
var (
	ColorNodeIdle     = rl.Color{R: 60, G: 60, B: 60, A: 255}
	ColorNodeCharging = rl.Color{R: 255, G: 170, B: 60, A: 255}
	ColorNodeFiring   = rl.Color{R: 90, G: 220, B: 110, A: 255}
	ColorEdgeIdle     = rl.Color{R: 90, G: 90, B: 90, A: 90}
	ColorEdgeActive   = rl.Color{R: 90, G: 220, B: 110, A: 180}
	ColorLabelDim     = rl.Color{R: 120, G: 120, B: 120, A: 255}
)

// NetworkDiagramHeight is the height DrawNetworkDiagram is laid out for.
const NetworkDiagramHeight = 120

// DrawNetworkDiagram renders a recognition network as three columns:
// detectors, the recognition device, and the motor device. Each node fills
// with its sum relative to threshold; edges light up when the source fires.
func DrawNetworkDiagram(x, y, width, height int32, devices []neural.DeviceSnapshot) {
	if len(devices) == 0 {
		rl.DrawText("No network data", x+10, y+10, 14, ColorLabelDim)
		return
	}

	var detectors []neural.DeviceSnapshot
	var recognition, motor *neural.DeviceSnapshot
	for i := range devices {
		switch devices[i].Name {
		case neural.DeviceRecognition:
			recognition = &devices[i]
		case neural.DeviceMotor:
			motor = &devices[i]
		default:
			detectors = append(detectors, devices[i])
		}
	}

	colWidth := width / 3
	nodeRadius := float32(7)
	midY := float32(y) + float32(height)/2

	detectorX := float32(x) + float32(colWidth)/2
	recognitionX := float32(x) + float32(colWidth) + float32(colWidth)/2
	motorX := float32(x) + float32(2*colWidth) + float32(colWidth)/2

	spacing := float32(height-20) / float32(max(len(detectors), 1))
	detectorNodes := make([]rl.Vector2, len(detectors))
	for i := range detectors {
		detectorNodes[i] = rl.Vector2{
			X: detectorX,
			Y: float32(y) + 10 + spacing/2 + float32(i)*spacing,
		}
	}
	recognitionNode := rl.Vector2{X: recognitionX, Y: midY}
	motorNode := rl.Vector2{X: motorX, Y: midY}

	// Edges first so nodes draw over them.
	for i, d := range detectors {
		drawEdge(detectorNodes[i], recognitionNode, d.Output)
	}
	if recognition != nil {
		drawEdge(recognitionNode, motorNode, recognition.Output)
	}

	for i, d := range detectors {
		drawNode(detectorNodes[i], nodeRadius, d)
		labelWidth := rl.MeasureText(d.Name, 10)
		rl.DrawText(d.Name, int32(detectorNodes[i].X-nodeRadius)-labelWidth-4, int32(detectorNodes[i].Y)-5, 10, ColorLabelDim)
	}
	if recognition != nil {
		drawNode(recognitionNode, nodeRadius+2, *recognition)
		rl.DrawText("recognize", int32(recognitionX)-24, int32(midY+nodeRadius)+6, 10, ColorLabelDim)
	}
	if motor != nil {
		drawNode(motorNode, nodeRadius+2, *motor)
		rl.DrawText("pursue", int32(motorX)-16, int32(midY+nodeRadius)+6, 10, ColorLabelDim)
	}
}

// drawNode renders one device: a ring, filled in proportion to how close
// its input sum is to threshold.
func drawNode(pos rl.Vector2, radius float32, d neural.DeviceSnapshot) {
	fill := float32(0)
	if d.Threshold > 0 {
		fill = min(float32(d.Sum/d.Threshold), 1)
	}

	color := ColorNodeIdle
	switch d.State {
	case neural.StateAccumulating:
		color = ColorNodeCharging
	case neural.StateFiring:
		color = ColorNodeFiring
	}

	rl.DrawCircleV(pos, radius, ColorNodeIdle)
	if fill > 0 {
		rl.DrawCircleV(pos, radius*fill, color)
	}
	rl.DrawCircleLinesV(pos, radius, rl.Color{R: 100, G: 100, B: 100, A: 255})
}

// drawEdge renders a connection; output is the source device's output.
func drawEdge(from, to rl.Vector2, output float64) {
	if output > 0 {
		rl.DrawLineEx(from, to, 2.5, ColorEdgeActive)
		return
	}
	rl.DrawLineEx(from, to, 1, ColorEdgeIdle)
}
