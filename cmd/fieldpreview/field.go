package main

import (
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/vehicles/kinematics"
	"github.com/pthm-cable/vehicles/motor"
	"github.com/pthm-cable/vehicles/response"
	"github.com/pthm-cable/vehicles/sensors"
)

// FieldParams describes one vehicle design evaluated around a single
// stimulus at the centre of the preview.
type FieldParams struct {
	Law          response.Config
	Wiring       motor.Wiring
	RotationGain float64
	BodyRadius   float64
	SensorRadius float64
	Spacing      float64
	Heading      float64 // degrees, every sample shares it
	Extent       float64 // arena units across the preview
	ShowSpeed    bool    // plot forward speed instead of turn rate
}

// generateField fills grid with the turn rate (or speed) a vehicle would
// have at each sample point, and returns the largest magnitude seen.
func generateField(grid []float32, size int, p FieldParams) float32 {
	geom := sensors.NewGeometry(p.BodyRadius, p.SensorRadius, p.Spacing, sensors.LayoutPair)
	comp := motor.Composer{RotationGain: p.RotationGain, Scale: p.Law.Scale}
	centre := r2.Vec{}

	var peak float32
	for y := 0; y < size; y++ {
		wy := (float64(y)+0.5)/float64(size)*p.Extent - p.Extent/2
		for x := 0; x < size; x++ {
			wx := (float64(x)+0.5)/float64(size)*p.Extent - p.Extent/2

			pose := kinematics.NewPose(wx, wy, p.Heading)
			left, right := geom.Pair(pose)
			out := comp.Compose(
				p.Law.Evaluate(r2.Norm(r2.Sub(left, centre))),
				p.Law.Evaluate(r2.Norm(r2.Sub(right, centre))),
				p.Wiring,
			)

			v := float32(out.AngularRate)
			if p.ShowSpeed {
				v = float32(out.Speed)
			}
			grid[y*size+x] = v
			if a := float32(math.Abs(float64(v))); a > peak {
				peak = a
			}
		}
	}
	return peak
}

// fieldColor maps a sample onto a diverging palette: blue for left turns,
// red for right turns, black for none. Speed plots use the red half.
func fieldColor(v, peak float32) color.RGBA {
	if peak <= 0 {
		return color.RGBA{A: 255}
	}
	t := min(float32(math.Abs(float64(v)))/peak, 1)
	t = float32(math.Sqrt(float64(t))) // lift the faint far field
	level := uint8(20 + t*235)
	if v < 0 {
		return color.RGBA{R: 20, G: uint8(20 + t*120), B: level, A: 255}
	}
	return color.RGBA{R: level, G: uint8(20 + t*90), B: 20, A: 255}
}
