// Package sensors places a vehicle's sensors in world space.
package sensors

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/vehicles/kinematics"
)

// Side identifies which motor-side a sensor belongs to.
type Side uint8

const (
	SideSingle Side = iota
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideSingle:
		return "single"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	}
	return fmt.Sprintf("side(%d)", uint8(s))
}

// Layout is the number and arrangement of sensors on a vehicle.
type Layout uint8

const (
	// LayoutPair mounts a left and a right sensor either side of the nose.
	LayoutPair Layout = iota
	// LayoutSingle mounts one sensor on the nose.
	LayoutSingle
)

// Sensor is a sensor's world position for the current tick. It is derived
// from the pose every tick and never stored between ticks.
type Sensor struct {
	Side     Side
	Position r2.Vec
}

// Geometry describes where sensors sit relative to the vehicle body.
type Geometry struct {
	Offset  float64 // forward distance from body centre to sensor centre line
	Spacing float64 // lateral distance between the left and right sensor
	Layout  Layout
}

// NewGeometry returns the conventional geometry: sensors just outside the
// body, offset by body radius plus sensor radius.
func NewGeometry(bodyRadius, sensorRadius, spacing float64, layout Layout) Geometry {
	return Geometry{Offset: bodyRadius + sensorRadius, Spacing: spacing, Layout: layout}
}

// Place returns the sensors for the given pose. Pair layouts return
// [left, right]; single layouts return one sensor.
func (g Geometry) Place(p kinematics.Pose) []Sensor {
	nose := r2.Add(p.Position, r2.Scale(g.Offset, p.Forward()))
	if g.Layout == LayoutSingle {
		return []Sensor{{Side: SideSingle, Position: nose}}
	}
	half := r2.Scale(g.Spacing/2, p.Right())
	return []Sensor{
		{Side: SideLeft, Position: r2.Sub(nose, half)},
		{Side: SideRight, Position: r2.Add(nose, half)},
	}
}

// Pair returns the left and right sensor positions for a pose.
func (g Geometry) Pair(p kinematics.Pose) (left, right r2.Vec) {
	nose := r2.Add(p.Position, r2.Scale(g.Offset, p.Forward()))
	half := r2.Scale(g.Spacing/2, p.Right())
	return r2.Sub(nose, half), r2.Add(nose, half)
}
