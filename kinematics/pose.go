// Package kinematics holds vehicle pose math and the per-tick motion integrator.
//
// Headings are in degrees, 0 points up the screen (-Y) and angles grow
// clockwise, matching the y-down screen coordinates renderers use.
package kinematics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Pose is a vehicle's position and heading.
type Pose struct {
	Position r2.Vec
	Heading  float64 // degrees, [0, 360)
}

// NewPose returns a pose with a normalized heading.
func NewPose(x, y, heading float64) Pose {
	return Pose{Position: r2.Vec{X: x, Y: y}, Heading: NormalizeHeading(heading)}
}

// Forward returns the unit vector the pose is facing.
func (p Pose) Forward() r2.Vec { return Forward(p.Heading) }

// Right returns the unit vector toward the pose's right-hand side.
func (p Pose) Right() r2.Vec { return Right(p.Heading) }

// Forward returns the unit vector for a heading in degrees.
// This is the canonical up vector (0, -1) rotated clockwise by heading.
func Forward(heading float64) r2.Vec {
	s, c := math.Sincos(heading * math.Pi / 180)
	return r2.Vec{X: s, Y: -c}
}

// Right returns Forward(heading) rotated a further 90 degrees clockwise.
// Left/right sensor labels and the sign of the angular rate both derive
// from this vector, so it must not be changed independently.
func Right(heading float64) r2.Vec {
	s, c := math.Sincos(heading * math.Pi / 180)
	return r2.Vec{X: c, Y: s}
}

// NormalizeHeading wraps an angle in degrees into [0, 360).
func NormalizeHeading(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		h = 0
	}
	return h
}

// HeadingOf returns the heading of a direction vector.
func HeadingOf(v r2.Vec) float64 {
	return NormalizeHeading(math.Atan2(v.X, -v.Y) * 180 / math.Pi)
}

// BearingTo returns the heading that points from one position to another.
func BearingTo(from, to r2.Vec) float64 {
	return HeadingOf(r2.Sub(to, from))
}

// AngleDiff returns the signed shortest rotation from one heading to another,
// in [-180, 180).
func AngleDiff(from, to float64) float64 {
	d := math.Mod(to-from+180, 360)
	if d < 0 {
		d += 360
	}
	return d - 180
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b r2.Vec) float64 {
	return r2.Norm(r2.Sub(a, b))
}
