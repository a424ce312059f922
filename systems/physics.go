// Package systems contains ECS systems for the arena's stimuli.
package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/vehicles/components"
	"github.com/pthm-cable/vehicles/kinematics"
)

// DefaultTargetScale converts a target's nominal speed into units per second.
const DefaultTargetScale = 50

// Bounds represents the arena bounds.
type Bounds struct {
	Width, Height float64
}

// TargetSystem moves buzzing targets and bounces them off the arena walls.
type TargetSystem struct {
	filter ecs.Filter4[components.Position, components.Velocity, components.Body, components.Signature]
	bounds Bounds
	scale  float64
}

// NewTargetSystem creates a target system. A non-positive scale falls back to
// DefaultTargetScale.
func NewTargetSystem(w *ecs.World, bounds Bounds, scale float64) *TargetSystem {
	if !(scale > 0) {
		scale = DefaultTargetScale
	}
	return &TargetSystem{
		filter: *ecs.NewFilter4[components.Position, components.Velocity, components.Body, components.Signature](w),
		bounds: bounds,
		scale:  scale,
	}
}

// Update advances every target by dt seconds.
func (s *TargetSystem) Update(dt float64) {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return
	}
	query := s.filter.Query()
	for query.Next() {
		pos, vel, body, sig := query.Get()

		dir := kinematics.Forward(vel.Heading)
		step := vel.Speed * dt * s.scale
		pos.X += dir.X * step
		pos.Y += dir.Y * step

		// Reflect the direction component that hit a wall.
		bounced := false
		pos.X, dir.X, bounced = bounceAxis(pos.X, dir.X, body.Radius, s.bounds.Width, bounced)
		pos.Y, dir.Y, bounced = bounceAxis(pos.Y, dir.Y, body.Radius, s.bounds.Height, bounced)
		if bounced {
			vel.Heading = kinematics.HeadingOf(r2.Vec{X: dir.X, Y: dir.Y})
		}

		sig.Phase = math.Mod(sig.Phase+sig.Frequency*dt*2*math.Pi, 2*math.Pi)
	}
}

func bounceAxis(v, d, margin, dim float64, bounced bool) (float64, float64, bool) {
	lo, hi := margin, dim-margin
	if lo > hi {
		return dim / 2, d, bounced
	}
	switch {
	case v < lo:
		return lo, math.Abs(d), true
	case v > hi:
		return hi, -math.Abs(d), true
	}
	return v, d, bounced
}
