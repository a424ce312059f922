package kinematics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Boundary selects how a vehicle is kept inside the arena.
type Boundary uint8

const (
	// BoundaryClamp pins each coordinate into [radius, dimension-radius].
	BoundaryClamp Boundary = iota
	// BoundaryWrap takes coordinates modulo the arena size (toroidal arena).
	BoundaryWrap
)

func (b Boundary) String() string {
	switch b {
	case BoundaryClamp:
		return "clamp"
	case BoundaryWrap:
		return "wrap"
	}
	return fmt.Sprintf("boundary(%d)", uint8(b))
}

// ParseBoundary converts a config string into a Boundary.
func ParseBoundary(s string) (Boundary, error) {
	switch s {
	case "clamp":
		return BoundaryClamp, nil
	case "wrap", "":
		return BoundaryWrap, nil
	}
	return 0, fmt.Errorf("unknown boundary policy %q", s)
}

// Motion is the output of a motor composer for one tick.
type Motion struct {
	Speed       float64 // distance units per tick (or per second in delta-time mode)
	AngularRate float64 // degrees per tick (or per second in delta-time mode)
}

// Integrator advances a pose by a Motion and applies one boundary policy.
// The boundary is fixed when the integrator is built.
type Integrator struct {
	Width, Height float64
	Radius        float64
	boundary      Boundary
	Jitter        Jitter
}

// NewIntegrator creates an integrator for an arena of the given size.
func NewIntegrator(width, height, radius float64, boundary Boundary) *Integrator {
	return &Integrator{
		Width:    width,
		Height:   height,
		Radius:   radius,
		boundary: boundary,
		Jitter:   NoJitter{},
	}
}

// Boundary returns the integrator's boundary policy.
func (in *Integrator) Boundary() Boundary { return in.boundary }

// Step integrates one tick. dtScale is 1 in fixed-step mode or the elapsed
// seconds in delta-time mode.
func (in *Integrator) Step(p Pose, m Motion, dtScale float64) Pose {
	speed := finiteOr(m.Speed, 0)
	rate := finiteOr(m.AngularRate, 0)
	dtScale = finiteOr(dtScale, 0)

	heading := NormalizeHeading(p.Heading + rate*dtScale)
	pos := r2.Add(p.Position, r2.Scale(speed*dtScale, Forward(heading)))

	// Friction jitter perturbs the heading used on the next tick.
	if in.Jitter != nil {
		heading = NormalizeHeading(heading + finiteOr(in.Jitter.Sample(), 0))
	}

	return Pose{Position: in.Constrain(pos), Heading: heading}
}

// Constrain applies the boundary policy to a position.
func (in *Integrator) Constrain(pos r2.Vec) r2.Vec {
	switch in.boundary {
	case BoundaryClamp:
		pos.X = clampAxis(pos.X, in.Radius, in.Width)
		pos.Y = clampAxis(pos.Y, in.Radius, in.Height)
	case BoundaryWrap:
		pos.X = wrapAxis(pos.X, in.Width)
		pos.Y = wrapAxis(pos.Y, in.Height)
	}
	return pos
}

func clampAxis(v, radius, dim float64) float64 {
	lo, hi := radius, dim-radius
	if lo > hi {
		return dim / 2
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func wrapAxis(v, dim float64) float64 {
	if dim <= 0 {
		return 0
	}
	v = math.Mod(v, dim)
	if v < 0 {
		v += dim
	}
	// Adding dim to a tiny negative remainder can round up to dim itself.
	if v >= dim {
		v = 0
	}
	return v
}

func finiteOr(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}
