package kinematics

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Body is the collision view of a vehicle.
type Body struct {
	Pose   *Pose
	Radius float64
}

// ReflectHeading reflects the forward vector of heading across normal and
// returns the resulting heading. A zero normal leaves the heading unchanged.
func ReflectHeading(heading float64, normal r2.Vec) float64 {
	if r2.Norm(normal) == 0 {
		return heading
	}
	n := r2.Unit(normal)
	f := Forward(heading)
	reflected := r2.Sub(f, r2.Scale(2*r2.Dot(f, n), n))
	return HeadingOf(reflected)
}

// Contact is a colliding pair of body indices, A < B.
type Contact struct {
	A, B int
}

// ResolveCollisions checks every pair i<j in slice order and reflects both
// headings across the collision normal when the bodies overlap. Positions are
// left untouched. It returns the colliding pairs in check order.
func ResolveCollisions(bodies []Body) []Contact {
	var hits []Contact
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			a, b := bodies[i], bodies[j]
			if a.Pose == nil || b.Pose == nil {
				continue
			}
			delta := r2.Sub(a.Pose.Position, b.Pose.Position)
			if r2.Norm(delta) >= a.Radius+b.Radius {
				continue
			}
			hits = append(hits, Contact{A: i, B: j})
			a.Pose.Heading = ReflectHeading(a.Pose.Heading, delta)
			b.Pose.Heading = ReflectHeading(b.Pose.Heading, r2.Scale(-1, delta))
		}
	}
	return hits
}
