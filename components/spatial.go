package components

// Position represents an entity's world position.
type Position struct {
	X, Y float64
}

// Velocity moves an entity along a heading.
type Velocity struct {
	Heading float64 // degrees, 0 = up the screen, clockwise
	Speed   float64 // nominal speed; the target system scales it per second
}
