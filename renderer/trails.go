package renderer

import "gonum.org/v1/gonum/spatial/r2"

// Trails keeps a bounded history of positions per vehicle.
type Trails struct {
	capacity int
	points   [][]r2.Vec
	head     []int
	count    []int
}

// NewTrails creates trails holding up to capacity points per vehicle.
func NewTrails(vehicles, capacity int) *Trails {
	t := &Trails{capacity: max(capacity, 1)}
	t.Resize(vehicles)
	return t
}

// Resize changes the number of tracked vehicles, clearing all history.
func (t *Trails) Resize(vehicles int) {
	t.points = make([][]r2.Vec, vehicles)
	for i := range t.points {
		t.points[i] = make([]r2.Vec, t.capacity)
	}
	t.head = make([]int, vehicles)
	t.count = make([]int, vehicles)
}

// Push appends a position for vehicle i.
func (t *Trails) Push(i int, p r2.Vec) {
	if i < 0 || i >= len(t.points) {
		return
	}
	t.points[i][t.head[i]] = p
	t.head[i] = (t.head[i] + 1) % t.capacity
	t.count[i] = min(t.count[i]+1, t.capacity)
}

// Clear drops the history of vehicle i, or all vehicles when i < 0.
func (t *Trails) Clear(i int) {
	if i < 0 {
		clear(t.count)
		return
	}
	if i < len(t.count) {
		t.count[i] = 0
	}
}

// Each calls fn for vehicle i's points from oldest to newest.
func (t *Trails) Each(i int, fn func(k int, p r2.Vec)) {
	if i < 0 || i >= len(t.points) {
		return
	}
	n := t.count[i]
	start := (t.head[i] - n + t.capacity) % t.capacity
	for k := range n {
		fn(k, t.points[i][(start+k)%t.capacity])
	}
}

// Len returns how many points vehicle i has.
func (t *Trails) Len(i int) int {
	if i < 0 || i >= len(t.count) {
		return 0
	}
	return t.count[i]
}
