package systems

import (
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/vehicles/components"
)

func TestSpatialGridQuery(t *testing.T) {
	world := ecs.NewWorld()
	posMap := ecs.NewMap[components.Position](world)
	grid := NewSpatialGrid(400, 300, 64)

	points := []components.Position{
		{X: 100, Y: 100},
		{X: 130, Y: 100}, // 30 away
		{X: 100, Y: 200}, // 100 away, outside radius
		{X: 399, Y: 299}, // far corner
	}
	entities := make([]ecs.Entity, len(points))
	for i, p := range points {
		entities[i] = posMap.NewEntity(&p)
		grid.Insert(entities[i], p.X, p.Y)
	}

	got := grid.QueryRadiusInto(nil, 100, 100, 50, posMap)
	if len(got) != 2 {
		t.Fatalf("got %d neighbors, want 2", len(got))
	}
	for _, n := range got {
		if n.E == entities[1] {
			if math.Abs(n.DX-30) > 1e-9 || math.Abs(n.DistSq-900) > 1e-9 {
				t.Errorf("neighbor delta = (%f, %f) distSq %f", n.DX, n.DY, n.DistSq)
			}
		}
	}

	// Positions outside the arena clamp into edge cells.
	if got := grid.QueryRadiusInto(nil, 420, 320, 40, posMap); len(got) != 1 || got[0].E != entities[3] {
		t.Errorf("edge query returned %v", got)
	}

	grid.Clear()
	if got := grid.QueryRadiusInto(nil, 100, 100, 50, posMap); len(got) != 0 {
		t.Errorf("cleared grid returned %d neighbors", len(got))
	}
}

func TestSpatialGridStrictRadius(t *testing.T) {
	world := ecs.NewWorld()
	posMap := ecs.NewMap[components.Position](world)
	grid := NewSpatialGrid(200, 200, 32)

	e := posMap.NewEntity(&components.Position{X: 50, Y: 0})
	grid.Insert(e, 50, 0)

	if got := grid.QueryRadiusInto(nil, 0, 0, 50, posMap); len(got) != 0 {
		t.Error("entity exactly at radius should be excluded")
	}
	if got := grid.QueryRadiusInto(nil, 0, 0, 50.01, posMap); len(got) != 1 {
		t.Error("entity inside radius should be found")
	}
}
