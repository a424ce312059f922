package systems

import (
	"errors"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/vehicles/motor"
)

func TestStimulusStoreSnapshotOrderedByID(t *testing.T) {
	w := ecs.NewWorld()
	store := NewStimulusStore(w)

	// Mixing archetypes scrambles query order.
	a := store.Add(StimulusSpec{Kind: motor.KindTarget, Moving: true, X: 1})
	b := store.Add(StimulusSpec{Kind: motor.KindLight, X: 2})
	c := store.Add(StimulusSpec{Kind: motor.KindTarget, Moving: true, X: 3})
	d := store.Add(StimulusSpec{Kind: motor.KindHeat, X: 4})

	snap := store.Snapshot(nil)
	want := []int{a, b, c, d}
	if len(snap) != len(want) {
		t.Fatalf("snapshot len = %d, want %d", len(snap), len(want))
	}
	for i, id := range want {
		if snap[i].ID != id {
			t.Errorf("snap[%d].ID = %d, want %d", i, snap[i].ID, id)
		}
	}
	if !snap[0].Moving || snap[1].Moving {
		t.Error("moving flags not carried into the snapshot")
	}
}

func TestStimulusStoreMoveAndRemove(t *testing.T) {
	w := ecs.NewWorld()
	store := NewStimulusStore(w)
	id := store.Add(StimulusSpec{Kind: motor.KindLight, Tag: "yellow", X: 10, Y: 20, Radius: 5})

	if err := store.Move(id, 50, 60); err != nil {
		t.Fatalf("Move: %v", err)
	}
	v, ok := store.Get(id)
	if !ok || v.Position.X != 50 || v.Position.Y != 60 {
		t.Errorf("after Move got %+v", v)
	}
	if v.Tag != "yellow" || v.Kind != motor.KindLight || v.Radius != 5 {
		t.Errorf("identity not preserved: %+v", v)
	}

	if err := store.Remove(id); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, ok := store.Get(id); ok {
		t.Error("removed stimulus still visible")
	}
	if err := store.Move(id, 0, 0); !errors.Is(err, ErrUnknownStimulus) {
		t.Errorf("Move removed = %v, want ErrUnknownStimulus", err)
	}
	if err := store.Remove(99); !errors.Is(err, ErrUnknownStimulus) {
		t.Errorf("Remove unknown = %v, want ErrUnknownStimulus", err)
	}
}

func TestStimulusStoreClearKeepsIDsUnique(t *testing.T) {
	w := ecs.NewWorld()
	store := NewStimulusStore(w)
	first := store.Add(StimulusSpec{})
	store.Clear()
	if store.Len() != 0 {
		t.Fatalf("Len after Clear = %d", store.Len())
	}
	if second := store.Add(StimulusSpec{}); second == first {
		t.Errorf("ID %d reused after Clear", second)
	}
}

func TestStimulusStoreIndexQuery(t *testing.T) {
	w := ecs.NewWorld()
	store := NewStimulusStore(w)
	near := store.Add(StimulusSpec{X: 120, Y: 100})
	store.Add(StimulusSpec{X: 700, Y: 500})
	edge := store.Add(StimulusSpec{X: 400, Y: 100}) // exactly 300 away

	grid := NewSpatialGrid(800, 600, 64)
	store.Index(grid)

	got := grid.QueryRadiusInto(nil, 100, 100, 300, store.Positions())
	if len(got) != 1 {
		t.Fatalf("got %d neighbors, want 1", len(got))
	}
	e, _ := store.Entity(near)
	if got[0].E != e {
		t.Error("wrong neighbor returned")
	}
	if got[0].DistSq != 400 {
		t.Errorf("DistSq = %f, want 400", got[0].DistSq)
	}
	if ee, _ := store.Entity(edge); ee == got[0].E {
		t.Error("range boundary must be exclusive")
	}
}
