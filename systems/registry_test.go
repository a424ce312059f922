package systems

import (
	"slices"
	"testing"

	"github.com/pthm-cable/vehicles/telemetry"
)

func TestRegistryMatchesPhases(t *testing.T) {
	reg := NewSystemRegistry()
	if got := reg.IDs(); !slices.Equal(got, telemetry.Phases) {
		t.Errorf("IDs() = %v, want %v", got, telemetry.Phases)
	}
	for _, id := range reg.IDs() {
		if name := reg.GetName(id); name == id || name == "" {
			t.Errorf("%s has no display name", id)
		}
	}
	if got := reg.GetName("missing"); got != "missing" {
		t.Errorf("GetName(missing) = %q", got)
	}
}

func TestRegistryCategories(t *testing.T) {
	reg := NewSystemRegistry()
	if got := len(reg.ByCategory("vehicle")); got != 1 {
		t.Errorf("vehicle systems = %d, want 1", got)
	}
	if _, ok := reg.Get(telemetry.PhaseCollision); !ok {
		t.Error("collision not registered")
	}
	if len(reg.Categories()) != 5 {
		t.Errorf("categories = %v", reg.Categories())
	}
}
