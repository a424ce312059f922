package vehicle

import (
	"testing"

	"github.com/pthm-cable/vehicles/kinematics"
	"github.com/pthm-cable/vehicles/motor"
	"github.com/pthm-cable/vehicles/response"
)

func TestEveryPresetBuilds(t *testing.T) {
	for _, name := range Presets() {
		t.Run(name, func(t *testing.T) {
			p := baseParams()
			if err := ApplyPreset(name, &p); err != nil {
				t.Fatalf("ApplyPreset: %v", err)
			}
			if _, err := New(p, kinematics.NewIntegrator(800, 600, 20, kinematics.BoundaryWrap)); err != nil {
				t.Fatalf("New: %v", err)
			}
		})
	}
}

func TestPresetWiring(t *testing.T) {
	tests := []struct {
		name string
		want motor.Wiring
		law  response.Law
	}{
		{PresetAggression, motor.Wiring{}, response.LawInverse},
		{PresetFear, motor.Wiring{Crossed: true}, response.LawInverse},
		{PresetLove, motor.Wiring{Crossed: true, Inhibitory: true}, response.LawInverse},
		{PresetExplorer, motor.Wiring{Inhibitory: true}, response.LawInverse},
		{PresetPeak, motor.Wiring{}, response.LawGaussian},
		{"threshold2", motor.Wiring{}, response.LawMultiStep},
		{"threshold4", motor.Wiring{}, response.LawQuadratic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := baseParams()
			if err := ApplyPreset(tt.name, &p); err != nil {
				t.Fatal(err)
			}
			if p.Wiring != tt.want {
				t.Errorf("wiring = %+v, want %+v", p.Wiring, tt.want)
			}
			if p.Response.Law != tt.law {
				t.Errorf("law = %s, want %s", p.Response.Law, tt.law)
			}
			if p.Response.Scale != 100 {
				t.Errorf("scale = %f, want the caller's 100", p.Response.Scale)
			}
		})
	}
}

func TestUnknownPresets(t *testing.T) {
	for _, name := range []string{"", "vehicle9", "threshold0", "threshold6", "thresholdx"} {
		p := baseParams()
		if err := ApplyPreset(name, &p); err == nil {
			t.Errorf("preset %q accepted", name)
		}
	}
}

func TestParseBehavior(t *testing.T) {
	for i, name := range behaviorNames {
		b, err := ParseBehavior(name)
		if err != nil || b != Behavior(i) {
			t.Errorf("ParseBehavior(%q) = %v, %v", name, b, err)
		}
	}
	if b, err := ParseBehavior(""); err != nil || b != BehaviorReactive {
		t.Errorf("empty behavior = %v, %v", b, err)
	}
	if _, err := ParseBehavior("swarm"); err == nil {
		t.Error("unknown behavior accepted")
	}
}
