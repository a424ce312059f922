package motor

import (
	"math"
	"testing"
)

func TestComposeCrossedSwapsMotors(t *testing.T) {
	c := Composer{RotationGain: 5, Scale: 100}
	pairs := [][2]float64{{10, 40}, {0.7, 0.2}, {100, 0}}
	for _, inhib := range []bool{false, true} {
		for _, p := range pairs {
			straight := c.Compose(p[0], p[1], Wiring{Inhibitory: inhib})
			crossed := c.Compose(p[0], p[1], Wiring{Crossed: true, Inhibitory: inhib})
			if crossed.LeftMotor != straight.RightMotor || crossed.RightMotor != straight.LeftMotor {
				t.Errorf("inhib=%v %v: crossed motors (%v, %v) not reverse of (%v, %v)",
					inhib, p, crossed.LeftMotor, crossed.RightMotor, straight.LeftMotor, straight.RightMotor)
			}
			if crossed.Speed != straight.Speed {
				t.Errorf("crossing changed speed: %v vs %v", crossed.Speed, straight.Speed)
			}
			if crossed.AngularRate != -straight.AngularRate {
				t.Errorf("crossing should negate rate: %v vs %v", crossed.AngularRate, straight.AngularRate)
			}
		}
	}
}

func TestComposeSpeedAndRate(t *testing.T) {
	c := Composer{RotationGain: 2, Scale: 100}
	out := c.Compose(10, 30, Wiring{})
	if out.Speed != 20 {
		t.Errorf("speed = %v, want 20", out.Speed)
	}
	if out.AngularRate != 40 {
		t.Errorf("rate = %v, want 40", out.AngularRate)
	}
	if out.LeftActivation != 10 || out.RightActivation != 30 {
		t.Errorf("raw activations not preserved: %+v", out)
	}
}

func TestComposeInhibitory(t *testing.T) {
	c := Composer{RotationGain: 1, Scale: 100}
	out := c.Compose(10, 30, Wiring{Inhibitory: true})
	if out.LeftMotor != 90 || out.RightMotor != 70 {
		t.Errorf("motors = (%v, %v), want (90, 70)", out.LeftMotor, out.RightMotor)
	}
	if out.AngularRate != -20 {
		t.Errorf("rate = %v, want -20", out.AngularRate)
	}
}

func TestComposeSingle(t *testing.T) {
	c := Composer{RotationGain: 5, Scale: 100}
	out := c.ComposeSingle(0.5, Wiring{})
	if out.Speed != 0.5 || out.AngularRate != 0 {
		t.Errorf("single = %+v, want speed 0.5 and no turn", out)
	}
}

func TestComposeMultiPerKindWiring(t *testing.T) {
	c := Composer{RotationGain: 1, Scale: 1}
	kinds := DefaultKindWiring()

	tests := []struct {
		kind        Kind
		left, right float64 // motors before floor
	}{
		{KindLight, 0.3, 0.1},
		{KindHeat, 0.1, 0.3},
		{KindOxygen, -0.1, -0.3},
		{KindOrganic, -0.3, -0.1},
	}
	for _, tt := range tests {
		c.Floor = -1 // floor clamps to zero, never below
		out := c.ComposeMulti([]Contribution{{Kind: tt.kind, Left: 0.3, Right: 0.1}}, kinds, Wiring{})
		wantL, wantR := math.Max(tt.left, 0), math.Max(tt.right, 0)
		if math.Abs(out.LeftMotor-wantL) > 1e-12 || math.Abs(out.RightMotor-wantR) > 1e-12 {
			t.Errorf("%s: motors (%v, %v), want (%v, %v)", tt.kind, out.LeftMotor, out.RightMotor, wantL, wantR)
		}
	}
}

func TestComposeMultiSumsBeforeFloor(t *testing.T) {
	c := Composer{RotationGain: 1, Scale: 1, Floor: 0.1}
	contribs := []Contribution{
		{Kind: KindLight, Left: 0.5, Right: 0.2},
		{Kind: KindOrganic, Left: 0.2, Right: 0.4},
		{Kind: "unknown", Left: 9, Right: 9},
	}
	out := c.ComposeMulti(contribs, DefaultKindWiring(), Wiring{})

	// Left: 0.5 - 0.2 = 0.3. Right: 0.2 - 0.4 = -0.2, saturated to floor.
	if math.Abs(out.LeftMotor-0.3) > 1e-12 {
		t.Errorf("left motor = %v, want 0.3", out.LeftMotor)
	}
	if out.RightMotor != 0.1 {
		t.Errorf("right motor = %v, want floor 0.1", out.RightMotor)
	}
	if out.Speed < 0 {
		t.Errorf("negative speed %v", out.Speed)
	}
}

func TestComposeMultiVehicleCrossing(t *testing.T) {
	c := Composer{RotationGain: 1, Scale: 1}
	contribs := []Contribution{{Kind: KindLight, Left: 0.4, Right: 0.1}}
	straight := c.ComposeMulti(contribs, DefaultKindWiring(), Wiring{})
	crossed := c.ComposeMulti(contribs, DefaultKindWiring(), Wiring{Crossed: true})
	if crossed.LeftMotor != straight.RightMotor || crossed.RightMotor != straight.LeftMotor {
		t.Errorf("vehicle crossing did not swap: %+v vs %+v", crossed, straight)
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		got, err := ParseKind(string(k))
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %q, %v", k, got, err)
		}
	}
	if k, err := ParseKind(""); err != nil || k != KindLight {
		t.Errorf("empty kind = %q, %v", k, err)
	}
	if _, err := ParseKind("sound"); err == nil {
		t.Error("unknown kind accepted")
	}
}
