package response

import (
	"errors"
	"math"
	"testing"
)

func allLaws(t *testing.T) map[string]Config {
	t.Helper()
	cfgs := map[string]Config{
		"inverse":        {Law: LawInverse, Scale: 100, MaxDistance: 400},
		"inverse_capped": {Law: LawInverseCapped, Scale: 100, Cap: 1, Floor: 10},
		"gaussian":       {Law: LawGaussian, Scale: 100, Optimal: 200, Width: 150, MaxDistance: 400},
		"threshold":      {Law: LawThreshold, Scale: 100, Threshold: 150},
	}
	for n := 1; n <= NumStepProfiles; n++ {
		c, err := StepProfile(n, 100, 300, 400)
		if err != nil {
			t.Fatalf("StepProfile(%d): %v", n, err)
		}
		cfgs[StepProfileName(n)] = c
	}
	return cfgs
}

func TestEvaluateBounded(t *testing.T) {
	distances := []float64{0, 1e-9, 0.5, 1, 2, 10, 59.99, 60, 120, 150, 199, 200, 210, 299.999, 300, 301, 400, 1e6, math.Inf(1), -5, math.NaN()}
	for name, cfg := range allLaws(t) {
		if err := cfg.Validate(); err != nil {
			t.Fatalf("%s: Validate: %v", name, err)
		}
		for _, d := range distances {
			a := cfg.Evaluate(d)
			if math.IsNaN(a) || a < 0 || a > cfg.Scale {
				t.Errorf("%s: Evaluate(%v) = %v outside [0, %v]", name, d, a, cfg.Scale)
			}
		}
	}
}

func TestInverseLaw(t *testing.T) {
	c := Config{Law: LawInverse, Scale: 100}
	tests := []struct{ d, want float64 }{
		{0, 100},
		{0.25, 100},
		{1, 100},
		{4, 25},
		{200, 0.5},
	}
	for _, tt := range tests {
		if got := c.Evaluate(tt.d); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Evaluate(%v) = %v, want %v", tt.d, got, tt.want)
		}
	}

	prev := math.Inf(1)
	for d := 1.0; d < 1000; d += 7 {
		got := c.Evaluate(d)
		if got > prev {
			t.Fatalf("inverse not monotone at %v: %v > %v", d, got, prev)
		}
		prev = got
	}
}

func TestInverseMaxDistance(t *testing.T) {
	c := Config{Law: LawInverse, Scale: 100, MaxDistance: 400}
	if got, want := c.Evaluate(10000), 100.0/400; math.Abs(got-want) > 1e-12 {
		t.Errorf("Evaluate beyond max = %v, want %v", got, want)
	}
}

func TestInverseCapped(t *testing.T) {
	c := Config{Law: LawInverseCapped, Scale: 100, Cap: 1, Floor: 10}
	if got := c.Evaluate(0); got != 1 {
		t.Errorf("Evaluate(0) = %v, want cap 1", got)
	}
	if got := c.Evaluate(200); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("Evaluate(200) = %v, want 0.5", got)
	}
}

func TestGaussianPeak(t *testing.T) {
	c := Config{Law: LawGaussian, Scale: 100, Optimal: 200, Width: 150}
	if got := c.Evaluate(200); got != 100 {
		t.Fatalf("Evaluate(optimal) = %v, want exactly 100", got)
	}
	for _, sign := range []float64{-1, 1} {
		prev := c.Evaluate(200)
		for off := 1.0; off <= 190; off += 1 {
			got := c.Evaluate(200 + sign*off)
			if !(got < prev) {
				t.Fatalf("gaussian not strictly decreasing at offset %v: %v >= %v", sign*off, got, prev)
			}
			prev = got
		}
	}
}

func TestThresholdStep(t *testing.T) {
	c := Config{Law: LawThreshold, Scale: 100, Threshold: 150}
	if got := c.Evaluate(150); got != 100 {
		t.Errorf("at threshold = %v, want 100", got)
	}
	if got := c.Evaluate(150.0001); got != 0 {
		t.Errorf("past threshold = %v, want 0", got)
	}
}

func TestStepProfiles(t *testing.T) {
	tests := []struct {
		profile int
		d       float64
		want    float64
	}{
		{1, 0, 100},
		{1, 150, 50},
		{1, 250, 30},
		{1, 301, 0},
		{2, 299, 80},
		{2, 300.5, 0},
		{3, 100, 100},
		{3, 150, 20},
		{3, 250, 50},
		{3, 350, 0},
		{4, 0, 100},
		{4, 150, 75},
		{4, 300, 0},
		{5, 30, 100},
		{5, 90, 50},
		{5, 150, 100},
		{5, 250, 30},
		{5, 320, 0},
	}
	for _, tt := range tests {
		c, err := StepProfile(tt.profile, 100, 300, 400)
		if err != nil {
			t.Fatal(err)
		}
		if got := c.Evaluate(tt.d); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("profile %d Evaluate(%v) = %v, want %v", tt.profile, tt.d, got, tt.want)
		}
	}
}

func TestStepProfileOutOfRange(t *testing.T) {
	if _, err := StepProfile(6, 100, 300, 400); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("StepProfile(6) err = %v, want ErrInvalidConfig", err)
	}
}

func TestInhibit(t *testing.T) {
	tests := []struct{ a, want float64 }{
		{0, 100},
		{25, 75},
		{100, 0},
		{150, 0},
		{-10, 100},
	}
	for _, tt := range tests {
		if got := Inhibit(tt.a, 100); got != tt.want {
			t.Errorf("Inhibit(%v) = %v, want %v", tt.a, got, tt.want)
		}
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero scale", Config{Law: LawInverse}},
		{"unknown law", Config{Law: "sigmoid", Scale: 1}},
		{"negative threshold", Config{Law: LawThreshold, Scale: 1, Threshold: -1}},
		{"zero gaussian width", Config{Law: LawGaussian, Scale: 1, Optimal: 10}},
		{"cap above scale", Config{Law: LawInverseCapped, Scale: 1, Cap: 2}},
		{"negative max distance", Config{Law: LawInverse, Scale: 1, MaxDistance: -1}},
		{"min activation above one", Config{Law: LawLinearFloor, Scale: 1, Threshold: 10, MinActivation: 1.5}},
		{"no bands", Config{Law: LawMultiStep, Scale: 1}},
		{"unordered bands", Config{Law: LawMultiStep, Scale: 1, Bands: []Band{{Upper: 50, Fraction: 1}, {Upper: 20, Fraction: 0.5}}}},
		{"duplicate band bound", Config{Law: LawMultiStep, Scale: 1, Bands: []Band{{Upper: 50, Fraction: 1}, {Upper: 50, Fraction: 0.5}}}},
		{"band fraction out of range", Config{Law: LawMultiStep, Scale: 1, Bands: []Band{{Upper: 50, Fraction: 2}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error %v does not wrap ErrInvalidConfig", err)
			}
		})
	}
}
