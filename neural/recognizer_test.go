package neural

import (
	"errors"
	"testing"
)

const step = 1.0 / 64 // exactly representable tick

func friend() *Candidate {
	return &Candidate{ID: 7, Distance: 120, Color: "olive", Frequency: 2.5, Speed: 2.0}
}

func TestRecognizerFiresOnFullMatch(t *testing.T) {
	cfg := DefaultConfig()
	r, err := NewRecognizer(cfg)
	if err != nil {
		t.Fatal(err)
	}

	firedAt := -1.0
	for i := 0; i <= 64; i++ {
		now := float64(i) * step
		d := r.Evaluate(friend(), now)
		if d.Fire && firedAt < 0 {
			firedAt = now
			if d.TargetID != 7 {
				t.Errorf("target id = %d, want 7", d.TargetID)
			}
		}
	}
	if firedAt < 0 {
		t.Fatal("motor never fired for a full match")
	}
	if firedAt < cfg.MinFiringDelay() {
		t.Errorf("fired at %v, before the combined dwell %v", firedAt, cfg.MinFiringDelay())
	}
}

func TestRecognizerTwoOfThreeNeverFires(t *testing.T) {
	decoys := map[string]*Candidate{
		"wrong color":     {ID: 1, Distance: 50, Color: "red", Frequency: 2.5, Speed: 1.5},
		"wrong frequency": {ID: 2, Distance: 50, Color: "olive", Frequency: 0.5, Speed: 1.8},
		"too fast":        {ID: 3, Distance: 50, Color: "olive", Frequency: 2.5, Speed: 4.0},
	}
	for name, c := range decoys {
		t.Run(name, func(t *testing.T) {
			r, err := NewRecognizer(DefaultConfig())
			if err != nil {
				t.Fatal(err)
			}
			for i := 0; i < 64*5; i++ {
				if d := r.Evaluate(c, float64(i)*step); d.Fire {
					t.Fatalf("decoy fired at t=%v", float64(i)*step)
				}
			}
			snap := r.Snapshot()
			if snap[3].Name != DeviceRecognition || snap[3].Sum != 2 {
				t.Errorf("gate snapshot = %+v, want sum 2", snap[3])
			}
		})
	}
}

func TestRecognizerOutOfRangeZeroesInputs(t *testing.T) {
	r, err := NewRecognizer(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	far := friend()
	far.Distance = 300 // range is exclusive

	for i := 0; i < 64; i++ {
		d := r.Evaluate(far, float64(i)*step)
		if d.ColorIn != 0 || d.FrequencyIn != 0 || d.SpeedIn != 0 || d.Fire {
			t.Fatalf("out-of-range candidate produced %+v", d)
		}
	}
	if d := r.Evaluate(nil, 2); d.Fire || d.TargetID != -1 {
		t.Errorf("nil candidate produced %+v", d)
	}
}

func TestRecognizerLosesTargetImmediately(t *testing.T) {
	r, err := NewRecognizer(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	now := 0.0
	for ; now <= 1; now += step {
		r.Evaluate(friend(), now)
	}
	if !r.Last().Fire {
		t.Fatal("expected firing after 1s of full match")
	}
	if d := r.Evaluate(nil, now); d.Fire {
		t.Error("still firing after target vanished")
	}
	for _, s := range r.Snapshot() {
		if s.Output != 0 {
			t.Errorf("device %s output %v after target lost", s.Name, s.Output)
		}
	}
}

func TestRecognizerRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Recognition.Dwell = -1
	if _, err := NewRecognizer(cfg); !errors.Is(err, ErrInvalidDevice) {
		t.Errorf("err = %v, want ErrInvalidDevice", err)
	}
}

func TestRecognizerReset(t *testing.T) {
	r, _ := NewRecognizer(DefaultConfig())
	for now := 0.0; now <= 1; now += step {
		r.Evaluate(friend(), now)
	}
	r.Reset()
	for _, s := range r.Snapshot() {
		if s.State != StateIdle {
			t.Errorf("device %s state %v after reset", s.Name, s.State)
		}
	}
	if r.Last().TargetID != -1 {
		t.Errorf("last target %d after reset", r.Last().TargetID)
	}
}
