package vehicle

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/vehicles/kinematics"
	"github.com/pthm-cable/vehicles/motor"
	"github.com/pthm-cable/vehicles/response"
	"github.com/pthm-cable/vehicles/systems"
)

func baseParams() Params {
	return Params{
		Name:          "test",
		Pose:          kinematics.NewPose(300, 500, 45),
		BodyRadius:    20,
		SensorRadius:  5,
		SensorSpacing: 20,
		Response:      response.Config{Law: response.LawInverse, Scale: 100},
		RotationGain:  5,
	}
}

func newAgent(t *testing.T, p Params) *Agent {
	t.Helper()
	a, err := New(p, kinematics.NewIntegrator(800, 600, p.BodyRadius, kinematics.BoundaryClamp))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

func light(id int, x, y float64) systems.StimulusView {
	return systems.StimulusView{ID: id, Kind: motor.KindLight, Position: r2.Vec{X: x, Y: y}}
}

func TestUncrossedAgentApproachesStimulus(t *testing.T) {
	a := newAgent(t, baseParams())
	stim := []systems.StimulusView{light(0, 400, 300)}

	before := kinematics.Distance(a.Pose().Position, stim[0].Position)
	bearingErr := math.Abs(kinematics.AngleDiff(a.Pose().Heading, kinematics.BearingTo(a.Pose().Position, stim[0].Position)))

	st := a.Step(stim, 0, 1)

	after := kinematics.Distance(st.Pose.Position, stim[0].Position)
	if after >= before {
		t.Errorf("distance did not decrease: %f -> %f", before, after)
	}
	newErr := math.Abs(kinematics.AngleDiff(st.Pose.Heading, kinematics.BearingTo(st.Pose.Position, stim[0].Position)))
	if newErr >= bearingErr {
		t.Errorf("heading error did not shrink: %f -> %f", bearingErr, newErr)
	}
	if st.Nearest != 0 || st.NearestDistance <= 0 {
		t.Errorf("nearest = %d at %f", st.Nearest, st.NearestDistance)
	}
}

func TestWiringRotationSigns(t *testing.T) {
	stim := []systems.StimulusView{light(0, 400, 300)}
	rate := func(w motor.Wiring) float64 {
		p := baseParams()
		p.Wiring = w
		return newAgent(t, p).Step(stim, 0, 1).Output.AngularRate
	}

	plain := rate(motor.Wiring{})
	crossed := rate(motor.Wiring{Crossed: true})
	inhib := rate(motor.Wiring{Inhibitory: true})
	both := rate(motor.Wiring{Crossed: true, Inhibitory: true})

	// The stimulus is counterclockwise of the heading.
	if plain >= 0 {
		t.Fatalf("uncrossed excitatory rate = %f, want < 0", plain)
	}
	if math.Signbit(crossed) == math.Signbit(plain) {
		t.Errorf("crossing should flip the turn: %f vs %f", crossed, plain)
	}
	if math.Signbit(inhib) == math.Signbit(plain) {
		t.Errorf("inhibition should flip the turn: %f vs %f", inhib, plain)
	}
	if math.Signbit(both) != math.Signbit(plain) {
		t.Errorf("crossing plus inhibition should restore the turn: %f vs %f", both, plain)
	}
	if math.Abs(math.Abs(both)-math.Abs(plain)) > 1e-9 {
		t.Errorf("|rate| differs: %f vs %f", both, plain)
	}
}

func TestSingleSensorNeverTurns(t *testing.T) {
	p := baseParams()
	p.Behavior = BehaviorSingle
	a := newAgent(t, p)
	stim := []systems.StimulusView{light(0, 400, 300)}
	for i := 0; i < 10; i++ {
		st := a.Step(stim, float64(i), 1)
		if st.Pose.Heading != 45 {
			t.Fatalf("tick %d heading = %f, want 45", i, st.Pose.Heading)
		}
		if len(st.Sensors) != 1 {
			t.Fatalf("single vehicle has %d sensors", len(st.Sensors))
		}
	}
}

func TestNoStimulusMeansNoDrive(t *testing.T) {
	a := newAgent(t, baseParams())
	st := a.Step(nil, 0, 1)
	if st.Output.Speed != 0 || st.Output.AngularRate != 0 {
		t.Errorf("output = %+v, want zero", st.Output)
	}
	if st.Nearest != -1 {
		t.Errorf("nearest = %d, want -1", st.Nearest)
	}

	p := baseParams()
	p.Wiring = motor.Wiring{Inhibitory: true}
	st = newAgent(t, p).Step(nil, 0, 1)
	if st.Output.Speed != 100 {
		t.Errorf("inhibitory vehicle in the dark: speed = %f, want full scale", st.Output.Speed)
	}
}

func TestSensesFilter(t *testing.T) {
	p := baseParams()
	p.Senses = []motor.Kind{motor.KindHeat}
	a := newAgent(t, p)
	heat := systems.StimulusView{ID: 7, Kind: motor.KindHeat, Position: r2.Vec{X: 700, Y: 100}}
	st := a.Step([]systems.StimulusView{light(0, 310, 490), heat}, 0, 1)
	if st.Nearest != 7 {
		t.Errorf("nearest = %d, want the heat source", st.Nearest)
	}
}

func TestMultiSensoryFloor(t *testing.T) {
	p := baseParams()
	p.Behavior = BehaviorMulti
	p.Kinds = motor.DefaultKindWiring()
	a := newAgent(t, p)

	organic := systems.StimulusView{ID: 1, Kind: motor.KindOrganic, Position: r2.Vec{X: 400, Y: 300}}
	st := a.Step([]systems.StimulusView{organic}, 0, 1)
	if st.Output.LeftMotor != 0 || st.Output.RightMotor != 0 {
		t.Errorf("inhibitory-only sums must saturate at the floor, got %+v", st.Output)
	}
	if st.Output.LeftActivation >= 0 {
		t.Errorf("signed activation = %f, want negative", st.Output.LeftActivation)
	}
	if st.Pose.Position != p.Pose.Position {
		t.Errorf("vehicle moved to %v with zero thrust", st.Pose.Position)
	}
}

func TestMultiSensoryLightMatchesReactive(t *testing.T) {
	stim := []systems.StimulusView{light(0, 400, 300)}
	p := baseParams()
	reactive := newAgent(t, p).Step(stim, 0, 1)

	p.Behavior = BehaviorMulti
	multi := newAgent(t, p).Step(stim, 0, 1)

	if math.Abs(reactive.Output.AngularRate-multi.Output.AngularRate) > 1e-9 {
		t.Errorf("rate %f vs %f", multi.Output.AngularRate, reactive.Output.AngularRate)
	}
}

func TestSetLawRejectsInvalid(t *testing.T) {
	a := newAgent(t, baseParams())
	err := a.SetLaw(response.Config{Law: response.LawGaussian, Scale: 100, Width: 0})
	if !errors.Is(err, response.ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
	if a.Law().Law != response.LawInverse {
		t.Errorf("law changed to %s after rejected update", a.Law().Law)
	}

	if err := a.SetLaw(response.Config{Law: response.LawThreshold, Scale: 50, Threshold: 100}); err != nil {
		t.Fatalf("valid law rejected: %v", err)
	}
	if a.Law().Scale != 50 {
		t.Errorf("scale = %f, want 50", a.Law().Scale)
	}
}

func TestWiringSetters(t *testing.T) {
	a := newAgent(t, baseParams())
	a.SetCrossed(true)
	a.SetInhibition(true)
	if w := a.Wiring(); !w.Crossed || !w.Inhibitory {
		t.Errorf("wiring = %+v", w)
	}
	a.SetWiring(motor.Wiring{})
	if w := a.Wiring(); w.Crossed || w.Inhibitory {
		t.Errorf("wiring = %+v after reset", w)
	}
}

func TestResetRestoresPose(t *testing.T) {
	a := newAgent(t, baseParams())
	stim := []systems.StimulusView{light(0, 400, 300)}
	for i := 0; i < 20; i++ {
		a.Step(stim, float64(i), 1)
	}
	if a.Pose() == baseParams().Pose {
		t.Fatal("agent did not move")
	}
	a.Reset()
	if a.Pose() != baseParams().Pose {
		t.Errorf("pose after reset = %+v", a.Pose())
	}
}

func TestNewRejectsBadParams(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"zero body", func(p *Params) { p.BodyRadius = 0 }},
		{"negative spacing", func(p *Params) { p.SensorSpacing = -1 }},
		{"nan gain", func(p *Params) { p.RotationGain = math.NaN() }},
		{"bad law", func(p *Params) { p.Response.Scale = -1 }},
		{"bad turn fraction", func(p *Params) {
			_ = ApplyPreset(PresetRecognizer, p)
			p.Pursuit.TurnFraction = 2
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := baseParams()
			tt.mutate(&p)
			if _, err := New(p, kinematics.NewIntegrator(800, 600, 20, kinematics.BoundaryWrap)); err == nil {
				t.Error("expected error")
			}
		})
	}
	if _, err := New(baseParams(), nil); err == nil {
		t.Error("nil integrator accepted")
	}
}

func recognizerAgent(t *testing.T) *Agent {
	t.Helper()
	p := baseParams()
	p.Pose = kinematics.NewPose(100, 300, 0)
	if err := ApplyPreset(PresetRecognizer, &p); err != nil {
		t.Fatal(err)
	}
	return newAgent(t, p)
}

func TestRecognizerPursuesFriend(t *testing.T) {
	a := recognizerAgent(t)
	friend := systems.StimulusView{
		ID: 3, Kind: motor.KindTarget, Tag: "olive",
		Position: r2.Vec{X: 250, Y: 300}, Moving: true, Speed: 2, Frequency: 2.5,
	}
	stim := []systems.StimulusView{friend}

	st := a.Step(stim, 0, 1)
	if st.TargetID != -1 || st.Pose.Position != a.initial.Position {
		t.Fatalf("fired on first tick: %+v", st)
	}

	fired := -1
	for i := 1; i < 64; i++ {
		st = a.Step(stim, float64(i)/64, 1)
		if st.TargetID == friend.ID && fired < 0 {
			fired = i
		}
	}
	if fired < 0 {
		t.Fatal("recognizer never fired on the friend")
	}
	if float64(fired)/64 < neuralMinDelay(a) {
		t.Errorf("fired at %f, before the combined dwell %f", float64(fired)/64, neuralMinDelay(a))
	}
	if st.Pose.Position.X <= 100 {
		t.Errorf("agent did not advance: %v", st.Pose.Position)
	}
	// Pursuit closes a fraction of the error to the live bearing each tick.
	bearing := kinematics.BearingTo(st.Pose.Position, friend.Position)
	if math.Abs(kinematics.AngleDiff(st.Pose.Heading, bearing)) > 10 {
		t.Errorf("heading = %f, want near bearing %f", st.Pose.Heading, bearing)
	}
	if len(st.Brain) != 5 {
		t.Errorf("brain snapshot has %d devices", len(st.Brain))
	}
}

func TestRecognizerIgnoresDecoys(t *testing.T) {
	decoys := []systems.StimulusView{
		{ID: 1, Tag: "red", Position: r2.Vec{X: 200, Y: 300}, Speed: 1.5, Frequency: 2.5},
		{ID: 2, Tag: "olive", Position: r2.Vec{X: 200, Y: 300}, Speed: 1.8, Frequency: 0.5},
		{ID: 3, Tag: "olive", Position: r2.Vec{X: 200, Y: 300}, Speed: 4.0, Frequency: 2.5},
	}
	for _, d := range decoys {
		a := recognizerAgent(t)
		for i := 0; i < 128; i++ {
			st := a.Step([]systems.StimulusView{d}, float64(i)/64, 1)
			if st.TargetID != -1 {
				t.Fatalf("decoy %d recognized at tick %d", d.ID, i)
			}
		}
		if a.Pose() != a.initial {
			t.Errorf("decoy %d: agent moved to %+v", d.ID, a.Pose())
		}
	}
}

func TestRecognizerOutOfRange(t *testing.T) {
	a := recognizerAgent(t)
	far := systems.StimulusView{ID: 1, Tag: "olive", Position: r2.Vec{X: 400, Y: 300}, Speed: 2, Frequency: 2.5}
	for i := 0; i < 128; i++ {
		if st := a.Step([]systems.StimulusView{far}, float64(i)/64, 1); st.TargetID != -1 {
			t.Fatal("fired on a target exactly at the detection range")
		}
	}
}

func neuralMinDelay(a *Agent) float64 {
	return a.brain.Config().MinFiringDelay()
}
