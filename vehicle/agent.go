package vehicle

import (
	"errors"
	"fmt"
	"math"

	"github.com/pthm-cable/vehicles/kinematics"
	"github.com/pthm-cable/vehicles/motor"
	"github.com/pthm-cable/vehicles/neural"
	"github.com/pthm-cable/vehicles/response"
	"github.com/pthm-cable/vehicles/sensors"
	"github.com/pthm-cable/vehicles/systems"
)

// Pursuit parameterizes how a recognizer chases its target.
type Pursuit struct {
	TurnFraction float64 `yaml:"turn_fraction"` // fraction of the heading error closed per tick
	Speed        float64 `yaml:"speed"`         // forward speed while firing
}

// Params describes an agent at construction.
type Params struct {
	ID       int
	Name     string
	Behavior Behavior
	Pose     kinematics.Pose

	BodyRadius    float64
	SensorRadius  float64
	SensorSpacing float64

	Response     response.Config
	Wiring       motor.Wiring
	Kinds        motor.KindWiring // multi only
	Senses       []motor.Kind     // reactive/single: kinds sensed, empty = all
	RotationGain float64
	MotorFloor   float64

	Recognition neural.Config // recognizer only
	Pursuit     Pursuit       // recognizer only
}

// Validate checks construction parameters.
func (p Params) Validate() error {
	var errs []error
	if !(p.BodyRadius > 0) {
		errs = append(errs, fmt.Errorf("body radius must be > 0, got %v", p.BodyRadius))
	}
	if p.SensorRadius < 0 || math.IsNaN(p.SensorRadius) {
		errs = append(errs, fmt.Errorf("sensor radius must be >= 0, got %v", p.SensorRadius))
	}
	if p.SensorSpacing < 0 || math.IsNaN(p.SensorSpacing) {
		errs = append(errs, fmt.Errorf("sensor spacing must be >= 0, got %v", p.SensorSpacing))
	}
	if math.IsNaN(p.RotationGain) || math.IsInf(p.RotationGain, 0) {
		errs = append(errs, fmt.Errorf("rotation gain must be finite, got %v", p.RotationGain))
	}
	if p.Behavior > BehaviorRecognizer {
		errs = append(errs, fmt.Errorf("unknown behavior %d", p.Behavior))
	}
	if p.Behavior == BehaviorRecognizer {
		if err := p.Recognition.Validate(); err != nil {
			errs = append(errs, err)
		}
		if p.Pursuit.TurnFraction < 0 || p.Pursuit.TurnFraction > 1 || math.IsNaN(p.Pursuit.TurnFraction) {
			errs = append(errs, fmt.Errorf("pursuit turn fraction must be in [0, 1], got %v", p.Pursuit.TurnFraction))
		}
	} else if err := p.Response.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// State is the read-only result of one agent tick.
type State struct {
	ID       int
	Name     string
	Behavior Behavior
	Pose     kinematics.Pose
	Sensors  []sensors.Sensor // placed at Pose
	Output   motor.Output
	Wiring   motor.Wiring
	Law      response.Law

	Nearest         int // nearest sensed stimulus, -1 if none
	NearestDistance float64
	TargetID        int                     // recognized target, -1 if none
	Brain           []neural.DeviceSnapshot // recognizer only
}

// Agent is one vehicle. It is not safe for concurrent use.
type Agent struct {
	id       int
	name     string
	behavior Behavior
	initial  kinematics.Pose
	pose     kinematics.Pose

	geometry   sensors.Geometry
	integrator *kinematics.Integrator
	composer   motor.Composer
	law        response.Config
	wiring     motor.Wiring
	kinds      motor.KindWiring
	senses     map[motor.Kind]bool

	brain    *neural.Recognizer
	pursuit  Pursuit
	targetID int

	last State
}

// New builds an agent that integrates with the given integrator.
func New(p Params, integrator *kinematics.Integrator) (*Agent, error) {
	if integrator == nil {
		return nil, errors.New("vehicle: nil integrator")
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("vehicle %q: %w", p.Name, err)
	}

	layout := sensors.LayoutPair
	if p.Behavior == BehaviorSingle {
		layout = sensors.LayoutSingle
	}
	start := kinematics.NewPose(p.Pose.Position.X, p.Pose.Position.Y, p.Pose.Heading)
	a := &Agent{
		id:         p.ID,
		name:       p.Name,
		behavior:   p.Behavior,
		initial:    start,
		pose:       start,
		geometry:   sensors.NewGeometry(p.BodyRadius, p.SensorRadius, p.SensorSpacing, layout),
		integrator: integrator,
		composer: motor.Composer{
			RotationGain: p.RotationGain,
			Scale:        p.Response.Scale,
			Floor:        p.MotorFloor,
		},
		law:      p.Response,
		wiring:   p.Wiring,
		kinds:    p.Kinds,
		pursuit:  p.Pursuit,
		targetID: -1,
	}
	if a.kinds == nil {
		a.kinds = motor.DefaultKindWiring()
	}
	if len(p.Senses) > 0 {
		a.senses = make(map[motor.Kind]bool, len(p.Senses))
		for _, k := range p.Senses {
			a.senses[k] = true
		}
	}
	if p.Behavior == BehaviorRecognizer {
		brain, err := neural.NewRecognizer(p.Recognition)
		if err != nil {
			return nil, fmt.Errorf("vehicle %q: %w", p.Name, err)
		}
		a.brain = brain
	}
	a.last = a.snapshot(motor.Output{}, -1, 0)
	return a, nil
}

// Accessors.

func (a *Agent) ID() int { return a.id }
func (a *Agent) Name() string { return a.name }
func (a *Agent) Behavior() Behavior { return a.behavior }
func (a *Agent) Pose() kinematics.Pose { return a.pose }
func (a *Agent) Radius() float64 { return a.integrator.Radius }
func (a *Agent) Wiring() motor.Wiring { return a.wiring }
func (a *Agent) Law() response.Config { return a.law }
func (a *Agent) Geometry() sensors.Geometry { return a.geometry }
func (a *Agent) Last() State { return a.last }
func (a *Agent) Boundary() kinematics.Boundary { return a.integrator.Boundary() }

// SetWiring replaces the wiring.
func (a *Agent) SetWiring(w motor.Wiring) { a.wiring = w }

// SetCrossed changes only the crossing.
func (a *Agent) SetCrossed(crossed bool) { a.wiring.Crossed = crossed }

// SetInhibition changes only the inhibition.
func (a *Agent) SetInhibition(inhibitory bool) { a.wiring.Inhibitory = inhibitory }

// SetLaw swaps the response law. An invalid config is rejected and the
// current one is kept.
func (a *Agent) SetLaw(cfg response.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("vehicle %q: set law: %w", a.name, err)
	}
	a.law = cfg
	a.composer.Scale = cfg.Scale
	return nil
}

// SetJitter installs heading noise; nil disables it.
func (a *Agent) SetJitter(j kinematics.Jitter) {
	if j == nil {
		j = kinematics.NoJitter{}
	}
	a.integrator.Jitter = j
}

// SetPose moves the agent without changing its reset pose, and refreshes its
// last state.
func (a *Agent) SetPose(p kinematics.Pose) State {
	a.pose = kinematics.Pose{
		Position: a.integrator.Constrain(p.Position),
		Heading:  kinematics.NormalizeHeading(p.Heading),
	}
	a.last.Pose = a.pose
	a.last.Sensors = a.geometry.Place(a.pose)
	return a.last
}

// SetHeading turns the agent in place and refreshes its last state. Used for
// collision reflection after the tick's motion.
func (a *Agent) SetHeading(h float64) State {
	a.pose.Heading = kinematics.NormalizeHeading(h)
	a.last.Pose = a.pose
	a.last.Sensors = a.geometry.Place(a.pose)
	return a.last
}

// Reset returns the agent to its initial pose and clears its brain.
func (a *Agent) Reset() {
	a.pose = a.initial
	a.targetID = -1
	if a.brain != nil {
		a.brain.Reset()
	}
	a.last = a.snapshot(motor.Output{}, -1, 0)
}

// Step runs one sense, respond, compose, integrate cycle against the stimuli
// observed at the start of the tick. t is the simulated time in seconds.
func (a *Agent) Step(stimuli []systems.StimulusView, t, dtScale float64) State {
	var (
		out     motor.Output
		nearest = -1
		dist    float64
	)

	switch a.behavior {
	case BehaviorSingle:
		out, nearest, dist = a.stepSingle(stimuli)
		a.pose = a.integrator.Step(a.pose, out.Motion(), dtScale)
	case BehaviorMulti:
		out, nearest, dist = a.stepMulti(stimuli)
		a.pose = a.integrator.Step(a.pose, out.Motion(), dtScale)
	case BehaviorRecognizer:
		out, nearest, dist = a.stepRecognizer(stimuli, t)
		a.pose = a.integrator.Step(a.pose, kinematics.Motion{Speed: out.Speed}, dtScale)
	default:
		out, nearest, dist = a.stepReactive(stimuli)
		a.pose = a.integrator.Step(a.pose, out.Motion(), dtScale)
	}

	a.last = a.snapshot(out, nearest, dist)
	return a.last
}

func (a *Agent) stepReactive(stimuli []systems.StimulusView) (motor.Output, int, float64) {
	idx, dist := a.nearest(stimuli)
	var left, right float64
	if idx >= 0 {
		l, r := a.geometry.Pair(a.pose)
		pos := stimuli[idx].Position
		left = a.law.Evaluate(kinematics.Distance(l, pos))
		right = a.law.Evaluate(kinematics.Distance(r, pos))
	}
	return a.composer.Compose(left, right, a.wiring), idOf(stimuli, idx), dist
}

func (a *Agent) stepSingle(stimuli []systems.StimulusView) (motor.Output, int, float64) {
	idx, dist := a.nearest(stimuli)
	var act float64
	if idx >= 0 {
		s := a.geometry.Place(a.pose)[0]
		act = a.law.Evaluate(kinematics.Distance(s.Position, stimuli[idx].Position))
	}
	return a.composer.ComposeSingle(act, a.wiring), idOf(stimuli, idx), dist
}

func (a *Agent) stepMulti(stimuli []systems.StimulusView) (motor.Output, int, float64) {
	l, r := a.geometry.Pair(a.pose)
	contribs := make([]motor.Contribution, 0, len(stimuli))
	for _, s := range stimuli {
		if _, ok := a.kinds[s.Kind]; !ok {
			continue
		}
		contribs = append(contribs, motor.Contribution{
			Kind:  s.Kind,
			Left:  a.law.Evaluate(kinematics.Distance(l, s.Position)),
			Right: a.law.Evaluate(kinematics.Distance(r, s.Position)),
		})
	}
	idx, dist := a.nearest(stimuli)
	return a.composer.ComposeMulti(contribs, a.kinds, a.wiring), idOf(stimuli, idx), dist
}

// stepRecognizer feeds the nearest stimulus to the network and, while the
// motor device fires, closes part of the heading error toward the target.
func (a *Agent) stepRecognizer(stimuli []systems.StimulusView, t float64) (motor.Output, int, float64) {
	idx, dist := a.nearest(stimuli)
	var cand *neural.Candidate
	if idx >= 0 {
		s := stimuli[idx]
		cand = &neural.Candidate{
			ID:        s.ID,
			Distance:  dist,
			Color:     s.Tag,
			Frequency: s.Frequency,
			Speed:     s.Speed,
		}
	}
	decision := a.brain.Evaluate(cand, t)

	var out motor.Output
	out.LeftActivation = decision.ColorIn + decision.FrequencyIn + decision.SpeedIn
	out.RightActivation = out.LeftActivation
	a.targetID = -1
	if decision.Fire {
		// The target is looked up by ID each tick and never held.
		if target, ok := findByID(stimuli, decision.TargetID); ok {
			a.targetID = target.ID
			bearing := kinematics.BearingTo(a.pose.Position, target.Position)
			turn := a.pursuit.TurnFraction * kinematics.AngleDiff(a.pose.Heading, bearing)
			a.pose.Heading = kinematics.NormalizeHeading(a.pose.Heading + turn)
			out.AngularRate = turn
			out.Speed = a.pursuit.Speed
			out.LeftMotor, out.RightMotor = out.Speed, out.Speed
		}
	}
	return out, idOf(stimuli, idx), dist
}

// nearest returns the index of the closest sensed stimulus to the body and
// its distance. Ties keep the earlier stimulus.
func (a *Agent) nearest(stimuli []systems.StimulusView) (int, float64) {
	best, bestDist := -1, math.Inf(1)
	for i, s := range stimuli {
		if a.senses != nil && !a.senses[s.Kind] {
			continue
		}
		d := kinematics.Distance(a.pose.Position, s.Position)
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return -1, 0
	}
	return best, bestDist
}

func (a *Agent) snapshot(out motor.Output, nearest int, dist float64) State {
	st := State{
		ID:              a.id,
		Name:            a.name,
		Behavior:        a.behavior,
		Pose:            a.pose,
		Sensors:         a.geometry.Place(a.pose),
		Output:          out,
		Wiring:          a.wiring,
		Law:             a.law.Law,
		Nearest:         nearest,
		NearestDistance: dist,
		TargetID:        a.targetID,
	}
	if a.brain != nil {
		st.Brain = a.brain.Snapshot()
	}
	return st
}

func idOf(stimuli []systems.StimulusView, idx int) int {
	if idx < 0 {
		return -1
	}
	return stimuli[idx].ID
}

func findByID(stimuli []systems.StimulusView, id int) (systems.StimulusView, bool) {
	for _, s := range stimuli {
		if s.ID == id {
			return s, true
		}
	}
	return systems.StimulusView{}, false
}
