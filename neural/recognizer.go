package neural

import "fmt"

// Candidate is what the detectors can observe about the nearest stimulus.
type Candidate struct {
	ID        int
	Distance  float64
	Color     string
	Frequency float64
	Speed     float64
}

// Decision is the network's output for one tick.
type Decision struct {
	ColorIn, FrequencyIn, SpeedIn float64 // raw detector inputs
	Fire                          bool    // motor device output is 1
	TargetID                      int     // candidate ID when firing, else -1
}

// Recognizer is the fixed friend-recognition network:
//
//	color ─┐
//	freq  ─┼─> recognition gate ─> motor control
//	speed ─┘
//
// The gate's threshold needs all three detectors firing together.
type Recognizer struct {
	cfg Config

	color     *ThresholdDevice
	frequency *ThresholdDevice
	speed     *ThresholdDevice
	gate      *ThresholdDevice
	motor     *ThresholdDevice

	last Decision
}

// NewRecognizer builds the network, rejecting invalid parameters.
func NewRecognizer(cfg Config) (*Recognizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("recognizer: %w", err)
	}
	r := &Recognizer{cfg: cfg, last: Decision{TargetID: -1}}
	// Config is already validated, so device construction cannot fail.
	r.color, _ = NewThresholdDevice(DeviceColor, cfg.Color)
	r.frequency, _ = NewThresholdDevice(DeviceFrequency, cfg.Frequency)
	r.speed, _ = NewThresholdDevice(DeviceSpeed, cfg.Speed)
	r.gate, _ = NewThresholdDevice(DeviceRecognition, cfg.Recognition)
	r.motor, _ = NewThresholdDevice(DeviceMotor, cfg.Motor)
	return r, nil
}

// Config returns the network parameters.
func (r *Recognizer) Config() Config { return r.cfg }

// Evaluate runs the network once at simulated time t. A nil candidate, or one
// outside the detection range, feeds zero to every detector.
func (r *Recognizer) Evaluate(c *Candidate, t float64) Decision {
	var colorIn, freqIn, speedIn float64
	if c != nil && c.Distance < r.cfg.DetectionRange {
		f := r.cfg.Friend
		colorIn = boolInput(c.Color == f.Color)
		freqIn = boolInput(c.Frequency >= f.FrequencyMin && c.Frequency <= f.FrequencyMax)
		speedIn = boolInput(c.Speed <= f.MaxSpeed)
	}

	cOut := r.color.Update([]float64{colorIn}, t)
	fOut := r.frequency.Update([]float64{freqIn}, t)
	sOut := r.speed.Update([]float64{speedIn}, t)
	gOut := r.gate.Update([]float64{cOut, fOut, sOut}, t)
	mOut := r.motor.Update([]float64{gOut}, t)

	d := Decision{ColorIn: colorIn, FrequencyIn: freqIn, SpeedIn: speedIn, TargetID: -1}
	if mOut > 0 && c != nil {
		d.Fire = true
		d.TargetID = c.ID
	}
	r.last = d
	return d
}

// Last returns the most recent decision.
func (r *Recognizer) Last() Decision { return r.last }

// Snapshot returns every device's state in evaluation order.
func (r *Recognizer) Snapshot() []DeviceSnapshot {
	return []DeviceSnapshot{
		r.color.Snapshot(),
		r.frequency.Snapshot(),
		r.speed.Snapshot(),
		r.gate.Snapshot(),
		r.motor.Snapshot(),
	}
}

// Reset returns all devices to idle.
func (r *Recognizer) Reset() {
	for _, d := range []*ThresholdDevice{r.color, r.frequency, r.speed, r.gate, r.motor} {
		d.Reset()
	}
	r.last = Decision{TargetID: -1}
}

func boolInput(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
