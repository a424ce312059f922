// Package neural implements timed threshold devices and the small fixed
// network built from them that recognizes a friendly target.
package neural

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidDevice is returned (wrapped) for bad device parameters.
var ErrInvalidDevice = errors.New("invalid threshold device")

// State is a threshold device's phase.
type State uint8

const (
	// StateIdle: input sum below threshold.
	StateIdle State = iota
	// StateAccumulating: at or above threshold, dwell timer running.
	StateAccumulating
	// StateFiring: dwell satisfied, output is 1.
	StateFiring
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAccumulating:
		return "accumulating"
	case StateFiring:
		return "firing"
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// DeviceConfig holds the tunable parameters of one device.
type DeviceConfig struct {
	Threshold float64 `yaml:"threshold"`
	Dwell     float64 `yaml:"dwell"` // seconds the sum must stay at or above threshold
}

// Validate rejects negative or non-finite parameters.
func (c DeviceConfig) Validate() error {
	if math.IsNaN(c.Threshold) || math.IsInf(c.Threshold, 0) || c.Threshold < 0 {
		return fmt.Errorf("%w: threshold %v must be finite and >= 0", ErrInvalidDevice, c.Threshold)
	}
	if math.IsNaN(c.Dwell) || math.IsInf(c.Dwell, 0) || c.Dwell < 0 {
		return fmt.Errorf("%w: dwell %v must be finite and >= 0", ErrInvalidDevice, c.Dwell)
	}
	return nil
}

// ThresholdDevice sums its inputs and fires only after the sum has stayed at
// or above the threshold for the dwell time. Dropping below the threshold
// resets it immediately; partial dwell is never carried over.
type ThresholdDevice struct {
	Name      string
	Threshold float64
	Dwell     float64

	sum            float64
	output         float64
	accumulating   bool
	activationTime float64
}

// NewThresholdDevice creates a device, rejecting invalid parameters.
func NewThresholdDevice(name string, cfg DeviceConfig) (*ThresholdDevice, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("device %s: %w", name, err)
	}
	return &ThresholdDevice{Name: name, Threshold: cfg.Threshold, Dwell: cfg.Dwell}, nil
}

// Update evaluates the device at simulated time t and returns 0 or 1.
// Repeating a call with the same inputs and time gives the same result.
func (d *ThresholdDevice) Update(inputs []float64, t float64) float64 {
	d.sum = 0
	for _, v := range inputs {
		if !math.IsNaN(v) {
			d.sum += v
		}
	}

	if d.sum < d.Threshold {
		d.accumulating = false
		d.activationTime = 0
		d.output = 0
		return d.output
	}

	if !d.accumulating {
		d.accumulating = true
		d.activationTime = t
	}
	if t-d.activationTime >= d.Dwell {
		d.output = 1
	} else {
		d.output = 0
	}
	return d.output
}

// Output returns the most recent output.
func (d *ThresholdDevice) Output() float64 { return d.output }

// Sum returns the most recent input sum.
func (d *ThresholdDevice) Sum() float64 { return d.sum }

// State returns the device's current phase.
func (d *ThresholdDevice) State() State {
	switch {
	case d.output > 0:
		return StateFiring
	case d.accumulating:
		return StateAccumulating
	}
	return StateIdle
}

// Reset returns the device to idle.
func (d *ThresholdDevice) Reset() {
	d.sum = 0
	d.output = 0
	d.accumulating = false
	d.activationTime = 0
}

// DeviceSnapshot is a read-only view of a device for display.
type DeviceSnapshot struct {
	Name      string
	Threshold float64
	Dwell     float64
	Sum       float64
	Output    float64
	State     State
}

// Snapshot copies the device's current state.
func (d *ThresholdDevice) Snapshot() DeviceSnapshot {
	return DeviceSnapshot{
		Name:      d.Name,
		Threshold: d.Threshold,
		Dwell:     d.Dwell,
		Sum:       d.sum,
		Output:    d.output,
		State:     d.State(),
	}
}
