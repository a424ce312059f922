package neural

import (
	"errors"
	"fmt"
	"math"
)

// Device names in the recognition network, in evaluation order.
const (
	DeviceColor       = "color"
	DeviceFrequency   = "frequency"
	DeviceSpeed       = "speed"
	DeviceRecognition = "recognition"
	DeviceMotor       = "motor"
)

// FriendProfile describes the target the network should recognize.
type FriendProfile struct {
	Color        string  `yaml:"color"`
	FrequencyMin float64 `yaml:"frequency_min"` // Hz, inclusive
	FrequencyMax float64 `yaml:"frequency_max"` // Hz, inclusive
	MaxSpeed     float64 `yaml:"max_speed"`     // inclusive
}

// Config holds the recognition network parameters.
type Config struct {
	DetectionRange float64       `yaml:"detection_range"`
	Friend         FriendProfile `yaml:"friend"`
	Color          DeviceConfig  `yaml:"color"`
	Frequency      DeviceConfig  `yaml:"frequency"`
	Speed          DeviceConfig  `yaml:"speed"`
	Recognition    DeviceConfig  `yaml:"recognition"`
	Motor          DeviceConfig  `yaml:"motor"`
}

// DefaultConfig returns the friend/decoy gate: an olive target buzzing at
// 2-3 Hz and moving no faster than 2.5, recognized only when all three
// detectors agree.
func DefaultConfig() Config {
	return Config{
		DetectionRange: 300,
		Friend: FriendProfile{
			Color:        "olive",
			FrequencyMin: 2.0,
			FrequencyMax: 3.0,
			MaxSpeed:     2.5,
		},
		Color:       DeviceConfig{Threshold: 0.9, Dwell: 0.1},
		Frequency:   DeviceConfig{Threshold: 0.9, Dwell: 0.15},
		Speed:       DeviceConfig{Threshold: 0.9, Dwell: 0.1},
		Recognition: DeviceConfig{Threshold: 2.9, Dwell: 0.2},
		Motor:       DeviceConfig{Threshold: 0.9, Dwell: 0.05},
	}
}

// Validate checks every device plus the friend profile.
func (c Config) Validate() error {
	var errs []error
	if !(c.DetectionRange > 0) || math.IsInf(c.DetectionRange, 0) {
		errs = append(errs, fmt.Errorf("%w: detection_range must be positive, got %v", ErrInvalidDevice, c.DetectionRange))
	}
	if c.Friend.FrequencyMin > c.Friend.FrequencyMax {
		errs = append(errs, fmt.Errorf("%w: friend frequency range [%v, %v] is empty",
			ErrInvalidDevice, c.Friend.FrequencyMin, c.Friend.FrequencyMax))
	}
	devices := []struct {
		name string
		cfg  DeviceConfig
	}{
		{DeviceColor, c.Color},
		{DeviceFrequency, c.Frequency},
		{DeviceSpeed, c.Speed},
		{DeviceRecognition, c.Recognition},
		{DeviceMotor, c.Motor},
	}
	for _, d := range devices {
		if err := d.cfg.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", d.name, err))
		}
	}
	return errors.Join(errs...)
}

// MinFiringDelay is the shortest time from a continuous full match to the
// motor device firing: the slowest detector, then the gate, then the motor.
func (c Config) MinFiringDelay() float64 {
	detect := math.Max(c.Color.Dwell, math.Max(c.Frequency.Dwell, c.Speed.Dwell))
	return detect + c.Recognition.Dwell + c.Motor.Dwell
}
