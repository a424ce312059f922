// Package response maps a sensed distance to a bounded activation.
//
// Every law returns a value in [0, Scale] for any input distance, so the motor
// composer never sees NaN, Inf or out-of-range activations.
package response

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is returned (wrapped) for malformed response configuration.
var ErrInvalidConfig = errors.New("invalid response config")

// DefaultFloor is the minimum distance used by the inverse laws.
const DefaultFloor = 1.0

// Law selects the response curve.
type Law string

const (
	LawInverse       Law = "inverse"        // scale / max(d, floor)
	LawInverseCapped Law = "inverse_capped" // min(cap, scale / max(d, floor))
	LawGaussian      Law = "gaussian"       // peak at Optimal, spread Width
	LawThreshold     Law = "threshold"      // scale within Threshold, else 0
	LawLinearFloor   Law = "linear_floor"   // linear ramp with MinActivation floor
	LawQuadratic     Law = "quadratic"      // 1 - (d/threshold)^2
	LawMultiStep     Law = "multi_step"     // banded fractions
)

// Laws lists all supported laws in display order.
var Laws = []Law{
	LawInverse, LawInverseCapped, LawGaussian, LawThreshold,
	LawLinearFloor, LawQuadratic, LawMultiStep,
}

// Band is one step of a multi-step law: distances up to Upper produce
// Fraction of the scale.
type Band struct {
	Upper    float64 `yaml:"upper"`
	Fraction float64 `yaml:"fraction"`
}

// Config parameterizes a response law. It is immutable once handed to a
// vehicle; reconfiguration replaces the whole value.
type Config struct {
	Law           Law     `yaml:"law"`
	Scale         float64 `yaml:"scale"`
	MaxDistance   float64 `yaml:"max_distance"`   // distances are clamped to this (0 = unlimited)
	Floor         float64 `yaml:"floor"`          // inverse laws: minimum divisor (0 = DefaultFloor)
	Cap           float64 `yaml:"cap"`            // inverse_capped: activation ceiling
	Optimal       float64 `yaml:"optimal"`        // gaussian: distance of peak response
	Width         float64 `yaml:"width"`          // gaussian: standard deviation
	Threshold     float64 `yaml:"threshold"`      // threshold laws: activation radius
	MinActivation float64 `yaml:"min_activation"` // linear_floor: fraction once inside threshold
	Bands         []Band  `yaml:"bands"`          // multi_step: ascending upper bounds
}

// Validate reports every problem with the configuration.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...)))
	}

	if !(c.Scale > 0) || math.IsInf(c.Scale, 0) {
		bad("scale must be positive and finite, got %v", c.Scale)
	}
	if c.MaxDistance < 0 || math.IsNaN(c.MaxDistance) {
		bad("max_distance must be >= 0, got %v", c.MaxDistance)
	}

	switch c.Law {
	case LawInverse:
		if c.Floor < 0 || math.IsNaN(c.Floor) {
			bad("floor must be >= 0, got %v", c.Floor)
		}
	case LawInverseCapped:
		if c.Floor < 0 || math.IsNaN(c.Floor) {
			bad("floor must be >= 0, got %v", c.Floor)
		}
		if !(c.Cap > 0) || c.Cap > c.Scale {
			bad("cap must be in (0, scale], got %v", c.Cap)
		}
	case LawGaussian:
		if !(c.Width > 0) || math.IsInf(c.Width, 0) {
			bad("gaussian width must be positive, got %v", c.Width)
		}
		if c.Optimal < 0 || math.IsNaN(c.Optimal) {
			bad("gaussian optimal distance must be >= 0, got %v", c.Optimal)
		}
	case LawThreshold, LawQuadratic:
		if c.Threshold < 0 || math.IsNaN(c.Threshold) {
			bad("threshold must be >= 0, got %v", c.Threshold)
		}
	case LawLinearFloor:
		if !(c.Threshold > 0) {
			bad("threshold must be positive, got %v", c.Threshold)
		}
		if c.MinActivation < 0 || c.MinActivation > 1 || math.IsNaN(c.MinActivation) {
			bad("min_activation must be in [0, 1], got %v", c.MinActivation)
		}
	case LawMultiStep:
		if err := validateBands(c.Bands); err != nil {
			errs = append(errs, err)
		}
	default:
		bad("unknown law %q", c.Law)
	}

	return errors.Join(errs...)
}

func validateBands(bands []Band) error {
	if len(bands) == 0 {
		return fmt.Errorf("%w: multi_step needs at least one band", ErrInvalidConfig)
	}
	prev := math.Inf(-1)
	for i, b := range bands {
		if math.IsNaN(b.Upper) || b.Upper < 0 {
			return fmt.Errorf("%w: band %d upper bound %v must be >= 0", ErrInvalidConfig, i, b.Upper)
		}
		if b.Upper <= prev {
			return fmt.Errorf("%w: band %d upper bound %v not above previous %v", ErrInvalidConfig, i, b.Upper, prev)
		}
		if b.Fraction < 0 || b.Fraction > 1 || math.IsNaN(b.Fraction) {
			return fmt.Errorf("%w: band %d fraction %v must be in [0, 1]", ErrInvalidConfig, i, b.Fraction)
		}
		prev = b.Upper
	}
	return nil
}

// Evaluate returns the activation for a distance. Negative or NaN distances
// are treated as 0; distances beyond MaxDistance are treated as MaxDistance.
func (c Config) Evaluate(distance float64) float64 {
	d := c.clampDistance(distance)

	var a float64
	switch c.Law {
	case LawInverse:
		a = c.Scale / math.Max(d, c.floor())
	case LawInverseCapped:
		a = math.Min(c.Cap, c.Scale/math.Max(d, c.floor()))
	case LawGaussian:
		diff := d - c.Optimal
		a = c.Scale * math.Exp(-(diff*diff)/(2*c.Width*c.Width))
	case LawThreshold:
		if d <= c.Threshold {
			a = c.Scale
		}
	case LawLinearFloor:
		if d <= c.Threshold {
			a = c.Scale * math.Max(c.MinActivation, 1-d/c.Threshold)
		}
	case LawQuadratic:
		if d <= c.Threshold && c.Threshold > 0 {
			r := d / c.Threshold
			a = c.Scale * (1 - r*r)
		}
	case LawMultiStep:
		for _, b := range c.Bands {
			if d <= b.Upper {
				a = c.Scale * b.Fraction
				break
			}
		}
	}
	return Clamp(a, c.Scale)
}

func (c Config) clampDistance(d float64) float64 {
	if math.IsNaN(d) || d < 0 {
		d = 0
	}
	if c.MaxDistance > 0 && d > c.MaxDistance {
		d = c.MaxDistance
	}
	return d
}

func (c Config) floor() float64 {
	if c.Floor > 0 {
		return c.Floor
	}
	return DefaultFloor
}

// Inhibit inverts an activation so stronger stimulus gives weaker output.
func Inhibit(a, scale float64) float64 {
	return Clamp(scale-a, scale)
}

// Clamp bounds a into [0, scale], mapping NaN to 0.
func Clamp(a, scale float64) float64 {
	if math.IsNaN(a) || a < 0 {
		return 0
	}
	if a > scale {
		return scale
	}
	return a
}
