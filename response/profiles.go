package response

import "fmt"

// NumStepProfiles is the number of threshold response profiles.
const NumStepProfiles = 5

// StepProfile returns one of the threshold-family response curves, all
// silent beyond threshold:
//
//	1: linear ramp with a 0.3 floor
//	2: flat 0.8 step
//	3: multiple thresholds (0.5 far, 0.2 middle, full when close)
//	4: smooth quadratic rise
//	5: complex steps (0.3, full, 0.5, full from far to near)
func StepProfile(n int, scale, threshold, maxDistance float64) (Config, error) {
	base := Config{Scale: scale, Threshold: threshold, MaxDistance: maxDistance}
	switch n {
	case 1:
		base.Law = LawLinearFloor
		base.MinActivation = 0.3
	case 2:
		base.Law = LawMultiStep
		base.Bands = []Band{{Upper: threshold, Fraction: 0.8}}
	case 3:
		base.Law = LawMultiStep
		base.Bands = []Band{
			{Upper: threshold * 0.4, Fraction: 1},
			{Upper: threshold * 0.7, Fraction: 0.2},
			{Upper: threshold, Fraction: 0.5},
		}
	case 4:
		base.Law = LawQuadratic
	case 5:
		base.Law = LawMultiStep
		base.Bands = []Band{
			{Upper: threshold * 0.2, Fraction: 1},
			{Upper: threshold * 0.4, Fraction: 0.5},
			{Upper: threshold * 0.6, Fraction: 1},
			{Upper: threshold, Fraction: 0.3},
		}
	default:
		return Config{}, fmt.Errorf("%w: step profile %d out of range 1..%d", ErrInvalidConfig, n, NumStepProfiles)
	}
	if err := base.Validate(); err != nil {
		return Config{}, err
	}
	return base, nil
}

// StepProfileName returns a short label for a step profile.
func StepProfileName(n int) string {
	switch n {
	case 1:
		return "minimum threshold"
	case 2:
		return "step function"
	case 3:
		return "multiple thresholds"
	case 4:
		return "smooth after threshold"
	case 5:
		return "complex steps"
	}
	return "unknown"
}
